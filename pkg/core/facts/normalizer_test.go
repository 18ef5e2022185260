package facts

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
)

func TestNormalizeTextStripsScriptAndStyle(t *testing.T) {
	html := `<html><head>
		<script>var revenue = "revenue of $9.9 billion";</script>
		<style>.hero { color: red; }</style>
	</head><body>
		<h1>Q3 Results</h1>
		<p>Revenue of $5.2 billion.</p>
	</body></html>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	text := NormalizeText(doc)
	if strings.Contains(text, "9.9") {
		t.Errorf("script content leaked into text: %q", text)
	}
	if strings.Contains(text, "color") {
		t.Errorf("style content leaked into text: %q", text)
	}
	if !strings.Contains(text, "Q3 Results Revenue of $5.2 billion.") {
		t.Errorf("text = %q", text)
	}
}

func TestNormalizeTextJoinsBlocksWithSingleSpace(t *testing.T) {
	html := `<div>  Net sales  </div><div>increased 11%</div><span> to </span><b>$143.1 billion</b>`

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	text := NormalizeText(doc)
	// Each text node is trimmed and separated by exactly one space, so the
	// fact patterns can match across original block boundaries
	if !strings.Contains(text, "Net sales increased 11% to $143.1 billion") {
		t.Errorf("text = %q", text)
	}
}

func TestNormalizeTextEmptyDocument(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(""))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if text := NormalizeText(doc); text != "" {
		t.Errorf("expected empty text, got %q", text)
	}
}
