package facts

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NormalizeText flattens a parsed HTML document into a single text blob for
// pattern matching. Script and style subtrees never contribute text; the
// remaining text nodes are stripped and joined with single spaces in document
// order. Block structure is deliberately discarded so the fact patterns can
// use plain whitespace separators.
//
// The walk is read-only: the document tree is not mutated, so a normalizer
// call is safe to combine with later passes over the same document.
func NormalizeText(doc *goquery.Document) string {
	var parts []string

	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			if text := strings.TrimSpace(n.Data); text != "" {
				parts = append(parts, text)
			}
			return
		}
		for child := n.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}

	for _, node := range doc.Nodes {
		walk(node)
	}

	return strings.Join(parts, " ")
}
