package utils

import "testing"

type testPayload struct {
	URL     string `json:"url"`
	Company string `json:"company"`
	Period  string `json:"period"`
}

func TestSmartParseStrategies(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantURL string
		wantErr bool
	}{
		{
			name:    "valid JSON",
			input:   `{"url": "https://example.com", "company": "Test Co", "period": "Q3"}`,
			wantURL: "https://example.com",
		},
		{
			name:    "trailing comma repaired",
			input:   `{"url": "https://example.com", "company": "Test Co",}`,
			wantURL: "https://example.com",
		},
		{
			name:    "single quotes repaired",
			input:   `{'url': 'https://example.com'}`,
			wantURL: "https://example.com",
		},
		{
			name: "hjson with comments",
			input: `{
				# earnings page to extract
				url: "https://example.com"
				company: "Test Co"
			}`,
			wantURL: "https://example.com",
		},
		{
			name:    "unparseable input",
			input:   "]]][[[",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var payload testPayload
			_, err := SmartParse(tt.input, &payload)
			if tt.wantErr {
				if err == nil {
					t.Errorf("expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("SmartParse failed: %v", err)
			}
			if payload.URL != tt.wantURL {
				t.Errorf("url = %q, want %q", payload.URL, tt.wantURL)
			}
		})
	}
}

func TestParseHJSONToStruct(t *testing.T) {
	input := `{
		url: https://example.com/q3
		company: Amazon
		period: Q3 2023
	}`

	var payload testPayload
	if err := ParseHJSONToStruct(input, &payload); err != nil {
		t.Fatalf("ParseHJSONToStruct failed: %v", err)
	}
	if payload.Company != "Amazon" || payload.Period != "Q3 2023" {
		t.Errorf("payload = %+v", payload)
	}
}

func TestRenderMarkdownHTML(t *testing.T) {
	html, err := RenderMarkdownHTML("# Report\n\n| a | b |\n| --- | --- |\n| 1 | 2 |\n")
	if err != nil {
		t.Fatalf("RenderMarkdownHTML failed: %v", err)
	}
	if html == "" {
		t.Error("expected non-empty HTML")
	}
}

func TestValidateMarkdown(t *testing.T) {
	if !ValidateMarkdown("# Earnings Facts\n\nsome prose") {
		t.Error("well-formed markdown should validate")
	}
}
