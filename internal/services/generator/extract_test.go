package generator

import "testing"

func TestExtractorPriorityOrder(t *testing.T) {
	// Top-level image wins over nested data when both are present
	body := map[string]interface{}{
		"image": "https://example.com/primary.png",
		"data":  []interface{}{map[string]interface{}{"url": "https://example.com/secondary.png"}},
	}

	for _, extract := range DefaultExtractors() {
		if ref := extract(body); ref != "" {
			if ref != "https://example.com/primary.png" {
				t.Errorf("Expected top-level image to win, got %s", ref)
			}
			return
		}
	}
	t.Fatal("No extractor matched")
}

func TestExtractDataArraySkipsEmptyEntries(t *testing.T) {
	body := map[string]interface{}{
		"data": []interface{}{map[string]interface{}{"revised_prompt": "ignored"}},
	}

	if ref := extractDataArray(body); ref != "" {
		t.Errorf("Expected no match for entry without image fields, got %s", ref)
	}
}

func TestNormalizeReference(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"https passthrough", "https://example.com/a.png", "https://example.com/a.png"},
		{"http passthrough", "http://example.com/a.png", "http://example.com/a.png"},
		{"data URI passthrough", "data:image/jpeg;base64,abc", "data:image/jpeg;base64,abc"},
		{"bare base64 wrapped", "iVBORw0KGgo=", "data:image/png;base64,iVBORw0KGgo="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := normalizeReference(tt.payload); got != tt.want {
				t.Errorf("Expected %s, got %s", tt.want, got)
			}
		})
	}
}
