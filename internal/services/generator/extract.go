package generator

import "strings"

// Extractor is a pure function from a decoded response body to an image
// reference. It returns the empty string when the shape it knows is not
// present. Extractors are applied in a fixed priority order and the first
// non-empty result wins - the external API's response shape has been
// observed to vary across provider/model combinations.
type Extractor func(body map[string]interface{}) string

// DefaultExtractors returns the extraction strategies in priority order:
// top-level "image", top-level "b64_json", then the OpenAI-style
// "data" array of objects (b64_json or url).
func DefaultExtractors() []Extractor {
	return []Extractor{
		extractTopLevelImage,
		extractTopLevelB64,
		extractDataArray,
	}
}

func extractTopLevelImage(body map[string]interface{}) string {
	if payload, ok := body["image"].(string); ok && payload != "" {
		return normalizeReference(payload)
	}
	return ""
}

func extractTopLevelB64(body map[string]interface{}) string {
	if payload, ok := body["b64_json"].(string); ok && payload != "" {
		return normalizeReference(payload)
	}
	return ""
}

func extractDataArray(body map[string]interface{}) string {
	items, ok := body["data"].([]interface{})
	if !ok || len(items) == 0 {
		return ""
	}

	first, ok := items[0].(map[string]interface{})
	if !ok {
		return ""
	}

	if payload, ok := first["b64_json"].(string); ok && payload != "" {
		return normalizeReference(payload)
	}
	if payload, ok := first["url"].(string); ok && payload != "" {
		return normalizeReference(payload)
	}
	return ""
}

// normalizeReference turns a raw payload into a single embeddable image
// reference: callable URLs and data URIs pass through, anything else is
// assumed to be a bare base64 payload and wrapped as a PNG data URI.
func normalizeReference(payload string) string {
	if strings.HasPrefix(payload, "http://") ||
		strings.HasPrefix(payload, "https://") ||
		strings.HasPrefix(payload, "data:") {
		return payload
	}
	return "data:image/png;base64," + payload
}
