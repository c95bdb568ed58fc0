package shared

import "strings"

// SanitizeString removes ASCII control characters, including DEL, from the
// given string. Applying it twice returns the same result.
func SanitizeString(value string) string {
	return strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7F {
			return -1
		}
		return r
	}, value)
}

// SanitizeEventData walks maps, slices, and strings at any depth and strips
// control characters from every string it finds. Non-string leaves are
// returned unchanged.
func SanitizeEventData(data any) any {
	switch typed := data.(type) {
	case string:
		return SanitizeString(typed)
	case map[string]any:
		sanitized := make(map[string]any, len(typed))
		for key, value := range typed {
			sanitized[SanitizeString(key)] = SanitizeEventData(value)
		}
		return sanitized
	case []any:
		sanitized := make([]any, len(typed))
		for index, value := range typed {
			sanitized[index] = SanitizeEventData(value)
		}
		return sanitized
	default:
		return data
	}
}
