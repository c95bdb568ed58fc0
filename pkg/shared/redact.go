package shared

import "strings"

// RedactedValue replaces sensitive values wherever they would otherwise be
// logged or serialized.
const RedactedValue = "[REDACTED]"

var sensitiveKeyFragments = []string{
	"apikey",
	"api_key",
	"privatekey",
	"private_key",
	"operatorkey",
	"operator_key",
	"password",
	"secret",
	"token",
	"authorization",
	"auth",
}

// IsSensitiveKey reports whether a field name looks like it holds a
// credential. Matching is case-insensitive and substring based.
func IsSensitiveKey(key string) bool {
	lowered := strings.ToLower(key)
	for _, fragment := range sensitiveKeyFragments {
		if strings.Contains(lowered, fragment) {
			return true
		}
	}
	return false
}

// RedactSensitiveData returns a deep copy of data with every value under a
// sensitive-looking key replaced by RedactedValue. The input is never
// modified.
func RedactSensitiveData(data any) any {
	switch typed := data.(type) {
	case map[string]any:
		redacted := make(map[string]any, len(typed))
		for key, value := range typed {
			if IsSensitiveKey(key) {
				redacted[key] = RedactedValue
				continue
			}
			redacted[key] = RedactSensitiveData(value)
		}
		return redacted
	case []any:
		redacted := make([]any, len(typed))
		for index, value := range typed {
			redacted[index] = RedactSensitiveData(value)
		}
		return redacted
	default:
		return data
	}
}
