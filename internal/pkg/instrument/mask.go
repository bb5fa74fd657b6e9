package instrument

import (
	"encoding/json"
	"strings"
)

const maskedValue = "***"

// MaskKeys normalizes field names into the lookup set used by Mask.
func MaskKeys(fields []string) map[string]struct{} {
	keys := make(map[string]struct{}, len(fields))
	for _, field := range fields {
		field = strings.TrimSpace(strings.ToLower(field))
		if field != "" {
			keys[field] = struct{}{}
		}
	}

	return keys
}

// Mask returns a copy of a decoded JSON value where every object member whose
// name is in keys (case-insensitive) is replaced by "***".
func Mask(v any, keys map[string]struct{}) any {
	switch val := v.(type) {
	case map[string]any:
		masked := make(map[string]any, len(val))
		for k, v2 := range val {
			if isMasked(k, keys) {
				masked[k] = maskedValue
				continue
			}
			masked[k] = Mask(v2, keys)
		}
		return masked
	case map[string]string:
		masked := make(map[string]any, len(val))
		for k, v2 := range val {
			if isMasked(k, keys) {
				masked[k] = maskedValue
				continue
			}
			masked[k] = v2
		}
		return masked
	case []any:
		res := make([]any, len(val))
		for i, v2 := range val {
			res[i] = Mask(v2, keys)
		}
		return res
	default:
		return v
	}
}

// MaskJSON masks a raw JSON document. ok is false when payload is not a JSON
// object or array.
func MaskJSON(payload []byte, keys map[string]struct{}) (string, bool) {
	if len(payload) == 0 || (payload[0] != '{' && payload[0] != '[') {
		return "", false
	}

	var doc any
	if err := json.Unmarshal(payload, &doc); err != nil {
		return "", false
	}

	out, err := json.Marshal(Mask(doc, keys))
	if err != nil {
		return "", false
	}

	return string(out), true
}

func isMasked(key string, keys map[string]struct{}) bool {
	_, found := keys[strings.ToLower(key)]
	return found
}
