package convert

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// unwrapLocator returns the value of an n8n resource locator
// ({"__rl": true, "mode": "list", "value": "C0123"}); other values pass through.
func unwrapLocator(v any) any {
	m, ok := v.(map[string]any)
	if !ok {
		return v
	}
	if _, isLocator := m["__rl"]; isLocator {
		return m["value"]
	}
	return v
}

// flattenParams unwraps resource locators at the top level so that alias
// structs can decode them as plain strings.
func flattenParams(params map[string]any) map[string]any {
	out := make(map[string]any, len(params))
	for k, v := range params {
		out[k] = unwrapLocator(v)
	}
	return out
}

// decodeParams fills target from the node parameters. Decoding is best-effort:
// fields whose values cannot be coerced are left zero and reported in the
// returned error, while the others are still set.
func decodeParams(params map[string]any, target any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to build decoder: %w", err)
	}
	return dec.Decode(flattenParams(params))
}

// firstNonEmpty returns the first alias holding a non-empty value.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// cloneValue deep-copies JSON-shaped values so graph configs never alias the
// source document.
func cloneValue(v any) any {
	switch t := v.(type) {
	case map[string]any:
		return cloneMap(t)
	case []any:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = cloneValue(item)
		}
		return out
	default:
		return v
	}
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = cloneValue(v)
	}
	return out
}

func stringParam(params map[string]any, key string) (string, bool) {
	s, ok := unwrapLocator(params[key]).(string)
	return s, ok && s != ""
}
