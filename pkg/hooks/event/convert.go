package event

// FromJSON recursively converts a value produced by encoding/json's default
// decoding (map[string]interface{}, []interface{}, string, float64, bool,
// nil) into the engine's own Value tree (map[string]Value, []Value, ...).
// The conversion exists so that the condition evaluator's type switches
// only ever see the engine's named types, never encoding/json's
// interface{} directly — keeping the dependency one-directional.
func FromJSON(v any) Value {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]Value, len(t))
		for k, val := range t {
			out[k] = FromJSON(val)
		}
		return out
	case []any:
		out := make([]Value, len(t))
		for i, val := range t {
			out[i] = FromJSON(val)
		}
		return out
	default:
		return t
	}
}

// ToStringMap converts a decoded JSON object into map[string]Value, the
// shape ToolInput and ToolResponse use. A nil or non-object input yields an
// empty map rather than nil, so Field() can report presence accurately.
func ToStringMap(v any) map[string]Value {
	converted := FromJSON(v)
	m, ok := converted.(map[string]Value)
	if !ok {
		return map[string]Value{}
	}
	return m
}
