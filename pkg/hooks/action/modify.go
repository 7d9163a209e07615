package action

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
)

// Modify may only touch this explicit set of fields. Letting a rule write
// session_id, hook_event_name, or tool_name would let it spoof the identity
// the rest of the pipeline (and the host) relies on, so everything outside
// prompt/custom_instructions/tool_input.*/tool_response.* is rejected.
const (
	fieldPrompt             = "prompt"
	fieldCustomInstructions = "custom_instructions"
	toolInputPrefix         = "tool_input."
	toolResponsePrefix      = "tool_response."
)

func (d *Dispatcher) runModify(ctx *Context, a rule.Action) accumulate.ActionOutcome {
	ev := ctx.Event
	if ev == nil {
		return accumulate.ActionOutcome{Success: false, Error: "modify: no event in context"}
	}

	switch {
	case a.FieldPath == fieldPrompt:
		next, err := applyStringOp(ev.Prompt, a)
		if err != nil {
			return accumulate.ActionOutcome{Success: false, Error: err.Error()}
		}
		ev.Prompt = next
		return accumulate.ActionOutcome{Success: true, Output: next}

	case a.FieldPath == fieldCustomInstructions:
		next, err := applyStringOp(ev.CustomInstructions, a)
		if err != nil {
			return accumulate.ActionOutcome{Success: false, Error: err.Error()}
		}
		ev.CustomInstructions = next
		return accumulate.ActionOutcome{Success: true, Output: next}

	case strings.HasPrefix(a.FieldPath, toolInputPrefix):
		key := strings.TrimPrefix(a.FieldPath, toolInputPrefix)
		if key == "" {
			return accumulate.ActionOutcome{Success: false, Error: "modify: empty tool_input key"}
		}
		if ev.ToolInput == nil {
			ev.ToolInput = make(map[string]event.Value)
		}
		next, err := applyValueOp(ev.ToolInput[key], a)
		if err != nil {
			return accumulate.ActionOutcome{Success: false, Error: err.Error()}
		}
		ev.ToolInput[key] = next
		return accumulate.ActionOutcome{Success: true, Output: next}

	case strings.HasPrefix(a.FieldPath, toolResponsePrefix):
		key := strings.TrimPrefix(a.FieldPath, toolResponsePrefix)
		if key == "" {
			return accumulate.ActionOutcome{Success: false, Error: "modify: empty tool_response key"}
		}
		if ev.ToolResponse == nil {
			ev.ToolResponse = make(map[string]event.Value)
		}
		next, err := applyValueOp(ev.ToolResponse[key], a)
		if err != nil {
			return accumulate.ActionOutcome{Success: false, Error: err.Error()}
		}
		ev.ToolResponse[key] = next
		return accumulate.ActionOutcome{Success: true, Output: next}

	default:
		return accumulate.ActionOutcome{Success: false, Error: fmt.Sprintf("modify: field %q is not writable", a.FieldPath)}
	}
}

func decodeActionValue(a rule.Action) (event.Value, error) {
	if len(a.Value) == 0 {
		return nil, nil
	}
	var raw any
	if err := json.Unmarshal(a.Value, &raw); err != nil {
		return nil, fmt.Errorf("modify: decode value: %w", err)
	}
	return event.FromJSON(raw), nil
}

// applyStringOp implements the four ops against a string-typed field
// (prompt, custom_instructions). Replace performs a regex substitution
// using Pattern, the same way a malformed =~ pattern in the condition
// language fails the rule rather than panicking.
func applyStringOp(current string, a rule.Action) (string, error) {
	val, err := decodeActionValue(a)
	if err != nil {
		return "", err
	}
	str, _ := val.(string)

	switch a.Op {
	case rule.OpSet:
		return str, nil
	case rule.OpAppend:
		return current + str, nil
	case rule.OpPrepend:
		return str + current, nil
	case rule.OpReplace:
		if a.Pattern == "" {
			return "", fmt.Errorf("modify: replace requires a pattern")
		}
		re, err := regexp.Compile(a.Pattern)
		if err != nil {
			return "", fmt.Errorf("modify: invalid replace pattern: %w", err)
		}
		return re.ReplaceAllString(current, str), nil
	default:
		return "", fmt.Errorf("modify: unknown op %q", a.Op)
	}
}

// applyValueOp implements the four ops against an arbitrary tool_input or
// tool_response entry. Append/prepend are only meaningful for strings and
// lists; anything else falls back to set semantics, on the assumption that
// a rule author targeting e.g. a bool or number field meant "replace".
func applyValueOp(current event.Value, a rule.Action) (event.Value, error) {
	val, err := decodeActionValue(a)
	if err != nil {
		return nil, err
	}

	switch a.Op {
	case rule.OpSet:
		return val, nil
	case rule.OpAppend:
		switch cur := current.(type) {
		case string:
			s, _ := val.(string)
			return cur + s, nil
		case []event.Value:
			return append(append([]event.Value{}, cur...), val), nil
		default:
			return val, nil
		}
	case rule.OpPrepend:
		switch cur := current.(type) {
		case string:
			s, _ := val.(string)
			return s + cur, nil
		case []event.Value:
			return append([]event.Value{val}, cur...), nil
		default:
			return val, nil
		}
	case rule.OpReplace:
		if a.Pattern == "" {
			return nil, fmt.Errorf("modify: replace requires a pattern")
		}
		s, ok := current.(string)
		if !ok {
			return nil, fmt.Errorf("modify: replace only applies to string-valued fields")
		}
		re, err := regexp.Compile(a.Pattern)
		if err != nil {
			return nil, fmt.Errorf("modify: invalid replace pattern: %w", err)
		}
		r, _ := val.(string)
		return re.ReplaceAllString(s, r), nil
	default:
		return nil, fmt.Errorf("modify: unknown op %q", a.Op)
	}
}
