package config

import (
	"encoding/json"
	"fmt"

	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
)

// eventAliases maps the wire names a rule's `events` array may use (snake
// case, matching the host's hook_event_name casing conventions seen in
// practice) to the engine's Kind constants.
var eventAliases = map[string]event.Kind{
	"pre_tool_use":        event.PreToolUse,
	"post_tool_use":       event.PostToolUse,
	"user_prompt_submit":  event.UserPromptSubmit,
	"permission_request":  event.PermissionRequest,
	"notification":        event.Notification,
	"session_start":       event.SessionStart,
	"session_end":         event.SessionEnd,
	"stop":                event.Stop,
	"subagent_stop":       event.SubagentStop,
	"pre_compaction":      event.PreCompaction,
	"all":                 event.All,
}

// ruleValidationError is returned by decodeRule for a malformed rule
// declaration; the loader logs it and drops the rule (fail-open), per the
// engine's rule-validation error taxonomy.
type ruleValidationError struct {
	ruleID string
	reason string
}

func (e *ruleValidationError) Error() string {
	id := e.ruleID
	if id == "" {
		id = "<unknown>"
	}
	return fmt.Sprintf("rule %s: %s", id, e.reason)
}

// decodeRule converts one [[hooks.rules]] / [[rules]] table entry into a
// validated rule.Rule. It never panics on malformed input — every
// unexpected shape becomes a ruleValidationError the caller can log and
// skip.
func decodeRule(raw map[string]any, sourceFile string) (*rule.Rule, error) {
	id, _ := raw["id"].(string)
	if id == "" {
		return nil, &ruleValidationError{reason: "missing or empty id"}
	}

	events, err := decodeEvents(raw["events"])
	if err != nil {
		return nil, &ruleValidationError{ruleID: id, reason: err.Error()}
	}
	if len(events) == 0 {
		return nil, &ruleValidationError{ruleID: id, reason: "events set must be non-empty"}
	}

	priority := rule.Priority(stringOr(raw["priority"], string(rule.PriorityMedium)))
	switch priority {
	case rule.PriorityCritical, rule.PriorityHigh, rule.PriorityMedium, rule.PriorityLow:
	default:
		return nil, &ruleValidationError{ruleID: id, reason: fmt.Sprintf("invalid priority %q", priority)}
	}

	result := rule.Result(stringOr(raw["result"], string(rule.ResultOK)))
	switch result {
	case rule.ResultOK, rule.ResultWarn, rule.ResultBlock:
	default:
		return nil, &ruleValidationError{ruleID: id, reason: fmt.Sprintf("invalid result %q", result)}
	}

	enabled := true
	if v, ok := raw["enabled"].(bool); ok {
		enabled = v
	}

	terminal, _ := raw["terminal"].(bool)
	condition := stringOr(raw["condition"], "")
	description := stringOr(raw["description"], "")

	actions, err := decodeActions(raw["actions"])
	if err != nil {
		return nil, &ruleValidationError{ruleID: id, reason: err.Error()}
	}

	return &rule.Rule{
		ID:          id,
		Events:      events,
		Condition:   condition,
		Priority:    priority,
		Enabled:     enabled,
		Result:      result,
		Terminal:    terminal,
		Description: description,
		Actions:     actions,
		SourceFile:  sourceFile,
	}, nil
}

func decodeEvents(raw any) (map[event.Kind]struct{}, error) {
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("events must be an array of strings")
	}
	out := make(map[event.Kind]struct{}, len(list))
	for _, item := range list {
		s, ok := item.(string)
		if !ok {
			return nil, fmt.Errorf("events entries must be strings")
		}
		kind, ok := eventAliases[s]
		if !ok {
			return nil, fmt.Errorf("unknown event kind %q", s)
		}
		out[kind] = struct{}{}
	}
	return out, nil
}

func decodeActions(raw any) ([]rule.Action, error) {
	if raw == nil {
		return nil, nil
	}
	list, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("actions must be an array of tables")
	}
	out := make([]rule.Action, 0, len(list))
	for i, item := range list {
		m, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("action %d is not a table", i)
		}
		a, err := decodeAction(m)
		if err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeAction(m map[string]any) (rule.Action, error) {
	kind, _ := m["kind"].(string)
	switch rule.ActionKind(kind) {
	case rule.ActionLog:
		return rule.Action{Kind: rule.ActionLog, Level: stringOr(m["level"], "info")}, nil
	case rule.ActionDeny:
		interrupt, _ := m["interrupt"].(bool)
		return rule.Action{Kind: rule.ActionDeny, Message: stringOr(m["message"], ""), Interrupt: interrupt}, nil
	case rule.ActionAllow:
		return rule.Action{Kind: rule.ActionAllow, Message: stringOr(m["message"], "")}, nil
	case rule.ActionWarn:
		return rule.Action{Kind: rule.ActionWarn, Message: stringOr(m["message"], "")}, nil
	case rule.ActionSuggest:
		content := stringOr(m["message"], "")
		return rule.Action{Kind: rule.ActionSuggest, Content: content}, nil
	case rule.ActionInject:
		return rule.Action{Kind: rule.ActionInject, Content: stringOr(m["content"], "")}, nil
	case rule.ActionShell:
		command := stringOr(m["command"], "")
		script := stringOr(m["script"], "")
		if (command == "") == (script == "") {
			return rule.Action{}, fmt.Errorf("shell action requires exactly one of command or script")
		}
		timeout := intOr(m["timeout_ms"], 0)
		return rule.Action{Kind: rule.ActionShell, Command: command, Script: script, TimeoutMs: timeout}, nil
	case rule.ActionPython:
		entry, _ := m["entrypoint"].(string)
		if entry == "" {
			return rule.Action{}, fmt.Errorf("python action requires entrypoint")
		}
		timeout := intOr(m["timeout_ms"], 0)
		return rule.Action{Kind: rule.ActionPython, Entrypoint: entry, TimeoutMs: timeout}, nil
	case rule.ActionModify:
		path, _ := m["field_path"].(string)
		op, _ := m["op"].(string)
		if path == "" || op == "" {
			return rule.Action{}, fmt.Errorf("modify action requires field_path and op")
		}
		value, err := json.Marshal(m["value"])
		if err != nil {
			return rule.Action{}, fmt.Errorf("modify action value is not encodable: %w", err)
		}
		pattern, _ := m["pattern"].(string)
		return rule.Action{Kind: rule.ActionModify, FieldPath: path, Op: rule.ModifyOp(op), Value: value, Pattern: pattern}, nil
	case rule.ActionTransform:
		entry, _ := m["entrypoint"].(string)
		if entry == "" {
			return rule.Action{}, fmt.Errorf("transform action requires entrypoint")
		}
		return rule.Action{Kind: rule.ActionTransform, Entrypoint: entry}, nil
	default:
		return rule.Action{}, fmt.Errorf("unknown action kind %q", kind)
	}
}

func stringOr(v any, def string) string {
	if s, ok := v.(string); ok {
		return s
	}
	return def
}

func intOr(v any, def int) int {
	switch t := v.(type) {
	case int64:
		return int(t)
	case int:
		return t
	case float64:
		return int(t)
	default:
		return def
	}
}
