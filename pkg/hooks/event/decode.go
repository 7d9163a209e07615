package event

import "encoding/json"

// knownWireKeys lists every top-level key FromWireJSON maps onto a named
// Event field. Anything else in the payload lands in Extra instead of
// being silently dropped, so a host-specific field a condition wants to
// address still resolves via Field's Extra fallback.
var knownWireKeys = map[string]bool{
	"hook_event_name":     true,
	"session_id":          true,
	"transcript_path":     true,
	"cwd":                 true,
	"permission_mode":     true,
	"tool_name":           true,
	"tool_input":          true,
	"tool_response":       true,
	"tool_use_id":         true,
	"prompt":              true,
	"message":              true,
	"notification_kind":   true,
	"source":              true,
	"stop_hook_active":    true,
	"trigger":             true,
	"custom_instructions": true,
}

// FromWireJSON decodes the host's JSON event payload (§6) into an Event.
// An unrecognized hook_event_name is accepted as-is — the matcher simply
// never selects a rule for it — rather than treated as an error, since a
// newer host talking to an older engine build should degrade gracefully.
func FromWireJSON(raw []byte) (*Event, error) {
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, err
	}

	ev := &Event{
		Kind:                Kind(stringField(m, "hook_event_name")),
		SessionID:           stringField(m, "session_id"),
		TranscriptPath:      stringField(m, "transcript_path"),
		Cwd:                 stringField(m, "cwd"),
		PermissionMode:      PermissionMode(stringField(m, "permission_mode")),
		ToolName:            stringField(m, "tool_name"),
		ToolUseID:           stringField(m, "tool_use_id"),
		Prompt:              stringField(m, "prompt"),
		NotificationMessage: stringField(m, "message"),
		NotificationKind:    stringField(m, "notification_kind"),
		StartSource:         StartSource(stringField(m, "source")),
		CompactionTrigger:   CompactionTrigger(stringField(m, "trigger")),
		CustomInstructions:  stringField(m, "custom_instructions"),
	}

	if v, ok := m["stop_hook_active"].(bool); ok {
		ev.StopHookActive = v
	}
	if v, ok := m["tool_input"]; ok {
		ev.ToolInput = ToStringMap(v)
	}
	if v, ok := m["tool_response"]; ok {
		ev.ToolResponse = ToStringMap(v)
	}

	for k, v := range m {
		if knownWireKeys[k] {
			continue
		}
		if ev.Extra == nil {
			ev.Extra = make(map[string]Value)
		}
		ev.Extra[k] = FromJSON(v)
	}

	return ev, nil
}

func stringField(m map[string]any, key string) string {
	s, _ := m[key].(string)
	return s
}
