// Package event defines the tagged lifecycle-event variants the hook engine
// matches rules against, and the loosely-typed payload accessors the
// condition evaluator walks.
package event

import "fmt"

// Kind identifies which lifecycle event a payload carries.
type Kind string

const (
	PreToolUse        Kind = "PreToolUse"
	PostToolUse       Kind = "PostToolUse"
	UserPromptSubmit  Kind = "UserPromptSubmit"
	PermissionRequest Kind = "PermissionRequest"
	Notification      Kind = "Notification"
	SessionStart      Kind = "SessionStart"
	SessionEnd        Kind = "SessionEnd"
	Stop              Kind = "Stop"
	SubagentStop      Kind = "SubagentStop"
	PreCompaction     Kind = "PreCompaction"

	// All is the sentinel event-kind rules use to match every variant.
	All Kind = "all"
)

// PermissionMode mirrors the host's current permission posture.
type PermissionMode string

const (
	ModeDefault      PermissionMode = "default"
	ModePlan         PermissionMode = "plan"
	ModeAcceptEdits  PermissionMode = "acceptEdits"
	ModeBypassPerms  PermissionMode = "bypassPermissions"
	ModeUnspecified  PermissionMode = ""
)

// StartSource records why a SessionStart event fired.
type StartSource string

const (
	StartupSource StartSource = "startup"
	ResumeSource  StartSource = "resume"
	ClearSource   StartSource = "clear"
	CompactSource StartSource = "compact"
)

// CompactionTrigger records why a PreCompaction event fired.
type CompactionTrigger string

const (
	ManualCompaction CompactionTrigger = "manual"
	AutoCompaction   CompactionTrigger = "auto"
)

// Value is a loosely-typed JSON-like value: string, float64, bool, nil,
// []Value, or map[string]Value. It backs tool_input/tool_response and any
// other free-form mapping the condition evaluator must walk without
// reflection.
type Value any

// Event is the tagged lifecycle occurrence the matcher and condition
// evaluator operate over; neither of them mutates it. Modify actions write
// their whitelisted fields in place, and the runner adds ambient entries
// to Extra before matching. Exactly one of the variant-specific field
// groups is populated, selected by Kind.
type Event struct {
	Kind Kind

	SessionID      string
	TranscriptPath string
	Cwd            string
	PermissionMode PermissionMode

	// PreToolUse / PostToolUse / PermissionRequest
	ToolName     string
	ToolInput    map[string]Value
	ToolResponse map[string]Value
	ToolUseID    string

	// UserPromptSubmit
	Prompt string

	// Notification
	NotificationMessage string
	NotificationKind    string

	// SessionStart
	StartSource StartSource

	// Stop / SubagentStop
	StopHookActive bool

	// PreCompaction
	CompactionTrigger     CompactionTrigger
	CustomInstructions    string

	// Extra carries ambient context the runner attaches (e.g. a VCS
	// snapshot) that conditions may address via "git.branch" style paths.
	Extra map[string]Value
}

// Field resolves a top-level dotted/bracketed path segment against the
// event's known attributes, falling back to Extra for everything else
// (keys inside ToolInput and ToolResponse are reached through the
// tool_input and tool_response names). It returns (nil, false) for an unknown field,
// which the condition evaluator treats as a logical null.
func (e *Event) Field(name string) (Value, bool) {
	switch name {
	case "hook_event_name":
		return string(e.Kind), true
	case "session_id":
		return e.SessionID, true
	case "transcript_path":
		return e.TranscriptPath, true
	case "cwd":
		return e.Cwd, true
	case "permission_mode":
		return string(e.PermissionMode), true
	case "tool_name":
		return e.ToolName, true
	case "tool_input":
		return valueFromStringMap(e.ToolInput), e.ToolInput != nil
	case "tool_response":
		return valueFromStringMap(e.ToolResponse), e.ToolResponse != nil
	case "tool_use_id":
		return e.ToolUseID, true
	case "prompt":
		return e.Prompt, true
	case "message":
		return e.NotificationMessage, true
	case "notification_kind":
		return e.NotificationKind, true
	case "source":
		return string(e.StartSource), true
	case "stop_hook_active":
		return e.StopHookActive, true
	case "trigger":
		return string(e.CompactionTrigger), true
	case "custom_instructions":
		return e.CustomInstructions, true
	default:
		if e.Extra != nil {
			if v, ok := e.Extra[name]; ok {
				return v, true
			}
		}
		return nil, false
	}
}

func valueFromStringMap(m map[string]Value) Value {
	if m == nil {
		return nil
	}
	out := make(map[string]Value, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// String renders the event for diagnostics; it never includes tool_input
// values verbatim to avoid leaking large payloads into logs.
func (e *Event) String() string {
	return fmt.Sprintf("%s(session=%s tool=%s)", e.Kind, e.SessionID, e.ToolName)
}
