package rule

import "encoding/json"

// ActionKind tags which variant an Action carries. Exactly one variant is
// populated per Action, mirroring the event model's tagged-union shape.
type ActionKind string

const (
	ActionLog       ActionKind = "log"
	ActionDeny      ActionKind = "deny"
	ActionAllow     ActionKind = "allow"
	ActionWarn      ActionKind = "warn"
	ActionSuggest   ActionKind = "suggest"
	ActionInject    ActionKind = "inject"
	ActionShell     ActionKind = "shell"
	ActionPython    ActionKind = "python"
	ActionModify    ActionKind = "modify"
	ActionTransform ActionKind = "transform"
)

// ModifyOp enumerates the mutations a Modify action may apply to an event
// field.
type ModifyOp string

const (
	OpSet     ModifyOp = "set"
	OpAppend  ModifyOp = "append"
	OpPrepend ModifyOp = "prepend"
	OpReplace ModifyOp = "replace"
)

// Action is a single declared effect within a rule, in the order it will
// run. Only the fields relevant to Kind are populated; the rest are zero
// values and ignored by the dispatcher.
type Action struct {
	Kind ActionKind

	// Log
	Level string

	// Deny / Allow / Warn
	Message   string
	Interrupt bool

	// Suggest / Inject
	Content string

	// Shell
	Command   string
	Script    string
	TimeoutMs int

	// Python / Transform
	Entrypoint string

	// Modify
	FieldPath string
	Op        ModifyOp
	Value     json.RawMessage
	Pattern   string
}

// HasTimeout reports whether the action declared an explicit timeout,
// distinguishing "use the default" from "zero means run forever" — the
// latter is never valid for Shell actions.
func (a Action) HasTimeout() bool {
	return a.TimeoutMs > 0
}
