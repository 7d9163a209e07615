package runner

// WireResult is the host-facing JSON shape a Decision serializes to (§6):
// a top-level continue/decision/reason trio plus a nested
// hookSpecificOutput block carrying the permission verdict and any text
// the engine wants fed back to the agent.
type WireResult struct {
	Continue bool   `json:"continue"`
	Decision string `json:"decision,omitempty"`
	Reason   string `json:"reason,omitempty"`

	HookSpecificOutput *WireHookOutput `json:"hookSpecificOutput,omitempty"`
}

// WireHookOutput carries the permission-flavored fields the host contract
// groups separately from the top-level continue/decision pair.
type WireHookOutput struct {
	PermissionDecision       string `json:"permissionDecision,omitempty"`
	PermissionDecisionReason string `json:"permissionDecisionReason,omitempty"`
	AdditionalContext        string `json:"additionalContext,omitempty"`
}

// ToWire renders a Decision onto the external contract. "decision"/"reason"
// carry the block outcome; permission fields are only populated when a
// rule actually resolved a PermissionRequest — a no-op invocation sends
// hookSpecificOutput only if there's an additional_context to deliver.
func (d *Decision) ToWire() WireResult {
	w := WireResult{Continue: d.Continue}

	if d.Block {
		w.Decision = "block"
		w.Reason = d.BlockReason
	}

	hook := &WireHookOutput{AdditionalContext: d.AdditionalContext}
	if d.PermissionDecision != "" {
		hook.PermissionDecision = string(d.PermissionDecision)
		hook.PermissionDecisionReason = d.PermissionReason
	}
	if hook.PermissionDecision != "" || hook.AdditionalContext != "" {
		w.HookSpecificOutput = hook
	}

	return w
}

// ExitCode maps a Decision onto the host's process exit-code convention:
// 0 for a clean pass-through, 2 for a block (the host treats this as
// "stop and show the agent the reason"), 1 for anything else that
// prevented a clean decision (reserved for the CLI's own error path, not
// produced here).
func (d *Decision) ExitCode() int {
	if d.Block {
		return 2
	}
	return 0
}
