package action

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"github.com/agentrules/hookctl/pkg/constants"
	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
)

// shellOutput is the JSON object a Shell action's stdout may contain;
// unrecognized keys are ignored, and a non-object or unparseable stdout
// simply contributes nothing beyond the outcome itself.
type shellOutput struct {
	Deny          *bool  `json:"deny"`
	DenyMessage   string `json:"deny_message"`
	WarnMessage   string `json:"warn_message"`
	InjectContent string `json:"inject_content"`
	Allow         *bool  `json:"allow"`
}

func (d *Dispatcher) runShell(ctx *Context, r *rule.Rule, a rule.Action, acc *accumulate.RuleAccumulator) accumulate.ActionOutcome {
	timeoutMs := a.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = constants.DefaultShellTimeoutMillis
	}

	runCtx, cancel := context.WithTimeout(ctx.Context, time.Duration(timeoutMs)*time.Millisecond)
	defer cancel()

	var cmd *exec.Cmd
	if a.Script != "" {
		cmd = exec.CommandContext(runCtx, "sh", "-c", a.Script)
	} else {
		cmd = exec.CommandContext(runCtx, "sh", "-c", a.Command)
	}
	if ctx.Cwd != "" {
		cmd.Dir = ctx.Cwd
	}
	cmd.Env = os.Environ()

	payload, err := json.Marshal(eventToWire(ctx.Event))
	if err != nil {
		return accumulate.ActionOutcome{Success: false, Error: fmt.Sprintf("encode event for shell stdin: %v", err)}
	}
	cmd.Stdin = bytes.NewReader(payload)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &boundedWriter{w: &stdout, limit: constants.MaxShellOutputBytes}
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	if runCtx.Err() == context.DeadlineExceeded {
		return accumulate.ActionOutcome{Success: false, Error: fmt.Sprintf("shell action exceeded %dms timeout", timeoutMs)}
	}
	if runErr != nil {
		return accumulate.ActionOutcome{Success: false, Error: fmt.Sprintf("shell action failed: %v: %s", runErr, stderr.String())}
	}

	applyShellOutput(stdout.Bytes(), acc)
	return accumulate.ActionOutcome{Success: true, Output: stdout.String()}
}

// applyShellOutput parses stdout as the shellOutput contract and folds
// recognized keys into the rule accumulator, as if the corresponding
// structured actions had run.
func applyShellOutput(raw []byte, acc *accumulate.RuleAccumulator) {
	var out shellOutput
	if err := json.Unmarshal(raw, &out); err != nil {
		return
	}
	if out.Deny != nil && *out.Deny {
		acc.AddBlock(out.DenyMessage, false)
	}
	if out.WarnMessage != "" {
		acc.AddWarning(out.WarnMessage)
	}
	if out.InjectContent != "" {
		acc.AddInjection(accumulate.TagContext, out.InjectContent)
	}
	if out.Allow != nil && *out.Allow {
		acc.SetPermission(accumulate.PermissionAllow, "")
	}
}

// eventToWire renders the event's named fields back to the host's JSON
// shape so a Shell action sees the payload the engine was invoked with.
// Keys held in Extra (unrecognized wire keys and ambient context such as
// the git snapshot) are not included.
func eventToWire(ev *event.Event) map[string]any {
	m := map[string]any{
		"hook_event_name": string(ev.Kind),
		"session_id":      ev.SessionID,
		"transcript_path": ev.TranscriptPath,
		"cwd":             ev.Cwd,
		"permission_mode": string(ev.PermissionMode),
	}
	if ev.ToolName != "" {
		m["tool_name"] = ev.ToolName
	}
	if ev.ToolInput != nil {
		m["tool_input"] = ev.ToolInput
	}
	if ev.ToolResponse != nil {
		m["tool_response"] = ev.ToolResponse
	}
	if ev.ToolUseID != "" {
		m["tool_use_id"] = ev.ToolUseID
	}
	if ev.Prompt != "" {
		m["prompt"] = ev.Prompt
	}
	if ev.NotificationMessage != "" {
		m["message"] = ev.NotificationMessage
	}
	if ev.NotificationKind != "" {
		m["notification_kind"] = ev.NotificationKind
	}
	if ev.StartSource != "" {
		m["source"] = string(ev.StartSource)
	}
	if ev.StopHookActive {
		m["stop_hook_active"] = true
	}
	if ev.CompactionTrigger != "" {
		m["trigger"] = string(ev.CompactionTrigger)
	}
	if ev.CustomInstructions != "" {
		m["custom_instructions"] = ev.CustomInstructions
	}
	return m
}

// boundedWriter caps how many bytes it will accept, silently discarding
// the rest — this bounds Shell stdout without requiring a separate drain
// goroutine or pipe.
type boundedWriter struct {
	w     io.Writer
	limit int
	n     int
}

func (b *boundedWriter) Write(p []byte) (int, error) {
	if b.n >= b.limit {
		return len(p), nil
	}
	remaining := b.limit - b.n
	if len(p) > remaining {
		n, err := b.w.Write(p[:remaining])
		b.n += n
		return len(p), err
	}
	n, err := b.w.Write(p)
	b.n += n
	return n, err
}
