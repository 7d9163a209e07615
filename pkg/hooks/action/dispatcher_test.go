package action

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
)

func testContext(ev *event.Event) *Context {
	return &Context{Context: context.Background(), SessionID: "sess-1", Cwd: "/repo", Event: ev}
}

func TestDispatcher_DenyAccumulatesBlock(t *testing.T) {
	d := NewDispatcher(nil)
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{
		{Kind: rule.ActionDeny, Message: "no"},
	}}
	acc, _ := d.Run(testContext(&event.Event{Kind: event.PreToolUse}), r)
	assert.True(t, acc.Blocked)
	assert.Equal(t, []string{"no"}, acc.BlockReasons)
}

func TestDispatcher_AllowOnlyAppliesToPermissionRequest(t *testing.T) {
	d := NewDispatcher(nil)
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{{Kind: rule.ActionAllow, Message: "fine"}}}

	acc, _ := d.Run(testContext(&event.Event{Kind: event.PermissionRequest}), r)
	assert.Equal(t, accumulate.PermissionAllow, acc.PermissionDecision)

	acc2, _ := d.Run(testContext(&event.Event{Kind: event.PreToolUse}), r)
	assert.Equal(t, accumulate.PermissionUnset, acc2.PermissionDecision)
}

func TestDispatcher_SuggestAndInjectTagSeparately(t *testing.T) {
	d := NewDispatcher(nil)
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{
		{Kind: rule.ActionSuggest, Content: "consider X"},
		{Kind: rule.ActionInject, Content: "extra context"},
	}}
	acc, _ := d.Run(testContext(&event.Event{Kind: event.PreToolUse}), r)
	require.Len(t, acc.Injections, 2)
	assert.Equal(t, accumulate.TagAdvisory, acc.Injections[0].Tag)
	assert.Equal(t, accumulate.TagContext, acc.Injections[1].Tag)
}

func TestDispatcher_ModifySetsPrompt(t *testing.T) {
	d := NewDispatcher(nil)
	ev := &event.Event{Kind: event.UserPromptSubmit, Prompt: "original"}
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{
		{Kind: rule.ActionModify, FieldPath: "prompt", Op: rule.OpSet, Value: json.RawMessage(`"replaced"`)},
	}}
	_, outEv := d.Run(testContext(ev), r)
	assert.Equal(t, "replaced", outEv.Prompt)
}

func TestDispatcher_ModifyAppendsToToolInputField(t *testing.T) {
	d := NewDispatcher(nil)
	ev := &event.Event{Kind: event.PreToolUse, ToolInput: map[string]event.Value{"command": "ls"}}
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{
		{Kind: rule.ActionModify, FieldPath: "tool_input.command", Op: rule.OpAppend, Value: json.RawMessage(`" -la"`)},
	}}
	_, outEv := d.Run(testContext(ev), r)
	assert.Equal(t, "ls -la", outEv.ToolInput["command"])
}

func TestDispatcher_ModifyRejectsUnwritableField(t *testing.T) {
	d := NewDispatcher(nil)
	ev := &event.Event{Kind: event.PreToolUse, SessionID: "original"}
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{
		{Kind: rule.ActionModify, FieldPath: "session_id", Op: rule.OpSet, Value: json.RawMessage(`"spoofed"`)},
	}}
	acc, outEv := d.Run(testContext(ev), r)
	require.Len(t, acc.Actions, 1)
	assert.False(t, acc.Actions[0].Success)
	assert.Equal(t, "original", outEv.SessionID)
}

func TestDispatcher_ModifyReplaceUsesRegexNotLiteralSubstring(t *testing.T) {
	d := NewDispatcher(nil)
	ev := &event.Event{Kind: event.UserPromptSubmit, Prompt: "key sk-111 and sk-222"}
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{
		{Kind: rule.ActionModify, FieldPath: "prompt", Op: rule.OpReplace, Pattern: `sk-\d+`, Value: json.RawMessage(`"[redacted]"`)},
	}}
	acc, outEv := d.Run(testContext(ev), r)
	require.Len(t, acc.Actions, 1)
	assert.True(t, acc.Actions[0].Success)
	assert.Equal(t, "key [redacted] and [redacted]", outEv.Prompt)
}

func TestDispatcher_ModifyReplaceFailsOnInvalidPattern(t *testing.T) {
	d := NewDispatcher(nil)
	ev := &event.Event{Kind: event.UserPromptSubmit, Prompt: "hello"}
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{
		{Kind: rule.ActionModify, FieldPath: "prompt", Op: rule.OpReplace, Pattern: "(unclosed", Value: json.RawMessage(`"x"`)},
	}}
	acc, outEv := d.Run(testContext(ev), r)
	require.Len(t, acc.Actions, 1)
	assert.False(t, acc.Actions[0].Success)
	assert.Equal(t, "hello", outEv.Prompt, "the field must be left untouched when the pattern fails to compile")
}

func TestDispatcher_TransformReplacesEventForLaterActions(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterTransform("redact-secrets", func(ctx *Context, ev *event.Event) (*event.Event, error) {
		cp := *ev
		cp.Prompt = "[redacted]"
		return &cp, nil
	})
	d := NewDispatcher(registry)

	ev := &event.Event{Kind: event.UserPromptSubmit, Prompt: "my api key is sk-123"}
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{
		{Kind: rule.ActionTransform, Entrypoint: "redact-secrets"},
		{Kind: rule.ActionWarn, Message: "prompt redacted"},
	}}
	acc, outEv := d.Run(testContext(ev), r)

	assert.Equal(t, "[redacted]", outEv.Prompt)
	assert.Equal(t, "my api key is sk-123", ev.Prompt, "original event must not be mutated in place")
	require.Len(t, acc.Actions, 2)
	assert.True(t, acc.Actions[0].Success)
}

func TestDispatcher_TransformUnknownEntrypointFails(t *testing.T) {
	d := NewDispatcher(nil)
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{{Kind: rule.ActionTransform, Entrypoint: "missing"}}}
	acc, outEv := d.Run(testContext(&event.Event{Kind: event.UserPromptSubmit, Prompt: "hi"}), r)
	require.Len(t, acc.Actions, 1)
	assert.False(t, acc.Actions[0].Success)
	assert.Equal(t, "hi", outEv.Prompt)
}

func TestDispatcher_PythonEntrypointMutatesAccumulator(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterPython("flag-risky-command", func(ctx *Context, acc *accumulate.RuleAccumulator) (any, error) {
		acc.AddWarning("risky command detected")
		return nil, nil
	})
	d := NewDispatcher(registry)
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{{Kind: rule.ActionPython, Entrypoint: "flag-risky-command"}}}
	acc, _ := d.Run(testContext(&event.Event{Kind: event.PreToolUse}), r)
	assert.Equal(t, []string{"risky command detected"}, acc.Warnings)
}

func TestDispatcher_PythonEntrypointRecoversFromPanic(t *testing.T) {
	registry := NewRegistry()
	registry.RegisterPython("boom", func(ctx *Context, acc *accumulate.RuleAccumulator) (any, error) {
		panic("unexpected")
	})
	d := NewDispatcher(registry)
	r := &rule.Rule{ID: "r1", Actions: []rule.Action{{Kind: rule.ActionPython, Entrypoint: "boom"}}}
	acc, _ := d.Run(testContext(&event.Event{Kind: event.PreToolUse}), r)
	require.Len(t, acc.Actions, 1)
	assert.False(t, acc.Actions[0].Success)
	assert.Contains(t, acc.Actions[0].Error, "panicked")
}
