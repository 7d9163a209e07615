package condition

import (
	"testing"

	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustParse(t *testing.T, expr string) Node {
	t.Helper()
	n, err := Parse(expr)
	require.NoError(t, err)
	return n
}

func TestEvaluate_EmptyExpressionIsAlwaysTrue(t *testing.T) {
	ev := &event.Event{Kind: event.SessionStart}
	assert.True(t, EvaluateExpr("", ev))
}

func TestEvaluate_SimpleEquality(t *testing.T) {
	ev := &event.Event{Kind: event.PreToolUse, ToolName: "Bash"}
	assert.True(t, EvaluateExpr(`tool_name == "Bash"`, ev))
	assert.False(t, EvaluateExpr(`tool_name == "Edit"`, ev))
}

func TestEvaluate_AndOrNot(t *testing.T) {
	ev := &event.Event{Kind: event.PreToolUse, ToolName: "Bash", PermissionMode: event.ModeDefault}
	assert.True(t, EvaluateExpr(`tool_name == "Bash" and permission_mode == "default"`, ev))
	assert.True(t, EvaluateExpr(`tool_name == "Edit" or tool_name == "Bash"`, ev))
	assert.True(t, EvaluateExpr(`not tool_name == "Edit"`, ev))
	assert.False(t, EvaluateExpr(`not (tool_name == "Bash")`, ev))
}

func TestEvaluate_RegexMatch(t *testing.T) {
	ev := &event.Event{
		Kind:      event.PreToolUse,
		ToolName:  "Bash",
		ToolInput: event.ToStringMap(map[string]any{"command": "rm -rf /tmp/x"}),
	}
	assert.True(t, EvaluateExpr(`tool_input["command"] =~ "^rm "`, ev))
	assert.False(t, EvaluateExpr(`tool_input["command"] =~ "^ls "`, ev))
}

func TestEvaluate_RegexInvalidPatternIsFalse(t *testing.T) {
	ev := &event.Event{Kind: event.PreToolUse, ToolName: "Bash"}
	assert.False(t, EvaluateExpr(`tool_name =~ "("`, ev))
}

func TestEvaluate_InOperator(t *testing.T) {
	ev := &event.Event{Kind: event.PreToolUse, ToolName: "Bash"}
	assert.True(t, EvaluateExpr(`"as" in tool_name`, ev))
	assert.True(t, EvaluateExpr(`"Bash" in tool_name`, ev))
	assert.True(t, EvaluateExpr(`"zzz" not in tool_name`, ev))
}

func TestEvaluate_MissingFieldIsNullAndFalse(t *testing.T) {
	ev := &event.Event{Kind: event.SessionStart}
	assert.False(t, EvaluateExpr(`tool_name == "Bash"`, ev))
	assert.False(t, EvaluateExpr(`nonexistent_field == "x"`, ev))
}

func TestEvaluate_IncompatibleTypesAreFalse(t *testing.T) {
	ev := &event.Event{Kind: event.PreToolUse, ToolName: "Bash"}
	assert.False(t, EvaluateExpr(`tool_name == true`, ev))
	assert.False(t, EvaluateExpr(`1 == "1"`, ev))
}

func TestEvaluate_Ordering(t *testing.T) {
	ev := &event.Event{
		Kind:      event.PreToolUse,
		ToolInput: event.ToStringMap(map[string]any{"count": float64(5)}),
	}
	assert.True(t, EvaluateExpr(`tool_input["count"] > 3`, ev))
	assert.False(t, EvaluateExpr(`tool_input["count"] < 3`, ev))
}

func TestParse_InvalidOperatorFails(t *testing.T) {
	_, err := Parse(`tool_name === "Bash"`)
	require.Error(t, err)
}

func TestParse_DepthLimitRejectsPathologicalNesting(t *testing.T) {
	expr := ""
	for i := 0; i < 200; i++ {
		expr += "("
	}
	expr += "true"
	for i := 0; i < 200; i++ {
		expr += ")"
	}
	_, err := Parse(expr)
	require.Error(t, err)
}

func TestDescribe_RoundTripsReadably(t *testing.T) {
	n := mustParse(t, `tool_name == "Bash" and not permission_mode == "plan"`)
	assert.Contains(t, Describe(n), "tool_name")
}
