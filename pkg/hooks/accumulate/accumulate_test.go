package accumulate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPromote_BlockIsSticky(t *testing.T) {
	acc := New()

	blocked := &RuleAccumulator{}
	blocked.AddBlock("first deny", false)
	acc.Promote("r1", blocked)

	clean := &RuleAccumulator{}
	acc.Promote("r2", clean)

	assert.True(t, acc.ShouldBlock)
	assert.Equal(t, "first deny", acc.BlockReason())
}

func TestPromote_DenyWinsOverLaterAllow(t *testing.T) {
	acc := New()

	deny := &RuleAccumulator{}
	deny.SetPermission(PermissionDeny, "no")
	acc.Promote("r1", deny)

	allow := &RuleAccumulator{}
	allow.SetPermission(PermissionAllow, "yes")
	acc.Promote("r2", allow)

	assert.Equal(t, PermissionDeny, acc.PermissionDecision)
	assert.Equal(t, "no", acc.PermissionReason)
}

func TestPromote_LaterNonDenyOverridesEarlier(t *testing.T) {
	acc := New()

	ask := &RuleAccumulator{}
	ask.SetPermission(PermissionAsk, "check")
	acc.Promote("r1", ask)

	allow := &RuleAccumulator{}
	allow.SetPermission(PermissionAllow, "ok now")
	acc.Promote("r2", allow)

	assert.Equal(t, PermissionAllow, acc.PermissionDecision)
}

func TestRuleAccumulator_Status(t *testing.T) {
	logOnly := &RuleAccumulator{Actions: []ActionOutcome{{Success: true}}}
	assert.Equal(t, RuleSucceeded, logOnly.Status())

	warned := &RuleAccumulator{Actions: []ActionOutcome{{Success: true}}}
	warned.AddWarning("careful")
	assert.Equal(t, RuleWarned, warned.Status())

	blocked := &RuleAccumulator{Actions: []ActionOutcome{{Success: true}}}
	blocked.AddBlock("no", false)
	assert.Equal(t, RuleBlocked, blocked.Status())

	failed := &RuleAccumulator{Actions: []ActionOutcome{{Success: false}, {Success: false}}}
	assert.Equal(t, RuleFailed, failed.Status())
}

func TestAdditionalContext_JoinsOnlyContextTagged(t *testing.T) {
	acc := New()
	ra := &RuleAccumulator{}
	ra.AddInjection(TagContext, "PROJECT:X")
	ra.AddInjection(TagAdvisory, "consider running tests")
	acc.Promote("r1", ra)

	assert.Equal(t, "PROJECT:X", acc.AdditionalContext())
	assert.Equal(t, []string{"consider running tests"}, acc.Suggestions())
}

func TestAddBlock_InterruptFlagIsRecordedSeparatelyFromBlocked(t *testing.T) {
	quiet := &RuleAccumulator{}
	quiet.AddBlock("blocked but not interrupting", false)
	assert.True(t, quiet.Blocked)
	assert.False(t, quiet.Interrupted)

	loud := &RuleAccumulator{}
	loud.AddBlock("blocked and interrupting", true)
	assert.True(t, loud.Blocked)
	assert.True(t, loud.Interrupted)
}

func TestEmptyAccumulator_HasNoBlockNoWarningsNoInjections(t *testing.T) {
	acc := New()
	assert.False(t, acc.ShouldBlock)
	assert.Empty(t, acc.Warnings)
	assert.Equal(t, "", acc.AdditionalContext())
	assert.Equal(t, "", acc.BlockReason())
}
