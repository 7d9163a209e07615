package match

import (
	"testing"

	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func evSet(kinds ...event.Kind) map[event.Kind]struct{} {
	m := make(map[event.Kind]struct{}, len(kinds))
	for _, k := range kinds {
		m[k] = struct{}{}
	}
	return m
}

func TestMatch_PriorityOrderingWithStableTiebreak(t *testing.T) {
	rules := []*rule.Rule{
		{ID: "low-priority", Events: evSet(event.SessionStart), Priority: rule.PriorityLow, Enabled: true, Result: rule.ResultOK},
		{ID: "high-priority", Events: evSet(event.SessionStart), Priority: rule.PriorityHigh, Enabled: true, Result: rule.ResultOK},
	}
	ev := &event.Event{Kind: event.SessionStart}

	matched := Match(rules, ev)
	require.Len(t, matched, 2)
	assert.Equal(t, "high-priority", matched[0].Rule.ID)
	assert.Equal(t, "low-priority", matched[1].Rule.ID)
	assert.Equal(t, 0, matched[0].MatchOrder)
	assert.Equal(t, 1, matched[1].MatchOrder)
}

func TestMatch_DisabledRuleExcluded(t *testing.T) {
	rules := []*rule.Rule{
		{ID: "off", Events: evSet(event.SessionStart), Priority: rule.PriorityHigh, Enabled: false},
	}
	assert.Empty(t, Match(rules, &event.Event{Kind: event.SessionStart}))
}

func TestMatch_EventKindMustApplyUnlessAll(t *testing.T) {
	rules := []*rule.Rule{
		{ID: "wrong-kind", Events: evSet(event.Stop), Priority: rule.PriorityMedium, Enabled: true},
		{ID: "all-kinds", Events: evSet(event.All), Priority: rule.PriorityMedium, Enabled: true},
	}
	matched := Match(rules, &event.Event{Kind: event.SessionStart})
	require.Len(t, matched, 1)
	assert.Equal(t, "all-kinds", matched[0].Rule.ID)
}

func TestMatch_ConditionFiltersRules(t *testing.T) {
	rules := []*rule.Rule{
		{ID: "bash-only", Events: evSet(event.PreToolUse), Condition: `tool_name == "Bash"`, Priority: rule.PriorityMedium, Enabled: true},
	}
	matched := Match(rules, &event.Event{Kind: event.PreToolUse, ToolName: "Edit"})
	assert.Empty(t, matched)

	matched = Match(rules, &event.Event{Kind: event.PreToolUse, ToolName: "Bash"})
	require.Len(t, matched, 1)
}

func TestMatch_InvalidConditionExcludesRule(t *testing.T) {
	rules := []*rule.Rule{
		{ID: "bad-condition", Events: evSet(event.PreToolUse), Condition: `tool_name === "Bash"`, Priority: rule.PriorityMedium, Enabled: true},
	}
	matched := Match(rules, &event.Event{Kind: event.PreToolUse, ToolName: "Bash"})
	assert.Empty(t, matched)
}

func TestMatch_EmptyRuleSetYieldsEmptyMatch(t *testing.T) {
	assert.Empty(t, Match(nil, &event.Event{Kind: event.SessionStart}))
}

func TestMatch_EmptyConditionAlwaysMatchesGivenEnablementAndKind(t *testing.T) {
	rules := []*rule.Rule{
		{ID: "always", Events: evSet(event.SessionStart), Priority: rule.PriorityMedium, Enabled: true},
	}
	matched := Match(rules, &event.Event{Kind: event.SessionStart})
	require.Len(t, matched, 1)
}

func TestMatch_DeterministicAcrossRuns(t *testing.T) {
	rules := []*rule.Rule{
		{ID: "a", Events: evSet(event.All), Priority: rule.PriorityMedium, Enabled: true},
		{ID: "b", Events: evSet(event.All), Priority: rule.PriorityHigh, Enabled: true},
		{ID: "c", Events: evSet(event.All), Priority: rule.PriorityCritical, Enabled: true},
	}
	ev := &event.Event{Kind: event.Stop}

	first := Match(rules, ev)
	second := Match(rules, ev)
	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Rule.ID, second[i].Rule.ID)
	}
}
