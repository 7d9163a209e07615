package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
)

func TestRenderResult_IncludesRuleIDAndStatus(t *testing.T) {
	results := []accumulate.RuleResult{
		{RuleID: "deny-rm-rf", Status: accumulate.RuleBlocked},
		{RuleID: "log-all", Status: accumulate.RuleSucceeded},
	}
	out := RenderResult(results, "destructive command", []string{"large diff"})

	assert.True(t, strings.Contains(out, "deny-rm-rf"))
	assert.True(t, strings.Contains(out, "blocked: destructive command"))
	assert.True(t, strings.Contains(out, "warning: large diff"))
}

func TestRenderResult_EmptyInputProducesEmptyString(t *testing.T) {
	assert.Equal(t, "", RenderResult(nil, "", nil))
}
