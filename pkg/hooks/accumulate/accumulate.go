// Package accumulate implements the engine's result accumulator: the only
// mutable object in a single engine invocation, which folds per-rule
// action outcomes into one execution result with block/warn/inject
// semantics (§4.5).
package accumulate

import (
	"strings"
	"time"
)

// InjectionTag distinguishes advisory suggestions from context meant to be
// read back by the agent verbatim.
type InjectionTag string

const (
	TagAdvisory InjectionTag = "advisory"
	TagContext  InjectionTag = "context"
)

// Injection is one piece of text a rule asked to surface to the agent.
type Injection struct {
	Tag     InjectionTag
	Content string
}

// PermissionDecision mirrors the three-way outcome a PermissionRequest
// event can resolve to.
type PermissionDecision string

const (
	PermissionUnset PermissionDecision = ""
	PermissionAllow PermissionDecision = "allow"
	PermissionDeny  PermissionDecision = "deny"
	PermissionAsk   PermissionDecision = "ask"
)

// ActionOutcome is the result of running a single action.
type ActionOutcome struct {
	Success  bool
	Output   any
	Error    string
	Duration time.Duration
}

// RuleStatus is a rule's aggregate status after all its actions ran.
type RuleStatus string

const (
	RuleSucceeded RuleStatus = "succeeded"
	RuleBlocked   RuleStatus = "blocked"
	RuleWarned    RuleStatus = "warned"
	RuleFailed    RuleStatus = "failed"
)

// RuleResult is the per-rule summary folded into the execution result.
type RuleResult struct {
	RuleID   string
	Actions  []ActionOutcome
	Status   RuleStatus
}

// RuleAccumulator collects one rule's action contributions before they are
// promoted into the execution-level Accumulator. It exists so that a
// later rule never observes a half-applied earlier rule's state mid-fold —
// only Accumulator (post-Promote) is visible to subsequent rules.
type RuleAccumulator struct {
	Blocked            bool
	Interrupted        bool
	BlockReasons       []string
	Warnings           []string
	Injections         []Injection
	PermissionDecision PermissionDecision
	PermissionReason   string
	Actions            []ActionOutcome
}

// AddBlock records a deny contribution. interrupt mirrors the Deny
// action's own interrupt flag (§4.4): when true, it forces the
// enclosing execution to a terminating disposition once the rule
// finishes, regardless of the rule's declared result.
func (a *RuleAccumulator) AddBlock(message string, interrupt bool) {
	a.Blocked = true
	if interrupt {
		a.Interrupted = true
	}
	if message != "" {
		a.BlockReasons = append(a.BlockReasons, message)
	}
}

// AddWarning records a warn contribution.
func (a *RuleAccumulator) AddWarning(message string) {
	if message != "" {
		a.Warnings = append(a.Warnings, message)
	}
}

// AddInjection records a suggest/inject contribution.
func (a *RuleAccumulator) AddInjection(tag InjectionTag, content string) {
	if content != "" {
		a.Injections = append(a.Injections, Injection{Tag: tag, Content: content})
	}
}

// SetPermission records an allow/deny decision for a PermissionRequest
// event. Later calls within the same rule overwrite earlier ones; cross-
// rule precedence (deny beats allow) is resolved at Promote time.
func (a *RuleAccumulator) SetPermission(decision PermissionDecision, reason string) {
	a.PermissionDecision = decision
	a.PermissionReason = reason
}

// Status computes the rule's aggregate status from its contributions: any
// deny makes it blocked, any warning without a block makes it warned,
// otherwise succeeded — unless every action in the rule failed, in which
// case it's failed.
func (a *RuleAccumulator) Status() RuleStatus {
	if len(a.Actions) > 0 {
		allFailed := true
		for _, o := range a.Actions {
			if o.Success {
				allFailed = false
				break
			}
		}
		if allFailed {
			return RuleFailed
		}
	}
	if a.Blocked {
		return RuleBlocked
	}
	if len(a.Warnings) > 0 {
		return RuleWarned
	}
	return RuleSucceeded
}

// Accumulator is the execution-scoped accumulator: the single mutable
// object that lives for the duration of one engine invocation.
type Accumulator struct {
	ShouldBlock        bool
	BlockReasons       []string
	Warnings           []string
	Injections         []Injection
	PermissionDecision PermissionDecision
	PermissionReason   string
	RuleResults        []RuleResult
	TerminatedEarly    bool
}

// New returns a fresh, empty execution accumulator.
func New() *Accumulator {
	return &Accumulator{}
}

// Promote folds a completed rule's contributions into the execution
// accumulator (§4.5 step 2): warnings and injections append; block state
// ORs; a later permission decision overrides an earlier one except that
// deny always wins over allow within a single execution.
func (acc *Accumulator) Promote(ruleID string, ra *RuleAccumulator) RuleResult {
	acc.ShouldBlock = acc.ShouldBlock || ra.Blocked
	acc.BlockReasons = append(acc.BlockReasons, ra.BlockReasons...)
	acc.Warnings = append(acc.Warnings, ra.Warnings...)
	acc.Injections = append(acc.Injections, ra.Injections...)

	if ra.PermissionDecision != PermissionUnset {
		if acc.PermissionDecision == PermissionDeny {
			// deny is sticky: nothing overrides it within one execution.
		} else {
			acc.PermissionDecision = ra.PermissionDecision
			acc.PermissionReason = ra.PermissionReason
		}
	}

	result := RuleResult{
		RuleID:  ruleID,
		Actions: ra.Actions,
		Status:  ra.Status(),
	}
	acc.RuleResults = append(acc.RuleResults, result)
	return result
}

// BlockReason joins the collected block reasons into the single string the
// host-facing result carries, or "" if the execution never blocked.
func (acc *Accumulator) BlockReason() string {
	if len(acc.BlockReasons) == 0 {
		return ""
	}
	return strings.Join(acc.BlockReasons, "\n")
}

// AdditionalContext joins every context-tagged injection, in order, into
// the single string returned under additionalContext. Advisory injections
// are excluded — they are surfaced separately as suggestions.
func (acc *Accumulator) AdditionalContext() string {
	var parts []string
	for _, inj := range acc.Injections {
		if inj.Tag == TagContext {
			parts = append(parts, inj.Content)
		}
	}
	return strings.Join(parts, "\n")
}

// Suggestions returns every advisory-tagged injection's content, in order.
func (acc *Accumulator) Suggestions() []string {
	var out []string
	for _, inj := range acc.Injections {
		if inj.Tag == TagAdvisory {
			out = append(out, inj.Content)
		}
	}
	return out
}
