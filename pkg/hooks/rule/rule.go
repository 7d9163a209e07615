// Package rule defines the declarative rule record the configuration loader
// produces and the matcher/dispatcher consume. Rules are immutable once
// loaded; only the accumulator that folds their outcomes is mutable.
package rule

import "github.com/agentrules/hookctl/pkg/hooks/event"

// Priority orders rule execution within a single matched event: higher
// priorities run first, and a rule that halts the walk (terminal, declared
// result=block and actually blocked, or an interrupting deny) prevents
// anything at a lower (priority, match_order) from ever running.
type Priority string

const (
	PriorityCritical Priority = "critical"
	PriorityHigh     Priority = "high"
	PriorityMedium   Priority = "medium"
	PriorityLow      Priority = "low"
)

// rank returns a sort key where smaller sorts first (critical first).
func (p Priority) rank() int {
	switch p {
	case PriorityCritical:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Rank exposes the priority's sort key for callers (the matcher) that need
// to order rules without reaching into package internals.
func (p Priority) Rank() int { return p.rank() }

// Result is the outcome a rule declares it is meant to produce, used by the
// runner when deciding whether a rule's completion should halt the
// matched-rule walk (see Rule.Terminal).
type Result string

const (
	ResultOK    Result = "ok"
	ResultWarn  Result = "warn"
	ResultBlock Result = "block"
)

// Rule is an immutable declarative record: which events it applies to,
// under what condition, at what priority, and what actions to run.
type Rule struct {
	ID          string
	Events      map[event.Kind]struct{}
	Condition   string
	Priority    Priority
	Enabled     bool
	Result      Result
	Terminal    bool
	Description string
	Actions     []Action

	// SourceFile records where this rule's highest-precedence declaration
	// came from, for diagnostics only; it plays no part in matching.
	SourceFile string
}

// AppliesToKind reports whether the rule's declared event set selects the
// given kind, honoring the "all" sentinel.
func (r *Rule) AppliesToKind(k event.Kind) bool {
	if _, ok := r.Events[event.All]; ok {
		return true
	}
	_, ok := r.Events[k]
	return ok
}

// Clone returns a deep-enough copy for callers that need to mutate a
// working copy (e.g. tests) without affecting the loaded rule base. Rules
// are otherwise treated as immutable after load.
func (r *Rule) Clone() *Rule {
	cp := *r
	cp.Events = make(map[event.Kind]struct{}, len(r.Events))
	for k := range r.Events {
		cp.Events[k] = struct{}{}
	}
	cp.Actions = append([]Action(nil), r.Actions...)
	return &cp
}
