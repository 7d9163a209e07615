// Package match selects, for a given event, the enabled and
// condition-satisfied rules from a merged rule base and orders them for
// execution.
package match

import (
	"sort"

	"github.com/agentrules/hookctl/pkg/hooks/condition"
	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
	"github.com/agentrules/hookctl/pkg/logger"
)

var matchLog = logger.New("hooks:match")

// Matched pairs a rule with the stable position the matcher assigned it,
// per §3's "Matched rule" record.
type Matched struct {
	Rule       *rule.Rule
	MatchOrder int
}

// Match selects and orders rules for ev from the merged rule base. It is
// pure: it never mutates rules or ev, and the same inputs always produce
// the same ordered output.
//
// Algorithm (§4.3):
//  1. filter by enabled
//  2. filter by event-kind applicability (honoring the "all" sentinel)
//  3. drop rules whose condition evaluates false or fails to parse
//  4. stable-sort by priority descending, ties broken by merged insertion
//     order (the incoming slice order)
//  5. assign match_order from final position
func Match(rules []*rule.Rule, ev *event.Event) []Matched {
	var candidates []*rule.Rule
	for _, r := range rules {
		if !r.Enabled {
			continue
		}
		if !r.AppliesToKind(ev.Kind) {
			continue
		}
		if !evaluateCondition(r, ev) {
			continue
		}
		candidates = append(candidates, r)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Priority.Rank() < candidates[j].Priority.Rank()
	})

	out := make([]Matched, len(candidates))
	for i, r := range candidates {
		out[i] = Matched{Rule: r, MatchOrder: i}
	}
	return out
}

func evaluateCondition(r *rule.Rule, ev *event.Event) bool {
	if r.Condition == "" {
		return true
	}
	node, err := condition.Parse(r.Condition)
	if err != nil {
		matchLog.Printf("rule %s: invalid condition %q, treating as non-matching: %v", r.ID, r.Condition, err)
		return false
	}
	return condition.Evaluate(node, ev)
}
