package config

import "github.com/agentrules/hookctl/pkg/hooks/rule"

// MergeRules folds rule batches (lowest precedence first) into one ordered
// list keyed by rule ID: the highest-precedence declaration for an ID wins
// its fields entirely, but the ID keeps the sequential position it was
// first seen at. Position therefore carries no matching semantics (that's
// Rule.Priority's job) — it only makes repeated loads diff cleanly.
func MergeRules(batchesLowToHigh ...[]*rule.Rule) []*rule.Rule {
	order := make([]string, 0)
	byID := make(map[string]*rule.Rule)

	for _, batch := range batchesLowToHigh {
		for _, r := range batch {
			if _, seen := byID[r.ID]; !seen {
				order = append(order, r.ID)
			}
			byID[r.ID] = r
		}
	}

	out := make([]*rule.Rule, 0, len(order))
	for _, id := range order {
		out = append(out, byID[id])
	}
	return out
}
