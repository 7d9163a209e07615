package action

import (
	"fmt"

	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
)

// runTransform looks up a registered entrypoint by name and lets it return
// a wholesale replacement event. The dispatcher's Run loop is responsible
// for threading that replacement into the context seen by later actions in
// the same rule (and, via the runner, later rules) — this function only
// produces it.
func (d *Dispatcher) runTransform(ctx *Context, r *rule.Rule, a rule.Action) accumulate.ActionOutcome {
	fn, err := d.Registry.transform(a.Entrypoint)
	if err != nil {
		return accumulate.ActionOutcome{Success: false, Error: err.Error()}
	}

	replaced, err := fn(ctx, ctx.Event)
	if err != nil {
		return accumulate.ActionOutcome{Success: false, Error: err.Error()}
	}
	if replaced == nil {
		return accumulate.ActionOutcome{Success: false, Error: fmt.Sprintf("transform entrypoint %s returned a nil event", a.Entrypoint)}
	}

	return accumulate.ActionOutcome{Success: true, Output: replaced}
}
