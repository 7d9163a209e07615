package action

import (
	"context"
	"fmt"
	"time"

	"github.com/agentrules/hookctl/pkg/constants"
	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
)

// runPython invokes an in-process entrypoint addressed by name, passing
// the action context and rule accumulator directly so the entrypoint can
// mutate it (add warnings, inject context, block) exactly as the spec's
// Python action describes. The deadline is advisory: Go has no safe way to
// preempt a running goroutine, so a timeout here means "stop waiting and
// report failure," not "the entrypoint actually stopped running." A
// recovered panic becomes a failed outcome instead of taking the whole
// invocation down with it.
func (d *Dispatcher) runPython(ctx *Context, r *rule.Rule, a rule.Action, acc *accumulate.RuleAccumulator) accumulate.ActionOutcome {
	fn, err := d.Registry.python(a.Entrypoint)
	if err != nil {
		return accumulate.ActionOutcome{Success: false, Error: err.Error()}
	}

	timeoutMs := a.TimeoutMs
	if timeoutMs <= 0 {
		timeoutMs = constants.DefaultShellTimeoutMillis
	}

	type result struct {
		output any
		err    error
	}
	done := make(chan result, 1)

	go func() {
		defer func() {
			if p := recover(); p != nil {
				done <- result{err: fmt.Errorf("python entrypoint %s panicked: %v", a.Entrypoint, p)}
			}
		}()
		out, callErr := fn(ctx, acc)
		done <- result{output: out, err: callErr}
	}()

	select {
	case res := <-done:
		if res.err != nil {
			return accumulate.ActionOutcome{Success: false, Error: res.err.Error()}
		}
		return accumulate.ActionOutcome{Success: true, Output: res.output}
	case <-time.After(time.Duration(timeoutMs) * time.Millisecond):
		return accumulate.ActionOutcome{Success: false, Error: fmt.Sprintf("python entrypoint %s exceeded %dms advisory timeout", a.Entrypoint, timeoutMs)}
	case <-ctx.Done():
		return accumulate.ActionOutcome{Success: false, Error: fmt.Sprintf("python entrypoint %s cancelled: %v", a.Entrypoint, context.Cause(ctx))}
	}
}
