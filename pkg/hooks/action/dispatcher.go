package action

import (
	"time"

	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
	"github.com/agentrules/hookctl/pkg/logger"
)

var dispatchLog = logger.New("hooks:action")

// Dispatcher executes a rule's actions, in declared order, into a private
// RuleAccumulator. An action failure is recorded in its outcome but does
// not by itself abort the remaining actions in the rule — composing a
// stricter policy is the rule author's job (via ordering or Terminal).
type Dispatcher struct {
	Registry *Registry
}

// NewDispatcher returns a Dispatcher backed by registry. A nil registry is
// valid and simply fails every Python/Transform action with "no entrypoint
// registered", rather than panicking.
func NewDispatcher(registry *Registry) *Dispatcher {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Dispatcher{Registry: registry}
}

// Run executes every action of r against ctx, folding contributions into a
// fresh RuleAccumulator. It also returns the (possibly replaced) event, so
// a Transform action's effect is visible to whatever runs next.
func (d *Dispatcher) Run(ctx *Context, r *rule.Rule) (*accumulate.RuleAccumulator, *event.Event) {
	acc := &accumulate.RuleAccumulator{}
	currentEvent := ctx.Event

	for _, a := range r.Actions {
		start := time.Now()
		actionCtx := ctx
		if currentEvent != ctx.Event {
			cp := *ctx
			cp.Event = currentEvent
			actionCtx = &cp
		}

		outcome := d.dispatch(actionCtx, r, a, acc)
		outcome.Duration = time.Since(start)
		acc.Actions = append(acc.Actions, outcome)

		if a.Kind == rule.ActionTransform && outcome.Success {
			if replaced, ok := outcome.Output.(*event.Event); ok {
				currentEvent = replaced
			}
		}
	}

	return acc, currentEvent
}

func (d *Dispatcher) dispatch(ctx *Context, r *rule.Rule, a rule.Action, acc *accumulate.RuleAccumulator) accumulate.ActionOutcome {
	switch a.Kind {
	case rule.ActionLog:
		return d.runLog(r, a)
	case rule.ActionDeny:
		acc.AddBlock(a.Message, a.Interrupt)
		return accumulate.ActionOutcome{Success: true}
	case rule.ActionAllow:
		if ctx.Event.Kind == event.PermissionRequest {
			acc.SetPermission(accumulate.PermissionAllow, a.Message)
		}
		return accumulate.ActionOutcome{Success: true}
	case rule.ActionWarn:
		acc.AddWarning(a.Message)
		return accumulate.ActionOutcome{Success: true}
	case rule.ActionSuggest:
		acc.AddInjection(accumulate.TagAdvisory, a.Content)
		return accumulate.ActionOutcome{Success: true}
	case rule.ActionInject:
		acc.AddInjection(accumulate.TagContext, a.Content)
		return accumulate.ActionOutcome{Success: true}
	case rule.ActionShell:
		return d.runShell(ctx, r, a, acc)
	case rule.ActionPython:
		return d.runPython(ctx, r, a, acc)
	case rule.ActionModify:
		return d.runModify(ctx, a)
	case rule.ActionTransform:
		return d.runTransform(ctx, r, a)
	default:
		return accumulate.ActionOutcome{Success: false, Error: "unknown action kind"}
	}
}

func (d *Dispatcher) runLog(r *rule.Rule, a rule.Action) accumulate.ActionOutcome {
	dispatchLog.Printf("[%s] rule=%s %s", a.Level, r.ID, r.Description)
	return accumulate.ActionOutcome{Success: true}
}
