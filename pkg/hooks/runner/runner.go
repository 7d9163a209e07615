// Package runner wires the engine's components into the single entry
// point a host process calls once per lifecycle event: load configuration,
// match rules, dispatch actions in priority order, fold results, and
// render the host-facing decision (§4.5, §6).
package runner

import (
	"context"
	"time"

	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/hooks/action"
	"github.com/agentrules/hookctl/pkg/hooks/config"
	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/hooks/match"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
	"github.com/agentrules/hookctl/pkg/logger"
)

var runnerLog = logger.New("hooks:runner")

// RepoProvider supplies the optional VCS snapshot a runner attaches to an
// invocation. It is an interface (rather than a direct gitctx dependency)
// so tests and hosts that don't care about git can supply a no-op.
type RepoProvider interface {
	Snapshot(cwd string) *action.RepoSnapshot
	ExtraFields(snap *action.RepoSnapshot) map[string]event.Value
}

// Runner is the engine's top-level invocation handler. The zero value is
// usable as long as Loader and Registry are assigned before Run is
// called — NewRunner does that for the common case.
type Runner struct {
	Loader   *config.Loader
	Registry *action.Registry
	Repo     RepoProvider
}

// NewRunner returns a Runner with a default (empty-builtin) loader and
// registry, ready for a host to register Python/Transform entrypoints on
// before the first Run call.
func NewRunner() *Runner {
	return &Runner{
		Loader:   &config.Loader{},
		Registry: action.NewRegistry(),
	}
}

// Decision is the host-facing result of one invocation, shaped to
// serialize directly onto the external JSON contract (§6): whether
// execution should continue, an overall accept/reject signal, and any
// text the host should feed back to the agent.
type Decision struct {
	Continue           bool
	PermissionDecision accumulate.PermissionDecision
	PermissionReason   string
	Block              bool
	BlockReason        string
	AdditionalContext  string
	Suggestions        []string
	Warnings           []string
	RuleResults        []accumulate.RuleResult
	TerminatedEarly    bool
	ReplacedEvent      *event.Event
}

// Run executes one lifecycle event end to end: load the project's merged
// rule base, match it against ev, run matched rules' actions in priority
// order, and fold the results into a Decision. projectRoot may be "" to
// let the loader discover it from cwd.
func (r *Runner) Run(ctx context.Context, projectRoot string, ev *event.Event) (*Decision, error) {
	cfg, err := r.Loader.Load(projectRoot)
	if err != nil {
		return nil, err
	}

	var repo *action.RepoSnapshot
	if r.Repo != nil {
		repo = r.Repo.Snapshot(ev.Cwd)
		if extra := r.Repo.ExtraFields(repo); extra != nil {
			if ev.Extra == nil {
				ev.Extra = make(map[string]event.Value, len(extra))
			}
			for k, v := range extra {
				ev.Extra[k] = v
			}
		}
	}

	matched := match.Match(cfg.Rules, ev)
	runnerLog.Printf("matched %d rule(s) for %s", len(matched), ev.Kind)

	dispatcher := action.NewDispatcher(r.Registry)
	acc := accumulate.New()
	currentEvent := ev

	for _, m := range matched {
		if err := ctx.Err(); err != nil {
			runnerLog.Printf("invocation cancelled before rule %s: %v", m.Rule.ID, err)
			break
		}
		actionCtx := &action.Context{
			Context:   ctx,
			SessionID: currentEvent.SessionID,
			Cwd:       currentEvent.Cwd,
			Event:     currentEvent,
			Repo:      repo,
		}

		ra, replaced := dispatcher.Run(actionCtx, m.Rule)
		currentEvent = replaced
		result := acc.Promote(m.Rule.ID, ra)

		runnerLog.Printf("rule %s -> %s", m.Rule.ID, result.Status)

		if shouldStopAfter(m.Rule, ra) {
			acc.TerminatedEarly = true
			break
		}
	}

	return buildDecision(acc, currentEvent), nil
}

// shouldStopAfter implements §4.5 step 4: a rule halts the walk if it is
// declared Terminal, or if it declared result=block and actually
// blocked. A Deny in a result=ok rule blocks but lets the walk continue
// unless the Deny itself set Interrupt, which forces termination
// regardless of the rule's declared result.
func shouldStopAfter(r *rule.Rule, ra *accumulate.RuleAccumulator) bool {
	return r.Terminal || ra.Interrupted || (r.Result == rule.ResultBlock && ra.Blocked)
}

func buildDecision(acc *accumulate.Accumulator, finalEvent *event.Event) *Decision {
	d := &Decision{
		Continue:           !acc.ShouldBlock,
		PermissionDecision: acc.PermissionDecision,
		PermissionReason:   acc.PermissionReason,
		Block:              acc.ShouldBlock,
		BlockReason:        acc.BlockReason(),
		AdditionalContext:  acc.AdditionalContext(),
		Suggestions:        acc.Suggestions(),
		Warnings:           acc.Warnings,
		RuleResults:        acc.RuleResults,
		TerminatedEarly:    acc.TerminatedEarly,
		ReplacedEvent:      finalEvent,
	}
	return d
}

// invocationDeadline bounds how long a single Run call may take overall,
// as a backstop above any individual action's own timeout (a rule with
// many shell actions could otherwise exceed the host's patience even
// though each action respected its own limit).
const invocationDeadline = 2 * time.Minute

// WithDeadline wraps ctx with the engine's overall invocation timeout.
func WithDeadline(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, invocationDeadline)
}
