// Package action implements the engine's action dispatcher: one executor
// per Action variant, each producing a per-action outcome and optionally
// contributing to the enclosing rule's accumulator (§4.4).
package action

import (
	"context"

	"github.com/agentrules/hookctl/pkg/hooks/event"
)

// RepoSnapshot is the (optional) VCS context the runner attaches so
// conditions and Python/Transform entrypoints can address e.g.
// git.branch. The engine never computes this itself — it is supplied by
// the external repository adapter (§6) and merely passed through.
type RepoSnapshot struct {
	Branch      string
	DirtyFiles  []string
	HeadCommit  string
}

// Context is the ambient, read-mostly information every action executor
// receives: a cancellation signal (the embedded context.Context), the
// session id, the event's working directory, the current event, and the
// optional VCS snapshot. Accumulators are not part of it; a Python
// entrypoint receives its rule accumulator as a separate argument. It
// carries no host-internal state beyond what the runner chooses to expose
// here.
type Context struct {
	context.Context

	SessionID string
	Cwd       string
	Event     *event.Event
	Repo      *RepoSnapshot
}
