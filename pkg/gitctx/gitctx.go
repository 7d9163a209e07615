// Package gitctx supplies the optional VCS snapshot the runner attaches to
// an invocation so conditions can address git.branch, git.head_commit,
// git.dirty_files, and git.dirty_count, and Python/Transform entrypoints can read the same
// values off the action context. It shells out to git directly, the way
// the host CLI's own git helpers do, rather than linking a git library —
// this is read-only, low-frequency, and never touches the index.
package gitctx

import (
	"os/exec"
	"strings"

	"github.com/agentrules/hookctl/pkg/hooks/action"
	"github.com/agentrules/hookctl/pkg/hooks/event"
	"github.com/agentrules/hookctl/pkg/logger"
)

var gitLog = logger.New("gitctx")

// Provider implements the runner package's RepoProvider interface,
// letting a host wire git-backed VCS context into a Runner without the
// runner package importing os/exec itself.
type Provider struct{}

// IsRepo reports whether cwd is inside a git working tree.
func IsRepo(cwd string) bool {
	cmd := exec.Command("git", "rev-parse", "--git-dir")
	cmd.Dir = cwd
	return cmd.Run() == nil
}

// Snapshot shells out to git to build a RepoSnapshot for cwd. It never
// returns an error — VCS context is always optional, never required for
// the engine to run. When cwd is not inside a repository (or git is not on
// PATH) the snapshot is zero-valued; when a single git query fails, only
// the field it feeds is left empty.
func (Provider) Snapshot(cwd string) *action.RepoSnapshot {
	if !IsRepo(cwd) {
		return &action.RepoSnapshot{}
	}

	snap := &action.RepoSnapshot{
		Branch:     runGit(cwd, "rev-parse", "--abbrev-ref", "HEAD"),
		HeadCommit: runGit(cwd, "rev-parse", "HEAD"),
	}

	if out := runGit(cwd, "status", "--porcelain"); out != "" {
		for _, line := range strings.Split(out, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			fields := strings.Fields(line)
			snap.DirtyFiles = append(snap.DirtyFiles, fields[len(fields)-1])
		}
	}

	return snap
}

func runGit(cwd string, args ...string) string {
	cmd := exec.Command("git", args...)
	cmd.Dir = cwd
	out, err := cmd.Output()
	if err != nil {
		gitLog.Printf("git %s failed: %v", strings.Join(args, " "), err)
		return ""
	}
	return strings.TrimSpace(string(out))
}

// ExtraFields renders a RepoSnapshot into the event.Extra map under a
// single "git" entry, so a condition's dotted path (git.branch,
// git.dirty_count, git.head_commit) resolves the same way tool_input["x"]
// does: one top-level Field lookup followed by a nested map walk.
func (Provider) ExtraFields(snap *action.RepoSnapshot) map[string]event.Value {
	if snap == nil {
		return nil
	}
	dirty := make([]event.Value, len(snap.DirtyFiles))
	for i, f := range snap.DirtyFiles {
		dirty[i] = f
	}
	return map[string]event.Value{
		"git": map[string]event.Value{
			"branch":       snap.Branch,
			"head_commit":  snap.HeadCommit,
			"dirty_files":  dirty,
			"dirty_count":  float64(len(snap.DirtyFiles)),
		},
	}
}
