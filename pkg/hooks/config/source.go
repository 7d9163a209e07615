package config

// SourceKind names one of the engine's configuration origins, ordered from
// lowest to highest precedence by Rank.
type SourceKind string

const (
	SourceDefault       SourceKind = "default"
	SourceBuiltin       SourceKind = "builtin"
	SourceUser          SourceKind = "user"
	SourceProjectExt    SourceKind = "project"      // <project>/<hidden>/hooks.toml
	SourceDropin        SourceKind = "dropin"       // <project>/<hidden>/hooks.d/*.toml
	SourceProjectInline SourceKind = "project_inline" // <project>/<hidden>/<app>.toml [[hooks.rules]]
	SourceLocal         SourceKind = "local"        // <project>/<hidden>/<app>.local.toml
	SourceWorktree      SourceKind = "worktree"     // <git-common-dir>/<app>.toml
	SourceEnv           SourceKind = "env"
	SourceCLI           SourceKind = "cli"
)

// rank implements the total precedence order from the spec's source table
// (§4.1): a higher number wins. Rule merging walks sources lowest-to-highest
// by this rank; CLI/Env only ever carry engine settings, never rules, since
// the loader has no disk location to read rule tables from for them.
var rank = map[SourceKind]int{
	SourceDefault:       0,
	SourceBuiltin:       1,
	SourceUser:          2,
	SourceProjectExt:    3,
	SourceDropin:        4,
	SourceProjectInline: 5,
	SourceLocal:         6,
	SourceWorktree:      7,
	SourceEnv:           8,
	SourceCLI:           9,
}

// Rank returns the source's precedence rank; higher wins.
func (k SourceKind) Rank() int { return rank[k] }

// Source records where a batch of rules or a scalar setting came from.
type Source struct {
	Kind   SourceKind
	Path   string
	Exists bool
}
