// Package constants holds names and defaults shared across the hook engine
// so that config discovery, CLI help text, and tests agree on a single
// source of truth.
package constants

// AppName is the short name used in hidden directory names, environment
// variable prefixes, and CLI usage strings.
const AppName = "hookctl"

// HiddenDir is the per-project directory that holds configuration and
// drop-in rule files, relative to the project root.
const HiddenDir = ".hookctl"

// EnvPrefix is the prefix applied to all environment variables the engine
// consults (double underscore separates section from key, e.g.
// HOOKCTL_HOOKS__DROPIN_DIR).
const EnvPrefix = "HOOKCTL"

// DefaultShellTimeoutMillis is the default deadline for a Shell action when
// the rule does not declare one.
const DefaultShellTimeoutMillis = 30_000

// MaxShellOutputBytes bounds how much of a Shell action's stdout the
// dispatcher will read before treating the remainder as discarded.
const MaxShellOutputBytes = 1 << 20 // 1 MiB

// MaxConditionParseDepth caps recursive descent nesting in the condition
// parser so a pathological expression cannot blow the stack.
const MaxConditionParseDepth = 64
