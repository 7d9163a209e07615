// Package config discovers, parses, validates, and merges hook rule
// declarations from the engine's layered configuration sources (§4.1 of
// the governing rule-engine design) into one canonical, ordered rule base.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/agentrules/hookctl/pkg/constants"
	"github.com/agentrules/hookctl/pkg/hooks/rule"
	"github.com/agentrules/hookctl/pkg/logger"
)

var loaderLog = logger.New("hooks:config:loader")

// Config is the result of a single Loader.Load call: the merged rule base
// plus resolved engine settings, ready for the matcher.
type Config struct {
	Rules    []*rule.Rule
	Settings Settings
}

// Loader resolves rules and settings for a project. BuiltinDir and
// BuiltinRules let a host override or stub the packaged defaults (e.g. in
// tests); a zero-value Loader behaves like the default CLI entry point.
type Loader struct {
	// BuiltinDir overrides where packaged default rules live. Empty means
	// "no built-in rules" rather than a hard-coded install path, since this
	// engine ships no packaged defaults itself — hosts that want a
	// baseline rule set provide BuiltinRules directly instead.
	BuiltinDir string
	// BuiltinRules are compiled-in default rules (the lowest-precedence
	// source of all), supplied directly rather than read from disk.
	BuiltinRules []*rule.Rule
}

// Load discovers the project root (unless projectRoot is given explicitly)
// and returns the merged configuration. Every per-file parse failure is
// logged and the source contributes nothing; in strict mode (§7, Open
// Question #2: soft-fail vs strict-fail unification) the first such
// failure is also returned as an error instead of being silently
// absorbed, so a host that opted into HOOKCTL_STRICT_CONFIG=1 learns
// about a broken file the same way for rules and for settings.
func (l *Loader) Load(projectRoot string) (*Config, error) {
	if projectRoot == "" {
		projectRoot = FindProjectRoot()
	}
	strict := IsStrict()

	var (
		builtinRules  = l.BuiltinRules
		userRules     []*rule.Rule
		projectExt    []*rule.Rule
		dropinRules   []*rule.Rule
		projectInline []*rule.Rule
		localRules    []*rule.Rule
		worktreeRules []*rule.Rule
		firstErr      error
	)
	record := func(rules []*rule.Rule, err error) []*rule.Rule {
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return rules
	}

	if l.BuiltinDir != "" {
		r, err := l.loadDropinDir(l.BuiltinDir, strict)
		builtinRules = append(builtinRules, record(r, err)...)
	}

	userRules = record(l.loadFile(GetUserConfigPath(), strict))

	if projectRoot != "" {
		hiddenDir := filepath.Join(projectRoot, constants.HiddenDir)

		projectExt = record(l.loadFile(filepath.Join(hiddenDir, "hooks.toml"), strict))
		dropinRules = record(l.loadDropinDir(GetDropinDir(projectRoot), strict))
		projectInline = record(l.loadFile(filepath.Join(hiddenDir, constants.AppName+".toml"), strict))
		localRules = record(l.loadFile(filepath.Join(hiddenDir, constants.AppName+".local.toml"), strict))

		if gitDir := GetGitCommonDir(projectRoot); gitDir != "" {
			worktreeRules = record(l.loadFile(filepath.Join(gitDir, constants.AppName+".toml"), strict))
		}
	}

	if strict && firstErr != nil {
		return nil, firstErr
	}

	merged := MergeRules(builtinRules, userRules, projectExt, dropinRules, projectInline, localRules, worktreeRules)

	return &Config{
		Rules:    merged,
		Settings: LoadSettings(projectRoot),
	}, nil
}

// loadFile loads one optional config file's rules. A missing file
// contributes nothing and no error. A malformed file is always logged and
// skipped (so the rule list is well-formed even under the error return);
// the error is only surfaced to the caller, which decides whether strict
// mode turns it into a hard failure.
func (l *Loader) loadFile(path string, strict bool) ([]*rule.Rule, error) {
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return nil, nil
	}
	raw, err := readTOMLFile(path)
	if err != nil {
		loaderLog.Printf("failed to parse %s (skipped): %v", path, err)
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return rulesFromTOML(raw, path), nil
}

// loadDropinDir loads every *.toml file in a directory in lexicographic
// order, concatenating their rules.
func (l *Loader) loadDropinDir(dir string, strict bool) ([]*rule.Rule, error) {
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		return nil, nil
	}
	matches, err := filepath.Glob(filepath.Join(dir, "*.toml"))
	if err != nil {
		return nil, nil
	}
	sort.Strings(matches)

	var (
		out      []*rule.Rule
		firstErr error
	)
	for _, path := range matches {
		rules, err := l.loadFile(path, strict)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		out = append(out, rules...)
	}
	return out, firstErr
}
