package config

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/agentrules/hookctl/pkg/constants"
	"github.com/agentrules/hookctl/pkg/logger"
)

var discoveryLog = logger.New("hooks:config:discovery")

// FindProjectRoot ascends from the current directory until it finds the
// app's hidden marker directory, returning "" when none is found. Unlike
// the git-root lookup below, this does not require a git repository —
// hidden-dir presence alone marks a project.
func FindProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}
	return findProjectRootFrom(dir)
}

func findProjectRootFrom(start string) string {
	dir := start
	for {
		candidate := filepath.Join(dir, constants.HiddenDir)
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return ""
		}
		dir = parent
	}
}

// GetGitCommonDir returns the repository's shared .git directory (the
// worktree-independent one), or "" if projectRoot is not inside a git
// repository. Worktree-local overrides live here so that every worktree of
// the same repository shares the same override file.
func GetGitCommonDir(projectRoot string) string {
	cmd := exec.Command("git", "-C", projectRoot, "rev-parse", "--git-common-dir")
	out, err := cmd.Output()
	if err != nil {
		discoveryLog.Printf("git-common-dir lookup failed for %s: %v", projectRoot, err)
		return ""
	}
	dir := strings.TrimSpace(string(out))
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(projectRoot, dir)
	}
	return dir
}

// GetUserConfigPath returns the per-user configuration file path, honoring
// XDG_CONFIG_HOME when set and falling back to ~/.config on POSIX systems.
func GetUserConfigPath() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, constants.AppName, constants.AppName+".toml")
}

// GetDropinDir returns the project's drop-in rules directory, honoring the
// <EnvPrefix>_HOOKS__DROPIN_DIR override.
func GetDropinDir(projectRoot string) string {
	if override := strings.TrimSpace(os.Getenv(constants.EnvPrefix + "_HOOKS__DROPIN_DIR")); override != "" {
		if filepath.IsAbs(override) {
			return override
		}
		return filepath.Join(projectRoot, override)
	}
	return filepath.Join(projectRoot, constants.HiddenDir, "hooks.d")
}

// IsStrict reports whether <EnvPrefix>_STRICT_CONFIG=1 is set, which
// upgrades configuration errors from soft (skip with a warning) to hard
// (abort the load).
func IsStrict() bool {
	return os.Getenv(constants.EnvPrefix+"_STRICT_CONFIG") == "1"
}
