package config

import (
	"os"
	"path/filepath"

	"github.com/agentrules/hookctl/pkg/constants"
	"github.com/agentrules/hookctl/pkg/logger"
)

var settingsLog = logger.New("hooks:config:settings")

// Settings holds engine-level scalars that use highest-source-wins
// semantics rather than the rule base's by-ID merge.
type Settings struct {
	LogLevel string
	Strict   bool
}

var validLogLevels = map[string]bool{"error": true, "warning": true, "info": true, "debug": true}

// LoadSettings resolves engine settings from the user file, the project's
// <app>.toml and <app>.local.toml, and the worktree file, applying
// highest-precedence-wins per scalar (§4.1). hooks.toml and drop-in files
// are not consulted, and a file that fails to parse is skipped without a
// log line or an error.
func LoadSettings(projectRoot string) Settings {
	level := "info"

	level = levelFromFile(GetUserConfigPath(), level)

	if projectRoot != "" {
		hiddenDir := filepath.Join(projectRoot, constants.HiddenDir)
		level = levelFromFile(filepath.Join(hiddenDir, constants.AppName+".toml"), level)
		level = levelFromFile(filepath.Join(hiddenDir, constants.AppName+".local.toml"), level)
		if gitDir := GetGitCommonDir(projectRoot); gitDir != "" {
			level = levelFromFile(filepath.Join(gitDir, constants.AppName+".toml"), level)
		}
	}

	if !validLogLevels[level] {
		settingsLog.Printf("invalid log_level %q, using default", level)
		level = "info"
	}

	return Settings{LogLevel: level, Strict: IsStrict()}
}

func levelFromFile(path, current string) string {
	if path == "" {
		return current
	}
	if info, err := os.Stat(path); err != nil || info.IsDir() {
		return current
	}
	raw, err := readTOMLFile(path)
	if err != nil {
		return current
	}
	if lvl, ok := extractLogLevel(raw); ok {
		return lvl
	}
	return current
}
