package config

import (
	"path/filepath"

	"github.com/agentrules/hookctl/pkg/hooks/rule"
	"github.com/agentrules/hookctl/pkg/logger"
)

var extractLog = logger.New("hooks:config:extract")

// rulesFromTOML extracts and decodes rule declarations from a parsed TOML
// document, accepting both the drop-in shape ([[rules]]) and the main
// config shape ([[hooks.rules]]). Invalid rule entries are logged and
// dropped rather than failing the whole file, per the fail-open policy.
func rulesFromTOML(raw map[string]any, sourceFile string) []*rule.Rule {
	var entries []any

	if v, ok := raw["rules"]; ok {
		if list, ok := v.([]any); ok {
			entries = list
		} else {
			extractLog.Printf("%s: rules section is not a list", sourceFile)
			return nil
		}
	} else if hooksSection, ok := raw["hooks"].(map[string]any); ok {
		if v, ok := hooksSection["rules"]; ok {
			if list, ok := v.([]any); ok {
				entries = list
			} else {
				extractLog.Printf("%s: hooks.rules section is not a list", sourceFile)
				return nil
			}
		}
	}

	out := make([]*rule.Rule, 0, len(entries))
	for i, e := range entries {
		m, ok := e.(map[string]any)
		if !ok {
			extractLog.Printf("%s: rule entry %d is not a table", sourceFile, i)
			continue
		}
		if err := validateRuleShape(m); err != nil {
			extractLog.Printf("%s: rule entry %d failed schema validation (skipped): %v", filepath.Base(sourceFile), i, err)
			continue
		}
		r, err := decodeRule(m, sourceFile)
		if err != nil {
			extractLog.Printf("%s: invalid rule (skipped): %v", filepath.Base(sourceFile), err)
			continue
		}
		out = append(out, r)
	}
	return out
}

// extractLogLevel pulls a `log_level` scalar from either a [hooks] table
// or, failing that, the document's top level.
func extractLogLevel(raw map[string]any) (string, bool) {
	if hooksSection, ok := raw["hooks"].(map[string]any); ok {
		if lvl, ok := hooksSection["log_level"].(string); ok {
			return lvl, true
		}
	}
	if lvl, ok := raw["log_level"].(string); ok {
		return lvl, true
	}
	return "", false
}
