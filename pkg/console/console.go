// Package console renders an engine invocation's outcome as a human-
// readable diagnostic block on stderr, the way a CLI reports a compiler
// error: one line per rule that fired, colored by its status, with the
// block reason (if any) called out separately. It never writes to stdout
// — stdout is reserved for the machine-readable result the host consumes.
package console

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"

	"github.com/agentrules/hookctl/pkg/hooks/accumulate"
	"github.com/agentrules/hookctl/pkg/styles"
)

func isTTY() bool {
	return isatty.IsTerminal(os.Stderr.Fd())
}

// applyStyle conditionally applies styling based on TTY status, the same
// guard the logger uses to decide whether ANSI codes belong in the output.
func applyStyle(style lipgloss.Style, text string) string {
	if isTTY() {
		return style.Render(text)
	}
	return text
}

// RenderResult formats the full per-rule breakdown of one engine
// invocation: every rule that was run, its status, and any block/warn
// messages it contributed. It takes plain fields rather than an
// *accumulate.Accumulator so the CLI layer can render straight from a
// runner.Decision without reaching back into the engine's internals.
func RenderResult(results []accumulate.RuleResult, blockReason string, warnings []string) string {
	var b strings.Builder

	for _, rr := range results {
		b.WriteString(statusGlyph(rr.Status))
		b.WriteString(" ")
		b.WriteString(applyStyle(styles.RuleID, rr.RuleID))
		b.WriteString(" ")
		b.WriteString(applyStyle(statusStyle(rr.Status), string(rr.Status)))
		b.WriteString("\n")
		for _, a := range rr.Actions {
			if a.Error != "" {
				b.WriteString("  " + applyStyle(styles.Error, "error: "+a.Error) + "\n")
			}
		}
	}

	if blockReason != "" {
		b.WriteString("\n")
		b.WriteString(applyStyle(styles.Error, "blocked: "))
		b.WriteString(blockReason)
		b.WriteString("\n")
	}
	for _, w := range warnings {
		b.WriteString(applyStyle(styles.Warn, "warning: "))
		b.WriteString(w)
		b.WriteString("\n")
	}

	return b.String()
}

func statusGlyph(s accumulate.RuleStatus) string {
	switch s {
	case accumulate.RuleBlocked:
		return "x"
	case accumulate.RuleWarned:
		return "!"
	case accumulate.RuleFailed:
		return "?"
	default:
		return "."
	}
}

func statusStyle(s accumulate.RuleStatus) lipgloss.Style {
	switch s {
	case accumulate.RuleBlocked:
		return styles.Error
	case accumulate.RuleWarned:
		return styles.Warn
	case accumulate.RuleFailed:
		return styles.Muted
	default:
		return styles.OK
	}
}

// Eprintln writes a single styled diagnostic line to stderr, bypassing the
// logger's namespace/DEBUG gating — used for messages the CLI always wants
// the operator to see (fatal config errors, usage mistakes).
func Eprintln(style lipgloss.Style, msg string) {
	fmt.Fprintln(os.Stderr, applyStyle(style, msg))
}
