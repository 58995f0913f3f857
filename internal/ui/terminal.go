package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
	"github.com/javanhut/machete/internal/monitor"
)

type TerminalUI struct {
	out io.Writer
}

func NewTerminalUI(out io.Writer) *TerminalUI {
	return &TerminalUI{out: out}
}

func (t *TerminalUI) DrawBox(content string) {
	lines := splitLines(content)
	maxLen := 0
	for _, line := range lines {
		if n := utf8.RuneCountInString(line); n > maxLen {
			maxLen = n
		}
	}

	// Top border
	fmt.Fprintf(t.out, "┌%s┐\n", strings.Repeat("─", maxLen+2))

	// Content
	for _, line := range lines {
		pad := maxLen - utf8.RuneCountInString(line)
		fmt.Fprintf(t.out, "│ %s%s │\n", line, strings.Repeat(" ", pad))
	}

	// Bottom border
	fmt.Fprintf(t.out, "└%s┘\n", strings.Repeat("─", maxLen+2))
}

// Summary prints the outcome of a run, green when every configured process
// was killed, yellow when some were and red when none were.
func (t *TerminalUI) Summary(s monitor.Summary) {
	c := color.New(color.FgRed)
	switch {
	case s.Configured == s.Started:
		c = color.New(color.FgGreen)
	case s.Configured > 0:
		c = color.New(color.FgYellow)
	}

	c.Fprintln(t.out, "Run summary")
	t.DrawBox(fmt.Sprintf("Configured processes: %d\nKilled configured:    %d (%.0f%%)\nProcesses killed:     %d",
		s.Started, s.Configured, s.Percent(), s.Total))
}

// Scan prints what each configured process currently matches.
func (t *TerminalUI) Scan(previews []monitor.Preview) {
	if len(previews) == 0 {
		color.New(color.FgYellow).Fprintln(t.out, "No processes are configured.")
		return
	}

	for i, p := range previews {
		color.New(color.FgCyan).Fprintf(t.out, "[%d] %s\n", i+1, p.Match)

		limit := "all"
		if p.Limit > 0 {
			limit = fmt.Sprintf("%d", p.Limit)
		}
		signal := "forceful"
		if p.Gracefully {
			signal = "graceful"
		}
		color.New(color.FgHiBlack).Fprintf(t.out, "    wait %s, %s, limit %s\n", p.Wait, signal, limit)

		if len(p.Matches) == 0 {
			fmt.Fprintln(t.out, "    no running matches")
			continue
		}
		for _, h := range p.Matches {
			fmt.Fprintf(t.out, "    %s\n", h)
		}
	}
}

func splitLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(content, "\n"), "\n")
}
