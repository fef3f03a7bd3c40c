package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// sectionStyle defines the color and icon for a category on a terminal.
type sectionStyle struct {
	Color *color.Color
	Icon  string
}

// categoryStyles maps categories to their terminal styling.
var categoryStyles = map[Category]sectionStyle{
	CategoryFeature:     {Color: color.New(color.FgGreen), Icon: "✓"},
	CategoryFix:         {Color: color.New(color.FgYellow), Icon: "⚡"},
	CategoryPerformance: {Color: color.New(color.FgCyan), Icon: "»"},
	CategoryDocs:        {Color: color.New(color.FgBlue), Icon: "~"},
	CategoryRefactor:    {Color: color.New(color.FgBlue), Icon: "~"},
	CategoryTest:        {Color: color.New(color.FgCyan), Icon: "~"},
	CategoryCI:          {Color: color.New(color.FgWhite), Icon: "~"},
	CategoryBuild:       {Color: color.New(color.FgWhite), Icon: "~"},
	CategoryChore:       {Color: color.New(color.FgWhite), Icon: "~"},
	CategoryStyle:       {Color: color.New(color.FgWhite), Icon: "~"},
	CategoryRevert:      {Color: color.New(color.FgMagenta), Icon: "↺"},
	CategoryOther:       {Color: color.New(color.FgWhite), Icon: "•"},
}

var breakingStyle = sectionStyle{Color: color.New(color.FgRed, color.Bold), Icon: "⚠"}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain      bool // Disable colors and icons
	MaxWidth   int  // Maximum line width (0 = auto-detect)
	ShowHashes bool // Prefix entries with their short commit hash
}

// FormatTerminal writes a console view of the report: breaking changes first,
// then each non-empty category in priority order.
func FormatTerminal(r *Report, w io.Writer, opts FormatOptions) error {
	if r.Total() == 0 {
		_, err := fmt.Fprintln(w, "No commits in range.")
		return err
	}

	width := resolveWidth(opts.MaxWidth)

	if len(r.Breaking()) > 0 {
		entries := make([]Entry, len(r.Breaking()))
		for i, text := range r.Breaking() {
			entries[i] = Entry{Text: text, Breaking: true}
		}
		if err := writeSection("BREAKING CHANGES", breakingStyle, entries, w, opts, width); err != nil {
			return fmt.Errorf("formatting breaking changes: %w", err)
		}
	}

	for _, c := range r.NonEmpty() {
		if err := writeSection(c.Label(), categoryStyles[c], r.Details(c), w, opts, width); err != nil {
			return fmt.Errorf("formatting %s: %w", c.Key(), err)
		}
	}

	return nil
}

// writeSection writes a header followed by its entries.
func writeSection(title string, style sectionStyle, entries []Entry, w io.Writer, opts FormatOptions, width int) error {
	if err := writeSectionHeader(title, style, len(entries), w, opts); err != nil {
		return err
	}
	for _, entry := range entries {
		if err := writeEntry(entry, style, w, opts, width); err != nil {
			return err
		}
	}
	return nil
}

// writeSectionHeader writes the section header line.
func writeSectionHeader(title string, style sectionStyle, count int, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s (%d)\n", title, count)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s (%d)\n", colored(style.Icon), colored(title), count)
	return err
}

// writeEntry writes a single entry with optional wrapping.
func writeEntry(entry Entry, style sectionStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "
	text := entry.Text
	if opts.ShowHashes && entry.Hash != "" {
		text = Commit{Hash: entry.Hash}.ShortHash() + " " + text
	}

	wrapped := wrapText(text, width-len(prefix), "    ")
	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, wrapped)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(wrapped))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}

// FormatSummaryLine returns a one-line digest of the report for status output.
func FormatSummaryLine(r *Report, opts FormatOptions) string {
	line := fmt.Sprintf("%s across %s", pluralize(r.Total(), "commit"), pluralize(len(r.NonEmpty()), "category"))
	if n := len(r.Breaking()); n > 0 {
		if opts.Plain {
			return fmt.Sprintf("%s, %s", line, pluralize(n, "breaking change"))
		}
		return fmt.Sprintf("%s, %s", line, breakingStyle.Color.Sprint(pluralize(n, "breaking change")))
	}
	return line
}
