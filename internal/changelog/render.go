package changelog

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// RenderOptions carries the context the notes are rendered for.
type RenderOptions struct {
	// Version is the release label. May be empty, with or without a leading "v".
	Version string
	// FromRef and ToRef describe the revision range the report covers.
	FromRef string
	ToRef   string
	// Compact drops the title, provenance, summary and footer.
	Compact bool
	// Now is the generation time. Zero means time.Now().
	Now time.Time
}

func (o RenderOptions) now() time.Time {
	if o.Now.IsZero() {
		return time.Now()
	}
	return o.Now
}

// RenderMarkdown writes release notes for r to w.
//
// The output is deterministic for a given report and options: categories
// appear in priority order, empty categories are omitted, and entries keep
// their commit order.
func RenderMarkdown(r *Report, opts RenderOptions, w io.Writer) error {
	if !opts.Compact {
		if err := renderTitle(opts, w); err != nil {
			return fmt.Errorf("rendering title: %w", err)
		}
		if err := renderSummary(r, w); err != nil {
			return fmt.Errorf("rendering summary: %w", err)
		}
	}

	if err := renderBreaking(r, w); err != nil {
		return fmt.Errorf("rendering breaking changes: %w", err)
	}

	if err := renderChanges(r, w); err != nil {
		return fmt.Errorf("rendering changes: %w", err)
	}

	if !opts.Compact {
		if err := renderFooter(opts, w); err != nil {
			return fmt.Errorf("rendering footer: %w", err)
		}
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(r *Report, opts RenderOptions) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(r, opts, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderTitle writes the title and provenance lines.
func renderTitle(opts RenderOptions, w io.Writer) error {
	title := "# Release Notes - " + opts.now().Format("2006-01-02")
	if opts.Version != "" {
		title = "# Release Notes - " + displayVersion(opts.Version)
	}
	_, err := fmt.Fprintf(w, "%s\n\n_Generated from commits %s..%s_\n\n", title, opts.FromRef, opts.ToRef)
	return err
}

// renderSummary writes per-category counts followed by the total.
func renderSummary(r *Report, w io.Writer) error {
	var b strings.Builder
	b.WriteString("## Summary\n\n")

	nonEmpty := r.NonEmpty()
	for _, c := range nonEmpty {
		fmt.Fprintf(&b, "- %s: %s\n", c.Label(), pluralize(r.Count(c), "commit"))
	}
	if len(nonEmpty) > 0 {
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "**%s** across %s\n\n", pluralize(r.Total(), "commit"), pluralize(len(nonEmpty), "category"))

	_, err := io.WriteString(w, b.String())
	return err
}

// renderBreaking writes the breaking changes section, if any.
func renderBreaking(r *Report, w io.Writer) error {
	if len(r.Breaking()) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString("## ⚠️ BREAKING CHANGES\n\n")
	for _, text := range r.Breaking() {
		fmt.Fprintf(&b, "- %s\n", text)
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// renderChanges writes one subsection per non-empty category.
func renderChanges(r *Report, w io.Writer) error {
	var b strings.Builder
	b.WriteString("## Changes\n\n")
	for _, c := range r.NonEmpty() {
		fmt.Fprintf(&b, "### %s\n\n", c.Label())
		for _, text := range r.Entries(c) {
			fmt.Fprintf(&b, "- %s\n", text)
		}
		b.WriteString("\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// renderFooter writes the generation timestamp and the version label.
func renderFooter(opts RenderOptions, w io.Writer) error {
	footer := "---\n\n_Generated on " + opts.now().UTC().Format("2006-01-02 15:04:05") + " UTC_\n"
	if opts.Version != "" {
		footer += "_Version: " + opts.Version + "_\n"
	}
	_, err := io.WriteString(w, footer)
	return err
}

// displayVersion prefixes numeric labels with "v" exactly once.
func displayVersion(label string) string {
	if strings.HasPrefix(label, "v") || strings.HasPrefix(label, "V") {
		return "v" + label[1:]
	}
	if label != "" && label[0] >= '0' && label[0] <= '9' {
		return "v" + label
	}
	return label
}

func pluralize(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	if strings.HasSuffix(noun, "y") {
		return fmt.Sprintf("%d %sies", n, strings.TrimSuffix(noun, "y"))
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
