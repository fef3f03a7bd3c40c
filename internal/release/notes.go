package release

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/semrel/internal/changelog"
)

// NotesOptions configures release notes generation.
type NotesOptions struct {
	From    string
	To      string
	Version string
	Compact bool
	// Now is the generation time. Zero means time.Now().
	Now time.Time
}

// NotesResult holds generated release notes.
type NotesResult struct {
	Range    Range
	Report   *changelog.Report
	Markdown string
	Summary  changelog.Summary
}

// Notes generates release notes from revision history.
type Notes struct {
	History History
}

// Generate categorizes the commits in the range and renders them.
func (n *Notes) Generate(opts NotesOptions) (*NotesResult, error) {
	rng, err := ResolveRange(n.History, opts.From, opts.To)
	if err != nil {
		return nil, err
	}

	commits, err := n.History.CommitsBetween(rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	renderOpts := changelog.RenderOptions{
		Version: opts.Version,
		FromRef: rng.From,
		ToRef:   rng.To,
		Compact: opts.Compact,
		Now:     now,
	}

	report := changelog.Categorize(commits)
	markdown, err := changelog.RenderMarkdownString(report, renderOpts)
	if err != nil {
		return nil, fmt.Errorf("rendering notes: %w", err)
	}
	logDebug("[release] rendered notes for %d commits in %d categories", report.Total(), len(report.NonEmpty()))

	return &NotesResult{
		Range:    rng,
		Report:   report,
		Markdown: markdown,
		Summary:  report.Summary(renderOpts),
	}, nil
}
