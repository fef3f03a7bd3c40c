package release

import (
	"fmt"
	"time"

	"github.com/ariel-frischer/semrel/internal/changelog"
	"github.com/ariel-frischer/semrel/internal/conventional"
	"github.com/ariel-frischer/semrel/internal/manifest"
)

// BumpOptions configures a version bump.
type BumpOptions struct {
	From      string
	To        string
	TagPrefix string
	// DryRun computes the result without writing the manifest.
	DryRun bool
	// Now is the generation time. Zero means time.Now().
	Now time.Time
}

// BumpResult is the machine-readable record of a bump.
type BumpResult struct {
	CurrentVersion  string `json:"current_version"`
	NewVersion      string `json:"new_version"`
	BumpType        string `json:"bump_type"`
	FromRef         string `json:"from_ref"`
	ToRef           string `json:"to_ref"`
	CommitsAnalyzed int    `json:"commits_analyzed"`
	VersionChanged  bool   `json:"version_changed"`
	GeneratedAt     string `json:"generated_at"`
	DryRun          bool   `json:"dry_run"`
	ManifestUpdated bool   `json:"manifest_updated"`

	// Source and Build are for console output only.
	Source VersionSource `json:"-"`
	Build  string        `json:"-"`
}

// Bumper computes and applies the next version.
type Bumper struct {
	History History
	// Manifest may be nil, in which case the version comes from tags and
	// nothing is written.
	Manifest manifest.Store
	Warn     WarnFunc
}

// Run analyzes the commits in the range and bumps the current version by the
// highest-priority change found. The manifest is written at most once, and
// only when the version changed and DryRun is off.
//
// When the manifest write fails, Run returns the computed result together
// with the error.
func (b *Bumper) Run(opts BumpOptions) (*BumpResult, error) {
	rng, err := ResolveRange(b.History, opts.From, opts.To)
	if err != nil {
		return nil, err
	}

	cur, err := CurrentVersion(b.Manifest, b.History, rng.To, opts.TagPrefix, b.Warn)
	if err != nil {
		return nil, err
	}

	commits, err := b.History.CommitsBetween(rng.From, rng.To)
	if err != nil {
		return nil, fmt.Errorf("listing commits: %w", err)
	}

	bump := conventional.Aggregate(subjects(commits))
	next, err := cur.Version.Next(bump)
	if err != nil {
		return nil, fmt.Errorf("bumping %s: %w", cur.Version, err)
	}
	logDebug("[release] %d commits, bump %s: %s -> %s", len(commits), bump, cur.Version, next)

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	result := &BumpResult{
		CurrentVersion:  cur.Version.String(),
		NewVersion:      next.String(),
		BumpType:        bump.String(),
		FromRef:         rng.From,
		ToRef:           rng.To,
		CommitsAnalyzed: len(commits),
		VersionChanged:  !next.Equal(cur.Version),
		GeneratedAt:     changelog.FormatTimestamp(now),
		DryRun:          opts.DryRun,
		Source:          cur.Source,
		Build:           cur.Manifest.Build,
	}

	if !result.VersionChanged || opts.DryRun || b.Manifest == nil {
		return result, nil
	}

	update := manifest.Data{Version: result.NewVersion}
	if cur.Present {
		if build, ok := NextBuild(cur.Manifest.Build); ok {
			update.Build = build
		} else if cur.Manifest.Build != "" {
			b.Warn.warn("build counter %q is not a number, leaving it unchanged", cur.Manifest.Build)
		}
	}
	if err := b.Manifest.Write(update); err != nil {
		return result, fmt.Errorf("updating manifest: %w", err)
	}
	result.ManifestUpdated = true
	if update.Build != "" {
		result.Build = update.Build
	}
	return result, nil
}

func subjects(commits []changelog.Commit) []string {
	out := make([]string, len(commits))
	for i, c := range commits {
		out[i] = c.Subject
	}
	return out
}
