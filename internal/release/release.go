// Package release runs the two semrel pipelines: computing the next version
// from commit history, and generating release notes for a range. Revision
// history and the manifest are injected so the pipelines can run without a
// repository or filesystem.
package release

import (
	"fmt"

	"github.com/ariel-frischer/semrel/internal/changelog"
	"github.com/ariel-frischer/semrel/internal/git"
)

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for release pipelines.
// Pass nil to disable debug logging.
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// WarnFunc receives recoverable conditions, such as a missing manifest, that
// were handled with a fallback value.
type WarnFunc func(format string, args ...any)

func (w WarnFunc) warn(format string, args ...any) {
	logDebug("[release] warning: "+format, args...)
	if w != nil {
		w(format, args...)
	}
}

// History is the revision history a pipeline reads. *git.Repository
// satisfies it.
type History interface {
	// CommitsBetween lists commits reachable from to but not from from,
	// newest first. An empty from means the whole history behind to.
	CommitsBetween(from, to string) ([]changelog.Commit, error)
	// NearestTag returns the closest tag behind ref, or "" when there is none.
	NearestTag(ref string) (string, error)
	// RootCommit returns the hash of the first commit.
	RootCommit() (string, error)
}

var _ History = (*git.Repository)(nil)

// Range is a resolved revision range.
type Range struct {
	From string
	To   string
}

// ResolveRange fills in the defaults for a revision range. To defaults to
// HEAD. From defaults to the nearest tag behind To, and to the root commit
// when the history has no tags.
func ResolveRange(h History, from, to string) (Range, error) {
	if to == "" {
		to = git.DefaultRef
	}
	if from != "" {
		return Range{From: from, To: to}, nil
	}

	tag, err := h.NearestTag(to)
	if err != nil {
		return Range{}, fmt.Errorf("finding starting tag: %w", err)
	}
	if tag != "" {
		logDebug("[release] range starts at tag %s", tag)
		return Range{From: tag, To: to}, nil
	}

	root, err := h.RootCommit()
	if err != nil {
		return Range{}, fmt.Errorf("finding root commit: %w", err)
	}
	logDebug("[release] no tags, range starts at root commit %s", root)
	return Range{From: root, To: to}, nil
}
