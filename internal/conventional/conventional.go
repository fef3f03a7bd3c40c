// Package conventional holds the conventional-commit grammar shared by the
// version bump and release notes pipelines.
//
// A conventional commit subject looks like "type(scope)!: description". This
// package owns every regular expression that reads that shape, so the bump
// decision and the notes categorization always agree on what a header is.
package conventional

import (
	"regexp"
	"strings"
)

var (
	// headerPattern captures type, optional (scope), optional "!" and description.
	headerPattern = regexp.MustCompile(`^([A-Za-z]+)(\([^)]*\))?(!)?:\s*(.*)$`)
	// bumpHeaderPattern is the header shape without the breaking marker.
	bumpHeaderPattern = regexp.MustCompile(`^([A-Za-z]+)(\([^)]*\))?:`)
	// breakingHeaderPattern matches a header flagged with "!" before the colon.
	breakingHeaderPattern = regexp.MustCompile(`^[A-Za-z]+(\([^)]*\))?!:`)
)

// BreakingChangeMarker is the footer token that flags a breaking change.
const BreakingChangeMarker = "BREAKING CHANGE"

// Header is a parsed conventional-commit subject line.
type Header struct {
	// Type is the commit type exactly as written (e.g. "feat", "Fix").
	Type string
	// Scope is the text inside the parentheses, without them.
	Scope string
	// Breaking is true when the header carries "!" before the colon.
	Breaking bool
	// Description is everything after the colon and following whitespace.
	Description string
}

// ParseHeader parses subject as a conventional-commit header.
// The second return value is false when subject has no recognizable header.
func ParseHeader(subject string) (Header, bool) {
	m := headerPattern.FindStringSubmatch(subject)
	if m == nil {
		return Header{}, false
	}

	scope := m[2]
	if scope != "" {
		scope = scope[1 : len(scope)-1]
	}

	return Header{
		Type:        m[1],
		Scope:       scope,
		Breaking:    m[3] == "!",
		Description: m[4],
	}, true
}

// Display returns the description prefixed with "scope: " when a scope is set.
func (h Header) Display() string {
	if h.Scope != "" {
		return h.Scope + ": " + h.Description
	}
	return h.Description
}

// NormalizedType returns the lower-cased commit type.
func (h Header) NormalizedType() string {
	return strings.ToLower(h.Type)
}

// HasBreakingMarker reports whether subject contains the exact, case-sensitive
// "BREAKING CHANGE" token.
func HasBreakingMarker(subject string) bool {
	return strings.Contains(subject, BreakingChangeMarker)
}
