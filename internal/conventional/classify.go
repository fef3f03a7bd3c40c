package conventional

import (
	"strings"

	"github.com/ariel-frischer/semrel/internal/semver"
)

// patchTypes are the recognized commit types that signal a patch release.
var patchTypes = map[string]struct{}{
	"fix":      {},
	"perf":     {},
	"docs":     {},
	"style":    {},
	"refactor": {},
	"test":     {},
	"chore":    {},
	"ci":       {},
	"build":    {},
}

// Classify maps a single commit subject to a bump decision.
//
// Rules, first match wins:
//   - "BREAKING CHANGE" or "BREAKING-CHANGE" anywhere (any case), or a "!"
//     header such as "feat(api)!:", is Major
//   - a "feat" header is Minor
//   - a recognized patch type is Patch
//   - anything else, including subjects without a header, is still Patch
//
// Classify never returns None; None only comes from an empty commit range.
func Classify(subject string) semver.BumpType {
	upper := strings.ToUpper(subject)
	if strings.Contains(upper, "BREAKING CHANGE") ||
		strings.Contains(upper, "BREAKING-CHANGE") ||
		breakingHeaderPattern.MatchString(subject) {
		return semver.Major
	}

	if m := bumpHeaderPattern.FindStringSubmatch(subject); m != nil {
		commitType := strings.ToLower(m[1])
		if commitType == "feat" {
			return semver.Minor
		}
		if _, ok := patchTypes[commitType]; ok {
			return semver.Patch
		}
	}

	return semver.Patch
}

// Aggregate reduces the subjects of a revision range to one bump decision:
// None for an empty range, otherwise the most severe per-commit decision.
// The result does not depend on order or duplicates.
func Aggregate(subjects []string) semver.BumpType {
	result := semver.None
	for _, s := range subjects {
		result = semver.MaxBump(result, Classify(s))
		if result == semver.Major {
			break
		}
	}
	return result
}
