// Package semver implements the three-component semantic version used by semrel.
// A Version is an immutable value: it is produced by Parse or by applying a
// BumpType to an existing Version, and renders to a single canonical form.
package semver

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	xsemver "golang.org/x/mod/semver"
)

var (
	versionPattern = regexp.MustCompile(`^(\d+)\.(\d+)\.(\d+)(?:-([A-Za-z0-9.-]+))?$`)
	// coercePrefix matches values that already carry three numeric components.
	coercePrefix = regexp.MustCompile(`^\d+\.\d+\.\d+`)
)

// InvalidVersionError reports a string that is not a valid semantic version.
type InvalidVersionError struct {
	Input  string
	Reason string
}

func (e *InvalidVersionError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("invalid semantic version %q: %s", e.Input, e.Reason)
	}
	return fmt.Sprintf("invalid semantic version %q", e.Input)
}

// Version is a major.minor.patch version with an optional opaque prerelease tag.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string
}

// Zero is the version assumed when nothing else is known.
var Zero = Version{}

// Parse parses text of the form X.Y.Z or X.Y.Z-prerelease.
// Leading zeros in numeric components are accepted and dropped.
func Parse(text string) (Version, error) {
	m := versionPattern.FindStringSubmatch(text)
	if m == nil {
		return Version{}, &InvalidVersionError{Input: text, Reason: "expected X.Y.Z[-prerelease]"}
	}

	var nums [3]int
	for i := range nums {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Version{}, &InvalidVersionError{Input: text, Reason: fmt.Sprintf("component %q out of range", m[i+1])}
		}
		nums[i] = n
	}

	return Version{
		Major:      nums[0],
		Minor:      nums[1],
		Patch:      nums[2],
		Prerelease: m[4],
	}, nil
}

// MustParse is like Parse but panics on invalid input.
func MustParse(text string) Version {
	v, err := Parse(text)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical form "X.Y.Z" with "-prerelease" appended when set.
func (v Version) String() string {
	base := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		return base + "-" + v.Prerelease
	}
	return base
}

// Equal reports whether both versions render identically.
func (v Version) Equal(other Version) bool {
	return v.String() == other.String()
}

// Compare orders versions by semantic version precedence.
// It returns -1, 0 or +1.
func (v Version) Compare(other Version) int {
	return xsemver.Compare("v"+v.String(), "v"+other.String())
}

// Bump returns a new Version with the given bump applied.
// Major, Minor and Patch zero every lower component and drop the prerelease;
// None returns the version unchanged, prerelease included. Bump panics when
// the incremented component would overflow; use Next to get an error instead.
func (v Version) Bump(b BumpType) Version {
	next, err := v.Next(b)
	if err != nil {
		panic(fmt.Sprintf("semver: %v", err))
	}
	return next
}

// Next is Bump returning an InvalidVersionError when the incremented
// component is already math.MaxInt.
func (v Version) Next(b BumpType) (Version, error) {
	overflow := func(component string) error {
		return &InvalidVersionError{Input: v.String(), Reason: component + " component cannot be incremented"}
	}

	switch b {
	case Major:
		if v.Major == math.MaxInt {
			return Version{}, overflow("major")
		}
		return Version{Major: v.Major + 1}, nil
	case Minor:
		if v.Minor == math.MaxInt {
			return Version{}, overflow("minor")
		}
		return Version{Major: v.Major, Minor: v.Minor + 1}, nil
	case Patch:
		if v.Patch == math.MaxInt {
			return Version{}, overflow("patch")
		}
		return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}, nil
	case None:
		return v, nil
	default:
		panic(fmt.Sprintf("semver: unknown bump type %d", int(b)))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (v Version) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (v *Version) UnmarshalText(data []byte) error {
	parsed, err := Parse(string(data))
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// Coerce pads short version strings like "1.0" to "1.0.0".
// Strings that already start with three numeric components are returned as is.
// The result is not guaranteed to parse.
func Coerce(text string) string {
	text = strings.TrimSpace(text)
	if coercePrefix.MatchString(text) {
		return text
	}
	parts := strings.Split(text, ".")
	for len(parts) < 3 {
		parts = append(parts, "0")
	}
	return strings.Join(parts[:3], ".")
}

// TrimTagPrefix strips prefix (typically "v") from a tag name.
func TrimTagPrefix(tag, prefix string) string {
	if prefix == "" {
		return tag
	}
	return strings.TrimPrefix(tag, prefix)
}
