package semver

import (
	"fmt"
	"strings"
)

// BumpType is a version bump decision, ordered by severity:
// None < Patch < Minor < Major.
type BumpType int

const (
	None BumpType = iota
	Patch
	Minor
	Major
)

var bumpNames = [...]string{
	None:  "none",
	Patch: "patch",
	Minor: "minor",
	Major: "major",
}

// String returns the lower-case name used in result records.
func (b BumpType) String() string {
	if b < None || b > Major {
		return fmt.Sprintf("BumpType(%d)", int(b))
	}
	return bumpNames[b]
}

// ParseBumpType parses "major", "minor", "patch" or "none" (case-insensitive).
func ParseBumpType(s string) (BumpType, error) {
	for i, name := range bumpNames {
		if strings.EqualFold(s, name) {
			return BumpType(i), nil
		}
	}
	return None, fmt.Errorf("unknown bump type %q (expected major, minor, patch or none)", s)
}

// MaxBump returns the more severe of a and b.
func MaxBump(a, b BumpType) BumpType {
	if a > b {
		return a
	}
	return b
}

// MarshalText implements encoding.TextMarshaler.
func (b BumpType) MarshalText() ([]byte, error) {
	if b < None || b > Major {
		return nil, fmt.Errorf("cannot marshal %s", b)
	}
	return []byte(b.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (b *BumpType) UnmarshalText(data []byte) error {
	parsed, err := ParseBumpType(string(data))
	if err != nil {
		return err
	}
	*b = parsed
	return nil
}
