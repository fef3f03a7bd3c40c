package release

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ariel-frischer/semrel/internal/manifest"
	"github.com/ariel-frischer/semrel/internal/semver"
)

// VersionSource says where the current version came from.
type VersionSource string

const (
	SourceManifest VersionSource = "manifest"
	SourceTag      VersionSource = "tag"
	SourceDefault  VersionSource = "default"
)

// Current is the version a release starts from.
type Current struct {
	Version semver.Version
	Source  VersionSource
	// Manifest holds the fields read from the manifest. Present is false when
	// there is no manifest or it could not be read.
	Manifest manifest.Data
	Present  bool
}

// CurrentVersion determines the version to bump from. The manifest version
// wins when it parses, after padding short forms like "1.0". A missing or
// unreadable manifest, or a malformed version in it, falls back to the
// nearest tag behind ref with tagPrefix stripped. With no tag either, the
// version is 0.0.0. A manifest without a version field also yields 0.0.0.
// A nil store means no manifest is configured.
//
// A tag that does not parse as a version is an InvalidVersionError.
func CurrentVersion(store manifest.Store, h History, ref, tagPrefix string, warn WarnFunc) (Current, error) {
	var cur Current

	if store != nil {
		data, err := store.Read()
		switch {
		case err == nil:
			cur.Manifest = data
			cur.Present = true
			raw := strings.TrimSpace(data.Version)
			if raw == "" {
				warn.warn("manifest has no version field, starting from 0.0.0")
				cur.Source = SourceDefault
				return cur, nil
			}
			v, perr := semver.Parse(semver.Coerce(raw))
			if perr == nil {
				cur.Version = v
				cur.Source = SourceManifest
				logDebug("[release] current version %s from manifest", v)
				return cur, nil
			}
			warn.warn("manifest version %q is malformed, falling back to tags", raw)
		case errors.Is(err, manifest.ErrNotFound):
			warn.warn("manifest not found, falling back to tags")
		default:
			warn.warn("cannot read manifest (%v), falling back to tags", err)
		}
	}

	tag, err := h.NearestTag(ref)
	if err != nil {
		return Current{}, fmt.Errorf("reading current version from tags: %w", err)
	}
	if tag == "" {
		warn.warn("no version tags found, starting from 0.0.0")
		cur.Source = SourceDefault
		return cur, nil
	}

	v, err := semver.Parse(semver.TrimTagPrefix(tag, tagPrefix))
	if err != nil {
		return Current{}, fmt.Errorf("tag %s: %w", tag, err)
	}
	cur.Version = v
	cur.Source = SourceTag
	logDebug("[release] current version %s from tag %s", v, tag)
	return cur, nil
}

// NextBuild increments a build counter. It reports false, and leaves the
// counter alone, when build is not an integer.
func NextBuild(build string) (string, bool) {
	n, err := strconv.ParseInt(strings.TrimSpace(build), 10, 64)
	if err != nil {
		return build, false
	}
	return strconv.FormatInt(n+1, 10), true
}
