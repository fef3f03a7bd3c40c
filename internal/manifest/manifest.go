// Package manifest reads and writes the version and build counter of a
// project manifest. The rest of semrel sees a manifest only through the
// Store interface; the on-disk encoding (YAML, JSON or a property list) is
// an implementation detail of the File store.
package manifest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned when the manifest file does not exist.
var ErrNotFound = errors.New("manifest not found")

// ParseError reports a manifest that exists but cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing manifest %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// WriteError reports a manifest that could not be updated. Nothing is
// written when it is returned.
type WriteError struct {
	Path string
	Err  error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("writing manifest %s: %v", e.Path, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

// Data holds the two manifest fields semrel cares about. An empty string
// means the field is absent.
type Data struct {
	Version string
	Build   string
}

// Store is a manifest backend.
type Store interface {
	// Read returns the current fields. It returns an error wrapping
	// ErrNotFound when there is no manifest.
	Read() (Data, error)
	// Write replaces the version, and the build counter when d.Build is set.
	// Every other field is left untouched.
	Write(d Data) error
}

// Format is a manifest encoding.
type Format string

const (
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
	FormatPlist Format = "plist"
)

// ParseFormat validates a format name. Matching is case-insensitive and
// "yml" is accepted as an alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "plist":
		return FormatPlist, nil
	}
	return "", fmt.Errorf("unknown manifest format %q (expected yaml, json or plist)", s)
}

// DetectFormat infers the format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	case ".plist":
		return FormatPlist, nil
	}
	return "", fmt.Errorf("cannot infer manifest format from %q; set manifest.format", path)
}

// Keys names the manifest fields.
type Keys struct {
	Version string
	Build   string
}

// DefaultKeys returns the conventional field names for f.
func DefaultKeys(f Format) Keys {
	if f == FormatPlist {
		return Keys{Version: "CFBundleShortVersionString", Build: "CFBundleVersion"}
	}
	return Keys{Version: "version", Build: "build"}
}

// withDefaults fills empty key names from DefaultKeys.
func (k Keys) withDefaults(f Format) Keys {
	def := DefaultKeys(f)
	if k.Version == "" {
		k.Version = def.Version
	}
	if k.Build == "" {
		k.Build = def.Build
	}
	return k
}
