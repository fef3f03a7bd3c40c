package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ariel-frischer/semrel/internal/fileutil"
)

// codec edits one encoding in memory. encode receives a nil orig when the
// file is being created.
type codec interface {
	decode(data []byte, keys Keys) (Data, error)
	encode(orig []byte, keys Keys, d Data) ([]byte, error)
}

var codecs = map[Format]codec{
	FormatYAML:  yamlCodec{},
	FormatJSON:  jsonCodec{},
	FormatPlist: plistCodec{},
}

// File is a manifest stored on disk.
type File struct {
	Path   string
	Format Format
	Keys   Keys
	// Create allows Write to create the file when it does not exist.
	Create bool
}

// Options configures NewFile.
type Options struct {
	// Format overrides extension based detection when set.
	Format string
	Keys   Keys
	Create bool
}

// NewFile returns a File store for path. Empty key names take the format's
// defaults.
func NewFile(path string, opts Options) (*File, error) {
	var (
		format Format
		err    error
	)
	if opts.Format != "" {
		format, err = ParseFormat(opts.Format)
	} else {
		format, err = DetectFormat(path)
	}
	if err != nil {
		return nil, err
	}

	return &File{
		Path:   path,
		Format: format,
		Keys:   opts.Keys.withDefaults(format),
		Create: opts.Create,
	}, nil
}

// Read implements Store.
func (f *File) Read() (Data, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Data{}, fmt.Errorf("%w: %s", ErrNotFound, f.Path)
		}
		return Data{}, fmt.Errorf("reading manifest %s: %w", f.Path, err)
	}

	d, err := codecs[f.Format].decode(data, f.Keys)
	if err != nil {
		return Data{}, &ParseError{Path: f.Path, Err: err}
	}
	return d, nil
}

// Write implements Store. The file is read, edited in memory and replaced
// atomically; on any error it is left as it was.
func (f *File) Write(d Data) error {
	orig, err := os.ReadFile(f.Path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return &WriteError{Path: f.Path, Err: err}
		}
		if !f.Create {
			return &WriteError{Path: f.Path, Err: ErrNotFound}
		}
		orig = nil
	}

	out, err := codecs[f.Format].encode(orig, f.Keys, d)
	if err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}

	if err := fileutil.WriteAtomic(f.Path, out); err != nil {
		return &WriteError{Path: f.Path, Err: err}
	}
	return nil
}
