package manifest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestYAMLRead(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		content string
		keys    Keys
		want    Data
		wantErr bool
	}{
		"version and build": {
			content: "name: app\nversion: 1.2.3\nbuild: 42\n",
			want:    Data{Version: "1.2.3", Build: "42"},
		},
		"two component version": {
			content: "version: 1.0\n",
			want:    Data{Version: "1.0"},
		},
		"quoted values": {
			content: "version: \"2.0.0-rc.1\"\nbuild: \"7\"\n",
			want:    Data{Version: "2.0.0-rc.1", Build: "7"},
		},
		"missing version": {
			content: "name: app\n",
			want:    Data{},
		},
		"empty file": {
			content: "",
			want:    Data{},
		},
		"custom keys": {
			content: "appVersion: 3.1.0\nbuildNumber: 9\n",
			keys:    Keys{Version: "appVersion", Build: "buildNumber"},
			want:    Data{Version: "3.1.0", Build: "9"},
		},
		"nested version is an error": {
			content: "version:\n  major: 1\n",
			wantErr: true,
		},
		"top level list": {
			content: "- 1\n- 2\n",
			wantErr: true,
		},
		"syntax error": {
			content: "version: [1.0\n",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f, err := NewFile(writeManifest(t, "version.yaml", tt.content), Options{Keys: tt.keys})
			require.NoError(t, err)

			got, err := f.Read()
			if tt.wantErr {
				var perr *ParseError
				assert.ErrorAs(t, err, &perr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestYAMLWritePreservesDocument(t *testing.T) {
	t.Parallel()

	content := `# Application manifest
name: app
version: 1.0   # bumped by CI
build: 41
description: "keep me"
`
	path := writeManifest(t, "version.yaml", content)
	f, err := NewFile(path, Options{})
	require.NoError(t, err)

	require.NoError(t, f.Write(Data{Version: "1.1.0", Build: "42"}))

	out := readBack(t, path)
	assert.Contains(t, out, "# Application manifest")
	assert.Contains(t, out, "# bumped by CI")
	assert.Contains(t, out, "version: 1.1.0")
	assert.Contains(t, out, "build: 42")
	assert.Contains(t, out, `description: "keep me"`)
	assert.Less(t, strings.Index(out, "name:"), strings.Index(out, "version:"))

	got, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, Data{Version: "1.1.0", Build: "42"}, got)
}

func TestYAMLWriteLeavesBuildWhenUnset(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "version.yaml", "version: 1.0.0\nbuild: nightly\n")
	f, err := NewFile(path, Options{})
	require.NoError(t, err)

	require.NoError(t, f.Write(Data{Version: "1.0.1"}))
	got, err := f.Read()
	require.NoError(t, err)
	assert.Equal(t, Data{Version: "1.0.1", Build: "nightly"}, got)
}

func TestYAMLWriteAddsMissingVersion(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "version.yaml", "name: app\n")
	f, err := NewFile(path, Options{})
	require.NoError(t, err)

	require.NoError(t, f.Write(Data{Version: "0.1.0"}))
	out := readBack(t, path)
	assert.Equal(t, "name: app\nversion: 0.1.0\n", out)
}

func TestYAMLWriteKeepsQuotedBuild(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "version.yaml", "version: 1.0.0\nbuild: \"5\"\n")
	f, err := NewFile(path, Options{})
	require.NoError(t, err)

	require.NoError(t, f.Write(Data{Version: "1.0.1", Build: "6"}))
	assert.Contains(t, readBack(t, path), `build: "6"`)
}
