package cli

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotesCmd_WritesNotesAndSummary(t *testing.T) {
	f := releasedFixture(t)
	f.Commit("feat!: new config format")

	stdout, _, err := execute(t, "notes", "--plain", "--repo", f.dir,
		"--version", "2.0.0", "-o", f.path("release-notes/notes.md"))
	require.NoError(t, err)

	notes := f.readFile("release-notes/notes.md")
	assert.Contains(t, notes, "# Release Notes - v2.0.0")
	assert.Contains(t, notes, "_Generated from commits v1.0.0..HEAD_")
	assert.Contains(t, notes, "## ⚠️ BREAKING CHANGES\n\n- new config format")
	assert.Contains(t, notes, "- auth: add login")

	summary := f.readJSON("release-notes/release-summary.json")
	assert.Equal(t, "2.0.0", summary["version"])
	assert.InDelta(t, 3, summary["total_commits"], 0)
	assert.Equal(t, []any{"feat", "fix"}, summary["categories"])
	assert.InDelta(t, 1, summary["breaking_changes"], 0)

	assert.Contains(t, stdout, "Release notes generated")
	assert.Contains(t, stdout, "3 commits across 2 categories, 1 breaking change")
}

func TestNotesCmd_Compact(t *testing.T) {
	tests := map[string]struct {
		flag string
	}{
		"compact":       {flag: "--compact"},
		"github format": {flag: "--github-format"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := releasedFixture(t)

			_, _, err := execute(t, "notes", "--plain", "--repo", f.dir, tt.flag,
				"-o", f.path("body.md"), "--summary-file", "summary.json")
			require.NoError(t, err)

			notes := f.readFile("body.md")
			assert.NotContains(t, notes, "# Release Notes")
			assert.Contains(t, notes, "## Changes")
			assert.Equal(t, "unknown", f.readJSON("summary.json")["version"])
		})
	}
}

func TestNotesCmd_Preview(t *testing.T) {
	f := releasedFixture(t)

	stdout, _, err := execute(t, "notes", "--plain", "--repo", f.dir, "--preview", "-o", f.path("notes.md"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "auth: add login")
	assert.Contains(t, stdout, "crash on start")
}

func TestNotesCmd_PreviewOptions(t *testing.T) {
	f := releasedFixture(t)
	hash := f.Commit("docs: describe the configuration file layout in detail").String()

	t.Run("hashes", func(t *testing.T) {
		stdout, _, err := execute(t, "notes", "--plain", "--repo", f.dir, "--preview", "--hashes", "--width", "200", "-o", f.path("notes.md"))
		require.NoError(t, err)
		assert.Contains(t, stdout, "  - "+hash[:7]+" describe the configuration file layout in detail")
	})

	t.Run("width", func(t *testing.T) {
		stdout, _, err := execute(t, "notes", "--plain", "--repo", f.dir, "--preview", "--width", "30", "-o", f.path("notes.md"))
		require.NoError(t, err)
		assert.Contains(t, stdout, "  - describe the\n    configuration file layout\n    in detail")
	})
}

func TestNotesCmd_UnknownRef(t *testing.T) {
	f := releasedFixture(t)

	_, _, err := execute(t, "notes", "--plain", "--repo", f.dir, "--to", "nope", "-o", f.path("notes.md"))
	require.Error(t, err)
	assert.NoFileExists(t, f.path("notes.md"))
}

func TestSummaryPathFor(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		notes, summary string
		want           string
	}{
		"next to notes": {notes: "release-notes/notes.md", summary: "release-summary.json", want: "release-notes/release-summary.json"},
		"current dir":   {notes: "notes.md", summary: "s.json", want: "s.json"},
		"absolute":      {notes: "out/notes.md", summary: "/tmp/s.json", want: "/tmp/s.json"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, summaryPathFor(tt.notes, tt.summary))
		})
	}
}

func TestNotesCmd_UsesRepositoryConfig(t *testing.T) {
	f := releasedFixture(t)
	_, _, err := execute(t, "init", "--repo", f.dir)
	require.NoError(t, err)

	configPath := filepath.Join(f.dir, ".semrel", "config.yml")
	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := strings.Replace(string(data), "output: release-notes/release-notes.md", "output: docs/notes.md", 1)
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0o644))

	sub := filepath.Join(f.dir, "cmd", "app")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	tests := map[string]struct {
		repo string
	}{
		"repository root": {repo: f.dir},
		"subdirectory":    {repo: sub},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			notesPath := filepath.Join(f.dir, "docs", "notes.md")
			require.NoError(t, os.RemoveAll(filepath.Dir(notesPath)))

			stdout, _, err := execute(t, "notes", "--plain", "--repo", tt.repo)
			require.NoError(t, err)
			assert.Contains(t, stdout, notesPath)
			assert.FileExists(t, notesPath)
			assert.FileExists(t, filepath.Join(f.dir, "docs", "release-summary.json"))
			assert.NoDirExists(t, filepath.Join(f.dir, "release-notes"))
		})
	}
}
