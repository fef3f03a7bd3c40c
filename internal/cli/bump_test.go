package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/manifest"
)

// releasedFixture has v1.0.0 on the first commit followed by a feat and a fix.
func releasedFixture(t *testing.T) *fixture {
	t.Helper()

	f := newFixture(t)
	f.Tag("v1.0.0", f.Commit("chore: initial commit"))
	f.Commit("feat(auth): add login")
	f.Commit("fix: crash on start")
	return f
}

func TestBumpCmd_UpdatesManifest(t *testing.T) {
	f := releasedFixture(t)
	manifestPath := f.writeFile("version.yml", "name: app\nversion: 1.0.0\nbuild: 4\n")

	stdout, _, err := execute(t, "bump", "--plain", "--repo", f.dir,
		"--manifest", manifestPath, "--output-json", f.path("build/version.json"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Version Analysis")
	assert.Contains(t, stdout, "Version updated to 1.1.0")
	assert.Equal(t, "name: app\nversion: 1.1.0\nbuild: 5\n", f.readFile("version.yml"))

	result := f.readJSON("build/version.json")
	assert.Equal(t, "1.0.0", result["current_version"])
	assert.Equal(t, "1.1.0", result["new_version"])
	assert.Equal(t, "minor", result["bump_type"])
	assert.Equal(t, "v1.0.0", result["from_ref"])
	assert.Equal(t, "HEAD", result["to_ref"])
	assert.InDelta(t, 2, result["commits_analyzed"], 0)
	assert.Equal(t, true, result["version_changed"])
	assert.Equal(t, true, result["manifest_updated"])
}

func TestBumpCmd_DryRun(t *testing.T) {
	f := releasedFixture(t)
	manifestPath := f.writeFile("version.yml", "version: 1.0.0\nbuild: 4\n")

	stdout, _, err := execute(t, "bump", "--plain", "--repo", f.dir, "--manifest", manifestPath,
		"--dry-run", "--output-json", f.path("version.json"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "[dry-run] would update version to 1.1.0")
	assert.Equal(t, "version: 1.0.0\nbuild: 4\n", f.readFile("version.yml"))

	result := f.readJSON("version.json")
	assert.Equal(t, true, result["dry_run"])
	assert.Equal(t, false, result["manifest_updated"])
}

func TestBumpCmd_NoChangeNeeded(t *testing.T) {
	f := releasedFixture(t)
	manifestPath := f.writeFile("version.yml", "version: 1.0.0\n")

	stdout, _, err := execute(t, "bump", "--plain", "--repo", f.dir, "--manifest", manifestPath, "--from", "HEAD")
	require.NoError(t, err)

	assert.Contains(t, stdout, "No version change needed")
	assert.Equal(t, "version: 1.0.0\n", f.readFile("version.yml"))
}

func TestBumpCmd_TagsOnly(t *testing.T) {
	f := releasedFixture(t)

	stdout, _, err := execute(t, "bump", "--plain", "--repo", f.dir, "--output-json", f.path("version.json"))
	require.NoError(t, err)

	assert.Contains(t, stdout, "Next version is 1.1.0")
	assert.Equal(t, "1.0.0", f.readJSON("version.json")["current_version"])
}

func TestBumpCmd_Errors(t *testing.T) {
	tests := map[string]struct {
		args         func(f *fixture) []string
		wantCategory clierrors.ErrorCategory
	}{
		"create without manifest path": {
			args:         func(f *fixture) []string { return []string{"--create-manifest"} },
			wantCategory: clierrors.Argument,
		},
		"unknown from ref": {
			args:         func(f *fixture) []string { return []string{"--from", "v9.9.9"} },
			wantCategory: clierrors.Argument,
		},
		"manifest missing": {
			args:         func(f *fixture) []string { return []string{"--manifest", f.path("missing.yml")} },
			wantCategory: clierrors.Manifest,
		},
		"malformed tag": {
			args: func(f *fixture) []string {
				f.Tag("release-candidate", f.Commit("docs: notes"))
				f.Commit("fix: typo")
				return nil
			},
			wantCategory: clierrors.Version,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := releasedFixture(t)
			args := append([]string{"bump", "--plain", "--repo", f.dir}, tt.args(f)...)

			_, _, err := execute(t, args...)
			require.Error(t, err)
			assert.Equal(t, tt.wantCategory, clierrors.Classify(err).Category, "error: %v", err)
		})
	}
}

func TestBumpCmd_CreateManifest(t *testing.T) {
	f := newFixture(t)
	f.Commit("feat: first feature")
	f.Commit("fix: follow up")

	_, _, err := execute(t, "bump", "--plain", "--repo", f.dir,
		"--manifest", f.path("app/version.json"), "--create-manifest")
	require.NoError(t, err)

	store, err := manifest.NewFile(f.path("app/version.json"), manifest.Options{})
	require.NoError(t, err)
	data, err := store.Read()
	require.NoError(t, err)
	assert.Equal(t, "0.0.1", data.Version)
}

func TestBumpCmd_ManifestFromRepositoryConfig(t *testing.T) {
	f := releasedFixture(t)
	manifestPath := filepath.Join(f.dir, "app", "version.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(manifestPath), 0o755))
	require.NoError(t, os.WriteFile(manifestPath, []byte("version: 1.0.0\nbuild: 1\n"), 0o644))
	configPath := filepath.Join(f.dir, ".semrel", "config.yml")
	require.NoError(t, os.MkdirAll(filepath.Dir(configPath), 0o755))
	require.NoError(t, os.WriteFile(configPath, []byte("manifest:\n  path: app/version.yml\n"), 0o644))

	stdout, _, err := execute(t, "bump", "--plain", "--repo", filepath.Join(f.dir, "app"))
	require.NoError(t, err)
	assert.Contains(t, stdout, "Version updated to 1.1.0")

	data, err := os.ReadFile(manifestPath)
	require.NoError(t, err)
	assert.Equal(t, "version: 1.1.0\nbuild: 2\n", string(data))
}
