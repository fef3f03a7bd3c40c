package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/semrel/internal/testutil"
)

// fixture is a throwaway repository plus a scratch directory for outputs.
type fixture struct {
	*testutil.GitRepo
	t   *testing.T
	dir string
	out string
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	g := testutil.NewGitRepo(t)
	return &fixture{GitRepo: g, t: t, dir: g.Dir, out: t.TempDir()}
}

// path returns a path in the scratch directory.
func (f *fixture) path(name string) string {
	return filepath.Join(f.out, name)
}

func (f *fixture) writeFile(name, content string) string {
	f.t.Helper()
	p := f.path(name)
	require.NoError(f.t, os.MkdirAll(filepath.Dir(p), 0o755))
	require.NoError(f.t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func (f *fixture) readFile(name string) string {
	f.t.Helper()
	data, err := os.ReadFile(f.path(name))
	require.NoError(f.t, err)
	return string(data)
}

func (f *fixture) readJSON(name string) map[string]any {
	f.t.Helper()
	var v map[string]any
	require.NoError(f.t, json.Unmarshal([]byte(f.readFile(name)), &v))
	return v
}

// execute runs the root command with args and captures its output. The
// command tree is global, so flags are reset first and tests using it must
// not run in parallel.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	resetFlags(rootCmd)
	var outBuf, errBuf bytes.Buffer
	rootCmd.SetOut(&outBuf)
	rootCmd.SetErr(&errBuf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err = rootCmd.Execute()
	return outBuf.String(), errBuf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}
