package cli

import (
	stderrors "errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/config"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/output"
	"github.com/ariel-frischer/semrel/internal/progress"
)

// loadConfig loads the layered configuration and applies the --repo flag.
// The project config and relative paths in it belong to the repository root.
func loadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString("config")
	dir := projectDir(cmd)
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath:    configPath,
		ProjectDir:    dir,
		WarningWriter: cmd.ErrOrStderr(),
	})
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, err.Error(),
			"Check the config file syntax, or run without --config to use defaults")
	}
	cfg.ResolvePaths(dir)

	if cmd.Flags().Changed("repo") {
		cfg.Repo, _ = cmd.Flags().GetString("repo")
	}
	return cfg, nil
}

// projectDir returns the root of the work tree holding --repo (falling back
// to SEMREL_REPO, then the current directory). Outside a repository the
// requested path itself is used.
func projectDir(cmd *cobra.Command) string {
	dir, _ := cmd.Flags().GetString("repo")
	if !cmd.Flags().Changed("repo") {
		dir = os.Getenv(config.EnvPrefix + "REPO")
	}

	repo, err := git.Open(dir)
	if err != nil {
		return dir
	}
	root, err := repo.Root()
	if err != nil {
		return dir
	}
	return root
}

// openRepository opens the git repository containing cfg.Repo.
func openRepository(cfg *config.Configuration) (*git.Repository, error) {
	repo, err := git.Open(cfg.Repo)
	if err != nil {
		return nil, fmt.Errorf("opening repository: %w", err)
	}
	repo.SetTagPrefix(cfg.TagPrefix)
	return repo, nil
}

// isPlain reports whether --plain was given.
func isPlain(cmd *cobra.Command) bool {
	plain, _ := cmd.Flags().GetBool("plain")
	return plain
}

// newPrinter returns a status printer for stdout.
func newPrinter(cmd *cobra.Command) *output.Printer {
	return output.NewPrinter(cmd.OutOrStdout(), isPlain(cmd))
}

// newSpinner returns a spinner on stderr. It stays silent unless stderr is a
// terminal and neither --plain nor --debug is set.
func newSpinner(cmd *cobra.Command) *progress.Spinner {
	debug, _ := cmd.Flags().GetBool("debug")
	quiet := isPlain(cmd) || debug

	var caps progress.TerminalCapabilities
	if f, ok := cmd.ErrOrStderr().(*os.File); ok {
		caps = progress.DetectTerminalCapabilities(f)
	}
	return progress.NewSpinner(cmd.ErrOrStderr(), caps, quiet)
}

// warnings collects recoverable conditions reported while the spinner runs,
// so they can be printed once it stops.
type warnings []string

func (w *warnings) add(format string, args ...any) {
	*w = append(*w, fmt.Sprintf(format, args...))
}

func (w warnings) print(p *output.Printer) {
	for _, msg := range w {
		p.Warning(msg)
	}
}

// refError turns a history error on an explicit --from or --to value into an
// argument error naming the flag.
func refError(err error, from, to string) error {
	var histErr *git.HistoryUnavailableError
	if !stderrors.As(err, &histErr) {
		return err
	}
	switch {
	case from != "" && histErr.Ref == from:
		e := clierrors.InvalidRef("--from", from)
		e.Cause = err
		return e
	case to != "" && histErr.Ref == to:
		e := clierrors.InvalidRef("--to", to)
		e.Cause = err
		return e
	}
	return err
}
