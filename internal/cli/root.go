package cli

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/release"
)

var rootCmd = &cobra.Command{
	Use:   "semrel",
	Short: "Conventional-commit version bumping and release notes",
	Long: `semrel reads the commits between two revisions, derives the next semantic
version from their conventional-commit subjects, and renders categorized
release notes. It reads git history directly, so no git binary is required.`,
	Example: `  # Compute and apply the next version
  semrel bump --manifest version.yml

  # Preview the bump without writing anything
  semrel bump --dry-run --output-json build/version.json

  # Generate release notes since the last tag
  semrel notes --version 1.4.0 -o release-notes/release-notes.md`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool("debug")
		configureDebugLogging(debug)
	},
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "Path to config file (default: .semrel/config.yml)")
	rootCmd.PersistentFlags().String("repo", "", "Path inside the git repository (default: current directory)")
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging and detailed error hints")
	rootCmd.PersistentFlags().Bool("plain", false, "Disable colors and the progress spinner")
}

// Execute runs the root command and prints a single diagnostic line on failure.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		debug, _ := rootCmd.PersistentFlags().GetBool("debug")
		plain, _ := rootCmd.PersistentFlags().GetBool("plain")
		reportError(rootCmd.ErrOrStderr(), err, debug, plain)
	}
	return err
}

// reportError prints err as one "Error [Category]: message" line. Remediation
// hints follow only in debug mode.
func reportError(w io.Writer, err error, debug, plain bool) {
	cliErr := clierrors.Classify(err)
	if debug {
		if plain {
			fmt.Fprint(w, clierrors.FormatErrorPlain(cliErr))
		} else {
			clierrors.FprintError(w, cliErr)
		}
		return
	}
	fmt.Fprintln(w, clierrors.FormatErrorLine(cliErr, !plain))
}

func configureDebugLogging(debug bool) {
	if !debug {
		git.SetDebugLogger(nil)
		release.SetDebugLogger(nil)
		return
	}
	logger := log.New(os.Stderr, "", log.Ltime)
	git.SetDebugLogger(logger.Printf)
	release.SetDebugLogger(logger.Printf)
}
