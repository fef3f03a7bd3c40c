package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/build"
)

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information",
	Long:    "Display version, commit, build date, and Go version information for semrel",
	Example: `  # Show version info
  semrel version

  # Plain output (for scripts)
  semrel version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if isPlain(cmd) {
			printPlainVersion(cmd)
			return
		}
		printPrettyVersion(cmd)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(cmd *cobra.Command) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "semrel %s\n", build.Version)
	fmt.Fprintf(out, "commit: %s\n", build.Commit)
	fmt.Fprintf(out, "built: %s\n", build.BuildDate)
	fmt.Fprintf(out, "go: %s\n", runtime.Version())
	fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

func printPrettyVersion(cmd *cobra.Command) {
	p := newPrinter(cmd)
	p.Header("semrel " + build.Version)
	p.Field("Commit", build.ShortCommit())
	p.Field("Built", build.BuildDate)
	p.Field("Go", runtime.Version())
	p.Field("Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH))
}
