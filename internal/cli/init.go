package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/config"
	"github.com/ariel-frischer/semrel/internal/fileutil"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a commented project config",
	Long: `Create .semrel/config.yml at the repository root with every option
listed alongside its default. Relative paths in it are resolved against the
repository root. An existing config is left unchanged unless --force
is given.`,
	Example: `  # Create .semrel/config.yml in the current directory
  semrel init

  # Create it in another repository, replacing any existing file
  semrel init --repo ../app --force`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolP("force", "f", false, "Overwrite an existing config")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	force, _ := cmd.Flags().GetBool("force")
	path := config.ProjectConfigPath(projectDir(cmd))
	p := newPrinter(cmd)

	if _, err := os.Stat(path); err == nil && !force {
		p.Warning(fmt.Sprintf("%s already exists (use --force to overwrite)", path))
		return nil
	}

	if err := fileutil.WriteAtomic(path, []byte(config.GetDefaultConfigTemplate())); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	p.Success("Created " + path)
	return nil
}
