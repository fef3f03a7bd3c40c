package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/config"
	clierrors "github.com/ariel-frischer/semrel/internal/errors"
	"github.com/ariel-frischer/semrel/internal/manifest"
	"github.com/ariel-frischer/semrel/internal/output"
	"github.com/ariel-frischer/semrel/internal/release"
)

var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Compute the next version from conventional commits",
	Long: `Analyze the commits between two revisions and bump the current version by
the most significant change found: a breaking change bumps major, feat bumps
minor, and every other commit bumps patch.

The current version is read from the manifest, falling back to the nearest
tag and then to 0.0.0. When the version changes, the manifest is rewritten
once and a numeric build counter is incremented.`,
	Example: `  # Bump since the last tag and update version.yml
  semrel bump --manifest version.yml

  # Explicit range, no writes
  semrel bump --from v1.2.0 --to HEAD --dry-run

  # Write the result record for CI
  semrel bump --output-json build/version.json`,
	Args: cobra.NoArgs,
	RunE: runBump,
}

func init() {
	bumpCmd.Flags().String("from", "", "Start revision, exclusive (default: nearest tag, else first commit)")
	bumpCmd.Flags().String("to", "", "End revision, inclusive (default: HEAD)")
	bumpCmd.Flags().Bool("dry-run", false, "Compute and report without writing the manifest")
	bumpCmd.Flags().String("output-json", "", "Write the result record as JSON to this path")
	bumpCmd.Flags().String("manifest", "", "Manifest file holding the version (yaml, json or plist)")
	bumpCmd.Flags().Bool("create-manifest", false, "Create the manifest if it does not exist")
	rootCmd.AddCommand(bumpCmd)
}

func runBump(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyBumpFlags(cmd, cfg)

	if cfg.Manifest.Create && cfg.Manifest.Path == "" {
		return clierrors.ManifestRequired()
	}

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}

	store, err := openManifest(cfg.Manifest)
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	dryRun, _ := cmd.Flags().GetBool("dry-run")

	var warns warnings
	bumper := &release.Bumper{History: repo, Manifest: store, Warn: warns.add}

	var result *release.BumpResult
	var runErr error
	_ = newSpinner(cmd).Run("Analyzing commits", func() error {
		result, runErr = bumper.Run(release.BumpOptions{
			From:      from,
			To:        to,
			TagPrefix: cfg.TagPrefix,
			DryRun:    dryRun,
		})
		return runErr
	})

	p := newPrinter(cmd)
	warns.print(output.NewPrinter(cmd.ErrOrStderr(), isPlain(cmd)))
	if result == nil {
		return refError(runErr, from, to)
	}

	printBumpResult(p, result, cfg.Manifest.Path)
	if runErr != nil {
		return runErr
	}

	if cfg.Bump.OutputJSON != "" {
		if err := release.WriteJSON(cfg.Bump.OutputJSON, result); err != nil {
			return err
		}
		p.Success("Version info saved to " + cfg.Bump.OutputJSON)
	}
	return nil
}

// applyBumpFlags overrides config values with flags given on the command line.
func applyBumpFlags(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("manifest") {
		cfg.Manifest.Path, _ = cmd.Flags().GetString("manifest")
	}
	if cmd.Flags().Changed("create-manifest") {
		cfg.Manifest.Create, _ = cmd.Flags().GetBool("create-manifest")
	}
	if cmd.Flags().Changed("output-json") {
		cfg.Bump.OutputJSON, _ = cmd.Flags().GetString("output-json")
	}
}

// openManifest returns the configured manifest store, or nil when no
// manifest path is set.
func openManifest(mc config.ManifestConfig) (manifest.Store, error) {
	if mc.Path == "" {
		return nil, nil
	}
	store, err := manifest.NewFile(mc.Path, manifest.Options{
		Format: mc.Format,
		Keys:   manifest.Keys{Version: mc.VersionKey, Build: mc.BuildKey},
		Create: mc.Create,
	})
	if err != nil {
		return nil, clierrors.WrapWithMessage(err, clierrors.Configuration, fmt.Sprintf("manifest %s: %v", mc.Path, err),
			"Set manifest.format to yaml, json or plist")
	}
	return store, nil
}

func printBumpResult(p *output.Printer, r *release.BumpResult, manifestPath string) {
	p.Header("Version Analysis")
	p.Field("Current version", fmt.Sprintf("%s (%s)", r.CurrentVersion, r.Source))
	p.Field("Commits analyzed", fmt.Sprintf("%d (%s..%s)", r.CommitsAnalyzed, shortRef(r.FromRef), r.ToRef))
	p.Field("Bump type", r.BumpType)
	p.Field("New version", r.NewVersion)
	fmt.Fprintln(p.Out)

	switch {
	case !r.VersionChanged:
		p.Success("No version change needed")
	case r.DryRun:
		p.DryRun("would update version to " + r.NewVersion)
		if manifestPath != "" {
			p.DryRun("would write " + manifestPath)
		}
	case r.ManifestUpdated:
		msg := fmt.Sprintf("Version updated to %s in %s", r.NewVersion, manifestPath)
		if r.Build != "" {
			msg += fmt.Sprintf(" (build %s)", r.Build)
		}
		p.Success(msg)
	case manifestPath == "":
		p.Success("Next version is " + r.NewVersion + " (no manifest configured)")
	}
}

// shortRef abbreviates full commit hashes for display.
func shortRef(ref string) string {
	if len(ref) == 40 {
		return ref[:7]
	}
	return ref
}
