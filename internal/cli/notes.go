package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/semrel/internal/changelog"
	"github.com/ariel-frischer/semrel/internal/config"
	"github.com/ariel-frischer/semrel/internal/release"
)

var notesCmd = &cobra.Command{
	Use:   "notes",
	Short: "Generate categorized release notes",
	Long: `Group the commits between two revisions by conventional-commit type and
render them as markdown. A JSON summary with per-category counts is written
next to the notes.`,
	Example: `  # Notes since the last tag
  semrel notes --version 1.4.0

  # Body for a GitHub release
  semrel notes --from v1.3.0 --compact -o build/release-body.md

  # Show the notes in the terminal as well, with commit hashes
  semrel notes --preview --hashes`,
	Args: cobra.NoArgs,
	RunE: runNotes,
}

func init() {
	notesCmd.Flags().String("from", "", "Start revision, exclusive (default: nearest tag, else first commit)")
	notesCmd.Flags().String("to", "", "End revision, inclusive (default: HEAD)")
	notesCmd.Flags().String("version", "", "Version label for the title and summary")
	notesCmd.Flags().StringP("output", "o", "", "Markdown output path (default: release-notes/release-notes.md)")
	notesCmd.Flags().Bool("compact", false, "Only breaking changes and change sections, for release bodies")
	notesCmd.Flags().Bool("github-format", false, "Alias for --compact")
	notesCmd.Flags().String("summary-file", "", "Summary file name, written next to the notes (default: release-summary.json)")
	notesCmd.Flags().Bool("preview", false, "Also print the categorized changes to the terminal")
	notesCmd.Flags().Bool("hashes", false, "Prefix preview entries with their short commit hash")
	notesCmd.Flags().Int("width", 0, "Wrap preview entries at this width (default: terminal width)")
	_ = notesCmd.Flags().MarkHidden("github-format")
	rootCmd.AddCommand(notesCmd)
}

func runNotes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	applyNotesFlags(cmd, cfg)

	repo, err := openRepository(cfg)
	if err != nil {
		return err
	}

	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")
	version, _ := cmd.Flags().GetString("version")

	notes := &release.Notes{History: repo}
	var result *release.NotesResult
	err = newSpinner(cmd).Run("Reading commits", func() error {
		var genErr error
		result, genErr = notes.Generate(release.NotesOptions{
			From:    from,
			To:      to,
			Version: version,
			Compact: cfg.Notes.Compact,
		})
		return genErr
	})
	if err != nil {
		return refError(err, from, to)
	}

	summaryPath := summaryPathFor(cfg.Notes.Output, cfg.Notes.SummaryFile)
	if err := release.WriteFile(cfg.Notes.Output, []byte(result.Markdown)); err != nil {
		return err
	}
	if err := release.WriteJSON(summaryPath, result.Summary); err != nil {
		return err
	}

	p := newPrinter(cmd)
	if preview, _ := cmd.Flags().GetBool("preview"); preview {
		hashes, _ := cmd.Flags().GetBool("hashes")
		width, _ := cmd.Flags().GetInt("width")
		opts := changelog.FormatOptions{Plain: isPlain(cmd), MaxWidth: width, ShowHashes: hashes}
		if err := changelog.FormatTerminal(result.Report, cmd.OutOrStdout(), opts); err != nil {
			return fmt.Errorf("printing preview: %w", err)
		}
		fmt.Fprintln(cmd.OutOrStdout())
	}

	p.Success("Release notes generated")
	p.Field("Output", cfg.Notes.Output)
	p.Field("Summary", summaryPath)
	p.Field("Commits", changelog.FormatSummaryLine(result.Report, changelog.FormatOptions{Plain: isPlain(cmd)}))
	return nil
}

// applyNotesFlags overrides config values with flags given on the command line.
func applyNotesFlags(cmd *cobra.Command, cfg *config.Configuration) {
	if cmd.Flags().Changed("output") {
		cfg.Notes.Output, _ = cmd.Flags().GetString("output")
	}
	if cmd.Flags().Changed("summary-file") {
		cfg.Notes.SummaryFile, _ = cmd.Flags().GetString("summary-file")
	}
	if cmd.Flags().Changed("compact") {
		cfg.Notes.Compact, _ = cmd.Flags().GetBool("compact")
	}
	if github, _ := cmd.Flags().GetBool("github-format"); github {
		cfg.Notes.Compact = true
	}
}

// summaryPathFor places the summary file in the notes output directory. An
// absolute summary path is used as is.
func summaryPathFor(notesPath, summaryFile string) string {
	if filepath.IsAbs(summaryFile) {
		return summaryFile
	}
	return filepath.Join(filepath.Dir(notesPath), summaryFile)
}
