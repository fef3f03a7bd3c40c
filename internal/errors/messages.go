package errors

import (
	stderrors "errors"
	"fmt"

	"github.com/ariel-frischer/semrel/internal/config"
	"github.com/ariel-frischer/semrel/internal/git"
	"github.com/ariel-frischer/semrel/internal/manifest"
	"github.com/ariel-frischer/semrel/internal/semver"
)

// Common error messages for the semrel CLI.
// These templates ensure consistent, actionable error messages.

// InvalidRef creates an error for a --from/--to value that does not resolve.
func InvalidRef(flag, ref string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("%s %q does not name a commit", flag, ref),
		fmt.Sprintf("semrel bump|notes %s <tag|branch|commit>", flag),
		"Check the spelling with: git rev-parse "+ref,
		"Fetch tags if the ref is a release tag: git fetch --tags",
	)
}

// ManifestRequired creates an error for --create-manifest without a manifest path.
func ManifestRequired() *CLIError {
	return NewArgumentErrorWithUsage(
		"--create-manifest needs a manifest path",
		"semrel bump --manifest <path> --create-manifest",
		"Pass --manifest or set manifest.path in .semrel/config.yml",
	)
}

// Classify converts err into a CLIError, choosing the category and
// remediation from the typed errors it wraps. CLIErrors pass through.
func Classify(err error) *CLIError {
	if err == nil {
		return nil
	}
	if cliErr := AsCLIError(err); cliErr != nil {
		return cliErr
	}

	var (
		versionErr  *semver.InvalidVersionError
		historyErr  *git.HistoryUnavailableError
		writeErr    *manifest.WriteError
		parseErr    *manifest.ParseError
		validateErr *config.ValidationError
	)

	switch {
	case stderrors.As(err, &versionErr):
		return &CLIError{
			Category: Version,
			Message:  err.Error(),
			Cause:    err,
			Remediation: []string{
				"Versions must look like MAJOR.MINOR.PATCH, optionally with -prerelease",
				"Fix the manifest value or the release tag, or set tag_prefix to match your tags",
			},
		}
	case stderrors.As(err, &historyErr):
		return &CLIError{
			Category: History,
			Message:  err.Error(),
			Cause:    err,
			Remediation: []string{
				"Run semrel inside a git repository, or pass --repo <path>",
				"Make sure --from and --to name existing commits, tags or branches",
				"In CI, fetch the full history: git fetch --unshallow --tags",
			},
		}
	case stderrors.As(err, &writeErr):
		remediation := []string{"Check that the manifest path is writable"}
		if stderrors.Is(err, manifest.ErrNotFound) {
			remediation = []string{
				"Create the manifest first, or pass --create-manifest",
				"Use --dry-run to compute the version without writing",
			}
		}
		return &CLIError{Category: Manifest, Message: err.Error(), Cause: err, Remediation: remediation}
	case stderrors.As(err, &parseErr):
		return &CLIError{
			Category:    Manifest,
			Message:     err.Error(),
			Cause:       err,
			Remediation: []string{"Fix the manifest syntax, or set manifest.format if the extension is misleading"},
		}
	case stderrors.As(err, &validateErr):
		return &CLIError{
			Category:    Configuration,
			Message:     err.Error(),
			Cause:       err,
			Remediation: []string{"Fix .semrel/config.yml or the SEMREL_* environment variables"},
		}
	}

	return Wrap(err, Runtime)
}
