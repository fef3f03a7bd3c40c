// Package changelog turns conventional commits into release notes.
//
// This package implements:
//   - A fixed, ordered set of change categories with display labels
//   - Categorization of commits into a Report, tracking breaking changes
//   - Markdown rendering in full and compact (release page) layouts
//   - A machine-readable Summary derived from the same Report
//   - Colored terminal output for interactive runs
//
// Everything here is pure: commits come in as values and text goes out to an
// io.Writer. Reading history is the job of the git package.
package changelog
