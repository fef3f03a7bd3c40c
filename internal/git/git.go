// Package git reads revision history for semrel: commit subjects over a range,
// the nearest tag behind a revision, and the root commit. It uses the go-git
// library exclusively, so no git binary is needed on the build machine.
// The package never writes to the repository.
package git

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"

	"github.com/ariel-frischer/semrel/internal/changelog"
	"github.com/ariel-frischer/semrel/internal/semver"
)

// DefaultRef is the revision used when none is given.
const DefaultRef = "HEAD"

// DefaultTagPrefix is stripped from tag names before ranking them as versions.
const DefaultTagPrefix = "v"

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// HistoryUnavailableError reports that revision history could not be read:
// the repository is missing, a reference does not resolve, or an object is
// unreadable. It is always fatal.
type HistoryUnavailableError struct {
	Op  string
	Ref string
	Err error
}

func (e *HistoryUnavailableError) Error() string {
	if e.Ref == "" {
		return fmt.Sprintf("history unavailable: %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("history unavailable: %s %q: %v", e.Op, e.Ref, e.Err)
}

func (e *HistoryUnavailableError) Unwrap() error {
	return e.Err
}

// IsHistoryUnavailable reports whether err is or wraps a HistoryUnavailableError.
func IsHistoryUnavailable(err error) bool {
	var target *HistoryUnavailableError
	return errors.As(err, &target)
}

// Repository is a read-only view of a git repository.
type Repository struct {
	repo      *git.Repository
	path      string
	tagPrefix string
}

// Open opens the repository containing path, walking up the directory tree
// to find the .git directory. If path is empty, the current working
// directory is used.
func Open(path string) (*Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, &HistoryUnavailableError{Op: "open", Err: fmt.Errorf("getting current directory: %w", err)}
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, &HistoryUnavailableError{Op: "open", Ref: path, Err: err}
	}

	logDebug("[git] repository opened successfully")
	return &Repository{repo: repo, path: path, tagPrefix: DefaultTagPrefix}, nil
}

// Root returns the top-level directory of the work tree.
func (r *Repository) Root() (string, error) {
	wt, err := r.repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("reading worktree: %w", err)
	}
	return wt.Filesystem.Root(), nil
}

// FromRepository wraps an already opened go-git repository.
func FromRepository(repo *git.Repository) *Repository {
	return &Repository{repo: repo, tagPrefix: DefaultTagPrefix}
}

// SetTagPrefix sets the prefix stripped from tag names when several tags on
// one commit are ranked by version. An empty prefix compares names as is.
func (r *Repository) SetTagPrefix(prefix string) {
	r.tagPrefix = prefix
}

// resolveCommit resolves ref (branch, tag, hash or expression such as HEAD~2)
// to a commit. Annotated tags are peeled to their target commit.
func (r *Repository) resolveCommit(op, ref string) (*object.Commit, error) {
	if ref == "" {
		ref = DefaultRef
	}

	hash, err := r.repo.ResolveRevision(plumbing.Revision(ref))
	if err != nil {
		return nil, &HistoryUnavailableError{Op: op, Ref: ref, Err: err}
	}

	commit, err := r.repo.CommitObject(*hash)
	if err != nil {
		return nil, &HistoryUnavailableError{Op: op, Ref: ref, Err: fmt.Errorf("reading commit %s: %w", hash, err)}
	}
	return commit, nil
}

// CommitsBetween returns the commits reachable from to but not from from,
// newest first by committer time. An empty from means the full history of to.
// Subjects are the first line of each message; commits with a blank subject
// are skipped.
func (r *Repository) CommitsBetween(from, to string) ([]changelog.Commit, error) {
	if to == "" {
		to = DefaultRef
	}

	head, err := r.resolveCommit("list commits", to)
	if err != nil {
		return nil, err
	}

	excluded := map[plumbing.Hash]bool{}
	if from != "" {
		base, err := r.resolveCommit("list commits", from)
		if err != nil {
			return nil, err
		}
		err = object.NewCommitPreorderIter(base, nil, nil).ForEach(func(c *object.Commit) error {
			excluded[c.Hash] = true
			return nil
		})
		if err != nil {
			return nil, &HistoryUnavailableError{Op: "list commits", Ref: from, Err: err}
		}
	}

	logDebug("[git] listing commits %s..%s (%d excluded)", from, to, len(excluded))
	if excluded[head.Hash] {
		return nil, nil
	}

	var commits []changelog.Commit
	err = object.NewCommitIterCTime(head, excluded, nil).ForEach(func(c *object.Commit) error {
		subject := Subject(c.Message)
		if subject == "" {
			return nil
		}
		commits = append(commits, changelog.Commit{Hash: c.Hash.String(), Subject: subject})
		return nil
	})
	if err != nil {
		return nil, &HistoryUnavailableError{Op: "list commits", Ref: from + ".." + to, Err: err}
	}

	logDebug("[git] found %d commits", len(commits))
	return commits, nil
}

// Subject returns the first line of a commit message, trimmed.
func Subject(message string) string {
	line, _, _ := strings.Cut(strings.TrimLeft(message, "\r\n"), "\n")
	return strings.TrimSpace(line)
}

// NearestTag returns the name of the tag closest to ref in its ancestry,
// counting ref itself. When several tags point at the same commit the highest
// semantic version wins. It returns "" and no error when no tag is reachable.
func (r *Repository) NearestTag(ref string) (string, error) {
	start, err := r.resolveCommit("find tag", ref)
	if err != nil {
		return "", err
	}

	tagged, err := r.tagsByCommit()
	if err != nil {
		return "", &HistoryUnavailableError{Op: "find tag", Ref: ref, Err: err}
	}
	if len(tagged) == 0 {
		logDebug("[git] repository has no tags")
		return "", nil
	}

	// Breadth-first so the tag with the fewest commits between it and ref wins.
	seen := map[plumbing.Hash]bool{start.Hash: true}
	queue := []*object.Commit{start}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]

		if names, ok := tagged[c.Hash]; ok {
			tag := highestTag(names, r.tagPrefix)
			logDebug("[git] nearest tag of %s is %s at %s", ref, tag, c.Hash)
			return tag, nil
		}

		err := c.Parents().ForEach(func(p *object.Commit) error {
			if !seen[p.Hash] {
				seen[p.Hash] = true
				queue = append(queue, p)
			}
			return nil
		})
		if err != nil {
			return "", &HistoryUnavailableError{Op: "find tag", Ref: ref, Err: err}
		}
	}

	return "", nil
}

// tagsByCommit maps every tagged commit to the names of its tags.
// Tags that do not point at a commit (e.g. tagged trees) are ignored.
func (r *Repository) tagsByCommit() (map[plumbing.Hash][]string, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	tagged := map[plumbing.Hash][]string{}
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()
		target := ref.Hash()

		tagObj, err := r.repo.TagObject(target)
		switch {
		case err == nil:
			commit, err := tagObj.Commit()
			if err != nil {
				logDebug("[git] skipping tag %s: %v", name, err)
				return nil
			}
			target = commit.Hash
		case errors.Is(err, plumbing.ErrObjectNotFound):
			// Lightweight tag pointing straight at a commit.
		default:
			return fmt.Errorf("reading tag %s: %w", name, err)
		}

		tagged[target] = append(tagged[target], name)
		return nil
	})
	if err != nil && !errors.Is(err, storer.ErrStop) {
		return nil, err
	}
	return tagged, nil
}

// highestTag picks the tag with the highest semantic version once prefix is
// stripped. Names that do not parse as versions sort below those that do,
// then lexically.
func highestTag(names []string, prefix string) string {
	sorted := append([]string(nil), names...)
	sort.SliceStable(sorted, func(i, j int) bool {
		vi, erri := semver.Parse(semver.TrimTagPrefix(sorted[i], prefix))
		vj, errj := semver.Parse(semver.TrimTagPrefix(sorted[j], prefix))
		switch {
		case erri == nil && errj == nil:
			if c := vi.Compare(vj); c != 0 {
				return c > 0
			}
		case erri == nil:
			return true
		case errj == nil:
			return false
		}
		return sorted[i] > sorted[j]
	})
	return sorted[0]
}

// RootCommit returns the hash of the first parentless commit reachable from
// HEAD, newest first when the history has several roots.
func (r *Repository) RootCommit() (string, error) {
	head, err := r.resolveCommit("find root commit", DefaultRef)
	if err != nil {
		return "", err
	}

	var root plumbing.Hash
	err = object.NewCommitIterCTime(head, nil, nil).ForEach(func(c *object.Commit) error {
		if c.NumParents() == 0 {
			root = c.Hash
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return "", &HistoryUnavailableError{Op: "find root commit", Ref: DefaultRef, Err: err}
	}
	if root.IsZero() {
		return "", &HistoryUnavailableError{Op: "find root commit", Ref: DefaultRef, Err: errors.New("no parentless commit found")}
	}

	logDebug("[git] root commit is %s", root)
	return root.String(), nil
}
