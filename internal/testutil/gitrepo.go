// Package testutil provides test utilities and helpers for semrel tests.
package testutil

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

// BaseTime is the committer time of the first fixture commit. Every later
// commit is one minute newer, so history order is deterministic.
var BaseTime = time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)

// GitRepo is a throwaway repository built in-process with go-git.
type GitRepo struct {
	t    *testing.T
	Dir  string
	Repo *git.Repository
	n    int
}

// NewGitRepo initializes an empty repository in a temp directory.
func NewGitRepo(t *testing.T) *GitRepo {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	return &GitRepo{t: t, Dir: dir, Repo: repo}
}

// Signature returns the author for the next commit.
func (g *GitRepo) Signature() *object.Signature {
	return &object.Signature{
		Name:  "Test",
		Email: "test@test.com",
		When:  BaseTime.Add(time.Duration(g.n) * time.Minute),
	}
}

// Commit adds a new file and commits it with message.
func (g *GitRepo) Commit(message string) plumbing.Hash {
	g.t.Helper()
	g.n++

	worktree, err := g.Repo.Worktree()
	require.NoError(g.t, err)

	name := fmt.Sprintf("file%d.txt", g.n)
	require.NoError(g.t, os.WriteFile(filepath.Join(g.Dir, name), []byte(message), 0o644))
	_, err = worktree.Add(name)
	require.NoError(g.t, err)

	sig := g.Signature()
	hash, err := worktree.Commit(message, &git.CommitOptions{Author: sig, Committer: sig})
	require.NoError(g.t, err)
	return hash
}

// Tag creates a lightweight tag.
func (g *GitRepo) Tag(name string, hash plumbing.Hash) {
	g.t.Helper()
	_, err := g.Repo.CreateTag(name, hash, nil)
	require.NoError(g.t, err)
}

// AnnotatedTag creates an annotated tag object pointing at hash.
func (g *GitRepo) AnnotatedTag(name string, hash plumbing.Hash) {
	g.t.Helper()
	_, err := g.Repo.CreateTag(name, hash, &git.CreateTagOptions{
		Tagger:  g.Signature(),
		Message: "release " + name,
	})
	require.NoError(g.t, err)
}
