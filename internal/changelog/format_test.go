package changelog

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTerminalPlain(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := FormatTerminal(sampleReport(), &buf, FormatOptions{Plain: true, MaxWidth: 80})
	require.NoError(t, err)

	want := `
### BREAKING CHANGES (1)
  - api: remove legacy endpoint

### 🚀 New Features (1)
  - api: remove legacy endpoint

### 🐛 Bug Fixes (1)
  - crash on save

### 📚 Documentation (1)
  - update readme

### 📋 Other Changes (1)
  - Merge branch main
`
	assert.Equal(t, want, buf.String())
}

func TestFormatTerminalEmpty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(Categorize(nil), &buf, FormatOptions{Plain: true}))
	assert.Equal(t, "No commits in range.\n", buf.String())
}

func TestFormatTerminalShowHashes(t *testing.T) {
	t.Parallel()

	r := Categorize([]Commit{{Hash: "deadbeefcafe", Subject: "fix: thing"}})
	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(r, &buf, FormatOptions{Plain: true, ShowHashes: true}))
	assert.Contains(t, buf.String(), "  - deadbee thing\n")
}

func TestFormatTerminalPlainWraps(t *testing.T) {
	t.Parallel()

	r := Categorize([]Commit{{Hash: "deadbeefcafe", Subject: "fix: handle a very long subject line gracefully"}})
	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(r, &buf, FormatOptions{Plain: true, MaxWidth: 24}))
	assert.Contains(t, buf.String(), "  - handle a very long\n    subject line\n    gracefully\n")
}

func TestFormatTerminalColoredContainsText(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	require.NoError(t, FormatTerminal(sampleReport(), &buf, FormatOptions{MaxWidth: 120}))
	assert.Contains(t, buf.String(), "crash on save")
	assert.Contains(t, buf.String(), "BREAKING CHANGES")
}

func TestWrapText(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		text     string
		maxWidth int
		want     string
	}{
		"short text": {text: "hello", maxWidth: 10, want: "hello"},
		"zero width": {text: "hello world", maxWidth: 0, want: "hello world"},
		"wraps at space": {
			text:     "hello world again",
			maxWidth: 11,
			want:     "hello\n  world again",
		},
		"hard break": {text: "abcdefghij", maxWidth: 4, want: "abcd\n  efgh\n  ij"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, wrapText(tt.text, tt.maxWidth, "  "))
		})
	}
}

func TestFormatSummaryLine(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "4 commits across 4 categories, 1 breaking change",
		FormatSummaryLine(sampleReport(), FormatOptions{Plain: true}))
	assert.Equal(t, "1 commit across 1 category",
		FormatSummaryLine(Categorize(commits("fix: a")), FormatOptions{Plain: true}))
	assert.False(t, strings.Contains(FormatSummaryLine(Categorize(nil), FormatOptions{}), "breaking"))
}
