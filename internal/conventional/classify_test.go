package conventional

import (
	"math/rand"
	"testing"

	"github.com/ariel-frischer/semrel/internal/semver"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject string
		want    semver.BumpType
	}{
		"feat":                    {subject: "feat: add login", want: semver.Minor},
		"feat with scope":         {subject: "feat(auth): add login", want: semver.Minor},
		"feat upper case":         {subject: "FEAT: add login", want: semver.Minor},
		"fix":                     {subject: "fix: crash on save", want: semver.Patch},
		"perf":                    {subject: "perf(db): faster query", want: semver.Patch},
		"docs":                    {subject: "docs: fix typo", want: semver.Patch},
		"chore":                   {subject: "chore: update deps", want: semver.Patch},
		"revert":                  {subject: "revert: feat: add login", want: semver.Patch},
		"unknown type":            {subject: "wip: half done", want: semver.Patch},
		"no header":               {subject: "unrelated message with no header", want: semver.Patch},
		"no colon":                {subject: "x", want: semver.Patch},
		"bang":                    {subject: "feat(api)!: remove legacy endpoint", want: semver.Major},
		"bang without scope":      {subject: "fix!: change return type", want: semver.Major},
		"bang on unknown type":    {subject: "wip!: rewrite", want: semver.Major},
		"breaking change marker":  {subject: "fix: BREAKING CHANGE: new format", want: semver.Major},
		"breaking lower case":     {subject: "chore: breaking change ahead", want: semver.Major},
		"breaking hyphen":         {subject: "refactor: Breaking-Change in config", want: semver.Major},
		"feat plus breaking":      {subject: "feat: new api BREAKING CHANGE", want: semver.Major},
		"breaking without header": {subject: "big rewrite, BREAKING CHANGE", want: semver.Major},
		"bang after space":        {subject: "feat !: nope", want: semver.Patch},
		"feat mention not header": {subject: "update feat: docs", want: semver.Patch},
		"feature is not feat":     {subject: "feature: add thing", want: semver.Patch},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Classify(tc.subject))
		})
	}
}

func TestClassifyNeverNone(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"", " ", ":", "()", "a", "feat", "fix(", "!: x"} {
		assert.NotEqual(t, semver.None, Classify(s), "subject %q", s)
	}
}

func TestAggregate(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subjects []string
		want     semver.BumpType
	}{
		"empty":         {subjects: nil, want: semver.None},
		"empty slice":   {subjects: []string{}, want: semver.None},
		"only patches":  {subjects: []string{"fix: a", "docs: b", "random"}, want: semver.Patch},
		"feat wins":     {subjects: []string{"feat: add login", "fix: crash on save", "chore: update deps"}, want: semver.Minor},
		"breaking wins": {subjects: []string{"fix: a", "feat: b", "feat(api)!: c"}, want: semver.Major},
		"duplicates":    {subjects: []string{"fix: a", "fix: a", "fix: a"}, want: semver.Patch},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Aggregate(tc.subjects))
		})
	}
}

func TestAggregateOrderIndependent(t *testing.T) {
	t.Parallel()

	subjects := []string{
		"docs: fix typo",
		"feat(ui): dark mode",
		"chore: bump deps",
		"fix: nil pointer",
		"random commit",
		"refactor!: rename config keys",
		"perf: cache lookups",
	}
	want := Aggregate(subjects)
	assert.Equal(t, semver.Major, want)

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		shuffled := append([]string(nil), subjects...)
		rng.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })
		assert.Equal(t, want, Aggregate(shuffled))

		// Sub-ranges are never below Patch and never above the full range.
		n := rng.Intn(len(shuffled)) + 1
		got := Aggregate(shuffled[:n])
		assert.GreaterOrEqual(t, got, semver.Patch)
		assert.LessOrEqual(t, got, want)
	}
}
