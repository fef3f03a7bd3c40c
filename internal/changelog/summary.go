package changelog

import "time"

// TimestampLayout is the fixed UTC layout used for generated_at fields.
const TimestampLayout = "2006-01-02T15:04:05Z"

// Summary is the machine-readable companion of the rendered notes.
type Summary struct {
	Version         string         `json:"version"`
	FromRef         string         `json:"from_ref"`
	ToRef           string         `json:"to_ref"`
	TotalCommits    int            `json:"total_commits"`
	Categories      []string       `json:"categories"`
	CommitCounts    map[string]int `json:"commit_counts"`
	BreakingChanges int            `json:"breaking_changes"`
	GeneratedAt     string         `json:"generated_at"`
}

// Summary derives the machine-readable summary from the report.
// Categories are listed in priority order and only when non-empty.
func (r *Report) Summary(opts RenderOptions) Summary {
	s := Summary{
		Version:         opts.Version,
		FromRef:         opts.FromRef,
		ToRef:           opts.ToRef,
		TotalCommits:    r.Total(),
		Categories:      []string{},
		CommitCounts:    map[string]int{},
		BreakingChanges: len(r.Breaking()),
		GeneratedAt:     FormatTimestamp(opts.now()),
	}
	if s.Version == "" {
		s.Version = "unknown"
	}

	for _, c := range r.NonEmpty() {
		s.Categories = append(s.Categories, c.Key())
		s.CommitCounts[c.Key()] = r.Count(c)
	}

	return s
}

// FormatTimestamp renders t in TimestampLayout after converting it to UTC.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}
