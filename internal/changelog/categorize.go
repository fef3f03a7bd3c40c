package changelog

import "github.com/ariel-frischer/semrel/internal/conventional"

// Report is the result of categorizing a commit range.
// Every input commit lands in exactly one category.
type Report struct {
	buckets  [numCategories][]Entry
	breaking []string
	total    int
}

// Categorize sorts commits into categories, preserving input order within each
// category. Commits without a conventional header go to CategoryOther with
// their full subject as text. Breaking changes are additionally recorded in
// the report's breaking list.
func Categorize(commits []Commit) *Report {
	r := &Report{}
	for _, c := range commits {
		r.add(c)
	}
	return r
}

func (r *Report) add(c Commit) {
	r.total++

	cat := CategoryOther
	text := c.Subject
	breaking := conventional.HasBreakingMarker(c.Subject)

	if h, ok := conventional.ParseHeader(c.Subject); ok {
		cat = CategoryForType(h.NormalizedType())
		text = h.Display()
		breaking = breaking || h.Breaking
	}

	r.buckets[cat] = append(r.buckets[cat], Entry{Hash: c.Hash, Text: text, Breaking: breaking})
	if breaking {
		r.breaking = append(r.breaking, text)
	}
}

// Details returns the entries recorded under c, in commit order.
func (r *Report) Details(c Category) []Entry {
	if !c.valid() {
		return nil
	}
	return r.buckets[c]
}

// Entries returns the descriptions recorded under c, in commit order.
func (r *Report) Entries(c Category) []string {
	details := r.Details(c)
	if len(details) == 0 {
		return nil
	}
	out := make([]string, len(details))
	for i, e := range details {
		out[i] = e.Text
	}
	return out
}

// Breaking returns the descriptions of breaking changes, in commit order.
func (r *Report) Breaking() []string {
	return r.breaking
}

// Total returns the number of commits categorized.
func (r *Report) Total() int {
	return r.total
}

// Count returns the number of entries in c.
func (r *Report) Count(c Category) int {
	return len(r.Details(c))
}

// NonEmpty returns the categories holding at least one entry, in priority order.
func (r *Report) NonEmpty() []Category {
	var out []Category
	for _, c := range Categories() {
		if len(r.buckets[c]) > 0 {
			out = append(out, c)
		}
	}
	return out
}
