package changelog

// Category is a release notes section. Categories are declared in rendering
// priority order, highest first.
type Category int

const (
	CategoryFeature Category = iota
	CategoryFix
	CategoryPerformance
	CategoryDocs
	CategoryRefactor
	CategoryTest
	CategoryCI
	CategoryBuild
	CategoryChore
	CategoryStyle
	CategoryRevert
	CategoryOther

	numCategories
)

// categoryInfo holds the stable key (the conventional commit type) and the
// display label for every category, indexed by Category.
var categoryInfo = [numCategories]struct {
	key   string
	label string
}{
	CategoryFeature:     {"feat", "🚀 New Features"},
	CategoryFix:         {"fix", "🐛 Bug Fixes"},
	CategoryPerformance: {"perf", "⚡ Performance"},
	CategoryDocs:        {"docs", "📚 Documentation"},
	CategoryRefactor:    {"refactor", "♻️ Code Refactoring"},
	CategoryTest:        {"test", "🧪 Tests"},
	CategoryCI:          {"ci", "👷 CI/CD"},
	CategoryBuild:       {"build", "📦 Build System"},
	CategoryChore:       {"chore", "🔧 Maintenance"},
	CategoryStyle:       {"style", "💅 Code Style"},
	CategoryRevert:      {"revert", "⏪ Reverts"},
	CategoryOther:       {"other", "📋 Other Changes"},
}

// typeToCategory maps lower-cased commit types to categories.
var typeToCategory = func() map[string]Category {
	m := make(map[string]Category, numCategories-1)
	for c := CategoryFeature; c < CategoryOther; c++ {
		m[categoryInfo[c].key] = c
	}
	return m
}()

// Key returns the stable identifier used in summaries ("feat", "fix", ..., "other").
func (c Category) Key() string {
	if !c.valid() {
		return "unknown"
	}
	return categoryInfo[c].key
}

// Label returns the human readable section title.
func (c Category) Label() string {
	if !c.valid() {
		return "Unknown"
	}
	return categoryInfo[c].label
}

// String returns the category key.
func (c Category) String() string {
	return c.Key()
}

func (c Category) valid() bool {
	return c >= CategoryFeature && c < numCategories
}

// Categories returns all categories in rendering priority order.
func Categories() []Category {
	out := make([]Category, numCategories)
	for i := range out {
		out[i] = Category(i)
	}
	return out
}

// CategoryForType maps a conventional commit type to its category.
// Matching is case-insensitive at the caller; unknown types map to CategoryOther.
func CategoryForType(commitType string) Category {
	if c, ok := typeToCategory[commitType]; ok {
		return c
	}
	return CategoryOther
}

// ParseCategory looks a category up by key.
func ParseCategory(key string) (Category, bool) {
	if key == categoryInfo[CategoryOther].key {
		return CategoryOther, true
	}
	c, ok := typeToCategory[key]
	return c, ok
}

// Commit is a single commit in a revision range.
type Commit struct {
	Hash    string
	Subject string
}

// ShortHash returns the first seven characters of the hash.
func (c Commit) ShortHash() string {
	if len(c.Hash) > 7 {
		return c.Hash[:7]
	}
	return c.Hash
}

// Entry is one rendered line in a category.
type Entry struct {
	Hash     string
	Text     string
	Breaking bool
}
