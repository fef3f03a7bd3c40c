package conventional

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHeader(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		subject     string
		want        Header
		wantOK      bool
		wantDisplay string
	}{
		"type only": {
			subject:     "feat: add login",
			want:        Header{Type: "feat", Description: "add login"},
			wantOK:      true,
			wantDisplay: "add login",
		},
		"scope": {
			subject:     "fix(ui): crash on save",
			want:        Header{Type: "fix", Scope: "ui", Description: "crash on save"},
			wantOK:      true,
			wantDisplay: "ui: crash on save",
		},
		"breaking with scope": {
			subject:     "feat(api)!: remove legacy endpoint",
			want:        Header{Type: "feat", Scope: "api", Breaking: true, Description: "remove legacy endpoint"},
			wantOK:      true,
			wantDisplay: "api: remove legacy endpoint",
		},
		"breaking without scope": {
			subject:     "refactor!: drop v1 config",
			want:        Header{Type: "refactor", Breaking: true, Description: "drop v1 config"},
			wantOK:      true,
			wantDisplay: "drop v1 config",
		},
		"empty scope": {
			subject:     "chore(): tidy",
			want:        Header{Type: "chore", Description: "tidy"},
			wantOK:      true,
			wantDisplay: "tidy",
		},
		"no space after colon": {
			subject:     "docs:typo",
			want:        Header{Type: "docs", Description: "typo"},
			wantOK:      true,
			wantDisplay: "typo",
		},
		"mixed case type kept": {
			subject:     "Feat: shout",
			want:        Header{Type: "Feat", Description: "shout"},
			wantOK:      true,
			wantDisplay: "shout",
		},
		"no header": {
			subject: "unrelated message with no header",
			wantOK:  false,
		},
		"space before colon": {
			subject: "feat : nope",
			wantOK:  false,
		},
		"digits in type": {
			subject: "v2: nope",
			wantOK:  false,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, ok := ParseHeader(tc.subject)
			assert.Equal(t, tc.wantOK, ok)
			if !tc.wantOK {
				return
			}
			assert.Equal(t, tc.want, got)
			assert.Equal(t, tc.wantDisplay, got.Display())
		})
	}
}

func TestNormalizedType(t *testing.T) {
	t.Parallel()

	h, ok := ParseHeader("FIX(Core): thing")
	assert.True(t, ok)
	assert.Equal(t, "fix", h.NormalizedType())
	assert.Equal(t, "Core", h.Scope)
}

func TestHasBreakingMarker(t *testing.T) {
	t.Parallel()

	assert.True(t, HasBreakingMarker("fix: BREAKING CHANGE: new format"))
	assert.False(t, HasBreakingMarker("fix: breaking change in lower case"))
	assert.False(t, HasBreakingMarker("fix: BREAKING-CHANGE hyphenated"))
}
