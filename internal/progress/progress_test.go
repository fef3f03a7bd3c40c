package progress

import (
	"bytes"
	"errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectSymbols(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps TerminalCapabilities
		want ProgressSymbols
	}{
		"unicode": {
			caps: TerminalCapabilities{IsTTY: true, SupportsUnicode: true},
			want: ProgressSymbols{Checkmark: "✓", Failure: "✗", SpinnerSet: 14},
		},
		"ascii": {
			caps: TerminalCapabilities{IsTTY: true},
			want: ProgressSymbols{Checkmark: "[OK]", Failure: "[FAIL]", SpinnerSet: 9},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, SelectSymbols(tt.caps))
		})
	}
}

func TestDetectTerminalCapabilitiesNonTTY(t *testing.T) {
	t.Parallel()

	f, err := os.CreateTemp(t.TempDir(), "out")
	require.NoError(t, err)
	defer f.Close()

	caps := DetectTerminalCapabilities(f)
	assert.False(t, caps.IsTTY)
	assert.False(t, caps.SupportsColor)
	assert.Zero(t, caps.Width)
}

func TestSpinnerDisabled(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		caps  TerminalCapabilities
		quiet bool
	}{
		"not a terminal": {caps: TerminalCapabilities{}},
		"quiet":          {caps: TerminalCapabilities{IsTTY: true}, quiet: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			sp := NewSpinner(&buf, tt.caps, tt.quiet)
			assert.False(t, sp.Enabled())

			called := false
			err := sp.Run("reading history", func() error {
				called = true
				return nil
			})
			require.NoError(t, err)
			assert.True(t, called)

			boom := errors.New("boom")
			assert.ErrorIs(t, sp.Run("reading history", func() error { return boom }), boom)
			assert.Empty(t, buf.String())
		})
	}
}

func TestSpinnerEnabledReportsFailure(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	sp := NewSpinner(&buf, TerminalCapabilities{IsTTY: true}, false)
	require.True(t, sp.Enabled())

	err := sp.Run("reading history", func() error { return errors.New("no repo") })
	require.Error(t, err)
	assert.Contains(t, buf.String(), "[FAIL] reading history")
}
