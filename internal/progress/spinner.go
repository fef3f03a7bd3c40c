package progress

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/briandowns/spinner"
)

// Spinner animates a message while a blocking step runs. A disabled Spinner
// writes nothing, so callers never need to branch on the terminal type.
type Spinner struct {
	s       *spinner.Spinner
	out     io.Writer
	symbols ProgressSymbols
	enabled bool
}

// NewSpinner returns a spinner writing to out. It is only enabled when caps
// reports an interactive terminal and quiet is false.
func NewSpinner(out io.Writer, caps TerminalCapabilities, quiet bool) *Spinner {
	symbols := SelectSymbols(caps)
	sp := &Spinner{out: out, symbols: symbols, enabled: caps.IsTTY && !quiet}
	if sp.enabled {
		opt := spinner.WithWriter(out)
		if f, ok := out.(*os.File); ok {
			opt = spinner.WithWriterFile(f)
		}
		sp.s = spinner.New(spinner.CharSets[symbols.SpinnerSet], 100*time.Millisecond, opt)
	}
	return sp
}

// Enabled reports whether the spinner draws anything.
func (sp *Spinner) Enabled() bool {
	return sp.enabled
}

// Start shows message next to the animation.
func (sp *Spinner) Start(message string) {
	if !sp.enabled {
		return
	}
	sp.s.Suffix = " " + message
	sp.s.Start()
}

// Stop clears the animation. When ok is set, the final message is printed
// with a success or failure symbol.
func (sp *Spinner) Stop(final string, ok bool) {
	if !sp.enabled {
		return
	}
	sp.s.Stop()
	if final == "" {
		return
	}
	symbol := sp.symbols.Checkmark
	if !ok {
		symbol = sp.symbols.Failure
	}
	fmt.Fprintf(sp.out, "%s %s\n", symbol, final)
}

// Run executes fn with the spinner showing message, and stops it afterwards.
func (sp *Spinner) Run(message string, fn func() error) error {
	sp.Start(message)
	err := fn()
	if err != nil {
		sp.Stop(message, false)
		return err
	}
	sp.Stop("", true)
	return nil
}
