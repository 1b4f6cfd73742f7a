// The cli package renders evaluation results, shows progress while batches
// run and hosts the interactive REPL.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"golang.org/x/term"
)

// FormatExecutionDuration formats a time.Duration for display. It shows
// microseconds below a millisecond, milliseconds below a second and the
// default representation otherwise.
func FormatExecutionDuration(d time.Duration) string {
	if d < time.Millisecond {
		return fmt.Sprintf("%dµs", d.Microseconds())
	} else if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return d.String()
}

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested
// without a terminal.
type Spinner interface {
	Start()
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// IsInteractive reports whether w is a terminal. Spinners and colors are
// only worth drawing on one.
func IsInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// progressBar renders progress (clamped to [0, 1]) as a bar of length cells.
func progressBar(progress float64, length int) string {
	if progress > 1.0 {
		progress = 1.0
	}
	if progress < 0.0 {
		progress = 0.0
	}
	count := int(progress * float64(length))
	var builder strings.Builder
	builder.Grow(length * 3)
	for i := 0; i < length; i++ {
		if i < count {
			builder.WriteRune('█')
		} else {
			builder.WriteRune('░')
		}
	}
	return builder.String()
}

// DisplayProgress draws a spinner with a progress bar until done is closed.
// Each value received on done marks one of total evaluations as finished.
// It is meant to run in its own goroutine and signals wg on return.
func DisplayProgress(wg *sync.WaitGroup, done <-chan struct{}, total int, out io.Writer) {
	defer wg.Done()
	if total <= 0 {
		for range done {
		}
		return
	}

	state := NewProgressState(total)
	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case _, ok := <-done:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintf(out, "Progress: %d/%d [%s]\n", state.Completed(), total, progressBar(1.0, ProgressBarWidth))
				return
			}
			state.Complete()
		case <-ticker.C:
			s.UpdateSuffix(" " + state.String())
		}
	}
}
