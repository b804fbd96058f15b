package progress

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// TerminalSink renders progress on a terminal. When the writer is not a terminal
// it prints one line per update instead of redrawing a bar.
type TerminalSink struct {
	out     io.Writer
	baseURL string
	bar     *progressbar.ProgressBar
	last    int
	started bool
}

// NewTerminalSink creates a sink writing to out. baseURL prefixes redirect targets.
func NewTerminalSink(out io.Writer, baseURL string) *TerminalSink {
	s := &TerminalSink{out: out, baseURL: strings.TrimRight(baseURL, "/"), last: -1}

	if isTerminal(out) {
		s.bar = progressbar.NewOptions(100,
			progressbar.OptionSetWriter(out),
			progressbar.OptionSetWidth(40),
			progressbar.OptionShowCount(),
			progressbar.OptionSetPredictTime(false),
			progressbar.OptionSetDescription("Waiting to start"),
		)
	}
	return s
}

// UpdateProgress moves the bar to percent
func (s *TerminalSink) UpdateProgress(percent int, message string) {
	if s.bar != nil {
		s.bar.Describe(message)
		_ = s.bar.Set(percent)
		return
	}

	if percent == s.last && message == "" {
		return
	}
	s.last = percent
	fmt.Fprintf(s.out, "[%3d%%] %s\n", percent, message)
}

// ShowError prints the error on its own line
func (s *TerminalSink) ShowError(message string) {
	if s.bar != nil {
		_ = s.bar.Clear()
	}
	fmt.Fprintf(s.out, "Error: %s\n", message)
}

// SetStartEnabled prints a retry hint when the job can be started again
func (s *TerminalSink) SetStartEnabled(enabled bool) {
	if !enabled {
		s.started = true
		return
	}
	if s.started {
		fmt.Fprintln(s.out, "Try again with: courtside process <file>")
	}
}

// Redirect prints where the results are
func (s *TerminalSink) Redirect(_ context.Context, target string) error {
	if s.bar != nil {
		_ = s.bar.Finish()
		fmt.Fprintln(s.out)
	}
	fmt.Fprintf(s.out, "Results: %s%s\n", s.baseURL, target)
	return nil
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
