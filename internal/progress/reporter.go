package progress

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"go.uber.org/zap"
)

var (
	// ErrAlreadyRunning is returned when Start is called while a job is being reported
	ErrAlreadyRunning = errors.New("processing already running")

	// ErrJobFailed wraps the user-facing message of a failed job
	ErrJobFailed = errors.New("processing failed")
)

// Mode selects where progress readings come from
type Mode string

const (
	// ModeScripted replays a fixed sequence of phases on a timer
	ModeScripted Mode = "scripted"
	// ModePoll reads the real job progress from the backend
	ModePoll Mode = "poll"
)

const (
	DefaultInterval      = 3 * time.Second
	DefaultRedirectDelay = 1 * time.Second
	ResultsPath          = "/results"

	maxPollErrors = 3

	msgInitializing = "Initializing video processing..."
	msgComplete     = "Processing complete!"
	msgFailed       = "Processing failed"
	msgNetworkError = "Network error. Please try again."
	msgGenericError = "An error occurred during processing"
)

// Step is one scripted phase
type Step struct {
	Percent int
	Message string
}

// ScriptedSteps are the phases shown when the backend offers no progress endpoint
var ScriptedSteps = []Step{
	{20, "Analyzing video frames..."},
	{40, "Detecting players and ball..."},
	{60, "Classifying cricket shots..."},
	{75, "Identifying key events..."},
	{85, "Generating commentary..."},
	{95, "Creating final output..."},
	{100, msgComplete},
}

// Options tune the reporter. Zero values fall back to the defaults.
type Options struct {
	Mode          Mode
	Interval      time.Duration
	RedirectDelay time.Duration
}

// Reporter starts a backend processing job and reports its progress to a sink
type Reporter struct {
	logger *zap.Logger
	client domain.JobClient
	sink   domain.ProgressSink
	nav    domain.Navigator
	opts   Options

	mu       sync.Mutex
	running  bool
	progress domain.JobProgress
}

// NewReporter creates a reporter with the given collaborators
func NewReporter(logger *zap.Logger, client domain.JobClient, sink domain.ProgressSink, nav domain.Navigator, opts Options) *Reporter {
	if opts.Mode == "" {
		opts.Mode = ModeScripted
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}
	if opts.RedirectDelay <= 0 {
		opts.RedirectDelay = DefaultRedirectDelay
	}

	return &Reporter{
		logger: logger,
		client: client,
		sink:   sink,
		nav:    nav,
		opts:   opts,
	}
}

// Start asks the backend to process the uploaded video and drives the progress
// display until the job completes, fails or ctx is cancelled. It blocks for the
// whole job; on completion it redirects to the results page.
func (r *Reporter) Start(ctx context.Context) error {
	if !r.begin() {
		return ErrAlreadyRunning
	}
	defer r.end()

	r.sink.SetStartEnabled(false)
	r.report(5, msgInitializing)

	resp, err := r.client.StartProcessing(ctx)
	if err != nil {
		r.logger.Error("Start processing request failed", zap.Error(err))
		r.fail(msgNetworkError)
		return fmt.Errorf("start processing: %w", err)
	}

	if !resp.Succeeded() {
		msg := resp.Message
		if msg == "" {
			msg = msgGenericError
		}
		r.logger.Warn("Backend rejected processing", zap.String("status", resp.Status), zap.String("message", msg))
		r.fail(msg)
		return fmt.Errorf("%w: %s", ErrJobFailed, msg)
	}

	r.logger.Info("Processing started", zap.String("mode", string(r.opts.Mode)))

	if r.opts.Mode == ModePoll {
		err = r.poll(ctx)
		if errors.Is(err, domain.ErrProgressUnsupported) {
			r.logger.Info("Backend has no progress endpoint, falling back to scripted progress")
			err = r.script(ctx)
		}
	} else {
		err = r.script(ctx)
	}
	if err != nil {
		return err
	}

	target := resp.Redirect
	if target == "" {
		target = ResultsPath
	}

	select {
	case <-ctx.Done():
		r.sink.SetStartEnabled(true)
		return ctx.Err()
	case <-time.After(r.opts.RedirectDelay):
	}

	if err := r.nav.Redirect(ctx, target); err != nil {
		return fmt.Errorf("redirect to %s: %w", target, err)
	}
	return nil
}

// script replays ScriptedSteps, one per interval
func (r *Reporter) script(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	for _, step := range ScriptedSteps {
		select {
		case <-ctx.Done():
			r.sink.SetStartEnabled(true)
			return ctx.Err()
		case <-ticker.C:
			r.report(step.Percent, step.Message)
		}
	}
	return nil
}

// poll reads the backend progress every interval until the job completes or fails.
// A backend without a progress endpoint is reported on the first poll, untouched.
func (r *Reporter) poll(ctx context.Context) error {
	ticker := time.NewTicker(r.opts.Interval)
	defer ticker.Stop()

	failures, polls := 0, 0
	for {
		select {
		case <-ctx.Done():
			r.sink.SetStartEnabled(true)
			return ctx.Err()
		case <-ticker.C:
		}

		status, err := r.client.FetchProgress(ctx)
		if errors.Is(err, domain.ErrProgressUnsupported) && polls == 0 {
			return err
		}
		polls++
		if err != nil {
			failures++
			r.logger.Warn("Progress poll failed", zap.Int("consecutive", failures), zap.Error(err))
			if failures >= maxPollErrors {
				r.fail(msgNetworkError)
				return fmt.Errorf("poll progress: %w", err)
			}
			continue
		}
		failures = 0

		switch {
		case status.State == domain.JobFailed:
			msg := status.Message
			if msg == "" {
				msg = msgGenericError
			}
			r.fail(msg)
			return fmt.Errorf("%w: %s", ErrJobFailed, msg)

		case status.State == domain.JobComplete || status.Percent >= 100:
			r.report(100, msgComplete)
			return nil

		default:
			r.report(status.Percent, status.Message)
		}
	}
}

// report clamps percent to [0,100] and keeps it monotonic
func (r *Reporter) report(percent int, message string) {
	percent = min(max(percent, 0), 100)

	r.mu.Lock()
	if percent < r.progress.Percent {
		percent = r.progress.Percent
	}
	if message == "" {
		message = r.progress.Message
	}
	r.progress = domain.JobProgress{Percent: percent, Message: message, UpdatedAt: time.Now()}
	r.mu.Unlock()

	r.sink.UpdateProgress(percent, message)
}

// fail surfaces the error and resets the display so the job can be retried
func (r *Reporter) fail(message string) {
	r.mu.Lock()
	r.progress = domain.JobProgress{Percent: 0, Message: msgFailed, Failed: true, UpdatedAt: time.Now()}
	r.mu.Unlock()

	r.sink.ShowError(message)
	r.sink.UpdateProgress(0, msgFailed)
	r.sink.SetStartEnabled(true)
}

func (r *Reporter) begin() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return false
	}
	r.running = true
	r.progress = domain.JobProgress{}
	return true
}

func (r *Reporter) end() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.running = false
}

// Running reports whether a job is being reported
func (r *Reporter) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Progress returns the last reading shown
func (r *Reporter) Progress() domain.JobProgress {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progress
}
