package progress

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/genricoloni/courtside/internal/domain/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fixture struct {
	client *mocks.MockJobClient
	sink   *mocks.MockProgressSink
	nav    *mocks.MockNavigator
}

func newFixture(t *testing.T) fixture {
	ctrl := gomock.NewController(t)
	return fixture{
		client: mocks.NewMockJobClient(ctrl),
		sink:   mocks.NewMockProgressSink(ctrl),
		nav:    mocks.NewMockNavigator(ctrl),
	}
}

func (f fixture) reporter(mode Mode) *Reporter {
	return NewReporter(zap.NewNop(), f.client, f.sink, f.nav, Options{
		Mode:          mode,
		Interval:      time.Millisecond,
		RedirectDelay: time.Millisecond,
	})
}

// expectFailure returns the sink calls of the failure path
func (f fixture) expectFailure(message string) []any {
	return []any{
		f.sink.EXPECT().ShowError(message),
		f.sink.EXPECT().UpdateProgress(0, "Processing failed"),
		f.sink.EXPECT().SetStartEnabled(true),
	}
}

func (f fixture) expectStart(resp domain.StartResponse, err error) []any {
	return []any{
		f.sink.EXPECT().SetStartEnabled(false),
		f.sink.EXPECT().UpdateProgress(5, "Initializing video processing..."),
		f.client.EXPECT().StartProcessing(gomock.Any()).Return(resp, err),
	}
}

func TestStart_ScriptedCompletes(t *testing.T) {
	f := newFixture(t)

	calls := f.expectStart(domain.StartResponse{Status: "success", Redirect: "/results"}, nil)
	for _, step := range ScriptedSteps {
		calls = append(calls, f.sink.EXPECT().UpdateProgress(step.Percent, step.Message))
	}
	calls = append(calls, f.nav.EXPECT().Redirect(gomock.Any(), "/results").Return(nil))
	gomock.InOrder(calls...)

	r := f.reporter(ModeScripted)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}

	if p := r.Progress(); p.Percent != 100 || p.Message != "Processing complete!" {
		t.Errorf("final progress = %+v", p)
	}
	if r.Running() {
		t.Error("reporter should not be running after completion")
	}
}

func TestStart_FailurePaths(t *testing.T) {
	tests := []struct {
		name      string
		resp      domain.StartResponse
		err       error
		wantShown string
		wantIs    error
	}{
		{
			name:      "Backend rejects",
			resp:      domain.StartResponse{Status: "error", Message: "Video not found"},
			wantShown: "Video not found",
			wantIs:    ErrJobFailed,
		},
		{
			name:      "Backend rejects without message",
			resp:      domain.StartResponse{Status: "error"},
			wantShown: "An error occurred during processing",
			wantIs:    ErrJobFailed,
		},
		{
			name:      "Transport error",
			err:       errors.New("connection refused"),
			wantShown: "Network error. Please try again.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			calls := f.expectStart(tt.resp, tt.err)
			calls = append(calls, f.expectFailure(tt.wantShown)...)
			gomock.InOrder(calls...)

			r := f.reporter(ModeScripted)
			err := r.Start(context.Background())
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.wantIs != nil && !errors.Is(err, tt.wantIs) {
				t.Errorf("expected %v, got %v", tt.wantIs, err)
			}

			p := r.Progress()
			if !p.Failed || p.Percent != 0 || p.Message != "Processing failed" {
				t.Errorf("progress after failure = %+v", p)
			}
		})
	}
}

func TestStart_PollIsMonotonic(t *testing.T) {
	f := newFixture(t)

	calls := f.expectStart(domain.StartResponse{Status: "success"}, nil)
	calls = append(calls,
		f.client.EXPECT().FetchProgress(gomock.Any()).Return(domain.JobStatus{State: domain.JobRunning, Percent: 30, Message: "Detecting players"}, nil),
		f.sink.EXPECT().UpdateProgress(30, "Detecting players"),
		f.client.EXPECT().FetchProgress(gomock.Any()).Return(domain.JobStatus{State: domain.JobRunning, Percent: 20}, nil),
		f.sink.EXPECT().UpdateProgress(30, "Detecting players"),
		f.client.EXPECT().FetchProgress(gomock.Any()).Return(domain.JobStatus{}, errors.New("timeout")),
		f.client.EXPECT().FetchProgress(gomock.Any()).Return(domain.JobStatus{State: domain.JobRunning, Percent: 90, Message: "Almost"}, nil),
		f.sink.EXPECT().UpdateProgress(90, "Almost"),
		f.client.EXPECT().FetchProgress(gomock.Any()).Return(domain.JobStatus{State: domain.JobComplete}, nil),
		f.sink.EXPECT().UpdateProgress(100, "Processing complete!"),
		f.nav.EXPECT().Redirect(gomock.Any(), "/results").Return(nil),
	)
	gomock.InOrder(calls...)

	r := f.reporter(ModePoll)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

func TestStart_PollGivesUpAfterConsecutiveErrors(t *testing.T) {
	f := newFixture(t)

	calls := f.expectStart(domain.StartResponse{Status: "success"}, nil)
	calls = append(calls, f.client.EXPECT().FetchProgress(gomock.Any()).Return(domain.JobStatus{}, errors.New("down")).Times(3))
	calls = append(calls, f.expectFailure("Network error. Please try again.")...)
	gomock.InOrder(calls...)

	r := f.reporter(ModePoll)
	if err := r.Start(context.Background()); err == nil {
		t.Fatal("expected an error after repeated poll failures")
	}
}

func TestStart_PollFallsBackToScript(t *testing.T) {
	f := newFixture(t)

	calls := f.expectStart(domain.StartResponse{Status: "success"}, nil)
	calls = append(calls, f.client.EXPECT().FetchProgress(gomock.Any()).Return(domain.JobStatus{}, domain.ErrProgressUnsupported))
	for _, step := range ScriptedSteps {
		calls = append(calls, f.sink.EXPECT().UpdateProgress(step.Percent, step.Message))
	}
	calls = append(calls, f.nav.EXPECT().Redirect(gomock.Any(), "/results").Return(nil))
	gomock.InOrder(calls...)

	r := f.reporter(ModePoll)
	if err := r.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
}

func TestStart_PollJobFailed(t *testing.T) {
	f := newFixture(t)

	calls := f.expectStart(domain.StartResponse{Status: "success"}, nil)
	calls = append(calls, f.client.EXPECT().FetchProgress(gomock.Any()).Return(domain.JobStatus{State: domain.JobFailed, Message: "Model crashed"}, nil))
	calls = append(calls, f.expectFailure("Model crashed")...)
	gomock.InOrder(calls...)

	r := f.reporter(ModePoll)
	if err := r.Start(context.Background()); !errors.Is(err, ErrJobFailed) {
		t.Fatalf("expected ErrJobFailed, got %v", err)
	}
}

func TestStart_AlreadyRunning(t *testing.T) {
	f := newFixture(t)
	started := make(chan struct{})
	release := make(chan struct{})

	f.sink.EXPECT().SetStartEnabled(gomock.Any()).AnyTimes()
	f.sink.EXPECT().UpdateProgress(gomock.Any(), gomock.Any()).AnyTimes()
	f.sink.EXPECT().ShowError(gomock.Any()).AnyTimes()
	f.client.EXPECT().StartProcessing(gomock.Any()).DoAndReturn(func(ctx context.Context) (domain.StartResponse, error) {
		close(started)
		<-release
		return domain.StartResponse{}, errors.New("stopped")
	})

	r := f.reporter(ModeScripted)
	done := make(chan error, 1)
	go func() { done <- r.Start(context.Background()) }()

	select {
	case <-started:
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout: first job did not start")
	}

	if err := r.Start(context.Background()); !errors.Is(err, ErrAlreadyRunning) {
		t.Errorf("expected ErrAlreadyRunning, got %v", err)
	}

	close(release)
	<-done
	if r.Running() {
		t.Error("reporter still running")
	}
}

func TestStart_Cancelled(t *testing.T) {
	f := newFixture(t)
	calls := f.expectStart(domain.StartResponse{Status: "success"}, nil)
	calls = append(calls, f.sink.EXPECT().SetStartEnabled(true))
	gomock.InOrder(calls...)

	r := NewReporter(zap.NewNop(), f.client, f.sink, f.nav, Options{Interval: time.Hour})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	if err := r.Start(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected DeadlineExceeded, got %v", err)
	}
}

func TestTerminalSink_PlainOutput(t *testing.T) {
	var buf bytes.Buffer
	s := NewTerminalSink(&buf, "http://localhost:5000/")

	s.SetStartEnabled(false)
	s.UpdateProgress(20, "Analyzing video frames...")
	s.ShowError("Network error. Please try again.")
	s.SetStartEnabled(true)
	if err := s.Redirect(context.Background(), "/results"); err != nil {
		t.Fatalf("Redirect: %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"[ 20%] Analyzing video frames...",
		"Error: Network error. Please try again.",
		"Try again with",
		"Results: http://localhost:5000/results",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
