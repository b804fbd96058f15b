package speech

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/genricoloni/courtside/internal/domain/mocks"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

const commentary = "Great shot! That was a six. Well played."

// fakeSpeechEngine records every call; completion events are injected by the test
type fakeSpeechEngine struct {
	mu       sync.Mutex
	spoken   []domain.Utterance
	pauses   int
	resumes  int
	cancels  int
	voices   []domain.Voice
	speakErr error
	events   chan domain.SpeechEvent
}

func newFakeSpeechEngine() *fakeSpeechEngine {
	return &fakeSpeechEngine{events: make(chan domain.SpeechEvent, 10)}
}

func (f *fakeSpeechEngine) Speak(_ context.Context, u domain.Utterance) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.speakErr != nil {
		return f.speakErr
	}
	f.spoken = append(f.spoken, u)
	return nil
}

func (f *fakeSpeechEngine) Pause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pauses++
	return nil
}

func (f *fakeSpeechEngine) Resume() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.resumes++
	return nil
}

func (f *fakeSpeechEngine) Cancel() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.cancels++
	return nil
}

func (f *fakeSpeechEngine) Voices() []domain.Voice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.voices
}

func (f *fakeSpeechEngine) Events() <-chan domain.SpeechEvent { return f.events }

func (f *fakeSpeechEngine) last() domain.Utterance {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.spoken[len(f.spoken)-1]
}

func (f *fakeSpeechEngine) spokenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.spoken)
}

type recordingObserver struct {
	mu        sync.Mutex
	sentences []int
	ends      int
	states    []domain.SpeechState
	changed   chan int
}

func newRecordingObserver() *recordingObserver {
	return &recordingObserver{changed: make(chan int, 10)}
}

func (o *recordingObserver) OnSentenceChange(_ string, index int) {
	o.mu.Lock()
	o.sentences = append(o.sentences, index)
	o.mu.Unlock()
	o.changed <- index
}

func (o *recordingObserver) OnCommentaryEnd() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.ends++
}

func (o *recordingObserver) OnSpeechState(state domain.SpeechState, _ int) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.states = append(o.states, state)
}

func newTestPlayer(engine domain.SpeechEngine, observer domain.SpeechObserver) *Player {
	return NewPlayer(zap.NewNop(), engine, observer, DefaultSettings())
}

func endOf(u domain.Utterance) domain.SpeechEvent {
	return domain.SpeechEvent{Kind: domain.SpeechEventEnd, UtteranceID: u.ID}
}

func TestPlayer_CommentaryScenario(t *testing.T) {
	engine := newFakeSpeechEngine()
	observer := newRecordingObserver()
	p := newTestPlayer(engine, observer)

	p.SetCommentary(commentary)
	if got := len(p.Sentences()); got != 3 {
		t.Fatalf("expected 3 sentences, got %d", got)
	}

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	first := engine.last()
	if first.Text != "Great shot!" {
		t.Errorf("first utterance = %q", first.Text)
	}
	if first.Rate != 0.9 || first.Pitch != 1.0 || first.Volume != 1.0 {
		t.Errorf("unexpected utterance parameters: %+v", first)
	}

	p.handleEvent(endOf(first))
	if p.Cursor() != 1 {
		t.Errorf("cursor after first end = %d, want 1", p.Cursor())
	}
	if engine.last().Text != "That was a six." {
		t.Errorf("second utterance = %q", engine.last().Text)
	}

	p.Stop()
	if p.Cursor() != 0 {
		t.Errorf("cursor after stop = %d, want 0", p.Cursor())
	}
	if p.State() != domain.SpeechIdle {
		t.Errorf("state after stop = %v", p.State())
	}

	// The end of the cancelled utterance must not advance the queue
	p.handleEvent(endOf(engine.last()))
	if engine.spokenCount() != 2 || p.Cursor() != 0 {
		t.Errorf("stale end advanced the queue: spoken=%d cursor=%d", engine.spokenCount(), p.Cursor())
	}

	observer.mu.Lock()
	defer observer.mu.Unlock()
	if len(observer.sentences) != 2 || observer.sentences[0] != 0 || observer.sentences[1] != 1 {
		t.Errorf("sentence notifications = %v, want [0 1]", observer.sentences)
	}
}

func TestPlayer_CompletesQueue(t *testing.T) {
	engine := newFakeSpeechEngine()
	observer := newRecordingObserver()
	p := newTestPlayer(engine, observer)

	p.SetCommentary(commentary)
	_ = p.Play()
	for i := 0; i < 3; i++ {
		p.handleEvent(endOf(engine.last()))
	}

	if engine.spokenCount() != 3 {
		t.Errorf("spoken = %d, want 3", engine.spokenCount())
	}
	if p.State() != domain.SpeechIdle || p.Cursor() != 0 {
		t.Errorf("after completion: state=%v cursor=%d", p.State(), p.Cursor())
	}
	observer.mu.Lock()
	defer observer.mu.Unlock()
	if observer.ends != 1 {
		t.Errorf("OnCommentaryEnd called %d times, want 1", observer.ends)
	}
}

func TestPlayer_PauseIsIdempotent(t *testing.T) {
	engine := newFakeSpeechEngine()
	p := newTestPlayer(engine, nil)
	p.SetCommentary(commentary)
	_ = p.Play()

	p.Pause()
	p.Pause()

	if engine.pauses != 1 {
		t.Errorf("engine paused %d times, want 1", engine.pauses)
	}
	if p.State() != domain.SpeechPaused || p.Cursor() != 0 {
		t.Errorf("state=%v cursor=%d", p.State(), p.Cursor())
	}

	p.Resume()
	p.Resume()
	if engine.resumes != 1 {
		t.Errorf("engine resumed %d times, want 1", engine.resumes)
	}
	if p.State() != domain.SpeechPlaying {
		t.Errorf("state after resume = %v", p.State())
	}
}

func TestPlayer_PlayWhilePausedResumes(t *testing.T) {
	engine := newFakeSpeechEngine()
	p := newTestPlayer(engine, nil)
	p.SetCommentary(commentary)
	_ = p.Play()
	p.Pause()

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if engine.resumes != 1 || engine.spokenCount() != 1 {
		t.Errorf("resumes=%d spoken=%d", engine.resumes, engine.spokenCount())
	}
}

func TestPlayer_SentenceEndsWhilePaused(t *testing.T) {
	engine := newFakeSpeechEngine()
	p := newTestPlayer(engine, nil)
	p.SetCommentary(commentary)
	_ = p.Play()
	p.Pause()

	p.handleEvent(endOf(engine.last()))
	if p.Cursor() != 1 || engine.spokenCount() != 1 {
		t.Fatalf("cursor=%d spoken=%d, want 1 and 1", p.Cursor(), engine.spokenCount())
	}

	p.Resume()
	if engine.spokenCount() != 2 || engine.last().Text != "That was a six." {
		t.Errorf("resume should speak the next sentence, got %d utterances", engine.spokenCount())
	}
	if engine.resumes != 0 {
		t.Errorf("engine resume should not be needed, got %d", engine.resumes)
	}
}

func TestPlayer_EngineErrorKeepsCursor(t *testing.T) {
	engine := newFakeSpeechEngine()
	p := newTestPlayer(engine, nil)
	p.SetCommentary(commentary)
	_ = p.Play()
	p.handleEvent(endOf(engine.last()))

	failed := engine.last()
	p.handleEvent(domain.SpeechEvent{Kind: domain.SpeechEventError, UtteranceID: failed.ID, Err: errors.New("synth failed")})

	if p.State() != domain.SpeechIdle {
		t.Errorf("state after error = %v", p.State())
	}
	if p.Cursor() != 1 {
		t.Errorf("cursor after error = %d, want 1", p.Cursor())
	}

	// Playing again retries the failed sentence
	_ = p.Play()
	if engine.last().Text != failed.Text {
		t.Errorf("retry spoke %q, want %q", engine.last().Text, failed.Text)
	}
}

func TestPlayer_SpeakErrorStopsPlayback(t *testing.T) {
	engine := newFakeSpeechEngine()
	engine.speakErr = errors.New("no synthesizer")
	p := newTestPlayer(engine, nil)
	p.SetCommentary(commentary)

	if err := p.Play(); err != nil {
		t.Fatalf("Play: %v", err)
	}
	if p.State() != domain.SpeechIdle || p.Cursor() != 0 {
		t.Errorf("state=%v cursor=%d", p.State(), p.Cursor())
	}
}

func TestPlayer_EmptyCommentary(t *testing.T) {
	engine := newFakeSpeechEngine()
	p := newTestPlayer(engine, nil)

	if err := p.Play(); !errors.Is(err, ErrNoCommentary) {
		t.Errorf("expected ErrNoCommentary, got %v", err)
	}

	p.SetCommentary("   ")
	if err := p.Play(); !errors.Is(err, ErrNoCommentary) {
		t.Errorf("expected ErrNoCommentary for blank text, got %v", err)
	}
	if engine.spokenCount() != 0 || p.State() != domain.SpeechIdle {
		t.Errorf("spoken=%d state=%v", engine.spokenCount(), p.State())
	}
}

func TestPlayer_SetCommentaryCancelsInFlight(t *testing.T) {
	engine := newFakeSpeechEngine()
	p := newTestPlayer(engine, nil)
	p.SetCommentary(commentary)
	_ = p.Play()
	old := engine.last()

	p.SetCommentary("New text. Second.")
	if engine.cancels != 1 {
		t.Errorf("cancels = %d, want 1", engine.cancels)
	}
	if p.State() != domain.SpeechIdle || len(p.Sentences()) != 2 {
		t.Errorf("state=%v sentences=%d", p.State(), len(p.Sentences()))
	}

	p.handleEvent(endOf(old))
	if p.Cursor() != 0 || engine.spokenCount() != 1 {
		t.Errorf("stale end advanced the new queue")
	}
}

func TestPlayer_Toggle(t *testing.T) {
	tests := []struct {
		name  string
		setup func(p *Player)
		want  domain.SpeechState
	}{
		{name: "Idle starts", setup: func(p *Player) {}, want: domain.SpeechPlaying},
		{name: "Playing stops", setup: func(p *Player) { _ = p.Play() }, want: domain.SpeechIdle},
		{name: "Paused stops", setup: func(p *Player) { _ = p.Play(); p.Pause() }, want: domain.SpeechIdle},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := newTestPlayer(newFakeSpeechEngine(), nil)
			p.SetCommentary(commentary)
			tt.setup(p)

			if got := p.Toggle(); got != tt.want {
				t.Errorf("Toggle() = %v, want %v", got, tt.want)
			}
			if p.Cursor() != 0 {
				t.Errorf("cursor = %d", p.Cursor())
			}
		})
	}
}

func TestPlayer_NotificationOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	observer := mocks.NewMockSpeechObserver(ctrl)
	engine := newFakeSpeechEngine()

	gomock.InOrder(
		observer.EXPECT().OnSpeechState(domain.SpeechPlaying, 0),
		observer.EXPECT().OnSentenceChange("Great shot!", 0),
		observer.EXPECT().OnSpeechState(domain.SpeechIdle, 0),
	)

	p := newTestPlayer(engine, observer)
	p.SetCommentary(commentary)
	_ = p.Play()
	p.Stop()
}

func TestPlayer_RunLoopAdvances(t *testing.T) {
	engine := newFakeSpeechEngine()
	observer := newRecordingObserver()
	p := newTestPlayer(engine, observer)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := p.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}

	p.SetCommentary(commentary)
	_ = p.Play()
	<-observer.changed

	engine.events <- endOf(engine.last())

	select {
	case index := <-observer.changed:
		if index != 1 {
			t.Errorf("sentence index = %d, want 1", index)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("Timeout: next sentence was not spoken")
	}
}

func TestPlayer_VoicesChangedReselects(t *testing.T) {
	engine := newFakeSpeechEngine()
	p := newTestPlayer(engine, nil)

	if _, ok := p.Voice(); ok {
		t.Fatal("expected no voice before the list is populated")
	}

	engine.mu.Lock()
	engine.voices = []domain.Voice{{Name: "fr", Lang: "fr-FR"}, {Name: "English (Great Britain) Male", Lang: "en-GB"}}
	engine.mu.Unlock()

	p.handleEvent(domain.SpeechEvent{Kind: domain.SpeechEventVoicesChanged})

	v, ok := p.Voice()
	if !ok || v.Lang != "en-GB" {
		t.Errorf("selected voice = %+v, %v", v, ok)
	}

	p.SetCommentary(commentary)
	_ = p.Play()
	if u := engine.last(); u.Voice == nil || u.Voice.Lang != "en-GB" {
		t.Errorf("utterance voice = %+v", u.Voice)
	}
}

func TestSelectVoice(t *testing.T) {
	tests := []struct {
		name   string
		voices []domain.Voice
		want   string
		ok     bool
	}{
		{name: "None", voices: nil, ok: false},
		{
			name:   "Preferred male English",
			voices: []domain.Voice{{Name: "Female", Lang: "en-GB"}, {Name: "US Male", Lang: "en-US"}},
			want:   "US Male",
			ok:     true,
		},
		{
			name:   "Any English",
			voices: []domain.Voice{{Name: "de", Lang: "de-DE"}, {Name: "en-au", Lang: "en-AU"}},
			want:   "en-au",
			ok:     true,
		},
		{
			name:   "First voice",
			voices: []domain.Voice{{Name: "de", Lang: "de-DE"}, {Name: "it", Lang: "it-IT"}},
			want:   "de",
			ok:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SelectVoice(tt.voices)
			if ok != tt.ok || got.Name != tt.want {
				t.Errorf("SelectVoice() = %q, %v; want %q, %v", got.Name, ok, tt.want, tt.ok)
			}
		})
	}
}
