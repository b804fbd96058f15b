package speech

import (
	"context"
	"errors"
	"sync"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrNoCommentary is returned by Play when no sentences are queued
var ErrNoCommentary = errors.New("no commentary text set")

// Settings are the synthesis parameters applied to every utterance
type Settings struct {
	Rate   float64
	Pitch  float64
	Volume float64
}

// DefaultSettings speaks slightly slower than normal for clarity
func DefaultSettings() Settings {
	return Settings{Rate: 0.9, Pitch: 1.0, Volume: 1.0}
}

// Player speaks commentary sentence by sentence. Each sentence is a separate utterance
// so that every sentence boundary produces a notification; the end of one utterance
// submits the next. Only one utterance is ever in flight.
type Player struct {
	logger   *zap.Logger
	engine   domain.SpeechEngine
	observer domain.SpeechObserver
	settings Settings

	mu        sync.Mutex
	baseCtx   context.Context
	text      string
	sentences []string
	cursor    int
	state     domain.SpeechState
	voice     *domain.Voice
	inflight  string // id of the utterance handed to the engine, "" if none
}

// NewPlayer creates an idle player and selects an initial voice. observer may be nil.
func NewPlayer(logger *zap.Logger, engine domain.SpeechEngine, observer domain.SpeechObserver, settings Settings) *Player {
	if observer == nil {
		observer = nopObserver{}
	}

	p := &Player{
		logger:   logger,
		engine:   engine,
		observer: observer,
		settings: settings,
		baseCtx:  context.Background(),
		state:    domain.SpeechIdle,
	}
	p.LoadVoices()
	return p
}

// Start launches the loop consuming engine notifications. It returns immediately.
func (p *Player) Start(ctx context.Context) error {
	p.mu.Lock()
	p.baseCtx = ctx
	p.mu.Unlock()

	go p.runLoop(ctx)
	return nil
}

func (p *Player) runLoop(ctx context.Context) {
	events := p.engine.Events()

	for {
		select {
		case <-ctx.Done():
			p.logger.Info("Speech loop stopped")
			return

		case ev, ok := <-events:
			if !ok {
				p.logger.Info("Speech engine events channel closed")
				return
			}
			p.handleEvent(ev)
		}
	}
}

// handleEvent advances the queue on utterance completion. Notifications about
// utterances that are no longer in flight (stopped, replaced) are ignored.
func (p *Player) handleEvent(ev domain.SpeechEvent) {
	if ev.Kind == domain.SpeechEventVoicesChanged {
		p.LoadVoices()
		return
	}

	p.mu.Lock()
	if ev.UtteranceID == "" || ev.UtteranceID != p.inflight {
		p.mu.Unlock()
		p.logger.Debug("Ignoring stale speech notification",
			zap.String("kind", string(ev.Kind)),
			zap.String("utterance", ev.UtteranceID))
		return
	}

	var notify []func()
	switch ev.Kind {
	case domain.SpeechEventEnd:
		p.cursor++
		p.inflight = ""
		if p.state == domain.SpeechPlaying {
			notify = p.speakNextLocked()
		}
		// While paused the next sentence is submitted by Resume

	case domain.SpeechEventError:
		p.logger.Error("Speech synthesis error",
			zap.Int("sentence", p.cursor),
			zap.Error(ev.Err))
		p.inflight = ""
		notify = p.setStateLocked(domain.SpeechIdle)
	}
	p.mu.Unlock()

	run(notify)
}

// LoadVoices (re)selects the voice from the engine's current voice list.
// Engines may populate voices lazily, so this runs again on every voice-list change.
func (p *Player) LoadVoices() {
	voice, ok := SelectVoice(p.engine.Voices())
	if !ok {
		p.logger.Debug("No voices available yet")
		return
	}

	p.mu.Lock()
	p.voice = &voice
	p.mu.Unlock()

	p.logger.Info("Selected voice", zap.String("name", voice.Name), zap.String("lang", voice.Lang))
}

// SetCommentary replaces the commentary, cancelling anything in flight, and resets the
// queue to the first sentence.
func (p *Player) SetCommentary(text string) {
	p.mu.Lock()
	if p.inflight != "" || p.state != domain.SpeechIdle {
		if err := p.engine.Cancel(); err != nil {
			p.logger.Warn("Failed to cancel speech", zap.Error(err))
		}
	}
	p.text = text
	p.sentences = Split(text)
	p.cursor = 0
	p.inflight = ""
	notify := p.setStateLocked(domain.SpeechIdle)
	count := len(p.sentences)
	p.mu.Unlock()

	if count == 0 {
		p.logger.Warn("Commentary text is empty")
	} else {
		p.logger.Info("Commentary set", zap.Int("sentences", count))
	}
	run(notify)
}

// Play resumes a paused player, or starts speaking from the cursor when idle.
// Playing an empty queue does nothing and returns ErrNoCommentary.
func (p *Player) Play() error {
	p.mu.Lock()

	switch p.state {
	case domain.SpeechPlaying:
		p.mu.Unlock()
		return nil
	case domain.SpeechPaused:
		notify := p.resumeLocked()
		p.mu.Unlock()
		run(notify)
		return nil
	}

	if len(p.sentences) == 0 {
		p.mu.Unlock()
		p.logger.Warn("No commentary text set")
		return ErrNoCommentary
	}

	notify := p.setStateLocked(domain.SpeechPlaying)
	notify = append(notify, p.speakNextLocked()...)
	p.mu.Unlock()

	run(notify)
	return nil
}

// Pause suspends the engine mid-sentence. No-op unless playing.
func (p *Player) Pause() {
	p.mu.Lock()
	if p.state != domain.SpeechPlaying {
		p.mu.Unlock()
		return
	}

	if err := p.engine.Pause(); err != nil {
		p.logger.Warn("Failed to pause speech", zap.Error(err))
	}
	notify := p.setStateLocked(domain.SpeechPaused)
	p.mu.Unlock()

	run(notify)
}

// Resume continues a paused utterance in place. No-op unless paused.
func (p *Player) Resume() {
	p.mu.Lock()
	if p.state != domain.SpeechPaused {
		p.mu.Unlock()
		return
	}
	notify := p.resumeLocked()
	p.mu.Unlock()

	run(notify)
}

func (p *Player) resumeLocked() []func() {
	notify := p.setStateLocked(domain.SpeechPlaying)

	if p.inflight == "" {
		// The sentence finished while paused; continue with the next one
		return append(notify, p.speakNextLocked()...)
	}

	if err := p.engine.Resume(); err != nil {
		p.logger.Warn("Failed to resume speech", zap.Error(err))
	}
	return notify
}

// Stop cancels the utterance in flight and rewinds to the first sentence,
// whatever the current state.
func (p *Player) Stop() {
	p.mu.Lock()
	if err := p.engine.Cancel(); err != nil {
		p.logger.Warn("Failed to cancel speech", zap.Error(err))
	}
	p.cursor = 0
	p.inflight = ""
	p.state = domain.SpeechIdle
	notify := []func(){p.stateNotifier()}
	p.mu.Unlock()

	run(notify)
}

// Toggle stops an active player or starts an idle one, like a single play/stop button
func (p *Player) Toggle() domain.SpeechState {
	if state := p.State(); state == domain.SpeechPlaying || state == domain.SpeechPaused {
		p.Stop()
	} else if err := p.Play(); err != nil {
		p.logger.Info("Commentary not started", zap.Error(err))
	}
	return p.State()
}

// speakNextLocked submits the sentence under the cursor, or finishes the queue
func (p *Player) speakNextLocked() []func() {
	if p.cursor >= len(p.sentences) {
		p.cursor = 0
		p.inflight = ""
		notify := p.setStateLocked(domain.SpeechIdle)
		return append(notify, p.observer.OnCommentaryEnd)
	}

	index := p.cursor
	sentence := p.sentences[index]
	u := domain.Utterance{
		ID:     uuid.NewString(),
		Text:   sentence,
		Voice:  p.voice,
		Rate:   p.settings.Rate,
		Pitch:  p.settings.Pitch,
		Volume: p.settings.Volume,
	}

	if err := p.engine.Speak(p.baseCtx, u); err != nil {
		p.logger.Error("Speech synthesis error", zap.Int("sentence", index), zap.Error(err))
		return p.setStateLocked(domain.SpeechIdle)
	}
	p.inflight = u.ID

	return []func(){func() { p.observer.OnSentenceChange(sentence, index) }}
}

func (p *Player) setStateLocked(state domain.SpeechState) []func() {
	if p.state == state {
		return nil
	}
	p.state = state
	return []func(){p.stateNotifier()}
}

func (p *Player) stateNotifier() func() {
	state, cursor := p.state, p.cursor
	return func() { p.observer.OnSpeechState(state, cursor) }
}

// Cursor returns the index of the current sentence; 0 when idle or finished
func (p *Player) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// State returns the playback state
func (p *Player) State() domain.SpeechState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Sentences returns the sentence queue
func (p *Player) Sentences() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.sentences...)
}

// Text returns the commentary as set
func (p *Player) Text() string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.text
}

// Voice returns the selected voice, if any
func (p *Player) Voice() (domain.Voice, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.voice == nil {
		return domain.Voice{}, false
	}
	return *p.voice, true
}

func run(notify []func()) {
	for _, fn := range notify {
		fn()
	}
}

type nopObserver struct{}

func (nopObserver) OnSentenceChange(string, int)          {}
func (nopObserver) OnCommentaryEnd()                      {}
func (nopObserver) OnSpeechState(domain.SpeechState, int) {}
