package transport

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/genricoloni/courtside/internal/timefmt"
	"github.com/genricoloni/courtside/internal/timeline"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

const (
	defaultVolume          = 1.0
	defaultSecondaryVolume = 0.8

	// Legacy settle delays, used only when seek acknowledgement is not trusted
	LegacyPreSeekDelay  = 50 * time.Millisecond
	LegacyPostSeekDelay = 100 * time.Millisecond
)

var (
	// ErrJumpSuperseded is returned by a JumpTo that was cancelled by a newer JumpTo
	ErrJumpSuperseded = errors.New("jump superseded by a newer request")

	// ErrDurationUnknown is returned by operations that need the media duration before it is known
	ErrDurationUnknown = errors.New("media duration is not known yet")
)

// Option customizes a Transport
type Option func(*Transport)

// WithTolerance sets the active-event tolerance in seconds
func WithTolerance(seconds float64) Option {
	return func(t *Transport) { t.tolerance = seconds }
}

// WithClassifier sets the classifier used to build timeline markers
func WithClassifier(c *timeline.Classifier) Option {
	return func(t *Transport) { t.classifier = c }
}

// WithSettleDelays inserts fixed waits before and after the seek of a JumpTo,
// for engines whose seek acknowledgement cannot be trusted.
func WithSettleDelays(beforeSeek, afterSeek time.Duration) Option {
	return func(t *Transport) {
		t.preSeekDelay = beforeSeek
		t.postSeekDelay = afterSeek
	}
}

// Transport drives a primary (video) and a secondary (commentary audio) engine as one
// set of playback controls.
type Transport struct {
	logger     *zap.Logger
	primary    domain.MediaEngine
	secondary  domain.MediaEngine // optional
	observer   domain.TransportObserver
	classifier *timeline.Classifier
	tolerance  float64

	preSeekDelay  time.Duration
	postSeekDelay time.Duration

	mu       sync.Mutex
	events   []domain.DomainEvent
	markers  []timeline.Marker
	playing  bool
	muted    bool
	volume   float64
	ready    bool
	current  float64
	duration float64

	// Single-slot jump queue: jumpMu guards the slot, jumpRun serializes execution
	jumpMu     sync.Mutex
	jumpRun    sync.Mutex
	jumpSeq    uint64
	jumpCancel context.CancelFunc
}

// New creates a transport over two engines. secondary and observer may be nil.
func New(
	logger *zap.Logger,
	primary domain.MediaEngine,
	secondary domain.MediaEngine,
	observer domain.TransportObserver,
	opts ...Option,
) *Transport {
	if observer == nil {
		observer = nopObserver{}
	}

	t := &Transport{
		logger:     logger,
		primary:    primary,
		secondary:  secondary,
		observer:   observer,
		classifier: timeline.NewClassifier(),
		tolerance:  timeline.DefaultTolerance,
		volume:     defaultVolume,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SetEvents replaces the event set used for markers and highlighting
func (t *Transport) SetEvents(events []domain.DomainEvent) {
	t.mu.Lock()
	t.events = append([]domain.DomainEvent(nil), events...)
	t.markers = t.classifier.Build(t.events, t.duration)
	t.mu.Unlock()

	t.logger.Info("Events loaded", zap.Int("count", len(events)))
}

// Markers returns the timeline markers, empty until the duration is known
func (t *Transport) Markers() []timeline.Marker {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]timeline.Marker(nil), t.markers...)
}

// Events returns the event set
func (t *Transport) Events() []domain.DomainEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]domain.DomainEvent(nil), t.events...)
}

// ActiveEvents returns the events highlighted at the last known playback position
func (t *Transport) ActiveEvents() []domain.DomainEvent {
	t.mu.Lock()
	defer t.mu.Unlock()
	return timeline.ActiveEvents(t.events, t.current, t.tolerance)
}

// State returns the current transport state
func (t *Transport) State() domain.TransportState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stateLocked()
}

func (t *Transport) stateLocked() domain.TransportState {
	return domain.TransportState{
		CurrentTime: t.current,
		Duration:    t.duration,
		Playing:     t.playing,
		Muted:       t.muted,
		Volume:      t.volume,
		Ready:       t.ready,
	}
}

// update applies fn under the lock and notifies the observer with the resulting state
func (t *Transport) update(fn func()) {
	t.mu.Lock()
	fn()
	state := t.stateLocked()
	t.mu.Unlock()

	t.observer.OnTransportChange(state)
}

// Play requests playback on the primary engine. Only once the primary confirmed that
// playback started do the controls flip and the secondary follow. A rejected request is
// logged and leaves the controls unchanged so the viewer can retry.
func (t *Transport) Play(ctx context.Context) bool {
	if err := t.primary.Play(ctx); err != nil {
		t.logger.Info("Play request rejected, controls left unchanged", zap.Error(err))
		return false
	}

	t.update(func() { t.playing = true })

	if t.secondary != nil {
		if err := t.secondary.Play(ctx); err != nil {
			t.logger.Warn("Commentary audio did not follow video playback", zap.Error(err))
		}
	}
	return true
}

// Pause flips the controls first, so repeated clicks cannot toggle twice, then pauses
// whichever engines are still playing.
func (t *Transport) Pause() {
	t.update(func() { t.playing = false })

	if err := t.pauseEngines(); err != nil {
		t.logger.Error("Failed to pause media", zap.Error(err))
	}
}

func (t *Transport) pauseEngines() error {
	var err error
	for _, e := range t.engines() {
		if !e.Paused() {
			err = multierr.Append(err, e.Pause())
		}
	}
	return err
}

// Seek moves both engines to the given position. The secondary position is mirrored
// from the primary target; small drift is tolerated until the next explicit seek.
func (t *Transport) Seek(ctx context.Context, seconds float64) error {
	t.mu.Lock()
	target := t.clampLocked(seconds)
	t.mu.Unlock()

	if err := t.seekEngines(ctx, target); err != nil {
		return err
	}

	t.update(func() { t.current = target })
	return nil
}

// SeekFraction seeks to a fraction of the duration, as a scrubber click does
func (t *Transport) SeekFraction(ctx context.Context, fraction float64) error {
	duration := t.primary.Duration()
	if !timeline.KnownDuration(duration) {
		return ErrDurationUnknown
	}
	return t.Seek(ctx, math.Max(0, math.Min(1, fraction))*duration)
}

func (t *Transport) seekEngines(ctx context.Context, seconds float64) error {
	if err := t.primary.Seek(ctx, seconds); err != nil {
		return fmt.Errorf("seek video: %w", err)
	}
	if t.secondary != nil {
		if err := t.secondary.Seek(ctx, seconds); err != nil {
			return fmt.Errorf("seek commentary audio: %w", err)
		}
	}
	return nil
}

func (t *Transport) clampLocked(seconds float64) float64 {
	if math.IsNaN(seconds) || seconds < 0 {
		return 0
	}
	if timeline.KnownDuration(t.duration) && seconds > t.duration {
		return t.duration
	}
	return seconds
}

// JumpTo moves playback to an event: pause both streams, seek both and wait for the
// engines to acknowledge, then play. A newer JumpTo cancels this one; the cancelled
// call returns ErrJumpSuperseded and never issues play.
func (t *Transport) JumpTo(ctx context.Context, timestamp float64) error {
	jctx, release := t.acquireJumpSlot(ctx)
	defer release()

	if err := t.jumpErr(ctx, jctx); err != nil {
		return err
	}

	t.logger.Debug("Jumping to event", zap.Float64("timestamp", timestamp))

	// 1. Pause both streams; takes local effect before anything else is issued
	t.Pause()

	if err := t.settle(jctx, t.preSeekDelay); err != nil {
		return t.jumpErr(ctx, jctx)
	}

	// 2. Seek both streams, waiting for each acknowledgement
	t.mu.Lock()
	target := t.clampLocked(timestamp)
	t.mu.Unlock()

	if err := t.seekEngines(jctx, target); err != nil {
		if jerr := t.jumpErr(ctx, jctx); jerr != nil {
			return jerr
		}
		return err
	}
	t.update(func() { t.current = target })

	if err := t.settle(jctx, t.postSeekDelay); err != nil {
		return t.jumpErr(ctx, jctx)
	}

	// 3. Resume playback
	if err := t.jumpErr(ctx, jctx); err != nil {
		return err
	}
	t.Play(jctx)
	return nil
}

// acquireJumpSlot cancels any in-flight jump and waits for it to unwind
func (t *Transport) acquireJumpSlot(ctx context.Context) (context.Context, func()) {
	t.jumpMu.Lock()
	if t.jumpCancel != nil {
		t.logger.Debug("Superseding in-flight jump")
		t.jumpCancel()
	}
	jctx, cancel := context.WithCancel(ctx)
	t.jumpSeq++
	seq := t.jumpSeq
	t.jumpCancel = cancel
	t.jumpMu.Unlock()

	t.jumpRun.Lock()

	return jctx, func() {
		t.jumpRun.Unlock()

		t.jumpMu.Lock()
		if t.jumpSeq == seq {
			t.jumpCancel = nil
		}
		t.jumpMu.Unlock()
		cancel()
	}
}

// jumpErr tells a superseded jump apart from a caller cancellation
func (t *Transport) jumpErr(parent, jctx context.Context) error {
	if jctx.Err() == nil {
		return nil
	}
	if parent.Err() != nil {
		return parent.Err()
	}
	return ErrJumpSuperseded
}

func (t *Transport) settle(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// SetVolume applies one volume to both engines
func (t *Transport) SetVolume(volume float64) {
	volume = math.Max(0, math.Min(1, volume))

	var err error
	for _, e := range t.engines() {
		err = multierr.Append(err, e.SetVolume(volume))
	}
	if err != nil {
		t.logger.Warn("Failed to apply volume", zap.Float64("volume", volume), zap.Error(err))
	}

	t.update(func() { t.volume = volume })
}

// ToggleMute flips mute on both engines and returns the new mute state
func (t *Transport) ToggleMute() bool {
	t.mu.Lock()
	muted := !t.muted
	t.mu.Unlock()

	var err error
	for _, e := range t.engines() {
		err = multierr.Append(err, e.SetMuted(muted))
	}
	if err != nil {
		t.logger.Warn("Failed to apply mute", zap.Bool("muted", muted), zap.Error(err))
	}

	t.update(func() { t.muted = muted })
	return muted
}

// OnLoadedMetadata handles the primary engine reporting its duration: markers are built,
// the commentary gets its default volume and the controls become usable.
func (t *Transport) OnLoadedMetadata() {
	duration := t.primary.Duration()

	if t.secondary != nil {
		if err := t.secondary.SetVolume(defaultSecondaryVolume); err != nil {
			t.logger.Warn("Failed to set commentary volume", zap.Error(err))
		}
	}

	t.update(func() {
		t.duration = duration
		t.ready = true
		t.markers = t.classifier.Build(t.events, duration)
	})

	t.logger.Info("Media metadata loaded",
		zap.Float64("duration", duration),
		zap.String("total", timefmt.Clock(duration)))
}

// OnTimeUpdate recomputes progress, clock labels and the active event set.
// It runs at the engine tick rate and only reads state.
func (t *Transport) OnTimeUpdate() domain.Tick {
	current := t.primary.CurrentTime()
	duration := t.primary.Duration()

	t.mu.Lock()
	t.current = current
	if timeline.KnownDuration(duration) {
		t.duration = duration
	}
	events := t.events
	tolerance := t.tolerance
	t.mu.Unlock()

	tick := domain.Tick{
		CurrentTime:  current,
		Duration:     duration,
		Percent:      timeline.Position(current, duration),
		CurrentLabel: timefmt.Clock(current),
		TotalLabel:   timefmt.Clock(duration),
		Active:       timeline.ActiveEvents(events, current, tolerance),
	}

	t.observer.OnTick(tick)
	return tick
}

// OnEnded resets the controls and stops the commentary audio when the video ends
func (t *Transport) OnEnded() {
	t.update(func() { t.playing = false })

	if t.secondary != nil && !t.secondary.Paused() {
		if err := t.secondary.Pause(); err != nil {
			t.logger.Warn("Failed to pause commentary audio", zap.Error(err))
		}
	}
}

func (t *Transport) engines() []domain.MediaEngine {
	if t.secondary == nil {
		return []domain.MediaEngine{t.primary}
	}
	return []domain.MediaEngine{t.primary, t.secondary}
}

type nopObserver struct{}

func (nopObserver) OnTransportChange(domain.TransportState) {}
func (nopObserver) OnTick(domain.Tick)                      {}
