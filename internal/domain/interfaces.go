package domain

import (
	"context"
	"errors"
)

// MediaEngine is one independently controlled playable stream (video or commentary audio).
// Implementations must be safe for concurrent use.
//
//go:generate mockgen -destination=mocks/mock_interfaces.go -package=mocks github.com/genricoloni/courtside/internal/domain MediaEngine,SpeechEngine,TransportObserver,SpeechObserver,ProgressSink,Navigator,JobClient
type MediaEngine interface {
	// Play requests playback and returns once the engine confirmed it started.
	// A rejected request (e.g. autoplay policy) returns an error.
	Play(ctx context.Context) error

	// Pause pauses playback. Pausing a paused engine is a no-op.
	Pause() error

	// Paused reports whether the engine is not playing
	Paused() bool

	// CurrentTime returns the playback position in seconds
	CurrentTime() float64

	// Duration returns the media duration in seconds, or 0 while unknown
	Duration() float64

	// Seek moves the playback position and returns once the engine acknowledged the seek
	Seek(ctx context.Context, seconds float64) error

	// SetVolume sets the output volume in [0,1]
	SetVolume(volume float64) error

	// SetMuted mutes or unmutes the output
	SetMuted(muted bool) error

	// Events returns a read-only channel of lifecycle notifications
	Events() <-chan MediaEvent
}

// SpeechEngine synthesizes utterances one at a time
type SpeechEngine interface {
	// Speak submits an utterance. It returns immediately; completion is reported on Events.
	Speak(ctx context.Context, u Utterance) error

	// Pause suspends the utterance in flight, keeping its position
	Pause() error

	// Resume continues a paused utterance
	Resume() error

	// Cancel drops the utterance in flight without an end notification being required
	Cancel() error

	// Voices lists the voices currently offered; may be empty until populated
	Voices() []Voice

	// Events returns a read-only channel of utterance and voice-list notifications
	Events() <-chan SpeechEvent
}

// EventSource supplies the detected match events
type EventSource interface {
	FetchEvents(ctx context.Context) ([]DomainEvent, error)
}

// JobClient talks to the backend processing job
type JobClient interface {
	// StartProcessing asks the backend to begin processing the uploaded video
	StartProcessing(ctx context.Context) (StartResponse, error)

	// FetchProgress reads the current job progress
	FetchProgress(ctx context.Context) (JobStatus, error)
}

// TransportObserver receives transport state changes
type TransportObserver interface {
	// OnTransportChange is called whenever play/pause/mute/volume/readiness changes
	OnTransportChange(state TransportState)

	// OnTick is called on every time-update
	OnTick(tick Tick)
}

// SpeechObserver receives commentary playback notifications
type SpeechObserver interface {
	// OnSentenceChange is called when a sentence is handed to the speech engine
	OnSentenceChange(sentence string, index int)

	// OnCommentaryEnd is called after the last sentence was spoken
	OnCommentaryEnd()

	// OnSpeechState is called on every state machine transition
	OnSpeechState(state SpeechState, cursor int)
}

// ProgressSink displays the processing progress
type ProgressSink interface {
	// UpdateProgress shows a percentage and phase message
	UpdateProgress(percent int, message string)

	// ShowError surfaces a dismissible error message
	ShowError(message string)

	// SetStartEnabled enables or disables the start-processing control
	SetStartEnabled(enabled bool)
}

// Navigator moves the viewer to another page once processing completes
type Navigator interface {
	Redirect(ctx context.Context, target string) error
}

// Config defines the interface for application configuration
type Config interface {
	// GetBackendURL returns the base URL of the processing backend
	GetBackendURL() string

	// GetListenAddr returns the address of the local control API
	GetListenAddr() string

	// GetSeekMode returns "ack" or "settle"
	GetSeekMode() string

	// GetProgressMode returns "poll" or "scripted"
	GetProgressMode() string
}

// ErrProgressUnsupported is returned by JobClient.FetchProgress when the backend
// offers no progress endpoint
var ErrProgressUnsupported = errors.New("backend does not report progress")
