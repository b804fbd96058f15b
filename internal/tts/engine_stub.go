//go:build !linux

package tts

import (
	"context"
	"fmt"

	"github.com/genricoloni/courtside/internal/domain"
	"go.uber.org/zap"
)

// StubEngine is a placeholder for unsupported platforms (macOS, Windows, BSD)
type StubEngine struct {
	logger *zap.Logger
	events chan domain.SpeechEvent
}

// NewEngine creates a stub engine that refuses to speak
func NewEngine(logger *zap.Logger) (*StubEngine, error) {
	logger.Warn("Speech synthesis is not yet implemented for this platform")
	return &StubEngine{logger: logger, events: make(chan domain.SpeechEvent)}, nil
}

// Start is a no-op on unsupported platforms
func (e *StubEngine) Start(ctx context.Context) error {
	return nil
}

// Speak returns an error indicating the platform is not supported
func (e *StubEngine) Speak(ctx context.Context, u domain.Utterance) error {
	return fmt.Errorf("speech synthesis not implemented for this platform")
}

// Pause is a no-op on unsupported platforms
func (e *StubEngine) Pause() error { return nil }

// Resume is a no-op on unsupported platforms
func (e *StubEngine) Resume() error { return nil }

// Cancel is a no-op on unsupported platforms
func (e *StubEngine) Cancel() error { return nil }

// Voices returns no voices
func (e *StubEngine) Voices() []domain.Voice { return nil }

// Events returns a channel that never fires
func (e *StubEngine) Events() <-chan domain.SpeechEvent { return e.events }
