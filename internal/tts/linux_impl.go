//go:build linux

package tts

import (
	"context"
	"fmt"
	"os/exec"
	"sync"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sys/unix"
)

// LinuxEngine speaks each utterance with one synthesizer process. Pause and
// resume stop and continue the process, so a paused sentence resumes in place.
type LinuxEngine struct {
	logger  *zap.Logger
	command SynthCommand
	events  chan domain.SpeechEvent

	mu              sync.Mutex
	current         *exec.Cmd
	currentID       string
	paused          bool
	voices          []domain.Voice
	lastDropWarning time.Time
}

// NewEngine creates a new platform-specific speech engine (Linux implementation)
func NewEngine(logger *zap.Logger) (*LinuxEngine, error) {
	cmd := detectCommand(logger)
	if cmd.Binary == "" {
		return nil, fmt.Errorf("no supported speech synthesizer found on this system")
	}

	logger.Info("Speech synthesizer detected",
		zap.String("name", cmd.Name),
		zap.String("binary", cmd.Binary))

	return newEngine(logger, cmd), nil
}

func newEngine(logger *zap.Logger, cmd SynthCommand) *LinuxEngine {
	return &LinuxEngine{
		logger:  logger,
		command: cmd,
		events:  make(chan domain.SpeechEvent, 10),
	}
}

// detectCommand picks the first synthesizer available in PATH
func detectCommand(logger *zap.Logger) SynthCommand {
	for _, cmd := range synthCommands {
		if commandExists(cmd.Binary) {
			return cmd
		}
		logger.Debug("Speech synthesizer not found", zap.String("binary", cmd.Binary))
	}
	return SynthCommand{} // No command found
}

// commandExists checks if a binary exists in PATH
func commandExists(binary string) bool {
	_, err := exec.LookPath(binary)
	return err == nil
}

// Start loads the voice list in the background and reports it with a
// voices-changed notification
func (e *LinuxEngine) Start(ctx context.Context) error {
	if e.command.ListVoices == nil {
		e.logger.Info("Synthesizer does not list voices, using its default", zap.String("name", e.command.Name))
		return nil
	}

	go func() {
		out, err := exec.CommandContext(ctx, e.command.Binary, e.command.ListVoices...).Output()
		if err != nil {
			e.logger.Warn("Failed to list voices", zap.Error(err))
			return
		}

		voices := parseVoices(string(out))
		e.mu.Lock()
		e.voices = voices
		e.mu.Unlock()

		e.logger.Info("Voices loaded", zap.Int("count", len(voices)))
		e.emit(domain.SpeechEvent{Kind: domain.SpeechEventVoicesChanged})
	}()
	return nil
}

// Speak starts the synthesizer for u, replacing any utterance in flight.
// Completion is reported on Events.
func (e *LinuxEngine) Speak(ctx context.Context, u domain.Utterance) error {
	args := e.command.Args(u)
	cmd := exec.CommandContext(ctx, e.command.Binary, args...)

	e.mu.Lock()
	defer e.mu.Unlock()

	e.cancelLocked()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to start %s: %w", e.command.Name, err)
	}

	e.current = cmd
	e.currentID = u.ID
	e.paused = false

	e.logger.Debug("Speaking",
		zap.String("utterance", u.ID),
		zap.Int("pid", cmd.Process.Pid),
		zap.Int("chars", len(u.Text)))

	go e.wait(cmd, u.ID)
	return nil
}

// wait reports how the process for id ended, unless it was cancelled or replaced
func (e *LinuxEngine) wait(cmd *exec.Cmd, id string) {
	err := cmd.Wait()

	e.mu.Lock()
	if e.currentID != id {
		e.mu.Unlock()
		return
	}
	e.current = nil
	e.currentID = ""
	e.paused = false
	e.mu.Unlock()

	if err != nil {
		e.emit(domain.SpeechEvent{Kind: domain.SpeechEventError, UtteranceID: id, Err: fmt.Errorf("%s failed: %w", e.command.Name, err)})
		return
	}
	e.emit(domain.SpeechEvent{Kind: domain.SpeechEventEnd, UtteranceID: id})
}

// Pause stops the synthesizer process (SIGSTOP)
func (e *LinuxEngine) Pause() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || e.paused {
		return nil
	}
	if err := unix.Kill(e.current.Process.Pid, unix.SIGSTOP); err != nil {
		return fmt.Errorf("failed to pause synthesizer: %w", err)
	}
	e.paused = true
	return nil
}

// Resume continues a stopped synthesizer process (SIGCONT)
func (e *LinuxEngine) Resume() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.current == nil || !e.paused {
		return nil
	}
	if err := unix.Kill(e.current.Process.Pid, unix.SIGCONT); err != nil {
		return fmt.Errorf("failed to resume synthesizer: %w", err)
	}
	e.paused = false
	return nil
}

// Cancel kills the utterance in flight without reporting its end
func (e *LinuxEngine) Cancel() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelLocked()
	return nil
}

func (e *LinuxEngine) cancelLocked() {
	if e.current == nil {
		return
	}

	pid := e.current.Process.Pid
	if e.paused {
		// A stopped process does not act on SIGKILL until continued
		_ = unix.Kill(pid, unix.SIGCONT)
	}
	if err := e.current.Process.Kill(); err != nil {
		e.logger.Debug("Failed to kill synthesizer", zap.Int("pid", pid), zap.Error(err))
	}

	e.current = nil
	e.currentID = ""
	e.paused = false
}

// Voices returns the voices listed by the synthesizer
func (e *LinuxEngine) Voices() []domain.Voice {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]domain.Voice(nil), e.voices...)
}

// Events returns a read-only channel of utterance and voice-list notifications
func (e *LinuxEngine) Events() <-chan domain.SpeechEvent {
	return e.events
}

func (e *LinuxEngine) emit(ev domain.SpeechEvent) {
	select {
	case e.events <- ev:
	default:
		e.mu.Lock()
		defer e.mu.Unlock()

		// Rate limit to max one warning per 5 seconds
		const warningInterval = 5 * time.Second
		now := time.Now()
		if now.Sub(e.lastDropWarning) >= warningInterval {
			e.logger.Warn("Events channel full, dropping speech event", zap.String("kind", string(ev.Kind)))
			e.lastDropWarning = now
		}
	}
}
