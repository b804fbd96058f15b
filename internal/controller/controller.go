package controller

import (
	"context"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/genricoloni/courtside/internal/speech"
	"github.com/genricoloni/courtside/internal/timeline"
	"github.com/genricoloni/courtside/internal/transport"
	"go.uber.org/zap"
)

const defaultTickInterval = 250 * time.Millisecond

// Options tune the controller
type Options struct {
	// TickInterval is how often a time-update is computed while the video plays
	TickInterval time.Duration
	// CommentaryFile is loaded into the speech queue on Start when set
	CommentaryFile string
	// Secondary is the commentary audio engine, if any. Its events are only logged.
	Secondary domain.MediaEngine
}

// Controller owns every playback role of the viewer: it feeds primary engine
// lifecycle events and time-updates into the transport, loads the detected
// events and the commentary text, and keeps the event listing.
type Controller struct {
	logger    *zap.Logger
	primary   domain.MediaEngine
	transport *transport.Transport
	speech    *speech.Player
	source    domain.EventSource
	opts      Options

	mu      sync.RWMutex
	listing timeline.Listing
}

// New creates a controller over the given roles
func New(
	logger *zap.Logger,
	primary domain.MediaEngine,
	tr *transport.Transport,
	sp *speech.Player,
	source domain.EventSource,
	opts Options,
) *Controller {
	if opts.TickInterval <= 0 {
		opts.TickInterval = defaultTickInterval
	}

	return &Controller{
		logger:    logger,
		primary:   primary,
		transport: tr,
		speech:    sp,
		source:    source,
		opts:      opts,
		listing:   timeline.Describe(nil, nil),
	}
}

// Start loads events and commentary, then launches the event loop in a goroutine.
// It returns immediately (non-blocking). A backend or file failure is logged and
// shown in the listing; the player stays usable.
func (c *Controller) Start(ctx context.Context) error {
	c.logger.Info("Controller starting...")

	if err := c.RefreshEvents(ctx); err != nil {
		c.logger.Warn("Could not load events, timeline stays empty", zap.Error(err))
	}

	if c.opts.CommentaryFile != "" {
		if err := c.LoadCommentaryFile(c.opts.CommentaryFile); err != nil {
			c.logger.Warn("Could not load commentary", zap.Error(err))
		}
	}

	if err := c.speech.Start(ctx); err != nil {
		return fmt.Errorf("failed to start speech player: %w", err)
	}

	go c.runLoop(ctx)
	return nil
}

// runLoop forwards primary engine events to the transport and computes a
// time-update on every tick while the video plays
func (c *Controller) runLoop(ctx context.Context) {
	events := c.primary.Events()

	// A nil channel never fires, so a missing secondary simply never selects
	var secondary <-chan domain.MediaEvent
	if c.opts.Secondary != nil {
		secondary = c.opts.Secondary.Events()
	}

	ticker := time.NewTicker(c.opts.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Controller loop stopped")
			return

		case ev, ok := <-events:
			if !ok {
				c.logger.Info("Media events channel closed")
				return
			}
			c.handleMediaEvent(ev)

		case ev, ok := <-secondary:
			if !ok {
				secondary = nil
				continue
			}
			c.logger.Debug("Commentary audio event",
				zap.String("kind", string(ev.Kind)),
				zap.String("status", string(ev.Status)))

		case <-ticker.C:
			if c.transport.State().Playing {
				c.transport.OnTimeUpdate()
			}
		}
	}
}

func (c *Controller) handleMediaEvent(ev domain.MediaEvent) {
	c.logger.Debug("Media event received",
		zap.String("kind", string(ev.Kind)),
		zap.String("status", string(ev.Status)),
		zap.Float64("position", ev.Position))

	switch ev.Kind {
	case domain.MediaLoaded:
		c.transport.OnLoadedMetadata()
		c.transport.OnTimeUpdate()
	case domain.MediaEnded:
		c.transport.OnEnded()
		c.transport.OnTimeUpdate()
	case domain.MediaSeeked:
		// Refresh highlights right away, even while paused
		c.transport.OnTimeUpdate()
	case domain.MediaStatusChanged:
		// Playback state is owned by the controls; the engine status only matters for logging
	}
}

// RefreshEvents fetches the detected events and hands them to the transport.
// The listing reflects the outcome either way.
func (c *Controller) RefreshEvents(ctx context.Context) error {
	events, err := c.source.FetchEvents(ctx)
	listing := timeline.Describe(events, err)

	c.mu.Lock()
	c.listing = listing
	c.mu.Unlock()

	if err != nil {
		return fmt.Errorf("fetch events: %w", err)
	}

	c.transport.SetEvents(events)
	return nil
}

// LoadCommentaryFile reads a commentary text and queues it for speech
func (c *Controller) LoadCommentaryFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read commentary %s: %w", path, err)
	}

	c.speech.SetCommentary(string(data))
	c.logger.Info("Commentary loaded",
		zap.String("path", path),
		zap.Int("sentences", len(c.speech.Sentences())))
	return nil
}

// Listing returns the event listing shown next to the player
func (c *Controller) Listing() timeline.Listing {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.listing
}

// Transport returns the playback controls
func (c *Controller) Transport() *transport.Transport {
	return c.transport
}

// Speech returns the commentary player
func (c *Controller) Speech() *speech.Player {
	return c.speech
}

// Stop silences the commentary and pauses playback
func (c *Controller) Stop(ctx context.Context) error {
	c.logger.Info("Controller stopping...")

	c.speech.Stop()
	if c.transport.State().Playing {
		c.transport.Pause()
	}
	return nil
}
