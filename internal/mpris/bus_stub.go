//go:build !linux

package mpris

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Bus stub for non-Linux platforms
type Bus struct {
	logger  *zap.Logger
	players map[string]*Player
}

// NewBus creates a stub bus whose players never connect
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{logger: logger, players: make(map[string]*Player)}
}

// Player returns the player for name; it stays disconnected
func (b *Bus) Player(name string) *Player {
	p := NewPlayer(b.logger, name)
	if existing, ok := b.players[p.name]; ok {
		return existing
	}
	b.players[p.name] = p
	return p
}

// Start returns an error indicating MPRIS is not supported on this platform
func (b *Bus) Start(ctx context.Context) error {
	return fmt.Errorf("MPRIS playback is only supported on Linux systems")
}

// Stop is a no-op on non-Linux platforms
func (b *Bus) Stop(ctx context.Context) error {
	return nil
}
