//go:build linux

package mpris

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

// Bus owns the session bus connection and routes MPRIS signals to the
// players registered on it
type Bus struct {
	logger      *zap.Logger
	mu          sync.RWMutex
	running     bool
	cancel      context.CancelFunc
	conn        DBusClient                 // Interface for testability
	dial        func() (DBusClient, error) // Opens the connection in Start
	wg          sync.WaitGroup             // Tracks the signal goroutine
	players     map[string]*Player         // Well-known name -> player
	playerNames map[string]string          // Maps unique bus names (:1.45) to well-known names
}

// NewBus creates a bus that connects to the session bus on Start
func NewBus(logger *zap.Logger) *Bus {
	return &Bus{
		logger:      logger,
		dial:        func() (DBusClient, error) { return NewStdDBusClient() },
		players:     make(map[string]*Player),
		playerNames: make(map[string]string),
	}
}

// Player returns the player for name, registering it on first use
func (b *Bus) Player(name string) *Player {
	p := NewPlayer(b.logger, name)

	b.mu.Lock()
	defer b.mu.Unlock()

	if existing, ok := b.players[p.name]; ok {
		return existing
	}
	b.players[p.name] = p
	return p
}

// Start connects to the session bus, attaches the players already present and
// starts routing signals. It returns once signals are being delivered.
func (b *Bus) Start(ctx context.Context) error {
	b.mu.Lock()
	if b.running {
		b.mu.Unlock()
		return nil
	}
	b.running = true
	b.mu.Unlock()

	conn, err := b.dial()
	if err != nil {
		b.logger.Error("Failed to connect to session bus", zap.Error(err))
		b.mu.Lock()
		b.running = false
		b.mu.Unlock()
		return fmt.Errorf("session bus connection failed: %w", err)
	}

	busCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))

	b.mu.Lock()
	b.conn = conn
	b.cancel = cancel
	b.mu.Unlock()

	matches := [][]dbus.MatchOption{
		{
			dbus.WithMatchObjectPath(_objectPath),
			dbus.WithMatchInterface("org.freedesktop.DBus.Properties"),
			dbus.WithMatchMember("PropertiesChanged"),
		},
		{
			dbus.WithMatchObjectPath(_objectPath),
			dbus.WithMatchInterface(_playerIface),
			dbus.WithMatchMember("Seeked"),
		},
	}
	for _, match := range matches {
		if err := conn.AddMatchSignal(match...); err != nil {
			b.logger.Error("Failed to add match signal", zap.Error(err))
			cancel()
			return fmt.Errorf("failed to add match signal: %w", err)
		}
	}

	// Players started after us are picked up through NameOwnerChanged
	if err := conn.AddMatchSignal(
		dbus.WithMatchInterface("org.freedesktop.DBus"),
		dbus.WithMatchMember("NameOwnerChanged"),
	); err != nil {
		b.logger.Warn("Failed to add NameOwnerChanged match signal", zap.Error(err))
	}

	signals := make(chan *dbus.Signal, 32)
	conn.Signal(signals)

	b.wg.Add(1)
	go b.monitorSignals(busCtx, signals)

	b.detectPlayers()

	b.logger.Info("MPRIS bus started")
	return nil
}

// Stop stops signal routing and closes the connection
func (b *Bus) Stop(ctx context.Context) error {
	b.mu.Lock()
	if !b.running {
		b.mu.Unlock()
		return nil
	}
	if b.cancel != nil {
		b.cancel()
	}
	b.running = false
	b.mu.Unlock()

	b.logger.Debug("Waiting for signal goroutine to finish")
	b.wg.Wait()

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.conn != nil {
		if err := b.conn.Close(); err != nil {
			b.logger.Warn("Failed to close D-Bus connection", zap.Error(err))
		}
	}

	b.logger.Info("MPRIS bus shutdown complete")
	return nil
}

// detectPlayers attaches every registered player that already owns its name
func (b *Bus) detectPlayers() {
	b.mu.RLock()
	conn := b.conn
	players := make([]*Player, 0, len(b.players))
	for _, p := range b.players {
		players = append(players, p)
	}
	b.mu.RUnlock()

	found := 0
	for _, p := range players {
		owner, err := conn.GetNameOwner(p.name)
		if err != nil {
			b.logger.Warn("MPRIS player not running yet", zap.String("player", p.name))
			continue
		}

		b.mu.Lock()
		b.playerNames[owner] = p.name
		b.mu.Unlock()

		p.attach(conn, owner)
		found++
	}

	b.logger.Info("Player detection complete", zap.Int("found", found), zap.Int("registered", len(players)))
}

// monitorSignals listens for D-Bus signals and dispatches them
func (b *Bus) monitorSignals(ctx context.Context, signals <-chan *dbus.Signal) {
	defer b.wg.Done()

	for {
		select {
		case <-ctx.Done():
			b.logger.Info("Signal monitoring goroutine stopped")
			return
		case sig := <-signals:
			if sig == nil {
				continue
			}
			switch sig.Name {
			case "org.freedesktop.DBus.NameOwnerChanged":
				b.handleNameOwnerChanged(sig)
			case "org.freedesktop.DBus.Properties.PropertiesChanged":
				b.handlePropertiesChanged(sig)
			case _playerIface + ".Seeked":
				b.handleSeeked(sig)
			}
		}
	}
}

// handleNameOwnerChanged attaches and detaches registered players as they come and go
func (b *Bus) handleNameOwnerChanged(sig *dbus.Signal) {
	if len(sig.Body) < 3 {
		return
	}

	name, ok := sig.Body[0].(string)
	if !ok || !strings.HasPrefix(name, _busPrefix) {
		return // Not an MPRIS player
	}

	oldOwner, _ := sig.Body[1].(string)
	newOwner, _ := sig.Body[2].(string)

	b.mu.Lock()
	p, registered := b.players[name]
	if oldOwner != "" {
		delete(b.playerNames, oldOwner)
	}
	if newOwner != "" {
		b.playerNames[newOwner] = name
	}
	conn := b.conn
	b.mu.Unlock()

	if !registered {
		b.logger.Debug("Ignoring unregistered MPRIS player", zap.String("player", name))
		return
	}

	if newOwner != "" {
		p.attach(conn, newOwner)
	} else {
		p.detach()
	}
}

// handlePropertiesChanged forwards Player interface changes to the sending player.
// PropertiesChanged has 3 arguments: interface name, changed properties, invalidated properties.
func (b *Bus) handlePropertiesChanged(sig *dbus.Signal) {
	if len(sig.Body) < 2 {
		return
	}

	interfaceName, ok := sig.Body[0].(string)
	if !ok || interfaceName != _playerIface {
		return
	}

	changed, ok := sig.Body[1].(map[string]dbus.Variant)
	if !ok {
		return
	}

	p := b.playerFor(sig.Sender)
	if p == nil {
		return
	}

	b.logger.Debug("Received PropertiesChanged signal",
		zap.String("sender", sig.Sender),
		zap.String("player", p.name),
		zap.Int("properties", len(changed)))

	p.handleProperties(changed)
}

func (b *Bus) handleSeeked(sig *dbus.Signal) {
	if len(sig.Body) < 1 {
		return
	}

	us, ok := toInt64(sig.Body[0])
	if !ok {
		b.logger.Warn("Invalid Seeked position, ignoring")
		return
	}

	if p := b.playerFor(sig.Sender); p != nil {
		p.handleSeeked(us)
	}
}

// playerFor resolves a unique sender name to its registered player
func (b *Bus) playerFor(sender string) *Player {
	b.mu.RLock()
	defer b.mu.RUnlock()

	name, ok := b.playerNames[sender]
	if !ok {
		return nil
	}
	return b.players[name]
}
