package mpris

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/godbus/dbus/v5"
	"go.uber.org/zap"
)

const (
	_busPrefix   = "org.mpris.MediaPlayer2."
	_objectPath  = "/org/mpris/MediaPlayer2"
	_playerIface = "org.mpris.MediaPlayer2.Player"

	_propPlaybackStatus = _playerIface + ".PlaybackStatus"
	_propMetadata       = _playerIface + ".Metadata"
	_propPosition       = _playerIface + ".Position"
	_propVolume         = _playerIface + ".Volume"

	// _ackTimeout bounds how long Play and Seek wait for the player to confirm
	_ackTimeout = 5 * time.Second

	// _endSlack is how close to the end a pause counts as reaching the end
	_endSlack = 0.5
)

// ErrNotConnected is returned when the player has not appeared on the bus
var ErrNotConnected = errors.New("player not connected")

// Player drives one MPRIS player as a media engine. State is kept from
// PropertiesChanged and Seeked signals routed to it by a Bus.
type Player struct {
	logger *zap.Logger
	name   string // Well-known bus name (org.mpris.MediaPlayer2.mpv)
	events chan domain.MediaEvent

	mu              sync.Mutex
	conn            DBusClient
	owner           string // Unique bus name (:1.45), empty while absent
	status          domain.PlayerStatus
	position        float64 // Seconds, sampled at positionAt
	positionAt      time.Time
	length          float64
	trackID         dbus.ObjectPath
	volume          float64
	muted           bool
	seeks           uint64
	changed         chan struct{} // Closed and replaced on every state change
	lastDropWarning time.Time
}

// NewPlayer creates a player for the given bus name. A short name such as "mpv"
// is expanded to "org.mpris.MediaPlayer2.mpv".
func NewPlayer(logger *zap.Logger, name string) *Player {
	if !strings.HasPrefix(name, _busPrefix) {
		name = _busPrefix + name
	}

	return &Player{
		logger:  logger.With(zap.String("player", name)),
		name:    name,
		events:  make(chan domain.MediaEvent, 10),
		status:  domain.StatusStopped,
		volume:  1,
		changed: make(chan struct{}),
	}
}

// Name returns the well-known bus name
func (p *Player) Name() string {
	return p.name
}

// Events returns a read-only channel of lifecycle notifications
func (p *Player) Events() <-chan domain.MediaEvent {
	return p.events
}

// Play starts playback and waits until the player reports Playing.
// A player that never confirms (no media, refused) yields an error.
func (p *Player) Play(ctx context.Context) error {
	if err := p.call("Play"); err != nil {
		return fmt.Errorf("play %s: %w", p.name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, _ackTimeout)
	defer cancel()

	if err := p.waitFor(ctx, func() bool { return p.status == domain.StatusPlaying }); err != nil {
		return fmt.Errorf("play %s not confirmed: %w", p.name, err)
	}
	return nil
}

// Pause pauses playback; pausing a paused player does nothing
func (p *Player) Pause() error {
	if p.Paused() {
		return nil
	}
	if err := p.call("Pause"); err != nil {
		return fmt.Errorf("pause %s: %w", p.name, err)
	}
	return nil
}

// Paused reports whether the player is not playing
func (p *Player) Paused() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status != domain.StatusPlaying
}

// CurrentTime returns the playback position in seconds. MPRIS does not signal
// position changes, so the position is read from the player and extrapolated
// from the last sample when the read fails.
func (p *Player) CurrentTime() float64 {
	p.refreshPosition()

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.positionLocked()
}

// Duration returns the track length in seconds, 0 while unknown
func (p *Player) Duration() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.length
}

// Seek moves to seconds and waits for the player's Seeked signal
func (p *Player) Seek(ctx context.Context, seconds float64) error {
	p.mu.Lock()
	conn, owner := p.conn, p.owner
	trackID, seq := p.trackID, p.seeks
	current := p.positionLocked()
	p.mu.Unlock()

	if conn == nil || owner == "" {
		return ErrNotConnected
	}

	var err error
	if trackID != "" {
		err = conn.CallMethod(p.name, _objectPath, _playerIface+".SetPosition", trackID, toMicros(seconds))
	} else {
		// Without a track id only relative seeks are possible
		err = conn.CallMethod(p.name, _objectPath, _playerIface+".Seek", toMicros(seconds-current))
	}
	if err != nil {
		return fmt.Errorf("seek %s: %w", p.name, err)
	}

	ctx, cancel := context.WithTimeout(ctx, _ackTimeout)
	defer cancel()

	if err := p.waitFor(ctx, func() bool { return p.seeks > seq }); err != nil {
		return fmt.Errorf("seek %s not acknowledged: %w", p.name, err)
	}
	return nil
}

// SetVolume sets the player volume. While muted the level is only remembered.
func (p *Player) SetVolume(volume float64) error {
	p.mu.Lock()
	p.volume = volume
	muted := p.muted
	p.mu.Unlock()

	if muted {
		return nil
	}
	return p.setVolumeProperty(volume)
}

// SetMuted mutes by driving the volume to zero; MPRIS has no mute property
func (p *Player) SetMuted(muted bool) error {
	p.mu.Lock()
	p.muted = muted
	volume := p.volume
	p.mu.Unlock()

	if muted {
		volume = 0
	}
	return p.setVolumeProperty(volume)
}

func (p *Player) setVolumeProperty(volume float64) error {
	conn, err := p.connection()
	if err != nil {
		return err
	}
	if err := conn.SetProperty(p.name, _objectPath, _propVolume, volume); err != nil {
		return fmt.Errorf("set volume on %s: %w", p.name, err)
	}
	return nil
}

func (p *Player) call(member string) error {
	conn, err := p.connection()
	if err != nil {
		return err
	}
	return conn.CallMethod(p.name, _objectPath, _playerIface+"."+member)
}

func (p *Player) connection() (DBusClient, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.conn == nil || p.owner == "" {
		return nil, ErrNotConnected
	}
	return p.conn, nil
}

// waitFor blocks until cond (evaluated under the lock) holds or ctx ends
func (p *Player) waitFor(ctx context.Context, cond func() bool) error {
	for {
		p.mu.Lock()
		if cond() {
			p.mu.Unlock()
			return nil
		}
		changed := p.changed
		p.mu.Unlock()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
	}
}

// attach binds the player to its unique bus name and loads its current state
func (p *Player) attach(conn DBusClient, owner string) {
	p.mu.Lock()
	p.conn = conn
	p.owner = owner
	p.mu.Unlock()

	p.logger.Info("MPRIS player attached", zap.String("unique", owner))
	p.sync()
}

// detach marks the player as gone from the bus
func (p *Player) detach() {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.owner = ""
	p.status = domain.StatusStopped
	p.broadcastLocked()
	p.logger.Info("MPRIS player detached")
}

// sync fetches the properties a signal would otherwise deliver
func (p *Player) sync() {
	conn, err := p.connection()
	if err != nil {
		return
	}

	props := make(map[string]dbus.Variant)
	for key, prop := range map[string]string{
		"PlaybackStatus": _propPlaybackStatus,
		"Metadata":       _propMetadata,
		"Volume":         _propVolume,
	} {
		v, err := conn.GetProperty(p.name, _objectPath, prop)
		if err != nil {
			p.logger.Warn("Failed to read property", zap.String("property", key), zap.Error(err))
			continue
		}
		props[key] = v
	}

	p.handleProperties(props)
	p.refreshPosition()
}

func (p *Player) refreshPosition() {
	conn, err := p.connection()
	if err != nil {
		return
	}

	v, err := conn.GetProperty(p.name, _objectPath, _propPosition)
	if err != nil {
		p.logger.Debug("Failed to read position", zap.Error(err))
		return
	}

	us, ok := toInt64(v.Value())
	if !ok {
		return
	}

	p.mu.Lock()
	p.position = fromMicros(us)
	p.positionAt = time.Now()
	p.mu.Unlock()
}

// handleProperties applies a PropertiesChanged payload
func (p *Player) handleProperties(changed map[string]dbus.Variant) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if v, ok := changed["Metadata"]; ok {
		if metadata, ok := v.Value().(map[string]dbus.Variant); ok {
			p.applyMetadataLocked(metadata)
		} else {
			p.logger.Debug("Metadata variant is not a map, skipping")
		}
	}

	if v, ok := changed["Volume"]; ok {
		if volume, ok := v.Value().(float64); ok && !p.muted {
			p.volume = volume
		}
	}

	if v, ok := changed["PlaybackStatus"]; ok {
		if s, ok := v.Value().(string); ok {
			p.applyStatusLocked(parseStatus(s))
		} else {
			p.logger.Warn("Invalid playback status format in signal, ignoring")
		}
	}

	p.broadcastLocked()
}

func (p *Player) applyMetadataLocked(metadata map[string]dbus.Variant) {
	var length float64
	if v, ok := metadata["mpris:length"]; ok {
		if us, ok := toInt64(v.Value()); ok {
			length = fromMicros(us)
		}
	}

	var trackID dbus.ObjectPath
	if v, ok := metadata["mpris:trackid"]; ok {
		switch id := v.Value().(type) {
		case dbus.ObjectPath:
			trackID = id
		case string:
			trackID = dbus.ObjectPath(id)
		}
	}

	loaded := length > 0 && (length != p.length || trackID != p.trackID)
	p.length = length
	p.trackID = trackID

	if loaded {
		p.logger.Info("Media loaded", zap.Float64("duration", length), zap.String("track", string(trackID)))
		p.emitLocked(domain.MediaEvent{Kind: domain.MediaLoaded, Status: p.status, Position: p.positionLocked()})
	}
}

func (p *Player) applyStatusLocked(status domain.PlayerStatus) {
	if status == p.status {
		return
	}

	// Freeze the extrapolated position at the transition
	p.position = p.positionLocked()
	p.positionAt = time.Now()
	p.status = status

	p.emitLocked(domain.MediaEvent{Kind: domain.MediaStatusChanged, Status: status, Position: p.position})

	atEnd := p.length > 0 && p.position >= p.length-_endSlack
	if status == domain.StatusStopped || (status == domain.StatusPaused && atEnd) {
		p.emitLocked(domain.MediaEvent{Kind: domain.MediaEnded, Status: status, Position: p.position})
	}
}

// handleSeeked applies a Seeked signal; the argument is the new position in µs
func (p *Player) handleSeeked(us int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.position = fromMicros(us)
	p.positionAt = time.Now()
	p.seeks++

	p.emitLocked(domain.MediaEvent{Kind: domain.MediaSeeked, Status: p.status, Position: p.position})
	p.broadcastLocked()
}

func (p *Player) positionLocked() float64 {
	pos := p.position
	if p.status == domain.StatusPlaying && !p.positionAt.IsZero() {
		pos += time.Since(p.positionAt).Seconds()
	}
	if p.length > 0 {
		pos = math.Min(pos, p.length)
	}
	return pos
}

func (p *Player) broadcastLocked() {
	close(p.changed)
	p.changed = make(chan struct{})
}

// emitLocked sends without blocking. The consumer reads state from the player,
// so a dropped notification only delays the reaction to the next one.
func (p *Player) emitLocked(ev domain.MediaEvent) {
	select {
	case p.events <- ev:
		p.logger.Debug("Media event", zap.String("kind", string(ev.Kind)), zap.String("status", string(ev.Status)))
	default:
		// Rate limit to max one warning per 5 seconds
		const warningInterval = 5 * time.Second
		now := time.Now()
		if now.Sub(p.lastDropWarning) >= warningInterval {
			p.logger.Warn("Events channel full, dropping media event", zap.String("kind", string(ev.Kind)))
			p.lastDropWarning = now
		}
	}
}

func parseStatus(s string) domain.PlayerStatus {
	switch s {
	case "Playing":
		return domain.StatusPlaying
	case "Paused":
		return domain.StatusPaused
	default:
		return domain.StatusStopped
	}
}

// toInt64 accepts the integer types players use for µs values
func toInt64(v interface{}) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case uint64:
		return int64(n), true
	case int32:
		return int64(n), true
	case uint32:
		return int64(n), true
	case float64:
		return int64(n), true
	default:
		return 0, false
	}
}

func toMicros(seconds float64) int64 {
	return int64(math.Round(seconds * 1e6))
}

func fromMicros(us int64) float64 {
	return float64(us) / 1e6
}
