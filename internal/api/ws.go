package api

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/genricoloni/courtside/internal/transport"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const msgState = "state"

// Command is a control request sent by a viewer over the WebSocket
type Command struct {
	Type  string   `json:"type"`
	Value *float64 `json:"value,omitempty"`
}

var (
	errMissingValue   = errors.New("command requires a value")
	errPlayRejected   = errors.New("playback was rejected by the player")
	errUnknownCommand = errors.New("unknown command")
)

func (a *API) handleWS(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: []string{"localhost:*", "127.0.0.1:*"},
	})
	if err != nil {
		a.logger.Warn("WebSocket upgrade failed", zap.Error(err))
		return
	}
	defer conn.Close(websocket.StatusNormalClosure, "bye")

	ctx, cancel := context.WithCancel(c.Request.Context())
	defer cancel()

	id, messages := a.hub.Subscribe()
	defer a.hub.Unsubscribe(id)

	snapshot := Message{Type: msgState, Data: stateResponse{
		Transport: a.ctrl.Transport().State(),
		Speech:    a.commentary(),
		Active:    a.ctrl.Transport().ActiveEvents(),
	}}
	if err := wsjson.Write(ctx, conn, snapshot); err != nil {
		a.logger.Debug("Failed to send state snapshot", zap.Error(err))
		return
	}

	go func() {
		defer cancel()
		for {
			select {
			case msg, ok := <-messages:
				if !ok {
					return
				}
				if err := wsjson.Write(ctx, conn, msg); err != nil {
					a.logger.Debug("Viewer write failed", zap.String("id", id.String()), zap.Error(err))
					return
				}
			case <-ctx.Done():
				return
			}
		}
	}()

	for {
		var cmd Command
		if err := wsjson.Read(ctx, conn, &cmd); err != nil {
			if websocket.CloseStatus(err) != websocket.StatusNormalClosure && !errors.Is(err, context.Canceled) {
				a.logger.Debug("Viewer disconnected", zap.String("id", id.String()), zap.Error(err))
			}
			return
		}

		if err := a.dispatch(ctx, cmd); err != nil {
			_ = wsjson.Write(ctx, conn, Message{Type: MsgError, Data: gin.H{"message": err.Error(), "command": cmd.Type}})
		}
	}
}

// dispatch runs one viewer command. Jumps run in the background so a newer jump
// can supersede the one in flight.
func (a *API) dispatch(ctx context.Context, cmd Command) error {
	tr := a.ctrl.Transport()

	value := func() (float64, error) {
		if cmd.Value == nil {
			return 0, fmt.Errorf("%s: %w", cmd.Type, errMissingValue)
		}
		return *cmd.Value, nil
	}

	switch cmd.Type {
	case "play":
		if !tr.Play(ctx) {
			return errPlayRejected
		}
	case "pause":
		tr.Pause()
	case "mute":
		tr.ToggleMute()
	case "volume":
		v, err := value()
		if err != nil {
			return err
		}
		tr.SetVolume(v)
	case "seek":
		v, err := value()
		if err != nil {
			return err
		}
		return tr.Seek(ctx, v)
	case "seek_fraction":
		v, err := value()
		if err != nil {
			return err
		}
		return tr.SeekFraction(ctx, v)
	case "jump":
		v, err := value()
		if err != nil {
			return err
		}
		go func() {
			if err := tr.JumpTo(ctx, v); err != nil && !errors.Is(err, transport.ErrJumpSuperseded) {
				a.logger.Warn("Jump failed", zap.Float64("timestamp", v), zap.Error(err))
			}
		}()
	default:
		action, ok := strings.CutPrefix(cmd.Type, "commentary_")
		if !ok {
			return fmt.Errorf("%w: %q", errUnknownCommand, cmd.Type)
		}
		return a.commentaryAction(action)
	}
	return nil
}
