package api

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const subscriberBuffer = 32

// Message types pushed to WebSocket subscribers
const (
	MsgTick          = "tick"
	MsgTransport     = "transport"
	MsgSentence      = "sentence"
	MsgCommentaryEnd = "commentary_end"
	MsgSpeechState   = "speech_state"
	MsgProgress      = "progress"
	MsgStartEnabled  = "start_enabled"
	MsgError         = "error"
	MsgRedirect      = "redirect"
)

// Message is one server push. Data depends on Type.
type Message struct {
	Type string `json:"type"`
	Data any    `json:"data,omitempty"`
}

// SentenceData is the payload of a sentence message
type SentenceData struct {
	Sentence string `json:"sentence"`
	Index    int    `json:"index"`
}

// SpeechStateData is the payload of a speech_state message
type SpeechStateData struct {
	State  domain.SpeechState `json:"state"`
	Cursor int                `json:"cursor"`
}

// ProgressData is the payload of a progress message
type ProgressData struct {
	Percent int    `json:"percent"`
	Message string `json:"message"`
}

// Hub fans playback, commentary and progress notifications out to every
// connected viewer. It is the observer of the transport and the speech player,
// and the sink and navigator of the progress reporter.
type Hub struct {
	logger     *zap.Logger
	backendURL string

	mu              sync.RWMutex
	subscribers     map[uuid.UUID]chan Message
	startEnabled    bool
	lastDropWarning time.Time
}

// NewHub creates a hub. Redirect targets are resolved against the backend URL.
func NewHub(logger *zap.Logger, cfg domain.Config) *Hub {
	return &Hub{
		logger:       logger,
		backendURL:   strings.TrimRight(cfg.GetBackendURL(), "/"),
		subscribers:  make(map[uuid.UUID]chan Message),
		startEnabled: true,
	}
}

// Subscribe registers a viewer and returns its id and message channel
func (h *Hub) Subscribe() (uuid.UUID, <-chan Message) {
	id := uuid.New()
	ch := make(chan Message, subscriberBuffer)

	h.mu.Lock()
	h.subscribers[id] = ch
	count := len(h.subscribers)
	h.mu.Unlock()

	h.logger.Debug("Viewer subscribed", zap.String("id", id.String()), zap.Int("subscribers", count))
	return id, ch
}

// Unsubscribe removes a viewer and closes its channel
func (h *Hub) Unsubscribe(id uuid.UUID) {
	h.mu.Lock()
	ch, ok := h.subscribers[id]
	if ok {
		delete(h.subscribers, id)
		close(ch)
	}
	h.mu.Unlock()

	if ok {
		h.logger.Debug("Viewer unsubscribed", zap.String("id", id.String()))
	}
}

// Subscribers returns the number of connected viewers
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// broadcast delivers msg to every subscriber without blocking. A viewer whose
// buffer is full misses the message.
func (h *Hub) broadcast(msg Message) {
	h.mu.RLock()
	dropped := 0
	for _, ch := range h.subscribers {
		select {
		case ch <- msg:
		default:
			dropped++
		}
	}
	h.mu.RUnlock()

	if dropped == 0 {
		return
	}

	// Log warning only once every 5 seconds to avoid spam
	h.mu.Lock()
	defer h.mu.Unlock()
	if time.Since(h.lastDropWarning) > 5*time.Second {
		h.logger.Warn("Viewer buffer full, dropping message",
			zap.String("type", msg.Type),
			zap.Int("dropped", dropped))
		h.lastDropWarning = time.Now()
	}
}

// OnTransportChange implements domain.TransportObserver
func (h *Hub) OnTransportChange(state domain.TransportState) {
	h.broadcast(Message{Type: MsgTransport, Data: state})
}

// OnTick implements domain.TransportObserver
func (h *Hub) OnTick(tick domain.Tick) {
	h.broadcast(Message{Type: MsgTick, Data: tick})
}

// OnSentenceChange implements domain.SpeechObserver
func (h *Hub) OnSentenceChange(sentence string, index int) {
	h.broadcast(Message{Type: MsgSentence, Data: SentenceData{Sentence: sentence, Index: index}})
}

// OnCommentaryEnd implements domain.SpeechObserver
func (h *Hub) OnCommentaryEnd() {
	h.broadcast(Message{Type: MsgCommentaryEnd})
}

// OnSpeechState implements domain.SpeechObserver
func (h *Hub) OnSpeechState(state domain.SpeechState, cursor int) {
	h.broadcast(Message{Type: MsgSpeechState, Data: SpeechStateData{State: state, Cursor: cursor}})
}

// UpdateProgress implements domain.ProgressSink
func (h *Hub) UpdateProgress(percent int, message string) {
	h.broadcast(Message{Type: MsgProgress, Data: ProgressData{Percent: percent, Message: message}})
}

// ShowError implements domain.ProgressSink
func (h *Hub) ShowError(message string) {
	h.broadcast(Message{Type: MsgError, Data: gin.H{"message": message}})
}

// SetStartEnabled implements domain.ProgressSink
func (h *Hub) SetStartEnabled(enabled bool) {
	h.mu.Lock()
	h.startEnabled = enabled
	h.mu.Unlock()

	h.broadcast(Message{Type: MsgStartEnabled, Data: gin.H{"enabled": enabled}})
}

// StartEnabled reports whether the start-processing control is enabled
func (h *Hub) StartEnabled() bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.startEnabled
}

// Redirect implements domain.Navigator: viewers are sent to the backend page
func (h *Hub) Redirect(_ context.Context, target string) error {
	url := target
	if strings.HasPrefix(target, "/") {
		url = h.backendURL + target
	}

	h.logger.Info("Redirecting viewers", zap.String("url", url))
	h.broadcast(Message{Type: MsgRedirect, Data: gin.H{"url": url}})
	return nil
}
