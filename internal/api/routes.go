package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/genricoloni/courtside/internal/backend"
	"github.com/genricoloni/courtside/internal/controller"
	"github.com/genricoloni/courtside/internal/domain"
	"github.com/genricoloni/courtside/internal/progress"
	"github.com/genricoloni/courtside/internal/render"
	"github.com/genricoloni/courtside/internal/speech"
	"github.com/genricoloni/courtside/internal/timeline"
	"github.com/genricoloni/courtside/internal/transport"
	"github.com/genricoloni/courtside/internal/upload"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Uploader hands a local video to the backend. It must share the session of the
// client the reporter and the controller use.
type Uploader interface {
	Upload(ctx context.Context, path string) error
}

// API holds the handlers of the control surface
type API struct {
	logger   *zap.Logger
	ctrl     *controller.Controller
	reporter *progress.Reporter
	renderer *render.StripRenderer
	hub      *Hub
	uploader Uploader

	// Background jobs outlive the request that started them
	jobCtx     context.Context
	jobCancel  context.CancelFunc
	jobMu      sync.Mutex
	processing bool
}

// NewAPI creates the handlers over one controller
func NewAPI(
	logger *zap.Logger,
	ctrl *controller.Controller,
	reporter *progress.Reporter,
	renderer *render.StripRenderer,
	hub *Hub,
	uploader Uploader,
) *API {
	ctx, cancel := context.WithCancel(context.Background())
	return &API{
		logger:    logger,
		ctrl:      ctrl,
		reporter:  reporter,
		renderer:  renderer,
		hub:       hub,
		uploader:  uploader,
		jobCtx:    ctx,
		jobCancel: cancel,
	}
}

// Close cancels background jobs
func (a *API) Close() {
	a.jobCancel()
}

func registerRoutes(r *gin.Engine, api *API) {
	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/health", api.handleHealth)
		apiGroup.GET("/state", api.handleState)

		apiGroup.POST("/transport/play", api.handlePlay)
		apiGroup.POST("/transport/pause", api.handlePause)
		apiGroup.POST("/transport/mute", api.handleMute)
		apiGroup.POST("/transport/volume", api.handleVolume)
		apiGroup.POST("/transport/seek", api.handleSeek)
		apiGroup.POST("/transport/jump", api.handleJump)

		apiGroup.GET("/commentary", api.handleCommentary)
		apiGroup.PUT("/commentary", api.handleSetCommentary)
		apiGroup.POST("/commentary/:action", api.handleCommentaryAction)

		apiGroup.GET("/events", api.handleEvents)
		apiGroup.POST("/events/refresh", api.handleRefreshEvents)
		apiGroup.GET("/timeline.png", api.handleTimelineImage)

		apiGroup.POST("/upload", api.handleUpload)
		apiGroup.POST("/process", api.handleProcess)
		apiGroup.GET("/progress", api.handleProgress)
	}

	r.GET("/ws", api.handleWS)
}

func (a *API) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "viewers": a.hub.Subscribers()})
}

// stateResponse is the full snapshot a viewer needs after connecting
type stateResponse struct {
	Transport domain.TransportState `json:"transport"`
	Speech    commentaryResponse    `json:"speech"`
	Active    []domain.DomainEvent  `json:"active"`
}

func (a *API) handleState(c *gin.Context) {
	tr := a.ctrl.Transport()
	c.JSON(http.StatusOK, stateResponse{
		Transport: tr.State(),
		Speech:    a.commentary(),
		Active:    tr.ActiveEvents(),
	})
}

func (a *API) handlePlay(c *gin.Context) {
	tr := a.ctrl.Transport()
	if !tr.Play(c.Request.Context()) {
		respondError(c, http.StatusConflict, errPlayRejected)
		return
	}
	c.JSON(http.StatusOK, tr.State())
}

func (a *API) handlePause(c *gin.Context) {
	tr := a.ctrl.Transport()
	tr.Pause()
	c.JSON(http.StatusOK, tr.State())
}

func (a *API) handleMute(c *gin.Context) {
	tr := a.ctrl.Transport()
	tr.ToggleMute()
	c.JSON(http.StatusOK, tr.State())
}

func (a *API) handleVolume(c *gin.Context) {
	var payload struct {
		Volume *float64 `json:"volume" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	tr := a.ctrl.Transport()
	tr.SetVolume(*payload.Volume)
	c.JSON(http.StatusOK, tr.State())
}

func (a *API) handleSeek(c *gin.Context) {
	var payload struct {
		Time     *float64 `json:"time"`
		Fraction *float64 `json:"fraction"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	tr := a.ctrl.Transport()
	var err error
	switch {
	case payload.Time != nil:
		err = tr.Seek(c.Request.Context(), *payload.Time)
	case payload.Fraction != nil:
		err = tr.SeekFraction(c.Request.Context(), *payload.Fraction)
	default:
		respondMessage(c, http.StatusBadRequest, "time or fraction is required")
		return
	}
	if err != nil {
		respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, tr.State())
}

func (a *API) handleJump(c *gin.Context) {
	var payload struct {
		Timestamp *float64 `json:"timestamp" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	tr := a.ctrl.Transport()
	if err := tr.JumpTo(c.Request.Context(), *payload.Timestamp); err != nil {
		respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, tr.State())
}

// commentaryResponse describes the commentary queue and its highlighted sentence
type commentaryResponse struct {
	State     domain.SpeechState `json:"state"`
	Text      string             `json:"text"`
	Cursor    int                `json:"cursor"`
	Sentences []string           `json:"sentences"`
	Segments  []speech.Segment   `json:"segments"`
	Voice     *domain.Voice      `json:"voice,omitempty"`
}

func (a *API) commentary() commentaryResponse {
	sp := a.ctrl.Speech()
	sentences := sp.Sentences()
	resp := commentaryResponse{
		State:     sp.State(),
		Text:      sp.Text(),
		Cursor:    sp.Cursor(),
		Sentences: sentences,
	}
	// Highlight only while a sentence is being spoken
	index := -1
	if resp.State != domain.SpeechIdle {
		index = resp.Cursor
	}
	resp.Segments = speech.Highlight(sentences, index)
	if v, ok := sp.Voice(); ok {
		resp.Voice = &v
	}
	return resp
}

func (a *API) handleCommentary(c *gin.Context) {
	c.JSON(http.StatusOK, a.commentary())
}

func (a *API) handleSetCommentary(c *gin.Context) {
	var payload struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	a.ctrl.Speech().SetCommentary(payload.Text)
	c.JSON(http.StatusOK, a.commentary())
}

func (a *API) handleCommentaryAction(c *gin.Context) {
	if err := a.commentaryAction(c.Param("action")); err != nil {
		respondError(c, statusFor(err), err)
		return
	}
	c.JSON(http.StatusOK, a.commentary())
}

var errUnknownAction = errors.New("unknown action")

func (a *API) commentaryAction(action string) error {
	sp := a.ctrl.Speech()
	switch action {
	case "play":
		return sp.Play()
	case "pause":
		sp.Pause()
	case "resume":
		sp.Resume()
	case "stop":
		sp.Stop()
	case "toggle":
		sp.Toggle()
	default:
		return errUnknownAction
	}
	return nil
}

// eventsResponse is the event list plus the markers placed on the timeline
type eventsResponse struct {
	timeline.Listing
	Markers []timeline.Marker `json:"markers"`
}

func (a *API) handleEvents(c *gin.Context) {
	c.JSON(http.StatusOK, eventsResponse{
		Listing: a.ctrl.Listing(),
		Markers: a.ctrl.Transport().Markers(),
	})
}

func (a *API) handleRefreshEvents(c *gin.Context) {
	if err := a.ctrl.RefreshEvents(c.Request.Context()); err != nil {
		a.logger.Warn("Event refresh failed", zap.Error(err))
	}
	a.handleEvents(c)
}

func (a *API) handleTimelineImage(c *gin.Context) {
	width := 0
	if raw := c.Query("width"); raw != "" {
		w, err := strconv.Atoi(raw)
		if err != nil {
			respondMessage(c, http.StatusBadRequest, "width must be an integer")
			return
		}
		width = w
	}

	tr := a.ctrl.Transport()
	state := tr.State()
	png, err := a.renderer.Render(tr.Markers(), state.CurrentTime, state.Duration, width)
	if err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Data(http.StatusOK, "image/png", png)
}

func (a *API) handleUpload(c *gin.Context) {
	var payload struct {
		Path string `json:"path" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	// The backend session holds a single video; keep it while a job reads it
	a.jobMu.Lock()
	busy := a.processing
	a.jobMu.Unlock()
	if busy {
		respondError(c, http.StatusConflict, progress.ErrAlreadyRunning)
		return
	}

	if err := upload.ValidateFile(payload.Path); err != nil {
		respondError(c, http.StatusBadRequest, err)
		return
	}

	if err := a.uploader.Upload(c.Request.Context(), payload.Path); err != nil {
		a.logger.Warn("Upload failed", zap.String("path", payload.Path), zap.Error(err))
		respondError(c, statusFor(err), err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "uploaded"})
}

func (a *API) handleProcess(c *gin.Context) {
	a.jobMu.Lock()
	if a.processing {
		a.jobMu.Unlock()
		respondError(c, http.StatusConflict, progress.ErrAlreadyRunning)
		return
	}
	a.processing = true
	a.jobMu.Unlock()

	go func() {
		defer func() {
			a.jobMu.Lock()
			a.processing = false
			a.jobMu.Unlock()
		}()

		if err := a.reporter.Start(a.jobCtx); err != nil {
			a.logger.Warn("Processing job ended with error", zap.Error(err))
			return
		}

		// The results belong to the same session; show them without a manual refresh
		if err := a.ctrl.RefreshEvents(a.jobCtx); err != nil {
			a.logger.Warn("Could not load events after processing", zap.Error(err))
		}
	}()

	c.JSON(http.StatusAccepted, gin.H{"status": "started"})
}

func (a *API) handleProgress(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"running":      a.reporter.Running(),
		"startEnabled": a.hub.StartEnabled(),
		"progress":     a.reporter.Progress(),
	})
}

// statusFor maps domain errors to HTTP status codes
func statusFor(err error) int {
	switch {
	case errors.Is(err, transport.ErrJumpSuperseded),
		errors.Is(err, transport.ErrDurationUnknown),
		errors.Is(err, speech.ErrNoCommentary),
		errors.Is(err, progress.ErrAlreadyRunning):
		return http.StatusConflict
	case errors.Is(err, errUnknownAction):
		return http.StatusNotFound
	case errors.Is(err, backend.ErrUploadRejected):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled):
		return http.StatusRequestTimeout
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, status int, err error) {
	respondMessage(c, status, err.Error())
}

func respondMessage(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"error": message})
}
