package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/cookiejar"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"go.uber.org/zap"
)

const (
	_maxResponseSize = 1 * 1024 * 1024 // 1 MB
	_requestTimeout  = 10 * time.Second
	_userAgent       = "courtside/1.0"
)

var (
	// ErrBackend is returned when the backend answered with status "error"
	ErrBackend = errors.New("backend error")

	// ErrUploadRejected is returned when the backend refused the uploaded file
	ErrUploadRejected = errors.New("upload rejected")
)

// Client talks to the processing backend. The backend keeps the uploaded video and
// the results in a cookie session, so one Client must be used for a whole job.
type Client struct {
	logger  *zap.Logger
	baseURL string
	client  *http.Client
}

// NewClient creates a backend client for baseURL with its own cookie jar
func NewClient(logger *zap.Logger, baseURL string) (*Client, error) {
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	return &Client{
		logger:  logger,
		baseURL: strings.TrimRight(baseURL, "/"),
		// No client-wide timeout: start_processing runs the whole analysis before answering.
		// Short requests get _requestTimeout through their context.
		client: &http.Client{Jar: jar},
	}, nil
}

// BaseURL returns the backend root URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

type eventsResponse struct {
	Status  string               `json:"status"`
	Message string               `json:"message"`
	Events  []domain.DomainEvent `json:"events"`
}

// FetchEvents retrieves the detected events of the processed video
func (c *Client) FetchEvents(ctx context.Context) ([]domain.DomainEvent, error) {
	ctx, cancel := context.WithTimeout(ctx, _requestTimeout)
	defer cancel()

	var body eventsResponse
	if err := c.doJSON(ctx, http.MethodGet, "/api/events", &body); err != nil {
		return nil, err
	}

	if body.Status != "success" {
		return nil, fmt.Errorf("%w: %s", ErrBackend, body.Message)
	}

	c.logger.Debug("Events fetched", zap.Int("count", len(body.Events)))
	return body.Events, nil
}

// StartProcessing starts the analysis of the uploaded video. The backend may only
// answer once processing is over, so the call is bounded by ctx alone.
func (c *Client) StartProcessing(ctx context.Context) (domain.StartResponse, error) {
	var resp domain.StartResponse
	if err := c.doJSON(ctx, http.MethodPost, "/start_processing", &resp); err != nil {
		return domain.StartResponse{}, err
	}

	c.logger.Info("Start processing answered",
		zap.String("status", resp.Status),
		zap.String("message", resp.Message))
	return resp, nil
}

// FetchProgress reads the job progress. Backends without the endpoint yield
// domain.ErrProgressUnsupported.
func (c *Client) FetchProgress(ctx context.Context) (domain.JobStatus, error) {
	ctx, cancel := context.WithTimeout(ctx, _requestTimeout)
	defer cancel()

	var status domain.JobStatus
	if err := c.doJSON(ctx, http.MethodGet, "/api/progress", &status); err != nil {
		return domain.JobStatus{}, err
	}
	return status, nil
}

// Upload sends the video at path as the "video" form field. The backend answers with
// a redirect: to /process on success, back to / when it refused the file.
func (c *Client) Upload(ctx context.Context, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open video: %w", err)
	}
	defer file.Close()

	pr, pw := io.Pipe()
	form := multipart.NewWriter(pw)

	go func() {
		part, err := form.CreateFormFile("video", filepath.Base(path))
		if err == nil {
			_, err = io.Copy(part, file)
		}
		if err == nil {
			err = form.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/upload", pr)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", _userAgent)
	req.Header.Set("Content-Type", form.FormDataContentType())

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, _maxResponseSize))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if final := resp.Request.URL.Path; final != "/process" {
		return fmt.Errorf("%w: redirected to %s", ErrUploadRejected, final)
	}

	c.logger.Info("Video uploaded", zap.String("path", path))
	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", _userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("network error: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound && path == "/api/progress" {
		return domain.ErrProgressUnsupported
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		return fmt.Errorf("response is not JSON: %s", ct)
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, _maxResponseSize)).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}
