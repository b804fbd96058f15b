package backend

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/genricoloni/courtside/internal/domain"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, url string) *Client {
	t.Helper()
	c, err := NewClient(zap.NewNop(), url)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestClient_BaseURL(t *testing.T) {
	if got := newTestClient(t, "http://backend:5000/").BaseURL(); got != "http://backend:5000" {
		t.Errorf("expected trailing slash trimmed, got %q", got)
	}
}

func TestClient_FetchEvents(t *testing.T) {
	tests := []struct {
		name          string
		contentType   string
		statusCode    int
		body          string
		ctxFunc       func() (context.Context, context.CancelFunc)
		expectedError string
		expected      []domain.DomainEvent
	}{
		{
			name:        "Success",
			contentType: "application/json",
			statusCode:  http.StatusOK,
			body: `{"status":"success","events":[
				{"type":"boundary","subtype":"four","timestamp":30},
				{"type":"wicket","subtype":null,"timestamp":95}]}`,
			expected: []domain.DomainEvent{
				{Type: "boundary", Subtype: "four", Timestamp: 30},
				{Type: "wicket", Subtype: "", Timestamp: 95},
			},
		},
		{
			name:        "Success - No Events",
			contentType: "application/json",
			statusCode:  http.StatusOK,
			body:        `{"status":"success","events":[]}`,
			expected:    []domain.DomainEvent{},
		},
		{
			name:          "Error - Backend Status",
			contentType:   "application/json",
			statusCode:    http.StatusOK,
			body:          `{"status":"error","message":"No processed results found"}`,
			expectedError: "No processed results found",
		},
		{
			name:          "Error - 500",
			contentType:   "application/json",
			statusCode:    http.StatusInternalServerError,
			expectedError: "unexpected status code: 500",
		},
		{
			name:          "Error - Not JSON",
			contentType:   "text/html",
			statusCode:    http.StatusOK,
			body:          "<html></html>",
			expectedError: "response is not JSON",
		},
		{
			name:          "Error - Malformed JSON",
			contentType:   "application/json",
			statusCode:    http.StatusOK,
			body:          `{"status":`,
			expectedError: "failed to decode",
		},
		{
			name: "Error - Context Cancelled",
			ctxFunc: func() (context.Context, context.CancelFunc) {
				ctx, cancel := context.WithCancel(context.Background())
				cancel()
				return ctx, cancel
			},
			expectedError: "context canceled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/api/events" {
					t.Errorf("unexpected path %s", r.URL.Path)
				}
				if ua := r.Header.Get("User-Agent"); ua != "courtside/1.0" {
					t.Errorf("unexpected user agent %q", ua)
				}
				w.Header().Set("Content-Type", tt.contentType)
				w.WriteHeader(tt.statusCode)
				_, _ = io.WriteString(w, tt.body)
			}))
			defer server.Close()

			var ctx context.Context
			var cancel context.CancelFunc
			if tt.ctxFunc != nil {
				ctx, cancel = tt.ctxFunc()
			} else {
				ctx, cancel = context.WithTimeout(context.Background(), 2*time.Second)
			}
			defer cancel()

			events, err := newTestClient(t, server.URL).FetchEvents(ctx)

			if tt.expectedError != "" {
				if err == nil {
					t.Fatalf("expected error containing '%s', got nil", tt.expectedError)
				}
				if !strings.Contains(err.Error(), tt.expectedError) {
					t.Errorf("expected error '%s' to contain '%s'", err.Error(), tt.expectedError)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(events) != len(tt.expected) {
				t.Fatalf("expected %d events, got %d", len(tt.expected), len(events))
			}
			for i := range events {
				if events[i] != tt.expected[i] {
					t.Errorf("event %d: expected %+v, got %+v", i, tt.expected[i], events[i])
				}
			}
		})
	}
}

func TestClient_FetchEvents_BackendStatusIsSentinel(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"error","message":"nope"}`)
	}))
	defer server.Close()

	_, err := newTestClient(t, server.URL).FetchEvents(context.Background())
	if !errors.Is(err, ErrBackend) {
		t.Errorf("expected ErrBackend, got %v", err)
	}
}

func TestClient_StartProcessing(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/start_processing" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, `{"status":"success","message":"Video processing completed","redirect":"/results"}`)
	}))
	defer server.Close()

	resp, err := newTestClient(t, server.URL+"/").StartProcessing(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Succeeded() || resp.Redirect != "/results" {
		t.Errorf("unexpected response %+v", resp)
	}
}

func TestClient_FetchProgress(t *testing.T) {
	tests := []struct {
		name     string
		handler  http.HandlerFunc
		expected domain.JobStatus
		wantErr  error
	}{
		{
			name: "Running",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json; charset=utf-8")
				_, _ = io.WriteString(w, `{"state":"running","percent":40,"message":"Detecting players and ball..."}`)
			},
			expected: domain.JobStatus{State: domain.JobRunning, Percent: 40, Message: "Detecting players and ball..."},
		},
		{
			name:    "Unsupported",
			handler: http.NotFound,
			wantErr: domain.ErrProgressUnsupported,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(tt.handler)
			defer server.Close()

			status, err := newTestClient(t, server.URL).FetchProgress(context.Background())
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if status != tt.expected {
				t.Errorf("expected %+v, got %+v", tt.expected, status)
			}
		})
	}
}

func TestClient_UploadKeepsSession(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("video")
		if err != nil {
			t.Errorf("missing video field: %v", err)
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		defer file.Close()
		data, _ := io.ReadAll(file)
		if header.Filename != "match.mp4" || string(data) != "fake-video" {
			t.Errorf("unexpected upload %s (%d bytes)", header.Filename, len(data))
		}
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "abc", Path: "/"})
		http.Redirect(w, r, "/process", http.StatusFound)
	})
	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	})
	mux.HandleFunc("/start_processing", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if c, err := r.Cookie("session"); err != nil || c.Value != "abc" {
			_, _ = io.WriteString(w, `{"status":"error","message":"No uploaded video found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"status":"success"}`)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "match.mp4")
	if err := os.WriteFile(path, []byte("fake-video"), 0o600); err != nil {
		t.Fatal(err)
	}

	c := newTestClient(t, server.URL)
	if err := c.Upload(context.Background(), path); err != nil {
		t.Fatalf("Upload: %v", err)
	}

	resp, err := c.StartProcessing(context.Background())
	if err != nil {
		t.Fatalf("StartProcessing: %v", err)
	}
	if !resp.Succeeded() {
		t.Errorf("session cookie was not sent: %+v", resp)
	}
}

func TestClient_UploadRejected(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		_ = r.ParseMultipartForm(1 << 20)
		http.Redirect(w, r, "/", http.StatusFound)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "index")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	path := filepath.Join(t.TempDir(), "match.mp4")
	if err := os.WriteFile(path, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}

	err := newTestClient(t, server.URL).Upload(context.Background(), path)
	if !errors.Is(err, ErrUploadRejected) {
		t.Errorf("expected ErrUploadRejected, got %v", err)
	}
}
