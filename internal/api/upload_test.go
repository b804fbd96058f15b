package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/genricoloni/courtside/internal/backend"
	"github.com/genricoloni/courtside/internal/timeline"
	"go.uber.org/zap"
)

// Minimal ISO BMFF header: ftyp box with the isom brand
var mp4Header = []byte{0x00, 0x00, 0x00, 0x18, 'f', 't', 'y', 'p', 'i', 's', 'o', 'm', 0x00, 0x00, 0x02, 0x00, 'i', 's', 'o', 'm', 'i', 's', 'o', '2'}

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func uploadBody(t *testing.T, path string) string {
	t.Helper()
	body, err := json.Marshal(map[string]string{"path": path})
	if err != nil {
		t.Fatal(err)
	}
	return string(body)
}

// sessionBackend mimics the processing backend: the upload sets the session cookie
// and every later call is answered from that session only
func sessionBackend(t *testing.T) (*httptest.Server, *atomic.Bool) {
	t.Helper()
	var processed atomic.Bool

	inSession := func(r *http.Request) bool {
		c, err := r.Cookie("session")
		return err == nil && c.Value == "match-1"
	}
	writeJSON := func(w http.ResponseWriter, body string) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/upload", func(w http.ResponseWriter, r *http.Request) {
		file, _, err := r.FormFile("video")
		if err != nil {
			http.Redirect(w, r, "/", http.StatusFound)
			return
		}
		_ = file.Close()
		http.SetCookie(w, &http.Cookie{Name: "session", Value: "match-1", Path: "/"})
		http.Redirect(w, r, "/process", http.StatusFound)
	})
	mux.HandleFunc("/process", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "processing page")
	})
	mux.HandleFunc("/start_processing", func(w http.ResponseWriter, r *http.Request) {
		if !inSession(r) {
			writeJSON(w, `{"status":"error","message":"No uploaded video found"}`)
			return
		}
		processed.Store(true)
		writeJSON(w, `{"status":"success","redirect":"/results"}`)
	})
	mux.HandleFunc("/api/events", func(w http.ResponseWriter, r *http.Request) {
		if !inSession(r) || !processed.Load() {
			writeJSON(w, `{"status":"error","message":"No processed video found"}`)
			return
		}
		writeJSON(w, `{"status":"success","events":[
			{"type":"boundary","subtype":"four","timestamp":12},
			{"type":"wicket","subtype":"bowled","timestamp":64}]}`)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server, &processed
}

func TestUploadThenProcess_OneBackendSession(t *testing.T) {
	backendServer, processed := sessionBackend(t)

	client, err := backend.NewClient(zap.NewNop(), backendServer.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	s := setupTestServerWith(t, client, client, client)

	listing := decode[eventsResponse](t, s.do(http.MethodGet, "/api/events", ""))
	if listing.Status != timeline.ListingUnavailable {
		t.Fatalf("expected events unavailable before upload, got %q", listing.Status)
	}

	video := writeFile(t, "match.mp4", mp4Header)
	rec := s.do(http.MethodPost, "/api/upload", uploadBody(t, video))
	if rec.Code != http.StatusOK {
		t.Fatalf("upload: expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = s.do(http.MethodPost, "/api/process", "")
	if rec.Code != http.StatusAccepted {
		t.Fatalf("process: expected 202, got %d", rec.Code)
	}

	deadline := time.Now().Add(3 * time.Second)
	for {
		listing = decode[eventsResponse](t, s.do(http.MethodGet, "/api/events", ""))
		if listing.Status == timeline.ListingReady {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("timeout: events never loaded, last listing %+v", listing.Listing)
		}
		time.Sleep(10 * time.Millisecond)
	}

	if !processed.Load() {
		t.Error("backend never processed the uploaded video")
	}
	if len(listing.Groups) != 2 || len(listing.Markers) != 2 {
		t.Errorf("expected 2 groups and 2 markers, got %+v", listing)
	}
}

func TestUploadHandler_Errors(t *testing.T) {
	video := writeFile(t, "match.mp4", mp4Header)
	notVideo := writeFile(t, "notes.mp4", []byte("just some commentary text"))

	tests := []struct {
		name           string
		body           string
		uploadErr      error
		busy           bool
		expectedStatus int
	}{
		{name: "Missing Path", body: `{}`, expectedStatus: http.StatusBadRequest},
		{name: "Missing File", body: `{"path":"/nonexistent/match.mp4"}`, expectedStatus: http.StatusBadRequest},
		{name: "Not A Video", body: uploadBody(t, notVideo), expectedStatus: http.StatusBadRequest},
		{
			name:           "Backend Rejects",
			body:           uploadBody(t, video),
			uploadErr:      fmt.Errorf("%w: redirected to /", backend.ErrUploadRejected),
			expectedStatus: http.StatusUnprocessableEntity,
		},
		{name: "Job Running", body: uploadBody(t, video), busy: true, expectedStatus: http.StatusConflict},
		{name: "Accepted", body: uploadBody(t, video), expectedStatus: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uploader := &recordingUploader{err: tt.uploadErr}
			s := setupTestServerWith(t, fakeSource{}, &blockingJobClient{release: make(chan struct{})}, uploader)
			if tt.busy {
				if rec := s.do(http.MethodPost, "/api/process", ""); rec.Code != http.StatusAccepted {
					t.Fatalf("process: expected 202, got %d", rec.Code)
				}
			}

			rec := s.do(http.MethodPost, "/api/upload", tt.body)
			if rec.Code != tt.expectedStatus {
				t.Fatalf("expected %d, got %d: %s", tt.expectedStatus, rec.Code, rec.Body.String())
			}

			uploader.mu.Lock()
			defer uploader.mu.Unlock()
			if tt.expectedStatus == http.StatusOK && (len(uploader.paths) != 1 || uploader.paths[0] != video) {
				t.Errorf("expected one upload of %s, got %v", video, uploader.paths)
			}
			if tt.expectedStatus != http.StatusOK && len(uploader.paths) != 0 {
				t.Errorf("nothing should reach the backend, got %v", uploader.paths)
			}
		})
	}
}
