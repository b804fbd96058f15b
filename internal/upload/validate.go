package upload

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// MaxSize is the largest video the backend accepts
const MaxSize = 500 * 1024 * 1024 // 500 MB

// AllowedExtensions are the container formats the backend can process
var AllowedExtensions = []string{"mp4", "avi", "mov", "mkv"}

var (
	ErrNoFile    = errors.New("No selected file")
	ErrNotVideo  = errors.New("Please upload a video file")
	ErrExtension = errors.New("File type not allowed. Please upload a video file (mp4, avi, mov, mkv)")
	ErrTooLarge  = errors.New("File is too large. The maximum upload size is 500MB")
)

// Validate checks an upload candidate. contentType may be empty when unknown;
// otherwise it must be a video/* type.
func Validate(filename, contentType string, size int64) error {
	if filename == "" {
		return ErrNoFile
	}

	if contentType != "" && !strings.HasPrefix(contentType, "video/") {
		return ErrNotVideo
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if !slices.Contains(AllowedExtensions, ext) {
		return ErrExtension
	}

	if size > MaxSize {
		return ErrTooLarge
	}
	return nil
}

// ValidateFile validates a local file, sniffing its content type from the data
func ValidateFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("failed to read video: %w", err)
	}
	if info.IsDir() {
		return ErrNoFile
	}

	mtype, err := mimetype.DetectFile(path)
	if err != nil {
		return fmt.Errorf("failed to detect content type: %w", err)
	}

	return Validate(filepath.Base(path), mtype.String(), info.Size())
}
