package render

import (
	"github.com/kbinani/screenshot"
	"go.uber.org/zap"
)

const (
	fallbackWidth = 1280
	defaultHeight = 48
)

// StripSize is the default pixel size of rendered timeline strips
type StripSize struct {
	Width  int
	Height int
}

// NewStripSize sizes strips to the width of the primary display, so the strip
// can be shown edge to edge under the video
func NewStripSize(logger *zap.Logger) StripSize {
	n := screenshot.NumActiveDisplays()
	if n <= 0 {
		logger.Warn("No active displays detected, falling back to default strip width",
			zap.Int("width", fallbackWidth))
		return StripSize{Width: fallbackWidth, Height: defaultHeight}
	}

	// Use primary monitor (index 0)
	bounds := screenshot.GetDisplayBounds(0)
	size := StripSize{Width: bounds.Dx(), Height: defaultHeight}

	logger.Info("Strip size detected",
		zap.Int("width", size.Width),
		zap.Int("height", size.Height))

	return size
}
