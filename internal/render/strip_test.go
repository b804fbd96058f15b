package render

import (
	"bytes"
	"image"
	"image/color"
	_ "image/png" // PNG format support
	"strings"
	"testing"

	"github.com/genricoloni/courtside/internal/domain"
	"github.com/genricoloni/courtside/internal/timeline"
	"go.uber.org/zap"
)

func testMarkers() []timeline.Marker {
	return timeline.Build([]domain.DomainEvent{
		{Type: "boundary", Subtype: "four", Timestamp: 30},
		{Type: "wicket", Subtype: "bowled", Timestamp: 60},
		{Type: "appeal", Timestamp: 90},
	}, 120)
}

func TestStripRenderer_Render(t *testing.T) {
	tests := []struct {
		name          string
		width         int
		expectedError string
		expectedWidth int
	}{
		{name: "Success - Default Width", width: 0, expectedWidth: 640},
		{name: "Success - Requested Width", width: 400, expectedWidth: 400},
		{name: "Error - Too Narrow", width: 10, expectedError: "invalid strip width"},
		{name: "Error - Too Wide", width: 100000, expectedError: "invalid strip width"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewStripRenderer(zap.NewNop(), StripSize{Width: 640, Height: 48})

			data, err := r.Render(testMarkers(), 45, 120, tt.width)

			if tt.expectedError != "" {
				if err == nil || !strings.Contains(err.Error(), tt.expectedError) {
					t.Fatalf("expected error containing '%s', got %v", tt.expectedError, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			img, format, err := image.Decode(bytes.NewReader(data))
			if err != nil {
				t.Fatalf("result is not a valid image: %v", err)
			}
			if format != "png" {
				t.Errorf("expected png, got %s", format)
			}
			if b := img.Bounds(); b.Dx() != tt.expectedWidth || b.Dy() != 48 {
				t.Errorf("expected %dx48, got %dx%d", tt.expectedWidth, b.Dx(), b.Dy())
			}
		})
	}
}

func TestStripRenderer_DrawColours(t *testing.T) {
	r := NewStripRenderer(zap.NewNop(), StripSize{Width: 400, Height: 48})
	img := r.Draw(testMarkers(), 45, 120, 400, 48)

	const y = 30 // inside the track
	tests := []struct {
		name string
		x    int
		want color.NRGBA
	}{
		{name: "Boundary marker at 25%", x: 100, want: CategoryColor(timeline.CategoryBoundary)},
		{name: "Wicket marker at 50%", x: 200, want: CategoryColor(timeline.CategoryWicket)},
		{name: "Other marker at 75%", x: 300, want: CategoryColor(timeline.CategoryOther)},
		{name: "Played part", x: 50, want: progressColor},
		{name: "Unplayed part", x: 250, want: trackColor},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := img.NRGBAAt(tt.x, y); got != tt.want {
				t.Errorf("pixel at %d = %v, want %v", tt.x, got, tt.want)
			}
		})
	}
}

func TestStripRenderer_UnknownDuration(t *testing.T) {
	r := NewStripRenderer(zap.NewNop(), StripSize{Width: 400, Height: 48})
	img := r.Draw(nil, 45, 0, 400, 48)

	if got := img.NRGBAAt(10, 30); got != trackColor {
		t.Errorf("expected empty track, got %v", got)
	}
}

func TestNewStripSize_Fallback(t *testing.T) {
	size := NewStripSize(zap.NewNop())
	if size.Width <= 0 || size.Height != defaultHeight {
		t.Errorf("unexpected size %+v", size)
	}
}
