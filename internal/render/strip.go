package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/disintegration/imaging"
	"github.com/genricoloni/courtside/internal/timefmt"
	"github.com/genricoloni/courtside/internal/timeline"
	"go.uber.org/zap"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	minWidth    = 64
	maxWidth    = 7680
	markerWidth = 3
	labelHeight = 14 // basicfont.Face7x13 plus one pixel
)

var (
	backgroundColor = color.NRGBA{R: 0x21, G: 0x25, B: 0x29, A: 0xff}
	trackColor      = color.NRGBA{R: 0x49, G: 0x50, B: 0x57, A: 0xff}
	progressColor   = color.NRGBA{R: 0xad, G: 0xb5, B: 0xbd, A: 0xff}
	labelColor      = color.NRGBA{R: 0xf8, G: 0xf9, B: 0xfa, A: 0xff}

	categoryColors = map[timeline.Category]color.NRGBA{
		timeline.CategoryBoundary: {R: 0x28, G: 0xa7, B: 0x45, A: 0xff},
		timeline.CategoryWicket:   {R: 0xdc, G: 0x35, B: 0x45, A: 0xff},
		timeline.CategoryShot:     {R: 0x00, G: 0x7b, B: 0xff, A: 0xff},
		timeline.CategoryOther:    {R: 0xff, G: 0xc1, B: 0x07, A: 0xff},
	}
)

// CategoryColor returns the marker colour for a category
func CategoryColor(c timeline.Category) color.NRGBA {
	if col, ok := categoryColors[c]; ok {
		return col
	}
	return categoryColors[timeline.CategoryOther]
}

// StripRenderer draws the scrubber timeline as an image: a track filled up to the
// current position, one coloured tick per marker and the clock labels
type StripRenderer struct {
	logger *zap.Logger
	size   StripSize
}

// NewStripRenderer creates a renderer with the given default size
func NewStripRenderer(logger *zap.Logger, size StripSize) *StripRenderer {
	return &StripRenderer{logger: logger, size: size}
}

// Render draws the strip and encodes it as PNG. width 0 uses the default width.
func (r *StripRenderer) Render(markers []timeline.Marker, current, duration float64, width int) ([]byte, error) {
	if width == 0 {
		width = r.size.Width
	}
	if width < minWidth || width > maxWidth {
		return nil, fmt.Errorf("invalid strip width: %d", width)
	}
	height := r.size.Height
	if height <= labelHeight {
		height = defaultHeight
	}

	img := r.Draw(markers, current, duration, width, height)

	buf := new(bytes.Buffer)
	if err := imaging.Encode(buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode strip: %w", err)
	}

	r.logger.Debug("Timeline strip rendered",
		zap.Int("markers", len(markers)),
		zap.Int("width", width),
		zap.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

// Draw composes the strip image
func (r *StripRenderer) Draw(markers []timeline.Marker, current, duration float64, width, height int) *image.NRGBA {
	// 1. Background with the track below the label row
	img := imaging.New(width, height, backgroundColor)
	trackTop := labelHeight + 2
	trackHeight := height - trackTop - 2
	img = imaging.Paste(img, imaging.New(width, trackHeight, trackColor), image.Pt(0, trackTop))

	// 2. Progress fill
	if timeline.KnownDuration(duration) {
		filled := int(timeline.Position(current, duration) / 100 * float64(width))
		if filled > 0 {
			img = imaging.Paste(img, imaging.New(filled, trackHeight, progressColor), image.Pt(0, trackTop))
		}
	}

	// 3. Marker ticks span the whole track height
	for _, m := range markers {
		x := int(m.PositionPercent / 100 * float64(width))
		x = min(max(x-markerWidth/2, 0), width-markerWidth)
		tick := imaging.New(markerWidth, trackHeight, CategoryColor(m.Category))
		img = imaging.Paste(img, tick, image.Pt(x, trackTop))
	}

	// 4. Clock labels
	drawLabel(img, timefmt.Clock(current), 2)
	total := timefmt.Clock(duration)
	totalWidth := font.MeasureString(basicfont.Face7x13, total).Ceil()
	drawLabel(img, total, width-totalWidth-2)

	return img
}

func drawLabel(dst draw.Image, text string, x int) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(x, basicfont.Face7x13.Ascent),
	}
	d.DrawString(text)
}
