package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	m "math"
	"os"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/spaghettifunk/wireframe/engine/math"
	"github.com/spaghettifunk/wireframe/engine/renderer"
	"golang.org/x/image/draw"
)

const (
	FORMAT_WEBP = "webp"
	FORMAT_PNG  = "png"
)

var ErrUnsupportedFormat = errors.New("unsupported image format")

type CanvasConfig struct {
	Width  int
	Height int
	// Supersample renders at Width*Supersample and scales down on Image(). 1 disables it.
	Supersample int
	Background  color.NRGBA
	Stroke      color.NRGBA
}

var _ renderer.Surface = (*Canvas)(nil)

// Canvas is a Surface drawing 1px lines into an NRGBA buffer.
type Canvas struct {
	width       int
	height      int
	supersample int
	background  color.NRGBA
	stroke      color.NRGBA

	buffer *image.NRGBA
}

func NewCanvas(cfg CanvasConfig) *Canvas {
	ss := math.Clamp(cfg.Supersample, 1, 8)
	c := &Canvas{
		width:       math.Clamp(cfg.Width, 1, 16384),
		height:      math.Clamp(cfg.Height, 1, 16384),
		supersample: ss,
		background:  cfg.Background,
		stroke:      cfg.Stroke,
	}
	c.buffer = image.NewNRGBA(image.Rect(0, 0, c.width*ss, c.height*ss))
	c.Clear()
	return c
}

// Size is the logical size. Segments are expected in logical pixels.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

func (c *Canvas) Clear() {
	bg := c.background
	pix := c.buffer.Pix
	for i := 0; i < len(pix); i += 4 {
		pix[i], pix[i+1], pix[i+2], pix[i+3] = bg.R, bg.G, bg.B, bg.A
	}
}

func (c *Canvas) DrawSegments(segments []renderer.Segment) {
	ss := float64(c.supersample)
	b := c.buffer.Bounds()
	// one pixel of slack so rounding at the border keeps edge pixels
	xmin, ymin := float64(b.Min.X)-1, float64(b.Min.Y)-1
	xmax, ymax := float64(b.Max.X), float64(b.Max.Y)
	for _, s := range segments {
		x0, y0, x1, y1 := s.From.X*ss, s.From.Y*ss, s.To.X*ss, s.To.Y*ss
		if !finite(x0, y0, x1, y1) {
			continue
		}
		x0, y0, x1, y1, ok := clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax)
		if !ok {
			continue
		}
		c.line(int(m.Round(x0)), int(m.Round(y0)), int(m.Round(x1)), int(m.Round(y1)))
	}
}

// clipSegment is Liang-Barsky: it cuts the segment to the rectangle without
// changing its direction. ok is false when nothing is left inside.
func clipSegment(x0, y0, x1, y1, xmin, ymin, xmax, ymax float64) (float64, float64, float64, float64, bool) {
	dx, dy := x1-x0, y1-y0
	t0, t1 := 0.0, 1.0

	p := [4]float64{-dx, dx, -dy, dy}
	q := [4]float64{x0 - xmin, xmax - x0, y0 - ymin, ymax - y0}
	for i := range p {
		if p[i] == 0 {
			if q[i] < 0 {
				return 0, 0, 0, 0, false
			}
			continue
		}
		t := q[i] / p[i]
		if p[i] < 0 {
			if t > t1 {
				return 0, 0, 0, 0, false
			}
			t0 = max(t0, t)
		} else {
			if t < t0 {
				return 0, 0, 0, 0, false
			}
			t1 = min(t1, t)
		}
	}
	return x0 + t0*dx, y0 + t0*dy, x0 + t1*dx, y0 + t1*dy, true
}

func finite(values ...float64) bool {
	for _, v := range values {
		if m.IsNaN(v) || m.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// line is Bresenham over already clipped endpoints; set still bounds-checks
// the pixels that land in the slack around the buffer.
func (c *Canvas) line(x0, y0, x1, y1 int) {
	dx := abs(x1 - x0)
	dy := -abs(y1 - y0)
	sx, sy := 1, 1
	if x0 > x1 {
		sx = -1
	}
	if y0 > y1 {
		sy = -1
	}
	err := dx + dy
	for {
		c.set(x0, y0)
		if x0 == x1 && y0 == y1 {
			return
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) set(x, y int) {
	if !(image.Point{X: x, Y: y}).In(c.buffer.Rect) {
		return
	}
	i := c.buffer.PixOffset(x, y)
	c.buffer.Pix[i] = c.stroke.R
	c.buffer.Pix[i+1] = c.stroke.G
	c.buffer.Pix[i+2] = c.stroke.B
	c.buffer.Pix[i+3] = c.stroke.A
}

// Image returns the frame at its logical size.
func (c *Canvas) Image() *image.NRGBA {
	if c.supersample == 1 {
		out := image.NewNRGBA(c.buffer.Rect)
		copy(out.Pix, c.buffer.Pix)
		return out
	}
	out := image.NewNRGBA(image.Rect(0, 0, c.width, c.height))
	draw.CatmullRom.Scale(out, out.Bounds(), c.buffer, c.buffer.Bounds(), draw.Src, nil)
	return out
}

func (c *Canvas) EncodeWebP(w io.Writer) error {
	return nativewebp.Encode(w, c.Image(), nil)
}

func (c *Canvas) EncodePNG(w io.Writer) error {
	return png.Encode(w, c.Image())
}

// Encode writes the frame in the given format ("webp" or "png").
func (c *Canvas) Encode(w io.Writer, format string) error {
	switch strings.ToLower(format) {
	case FORMAT_WEBP:
		return c.EncodeWebP(w)
	case FORMAT_PNG:
		return c.EncodePNG(w)
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// Save writes the frame to path, picking the format from the extension.
func (c *Canvas) Save(path string) error {
	format := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	if format != FORMAT_WEBP && format != FORMAT_PNG {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Encode(f, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
