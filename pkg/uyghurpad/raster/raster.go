// Package raster turns editor text into a white-background PNG-ready image.
//
// Text is laid out as a right-to-left paragraph: each line is right aligned
// against the canvas edge and its directional runs are placed in visual
// order. Vertical output is the horizontal rendering rotated a quarter turn
// counter-clockwise, so lines read top to bottom.
package raster

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"github.com/rivo/uniseg"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
)

var (
	ErrNothingToConvert  = errors.New("nothing to convert")
	ErrCanvasUnavailable = errors.New("canvas unavailable")
)

// MaxCanvasSide bounds either side of the backing image in device pixels.
const MaxCanvasSide = 16384

type Orientation int

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

type Options struct {
	FontSize    float64
	Scale       float64
	Orientation Orientation
}

func (o Options) scale() float64 {
	if o.Scale <= 0 || math.IsNaN(o.Scale) {
		return 1
	}
	return o.Scale
}

// Result is a rendered text image. Width and Height are logical pixels; the
// backing image is Width*Scale by Height*Scale device pixels, rounded up.
type Result struct {
	Image  *image.RGBA
	Width  float64
	Height float64
	Scale  float64
}

// EncodePNG writes the image as PNG.
func (r *Result) EncodePNG(w io.Writer) error {
	dc := gg.NewContextForImage(r.Image)
	defer dc.Close()
	return dc.EncodePNG(w)
}

func (r *Result) PNG() ([]byte, error) {
	var buf bytes.Buffer
	if err := r.EncodePNG(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type Rasterizer struct {
	source *text.FontSource
}

func New(source *text.FontSource) *Rasterizer {
	return &Rasterizer{source: source}
}

// Measure returns the logical footprint of s at size: the widest line
// advance by the number of lines times the line height. Whitespace is kept.
func (r *Rasterizer) Measure(s string, size float64) (width, height float64) {
	if r == nil || r.source == nil || s == "" || size <= 0 {
		return 0, 0
	}
	face := r.source.Face(size, text.WithDirection(text.DirectionRTL))
	lines := splitLines(s)
	for _, line := range lines {
		width = math.Max(width, face.Advance(line))
	}
	return width, float64(len(lines)) * face.Metrics().LineHeight()
}

// Advance is the logical width of a single line s at size.
func (r *Rasterizer) Advance(s string, size float64) float64 {
	if r == nil || r.source == nil || s == "" || size <= 0 {
		return 0
	}
	return r.source.Face(size, text.WithDirection(text.DirectionRTL)).Advance(s)
}

// LineHeight is the logical distance between baselines at size.
func (r *Rasterizer) LineHeight(size float64) float64 {
	if r == nil || r.source == nil || size <= 0 {
		return size
	}
	return r.source.Face(size, text.WithDirection(text.DirectionRTL)).Metrics().LineHeight()
}

// Render rasterizes s. Empty input yields ErrNothingToConvert and no image.
func (r *Rasterizer) Render(s string, opts Options) (*Result, error) {
	if s == "" {
		return nil, ErrNothingToConvert
	}
	if r == nil || r.source == nil {
		return nil, ErrCanvasUnavailable
	}

	scale := opts.scale()
	w, h := r.Measure(s, opts.FontSize)
	pw, ph := int(math.Ceil(w*scale)), int(math.Ceil(h*scale))
	if pw <= 0 || ph <= 0 || pw > MaxCanvasSide || ph > MaxCanvasSide {
		return nil, ErrCanvasUnavailable
	}

	dc := gg.NewContext(pw, ph)
	dc.ClearWithColor(gg.White)
	img, ok := dc.Image().(*image.RGBA)
	_ = dc.Close()
	if !ok {
		return nil, ErrCanvasUnavailable
	}

	// Faces are rasterized at 72 DPI, so device pixels come from the size.
	face := r.source.Face(opts.FontSize*scale, text.WithDirection(text.DirectionRTL))
	metrics := face.Metrics()
	baseline := metrics.Ascent
	for _, line := range splitLines(s) {
		drawLineRTL(img, line, face, float64(pw), baseline, color.Black)
		baseline += metrics.LineHeight()
	}

	res := &Result{Image: img, Width: w, Height: h, Scale: scale}
	if opts.Orientation == Vertical {
		res.Image = rotateCounterClockwise(img)
		res.Width, res.Height = h, w
	}
	return res, nil
}

// drawLineRTL draws line with its right edge at right. Runs are placed from
// the right in logical order; clusters inside right-to-left runs are drawn
// reversed.
func drawLineRTL(dst draw.Image, line string, face text.Face, right, baseline float64, col color.Color) {
	x := right
	for _, seg := range text.SegmentTextRTL(line) {
		advance := face.Advance(seg.Text)
		x -= advance
		visual := seg.Text
		if seg.Direction == text.DirectionRTL {
			visual = reverseClusters(seg.Text)
		}
		text.Draw(dst, visual, face, x, baseline, col)
	}
}

func rotateCounterClockwise(src *image.RGBA) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewRGBA(image.Rect(0, 0, h, w))
	// (x, y) -> (y, w - x)
	s2d := f64.Aff3{0, 1, 0, -1, 0, float64(w)}
	draw.NearestNeighbor.Transform(dst, s2d, src, b, draw.Src, nil)
	return dst
}

func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")
	return strings.Split(s, "\n")
}

func reverseClusters(s string) string {
	var clusters []string
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		clusters = append(clusters, g.Str())
	}
	var sb strings.Builder
	sb.Grow(len(s))
	for i := len(clusters) - 1; i >= 0; i-- {
		sb.WriteString(clusters[i])
	}
	return sb.String()
}
