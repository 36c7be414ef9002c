package raster

import (
	"bytes"
	"image/png"
	"math"
	"testing"

	"github.com/gogpu/gg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"
)

func newTestRasterizer(t *testing.T) *Rasterizer {
	t.Helper()
	source, err := text.NewFontSource(goregular.TTF)
	require.NoError(t, err)
	t.Cleanup(func() { _ = source.Close() })
	return New(source)
}

func TestRenderEmptyText(t *testing.T) {
	r := newTestRasterizer(t)
	for _, o := range []Orientation{Horizontal, Vertical} {
		res, err := r.Render("", Options{FontSize: 24, Orientation: o})
		assert.ErrorIs(t, err, ErrNothingToConvert)
		assert.Nil(t, res)
	}
}

func TestRenderWithoutFont(t *testing.T) {
	res, err := New(nil).Render("abc", Options{FontSize: 24})
	assert.ErrorIs(t, err, ErrCanvasUnavailable)
	assert.Nil(t, res)
}

func TestRenderOversizeCanvas(t *testing.T) {
	r := newTestRasterizer(t)
	_, err := r.Render("abc", Options{FontSize: 24, Scale: MaxCanvasSide})
	assert.ErrorIs(t, err, ErrCanvasUnavailable)
}

func TestHorizontalDimensionsMatchMeasure(t *testing.T) {
	r := newTestRasterizer(t)
	for _, scale := range []float64{1, 1.5, 2} {
		w, h := r.Measure("Hello world", 24)
		require.Greater(t, w, 0.0)
		require.Greater(t, h, 0.0)

		res, err := r.Render("Hello world", Options{FontSize: 24, Scale: scale})
		require.NoError(t, err)

		assert.Equal(t, w, res.Width)
		assert.Equal(t, h, res.Height)
		b := res.Image.Bounds()
		assert.Equal(t, int(math.Ceil(w*scale)), b.Dx(), "scale %v", scale)
		assert.Equal(t, int(math.Ceil(h*scale)), b.Dy(), "scale %v", scale)
	}
}

func TestVerticalDimensionsAreSwapped(t *testing.T) {
	r := newTestRasterizer(t)
	w, h := r.Measure("Hello", 32)

	res, err := r.Render("Hello", Options{FontSize: 32, Scale: 2, Orientation: Vertical})
	require.NoError(t, err)

	assert.Equal(t, h, res.Width)
	assert.Equal(t, w, res.Height)
	b := res.Image.Bounds()
	assert.Equal(t, int(math.Ceil(h*2)), b.Dx())
	assert.Equal(t, int(math.Ceil(w*2)), b.Dy())
}

func TestMultilineMeasure(t *testing.T) {
	r := newTestRasterizer(t)
	w1, h1 := r.Measure("wide line here", 24)
	w2, h2 := r.Measure("wide line here\nx", 24)

	assert.Equal(t, w1, w2)
	assert.InDelta(t, 2*h1, h2, 1e-9)
}

func TestRenderDrawsBlackOnWhite(t *testing.T) {
	r := newTestRasterizer(t)
	res, err := r.Render("HHHH", Options{FontSize: 40})
	require.NoError(t, err)

	var dark, light int
	b := res.Image.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := res.Image.RGBAAt(x, y)
			switch {
			case c.R < 64 && c.G < 64 && c.B < 64:
				dark++
			case c.R == 255 && c.G == 255 && c.B == 255:
				light++
			}
		}
	}
	assert.Greater(t, dark, 0)
	assert.Greater(t, light, dark)
}

func TestEncodePNG(t *testing.T) {
	r := newTestRasterizer(t)
	res, err := r.Render("abc", Options{FontSize: 24, Orientation: Vertical})
	require.NoError(t, err)

	data, err := res.PNG()
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, res.Image.Bounds().Dx(), cfg.Width)
	assert.Equal(t, res.Image.Bounds().Dy(), cfg.Height)
}

func TestReverseClusters(t *testing.T) {
	assert.Equal(t, "cba", reverseClusters("abc"))
	assert.Equal(t, "béa", reverseClusters("aéb"))
}

func TestAdvanceIsAdditiveForPrefixes(t *testing.T) {
	r := newTestRasterizer(t)
	whole := r.Advance("abcd", 24)
	assert.Greater(t, whole, r.Advance("ab", 24))
	assert.Zero(t, r.Advance("", 24))

	w, _ := r.Measure("abcd", 24)
	assert.InDelta(t, w, whole, 0.001)
}

func TestLineHeightMatchesMeasure(t *testing.T) {
	r := newTestRasterizer(t)
	_, h := r.Measure("a\nb", 30)
	assert.InDelta(t, h, 2*r.LineHeight(30), 0.001)
	assert.Equal(t, 30.0, New(nil).LineHeight(30))
}
