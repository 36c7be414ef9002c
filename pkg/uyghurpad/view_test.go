package uyghurpad

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/textedit"
)

// monoMeasurer gives every cluster the same advance.
type monoMeasurer struct{}

func (monoMeasurer) Advance(s string, size float64) float64 {
	return float64(textedit.ClusterCount(s)) * 10
}

func (monoMeasurer) LineHeight(size float64) float64 {
	return 20
}

func TestHorizontalCaretRunsRightToLeft(t *testing.T) {
	buf := textedit.New("abc\nde")
	g := textGeometry{m: monoMeasurer{}, size: 24, orientation: raster.Horizontal, originX: 200}

	assert.Equal(t, sdl.Rect{X: 199, Y: 0, W: 2, H: 20}, g.caret(buf, 0, 2))
	assert.Equal(t, sdl.Rect{X: 179, Y: 0, W: 2, H: 20}, g.caret(buf, 2, 2))
	assert.Equal(t, sdl.Rect{X: 189, Y: 20, W: 2, H: 20}, g.caret(buf, 5, 2))
}

func TestVerticalCaretRunsTopToBottom(t *testing.T) {
	buf := textedit.New("abc\nde")
	g := textGeometry{m: monoMeasurer{}, size: 24, orientation: raster.Vertical}

	assert.Equal(t, sdl.Rect{X: 0, Y: 20, W: 20, H: 2}, g.caret(buf, 2, 2))
	assert.Equal(t, sdl.Rect{X: 20, Y: 10, W: 20, H: 2}, g.caret(buf, 5, 2))
}

func TestHitFindsNearestPosition(t *testing.T) {
	buf := textedit.New("abc\nde")

	h := textGeometry{m: monoMeasurer{}, size: 24, orientation: raster.Horizontal, originX: 200}
	assert.Equal(t, 2, h.hit(buf, 181, 5))
	assert.Equal(t, 6, h.hit(buf, 100, 25), "past the line end clamps to it")
	assert.Equal(t, 5, h.hit(buf, 190, 500), "below the last line")

	v := textGeometry{m: monoMeasurer{}, size: 24, orientation: raster.Vertical}
	assert.Equal(t, 5, v.hit(buf, 25, 11))
	assert.Equal(t, 0, v.hit(buf, -5, -5))
}

func TestSelectionCoversEachLine(t *testing.T) {
	buf := textedit.New("abc\nde")
	g := textGeometry{m: monoMeasurer{}, size: 24, orientation: raster.Horizontal, originX: 200}

	rects := g.selection(buf, textedit.Range{Start: 1, End: 5})
	require.Len(t, rects, 2)
	assert.Equal(t, sdl.Rect{X: 170, Y: 0, W: 20, H: 20}, rects[0])
	assert.Equal(t, sdl.Rect{X: 190, Y: 20, W: 10, H: 20}, rects[1])

	assert.Empty(t, g.selection(buf, textedit.Range{Start: 2, End: 2}))
}

func TestLayoutKeepsKeyboardBelowText(t *testing.T) {
	l := computeLayout(layoutParams{
		width:        1000,
		height:       800,
		keyboardRows: 4,
		keyboardOpen: true,
		showToolbar:  true,
	})

	assert.Equal(t, sdl.Rect{X: 0, Y: 0, W: 1000, H: navHeight}, l.nav)
	assert.Equal(t, int32(maxKeyboardWidth), l.keyboard.W)
	assert.Equal(t, (1000-l.keyboard.W)/2, l.keyboard.X)
	assert.Equal(t, l.status.Y, l.keyboard.Y+l.keyboard.H)
	assert.LessOrEqual(t, l.content.Y+l.content.H, l.keyboard.Y)
	assert.Zero(t, l.footer.H)
}

func TestLayoutWithoutKeyboard(t *testing.T) {
	open := computeLayout(layoutParams{width: 1000, height: 800, keyboardRows: 4, keyboardOpen: true, showToolbar: true})
	closed := computeLayout(layoutParams{width: 1000, height: 800, keyboardRows: 4, showToolbar: true, showFooter: true})

	assert.Zero(t, closed.keyboard.H)
	assert.Equal(t, int32(800), closed.footer.Y+closed.footer.H)
	assert.Equal(t, closed.footer.Y, closed.status.Y+closed.status.H)
	assert.Greater(t, closed.content.H, open.content.H)
}

func TestLayoutMobileKeyboardUsesFullWidth(t *testing.T) {
	l := computeLayout(layoutParams{width: 400, height: 800, keyboardRows: 5, keyboardOpen: true, mobile: true})
	assert.Equal(t, int32(400-2*outerMargin), l.keyboard.W)
	assert.Zero(t, l.toolbar.H)
}

func TestCaretDeltaFollowsWritingDirection(t *testing.T) {
	assert.Equal(t, 1, caretDelta(raster.Horizontal, constants.VirtualButtonLeft))
	assert.Equal(t, -1, caretDelta(raster.Horizontal, constants.VirtualButtonRight))
	assert.Equal(t, 0, caretDelta(raster.Horizontal, constants.VirtualButtonUp))
	assert.Equal(t, 1, caretDelta(raster.Vertical, constants.VirtualButtonDown))
	assert.Equal(t, -1, caretDelta(raster.Vertical, constants.VirtualButtonUp))
	assert.Equal(t, 0, caretDelta(raster.Vertical, constants.VirtualButtonLeft))
}

func TestDirectionRepeater(t *testing.T) {
	d := newDirectionRepeater()
	d.press(constants.VirtualButtonDown)
	start := time.Now()

	_, ok := d.due(start.Add(100 * time.Millisecond))
	assert.False(t, ok)

	b, ok := d.due(start.Add(d.repeatDelay + time.Millisecond))
	assert.True(t, ok)
	assert.Equal(t, constants.VirtualButtonDown, b)

	d.release(constants.VirtualButtonUp)
	_, ok = d.due(start.Add(time.Second))
	assert.True(t, ok, "releasing another button keeps the repeat")

	d.release(constants.VirtualButtonDown)
	_, ok = d.due(start.Add(2 * time.Second))
	assert.False(t, ok)
}
