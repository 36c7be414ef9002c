package uyghurpad

import (
	"errors"
	"math"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/editor"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/textedit"
)

const caretBlinkInterval = 530 * time.Millisecond

type measurer interface {
	Advance(s string, size float64) float64
	LineHeight(size float64) float64
}

// textGeometry maps buffer positions to screen rectangles for text drawn
// by the rasterizer: lines right aligned and stacked downwards, or, for
// vertical text, the same picture turned counter-clockwise so lines run
// top to bottom and stack rightwards.
type textGeometry struct {
	m           measurer
	size        float64
	orientation raster.Orientation
	// right/top for horizontal, left/top for vertical; already scrolled.
	originX, originY int32
}

func (g textGeometry) lineHeight() int32 {
	return int32(math.Ceil(g.m.LineHeight(g.size)))
}

// offset is the distance from the start edge of a line to pos.
func (g textGeometry) offset(buf *textedit.Buffer, pos int) int32 {
	start := buf.LineBounds(pos).Start
	return int32(math.Round(g.m.Advance(buf.Span(start, pos), g.size)))
}

// span returns the rectangle covering [from, to) along line.
func (g textGeometry) span(line int, from, to int32) sdl.Rect {
	lh := g.lineHeight()
	across := int32(line) * lh
	if g.orientation == raster.Vertical {
		return sdl.Rect{X: g.originX + across, Y: g.originY + from, W: lh, H: to - from}
	}
	return sdl.Rect{X: g.originX - to, Y: g.originY + across, W: to - from, H: lh}
}

func (g textGeometry) caret(buf *textedit.Buffer, pos, thickness int32) sdl.Rect {
	line, _ := buf.Locate(int(pos))
	off := g.offset(buf, int(pos))
	r := g.span(line, off, off)
	if g.orientation == raster.Vertical {
		r.H = thickness
	} else {
		r.X -= thickness / 2
		r.W = thickness
	}
	return r
}

// selection returns one rectangle per line touched by r.
func (g textGeometry) selection(buf *textedit.Buffer, r textedit.Range) []sdl.Rect {
	if r.Empty() {
		return nil
	}
	var rects []sdl.Rect
	line, _ := buf.Locate(r.Start)
	for ls := buf.LineBounds(r.Start); ls.Start <= r.End; line++ {
		a, b := max(r.Start, ls.Start), min(r.End, ls.End)
		from := int32(math.Round(g.m.Advance(buf.Span(ls.Start, a), g.size)))
		to := int32(math.Round(g.m.Advance(buf.Span(ls.Start, b), g.size)))
		if b < r.End && to-from < g.lineHeight()/4 {
			// Show selected line breaks.
			to = from + g.lineHeight()/4
		}
		if to > from {
			rects = append(rects, g.span(line, from, to))
		}
		if ls.End >= buf.Len() {
			break
		}
		ls = buf.LineBounds(ls.End + 1)
	}
	return rects
}

// hit returns the buffer position closest to the point (x, y).
func (g textGeometry) hit(buf *textedit.Buffer, x, y int32) int {
	lh := g.lineHeight()
	if lh <= 0 {
		return buf.Len()
	}
	var across, along int32
	if g.orientation == raster.Vertical {
		across, along = x-g.originX, y-g.originY
	} else {
		across, along = y-g.originY, g.originX-x
	}

	line := int(across / lh)
	if across < 0 {
		line = 0
	}
	line = min(line, buf.LineCount()-1)

	bounds := buf.LineBounds(buf.LineStart(line))
	best, bestDist := bounds.Start, int32(math.MaxInt32)
	for pos := bounds.Start; pos <= bounds.End; pos++ {
		off := int32(math.Round(g.m.Advance(buf.Span(bounds.Start, pos), g.size)))
		d := off - along
		if d < 0 {
			d = -d
		}
		if d < bestDist {
			best, bestDist = pos, d
		}
	}
	return best
}

// editorView draws the mounted surface and turns pointer input into caret
// and selection changes.
type editorView struct {
	rasterizer *raster.Rasterizer

	texture    *sdl.Texture
	texW, texH int32
	rendered   renderKey

	rect     sdl.Rect
	scroll   int32
	dragging bool
	anchor   int

	blinkStart time.Time
}

type renderKey struct {
	text        string
	size        float64
	orientation raster.Orientation
	ok          bool
}

func newEditorView() *editorView {
	return &editorView{blinkStart: time.Now()}
}

func (v *editorView) setRasterizer(r *raster.Rasterizer) {
	v.rasterizer = r
	v.invalidate()
}

func (v *editorView) invalidate() {
	v.rendered = renderKey{}
}

// resetCaretBlink keeps the caret solid right after an edit.
func (v *editorView) resetCaretBlink() {
	v.blinkStart = time.Now()
}

func (v *editorView) padding() int32 {
	return internal.Scaled(12)
}

func (v *editorView) geometry(shell *editor.Shell) textGeometry {
	var m measurer = v.rasterizer
	if v.rasterizer == nil {
		m = fallbackMeasurer{}
	}
	g := textGeometry{
		m:           m,
		size:        float64(shell.FontSize()) * shell.Scale(),
		orientation: shell.Orientation(),
	}
	pad := v.padding()
	if g.orientation == raster.Vertical {
		g.originX = v.rect.X + pad - v.scroll
		g.originY = v.rect.Y + pad
	} else {
		g.originX = v.rect.X + v.rect.W - pad
		g.originY = v.rect.Y + pad - v.scroll
	}
	return g
}

func (v *editorView) refreshTexture(renderer *sdl.Renderer, shell *editor.Shell) {
	key := renderKey{
		text:        shell.Surface().Text(),
		size:        float64(shell.FontSize()) * shell.Scale(),
		orientation: shell.Orientation(),
		ok:          true,
	}
	if key == v.rendered {
		return
	}
	v.rendered = key

	if v.texture != nil {
		v.texture.Destroy()
		v.texture = nil
	}
	if v.rasterizer == nil || key.text == "" {
		return
	}

	res, err := v.rasterizer.Render(key.text, raster.Options{
		FontSize:    float64(shell.FontSize()),
		Scale:       shell.Scale(),
		Orientation: shell.Orientation(),
	})
	if err != nil {
		if !errors.Is(err, raster.ErrNothingToConvert) {
			GetLogger().Warn("Failed to render editor text", "error", err)
		}
		return
	}
	data, err := res.PNG()
	if err != nil {
		GetLogger().Warn("Failed to encode editor text", "error", err)
		return
	}
	texture, err := textureFromPNG(renderer, data)
	if err != nil {
		GetLogger().Warn("Failed to upload editor text", "error", err)
		return
	}
	b := res.Image.Bounds()
	v.texture, v.texW, v.texH = texture, int32(b.Dx()), int32(b.Dy())
}

// keepCaretVisible scrolls along the line-stacking axis.
func (v *editorView) keepCaretVisible(shell *editor.Shell) {
	surface := shell.Surface()
	if !surface.Focused() {
		return
	}
	g := v.geometry(shell)
	c := g.caret(surface.Buffer(), int32(surface.Buffer().Cursor()), 1)
	pad := v.padding()

	if shell.Orientation() == raster.Vertical {
		if right := v.rect.X + v.rect.W - pad; c.X+c.W > right {
			v.scroll += c.X + c.W - right
		} else if c.X < v.rect.X+pad {
			v.scroll -= v.rect.X + pad - c.X
		}
	} else {
		if bottom := v.rect.Y + v.rect.H - pad; c.Y+c.H > bottom {
			v.scroll += c.Y + c.H - bottom
		} else if c.Y < v.rect.Y+pad {
			v.scroll -= v.rect.Y + pad - c.Y
		}
	}
	v.scroll = internal.Max32(v.scroll, 0)
}

func (v *editorView) render(renderer *sdl.Renderer, shell *editor.Shell, rect sdl.Rect) {
	v.rect = rect
	theme := internal.GetTheme()
	surface := shell.Surface()

	border := theme.EditorBorderColor
	if surface.Focused() {
		border = theme.EditorFocusColor
	}
	radius := internal.Scaled(8)
	internal.DrawRoundedRect(renderer, &rect, radius, border)
	inner := sdl.Rect{X: rect.X + internal.Scaled(2), Y: rect.Y + internal.Scaled(2), W: rect.W - internal.Scaled(4), H: rect.H - internal.Scaled(4)}
	internal.DrawRoundedRect(renderer, &inner, radius-internal.Scaled(2), sdl.Color{R: 255, G: 255, B: 255, A: 255})

	v.refreshTexture(renderer, shell)
	v.keepCaretVisible(shell)

	renderer.SetClipRect(&inner)
	defer renderer.SetClipRect(nil)

	g := v.geometry(shell)
	if v.texture != nil {
		dst := sdl.Rect{X: g.originX - v.texW, Y: g.originY, W: v.texW, H: v.texH}
		if shell.Orientation() == raster.Vertical {
			dst.X = g.originX
		}
		renderer.Copy(v.texture, nil, &dst)
	}

	buf := surface.Buffer()
	if sel, ok := buf.Selection(); ok {
		c := theme.SelectionColor
		renderer.SetDrawColor(c.R, c.G, c.B, c.A)
		for _, r := range g.selection(buf, sel) {
			renderer.FillRect(&r)
		}
	}

	blinkOn := (time.Since(v.blinkStart)/caretBlinkInterval)%2 == 0
	if surface.Focused() && blinkOn {
		c := theme.CaretColor
		caret := g.caret(buf, int32(buf.Cursor()), internal.Max32(internal.Scaled(2), 1))
		renderer.SetDrawColor(c.R, c.G, c.B, c.A)
		renderer.FillRect(&caret)
	}
}

func (v *editorView) contains(x, y int32) bool {
	return internal.PointInRect(x, y, v.rect)
}

// pointerDown focuses the surface and places the caret, extending the
// selection when extend is set.
func (v *editorView) pointerDown(shell *editor.Shell, x, y int32, extend bool) {
	surface := shell.Surface()
	buf := surface.Buffer()
	pos := v.geometry(shell).hit(buf, x, y)

	surface.Focus()
	if extend {
		anchor := buf.Cursor()
		if sel, ok := buf.Selection(); ok {
			anchor = sel.Start
			if buf.Cursor() == sel.Start {
				anchor = sel.End
			}
		}
		surface.Select(anchor, pos)
		v.anchor = anchor
	} else {
		surface.PlaceCaret(pos)
		v.anchor = pos
	}
	v.dragging = true
	v.resetCaretBlink()
}

func (v *editorView) pointerMove(shell *editor.Shell, x, y int32) {
	if !v.dragging {
		return
	}
	pos := v.geometry(shell).hit(shell.Surface().Buffer(), x, y)
	shell.Surface().Select(v.anchor, pos)
}

func (v *editorView) pointerUp() {
	v.dragging = false
}

func (v *editorView) destroy() {
	if v.texture != nil {
		v.texture.Destroy()
		v.texture = nil
	}
}

// fallbackMeasurer positions the caret before the script font is ready.
type fallbackMeasurer struct{}

func (fallbackMeasurer) Advance(s string, size float64) float64 {
	return float64(textedit.ClusterCount(s)) * size * 0.6
}

func (fallbackMeasurer) LineHeight(size float64) float64 {
	return size * 1.2
}
