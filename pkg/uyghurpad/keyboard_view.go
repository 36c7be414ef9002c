package uyghurpad

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/keyboard"
)

// keyboardView draws a keyboard model inside the panel rect and maps
// clicks back to key indexes.
type keyboardView struct {
	model       *keyboard.Keyboard
	keyRects    []sdl.Rect
	collapse    sdl.Rect
	pressed     int
	pressedTill time.Time
	showCursor  bool
}

func newKeyboardView(model *keyboard.Keyboard) *keyboardView {
	return &keyboardView{model: model, pressed: -1}
}

func (kv *keyboardView) setModel(model *keyboard.Keyboard) {
	kv.model = model
	kv.keyRects = nil
	kv.pressed = -1
}

// setupKeyRects lays out the rows centred in the panel. Each row is
// measured in key units; the control row is stretched to the full width.
func (kv *keyboardView) setupKeyRects(panel sdl.Rect) {
	keys := kv.model.Keys()
	rows := kv.model.Rows()
	kv.keyRects = make([]sdl.Rect, len(keys))

	header := internal.Scaled(keyboardHeader)
	spacing := internal.Scaled(6)
	pad := internal.Scaled(10)

	kv.collapse = sdl.Rect{X: panel.X + panel.W - pad - header, Y: panel.Y + internal.Scaled(4), W: header, H: header - internal.Scaled(8)}

	maxUnits := 0
	for _, row := range rows[:len(rows)-1] {
		maxUnits = max(maxUnits, len(row))
	}
	if maxUnits == 0 {
		return
	}

	innerW := panel.W - 2*pad
	keyW := (innerW - spacing*int32(maxUnits-1)) / int32(maxUnits)
	rowsH := panel.H - header - pad
	keyH := internal.Min32((rowsH-spacing*int32(len(rows)-1))/int32(len(rows)), internal.Scaled(keyboardRowHeight))

	y := panel.Y + header
	for ri, row := range rows {
		if ri == len(rows)-1 {
			totalSpan := 0
			for _, idx := range row {
				totalSpan += keys[idx].Span
			}
			x := panel.X + pad
			unit := (innerW - spacing*int32(len(row)-1)) / int32(totalSpan)
			for _, idx := range row {
				w := unit * int32(keys[idx].Span)
				kv.keyRects[idx] = sdl.Rect{X: x, Y: y, W: w, H: keyH}
				x += w + spacing
			}
			break
		}

		rowW := keyW*int32(len(row)) + spacing*int32(len(row)-1)
		x := panel.X + pad + (innerW-rowW)/2
		for _, idx := range row {
			kv.keyRects[idx] = sdl.Rect{X: x, Y: y, W: keyW, H: keyH}
			x += keyW + spacing
		}
		y += keyH + spacing
	}
}

func (kv *keyboardView) render(renderer *sdl.Renderer, panel sdl.Rect, icons *iconSet, labels *internal.TextureCache) {
	kv.setupKeyRects(panel)
	theme := internal.GetTheme()

	bg := theme.AccentColor
	bg.A = 40
	internal.DrawRoundedRect(renderer, &panel, internal.Scaled(12), bg)

	titleRect := sdl.Rect{X: panel.X + internal.Scaled(14), Y: panel.Y, W: panel.W / 2, H: internal.Scaled(keyboardHeader)}
	internal.RenderText(renderer, labels, i18n.GetString(i18n.KeyboardTitle), internal.Fonts.SmallFont, titleRect, theme.TextColor, constants.TextAlignLeft)

	internal.DrawRoundedRect(renderer, &kv.collapse, kv.collapse.H/2, theme.AccentColor)
	icons.draw(renderer, iconCollapse, kv.collapse, internal.Scaled(18), theme.ButtonLabelColor)

	labelFont := internal.Fonts.ScriptFont
	if labelFont == nil {
		labelFont = internal.Fonts.MediumFont
	}

	for i, key := range kv.model.Keys() {
		kv.renderSingleKey(renderer, labelFont, i, key, icons, labels)
	}
}

func (kv *keyboardView) renderSingleKey(renderer *sdl.Renderer, font *ttf.Font, index int, key keyboard.Key, icons *iconSet, labels *internal.TextureCache) {
	theme := internal.GetTheme()
	rect := kv.keyRects[index]

	bgColor := theme.AccentColor
	textColor := theme.ButtonLabelColor
	if kv.showCursor && index == kv.model.Selected() {
		bgColor = theme.HighlightColor
		textColor = theme.HighlightedTextColor
	}
	if index == kv.pressed && time.Now().Before(kv.pressedTill) {
		bgColor.A = 160
	}
	internal.DrawRoundedRect(renderer, &rect, internal.Scaled(6), bgColor)

	switch key.Kind {
	case keyboard.KindBackspace:
		icons.draw(renderer, iconBackspace, rect, internal.Min32(rect.H*3/5, internal.Scaled(26)), textColor)
	case keyboard.KindSpace:
		kv.renderSpaceKey(renderer, rect, textColor)
	default:
		internal.RenderText(renderer, labels, key.Label, font, rect, textColor, constants.TextAlignCenter)
	}
}

func (kv *keyboardView) renderSpaceKey(renderer *sdl.Renderer, rect sdl.Rect, color sdl.Color) {
	lineWidth := rect.W / 3
	lineHeight := internal.Max32(internal.Scaled(3), 2)
	lineRect := sdl.Rect{
		X: rect.X + (rect.W-lineWidth)/2,
		Y: rect.Y + (rect.H-lineHeight)/2,
		W: lineWidth,
		H: lineHeight,
	}
	renderer.SetDrawColor(color.R, color.G, color.B, color.A)
	renderer.FillRect(&lineRect)
}

// keyAt returns the key index under (x, y), or -1.
func (kv *keyboardView) keyAt(x, y int32) int {
	for i, r := range kv.keyRects {
		if internal.PointInRect(x, y, r) {
			return i
		}
	}
	return -1
}

func (kv *keyboardView) collapseHit(x, y int32) bool {
	return internal.PointInRect(x, y, kv.collapse)
}

// flash highlights a key briefly after it is activated.
func (kv *keyboardView) flash(index int) {
	kv.pressed = index
	kv.pressedTill = time.Now().Add(120 * time.Millisecond)
}

// directionRepeater repeats a held D-pad direction: one step on press,
// another after repeatDelay, then one every repeatInterval.
type directionRepeater struct {
	held           constants.VirtualButton
	lastRepeatTime time.Time
	hasRepeated    bool
	repeatDelay    time.Duration
	repeatInterval time.Duration
}

func newDirectionRepeater() *directionRepeater {
	return &directionRepeater{
		repeatDelay:    400 * time.Millisecond,
		repeatInterval: 80 * time.Millisecond,
	}
}

func isDirectionalButton(button constants.VirtualButton) bool {
	return button == constants.VirtualButtonUp || button == constants.VirtualButtonDown ||
		button == constants.VirtualButtonLeft || button == constants.VirtualButtonRight
}

func (d *directionRepeater) press(button constants.VirtualButton) {
	d.held = button
	d.lastRepeatTime = time.Now()
	d.hasRepeated = false
}

func (d *directionRepeater) release(button constants.VirtualButton) {
	if d.held == button {
		d.held = constants.VirtualButtonUnassigned
		d.hasRepeated = false
	}
}

// due returns the held button when a repeat is due.
func (d *directionRepeater) due(now time.Time) (constants.VirtualButton, bool) {
	if d.held == constants.VirtualButtonUnassigned {
		return d.held, false
	}
	threshold := d.repeatInterval
	if !d.hasRepeated {
		threshold = d.repeatDelay
	}
	if now.Sub(d.lastRepeatTime) < threshold {
		return d.held, false
	}
	d.lastRepeatTime = now
	d.hasRepeated = true
	return d.held, true
}

func toKeyboardDirection(button constants.VirtualButton) keyboard.Direction {
	switch button {
	case constants.VirtualButtonUp:
		return keyboard.Up
	case constants.VirtualButtonDown:
		return keyboard.Down
	case constants.VirtualButtonLeft:
		return keyboard.Left
	default:
		return keyboard.Right
	}
}
