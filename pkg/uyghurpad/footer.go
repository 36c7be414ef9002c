package uyghurpad

import (
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/editor"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
)

// FooterHelpItem represents a button and its help text that should be displayed in the footer.
// ButtonName is the text that will be displayed in the inner pill.
// HelpText is the text that will be displayed in the outer pill to the right of the button.
type FooterHelpItem struct {
	HelpText   string
	ButtonName string
}

// footerItems are the controller hints for the active page.
func footerItems(shell *editor.Shell) (left, right []FooterHelpItem) {
	if shell.Page() != editor.PageEditor {
		return []FooterHelpItem{{ButtonName: "B", HelpText: i18n.GetString(i18n.HintBack)}}, nil
	}

	left = []FooterHelpItem{
		{ButtonName: "A", HelpText: i18n.GetString(i18n.HintType)},
		{ButtonName: "B", HelpText: i18n.GetString(i18n.HintBackspace)},
		{ButtonName: "X", HelpText: i18n.GetString(i18n.HintSpace)},
	}
	right = []FooterHelpItem{
		{ButtonName: "Y", HelpText: i18n.GetString(i18n.HintKeyboard)},
		{ButtonName: "Start", HelpText: i18n.GetString(i18n.HintCopy)},
	}
	if !shell.IsMobile() {
		right = append(right, FooterHelpItem{ButtonName: "Select", HelpText: i18n.GetString(i18n.HintOrientation)})
	}
	return left, right
}

func renderFooter(renderer *sdl.Renderer, font *ttf.Font, rect sdl.Rect, left, right []FooterHelpItem, labels *internal.TextureCache) {
	if len(left)+len(right) == 0 {
		return
	}

	margin := internal.Scaled(outerMargin)
	outerPillHeight := internal.Min32(rect.H-internal.Scaled(10), internal.Scaled(44))
	innerPillMargin := internal.Scaled(5)
	y := rect.Y + (rect.H-outerPillHeight)/2

	if len(left) > 0 {
		renderGroupAsContinuousPill(renderer, font, left, rect.X+margin, y, outerPillHeight, innerPillMargin, labels)
	}
	if len(right) > 0 {
		w := calculateContinuousPillWidth(font, right, outerPillHeight, innerPillMargin)
		renderGroupAsContinuousPill(renderer, font, right, rect.X+rect.W-margin-w, y, outerPillHeight, innerPillMargin, labels)
	}
}

func calculateInnerPillWidth(labelW, innerPillHeight int32) int32 {
	if labelW <= innerPillHeight-internal.Scaled(12) {
		return innerPillHeight
	}
	return labelW + internal.Scaled(14)
}

func calculateContinuousPillWidth(font *ttf.Font, items []FooterHelpItem, outerPillHeight, innerPillMargin int32) int32 {
	innerPillHeight := outerPillHeight - innerPillMargin*2
	total := internal.Scaled(8)
	for i, item := range items {
		total += calculateInnerPillWidth(measureLabel(font, item.ButtonName), innerPillHeight)
		total += internal.Scaled(8) + measureLabel(font, item.HelpText)
		if i < len(items)-1 {
			total += internal.Scaled(16)
		}
	}
	return total + internal.Scaled(12)
}

func renderGroupAsContinuousPill(
	renderer *sdl.Renderer,
	font *ttf.Font,
	items []FooterHelpItem,
	startX, y,
	outerPillHeight,
	innerPillMargin int32,
	labels *internal.TextureCache,
) {
	theme := internal.GetTheme()
	pillWidth := calculateContinuousPillWidth(font, items, outerPillHeight, innerPillMargin)
	outerPillRect := &sdl.Rect{X: startX, Y: y, W: pillWidth, H: outerPillHeight}
	internal.DrawRoundedRect(renderer, outerPillRect, outerPillHeight/2, theme.AccentColor)

	currentX := startX + internal.Scaled(8)
	innerPillHeight := outerPillHeight - innerPillMargin*2

	for _, item := range items {
		innerPillWidth := calculateInnerPillWidth(measureLabel(font, item.ButtonName), innerPillHeight)
		innerRect := sdl.Rect{X: currentX, Y: y + innerPillMargin, W: innerPillWidth, H: innerPillHeight}

		if innerPillWidth == innerPillHeight {
			drawCircleShape(renderer, currentX+innerPillHeight/2, y+innerPillMargin+innerPillHeight/2, innerPillHeight/2, theme.HighlightColor)
		} else {
			internal.DrawRoundedRect(renderer, &innerRect, innerPillHeight/2, theme.HighlightColor)
		}
		internal.RenderText(renderer, labels, item.ButtonName, font, innerRect, theme.HighlightedTextColor, constants.TextAlignCenter)

		currentX += innerPillWidth + internal.Scaled(8)
		helpW := measureLabel(font, item.HelpText)
		helpRect := sdl.Rect{X: currentX, Y: y, W: helpW, H: outerPillHeight}
		internal.RenderText(renderer, labels, item.HelpText, font, helpRect, theme.ButtonLabelColor, constants.TextAlignLeft)
		currentX += helpW + internal.Scaled(16)
	}
}

func drawCircleShape(renderer *sdl.Renderer, centerX, centerY, radius int32, color sdl.Color) {
	gfx.FilledCircleColor(renderer, centerX, centerY, radius, color)
	gfx.AACircleColor(renderer, centerX, centerY, radius, color)
	if radius > 2 {
		gfx.AACircleColor(renderer, centerX, centerY, radius-1, color)
	}
}
