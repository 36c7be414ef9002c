package uyghurpad

import (
	"strings"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/editor"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
)

// pageView renders the static About and Disclaimer pages.
type pageView struct {
	scroll        int32
	contentHeight int32
	viewHeight    int32
}

func pageText(p editor.Page) (title, body string) {
	switch p {
	case editor.PageAbout:
		return i18n.GetString(i18n.AboutTitle), i18n.GetString(i18n.AboutBody)
	case editor.PageDisclaimer:
		return i18n.GetString(i18n.DisclaimerTitle), i18n.GetString(i18n.DisclaimerBody)
	}
	return "", ""
}

func (pv *pageView) reset() {
	pv.scroll = 0
}

func (pv *pageView) scrollBy(delta int32) {
	limit := internal.Max32(pv.contentHeight-pv.viewHeight, 0)
	pv.scroll = internal.Max32(0, internal.Min32(pv.scroll+delta, limit))
}

func (pv *pageView) render(renderer *sdl.Renderer, page editor.Page, rect sdl.Rect) {
	theme := internal.GetTheme()
	title, body := pageText(page)
	pad := internal.Scaled(24)

	renderer.SetClipRect(&rect)
	defer renderer.SetClipRect(nil)

	width := internal.Min32(rect.W-2*pad, internal.Scaled(720))
	x := rect.X + (rect.W-width)/2
	y := rect.Y + pad - pv.scroll

	titleH := int32(internal.Fonts.LargeFont.Height())
	internal.RenderText(renderer, nil, title, internal.Fonts.LargeFont, sdl.Rect{X: x, Y: y, W: width, H: titleH}, theme.TextColor, constants.TextAlignCenter)
	y += titleH + pad

	end := internal.RenderMultilineText(renderer, strings.TrimSpace(body), internal.Fonts.MediumFont, width, x, y, theme.TextColor, constants.TextAlignLeft)

	pv.contentHeight = end + pv.scroll - rect.Y + pad
	pv.viewHeight = rect.H
	if pv.contentHeight > pv.viewHeight {
		barH := rect.H * rect.H / pv.contentHeight
		barY := rect.Y + (rect.H-barH)*pv.scroll/internal.Max32(pv.contentHeight-pv.viewHeight, 1)
		internal.DrawSmoothScrollbar(renderer, rect.X+rect.W-internal.Scaled(6), barY, internal.Scaled(4), barH, theme.HintColor)
	}
}
