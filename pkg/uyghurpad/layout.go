package uyghurpad

import (
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
	"github.com/veandco/go-sdl2/sdl"
)

// Heights in screen points.
const (
	navHeight         = 48
	toolbarHeight     = 52
	statusHeight      = 32
	footerHeight      = 56
	keyboardRowHeight = 50
	keyboardHeader    = 36
	outerMargin       = 16
	maxKeyboardWidth  = 760
)

// screenLayout splits the drawable area into the page regions. All rects
// are in device pixels.
type screenLayout struct {
	nav      sdl.Rect
	toolbar  sdl.Rect
	content  sdl.Rect
	keyboard sdl.Rect
	status   sdl.Rect
	footer   sdl.Rect
}

type layoutParams struct {
	width, height int32
	keyboardRows  int
	keyboardOpen  bool
	mobile        bool
	showToolbar   bool
	showFooter    bool
}

func computeLayout(p layoutParams) screenLayout {
	margin := internal.Scaled(outerMargin)
	var l screenLayout

	y := int32(0)
	l.nav = sdl.Rect{X: 0, Y: y, W: p.width, H: internal.Scaled(navHeight)}
	y += l.nav.H

	if p.showToolbar {
		l.toolbar = sdl.Rect{X: margin, Y: y, W: p.width - 2*margin, H: internal.Scaled(toolbarHeight)}
		y += l.toolbar.H
	}

	bottom := p.height
	if p.showFooter {
		l.footer = sdl.Rect{X: 0, Y: bottom - internal.Scaled(footerHeight), W: p.width, H: internal.Scaled(footerHeight)}
		bottom = l.footer.Y
	}
	l.status = sdl.Rect{X: margin, Y: bottom - internal.Scaled(statusHeight), W: p.width - 2*margin, H: internal.Scaled(statusHeight)}
	bottom = l.status.Y

	if p.keyboardOpen && p.keyboardRows > 0 {
		h := internal.Scaled(keyboardHeader) + int32(p.keyboardRows)*internal.Scaled(keyboardRowHeight) + margin
		w := p.width - 2*margin
		if !p.mobile {
			w = internal.Min32(w, internal.Scaled(maxKeyboardWidth))
		}
		// Keep at least a third of the space for the text.
		h = internal.Min32(h, (bottom-y)*2/3)
		l.keyboard = sdl.Rect{X: (p.width - w) / 2, Y: bottom - h, W: w, H: h}
		bottom = l.keyboard.Y - margin/2
	}

	l.content = sdl.Rect{X: margin, Y: y + margin/2, W: p.width - 2*margin, H: internal.Max32(bottom-y-margin/2, 0)}
	return l
}
