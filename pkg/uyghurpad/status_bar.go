package uyghurpad

import (
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
)

// TimeFormat specifies 12-hour or 24-hour clock display
type TimeFormat int

const (
	TimeFormat24Hour TimeFormat = iota
	TimeFormat12Hour
)

// StatusBarOptions configures the right-hand pill of the status line.
type StatusBarOptions struct {
	ShowTime   bool
	TimeFormat TimeFormat
	// Icons are short texts shown before the time, at most three.
	Icons []string
}

func formatCurrentTime(format TimeFormat) string {
	now := time.Now()
	if format == TimeFormat12Hour {
		return now.Format("3:04 PM")
	}
	return now.Format("15:04")
}

// renderStatusBar draws the status message on the left and the pill on
// the right of rect.
func renderStatusBar(renderer *sdl.Renderer, font *ttf.Font, rect sdl.Rect, message string, options StatusBarOptions, labels *internal.TextureCache) {
	theme := internal.GetTheme()

	items := options.Icons
	if len(items) > 3 {
		items = items[:3]
	}
	if options.ShowTime {
		items = append(items[:len(items):len(items)], formatCurrentTime(options.TimeFormat))
	}

	var pillWidth int32
	if len(items) > 0 {
		pillWidth = renderStatusPill(renderer, font, rect, items)
	}

	msgRect := sdl.Rect{X: rect.X, Y: rect.Y, W: rect.W - pillWidth - internal.Scaled(12), H: rect.H}
	internal.RenderText(renderer, labels, message, font, msgRect, theme.HintColor, constants.TextAlignLeft)
}

// renderStatusPill draws items right to left inside a pill anchored at
// the right edge of rect and returns its width.
func renderStatusPill(renderer *sdl.Renderer, font *ttf.Font, rect sdl.Rect, items []string) int32 {
	theme := internal.GetTheme()
	innerPaddingX := internal.Scaled(10)
	iconSpacing := internal.Scaled(8)

	var contentWidth int32
	for i, it := range items {
		if i > 0 {
			contentWidth += iconSpacing
		}
		contentWidth += measureLabel(font, it)
	}

	pillHeight := internal.Min32(rect.H, int32(font.Height())+internal.Scaled(8))
	pillWidth := contentWidth + innerPaddingX*2
	pill := sdl.Rect{X: rect.X + rect.W - pillWidth, Y: rect.Y + (rect.H-pillHeight)/2, W: pillWidth, H: pillHeight}
	internal.DrawRoundedRect(renderer, &pill, pillHeight/2, theme.AccentColor)

	currentX := pill.X + pill.W - innerPaddingX
	for i := len(items) - 1; i >= 0; i-- {
		// Not cached: the clock changes every minute.
		w := measureLabel(font, items[i])
		currentX -= w
		internal.RenderText(renderer, nil, items[i], font, sdl.Rect{X: currentX, Y: pill.Y, W: w, H: pill.H}, theme.ButtonLabelColor, constants.TextAlignLeft)
		currentX -= iconSpacing
	}
	return pillWidth
}
