package internal

import (
	"sync"

	"github.com/veandco/go-sdl2/sdl"
)

type Theme struct {
	HighlightColor       sdl.Color // Selected key, focused toolbar button
	AccentColor          sdl.Color // Pills, toolbar buttons, keyboard panel
	ButtonLabelColor     sdl.Color // Text inside pills and buttons
	TextColor            sdl.Color // Default text color
	HighlightedTextColor sdl.Color // Text on highlighted items
	HintColor            sdl.Color // Footer help text, status text
	BackgroundColor      sdl.Color // Screen background
	DisabledColor        sdl.Color

	// Editor surface. Text itself is always black on white so it matches
	// the exported image.
	EditorBorderColor sdl.Color
	EditorFocusColor  sdl.Color
	SelectionColor    sdl.Color
	CaretColor        sdl.Color
}

var (
	themeMu      sync.RWMutex
	currentTheme Theme
)

func SetTheme(theme Theme) {
	themeMu.Lock()
	defer themeMu.Unlock()
	currentTheme = theme
}

func GetTheme() Theme {
	themeMu.RLock()
	defer themeMu.RUnlock()
	return currentTheme
}
