package internal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/veandco/go-sdl2/sdl"
)

type Window struct {
	Window   *sdl.Window
	Renderer *sdl.Renderer
	Title    string
}

func initWindow(title string, width, height int32, fullscreen bool) (*Window, error) {
	x, y := int32(sdl.WINDOWPOS_CENTERED), int32(sdl.WINDOWPOS_CENTERED)

	if constants.IsDevMode() {
		x, y = 50, 50
		width = devDimension("WINDOW_WIDTH", width)
		height = devDimension("WINDOW_HEIGHT", height)
	}

	windowFlags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if fullscreen {
		windowFlags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	GetInternalLogger().Debug("Initializing SDL Window", "width", width, "height", height, "fullscreen", fullscreen)

	window, err := sdl.CreateWindow(title, x, y, width, height, windowFlags)
	if err != nil {
		return nil, fmt.Errorf("create window: %w", err)
	}

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED|sdl.RENDERER_PRESENTVSYNC|sdl.RENDERER_TARGETTEXTURE)
	if err != nil {
		GetInternalLogger().Warn("Accelerated renderer unavailable, falling back to software", "error", err)
		renderer, err = sdl.CreateRenderer(window, -1, sdl.RENDERER_SOFTWARE)
		if err != nil {
			window.Destroy()
			return nil, fmt.Errorf("create renderer: %w", err)
		}
	}
	renderer.SetDrawBlendMode(sdl.BLENDMODE_BLEND)

	return &Window{
		Window:   window,
		Renderer: renderer,
		Title:    title,
	}, nil
}

func devDimension(envVar string, fallback int32) int32 {
	v := os.Getenv(envVar)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 32)
	if err != nil || n <= 0 {
		GetInternalLogger().Warn("Invalid window dimension; using configured value", "var", envVar, "value", v, "error", err)
		return fallback
	}
	return int32(n)
}

func (window *Window) closeWindow() {
	window.Renderer.Destroy()
	window.Window.Destroy()
}

func GetWindow() *Window {
	return window
}

// GetWidth returns the window width in screen points, the unit layout
// breakpoints are expressed in.
func (window *Window) GetWidth() int32 {
	w, _ := window.Window.GetSize()
	return w
}

func (window *Window) GetHeight() int32 {
	_, h := window.Window.GetSize()
	return h
}

// OutputSize returns the drawable size in device pixels.
func (window *Window) OutputSize() (int32, int32) {
	w, h, err := window.Renderer.GetOutputSize()
	if err != nil {
		return window.Window.GetSize()
	}
	return w, h
}

// PixelRatio is the number of device pixels per screen point.
func (window *Window) PixelRatio() float64 {
	pw, _ := window.OutputSize()
	w := window.GetWidth()
	if w <= 0 || pw <= 0 {
		return 1
	}
	return float64(pw) / float64(w)
}

func (window *Window) SetTitle(title string) {
	if title != window.Title {
		window.Window.SetTitle(title)
		window.Title = title
	}
}

// RenderBackground clears the frame with the theme background.
func (window *Window) RenderBackground() {
	bg := GetTheme().BackgroundColor
	window.Renderer.SetDrawColor(bg.R, bg.G, bg.B, bg.A)
	window.Renderer.Clear()
}
