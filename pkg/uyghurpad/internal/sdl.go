package internal

import (
	"fmt"

	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

var window *Window

type InitOptions struct {
	Title            string
	Width, Height    int32
	Fullscreen       bool
	UIFontPath       string
	FontSizes        FontSizes
	InputMappingPath string
}

// Init brings up SDL, the window, UI fonts and controller input. Call
// SDLCleanup when done, even after a failed Init.
func Init(opts InitOptions) error {
	sdl.SetHint(sdl.HINT_VIDEO_HIGHDPI_DISABLED, "0")
	sdl.SetHint(sdl.HINT_RENDER_SCALE_QUALITY, "1")

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_GAMECONTROLLER | sdl.INIT_JOYSTICK); err != nil {
		return fmt.Errorf("sdl init: %w", err)
	}
	if err := ttf.Init(); err != nil {
		return fmt.Errorf("ttf init: %w", err)
	}
	img.Init(img.INIT_PNG)

	w, err := initWindow(opts.Title, opts.Width, opts.Height, opts.Fullscreen)
	if err != nil {
		return err
	}
	window = w

	sizes := opts.FontSizes
	if sizes == (FontSizes{}) {
		sizes = DefaultFontSizes
	}
	if err := initFonts(sizes, opts.UIFontPath); err != nil {
		return fmt.Errorf("ui fonts: %w", err)
	}

	initInputProcessor(opts.InputMappingPath)
	sdl.StartTextInput()

	return nil
}

func SDLCleanup() {
	sdl.StopTextInput()
	if globalInputProcessor != nil {
		globalInputProcessor.closeAll()
	}
	closeFonts()
	if window != nil {
		window.closeWindow()
		window = nil
	}
	img.Quit()
	ttf.Quit()
	sdl.Quit()
	CloseLogger()
}
