package uyghurpad

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gogpu/gg"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/config"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/platform/desktop"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/platform/handheld"
)

// Init sets up logging, the theme, translations, SDL and the window.
// Must be called before Run. Close must be called afterwards, also when
// Init fails.
func Init(cfg *config.Config) error {
	internal.SetLogFile(cfg.Log.File)
	internal.SetRawLogLevel(cfg.Log.Level)
	if os.Getenv(constants.DebugEnvVar) != "" {
		internal.SetLogLevel(slog.LevelDebug)
		internal.SetInternalLogLevel(slog.LevelDebug)
	}
	gg.SetLogger(internal.GetLogger().With("component", "raster"))

	internal.SetTheme(themeFor(cfg))

	if err := i18n.Init(cfg.Language); err != nil {
		return fmt.Errorf("translations: %w", err)
	}

	title := cfg.Window.Title
	if title == "" {
		title = i18n.GetString(i18n.AppTitle)
	}

	return internal.Init(internal.InitOptions{
		Title:            title,
		Width:            cfg.Window.Width,
		Height:           cfg.Window.Height,
		Fullscreen:       cfg.Window.Fullscreen,
		UIFontPath:       cfg.Font.UIPath,
		InputMappingPath: cfg.InputMappingPath,
	})
}

// Close tidies up SDL and the UI. Must be called after all UI functions!
func Close() {
	internal.SDLCleanup()
}

func themeFor(cfg *config.Config) internal.Theme {
	var accent uint32
	if cfg.Theme.AccentColor != "" {
		// Validated by config.Load.
		accent, _ = config.ParseHexColor(cfg.Theme.AccentColor)
	}
	if cfg.Theme.Preset == "handheld" {
		return handheld.Theme(accent)
	}
	return desktop.Theme(accent)
}

func GetLogger() *slog.Logger {
	return internal.GetLogger()
}

func GetWindow() *internal.Window {
	return internal.GetWindow()
}
