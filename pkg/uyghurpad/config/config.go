// Package config loads uyghurpad settings. Values are layered: built-in
// defaults, then an optional TOML file, then UYGHURPAD_* environment
// variables. Validate normalizes and checks the merged result.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/editor"
)

const EnvPrefix = "UYGHURPAD_"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Window           WindowConfig `toml:"window"`
	Editor           EditorConfig `toml:"editor"`
	Font             FontConfig   `toml:"font"`
	Export           ExportConfig `toml:"export"`
	Theme            ThemeConfig  `toml:"theme"`
	Log              LogConfig    `toml:"log"`
	Language         string       `toml:"language"`
	InputMappingPath string       `toml:"input_mapping"`
}

type WindowConfig struct {
	Title      string `toml:"title"`
	Width      int32  `toml:"width"`
	Height     int32  `toml:"height"`
	Fullscreen bool   `toml:"fullscreen"`
}

type EditorConfig struct {
	FontSize    int    `toml:"font_size"`
	Orientation string `toml:"orientation"`
	InitialText string `toml:"initial_text"`
}

type FontConfig struct {
	// Path to the Old Uyghur font file; searched on the system when empty.
	Path      string   `toml:"path"`
	Family    string   `toml:"family"`
	Fallbacks []string `toml:"fallbacks"`
	// UIPath is the font used for buttons and status text.
	UIPath string `toml:"ui_path"`
}

type ExportConfig struct {
	DownloadDir string `toml:"download_dir"`
	// Scale overrides the detected pixel ratio when positive.
	Scale float64 `toml:"scale"`
}

type ThemeConfig struct {
	Preset      string `toml:"preset"`
	AccentColor string `toml:"accent_color"`
}

type LogConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

func Default() *Config {
	downloads := "downloads"
	if home, err := os.UserHomeDir(); err == nil {
		downloads = filepath.Join(home, "Downloads")
	}

	return &Config{
		Window: WindowConfig{
			Width:  1024,
			Height: 768,
		},
		Editor: EditorConfig{
			FontSize:    editor.DefaultFontSize,
			Orientation: "horizontal",
		},
		Font: FontConfig{
			Family:    "NotoSerifOldUyghur-Regular.ttf",
			Fallbacks: []string{"NotoSerif-Regular.ttf", "DejaVuSerif.ttf"},
		},
		Export: ExportConfig{
			DownloadDir: downloads,
		},
		Theme: ThemeConfig{
			Preset: "desktop",
		},
		Log: LogConfig{
			Level: "info",
			File:  "uyghurpad.log",
		},
		Language: "zh-Hans",
	}
}

// Load builds a config from defaults, the TOML file at path (skipped when
// empty) and the environment, then validates it.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.ApplyEnv(EnvPrefix); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalidConfig, path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate normalizes values that have a safe nearest choice and rejects the rest.
func (c *Config) Validate() error {
	c.Editor.FontSize = editor.ClampFontSize(c.Editor.FontSize)

	c.Editor.Orientation = strings.ToLower(strings.TrimSpace(c.Editor.Orientation))
	switch c.Editor.Orientation {
	case "", "horizontal":
		c.Editor.Orientation = "horizontal"
	case "vertical":
	default:
		return fmt.Errorf("%w: orientation %q", ErrInvalidConfig, c.Editor.Orientation)
	}

	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("%w: window size %dx%d", ErrInvalidConfig, c.Window.Width, c.Window.Height)
	}

	if c.Language != "" {
		if _, err := language.Parse(c.Language); err != nil {
			return fmt.Errorf("%w: language %q: %v", ErrInvalidConfig, c.Language, err)
		}
	}

	switch c.Theme.Preset {
	case "", "desktop":
		c.Theme.Preset = "desktop"
	case "handheld":
	default:
		return fmt.Errorf("%w: theme preset %q", ErrInvalidConfig, c.Theme.Preset)
	}

	if c.Theme.AccentColor != "" {
		if _, err := ParseHexColor(c.Theme.AccentColor); err != nil {
			return fmt.Errorf("%w: accent color: %v", ErrInvalidConfig, err)
		}
	}

	if c.Export.Scale < 0 {
		return fmt.Errorf("%w: export scale %v", ErrInvalidConfig, c.Export.Scale)
	}
	if c.Export.DownloadDir == "" {
		return fmt.Errorf("%w: download_dir is empty", ErrInvalidConfig)
	}

	return nil
}

// ParseHexColor parses "#RRGGBB" or "RRGGBB" into a 0xRRGGBB value.
func ParseHexColor(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return 0, fmt.Errorf("want 6 hex digits, got %q", s)
	}
	var v uint32
	for _, r := range s {
		v <<= 4
		switch {
		case r >= '0' && r <= '9':
			v |= uint32(r - '0')
		case r >= 'a' && r <= 'f':
			v |= uint32(r-'a') + 10
		case r >= 'A' && r <= 'F':
			v |= uint32(r-'A') + 10
		default:
			return 0, fmt.Errorf("bad hex digit %q", r)
		}
	}
	return v, nil
}
