package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

type envSetter func(c *Config, value string) error

// envMapping maps variable names, without prefix, to config fields.
var envMapping = map[string]envSetter{
	"FONT_SIZE": func(c *Config, v string) error {
		n, err := strconv.Atoi(v)
		if err != nil {
			return err
		}
		c.Editor.FontSize = n
		return nil
	},
	"ORIENTATION":   func(c *Config, v string) error { c.Editor.Orientation = v; return nil },
	"FONT_PATH":     func(c *Config, v string) error { c.Font.Path = v; return nil },
	"UI_FONT_PATH":  func(c *Config, v string) error { c.Font.UIPath = v; return nil },
	"LANGUAGE":      func(c *Config, v string) error { c.Language = v; return nil },
	"LOG_LEVEL":     func(c *Config, v string) error { c.Log.Level = v; return nil },
	"LOG_FILE":      func(c *Config, v string) error { c.Log.File = v; return nil },
	"DOWNLOAD_DIR":  func(c *Config, v string) error { c.Export.DownloadDir = v; return nil },
	"THEME":         func(c *Config, v string) error { c.Theme.Preset = v; return nil },
	"ACCENT_COLOR":  func(c *Config, v string) error { c.Theme.AccentColor = v; return nil },
	"INPUT_MAPPING": func(c *Config, v string) error { c.InputMappingPath = v; return nil },
	"WINDOW_WIDTH": func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return err
		}
		c.Window.Width = int32(n)
		return nil
	},
	"WINDOW_HEIGHT": func(c *Config, v string) error {
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return err
		}
		c.Window.Height = int32(n)
		return nil
	},
	"FULLSCREEN": func(c *Config, v string) error {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return err
		}
		c.Window.Fullscreen = b
		return nil
	},
	"SCALE": func(c *Config, v string) error {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return err
		}
		c.Export.Scale = f
		return nil
	},
}

// ApplyEnv overrides fields from environment variables named prefix+KEY.
// Unknown prefixed variables are ignored; empty values count as set.
func (c *Config) ApplyEnv(prefix string) error {
	for _, env := range os.Environ() {
		name, value, ok := strings.Cut(env, "=")
		if !ok || !strings.HasPrefix(name, prefix) {
			continue
		}
		set, known := envMapping[strings.TrimPrefix(name, prefix)]
		if !known {
			continue
		}
		if err := set(c, value); err != nil {
			return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, name, value, err)
		}
	}
	return nil
}
