package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "uyghurpad.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, 24, cfg.Editor.FontSize)
	assert.Equal(t, "horizontal", cfg.Editor.Orientation)
	assert.Equal(t, "zh-Hans", cfg.Language)
	assert.Equal(t, "desktop", cfg.Theme.Preset)
	assert.NotEmpty(t, cfg.Export.DownloadDir)
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
language = "en"

[editor]
font_size = 30
orientation = "Vertical"

[font]
path = "/fonts/NotoSerifOldUyghur-Regular.ttf"

[export]
download_dir = "/tmp/out"
scale = 2.0

[theme]
preset = "handheld"
accent_color = "#3498db"
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, 30, cfg.Editor.FontSize)
	assert.Equal(t, "vertical", cfg.Editor.Orientation)
	assert.Equal(t, "/fonts/NotoSerifOldUyghur-Regular.ttf", cfg.Font.Path)
	assert.Equal(t, "/tmp/out", cfg.Export.DownloadDir)
	assert.Equal(t, 2.0, cfg.Export.Scale)
	assert.Equal(t, "handheld", cfg.Theme.Preset)
	assert.Equal(t, int32(1024), cfg.Window.Width, "unset values keep defaults")
}

func TestFontSizeIsClamped(t *testing.T) {
	cfg, err := Load(writeConfig(t, "[editor]\nfont_size = 200\n"))
	require.NoError(t, err)
	assert.Equal(t, 72, cfg.Editor.FontSize)
}

func TestUnknownKeysRejected(t *testing.T) {
	_, err := Load(writeConfig(t, "[editor]\nfont_sise = 20\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestInvalidValues(t *testing.T) {
	for name, content := range map[string]string{
		"orientation": "[editor]\norientation = \"diagonal\"\n",
		"theme":       "[theme]\npreset = \"neon\"\n",
		"accent":      "[theme]\naccent_color = \"#zz0000\"\n",
		"window":      "[window]\nwidth = -1\n",
		"scale":       "[export]\nscale = -2.0\n",
	} {
		_, err := Load(writeConfig(t, content))
		assert.ErrorIs(t, err, ErrInvalidConfig, name)
	}
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	assert.Error(t, err)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("UYGHURPAD_FONT_SIZE", "40")
	t.Setenv("UYGHURPAD_LANGUAGE", "en")
	t.Setenv("UYGHURPAD_DOWNLOAD_DIR", "/srv/images")
	t.Setenv("UYGHURPAD_WINDOW_WIDTH", "640")
	t.Setenv("UYGHURPAD_SOMETHING_ELSE", "ignored")

	cfg, err := Load(writeConfig(t, "[editor]\nfont_size = 20\n"))
	require.NoError(t, err)
	assert.Equal(t, 40, cfg.Editor.FontSize)
	assert.Equal(t, "en", cfg.Language)
	assert.Equal(t, "/srv/images", cfg.Export.DownloadDir)
	assert.Equal(t, int32(640), cfg.Window.Width)
}

func TestEnvBadNumber(t *testing.T) {
	t.Setenv("UYGHURPAD_FONT_SIZE", "big")
	_, err := Load("")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestParseHexColor(t *testing.T) {
	v, err := ParseHexColor("#3498db")
	require.NoError(t, err)
	assert.Equal(t, uint32(0x3498db), v)

	_, err = ParseHexColor("123")
	assert.Error(t, err)
}
