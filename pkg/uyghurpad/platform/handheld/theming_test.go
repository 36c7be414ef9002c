package handheld

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestThemeDefaults(t *testing.T) {
	t.Setenv(PaletteEnvVar, "")
	assert.Equal(t, defaultTheme, Theme(0))
}

func TestThemePaletteAndAccent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "palette.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"background": "#102030", "hint": "0xABCDEF"}`), 0o644))
	t.Setenv(PaletteEnvVar, path)

	theme := Theme(0x00FF00)
	assert.Equal(t, internal.HexToColor(0x102030), theme.BackgroundColor)
	assert.Equal(t, internal.HexToColor(0xABCDEF), theme.HintColor)
	assert.Equal(t, internal.HexToColor(0x00FF00), theme.AccentColor)
	assert.Equal(t, defaultTheme.TextColor, theme.TextColor)
}

func TestParseHexColorInvalid(t *testing.T) {
	c := parseHexColor("zz")
	assert.Equal(t, uint8(255), c.R)
	assert.Equal(t, uint8(0), c.G)
}
