package internal

import (
	"fmt"
	"strings"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/rivo/uniseg"
	"github.com/veandco/go-sdl2/gfx"
	"github.com/veandco/go-sdl2/sdl"
	"github.com/veandco/go-sdl2/ttf"
)

// TextureCache holds rendered label textures between frames. Labels only
// change when the language or font changes, so Clear is called then.
type TextureCache struct {
	textures map[string]*sdl.Texture
}

func NewTextureCache() *TextureCache {
	return &TextureCache{textures: make(map[string]*sdl.Texture)}
}

func (c *TextureCache) Get(key string) *sdl.Texture {
	return c.textures[key]
}

func (c *TextureCache) Set(key string, texture *sdl.Texture) {
	if old, ok := c.textures[key]; ok && old != texture {
		old.Destroy()
	}
	c.textures[key] = texture
}

func (c *TextureCache) Clear() {
	for k, t := range c.textures {
		t.Destroy()
		delete(c.textures, k)
	}
}

func textCacheKey(text string, font *ttf.Font, color sdl.Color) string {
	return fmt.Sprintf("%p|%02x%02x%02x%02x|%s", font, color.R, color.G, color.B, color.A, text)
}

// TextTexture renders a single line, reusing the cached texture when
// possible. The returned texture is owned by the cache.
func TextTexture(renderer *sdl.Renderer, cache *TextureCache, text string, font *ttf.Font, color sdl.Color) (*sdl.Texture, int32, int32) {
	if text == "" || font == nil {
		return nil, 0, 0
	}

	key := textCacheKey(text, font, color)
	if cache != nil {
		if t := cache.Get(key); t != nil {
			_, _, w, h, err := t.Query()
			if err == nil {
				return t, w, h
			}
		}
	}

	surface, err := font.RenderUTF8Blended(text, color)
	if err != nil {
		GetInternalLogger().Debug("Failed to render text", "text", text, "error", err)
		return nil, 0, 0
	}
	defer surface.Free()

	texture, err := renderer.CreateTextureFromSurface(surface)
	if err != nil {
		return nil, 0, 0
	}
	if cache != nil {
		cache.Set(key, texture)
	}
	return texture, surface.W, surface.H
}

// RenderText draws one line of text aligned within rect and vertically
// centred. It returns the drawn width.
func RenderText(renderer *sdl.Renderer, cache *TextureCache, text string, font *ttf.Font, rect sdl.Rect, color sdl.Color, align constants.TextAlign) int32 {
	texture, w, h := TextTexture(renderer, cache, text, font, color)
	if texture == nil {
		return 0
	}
	if cache == nil {
		defer texture.Destroy()
	}

	dst := sdl.Rect{Y: rect.Y + (rect.H-h)/2, W: w, H: h}
	switch align {
	case constants.TextAlignCenter:
		dst.X = rect.X + (rect.W-w)/2
	case constants.TextAlignRight:
		dst.X = rect.X + rect.W - w
	default:
		dst.X = rect.X
	}

	renderer.Copy(texture, nil, &dst)
	return w
}

// WrapText breaks text into lines no wider than maxWidth. Lines break at
// spaces when there are any and between grapheme clusters otherwise, which
// keeps Chinese paragraphs wrapping cleanly.
func WrapText(text string, font *ttf.Font, maxWidth int32) []string {
	normalized := strings.ReplaceAll(strings.ReplaceAll(text, "\r\n", "\n"), "\r", "\n")

	fits := func(s string) bool {
		w, _, err := font.SizeUTF8(s)
		return err != nil || int32(w) <= maxWidth
	}

	var lines []string
	for _, paragraph := range strings.Split(normalized, "\n") {
		if paragraph == "" {
			lines = append(lines, "")
			continue
		}

		var current strings.Builder
		gr := uniseg.NewGraphemes(paragraph)
		lastSpace := -1
		for gr.Next() {
			cluster := gr.Str()
			candidate := current.String() + cluster
			if fits(candidate) || current.Len() == 0 {
				if cluster == " " {
					lastSpace = current.Len()
				}
				current.WriteString(cluster)
				continue
			}

			line := current.String()
			rest := cluster
			if lastSpace > 0 {
				rest = strings.TrimLeft(line[lastSpace:], " ") + cluster
				line = line[:lastSpace]
			}
			lines = append(lines, strings.TrimRight(line, " "))

			current.Reset()
			lastSpace = -1
			if rest != " " {
				current.WriteString(rest)
			}
		}
		if current.Len() > 0 {
			lines = append(lines, current.String())
		}
	}
	return lines
}

// RenderMultilineText draws wrapped text starting at startY and returns the
// y coordinate below the last line.
func RenderMultilineText(renderer *sdl.Renderer, text string, font *ttf.Font, maxWidth int32, x, startY int32, color sdl.Color, alignment ...constants.TextAlign) int32 {
	textAlign := constants.TextAlignLeft
	if len(alignment) > 0 {
		textAlign = alignment[0]
	}

	lineHeight := int32(font.Height())
	lineSpacing := lineHeight / 4
	currentY := startY

	for _, line := range WrapText(text, font, maxWidth) {
		if line != "" {
			RenderText(renderer, nil, line, font, sdl.Rect{X: x, Y: currentY, W: maxWidth, H: lineHeight}, color, textAlign)
		}
		currentY += lineHeight + lineSpacing
	}
	return currentY
}

func DrawRoundedRect(renderer *sdl.Renderer, rect *sdl.Rect, radius int32, color sdl.Color) {
	if radius > rect.H/2 {
		radius = rect.H / 2
	}
	if radius > rect.W/2 {
		radius = rect.W / 2
	}
	if radius <= 0 {
		renderer.SetDrawColor(color.R, color.G, color.B, color.A)
		renderer.FillRect(rect)
		return
	}

	gfx.BoxColor(renderer, rect.X+radius, rect.Y, rect.X+rect.W-radius, rect.Y+rect.H, color)
	gfx.BoxColor(renderer, rect.X, rect.Y+radius, rect.X+radius, rect.Y+rect.H-radius, color)
	gfx.BoxColor(renderer, rect.X+rect.W-radius, rect.Y+radius, rect.X+rect.W, rect.Y+rect.H-radius, color)

	drawRoundedCorner(renderer, rect.X+radius, rect.Y+radius, radius, color)
	drawRoundedCorner(renderer, rect.X+rect.W-radius, rect.Y+radius, radius, color)
	drawRoundedCorner(renderer, rect.X+radius, rect.Y+rect.H-radius, radius, color)
	drawRoundedCorner(renderer, rect.X+rect.W-radius, rect.Y+rect.H-radius, radius, color)
}

func drawRoundedCorner(renderer *sdl.Renderer, centerX, centerY, radius int32, color sdl.Color) {
	gfx.FilledCircleColor(renderer, centerX, centerY, radius, color)
	gfx.AACircleColor(renderer, centerX, centerY, radius, color)

	// Extra AA rings hide the stair-stepping on larger radii.
	if radius > 15 {
		gfx.AACircleColor(renderer, centerX, centerY, radius-1, color)
		gfx.AACircleColor(renderer, centerX, centerY, radius-2, color)
	} else if radius > 2 {
		gfx.AACircleColor(renderer, centerX, centerY, radius-1, color)
	}
}

// DrawRectOutline draws a rectangle border of the given thickness.
func DrawRectOutline(renderer *sdl.Renderer, rect sdl.Rect, thickness int32, color sdl.Color) {
	renderer.SetDrawColor(color.R, color.G, color.B, color.A)
	for i := int32(0); i < thickness; i++ {
		renderer.DrawRect(&sdl.Rect{X: rect.X + i, Y: rect.Y + i, W: rect.W - 2*i, H: rect.H - 2*i})
	}
}

// DrawSmoothScrollbar renders a scrollbar with anti-aliased rounded ends
func DrawSmoothScrollbar(renderer *sdl.Renderer, x, y, width, height int32, color sdl.Color) {
	if width <= 0 || height <= 0 {
		return
	}

	radius := width / 2
	if height < width {
		radius = height / 2
	}

	DrawRoundedRect(renderer, &sdl.Rect{X: x, Y: y, W: width, H: height}, radius, color)
}

func PointInRect(x, y int32, r sdl.Rect) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func Min32(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func Max32(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func HexToColor(hex uint32) sdl.Color {
	r := uint8((hex >> 16) & 0xFF)
	g := uint8((hex >> 8) & 0xFF)
	b := uint8(hex & 0xFF)

	return sdl.Color{R: r, G: g, B: b, A: 255}
}

// RGBToColor converts the 0xRRGGBB value produced by the config layer.
func RGBToColor(rgb uint32, alpha uint8) sdl.Color {
	c := HexToColor(rgb)
	c.A = alpha
	return c
}
