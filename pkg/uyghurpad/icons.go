package uyghurpad

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
	"github.com/veandco/go-sdl2/img"
	"github.com/veandco/go-sdl2/sdl"
)

type iconName int

const (
	iconBackspace iconName = iota
	iconKeyboard
	iconCollapse
)

// Icons are single-color outlines; currentColor is replaced at load time.
var iconSources = map[iconName]string{
	iconBackspace: `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><path d="M21 4H8l-7 8 7 8h13a2 2 0 0 0 2-2V6a2 2 0 0 0-2-2z"/><line x1="18" y1="9" x2="12" y2="15"/><line x1="12" y1="9" x2="18" y2="15"/></svg>`,
	iconKeyboard:  `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><rect x="2" y="6" width="20" height="12" rx="2"/><line x1="6" y1="10" x2="6" y2="10"/><line x1="10" y1="10" x2="10" y2="10"/><line x1="14" y1="10" x2="14" y2="10"/><line x1="18" y1="10" x2="18" y2="10"/><line x1="7" y1="14" x2="17" y2="14"/></svg>`,
	iconCollapse:  `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24" fill="none" stroke="currentColor" stroke-width="2" stroke-linecap="round" stroke-linejoin="round"><polyline points="6 9 12 15 18 9"/></svg>`,
}

// iconSet caches icon textures per name and size.
type iconSet struct {
	textures map[string]*sdl.Texture
}

func newIconSet() *iconSet {
	return &iconSet{textures: make(map[string]*sdl.Texture)}
}

func (s *iconSet) get(renderer *sdl.Renderer, name iconName, size int32, color sdl.Color) *sdl.Texture {
	key := fmt.Sprintf("%d/%d/%02x%02x%02x", name, size, color.R, color.G, color.B)
	if t, ok := s.textures[key]; ok {
		return t
	}

	hex := fmt.Sprintf("#%02x%02x%02x", color.R, color.G, color.B)
	svg := strings.ReplaceAll(iconSources[name], "currentColor", hex)
	t, err := loadSVGTexture(renderer, []byte(svg), size, size)
	if err != nil {
		GetLogger().Debug("Failed to load icon", "icon", name, "error", err)
		return nil
	}
	s.textures[key] = t
	return t
}

func (s *iconSet) draw(renderer *sdl.Renderer, name iconName, rect sdl.Rect, size int32, color sdl.Color) {
	t := s.get(renderer, name, size, color)
	if t == nil {
		return
	}
	dst := sdl.Rect{X: rect.X + (rect.W-size)/2, Y: rect.Y + (rect.H-size)/2, W: size, H: size}
	renderer.Copy(t, nil, &dst)
}

func (s *iconSet) destroy() {
	for k, t := range s.textures {
		t.Destroy()
		delete(s.textures, k)
	}
}

// loadSVGTexture rasterizes an SVG and creates an SDL texture
func loadSVGTexture(renderer *sdl.Renderer, svgData []byte, width, height int32) (*sdl.Texture, error) {
	icon, err := oksvg.ReadIconStream(bytes.NewReader(svgData))
	if err != nil {
		return nil, fmt.Errorf("failed to parse SVG: %w", err)
	}

	if width == 0 || height == 0 {
		width = int32(icon.ViewBox.W)
		height = int32(icon.ViewBox.H)
	}

	rgba := image.NewRGBA(image.Rect(0, 0, int(width), int(height)))
	scanner := rasterx.NewScannerGV(int(width), int(height), rgba, rgba.Bounds())
	raster := rasterx.NewDasher(int(width), int(height), scanner)

	icon.SetTarget(0, 0, float64(width), float64(height))
	icon.Draw(raster, 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, rgba); err != nil {
		return nil, fmt.Errorf("failed to encode SVG as PNG: %w", err)
	}
	return textureFromPNG(renderer, buf.Bytes())
}

// textureFromPNG decodes PNG bytes into a texture through SDL_image.
func textureFromPNG(renderer *sdl.Renderer, data []byte) (*sdl.Texture, error) {
	rw, err := sdl.RWFromMem(data)
	if err != nil {
		return nil, fmt.Errorf("failed to create RWops from image data: %w", err)
	}
	texture, err := img.LoadTextureRW(renderer, rw, true)
	if err != nil {
		return nil, fmt.Errorf("failed to load texture from image data: %w", err)
	}
	texture.SetBlendMode(sdl.BLENDMODE_BLEND)
	return texture, nil
}
