package uyghurpad

import (
	"context"
	"time"

	"github.com/veandco/go-sdl2/sdl"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/config"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/constants"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/editor"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/export"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/internal"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/keyboard"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/script"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/typeface"
)

// keyLabelPoints is the size of the script font on keyboard keys.
const keyLabelPoints = 22

type app struct {
	cfg    *config.Config
	window *internal.Window
	shell  *editor.Shell
	kb     *keyboard.Keyboard

	editorView *editorView
	kbView     *keyboardView
	pages      pageView
	toolbar    toolbar
	icons      *iconSet
	labels     *internal.TextureCache
	repeater   *directionRepeater

	font     *typeface.Promise
	fontName string

	controllerSeen bool
	quit           bool
}

// Run opens the editor and processes events until the window is closed or
// ctx is cancelled.
func Run(ctx context.Context, cfg *config.Config) error {
	window := internal.GetWindow()
	if window == nil {
		return ErrNotInitialized
	}

	a := newApp(ctx, cfg, window)
	defer a.destroy()

	GetLogger().Info("Editor started",
		"orientation", a.shell.Orientation().String(),
		"mobile", a.shell.IsMobile(),
		"language", i18n.Language().String())

	for !a.quit {
		select {
		case <-ctx.Done():
			GetLogger().Info("Editor stopped", "reason", ctx.Err())
			return nil
		default:
		}

		a.pollFont()
		a.handleEvents()
		a.handleDirectionalRepeats()
		a.render()
		sdl.Delay(16)
	}
	GetLogger().Info("Editor closed")
	return nil
}

func newApp(ctx context.Context, cfg *config.Config, window *internal.Window) *app {
	orientation := raster.Horizontal
	if cfg.Editor.Orientation == "vertical" {
		orientation = raster.Vertical
	}

	a := &app{
		cfg:        cfg,
		window:     window,
		editorView: newEditorView(),
		icons:      newIconSet(),
		labels:     internal.NewTextureCache(),
		repeater:   newDirectionRepeater(),
	}
	a.shell = editor.NewShell(editor.Options{
		Text:         cfg.Editor.InitialText,
		FontSize:     cfg.Editor.FontSize,
		Orientation:  orientation,
		Width:        int(window.GetWidth()),
		Scale:        a.scale(),
		KeyboardOpen: true,
		Logger:       GetLogger().With("component", "editor"),
	})
	a.kb = keyboard.New(a.keyboardVariant(), a.shell.Press)
	a.kbView = newKeyboardView(a.kb)
	a.shell.Subscribe(a.onChange)

	a.font = typeface.Resolve(ctx, typeface.Request{
		Path:      cfg.Font.Path,
		Family:    cfg.Font.Family,
		Fallbacks: cfg.Font.Fallbacks,
		Logger:    GetLogger().With("component", "typeface"),
	})
	a.updateTitle()
	return a
}

func (a *app) scale() float64 {
	if a.cfg.Export.Scale > 0 {
		return a.cfg.Export.Scale
	}
	return a.window.PixelRatio()
}

func (a *app) keyboardVariant() keyboard.Variant {
	if a.shell.IsMobile() {
		return keyboard.Mobile
	}
	return keyboard.Desktop
}

func (a *app) onChange(c editor.Change) {
	switch c {
	case editor.ContentChanged:
		a.editorView.resetCaretBlink()
	case editor.OrientationChanged:
		a.editorView.scroll = 0
		a.editorView.invalidate()
		a.updateTitle()
	case editor.PageChanged:
		a.pages.reset()
		a.repeater.release(a.repeater.held)
	case editor.LayoutChanged:
		if v := a.keyboardVariant(); v != a.kb.Variant() {
			a.kb = keyboard.New(v, a.shell.Press)
			a.kbView.setModel(a.kb)
		}
	}
}

func (a *app) updateTitle() {
	if a.cfg.Window.Title != "" {
		return
	}
	if a.shell.Orientation() == raster.Vertical {
		a.window.SetTitle(i18n.GetString(i18n.AppTitleVertical))
		return
	}
	a.window.SetTitle(i18n.GetString(i18n.AppTitle))
}

// pollFont finishes startup once the script font has been resolved.
func (a *app) pollFont() {
	if a.font == nil {
		return
	}
	select {
	case <-a.font.Ready():
	default:
		return
	}
	res, _ := a.font.Result()
	a.font = nil

	rasterizer := raster.New(res.Source)
	a.editorView.setRasterizer(rasterizer)
	a.shell.SetExporter(export.New(
		rasterizer,
		&export.SystemClipboard{},
		export.DirDownloader{Dir: a.cfg.Export.DownloadDir},
		a.shell.ReportExport,
		export.WithLogger(GetLogger().With("component", "export")),
	))
	a.shell.MarkFontReady(res.Fallback)

	internal.SetScriptFont(res.Path, keyLabelPoints)
	a.labels.Clear()
	a.fontName = res.Name

	if res.Fallback {
		GetLogger().Warn("Using fallback font", "font", res.Name, "error", res.Err)
	} else {
		GetLogger().Info("Font ready", "font", res.Name, "path", res.Path)
	}
}

func (a *app) handleEvents() {
	processor := internal.GetInputProcessor()

	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch e := event.(type) {
		case *sdl.QuitEvent:
			a.quit = true

		case *sdl.WindowEvent:
			if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED || e.Event == sdl.WINDOWEVENT_RESIZED {
				a.shell.SetScale(a.scale())
				a.shell.Resize(int(a.window.GetWidth()))
				a.editorView.invalidate()
				a.labels.Clear()
			}

		case *sdl.TextInputEvent:
			if modifierHeld(sdl.KMOD_CTRL) {
				continue
			}
			a.shell.TypeText(e.GetText())

		case *sdl.KeyboardEvent:
			if inputEvent := processor.ProcessSDLEvent(e); inputEvent != nil {
				a.handleInputEvent(inputEvent)
				continue
			}
			if e.Type == sdl.KEYDOWN {
				a.handleKeyDown(e)
			}

		case *sdl.MouseButtonEvent:
			x, y := a.toPixels(e.X, e.Y)
			if e.Button != sdl.BUTTON_LEFT {
				continue
			}
			if e.Type == sdl.MOUSEBUTTONDOWN {
				a.handleClick(x, y)
			} else {
				a.editorView.pointerUp()
			}

		case *sdl.MouseMotionEvent:
			x, y := a.toPixels(e.X, e.Y)
			a.editorView.pointerMove(a.shell, x, y)

		case *sdl.MouseWheelEvent:
			if a.shell.Page() != editor.PageEditor {
				a.pages.scrollBy(-e.Y * internal.Scaled(40))
			}

		case *sdl.ControllerDeviceEvent, *sdl.ControllerButtonEvent, *sdl.ControllerAxisEvent,
			*sdl.JoyButtonEvent, *sdl.JoyAxisEvent, *sdl.JoyHatEvent:
			a.controllerSeen = true
			if inputEvent := processor.ProcessSDLEvent(event); inputEvent != nil {
				a.handleInputEvent(inputEvent)
			}
		}

		for queued := processor.Next(); queued != nil; queued = processor.Next() {
			a.handleInputEvent(queued)
		}
	}
}

func (a *app) toPixels(x, y int32) (int32, int32) {
	ratio := a.window.PixelRatio()
	return int32(float64(x) * ratio), int32(float64(y) * ratio)
}

func (a *app) handleInputEvent(inputEvent *internal.Event) {
	if !inputEvent.Pressed {
		if isDirectionalButton(inputEvent.Button) {
			a.repeater.release(inputEvent.Button)
		}
		return
	}

	button := inputEvent.Button
	if isDirectionalButton(button) {
		a.repeater.press(button)
		a.direction(button)
		return
	}

	if button == constants.VirtualButtonMenu {
		a.shell.SetPage((a.shell.Page() + 1) % (editor.PageDisclaimer + 1))
		return
	}

	if a.shell.Page() != editor.PageEditor {
		if button == constants.VirtualButtonB {
			a.shell.SetPage(editor.PageEditor)
		}
		return
	}

	surface := a.shell.Surface()
	switch button {
	case constants.VirtualButtonA:
		if !surface.Focused() {
			surface.Focus()
			a.editorView.resetCaretBlink()
		}
		if a.shell.KeyboardOpen() {
			a.kbView.flash(a.kb.Selected())
			a.kb.ActivateSelected()
		}
	case constants.VirtualButtonB:
		a.shell.Press(script.Backspace)
	case constants.VirtualButtonX:
		a.shell.Press(script.Space)
	case constants.VirtualButtonY:
		a.shell.ToggleKeyboard()
	case constants.VirtualButtonStart:
		a.shell.CopyAsImage()
	case constants.VirtualButtonSelect:
		a.toggleOrientation()
	case constants.VirtualButtonL1:
		surface.MoveCaret(-1, false)
	case constants.VirtualButtonR1:
		surface.MoveCaret(1, false)
	case constants.VirtualButtonL2:
		a.shell.DecreaseFontSize()
	case constants.VirtualButtonR2:
		a.shell.IncreaseFontSize()
	}
}

// direction moves the key cursor while the keyboard is open, otherwise
// the caret.
func (a *app) direction(button constants.VirtualButton) {
	if a.shell.Page() != editor.PageEditor {
		switch button {
		case constants.VirtualButtonUp:
			a.pages.scrollBy(-internal.Scaled(40))
		case constants.VirtualButtonDown:
			a.pages.scrollBy(internal.Scaled(40))
		}
		return
	}
	if a.shell.KeyboardOpen() {
		a.kbView.showCursor = true
		a.kb.Navigate(toKeyboardDirection(button))
		return
	}
	if delta := caretDelta(a.shell.Orientation(), button); delta != 0 {
		a.shell.Surface().MoveCaret(delta, false)
		a.editorView.resetCaretBlink()
	}
}

func (a *app) handleDirectionalRepeats() {
	if button, ok := a.repeater.due(time.Now()); ok {
		a.direction(button)
	}
}

// caretDelta maps an arrow to a logical caret step. Horizontal lines run
// right to left, so the left arrow moves forward; vertical lines run top
// to bottom.
func caretDelta(o raster.Orientation, button constants.VirtualButton) int {
	if o == raster.Vertical {
		switch button {
		case constants.VirtualButtonUp:
			return -1
		case constants.VirtualButtonDown:
			return 1
		}
		return 0
	}
	switch button {
	case constants.VirtualButtonLeft:
		return 1
	case constants.VirtualButtonRight:
		return -1
	}
	return 0
}

func modifierHeld(mask sdl.Keymod) bool {
	return sdl.GetModState()&mask != 0
}

func (a *app) handleKeyDown(e *sdl.KeyboardEvent) {
	ctrl := modifierHeld(sdl.KMOD_CTRL)
	shift := modifierHeld(sdl.KMOD_SHIFT)

	if a.shell.Page() != editor.PageEditor {
		if e.Keysym.Sym == sdl.K_ESCAPE {
			a.shell.SetPage(editor.PageEditor)
		}
		return
	}

	surface := a.shell.Surface()
	if ctrl {
		switch e.Keysym.Sym {
		case sdl.K_a:
			surface.SelectAll()
		case sdl.K_c:
			a.shell.CopyAsImage()
		case sdl.K_s:
			a.shell.DownloadImage()
		case sdl.K_EQUALS, sdl.K_PLUS, sdl.K_KP_PLUS:
			a.shell.IncreaseFontSize()
		case sdl.K_MINUS, sdl.K_KP_MINUS:
			a.shell.DecreaseFontSize()
		}
		return
	}

	switch e.Keysym.Sym {
	case sdl.K_BACKSPACE:
		a.shell.Press(script.Backspace)
	case sdl.K_DELETE:
		surface.DeleteForward()
	case sdl.K_RETURN, sdl.K_KP_ENTER:
		a.shell.TypeText("\n")
	case sdl.K_HOME:
		surface.MoveCaretToEdge(false, shift)
	case sdl.K_END:
		surface.MoveCaretToEdge(true, shift)
	case sdl.K_ESCAPE:
		surface.Blur()
	case sdl.K_LEFT:
		surface.MoveCaret(caretDelta(a.shell.Orientation(), constants.VirtualButtonLeft), shift)
	case sdl.K_RIGHT:
		surface.MoveCaret(caretDelta(a.shell.Orientation(), constants.VirtualButtonRight), shift)
	case sdl.K_UP:
		surface.MoveCaret(caretDelta(a.shell.Orientation(), constants.VirtualButtonUp), shift)
	case sdl.K_DOWN:
		surface.MoveCaret(caretDelta(a.shell.Orientation(), constants.VirtualButtonDown), shift)
	default:
		return
	}
	a.editorView.resetCaretBlink()
}

// handleClick dispatches a left click in device pixels. Buttons and keys
// leave the editor focus alone so a vertical selection survives until it
// is exported.
func (a *app) handleClick(x, y int32) {
	if id, ok := a.toolbar.hit(x, y); ok {
		a.trigger(id)
		return
	}
	if a.shell.Page() != editor.PageEditor {
		return
	}

	if a.shell.KeyboardOpen() {
		if a.kbView.collapseHit(x, y) {
			a.shell.SetKeyboardOpen(false)
			return
		}
		if i := a.kbView.keyAt(x, y); i >= 0 {
			a.kbView.showCursor = false
			a.kbView.flash(i)
			a.kb.Select(i)
			a.kb.Activate(i)
			return
		}
	}

	if a.editorView.contains(x, y) {
		a.editorView.pointerDown(a.shell, x, y, modifierHeld(sdl.KMOD_SHIFT))
		return
	}
	a.shell.Surface().Blur()
}

func (a *app) trigger(id buttonID) {
	switch id {
	case buttonOrientation:
		a.toggleOrientation()
	case buttonCopy:
		a.shell.CopyAsImage()
	case buttonDownload:
		a.shell.DownloadImage()
	case buttonFontDown:
		a.shell.DecreaseFontSize()
	case buttonFontUp:
		a.shell.IncreaseFontSize()
	case buttonKeyboard:
		a.shell.ToggleKeyboard()
	case buttonNavEditor:
		a.shell.SetPage(editor.PageEditor)
	case buttonNavAbout:
		a.shell.SetPage(editor.PageAbout)
	case buttonNavDisclaimer:
		a.shell.SetPage(editor.PageDisclaimer)
	}
}

func (a *app) toggleOrientation() {
	if err := a.shell.ToggleOrientation(); err != nil {
		GetLogger().Debug("Orientation change refused", "error", err)
	}
}

func (a *app) render() {
	renderer := a.window.Renderer
	a.window.RenderBackground()

	width, height := a.window.OutputSize()
	onEditor := a.shell.Page() == editor.PageEditor
	l := computeLayout(layoutParams{
		width:        width,
		height:       height,
		keyboardRows: len(a.kb.Rows()),
		keyboardOpen: onEditor && a.shell.KeyboardOpen(),
		mobile:       a.shell.IsMobile(),
		showToolbar:  onEditor,
		showFooter:   a.cfg.Theme.Preset == "handheld" || a.controllerSeen,
	})

	a.toolbar.buttons = a.toolbar.buttons[:0]
	renderNav(renderer, a.shell, l.nav, &a.toolbar, a.labels)

	if onEditor {
		buttons := toolbarButtons(a.shell)
		layoutRow(internal.Fonts.SmallFont, buttons, l.toolbar, false)
		renderButtons(renderer, internal.Fonts.SmallFont, buttons, a.labels)
		a.toolbar.buttons = append(a.toolbar.buttons, buttons...)

		a.editorView.render(renderer, a.shell, l.content)
		if a.shell.KeyboardOpen() {
			a.kbView.render(renderer, l.keyboard, a.icons, a.labels)
		}
	} else {
		a.pages.render(renderer, a.shell.Page(), l.content)
	}

	var icons []string
	if a.fontName != "" {
		icons = append(icons, a.fontName)
	}
	renderStatusBar(renderer, internal.Fonts.TinyFont, l.status, i18n.GetString(a.shell.Status().Get()), StatusBarOptions{
		ShowTime: a.cfg.Theme.Preset == "handheld",
		Icons:    icons,
	}, a.labels)

	if l.footer.H > 0 {
		left, right := footerItems(a.shell)
		renderFooter(renderer, internal.Fonts.SmallFont, l.footer, left, right, a.labels)
	}

	renderer.Present()
}

func (a *app) destroy() {
	a.editorView.destroy()
	a.icons.destroy()
	a.labels.Clear()
}
