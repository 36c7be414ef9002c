// Package editor owns the application state shared by every view: the
// document text, font size, orientation, active page, viewport class and
// keyboard visibility. Keyboard tokens are routed through the Shell to the
// mounted Surface.
package editor

import (
	"errors"
	"log/slog"

	"go.uber.org/atomic"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/export"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/script"
)

const (
	MinFontSize     = 16
	MaxFontSize     = 72
	FontSizeStep    = 2
	DefaultFontSize = 24

	// MobileBreakpoint is the widest viewport still treated as mobile.
	MobileBreakpoint = 768
)

var ErrVerticalOnMobile = errors.New("vertical orientation is not available on mobile")

// ClampFontSize limits n to [MinFontSize, MaxFontSize].
func ClampFontSize(n int) int {
	return max(MinFontSize, min(MaxFontSize, n))
}

func IsMobileWidth(width int) bool {
	return width <= MobileBreakpoint
}

type Page int

const (
	PageEditor Page = iota
	PageAbout
	PageDisclaimer
)

var pageNames = map[Page]string{
	PageEditor:     "editor",
	PageAbout:      "about",
	PageDisclaimer: "disclaimer",
}

func (p Page) String() string {
	return pageNames[p]
}

type Change int

const (
	ContentChanged Change = iota
	FontSizeChanged
	OrientationChanged
	PageChanged
	StatusChanged
	KeyboardChanged
	LayoutChanged
)

// Listener is called on the goroutine that made the change. Status updates
// written by export goroutines are not announced; poll Status().Version().
type Listener func(Change)

// Exporter is the image export backend.
type Exporter interface {
	Copy(text string, opts raster.Options) <-chan struct{}
	Download(text string, opts raster.Options) <-chan struct{}
}

type Options struct {
	Text         string
	FontSize     int
	Orientation  raster.Orientation
	Width        int
	Scale        float64
	KeyboardOpen bool
	Logger       *slog.Logger
}

type Shell struct {
	text         string
	fontSize     int
	orientation  raster.Orientation
	page         Page
	width        int
	mobile       bool
	keyboardOpen bool
	scale        float64

	surface   *Surface
	status    *Status
	fontReady atomic.Bool
	exporter  Exporter

	listeners []Listener
	logger    *slog.Logger
}

func NewShell(opts Options) *Shell {
	s := &Shell{
		text:         opts.Text,
		fontSize:     DefaultFontSize,
		orientation:  opts.Orientation,
		page:         PageEditor,
		width:        opts.Width,
		mobile:       IsMobileWidth(opts.Width),
		keyboardOpen: opts.KeyboardOpen,
		scale:        opts.Scale,
		status:       &Status{},
		logger:       opts.Logger,
	}
	if opts.FontSize != 0 {
		s.fontSize = ClampFontSize(opts.FontSize)
	}
	if s.scale <= 0 {
		s.scale = 1
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.mobile {
		s.orientation = raster.Horizontal
	}
	s.status.Set(i18n.StatusLoadingFont)
	s.mount(false)
	return s
}

// SetExporter installs the export backend. Exports are refused until then.
func (s *Shell) SetExporter(e Exporter) {
	s.exporter = e
}

func (s *Shell) Subscribe(l Listener) {
	s.listeners = append(s.listeners, l)
}

func (s *Shell) notify(c Change) {
	for _, l := range s.listeners {
		l(c)
	}
}

func (s *Shell) Text() string                    { return s.text }
func (s *Shell) FontSize() int                   { return s.fontSize }
func (s *Shell) Orientation() raster.Orientation { return s.orientation }
func (s *Shell) Page() Page                      { return s.page }
func (s *Shell) Width() int                      { return s.width }
func (s *Shell) IsMobile() bool                  { return s.mobile }
func (s *Shell) KeyboardOpen() bool              { return s.keyboardOpen }
func (s *Shell) Scale() float64                  { return s.scale }
func (s *Shell) Surface() *Surface               { return s.surface }
func (s *Shell) Status() *Status                 { return s.status }
func (s *Shell) FontReady() bool                 { return s.fontReady.Load() }

func (s *Shell) setStatus(id string) {
	s.status.Set(id)
	s.notify(StatusChanged)
}

func (s *Shell) SetFontSize(n int) {
	n = ClampFontSize(n)
	if n == s.fontSize {
		return
	}
	s.fontSize = n
	s.notify(FontSizeChanged)
}

func (s *Shell) IncreaseFontSize() {
	s.SetFontSize(s.fontSize + FontSizeStep)
}

func (s *Shell) DecreaseFontSize() {
	s.SetFontSize(s.fontSize - FontSizeStep)
}

func (s *Shell) CanIncreaseFontSize() bool { return s.fontSize < MaxFontSize }
func (s *Shell) CanDecreaseFontSize() bool { return s.fontSize > MinFontSize }

// SetOrientation remounts the editing surface in orientation o, seeded with
// the shared text. Vertical is refused while the viewport is mobile.
func (s *Shell) SetOrientation(o raster.Orientation) error {
	if o == raster.Vertical && s.mobile {
		return ErrVerticalOnMobile
	}
	if o == s.orientation {
		return nil
	}
	s.orientation = o
	s.mount(s.surface != nil && s.surface.Focused())
	s.logger.Debug("Orientation changed", "orientation", o.String())
	s.notify(OrientationChanged)
	return nil
}

func (s *Shell) ToggleOrientation() error {
	if s.orientation == raster.Vertical {
		return s.SetOrientation(raster.Horizontal)
	}
	return s.SetOrientation(raster.Vertical)
}

// Resize records a new viewport width. Entering the mobile range forces
// horizontal orientation.
func (s *Shell) Resize(width int) {
	if width == s.width {
		return
	}
	s.width = width
	mobile := IsMobileWidth(width)
	changed := mobile != s.mobile
	s.mobile = mobile

	if mobile && s.orientation == raster.Vertical {
		s.orientation = raster.Horizontal
		s.mount(s.surface != nil && s.surface.Focused())
		s.notify(OrientationChanged)
	}
	if changed {
		s.logger.Debug("Viewport class changed", "width", width, "mobile", mobile)
	}
	s.notify(LayoutChanged)
}

func (s *Shell) SetScale(scale float64) {
	if scale <= 0 {
		scale = 1
	}
	s.scale = scale
}

// SetPage switches the visible page. Leaving the editor blurs the surface.
func (s *Shell) SetPage(p Page) {
	if p == s.page {
		return
	}
	if s.page == PageEditor && s.surface != nil {
		s.surface.Blur()
	}
	s.page = p
	s.notify(PageChanged)
}

func (s *Shell) SetKeyboardOpen(open bool) {
	if open == s.keyboardOpen {
		return
	}
	s.keyboardOpen = open
	s.notify(KeyboardChanged)
}

func (s *Shell) ToggleKeyboard() {
	s.SetKeyboardOpen(!s.keyboardOpen)
}

// Press routes a keyboard token to the mounted surface. It is the emit
// target of the on-screen keyboard. Tokens are ignored off the editor page
// and dropped by an unfocused surface.
func (s *Shell) Press(tok script.Token) {
	if s.page != PageEditor || s.surface == nil {
		return
	}
	if !s.surface.HandleToken(tok) {
		s.logger.Debug("Token dropped", "focused", s.surface.Focused())
	}
}

// TypeText routes physical keyboard text to the mounted surface.
func (s *Shell) TypeText(text string) {
	if s.page != PageEditor || s.surface == nil {
		return
	}
	s.surface.HandleText(text)
}

// MarkFontReady enables exports. fallback selects the status shown.
func (s *Shell) MarkFontReady(fallback bool) {
	s.fontReady.Store(true)
	if fallback {
		s.setStatus(i18n.StatusFontFallback)
		return
	}
	s.setStatus(i18n.StatusFontReady)
}

// ReportExport records the outcome of an export. Safe from any goroutine.
func (s *Shell) ReportExport(o export.Outcome) {
	if id := StatusForOutcome(o); id != "" {
		s.status.Set(id)
	}
}

// CopyAsImage exports the current export text to the clipboard. The
// returned channel closes when the attempt has finished.
func (s *Shell) CopyAsImage() <-chan struct{} {
	text, opts, ok := s.exportRequest()
	if !ok {
		return closedChan()
	}
	return s.exporter.Copy(text, opts)
}

// DownloadImage exports the current export text as a file.
func (s *Shell) DownloadImage() <-chan struct{} {
	text, opts, ok := s.exportRequest()
	if !ok {
		return closedChan()
	}
	return s.exporter.Download(text, opts)
}

func (s *Shell) exportRequest() (string, raster.Options, bool) {
	if !s.FontReady() || s.exporter == nil {
		return "", raster.Options{}, false
	}
	if s.surface == nil {
		s.setStatus(i18n.StatusEditorUninitialized)
		return "", raster.Options{}, false
	}
	return s.surface.ExportText(), raster.Options{
		FontSize:    float64(s.fontSize),
		Scale:       s.scale,
		Orientation: s.orientation,
	}, true
}

func (s *Shell) mount(focused bool) {
	s.surface = newSurface(s.orientation, s.text, s.contentChanged)
	if focused {
		s.surface.Focus()
	}
}

func (s *Shell) contentChanged(text string) {
	s.text = text
	s.notify(ContentChanged)
}

func closedChan() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
