package editor

import (
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/export"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/script"
)

type exportCall struct {
	kind string
	text string
	opts raster.Options
}

type fakeExporter struct {
	calls []exportCall
}

func (f *fakeExporter) Copy(text string, opts raster.Options) <-chan struct{} {
	f.calls = append(f.calls, exportCall{"copy", text, opts})
	return closedChan()
}

func (f *fakeExporter) Download(text string, opts raster.Options) <-chan struct{} {
	f.calls = append(f.calls, exportCall{"download", text, opts})
	return closedChan()
}

func newFocusedShell(t *testing.T, width int) *Shell {
	t.Helper()
	s := NewShell(Options{Width: width})
	s.Surface().Focus()
	return s
}

func TestTypingLettersConcatenates(t *testing.T) {
	s := newFocusedShell(t, 1024)
	for i := 0; i < 5; i++ {
		s.Press(script.LetterToken(i))
	}
	assert.Equal(t, "\U00010F70\U00010F71\U00010F72\U00010F73\U00010F74", s.Text())
}

func TestBackspaceTwiceEmpties(t *testing.T) {
	s := NewShell(Options{Text: "AB", Width: 1024})
	s.Surface().Focus()
	s.Press(script.Backspace)
	s.Press(script.Backspace)
	assert.Equal(t, "", s.Text())

	s.Press(script.Backspace)
	assert.Equal(t, "", s.Text())
}

func TestFocusPutsCaretAtEnd(t *testing.T) {
	s := NewShell(Options{Text: "abc", Width: 1024})
	s.Surface().Focus()
	s.Press(script.Space)
	assert.Equal(t, "abc ", s.Text())
}

func TestUnfocusedTokensAreDropped(t *testing.T) {
	s := NewShell(Options{Text: "abc", Width: 1024})
	s.Press(script.LetterToken(0))
	assert.Equal(t, "abc", s.Text(), "surface was never focused")

	s.Surface().Focus()
	s.Surface().Blur()
	s.Press(script.Backspace)
	assert.Equal(t, "abc", s.Text())
}

func TestTokensIgnoredOffEditorPage(t *testing.T) {
	s := newFocusedShell(t, 1024)
	s.SetPage(PageAbout)
	s.Press(script.LetterToken(0))
	assert.Equal(t, "", s.Text())

	s.SetPage(PageEditor)
	assert.False(t, s.Surface().Focused(), "leaving the editor blurs the surface")
}

func TestFontSizeClamp(t *testing.T) {
	s := NewShell(Options{Width: 1024})
	require.Equal(t, DefaultFontSize, s.FontSize())

	for i := 0; i < 30; i++ {
		s.IncreaseFontSize()
		assert.LessOrEqual(t, s.FontSize(), MaxFontSize)
	}
	assert.Equal(t, 72, s.FontSize())
	assert.False(t, s.CanIncreaseFontSize())

	for i := 0; i < 40; i++ {
		s.DecreaseFontSize()
		assert.GreaterOrEqual(t, s.FontSize(), MinFontSize)
	}
	assert.Equal(t, 16, s.FontSize())
	assert.False(t, s.CanDecreaseFontSize())

	assert.Equal(t, 16, ClampFontSize(3))
	assert.Equal(t, 72, ClampFontSize(100))
	assert.Equal(t, 40, NewShell(Options{FontSize: 40}).FontSize())
}

func TestResizeToMobileForcesHorizontal(t *testing.T) {
	s := newFocusedShell(t, 900)
	require.NoError(t, s.SetOrientation(raster.Vertical))
	require.Equal(t, raster.Vertical, s.Orientation())

	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.Resize(600)
	assert.True(t, s.IsMobile())
	assert.Equal(t, raster.Horizontal, s.Orientation())
	assert.Equal(t, raster.Horizontal, s.Surface().Orientation())
	assert.Contains(t, changes, OrientationChanged)

	assert.ErrorIs(t, s.SetOrientation(raster.Vertical), ErrVerticalOnMobile)
	assert.Equal(t, raster.Horizontal, s.Orientation())
}

func TestMobileBreakpoint(t *testing.T) {
	assert.True(t, IsMobileWidth(768))
	assert.False(t, IsMobileWidth(769))
	assert.Equal(t, raster.Horizontal, NewShell(Options{Width: 500, Orientation: raster.Vertical}).Orientation())
}

func TestOrientationSwitchKeepsText(t *testing.T) {
	s := newFocusedShell(t, 1024)
	s.Press(script.LetterToken(3))
	first := s.Surface()

	require.NoError(t, s.SetOrientation(raster.Vertical))
	assert.NotSame(t, first, s.Surface())
	assert.Equal(t, s.Text(), s.Surface().Text())

	s.Press(script.LetterToken(4))
	assert.Equal(t, "\U00010F73\U00010F74", s.Text())
}

func TestContentChangedNotification(t *testing.T) {
	s := newFocusedShell(t, 1024)
	var changes []Change
	s.Subscribe(func(c Change) { changes = append(changes, c) })

	s.Press(script.LetterToken(0))
	s.IncreaseFontSize()
	s.SetPage(PageDisclaimer)
	s.ToggleKeyboard()

	assert.Equal(t, []Change{ContentChanged, FontSizeChanged, PageChanged, KeyboardChanged}, changes)
}

func TestExportNeedsFont(t *testing.T) {
	fe := &fakeExporter{}
	s := NewShell(Options{Text: "abc", Width: 1024, Scale: 2})
	s.SetExporter(fe)
	assert.Equal(t, i18n.StatusLoadingFont, s.Status().Get())

	<-s.CopyAsImage()
	assert.Empty(t, fe.calls)

	s.MarkFontReady(false)
	assert.Equal(t, i18n.StatusFontReady, s.Status().Get())

	<-s.CopyAsImage()
	require.Len(t, fe.calls, 1)
	assert.Equal(t, exportCall{"copy", "abc", raster.Options{FontSize: 24, Scale: 2, Orientation: raster.Horizontal}}, fe.calls[0])
}

func TestVerticalExportUsesSelection(t *testing.T) {
	fe := &fakeExporter{}
	s := NewShell(Options{Text: "hello", Width: 1024, Orientation: raster.Vertical})
	s.SetExporter(fe)
	s.MarkFontReady(true)
	assert.Equal(t, i18n.StatusFontFallback, s.Status().Get())

	<-s.DownloadImage()
	s.Surface().Select(1, 3)
	<-s.DownloadImage()

	require.Len(t, fe.calls, 2)
	assert.Equal(t, "", fe.calls[0].text)
	assert.Equal(t, "el", fe.calls[1].text)
	assert.Equal(t, raster.Vertical, fe.calls[1].opts.Orientation)
}

type memClipboard struct {
	mu   sync.Mutex
	data []byte
}

func (c *memClipboard) WriteImage(png []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = png
	return nil
}

func TestExportStatusMessages(t *testing.T) {
	source, err := text.NewFontSource(goregular.TTF)
	require.NoError(t, err)

	s := NewShell(Options{Width: 1024})
	clip := &memClipboard{}
	s.SetExporter(export.New(raster.New(source), clip, export.DirDownloader{Dir: t.TempDir()}, s.ReportExport))
	s.MarkFontReady(false)

	waitDone(t, s.CopyAsImage())
	assert.Equal(t, i18n.StatusNoText, s.Status().Get())

	require.NoError(t, s.SetOrientation(raster.Vertical))
	waitDone(t, s.CopyAsImage())
	assert.Equal(t, i18n.StatusNoSelection, s.Status().Get())

	s.Surface().Focus()
	s.TypeText("abc")
	s.Surface().SelectAll()
	waitDone(t, s.CopyAsImage())
	assert.Equal(t, i18n.StatusCopied, s.Status().Get())
	clip.mu.Lock()
	assert.NotEmpty(t, clip.data)
	clip.mu.Unlock()

	waitDone(t, s.DownloadImage())
	assert.Equal(t, i18n.StatusDownloaded, s.Status().Get())
}

func waitDone(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("export did not finish")
	}
}
