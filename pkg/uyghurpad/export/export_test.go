package export

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gogpu/gg/text"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
)

type fakeClipboard struct {
	mu   sync.Mutex
	data []byte
	err  error
}

func (c *fakeClipboard) WriteImage(png []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.err != nil {
		return c.err
	}
	c.data = png
	return nil
}

type fakeDownloader struct {
	name string
	data []byte
	err  error
}

func (d *fakeDownloader) Save(name string, data []byte) (string, error) {
	if d.err != nil {
		return "", d.err
	}
	d.name, d.data = name, data
	return "/tmp/" + name, nil
}

type recorder struct {
	mu       sync.Mutex
	outcomes []Outcome
}

func (r *recorder) report(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.outcomes = append(r.outcomes, o)
}

func (r *recorder) all() []Outcome {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Outcome(nil), r.outcomes...)
}

func newRasterizer(t *testing.T) *raster.Rasterizer {
	t.Helper()
	source, err := text.NewFontSource(goregular.TTF)
	require.NoError(t, err)
	return raster.New(source)
}

func wait(t *testing.T, done <-chan struct{}) {
	t.Helper()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("export did not finish")
	}
}

var pngMagic = []byte("\x89PNG\r\n\x1a\n")

func TestCopyWritesPNG(t *testing.T) {
	clip := &fakeClipboard{}
	rec := &recorder{}
	e := New(newRasterizer(t), clip, &fakeDownloader{}, rec.report)

	wait(t, e.Copy("abc", raster.Options{FontSize: 24}))

	assert.Equal(t, []Outcome{OutcomeCopied}, rec.all())
	require.NotEmpty(t, clip.data)
	assert.Equal(t, pngMagic, clip.data[:len(pngMagic)])
}

func TestCopyFailureSuggestsDownload(t *testing.T) {
	clip := &fakeClipboard{err: errors.New("denied")}
	rec := &recorder{}
	e := New(newRasterizer(t), clip, &fakeDownloader{}, rec.report)

	wait(t, e.Copy("abc", raster.Options{FontSize: 24}))
	assert.Equal(t, []Outcome{OutcomeCopyFailed}, rec.all())
}

func TestEmptyTextProducesNoImage(t *testing.T) {
	clip := &fakeClipboard{}
	dl := &fakeDownloader{}
	rec := &recorder{}
	e := New(newRasterizer(t), clip, dl, rec.report)

	wait(t, e.Copy("", raster.Options{FontSize: 24}))
	wait(t, e.Download("", raster.Options{FontSize: 24, Orientation: raster.Vertical}))

	assert.Equal(t, []Outcome{OutcomeNoText, OutcomeNoSelection}, rec.all())
	assert.Nil(t, clip.data)
	assert.Nil(t, dl.data)
}

func TestCanvasFailure(t *testing.T) {
	rec := &recorder{}
	e := New(raster.New(nil), &fakeClipboard{}, &fakeDownloader{}, rec.report)

	wait(t, e.Download("abc", raster.Options{FontSize: 24}))
	assert.Equal(t, []Outcome{OutcomeCanvasFailed}, rec.all())
}

func TestDownloadUsesFixedName(t *testing.T) {
	dl := &fakeDownloader{}
	rec := &recorder{}
	e := New(newRasterizer(t), &fakeClipboard{}, dl, rec.report)

	wait(t, e.Download("abc", raster.Options{FontSize: 24}))
	assert.Equal(t, []Outcome{OutcomeDownloaded}, rec.all())
	assert.Equal(t, DownloadFilename, dl.name)
	assert.Equal(t, "回鹘文图片.png", dl.name)

	dl.err = errors.New("disk full")
	wait(t, e.Download("abc", raster.Options{FontSize: 24}))
	assert.Equal(t, []Outcome{OutcomeDownloaded, OutcomeDownloadFailed}, rec.all())
}

func TestDirDownloaderDoesNotOverwrite(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "downloads")
	d := DirDownloader{Dir: dir}

	first, err := d.Save(DownloadFilename, []byte("one"))
	require.NoError(t, err)
	second, err := d.Save(DownloadFilename, []byte("two"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "回鹘文图片.png"), first)
	assert.Equal(t, filepath.Join(dir, "回鹘文图片 (1).png"), second)

	data, err := os.ReadFile(first)
	require.NoError(t, err)
	assert.Equal(t, "one", string(data))
}
