// Package export delivers rendered text images to the clipboard or to a file.
//
// Rendering happens on the caller's goroutine. PNG encoding and delivery run
// in a background goroutine with no cancellation or retry; when two exports
// overlap the later delivery wins.
package export

import (
	"errors"
	"log/slog"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
)

// DownloadFilename is the name given to every downloaded image.
const DownloadFilename = "回鹘文图片.png"

type Outcome int

const (
	OutcomeNone Outcome = iota
	// OutcomeNoText means horizontal export found no text.
	OutcomeNoText
	// OutcomeNoSelection means vertical export found no selected text.
	OutcomeNoSelection
	OutcomeCanvasFailed
	OutcomeCopied
	OutcomeCopyFailed
	OutcomeDownloaded
	OutcomeDownloadFailed
)

var outcomeNames = map[Outcome]string{
	OutcomeNone:           "none",
	OutcomeNoText:         "no_text",
	OutcomeNoSelection:    "no_selection",
	OutcomeCanvasFailed:   "canvas_failed",
	OutcomeCopied:         "copied",
	OutcomeCopyFailed:     "copy_failed",
	OutcomeDownloaded:     "downloaded",
	OutcomeDownloadFailed: "download_failed",
}

func (o Outcome) String() string {
	return outcomeNames[o]
}

type Renderer interface {
	Render(text string, opts raster.Options) (*raster.Result, error)
}

type ClipboardWriter interface {
	WriteImage(png []byte) error
}

type Downloader interface {
	// Save stores data under name and returns where it ended up.
	Save(name string, data []byte) (string, error)
}

type Exporter struct {
	renderer   Renderer
	clipboard  ClipboardWriter
	downloader Downloader
	report     func(Outcome)
	logger     *slog.Logger
}

type Option func(*Exporter)

func WithLogger(logger *slog.Logger) Option {
	return func(e *Exporter) {
		e.logger = logger
	}
}

// New builds an Exporter. report receives every outcome; it may be called
// from a background goroutine.
func New(renderer Renderer, clipboard ClipboardWriter, downloader Downloader, report func(Outcome), opts ...Option) *Exporter {
	e := &Exporter{
		renderer:   renderer,
		clipboard:  clipboard,
		downloader: downloader,
		report:     report,
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Copy renders text and places the PNG on the clipboard. The returned channel
// is closed once the attempt is over.
func (e *Exporter) Copy(text string, opts raster.Options) <-chan struct{} {
	res, ok := e.render(text, opts)
	if !ok {
		return closed()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		data, err := res.PNG()
		if err == nil {
			err = e.clipboard.WriteImage(data)
		}
		if err != nil {
			e.logger.Error("Copy image failed", "error", err)
			e.emit(OutcomeCopyFailed)
			return
		}
		e.logger.Debug("Copied image", "bytes", len(data), "orientation", opts.Orientation.String())
		e.emit(OutcomeCopied)
	}()
	return done
}

// Download renders text and saves the PNG as DownloadFilename.
func (e *Exporter) Download(text string, opts raster.Options) <-chan struct{} {
	res, ok := e.render(text, opts)
	if !ok {
		return closed()
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		data, err := res.PNG()
		var path string
		if err == nil {
			path, err = e.downloader.Save(DownloadFilename, data)
		}
		if err != nil {
			e.logger.Error("Download image failed", "error", err)
			e.emit(OutcomeDownloadFailed)
			return
		}
		e.logger.Info("Saved image", "path", path)
		e.emit(OutcomeDownloaded)
	}()
	return done
}

func (e *Exporter) render(text string, opts raster.Options) (*raster.Result, bool) {
	res, err := e.renderer.Render(text, opts)
	switch {
	case err == nil:
		return res, true
	case errors.Is(err, raster.ErrNothingToConvert):
		if opts.Orientation == raster.Vertical {
			e.emit(OutcomeNoSelection)
		} else {
			e.emit(OutcomeNoText)
		}
	default:
		e.logger.Error("Render failed", "error", err)
		e.emit(OutcomeCanvasFailed)
	}
	return nil, false
}

func (e *Exporter) emit(o Outcome) {
	if e.report != nil {
		e.report(o)
	}
}

func closed() <-chan struct{} {
	ch := make(chan struct{})
	close(ch)
	return ch
}
