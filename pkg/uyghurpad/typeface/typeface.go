// Package typeface resolves the Old Uyghur font in the background and hands
// the parsed font to whoever waits for it.
package typeface

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/flopp/go-findfont"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// DefaultFamily is the font file looked up on the system when no path is configured.
const DefaultFamily = "NotoSerifOldUyghur-Regular.ttf"

var ErrFontNotFound = errors.New("font not found")

// findFont is swapped in tests.
var findFont = findfont.Find

type Request struct {
	// Path is tried first when set.
	Path string
	// Family is a font file name searched in the system font directories.
	Family string
	// Fallbacks are file names tried when the script font cannot be loaded.
	Fallbacks []string
	Logger    *slog.Logger
}

type Result struct {
	Source *text.FontSource
	Name   string
	Path   string
	// Fallback is set when Source is not the requested font.
	Fallback bool
	// Err explains why a fallback was used.
	Err error
}

// Promise is a font resolution running in the background.
type Promise struct {
	done   chan struct{}
	result Result
}

// Resolve starts resolving req and returns immediately. The promise always
// settles: when nothing on the system can be loaded the embedded Go font is used.
func Resolve(ctx context.Context, req Request) *Promise {
	p := &Promise{done: make(chan struct{})}
	go func() {
		defer close(p.done)
		p.result = resolve(ctx, req)
	}()
	return p
}

// Ready is closed once the promise has settled.
func (p *Promise) Ready() <-chan struct{} {
	return p.done
}

// Wait blocks until the promise settles or ctx is done.
func (p *Promise) Wait(ctx context.Context) (Result, error) {
	select {
	case <-ctx.Done():
		return Result{}, ctx.Err()
	case <-p.done:
		return p.result, nil
	}
}

// Result returns the settled result and whether the promise has settled.
func (p *Promise) Result() (Result, bool) {
	select {
	case <-p.done:
		return p.result, true
	default:
		return Result{}, false
	}
}

func resolve(ctx context.Context, req Request) Result {
	logger := req.Logger
	if logger == nil {
		logger = slog.Default()
	}

	family := req.Family
	if family == "" {
		family = DefaultFamily
	}

	var candidates []string
	if req.Path != "" {
		candidates = append(candidates, req.Path)
	}
	if path, err := findFont(family); err == nil {
		candidates = append(candidates, path)
	} else {
		logger.Debug("System font lookup failed", "family", family, "error", err)
	}

	var primaryErr error
	for _, path := range candidates {
		if ctx.Err() != nil {
			break
		}
		src, err := text.NewFontSourceFromFile(path)
		if err != nil {
			logger.Warn("Failed to load font", "path", path, "error", err)
			primaryErr = err
			continue
		}
		logger.Info("Loaded script font", "path", path, "name", src.Name())
		return Result{Source: src, Name: src.Name(), Path: path}
	}
	if primaryErr == nil {
		primaryErr = fmt.Errorf("%w: %s", ErrFontNotFound, family)
	}

	for _, name := range req.Fallbacks {
		if ctx.Err() != nil {
			break
		}
		path, err := findFont(name)
		if err != nil {
			continue
		}
		src, err := text.NewFontSourceFromFile(path)
		if err != nil {
			continue
		}
		logger.Warn("Using fallback font", "path", path, "reason", primaryErr)
		return Result{Source: src, Name: src.Name(), Path: path, Fallback: true, Err: primaryErr}
	}

	src, err := text.NewFontSource(goregular.TTF)
	if err != nil {
		// The embedded font is known good; this only happens on a broken build.
		logger.Error("Failed to load embedded font", "error", err)
		return Result{Fallback: true, Err: errors.Join(primaryErr, err)}
	}
	logger.Warn("Using embedded font", "reason", primaryErr)
	return Result{Source: src, Name: src.Name(), Fallback: true, Err: primaryErr}
}

