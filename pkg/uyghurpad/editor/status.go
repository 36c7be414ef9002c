package editor

import (
	"go.uber.org/atomic"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/export"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/i18n"
)

// Status holds the current status message ID. It is written by the UI
// thread and by export goroutines, and read by the render loop.
type Status struct {
	id      atomic.String
	version atomic.Uint64
}

func (s *Status) Set(id string) {
	s.id.Store(id)
	s.version.Inc()
}

func (s *Status) Get() string {
	return s.id.Load()
}

// Version changes every time Set is called.
func (s *Status) Version() uint64 {
	return s.version.Load()
}

// StatusForOutcome maps an export outcome to its status message ID.
func StatusForOutcome(o export.Outcome) string {
	switch o {
	case export.OutcomeNoText:
		return i18n.StatusNoText
	case export.OutcomeNoSelection:
		return i18n.StatusNoSelection
	case export.OutcomeCanvasFailed:
		return i18n.StatusCanvasFailed
	case export.OutcomeCopied:
		return i18n.StatusCopied
	case export.OutcomeCopyFailed:
		return i18n.StatusCopyFailed
	case export.OutcomeDownloaded:
		return i18n.StatusDownloaded
	case export.OutcomeDownloadFailed:
		return i18n.StatusDownloadFailed
	default:
		return ""
	}
}
