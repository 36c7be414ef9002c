package editor

import (
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/raster"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/script"
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/textedit"
)

// Surface is one mounted editing area. Each orientation gets a fresh
// Surface seeded with the shared text.
type Surface struct {
	orientation raster.Orientation
	buf         *textedit.Buffer
	focused     bool
	// caretPlaced is false until the user puts the caret somewhere; focus
	// then starts at the end of the content.
	caretPlaced bool
	onChange    func(text string)
}

func newSurface(o raster.Orientation, text string, onChange func(string)) *Surface {
	return &Surface{
		orientation: o,
		buf:         textedit.New(text),
		onChange:    onChange,
	}
}

func (s *Surface) Orientation() raster.Orientation {
	return s.orientation
}

func (s *Surface) Focused() bool {
	return s.focused
}

// Buffer exposes the caret and selection for drawing. Mutate through Surface.
func (s *Surface) Buffer() *textedit.Buffer {
	return s.buf
}

func (s *Surface) Text() string {
	return s.buf.Text()
}

func (s *Surface) Focus() {
	if !s.caretPlaced {
		s.buf.MoveToEnd(false)
		s.caretPlaced = true
	}
	s.focused = true
}

// Blur drops focus and the caret context.
func (s *Surface) Blur() {
	s.focused = false
	s.caretPlaced = false
	s.buf.ClearSelection()
}

// HandleToken applies one keyboard token at the caret. Tokens that arrive
// while the surface is not focused are dropped. It reports whether the
// token was applied.
func (s *Surface) HandleToken(tok script.Token) bool {
	if !s.focused {
		return false
	}
	s.buf.Apply(tok)
	s.changed()
	return true
}

// HandleText inserts typed text at the caret, replacing any selection.
func (s *Surface) HandleText(text string) bool {
	if !s.focused || text == "" {
		return false
	}
	s.buf.InsertText(text)
	s.changed()
	return true
}

// DeleteForward removes the selection or the cluster after the caret.
func (s *Surface) DeleteForward() bool {
	if !s.focused {
		return false
	}
	before := s.buf.Len()
	s.buf.DeleteForward()
	if s.buf.Len() == before {
		return false
	}
	s.changed()
	return true
}

// PlaceCaret puts the caret at a cluster index and focuses the surface.
func (s *Surface) PlaceCaret(pos int) {
	s.buf.SetCursor(pos)
	s.caretPlaced = true
	s.focused = true
}

// Select selects [anchor, caret) and focuses the surface.
func (s *Surface) Select(anchor, caret int) {
	s.buf.SetSelection(anchor, caret)
	s.caretPlaced = true
	s.focused = true
}

func (s *Surface) SelectAll() {
	s.Select(0, s.buf.Len())
}

// MoveCaret moves by delta clusters in logical order.
func (s *Surface) MoveCaret(delta int, extend bool) {
	if !s.focused {
		return
	}
	for ; delta < 0; delta++ {
		s.buf.MoveBackward(extend)
	}
	for ; delta > 0; delta-- {
		s.buf.MoveForward(extend)
	}
	s.caretPlaced = true
}

func (s *Surface) MoveCaretToEdge(end, extend bool) {
	if !s.focused {
		return
	}
	if end {
		s.buf.MoveToEnd(extend)
	} else {
		s.buf.MoveToStart(extend)
	}
	s.caretPlaced = true
}

// ExportText is the text an image export uses: all of it for horizontal
// surfaces, only the selection for vertical ones.
func (s *Surface) ExportText() string {
	if s.orientation == raster.Vertical {
		return s.buf.SelectedText()
	}
	return s.buf.Text()
}

func (s *Surface) changed() {
	if s.onChange != nil {
		s.onChange(s.buf.Text())
	}
}
