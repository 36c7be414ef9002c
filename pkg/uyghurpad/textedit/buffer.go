// Package textedit holds the caret and selection model behind both editing
// surfaces. Positions are grapheme-cluster indexes, never byte offsets.
package textedit

import (
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/script"
)

// Range is a half-open cluster interval with Start <= End.
type Range struct {
	Start int
	End   int
}

func (r Range) Empty() bool {
	return r.Start == r.End
}

func (r Range) Len() int {
	return r.End - r.Start
}

// Buffer is a single-caret text buffer with an optional anchored selection.
// The zero value is an empty buffer with the caret at 0.
type Buffer struct {
	clusters  []string
	cursor    int
	anchor    int
	selActive bool
	version   uint64
}

func New(text string) *Buffer {
	b := &Buffer{}
	b.clusters = split(text)
	b.cursor = len(b.clusters)
	return b
}

func (b *Buffer) Text() string {
	return join(b.clusters)
}

// Len returns the number of grapheme clusters.
func (b *Buffer) Len() int {
	return len(b.clusters)
}

// Version increases on every mutation of text, caret or selection.
func (b *Buffer) Version() uint64 {
	return b.version
}

func (b *Buffer) Cursor() int {
	return b.cursor
}

// SetCursor moves the caret and drops any selection. Out-of-range values are clamped.
func (b *Buffer) SetCursor(pos int) {
	pos = b.clamp(pos)
	if pos == b.cursor && !b.selActive {
		return
	}
	b.cursor = pos
	b.selActive = false
	b.bump()
}

// Selection returns the normalized selection. ok is false when nothing is selected.
func (b *Buffer) Selection() (r Range, ok bool) {
	if !b.selActive || b.anchor == b.cursor {
		return Range{Start: b.cursor, End: b.cursor}, false
	}
	if b.anchor < b.cursor {
		return Range{Start: b.anchor, End: b.cursor}, true
	}
	return Range{Start: b.cursor, End: b.anchor}, true
}

// SetSelection selects [anchor, caret). The caret ends at caret.
func (b *Buffer) SetSelection(anchor, caret int) {
	b.anchor = b.clamp(anchor)
	b.cursor = b.clamp(caret)
	b.selActive = b.anchor != b.cursor
	b.bump()
}

func (b *Buffer) SelectAll() {
	b.SetSelection(0, len(b.clusters))
}

func (b *Buffer) ClearSelection() {
	if !b.selActive {
		return
	}
	b.selActive = false
	b.bump()
}

func (b *Buffer) SelectedText() string {
	r, ok := b.Selection()
	if !ok {
		return ""
	}
	return join(b.clusters[r.Start:r.End])
}

// InsertText replaces the selection, if any, with text and leaves the caret
// immediately after the inserted clusters.
func (b *Buffer) InsertText(text string) {
	b.deleteSelection()
	ins := split(text)
	if len(ins) == 0 {
		b.bump()
		return
	}

	next := make([]string, 0, len(b.clusters)+len(ins))
	next = append(next, b.clusters[:b.cursor]...)
	next = append(next, ins...)
	next = append(next, b.clusters[b.cursor:]...)
	b.clusters = next
	b.cursor += len(ins)
	b.bump()
}

// DeleteSelection removes the selected clusters. It reports whether anything was removed.
func (b *Buffer) DeleteSelection() bool {
	if !b.deleteSelection() {
		return false
	}
	b.bump()
	return true
}

func (b *Buffer) deleteSelection() bool {
	r, ok := b.Selection()
	b.selActive = false
	if !ok {
		return false
	}
	b.clusters = append(b.clusters[:r.Start], b.clusters[r.End:]...)
	b.cursor = r.Start
	return true
}

// DeleteBackward deletes the selection, or one cluster before the caret.
// At position 0 with no selection it does nothing.
func (b *Buffer) DeleteBackward() {
	if b.DeleteSelection() {
		return
	}
	if b.cursor == 0 {
		return
	}
	b.clusters = append(b.clusters[:b.cursor-1], b.clusters[b.cursor:]...)
	b.cursor--
	b.bump()
}

// DeleteForward deletes the selection, or one cluster after the caret.
func (b *Buffer) DeleteForward() {
	if b.DeleteSelection() {
		return
	}
	if b.cursor >= len(b.clusters) {
		return
	}
	b.clusters = append(b.clusters[:b.cursor], b.clusters[b.cursor+1:]...)
	b.bump()
}

// MoveBackward moves the caret one cluster toward the start of the text.
// With extend the selection grows from its anchor; without it a selection
// collapses to its start.
func (b *Buffer) MoveBackward(extend bool) {
	if !extend {
		if r, ok := b.Selection(); ok {
			b.SetCursor(r.Start)
			return
		}
		b.SetCursor(b.cursor - 1)
		return
	}
	b.extendTo(b.cursor - 1)
}

func (b *Buffer) MoveForward(extend bool) {
	if !extend {
		if r, ok := b.Selection(); ok {
			b.SetCursor(r.End)
			return
		}
		b.SetCursor(b.cursor + 1)
		return
	}
	b.extendTo(b.cursor + 1)
}

func (b *Buffer) MoveToStart(extend bool) {
	if !extend {
		b.SetCursor(0)
		return
	}
	b.extendTo(0)
}

func (b *Buffer) MoveToEnd(extend bool) {
	if !extend {
		b.SetCursor(len(b.clusters))
		return
	}
	b.extendTo(len(b.clusters))
}

func (b *Buffer) extendTo(pos int) {
	pos = b.clamp(pos)
	if !b.selActive {
		b.anchor = b.cursor
	}
	b.cursor = pos
	b.selActive = b.anchor != b.cursor
	b.bump()
}

// Reset replaces the whole text and puts the caret at the end.
func (b *Buffer) Reset(text string) {
	b.clusters = split(text)
	b.cursor = len(b.clusters)
	b.selActive = false
	b.bump()
}

// Apply runs one keyboard token against the buffer. It is the only place
// token semantics live: Backspace deletes the selection or one cluster before
// the caret, any other token replaces the selection with its literal text.
func (b *Buffer) Apply(tok script.Token) {
	if tok.IsBackspace() {
		b.DeleteBackward()
		return
	}
	b.InsertText(tok.Literal())
}

func (b *Buffer) clamp(pos int) int {
	if pos < 0 {
		return 0
	}
	if pos > len(b.clusters) {
		return len(b.clusters)
	}
	return pos
}

func (b *Buffer) bump() {
	b.version++
}

// Span returns the text of clusters [start, end).
func (b *Buffer) Span(start, end int) string {
	start, end = b.clamp(start), b.clamp(end)
	if end <= start {
		return ""
	}
	return join(b.clusters[start:end])
}

// Locate returns the zero-based line and column of a cluster position.
func (b *Buffer) Locate(pos int) (line, col int) {
	pos = b.clamp(pos)
	lineStart := 0
	for i := 0; i < pos; i++ {
		if isLineBreak(b.clusters[i]) {
			line++
			lineStart = i + 1
		}
	}
	return line, pos - lineStart
}

// LineBounds returns the cluster range of the line that contains pos, excluding the line break.
func (b *Buffer) LineBounds(pos int) Range {
	pos = b.clamp(pos)
	start := pos
	for start > 0 && !isLineBreak(b.clusters[start-1]) {
		start--
	}
	end := pos
	for end < len(b.clusters) && !isLineBreak(b.clusters[end]) {
		end++
	}
	return Range{Start: start, End: end}
}

func isLineBreak(cluster string) bool {
	return cluster == "\n" || cluster == "\r\n" || cluster == "\r"
}

// LineCount is the number of lines; an empty buffer has one.
func (b *Buffer) LineCount() int {
	n := 1
	for _, c := range b.clusters {
		if isLineBreak(c) {
			n++
		}
	}
	return n
}

// LineStart returns the cluster index where line n begins. n is clamped
// to the existing lines.
func (b *Buffer) LineStart(n int) int {
	if n <= 0 {
		return 0
	}
	start := 0
	for i, c := range b.clusters {
		if isLineBreak(c) {
			n--
			start = i + 1
			if n == 0 {
				return start
			}
		}
	}
	return start
}
