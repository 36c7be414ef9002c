package textedit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/script"
)

func TestApplyLettersConcatenate(t *testing.T) {
	b := New("")
	var want string
	for i := 0; i < 5; i++ {
		tok := script.LetterToken(i)
		b.Apply(tok)
		want += string(tok)
	}
	assert.Equal(t, want, b.Text())
	assert.Equal(t, "\U00010F70\U00010F71\U00010F72\U00010F73\U00010F74", b.Text())
	assert.Equal(t, 5, b.Cursor())
}

func TestApplyBackspaceUndoesInsert(t *testing.T) {
	for _, start := range []string{"", "abc", "\U00010F70 \U00010F71"} {
		for pos := 0; pos <= ClusterCount(start); pos++ {
			b := New(start)
			b.SetCursor(pos)
			for i := 0; i < script.LetterCount; i++ {
				b.Apply(script.LetterToken(i))
				b.Apply(script.Backspace)
				require.Equal(t, start, b.Text(), "start=%q pos=%d letter=%d", start, pos, i)
				require.Equal(t, pos, b.Cursor())
			}
		}
	}
}

func TestBackspaceAtStartIsNoop(t *testing.T) {
	b := New("")
	b.Apply(script.Backspace)
	assert.Equal(t, "", b.Text())
	assert.Equal(t, 0, b.Cursor())

	b = New("ab")
	b.SetCursor(0)
	b.Apply(script.Backspace)
	assert.Equal(t, "ab", b.Text())
}

func TestTwoBackspacesClearTwoLetters(t *testing.T) {
	b := New("AB")
	b.Apply(script.Backspace)
	b.Apply(script.Backspace)
	assert.Equal(t, "", b.Text())
	assert.Equal(t, 0, b.Cursor())
}

func TestBackspaceRemovesWholeCluster(t *testing.T) {
	// e + combining acute is a single grapheme cluster.
	b := New("ae\u0301")
	b.Apply(script.Backspace)
	assert.Equal(t, "a", b.Text())

	b = New("x\r\n")
	b.Apply(script.Backspace)
	assert.Equal(t, "x", b.Text())
}

func TestInsertReplacesSelection(t *testing.T) {
	b := New("hello")
	b.SetSelection(1, 4)
	assert.Equal(t, "ell", b.SelectedText())

	b.Apply(script.Space)
	assert.Equal(t, "h o", b.Text())
	assert.Equal(t, 2, b.Cursor())
	_, ok := b.Selection()
	assert.False(t, ok)
}

func TestBackspaceDeletesSelection(t *testing.T) {
	b := New("hello")
	b.SetSelection(4, 1)
	r, ok := b.Selection()
	require.True(t, ok)
	assert.Equal(t, Range{Start: 1, End: 4}, r)

	b.Apply(script.Backspace)
	assert.Equal(t, "ho", b.Text())
	assert.Equal(t, 1, b.Cursor())
}

func TestMoveWithExtend(t *testing.T) {
	b := New("abcd")
	b.MoveBackward(true)
	b.MoveBackward(true)
	assert.Equal(t, "cd", b.SelectedText())

	b.MoveForward(false)
	assert.Equal(t, 4, b.Cursor())
	assert.Equal(t, "", b.SelectedText())

	b.MoveToStart(true)
	assert.Equal(t, "abcd", b.SelectedText())

	b.MoveBackward(false)
	assert.Equal(t, 0, b.Cursor())

	b.MoveBackward(false)
	assert.Equal(t, 0, b.Cursor())
}

func TestSelectAllAndDeleteForward(t *testing.T) {
	b := New("abc")
	b.SelectAll()
	assert.Equal(t, "abc", b.SelectedText())
	b.DeleteForward()
	assert.Equal(t, "", b.Text())

	b.Reset("abc")
	b.SetCursor(1)
	b.DeleteForward()
	assert.Equal(t, "ac", b.Text())
	b.MoveToEnd(false)
	b.DeleteForward()
	assert.Equal(t, "ac", b.Text())
}

func TestVersionBumpsOnMutation(t *testing.T) {
	b := New("")
	v := b.Version()
	b.Apply(script.LetterToken(0))
	assert.Greater(t, b.Version(), v)

	v = b.Version()
	b.SetCursor(b.Cursor())
	assert.Equal(t, v, b.Version())
}

func TestLocateAndLineBounds(t *testing.T) {
	b := New("ab\ncde\n")
	line, col := b.Locate(4)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)

	assert.Equal(t, Range{Start: 3, End: 6}, b.LineBounds(4))
	assert.Equal(t, Range{Start: 7, End: 7}, b.LineBounds(7))
	assert.Equal(t, "cde", b.Span(3, 6))
}

func TestLineStart(t *testing.T) {
	b := New("ab\r\ncd\nef")
	assert.Equal(t, 3, b.LineCount())
	assert.Equal(t, 0, b.LineStart(0))
	assert.Equal(t, 3, b.LineStart(1), "CRLF is a single cluster")
	assert.Equal(t, 6, b.LineStart(2))
	assert.Equal(t, 6, b.LineStart(9), "clamped to the last line")

	empty := New("")
	assert.Equal(t, 1, empty.LineCount())
	assert.Equal(t, 0, empty.LineStart(3))
}
