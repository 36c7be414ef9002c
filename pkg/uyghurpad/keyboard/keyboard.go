// Package keyboard is the on-screen Old Uyghur keyboard model. It owns the
// key set, the row layout and the D-pad selection. Whether the keyboard is
// shown is decided by its owner.
package keyboard

import (
	"github.com/oldscript/uyghurpad/pkg/uyghurpad/script"
)

type Variant int

const (
	Desktop Variant = iota
	Mobile
)

func (v Variant) String() string {
	if v == Mobile {
		return "mobile"
	}
	return "desktop"
}

type Kind int

const (
	KindLetter Kind = iota
	KindSpace
	KindBackspace
)

type Key struct {
	Kind  Kind
	Token script.Token
	Label string
	// Span is the width of the key in letter-key units.
	Span int
}

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// EmitFunc receives every token produced by a key activation.
type EmitFunc func(script.Token)

type Keyboard struct {
	variant  Variant
	keys     []Key
	rows     [][]int
	selected int
	emit     EmitFunc
}

func New(variant Variant, emit EmitFunc) *Keyboard {
	kb := &Keyboard{
		variant: variant,
		keys:    createKeys(variant),
		emit:    emit,
	}
	kb.rows = createRows(variant, len(kb.keys))
	return kb
}

func createKeys(variant Variant) []Key {
	keys := make([]Key, 0, script.LetterCount+2)
	for i := 0; i < script.LetterCount; i++ {
		tok := script.LetterToken(i)
		keys = append(keys, Key{Kind: KindLetter, Token: tok, Label: string(tok), Span: 1})
	}

	controlSpan := 1
	if variant == Mobile {
		controlSpan = 2
	}
	keys = append(keys,
		Key{Kind: KindSpace, Token: script.Space, Label: "␣", Span: controlSpan},
		Key{Kind: KindBackspace, Token: script.Backspace, Label: "⌫", Span: controlSpan},
	)
	return keys
}

// createRows lays the letters out left to right, then puts space and
// backspace on their own row.
func createRows(variant Variant, keyCount int) [][]int {
	perRow := 9
	if variant == Mobile {
		perRow = 7
	}

	var rows [][]int
	for start := 0; start < script.LetterCount; start += perRow {
		end := min(start+perRow, script.LetterCount)
		row := make([]int, 0, end-start)
		for i := start; i < end; i++ {
			row = append(row, i)
		}
		rows = append(rows, row)
	}
	rows = append(rows, []int{keyCount - 2, keyCount - 1})
	return rows
}

func (kb *Keyboard) Variant() Variant {
	return kb.variant
}

func (kb *Keyboard) Keys() []Key {
	return kb.keys
}

// Rows returns key indexes grouped by visual row.
func (kb *Keyboard) Rows() [][]int {
	return kb.rows
}

func (kb *Keyboard) Selected() int {
	return kb.selected
}

func (kb *Keyboard) Select(index int) {
	if index < 0 || index >= len(kb.keys) {
		return
	}
	kb.selected = index
}

// SetEmit replaces the token sink.
func (kb *Keyboard) SetEmit(emit EmitFunc) {
	kb.emit = emit
}

// Activate emits the token of key i. Out-of-range indexes are ignored.
func (kb *Keyboard) Activate(index int) {
	if index < 0 || index >= len(kb.keys) {
		return
	}
	kb.selected = index
	if kb.emit != nil {
		kb.emit(kb.keys[index].Token)
	}
}

func (kb *Keyboard) ActivateSelected() {
	kb.Activate(kb.selected)
}

// Navigate moves the selection one key in dir, wrapping at the edges.
func (kb *Keyboard) Navigate(dir Direction) {
	row, col := kb.findCurrentPosition()

	switch dir {
	case Up:
		row, col = kb.moveUp(row, col)
	case Down:
		row, col = kb.moveDown(row, col)
	case Left:
		row, col = kb.moveLeft(row, col)
	case Right:
		row, col = kb.moveRight(row, col)
	}

	kb.selected = kb.rows[row][col]
}

func (kb *Keyboard) findCurrentPosition() (int, int) {
	for r, row := range kb.rows {
		for c, idx := range row {
			if idx == kb.selected {
				return r, c
			}
		}
	}
	return 0, 0
}

func (kb *Keyboard) moveUp(row, col int) (int, int) {
	newRow := row - 1
	if newRow < 0 {
		newRow = len(kb.rows) - 1
	}
	return newRow, clampCol(kb.rows[newRow], col)
}

func (kb *Keyboard) moveDown(row, col int) (int, int) {
	newRow := row + 1
	if newRow >= len(kb.rows) {
		newRow = 0
	}
	return newRow, clampCol(kb.rows[newRow], col)
}

func (kb *Keyboard) moveLeft(row, col int) (int, int) {
	newCol := col - 1
	if newCol < 0 {
		newCol = len(kb.rows[row]) - 1
	}
	return row, newCol
}

func (kb *Keyboard) moveRight(row, col int) (int, int) {
	newCol := col + 1
	if newCol >= len(kb.rows[row]) {
		newCol = 0
	}
	return row, newCol
}

func clampCol(row []int, col int) int {
	if col >= len(row) {
		return len(row) - 1
	}
	return col
}
