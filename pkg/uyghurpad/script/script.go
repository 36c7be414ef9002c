// Package script describes the Old Uyghur letter block and the tokens
// the on-screen keyboard emits.
package script

// Base is the first code point of the Old Uyghur block.
const Base rune = 0x10F70

// LetterCount is the number of letters offered by the keyboard.
const LetterCount = 26

// Token is one unit emitted by a keyboard key: a literal letter, a space,
// or the Backspace sentinel.
type Token string

const (
	Backspace Token = "backspace"
	Space     Token = " "
)

// Letters returns the keyboard alphabet in key order.
func Letters() []rune {
	letters := make([]rune, LetterCount)
	for i := range letters {
		letters[i] = Base + rune(i)
	}
	return letters
}

// LetterToken returns the token for the i-th letter. It panics when i is out of range.
func LetterToken(i int) Token {
	if i < 0 || i >= LetterCount {
		panic("script: letter index out of range")
	}
	return Token(string(Base + rune(i)))
}

// IsLetter reports whether r is one of the keyboard letters.
func IsLetter(r rune) bool {
	return r >= Base && r < Base+LetterCount
}

func (t Token) IsBackspace() bool {
	return t == Backspace
}

// Literal returns the text a non-backspace token inserts.
func (t Token) Literal() string {
	if t.IsBackspace() {
		return ""
	}
	return string(t)
}
