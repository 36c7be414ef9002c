package script

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLettersAreConsecutive(t *testing.T) {
	letters := Letters()
	assert.Len(t, letters, LetterCount)
	assert.Equal(t, rune(0x10F70), letters[0])
	assert.Equal(t, rune(0x10F89), letters[LetterCount-1])
	for i, r := range letters {
		assert.True(t, IsLetter(r), "letter %d", i)
	}
	assert.False(t, IsLetter(0x10F8A))
	assert.False(t, IsLetter('a'))
}

func TestTokens(t *testing.T) {
	assert.Equal(t, Token("\U00010F72"), LetterToken(2))
	assert.True(t, Backspace.IsBackspace())
	assert.False(t, Space.IsBackspace())
	assert.Equal(t, "", Backspace.Literal())
	assert.Equal(t, " ", Space.Literal())
	assert.Panics(t, func() { LetterToken(LetterCount) })
}
