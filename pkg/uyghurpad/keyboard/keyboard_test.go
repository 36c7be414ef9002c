package keyboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oldscript/uyghurpad/pkg/uyghurpad/script"
)

func TestKeySet(t *testing.T) {
	for _, variant := range []Variant{Desktop, Mobile} {
		kb := New(variant, nil)
		keys := kb.Keys()
		require.Len(t, keys, script.LetterCount+2, variant.String())

		for i := 0; i < script.LetterCount; i++ {
			assert.Equal(t, KindLetter, keys[i].Kind)
			assert.Equal(t, script.LetterToken(i), keys[i].Token)
		}
		assert.Equal(t, script.Space, keys[script.LetterCount].Token)
		assert.Equal(t, script.Backspace, keys[script.LetterCount+1].Token)
	}

	mobile := New(Mobile, nil).Keys()
	assert.Equal(t, 2, mobile[script.LetterCount].Span)
	assert.Equal(t, 2, mobile[script.LetterCount+1].Span)
	assert.Equal(t, 1, New(Desktop, nil).Keys()[script.LetterCount].Span)
}

func TestRowsCoverEveryKeyOnce(t *testing.T) {
	for _, variant := range []Variant{Desktop, Mobile} {
		kb := New(variant, nil)
		seen := map[int]bool{}
		for _, row := range kb.Rows() {
			for _, idx := range row {
				assert.False(t, seen[idx], "duplicate key %d", idx)
				seen[idx] = true
			}
		}
		assert.Len(t, seen, len(kb.Keys()))
	}
}

func TestActivateEmitsToken(t *testing.T) {
	var got []script.Token
	kb := New(Desktop, func(tok script.Token) { got = append(got, tok) })

	kb.Activate(0)
	kb.Activate(script.LetterCount + 1)
	kb.Activate(-1)
	kb.Activate(100)

	assert.Equal(t, []script.Token{script.LetterToken(0), script.Backspace}, got)
}

func TestNavigateWraps(t *testing.T) {
	var got []script.Token
	kb := New(Desktop, func(tok script.Token) { got = append(got, tok) })

	kb.Navigate(Left)
	assert.Equal(t, 8, kb.Selected())

	kb.Navigate(Right)
	assert.Equal(t, 0, kb.Selected())

	kb.Navigate(Up)
	assert.Equal(t, script.LetterCount, kb.Selected(), "wraps to the control row")

	kb.Navigate(Right)
	kb.ActivateSelected()
	assert.Equal(t, []script.Token{script.Backspace}, got)

	kb.Navigate(Down)
	assert.Equal(t, 1, kb.Selected())
}

func TestNavigateClampsShortRow(t *testing.T) {
	kb := New(Mobile, nil)
	kb.Select(6)
	kb.Navigate(Down)
	kb.Navigate(Down)
	kb.Navigate(Down)
	assert.Equal(t, 25, kb.Selected())
}
