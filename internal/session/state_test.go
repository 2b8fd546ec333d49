package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziadkadry99/csslab/internal/catalog"
)

func TestSelectSeedsFromCatalog(t *testing.T) {
	for i := 0; i < catalog.Len(); i++ {
		s, err := Select(NewState(), i)
		require.NoError(t, err)

		ex := catalog.At(i)
		html, css := s.CurrentCode()
		assert.Equal(t, ex.InitialHTML, html)
		assert.Equal(t, ex.InitialCSS, css)
		assert.Equal(t, i, s.CurrentIndex)
	}
}

func TestSelectOutOfRange(t *testing.T) {
	s := NewState()
	for _, i := range []int{-1, catalog.Len(), 100} {
		next, err := Select(s, i)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, 0, next.CurrentIndex)
	}
}

func TestPureFunctionsDoNotMutateInput(t *testing.T) {
	s, _ := Select(NewState(), 0)
	before := s.Clone()

	_ = SetHTML(s, "<p>changed</p>")
	_ = SetCSS(s, "p{}")
	_, _ = MarkComplete(s)
	_ = Reset(SetCSS(s, "x"), 0)

	assert.Equal(t, before, s)
}

func TestSelectKeepsEdits(t *testing.T) {
	s, _ := Select(NewState(), 0)
	s = SetCSS(s, ".box { color: red; }")
	s, _ = Select(s, 1)
	s, _ = Select(s, 0)

	_, css := s.CurrentCode()
	assert.Equal(t, ".box { color: red; }", css)
}

func TestMarkCompleteIdempotent(t *testing.T) {
	s, _ := Select(NewState(), 2)

	s, added := MarkComplete(s)
	assert.True(t, added)
	s, added = MarkComplete(s)
	assert.False(t, added)

	assert.Equal(t, []string{"ex-3"}, s.Completed)
	assert.True(t, s.IsCompleted("ex-3"))
	assert.False(t, s.IsCompleted("ex-1"))
}

func TestSelectLeavesCompletion(t *testing.T) {
	s, _ := Select(NewState(), 0)
	s, _ = MarkComplete(s)
	s, _ = Select(s, 3)

	assert.Equal(t, []string{"ex-1"}, s.Completed)
}

func TestResetKeepsCompletion(t *testing.T) {
	s, _ := Select(NewState(), 0)
	s = SetHTML(s, "")
	s, _ = MarkComplete(s)
	s = Reset(s, 0)

	html, _ := s.CurrentCode()
	assert.Equal(t, catalog.At(0).InitialHTML, html)
	assert.True(t, s.IsCompleted("ex-1"))
}

func TestSeedDoesNotOverwrite(t *testing.T) {
	s := Seed(NewState(), "ex-2", "<a>", "a{}")
	s = Seed(s, "ex-2", "<b>", "b{}")

	html, css := s.Code("ex-2")
	assert.Equal(t, "<a>", html)
	assert.Equal(t, "a{}", css)
}

func TestCloneOfZeroState(t *testing.T) {
	var s State
	c := s.Clone()
	require.NotNil(t, c.HTML)
	require.NotNil(t, c.CSS)
	_ = SetHTML(c, "x")
	assert.Nil(t, s.HTML)
}
