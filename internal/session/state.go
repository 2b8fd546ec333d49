package session

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/ziadkadry99/csslab/internal/catalog"
)

var (
	// ErrIndexOutOfRange is returned when selecting an index outside the catalog.
	ErrIndexOutOfRange = errors.New("exercise index out of range")
	// ErrUnknownExercise is returned for an exercise ID not in the catalog.
	ErrUnknownExercise = errors.New("unknown exercise")
)

// State is the learner's progress: the selected exercise, the edited code
// of every exercise visited so far and the completed exercise IDs.
//
// The functions in this file never mutate their input; each returns a new
// State. Completed keeps insertion order for display but holds no duplicates.
type State struct {
	CurrentIndex int               `json:"current_index"`
	HTML         map[string]string `json:"html"`
	CSS          map[string]string `json:"css"`
	Completed    []string          `json:"completed"`
}

// NewState returns the state of a first visit: exercise 0, nothing edited,
// nothing completed.
func NewState() State {
	return State{
		HTML: map[string]string{},
		CSS:  map[string]string{},
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	c := s
	c.HTML = maps.Clone(s.HTML)
	c.CSS = maps.Clone(s.CSS)
	c.Completed = slices.Clone(s.Completed)
	if c.HTML == nil {
		c.HTML = map[string]string{}
	}
	if c.CSS == nil {
		c.CSS = map[string]string{}
	}
	return c
}

// Current returns the selected exercise.
func (s State) Current() catalog.Exercise {
	return catalog.At(s.CurrentIndex)
}

// Code returns the edited code of the exercise with the given ID, falling
// back to its starter code.
func (s State) Code(id string) (html, css string) {
	ex, _ := catalog.ByID(id)
	html, ok := s.HTML[id]
	if !ok {
		html = ex.InitialHTML
	}
	css, ok = s.CSS[id]
	if !ok {
		css = ex.InitialCSS
	}
	return html, css
}

// CurrentCode returns the code of the selected exercise.
func (s State) CurrentCode() (html, css string) {
	return s.Code(s.Current().ID)
}

// IsCompleted reports whether id has been marked complete.
func (s State) IsCompleted(id string) bool {
	return slices.Contains(s.Completed, id)
}

// Seed records html and css for id unless the exercise already has edits.
func Seed(s State, id, html, css string) State {
	next := s.Clone()
	if _, ok := next.HTML[id]; !ok {
		next.HTML[id] = html
	}
	if _, ok := next.CSS[id]; !ok {
		next.CSS[id] = css
	}
	return next
}

// Select makes exercise i current, seeding its code from the catalog when
// it has never been visited. Completion is left untouched.
func Select(s State, i int) (State, error) {
	if !catalog.InRange(i) {
		return s, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, i, catalog.Len())
	}
	ex := catalog.At(i)
	next := Seed(s, ex.ID, ex.InitialHTML, ex.InitialCSS)
	next.CurrentIndex = i
	return next, nil
}

// SetHTML overwrites the current exercise's HTML verbatim.
func SetHTML(s State, text string) State {
	next := s.Clone()
	next.HTML[s.Current().ID] = text
	return next
}

// SetCSS overwrites the current exercise's CSS verbatim.
func SetCSS(s State, text string) State {
	next := s.Clone()
	next.CSS[s.Current().ID] = text
	return next
}

// Reset restores the starter code of exercise i. Completion is kept.
func Reset(s State, i int) State {
	ex := catalog.At(i)
	next := s.Clone()
	next.HTML[ex.ID] = ex.InitialHTML
	next.CSS[ex.ID] = ex.InitialCSS
	return next
}

// MarkComplete adds the current exercise to Completed. The second result
// is false when it was already there.
func MarkComplete(s State) (State, bool) {
	id := s.Current().ID
	if s.IsCompleted(id) {
		return s, false
	}
	next := s.Clone()
	next.Completed = append(next.Completed, id)
	return next, true
}
