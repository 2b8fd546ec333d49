// Package catalog holds the fixed, ordered list of lab exercises.
//
// The catalog is immutable: accessors return copies, and the order of the
// list is the navigation order of the lab.
package catalog

import (
	"fmt"
	"slices"
)

// Exercise is one self-contained HTML/CSS learning task.
type Exercise struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Goal        string   `json:"goal"`
	InitialHTML string   `json:"initial_html"`
	InitialCSS  string   `json:"initial_css"`
	Concepts    []string `json:"concepts"`
}

// All returns the ordered exercise list.
func All() []Exercise {
	out := make([]Exercise, len(exercises))
	for i, ex := range exercises {
		out[i] = ex.clone()
	}
	return out
}

// Len returns the number of exercises.
func Len() int { return len(exercises) }

// InRange reports whether i is a valid exercise index.
func InRange(i int) bool { return i >= 0 && i < len(exercises) }

// At returns the exercise at index i. Callers must check InRange first;
// an out-of-range index is a programming error and panics.
func At(i int) Exercise {
	if !InRange(i) {
		panic(fmt.Sprintf("catalog: index %d out of range [0,%d)", i, len(exercises)))
	}
	return exercises[i].clone()
}

// IndexOf returns the position of the exercise with the given ID, or -1.
func IndexOf(id string) int {
	return slices.IndexFunc(exercises, func(ex Exercise) bool { return ex.ID == id })
}

// ByID returns the exercise with the given ID.
func ByID(id string) (Exercise, bool) {
	i := IndexOf(id)
	if i < 0 {
		return Exercise{}, false
	}
	return exercises[i].clone(), true
}

// Validate checks that every exercise has a non-empty, unique ID.
func Validate(list []Exercise) error {
	seen := make(map[string]int, len(list))
	for i, ex := range list {
		if ex.ID == "" {
			return fmt.Errorf("exercise %d has an empty id", i)
		}
		if j, dup := seen[ex.ID]; dup {
			return fmt.Errorf("exercise id %q used at %d and %d", ex.ID, j, i)
		}
		seen[ex.ID] = i
	}
	return nil
}

func (e Exercise) clone() Exercise {
	e.Concepts = slices.Clone(e.Concepts)
	return e
}

func init() {
	if err := Validate(exercises); err != nil {
		panic("catalog: " + err.Error())
	}
}
