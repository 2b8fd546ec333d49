package lab

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ziadkadry99/csslab/internal/catalog"
	"github.com/ziadkadry99/csslab/internal/session"
)

// maxCodeBytes caps a single editor submission.
const maxCodeBytes = 1 << 20

// exerciseItem is one entry of the exercises endpoint.
type exerciseItem struct {
	Index     int `json:"index"`
	catalog.Exercise
	Completed bool `json:"completed"`
}

// codeResponse is returned after every change to the code.
type codeResponse struct {
	State   session.Snapshot `json:"state"`
	Preview string           `json:"preview"`
}

func (l *Lab) handleExercises(w http.ResponseWriter, r *http.Request) {
	all := catalog.All()
	items := make([]exerciseItem, len(all))
	for i, ex := range all {
		items[i] = exerciseItem{
			Index:     i,
			Exercise:  ex,
			Completed: l.manager.IsCompleted(ex.ID),
		}
	}
	writeJSON(w, http.StatusOK, items)
}

func (l *Lab) handleState(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, l.manager.Snapshot())
}

func (l *Lab) handleSelect(w http.ResponseWriter, r *http.Request) {
	if err := l.selectFromURL(r); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, codeResponse{
		State:   l.manager.Snapshot(),
		Preview: l.manager.Preview(),
	})
}

func (l *Lab) handleSelectPage(w http.ResponseWriter, r *http.Request) {
	if err := l.selectFromURL(r); err != nil {
		writeError(w, err)
		return
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (l *Lab) selectFromURL(r *http.Request) error {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		return session.ErrIndexOutOfRange
	}
	return l.manager.SelectExercise(r.Context(), index)
}

func (l *Lab) handleUpdateHTML(w http.ResponseWriter, r *http.Request) {
	text, err := readCode(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	doc := l.manager.UpdateHTML(r.Context(), text)
	writeJSON(w, http.StatusOK, codeResponse{State: l.manager.Snapshot(), Preview: doc})
}

func (l *Lab) handleUpdateCSS(w http.ResponseWriter, r *http.Request) {
	text, err := readCode(w, r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusRequestEntityTooLarge)
		return
	}
	doc := l.manager.UpdateCSS(r.Context(), text)
	writeJSON(w, http.StatusOK, codeResponse{State: l.manager.Snapshot(), Preview: doc})
}

func (l *Lab) handleReset(w http.ResponseWriter, r *http.Request) {
	doc := l.manager.ResetCurrent(r.Context())
	writeJSON(w, http.StatusOK, codeResponse{State: l.manager.Snapshot(), Preview: doc})
}

// handleResetExercise resets an exercise by ID without changing the
// selection. Open pages receive the new state.
func (l *Lab) handleResetExercise(w http.ResponseWriter, r *http.Request) {
	if err := l.manager.ResetExercise(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	l.broadcastState()
	writeJSON(w, http.StatusOK, l.manager.Snapshot())
}

func (l *Lab) handleComplete(w http.ResponseWriter, r *http.Request) {
	l.manager.MarkCurrentComplete(r.Context())
	writeJSON(w, http.StatusOK, l.manager.Snapshot())
}

// readCode returns the raw request body. The code is stored verbatim.
func readCode(w http.ResponseWriter, r *http.Request) (string, error) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxCodeBytes))
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, session.ErrIndexOutOfRange) || errors.Is(err, session.ErrUnknownExercise) {
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
