// Package session tracks which exercise the learner is on, what they typed
// and what they finished, and writes every change through to a kv.Store.
package session

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"go.uber.org/zap"

	"github.com/ziadkadry99/csslab/internal/catalog"
	"github.com/ziadkadry99/csslab/internal/kv"
	"github.com/ziadkadry99/csslab/internal/preview"
)

// Storage keys.
const (
	KeyCompleted = "completed-exercises"
	KeyCurrent   = "current-exercise"
)

// HTMLKey returns the storage key of an exercise's edited HTML.
func HTMLKey(id string) string { return "html-" + id }

// CSSKey returns the storage key of an exercise's edited CSS.
func CSSKey(id string) string { return "css-" + id }

// Toast texts shown to the learner.
const (
	MsgReset      = "Codice ripristinato!"
	MsgCompleted  = "Esercizio completato! 🎉"
	MsgSaveFailed = "Impossibile salvare le modifiche"
	MsgLoadFailed = "Impossibile leggere i dati salvati"
)

// Notifier shows transient messages to the learner.
type Notifier interface {
	Success(ctx context.Context, message string)
	Warn(ctx context.Context, message string)
}

// Snapshot is a read-only view of the session for rendering.
type Snapshot struct {
	Index     int              `json:"index"`
	Exercise  catalog.Exercise `json:"exercise"`
	HTML      string           `json:"html"`
	CSS       string           `json:"css"`
	Completed []string         `json:"completed"`
}

// Manager owns the session state. All methods are serialised, so the
// store sees a single writer and the last write to a key wins.
type Manager struct {
	mu       sync.Mutex
	state    State
	store    kv.Store
	notifier Notifier
	logger   *zap.Logger

	// completedUnread is set while the stored completed set could not be
	// read. Writing the key then would drop the entries we never saw.
	completedUnread bool
}

// NewManager creates a Manager on exercise 0. Call Load to restore
// persisted progress.
func NewManager(store kv.Store, notifier Notifier, logger *zap.Logger) *Manager {
	if logger == nil {
		logger = zap.NewNop()
	}
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &Manager{
		state:    NewState(),
		store:    store,
		notifier: notifier,
		logger:   logger,
	}
}

// Load restores the selected exercise and the completed set from the store.
// Read failures fall back to defaults.
func (m *Manager) Load(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	completed, err := kv.GetOr(ctx, m.store, KeyCompleted, []string{})
	m.completedUnread = err != nil
	if err != nil {
		m.readFailed(ctx, KeyCompleted, err)
	}
	index, err := kv.GetOr(ctx, m.store, KeyCurrent, 0)
	if err != nil {
		m.readFailed(ctx, KeyCurrent, err)
	}
	if !catalog.InRange(index) {
		m.logger.Warn("stored exercise index out of range, using 0", zap.Int("index", index))
		index = 0
	}

	next := NewState()
	for _, id := range completed {
		if !slices.Contains(next.Completed, id) {
			next.Completed = append(next.Completed, id)
		}
	}
	m.state = next
	m.selectLocked(ctx, index)
}

// SelectExercise makes exercise index current. Its code comes from the
// store when it was edited before, otherwise from the catalog.
func (m *Manager) SelectExercise(ctx context.Context, index int) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !catalog.InRange(index) {
		return fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, catalog.Len())
	}
	m.selectLocked(ctx, index)
	m.persist(ctx, KeyCurrent, index)
	return nil
}

func (m *Manager) selectLocked(ctx context.Context, index int) {
	ex := catalog.At(index)
	if _, seen := m.state.HTML[ex.ID]; !seen {
		html, err := kv.GetOr(ctx, m.store, HTMLKey(ex.ID), ex.InitialHTML)
		if err != nil {
			m.readFailed(ctx, HTMLKey(ex.ID), err)
		}
		css, err := kv.GetOr(ctx, m.store, CSSKey(ex.ID), ex.InitialCSS)
		if err != nil {
			m.readFailed(ctx, CSSKey(ex.ID), err)
		}
		m.state = Seed(m.state, ex.ID, html, css)
	}
	// In range, so Select cannot fail.
	m.state, _ = Select(m.state, index)
}

// UpdateHTML replaces the current exercise's HTML and returns the
// recomposed preview document.
func (m *Manager) UpdateHTML(ctx context.Context, text string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = SetHTML(m.state, text)
	m.persist(ctx, HTMLKey(m.state.Current().ID), text)
	return preview.Compose(m.state.CurrentCode())
}

// UpdateCSS replaces the current exercise's CSS and returns the
// recomposed preview document.
func (m *Manager) UpdateCSS(ctx context.Context, text string) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.state = SetCSS(m.state, text)
	m.persist(ctx, CSSKey(m.state.Current().ID), text)
	return preview.Compose(m.state.CurrentCode())
}

// ResetCurrent restores the current exercise's starter code and returns
// the recomposed preview document. Completion status is kept.
func (m *Manager) ResetCurrent(ctx context.Context) string {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.resetLocked(ctx, m.state.CurrentIndex)
	m.notifier.Success(ctx, MsgReset)
	return preview.Compose(m.state.CurrentCode())
}

// ResetExercise restores the starter code of the exercise with the given
// ID without changing the selection.
func (m *Manager) ResetExercise(ctx context.Context, id string) error {
	i := catalog.IndexOf(id)
	if i < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownExercise, id)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.resetLocked(ctx, i)
	m.notifier.Success(ctx, MsgReset)
	return nil
}

func (m *Manager) resetLocked(ctx context.Context, index int) {
	ex := catalog.At(index)
	m.state = Reset(m.state, index)
	m.persist(ctx, HTMLKey(ex.ID), ex.InitialHTML)
	m.persist(ctx, CSSKey(ex.ID), ex.InitialCSS)
}

// MarkCurrentComplete adds the current exercise to the completed set.
// Marking an exercise twice has the same effect as once.
func (m *Manager) MarkCurrentComplete(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	next, added := MarkComplete(m.state)
	if added {
		m.state = next
		if m.mergeStoredCompleted(ctx) {
			m.persist(ctx, KeyCompleted, m.state.Completed)
		}
	}
	m.notifier.Success(ctx, MsgCompleted)
}

// mergeStoredCompleted retries a completed set that failed to load and
// merges it into the state. It reports whether the key may be written.
func (m *Manager) mergeStoredCompleted(ctx context.Context) bool {
	if !m.completedUnread {
		return true
	}
	stored, err := kv.GetOr(ctx, m.store, KeyCompleted, []string{})
	if err != nil {
		m.logger.Warn("completed set still unreadable, not overwriting it", zap.Error(err))
		m.notifier.Warn(ctx, MsgSaveFailed)
		return false
	}
	merged := make([]string, 0, len(stored)+len(m.state.Completed))
	for _, id := range append(stored, m.state.Completed...) {
		if !slices.Contains(merged, id) {
			merged = append(merged, id)
		}
	}
	m.state.Completed = merged
	m.completedUnread = false
	return true
}

// Snapshot returns a copy of the session for rendering.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	html, css := m.state.CurrentCode()
	return Snapshot{
		Index:     m.state.CurrentIndex,
		Exercise:  m.state.Current(),
		HTML:      html,
		CSS:       css,
		Completed: slices.Clone(m.state.Completed),
	}
}

// State returns a deep copy of the full session state.
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.Clone()
}

// CurrentCode returns the HTML and CSS of the selected exercise.
func (m *Manager) CurrentCode() (html, css string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.CurrentCode()
}

// Preview returns the composed document for the selected exercise.
func (m *Manager) Preview() string {
	return preview.Compose(m.CurrentCode())
}

// IsCompleted reports whether the exercise with the given ID is complete.
func (m *Manager) IsCompleted(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state.IsCompleted(id)
}

// persist writes value under key. A failed write is logged and reported
// to the learner; the in-memory state keeps the new value.
func (m *Manager) persist(ctx context.Context, key string, value any) {
	if err := m.store.Set(ctx, key, value); err != nil {
		m.logger.Error("write-through failed", zap.String("key", key), zap.Error(err))
		m.notifier.Warn(ctx, MsgSaveFailed)
	}
}

func (m *Manager) readFailed(ctx context.Context, key string, err error) {
	m.logger.Error("reading stored value failed", zap.String("key", key), zap.Error(err))
	m.notifier.Warn(ctx, MsgLoadFailed)
}

type nopNotifier struct{}

func (nopNotifier) Success(context.Context, string) {}
func (nopNotifier) Warn(context.Context, string)    {}
