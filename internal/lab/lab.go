// Package lab serves the learner-facing page: exercise navigation, the
// brief, the HTML and CSS editors and the sandboxed live preview.
package lab

import (
	"sync"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ziadkadry99/csslab/internal/notify"
	"github.com/ziadkadry99/csslab/internal/preview"
	"github.com/ziadkadry99/csslab/internal/session"
)

// Lab wires the session manager and the toast dispatcher to HTTP.
type Lab struct {
	manager    *session.Manager
	dispatcher *notify.Dispatcher
	logger     *zap.Logger
	briefs     map[string]brief

	liveMu sync.Mutex
	live   map[*liveConn]struct{}
}

// New creates a Lab. dispatcher may be nil when toasts are not pushed live.
func New(manager *session.Manager, dispatcher *notify.Dispatcher, logger *zap.Logger) (*Lab, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	briefs, err := renderBriefs()
	if err != nil {
		return nil, err
	}
	return &Lab{
		manager:    manager,
		dispatcher: dispatcher,
		logger:     logger,
		briefs:     briefs,
		live:       make(map[*liveConn]struct{}),
	}, nil
}

// RegisterRoutes mounts all lab routes onto the given router.
func (l *Lab) RegisterRoutes(r chi.Router) {
	r.Get("/", l.ServeIndex)
	r.Post("/exercises/{index}", l.handleSelectPage)
	r.Handle("/preview", preview.Handler(l.manager))

	r.Route("/api", func(r chi.Router) {
		r.Get("/exercises", l.handleExercises)
		r.Get("/state", l.handleState)
		r.Post("/exercises/{index}/select", l.handleSelect)
		r.Put("/code/html", l.handleUpdateHTML)
		r.Put("/code/css", l.handleUpdateCSS)
		r.Post("/reset", l.handleReset)
		r.Post("/reset/{id}", l.handleResetExercise)
		r.Post("/complete", l.handleComplete)
	})

	r.Get("/ws", l.handleWebSocket)
}
