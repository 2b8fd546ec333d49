package lab

import (
	"bytes"
	_ "embed"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"github.com/ziadkadry99/csslab/internal/catalog"
	"github.com/ziadkadry99/csslab/internal/preview"
	"github.com/ziadkadry99/csslab/internal/session"
)

//go:embed index.html
var indexHTML string

var pageTemplate = template.Must(template.New("index").Parse(indexHTML))

// navItem is one exercise button in the header.
type navItem struct {
	Index     int
	Number    int
	ID        string
	Title     string
	Active    bool
	Completed bool
}

// pageData is the data passed to index.html.
type pageData struct {
	Nav       []navItem
	Exercise  catalog.Exercise
	Brief     brief
	Completed bool
	HTML      string
	CSS       string
	Sandbox   string
	Messages  toastMessages
}

// toastMessages are shown by the page when it confirms an action itself.
type toastMessages struct {
	Reset     string
	Completed string
}

// ServeIndex renders the lab page for the current exercise.
func (l *Lab) ServeIndex(w http.ResponseWriter, r *http.Request) {
	snap := l.manager.Snapshot()

	data := pageData{
		Exercise:  snap.Exercise,
		Brief:     l.briefs[snap.Exercise.ID],
		Completed: l.manager.IsCompleted(snap.Exercise.ID),
		HTML:      snap.HTML,
		CSS:       snap.CSS,
		Sandbox:   preview.SandboxPolicy,
		Messages:  toastMessages{Reset: session.MsgReset, Completed: session.MsgCompleted},
	}
	for i, ex := range catalog.All() {
		data.Nav = append(data.Nav, navItem{
			Index:     i,
			Number:    i + 1,
			ID:        ex.ID,
			Title:     ex.Title,
			Active:    i == snap.Index,
			Completed: l.manager.IsCompleted(ex.ID),
		})
	}

	var buf bytes.Buffer
	if err := pageTemplate.Execute(&buf, data); err != nil {
		l.logger.Error("rendering lab page", zap.Error(err))
		http.Error(w, "rendering page failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(buf.Bytes())
}
