package preview

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestComposeDeterministic(t *testing.T) {
	html := "<div class=\"box\">\n  Ciao mondo!\n</div>"
	css := ".box { background-color: red; }"

	a := Compose(html, css)
	b := Compose(html, css)
	if a != b {
		t.Fatal("Compose is not deterministic")
	}
}

func TestComposeLayout(t *testing.T) {
	doc := Compose("<p>hi</p>", "p { color: blue; }")

	if !strings.HasPrefix(doc, "<!DOCTYPE html>") {
		t.Errorf("document should start with doctype, got %q", doc[:20])
	}
	for _, want := range []string{"margin: 0;", "padding: 20px;", "font-family: 'Inter', sans-serif;"} {
		if !strings.Contains(doc, want) {
			t.Errorf("skeleton missing %q", want)
		}
	}

	styleStart := strings.Index(doc, "<style>")
	styleEnd := strings.Index(doc, "</style>")
	cssAt := strings.Index(doc, "p { color: blue; }")
	if !(styleStart < cssAt && cssAt < styleEnd) {
		t.Error("user CSS should be inside the style block")
	}

	bodyStart := strings.Index(doc, "<body>")
	bodyEnd := strings.Index(doc, "</body>")
	htmlAt := strings.Index(doc, "<p>hi</p>")
	if !(bodyStart < htmlAt && htmlAt < bodyEnd) {
		t.Error("user HTML should be inside the body")
	}
}

func TestComposeNoEscaping(t *testing.T) {
	html := `<script>document.body.dataset.x = "<&>"</script>`
	css := `.a::after { content: "</style>"; }`

	doc := Compose(html, css)
	if !strings.Contains(doc, html) {
		t.Error("HTML must be passed through verbatim")
	}
	if !strings.Contains(doc, css) {
		t.Error("CSS must be passed through verbatim")
	}
}

func TestComposeEmpty(t *testing.T) {
	if Compose("", "") != head+middle+tail {
		t.Error("empty code should yield the bare skeleton")
	}
}

type fixedSource struct{ html, css string }

func (f fixedSource) CurrentCode() (string, string) { return f.html, f.css }

func TestHandlerIsolation(t *testing.T) {
	h := Handler(fixedSource{html: "<b>x</b>", css: "b{}"})

	req := httptest.NewRequest(http.MethodGet, "/preview", nil)
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if got := w.Header().Get("Content-Security-Policy"); got != "sandbox allow-scripts" {
		t.Errorf("Content-Security-Policy = %q", got)
	}
	if got := w.Header().Get("Content-Type"); !strings.HasPrefix(got, "text/html") {
		t.Errorf("Content-Type = %q", got)
	}
	if w.Body.String() != Compose("<b>x</b>", "b{}") {
		t.Error("handler body differs from Compose output")
	}
}
