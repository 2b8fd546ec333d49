// Package preview composes user HTML and CSS into a standalone document for
// the lab's sandboxed preview frame.
package preview

import (
	"net/http"
	"strings"
)

// SandboxPolicy is the sandbox token list applied to the preview. Scripts may
// run, but the document gets an opaque origin: no access to the host page's
// storage, cookies, navigation or DOM.
const SandboxPolicy = "allow-scripts"

const (
	head = `<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <style>
      body {
        margin: 0;
        padding: 20px;
        font-family: 'Inter', sans-serif;
      }
`
	middle = `
    </style>
  </head>
  <body>
`
	tail = `
  </body>
</html>
`
)

// Compose returns the full preview document for the given code. The CSS is
// appended to the skeleton's style block and the HTML placed in the body,
// both verbatim. Compose is deterministic.
func Compose(html, css string) string {
	var b strings.Builder
	b.Grow(len(head) + len(middle) + len(tail) + len(html) + len(css))
	b.WriteString(head)
	b.WriteString(css)
	b.WriteString(middle)
	b.WriteString(html)
	b.WriteString(tail)
	return b.String()
}

// Source supplies the code to preview.
type Source interface {
	CurrentCode() (html, css string)
}

// Handler serves the composed document for src. The response carries a CSP
// sandbox so the document stays isolated even when opened outside the frame.
func Handler(src Source) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		html, css := src.CurrentCode()
		SetIsolationHeaders(w.Header())
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(Compose(html, css)))
	})
}

// SetIsolationHeaders applies the headers every preview response must carry.
func SetIsolationHeaders(h http.Header) {
	h.Set("Content-Security-Policy", "sandbox "+SandboxPolicy)
	h.Set("X-Content-Type-Options", "nosniff")
	h.Set("Cache-Control", "no-store")
	h.Set("Referrer-Policy", "no-referrer")
}
