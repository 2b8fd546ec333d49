package lab

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"

	"github.com/ziadkadry99/csslab/internal/catalog"
)

// brief is the pre-rendered, read-only part of an exercise card.
type brief struct {
	Goal    template.HTML
	Starter template.HTML
}

// renderBriefs renders the goal and the highlighted starter code of every
// exercise once; the catalog never changes at run time.
func renderBriefs() (map[string]brief, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
	)

	out := make(map[string]brief, catalog.Len())
	for _, ex := range catalog.All() {
		goal, err := renderMarkdown(md, "**Obiettivo:** "+ex.Goal)
		if err != nil {
			return nil, fmt.Errorf("rendering goal of %s: %w", ex.ID, err)
		}
		starter, err := renderMarkdown(md, fmt.Sprintf("```html\n%s\n```\n\n```css\n%s\n```\n", ex.InitialHTML, ex.InitialCSS))
		if err != nil {
			return nil, fmt.Errorf("rendering starter code of %s: %w", ex.ID, err)
		}
		out[ex.ID] = brief{Goal: goal, Starter: starter}
	}
	return out, nil
}

func renderMarkdown(md goldmark.Markdown, src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := md.Convert([]byte(src), &buf); err != nil {
		return "", err
	}
	// Raw HTML in the source is dropped by goldmark's default renderer.
	return template.HTML(buf.String()), nil
}
