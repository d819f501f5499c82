package ui

import (
	"html/template"
	"net/http"
	"sync"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

var methodsOnce sync.Once
var methodsHTML template.HTML

// handleMethods serves the statistical methods write-up, rendered from
// the embedded markdown document.
func (a *App) handleMethods(w http.ResponseWriter, r *http.Request) {
	methodsOnce.Do(func() {
		source, err := embeddedFiles.ReadFile("methods.md")
		if err != nil {
			a.logger.Error("methods.md: %v", err)
			return
		}
		p := parser.NewWithExtensions(parser.CommonExtensions | parser.AutoHeadingIDs)
		renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
		methodsHTML = template.HTML(markdown.ToHTML(source, p, renderer))
	})

	a.renderTemplate(w, "methods.html", map[string]interface{}{
		"Title":   "Methods",
		"Content": methodsHTML,
	})
}
