// Package views embeds the server-rendered HTML templates.
package views

import (
	"embed"
	"net/http"

	"github.com/gofiber/template/html/v2"
)

//go:embed layouts errors users posts tags home.html
var files embed.FS

// NewEngine returns a template engine backed by the embedded views.
// Template names are paths relative to this package without the .html
// extension, e.g. "users/index".
func NewEngine() *html.Engine {
	return html.NewFileSystem(http.FS(files), ".html")
}
