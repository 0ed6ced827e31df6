// Package render turns fetched records into the HTML fragments swapped into
// the page's #repositories and #commits regions.
package render

import (
	"embed"
	"html/template"
	"io"
	"net/url"

	"emperror.dev/errors"

	"github.com/naka-gawa/repo-browser/internal/domain"
	"github.com/naka-gawa/repo-browser/internal/usecase"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer executes the embedded templates. It is safe for concurrent use.
type Renderer struct {
	templates *template.Template
}

// PageData is the input of the page shell. A nil Page leaves both regions
// empty so that the client loads them itself.
type PageData struct {
	User string
	Page *usecase.Page
}

// New parses the embedded templates.
func New() (*Renderer, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"pathEscape": url.PathEscape,
	}).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse templates")
	}
	return &Renderer{templates: tmpl}, nil
}

// RepositoryList writes the repository list fragment. Every item carries a
// "Get Commits" trigger tagged with the repository name.
func (r *Renderer) RepositoryList(w io.Writer, repos []domain.Repository) error {
	return r.execute(w, "repositories", repos)
}

// CommitList writes the author/message list fragment.
func (r *Renderer) CommitList(w io.Writer, commits []domain.Commit) error {
	return r.execute(w, "commits", commits)
}

// Page writes the full page shell.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	return r.execute(w, "page", data)
}

func (r *Renderer) execute(w io.Writer, name string, data interface{}) error {
	if err := r.templates.ExecuteTemplate(w, name, data); err != nil {
		return errors.Wrapf(err, "failed to render %s", name)
	}
	return nil
}
