package handler

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/venue-booking/internal/apperror"
	"github.com/sakif/venue-booking/internal/flash"
)

// Datetime styles understood by the "datetime" template function.
const (
	fullLayout   = "Monday January, 2, 2006 at 3:04PM"
	mediumLayout = "Mon 01, 02, 2006 3:04PM"
)

// pageDirs are the template directories holding one page each. Every page
// is parsed together with base.html and the partials, and is looked up by
// its path without extension, e.g. "forms/venue".
var pageDirs = []string{"pages", "forms", "errors"}

// pageData is what every template receives. Data is page specific.
type pageData struct {
	Title   string
	Flashes []flash.Message
	Data    any
}

// Renderer executes page templates and owns the error pages.
//
// TEMPLATE COMPOSITION:
// base.html defines the "base" layout with a {{template "content" .}}
// placeholder. Each page file defines "content". Because two
// pages cannot both define "content" in one template set, every page gets
// its own clone of the base set.
type Renderer struct {
	pages   map[string]*template.Template
	flashes *flash.Store
	logger  *slog.Logger
}

// NewRenderer parses every page under templates/ in fsys.
func NewRenderer(fsys fs.FS, flashes *flash.Store, logger *slog.Logger) (*Renderer, error) {
	base, err := template.New("base.html").Funcs(templateFuncs()).ParseFS(fsys,
		"templates/base.html",
		"templates/partials/*.html",
	)
	if err != nil {
		return nil, fmt.Errorf("handler: parsing layout: %w", err)
	}

	pages := make(map[string]*template.Template)
	for _, dir := range pageDirs {
		files, err := fs.Glob(fsys, path.Join("templates", dir, "*.html"))
		if err != nil {
			return nil, fmt.Errorf("handler: listing %s templates: %w", dir, err)
		}
		for _, file := range files {
			t, err := base.Clone()
			if err != nil {
				return nil, fmt.Errorf("handler: cloning layout: %w", err)
			}
			if _, err := t.ParseFS(fsys, file); err != nil {
				return nil, fmt.Errorf("handler: parsing %s: %w", file, err)
			}
			name := strings.TrimSuffix(strings.TrimPrefix(file, "templates/"), ".html")
			pages[name] = t
		}
	}

	return &Renderer{pages: pages, flashes: flashes, logger: logger}, nil
}

func templateFuncs() template.FuncMap {
	return template.FuncMap{
		"datetime": formatDatetime,
		"join":     strings.Join,
	}
}

// formatDatetime renders t in the "full" or "medium" (default) style.
func formatDatetime(t time.Time, style ...string) string {
	if t.IsZero() {
		return ""
	}
	if len(style) > 0 && style[0] == "full" {
		return t.Format(fullLayout)
	}
	return t.Format(mediumLayout)
}

// Page renders a page with the given status. Pending flash messages are
// consumed here, so they appear on whichever page is rendered next.
//
// The template is executed into a buffer first: a template error then
// becomes a clean 500 instead of a half-written page.
func (rd *Renderer) Page(w http.ResponseWriter, r *http.Request, status int, page, title string, data any) {
	t, ok := rd.pages[page]
	if !ok {
		rd.logger.Error("unknown template", slog.String("page", page))
		rd.ServerError(w, r)
		return
	}

	pd := pageData{Title: title, Data: data}
	if rd.flashes != nil {
		pd.Flashes = rd.flashes.Pop(w, r)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "base", pd); err != nil {
		rd.logger.Error("failed to render template",
			slog.String("page", page),
			slog.String("request_id", chimiddleware.GetReqID(r.Context())),
			slog.String("error", err.Error()),
		)
		if page != "errors/500" {
			rd.ServerError(w, r)
		} else {
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// NotFound renders the 404 page. It doubles as the router's NotFound handler.
func (rd *Renderer) NotFound(w http.ResponseWriter, r *http.Request) {
	rd.Page(w, r, http.StatusNotFound, "errors/404", "Not Found", nil)
}

// ServerError renders the 500 page.
func (rd *Renderer) ServerError(w http.ResponseWriter, r *http.Request) {
	rd.Page(w, r, http.StatusInternalServerError, "errors/500", "Server Error", nil)
}

// MethodNotAllowed answers a known path hit with the wrong method.
func (rd *Renderer) MethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
}

// Error maps a service error to a response: missing records get the 404
// page, everything else is logged and gets the 500 page.
//
// Validation and reference errors never reach here; the form handlers
// re-render the form for those.
func (rd *Renderer) Error(w http.ResponseWriter, r *http.Request, err error) {
	if errors.Is(err, apperror.ErrNotFound) {
		rd.NotFound(w, r)
		return
	}

	rd.logger.Error("request failed",
		slog.String("request_id", chimiddleware.GetReqID(r.Context())),
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.String("error", err.Error()),
	)
	rd.ServerError(w, r)
}

// flash queues a message, logging rather than failing the request if the
// cookie cannot be signed.
func (rd *Renderer) flash(w http.ResponseWriter, r *http.Request, kind, text string) {
	if rd.flashes == nil {
		return
	}
	if err := rd.flashes.Add(w, r, kind, text); err != nil {
		rd.logger.Warn("failed to set flash message", slog.String("error", err.Error()))
	}
}
