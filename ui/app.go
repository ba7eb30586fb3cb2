package ui

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"

	"goexpt/app"
	"goexpt/internal"
	"goexpt/internal/errors"
)

// App serves comparison reports over HTTP: JSON for tooling, Markdown
// and rendered HTML for browsers.
type App struct {
	router     *chi.Mux
	comparator *app.Comparator
	valueCol   int
	logger     *internal.Logger
	port       string
}

// Config holds report server configuration
type Config struct {
	Port        string
	ValueColumn int
}

// NewApp creates the report server over an already configured comparator
func NewApp(cfg Config, comparator *app.Comparator, logger *internal.Logger) *App {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	a := &App{
		router:     chi.NewRouter(),
		comparator: comparator,
		valueCol:   cfg.ValueColumn,
		logger:     logger,
		port:       cfg.Port,
	}

	a.router.Use(middleware.Recoverer)
	a.router.Get("/", a.handleHTMLReport)
	a.router.Get("/report", a.handleJSONReport)
	a.router.Get("/report/markdown", a.handleMarkdownReport)
	return a
}

// Run starts the HTTP server and blocks
func (a *App) Run() error {
	addr := ":" + a.port
	a.logger.Info("report server listening on %s", addr)
	return http.ListenAndServe(addr, a.router)
}

func (a *App) buildReport(r *http.Request) (*app.Report, error) {
	return a.comparator.BuildReport(r.Context(), a.valueCol)
}

func (a *App) handleJSONReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.buildReport(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(report); err != nil {
		a.logger.Error("failed to encode report: %v", err)
	}
}

func (a *App) handleMarkdownReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.buildReport(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/markdown; charset=utf-8")
	fmt.Fprint(w, report.Markdown())
}

func (a *App) handleHTMLReport(w http.ResponseWriter, r *http.Request) {
	report, err := a.buildReport(r)
	if err != nil {
		a.fail(w, err)
		return
	}
	// Parser instances are single-use; build one per request.
	p := parser.NewWithExtensions(parser.CommonExtensions)
	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags | html.CompletePage})
	body := markdown.ToHTML([]byte(report.Markdown()), p, renderer)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(body)
}

func (a *App) fail(w http.ResponseWriter, err error) {
	a.logger.Error("report request failed [%s]: %v", errors.GetCode(err), err)
	http.Error(w, err.Error(), http.StatusUnprocessableEntity)
}
