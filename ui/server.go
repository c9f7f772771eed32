package ui

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"net/url"
	"time"

	"maridash/adapters/excel"
	"maridash/app"
	"maridash/domain/artifact"
	"maridash/domain/topic"
	"maridash/internal"
	apperrors "maridash/internal/errors"
	"maridash/ui/middleware"
	"maridash/ui/templates/fragments"

	"github.com/gin-gonic/gin"
)

//go:embed templates/*.html templates/fragments/*.html static/css/*
var embeddedFiles embed.FS

// Server represents the web server for the dashboard
type Server struct {
	router    *gin.Engine
	dashboard *app.DashboardService
	templates *template.Template
	title     string
	logger    *internal.Logger
}

// pageData is what index.html and the dashboard fragment render
type pageData struct {
	Title    string
	Topics   []topic.Topic
	Selected topic.Topic
	View     *app.View
}

// NewServer creates the server and registers its routes. gin's mode must be
// chosen by the caller before this is invoked.
func NewServer(dashboard *app.DashboardService, title string, logger *internal.Logger) (*Server, error) {
	if logger == nil {
		logger = internal.Discard
	}

	templatesFS, err := fs.Sub(embeddedFiles, "templates")
	if err != nil {
		return nil, fmt.Errorf("failed to create templates filesystem: %w", err)
	}
	templates, err := parseTemplates(templatesFS)
	if err != nil {
		return nil, err
	}

	s := &Server{
		router:    gin.Default(),
		dashboard: dashboard,
		templates: templates,
		title:     title,
		logger:    logger.With("ui"),
	}

	if err := s.setupMiddleware(); err != nil {
		return nil, err
	}
	s.setupRoutes()
	return s, nil
}

// setupMiddleware configures request ids and the embedded static files
func (s *Server) setupMiddleware() error {
	s.router.Use(middleware.RequestID())

	staticFS, err := fs.Sub(embeddedFiles, "static")
	if err != nil {
		return fmt.Errorf("failed to create static filesystem: %w", err)
	}
	s.router.StaticFS("/static", http.FS(staticFS))
	return nil
}

// setupRoutes configures the application routes
func (s *Server) setupRoutes() {
	s.router.GET("/", s.handleIndex)
	s.router.GET("/fragments/dashboard", s.handleDashboardFragment)
	s.router.GET("/export/:category", s.handleExport)
	s.router.GET("/healthz", s.handleHealth)

	api := s.router.Group("/api")
	{
		api.GET("/topics", s.handleTopics)
		api.GET("/topics/:key/artifacts", s.handleArtifacts)
	}
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start serves on addr until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("listening on http://localhost%s", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		s.logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

// handleIndex renders the full page for ?topic= (default topic when absent)
func (s *Server) handleIndex(c *gin.Context) {
	data, ok := s.load(c)
	if !ok {
		return
	}
	s.renderTemplate(c, http.StatusOK, fragments.IndexPage, data)
}

// handleDashboardFragment renders only the dashboard body for HTMX swaps
func (s *Server) handleDashboardFragment(c *gin.Context) {
	data, ok := s.load(c)
	if !ok {
		return
	}
	// keep the selection in the address bar so reload and back restore it
	c.Header("HX-Push-Url", "/?topic="+url.QueryEscape(data.Selected.Label))
	s.renderTemplate(c, http.StatusOK, fragments.Dashboard, data)
}

// load renders the view for the requested topic, answering 404 itself when
// the topic is not in the catalogue.
func (s *Server) load(c *gin.Context) (pageData, bool) {
	view, err := s.dashboard.Render(c.Request.Context(), c.Query("topic"))
	if err != nil {
		s.renderError(c, err)
		return pageData{}, false
	}
	return pageData{
		Title:    s.title,
		Topics:   s.dashboard.Catalogue().All(),
		Selected: view.Topic,
		View:     view,
	}, true
}

// handleExport converts one table artifact into an .xlsx download
func (s *Server) handleExport(c *gin.Context) {
	category, ok := artifact.LookupTable(c.Param("category"))
	if !ok {
		s.renderError(c, apperrors.NotFound("table category "+c.Param("category")))
		return
	}

	label := c.Query("topic")
	t, err := s.dashboard.Topic(label)
	if err != nil {
		s.renderError(c, err)
		return
	}

	tbl, err := s.dashboard.Table(c.Request.Context(), t.Label, category)
	if err != nil {
		s.renderError(c, err)
		return
	}

	data, err := excel.Export(tbl, category.Name)
	if err != nil {
		s.logger.Error("export %s for %q: %v", category, t.Label, err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "export failed"})
		return
	}

	filename := t.Key() + "_" + category.Name + ".xlsx"
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.PathEscape(filename))
	c.Data(http.StatusOK, excel.ContentType, data)
}

type topicJSON struct {
	Label       string `json:"label"`
	Key         string `json:"key"`
	Description string `json:"description,omitempty"`
}

type referenceJSON struct {
	Kind     artifact.Kind `json:"kind"`
	Category string        `json:"category"`
	Title    string        `json:"title"`
	URL      string        `json:"url"`
}

// handleTopics lists the catalogue in dropdown order
func (s *Server) handleTopics(c *gin.Context) {
	all := s.dashboard.Catalogue().All()
	out := make([]topicJSON, len(all))
	for i, t := range all {
		out[i] = topicJSON{Label: t.Label, Key: t.Key(), Description: t.Description}
	}
	c.JSON(http.StatusOK, gin.H{"topics": out, "count": len(out)})
}

// handleArtifacts lists the locators of one topic without fetching them
func (s *Server) handleArtifacts(c *gin.Context) {
	t, ok := s.dashboard.Catalogue().LookupKey(c.Param("key"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown topic key"})
		return
	}

	refs := s.dashboard.References(t)
	out := make([]referenceJSON, len(refs))
	for i, ref := range refs {
		out[i] = referenceJSON{
			Kind:     ref.Category.Kind,
			Category: ref.Category.Name,
			Title:    ref.Category.Title(),
			URL:      ref.URL,
		}
	}
	c.JSON(http.StatusOK, gin.H{"topic": t.Label, "key": t.Key(), "artifacts": out})
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// errorMessages are the texts shown on the error page. Details stay in the log.
var errorMessages = map[int]string{
	http.StatusNotFound:            "Der Suchbegriff oder die Datei wurde nicht gefunden.",
	http.StatusUnprocessableEntity: "Die Daten konnten nicht gelesen werden.",
	http.StatusInternalServerError: "Interner Fehler.",
	http.StatusBadGateway:          "Die Daten sind derzeit nicht erreichbar.",
}

// renderError maps an AppError code onto a status and renders the error page
func (s *Server) renderError(c *gin.Context, err error) {
	status := http.StatusBadGateway
	switch apperrors.GetCode(err) {
	case apperrors.CodeInvalidInput, apperrors.CodeNotFound:
		status = http.StatusNotFound
	case apperrors.CodeMalformedData:
		status = http.StatusUnprocessableEntity
	case apperrors.CodeInternalError:
		status = http.StatusInternalServerError
	}
	s.logger.Info("request %s: %d %v", middleware.GetRequestID(c), status, err)

	s.renderTemplate(c, status, fragments.ErrorPage, gin.H{
		"Title":   s.title,
		"Status":  status,
		"Message": errorMessages[status],
	})
}
