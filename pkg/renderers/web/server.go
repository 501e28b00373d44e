// Package web serves a survey definition over HTTP. Each request is one
// render pass against a per-browser session: GET draws the current page and
// POST applies the posted answers and navigation, then redirects.
package web

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"

	"github.com/goliatone/go-survey/pkg/events"
	"github.com/goliatone/go-survey/pkg/export"
	"github.com/goliatone/go-survey/pkg/orchestrator"
	"github.com/goliatone/go-survey/pkg/survey"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ErrorResponse is the JSON body of failed non-page requests.
type ErrorResponse struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Server hosts one survey definition.
type Server struct {
	orch      *orchestrator.Orchestrator
	sessions  *sessions
	templates *templates
	publisher events.Publisher
	logger    *slog.Logger

	basePath      string
	cookieName    string
	secureCookies bool
	exportPattern string
	templateFS    fs.FS
	sessionTTL    time.Duration
	maxSessions   int

	engine *gin.Engine
}

// New builds a Server for orch.
func New(orch *orchestrator.Orchestrator, options ...Option) (*Server, error) {
	if orch == nil {
		return nil, errors.New("web: orchestrator is required")
	}
	s := &Server{
		orch:       orch,
		publisher:  events.Nop{},
		logger:     slog.New(slog.DiscardHandler),
		basePath:   DefaultBasePath,
		cookieName: DefaultCookieName,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	s.sessions = newSessions(s.sessionTTL, s.maxSessions)
	s.templates = newTemplates(s.templateFS)

	engine := gin.New()
	engine.Use(gin.Recovery(), s.requestLogger())
	s.SetupRoutes(engine)
	s.engine = engine
	return s, nil
}

// Handler returns the HTTP handler serving every route.
func (s *Server) Handler() http.Handler { return s.engine }

// SetupRoutes registers the survey routes on router.
func (s *Server) SetupRoutes(router gin.IRouter) {
	router.GET("/health", s.health)

	group := router.Group(s.basePath)
	{
		group.GET("", s.show)
		group.POST("", s.submit)
		group.GET("/export", s.exportJSON)
		group.GET("/export.xlsx", s.exportXLSX)
		group.POST("/import", s.importAnswers)
	}
}

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"survey":    s.orch.Label(),
		"sessions":  s.sessions.len(),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) show(c *gin.Context) {
	st := s.session(c)
	st.mu.Lock()
	defer st.mu.Unlock()

	host := newPassHost(st, nil)
	if _, err := s.pass(c.Request.Context(), host); err != nil {
		s.fail(c, http.StatusInternalServerError, "render_failed", err)
		return
	}

	flash, flashError := st.popFlash()
	data := pongo2.Context{
		"title":        s.orch.Label(),
		"base":         s.basePath,
		"widgets":      host.views,
		"nav":          host.nav,
		"marker":       widgetMarker,
		"action_field": actionField,
		"flash":        flash,
		"flash_error":  flashError,
	}
	if host.nav != nil {
		data["progress_percent"] = percent(host.nav.Progress)
	}
	body, err := s.templates.render(pageTemplate, data)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "template_failed", err)
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", body)
}

func (s *Server) submit(c *gin.Context) {
	st := s.session(c)
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := c.Request.ParseForm(); err != nil {
		s.fail(c, http.StatusBadRequest, "invalid_form", err)
		return
	}
	host := newPassHost(st, c.Request.PostForm)
	result, err := s.pass(c.Request.Context(), host)
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "render_failed", err)
		return
	}

	switch {
	case len(host.invalid) > 0:
		st.setFlash("Some answers were not saved: "+strings.Join(host.invalid, "; "), true)
	case result.Submitted:
		st.setFlash("Thank you, your answers were submitted.", false)
	}
	c.Redirect(http.StatusSeeOther, s.basePath)
}

func (s *Server) exportJSON(c *gin.Context) {
	st := s.session(c)
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := s.orch.Survey(newPassHost(st, nil)).Export()
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	c.Header("Content-Disposition", attachment(export.Filename(s.exportPattern, s.orch.Label())))
	c.Data(http.StatusOK, "application/json", data)
}

func (s *Server) exportXLSX(c *gin.Context) {
	st := s.session(c)
	st.mu.Lock()
	defer st.mu.Unlock()

	data, err := export.XLSX(s.orch.Survey(newPassHost(st, nil)).Answers())
	if err != nil {
		s.fail(c, http.StatusInternalServerError, "export_failed", err)
		return
	}
	name := strings.TrimSuffix(export.Filename(s.exportPattern, s.orch.Label()), ".json") + ".xlsx"
	c.Header("Content-Disposition", attachment(name))
	c.Data(http.StatusOK, xlsxContentType, data)
}

func (s *Server) importAnswers(c *gin.Context) {
	st := s.session(c)
	st.mu.Lock()
	defer st.mu.Unlock()
	defer c.Redirect(http.StatusSeeOther, s.basePath)

	header, err := c.FormFile("file")
	if err != nil {
		st.setFlash("Choose a file to import.", true)
		return
	}
	file, err := header.Open()
	if err != nil {
		st.setFlash("import failed, state unchanged", true)
		s.logger.Warn("open uploaded file", "session", st.id, "error", err)
		return
	}
	defer file.Close()

	sv := s.orch.Survey(newPassHost(st, nil))
	if err := export.ReadFrom(file, sv); err != nil {
		st.setFlash("import failed, state unchanged", true)
		s.logger.Warn("survey import rejected", "session", st.id, "filename", header.Filename, "parse_error", errors.Is(err, survey.ErrParse), "error", err)
		return
	}
	st.resetWidgets()
	st.setFlash(fmt.Sprintf("Imported %d answers.", sv.Answers().Len()), false)
	s.publish(c.Request.Context(), sv, st.id, events.EventAnswersImported)
}

// pass runs one render pass, dropping widget state for widgets it did not
// draw.
func (s *Server) pass(ctx context.Context, host *passHost) (orchestrator.Result, error) {
	host.state.widgets.BeginPass()
	result, err := s.orch.Pass(ctx, host, func(sv *survey.Survey) {
		s.publish(ctx, sv, host.state.id, events.EventSurveySubmitted)
	})
	if dropped := host.state.widgets.EndPass(); len(dropped) > 0 {
		s.logger.Debug("widget state dropped", "session", host.state.id, "keys", dropped)
	}
	return result, err
}

func (s *Server) publish(ctx context.Context, sv *survey.Survey, sessionID string, eventType events.EventType) {
	data, err := sv.Export()
	if err != nil {
		s.logger.Error("export answers for event", "session", sessionID, "error", err)
		return
	}
	event := events.NewEvent(eventType, sv.Label(), sessionID, data)
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("publish survey event", "session", sessionID, "event_type", eventType, "error", err)
	}
}

func (s *Server) session(c *gin.Context) *state {
	id, _ := c.Cookie(s.cookieName)
	st, created := s.sessions.get(id)
	if created {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(s.cookieName, st.id, 0, "/", "", s.secureCookies, true)
		s.logger.Debug("survey session created", "session", st.id)
	}
	return st
}

func (s *Server) fail(c *gin.Context, status int, code string, err error) {
	s.logger.Error("survey request failed", "method", c.Request.Method, "path", c.Request.URL.Path, "code", code, "error", err)
	c.JSON(status, ErrorResponse{Message: err.Error(), Code: code})
}

func (s *Server) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.logger.Info("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"remote_addr", c.ClientIP(),
			"duration", time.Since(start),
		)
	}
}

func attachment(name string) string {
	return fmt.Sprintf("attachment; filename=%q", name)
}
