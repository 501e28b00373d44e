package web

import (
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"github.com/goliatone/go-survey/pkg/events"
)

const (
	DefaultBasePath   = "/survey"
	DefaultCookieName = "survey_session"
)

// Option configures the Server.
type Option func(*Server)

// WithBasePath mounts the survey routes under path.
func WithBasePath(path string) Option {
	return func(s *Server) {
		path = "/" + strings.Trim(strings.TrimSpace(path), "/")
		if path != "/" {
			s.basePath = path
		}
	}
}

// WithCookieName sets the session cookie name.
func WithCookieName(name string) Option {
	return func(s *Server) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			s.cookieName = trimmed
		}
	}
}

// WithSecureCookies marks the session cookie Secure.
func WithSecureCookies(secure bool) Option {
	return func(s *Server) {
		s.secureCookies = secure
	}
}

// WithExportFilename sets the download name pattern, see export.Filename.
func WithExportFilename(pattern string) Option {
	return func(s *Server) {
		s.exportPattern = pattern
	}
}

// WithPublisher sends submitted and imported events to publisher.
func WithPublisher(publisher events.Publisher) Option {
	return func(s *Server) {
		if publisher != nil {
			s.publisher = publisher
		}
	}
}

// WithTemplates replaces the built-in templates. fsys must contain
// survey.html.
func WithTemplates(fsys fs.FS) Option {
	return func(s *Server) {
		s.templateFS = fsys
	}
}

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithSessionTTL sets how long an idle session is kept.
func WithSessionTTL(ttl time.Duration) Option {
	return func(s *Server) {
		s.sessionTTL = ttl
	}
}

// WithMaxSessions caps the number of live sessions.
func WithMaxSessions(n int) Option {
	return func(s *Server) {
		s.maxSessions = n
	}
}
