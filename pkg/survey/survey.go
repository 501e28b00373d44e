package survey

import (
	"fmt"
	"log/slog"

	"github.com/goliatone/go-survey/pkg/pages"
	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/session"
)

const (
	// DefaultDataName prefixes the session key holding a survey's answers.
	DefaultDataName = "__survey-data"
	// ComponentKeyPrefix prefixes generated widget keys.
	ComponentKeyPrefix = "__survey-component"
	// PagesKeyPrefix prefixes the session key of Survey.Pages.
	PagesKeyPrefix = "__survey-pages"
)

// Survey is one named collection of answers plus the id policy used while
// declaring questions. Build a new Survey at the start of every render pass;
// the answers live in the host session and are picked up again by name.
type Survey struct {
	host     render.Host
	label    string
	autoID   bool
	answers  *Answers
	declared int
	logger   *slog.Logger
}

// Option configures a Survey.
type Option func(*Survey)

// WithAutoID toggles positional id assignment. It is enabled by default.
func WithAutoID(enabled bool) Option {
	return func(s *Survey) {
		s.autoID = enabled
	}
}

// WithAnswers uses the supplied store instead of the one kept in the host
// session.
func WithAnswers(answers *Answers) Option {
	return func(s *Survey) {
		if answers != nil {
			s.answers = answers
		}
	}
}

// WithLogger attaches a structured logger. Events are emitted at debug level
// except for imports.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Survey) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New returns the survey named label, reusing the answers already stored in
// the host session under the same name.
func New(host render.Host, label string, options ...Option) *Survey {
	s := &Survey{
		host:   host,
		label:  label,
		autoID: true,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(s)
	}
	if s.answers == nil {
		s.answers = s.loadAnswers()
	}
	return s
}

// Label returns the survey name.
func (s *Survey) Label() string { return s.label }

// AutoID reports whether positional ids are enabled.
func (s *Survey) AutoID() bool { return s.autoID }

// Host returns the rendering host.
func (s *Survey) Host() render.Host { return s.host }

// Answers returns the underlying answer store.
func (s *Survey) Answers() *Answers { return s.answers }

// Declared reports how many questions were declared on this instance.
func (s *Survey) Declared() int { return s.declared }

// DataKey is the session key the answers are stored under.
func (s *Survey) DataKey() string {
	return DefaultDataName + "_" + s.label
}

// CreateID returns the positional id of the next question. With auto ids
// disabled it fails: falling back to the label would give a question a
// different id on every branch that renames it.
func (s *Survey) CreateID(label string) (string, error) {
	if !s.autoID {
		return "", &ConfigurationError{Label: label, Reason: "an explicit id is required when auto ids are disabled"}
	}
	return fmt.Sprintf("Q%d", s.declared+1), nil
}

// GetOrCreate returns the record for id, creating it when absent.
func (s *Survey) GetOrCreate(id string) Record {
	return s.answers.GetOrCreate(id)
}

// Get reads one field of a record; missing records read as nil.
func (s *Survey) Get(id string, field Field) any {
	return s.answers.Get(id, field)
}

// Set upserts one field of a record.
func (s *Survey) Set(id string, field Field, value any) {
	s.answers.Set(id, field, value)
}

// Export serializes the answers to JSON.
func (s *Survey) Export() ([]byte, error) {
	return s.answers.Export()
}

// Import replaces the answers with a previous export. A malformed payload
// leaves the answers unchanged and returns a *ParseError.
func (s *Survey) Import(data []byte) error {
	if err := s.answers.Import(data); err != nil {
		s.logger.Warn("survey import failed, state unchanged", "survey", s.label, "error", err)
		return err
	}
	s.logger.Info("survey answers imported", "survey", s.label, "records", s.answers.Len())
	return nil
}

// Pages returns a page flow controller whose index is stored next to this
// survey's answers.
func (s *Survey) Pages(n int, options ...pages.Option) (*pages.Pages, error) {
	defaults := []pages.Option{
		pages.WithKey(PagesKeyPrefix + "_" + s.label),
		pages.WithLogger(s.logger),
	}
	return pages.New(s.host, n, append(defaults, options...)...)
}

func (s *Survey) widgetKey(id string) string {
	return fmt.Sprintf("%s_%s_%s", ComponentKeyPrefix, s.label, id)
}

func (s *Survey) widgets() session.Store {
	if s.host == nil {
		return nil
	}
	return s.host.Widgets()
}

func (s *Survey) declare(id, label, key string, auto bool) {
	s.answers.Set(id, FieldLabel, label)
	s.answers.Set(id, FieldWidgetKey, key)
	s.declared++
	s.logger.Debug("question declared", "survey", s.label, "id", id, "widget_key", key, "auto_id", auto)
}

func (s *Survey) capture(id, label, key string, value any) {
	s.answers.Set(id, FieldLabel, label)
	s.answers.Set(id, FieldWidgetKey, key)
	s.answers.Set(id, FieldValue, value)
	s.logger.Debug("answer captured", "survey", s.label, "id", id)
}

func (s *Survey) loadAnswers() *Answers {
	if s.host == nil {
		return NewAnswers()
	}
	store := s.host.Session()
	key := s.DataKey()
	if existing, ok := store.Get(key); ok {
		if answers, ok := existing.(*Answers); ok {
			return answers
		}
		s.logger.Warn("replacing unexpected session value", "key", key, "type", fmt.Sprintf("%T", existing))
	}
	answers := NewAnswers()
	store.Set(key, answers)
	return answers
}
