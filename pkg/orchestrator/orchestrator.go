package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/goliatone/go-survey/pkg/model"
	"github.com/goliatone/go-survey/pkg/pages"
	"github.com/goliatone/go-survey/pkg/render"
	"github.com/goliatone/go-survey/pkg/survey"
	"github.com/goliatone/go-survey/pkg/visibility"
	exprvis "github.com/goliatone/go-survey/pkg/visibility/expr"
	"github.com/goliatone/go-survey/pkg/widgets"
)

// Option customises the orchestrator configuration.
type Option func(*Orchestrator)

// WithEvaluator replaces the expr-lang visibility evaluator.
func WithEvaluator(evaluator visibility.Evaluator) Option {
	return func(o *Orchestrator) {
		o.evaluator = evaluator
	}
}

// WithWidgetRegistry injects the registry used to resolve missing kinds.
func WithWidgetRegistry(registry *widgets.Registry) Option {
	return func(o *Orchestrator) {
		o.registry = registry
	}
}

// WithExtras exposes values to visibility rules under `extras`.
func WithExtras(extras map[string]any) Option {
	return func(o *Orchestrator) {
		o.extras = extras
	}
}

// WithLogger attaches a structured logger, forwarded to the survey and page
// controller.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// Orchestrator draws one survey definition. It is safe to share between
// hosts; all per user state lives in the host session.
type Orchestrator struct {
	def       *model.Definition
	evaluator visibility.Evaluator
	registry  *widgets.Registry
	extras    map[string]any
	logger    *slog.Logger
	ids       [][]string
}

// New constructs an Orchestrator for def. Questions without a kind are
// resolved through the widget registry.
func New(def *model.Definition, options ...Option) (*Orchestrator, error) {
	if def == nil {
		return nil, errors.New("orchestrator: definition is required")
	}
	o := &Orchestrator{
		def:    def,
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(o)
	}
	if o.evaluator == nil {
		o.evaluator = exprvis.New()
	}
	if o.registry == nil {
		o.registry = widgets.NewRegistry()
	}
	if err := o.registry.Decorate(def); err != nil {
		return nil, fmt.Errorf("orchestrator: decorate definition: %w", err)
	}
	if err := model.Validate(def); err != nil {
		return nil, err
	}
	o.ids = def.QuestionIDs()
	return o, nil
}

// Load reads a definition file and constructs an Orchestrator for it.
func Load(path string, options ...Option) (*Orchestrator, error) {
	def, err := model.Load(path)
	if err != nil {
		return nil, err
	}
	return New(def, options...)
}

// Definition returns the definition being drawn.
func (o *Orchestrator) Definition() *model.Definition { return o.def }

// WidgetRegistry exposes the registry used to resolve missing kinds.
func (o *Orchestrator) WidgetRegistry() *widgets.Registry { return o.registry }

// Label returns the survey label.
func (o *Orchestrator) Label() string { return o.def.Label }

// Result reports what a pass did.
type Result struct {
	// Page is the page drawn, before navigation was applied.
	Page int
	// Pages is the number of pages.
	Pages int
	// Shown lists the ids drawn in this pass, in order.
	Shown []string
	// Hidden lists the ids skipped by visibility rules.
	Hidden []string
	// Submitted is true when the completion callback ran.
	Submitted bool
}

// Survey returns the survey instance a pass against host would use, handy
// for import and export between passes.
func (o *Orchestrator) Survey(host render.Host) *survey.Survey {
	return survey.New(host, o.def.Label,
		survey.WithAutoID(o.def.AutoIDEnabled()),
		survey.WithLogger(o.logger),
	)
}

// Pass performs one render pass against host. onSubmit runs when submit is
// activated on the last page; without it the last page offers no submit.
func (o *Orchestrator) Pass(ctx context.Context, host render.Host, onSubmit func(*survey.Survey)) (Result, error) {
	if ctx == nil {
		return Result{}, errors.New("orchestrator: context is required")
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	if host == nil {
		return Result{}, errors.New("orchestrator: host is required")
	}

	s := o.Survey(host)
	result := Result{Pages: len(o.def.Pages)}

	options := []pages.Option{
		pages.WithLabels(o.def.PageLabels()...),
		pages.WithProgressBar(o.def.ProgressBar),
		pages.WithButtonLabels(o.def.Buttons.Previous, o.def.Buttons.Next, o.def.Buttons.Submit),
	}
	if onSubmit != nil {
		options = append(options, pages.WithOnSubmit(func() {
			result.Submitted = true
			onSubmit(s)
		}))
	}
	p, err := s.Pages(len(o.def.Pages), options...)
	if err != nil {
		return Result{}, fmt.Errorf("orchestrator: pages: %w", err)
	}

	err = p.Run(ctx, func(p *pages.Pages) error {
		result.Page = p.Current()
		return o.drawPage(ctx, s, result.Page, &result)
	})
	if err != nil {
		return result, err
	}
	o.logger.Debug("survey pass complete", "survey", o.def.Label, "page", result.Page, "shown", len(result.Shown), "submitted", result.Submitted)
	return result, nil
}

func (o *Orchestrator) drawPage(ctx context.Context, s *survey.Survey, page int, result *Result) error {
	for idx, question := range o.def.Pages[page].Questions {
		id := o.ids[page][idx]
		ok, err := visibility.Visible(o.evaluator, id, question.VisibleIf, o.visibilityContext(s, page))
		if err != nil {
			return fmt.Errorf("orchestrator: apply visibility: %w", err)
		}
		if !ok {
			result.Hidden = append(result.Hidden, id)
			continue
		}
		if err := display(ctx, s, question, id, page); err != nil {
			return err
		}
		result.Shown = append(result.Shown, id)
	}
	return nil
}

func (o *Orchestrator) visibilityContext(s *survey.Survey, page int) visibility.Context {
	return visibility.Context{
		Values: s.Answers().Values(),
		Page:   page,
		Extras: o.extras,
	}
}

