package model

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/goliatone/go-survey/pkg/render"
)

// ValidationError is one problem found in a definition.
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Rule    string `json:"rule,omitempty"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// ValidationErrors collects every problem found in a definition.
type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	switch len(ve) {
	case 0:
		return "model: validation failed"
	case 1:
		return fmt.Sprintf("model: validation failed: %s", ve[0].Error())
	default:
		return fmt.Sprintf("model: validation failed: %d problems, first: %s", len(ve), ve[0].Error())
	}
}

var (
	validateOnce sync.Once
	structValid  *validator.Validate
)

func structValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		_ = v.RegisterValidation("widget_kind", validateWidgetKind)
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		structValid = v
	})
	return structValid
}

func validateWidgetKind(fl validator.FieldLevel) bool {
	kind, err := render.ParseKind(fl.Field().String())
	return err == nil && kind.Input()
}

// Validate checks struct constraints first and then the rules that span
// several fields: ids present, unreserved and unique across the definition
// (auto-assigned ones included), choices for choice widgets and ordered
// ranges.
func Validate(def *Definition) error {
	if def == nil {
		return ValidationErrors{{Field: "definition", Message: "is required", Rule: "required"}}
	}
	if err := structValidator().Struct(def); err != nil {
		return toValidationErrors(err)
	}
	if problems := validateRules(def); len(problems) > 0 {
		return problems
	}
	return nil
}

func toValidationErrors(err error) error {
	fieldErrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return fmt.Errorf("model: validate: %w", err)
	}
	out := make(ValidationErrors, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		out = append(out, ValidationError{
			Field:   strings.TrimPrefix(fe.Namespace(), "Definition."),
			Message: messageFor(fe),
			Rule:    fe.Tag(),
		})
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "min":
		return fmt.Sprintf("must have at least %s entries", fe.Param())
	case "gt":
		return fmt.Sprintf("must be greater than %s", fe.Param())
	case "widget_kind":
		return fmt.Sprintf("unknown widget kind %q", fe.Value())
	default:
		return fmt.Sprintf("failed %q", fe.Tag())
	}
}

// ReservedIDs name the visibility expression variables a question id would
// shadow.
var ReservedIDs = []string{"page", "answers", "extras"}

func validateRules(def *Definition) ValidationErrors {
	var problems ValidationErrors
	ids := def.QuestionIDs()
	firstAt := map[string]string{}
	for p, page := range def.Pages {
		for q, question := range page.Questions {
			path := fmt.Sprintf("pages[%d].questions[%d]", p, q)
			id := ids[p][q]
			switch {
			case id == "":
				problems = append(problems, ValidationError{Field: path + ".id", Message: "is required when auto_id is false", Rule: "required"})
			case slices.Contains(ReservedIDs, id):
				problems = append(problems, ValidationError{Field: path + ".id", Message: fmt.Sprintf("%q is reserved for visibility expressions", id), Rule: "reserved"})
			case firstAt[id] != "":
				problems = append(problems, ValidationError{Field: path + ".id", Message: fmt.Sprintf("duplicates id %q of %s", id, firstAt[id]), Rule: "unique"})
			default:
				firstAt[id] = path
			}
			if kind := question.RenderKind(); kind.HasChoices() && len(question.Choices) == 0 {
				problems = append(problems, ValidationError{Field: path + ".choices", Message: fmt.Sprintf("are required for %s", kind), Rule: "required"})
			}
			if question.Min != nil && question.Max != nil && *question.Max < *question.Min {
				problems = append(problems, ValidationError{Field: path + ".max", Message: "must not be lower than min", Rule: "gtefield"})
			}
		}
	}
	return problems
}
