package visibility

import (
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
)

// Rule decides whether a single field is shown.
type Rule func(field model.Field, answers model.Answers) bool

// VisibleFields returns the fields of form that should currently render,
// in form order. Call it again after every answer change.
func VisibleFields(form model.Form, answers model.Answers) []model.Field {
	return Project(form.Fields, answers, NewEvaluator(form.Fields).IsVisible)
}

// Project filters fields through rule, preserving their order. If rule
// panics the whole list is returned, so a broken condition can never
// keep a respondent from completing a form.
func Project(fields []model.Field, answers model.Answers, rule Rule) (shown []model.Field) {
	defer func() {
		if r := recover(); r != nil {
			log.WithFields(log.Fields{"panic": r}).Warn("visibility.project: evaluation failed, showing all fields")
			shown = append([]model.Field{}, fields...)
		}
	}()

	shown = make([]model.Field, 0, len(fields))
	for _, f := range fields {
		if rule(f, answers) {
			shown = append(shown, f)
		}
	}
	return shown
}

// IDs returns the ids of fields, in order.
func IDs(fields []model.Field) []string {
	ids := make([]string, len(fields))
	for i, f := range fields {
		ids[i] = f.ID
	}
	return ids
}

// IsAnswered reports whether value counts as an answer to field for the
// purpose of the required check.
func IsAnswered(field model.Field, value any) bool {
	if field.Type == model.UploadFile {
		return truthy(value)
	}
	a := classify(field.Type, value)
	switch a.kind {
	case kindEmpty:
		return false
	case kindBool:
		return a.flag
	case kindList:
		return len(a.list) > 0
	}
	return a.text != ""
}
