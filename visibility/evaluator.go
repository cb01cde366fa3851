package visibility

import "github.com/mbolis/quick-form/model"

// Evaluator decides field visibility against the fields of one form.
// It only reads the answers it is given.
type Evaluator struct {
	fields map[string]model.Field
}

// NewEvaluator indexes the form's fields by id so that conditions can
// resolve their controller's declared type.
func NewEvaluator(fields []model.Field) *Evaluator {
	index := make(map[string]model.Field, len(fields))
	for _, f := range fields {
		index[f.ID] = f
	}
	return &Evaluator{fields: index}
}

// IsVisible reports whether every condition of field holds. A field
// without conditions is always visible.
func (e *Evaluator) IsVisible(field model.Field, answers model.Answers) bool {
	for _, c := range field.Conditions {
		if !e.Holds(c, answers) {
			return false
		}
	}
	return true
}

// Holds evaluates a single condition. Conditions whose controller is
// not part of the form never hold.
func (e *Evaluator) Holds(c model.Condition, answers model.Answers) bool {
	controller, ok := e.fields[c.Field]
	if !ok {
		return false
	}
	return classify(controller.Type, answers[c.Field]).matches(c.Value)
}
