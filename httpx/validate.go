package httpx

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/mbolis/quick-form/model"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterValidation("fieldtype", func(fl validator.FieldLevel) bool {
		return model.FieldType(fl.Field().String()).Valid()
	})
	v.RegisterStructValidation(formStructLevel, model.Form{})
	v.RegisterStructValidation(fieldStructLevel, model.Field{})
	return v
}

// formStructLevel checks the invariants spanning several fields: ids are
// unique and no field is conditioned on itself. Conditions naming a field
// that does not exist are accepted; they simply never hold.
func formStructLevel(sl validator.StructLevel) {
	form := sl.Current().Interface().(model.Form)

	seen := make(map[string]bool, len(form.Fields))
	for i, f := range form.Fields {
		if f.ID == "" {
			continue
		}
		if seen[f.ID] {
			sl.ReportError(f.ID, fmt.Sprintf("Fields[%d].ID", i), "ID", "unique", "")
		}
		seen[f.ID] = true

		for j, c := range f.Conditions {
			if c.Field == f.ID {
				sl.ReportError(c.Field, fmt.Sprintf("Fields[%d].Conditions[%d].Field", i, j), "Field", "noself", "")
			}
		}
	}
}

func fieldStructLevel(sl validator.StructLevel) {
	field := sl.Current().Interface().(model.Field)
	if field.Type.HasOptions() && len(field.Options) == 0 {
		sl.ReportError(field.Options, "Options", "Options", "required", "")
	}
}

// ValidateForm returns nil, or a map from offending field path to the
// rule it broke.
func ValidateForm(form model.Form) map[string]string {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}

	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return map[string]string{"form": err.Error()}
	}

	problems := make(map[string]string, len(errs))
	for _, e := range errs {
		problems[e.Namespace()] = e.Tag()
	}
	return problems
}
