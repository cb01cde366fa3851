package visibility

import "github.com/mbolis/quick-form/model"

var booleanOptions = []string{"true", "false"}

// OptionsFor returns the values a condition on field may expect. An empty
// result means the expected value is free text.
func OptionsFor(field model.Field) []string {
	switch field.Type {
	case model.Select, model.Radio, model.MultipleChoice:
		return append([]string{}, field.Options...)
	case model.Checkbox, model.UploadFile:
		return append([]string{}, booleanOptions...)
	default:
		return []string{}
	}
}

// Candidate is a field that may control the visibility of another one.
type Candidate struct {
	ID      string          `json:"id"`
	Label   string          `json:"label"`
	Type    model.FieldType `json:"type"`
	Options []string        `json:"options"`
}

// ControllerCandidates lists, in form order, the fields a condition on
// the field with id current may reference. The field itself is excluded.
func ControllerCandidates(fields []model.Field, current string) []Candidate {
	candidates := make([]Candidate, 0, len(fields))
	for _, f := range fields {
		if f.ID == current {
			continue
		}
		candidates = append(candidates, Candidate{
			ID:      f.ID,
			Label:   f.Label,
			Type:    f.Type,
			Options: OptionsFor(f),
		})
	}
	return candidates
}
