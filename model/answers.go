package model

// Answers maps a field id to the respondent's current input for it.
// Values are string, bool, []string (or []any once decoded from JSON),
// or a file reference, depending on the field type.
type Answers map[string]any

// NewAnswers returns the initial answers for a fresh respondent session.
// Upload fields start out absent.
func NewAnswers(fields []Field) Answers {
	answers := make(Answers, len(fields))
	for _, f := range fields {
		switch f.Type {
		case Checkbox:
			answers[f.ID] = false
		case MultipleChoice:
			answers[f.ID] = []string{}
		case UploadFile:
		default:
			answers[f.ID] = ""
		}
	}
	return answers
}

// Only returns a copy holding just the answers for the given field ids.
func (a Answers) Only(fields []Field) Answers {
	out := make(Answers, len(fields))
	for _, f := range fields {
		if v, ok := a[f.ID]; ok {
			out[f.ID] = v
		}
	}
	return out
}
