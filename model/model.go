package model

import "time"

type Form struct {
	ID              int     `json:"id,omitempty" yaml:"-"`
	Version         int     `json:"version,omitempty" yaml:"-"`
	Title           string  `json:"title" yaml:"title" validate:"required"`
	Description     string  `json:"description" yaml:"description"`
	ThankYouMessage string  `json:"thankYouMessage" yaml:"thankYouMessage"`
	Published       bool    `json:"published" yaml:"published"`
	Fields          []Field `json:"fields" yaml:"fields" validate:"dive"`
}

// Field returns the field with the given id, if any.
func (f Form) Field(id string) (Field, bool) {
	for _, field := range f.Fields {
		if field.ID == id {
			return field, true
		}
	}
	return Field{}, false
}

type Submission struct {
	ID      int       `json:"id"`
	FormID  int       `json:"formId,omitempty"`
	Time    time.Time `json:"time"`
	IP      string    `json:"ip"`
	Answers Answers   `json:"answers"`
}
