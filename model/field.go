package model

import (
	"encoding/json"

	"github.com/google/uuid"
	"github.com/spf13/cast"
)

type FieldType string

const (
	Text           FieldType = "text"
	Number         FieldType = "number"
	Select         FieldType = "select"
	Checkbox       FieldType = "checkbox"
	Radio          FieldType = "radio"
	MultipleChoice FieldType = "multipleChoice"
	UploadFile     FieldType = "uploadFile"
)

// FieldTypes lists every recognized field type, in palette order.
var FieldTypes = []FieldType{Text, Number, Select, Checkbox, Radio, MultipleChoice, UploadFile}

func (t FieldType) Valid() bool {
	for _, known := range FieldTypes {
		if t == known {
			return true
		}
	}
	return false
}

// HasOptions reports whether answers to this type are picked from Field.Options.
func (t FieldType) HasOptions() bool {
	return t == Select || t == Radio || t == MultipleChoice
}

type Field struct {
	ID          string      `json:"id" yaml:"id" validate:"required"`
	Type        FieldType   `json:"type" yaml:"type" validate:"required,fieldtype"`
	Label       string      `json:"label" yaml:"label"`
	Required    bool        `json:"required" yaml:"required"`
	Placeholder string      `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Options     []string    `json:"options,omitempty" yaml:"options,omitempty"`
	Min         *float64    `json:"min,omitempty" yaml:"min,omitempty"`
	Max         *float64    `json:"max,omitempty" yaml:"max,omitempty"`
	Accept      string      `json:"accept,omitempty" yaml:"accept,omitempty"`
	MaxSize     int         `json:"maxSize,omitempty" yaml:"maxSize,omitempty"` // megabytes
	Conditions  []Condition `json:"conditions" yaml:"conditions" validate:"dive"`
}

// Condition shows its owning field only while the answer to Field matches Value.
type Condition struct {
	Field string `json:"field" yaml:"field" validate:"required"`
	Value string `json:"value" yaml:"value"`
}

// UnmarshalJSON accepts any scalar as the expected value, so that
// {"value": 7} and {"value": true} decode as "7" and "true".
func (c *Condition) UnmarshalJSON(data []byte) error {
	var raw struct {
		Field string `json:"field"`
		Value any    `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	value, err := cast.ToStringE(raw.Value)
	if err != nil {
		return err
	}
	c.Field = raw.Field
	c.Value = value
	return nil
}

// CreateField returns a new field of the given type with its default
// attributes. An empty id is replaced by a generated one. Unknown types
// yield a base field with no type-specific attributes.
func CreateField(t FieldType, id string) Field {
	if id == "" {
		id = uuid.NewString()
	}
	field := Field{
		ID:         id,
		Type:       t,
		Label:      "New Field",
		Conditions: []Condition{},
	}

	switch t {
	case Text:
		field.Label = "Text Field"
		field.Placeholder = "Enter text"
	case Number:
		field.Label = "Number Field"
		field.Placeholder = "Enter a number"
	case Select:
		field.Label = "Select"
		field.Options = []string{"Option 1", "Option 2"}
	case Checkbox:
		field.Label = "Checkbox"
	case Radio:
		field.Label = "Radio Group"
		field.Options = []string{"Option 1", "Option 2"}
	case MultipleChoice:
		field.Label = "Multiple Choice"
		field.Options = []string{"Option 1", "Option 2"}
	case UploadFile:
		field.Label = "Upload File"
		field.Accept = "image/*,.pdf"
		field.MaxSize = 5
	}
	return field
}
