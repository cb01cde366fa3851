package visibility

import (
	"testing"

	"github.com/mbolis/quick-form/model"
	"github.com/stretchr/testify/assert"
)

func TestOptionsFor(t *testing.T) {
	tests := []struct {
		field model.Field
		want  []string
	}{
		{model.Field{Type: model.Select, Options: []string{"a", "b"}}, []string{"a", "b"}},
		{model.Field{Type: model.Radio, Options: []string{"Yes", "No"}}, []string{"Yes", "No"}},
		{model.Field{Type: model.MultipleChoice, Options: []string{"x"}}, []string{"x"}},
		{model.Field{Type: model.Select}, []string{}},
		{model.Field{Type: model.Checkbox}, []string{"true", "false"}},
		{model.Field{Type: model.UploadFile}, []string{"true", "false"}},
		{model.Field{Type: model.Text}, []string{}},
		{model.Field{Type: model.Number}, []string{}},
		{model.Field{Type: "signature"}, []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.field.Type), func(t *testing.T) {
			assert.Equal(t, tt.want, OptionsFor(tt.field))
		})
	}
}

func TestOptionsForReturnsCopy(t *testing.T) {
	field := model.Field{Type: model.Radio, Options: []string{"Yes", "No"}}
	opts := OptionsFor(field)
	opts[0] = "Maybe"
	assert.Equal(t, []string{"Yes", "No"}, field.Options)

	bools := OptionsFor(model.Field{Type: model.Checkbox})
	bools[0] = "yes"
	assert.Equal(t, []string{"true", "false"}, OptionsFor(model.Field{Type: model.Checkbox}))
}

func TestControllerCandidates(t *testing.T) {
	fields := carForm()

	candidates := ControllerCandidates(fields, "brands")

	ids := make([]string, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID
	}
	assert.Equal(t, []string{"has_car", "age", "agree", "licence", "name"}, ids)
	assert.Equal(t, []string{"Yes", "No"}, candidates[0].Options)
	assert.Equal(t, []string{"true", "false"}, candidates[2].Options)
	assert.Empty(t, candidates[4].Options)
}
