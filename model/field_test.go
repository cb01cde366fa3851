package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateField(t *testing.T) {
	for _, ft := range FieldTypes {
		t.Run(string(ft), func(t *testing.T) {
			f := CreateField(ft, "q1")
			assert.Equal(t, "q1", f.ID)
			assert.Equal(t, ft, f.Type)
			assert.NotEmpty(t, f.Label)
			assert.False(t, f.Required)
			assert.NotNil(t, f.Conditions)
			assert.Empty(t, f.Conditions)
			if ft.HasOptions() {
				assert.NotEmpty(t, f.Options)
			} else {
				assert.Empty(t, f.Options)
			}
		})
	}

	upload := CreateField(UploadFile, "doc")
	assert.Equal(t, "image/*,.pdf", upload.Accept)
	assert.Equal(t, 5, upload.MaxSize)
}

func TestCreateFieldGeneratesID(t *testing.T) {
	a := CreateField(Text, "")
	b := CreateField(Text, "")
	assert.NotEmpty(t, a.ID)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateFieldUnknownType(t *testing.T) {
	f := CreateField("signature", "sig")
	assert.Equal(t, Field{
		ID:         "sig",
		Type:       "signature",
		Label:      "New Field",
		Conditions: []Condition{},
	}, f)
	assert.False(t, FieldType("signature").Valid())
}

func TestConditionUnmarshal(t *testing.T) {
	var f Field
	err := json.Unmarshal([]byte(`{
		"id": "x",
		"type": "text",
		"conditions": [
			{"field": "age", "value": 7},
			{"field": "agree", "value": true},
			{"field": "has_car", "value": "Yes"},
			{"field": "other"}
		]
	}`), &f)
	require.NoError(t, err)

	assert.Equal(t, []Condition{
		{Field: "age", Value: "7"},
		{Field: "agree", Value: "true"},
		{Field: "has_car", Value: "Yes"},
		{Field: "other", Value: ""},
	}, f.Conditions)
}

func TestConditionUnmarshalRejectsObjects(t *testing.T) {
	var c Condition
	err := json.Unmarshal([]byte(`{"field": "a", "value": {"nested": 1}}`), &c)
	assert.Error(t, err)
}
