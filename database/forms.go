package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mbolis/quick-form/model"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("version conflict")
)

// Querier is satisfied by both *sql.DB and *sql.Tx.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// fieldAttrs holds the type-specific attributes of a field, stored as JSON.
type fieldAttrs struct {
	Placeholder string   `json:"placeholder,omitempty"`
	Options     []string `json:"options,omitempty"`
	Min         *float64 `json:"min,omitempty"`
	Max         *float64 `json:"max,omitempty"`
	Accept      string   `json:"accept,omitempty"`
	MaxSize     int      `json:"maxSize,omitempty"`
}

func GetForm(ctx context.Context, q Querier, formId int) (form model.Form, err error) {
	err = q.QueryRowContext(ctx, `
		SELECT id, version, title, description, thank_you_message, published
		FROM form
		WHERE id = ?`,
		formId,
	).Scan(&form.ID, &form.Version, &form.Title, &form.Description, &form.ThankYouMessage, &form.Published)
	if errors.Is(err, sql.ErrNoRows) {
		err = ErrNotFound
		return
	}
	if err != nil {
		err = fmt.Errorf("get_form: %w", err)
		return
	}

	form.Fields, err = getFields(ctx, q, formId)
	return
}

func getFields(ctx context.Context, q Querier, formId int) ([]model.Field, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT field_id, type, label, required, attrs, conditions
		FROM form_field
		WHERE form_id = ?
		ORDER BY position`,
		formId,
	)
	if err != nil {
		return nil, fmt.Errorf("get_form.fields: %w", err)
	}
	defer rows.Close()

	fields := []model.Field{}
	for rows.Next() {
		f := model.Field{}
		var attrsJson, conditionsJson string
		err = rows.Scan(&f.ID, &f.Type, &f.Label, &f.Required, &attrsJson, &conditionsJson)
		if err != nil {
			return nil, fmt.Errorf("get_form.fields.scan: %w", err)
		}

		var attrs fieldAttrs
		err = json.Unmarshal([]byte(attrsJson), &attrs)
		if err != nil {
			return nil, fmt.Errorf("get_form.fields.parse_attrs: %w", err)
		}
		f.Placeholder = attrs.Placeholder
		f.Options = attrs.Options
		f.Min = attrs.Min
		f.Max = attrs.Max
		f.Accept = attrs.Accept
		f.MaxSize = attrs.MaxSize

		err = json.Unmarshal([]byte(conditionsJson), &f.Conditions)
		if err != nil {
			return nil, fmt.Errorf("get_form.fields.parse_conditions: %w", err)
		}

		fields = append(fields, f)
	}
	return fields, rows.Err()
}

// ListForms returns every form without its fields.
func ListForms(ctx context.Context, q Querier) ([]model.Form, error) {
	rows, err := q.QueryContext(ctx, `
		SELECT id, version, title, description, thank_you_message, published
		FROM form
		ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("get_forms: %w", err)
	}
	defer rows.Close()

	forms := []model.Form{}
	for rows.Next() {
		f := model.Form{}
		err = rows.Scan(&f.ID, &f.Version, &f.Title, &f.Description, &f.ThankYouMessage, &f.Published)
		if err != nil {
			return nil, fmt.Errorf("get_forms.scan: %w", err)
		}
		forms = append(forms, f)
	}
	return forms, rows.Err()
}

func InsertForm(ctx context.Context, q Querier, form model.Form) (formId int, err error) {
	err = q.QueryRowContext(ctx, `
		INSERT INTO form (title, description, thank_you_message, published)
		VALUES (?, ?, ?, ?)
		RETURNING id`,
		form.Title,
		form.Description,
		form.ThankYouMessage,
		form.Published,
	).Scan(&formId)
	if err != nil {
		err = fmt.Errorf("insert_form: %w", err)
		return
	}

	err = insertFields(ctx, q, formId, form.Fields)
	return
}

// UpdateForm replaces the form and all of its fields, provided form.Version
// is still the stored version.
func UpdateForm(ctx context.Context, q Querier, formId int, form model.Form) error {
	res, err := q.ExecContext(ctx, `
		UPDATE form
		SET
			title = ?,
			description = ?,
			thank_you_message = ?,
			published = ?,
			version = version+1
		WHERE id = ?
			AND version = ?`,
		form.Title,
		form.Description,
		form.ThankYouMessage,
		form.Published,
		formId,
		form.Version,
	)
	if err != nil {
		return fmt.Errorf("update_form: %w", err)
	}
	// optimistic lock
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update_form.verify: %w", err)
	}
	if n < 1 {
		var exists bool
		err = q.QueryRowContext(ctx, `SELECT 1 FROM form WHERE id = ?`, formId).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("update_form.exists: %w", err)
		}
		return ErrConflict
	}

	// delete all fields
	_, err = q.ExecContext(ctx, `
		DELETE FROM form_field
		WHERE form_id = ?`,
		formId,
	)
	if err != nil {
		return fmt.Errorf("update_form.delete_fields: %w", err)
	}

	// recreate all fields
	return insertFields(ctx, q, formId, form.Fields)
}

func insertFields(ctx context.Context, q Querier, formId int, fields []model.Field) error {
	for i, f := range fields {
		attrsJson, err := json.Marshal(fieldAttrs{
			Placeholder: f.Placeholder,
			Options:     f.Options,
			Min:         f.Min,
			Max:         f.Max,
			Accept:      f.Accept,
			MaxSize:     f.MaxSize,
		})
		if err != nil {
			return fmt.Errorf("insert_form.fields.attrs: %w", err)
		}

		conditions := f.Conditions
		if conditions == nil {
			conditions = []model.Condition{}
		}
		conditionsJson, err := json.Marshal(conditions)
		if err != nil {
			return fmt.Errorf("insert_form.fields.conditions: %w", err)
		}

		_, err = q.ExecContext(ctx, `
			INSERT INTO form_field (form_id, position, field_id, type, label, required, attrs, conditions)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			formId, i, f.ID, f.Type, f.Label, f.Required, string(attrsJson), string(conditionsJson),
		)
		if err != nil {
			return fmt.Errorf("insert_form.fields.insert: %w", err)
		}
	}
	return nil
}

func DeleteForm(ctx context.Context, q Querier, formId int) error {
	res, err := q.ExecContext(ctx, `DELETE FROM form WHERE id = ?`, formId)
	if err != nil {
		return fmt.Errorf("delete_form: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete_form.verify: %w", err)
	}
	if n < 1 {
		return ErrNotFound
	}
	return nil
}
