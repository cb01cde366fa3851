package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/mbolis/quick-form/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.sqlite"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleForm() model.Form {
	seven := 7.0
	return model.Form{
		Title:           "Cars",
		Description:     "About your car",
		ThankYouMessage: "Thanks",
		Published:       true,
		Fields: []model.Field{
			{ID: "has_car", Type: model.Radio, Label: "Car?", Required: true, Options: []string{"Yes", "No"}, Conditions: []model.Condition{}},
			{ID: "seats", Type: model.Number, Label: "Seats", Max: &seven, Conditions: []model.Condition{{Field: "has_car", Value: "Yes"}}},
		},
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.sqlite")
	db, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(path)
	require.NoError(t, err)
	require.NoError(t, db.Close())
}

func TestFormRoundTrip(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := InsertForm(ctx, db, sampleForm())
	require.NoError(t, err)

	got, err := GetForm(ctx, db, id)
	require.NoError(t, err)

	want := sampleForm()
	want.ID = id
	want.Version = 1
	assert.Equal(t, want, got)

	forms, err := ListForms(ctx, db)
	require.NoError(t, err)
	require.Len(t, forms, 1)
	assert.Equal(t, "Cars", forms[0].Title)
	assert.Empty(t, forms[0].Fields)
}

func TestGetFormNotFound(t *testing.T) {
	db := openTestDB(t)
	_, err := GetForm(context.Background(), db, 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateForm(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := InsertForm(ctx, db, sampleForm())
	require.NoError(t, err)

	update := sampleForm()
	update.Version = 1
	update.Title = "Vehicles"
	update.Fields = update.Fields[:1]
	require.NoError(t, UpdateForm(ctx, db, id, update))

	got, err := GetForm(ctx, db, id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Version)
	assert.Equal(t, "Vehicles", got.Title)
	assert.Len(t, got.Fields, 1)

	// stale version
	assert.ErrorIs(t, UpdateForm(ctx, db, id, update), ErrConflict)
	assert.ErrorIs(t, UpdateForm(ctx, db, id+1, update), ErrNotFound)
}

// lookupFails runs statements normally but every single-row lookup on a
// cancelled context.
type lookupFails struct {
	*sql.DB
}

func (q lookupFails) QueryRowContext(_ context.Context, query string, args ...any) *sql.Row {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	return q.DB.QueryRowContext(ctx, query, args...)
}

func TestUpdateFormReportsLookupErrors(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := InsertForm(ctx, db, sampleForm())
	require.NoError(t, err)

	// stale version, so the existence lookup runs
	err = UpdateForm(ctx, lookupFails{db}, id, sampleForm())
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrConflict)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "update_form.exists")
}

func TestDeleteForm(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	id, err := InsertForm(ctx, db, sampleForm())
	require.NoError(t, err)

	require.NoError(t, DeleteForm(ctx, db, id))
	assert.ErrorIs(t, DeleteForm(ctx, db, id), ErrNotFound)

	var n int
	require.NoError(t, db.QueryRow(`SELECT count(*) FROM form_field`).Scan(&n))
	assert.Zero(t, n)
}

func TestSeedFile(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	n, err := SeedFile(ctx, db, "testdata/forms.yaml")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	forms, err := ListForms(ctx, db)
	require.NoError(t, err)
	require.Len(t, forms, 2)

	cars, err := GetForm(ctx, db, forms[0].ID)
	require.NoError(t, err)
	require.Len(t, cars.Fields, 3)
	assert.Equal(t, []model.Condition{{Field: "has_car", Value: "Yes"}}, cars.Fields[1].Conditions)
	assert.Equal(t, []string{"Yes", "No"}, cars.Fields[0].Options)
	require.NotNil(t, cars.Fields[2].Max)
	assert.Equal(t, 9.0, *cars.Fields[2].Max)

	// only seeds an empty database
	n, err = SeedFile(ctx, db, "testdata/forms.yaml")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestEnsureUser(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	require.NoError(t, EnsureUser(ctx, db, "admin", "first"))
	require.NoError(t, EnsureUser(ctx, db, "admin", "second"))

	var hash []byte
	require.NoError(t, db.QueryRow(`SELECT password_hash FROM user WHERE username = ?`, "admin").Scan(&hash))
	assert.NoError(t, bcrypt.CompareHashAndPassword(hash, []byte("second")))
}
