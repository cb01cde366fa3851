package routes

import (
	"context"
	"database/sql"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/database"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/spf13/cast"
)

func GetFormSubmissions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := formIdParam(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		_, submissions, err := loadSubmissions(r.Context(), app.DB, formId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "get_submissions", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_submissions", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"submissions": submissions,
		})
	}
}

// ExportFormSubmissions writes one CSV row per submission, with a column
// per form field in render order.
func ExportFormSubmissions(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := formIdParam(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, submissions, err := loadSubmissions(r.Context(), app.DB, formId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "export_submissions", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.export_submissions", err)
			return
		}

		w.Header().Set("content-type", "text/csv; charset=utf-8")
		w.Header().Set("content-disposition", fmt.Sprintf(`attachment; filename="form-%d-submissions.csv"`, formId))

		err = writeSubmissionsCSV(w, form, submissions)
		if err != nil {
			log.Errorf("export_submissions.write: %s", err)
		}
	}
}

func writeSubmissionsCSV(w io.Writer, form model.Form, submissions []model.Submission) error {
	out := csv.NewWriter(w)

	header := []string{"id", "time", "ip"}
	for _, f := range form.Fields {
		label := f.Label
		if label == "" {
			label = f.ID
		}
		header = append(header, label)
	}
	err := out.Write(header)
	if err != nil {
		return err
	}

	for _, s := range submissions {
		row := []string{strconv.Itoa(s.ID), s.Time.Format(time.RFC3339), s.IP}
		for _, f := range form.Fields {
			row = append(row, csvCell(s.Answers[f.ID]))
		}
		err = out.Write(row)
		if err != nil {
			return err
		}
	}

	out.Flush()
	return out.Error()
}

func csvCell(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case []any:
		items := make([]string, 0, len(x))
		for _, item := range x {
			items = append(items, csvCell(item))
		}
		return strings.Join(items, "; ")
	case map[string]any:
		b, _ := json.Marshal(x)
		return string(b)
	}
	return cast.ToString(v)
}

func loadSubmissions(ctx context.Context, db *sql.DB, formId int) (model.Form, []model.Submission, error) {
	form, err := database.GetForm(ctx, db, formId)
	if err != nil {
		return form, nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT
			s.id, s.time, s.ip,
			v.field_id, v.value
		FROM submission s
		LEFT OUTER JOIN submission_field v ON (s.id = v.submission_id)
		WHERE s.form_id = ?
		ORDER BY s.id`,
		formId,
	)
	if err != nil {
		return form, nil, err
	}
	defer rows.Close()

	submissions := []model.Submission{}
	for rows.Next() {
		s := model.Submission{}
		var fieldId, value sql.NullString
		err = rows.Scan(&s.ID, &s.Time, &s.IP, &fieldId, &value)
		if err != nil {
			return form, nil, fmt.Errorf("scan: %w", err)
		}

		lastIdx := len(submissions) - 1
		if lastIdx < 0 || submissions[lastIdx].ID != s.ID {
			s.FormID = formId
			s.Answers = model.Answers{}
			submissions = append(submissions, s)
			lastIdx++
		}
		if !fieldId.Valid {
			continue
		}

		var answer any
		err = json.Unmarshal([]byte(value.String), &answer)
		if err != nil {
			return form, nil, fmt.Errorf("parse_value: %w", err)
		}
		submissions[lastIdx].Answers[fieldId.String] = answer
	}
	return form, submissions, rows.Err()
}
