package routes

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/render"
	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/database"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/visibility"
)

type answersRequest struct {
	Answers model.Answers `json:"answers"`
}

// getPublishedForm writes the error response itself and reports ok=false
// when the form cannot be served to respondents.
func getPublishedForm(w http.ResponseWriter, r *http.Request, app app.App, code string) (form model.Form, ok bool) {
	formId, err := formIdParam(r)
	if err != nil {
		httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
		return
	}

	form, err = database.GetForm(r.Context(), app.DB, formId)
	if errors.Is(err, database.ErrNotFound) || err == nil && !form.Published {
		httpx.LogNotFound(w, code, formId)
		return
	}
	if err != nil {
		httpx.LogInternalError(w, "db."+code, err)
		return
	}
	return form, true
}

// PublicGetFormById serves a published form together with a fresh answer
// map and the fields visible before anything is answered.
func PublicGetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form, ok := getPublishedForm(w, r, app, "get_form")
		if !ok {
			return
		}

		answers := model.NewAnswers(form.Fields)
		render.JSON(w, r, map[string]any{
			"form":    form,
			"answers": answers,
			"visible": visibility.IDs(visibility.VisibleFields(form, answers)),
		})
	}
}

// PublicVisibleFields recomputes which fields to show for the given answers.
func PublicVisibleFields(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := answersRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, ok := getPublishedForm(w, r, app, "visible_fields")
		if !ok {
			return
		}

		render.JSON(w, r, map[string]any{
			"fields": visibility.IDs(visibility.VisibleFields(form, req.Answers)),
		})
	}
}

// PublicSubmitForm stores a response. Required fields are only enforced
// while visible, and answers to hidden fields are dropped.
func PublicSubmitForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := answersRequest{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, ok := getPublishedForm(w, r, app, "submit_form")
		if !ok {
			return
		}

		visible := visibility.VisibleFields(form, req.Answers)

		problems := map[string]string{}
		for _, f := range visible {
			if f.Required && !visibility.IsAnswered(f, req.Answers[f.ID]) {
				problems[f.ID] = "required"
			}
		}
		if len(problems) > 0 {
			httpx.LogInvalid(w, r, http.StatusUnprocessableEntity, "submit_form.validate", problems)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		var submissionId int
		err = tx.QueryRowContext(r.Context(), `
			INSERT INTO submission (form_id, time, ip) VALUES (?, ?, ?)
			RETURNING id`,
			form.ID,
			time.Now(),
			clientIP(r),
		).Scan(&submissionId)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_submission", err)
			return
		}

		stmt, err := tx.PrepareContext(r.Context(), `
			INSERT INTO submission_field (submission_id, field_id, value)
			VALUES (?, ?, ?)`)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_submission.fields.prepare", err)
			return
		}
		defer stmt.Close()

		for id, value := range req.Answers.Only(visible) {
			valueJson, err := json.Marshal(value)
			if err != nil {
				httpx.LogInternalError(w, "db.insert_submission.fields.parse_value", err)
				return
			}
			_, err = stmt.ExecContext(r.Context(), submissionId, id, string(valueJson))
			if err != nil {
				httpx.LogInternalError(w, "db.insert_submission.fields.insert", err)
				return
			}
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_submission.commit", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id":              submissionId,
			"thankYouMessage": form.ThankYouMessage,
		})
	}
}
