package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/database"
	"github.com/mbolis/quick-form/httpx"
	"github.com/mbolis/quick-form/log"
	"github.com/mbolis/quick-form/model"
	"github.com/mbolis/quick-form/visibility"
)

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		form := model.Form{}
		err := render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if problems := httpx.ValidateForm(form); problems != nil {
			httpx.LogInvalid(w, r, http.StatusBadRequest, "request.validate.create_form", problems)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		formId, err := database.InsertForm(r.Context(), tx, form)
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.insert_form.commit", err)
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, map[string]any{
			"id": formId,
		})
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		forms, err := database.ListForms(r.Context(), app.DB)
		if err != nil {
			httpx.LogInternalError(w, "db.get_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := formIdParam(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form, err := database.GetForm(r.Context(), app.DB, formId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "get_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		render.JSON(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := formIdParam(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		form := model.Form{}
		err = render.DecodeJSON(r.Body, &form)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		if problems := httpx.ValidateForm(form); problems != nil {
			httpx.LogInvalid(w, r, http.StatusBadRequest, "request.validate.update_form", problems)
			return
		}

		tx, err := app.BeginTx(r.Context(), nil)
		if err != nil {
			httpx.LogInternalError(w, "db.begin_tx", err)
			return
		}
		defer tx.Rollback()

		err = database.UpdateForm(r.Context(), tx, formId, form)
		switch {
		case errors.Is(err, database.ErrNotFound):
			httpx.LogNotFound(w, "update_form", formId)
			return
		case errors.Is(err, database.ErrConflict):
			httpx.LogStatus(w, http.StatusConflict, log.DebugLevel, "db.update_form.verify.conflict")
			return
		case err != nil:
			httpx.LogInternalError(w, "db.update_form", err)
			return
		}

		err = tx.Commit()
		if err != nil {
			httpx.LogInternalError(w, "db.update_form.commit", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := formIdParam(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}

		err = database.DeleteForm(r.Context(), app.DB, formId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "delete_form", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.delete_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

// NewField returns a field of the requested type filled with defaults,
// for the builder to append to a form.
func NewField(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := struct {
			Type model.FieldType `json:"type"`
			ID   string          `json:"id"`
		}{}
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, model.CreateField(req.Type, req.ID))
	}
}

// GetConditionChoices lists what the condition editor of one field may
// offer: every other field of the form, with the values it can expect.
func GetConditionChoices(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId, err := formIdParam(r)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.get_url_param.id")
			return
		}
		fieldId := chi.URLParam(r, "fieldId")

		form, err := database.GetForm(r.Context(), app.DB, formId)
		if errors.Is(err, database.ErrNotFound) {
			httpx.LogNotFound(w, "get_condition_choices", formId)
			return
		}
		if err != nil {
			httpx.LogInternalError(w, "db.get_form", err)
			return
		}

		field, ok := form.Field(fieldId)
		if !ok {
			httpx.LogNotFound(w, "get_condition_choices.field", fieldId)
			return
		}

		render.JSON(w, r, map[string]any{
			"field":       field.ID,
			"conditions":  field.Conditions,
			"controllers": visibility.ControllerCandidates(form.Fields, field.ID),
		})
	}
}
