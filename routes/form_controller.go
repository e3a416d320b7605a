package routes

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/formdesk/formdesk/app"
	"github.com/formdesk/formdesk/export"
	"github.com/formdesk/formdesk/httpx"
	"github.com/formdesk/formdesk/log"
	"github.com/formdesk/formdesk/model"
	"github.com/formdesk/formdesk/routes/middlewares"
	"github.com/formdesk/formdesk/store"
)

type saveFormRequest struct {
	Name   string        `json:"name"`
	Fields []model.Field `json:"fields"`
	Draft  model.Draft   `json:"draft"`
}

func ListFieldTypes() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render.JSON(w, r, map[string]any{
			"types": model.Types(),
		})
	}
}

func CreateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}

		var req saveFormRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form := model.Form{
			Name:    req.Name,
			Fields:  req.Fields,
			OwnerID: session.UserID,
		}
		if err := model.ValidateForSave(form, req.Draft); err != nil {
			httpx.LogUnprocessable(w, "form.validate", err)
			return
		}

		form, err = app.SaveForm(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "db.save_form", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, form)
	}
}

func ListForms(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}

		forms, err := app.ListForms(r.Context(), session.UserID)
		if err != nil {
			httpx.LogInternalError(w, "db.list_forms", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"forms": forms,
		})
	}
}

// GetFormById is not owner-scoped: any authenticated user may load a
// form to fill it in.
func GetFormById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, err := app.GetForm(r.Context(), formId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "get_form", formId)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}

		render.JSON(w, r, form)
	}
}

func UpdateForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}
		formId := chi.URLParam(r, "id")

		var req saveFormRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		existing, err := app.GetForm(r.Context(), formId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "update_form", formId)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}
		if existing.OwnerID != session.UserID {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "update_form.owner")
			return
		}

		form := model.Form{
			ID:      formId,
			Name:    req.Name,
			Fields:  req.Fields,
			OwnerID: existing.OwnerID,
		}
		if err := model.ValidateForSave(form, req.Draft); err != nil {
			httpx.LogUnprocessable(w, "form.validate", err)
			return
		}

		form, err = app.SaveForm(r.Context(), form)
		if err != nil {
			httpx.LogInternalError(w, "db.save_form", err)
			return
		}

		render.JSON(w, r, form)
	}
}

func DeleteForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}
		formId := chi.URLParam(r, "id")

		existing, err := app.GetForm(r.Context(), formId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "delete_form", formId)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}
		if existing.OwnerID != session.UserID {
			httpx.LogStatus(w, http.StatusForbidden, log.DebugLevel, "delete_form.owner")
			return
		}

		// responses referencing the form go first; see store.DeleteForm
		if err := app.Store.DeleteForm(r.Context(), formId); err != nil {
			httpx.LogInternalError(w, "db.delete_form", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ExportForm(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		formId := chi.URLParam(r, "id")

		form, err := app.GetForm(r.Context(), formId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "export_form", formId)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}

		doc, err := export.FormDocument(form)
		if err != nil {
			httpx.LogInternalError(w, "export.form", err)
			return
		}

		serveDownload(w, export.Filename(form.Name), doc)
	}
}

func serveDownload(w http.ResponseWriter, filename string, doc []byte) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.Write(doc)
}
