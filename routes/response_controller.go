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

type submitRequest struct {
	FormID string       `json:"formId"`
	Label  string       `json:"label,omitempty"`
	Values model.Values `json:"values"`
}

func SubmitResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}

		var req submitRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		form, err := app.GetForm(r.Context(), req.FormID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "submit_response.form", req.FormID)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}

		resp, err := model.Submit(form, req.Values, nil, session)
		if err != nil {
			httpx.LogUnprocessable(w, "response.validate", err)
			return
		}
		resp.Label = req.Label

		resp, err = app.SaveResponse(r.Context(), resp)
		if err != nil {
			httpx.LogInternalError(w, "db.save_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, resp)
	}
}

func ListResponses(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}

		responses, err := app.ListResponses(r.Context(), session.UserID)
		if err != nil {
			httpx.LogInternalError(w, "db.list_responses", err)
			return
		}

		render.JSON(w, r, map[string]any{
			"responses": responses,
		})
	}
}

func GetResponseById(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}
		respId := chi.URLParam(r, "id")

		resp, err := app.GetResponse(r.Context(), respId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "get_response", respId)
			} else {
				httpx.LogInternalError(w, "db.get_response", err)
			}
			return
		}
		if resp.OwnerID != session.UserID {
			httpx.LogNotFound(w, "get_response.owner", respId)
			return
		}

		render.JSON(w, r, resp)
	}
}

// UpdateResponse re-validates the submitted values against the current
// form and saves over the prior response, keeping its identity.
func UpdateResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}
		respId := chi.URLParam(r, "id")

		var req submitRequest
		err := render.DecodeJSON(r.Body, &req)
		if err != nil {
			httpx.LogStatus(w, http.StatusBadRequest, log.DebugLevel, "request.parse_body")
			return
		}

		prior, err := app.GetResponse(r.Context(), respId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "update_response", respId)
			} else {
				httpx.LogInternalError(w, "db.get_response", err)
			}
			return
		}
		if prior.OwnerID != session.UserID {
			httpx.LogNotFound(w, "update_response.owner", respId)
			return
		}

		form, err := app.GetForm(r.Context(), prior.FormID)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "update_response.form", prior.FormID)
			} else {
				httpx.LogInternalError(w, "db.get_form", err)
			}
			return
		}

		resp, err := model.Submit(form, req.Values, &prior, session)
		if err != nil {
			httpx.LogUnprocessable(w, "response.validate", err)
			return
		}
		// the submitted label wins, even when empty: PUT without a
		// label clears it
		resp.Label = req.Label

		resp, err = app.SaveResponse(r.Context(), resp)
		if err != nil {
			httpx.LogInternalError(w, "db.save_response", err)
			return
		}

		render.JSON(w, r, resp)
	}
}

// CopyResponse duplicates a response under a fresh identity with a
// "Copy of" label. No re-validation: the values were accepted once.
func CopyResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}
		respId := chi.URLParam(r, "id")

		prior, err := app.GetResponse(r.Context(), respId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "copy_response", respId)
			} else {
				httpx.LogInternalError(w, "db.get_response", err)
			}
			return
		}
		if prior.OwnerID != session.UserID {
			httpx.LogNotFound(w, "copy_response.owner", respId)
			return
		}

		resp, err := app.SaveResponse(r.Context(), model.CopyResponse(prior))
		if err != nil {
			httpx.LogInternalError(w, "db.save_response", err)
			return
		}

		w.WriteHeader(http.StatusCreated)
		render.JSON(w, r, resp)
	}
}

func DeleteResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}
		respId := chi.URLParam(r, "id")

		prior, err := app.GetResponse(r.Context(), respId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "delete_response", respId)
			} else {
				httpx.LogInternalError(w, "db.get_response", err)
			}
			return
		}
		if prior.OwnerID != session.UserID {
			httpx.LogNotFound(w, "delete_response.owner", respId)
			return
		}

		if err := app.Store.DeleteResponse(r.Context(), respId); err != nil {
			httpx.LogInternalError(w, "db.delete_response", err)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func ExportResponse(app app.App) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := middlewares.SessionFrom(r)
		if !ok {
			httpx.LogStatus(w, http.StatusUnauthorized, log.DebugLevel, "request.session")
			return
		}
		respId := chi.URLParam(r, "id")

		resp, err := app.GetResponse(r.Context(), respId)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				httpx.LogNotFound(w, "export_response", respId)
			} else {
				httpx.LogInternalError(w, "db.get_response", err)
			}
			return
		}
		if resp.OwnerID != session.UserID {
			httpx.LogNotFound(w, "export_response.owner", respId)
			return
		}

		doc, err := export.ResponseDocument(resp)
		if err != nil {
			httpx.LogInternalError(w, "export.response", err)
			return
		}

		serveDownload(w, export.Filename(resp.FormName), doc)
	}
}
