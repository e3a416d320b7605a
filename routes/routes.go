package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/formdesk/formdesk/app"
	"github.com/formdesk/formdesk/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get("/fieldtypes", ListFieldTypes())

	api.Group(func(r chi.Router) {
		r.Use(middlewares.Authenticated(app.TokenSecret))

		// CRUD forms
		r.Post("/forms", CreateForm(app))
		r.Get("/forms", ListForms(app))
		r.Get("/forms/{id}", GetFormById(app))
		r.Put("/forms/{id}", UpdateForm(app))
		r.Delete("/forms/{id}", DeleteForm(app))
		r.Get("/forms/{id}/export", ExportForm(app))

		// CRUD responses
		r.Post("/responses", SubmitResponse(app))
		r.Get("/responses", ListResponses(app))
		r.Get("/responses/{id}", GetResponseById(app))
		r.Put("/responses/{id}", UpdateResponse(app))
		r.Post("/responses/{id}/copy", CopyResponse(app))
		r.Delete("/responses/{id}", DeleteResponse(app))
		r.Get("/responses/{id}/export", ExportResponse(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}
