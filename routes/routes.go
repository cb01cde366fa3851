package routes

import (
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/mbolis/quick-form/app"
	"github.com/mbolis/quick-form/routes/middlewares"
)

func Wire(app app.App) http.Handler {
	root := chi.NewRouter()
	root.Use(middleware.Logger, middleware.Recoverer)

	root.Mount("/api", apiRouter(app))

	// pages are served only when a static root is configured
	if app.StaticDir != "" {
		root.
			With(middlewares.CookieAuth(app.BearerServer), middlewares.Admin(app.TokenSecret)).
			Mount("/admin", servePrivateFiles(app.StaticDir, "/admin"))
		root.Mount("/", servePublicFiles(app.StaticDir))
	}

	return root
}

func apiRouter(app app.App) http.Handler {
	api := chi.NewRouter()

	api.Get(`/forms/{id:^\d+$}`, PublicGetFormById(app))
	api.Post(`/forms/{id:^\d+$}/visible`, PublicVisibleFields(app))
	api.Post(`/forms/{id:^\d+$}/submissions`, PublicSubmitForm(app))

	api.Route("/admin", func(r chi.Router) {
		r.Use(middlewares.Admin(app.TokenSecret))

		// CRUD form
		r.Post("/forms", CreateForm(app))
		r.Get("/forms", ListForms(app))
		r.Get(`/forms/{id:^\d+$}`, GetFormById(app))
		r.Put(`/forms/{id:^\d+$}`, UpdateForm(app))
		r.Delete(`/forms/{id:^\d+$}`, DeleteForm(app))

		// condition authoring
		r.Post("/fields", NewField(app))
		r.Get(`/forms/{id:^\d+$}/fields/{fieldId}/conditions`, GetConditionChoices(app))

		r.Get(`/forms/{id:^\d+$}/submissions`, GetFormSubmissions(app))
		r.Get(`/forms/{id:^\d+$}/submissions.csv`, ExportFormSubmissions(app))
	})

	api.Post("/login", Login(app))
	api.Post("/refresh", Refresh(app))

	return api
}

func servePublicFiles(root string) http.Handler {
	return http.FileServer(http.Dir(filepath.Join(root, "public")))
}

func servePrivateFiles(root, path string) http.Handler {
	return http.StripPrefix(path, http.FileServer(http.Dir(filepath.Join(root, "private"))))
}
