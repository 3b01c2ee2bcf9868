package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/partsflow/partsflow/pkg/app"
	"github.com/partsflow/partsflow/services/bom/application/handlers"
	appsvcs "github.com/partsflow/partsflow/services/bom/application/services"
)

// BomRoutes registers bom and search endpoints on the provided chi router.
func BomRoutes(r chi.Router, a *app.Application) {
	svcs := appsvcs.New(a)
	var starter handlers.WorkflowStarter
	if a.TemporalClient != nil {
		starter = a.TemporalClient.Client
	}
	r.Group(func(r chi.Router) {
		r.Route("/bom", func(r chi.Router) {
			r.Post("/suggest", handlers.NewPostBomSuggestHandler(svcs).Execute)
			r.Post("/suggest/async", handlers.NewPostBomSuggestAsyncHandler(starter).Execute)
			r.Route("/projects", func(r chi.Router) {
				r.Get("/", handlers.NewListProjectsHandler(svcs).Execute)
				r.Get("/{id}", handlers.NewGetProjectHandler(svcs).Execute)
			})
		})
		r.Route("/search", func(r chi.Router) {
			r.Post("/parts", handlers.NewPostSearchPartsHandler(svcs).Execute)
			r.Get("/providers", handlers.NewGetProvidersHandler(svcs).Execute)
		})
	})
}
