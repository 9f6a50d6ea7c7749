package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func NewRouter(catalog *CatalogHandler, checkout *CheckoutHandler, upload *UploadHandler, verifier Verifier) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)

	r.Get("/health", Health)

	r.Route("/api", func(r chi.Router) {
		r.Get("/catalog", catalog.Read)
		r.Post("/checkout", checkout.Create)

		r.Group(func(r chi.Router) {
			r.Use(RequireAdmin(verifier))
			r.Put("/catalog", catalog.Replace)
			r.Patch("/catalog", catalog.Upsert)
			r.Delete("/catalog", catalog.Delete)
			r.Get("/catalog/list", catalog.List)
			r.Post("/upload", upload.Create)
		})
	})

	return r
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
