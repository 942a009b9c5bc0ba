package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// NewRouter builds the HTTP routing table of the lending service.
func NewRouter(handlers HTTPHandlers) *chi.Mux {
	router := chi.NewRouter()

	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)

	router.Post("/patrons", handlers.HandleCreatePatron)
	router.Get("/patrons/{patronID}/profile", handlers.HandlePatronProfile)
	router.Post("/patrons/{patronID}/holds", handlers.HandlePlaceHold)
	router.Delete("/patrons/{patronID}/holds/{bookID}", handlers.HandleCancelHold)
	router.Post("/patrons/{patronID}/checkouts", handlers.HandleCheckOutBook)
	router.Post("/patrons/{patronID}/returns", handlers.HandleReturnBook)
	router.Post("/books", handlers.HandleAddBook)

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return router
}
