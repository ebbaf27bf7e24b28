package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"clubsite/internal/delivery/http/controllers"
	"clubsite/internal/delivery/http/middleware"
	"clubsite/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes.
// Read endpoints are public; every write endpoint requires the admin token.
func NewRouter(
	eventController *controllers.EventController,
	heroController *controllers.HeroController,
	authController *controllers.AuthController,
	uploadController *controllers.UploadController,
	verifier domain.TokenVerifier,
) *http.ServeMux {
	mux := http.NewServeMux()
	requireAuth := middleware.RequireAuth(verifier)

	// Public reads
	mux.HandleFunc("GET /events", eventController.ListEvents)
	mux.HandleFunc("GET /events/slug/{slug}", eventController.GetEventBySlug)
	mux.HandleFunc("GET /events/{eventID}", eventController.GetEventByID)
	mux.HandleFunc("GET /hero", heroController.ListSlides)
	mux.HandleFunc("GET /hero/{slideID}", heroController.GetSlideByID)

	// Auth
	mux.HandleFunc("POST /auth/login", authController.Login)

	// Admin writes
	mux.HandleFunc("POST /events", requireAuth(eventController.CreateEvent))
	mux.HandleFunc("PATCH /events/{eventID}", requireAuth(eventController.UpdateEvent))
	mux.HandleFunc("PUT /events/{eventID}/status", requireAuth(eventController.SetEventStatus))
	mux.HandleFunc("DELETE /events/{eventID}", requireAuth(eventController.DeleteEvent))
	mux.HandleFunc("POST /hero", requireAuth(heroController.CreateSlide))
	mux.HandleFunc("POST /hero/reorder", requireAuth(heroController.ReorderSlides))
	mux.HandleFunc("PATCH /hero/{slideID}", requireAuth(heroController.UpdateSlide))
	mux.HandleFunc("PUT /hero/{slideID}/active", requireAuth(heroController.ToggleSlideActive))
	mux.HandleFunc("DELETE /hero/{slideID}", requireAuth(heroController.DeleteSlide))
	mux.HandleFunc("POST /upload", requireAuth(uploadController.Upload))

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
