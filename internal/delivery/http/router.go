package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"weddingrsvp/internal/delivery/http/controllers"
	"weddingrsvp/internal/delivery/http/middleware"
)

// Controllers groups the handlers mounted by NewRouter.
type Controllers struct {
	Events    *controllers.EventController
	Responses *controllers.ResponseController
	RSVP      *controllers.RSVPController
}

// NewRouter initializes the HTTP router with all application routes.
// metricsHandler is mounted at GET /metrics when non-nil.
func NewRouter(c Controllers, metricsHandler http.Handler) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("POST /events", c.Events.CreateEvent)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("PATCH /events/{eventID}", c.Events.UpdateEvent)
	mux.HandleFunc("PUT /events/{eventID}", c.Events.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", c.Events.DeleteEvent)

	// Responses (admin)
	mux.HandleFunc("GET /responses", c.Responses.ListResponses)
	mux.HandleFunc("POST /responses", c.Responses.CreateResponse)
	mux.HandleFunc("GET /responses/overview", c.Responses.Overview)
	mux.HandleFunc("GET /responses/export", c.Responses.Export)
	mux.HandleFunc("GET /responses/{responseID}", c.Responses.GetResponse)
	mux.HandleFunc("PATCH /responses/{responseID}", c.Responses.UpdateResponse)
	mux.HandleFunc("PUT /responses/{responseID}", c.Responses.UpdateResponse)
	mux.HandleFunc("DELETE /responses/{responseID}", c.Responses.DeleteResponse)

	// Guest form
	mux.HandleFunc("POST /rsvp", c.RSVP.Submit)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}

	return mux
}

// Wrap applies the middleware chain: metrics outermost, then request logging, then CORS.
func Wrap(h http.Handler, logger *slog.Logger, obs middleware.RequestObserver, allowedOrigins []string) http.Handler {
	h = middleware.CORS(allowedOrigins, h)
	h = middleware.LoggingMiddleware(logger, h)
	if obs != nil {
		h = middleware.Metrics(obs, h)
	}
	return h
}
