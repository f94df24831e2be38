package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/phrazzld/userdir-api/internal/api"
	apiMiddleware "github.com/phrazzld/userdir-api/internal/api/middleware"
	"github.com/unrolled/secure"
)

// setupRouter creates the router with the middleware chain and the user routes.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	secureMiddleware := secure.New(secure.Options{
		FrameDeny:          true,
		ContentTypeNosniff: true,
		BrowserXssFilter:   true,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
		SSLRedirect:        app.config.Server.Production,
		SSLProxyHeaders:    map[string]string{"X-Forwarded-Proto": "https"},
		IsDevelopment:      !app.config.Server.Production,
	})

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.NewTraceMiddleware(app.logger))
	r.Use(secureMiddleware.Handler)
	if app.config.Server.RateLimitRequests > 0 {
		window := time.Duration(app.config.Server.RateLimitWindowSeconds) * time.Second
		r.Use(httprate.Limit(
			app.config.Server.RateLimitRequests,
			window,
			httprate.WithKeyFuncs(httprate.KeyByIP),
		))
	}

	userHandler := api.NewUserHandler(app.directory)

	r.Route("/users", func(r chi.Router) {
		r.Post("/", userHandler.CreateUser)
		r.Get("/", userHandler.ListUsers)
		r.Get("/{id}", userHandler.GetUser)
		r.Patch("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("failed to write health check response", "error", err)
		}
	})

	return r
}
