package routes

import (
	"github.com/Dosada05/bracket-live/handlers"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/bracket-live/docs" // swagger docs registration
)

func SetupRoutes(
	router *chi.Mux,
	bracketHandler *handlers.BracketHandler,
	webSocketHandler *handlers.WebSocketHandler,
	healthHandler *handlers.HealthHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)

	// The bracket widget is embedded on pages served from other origins.
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	router.Get("/healthz", healthHandler.LivenessHandler)

	router.Get("/tournaments/{tournamentID}", bracketHandler.GetMetaHandler)

	router.Route("/bracket", func(r chi.Router) {
		r.Get("/{tournamentID}", bracketHandler.GetHandler)
		r.Get("/{tournamentID}/stream", bracketHandler.StreamHandler)
	})

	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
}
