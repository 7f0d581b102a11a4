package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware" // Alias to avoid conflict
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/Dosada05/tournament-pairing/docs" // swagger
	"github.com/Dosada05/tournament-pairing/handlers"
	"github.com/Dosada05/tournament-pairing/middleware"
	"github.com/Dosada05/tournament-pairing/utils"
)

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
}

func SetupRoutes(
	router chi.Router,
	opts Options,
	authHandler *handlers.AuthHandler,
	tournamentHandler *handlers.TournamentHandler,
	roundHandler *handlers.RoundHandler,
	rosterHandler *handlers.RosterHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/swagger/*", httpSwagger.WrapHandler)
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	router.Post("/auth/login", authHandler.Login)
	router.Get("/ws/tournaments/{tournamentID}", webSocketHandler.ServeWs)

	router.Route("/tournaments", func(r chi.Router) {
		// Публичные маршруты для просмотра турниров
		r.Get("/", tournamentHandler.List)

		// Защищенные маршруты только для организаторов
		r.Group(func(r chi.Router) {
			r.Use(middleware.Authenticate(opts.JWTSecret))
			r.Use(middleware.Authorize(utils.RoleOrganizer))
			r.Post("/", tournamentHandler.Create)
		})

		r.Route("/{tournamentID}", func(r chi.Router) {
			r.Get("/", tournamentHandler.Get)
			r.Get("/round", roundHandler.Current)
			r.Get("/standings", tournamentHandler.Standings)
			r.Get("/team-points", tournamentHandler.TeamPoints)
			r.Get("/roster.csv", rosterHandler.Export)

			r.Group(func(r chi.Router) {
				r.Use(middleware.Authenticate(opts.JWTSecret))
				r.Use(middleware.Authorize(utils.RoleOrganizer))

				r.Delete("/", tournamentHandler.Delete)
				r.Put("/threshold", tournamentHandler.SetThreshold)
				r.Post("/begin", tournamentHandler.Begin)
				r.Post("/tiebreak", tournamentHandler.StartTiebreak)
				r.Post("/reset-scores", tournamentHandler.ResetScores)
				r.Post("/reset", tournamentHandler.Reset)
				r.Post("/standings/export", rosterHandler.PublishStandings)

				r.Post("/competitors", rosterHandler.AddCompetitor)
				r.Post("/competitors/sample", rosterHandler.AddSampleTeams)
				r.Delete("/competitors/{name}", rosterHandler.RemoveCompetitor)
				r.Put("/roster", rosterHandler.Import)
				r.Post("/roster/export", rosterHandler.PublishRoster)

				r.Put("/round/pairings/{index}/winner", roundHandler.SelectWinner)
				r.Delete("/round/pairings/{index}/winner", roundHandler.RevertSelection)
				r.Post("/round/finalize", roundHandler.Finalize)
			})
		})
	})
}
