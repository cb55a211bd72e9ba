package routes

import (
	"log/slog"
	"net/http"

	_ "github.com/Ishan007-bot/Sports-Arena-Backend/docs"
	"github.com/Ishan007-bot/Sports-Arena-Backend/handlers"
	"github.com/Ishan007-bot/Sports-Arena-Backend/middleware"
	"github.com/Ishan007-bot/Sports-Arena-Backend/models"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Handlers struct {
	Dashboard  *handlers.DashboardHandler
	Health     *handlers.HealthHandler
	Match      *handlers.MatchHandler
	Sport      *handlers.SportHandler
	Team       *handlers.TeamHandler
	Tournament *handlers.TournamentHandler
	User       *handlers.UserHandler
	WebSocket  *handlers.WebSocketHandler
}

type Options struct {
	JWTSecret      string
	AllowedOrigins []string
	Logger         *slog.Logger
}

func SetupRoutes(router chi.Router, h Handlers, opts Options) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(middleware.RequestLogger(opts.Logger))
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authenticate := middleware.Authenticate([]byte(opts.JWTSecret), opts.Logger)

	router.Get("/swagger/*", httpSwagger.WrapHandler)

	router.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/sports", h.Sport.GetAllSports)
		r.Get("/sports/{sport}", h.Sport.GetSport)

		// Scoring stays open so scorer devices need no account.
		r.Route("/matches", func(r chi.Router) {
			r.Get("/", h.Match.ListMatches)
			r.Post("/", h.Match.CreateMatch)
			r.Get("/live", h.Match.ListLiveMatches)
			r.Delete("/clear", h.Match.ClearMatches)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.Match.GetMatch)
				r.Delete("/", h.Match.DeleteMatch)
				r.Put("/score", h.Match.UpdateScore)
				r.Put("/start", h.Match.StartMatch)
				r.Put("/end", h.Match.EndMatch)
				r.Put("/cancel", h.Match.CancelMatch)
				r.Post("/undo", h.Match.UndoLastBall)
			})
		})

		r.Route("/teams", func(r chi.Router) {
			r.Get("/", h.Team.ListTeams)
			r.Get("/{teamID}", h.Team.GetTeam)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Team.CreateTeam)
				r.Put("/{teamID}", h.Team.UpdateTeam)
				r.Delete("/{teamID}", h.Team.DeleteTeam)
				r.Post("/{teamID}/players", h.Team.AddPlayer)
				r.Delete("/{teamID}/players/{playerID}", h.Team.RemovePlayer)
				r.Post("/{teamID}/logo", h.Team.UploadLogo)
			})
		})

		r.Route("/tournaments", func(r chi.Router) {
			r.Get("/", h.Tournament.ListTournaments)
			r.Get("/{tournamentID}", h.Tournament.GetTournament)
			r.Get("/{tournamentID}/standings", h.Tournament.GetStandings)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Post("/", h.Tournament.CreateTournament)
				r.Post("/{tournamentID}/teams", h.Tournament.AddTeam)
				r.Post("/{tournamentID}/generate-matches", h.Tournament.GenerateMatches)
				r.Put("/{tournamentID}/status", h.Tournament.UpdateStatus)
			})
		})

		r.With(authenticate, middleware.RequireRole(models.RoleAdmin)).Get("/dashboard", h.Dashboard.Stats)

		r.Route("/users", func(r chi.Router) {
			r.Post("/register", h.User.Register)
			r.Post("/login", h.User.Login)

			r.Group(func(r chi.Router) {
				r.Use(authenticate)
				r.Get("/profile", h.User.GetProfile)
				r.Put("/profile", h.User.UpdateProfile)
				r.Put("/change-password", h.User.ChangePassword)
				r.With(middleware.RequireRole(models.RoleAdmin)).Get("/all", h.User.ListUsers)
			})
		})
	})

	router.Get("/ws", h.WebSocket.ServeWs)
	router.Get("/ws/matches/{matchID}", h.WebSocket.ServeMatchWs)

	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"success":false,"error":"route not found"}` + "\n"))
	})
}
