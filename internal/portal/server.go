// Package portal serves the JSON web portal for employees and NGOs.
package portal

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/set-night/o2ledger/internal/metrics"
	"github.com/set-night/o2ledger/internal/service"
)

// ErrorReporter receives unexpected errors, e.g. the Telegram log chat.
type ErrorReporter interface {
	LogError(err error, context string)
}

type Options struct {
	Secret         []byte
	MetricsEnabled bool

	Principals  *service.PrincipalService
	Employees   *service.EmployeeService
	Projects    *service.ProjectService
	Activities  *service.ActivityService
	Leaderboard *service.LeaderboardService

	// Errors is optional.
	Errors ErrorReporter
}

type Server struct {
	opts Options
	auth *Authenticator
}

func NewServer(opts Options) *Server {
	return &Server{
		opts: opts,
		auth: NewAuthenticator(opts.Secret, opts.Principals),
	}
}

// Handler returns the chi router with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if s.opts.MetricsEnabled {
		r.Handle("/metrics", metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(s.auth.Middleware)

		r.Get("/me", s.handleMe)
		r.Get("/me/purchases", s.handleMyPurchases)
		r.Get("/leaderboard", s.handleLeaderboard)

		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.handleListProjects)
			r.Post("/", s.handleCreateProject)
			r.Get("/{id}", s.handleGetProject)
			r.Put("/{id}", s.handleUpdateProject)
			r.Post("/{id}/join", s.handleJoinProject)
			r.Post("/{id}/done", s.handleMarkDone)
		})

		r.Route("/activities", func(r chi.Router) {
			r.Get("/", s.handleListActivities)
			r.Post("/", s.handleCreateActivity)
			r.Get("/{id}", s.handleGetActivity)
			r.Put("/{id}", s.handleUpdateActivity)
			r.Post("/{id}/purchase", s.handlePurchase)
		})
	})

	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil && rctx.RoutePattern() != "" {
			route = rctx.RoutePattern()
		}
		elapsed := time.Since(start)
		metrics.ObserveRequest(route, r.Method, ww.Status(), elapsed)

		slog.Debug("http request",
			"method", r.Method,
			"route", route,
			"status", ww.Status(),
			"duration_ms", elapsed.Milliseconds(),
			"request_id", middleware.GetReqID(r.Context()),
		)
	})
}
