package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"taskdesk/internal/config"
	"taskdesk/internal/handlers"
	"taskdesk/internal/middleware"
	"taskdesk/internal/models"
	"taskdesk/internal/repository"
	"taskdesk/internal/repository/postgres"
	"taskdesk/internal/service"
)

// Repos bundles the storage dependencies so tests can swap in fakes.
type Repos struct {
	Tasks       repository.TaskRepository
	Users       repository.UserRepository
	Clients     repository.ClientRepository
	Requests    repository.RequestRepository
	Departments repository.DepartmentRepository
}

// NewPostgres wires the router against pgx-backed repositories.
func NewPostgres(log zerolog.Logger, db *pgxpool.Pool, cfg config.Config) http.Handler {
	return New(log, cfg, Repos{
		Tasks:       postgres.NewTaskRepo(db),
		Users:       postgres.NewUserRepo(db),
		Clients:     postgres.NewClientRepo(db),
		Requests:    postgres.NewRequestRepo(db),
		Departments: postgres.NewDepartmentRepo(db),
	})
}

func New(log zerolog.Logger, cfg config.Config, repos Repos) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recoverer(log))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.Origin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(httprate.LimitByIP(200, time.Minute))
	r.Use(middleware.WithAuth(cfg))

	// Health
	r.Get("/healthz", handlers.Health())

	// Services + handlers
	authSvc := service.NewAuthService(repos.Users, cfg.SessionSecret)
	taskSvc := service.NewTaskService(repos.Tasks, repos.Users)
	reqSvc := service.NewRequestService(repos.Requests, repos.Clients)

	ah := handlers.NewAuthHTTP(authSvc, repos.Users)
	th := handlers.NewTaskHTTP(taskSvc, repos.Tasks)
	lh := handlers.NewLogHTTP(repos.Tasks)
	ch := handlers.NewClientHTTP(repos.Clients)
	rh := handlers.NewRequestHTTP(reqSvc, repos.Requests)
	dh := handlers.NewDepartmentHTTP(repos.Departments)
	uh := handlers.NewUserHTTP(repos.Users)

	r.Route("/api/auth", func(r chi.Router) {
		r.Post("/register", ah.Register())
		r.Post("/login", ah.Login())
		r.Post("/logout", ah.Logout())
		r.With(middleware.RequireAuth).Get("/me", ah.Me())
	})

	r.Route("/api/tasks", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", th.List())
		r.Post("/", th.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", th.Get())
			r.Patch("/", th.Update())
			r.Delete("/", th.Delete())
			r.Get("/comments", th.ListComments())
			r.Post("/comments", th.AddComment())
			r.Get("/logs", th.ListLogs())
		})
	})

	r.With(middleware.RequireAuth).Get("/api/task-logs", lh.List())

	r.Route("/api/clients", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", ch.List())
		r.Post("/", ch.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", ch.Get())
			r.Patch("/", ch.Update())
			r.Delete("/", ch.Delete())
		})
	})

	r.Route("/api/client-requests", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", rh.List())
		r.Post("/", rh.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", rh.Get())
			r.Patch("/", rh.Update())
			r.Delete("/", rh.Delete())
			r.Post("/convert", rh.Convert())
		})
	})

	r.Route("/api/departments", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", dh.List())
		r.Post("/", dh.Create())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", dh.Get())
			r.Patch("/", dh.Update())
			r.Delete("/", dh.Delete())
		})
	})

	r.Route("/api/users", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", uh.List())
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", uh.Get())
			r.With(middleware.RequireSelfOrRoles(models.RoleAdmin, models.RoleManager)).Patch("/", uh.Update())
			r.With(middleware.RequireRoles(models.RoleAdmin, models.RoleManager)).Delete("/", uh.Delete())
		})
	})

	return r
}
