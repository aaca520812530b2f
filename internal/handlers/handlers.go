package handlers

import (
	"MachineCatalog/internal/config"
	"MachineCatalog/internal/middleware"
	"MachineCatalog/internal/service"
	"MachineCatalog/internal/views"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	machineService *service.MachineService,
	sessions *middleware.Sessions,
	renderer *views.Renderer,
	metrics *middleware.Metrics,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	if metrics != nil {
		r.Use(metrics.Middleware)
	}
	r.Use(chimw.Recoverer)
	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.MethodOverride)
	if config.RequestTimeout > 0 {
		r.Use(chimw.Timeout(config.RequestTimeout))
	}
	r.Use(sessions.WithSession)

	// Handlers
	pg := &pages{views: renderer, logger: logger}
	sessionHandler := NewSessionHandler(userService, sessions, pg, logger)
	machineHandler := NewMachineHandler(machineService, pg, logger, config)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		pg.errorPage(w, r, http.StatusNotFound, "Page not found")
	})

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/machines", http.StatusFound)
	})
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("ok"))
	})
	if metrics != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}
	r.Get("/contacts", func(w http.ResponseWriter, r *http.Request) {
		pg.render(w, r, http.StatusOK, views.PageContacts, views.Page{Title: "Contacts"})
	})

	// Auth routes
	r.Get("/login", sessionHandler.LoginForm)
	r.Post("/login", sessionHandler.Login)
	r.Get("/logout", sessionHandler.Logout)

	// Machine routes
	r.Get("/machines", machineHandler.List)
	r.Get("/machines/{id}", machineHandler.Show)
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/machines/new", machineHandler.New)
		r.Post("/machines", machineHandler.Create)
		r.Get("/machines/{id}/edit", machineHandler.Edit)
		r.Put("/machines/{id}", machineHandler.Update)
		r.Delete("/machines/{id}", machineHandler.Delete)
	})

	return &Handler{Router: r}
}
