package handlers

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/azamatkg/subi-sub002/internal/config"
	"github.com/azamatkg/subi-sub002/internal/middleware"
	"github.com/azamatkg/subi-sub002/internal/model"
	"github.com/azamatkg/subi-sub002/internal/service"
)

type Handler struct {
	Router chi.Router
}

// NewHandler разводящий для хендлеров
func NewHandler(
	userService *service.UserService,
	refService *service.ReferenceService,
	dashService *service.DashboardService,
	logger *zap.SugaredLogger,
	config *config.Config,
) *Handler {
	r := chi.NewRouter()

	r.Use(middleware.WithGzip)
	r.Use(middleware.WithLogging)
	r.Use(middleware.WithAuth(config.AuthSecret))

	// Handlers
	authHandler := NewAuthHandler(userService, logger, config)
	refHandler := NewReferenceHandler(refService, logger)
	dashHandler := NewDashboardHandler(dashService, logger)

	// Auth routes (анонимные)
	r.Post("/api/auth/login", authHandler.Login)
	r.Post("/api/auth/refresh", authHandler.Refresh)

	// Reference routes: чтение — любой аутентифицированный, мутации — ADMIN
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/api/references/{kind}", refHandler.List)
		r.Get("/api/dashboard/stats", dashHandler.Stats)
	})
	r.Group(func(r chi.Router) {
		r.Use(middleware.RequireRole(model.RoleAdmin))
		r.Post("/api/references/{kind}", refHandler.Create)
		r.Put("/api/references/{kind}/{id}", refHandler.Update)
		r.Delete("/api/references/{kind}/{id}", refHandler.Delete)
	})

	return &Handler{Router: r}
}
