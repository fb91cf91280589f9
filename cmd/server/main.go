package main

import (
	"context"
	"errors"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/azamatkg/subi-sub002/internal/config"
	"github.com/azamatkg/subi-sub002/internal/handlers"
	"github.com/azamatkg/subi-sub002/internal/middleware"
	"github.com/azamatkg/subi-sub002/internal/model"
	"github.com/azamatkg/subi-sub002/internal/repo"
	"github.com/azamatkg/subi-sub002/internal/service"
)

func main() {
	cfg := config.NewConfig()

	// создаём предустановленный регистратор zap
	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}

	// делаем регистратор SugaredLogger
	sugar := logger.Sugar()
	middleware.SetLogger(sugar) // передаём логгер в middleware
	//сброс буфера логгера
	defer func() {
		if err := logger.Sync(); err != nil {
			sugar.Errorw("Failed to sync logger", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	gormDB, err := repo.InitDB(cfg.DatabaseDSN)
	if err != nil {
		sugar.Fatalw("failed to initialize database", "error", err)
	}

	userRepo := repo.NewUserRepository(gormDB)
	refRepo := repo.NewReferenceRepository(gormDB)
	userService := service.NewUserService(userRepo)
	refService := service.NewReferenceService(refRepo)
	dashService := service.NewDashboardService(refRepo)

	seedAdmin(ctx, sugar, userService)

	h := handlers.NewHandler(userService, refService, dashService, sugar, cfg)

	addr := cfg.BaseURL

	sugar.Infow(
		"Starting server",
		"addr", addr,
	)

	sugar.Infow("Config",
		"BaseURL", cfg.BaseURL,
		"EnableHTTPS", cfg.EnableHTTPS,
		"DatabaseDSN", cfg.DatabaseDSN,
		"AccessTokenTTL", cfg.AccessTokenTTL,
	)

	if err := http.ListenAndServe(addr, h.Router); err != nil {
		sugar.Fatalw("Server failed", "error", err)
	}
}

// seedAdmin создаёт дефолтного администратора, если он ещё не заведён.
// Пароль берётся из ADMIN_PASSWORD (по умолчанию admin — только для разработки).
func seedAdmin(ctx context.Context, sugar *zap.SugaredLogger, users *service.UserService) {
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
	}
	_, err := users.Register(ctx, "admin", password, "Администратор", model.RoleAdmin)
	if err != nil {
		if errors.Is(err, service.ErrLoginTaken) {
			return
		}
		sugar.Warnw("seed admin failed", "error", err)
		return
	}
	sugar.Infow("seeded default admin user", "login", "admin")
}
