package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	_ "modernc.org/sqlite"

	"github.com/azamatkg/subi-sub002/internal/config"
	"github.com/azamatkg/subi-sub002/internal/handlers"
	"github.com/azamatkg/subi-sub002/internal/model"
	"github.com/azamatkg/subi-sub002/internal/repo"
	"github.com/azamatkg/subi-sub002/internal/service"
	"go.uber.org/zap"
)

const testSecret = "handler-test-secret"

// newTestRouter поднимает полный роутер поверх in-memory SQLite
// и сидирует двух пользователей: admin/admin123 (ADMIN) и viewer/viewer123 (VIEWER).
func newTestRouter(t *testing.T) http.Handler {
	t.Helper()

	dial := gormsqlite.Dialector{DriverName: "sqlite", DSN: "file::memory:"}
	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&model.User{}, &model.ReferenceItem{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}

	cfg := &config.Config{
		AuthSecret:      testSecret,
		AccessTokenTTL:  time.Minute,
		RefreshTokenTTL: time.Hour,
	}

	userRepo := repo.NewUserRepository(db)
	refRepo := repo.NewReferenceRepository(db)
	userSvc := service.NewUserService(userRepo)
	refSvc := service.NewReferenceService(refRepo)
	dashSvc := service.NewDashboardService(refRepo)

	ctx := context.Background()
	if _, err := userSvc.Register(ctx, "admin", "admin123", "Админ", model.RoleAdmin); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	if _, err := userSvc.Register(ctx, "viewer", "viewer123", "Наблюдатель", model.RoleViewer); err != nil {
		t.Fatalf("seed viewer: %v", err)
	}

	h := handlers.NewHandler(userSvc, refSvc, dashSvc, zap.NewNop().Sugar(), cfg)
	return h.Router
}

// doJSON выполняет запрос к роутеру с JSON-телом и опциональным Bearer-токеном.
func doJSON(t *testing.T, h http.Handler, method, path string, payload any, token string) *httptest.ResponseRecorder {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(b)
	} else {
		body = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// loginAs логинится и возвращает пару токенов.
func loginAs(t *testing.T, h http.Handler, login, password string) (access, refresh string) {
	t.Helper()
	rr := doJSON(t, h, http.MethodPost, "/api/auth/login", map[string]string{"login": login, "password": password}, "")
	assert.Equal(t, http.StatusOK, rr.Code, "login must succeed: %s", rr.Body.String())
	var resp struct {
		AccessToken  string `json:"accessToken"`
		RefreshToken string `json:"refreshToken"`
	}
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode login response: %v", err)
	}
	return resp.AccessToken, resp.RefreshToken
}
