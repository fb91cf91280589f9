package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/azamatkg/subi-sub002/internal/config"
	"github.com/azamatkg/subi-sub002/internal/middleware"
	"github.com/azamatkg/subi-sub002/internal/model"
	"github.com/azamatkg/subi-sub002/internal/service"
)

// AuthHandler обрабатывает вход и обновление токенов.
type AuthHandler struct {
	UserService *service.UserService
	Logger      *zap.SugaredLogger
	Config      *config.Config
}

// NewAuthHandler создаёт хендлер аутентификации
func NewAuthHandler(userService *service.UserService, logger *zap.SugaredLogger, cfg *config.Config) *AuthHandler {
	return &AuthHandler{UserService: userService, Logger: logger, Config: cfg}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type userDTO struct {
	Login    string `json:"login"`
	FullName string `json:"fullName"`
	Role     string `json:"role"`
}

type loginResponse struct {
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
	User         userDTO `json:"user"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type refreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// issuePair подписывает пару access/refresh для пользователя.
func (h *AuthHandler) issuePair(u *model.User) (access, refresh string, err error) {
	access, err = middleware.IssueAccessToken(h.Config.AuthSecret, u.ID, u.Login, u.Role, h.Config.AccessTokenTTL)
	if err != nil {
		return "", "", err
	}
	refresh, err = middleware.IssueRefreshToken(h.Config.AuthSecret, u.ID, u.Login, u.Role, h.Config.RefreshTokenTTL)
	if err != nil {
		return "", "", err
	}
	return access, refresh, nil
}

// Login вход по логину/паролю; отдаёт пару токенов и снимок пользователя.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "error.badRequest")
		return
	}

	user, err := h.UserService.Login(r.Context(), req.Login, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "invalid login or password", "error.unauthorized")
			return
		}
		h.Logger.Errorw("Login: service failure", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "error.internal")
		return
	}

	access, refresh, err := h.issuePair(user)
	if err != nil {
		h.Logger.Errorw("Login: token signing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "error.internal")
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		AccessToken:  access,
		RefreshToken: refresh,
		User:         userDTO{Login: user.Login, FullName: user.FullName, Role: user.Role},
	})
}

// Refresh обменивает refresh-токен на новую пару access/refresh.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "refreshToken is required", "error.badRequest")
		return
	}

	claims, err := middleware.ParseRefreshToken(h.Config.AuthSecret, req.RefreshToken)
	if err != nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token", "error.unauthorized")
		return
	}

	// пользователь мог быть удалён после выдачи refresh-токена
	user, err := h.UserService.GetByLogin(r.Context(), claims.Login)
	if err != nil {
		h.Logger.Errorw("Refresh: user lookup failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "error.internal")
		return
	}
	if user == nil {
		writeError(w, http.StatusUnauthorized, "invalid refresh token", "error.unauthorized")
		return
	}

	access, refresh, err := h.issuePair(user)
	if err != nil {
		h.Logger.Errorw("Refresh: token signing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "error.internal")
		return
	}

	writeJSON(w, http.StatusOK, refreshResponse{AccessToken: access, RefreshToken: refresh})
}
