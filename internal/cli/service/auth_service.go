package service

import (
	"context"
	"errors"

	"github.com/azamatkg/subi-sub002/internal/cli/api"
	"github.com/azamatkg/subi-sub002/internal/cli/auth"
)

// ErrInvalidCredentials — неверный логин или пароль.
var ErrInvalidCredentials = errors.New("invalid login or password")

// ErrNotLoggedIn — нет сохранённой сессии.
var ErrNotLoggedIn = errors.New("not logged in")

// SessionStore — хранилище учётных данных и снимка сессии CLI.
type SessionStore interface {
	api.CredentialStore
	SaveSession(auth.Session) error
	Session() (*auth.Session, error)
}

// AuthService — вход/выход консоли поверх REST-фасада.
type AuthService struct {
	client *api.Client
	store  SessionStore
}

func NewAuthService(client *api.Client, store SessionStore) *AuthService {
	return &AuthService{client: client, store: store}
}

type loginRequest struct {
	Login    string `json:"login"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         struct {
		Login    string `json:"login"`
		FullName string `json:"fullName"`
		Role     string `json:"role"`
	} `json:"user"`
}

// Login выполняет вход, сохраняет пару токенов и снимок сессии.
func (s *AuthService) Login(ctx context.Context, login, password string) (*auth.Session, error) {
	var resp loginResponse
	err := s.client.PostJSON(ctx, "/api/auth/login", loginRequest{Login: login, Password: password}, &resp)
	if err != nil {
		// 401 на логине означает неверные учётные данные; фасад мог при этом
		// прогнать цикл обновления — эти исходы сворачиваем в одну ошибку.
		if errors.Is(err, api.ErrNoRefreshToken) || errors.Is(err, api.ErrRetryExhausted) || errors.Is(err, api.ErrRefreshFailed) {
			return nil, ErrInvalidCredentials
		}
		var apiErr *api.APIError
		if errors.As(err, &apiErr) && apiErr.Status == 401 {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if resp.AccessToken == "" || resp.RefreshToken == "" {
		return nil, errors.New("malformed login response")
	}

	if err := s.store.SaveTokens(api.TokenPair{AccessToken: resp.AccessToken, RefreshToken: resp.RefreshToken}); err != nil {
		return nil, err
	}
	sess := auth.Session{Login: resp.User.Login, FullName: resp.User.FullName, Role: resp.User.Role}
	if err := s.store.SaveSession(sess); err != nil {
		return nil, err
	}
	return &sess, nil
}

// Logout очищает все сохранённые учётные данные.
func (s *AuthService) Logout() error {
	return s.store.Clear()
}

// Current возвращает снимок текущей сессии или ErrNotLoggedIn.
func (s *AuthService) Current() (*auth.Session, error) {
	sess, err := s.store.Session()
	if err != nil {
		return nil, err
	}
	if sess == nil {
		return nil, ErrNotLoggedIn
	}
	return sess, nil
}
