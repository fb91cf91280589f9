package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims — полезная нагрузка токенов консоли.
// Refresh-токены помечаются typ="refresh" и не принимаются мидлварью доступа.
type Claims struct {
	UserID    int64  `json:"uid"`
	Login     string `json:"login"`
	Role      string `json:"role"`
	TokenType string `json:"typ,omitempty"`
	jwt.RegisteredClaims
}

const refreshTokenType = "refresh"

var (
	// ErrInvalidToken — токен не прошёл верификацию подписи или срока.
	ErrInvalidToken = errors.New("invalid token")
	// ErrWrongTokenType — access-токен передан вместо refresh или наоборот.
	ErrWrongTokenType = errors.New("wrong token type")
)

type ctxKey int

const claimsKey ctxKey = iota

// IssueAccessToken подписывает HS256 access-токен с ролью и сроком действия.
func IssueAccessToken(secret string, userID int64, login, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: userID,
		Login:  login,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// IssueRefreshToken подписывает refresh-токен (typ=refresh) со своим сроком действия.
func IssueRefreshToken(secret string, userID int64, login, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID:    userID,
		Login:     login,
		Role:      role,
		TokenType: refreshTokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// parseToken верифицирует подпись и срок и возвращает claims.
func parseToken(secret, tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}

// ParseAccessToken верифицирует access-токен; refresh-токен отклоняется.
func ParseAccessToken(secret, tokenString string) (*Claims, error) {
	claims, err := parseToken(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType == refreshTokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// ParseRefreshToken верифицирует refresh-токен; access-токен отклоняется.
func ParseRefreshToken(secret, tokenString string) (*Claims, error) {
	claims, err := parseToken(secret, tokenString)
	if err != nil {
		return nil, err
	}
	if claims.TokenType != refreshTokenType {
		return nil, ErrWrongTokenType
	}
	return claims, nil
}

// WithAuth извлекает Bearer-токен из Authorization и кладёт claims в контекст.
// Невалидный или отсутствующий токен оставляет запрос анонимным — решение
// об отказе принимают RequireAuth/RequireRole на защищённых маршрутах.
func WithAuth(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if token, ok := strings.CutPrefix(header, "Bearer "); ok {
				if claims, err := ParseAccessToken(secret, token); err == nil {
					r = r.WithContext(context.WithValue(r.Context(), claimsKey, claims))
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetClaimsFromContext возвращает claims текущего пользователя, если запрос аутентифицирован.
func GetClaimsFromContext(ctx context.Context) (*Claims, bool) {
	c, ok := ctx.Value(claimsKey).(*Claims)
	return c, ok
}

// RequireAuth отклоняет анонимные запросы с 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetClaimsFromContext(r.Context()); !ok {
			writeAuthError(w, http.StatusUnauthorized, "authentication required", "error.unauthorized")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole отклоняет запросы пользователей без нужной роли с 403.
func RequireRole(role string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := GetClaimsFromContext(r.Context())
			if !ok {
				writeAuthError(w, http.StatusUnauthorized, "authentication required", "error.unauthorized")
				return
			}
			if claims.Role != role {
				writeAuthError(w, http.StatusForbidden, "insufficient role", "error.forbidden")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func writeAuthError(w http.ResponseWriter, status int, message, code string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"message": message, "code": code})
}
