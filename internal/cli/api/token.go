package api

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenPair — пара учётных токенов клиента.
// Refresh-токен всегда отдельный: access никогда не копируется в refresh,
// даже если бэкенд вернул пару без refresh-части.
type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// tokenExpired читает exp из токена без проверки подписи (подпись проверяет
// сервер). Непарсящийся токен считается непросроченным — решение об отказе
// остаётся за сервером.
func tokenExpired(token string, now time.Time) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return now.After(exp.Time)
}
