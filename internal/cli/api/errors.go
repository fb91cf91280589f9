package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

// Ошибки аутентификации клиента. Все они терминальны для текущего запроса:
// локальные учётные данные очищаются, подписчики OnAuthFailure получают сигнал.
var (
	// ErrNoRefreshToken — refresh запрошен, но токен не сохранён; сетевой вызов не делается.
	ErrNoRefreshToken = errors.New("no refresh token stored")
	// ErrRefreshFailed — эндпоинт обновления отклонил refresh-токен или недоступен.
	ErrRefreshFailed = errors.New("token refresh failed")
	// ErrRetryExhausted — запрос уже был повторён после обновления и снова получил 401.
	ErrRetryExhausted = errors.New("request already retried after token refresh")
)

// Стабильные коды ошибок: консоль маппит их на локализованный текст.
const (
	CodeUnauthorized = "error.unauthorized"
	CodeForbidden    = "error.forbidden"
	CodeNotFound     = "error.notFound"
	CodeConflict     = "error.conflict"
	CodeNetwork      = "error.network"
	CodeUnexpected   = "error.unexpected"
)

// APIError — нормализованная ошибка API: вызывающий код никогда не разбирает
// транспортные детали, только это представление.
type APIError struct {
	Message string
	Status  int
	Code    string
	Details map[string]any
	Err     error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("api: %s (status %d)", e.Message, e.Status)
	}
	return "api: " + e.Message
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// statusCode возвращает стабильный код для известных статусов.
func statusCode(status int) string {
	switch status {
	case http.StatusUnauthorized:
		return CodeUnauthorized
	case http.StatusForbidden:
		return CodeForbidden
	case http.StatusNotFound:
		return CodeNotFound
	case http.StatusConflict:
		return CodeConflict
	default:
		return CodeUnexpected
	}
}

// normalizeStatus строит APIError из не-2xx ответа сервера.
// Структурированное тело {message, code} имеет приоритет над общими формулировками.
// Никогда не возвращает nil и не паникует.
func normalizeStatus(status int, body []byte) *APIError {
	apiErr := &APIError{
		Status:  status,
		Code:    statusCode(status),
		Message: http.StatusText(status),
	}
	if apiErr.Message == "" {
		apiErr.Message = "unexpected error"
	}

	if len(body) > 0 {
		var payload map[string]any
		if err := json.Unmarshal(body, &payload); err == nil && len(payload) > 0 {
			apiErr.Details = payload
			if msg, ok := payload["message"].(string); ok && msg != "" {
				apiErr.Message = msg
			}
			if code, ok := payload["code"].(string); ok && code != "" {
				apiErr.Code = code
			}
		}
	}
	return apiErr
}

// normalizeTransport строит APIError из сетевой ошибки (ответа нет).
func normalizeTransport(err error) *APIError {
	msg := "network error"
	if err != nil {
		msg = err.Error()
	}
	return &APIError{Message: msg, Code: CodeNetwork, Err: err}
}
