package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// CredentialStore — абстракция хранилища учётных данных клиента.
// Пустая строка без ошибки означает «токен не сохранён».
type CredentialStore interface {
	AccessToken() (string, error)
	RefreshToken() (string, error)
	SaveTokens(pair TokenPair) error

	// Clear удаляет все сохранённые учётные данные (оба токена и снимок сессии).
	Clear() error
}

const defaultRefreshPath = "/api/auth/refresh"

// Client — фасад исходящих REST-вызовов консоли.
//
// Прикрепляет Bearer-токен, перехватывает 401 и прозрачно обновляет пару
// токенов. Обновление объединяется в один вызов (single-flight): сколько бы
// запросов ни упало с 401 одновременно, эндпоинт обновления дёргается ровно
// один раз, остальные ждут общий результат. Состояние обновления живёт в
// экземпляре клиента — независимые клиенты не влияют друг на друга.
type Client struct {
	baseURL     string
	refreshPath string
	http        *http.Client
	creds       CredentialStore
	logger      *zap.SugaredLogger

	refresh singleflight.Group

	mu          sync.Mutex
	nextSubID   int
	onRefreshed map[int]func(TokenPair)
	onAuthFail  map[int]func(error)
}

// Option настраивает клиента при создании.
type Option func(*Client)

// WithTimeout задаёт транспортный таймаут исходящих вызовов.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.http.Timeout = d }
}

// WithHTTPClient подменяет транспорт целиком (для тестов).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// WithLogger включает отладочное логирование фасада.
func WithLogger(l *zap.SugaredLogger) Option {
	return func(c *Client) { c.logger = l }
}

// WithRefreshPath переопределяет путь эндпоинта обновления токена.
func WithRefreshPath(path string) Option {
	return func(c *Client) { c.refreshPath = path }
}

// New создаёт клиента для baseURL с указанным хранилищем учётных данных.
func New(baseURL string, creds CredentialStore, opts ...Option) *Client {
	c := &Client{
		baseURL:     strings.TrimRight(baseURL, "/"),
		refreshPath: defaultRefreshPath,
		http:        &http.Client{Timeout: 30 * time.Second},
		creds:       creds,
		logger:      zap.NewNop().Sugar(),
		onRefreshed: make(map[int]func(TokenPair)),
		onAuthFail:  make(map[int]func(error)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Response — ответ сервера после успешного (2xx) вызова.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// payload — подготовленное тело запроса; хранится для возможного повтора
// после обновления токена.
type payload struct {
	data        []byte
	contentType string
}

func jsonPayload(v any) (*payload, error) {
	if v == nil {
		return nil, nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return &payload{data: b, contentType: "application/json"}, nil
}

// Do выполняет запрос с JSON-телом (body может быть nil) и возвращает ответ.
// Любая неуспешная развязка приходит как *APIError.
func (c *Client) Do(ctx context.Context, method, path string, body any) (*Response, error) {
	p, err := jsonPayload(body)
	if err != nil {
		return nil, &APIError{Message: "encode request body: " + err.Error(), Code: CodeUnexpected, Err: err}
	}
	return c.do(ctx, method, path, p, 0)
}

// DoRaw выполняет запрос с заранее собранным телом (multipart и т.п.).
func (c *Client) DoRaw(ctx context.Context, method, path string, data []byte, contentType string) (*Response, error) {
	return c.do(ctx, method, path, &payload{data: data, contentType: contentType}, 0)
}

// GetJSON выполняет GET и декодирует JSON-ответ в out.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	resp, err := c.Do(ctx, http.MethodGet, path, nil)
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

// PostJSON выполняет POST с телом body и декодирует ответ в out (out может быть nil).
func (c *Client) PostJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.Do(ctx, http.MethodPost, path, body)
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

// PutJSON выполняет PUT с телом body и декодирует ответ в out (out может быть nil).
func (c *Client) PutJSON(ctx context.Context, path string, body, out any) error {
	resp, err := c.Do(ctx, http.MethodPut, path, body)
	if err != nil {
		return err
	}
	return c.decode(resp, out)
}

// Delete выполняет DELETE без тела.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil)
	return err
}

func (c *Client) decode(resp *Response, out any) error {
	if out == nil || len(resp.Body) == 0 {
		return nil
	}
	if err := json.Unmarshal(resp.Body, out); err != nil {
		return &APIError{Message: "decode response body: " + err.Error(), Code: CodeUnexpected, Err: err}
	}
	return nil
}

// do — один проход диспетчера: прикрепить токен, выполнить, перехватить 401.
// attempt — явный счётчик повторов: каждый запрос повторяется не более одного раза.
func (c *Client) do(ctx context.Context, method, path string, p *payload, attempt int) (*Response, error) {
	var reader io.Reader
	if p != nil {
		reader = bytes.NewReader(p.data)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, &APIError{Message: "build request: " + err.Error(), Code: CodeUnexpected, Err: err}
	}
	if p != nil && p.contentType != "" {
		req.Header.Set("Content-Type", p.contentType)
	}

	// Просроченный или отсутствующий токен не прикрепляем: сервер ответит 401,
	// и запрос пройдёт через обычный цикл обновления.
	if token, err := c.creds.AccessToken(); err == nil && token != "" && !tokenExpired(token, time.Now()) {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, normalizeTransport(err)
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		if attempt > 0 {
			// Повтор уже был — это жёсткий отказ аутентификации, не новый цикл.
			apiErr := &APIError{
				Message: "authentication failed after token refresh",
				Status:  http.StatusUnauthorized,
				Code:    CodeUnauthorized,
				Err:     ErrRetryExhausted,
			}
			c.clearAndNotifyAuthFailure(apiErr)
			return nil, apiErr
		}
		c.logger.Debugw("got 401, refreshing token", "method", method, "path", path)
		if _, err := c.refreshShared(ctx); err != nil {
			return nil, err
		}
		return c.do(ctx, method, path, p, attempt+1)
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return &Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: body}, nil
	}
	return nil, normalizeStatus(resp.StatusCode, body)
}

// refreshShared объединяет конкурентные обновления в один вызов.
// Очистка учётных данных и сигнал OnAuthFailure выполняются внутри общей
// функции — ровно один раз на цикл, сколько бы запросов ни ждало результата.
// По завершении (успех или отказ) single-flight ключ освобождается, и
// следующий 401 начинает новый цикл.
func (c *Client) refreshShared(ctx context.Context) (string, error) {
	v, err, _ := c.refresh.Do("refresh", func() (any, error) {
		pair, err := c.doRefresh(ctx)
		if err != nil {
			c.clearAndNotifyAuthFailure(err)
			return nil, err
		}
		c.notifyRefreshed(*pair)
		return pair.AccessToken, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// doRefresh обменивает сохранённый refresh-токен на новую пару и сохраняет её.
// Повторов внутри нет — политика повторов принадлежит вызывающему.
func (c *Client) doRefresh(ctx context.Context) (*TokenPair, error) {
	refreshToken, err := c.creds.RefreshToken()
	if err != nil || refreshToken == "" {
		return nil, &APIError{
			Message: "no refresh token stored",
			Code:    CodeUnauthorized,
			Err:     ErrNoRefreshToken,
		}
	}

	reqBody, _ := json.Marshal(map[string]string{"refreshToken": refreshToken})
	// Отмена одного из ждущих запросов не должна срывать общее обновление.
	req, err := http.NewRequestWithContext(context.WithoutCancel(ctx),
		http.MethodPost, c.baseURL+c.refreshPath, bytes.NewReader(reqBody))
	if err != nil {
		return nil, &APIError{Message: "build refresh request: " + err.Error(), Code: CodeUnexpected, Err: ErrRefreshFailed}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &APIError{Message: "refresh call failed: " + err.Error(), Code: CodeNetwork, Err: ErrRefreshFailed}
	}
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		apiErr := normalizeStatus(resp.StatusCode, body)
		apiErr.Err = ErrRefreshFailed
		return nil, apiErr
	}

	var pair TokenPair
	if err := json.Unmarshal(body, &pair); err != nil || pair.AccessToken == "" {
		return nil, &APIError{Message: "malformed refresh response", Code: CodeUnexpected, Err: ErrRefreshFailed}
	}
	// Бэкенд может не ротировать refresh-токен; тогда оставляем прежний.
	// Access-токен в refresh-слот не попадает никогда.
	if pair.RefreshToken == "" {
		pair.RefreshToken = refreshToken
	}

	if err := c.creds.SaveTokens(pair); err != nil {
		return nil, &APIError{Message: "persist tokens: " + err.Error(), Code: CodeUnexpected, Err: ErrRefreshFailed}
	}
	c.logger.Debugw("token pair refreshed")
	return &pair, nil
}

// OnTokenRefreshed регистрирует подписчика на успешное обновление пары токенов.
// Возвращает функцию отписки.
func (c *Client) OnTokenRefreshed(fn func(TokenPair)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.onRefreshed[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.onRefreshed, id)
	}
}

// OnAuthFailure регистрирует подписчика на неустранимый отказ аутентификации
// (после него консоль обычно уводит пользователя на экран входа).
func (c *Client) OnAuthFailure(fn func(error)) (unsubscribe func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	id := c.nextSubID
	c.nextSubID++
	c.onAuthFail[id] = fn
	return func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		delete(c.onAuthFail, id)
	}
}

func (c *Client) notifyRefreshed(pair TokenPair) {
	c.mu.Lock()
	fns := make([]func(TokenPair), 0, len(c.onRefreshed))
	for _, fn := range c.onRefreshed {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(pair)
	}
}

// clearAndNotifyAuthFailure очищает учётные данные и шлёт один сигнал отказа.
func (c *Client) clearAndNotifyAuthFailure(cause error) {
	if err := c.creds.Clear(); err != nil {
		c.logger.Warnw("clear credentials failed", "error", err)
	}
	c.mu.Lock()
	fns := make([]func(error), 0, len(c.onAuthFail))
	for _, fn := range c.onAuthFail {
		fns = append(fns, fn)
	}
	c.mu.Unlock()
	for _, fn := range fns {
		fn(cause)
	}
}
