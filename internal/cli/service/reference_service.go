package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/azamatkg/subi-sub002/internal/cli/api"
	"github.com/azamatkg/subi-sub002/internal/cli/store"
)

// ReferenceItem — запись справочника глазами клиента.
type ReferenceItem struct {
	ID     string `json:"id"`
	Code   string `json:"code"`
	NameRu string `json:"nameRu"`
	NameKy string `json:"nameKy,omitempty"`
	NameEn string `json:"nameEn,omitempty"`
	Status string `json:"status"`
}

// ReferenceInput — поля создания/правки записи справочника.
type ReferenceInput struct {
	Code   string `json:"code"`
	NameRu string `json:"nameRu"`
	NameKy string `json:"nameKy,omitempty"`
	NameEn string `json:"nameEn,omitempty"`
	Status string `json:"status,omitempty"`
}

// ReferenceService — операции со справочниками поверх REST-фасада
// с локальным SQLite-кешем для офлайн-просмотра.
type ReferenceService struct {
	client *api.Client
	store  SessionStore
	logger *zap.SugaredLogger
}

func NewReferenceService(client *api.Client, st SessionStore, logger *zap.SugaredLogger) *ReferenceService {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &ReferenceService{client: client, store: st, logger: logger}
}

// List запрашивает справочник с сервера и обновляет локальный кеш.
func (s *ReferenceService) List(ctx context.Context, kind string) ([]ReferenceItem, error) {
	var items []ReferenceItem
	if err := s.client.GetJSON(ctx, "/api/references/"+kind, &items); err != nil {
		return nil, err
	}
	s.refreshCache(kind, items)
	return items, nil
}

// ListCached возвращает записи из локального кеша, без обращения к серверу.
func (s *ReferenceService) ListCached(kind string) ([]ReferenceItem, time.Time, error) {
	sess, err := s.store.Session()
	if err != nil {
		return nil, time.Time{}, err
	}
	if sess == nil {
		return nil, time.Time{}, ErrNotLoggedIn
	}
	db, _, err := store.OpenForUser(sess.Login)
	if err != nil {
		return nil, time.Time{}, err
	}
	defer func() { _ = db.Close() }()
	if err := db.Migrate(); err != nil {
		return nil, time.Time{}, err
	}
	cached, fetchedAt, err := db.ListKind(kind)
	if err != nil {
		return nil, time.Time{}, err
	}
	items := make([]ReferenceItem, 0, len(cached))
	for _, c := range cached {
		items = append(items, ReferenceItem{
			ID: c.ID, Code: c.Code, NameRu: c.NameRu, NameKy: c.NameKy, NameEn: c.NameEn, Status: c.Status,
		})
	}
	return items, fetchedAt, nil
}

// refreshCache перезаписывает локальный кеш; сбой кеша не ломает операцию.
func (s *ReferenceService) refreshCache(kind string, items []ReferenceItem) {
	sess, err := s.store.Session()
	if err != nil || sess == nil {
		return
	}
	db, _, err := store.OpenForUser(sess.Login)
	if err != nil {
		s.logger.Warnw("open reference cache failed", "error", err)
		return
	}
	defer func() { _ = db.Close() }()
	if err := db.Migrate(); err != nil {
		s.logger.Warnw("migrate reference cache failed", "error", err)
		return
	}
	cached := make([]store.CachedItem, 0, len(items))
	for _, it := range items {
		cached = append(cached, store.CachedItem{
			ID: it.ID, Code: it.Code, NameRu: it.NameRu, NameKy: it.NameKy, NameEn: it.NameEn, Status: it.Status,
		})
	}
	if err := db.ReplaceKind(kind, cached); err != nil {
		s.logger.Warnw("refresh reference cache failed", "kind", kind, "error", err)
	}
}

// Create добавляет запись в справочник.
func (s *ReferenceService) Create(ctx context.Context, kind string, in ReferenceInput) (*ReferenceItem, error) {
	var out ReferenceItem
	if err := s.client.PostJSON(ctx, "/api/references/"+kind, in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update правит существующую запись справочника.
func (s *ReferenceService) Update(ctx context.Context, kind, id string, in ReferenceInput) (*ReferenceItem, error) {
	var out ReferenceItem
	if err := s.client.PutJSON(ctx, fmt.Sprintf("/api/references/%s/%s", kind, id), in, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Delete удаляет запись справочника.
func (s *ReferenceService) Delete(ctx context.Context, kind, id string) error {
	return s.client.Delete(ctx, fmt.Sprintf("/api/references/%s/%s", kind, id))
}

// Describe переводит нормализованную ошибку фасада в сообщение для пользователя.
func Describe(err error) string {
	var apiErr *api.APIError
	if !errors.As(err, &apiErr) {
		return err.Error()
	}
	switch apiErr.Code {
	case api.CodeUnauthorized:
		return "session expired, please login again"
	case api.CodeForbidden:
		return "operation requires administrator role"
	case api.CodeNotFound:
		return "record not found"
	case api.CodeConflict:
		return "record with this code already exists"
	case api.CodeNetwork:
		return "server is unreachable: " + apiErr.Message
	default:
		return apiErr.Message
	}
}
