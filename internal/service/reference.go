package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/azamatkg/subi-sub002/internal/model"
	"github.com/azamatkg/subi-sub002/internal/repo"
)

var (
	// ErrUnknownKind — запрошен несуществующий справочник.
	ErrUnknownKind = errors.New("unknown reference kind")
	// ErrNotFound — запись справочника не найдена.
	ErrNotFound = errors.New("reference item not found")
	// ErrCodeTaken — код уже используется в этом справочнике.
	ErrCodeTaken = errors.New("code already used in this reference")
	// ErrValidation — входные данные записи не прошли проверку.
	ErrValidation = errors.New("invalid reference item")
)

// ReferenceInput — входные поля создания/редактирования записи справочника.
type ReferenceInput struct {
	Code   string
	NameRu string
	NameKy string
	NameEn string
	Status string
}

// ReferenceService инкапсулирует бизнес-логику справочников.
type ReferenceService struct {
	repo repo.ReferenceRepository
}

func NewReferenceService(r repo.ReferenceRepository) *ReferenceService {
	return &ReferenceService{repo: r}
}

func (s *ReferenceService) validate(in ReferenceInput) error {
	if strings.TrimSpace(in.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrValidation)
	}
	if strings.TrimSpace(in.NameRu) == "" {
		return fmt.Errorf("%w: name_ru is required", ErrValidation)
	}
	if in.Status != "" && in.Status != model.StatusActive && in.Status != model.StatusInactive {
		return fmt.Errorf("%w: status must be ACTIVE or INACTIVE", ErrValidation)
	}
	return nil
}

// List возвращает записи справочника kind.
func (s *ReferenceService) List(ctx context.Context, kind string) ([]model.ReferenceItem, error) {
	if !model.KnownKind(kind) {
		return nil, ErrUnknownKind
	}
	return s.repo.ListByKind(ctx, kind)
}

// Create добавляет запись в справочник kind и возвращает её.
func (s *ReferenceService) Create(ctx context.Context, kind string, in ReferenceInput) (*model.ReferenceItem, error) {
	if !model.KnownKind(kind) {
		return nil, ErrUnknownKind
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	// Код нормализуем к верхнему регистру — так его хранила консоль
	item := &model.ReferenceItem{
		ID:     uuid.NewString(),
		Kind:   kind,
		Code:   strings.ToUpper(strings.TrimSpace(in.Code)),
		NameRu: strings.TrimSpace(in.NameRu),
		NameKy: strings.TrimSpace(in.NameKy),
		NameEn: strings.TrimSpace(in.NameEn),
		Status: in.Status,
	}
	if item.Status == "" {
		item.Status = model.StatusActive
	}

	if err := s.repo.Create(ctx, item); err != nil {
		// единственный уникальный индекс на таблице — (kind, code)
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return item, nil
}

// Update редактирует запись справочника и возвращает её актуальное состояние.
func (s *ReferenceService) Update(ctx context.Context, kind, id string, in ReferenceInput) (*model.ReferenceItem, error) {
	if !model.KnownKind(kind) {
		return nil, ErrUnknownKind
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	updates := map[string]any{
		"code":    strings.ToUpper(strings.TrimSpace(in.Code)),
		"name_ru": strings.TrimSpace(in.NameRu),
		"name_ky": strings.TrimSpace(in.NameKy),
		"name_en": strings.TrimSpace(in.NameEn),
	}
	if in.Status != "" {
		updates["status"] = in.Status
	}

	if err := s.repo.Update(ctx, kind, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		if strings.Contains(strings.ToLower(err.Error()), "unique") || strings.Contains(strings.ToLower(err.Error()), "duplicate") {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	item, err := s.repo.GetByID(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return item, nil
}

// Delete удаляет запись справочника.
func (s *ReferenceService) Delete(ctx context.Context, kind, id string) error {
	if !model.KnownKind(kind) {
		return ErrUnknownKind
	}
	if err := s.repo.Delete(ctx, kind, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	return nil
}
