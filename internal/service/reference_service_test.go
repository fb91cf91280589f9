package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"github.com/azamatkg/subi-sub002/internal/model"
	"github.com/azamatkg/subi-sub002/internal/repo"
)

// мок для repo.ReferenceRepository
type mockRefRepo struct{ mock.Mock }

func (m *mockRefRepo) ListByKind(ctx context.Context, kind string) ([]model.ReferenceItem, error) {
	args := m.Called(ctx, kind)
	if v, ok := args.Get(0).([]model.ReferenceItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRefRepo) GetByID(ctx context.Context, kind, id string) (*model.ReferenceItem, error) {
	args := m.Called(ctx, kind, id)
	if v, ok := args.Get(0).(*model.ReferenceItem); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *mockRefRepo) Create(ctx context.Context, item *model.ReferenceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *mockRefRepo) Update(ctx context.Context, kind, id string, updates map[string]any) error {
	args := m.Called(ctx, kind, id, updates)
	return args.Error(0)
}

func (m *mockRefRepo) Delete(ctx context.Context, kind, id string) error {
	args := m.Called(ctx, kind, id)
	return args.Error(0)
}

func (m *mockRefRepo) CountByKind(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if v, ok := args.Get(0).(map[string]int64); ok {
		return v, args.Error(1)
	}
	return nil, args.Error(1)
}

var _ repo.ReferenceRepository = (*mockRefRepo)(nil)

func TestReferenceService_List_UnknownKind(t *testing.T) {
	svc := NewReferenceService(new(mockRefRepo))
	_, err := svc.List(context.Background(), "bad-kind")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestReferenceService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("normalizes code and defaults status", func(t *testing.T) {
		m := new(mockRefRepo)
		svc := NewReferenceService(m)
		m.On("Create", mock.Anything, mock.MatchedBy(func(it *model.ReferenceItem) bool {
			return it.Kind == model.KindCurrency &&
				it.Code == "KGS" &&
				it.Status == model.StatusActive &&
				it.ID != ""
		})).Return(nil).Once()

		item, err := svc.Create(ctx, model.KindCurrency, ReferenceInput{Code: " kgs ", NameRu: "Сом"})
		assert.NoError(t, err)
		assert.Equal(t, "KGS", item.Code)
		m.AssertExpectations(t)
	})

	t.Run("validation errors", func(t *testing.T) {
		svc := NewReferenceService(new(mockRefRepo))

		_, err := svc.Create(ctx, model.KindCurrency, ReferenceInput{NameRu: "Сом"})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.Create(ctx, model.KindCurrency, ReferenceInput{Code: "KGS"})
		assert.ErrorIs(t, err, ErrValidation)

		_, err = svc.Create(ctx, model.KindCurrency, ReferenceInput{Code: "KGS", NameRu: "Сом", Status: "MAYBE"})
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("duplicate code maps to ErrCodeTaken", func(t *testing.T) {
		m := new(mockRefRepo)
		svc := NewReferenceService(m)
		m.On("Create", mock.Anything, mock.Anything).Return(errors.New("UNIQUE constraint failed: reference_items.kind, reference_items.code")).Once()

		_, err := svc.Create(ctx, model.KindCurrency, ReferenceInput{Code: "KGS", NameRu: "Сом"})
		assert.ErrorIs(t, err, ErrCodeTaken)
		m.AssertExpectations(t)
	})
}

func TestReferenceService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("ok", func(t *testing.T) {
		m := new(mockRefRepo)
		svc := NewReferenceService(m)
		m.On("Update", mock.Anything, model.KindCreditPurpose, "id-1", mock.MatchedBy(func(u map[string]any) bool {
			return u["code"] == "MORTGAGE" && u["name_ru"] == "Ипотека"
		})).Return(nil).Once()
		m.On("GetByID", mock.Anything, model.KindCreditPurpose, "id-1").
			Return(&model.ReferenceItem{ID: "id-1", Code: "MORTGAGE", NameRu: "Ипотека"}, nil).Once()

		item, err := svc.Update(ctx, model.KindCreditPurpose, "id-1", ReferenceInput{Code: "mortgage", NameRu: "Ипотека"})
		assert.NoError(t, err)
		assert.Equal(t, "MORTGAGE", item.Code)
		m.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		m := new(mockRefRepo)
		svc := NewReferenceService(m)
		m.On("Update", mock.Anything, model.KindCreditPurpose, "missing", mock.Anything).
			Return(gorm.ErrRecordNotFound).Once()

		_, err := svc.Update(ctx, model.KindCreditPurpose, "missing", ReferenceInput{Code: "X", NameRu: "x"})
		assert.ErrorIs(t, err, ErrNotFound)
		m.AssertExpectations(t)
	})
}

func TestReferenceService_Delete(t *testing.T) {
	ctx := context.Background()

	m := new(mockRefRepo)
	svc := NewReferenceService(m)
	m.On("Delete", mock.Anything, model.KindDocumentType, "id-2").Return(nil).Once()
	assert.NoError(t, svc.Delete(ctx, model.KindDocumentType, "id-2"))

	m.On("Delete", mock.Anything, model.KindDocumentType, "gone").Return(gorm.ErrRecordNotFound).Once()
	assert.ErrorIs(t, svc.Delete(ctx, model.KindDocumentType, "gone"), ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "bad", "id"), ErrUnknownKind)
	m.AssertExpectations(t)
}
