package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/azamatkg/subi-sub002/internal/model"
	"github.com/azamatkg/subi-sub002/internal/service"
)

// ReferenceHandler — CRUD по справочникам консоли.
type ReferenceHandler struct {
	Service *service.ReferenceService
	Logger  *zap.SugaredLogger
}

// NewReferenceHandler создаёт хендлер справочников
func NewReferenceHandler(svc *service.ReferenceService, logger *zap.SugaredLogger) *ReferenceHandler {
	return &ReferenceHandler{Service: svc, Logger: logger}
}

// referenceDTO — представление записи справочника на проводе.
type referenceDTO struct {
	ID        string    `json:"id"`
	Code      string    `json:"code"`
	NameRu    string    `json:"nameRu"`
	NameKy    string    `json:"nameKy,omitempty"`
	NameEn    string    `json:"nameEn,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type referenceInputDTO struct {
	Code   string `json:"code"`
	NameRu string `json:"nameRu"`
	NameKy string `json:"nameKy,omitempty"`
	NameEn string `json:"nameEn,omitempty"`
	Status string `json:"status,omitempty"`
}

func toDTO(it model.ReferenceItem) referenceDTO {
	return referenceDTO{
		ID:        it.ID,
		Code:      it.Code,
		NameRu:    it.NameRu,
		NameKy:    it.NameKy,
		NameEn:    it.NameEn,
		Status:    it.Status,
		CreatedAt: it.CreatedAt,
		UpdatedAt: it.UpdatedAt,
	}
}

func (dto referenceInputDTO) toInput() service.ReferenceInput {
	return service.ReferenceInput{
		Code:   dto.Code,
		NameRu: dto.NameRu,
		NameKy: dto.NameKy,
		NameEn: dto.NameEn,
		Status: dto.Status,
	}
}

// writeServiceError транслирует ошибки сервиса справочников в HTTP-статусы.
func (h *ReferenceHandler) writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrUnknownKind):
		writeError(w, http.StatusNotFound, "unknown reference kind", "error.notFound")
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, "reference item not found", "error.notFound")
	case errors.Is(err, service.ErrCodeTaken):
		writeError(w, http.StatusConflict, "code already used in this reference", "error.conflict")
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error(), "error.badRequest")
	default:
		h.Logger.Errorw("reference handler: service failure", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "error.internal")
	}
}

// List отдаёт записи справочника {kind}.
func (h *ReferenceHandler) List(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	items, err := h.Service.List(r.Context(), kind)
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	dtos := make([]referenceDTO, 0, len(items))
	for _, it := range items {
		dtos = append(dtos, toDTO(it))
	}
	writeJSON(w, http.StatusOK, dtos)
}

// Create добавляет запись в справочник {kind}.
func (h *ReferenceHandler) Create(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")

	var dto referenceInputDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "error.badRequest")
		return
	}

	item, err := h.Service.Create(r.Context(), kind, dto.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toDTO(*item))
}

// Update редактирует запись {id} справочника {kind}.
func (h *ReferenceHandler) Update(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	var dto referenceInputDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", "error.badRequest")
		return
	}

	item, err := h.Service.Update(r.Context(), kind, id, dto.toInput())
	if err != nil {
		h.writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toDTO(*item))
}

// Delete удаляет запись {id} справочника {kind}.
func (h *ReferenceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	kind := chi.URLParam(r, "kind")
	id := chi.URLParam(r, "id")

	if err := h.Service.Delete(r.Context(), kind, id); err != nil {
		h.writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
