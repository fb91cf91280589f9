package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/azamatkg/subi-sub002/internal/service"
)

// DashboardHandler отдаёт статистику для главного экрана.
type DashboardHandler struct {
	Service *service.DashboardService
	Logger  *zap.SugaredLogger
}

func NewDashboardHandler(svc *service.DashboardService, logger *zap.SugaredLogger) *DashboardHandler {
	return &DashboardHandler{Service: svc, Logger: logger}
}

// Stats собирает счётчики справочников и показатели конвейера.
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context())
	if err != nil {
		h.Logger.Errorw("Stats: service failure", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error", "error.internal")
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
