package service

import (
	"context"
	"time"

	"github.com/azamatkg/subi-sub002/internal/cli/api"
)

// PipelineStats — показатели кредитного конвейера с сервера.
type PipelineStats struct {
	ApplicationsTotal    int64 `json:"applicationsTotal"`
	ApplicationsInReview int64 `json:"applicationsInReview"`
	ApplicationsApproved int64 `json:"applicationsApproved"`
	ApplicationsRejected int64 `json:"applicationsRejected"`
	DisbursedThisMonth   int64 `json:"disbursedThisMonth"`
}

// DashboardStats — ответ сервера на запрос статистики.
type DashboardStats struct {
	ReferenceCounts map[string]int64 `json:"referenceCounts"`
	Pipeline        PipelineStats    `json:"pipeline"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// DashboardService читает статистику главного экрана.
type DashboardService struct {
	client *api.Client
}

func NewDashboardService(client *api.Client) *DashboardService {
	return &DashboardService{client: client}
}

// Stats запрашивает статистику у сервера.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	var stats DashboardStats
	if err := s.client.GetJSON(ctx, "/api/dashboard/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
