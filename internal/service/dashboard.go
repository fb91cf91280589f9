package service

import (
	"context"
	"math/rand"
	"time"

	"github.com/azamatkg/subi-sub002/internal/model"
	"github.com/azamatkg/subi-sub002/internal/repo"
)

// PipelineStats — демонстрационные показатели кредитного конвейера.
// Реальный бэкенд отчётности отдельный; консоль показывает сгенерированные
// числа, стабильные в пределах одного дня.
type PipelineStats struct {
	ApplicationsTotal    int64 `json:"applicationsTotal"`
	ApplicationsInReview int64 `json:"applicationsInReview"`
	ApplicationsApproved int64 `json:"applicationsApproved"`
	ApplicationsRejected int64 `json:"applicationsRejected"`
	DisbursedThisMonth   int64 `json:"disbursedThisMonth"`
}

// DashboardStats — ответ /api/dashboard/stats.
type DashboardStats struct {
	ReferenceCounts map[string]int64 `json:"referenceCounts"`
	Pipeline        PipelineStats    `json:"pipeline"`
	GeneratedAt     time.Time        `json:"generatedAt"`
}

// DashboardService собирает статистику для главного экрана консоли.
type DashboardService struct {
	refs repo.ReferenceRepository
}

func NewDashboardService(refs repo.ReferenceRepository) *DashboardService {
	return &DashboardService{refs: refs}
}

// Stats возвращает количество записей по каждому справочнику и показатели конвейера.
func (s *DashboardService) Stats(ctx context.Context) (*DashboardStats, error) {
	counts, err := s.refs.CountByKind(ctx)
	if err != nil {
		return nil, err
	}
	// нули для пустых справочников, чтобы консоль всегда видела полный набор
	for _, kind := range model.ReferenceKinds {
		if _, ok := counts[kind]; !ok {
			counts[kind] = 0
		}
	}

	now := time.Now().UTC()
	return &DashboardStats{
		ReferenceCounts: counts,
		Pipeline:        generatePipeline(now),
		GeneratedAt:     now,
	}, nil
}

// generatePipeline генерирует показатели конвейера, детерминированные по дате.
func generatePipeline(now time.Time) PipelineStats {
	seed := int64(now.Year())*10000 + int64(now.YearDay())
	rng := rand.New(rand.NewSource(seed))

	total := 150 + rng.Int63n(200)
	inReview := rng.Int63n(total / 3)
	approved := rng.Int63n(total - inReview)
	rejected := total - inReview - approved

	return PipelineStats{
		ApplicationsTotal:    total,
		ApplicationsInReview: inReview,
		ApplicationsApproved: approved,
		ApplicationsRejected: rejected,
		DisbursedThisMonth:   1_000_000 + rng.Int63n(9_000_000),
	}
}
