package commands

import (
	"context"
	"fmt"
	"sort"

	"github.com/azamatkg/subi-sub002/internal/config"
)

type dashboardCmd struct{}

func (dashboardCmd) Name() string        { return "dashboard" }
func (dashboardCmd) Description() string { return "Показать статистику главного экрана" }
func (dashboardCmd) Usage() string       { return "dashboard" }

func (dashboardCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	stats, err := newDashboardService(cfg).Stats(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(Out, "Справочники:")
	for _, kind := range sortedKeys(stats.ReferenceCounts) {
		fmt.Fprintf(Out, "  %-22s %d\n", kind, stats.ReferenceCounts[kind])
	}
	fmt.Fprintln(Out, "Конвейер заявок:")
	fmt.Fprintf(Out, "  всего:        %d\n", stats.Pipeline.ApplicationsTotal)
	fmt.Fprintf(Out, "  на проверке:  %d\n", stats.Pipeline.ApplicationsInReview)
	fmt.Fprintf(Out, "  одобрено:     %d\n", stats.Pipeline.ApplicationsApproved)
	fmt.Fprintf(Out, "  отклонено:    %d\n", stats.Pipeline.ApplicationsRejected)
	fmt.Fprintf(Out, "  выдано за месяц: %d\n", stats.Pipeline.DisbursedThisMonth)
	if !stats.GeneratedAt.IsZero() {
		fmt.Fprintf(Out, "Сформировано: %s\n", stats.GeneratedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}

func sortedKeys(m map[string]int64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func init() { RegisterCmd(dashboardCmd{}) }
