package commands

import (
	"fmt"

	"github.com/azamatkg/subi-sub002/internal/cli/api"
	"github.com/azamatkg/subi-sub002/internal/cli/auth"
	clisvc "github.com/azamatkg/subi-sub002/internal/cli/service"
	"github.com/azamatkg/subi-sub002/internal/config"
)

// newClient собирает REST-фасад с файловым хранилищем учётных данных.
// Подписка на отказ аутентификации печатает подсказку пользователю:
// после неё все сохранённые учётные данные уже очищены.
func newClient(cfg *config.Config) (*api.Client, auth.FSStore) {
	st := auth.FSStore{}
	var opts []api.Option
	if cfg.HTTPTimeout > 0 {
		opts = append(opts, api.WithTimeout(cfg.HTTPTimeout))
	}
	c := api.New(cfg.ServerURL, st, opts...)
	c.OnAuthFailure(func(error) {
		fmt.Fprintln(Out, "! Сессия завершена, выполните login заново")
	})
	return c, st
}

func newAuthService(cfg *config.Config) *clisvc.AuthService {
	c, st := newClient(cfg)
	return clisvc.NewAuthService(c, st)
}

func newReferenceService(cfg *config.Config) *clisvc.ReferenceService {
	c, st := newClient(cfg)
	return clisvc.NewReferenceService(c, st, nil)
}

func newDashboardService(cfg *config.Config) *clisvc.DashboardService {
	c, _ := newClient(cfg)
	return clisvc.NewDashboardService(c)
}
