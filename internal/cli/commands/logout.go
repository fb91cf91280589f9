package commands

import (
	"context"
	"fmt"

	"github.com/azamatkg/subi-sub002/internal/config"
)

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Выйти и удалить сохранённые учётные данные" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := newAuthService(cfg).Logout(); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Выход выполнен")
	return nil
}

func init() { RegisterCmd(logoutCmd{}) }
