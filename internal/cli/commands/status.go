package commands

import (
	"context"
	"errors"
	"fmt"

	clisvc "github.com/azamatkg/subi-sub002/internal/cli/service"
	"github.com/azamatkg/subi-sub002/internal/config"
)

type statusCmd struct{}

func (statusCmd) Name() string        { return "status" }
func (statusCmd) Description() string { return "Показать текущую сессию" }
func (statusCmd) Usage() string       { return "status" }

func (statusCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	sess, err := newAuthService(cfg).Current()
	if err != nil {
		if errors.Is(err, clisvc.ErrNotLoggedIn) {
			fmt.Fprintln(Out, "Не залогинен")
			return nil
		}
		return err
	}
	fmt.Fprintf(Out, "Пользователь: %s\n", sess.Login)
	fmt.Fprintf(Out, "Имя:          %s\n", sess.FullName)
	fmt.Fprintf(Out, "Роль:         %s\n", sess.Role)
	fmt.Fprintf(Out, "Сервер:       %s\n", cfg.ServerURL)
	return nil
}

func init() { RegisterCmd(statusCmd{}) }
