package commands

import (
	"context"
	"fmt"

	"github.com/azamatkg/subi-sub002/internal/config"
)

type loginCmd struct{}

func (loginCmd) Name() string        { return "login" }
func (loginCmd) Description() string { return "Войти и сохранить пару токенов" }
func (loginCmd) Usage() string       { return "login <login> <password>" }

func (loginCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	svc := newAuthService(cfg)
	sess, err := svc.Login(ctx, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Вход выполнен: %s (%s, роль %s)\n", sess.Login, sess.FullName, sess.Role)
	return nil
}

func init() { RegisterCmd(loginCmd{}) }
