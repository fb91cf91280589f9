package commands

import (
	"context"
	"fmt"

	clisvc "github.com/azamatkg/subi-sub002/internal/cli/service"
	"github.com/azamatkg/subi-sub002/internal/config"
	"github.com/azamatkg/subi-sub002/internal/model"
)

type refAddCmd struct{}

func (refAddCmd) Name() string        { return "ref-add" }
func (refAddCmd) Description() string { return "Добавить запись справочника (требуется роль ADMIN)" }
func (refAddCmd) Usage() string       { return "ref-add <kind> <code> <nameRu> [nameKy] [nameEn]" }

func (refAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 3 || len(args) > 5 {
		return ErrUsage
	}
	kind := args[0]
	if !model.KnownKind(kind) {
		return ErrUsage
	}
	in := clisvc.ReferenceInput{Code: args[1], NameRu: args[2]}
	if len(args) >= 4 {
		in.NameKy = args[3]
	}
	if len(args) == 5 {
		in.NameEn = args[4]
	}

	created, err := newReferenceService(cfg).Create(ctx, kind, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Создано:")
	fmt.Fprintf(Out, "  id:     %s\n", created.ID)
	fmt.Fprintf(Out, "  code:   %s\n", created.Code)
	fmt.Fprintf(Out, "  nameRu: %s\n", created.NameRu)
	fmt.Fprintf(Out, "  status: %s\n", created.Status)
	return nil
}

func init() { RegisterCmd(refAddCmd{}) }
