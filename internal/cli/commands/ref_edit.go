package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	clisvc "github.com/azamatkg/subi-sub002/internal/cli/service"
	"github.com/azamatkg/subi-sub002/internal/config"
	"github.com/azamatkg/subi-sub002/internal/model"
)

type refEditCmd struct{}

func (refEditCmd) Name() string        { return "ref-edit" }
func (refEditCmd) Description() string { return "Изменить запись справочника (требуется роль ADMIN)" }
func (refEditCmd) Usage() string {
	return "ref-edit <kind> <id> --code <code> --name-ru <name> [--name-ky <name>] [--name-en <name>] [--status ACTIVE|INACTIVE]"
}

func (refEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	kind, id := args[0], args[1]
	if !model.KnownKind(kind) || id == "" {
		return ErrUsage
	}

	fs := flag.NewFlagSet("ref-edit", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	code := fs.String("code", "", "код записи")
	nameRu := fs.String("name-ru", "", "наименование (рус)")
	nameKy := fs.String("name-ky", "", "наименование (кырг)")
	nameEn := fs.String("name-en", "", "наименование (англ)")
	status := fs.String("status", "", "ACTIVE|INACTIVE")
	if err := fs.Parse(args[2:]); err != nil {
		return ErrUsage
	}
	if len(fs.Args()) != 0 {
		return ErrUsage
	}
	// правка полная: код и русское наименование обязательны
	if *code == "" || *nameRu == "" {
		return ErrUsage
	}
	if *status != "" && *status != "ACTIVE" && *status != "INACTIVE" {
		return ErrUsage
	}

	in := clisvc.ReferenceInput{Code: *code, NameRu: *nameRu, NameKy: *nameKy, NameEn: *nameEn, Status: *status}
	updated, err := newReferenceService(cfg).Update(ctx, kind, id, in)
	if err != nil {
		return err
	}
	fmt.Fprintln(Out, "Обновлено:")
	fmt.Fprintf(Out, "  id:     %s\n", updated.ID)
	fmt.Fprintf(Out, "  code:   %s\n", updated.Code)
	fmt.Fprintf(Out, "  nameRu: %s\n", updated.NameRu)
	fmt.Fprintf(Out, "  status: %s\n", updated.Status)
	return nil
}

func init() { RegisterCmd(refEditCmd{}) }
