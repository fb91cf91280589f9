package commands

import (
	"context"
	"fmt"

	"github.com/azamatkg/subi-sub002/internal/config"
	"github.com/azamatkg/subi-sub002/internal/model"
)

type refRmCmd struct{}

func (refRmCmd) Name() string        { return "ref-rm" }
func (refRmCmd) Description() string { return "Удалить запись справочника (требуется роль ADMIN)" }
func (refRmCmd) Usage() string       { return "ref-rm <kind> <id>" }

func (refRmCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	kind, id := args[0], args[1]
	if !model.KnownKind(kind) || id == "" {
		return ErrUsage
	}
	if err := newReferenceService(cfg).Delete(ctx, kind, id); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Удалено: %s/%s\n", kind, id)
	return nil
}

func init() { RegisterCmd(refRmCmd{}) }
