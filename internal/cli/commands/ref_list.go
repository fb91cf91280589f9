package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	clisvc "github.com/azamatkg/subi-sub002/internal/cli/service"
	"github.com/azamatkg/subi-sub002/internal/config"
	"github.com/azamatkg/subi-sub002/internal/model"
)

type refListCmd struct{}

func (refListCmd) Name() string { return "ref-list" }
func (refListCmd) Description() string {
	return "Показать справочник (" + strings.Join(model.ReferenceKinds, ", ") + ")"
}
func (refListCmd) Usage() string { return "ref-list [--cached] <kind>" }

func (refListCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	fs := flag.NewFlagSet("ref-list", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	cached := fs.Bool("cached", false, "показать локальный кеш, без обращения к серверу")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}
	rest := fs.Args()
	if len(rest) != 1 {
		return ErrUsage
	}
	kind := rest[0]
	if !model.KnownKind(kind) {
		return ErrUsage
	}

	svc := newReferenceService(cfg)

	var items []clisvc.ReferenceItem
	if *cached {
		list, fetchedAt, err := svc.ListCached(kind)
		if err != nil {
			return err
		}
		items = list
		if !fetchedAt.IsZero() {
			fmt.Fprintf(Out, "Кеш от %s\n", fetchedAt.Format("2006-01-02 15:04:05"))
		}
	} else {
		list, err := svc.List(ctx, kind)
		if err != nil {
			return err
		}
		items = list
	}

	if len(items) == 0 {
		fmt.Fprintln(Out, "Справочник пуст")
		return nil
	}
	for _, it := range items {
		fmt.Fprintf(Out, "- %s  %-16s %s [%s]\n", it.ID, it.Code, it.NameRu, it.Status)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(items))
	return nil
}

func init() { RegisterCmd(refListCmd{}) }
