package admin

import (
	"MachineCatalog/internal/config"
	"MachineCatalog/internal/repo"
	"context"
	"fmt"
)

type machinesCmd struct{}

func (machinesCmd) Name() string        { return "machines" }
func (machinesCmd) Description() string { return "Показать все станки" }
func (machinesCmd) Usage() string       { return "machines" }

func (machinesCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	db, done, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer done()

	list, err := repo.NewMachineRepository(db).ListAll(ctx)
	if err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет станков")
		return nil
	}
	for _, m := range list {
		img := ""
		if m.HasImage() {
			img = "  image=" + *m.ImageURL
		}
		fmt.Fprintf(Out, "- %s  title=%s%s\n", m.ID, m.Title, img)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

func init() { RegisterCmd(machinesCmd{}) }
