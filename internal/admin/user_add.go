package admin

import (
	"MachineCatalog/internal/config"
	"MachineCatalog/internal/repo"
	"MachineCatalog/internal/service"
	"context"
	"errors"
	"fmt"
)

type userAddCmd struct{}

func (userAddCmd) Name() string        { return "user-add" }
func (userAddCmd) Description() string { return "Создать администратора каталога" }
func (userAddCmd) Usage() string       { return "user-add <username> <password>" }

func (userAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	db, done, err := openDB(cfg)
	if err != nil {
		return err
	}
	defer done()

	svc := service.NewUserService(repo.NewUserRepository(db))
	user, err := svc.Register(ctx, args[0], args[1])
	if errors.Is(err, service.ErrLoginTaken) {
		return fmt.Errorf("user %q already exists", args[0])
	}
	if err != nil {
		return err
	}
	fmt.Fprintf(Out, "Создан пользователь %s (id=%d)\n", user.Username, user.ID)
	return nil
}

func init() { RegisterCmd(userAddCmd{}) }
