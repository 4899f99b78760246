package commands

import (
	"context"
	"fmt"
	"net/http"

	"ShareIt/internal/cli/api"
	"ShareIt/internal/config"
	"ShareIt/internal/model"
)

type registerCmd struct{}

func (registerCmd) Name() string        { return "register" }
func (registerCmd) Description() string { return "Зарегистрироваться и сохранить токен" }
func (registerCmd) Usage() string       { return "register <name> <email>" }

func (registerCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 || args[0] == "" || args[1] == "" {
		return ErrUsage
	}
	var u model.User
	resp, err := newClient(cfg).Do(ctx, http.MethodPost, "/users", map[string]string{"name": args[0], "email": args[1]}, &u)
	if api.IsStatus(err, http.StatusConflict) {
		return fmt.Errorf("email %s already in use", args[1])
	}
	if err != nil {
		return err
	}
	if err := api.PersistAuthFromResponse(resp, tokenStore(cfg)); err != nil {
		return fmt.Errorf("saving auth: %w", err)
	}
	fmt.Fprintf(Out, "Registered: #%d %s <%s>\n", u.ID, u.Name, u.Email)
	return nil
}

type whoamiCmd struct{}

func (whoamiCmd) Name() string        { return "whoami" }
func (whoamiCmd) Description() string { return "Показать текущего пользователя" }
func (whoamiCmd) Usage() string       { return "whoami" }

func (whoamiCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var u model.User
	if _, err := c.Do(ctx, http.MethodGet, "/users/me", nil, &u); err != nil {
		return err
	}
	fmt.Fprintf(Out, "#%d %s <%s>\n", u.ID, u.Name, u.Email)
	return nil
}

type logoutCmd struct{}

func (logoutCmd) Name() string        { return "logout" }
func (logoutCmd) Description() string { return "Удалить сохранённый токен" }
func (logoutCmd) Usage() string       { return "logout" }

func (logoutCmd) Run(_ context.Context, cfg *config.Config, args []string) error {
	if len(args) != 0 {
		return ErrUsage
	}
	if err := tokenStore(cfg).Clear(); err != nil {
		return fmt.Errorf("clearing token: %w", err)
	}
	fmt.Fprintln(Out, "Logged out")
	return nil
}

func init() {
	RegisterCmd(registerCmd{})
	RegisterCmd(whoamiCmd{})
	RegisterCmd(logoutCmd{})
}
