package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strings"

	"ShareIt/internal/config"
	"ShareIt/internal/model"
)

type requestAddCmd struct{}

func (requestAddCmd) Name() string        { return "request-add" }
func (requestAddCmd) Description() string { return "Попросить вещь, которой пока нет" }
func (requestAddCmd) Usage() string       { return "request-add <description>" }

func (requestAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var r model.RequestView
	if _, err := c.Do(ctx, http.MethodPost, "/requests", map[string]string{"description": text}, &r); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Request #%d created\n", r.ID)
	return nil
}

type requestsCmd struct{}

func (requestsCmd) Name() string        { return "requests" }
func (requestsCmd) Description() string { return "Мои запросы (или чужие с --all)" }
func (requestsCmd) Usage() string       { return "requests [--all] [--from=N] [--size=N]" }

func (requestsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var (
		all        bool
		from, size int
	)
	rest, err := parseFlags("requests", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&all, "all", false, "запросы других пользователей")
		pageFlags(fs, &from, &size)
	})
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return ErrUsage
	}
	path := "/requests"
	if all {
		path = "/requests/all"
	}

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var list []model.RequestView
	if _, err := c.Do(ctx, http.MethodGet, withQuery(path, pageValues(from, size)), nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет запросов")
		return nil
	}
	for _, r := range list {
		fmt.Fprintf(Out, "- #%d %s (%s)\n", r.ID, r.Description, fmtTime(r.Created))
		for _, it := range r.Items {
			fmt.Fprintf(Out, "    item #%d %s\n", it.ID, it.Name)
		}
	}
	return nil
}

func init() {
	RegisterCmd(requestAddCmd{})
	RegisterCmd(requestsCmd{})
}
