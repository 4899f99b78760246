package commands

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"ShareIt/internal/config"
	"ShareIt/internal/model"
)

type itemAddCmd struct{}

func (itemAddCmd) Name() string        { return "item-add" }
func (itemAddCmd) Description() string { return "Выставить вещь" }
func (itemAddCmd) Usage() string {
	return "item-add [--unavailable] [--request=<id>] <name> [<description>]"
}

func (itemAddCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var (
		unavailable bool
		requestID   int64
	)
	rest, err := parseFlags("item-add", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&unavailable, "unavailable", false, "не сдавать пока")
		fs.Int64Var(&requestID, "request", 0, "id запроса, который закрывает вещь")
	})
	if err != nil {
		return err
	}
	if len(rest) < 1 || len(rest) > 2 || strings.TrimSpace(rest[0]) == "" {
		return ErrUsage
	}
	body := map[string]any{"name": rest[0], "available": !unavailable}
	if len(rest) == 2 {
		body["description"] = rest[1]
	}
	if requestID > 0 {
		body["requestId"] = requestID
	}

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var it model.Item
	if _, err := c.Do(ctx, http.MethodPost, "/items", body, &it); err != nil {
		return err
	}
	fmt.Fprintln(Out, "Created:")
	fmt.Fprintf(Out, "  id:   %d\n", it.ID)
	fmt.Fprintf(Out, "  name: %s\n", it.Name)
	return nil
}

type itemEditCmd struct{}

func (itemEditCmd) Name() string        { return "item-edit" }
func (itemEditCmd) Description() string { return "Изменить свою вещь" }
func (itemEditCmd) Usage() string {
	return "item-edit [--name=<name>] [--description=<text>] [--available=true|false] <id>"
}

func (itemEditCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var name, description, available string
	rest, err := parseFlags("item-edit", args, func(fs *flag.FlagSet) {
		fs.StringVar(&name, "name", "", "новое название")
		fs.StringVar(&description, "description", "", "новое описание")
		fs.StringVar(&available, "available", "", "true|false")
	})
	if err != nil {
		return err
	}
	if len(rest) != 1 {
		return ErrUsage
	}
	id, err := parseID(rest[0])
	if err != nil {
		return err
	}
	patch := map[string]any{}
	if name != "" {
		patch["name"] = name
	}
	if description != "" {
		patch["description"] = description
	}
	if available != "" {
		v, err := strconv.ParseBool(available)
		if err != nil {
			return ErrUsage
		}
		patch["available"] = v
	}
	if len(patch) == 0 {
		return ErrUsage
	}

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var it model.Item
	if _, err := c.Do(ctx, http.MethodPatch, "/items/"+rest[0], patch, &it); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Updated: #%d %s (available=%t)\n", id, it.Name, it.Available)
	return nil
}

type itemGetCmd struct{}

func (itemGetCmd) Name() string        { return "item-get" }
func (itemGetCmd) Description() string { return "Показать карточку вещи с отзывами" }
func (itemGetCmd) Usage() string       { return "item-get <id>" }

func (itemGetCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 1 {
		return ErrUsage
	}
	if _, err := parseID(args[0]); err != nil {
		return err
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var v model.ItemView
	if _, err := c.Do(ctx, http.MethodGet, "/items/"+args[0], nil, &v); err != nil {
		return err
	}
	printItemView(v)
	for _, cm := range v.Comments {
		fmt.Fprintf(Out, "    %s (%s): %s\n", cm.AuthorName, fmtTime(cm.Created), cm.Text)
	}
	return nil
}

type itemsCmd struct{}

func (itemsCmd) Name() string        { return "items" }
func (itemsCmd) Description() string { return "Показать мои вещи" }
func (itemsCmd) Usage() string       { return "items [--from=N] [--size=N]" }

func (itemsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var from, size int
	rest, err := parseFlags("items", args, func(fs *flag.FlagSet) { pageFlags(fs, &from, &size) })
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return ErrUsage
	}
	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var list []model.ItemView
	if _, err := c.Do(ctx, http.MethodGet, withQuery("/items", pageValues(from, size)), nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет вещей")
		return nil
	}
	for _, v := range list {
		printItemView(v)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type searchCmd struct{}

func (searchCmd) Name() string        { return "search" }
func (searchCmd) Description() string { return "Найти доступные вещи" }
func (searchCmd) Usage() string       { return "search [--from=N] [--size=N] <text>" }

func (searchCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var from, size int
	rest, err := parseFlags("search", args, func(fs *flag.FlagSet) { pageFlags(fs, &from, &size) })
	if err != nil {
		return err
	}
	if len(rest) == 0 {
		return ErrUsage
	}
	q := pageValues(from, size)
	q.Set("text", strings.Join(rest, " "))

	var list []model.Item
	if _, err := newClient(cfg).Do(ctx, http.MethodGet, withQuery("/items/search", q), nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Ничего не найдено")
		return nil
	}
	for _, it := range list {
		fmt.Fprintf(Out, "- #%d %s  %s\n", it.ID, it.Name, it.Description)
	}
	return nil
}

func printItemView(v model.ItemView) {
	state := "available"
	if !v.Available {
		state = "unavailable"
	}
	fmt.Fprintf(Out, "- #%d %s (%s)\n", v.ID, v.Name, state)
	if v.LastBooking != nil {
		fmt.Fprintf(Out, "    last: #%d %s .. %s\n", v.LastBooking.ID, fmtTime(v.LastBooking.Start), fmtTime(v.LastBooking.End))
	}
	if v.NextBooking != nil {
		fmt.Fprintf(Out, "    next: #%d %s .. %s\n", v.NextBooking.ID, fmtTime(v.NextBooking.Start), fmtTime(v.NextBooking.End))
	}
}

func init() {
	RegisterCmd(itemAddCmd{})
	RegisterCmd(itemEditCmd{})
	RegisterCmd(itemGetCmd{})
	RegisterCmd(itemsCmd{})
	RegisterCmd(searchCmd{})
}
