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

type bookCmd struct{}

func (bookCmd) Name() string        { return "book" }
func (bookCmd) Description() string { return "Забронировать вещь на интервал [start, end)" }
func (bookCmd) Usage() string       { return "book <itemId> <start> <end>" }

func (bookCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 3 {
		return ErrUsage
	}
	itemID, err := parseID(args[0])
	if err != nil {
		return err
	}
	start, err := parseTime(args[1])
	if err != nil {
		return err
	}
	end, err := parseTime(args[2])
	if err != nil {
		return err
	}

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var b model.BookingView
	body := map[string]any{"itemId": itemID, "start": start, "end": end}
	if _, err := c.Do(ctx, http.MethodPost, "/bookings", body, &b); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Booked: #%d %s %s .. %s [%s]\n", b.ID, b.Item.Name, fmtTime(b.Start), fmtTime(b.End), b.Status)
	return nil
}

type approveCmd struct{}

func (approveCmd) Name() string        { return "approve" }
func (approveCmd) Description() string { return "Подтвердить или отклонить бронирование своей вещи" }
func (approveCmd) Usage() string       { return "approve <bookingId> yes|no" }

func (approveCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) != 2 {
		return ErrUsage
	}
	if _, err := parseID(args[0]); err != nil {
		return err
	}
	var approved string
	switch strings.ToLower(args[1]) {
	case "yes", "y", "true":
		approved = "true"
	case "no", "n", "false":
		approved = "false"
	default:
		return ErrUsage
	}

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var b model.BookingView
	if _, err := c.Do(ctx, http.MethodPatch, "/bookings/"+args[0]+"?approved="+approved, nil, &b); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Booking #%d: %s\n", b.ID, b.Status)
	return nil
}

type bookingsCmd struct{}

func (bookingsCmd) Name() string        { return "bookings" }
func (bookingsCmd) Description() string { return "Мои бронирования (или бронирования моих вещей с --owner)" }
func (bookingsCmd) Usage() string {
	return "bookings [--owner] [--state=ALL|CURRENT|PAST|FUTURE|WAITING|REJECTED] [--from=N] [--size=N]"
}

func (bookingsCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	var (
		owner      bool
		state      string
		from, size int
	)
	rest, err := parseFlags("bookings", args, func(fs *flag.FlagSet) {
		fs.BoolVar(&owner, "owner", false, "бронирования моих вещей")
		fs.StringVar(&state, "state", "", "фильтр состояния")
		pageFlags(fs, &from, &size)
	})
	if err != nil {
		return err
	}
	if len(rest) != 0 {
		return ErrUsage
	}
	q := pageValues(from, size)
	if state != "" {
		q.Set("state", state)
	}
	path := "/bookings"
	if owner {
		path = "/bookings/owner"
	}

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var list []model.BookingView
	if _, err := c.Do(ctx, http.MethodGet, withQuery(path, q), nil, &list); err != nil {
		return err
	}
	if len(list) == 0 {
		fmt.Fprintln(Out, "Нет бронирований")
		return nil
	}
	for _, b := range list {
		fmt.Fprintf(Out, "- #%d %s by %s  %s .. %s [%s]\n", b.ID, b.Item.Name, b.Booker.Name, fmtTime(b.Start), fmtTime(b.End), b.Status)
	}
	fmt.Fprintf(Out, "Всего: %d\n", len(list))
	return nil
}

type commentCmd struct{}

func (commentCmd) Name() string        { return "comment" }
func (commentCmd) Description() string { return "Оставить отзыв о вещи после завершённой аренды" }
func (commentCmd) Usage() string       { return "comment <itemId> <text>" }

func (commentCmd) Run(ctx context.Context, cfg *config.Config, args []string) error {
	if len(args) < 2 {
		return ErrUsage
	}
	if _, err := parseID(args[0]); err != nil {
		return err
	}
	text := strings.Join(args[1:], " ")

	c, err := authClient(cfg)
	if err != nil {
		return err
	}
	var cm model.CommentView
	if _, err := c.Do(ctx, http.MethodPost, "/items/"+args[0]+"/comment", map[string]string{"text": text}, &cm); err != nil {
		return err
	}
	fmt.Fprintf(Out, "Comment #%d by %s saved\n", cm.ID, cm.AuthorName)
	return nil
}

func init() {
	RegisterCmd(bookCmd{})
	RegisterCmd(approveCmd{})
	RegisterCmd(bookingsCmd{})
	RegisterCmd(commentCmd{})
}
