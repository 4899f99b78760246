package service

import (
	"ShareIt/internal/model"
	"ShareIt/internal/repo"
	"context"
	"time"
)

// projector собирает карточки вещей пачкой: число запросов не зависит от числа вещей.
type projector struct {
	bookings repo.BookingRepository
	comments repo.CommentRepository
	users    repo.UserRepository
}

// project строит ItemView в порядке items. withBookings=false скрывает last/next.
func (p projector) project(ctx context.Context, items []model.Item, withBookings bool, now time.Time) ([]model.ItemView, error) {
	views := make([]model.ItemView, len(items))
	byID := make(map[int64]*model.ItemView, len(items))
	ids := make([]int64, 0, len(items))
	for i, it := range items {
		views[i] = model.ItemView{Item: it, Comments: []model.CommentView{}}
		byID[it.ID] = &views[i]
		ids = append(ids, it.ID)
	}
	if len(ids) == 0 {
		return views, nil
	}

	if withBookings {
		last, err := p.bookings.FindLastApproved(ctx, ids, now)
		if err != nil {
			return nil, err
		}
		firstPerItem(byID, last, func(v *model.ItemView) **model.BookingDates { return &v.LastBooking })

		next, err := p.bookings.FindNextApproved(ctx, ids, now)
		if err != nil {
			return nil, err
		}
		firstPerItem(byID, next, func(v *model.ItemView) **model.BookingDates { return &v.NextBooking })
	}

	if err := p.attachComments(ctx, byID, ids); err != nil {
		return nil, err
	}
	return views, nil
}

// firstPerItem: первая запись по каждой вещи выигрывает, остальные игнорируются.
// Порядок выборки определяет, какая запись первая.
func firstPerItem(byID map[int64]*model.ItemView, bookings []model.Booking, slot func(*model.ItemView) **model.BookingDates) {
	for _, b := range bookings {
		v, ok := byID[b.ItemID]
		if !ok {
			continue
		}
		if dst := slot(v); *dst == nil {
			*dst = model.DatesOf(b)
		}
	}
}

func (p projector) attachComments(ctx context.Context, byID map[int64]*model.ItemView, ids []int64) error {
	comments, err := p.comments.FindByItemIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(comments) == 0 {
		return nil
	}

	authorIDs := make([]int64, 0, len(comments))
	seen := make(map[int64]struct{}, len(comments))
	for _, c := range comments {
		if _, ok := seen[c.AuthorID]; !ok {
			seen[c.AuthorID] = struct{}{}
			authorIDs = append(authorIDs, c.AuthorID)
		}
	}
	authors, err := p.users.GetUsersByIDs(ctx, authorIDs)
	if err != nil {
		return err
	}
	names := make(map[int64]string, len(authors))
	for _, a := range authors {
		names[a.ID] = a.Name
	}

	for _, c := range comments {
		if v, ok := byID[c.ItemID]; ok {
			v.Comments = append(v.Comments, commentView(c, names[c.AuthorID]))
		}
	}
	return nil
}

func commentView(c model.Comment, author string) model.CommentView {
	return model.CommentView{ID: c.ID, Text: c.Text, AuthorName: author, Created: c.Created}
}
