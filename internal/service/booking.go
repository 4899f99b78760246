package service

import (
	"ShareIt/internal/model"
	"ShareIt/internal/repo"
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// BookingService: жизненный цикл бронирований и выборки по ним.
type BookingService struct {
	tx       repo.Transactor
	bookings repo.BookingRepository
	items    repo.ItemRepository
	users    repo.UserRepository
	opts     options
	logger   *zap.SugaredLogger
}

// NewBooking: заявка на бронирование вещи в интервале [Start, End).
type NewBooking struct {
	ItemID int64
	Start  time.Time
	End    time.Time
}

// BookingDeps: репозитории, нужные BookingService.
type BookingDeps struct {
	Tx       repo.Transactor
	Bookings repo.BookingRepository
	Items    repo.ItemRepository
	Users    repo.UserRepository
}

func NewBookingService(d BookingDeps, opts ...Option) *BookingService {
	o := buildOptions(opts)
	return &BookingService{
		tx:       d.Tx,
		bookings: d.Bookings,
		items:    d.Items,
		users:    d.Users,
		opts:     o,
		logger:   o.logger,
	}
}

// Create создаёт бронирование в статусе WAITING.
// Проверки идут по порядку, первая неудачная определяет ошибку.
func (s *BookingService) Create(ctx context.Context, bookerID int64, in NewBooking) (*model.BookingView, error) {
	if in.Start.IsZero() || in.End.IsZero() {
		return nil, conditionsNotMet("booking start and end are required")
	}
	start, end := in.Start.UTC(), in.End.UTC()
	if !start.Before(end) {
		return nil, conditionsNotMet("booking start must be before end")
	}

	var (
		b      *model.Booking
		item   *model.Item
		booker *model.User
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		booker, err = s.users.GetUserByID(ctx, bookerID)
		if err != nil {
			return lookup(err, "user %d not found", bookerID)
		}
		// блокировка строки вещи сериализует конкурентные проверки пересечений
		item, err = s.items.GetByIDForUpdate(ctx, in.ItemID)
		if err != nil {
			return lookup(err, "item %d not found", in.ItemID)
		}
		if item.OwnerID == bookerID {
			return forbidden("user %d owns item %d and cannot book it", bookerID, item.ID)
		}
		if !item.Available {
			return conditionsNotMet("item %d is not available", item.ID)
		}
		overlap, err := s.bookings.HasApprovedOverlap(ctx, item.ID, start, end, 0)
		if err != nil {
			return err
		}
		if overlap {
			return conditionsNotMet("item %d is already booked for the requested dates", item.ID)
		}

		b = &model.Booking{ItemID: item.ID, BookerID: bookerID, Start: start, End: end, Status: model.StatusWaiting}
		return s.bookings.Create(ctx, b)
	})
	if repo.IsExclusionViolation(err) {
		err = conditionsNotMet("item %d is already booked for the requested dates", in.ItemID)
	}
	if err != nil {
		s.logRejected("create", err, "booker_id", bookerID, "item_id", in.ItemID)
		return nil, err
	}

	s.logger.Infow("booking created", "booking_id", b.ID, "item_id", item.ID, "booker_id", bookerID)
	v := bookingView(*b, item, booker)
	return &v, nil
}

// Approve переводит WAITING в APPROVED или REJECTED. Решает только владелец вещи, один раз.
func (s *BookingService) Approve(ctx context.Context, bookingID int64, approved bool, userID int64) (*model.BookingView, error) {
	var (
		b    *model.Booking
		item *model.Item
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		var err error
		b, err = s.bookings.GetByID(ctx, bookingID)
		if err != nil {
			return lookup(err, "booking %d not found", bookingID)
		}
		item, err = s.items.GetByIDForUpdate(ctx, b.ItemID)
		if err != nil {
			return lookup(err, "item %d not found", b.ItemID)
		}
		if item.OwnerID != userID {
			return forbidden("user %d is not the owner of item %d", userID, item.ID)
		}
		if b.Status.Terminal() {
			return forbidden("booking %d is already %s", b.ID, b.Status)
		}

		next := model.StatusRejected
		if approved {
			overlap, err := s.bookings.HasApprovedOverlap(ctx, item.ID, b.Start, b.End, b.ID)
			if err != nil {
				return err
			}
			if overlap {
				return conditionsNotMet("item %d is already booked for the dates of booking %d", item.ID, b.ID)
			}
			next = model.StatusApproved
		}
		if err := s.bookings.UpdateStatus(ctx, b.ID, next); err != nil {
			return err
		}
		b.Status = next
		return nil
	})
	if repo.IsExclusionViolation(err) {
		err = conditionsNotMet("item is already booked for the dates of booking %d", bookingID)
	}
	if err != nil {
		s.logRejected("approve", err, "booking_id", bookingID, "user_id", userID)
		return nil, err
	}

	s.logger.Infow("booking status changed", "booking_id", b.ID, "status", b.Status)
	booker, err := s.users.GetUserByID(ctx, b.BookerID)
	if err != nil {
		return nil, lookup(err, "user %d not found", b.BookerID)
	}
	v := bookingView(*b, item, booker)
	return &v, nil
}

// FindByID доступен автору бронирования и владельцу вещи.
func (s *BookingService) FindByID(ctx context.Context, bookingID, userID int64) (*model.BookingView, error) {
	b, err := s.bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, lookup(err, "booking %d not found", bookingID)
	}
	item, err := s.items.GetByID(ctx, b.ItemID)
	if err != nil {
		return nil, lookup(err, "item %d not found", b.ItemID)
	}
	if b.BookerID != userID && item.OwnerID != userID {
		return nil, forbidden("user %d is neither the booker nor the owner of booking %d", userID, bookingID)
	}
	booker, err := s.users.GetUserByID(ctx, b.BookerID)
	if err != nil {
		return nil, lookup(err, "user %d not found", b.BookerID)
	}
	v := bookingView(*b, item, booker)
	return &v, nil
}

// FindUserBookings: бронирования пользователя-арендатора в состоянии state.
func (s *BookingService) FindUserBookings(ctx context.Context, bookerID int64, state string, page model.Page) ([]model.BookingView, error) {
	now := s.opts.clock()
	if _, err := s.users.GetUserByID(ctx, bookerID); err != nil {
		return nil, lookup(err, "user %d not found", bookerID)
	}
	st, err := parseState(state)
	if err != nil {
		return nil, err
	}
	list, err := s.bookings.FindByBooker(ctx, bookerID, st, now, page.Normalize())
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list)
}

// FindUserItemsBookings: бронирования всех вещей владельца в состоянии state.
func (s *BookingService) FindUserItemsBookings(ctx context.Context, ownerID int64, state string, page model.Page) ([]model.BookingView, error) {
	now := s.opts.clock()
	owns, err := s.items.ExistsByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	if !owns {
		return nil, notFound("user %d does not own any items", ownerID)
	}
	st, err := parseState(state)
	if err != nil {
		return nil, err
	}
	list, err := s.bookings.FindByOwner(ctx, ownerID, st, now, page.Normalize())
	if err != nil {
		return nil, err
	}
	return s.views(ctx, list)
}

func parseState(state string) (model.BookingState, error) {
	st, err := model.ParseBookingState(state)
	if err != nil {
		return st, conditionsNotMet("%s", err.Error())
	}
	return st, nil
}

// views подтягивает вещи и арендаторов пачкой, сохраняя порядок бронирований.
func (s *BookingService) views(ctx context.Context, list []model.Booking) ([]model.BookingView, error) {
	out := make([]model.BookingView, 0, len(list))
	if len(list) == 0 {
		return out, nil
	}
	itemIDs := make([]int64, 0, len(list))
	userIDs := make([]int64, 0, len(list))
	for _, b := range list {
		itemIDs = append(itemIDs, b.ItemID)
		userIDs = append(userIDs, b.BookerID)
	}

	items, err := s.items.GetByIDs(ctx, dedup(itemIDs))
	if err != nil {
		return nil, err
	}
	users, err := s.users.GetUsersByIDs(ctx, dedup(userIDs))
	if err != nil {
		return nil, err
	}
	itemByID := make(map[int64]*model.Item, len(items))
	for i := range items {
		itemByID[items[i].ID] = &items[i]
	}
	userByID := make(map[int64]*model.User, len(users))
	for i := range users {
		userByID[users[i].ID] = &users[i]
	}

	for _, b := range list {
		out = append(out, bookingView(b, itemByID[b.ItemID], userByID[b.BookerID]))
	}
	return out, nil
}

func (s *BookingService) logRejected(op string, err error, kv ...any) {
	var se *Error
	if errors.As(err, &se) {
		s.logger.Debugw("booking "+op+" rejected", append(kv, "reason", se.Reason)...)
		return
	}
	s.logger.Errorw("booking "+op+" failed", append(kv, "error", err)...)
}

func bookingView(b model.Booking, item *model.Item, booker *model.User) model.BookingView {
	v := model.BookingView{
		ID:     b.ID,
		Start:  b.Start,
		End:    b.End,
		Status: b.Status,
		Item:   model.ItemRef{ID: b.ItemID},
		Booker: model.UserRef{ID: b.BookerID},
	}
	if item != nil {
		v.Item.Name = item.Name
		v.Item.OwnerID = item.OwnerID
	}
	if booker != nil {
		v.Booker.Name = booker.Name
	}
	return v
}

func dedup(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := ids[:0:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
