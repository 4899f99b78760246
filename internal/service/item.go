package service

import (
	"ShareIt/internal/model"
	"ShareIt/internal/repo"
	"context"
	"strings"

	"go.uber.org/zap"
)

// ItemService инкапсулирует бизнес-логику работы с вещами и отзывами.
type ItemService struct {
	tx       repo.Transactor
	items    repo.ItemRepository
	users    repo.UserRepository
	requests repo.RequestRepository
	comments repo.CommentRepository
	bookings repo.BookingRepository
	proj     projector
	opts     options
	logger   *zap.SugaredLogger
}

// NewItem: данные для создания вещи.
type NewItem struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

// ItemPatch: частичное обновление вещи; nil-поля не меняются.
type ItemPatch struct {
	Name        *string
	Description *string
	Available   *bool
}

// ItemDeps: репозитории, нужные ItemService.
type ItemDeps struct {
	Tx       repo.Transactor
	Items    repo.ItemRepository
	Users    repo.UserRepository
	Requests repo.RequestRepository
	Comments repo.CommentRepository
	Bookings repo.BookingRepository
}

func NewItemService(d ItemDeps, opts ...Option) *ItemService {
	o := buildOptions(opts)
	return &ItemService{
		tx:       d.Tx,
		items:    d.Items,
		users:    d.Users,
		requests: d.Requests,
		comments: d.Comments,
		bookings: d.Bookings,
		proj:     projector{bookings: d.Bookings, comments: d.Comments, users: d.Users},
		opts:     o,
		logger:   o.logger,
	}
}

// Create добавляет вещь владельцу; запрос, если указан, должен существовать.
func (s *ItemService) Create(ctx context.Context, ownerID int64, in NewItem) (*model.Item, error) {
	if isBlank(in.Name) {
		return nil, conditionsNotMet("item name must not be blank")
	}

	it := &model.Item{
		OwnerID:     ownerID,
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Available:   in.Available,
		RequestID:   in.RequestID,
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetUserByID(ctx, ownerID); err != nil {
			return lookup(err, "user %d not found", ownerID)
		}
		if in.RequestID != nil {
			if _, err := s.requests.GetByID(ctx, *in.RequestID); err != nil {
				return lookup(err, "item request %d not found", *in.RequestID)
			}
		}
		return s.items.Create(ctx, it)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("item created", "item_id", it.ID, "owner_id", ownerID)
	return it, nil
}

// Update меняет вещь; доступно только владельцу.
// Пустое название: ошибка, пустое описание игнорируется.
func (s *ItemService) Update(ctx context.Context, itemID, ownerID int64, patch ItemPatch) (*model.Item, error) {
	var updated *model.Item
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		it, err := s.items.GetByID(ctx, itemID)
		if err != nil {
			return lookup(err, "item %d not found", itemID)
		}
		if it.OwnerID != ownerID {
			return forbidden("user %d is not the owner of item %d", ownerID, itemID)
		}
		if patch.Name != nil {
			if isBlank(*patch.Name) {
				return conditionsNotMet("item name must not be blank")
			}
			it.Name = strings.TrimSpace(*patch.Name)
		}
		if patch.Description != nil && !isBlank(*patch.Description) {
			it.Description = *patch.Description
		}
		if patch.Available != nil {
			it.Available = *patch.Available
		}
		if err := s.items.Update(ctx, it); err != nil {
			return err
		}
		updated = it
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// GetByID возвращает карточку вещи. Бронирования видит только владелец, отзывы: все.
func (s *ItemService) GetByID(ctx context.Context, itemID, userID int64) (*model.ItemView, error) {
	now := s.opts.clock()
	it, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, lookup(err, "item %d not found", itemID)
	}
	views, err := s.proj.project(ctx, []model.Item{*it}, it.OwnerID == userID, now)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// ListOwnerItems возвращает вещи владельца с последним и следующим бронированием.
func (s *ItemService) ListOwnerItems(ctx context.Context, ownerID int64, page model.Page) ([]model.ItemView, error) {
	now := s.opts.clock()
	items, err := s.items.ListByOwner(ctx, ownerID, page.Normalize())
	if err != nil {
		return nil, err
	}
	return s.proj.project(ctx, items, true, now)
}

// Search ищет доступные вещи; пустой запрос даёт пустой список.
func (s *ItemService) Search(ctx context.Context, text string, page model.Page) ([]model.Item, error) {
	if isBlank(text) {
		return []model.Item{}, nil
	}
	return s.items.Search(ctx, strings.TrimSpace(text), page.Normalize())
}

// CreateComment добавляет отзыв, если у автора есть завершённое одобренное бронирование вещи.
func (s *ItemService) CreateComment(ctx context.Context, userID, itemID int64, text string) (*model.CommentView, error) {
	if isBlank(text) {
		return nil, conditionsNotMet("comment text must not be blank")
	}
	now := s.opts.clock()

	var (
		c      *model.Comment
		author *model.User
	)
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		done, err := s.bookings.HasCompleted(ctx, itemID, userID, now)
		if err != nil {
			return err
		}
		if !done {
			s.logger.Debugw("comment rejected: no completed booking", "user_id", userID, "item_id", itemID)
			return conditionsNotMet("user %d has no completed bookings of item %d: nothing to review yet", userID, itemID)
		}
		author, err = s.users.GetUserByID(ctx, userID)
		if err != nil {
			return lookup(err, "user %d not found", userID)
		}
		if _, err := s.items.GetByID(ctx, itemID); err != nil {
			return lookup(err, "item %d not found", itemID)
		}
		c = &model.Comment{ItemID: itemID, AuthorID: userID, Text: text, Created: now}
		return s.comments.Create(ctx, c)
	})
	if err != nil {
		return nil, err
	}
	v := commentView(*c, author.Name)
	return &v, nil
}
