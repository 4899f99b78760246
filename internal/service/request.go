package service

import (
	"ShareIt/internal/model"
	"ShareIt/internal/repo"
	"context"
	"strings"

	"go.uber.org/zap"
)

// RequestService: реестр запросов на вещи.
type RequestService struct {
	tx       repo.Transactor
	requests repo.RequestRepository
	items    repo.ItemRepository
	users    repo.UserRepository
	opts     options
	logger   *zap.SugaredLogger
}

// RequestDeps: репозитории, нужные RequestService.
type RequestDeps struct {
	Tx       repo.Transactor
	Requests repo.RequestRepository
	Items    repo.ItemRepository
	Users    repo.UserRepository
}

func NewRequestService(d RequestDeps, opts ...Option) *RequestService {
	o := buildOptions(opts)
	return &RequestService{
		tx:       d.Tx,
		requests: d.Requests,
		items:    d.Items,
		users:    d.Users,
		opts:     o,
		logger:   o.logger,
	}
}

// Create регистрирует запрос; время создания ставит сервер.
func (s *RequestService) Create(ctx context.Context, userID int64, description string) (*model.RequestView, error) {
	if isBlank(description) {
		return nil, conditionsNotMet("request description must not be blank")
	}
	req := &model.ItemRequest{
		RequestorID: userID,
		Description: strings.TrimSpace(description),
		Created:     s.opts.clock(),
	}
	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		if _, err := s.users.GetUserByID(ctx, userID); err != nil {
			return lookup(err, "user %d not found", userID)
		}
		return s.requests.Create(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	s.logger.Infow("item request created", "request_id", req.ID, "requestor_id", userID)
	return &model.RequestView{ItemRequest: *req, Items: []model.ItemRef{}}, nil
}

// ListOwn: запросы пользователя, новые первыми.
func (s *RequestService) ListOwn(ctx context.Context, userID int64, page model.Page) ([]model.RequestView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, lookup(err, "user %d not found", userID)
	}
	list, err := s.requests.ListByRequestor(ctx, userID, page.Normalize())
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, list)
}

// ListOthers: запросы всех остальных пользователей.
func (s *RequestService) ListOthers(ctx context.Context, userID int64, page model.Page) ([]model.RequestView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, lookup(err, "user %d not found", userID)
	}
	list, err := s.requests.ListExcept(ctx, userID, page.Normalize())
	if err != nil {
		return nil, err
	}
	return s.withItems(ctx, list)
}

func (s *RequestService) GetByID(ctx context.Context, userID, requestID int64) (*model.RequestView, error) {
	if _, err := s.users.GetUserByID(ctx, userID); err != nil {
		return nil, lookup(err, "user %d not found", userID)
	}
	req, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		return nil, lookup(err, "item request %d not found", requestID)
	}
	views, err := s.withItems(ctx, []model.ItemRequest{*req})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// withItems прикладывает к запросам созданные под них вещи одним запросом.
func (s *RequestService) withItems(ctx context.Context, list []model.ItemRequest) ([]model.RequestView, error) {
	views := make([]model.RequestView, len(list))
	byID := make(map[int64]*model.RequestView, len(list))
	ids := make([]int64, 0, len(list))
	for i, r := range list {
		views[i] = model.RequestView{ItemRequest: r, Items: []model.ItemRef{}}
		byID[r.ID] = &views[i]
		ids = append(ids, r.ID)
	}
	if len(ids) == 0 {
		return views, nil
	}

	items, err := s.items.ListByRequestIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	for _, it := range items {
		if it.RequestID == nil {
			continue
		}
		if v, ok := byID[*it.RequestID]; ok {
			v.Items = append(v.Items, model.ItemRef{ID: it.ID, Name: it.Name, OwnerID: it.OwnerID})
		}
	}
	return views, nil
}
