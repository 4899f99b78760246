package repo

import (
	"ShareIt/internal/model"
	"context"

	"gorm.io/gorm"
)

// RequestRepository: доступ к запросам на вещи.
type RequestRepository interface {
	Create(ctx context.Context, req *model.ItemRequest) error
	GetByID(ctx context.Context, id int64) (*model.ItemRequest, error)
	// ListByRequestor: запросы пользователя, новые первыми.
	ListByRequestor(ctx context.Context, userID int64, page model.Page) ([]model.ItemRequest, error)
	// ListExcept: запросы всех остальных пользователей, новые первыми.
	ListExcept(ctx context.Context, userID int64, page model.Page) ([]model.ItemRequest, error)
}

type requestRepo struct {
	db *gorm.DB
}

func NewRequestRepository(db *gorm.DB) RequestRepository {
	return &requestRepo{db: db}
}

func (r *requestRepo) Create(ctx context.Context, req *model.ItemRequest) error {
	return conn(ctx, r.db).Create(req).Error
}

func (r *requestRepo) GetByID(ctx context.Context, id int64) (*model.ItemRequest, error) {
	var req model.ItemRequest
	if err := conn(ctx, r.db).First(&req, id).Error; err != nil {
		return nil, err
	}
	return &req, nil
}

func (r *requestRepo) ListByRequestor(ctx context.Context, userID int64, page model.Page) ([]model.ItemRequest, error) {
	out := []model.ItemRequest{}
	err := conn(ctx, r.db).
		Where("requestor_id = ?", userID).
		Scopes(newestRequests, paginate(page)).
		Find(&out).Error
	return out, err
}

func (r *requestRepo) ListExcept(ctx context.Context, userID int64, page model.Page) ([]model.ItemRequest, error) {
	out := []model.ItemRequest{}
	err := conn(ctx, r.db).
		Where("requestor_id <> ?", userID).
		Scopes(newestRequests, paginate(page)).
		Find(&out).Error
	return out, err
}

func newestRequests(q *gorm.DB) *gorm.DB {
	return q.Order("created DESC").Order("id DESC")
}
