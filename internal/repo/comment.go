package repo

import (
	"ShareIt/internal/model"
	"context"

	"gorm.io/gorm"
)

// CommentRepository: доступ к отзывам.
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	// FindByItemIDs возвращает отзывы по набору вещей в порядке created, id.
	FindByItemIDs(ctx context.Context, itemIDs []int64) ([]model.Comment, error)
}

type commentRepo struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepo{db: db}
}

func (r *commentRepo) Create(ctx context.Context, c *model.Comment) error {
	return conn(ctx, r.db).Create(c).Error
}

func (r *commentRepo) FindByItemIDs(ctx context.Context, itemIDs []int64) ([]model.Comment, error) {
	out := []model.Comment{}
	if len(itemIDs) == 0 {
		return out, nil
	}
	err := conn(ctx, r.db).
		Where("item_id IN ?", itemIDs).
		Order("created").Order("id").
		Find(&out).Error
	return out, err
}
