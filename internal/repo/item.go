package repo

import (
	"ShareIt/internal/model"
	"context"
	"strings"

	"gorm.io/gorm"
)

// ItemRepository определяет контракт доступа к Item для слоя сервиса.
type ItemRepository interface {
	Create(ctx context.Context, it *model.Item) error
	GetByID(ctx context.Context, id int64) (*model.Item, error)
	// GetByIDForUpdate читает вещь с блокировкой строки до конца транзакции (Postgres).
	GetByIDForUpdate(ctx context.Context, id int64) (*model.Item, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Item, error)
	Update(ctx context.Context, it *model.Item) error
	ListByOwner(ctx context.Context, ownerID int64, page model.Page) ([]model.Item, error)
	ExistsByOwner(ctx context.Context, ownerID int64) (bool, error)
	// Search ищет доступные вещи по подстроке в названии или описании без учёта регистра.
	Search(ctx context.Context, text string, page model.Page) ([]model.Item, error)
	ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error)
}

type itemRepo struct {
	db *gorm.DB
}

// NewItemRepository создаёт реализацию репозитория для Item.
func NewItemRepository(db *gorm.DB) ItemRepository {
	return &itemRepo{db: db}
}

func (r *itemRepo) Create(ctx context.Context, it *model.Item) error {
	return conn(ctx, r.db).Create(it).Error
}

func (r *itemRepo) GetByID(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := conn(ctx, r.db).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) GetByIDForUpdate(ctx context.Context, id int64) (*model.Item, error) {
	var it model.Item
	if err := forUpdate(conn(ctx, r.db)).First(&it, id).Error; err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *itemRepo) GetByIDs(ctx context.Context, ids []int64) ([]model.Item, error) {
	items := []model.Item{}
	if len(ids) == 0 {
		return items, nil
	}
	err := conn(ctx, r.db).Where("id IN ?", ids).Order("id").Find(&items).Error
	return items, err
}

// Update сохраняет изменяемые поля; владелец и запрос не меняются.
func (r *itemRepo) Update(ctx context.Context, it *model.Item) error {
	return conn(ctx, r.db).Model(it).
		Select("name", "description", "available").
		Updates(it).Error
}

func (r *itemRepo) ListByOwner(ctx context.Context, ownerID int64, page model.Page) ([]model.Item, error) {
	items := []model.Item{}
	err := conn(ctx, r.db).
		Where("owner_id = ?", ownerID).
		Order("id").
		Scopes(paginate(page)).
		Find(&items).Error
	return items, err
}

func (r *itemRepo) ExistsByOwner(ctx context.Context, ownerID int64) (bool, error) {
	var n int64
	err := conn(ctx, r.db).Model(&model.Item{}).Where("owner_id = ?", ownerID).Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *itemRepo) Search(ctx context.Context, text string, page model.Page) ([]model.Item, error) {
	items := []model.Item{}
	pattern := "%" + escapeLike(strings.ToLower(text)) + "%"
	err := conn(ctx, r.db).
		Where("available = ?", true).
		Where(`(LOWER(name) LIKE ? ESCAPE '\' OR LOWER(description) LIKE ? ESCAPE '\')`, pattern, pattern).
		Order("id").
		Scopes(paginate(page)).
		Find(&items).Error
	return items, err
}

func (r *itemRepo) ListByRequestIDs(ctx context.Context, requestIDs []int64) ([]model.Item, error) {
	items := []model.Item{}
	if len(requestIDs) == 0 {
		return items, nil
	}
	err := conn(ctx, r.db).Where("request_id IN ?", requestIDs).Order("id").Find(&items).Error
	return items, err
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
