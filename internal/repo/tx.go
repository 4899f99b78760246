package repo

import (
	"ShareIt/internal/model"
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Transactor выполняет функцию в одной транзакции БД.
// Репозитории, получившие ctx из fn, работают внутри этой транзакции.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type txKey struct{}

type gormTransactor struct {
	db *gorm.DB
}

// NewTransactor создаёт Transactor поверх gorm.
func NewTransactor(db *gorm.DB) Transactor {
	return &gormTransactor{db: db}
}

func (t *gormTransactor) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	// вложенный вызов переиспользует внешнюю транзакцию
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// conn возвращает транзакцию из контекста либо базовое соединение.
func conn(ctx context.Context, db *gorm.DB) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx.WithContext(ctx)
	}
	return db.WithContext(ctx)
}

// forUpdate добавляет SELECT ... FOR UPDATE там, где СУБД его поддерживает.
func forUpdate(q *gorm.DB) *gorm.DB {
	if q.Dialector.Name() == "postgres" {
		return q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return q
}

// paginate: scope постраничной выборки.
func paginate(p model.Page) func(*gorm.DB) *gorm.DB {
	p = p.Normalize()
	return func(q *gorm.DB) *gorm.DB {
		return q.Offset(p.Offset).Limit(p.Limit)
	}
}
