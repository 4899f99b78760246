package repo

import (
	"ShareIt/internal/model"
	"fmt"
	"strings"

	"gorm.io/driver/postgres"
	gormsqlite "gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"
)

// approvedOverlapConstraint: имя exclusion-ограничения на одобренные бронирования (только Postgres).
const approvedOverlapConstraint = "bookings_approved_no_overlap"

// InitDB открывает БД по DSN и выполняет миграции.
// DSN вида postgres://... или host=... открывается через Postgres, остальное: SQLite (modernc).
func InitDB(dsn string) (*gorm.DB, error) {
	cfg := &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Warn),
	}

	var (
		db  *gorm.DB
		err error
	)
	if IsPostgresDSN(dsn) {
		db, err = gorm.Open(postgres.Open(dsn), cfg)
	} else {
		db, err = gorm.Open(gormsqlite.Dialector{DriverName: "sqlite", DSN: dsn}, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if db.Dialector.Name() == "sqlite" {
		// SQLite допускает одного писателя; одно соединение убирает SQLITE_BUSY внутри транзакций.
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

// IsPostgresDSN определяет драйвер по строке подключения.
func IsPostgresDSN(dsn string) bool {
	return strings.HasPrefix(dsn, "postgres://") ||
		strings.HasPrefix(dsn, "postgresql://") ||
		strings.Contains(dsn, "host=")
}

// Migrate создаёт схему для всех моделей.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&model.User{},
		&model.ItemRequest{},
		&model.Item{},
		&model.Booking{},
		&model.Comment{},
	); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	if db.Dialector.Name() == "postgres" {
		return ensureApprovedOverlapConstraint(db)
	}
	return nil
}

// ensureApprovedOverlapConstraint запрещает на уровне БД пересечение одобренных бронирований одной вещи.
func ensureApprovedOverlapConstraint(db *gorm.DB) error {
	var exists bool
	if err := db.Raw(
		"SELECT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = ?)", approvedOverlapConstraint,
	).Scan(&exists).Error; err != nil {
		return fmt.Errorf("check overlap constraint: %w", err)
	}
	if exists {
		return nil
	}
	stmts := []string{
		"CREATE EXTENSION IF NOT EXISTS btree_gist",
		"ALTER TABLE bookings ADD CONSTRAINT " + approvedOverlapConstraint +
			" EXCLUDE USING gist (item_id WITH =, tstzrange(start_at, end_at, '[)') WITH &&)" +
			" WHERE (status = 'APPROVED')",
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			return fmt.Errorf("create overlap constraint: %w", err)
		}
	}
	return nil
}
