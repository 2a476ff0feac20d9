package infra

import (
	"context"
	"fmt"

	"proveedores/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDatabase opens a GORM handle backed by pgx. The first connection is
// made lazily so the service can start while Postgres is still down;
// TranslateError maps unique violations to gorm.ErrDuplicatedKey.
func NewDatabase(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Silent),
		TranslateError:       true,
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return db, nil
}

// Migrate creates or updates the supplier tables and their indexes
// (unique ruc; nombre, estado, estado_entrega, category name).
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(&model.Proveedor{}, &model.CategoriaProveedor{}); err != nil {
		return fmt.Errorf("AutoMigrate: %w", err)
	}
	return nil
}
