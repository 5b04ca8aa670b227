package database

import (
	"reembolsos/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM.
// TranslateError is on so a public-token collision surfaces as
// gorm.ErrDuplicatedKey instead of a raw pgx error.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&model.Reimbursement{}); err != nil {
		return nil, err
	}

	return db, nil
}
