package database

import (
	"gorm.io/gorm"

	"github.com/invoicecreator/invoice-creator/internal/domain"
)

// Migrate materialises the tables the application reads and writes.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.LocalCredential{},
		&domain.Client{},
		&domain.Job{},
	)
}
