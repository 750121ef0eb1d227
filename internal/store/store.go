package store

import (
	"errors"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"

	chatmodel "github.com/manasmitra/backend/internal/model/chat"
	usermodel "github.com/manasmitra/backend/internal/model/user"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// Open connects to MySQL using the provided DSN.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{})
}

// Migrate creates or updates the schema for every persisted entity.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&usermodel.User{},
		&chatmodel.Thread{},
		&chatmodel.Turn{},
	)
}
