package db

import (
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	config "github.com/alighauridev/ASE-Server/configs"
	"github.com/alighauridev/ASE-Server/internal/models"
)

// Connect opens the Postgres connection and migrates the schema.
// TranslateError lets unique-constraint violations surface as
// gorm.ErrDuplicatedKey, which the order service relies on for
// duplicate-payment rejection.
func Connect(cfg config.DBConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.Host,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.Port,
	)

	conn, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to DB: %w", err)
	}

	if err := AutoMigrate(conn); err != nil {
		return nil, err
	}

	return conn, nil
}

func AutoMigrate(conn *gorm.DB) error {
	err := conn.AutoMigrate(
		&models.User{},
		&models.Product{},
		&models.Order{},
		&models.OrderItem{},
	)
	if err != nil {
		return fmt.Errorf("failed to migrate DB: %w", err)
	}
	return nil
}
