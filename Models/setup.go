package Models

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/AnmolGhill/Halo/Config"
)

var DB *gorm.DB

// ConnectDataBase opens the postgres connection and migrates the history
// tables. Identity lives in the identity provider; only conversation and
// symptom history are stored here.
func ConnectDataBase(cfg *Config.Config) error {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	DB = db

	return migrate()
}

// ConnectTestDataBase swaps in an in-memory sqlite database. Tests only.
func ConnectTestDataBase() error {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return fmt.Errorf("connect test database: %w", err)
	}
	DB = db

	return migrate()
}

func migrate() error {
	if err := DB.AutoMigrate(&Conversation{}); err != nil {
		return err
	}
	if err := DB.AutoMigrate(&ChatMessage{}); err != nil {
		return err
	}
	return DB.AutoMigrate(&SymptomRecord{})
}
