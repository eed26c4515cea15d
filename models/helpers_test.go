package models

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// --- Helpers ---

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// a single connection keeps the in-memory database alive and serializes transactions
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *User {
	t.Helper()
	user := &User{
		Username: username,
		Email:    username + "@example.com",
		Password: "hash",
		IsActive: true,
	}
	require.NoError(t, NewUsersRepository(db).Create(context.Background(), user))
	return user
}

func createTestProduct(t *testing.T, db *gorm.DB, name string, price float64) *Product {
	t.Helper()
	product := &Product{
		Name:     name,
		Price:    decimal.NewFromFloat(price),
		Stock:    10,
		IsActive: true,
	}
	require.NoError(t, NewProductsRepository(db).CreateProduct(context.Background(), product))
	return product
}
