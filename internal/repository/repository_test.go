package repository

import (
	"testing"

	"github.com/codedocs/board-manager/internal/models"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	// A single connection keeps every query on the same in-memory
	// database and serializes concurrent writers.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	err = db.AutoMigrate(
		&models.User{},
		&models.Board{},
		&models.UserBoardAccess{},
		&models.Column{},
		&models.Node{},
	)
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()

	user := &models.User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "hash",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestBoard(t *testing.T, db *gorm.DB, boardType models.BoardType) *models.Board {
	t.Helper()

	board := &models.Board{
		Name:       "Test Board",
		BoardType:  boardType,
		Prefix:     "tstbd",
		LinkAccess: models.AccessEditor,
	}
	require.NoError(t, db.Create(board).Error)
	return board
}
