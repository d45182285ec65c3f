package repository

import (
	"testing"

	"inkwell/internal/database"
	"inkwell/internal/models"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("Failed to migrate database: %v", err)
	}
	return db
}

// createUser inserts a user directly, bypassing registration validation.
// The stored password is a real bcrypt hash of the given plaintext.
func createUser(t *testing.T, db *gorm.DB, username, email, password string) *models.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword(passwordKey(password), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{Username: username, Email: email, Password: string(hashed)}
	require.NoError(t, db.Create(user).Error)
	return user
}
