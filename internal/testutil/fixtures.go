package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"financehub/internal/models"
)

// TestPassword is the plaintext password of every fixture user.
const TestPassword = "password123"

// counter provides unique values across fixtures within a test run.
var counter atomic.Int64

func nextID() int64 {
	return counter.Add(1)
}

// CreateTestUser creates a user with a hashed password and unique email.
func CreateTestUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	email := fmt.Sprintf("user%d@test.com", nextID())
	return CreateTestUserWithEmail(t, db, email)
}

// CreateTestUserWithEmail creates a user with the given email.
func CreateTestUserWithEmail(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	user := &models.User{
		Username:     fmt.Sprintf("user%d", nextID()),
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("failed to create test user: %v", err)
	}
	return user
}

// CreateTestCategory creates a category of the given kind for userID.
func CreateTestCategory(t *testing.T, db *gorm.DB, userID string, kind models.Kind) *models.UserCategory {
	t.Helper()

	cat := &models.UserCategory{
		UserID: userID,
		Name:   fmt.Sprintf("Category %d", nextID()),
		Color:  "#336699",
		Type:   kind,
	}
	if err := db.Create(cat).Error; err != nil {
		t.Fatalf("failed to create test category: %v", err)
	}
	return cat
}

// CreateTestTask creates a transaction. The kind follows the amount sign.
func CreateTestTask(t *testing.T, db *gorm.DB, category, description, amount, date string) *models.Task {
	t.Helper()

	amt := decimal.RequireFromString(amount)
	kind := models.KindIncome
	if amt.IsNegative() {
		kind = models.KindExpense
	}
	task := &models.Task{
		Category:    category,
		Description: description,
		Amount:      amt,
		Type:        kind,
		Date:        date,
		User:        "tester",
	}
	if err := db.Create(task).Error; err != nil {
		t.Fatalf("failed to create test task: %v", err)
	}
	return task
}
