package services

import (
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"financehub/internal/catalog"
	apperrors "financehub/internal/errors"
	"financehub/internal/models"
)

// newTestUserService returns a user service that hashes at minimum cost.
func newTestUserService(db *gorm.DB) *userService {
	svc := NewUserService(db, NewCategoryService(db, catalog.Default())).(*userService)
	svc.cost = bcrypt.MinCost
	return svc
}

func assertMessage(t *testing.T, err error, want string) {
	t.Helper()
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		t.Fatalf("expected *AppError, got %T: %v", err, err)
	}
	if appErr.Message != want {
		t.Errorf("expected message %q, got %q", want, appErr.Message)
	}
}

func countRows(t *testing.T, db *gorm.DB, model interface{}) int64 {
	t.Helper()
	var n int64
	if err := db.Model(model).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}

func countCategories(t *testing.T, db *gorm.DB, userID string) int64 {
	t.Helper()
	var n int64
	if err := db.Model(&models.UserCategory{}).Where("user_id = ?", userID).Count(&n).Error; err != nil {
		t.Fatalf("count failed: %v", err)
	}
	return n
}
