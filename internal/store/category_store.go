package store

import (
	"gorm.io/gorm"

	"financehub/internal/models"
)

// CategoryStore persists per-user categories.
type CategoryStore struct {
	db *gorm.DB
}

// NewCategoryStore creates a CategoryStore.
func NewCategoryStore(db *gorm.DB) *CategoryStore {
	return &CategoryStore{db: db}
}

// ListForUser returns userID's categories in insertion order.
func (s *CategoryStore) ListForUser(userID string) ([]models.UserCategory, error) {
	var cats []models.UserCategory
	err := s.db.Where("user_id = ?", userID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&cats).Error
	return cats, err
}

// ReplaceAll deletes every category of userID and inserts cats in one
// database transaction, so readers never see an empty set mid-replace.
func (s *CategoryStore) ReplaceAll(userID string, cats []models.UserCategory) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Unscoped().Where("user_id = ?", userID).Delete(&models.UserCategory{}).Error; err != nil {
			return err
		}
		if len(cats) == 0 {
			return nil
		}
		for i := range cats {
			cats[i].UserID = userID
		}
		return tx.Create(&cats).Error
	})
}

// SeedIfEmpty inserts cats for userID only when the user has no categories
// yet, returning ErrNotEmpty otherwise. Check and insert share a transaction.
func (s *CategoryStore) SeedIfEmpty(userID string, cats []models.UserCategory) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.UserCategory{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return ErrNotEmpty
		}
		if len(cats) == 0 {
			return nil
		}
		return tx.Create(&cats).Error
	})
}
