package store

import (
	"gorm.io/gorm"

	"financehub/internal/models"
)

// UserStore is the credential store.
type UserStore struct {
	db *gorm.DB
}

// NewUserStore creates a UserStore.
func NewUserStore(db *gorm.DB) *UserStore {
	return &UserStore{db: db}
}

// Create inserts u, returning ErrDuplicate when the email is taken.
func (s *UserStore) Create(u *models.User) error {
	return translate(s.db.Create(u).Error)
}

// FindByEmail looks a user up by exact (already normalized) email.
func (s *UserStore) FindByEmail(email string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindByID looks a user up by primary key.
func (s *UserStore) FindByID(id string) (*models.User, error) {
	var u models.User
	if err := s.db.Where("id = ?", id).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// ExistsByEmail reports whether email is already registered.
func (s *UserStore) ExistsByEmail(email string) (bool, error) {
	var count int64
	if err := s.db.Model(&models.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
