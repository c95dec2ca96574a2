package services

import (
	"errors"
	"strings"

	"github.com/badoux/checkmail"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
	"financehub/internal/logger"
	"financehub/internal/models"
	"financehub/internal/store"
)

// maxPasswordBytes is the longest input bcrypt hashes.
const maxPasswordBytes = 72

// userService handles registration and login.
type userService struct {
	users      *store.UserStore
	categories CategoryServicer
	cost       int
}

// NewUserService creates a new UserServicer. New users get their default
// categories through categories.
func NewUserService(db *gorm.DB, categories CategoryServicer) UserServicer {
	return &userService{
		users:      store.NewUserStore(db),
		categories: categories,
		cost:       bcrypt.DefaultCost,
	}
}

// Register creates a user and seeds their default categories. A seeding
// failure is logged and does not undo the registration.
func (s *userService) Register(username, email, password string) (*models.User, error) {
	username = strings.TrimSpace(username)
	email = strings.ToLower(strings.TrimSpace(email))
	if username == "" || email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "All fields are required")
	}
	if err := checkmail.ValidateFormat(email); err != nil {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid email address")
	}
	if len(password) > maxPasswordBytes {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Password must be at most 72 bytes")
	}

	exists, err := s.users.ExistsByEmail(email)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}
	if exists {
		return nil, apperrors.ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		if errors.Is(err, store.ErrDuplicate) {
			return nil, apperrors.ErrDuplicateEmail
		}
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	if s.categories != nil {
		if err := s.categories.SeedDefaults(user.ID); err != nil {
			logger.Get().Warnw("failed to seed default categories",
				"user_id", user.ID,
				"error", err,
			)
		}
	}

	return user, nil
}

// Login checks credentials. Unknown email and wrong password fail with the
// same error.
func (s *userService) Login(email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, apperrors.WithMessage(apperrors.ErrInvalidInput, "Email and password are required")
	}

	user, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, storeError(err, apperrors.ErrInvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}
	return user, nil
}

// GetUserByID retrieves a user by ID
func (s *userService) GetUserByID(id string) (*models.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		return nil, storeError(err, apperrors.ErrUserNotFound)
	}
	return user, nil
}
