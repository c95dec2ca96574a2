package services

import (
	"errors"
	"strings"

	"gorm.io/gorm"

	"financehub/internal/catalog"
	apperrors "financehub/internal/errors"
	"financehub/internal/models"
	"financehub/internal/palette"
	"financehub/internal/store"
)

// categoryService resolves per-user categories against the system catalog.
type categoryService struct {
	users      *store.UserStore
	categories *store.CategoryStore
	catalog    *catalog.Catalog
}

// NewCategoryService creates a new CategoryServicer.
func NewCategoryService(db *gorm.DB, cat *catalog.Catalog) CategoryServicer {
	return &categoryService{
		users:      store.NewUserStore(db),
		categories: store.NewCategoryStore(db),
		catalog:    cat,
	}
}

// GetCategories returns the user's categories grouped by kind. A user with no
// categories is seeded first, so the result is never empty.
func (s *categoryService) GetCategories(userID string) (*models.CategorySet, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	cats, err := s.categories.ListForUser(userID)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrStore, err)
	}

	if len(cats) == 0 {
		// Lost races with a concurrent seed surface as ErrNotEmpty; either way
		// the re-read below sees a populated set.
		if err := s.categories.SeedIfEmpty(userID, s.catalog.SeedCategories(userID)); err != nil && !errors.Is(err, store.ErrNotEmpty) {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
		if cats, err = s.categories.ListForUser(userID); err != nil {
			return nil, apperrors.Wrap(apperrors.ErrStore, err)
		}
	}

	return group(cats), nil
}

// SeedDefaults inserts the catalog's starter categories. It refuses to touch a
// user who already has categories.
func (s *categoryService) SeedDefaults(userID string) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}

	err := s.categories.SeedIfEmpty(userID, s.catalog.SeedCategories(userID))
	switch {
	case errors.Is(err, store.ErrNotEmpty):
		return apperrors.ErrCategoriesExist
	case err != nil:
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// ReplaceAll swaps the user's whole category set for categories. Entries
// without a color get the one derived from their name.
func (s *categoryService) ReplaceAll(userID string, categories []CategoryInput) error {
	if strings.TrimSpace(userID) == "" {
		return apperrors.WithMessage(apperrors.ErrInvalidInput, "User ID is required")
	}

	rows := make([]models.UserCategory, 0, len(categories))
	for _, c := range categories {
		name := strings.TrimSpace(c.Name)
		if name == "" || !c.Type.Valid() {
			return apperrors.WithMessage(apperrors.ErrInvalidInput, "Each category needs a name and a type of income or expense")
		}
		color := strings.TrimSpace(c.Color)
		if color == "" {
			color = palette.ColorFor(name)
		}
		rows = append(rows, models.UserCategory{UserID: userID, Name: name, Color: color, Type: c.Type})
	}

	if err := s.requireUser(userID); err != nil {
		return err
	}
	if err := s.categories.ReplaceAll(userID, rows); err != nil {
		return apperrors.Wrap(apperrors.ErrStore, err)
	}
	return nil
}

// Defaults returns the system description allow-lists.
func (s *categoryService) Defaults() DefaultDescriptions {
	return DefaultDescriptions{
		ExpenseDescriptions: s.catalog.Descriptions(models.KindExpense),
		IncomeDescriptions:  s.catalog.Descriptions(models.KindIncome),
	}
}

func (s *categoryService) requireUser(userID string) error {
	if _, err := s.users.FindByID(userID); err != nil {
		return storeError(err, apperrors.ErrUserNotFound)
	}
	return nil
}

func group(cats []models.UserCategory) *models.CategorySet {
	set := &models.CategorySet{
		IncomeCategories:  []models.CategoryView{},
		ExpenseCategories: []models.CategoryView{},
	}
	for _, c := range cats {
		view := models.CategoryView{ID: c.ID, Name: c.Name, Color: c.Color}
		if c.Type == models.KindIncome {
			set.IncomeCategories = append(set.IncomeCategories, view)
		} else {
			set.ExpenseCategories = append(set.ExpenseCategories, view)
		}
	}
	return set
}
