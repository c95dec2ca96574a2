package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"financehub/internal/models"
)

// TaskStore persists transactions.
type TaskStore struct {
	db *gorm.DB
}

// NewTaskStore creates a TaskStore.
func NewTaskStore(db *gorm.DB) *TaskStore {
	return &TaskStore{db: db}
}

// Create inserts t and fills its id and timestamps.
func (s *TaskStore) Create(t *models.Task) error {
	return s.db.Create(t).Error
}

// List returns every transaction, newest date first.
func (s *TaskStore) List() ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Order("date DESC").Order("created_at DESC").Find(&tasks).Error
	return tasks, err
}

// Get returns the transaction with id or gorm.ErrRecordNotFound.
func (s *TaskStore) Get(id string) (*models.Task, error) {
	var t models.Task
	if err := s.db.Where("id = ?", id).First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// Update overwrites every editable field of the row t.ID, zero values
// included, and reports whether a row was touched.
func (s *TaskStore) Update(t *models.Task) (bool, error) {
	res := s.db.Model(&models.Task{Base: models.Base{ID: t.ID}}).
		Select("Category", "Description", "Amount", "Type", "Date", "User").
		Updates(t)
	return res.RowsAffected > 0, res.Error
}

// Delete removes the row id and reports whether it existed.
func (s *TaskStore) Delete(id string) (bool, error) {
	res := s.db.Where("id = ?", id).Delete(&models.Task{})
	return res.RowsAffected > 0, res.Error
}

// BulkInsert inserts tasks one statement at a time. A failing row does not
// stop the rest; the failures are joined into the returned error.
func (s *TaskStore) BulkInsert(tasks []models.Task) (int, error) {
	var (
		inserted int
		errs     []error
	)
	for i := range tasks {
		if err := s.db.Create(&tasks[i]).Error; err != nil {
			errs = append(errs, fmt.Errorf("row %d: %w", i, err))
			continue
		}
		inserted++
	}
	return inserted, errors.Join(errs...)
}
