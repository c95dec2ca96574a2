package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "financehub/internal/errors"
)

// storeError maps a store failure onto the error taxonomy. A missing row
// becomes notFound, anything else a generic store error.
func storeError(err error, notFound *apperrors.AppError) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return apperrors.Wrap(apperrors.ErrStore, err)
}
