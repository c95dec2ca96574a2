// Package store persists users, categories and transactions with GORM.
//
// Stores return raw gorm errors (plus the sentinels below); mapping them to
// client-facing errors is the services' job.
package store

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var (
	// ErrDuplicate reports a unique constraint violation.
	ErrDuplicate = errors.New("store: duplicate key")
	// ErrNotEmpty reports that a seed was refused because rows already exist.
	ErrNotEmpty = errors.New("store: rows already exist")
)

// translate folds driver-specific unique violations into ErrDuplicate.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicate
	}
	msg := err.Error()
	if strings.Contains(msg, "UNIQUE constraint failed") || strings.Contains(msg, "duplicate key value") {
		return ErrDuplicate
	}
	return err
}
