package repository

import (
	"errors"
	"fmt"

	"student_dashboard_backend/internal/util"

	"gorm.io/gorm"
)

func storageError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, util.ErrStorage, err)
}

// lookupError turns gorm's missing-record error into notFound and wraps
// anything else as a storage failure.
func lookupError(op string, err error, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return storageError(op, err)
}

func offset(page, limit int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * limit
}
