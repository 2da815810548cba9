package repository

import (
	"errors"

	"gorm.io/gorm"
)

// firstOrNil runs q.First and maps a missing row to (nil, nil).
func firstOrNil[T any](q *gorm.DB) (*T, error) {
	var out T
	err := q.First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
