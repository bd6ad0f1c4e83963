package sqlstore

import (
	"strings"

	"bulletin/internal/errors"

	"gorm.io/gorm"
)

// isUniqueConstraintViolation recognises duplicate keys from both postgres (23505) and sqlite.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "sqlstate 23505") ||
		strings.Contains(msg, "duplicate key value") ||
		strings.Contains(msg, "unique constraint failed")
}

func isCheckConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrCheckConstraintViolated) {
		return true
	}

	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "sqlstate 23514") || strings.Contains(msg, "check constraint failed")
}
