package service

import (
	"errors"
	"fmt"

	"github.com/lshigami/mybeing/internal/apperror"
	"gorm.io/gorm"
)

// repoErr turns a missing record into NOT_FOUND and wraps anything else as an internal error.
func repoErr(err error, notFoundMsg, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound(notFoundMsg)
	}
	return fmt.Errorf("%s: %w", op, err)
}
