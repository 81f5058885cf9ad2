package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"yamdb/internal/domain"
)

const uniqueViolation = "23505"

// translate maps driver and gorm errors onto the domain kinds.
// A unique violation becomes conflict, which callers pass in so the
// client learns which rule was broken.
func translate(op string, err error, conflict error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	case conflict != nil && isUniqueViolation(err):
		return conflict
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// violatedConstraint returns the index name postgres reported, or "".
func violatedConstraint(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.ConstraintName
	}
	return ""
}

// userConflict picks between the username and email rules for users.
func userConflict(err error) error {
	if strings.Contains(violatedConstraint(err), "email") {
		return domain.ErrEmailTaken
	}
	return domain.ErrUsernameTaken
}

func offset(page, pageSize int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * pageSize
}
