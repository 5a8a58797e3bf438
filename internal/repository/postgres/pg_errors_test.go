package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"tablebook/internal/repository"
)

func TestTranslateDBErr(t *testing.T) {
	t.Parallel()

	assert.NoError(t, translateDBErr(nil))

	assert.ErrorIs(t, translateDBErr(pgx.ErrNoRows), repository.ErrNotFound)

	slotErr := &pgconn.PgError{Code: "23505", ConstraintName: slotUniqueConstraint}
	assert.ErrorIs(t, translateDBErr(slotErr), repository.ErrSlotTaken)

	emailErr := &pgconn.PgError{Code: "23505", ConstraintName: "users_email_key"}
	assert.ErrorIs(t, translateDBErr(emailErr), repository.ErrConflict)

	fkErr := &pgconn.PgError{Code: "23503"}
	assert.ErrorIs(t, translateDBErr(fkErr), repository.ErrForeignKey)

	// wrapped errors still translate
	wrapped := fmt.Errorf("query: %w", slotErr)
	assert.ErrorIs(t, translateDBErr(wrapped), repository.ErrSlotTaken)

	plain := errors.New("connection reset")
	assert.Equal(t, plain, translateDBErr(plain))
}

func TestIsRetryable(t *testing.T) {
	t.Parallel()

	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, IsRetryable(&pgconn.PgError{Code: "40P01"}))
	assert.False(t, IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsRetryable(errors.New("boom")))
}
