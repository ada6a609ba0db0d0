package util

import (
	"errors"
	"net/http"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorKindsCarryCodesAndStatuses(t *testing.T) {
	cases := []struct {
		err    error
		code   string
		status int
	}{
		{NewNotFound("ticket", nil), "NOT_FOUND", http.StatusNotFound},
		{NewInvalidStatus("Reopened"), "INVALID_STATUS", http.StatusBadRequest},
		{NewIllegalTransition("cannot close", nil), "ILLEGAL_TRANSITION", http.StatusBadRequest},
		{NewMissingResolution("resolution type required", nil), "MISSING_RESOLUTION", http.StatusBadRequest},
		{NewForbidden("locked"), "FORBIDDEN", http.StatusForbidden},
		{NewConflict("duplicate ticket number", nil), "CONFLICT", http.StatusConflict},
		{NewUnauthorized("no token"), "UNAUTHORIZED", http.StatusUnauthorized},
	}

	for _, tc := range cases {
		de := ToDomainError(tc.err)
		require.NotNil(t, de)
		assert.Equal(t, tc.code, de.Code)
		assert.Equal(t, tc.status, de.HTTPStatus)
	}
}

func TestToDomainErrorMapsNoRows(t *testing.T) {
	de := ToDomainError(pgx.ErrNoRows)
	require.NotNil(t, de)
	assert.Equal(t, "NOT_FOUND", de.Code)
}

func TestToDomainErrorWrapsUnknown(t *testing.T) {
	de := ToDomainError(errors.New("boom"))
	require.NotNil(t, de)
	assert.Equal(t, "INTERNAL_ERROR", de.Code)
	assert.Equal(t, http.StatusInternalServerError, de.HTTPStatus)
}

func TestDomainErrorUnwrap(t *testing.T) {
	inner := errors.New("inner")
	de := ToDomainError(inner)
	assert.ErrorIs(t, de, inner)
}
