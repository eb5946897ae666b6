package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "task-board-system.com/task-board-system/internal/errors"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", "taskboard")

	token, err := m.Generate("cli", time.Hour)
	require.NoError(t, err)

	claims, err := m.Validate(token)
	require.NoError(t, err)
	assert.Equal(t, "cli", claims.Subject)
	assert.Equal(t, "taskboard", claims.Issuer)
}

func TestTokenManager_Rejects(t *testing.T) {
	m := NewTokenManager("secret", "taskboard")

	expired, err := m.Generate("cli", -time.Minute)
	require.NoError(t, err)
	_, err = m.Validate(expired)
	assert.ErrorIs(t, err, apperrors.ErrExpiredToken)

	foreign, err := NewTokenManager("other-secret", "taskboard").Generate("cli", time.Hour)
	require.NoError(t, err)
	_, err = m.Validate(foreign)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	otherIssuer, err := NewTokenManager("secret", "someone-else").Generate("cli", time.Hour)
	require.NoError(t, err)
	_, err = m.Validate(otherIssuer)
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)

	_, err = m.Validate("not.a.token")
	assert.ErrorIs(t, err, apperrors.ErrInvalidToken)
}
