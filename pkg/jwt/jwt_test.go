package jwt

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestManager_GenerateAndValidate(t *testing.T) {
	m := NewManager("test-secret", time.Hour)
	id := uuid.New()

	token, err := m.GenerateToken(id, "João Silva", "barber", []string{"transaction:create"}, "v1")
	require.NoError(t, err)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, id, claims.ProfileID)
	assert.Equal(t, "barber", claims.Role)
	assert.Equal(t, []string{"transaction:create"}, claims.Privileges)
	assert.Equal(t, "v1", claims.TokenVersion)
}

func TestManager_RejectsOtherSecret(t *testing.T) {
	token, err := NewManager("a", time.Hour).GenerateToken(uuid.New(), "x", "admin", nil, "v")
	require.NoError(t, err)

	_, err = NewManager("b", time.Hour).ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_RejectsExpired(t *testing.T) {
	m := NewManager("s", -time.Minute)
	token, err := m.GenerateToken(uuid.New(), "x", "admin", nil, "v")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestManager_MissingToken(t *testing.T) {
	_, err := NewManager("s", time.Hour).ValidateToken("")
	assert.ErrorIs(t, err, ErrMissingToken)
}
