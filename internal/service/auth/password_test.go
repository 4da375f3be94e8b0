package auth

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"newspaper-agency/internal/domain/entity"
)

func TestBcryptHasher(t *testing.T) {
	h := &BcryptHasher{Cost: bcrypt.MinCost}

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Compare(hash, "correct horse"))
	assert.True(t, errors.Is(h.Compare(hash, "wrong horse"), entity.ErrInvalidCredentials))
	assert.True(t, errors.Is(h.Compare("", "anything"), entity.ErrInvalidCredentials))
}

func TestPasswordPolicy_Check(t *testing.T) {
	tests := []struct {
		name     string
		username string
		password string
		confirm  string
		fields   []string
	}{
		{"valid", "ada", "analytical-engine", "analytical-engine", nil},
		{"missing", "ada", "", "", []string{"password"}},
		{"mismatch", "ada", "analytical-engine", "analytical-engin", []string{"password_confirm"}},
		{"too short", "ada", "a1b2c3", "a1b2c3", []string{"password"}},
		{"numeric", "ada", "9081726354", "9081726354", []string{"password"}},
		{"common", "ada", "Password123", "Password123", []string{"password"}},
		{"same as username", "lovelace1815", "lovelace1815", "lovelace1815", []string{"password"}},
	}
	policy := DefaultPasswordPolicy()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := &entity.ValidationErrors{}
			policy.Check(v, tt.username, tt.password, tt.confirm)
			if tt.fields == nil {
				assert.True(t, v.Empty(), "unexpected errors: %v", v)
				return
			}
			assert.Equal(t, tt.fields, v.Fields())
		})
	}
}

func TestPasswordPolicy_ConfiguredLength(t *testing.T) {
	v := &entity.ValidationErrors{}
	PasswordPolicy{MinLength: 12}.Check(v, "ada", "short-but-ok", "short-but-ok")
	assert.True(t, v.Empty())

	v = &entity.ValidationErrors{}
	PasswordPolicy{MinLength: 16}.Check(v, "ada", "short-but-ok", "short-but-ok")
	require.Len(t, v.ByField()["password"], 1)
	assert.Equal(t, "must contain at least 16 characters", v.ByField()["password"][0])
}
