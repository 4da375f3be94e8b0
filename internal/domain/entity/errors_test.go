package entity

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Field: "email", Message: "invalid format"}
	assert.Equal(t, "validation error on field 'email': invalid format", err.Error())
}

func TestValidationErrors_CollectsFields(t *testing.T) {
	v := &ValidationErrors{}
	require.NoError(t, v.Err())
	assert.True(t, v.Empty())

	v.Add("title", "this field is required")
	v.Add("topic", "this field is required")
	v.Add("title", "must be at most 255 characters")

	err := v.Err()
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrValidationFailed))
	assert.Equal(t, []string{"title", "topic"}, v.Fields())
	assert.Len(t, v.ByField()["title"], 2)
	assert.True(t, v.Has("topic"))
	assert.False(t, v.Has("content"))

	var got *ValidationErrors
	require.True(t, errors.As(fmt.Errorf("create: %w", err), &got))
	assert.Equal(t, v, got)
}

func TestAuthenticationRequired_IsForbidden(t *testing.T) {
	assert.True(t, errors.Is(ErrAuthenticationRequired, ErrForbidden))
	assert.False(t, errors.Is(ErrForbidden, ErrAuthenticationRequired))
}

func TestWrapStore(t *testing.T) {
	assert.NoError(t, WrapStore("op", nil))
	assert.Same(t, ErrNotFound, WrapStore("op", ErrNotFound))

	cause := errors.New("connection reset")
	err := WrapStore("list topics", cause)
	var se *StoreError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "list topics", se.Op)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "store error: list topics: connection reset", err.Error())

	// already wrapped errors are returned untouched
	assert.Same(t, err, WrapStore("again", err))
}

func TestOutcome(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, "ok"},
		{"validation", NewValidationErrors("name", "required"), "validation"},
		{"unauthenticated", ErrAuthenticationRequired, "unauthenticated"},
		{"forbidden", fmt.Errorf("update: %w", ErrForbidden), "forbidden"},
		{"not found", ErrNotFound, "not_found"},
		{"store", &StoreError{Op: "x", Err: errors.New("boom")}, "store"},
		{"other", errors.New("boom"), "error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Outcome(tt.err))
		})
	}
}
