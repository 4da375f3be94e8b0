package entity

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(i int) *int { return &i }

func TestRedactor_Validate(t *testing.T) {
	tests := []struct {
		name       string
		redactor   Redactor
		wantFields []string
	}{
		{
			name:     "valid",
			redactor: Redactor{Username: "alice", Email: "alice@example.com", YearsOfExperience: intPtr(3)},
		},
		{
			name:     "allowed punctuation",
			redactor: Redactor{Username: "a.b+c-d_e@f"},
		},
		{
			name:       "missing username",
			redactor:   Redactor{Username: "  "},
			wantFields: []string{"username"},
		},
		{
			name:       "username with space",
			redactor:   Redactor{Username: "al ice"},
			wantFields: []string{"username"},
		},
		{
			name:       "too long names",
			redactor:   Redactor{Username: "bob", FirstName: strings.Repeat("x", MaxNameLength+1), LastName: strings.Repeat("y", MaxNameLength+1)},
			wantFields: []string{"first_name", "last_name"},
		},
		{
			name:       "bad email and negative experience",
			redactor:   Redactor{Username: "bob", Email: "not-an-email", YearsOfExperience: intPtr(-1)},
			wantFields: []string{"email", "years_of_experience"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := tt.redactor
			err := r.Validate()
			if len(tt.wantFields) == 0 {
				require.NoError(t, err)
				return
			}
			var v *ValidationErrors
			require.True(t, errors.As(err, &v))
			assert.Equal(t, tt.wantFields, v.Fields())
		})
	}
}

func TestRedactor_StringAndFullName(t *testing.T) {
	r := &Redactor{Username: "jdoe", FirstName: "John", LastName: "Doe"}
	assert.Equal(t, "jdoe", r.String())
	assert.Equal(t, "John Doe", r.FullName())
	assert.Equal(t, "Doe", (&Redactor{LastName: "Doe"}).FullName())
}

func TestPermissions(t *testing.T) {
	p, err := ParsePermission(" Topics.Manage ")
	require.NoError(t, err)
	assert.Equal(t, PermManageTopics, p)

	_, err = ParsePermission("topics.mange")
	assert.Error(t, err)

	set := NewPermissionSet(PermDeleteAnyRedactor, PermManageTopics, PermManageTopics)
	assert.Equal(t, PermissionSet{PermDeleteAnyRedactor, PermManageTopics}, set)
	assert.True(t, set.Has(PermManageTopics))
	assert.False(t, set.Has(PermDeleteAnyNewspaper))

	set = set.With(PermDeleteAnyNewspaper).Without(PermDeleteAnyRedactor)
	assert.Equal(t, []string{"newspapers.delete_any", "topics.manage"}, set.Strings())
}

func TestRole_Permissions(t *testing.T) {
	r, err := ParseRole("Moderator")
	require.NoError(t, err)
	perms := r.Permissions()
	for _, p := range AllPermissions() {
		assert.True(t, perms.Has(p), p)
	}

	_, err = ParseRole("superuser")
	assert.Error(t, err)
}
