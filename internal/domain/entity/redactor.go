package entity

import (
	"net/mail"
	"time"
	"unicode"
	"unicode/utf8"
)

// Field limits for redactor accounts.
const (
	MaxUsernameLength = 150
	MaxNameLength     = 150
	MaxEmailLength    = 254
)

// Redactor is a staff account. Redactors sign in, publish newspapers and
// may hold extra permissions.
type Redactor struct {
	ID                int64
	Username          string
	FirstName         string
	LastName          string
	Email             string
	YearsOfExperience *int
	PasswordHash      string
	IsActive          bool
	Permissions       PermissionSet
	DateJoined        time.Time
}

func (r *Redactor) String() string { return r.Username }

// FullName joins first and last name.
func (r *Redactor) FullName() string {
	switch {
	case r.FirstName == "":
		return r.LastName
	case r.LastName == "":
		return r.FirstName
	default:
		return r.FirstName + " " + r.LastName
	}
}

// Validate trims profile fields and checks them. Username uniqueness and the
// password are checked by the caller.
func (r *Redactor) Validate() error {
	v := &ValidationErrors{}
	r.Username = checkText(v, "username", r.Username, true, MaxUsernameLength)
	if r.Username != "" && !ValidUsername(r.Username) {
		v.Add("username", "may contain only letters, digits and @/./+/-/_ characters")
	}
	r.FirstName = checkText(v, "first_name", r.FirstName, false, MaxNameLength)
	r.LastName = checkText(v, "last_name", r.LastName, false, MaxNameLength)
	r.Email = checkText(v, "email", r.Email, false, MaxEmailLength)
	if r.Email != "" {
		if addr, err := mail.ParseAddress(r.Email); err != nil || addr.Address != r.Email {
			v.Add("email", "must be a valid email address")
		}
	}
	if r.YearsOfExperience != nil && *r.YearsOfExperience < 0 {
		v.Add("years_of_experience", "cannot be negative")
	}
	return v.Err()
}

// ValidUsername reports whether s uses only the allowed username characters.
func ValidUsername(s string) bool {
	if s == "" || utf8.RuneCountInString(s) > MaxUsernameLength {
		return false
	}
	for _, c := range s {
		if unicode.IsLetter(c) || unicode.IsDigit(c) {
			continue
		}
		switch c {
		case '@', '.', '+', '-', '_':
			continue
		}
		return false
	}
	return true
}
