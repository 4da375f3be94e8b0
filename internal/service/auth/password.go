// Package auth holds the credential primitives: password hashing, the
// password policy applied at registration, and bearer token issuing.
package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	"newspaper-agency/internal/domain/entity"
)

// Hasher turns passwords into stored hashes and back into a yes/no.
type Hasher interface {
	Hash(password string) (string, error)
	// Compare returns entity.ErrInvalidCredentials on mismatch.
	Compare(hash, password string) error
}

// BcryptHasher implements Hasher with golang.org/x/crypto/bcrypt.
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher using bcrypt.DefaultCost.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{Cost: bcrypt.DefaultCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) || errors.Is(err, bcrypt.ErrHashTooShort) {
		return entity.ErrInvalidCredentials
	}
	return err
}

// DefaultMinPasswordLength is used when no configuration overrides it.
const DefaultMinPasswordLength = 8

// DefaultWeakPasswords are rejected regardless of length.
var DefaultWeakPasswords = []string{
	"password",
	"password1",
	"password123",
	"12345678",
	"123456789",
	"1234567890",
	"qwertyuiop",
	"iloveyou",
	"sunshine",
	"princess",
	"football",
	"baseball",
	"welcome1",
	"letmein1",
	"admin123",
	"trustno1",
	"superman",
	"starwars",
}

// PasswordPolicy validates a new password.
type PasswordPolicy struct {
	MinLength     int
	WeakPasswords []string
}

// DefaultPasswordPolicy returns the built-in policy.
func DefaultPasswordPolicy() PasswordPolicy {
	return PasswordPolicy{MinLength: DefaultMinPasswordLength, WeakPasswords: DefaultWeakPasswords}
}

// Check adds every violation to v under "password" or "password_confirm".
func (p PasswordPolicy) Check(v *entity.ValidationErrors, username, password, confirm string) {
	if password == "" {
		v.Add("password", "this field is required")
		return
	}
	if password != confirm {
		v.Add("password_confirm", "the two password fields didn't match")
	}

	minLength := p.MinLength
	if minLength <= 0 {
		minLength = DefaultMinPasswordLength
	}
	if utf8.RuneCountInString(password) < minLength {
		v.Add("password", fmt.Sprintf("must contain at least %d characters", minLength))
	}
	if allDigits(password) {
		v.Add("password", "cannot be entirely numeric")
	}

	lower := strings.ToLower(password)
	for _, weak := range p.WeakPasswords {
		if lower == strings.ToLower(weak) {
			v.Add("password", "is too common")
			break
		}
	}
	if username != "" && strings.EqualFold(strings.TrimSpace(username), password) {
		v.Add("password", "is too similar to the username")
	}
}

func allDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}
