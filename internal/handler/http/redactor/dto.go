// Package redactor provides HTTP handlers for the redactor endpoints,
// including self sign-up.
package redactor

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/newspaper"
	"newspaper-agency/internal/repository"
	"newspaper-agency/internal/service/authz"
	redactorUC "newspaper-agency/internal/usecase/redactor"
)

// Service is the redactor use case surface the handlers need.
type Service interface {
	List(ctx context.Context, actor authz.Actor, filters repository.RedactorFilters, page int) (*redactorUC.PageResult, error)
	GetProfile(ctx context.Context, id int64) (*redactorUC.Profile, error)
	Register(ctx context.Context, actor authz.Actor, in redactorUC.RegisterInput) (*redactorUC.RegisterResult, error)
	Update(ctx context.Context, actor authz.Actor, in redactorUC.UpdateInput) (*entity.Redactor, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

// DTO represents the JSON structure for redactor data transfer. The
// password hash never leaves the server.
type DTO struct {
	ID                int64     `json:"id" example:"1"`
	Username          string    `json:"username" example:"editor"`
	FirstName         string    `json:"first_name" example:"Ada"`
	LastName          string    `json:"last_name" example:"Lovelace"`
	Email             string    `json:"email" example:"ada@example.com"`
	YearsOfExperience *int      `json:"years_of_experience" example:"5"`
	Permissions       []string  `json:"permissions"`
	DateJoined        time.Time `json:"date_joined"`
}

func toDTO(r *entity.Redactor) DTO {
	perms := r.Permissions.Strings()
	if perms == nil {
		perms = []string{}
	}
	return DTO{
		ID:                r.ID,
		Username:          r.Username,
		FirstName:         r.FirstName,
		LastName:          r.LastName,
		Email:             r.Email,
		YearsOfExperience: r.YearsOfExperience,
		Permissions:       perms,
		DateJoined:        r.DateJoined,
	}
}

// ProfileDTO is a redactor with the newspapers they publish.
type ProfileDTO struct {
	DTO
	Newspapers []newspaper.DTO `json:"newspapers"`
}

// TokenDTO is returned when a sign-up also signs the caller in.
type TokenDTO struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// RegisterResponse is the body of a successful POST /redactors.
type RegisterResponse struct {
	Redactor DTO       `json:"redactor"`
	Session  *TokenDTO `json:"session,omitempty"`
}

type registerRequest struct {
	Username          string `json:"username" example:"editor"`
	Password          string `json:"password" example:"a-long-passphrase"`
	PasswordConfirm   string `json:"password_confirm" example:"a-long-passphrase"`
	FirstName         string `json:"first_name" example:"Ada"`
	LastName          string `json:"last_name" example:"Lovelace"`
	Email             string `json:"email" example:"ada@example.com"`
	YearsOfExperience *int   `json:"years_of_experience" example:"5"`
}

type updateRequest struct {
	Username          *string     `json:"username"`
	FirstName         *string     `json:"first_name"`
	LastName          *string     `json:"last_name"`
	Email             *string     `json:"email"`
	YearsOfExperience optionalInt `json:"years_of_experience" swaggertype:"integer"`
}

// optionalInt tells an absent key apart from an explicit null.
type optionalInt struct {
	Set   bool
	Value *int
}

func (o *optionalInt) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}
