// Package redactor provides the lifecycle use cases of redactor accounts:
// self sign-up with automatic sign-in, profile maintenance, login and the
// permission grants used by the admin CLI.
package redactor

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/observability/logging"
	"newspaper-agency/internal/observability/metrics"
	"newspaper-agency/internal/repository"
	"newspaper-agency/internal/service/auth"
	"newspaper-agency/internal/service/authz"
	"newspaper-agency/internal/usecase/observe"
)

const kind = string(authz.Redactor)

const msgUsernameTaken = "a redactor with that username already exists"

// PublishedLookup lists the newspapers credited to a redactor.
type PublishedLookup interface {
	ListByPublisher(ctx context.Context, redactorID int64) ([]*entity.Newspaper, error)
}

// TokenIssuer signs bearer tokens for a signed-in redactor.
type TokenIssuer interface {
	Issue(redactorID int64, username string) (auth.Token, error)
}

// RegisterInput is the sign-up form.
type RegisterInput struct {
	Username          string
	Password          string
	PasswordConfirm   string
	FirstName         string
	LastName          string
	Email             string
	YearsOfExperience *int
}

// SessionGrant tells the caller that the new account is now signed in.
type SessionGrant struct {
	RedactorID int64
	Token      auth.Token
}

// RegisterResult is the outcome of a registration. Session is set only
// for self sign-up; an account manager registering someone else stays
// signed in as themselves.
type RegisterResult struct {
	Redactor *entity.Redactor
	Session  *SessionGrant
}

// UpdateInput represents the editable profile fields. Fields with nil
// values will not be updated. ClearYearsOfExperience unsets the value.
type UpdateInput struct {
	ID                     int64
	Username               *string
	FirstName              *string
	LastName               *string
	Email                  *string
	YearsOfExperience      *int
	ClearYearsOfExperience bool
}

// Profile is a redactor with the newspapers they publish.
type Profile struct {
	Redactor   *entity.Redactor
	Newspapers []*entity.Newspaper
}

// LoginResult is a verified account and its fresh token.
type LoginResult struct {
	Redactor *entity.Redactor
	Token    auth.Token
}

// PageResult is one page of redactors.
type PageResult struct {
	Data       []*entity.Redactor
	Pagination pagination.Metadata
}

// Service provides redactor management use cases.
type Service struct {
	Repo       repository.RedactorRepository
	Newspapers PublishedLookup
	Gate       *authz.Gate
	Hasher     auth.Hasher
	Policy     auth.PasswordPolicy
	Tokens     TokenIssuer
	PageSize   int
	Clock      func() time.Time
}

func (s *Service) gate() *authz.Gate {
	if s.Gate == nil {
		return authz.New()
	}
	return s.Gate
}

func (s *Service) pageSize() int {
	if s.PageSize <= 0 {
		return pagination.DefaultPageSizes().Redactors
	}
	return s.PageSize
}

func (s *Service) hasher() auth.Hasher {
	if s.Hasher == nil {
		return auth.NewBcryptHasher()
	}
	return s.Hasher
}

func (s *Service) policy() auth.PasswordPolicy {
	if s.Policy.MinLength == 0 && s.Policy.WeakPasswords == nil {
		return auth.DefaultPasswordPolicy()
	}
	return s.Policy
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// List returns one page of redactors ordered by username.
func (s *Service) List(ctx context.Context, actor authz.Actor, filters repository.RedactorFilters, page int) (_ *PageResult, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.List), attribute.Int("page", page))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.List, authz.Redactor, nil); err != nil {
		return nil, err
	}
	params := pagination.NewParams(page, s.pageSize())
	if err := params.Validate(); err != nil {
		pagination.RecordError("validation")
		return nil, err
	}
	pagination.RecordRequest(kind, page)

	start := time.Now()
	redactors, total, err := s.Repo.ListPage(ctx, filters, params.Offset(), params.Limit)
	if err != nil {
		pagination.RecordError("store")
		return nil, entity.WrapStore("list redactors", err)
	}
	if len(redactors) == 0 && total > 0 {
		pagination.RecordEmptyPage(kind)
	}
	pagination.LogPage(logging.FromContext(ctx), kind, params, len(redactors), total, time.Since(start))

	return &PageResult{Data: redactors, Pagination: pagination.BuildMetadata(params, total)}, nil
}

// Get returns the redactor or entity.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (_ *entity.Redactor, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Get), attribute.Int64("id", id))
	defer func() { err = op.End(err) }()
	return s.load(ctx, id)
}

// GetProfile returns the redactor together with the newspapers they publish.
func (s *Service) GetProfile(ctx context.Context, id int64) (_ *Profile, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Get), attribute.Int64("id", id))
	defer func() { err = op.End(err) }()

	r, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	papers, err := s.Newspapers.ListByPublisher(ctx, r.ID)
	if err != nil {
		return nil, entity.WrapStore("list published newspapers", err)
	}
	if papers == nil {
		papers = []*entity.Newspaper{}
	}
	return &Profile{Redactor: r, Newspapers: papers}, nil
}

func (s *Service) load(ctx context.Context, id int64) (*entity.Redactor, error) {
	if id <= 0 {
		return nil, entity.ErrNotFound
	}
	r, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, entity.WrapStore("get redactor", err)
	}
	if r == nil {
		return nil, entity.ErrNotFound
	}
	return r, nil
}

// Count returns the number of accounts.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, entity.WrapStore("count redactors", err)
	}
	metrics.UpdateEntitiesTotal(kind, n)
	return n, nil
}

// Register creates an account. Anonymous visitors sign themselves up and
// come back signed in; holders of redactors.delete_any may register
// accounts for others.
func (s *Service) Register(ctx context.Context, actor authz.Actor, in RegisterInput) (_ *RegisterResult, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Register))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Register, authz.Redactor, nil); err != nil {
		return nil, err
	}
	r, err := s.create(ctx, in, nil)
	if err != nil {
		return nil, err
	}

	self := !actor.Authenticated()
	metrics.RecordRegistration(self)
	result := &RegisterResult{Redactor: r}
	if self {
		grant := &SessionGrant{RedactorID: r.ID}
		if s.Tokens != nil {
			if grant.Token, err = s.Tokens.Issue(r.ID, r.Username); err != nil {
				return nil, err
			}
		}
		result.Session = grant
	}
	logging.FromContext(ctx).Info("redactor registered",
		slog.Int64("redactor_id", r.ID),
		slog.String("username", r.Username),
		slog.Bool("self_service", self))
	return result, nil
}

// CreateAccount registers an account with perms without an actor check.
// It backs the admin CLI, which runs with direct store access.
func (s *Service) CreateAccount(ctx context.Context, in RegisterInput, perms entity.PermissionSet) (_ *entity.Redactor, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Create))
	defer func() { err = op.End(err) }()

	r, err := s.create(ctx, in, perms)
	if err != nil {
		return nil, err
	}
	metrics.RecordRegistration(false)
	return r, nil
}

func (s *Service) create(ctx context.Context, in RegisterInput, perms entity.PermissionSet) (*entity.Redactor, error) {
	r := &entity.Redactor{
		Username:          in.Username,
		FirstName:         in.FirstName,
		LastName:          in.LastName,
		Email:             in.Email,
		YearsOfExperience: in.YearsOfExperience,
		IsActive:          true,
		Permissions:       perms,
		DateJoined:        s.now(),
	}
	v := &entity.ValidationErrors{}
	if err := collect(v, r.Validate()); err != nil {
		return nil, err
	}
	s.policy().Check(v, r.Username, in.Password, in.PasswordConfirm)
	if err := s.checkUsername(ctx, v, r.Username, 0); err != nil {
		return nil, err
	}
	if err := v.Err(); err != nil {
		return nil, err
	}

	hash, err := s.hasher().Hash(in.Password)
	if err != nil {
		return nil, err
	}
	r.PasswordHash = hash
	if err := s.Repo.Create(ctx, r); err != nil {
		return nil, entity.WrapStore("create redactor", err)
	}
	return r, nil
}

// Update edits a redactor's own profile. The password is not changed here.
func (s *Service) Update(ctx context.Context, actor authz.Actor, in UpdateInput) (_ *entity.Redactor, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Update), attribute.Int64("id", in.ID))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Update, authz.Redactor, nil); err != nil {
		return nil, err
	}
	r, err := s.load(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := s.gate().Check(actor, authz.Update, authz.Redactor, &authz.Target{ID: r.ID}); err != nil {
		return nil, err
	}

	if in.Username != nil {
		r.Username = *in.Username
	}
	if in.FirstName != nil {
		r.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		r.LastName = *in.LastName
	}
	if in.Email != nil {
		r.Email = *in.Email
	}
	switch {
	case in.ClearYearsOfExperience:
		r.YearsOfExperience = nil
	case in.YearsOfExperience != nil:
		years := *in.YearsOfExperience
		r.YearsOfExperience = &years
	}

	v := &entity.ValidationErrors{}
	if err := collect(v, r.Validate()); err != nil {
		return nil, err
	}
	if err := s.checkUsername(ctx, v, r.Username, r.ID); err != nil {
		return nil, err
	}
	if err := v.Err(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, r); err != nil {
		return nil, entity.WrapStore("update redactor", err)
	}
	return r, nil
}

// Delete removes an account. The redactor is detached from every newspaper
// they published; the newspapers stay.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) (err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Delete), attribute.Int64("id", id))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Delete, authz.Redactor, nil); err != nil {
		return err
	}
	r, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate().Check(actor, authz.Delete, authz.Redactor, &authz.Target{ID: r.ID}); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return entity.WrapStore("delete redactor", err)
	}
	logging.FromContext(ctx).Info("redactor deleted",
		slog.Int64("redactor_id", id),
		slog.String("username", r.Username),
		slog.Int64("actor_id", actor.RedactorID))
	return nil
}

// Authenticate checks a username and password. Unknown, inactive and
// mismatching accounts all yield entity.ErrInvalidCredentials.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*entity.Redactor, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, entity.ErrInvalidCredentials
	}
	r, err := s.Repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, entity.WrapStore("get redactor by username", err)
	}
	if r == nil || !r.IsActive {
		return nil, entity.ErrInvalidCredentials
	}
	if err := s.hasher().Compare(r.PasswordHash, password); err != nil {
		if errors.Is(err, entity.ErrInvalidCredentials) {
			return nil, err
		}
		return nil, entity.WrapStore("compare password", err)
	}
	return r, nil
}

// Login authenticates and issues a token.
func (s *Service) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	if s.Tokens == nil {
		return nil, errors.New("login: no token issuer configured")
	}
	r, err := s.Authenticate(ctx, username, password)
	if err != nil {
		logging.FromContext(ctx).Info("login failed", slog.String("username", username))
		return nil, err
	}
	token, err := s.Tokens.Issue(r.ID, r.Username)
	if err != nil {
		return nil, err
	}
	return &LoginResult{Redactor: r, Token: token}, nil
}

// ResolveActor loads the current permissions of the token holder. A
// deleted or deactivated account yields entity.ErrAuthenticationRequired.
func (s *Service) ResolveActor(ctx context.Context, redactorID int64) (authz.Actor, error) {
	if redactorID <= 0 {
		return authz.Anonymous(), entity.ErrAuthenticationRequired
	}
	r, err := s.Repo.Get(ctx, redactorID)
	if err != nil {
		return authz.Anonymous(), entity.WrapStore("resolve actor", err)
	}
	if r == nil || !r.IsActive {
		return authz.Anonymous(), entity.ErrAuthenticationRequired
	}
	return authz.ActorFor(r), nil
}

// Grant adds perms to the account named username and returns the new set.
func (s *Service) Grant(ctx context.Context, username string, perms ...entity.Permission) (entity.PermissionSet, error) {
	return s.changePermissions(ctx, username, func(set entity.PermissionSet) entity.PermissionSet {
		return set.With(perms...)
	})
}

// Revoke removes perms from the account named username and returns the new set.
func (s *Service) Revoke(ctx context.Context, username string, perms ...entity.Permission) (entity.PermissionSet, error) {
	return s.changePermissions(ctx, username, func(set entity.PermissionSet) entity.PermissionSet {
		return set.Without(perms...)
	})
}

func (s *Service) changePermissions(ctx context.Context, username string, change func(entity.PermissionSet) entity.PermissionSet) (entity.PermissionSet, error) {
	r, err := s.Repo.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return nil, entity.WrapStore("get redactor by username", err)
	}
	if r == nil {
		return nil, entity.ErrNotFound
	}
	next := change(r.Permissions)
	if err := s.Repo.SetPermissions(ctx, r.ID, next); err != nil {
		return nil, entity.WrapStore("set permissions", err)
	}
	logging.FromContext(ctx).Info("permissions changed",
		slog.String("username", r.Username),
		slog.Any("permissions", next.Strings()))
	return next, nil
}

func (s *Service) checkUsername(ctx context.Context, v *entity.ValidationErrors, username string, excludeID int64) error {
	if v.Has("username") {
		return nil
	}
	taken, err := s.Repo.ExistsByUsername(ctx, username, excludeID)
	if err != nil {
		return entity.WrapStore("check username", err)
	}
	if taken {
		v.Add("username", msgUsernameTaken)
	}
	return nil
}

// collect merges field failures from err into v and returns any other error.
func collect(v *entity.ValidationErrors, err error) error {
	if err == nil {
		return nil
	}
	var fields *entity.ValidationErrors
	if !errors.As(err, &fields) {
		return err
	}
	v.Merge(fields)
	return nil
}
