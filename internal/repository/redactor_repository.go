package repository

import (
	"context"

	"newspaper-agency/internal/domain/entity"
)

type RedactorRepository interface {
	// ListPage returns one page of redactors ordered by username, id.
	ListPage(ctx context.Context, filters RedactorFilters, offset, limit int) ([]*entity.Redactor, int64, error)
	// Get returns the redactor with its permissions, or (nil, nil) if missing.
	Get(ctx context.Context, id int64) (*entity.Redactor, error)
	// GetByUsername returns (nil, nil) if no account has that username.
	GetByUsername(ctx context.Context, username string) (*entity.Redactor, error)
	// ExistsByUsername reports whether another account (id != excludeID) uses username.
	ExistsByUsername(ctx context.Context, username string, excludeID int64) (bool, error)
	// MissingIDs returns the ids that do not belong to any redactor.
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
	Count(ctx context.Context) (int64, error)
	// Create stores the account and its permissions atomically and sets its ID.
	Create(ctx context.Context, redactor *entity.Redactor) error
	// Update rewrites profile fields and the password hash.
	Update(ctx context.Context, redactor *entity.Redactor) error
	// SetPermissions replaces the permission set of a redactor.
	SetPermissions(ctx context.Context, id int64, perms entity.PermissionSet) error
	// Delete removes the account and detaches it from every newspaper it
	// published. Newspapers are kept. Returns entity.ErrNotFound when no row matched.
	Delete(ctx context.Context, id int64) error
}
