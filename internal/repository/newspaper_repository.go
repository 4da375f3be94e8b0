package repository

import (
	"context"

	"newspaper-agency/internal/domain/entity"
)

type NewspaperRepository interface {
	// ListPage returns one page of newspapers ordered by id with their
	// publisher IDs, together with the total matching filters.
	ListPage(ctx context.Context, filters NewspaperFilters, offset, limit int) ([]*entity.Newspaper, int64, error)
	// Get returns (nil, nil) if the newspaper does not exist.
	Get(ctx context.Context, id int64) (*entity.Newspaper, error)
	// ListByPublisher returns every newspaper credited to redactorID.
	ListByPublisher(ctx context.Context, redactorID int64) ([]*entity.Newspaper, error)
	Count(ctx context.Context) (int64, error)
	// Create stores the newspaper and its publishers atomically and sets its ID.
	Create(ctx context.Context, newspaper *entity.Newspaper) error
	// Update rewrites title, content, topic and the publisher set atomically.
	// The published date is never changed. Returns entity.ErrNotFound when no
	// row matched.
	Update(ctx context.Context, newspaper *entity.Newspaper) error
	// Delete returns entity.ErrNotFound when no row matched.
	Delete(ctx context.Context, id int64) error
}
