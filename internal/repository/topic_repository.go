package repository

import (
	"context"

	"newspaper-agency/internal/domain/entity"
)

type TopicRepository interface {
	// ListPage returns one page of topics ordered by name, id together with
	// the total number of topics matching filters.
	ListPage(ctx context.Context, filters TopicFilters, offset, limit int) ([]*entity.Topic, int64, error)
	// Get returns (nil, nil) if the topic does not exist.
	Get(ctx context.Context, id int64) (*entity.Topic, error)
	Count(ctx context.Context) (int64, error)
	// Create stores the topic and sets its ID.
	Create(ctx context.Context, topic *entity.Topic) error
	// Update returns entity.ErrNotFound when no row matched.
	Update(ctx context.Context, topic *entity.Topic) error
	// Delete removes the topic and every newspaper filed under it in one
	// transaction. It returns the number of newspapers removed, or
	// entity.ErrNotFound when the topic did not exist.
	Delete(ctx context.Context, id int64) (int64, error)
}
