// Package topic provides HTTP handlers for the topic endpoints.
package topic

import (
	"context"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/repository"
	"newspaper-agency/internal/service/authz"
	topicUC "newspaper-agency/internal/usecase/topic"
)

// Service is the topic use case surface the handlers need.
type Service interface {
	List(ctx context.Context, actor authz.Actor, filters repository.TopicFilters, page int) (*topicUC.PageResult, error)
	Get(ctx context.Context, id int64) (*entity.Topic, error)
	Create(ctx context.Context, actor authz.Actor, in topicUC.CreateInput) (*entity.Topic, error)
	Update(ctx context.Context, actor authz.Actor, in topicUC.UpdateInput) (*entity.Topic, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) (int64, error)
}

// DTO represents the JSON structure for topic data transfer.
type DTO struct {
	ID   int64  `json:"id" example:"1"`
	Name string `json:"name" example:"Technology"`
}

func toDTO(t *entity.Topic) DTO {
	return DTO{ID: t.ID, Name: t.Name}
}

type writeRequest struct {
	Name *string `json:"name" example:"Technology"`
}
