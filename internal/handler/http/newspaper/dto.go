// Package newspaper provides HTTP handlers for the newspaper endpoints.
package newspaper

import (
	"context"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/repository"
	"newspaper-agency/internal/service/authz"
	newspaperUC "newspaper-agency/internal/usecase/newspaper"
)

// DateLayout is the wire format of published_date.
const DateLayout = "2006-01-02"

// Service is the newspaper use case surface the handlers need.
type Service interface {
	List(ctx context.Context, actor authz.Actor, filters repository.NewspaperFilters, page int) (*newspaperUC.PageResult, error)
	Get(ctx context.Context, id int64) (*entity.Newspaper, error)
	Create(ctx context.Context, actor authz.Actor, in newspaperUC.CreateInput) (*entity.Newspaper, error)
	Update(ctx context.Context, actor authz.Actor, in newspaperUC.UpdateInput) (*entity.Newspaper, error)
	Delete(ctx context.Context, actor authz.Actor, id int64) error
}

// DTO represents the JSON structure for newspaper data transfer.
type DTO struct {
	ID            int64   `json:"id" example:"1"`
	Title         string  `json:"title" example:"Tech Wonders of the Week"`
	Content       string  `json:"content" example:"A new chip was announced..."`
	PublishedDate string  `json:"published_date" example:"2026-03-14"`
	TopicID       int64   `json:"topic_id" example:"1"`
	PublisherIDs  []int64 `json:"publishers"`
}

// ToDTO converts n for the wire. A nil publisher list is encoded as [].
func ToDTO(n *entity.Newspaper) DTO {
	publishers := n.PublisherIDs
	if publishers == nil {
		publishers = []int64{}
	}
	return DTO{
		ID:            n.ID,
		Title:         n.Title,
		Content:       n.Content,
		PublishedDate: n.PublishedDate.Format(DateLayout),
		TopicID:       n.TopicID,
		PublisherIDs:  publishers,
	}
}

type writeRequest struct {
	Title        *string  `json:"title" example:"Tech Wonders of the Week"`
	Content      *string  `json:"content" example:"A new chip was announced..."`
	TopicID      *int64   `json:"topic_id" example:"1"`
	PublisherIDs *[]int64 `json:"publishers"`
}
