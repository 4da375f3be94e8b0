// Package topic provides the lifecycle use cases of topics: paginated
// search, detail, and the create/update/delete operations reserved to
// redactors allowed to manage topics.
package topic

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/observability/logging"
	"newspaper-agency/internal/observability/metrics"
	"newspaper-agency/internal/repository"
	"newspaper-agency/internal/service/authz"
	"newspaper-agency/internal/usecase/observe"
)

const kind = string(authz.Topic)

// CreateInput represents the input parameters for creating a new topic.
type CreateInput struct {
	Name string
}

// UpdateInput represents the input parameters for updating an existing topic.
// Fields with nil values will not be updated.
type UpdateInput struct {
	ID   int64
	Name *string
}

// PageResult is one page of topics.
type PageResult struct {
	Data       []*entity.Topic
	Pagination pagination.Metadata
}

// Service provides topic management use cases.
type Service struct {
	Repo     repository.TopicRepository
	Gate     *authz.Gate
	PageSize int
}

func (s *Service) gate() *authz.Gate {
	if s.Gate == nil {
		return authz.New()
	}
	return s.Gate
}

func (s *Service) pageSize() int {
	if s.PageSize <= 0 {
		return pagination.DefaultPageSizes().Topics
	}
	return s.PageSize
}

// List returns page of the topics whose name contains filters.NameText.
// A page past the end is empty but still carries the total.
func (s *Service) List(ctx context.Context, actor authz.Actor, filters repository.TopicFilters, page int) (_ *PageResult, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.List), attribute.Int("page", page))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.List, authz.Topic, nil); err != nil {
		return nil, err
	}
	params := pagination.NewParams(page, s.pageSize())
	if err := params.Validate(); err != nil {
		pagination.RecordError("validation")
		return nil, err
	}
	pagination.RecordRequest(kind, page)

	start := time.Now()
	topics, total, err := s.Repo.ListPage(ctx, filters, params.Offset(), params.Limit)
	if err != nil {
		pagination.RecordError("store")
		return nil, entity.WrapStore("list topics", err)
	}
	if len(topics) == 0 && total > 0 {
		pagination.RecordEmptyPage(kind)
	}
	pagination.LogPage(logging.FromContext(ctx), kind, params, len(topics), total, time.Since(start))

	return &PageResult{Data: topics, Pagination: pagination.BuildMetadata(params, total)}, nil
}

// Get returns the topic or entity.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (_ *entity.Topic, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Get), attribute.Int64("id", id))
	defer func() { err = op.End(err) }()
	return s.load(ctx, id)
}

func (s *Service) load(ctx context.Context, id int64) (*entity.Topic, error) {
	if id <= 0 {
		return nil, entity.ErrNotFound
	}
	topic, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, entity.WrapStore("get topic", err)
	}
	if topic == nil {
		return nil, entity.ErrNotFound
	}
	return topic, nil
}

// Count returns the number of stored topics.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, entity.WrapStore("count topics", err)
	}
	metrics.UpdateEntitiesTotal(kind, n)
	return n, nil
}

// Create stores a new topic.
func (s *Service) Create(ctx context.Context, actor authz.Actor, in CreateInput) (_ *entity.Topic, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Create))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Create, authz.Topic, nil); err != nil {
		return nil, err
	}
	topic := &entity.Topic{Name: in.Name}
	if err := topic.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Create(ctx, topic); err != nil {
		return nil, entity.WrapStore("create topic", err)
	}
	return topic, nil
}

// Update renames a topic.
func (s *Service) Update(ctx context.Context, actor authz.Actor, in UpdateInput) (_ *entity.Topic, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Update), attribute.Int64("id", in.ID))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Update, authz.Topic, nil); err != nil {
		return nil, err
	}
	topic, err := s.load(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := s.gate().Check(actor, authz.Update, authz.Topic, &authz.Target{ID: topic.ID}); err != nil {
		return nil, err
	}
	if in.Name != nil {
		topic.Name = *in.Name
	}
	if err := topic.Validate(); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, topic); err != nil {
		return nil, entity.WrapStore("update topic", err)
	}
	return topic, nil
}

// Delete removes the topic together with every newspaper filed under it and
// returns how many newspapers were removed.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) (_ int64, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Delete), attribute.Int64("id", id))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Delete, authz.Topic, nil); err != nil {
		return 0, err
	}
	topic, err := s.load(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := s.gate().Check(actor, authz.Delete, authz.Topic, &authz.Target{ID: topic.ID}); err != nil {
		return 0, err
	}

	cascaded, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return 0, entity.WrapStore("delete topic", err)
	}
	metrics.RecordCascade(cascaded)
	op.Span().SetAttributes(attribute.Int64("agency.cascaded", cascaded))
	logging.FromContext(ctx).Info("topic deleted",
		slog.Int64("topic_id", id),
		slog.String("name", topic.Name),
		slog.Int64("cascaded_newspapers", cascaded))
	return cascaded, nil
}
