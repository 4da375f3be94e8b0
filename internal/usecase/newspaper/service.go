// Package newspaper provides the lifecycle use cases of newspapers.
//
// Any signed-in redactor may file a newspaper. Only its publishers may edit
// it afterwards; publishers and holders of newspapers.delete_any may delete
// it. The published date is stamped on creation and never rewritten.
package newspaper

import (
	"context"
	"errors"
	"fmt"
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

const kind = string(authz.Newspaper)

// TopicLookup resolves topic references.
type TopicLookup interface {
	Get(ctx context.Context, id int64) (*entity.Topic, error)
}

// RedactorLookup resolves publisher references.
type RedactorLookup interface {
	MissingIDs(ctx context.Context, ids []int64) ([]int64, error)
}

// CreateInput represents the input parameters for filing a newspaper.
type CreateInput struct {
	Title        string
	Content      string
	TopicID      int64
	PublisherIDs []int64
}

// UpdateInput represents the input parameters for editing a newspaper.
// Fields with nil values will not be updated. A non-nil PublisherIDs
// replaces the whole publisher set.
type UpdateInput struct {
	ID           int64
	Title        *string
	Content      *string
	TopicID      *int64
	PublisherIDs *[]int64
}

// PageResult is one page of newspapers.
type PageResult struct {
	Data       []*entity.Newspaper
	Pagination pagination.Metadata
}

// Service provides newspaper management use cases.
type Service struct {
	Repo      repository.NewspaperRepository
	Topics    TopicLookup
	Redactors RedactorLookup
	Gate      *authz.Gate
	PageSize  int
	Clock     func() time.Time
}

func (s *Service) gate() *authz.Gate {
	if s.Gate == nil {
		return authz.New()
	}
	return s.Gate
}

func (s *Service) pageSize() int {
	if s.PageSize <= 0 {
		return pagination.DefaultPageSizes().Newspapers
	}
	return s.PageSize
}

func (s *Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}

// List returns one page of newspapers matching filters, ordered by id.
func (s *Service) List(ctx context.Context, actor authz.Actor, filters repository.NewspaperFilters, page int) (_ *PageResult, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.List), attribute.Int("page", page))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.List, authz.Newspaper, nil); err != nil {
		return nil, err
	}
	params := pagination.NewParams(page, s.pageSize())
	if err := params.Validate(); err != nil {
		pagination.RecordError("validation")
		return nil, err
	}
	pagination.RecordRequest(kind, page)

	start := time.Now()
	papers, total, err := s.Repo.ListPage(ctx, filters, params.Offset(), params.Limit)
	if err != nil {
		pagination.RecordError("store")
		return nil, entity.WrapStore("list newspapers", err)
	}
	if len(papers) == 0 && total > 0 {
		pagination.RecordEmptyPage(kind)
	}
	pagination.LogPage(logging.FromContext(ctx), kind, params, len(papers), total, time.Since(start))

	return &PageResult{Data: papers, Pagination: pagination.BuildMetadata(params, total)}, nil
}

// Get returns the newspaper with its publisher IDs, or entity.ErrNotFound.
func (s *Service) Get(ctx context.Context, id int64) (_ *entity.Newspaper, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Get), attribute.Int64("id", id))
	defer func() { err = op.End(err) }()
	return s.load(ctx, id)
}

func (s *Service) load(ctx context.Context, id int64) (*entity.Newspaper, error) {
	if id <= 0 {
		return nil, entity.ErrNotFound
	}
	n, err := s.Repo.Get(ctx, id)
	if err != nil {
		return nil, entity.WrapStore("get newspaper", err)
	}
	if n == nil {
		return nil, entity.ErrNotFound
	}
	return n, nil
}

// ListByPublisher returns the newspapers credited to redactorID.
func (s *Service) ListByPublisher(ctx context.Context, redactorID int64) ([]*entity.Newspaper, error) {
	papers, err := s.Repo.ListByPublisher(ctx, redactorID)
	if err != nil {
		return nil, entity.WrapStore("list newspapers by publisher", err)
	}
	return papers, nil
}

// Count returns the number of stored newspapers.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, entity.WrapStore("count newspapers", err)
	}
	metrics.UpdateEntitiesTotal(kind, n)
	return n, nil
}

// Create files a new newspaper dated today. Publishers are stored exactly
// as given; the author is not added implicitly.
func (s *Service) Create(ctx context.Context, actor authz.Actor, in CreateInput) (_ *entity.Newspaper, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Create))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Create, authz.Newspaper, nil); err != nil {
		return nil, err
	}
	n := &entity.Newspaper{
		Title:        in.Title,
		Content:      in.Content,
		TopicID:      in.TopicID,
		PublisherIDs: in.PublisherIDs,
	}
	if err := s.validate(ctx, n); err != nil {
		return nil, err
	}
	n.PublishedDate = entity.DateOf(s.now())

	if err := s.Repo.Create(ctx, n); err != nil {
		return nil, entity.WrapStore("create newspaper", err)
	}
	logging.FromContext(ctx).Info("newspaper created",
		slog.Int64("newspaper_id", n.ID),
		slog.Int64("topic_id", n.TopicID),
		slog.Int64("actor_id", actor.RedactorID))
	return n, nil
}

// Update edits a newspaper. Only its publishers may do so; holding
// newspapers.delete_any does not grant editing rights.
func (s *Service) Update(ctx context.Context, actor authz.Actor, in UpdateInput) (_ *entity.Newspaper, err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Update), attribute.Int64("id", in.ID))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Update, authz.Newspaper, nil); err != nil {
		return nil, err
	}
	n, err := s.load(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := s.gate().Check(actor, authz.Update, authz.Newspaper, target(n)); err != nil {
		return nil, err
	}

	if in.Title != nil {
		n.Title = *in.Title
	}
	if in.Content != nil {
		n.Content = *in.Content
	}
	if in.TopicID != nil {
		n.TopicID = *in.TopicID
	}
	if in.PublisherIDs != nil {
		n.PublisherIDs = *in.PublisherIDs
	}
	if err := s.validate(ctx, n); err != nil {
		return nil, err
	}
	if err := s.Repo.Update(ctx, n); err != nil {
		return nil, entity.WrapStore("update newspaper", err)
	}
	return n, nil
}

// Delete removes a newspaper. Its topic and publishers are untouched.
func (s *Service) Delete(ctx context.Context, actor authz.Actor, id int64) (err error) {
	ctx, op := observe.Start(ctx, kind, string(authz.Delete), attribute.Int64("id", id))
	defer func() { err = op.End(err) }()

	if err := s.gate().Check(actor, authz.Delete, authz.Newspaper, nil); err != nil {
		return err
	}
	n, err := s.load(ctx, id)
	if err != nil {
		return err
	}
	if err := s.gate().Check(actor, authz.Delete, authz.Newspaper, target(n)); err != nil {
		return err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return entity.WrapStore("delete newspaper", err)
	}
	logging.FromContext(ctx).Info("newspaper deleted",
		slog.Int64("newspaper_id", id),
		slog.Int64("actor_id", actor.RedactorID))
	return nil
}

// validate runs the field checks and then resolves the topic and publisher
// references, reporting every failure at once.
func (s *Service) validate(ctx context.Context, n *entity.Newspaper) error {
	v := &entity.ValidationErrors{}
	if err := n.Validate(); err != nil {
		var fields *entity.ValidationErrors
		if !errors.As(err, &fields) {
			return err
		}
		v.Merge(fields)
	}

	if n.TopicID > 0 {
		topic, err := s.Topics.Get(ctx, n.TopicID)
		if err != nil {
			return entity.WrapStore("resolve topic", err)
		}
		if topic == nil {
			v.Add("topic", "select a valid choice; that topic does not exist")
		}
	}
	if len(n.PublisherIDs) > 0 && !v.Has("publishers") {
		missing, err := s.Redactors.MissingIDs(ctx, n.PublisherIDs)
		if err != nil {
			return entity.WrapStore("resolve publishers", err)
		}
		if len(missing) > 0 {
			v.Add("publishers", fmt.Sprintf("unknown redactors: %v", missing))
		}
	}
	return v.Err()
}

func target(n *entity.Newspaper) *authz.Target {
	return &authz.Target{ID: n.ID, PublisherIDs: n.PublisherIDs}
}
