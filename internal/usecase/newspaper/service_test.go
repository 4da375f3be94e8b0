package newspaper_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/infra/adapter/persistence/sqlite"
	"newspaper-agency/internal/infra/adapter/persistence/sqlite/sqlitetest"
	"newspaper-agency/internal/repository"
	"newspaper-agency/internal/service/authz"
	newspaperUC "newspaper-agency/internal/usecase/newspaper"
)

/* ───────── fixture ───────── */

var now = time.Date(2026, 3, 14, 17, 45, 0, 0, time.UTC)

type fixture struct {
	svc       *newspaperUC.Service
	papers    repository.NewspaperRepository
	topics    repository.TopicRepository
	redactors repository.RedactorRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := sqlitetest.Open(t)
	f := &fixture{
		papers:    sqlite.NewNewspaperRepo(conn),
		topics:    sqlite.NewTopicRepo(conn),
		redactors: sqlite.NewRedactorRepo(conn),
	}
	f.svc = &newspaperUC.Service{
		Repo:      f.papers,
		Topics:    f.topics,
		Redactors: f.redactors,
		PageSize:  5,
		Clock:     func() time.Time { return now },
	}
	return f
}

func (f *fixture) topic(t *testing.T, name string) int64 {
	t.Helper()
	topic := &entity.Topic{Name: name}
	require.NoError(t, f.topics.Create(context.Background(), topic))
	return topic.ID
}

func (f *fixture) redactor(t *testing.T, username string, perms ...entity.Permission) authz.Actor {
	t.Helper()
	r := &entity.Redactor{
		Username:     username,
		PasswordHash: "x",
		IsActive:     true,
		Permissions:  entity.NewPermissionSet(perms...),
		DateJoined:   now,
	}
	require.NoError(t, f.redactors.Create(context.Background(), r))
	return authz.ActorFor(r)
}

func (f *fixture) paper(t *testing.T, actor authz.Actor, title string, topicID int64, publishers ...int64) *entity.Newspaper {
	t.Helper()
	n, err := f.svc.Create(context.Background(), actor, newspaperUC.CreateInput{
		Title:        title,
		Content:      title + " body",
		TopicID:      topicID,
		PublisherIDs: publishers,
	})
	require.NoError(t, err)
	return n
}

func ptr[T any](v T) *T { return &v }

/* ───────── Create ───────── */

func TestService_Create(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	alice := f.redactor(t, "alice")
	bob := f.redactor(t, "bob")

	n, err := f.svc.Create(context.Background(), alice, newspaperUC.CreateInput{
		Title:        "  Tech Wonders ",
		Content:      "gadgets",
		TopicID:      tech,
		PublisherIDs: []int64{bob.RedactorID, alice.RedactorID, bob.RedactorID},
	})
	require.NoError(t, err)
	assert.Equal(t, "Tech Wonders", n.Title)
	assert.Equal(t, time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC), n.PublishedDate)

	stored, err := f.papers.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []int64{alice.RedactorID, bob.RedactorID}, stored.PublisherIDs)
	assert.True(t, stored.PublishedDate.Equal(n.PublishedDate))
}

func TestService_Create_WithoutPublishers(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	alice := f.redactor(t, "alice")

	n := f.paper(t, alice, "Orphan", tech)
	stored, err := f.svc.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Empty(t, stored.PublisherIDs)
}

func TestService_Create_AnonymousRejected(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")

	_, err := f.svc.Create(context.Background(), authz.Anonymous(), newspaperUC.CreateInput{
		Title: "t", Content: "c", TopicID: tech,
	})
	assert.ErrorIs(t, err, entity.ErrAuthenticationRequired)

	n, err := f.papers.Count(context.Background())
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestService_Create_MissingTopic(t *testing.T) {
	f := newFixture(t)
	alice := f.redactor(t, "alice")

	for name, topicID := range map[string]int64{"absent": 0, "unknown": 404} {
		t.Run(name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), alice, newspaperUC.CreateInput{
				Title: "Tech Wonders", Content: "gadgets", TopicID: topicID,
			})
			var verr *entity.ValidationErrors
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, []string{"topic"}, verr.Fields())

			n, err := f.papers.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}
}

func TestService_Create_CollectsEveryField(t *testing.T) {
	f := newFixture(t)
	alice := f.redactor(t, "alice")

	_, err := f.svc.Create(context.Background(), alice, newspaperUC.CreateInput{
		TopicID:      404,
		PublisherIDs: []int64{alice.RedactorID, 999},
	})
	var verr *entity.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"content", "publishers", "title", "topic"}, verr.Fields())
}

func TestService_InvalidPublisherIDs(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	alice := f.redactor(t, "alice")

	for name, ids := range map[string][]int64{"negative": {-5}, "zero": {0}, "mixed": {alice.RedactorID, -5}} {
		t.Run("create "+name, func(t *testing.T) {
			_, err := f.svc.Create(context.Background(), alice, newspaperUC.CreateInput{
				Title: "T", Content: "c", TopicID: tech, PublisherIDs: ids,
			})
			var verr *entity.ValidationErrors
			require.ErrorAs(t, err, &verr)
			assert.True(t, verr.Has("publishers"))
			assert.Len(t, verr.ByField()["publishers"], 1)

			n, err := f.papers.Count(context.Background())
			require.NoError(t, err)
			assert.Zero(t, n)
		})
	}

	t.Run("update", func(t *testing.T) {
		n := f.paper(t, alice, "Draft", tech, alice.RedactorID)
		_, err := f.svc.Update(context.Background(), alice, newspaperUC.UpdateInput{
			ID: n.ID, PublisherIDs: &[]int64{-5},
		})
		var verr *entity.ValidationErrors
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, []string{"publishers"}, verr.Fields())

		stored, err := f.papers.Get(context.Background(), n.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{alice.RedactorID}, stored.PublisherIDs)
	})
}

/* ───────── List / Get ───────── */

func TestService_List(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	arts := f.topic(t, "Arts")
	alice := f.redactor(t, "alice")

	f.paper(t, alice, "Tech Wonders", tech)
	f.paper(t, alice, "Gallery Night", arts)
	for _, title := range []string{"a", "b", "c", "d", "e"} {
		f.paper(t, alice, "Gadget "+title, tech)
	}

	res, err := f.svc.List(context.Background(), authz.Anonymous(), repository.NewspaperFilters{SearchText: "wonders"}, 1)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Tech Wonders", res.Data[0].Title)

	res, err = f.svc.List(context.Background(), authz.Anonymous(), repository.NewspaperFilters{SearchText: "zzz"}, 1)
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Zero(t, res.Pagination.Total)

	res, err = f.svc.List(context.Background(), authz.Anonymous(), repository.NewspaperFilters{SearchText: "  "}, 1)
	require.NoError(t, err)
	assert.Len(t, res.Data, 5)
	assert.Equal(t, int64(7), res.Pagination.Total)
	assert.True(t, res.Pagination.HasNext)

	res, err = f.svc.List(context.Background(), authz.Anonymous(), repository.NewspaperFilters{}, 2)
	require.NoError(t, err)
	assert.Len(t, res.Data, 2)

	res, err = f.svc.List(context.Background(), authz.Anonymous(), repository.NewspaperFilters{TopicID: &arts}, 1)
	require.NoError(t, err)
	require.Len(t, res.Data, 1)
	assert.Equal(t, "Gallery Night", res.Data[0].Title)

	res, err = f.svc.List(context.Background(), authz.Anonymous(), repository.NewspaperFilters{}, 9)
	require.NoError(t, err)
	assert.Empty(t, res.Data)
	assert.Equal(t, int64(7), res.Pagination.Total)
}

func TestService_Get_NotFound(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.Get(context.Background(), 1)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

/* ───────── Update ───────── */

func TestService_Update_PublisherOnly(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	alice := f.redactor(t, "alice")
	mallory := f.redactor(t, "mallory", entity.PermDeleteAnyNewspaper, entity.PermManageTopics)
	n := f.paper(t, alice, "Draft", tech, alice.RedactorID)

	_, err := f.svc.Update(context.Background(), mallory, newspaperUC.UpdateInput{ID: n.ID, Title: ptr("Hijacked")})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = f.svc.Update(context.Background(), authz.Anonymous(), newspaperUC.UpdateInput{ID: n.ID, Title: ptr("Hijacked")})
	assert.ErrorIs(t, err, entity.ErrAuthenticationRequired)

	got, err := f.svc.Update(context.Background(), alice, newspaperUC.UpdateInput{ID: n.ID, Title: ptr("Final")})
	require.NoError(t, err)
	assert.Equal(t, "Final", got.Title)

	stored, err := f.papers.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", stored.Title)
	assert.Equal(t, "Draft body", stored.Content)
}

func TestService_Update_KeepsPublishedDate(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	arts := f.topic(t, "Arts")
	alice := f.redactor(t, "alice")
	bob := f.redactor(t, "bob")
	n := f.paper(t, alice, "Draft", tech, alice.RedactorID)

	f.svc.Clock = func() time.Time { return now.AddDate(0, 1, 0) }
	got, err := f.svc.Update(context.Background(), alice, newspaperUC.UpdateInput{
		ID:           n.ID,
		TopicID:      &arts,
		PublisherIDs: &[]int64{bob.RedactorID},
	})
	require.NoError(t, err)
	assert.Equal(t, arts, got.TopicID)

	stored, err := f.papers.Get(context.Background(), n.ID)
	require.NoError(t, err)
	assert.True(t, stored.PublishedDate.Equal(n.PublishedDate))
	assert.Equal(t, []int64{bob.RedactorID}, stored.PublisherIDs)
}

func TestService_Update_CheckOrder(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	alice := f.redactor(t, "alice")
	bob := f.redactor(t, "bob")
	n := f.paper(t, alice, "Draft", tech, alice.RedactorID)

	_, err := f.svc.Update(context.Background(), alice, newspaperUC.UpdateInput{ID: 999, Title: ptr("x")})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// target check comes before validation
	_, err = f.svc.Update(context.Background(), bob, newspaperUC.UpdateInput{ID: n.ID, Title: ptr("")})
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = f.svc.Update(context.Background(), alice, newspaperUC.UpdateInput{ID: n.ID, Title: ptr(""), TopicID: ptr(int64(404))})
	var verr *entity.ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, []string{"title", "topic"}, verr.Fields())
}

/* ───────── Delete ───────── */

func TestService_Delete_AnonymousForbidden(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	alice := f.redactor(t, "alice")
	n := f.paper(t, alice, "Keep me", tech, alice.RedactorID)

	err := f.svc.Delete(context.Background(), authz.Anonymous(), n.ID)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	_, err = f.svc.Get(context.Background(), n.ID)
	assert.NoError(t, err)
}

func TestService_Delete_Rules(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	alice := f.redactor(t, "alice")
	bob := f.redactor(t, "bob")
	mod := f.redactor(t, "mod", entity.PermDeleteAnyNewspaper)

	mine := f.paper(t, alice, "Mine", tech, alice.RedactorID)
	other := f.paper(t, alice, "Other", tech, alice.RedactorID)

	err := f.svc.Delete(context.Background(), bob, mine.ID)
	assert.ErrorIs(t, err, entity.ErrForbidden)

	require.NoError(t, f.svc.Delete(context.Background(), alice, mine.ID))
	require.NoError(t, f.svc.Delete(context.Background(), mod, other.ID))

	// the topic and the publisher survive
	topic, err := f.topics.Get(context.Background(), tech)
	require.NoError(t, err)
	assert.NotNil(t, topic)
	r, err := f.redactors.Get(context.Background(), alice.RedactorID)
	require.NoError(t, err)
	assert.NotNil(t, r)
}

func TestService_Delete_Twice(t *testing.T) {
	f := newFixture(t)
	tech := f.topic(t, "Tech")
	alice := f.redactor(t, "alice")
	n := f.paper(t, alice, "Once", tech, alice.RedactorID)

	require.NoError(t, f.svc.Delete(context.Background(), alice, n.ID))
	err := f.svc.Delete(context.Background(), alice, n.ID)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

/* ───────── store failures ───────── */

type failingTopics struct{}

func (failingTopics) Get(context.Context, int64) (*entity.Topic, error) {
	return nil, errors.New("disk I/O error")
}

func TestService_Create_StoreError(t *testing.T) {
	f := newFixture(t)
	alice := f.redactor(t, "alice")
	f.svc.Topics = failingTopics{}

	_, err := f.svc.Create(context.Background(), alice, newspaperUC.CreateInput{Title: "t", Content: "c", TopicID: 1})
	var se *entity.StoreError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "resolve topic", se.Op)
}
