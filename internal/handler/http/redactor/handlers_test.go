package redactor_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/handler/http/auth"
	"newspaper-agency/internal/handler/http/redactor"
	"newspaper-agency/internal/handler/http/respond"
	"newspaper-agency/internal/infra/adapter/persistence/sqlite"
	"newspaper-agency/internal/infra/adapter/persistence/sqlite/sqlitetest"
	"newspaper-agency/internal/repository"
	authservice "newspaper-agency/internal/service/auth"
	"newspaper-agency/internal/service/authz"
	redactorUC "newspaper-agency/internal/usecase/redactor"
)

const secret = "0123456789abcdef0123456789abcdef"

type fixture struct {
	mux       *http.ServeMux
	tokens    *authservice.TokenIssuer
	redactors repository.RedactorRepository
	topics    repository.TopicRepository
	papers    repository.NewspaperRepository
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn := sqlitetest.Open(t)
	tokens, err := authservice.NewTokenIssuer(secret, time.Hour)
	require.NoError(t, err)

	f := &fixture{
		mux:       http.NewServeMux(),
		tokens:    tokens,
		redactors: sqlite.NewRedactorRepo(conn),
		topics:    sqlite.NewTopicRepo(conn),
		papers:    sqlite.NewNewspaperRepo(conn),
	}
	redactor.Register(f.mux, &redactorUC.Service{
		Repo:       f.redactors,
		Newspapers: f.papers,
		Hasher:     &authservice.BcryptHasher{Cost: 4},
		Tokens:     tokens,
		PageSize:   4,
	})
	return f
}

func (f *fixture) account(t *testing.T, username string, perms ...entity.Permission) authz.Actor {
	t.Helper()
	r := &entity.Redactor{
		Username:     username,
		PasswordHash: "x",
		IsActive:     true,
		Permissions:  entity.NewPermissionSet(perms...),
		DateJoined:   time.Now().UTC(),
	}
	require.NoError(t, f.redactors.Create(context.Background(), r))
	return authz.ActorFor(r)
}

func (f *fixture) do(method, path, body string, actor authz.Actor) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req = req.WithContext(auth.WithActor(req.Context(), actor))
	rec := httptest.NewRecorder()
	f.mux.ServeHTTP(rec, req)
	return rec
}

func path(id int64) string { return "/redactors/" + strconv.FormatInt(id, 10) }

const signUp = `{"username":"ada","password":"analytical-engine","password_confirm":"analytical-engine",` +
	`"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","years_of_experience":5}`

func TestRegister_SelfSignUpReturnsToken(t *testing.T) {
	f := newFixture(t)

	rec := f.do(http.MethodPost, "/redactors", signUp, authz.Anonymous())
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var body redactor.RegisterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "ada", body.Redactor.Username)
	assert.Equal(t, path(body.Redactor.ID), rec.Header().Get("Location"))
	assert.NotContains(t, rec.Body.String(), "$2")

	require.NotNil(t, body.Session)
	claims, err := f.tokens.Parse(body.Session.Token)
	require.NoError(t, err)
	assert.Equal(t, body.Redactor.ID, claims.RedactorID)
}

func TestRegister_AccountManagerGetsNoSession(t *testing.T) {
	f := newFixture(t)
	mod := f.account(t, "mod", entity.PermDeleteAnyRedactor)

	rec := f.do(http.MethodPost, "/redactors", signUp, mod)
	require.Equal(t, http.StatusCreated, rec.Code)
	var body redactor.RegisterResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Nil(t, body.Session)

	plain := f.account(t, "plain")
	rec = f.do(http.MethodPost, "/redactors", strings.Replace(signUp, `"ada"`, `"ada2"`, 1), plain)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRegister_ValidationNamesFields(t *testing.T) {
	f := newFixture(t)
	rec := f.do(http.MethodPost, "/redactors",
		`{"username":"bad name!","password":"12345678","password_confirm":"nope"}`, authz.Anonymous())
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var body respond.ErrorBody
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Contains(t, body.Fields, "username")
	assert.Contains(t, body.Fields, "password")
	assert.Contains(t, body.Fields, "password_confirm")
}

func TestList_Search(t *testing.T) {
	f := newFixture(t)
	for _, name := range []string{"dan", "amy", "cat", "bob", "eve"} {
		f.account(t, name)
	}

	rec := f.do(http.MethodGet, "/redactors", "", authz.Anonymous())
	require.Equal(t, http.StatusOK, rec.Code)
	var page pagination.Response[redactor.DTO]
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page.Data, 4)
	assert.Equal(t, "amy", page.Data[0].Username)
	assert.Equal(t, int64(5), page.Pagination.Total)

	rec = f.do(http.MethodGet, "/redactors?q=EV", "", authz.Anonymous())
	page = pagination.Response[redactor.DTO]{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	require.Len(t, page.Data, 1)
	assert.Equal(t, "eve", page.Data[0].Username)
}

func TestGet_ProfileListsNewspapers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.account(t, "alice")
	tp := &entity.Topic{Name: "Tech"}
	require.NoError(t, f.topics.Create(ctx, tp))
	require.NoError(t, f.papers.Create(ctx, &entity.Newspaper{
		Title: "Tech Wonders", Content: "c", TopicID: tp.ID, PublisherIDs: []int64{alice.RedactorID},
		PublishedDate: time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}))

	rec := f.do(http.MethodGet, path(alice.RedactorID), "", authz.Anonymous())
	require.Equal(t, http.StatusOK, rec.Code)
	var body redactor.ProfileDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "alice", body.Username)
	require.Len(t, body.Newspapers, 1)
	assert.Equal(t, "Tech Wonders", body.Newspapers[0].Title)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodGet, "/redactors/999", "", authz.Anonymous()).Code)
}

func TestUpdate_SelfOnlyAndClearsYears(t *testing.T) {
	f := newFixture(t)
	alice := f.account(t, "alice")
	bob := f.account(t, "bob")

	rec := f.do(http.MethodPut, path(alice.RedactorID), `{"first_name":"Bobby"}`, bob)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = f.do(http.MethodPut, path(alice.RedactorID), `{"first_name":"Alice","years_of_experience":7}`, alice)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got redactor.DTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "Alice", got.FirstName)
	require.NotNil(t, got.YearsOfExperience)
	assert.Equal(t, 7, *got.YearsOfExperience)

	rec = f.do(http.MethodPut, path(alice.RedactorID), `{"years_of_experience":null}`, alice)
	require.Equal(t, http.StatusOK, rec.Code)
	got = redactor.DTO{}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Nil(t, got.YearsOfExperience)
	assert.Equal(t, "Alice", got.FirstName)
}

func TestDelete_DetachesAndThenNotFound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	alice := f.account(t, "alice")
	bob := f.account(t, "bob")
	tp := &entity.Topic{Name: "Tech"}
	require.NoError(t, f.topics.Create(ctx, tp))
	paper := &entity.Newspaper{Title: "Shared", Content: "c", TopicID: tp.ID, PublisherIDs: []int64{alice.RedactorID, bob.RedactorID}}
	require.NoError(t, f.papers.Create(ctx, paper))

	assert.Equal(t, http.StatusUnauthorized, f.do(http.MethodDelete, path(alice.RedactorID), "", authz.Anonymous()).Code)
	assert.Equal(t, http.StatusForbidden, f.do(http.MethodDelete, path(alice.RedactorID), "", bob).Code)
	require.Equal(t, http.StatusNoContent, f.do(http.MethodDelete, path(alice.RedactorID), "", alice).Code)

	stored, err := f.papers.Get(ctx, paper.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, []int64{bob.RedactorID}, stored.PublisherIDs)

	assert.Equal(t, http.StatusNotFound, f.do(http.MethodDelete, path(alice.RedactorID), "", alice).Code)
}
