package http_test

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper-agency/internal/common/pagination"
	"newspaper-agency/internal/domain/entity"
	agencyhttp "newspaper-agency/internal/handler/http"
	"newspaper-agency/internal/handler/http/middleware"
	"newspaper-agency/internal/handler/http/newspaper"
	"newspaper-agency/internal/handler/http/respond"
	"newspaper-agency/internal/infra/adapter/persistence/sqlite"
	"newspaper-agency/internal/infra/adapter/persistence/sqlite/sqlitetest"
	authservice "newspaper-agency/internal/service/auth"
	newspaperUC "newspaper-agency/internal/usecase/newspaper"
	redactorUC "newspaper-agency/internal/usecase/redactor"
	topicUC "newspaper-agency/internal/usecase/topic"
)

type api struct {
	t         *testing.T
	srv       *httptest.Server
	redactors *redactorUC.Service
}

func newAPI(t *testing.T) *api {
	t.Helper()
	conn := sqlitetest.Open(t)
	tokens, err := authservice.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	topicRepo := sqlite.NewTopicRepo(conn)
	paperRepo := sqlite.NewNewspaperRepo(conn)
	redactorRepo := sqlite.NewRedactorRepo(conn)

	topics := &topicUC.Service{Repo: topicRepo}
	papers := &newspaperUC.Service{Repo: paperRepo, Topics: topicRepo, Redactors: redactorRepo}
	redactors := &redactorUC.Service{
		Repo:       redactorRepo,
		Newspapers: paperRepo,
		Hasher:     &authservice.BcryptHasher{Cost: 4},
		Tokens:     tokens,
	}

	h := agencyhttp.NewRouter(agencyhttp.RouterConfig{
		Topics:           topics,
		Newspapers:       papers,
		Redactors:        redactors,
		TopicCounter:     topics,
		NewspaperCounter: papers,
		RedactorCounter:  redactors,
		Login:            redactors,
		Tokens:           tokens,
		Actors:           redactors,
		LoginLimiter:     middleware.NewLoginLimiter(middleware.LoginLimiterConfig{PerMinute: 60, Burst: 100}),
		Health:           &agencyhttp.HealthHandler{DB: conn, Stats: conn.Stats},
		Ready:            &agencyhttp.ReadyHandler{DB: conn},
		CORS:             middleware.DefaultCORSConfig(),
	})
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return &api{t: t, srv: srv, redactors: redactors}
}

// account creates a redactor directly and returns a bearer token for it.
func (a *api) account(username string, perms ...entity.Permission) (int64, string) {
	a.t.Helper()
	ctx := context.Background()
	r, err := a.redactors.CreateAccount(ctx, redactorUC.RegisterInput{
		Username:        username,
		Password:        "correct-horse-battery",
		PasswordConfirm: "correct-horse-battery",
	}, entity.NewPermissionSet(perms...))
	require.NoError(a.t, err)
	res, err := a.redactors.Login(ctx, username, "correct-horse-battery")
	require.NoError(a.t, err)
	return r.ID, res.Token.Value
}

func (a *api) call(method, path, token, body string) (int, []byte) {
	a.t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, a.srv.URL+path, rd)
	require.NoError(a.t, err)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := a.srv.Client().Do(req)
	require.NoError(a.t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(a.t, err)
	return resp.StatusCode, data
}

func (a *api) create(path, token, body string) int64 {
	a.t.Helper()
	code, data := a.call(http.MethodPost, path, token, body)
	require.Equal(a.t, http.StatusCreated, code, string(data))
	var out struct {
		ID int64 `json:"id"`
	}
	require.NoError(a.t, json.Unmarshal(data, &out))
	return out.ID
}

func TestAPI_NewspaperLifecycle(t *testing.T) {
	a := newAPI(t)
	_, modToken := a.account("mod", entity.AllPermissions()...)
	aliceID, aliceToken := a.account("alice")
	_, bobToken := a.account("bob")

	techID := a.create("/topics", modToken, `{"name":"Technology"}`)
	paperID := a.create("/newspapers", aliceToken,
		fmt.Sprintf(`{"title":"Tech Wonders","content":"chips","topic_id":%d,"publishers":[%d]}`, techID, aliceID))
	a.create("/newspapers", aliceToken, fmt.Sprintf(`{"title":"Market Notes","content":"stocks","topic_id":%d}`, techID))
	paperPath := fmt.Sprintf("/newspapers/%d", paperID)

	t.Run("search", func(t *testing.T) {
		for q, want := range map[string]int{"wonders": 1, "zzz": 0, "": 2} {
			code, data := a.call(http.MethodGet, "/newspapers?q="+q, "", "")
			require.Equal(t, http.StatusOK, code)
			var page pagination.Response[newspaper.DTO]
			require.NoError(t, json.Unmarshal(data, &page))
			assert.Len(t, page.Data, want, "q=%q", q)
		}
	})

	t.Run("anonymous delete is refused and the record survives", func(t *testing.T) {
		code, _ := a.call(http.MethodDelete, paperPath, "", "")
		assert.Equal(t, http.StatusUnauthorized, code)
		code, _ = a.call(http.MethodGet, paperPath, "", "")
		assert.Equal(t, http.StatusOK, code)
	})

	t.Run("only publishers update", func(t *testing.T) {
		code, _ := a.call(http.MethodPut, paperPath, bobToken, `{"title":"Hijacked"}`)
		assert.Equal(t, http.StatusForbidden, code)
		code, data := a.call(http.MethodPut, paperPath, aliceToken, `{"title":"Tech Wonders II"}`)
		require.Equal(t, http.StatusOK, code, string(data))
		assert.Contains(t, string(data), "Tech Wonders II")
	})

	t.Run("missing topic names the field", func(t *testing.T) {
		code, data := a.call(http.MethodPost, "/newspapers", aliceToken, `{"title":"Orphan","content":"c"}`)
		require.Equal(t, http.StatusBadRequest, code)
		var body respond.ErrorBody
		require.NoError(t, json.Unmarshal(data, &body))
		assert.Contains(t, body.Fields, "topic")
	})

	t.Run("delete twice", func(t *testing.T) {
		code, _ := a.call(http.MethodDelete, paperPath, aliceToken, "")
		assert.Equal(t, http.StatusNoContent, code)
		code, _ = a.call(http.MethodDelete, paperPath, aliceToken, "")
		assert.Equal(t, http.StatusNotFound, code)
	})

	t.Run("topic delete cascades", func(t *testing.T) {
		code, _ := a.call(http.MethodDelete, fmt.Sprintf("/topics/%d", techID), modToken, "")
		assert.Equal(t, http.StatusNoContent, code)
		code, data := a.call(http.MethodGet, "/newspapers", "", "")
		require.Equal(t, http.StatusOK, code)
		var page pagination.Response[newspaper.DTO]
		require.NoError(t, json.Unmarshal(data, &page))
		assert.Empty(t, page.Data)
	})
}

func TestAPI_SignUpThenUseToken(t *testing.T) {
	a := newAPI(t)

	code, data := a.call(http.MethodPost, "/redactors", "",
		`{"username":"ada","password":"analytical-engine","password_confirm":"analytical-engine"}`)
	require.Equal(t, http.StatusCreated, code, string(data))
	var reg struct {
		Redactor struct{ ID int64 }     `json:"redactor"`
		Session  struct{ Token string } `json:"session"`
	}
	require.NoError(t, json.Unmarshal(data, &reg))
	require.NotEmpty(t, reg.Session.Token)

	code, data = a.call(http.MethodPut, fmt.Sprintf("/redactors/%d", reg.Redactor.ID), reg.Session.Token, `{"first_name":"Ada"}`)
	require.Equal(t, http.StatusOK, code, string(data))

	code, data = a.call(http.MethodPost, "/auth/token", "", `{"username":"ada","password":"analytical-engine"}`)
	require.Equal(t, http.StatusOK, code, string(data))
}

func TestAPI_InvalidTokenIsRejected(t *testing.T) {
	a := newAPI(t)
	code, _ := a.call(http.MethodGet, "/topics", "not-a-jwt", "")
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = a.call(http.MethodGet, "/topics", "", "")
	assert.Equal(t, http.StatusOK, code)
}

func TestAPI_DeletedAccountTokenStopsWorking(t *testing.T) {
	a := newAPI(t)
	id, token := a.account("carol")
	code, _ := a.call(http.MethodDelete, fmt.Sprintf("/redactors/%d", id), token, "")
	require.Equal(t, http.StatusNoContent, code)

	code, _ = a.call(http.MethodGet, "/topics", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestAPI_Probes(t *testing.T) {
	a := newAPI(t)
	for _, path := range []string{"/health", "/ready", "/live", "/metrics", "/"} {
		code, data := a.call(http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, code, "%s: %s", path, data)
	}
	code, _ := a.call(http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, code)
}
