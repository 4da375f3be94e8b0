package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newspaper-agency/internal/domain/entity"
	authservice "newspaper-agency/internal/service/auth"
	redactorUC "newspaper-agency/internal/usecase/redactor"
)

type fakeAuthenticator struct {
	password string
}

func (f fakeAuthenticator) Login(_ context.Context, username, password string) (*redactorUC.LoginResult, error) {
	if username != "editor" || password != f.password {
		return nil, entity.ErrInvalidCredentials
	}
	return &redactorUC.LoginResult{
		Redactor: &entity.Redactor{ID: 5, Username: "editor"},
		Token:    authservice.Token{Value: "signed", ExpiresAt: time.Date(2026, 1, 1, 1, 0, 0, 0, time.UTC)},
	}, nil
}

func post(body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/auth/token", strings.NewReader(body))
	TokenHandler(fakeAuthenticator{password: "s3cret-pass"}).ServeHTTP(rec, req)
	return rec
}

func TestTokenHandler_Success(t *testing.T) {
	before := testutil.ToFloat64(loginRequestsTotal.WithLabelValues("success"))
	rec := post(`{"username":"editor","password":"s3cret-pass"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var got tokenResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, "signed", got.Token)
	assert.Equal(t, int64(5), got.RedactorID)
	assert.Equal(t, before+1, testutil.ToFloat64(loginRequestsTotal.WithLabelValues("success")))
}

func TestTokenHandler_Failures(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		code   int
		result string
	}{
		{"bad json", `{"username":`, http.StatusBadRequest, "invalid_request"},
		{"wrong password", `{"username":"editor","password":"nope"}`, http.StatusUnauthorized, "invalid_credentials"},
		{"unknown user", `{"username":"ghost","password":"s3cret-pass"}`, http.StatusUnauthorized, "invalid_credentials"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(loginRequestsTotal.WithLabelValues(tt.result))
			rec := post(tt.body)
			assert.Equal(t, tt.code, rec.Code)
			assert.Equal(t, before+1, testutil.ToFloat64(loginRequestsTotal.WithLabelValues(tt.result)))
			assert.NotContains(t, rec.Body.String(), "token\"")
		})
	}
}
