package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"token-auth-service/internal/auth"
	"token-auth-service/internal/auth/resolver"
	"token-auth-service/internal/auth/token"
	"token-auth-service/internal/middleware"
	"token-auth-service/internal/userstore"
)

type envelope struct {
	Success bool            `json:"success"`
	Message json.RawMessage `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type errorMessage struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type testEnv struct {
	router *gin.Engine
	store  userstore.Store
	issuer *token.Issuer
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	store := userstore.NewRedisStore(client)

	codec := token.NewCodec([]byte("handler-test-secret"))
	issuer := token.NewIssuer(codec, nil)
	service := auth.NewService(store, issuer, 30*time.Minute, 7*24*time.Hour)
	storeResolver := resolver.NewStoreResolver(codec, store, issuer, 30*time.Minute)

	router := gin.New()
	NewHandler(service, storeResolver).RegisterRoutes(
		router,
		middleware.NewAuthMiddleware(storeResolver),
	)

	return &testEnv{router: router, store: store, issuer: issuer}
}

func (e *testEnv) do(t *testing.T, req *http.Request) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return w, env
}

func (e *testEnv) register(t *testing.T, username, email, password string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	body, err := json.Marshal(map[string]string{
		"username":  username,
		"email":     email,
		"password":  password,
		"full_name": "Test User",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/users", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return e.do(t, req)
}

func (e *testEnv) login(t *testing.T, username, password string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return e.do(t, req)
}

func requireErrorCode(t *testing.T, env envelope, code int) {
	t.Helper()
	require.False(t, env.Success)
	var msg errorMessage
	require.NoError(t, json.Unmarshal(env.Message, &msg))
	require.Equal(t, code, msg.Code)
}

func TestRegisterAndDuplicate(t *testing.T) {
	env := newTestEnv(t)

	w, resp := env.register(t, "alice", "alice@example.com", "secret123")
	require.Equal(t, http.StatusCreated, w.Code)
	require.True(t, resp.Success)

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(resp.Data, &pair))
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.Equal(t, "bearer", pair.TokenType)

	w, resp = env.register(t, "alice", "alice@example.com", "secret123")
	require.Equal(t, http.StatusConflict, w.Code)
	requireErrorCode(t, resp, 1001)
}

func TestLoginWrongPassword(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")

	w, resp := env.login(t, "alice", "wrongpass")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	requireErrorCode(t, resp, 2001)

	// unknown user answers identically, so usernames cannot be enumerated
	w2, resp2 := env.login(t, "ghost", "wrongpass")
	require.Equal(t, w.Code, w2.Code)
	require.JSONEq(t, string(resp.Message), string(resp2.Message))
}

func TestLoginAndMe(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")

	w, resp := env.login(t, "alice", "secret123")
	require.Equal(t, http.StatusOK, w.Code)

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(resp.Data, &pair))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.AccessToken)
	w, resp = env.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	var me userResponse
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	require.Equal(t, "alice", me.Username)
	require.Equal(t, "alice@example.com", me.Email)
	require.False(t, me.Disabled)
}

func TestMeRejectsBadBearer(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Basic abc",
		"garbage token":  "Bearer not-a-token",
		"empty token":    "Bearer ",
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w, resp := env.do(t, req)
			require.Equal(t, http.StatusUnauthorized, w.Code)
			require.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			requireErrorCode(t, resp, 2002)
		})
	}
}

func TestMeRejectsRefreshToken(t *testing.T) {
	env := newTestEnv(t)
	_, resp := env.register(t, "alice", "alice@example.com", "secret123")

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(resp.Data, &pair))

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+pair.RefreshToken)
	w, resp2 := env.do(t, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	requireErrorCode(t, resp2, 2002)
}

func TestMeRejectsExpiredToken(t *testing.T) {
	env := newTestEnv(t)
	env.register(t, "alice", "alice@example.com", "secret123")

	tok, err := env.issuer.IssueAccess("alice", -time.Second)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w, resp := env.do(t, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	requireErrorCode(t, resp, 2002)
}

func TestMeUnknownSubject(t *testing.T) {
	env := newTestEnv(t)

	tok, err := env.issuer.IssueAccess("ghost", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w, resp := env.do(t, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	requireErrorCode(t, resp, 1002)
}

func TestMeDisabledUser(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.store.Create(context.Background(), userstore.User{
		Username: "carol",
		Email:    "carol@example.com",
		Disabled: true,
	})
	require.NoError(t, err)

	tok, err := env.issuer.IssueAccess("carol", time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w, resp := env.do(t, req)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.False(t, resp.Success)
}

func TestRefreshFlow(t *testing.T) {
	env := newTestEnv(t)
	_, resp := env.register(t, "alice", "alice@example.com", "secret123")

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(resp.Data, &pair))

	body, err := json.Marshal(map[string]string{"refresh_token": pair.RefreshToken})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w, resp := env.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	var refreshed refreshResponse
	require.NoError(t, json.Unmarshal(resp.Data, &refreshed))
	require.NotEmpty(t, refreshed.AccessToken)
	require.NotEqual(t, pair.AccessToken, refreshed.AccessToken)
	require.Equal(t, "bearer", refreshed.TokenType)

	// the new access token authenticates as the original subject
	req = httptest.NewRequest(http.MethodGet, "/users/me", nil)
	req.Header.Set("Authorization", "Bearer "+refreshed.AccessToken)
	w, resp = env.do(t, req)
	require.Equal(t, http.StatusOK, w.Code)

	var me userResponse
	require.NoError(t, json.Unmarshal(resp.Data, &me))
	require.Equal(t, "alice", me.Username)
}

func TestRefreshRejectsAccessToken(t *testing.T) {
	env := newTestEnv(t)
	_, resp := env.register(t, "alice", "alice@example.com", "secret123")

	var pair auth.TokenPair
	require.NoError(t, json.Unmarshal(resp.Data, &pair))

	body, err := json.Marshal(map[string]string{"refresh_token": pair.AccessToken})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/refresh", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w, resp := env.do(t, req)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	requireErrorCode(t, resp, 2002)
}

func TestRoot(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()
	env.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.JSONEq(t, `{"isAlive": true}`, w.Body.String())
}
