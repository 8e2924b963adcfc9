package routes

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"weblog/app/auth"
	"weblog/app/models"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	opts := badger.DefaultOptions(t.TempDir()).
		WithLogger(nil).
		WithSyncWrites(false).
		WithNumGoroutines(1)
	db, err := badger.Open(opts)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	jwtService, err := auth.NewJWTService("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)

	server := httptest.NewServer(Setup(db, jwtService, zap.NewNop()))
	t.Cleanup(server.Close)
	return server
}

func doJSON(t *testing.T, method, url, token string, payload, out interface{}) int {
	t.Helper()

	var body bytes.Buffer
	if payload != nil {
		require.NoError(t, json.NewEncoder(&body).Encode(payload))
	}
	req, err := http.NewRequest(method, url, &body)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	if out != nil && resp.StatusCode < 300 && resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func registerUser(t *testing.T, server *httptest.Server, username string) *models.AuthResponse {
	t.Helper()
	var resp models.AuthResponse
	status := doJSON(t, "POST", server.URL+"/api/auth/register", "", &models.CreateUserRequest{
		Username: username,
		Email:    username + "@example.com",
		Password: "correct horse",
	}, &resp)
	require.Equal(t, http.StatusCreated, status)
	require.NotEmpty(t, resp.Token)
	return &resp
}

func TestHealthz(t *testing.T) {
	server := newTestServer(t)

	resp, err := http.Get(server.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestRegisterAndLogin(t *testing.T) {
	server := newTestServer(t)

	alice := registerUser(t, server, "alice")
	assert.Equal(t, "alice", alice.User.Username)

	// Duplicate username.
	status := doJSON(t, "POST", server.URL+"/api/auth/register", "", &models.CreateUserRequest{
		Username: "alice",
		Email:    "other@example.com",
		Password: "correct horse",
	}, nil)
	assert.Equal(t, http.StatusConflict, status)

	// Invalid payload.
	status = doJSON(t, "POST", server.URL+"/api/auth/register", "", &models.CreateUserRequest{
		Username: "xy",
		Email:    "not-an-email",
		Password: "short",
	}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	var login models.AuthResponse
	status = doJSON(t, "POST", server.URL+"/api/auth/login", "", &models.LoginRequest{
		Username: "alice",
		Password: "correct horse",
	}, &login)
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, login.Token)

	status = doJSON(t, "POST", server.URL+"/api/auth/login", "", &models.LoginRequest{
		Username: "alice",
		Password: "wrong horse",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status = doJSON(t, "POST", server.URL+"/api/auth/login", "", &models.LoginRequest{
		Username: "nobody",
		Password: "whatever!",
	}, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestPostLifecycle(t *testing.T) {
	server := newTestServer(t)
	alice := registerUser(t, server, "alice")
	mallory := registerUser(t, server, "mallory")

	// Mutations require a token.
	status := doJSON(t, "POST", server.URL+"/api/posts", "", &models.CreatePostRequest{
		Title: "Nope", Content: "anonymous",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	var post models.Post
	status = doJSON(t, "POST", server.URL+"/api/posts", alice.Token, &models.CreatePostRequest{
		Title: "Hello", Content: "First post",
	}, &post)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, 1, post.ID)
	assert.Equal(t, alice.User.ID, post.AuthorID)

	var fetched models.Post
	status = doJSON(t, "GET", fmt.Sprintf("%s/api/posts/%d", server.URL, post.ID), "", nil, &fetched)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello", fetched.Title)

	status = doJSON(t, "GET", server.URL+"/api/posts/999", "", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)

	// Only the author may edit.
	title := "Hijacked"
	status = doJSON(t, "PUT", fmt.Sprintf("%s/api/posts/%d", server.URL, post.ID), mallory.Token,
		&models.UpdatePostRequest{Title: &title}, nil)
	assert.Equal(t, http.StatusForbidden, status)

	title = "Hello again"
	var updated models.Post
	status = doJSON(t, "PUT", fmt.Sprintf("%s/api/posts/%d", server.URL, post.ID), alice.Token,
		&models.UpdatePostRequest{Title: &title}, &updated)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, "First post", updated.Content)

	// Empty update is rejected.
	status = doJSON(t, "PUT", fmt.Sprintf("%s/api/posts/%d", server.URL, post.ID), alice.Token,
		&models.UpdatePostRequest{}, nil)
	assert.Equal(t, http.StatusBadRequest, status)

	// Only the author may delete.
	status = doJSON(t, "DELETE", fmt.Sprintf("%s/api/posts/%d", server.URL, post.ID), mallory.Token, nil, nil)
	assert.Equal(t, http.StatusForbidden, status)

	status = doJSON(t, "DELETE", fmt.Sprintf("%s/api/posts/%d", server.URL, post.ID), alice.Token, nil, nil)
	assert.Equal(t, http.StatusNoContent, status)

	status = doJSON(t, "GET", fmt.Sprintf("%s/api/posts/%d", server.URL, post.ID), "", nil, nil)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestListWindows(t *testing.T) {
	server := newTestServer(t)
	alice := registerUser(t, server, "alice")

	for i := 1; i <= 7; i++ {
		status := doJSON(t, "POST", server.URL+"/api/posts", alice.Token, &models.CreatePostRequest{
			Title:   fmt.Sprintf("Post %d", i),
			Content: "body",
		}, nil)
		require.Equal(t, http.StatusCreated, status)
	}

	var posts []*models.Post
	status := doJSON(t, "GET", server.URL+"/api/posts?limit=6&offset=0", "", nil, &posts)
	assert.Equal(t, http.StatusOK, status)
	require.Len(t, posts, 6)
	assert.Equal(t, 1, posts[0].ID)
	assert.Equal(t, 6, posts[5].ID)

	status = doJSON(t, "GET", server.URL+"/api/posts?limit=6&offset=5", "", nil, &posts)
	assert.Equal(t, http.StatusOK, status)
	assert.Len(t, posts, 2)

	status = doJSON(t, "GET", server.URL+"/api/posts?limit=5&offset=100", "", nil, &posts)
	assert.Equal(t, http.StatusOK, status)
	assert.Empty(t, posts)
}

func TestBadTokens(t *testing.T) {
	server := newTestServer(t)

	status := doJSON(t, "POST", server.URL+"/api/posts", "garbage-token", &models.CreatePostRequest{
		Title: "x", Content: "y",
	}, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
