package client

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"weblog/app/auth"
	"weblog/app/routes"
	"weblog/pagination"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"
)

func TestMain(m *testing.M) {
	// Badger keeps background goroutines alive for the life of the DB;
	// each test closes its own DB, so only http keep-alives remain.
	goleak.VerifyTestMain(m,
		goleak.IgnoreTopFunction("net/http.(*persistConn).readLoop"),
		goleak.IgnoreTopFunction("net/http.(*persistConn).writeLoop"),
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}

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

	server := httptest.NewServer(routes.Setup(db, jwtService, zap.NewNop()))
	t.Cleanup(server.Close)
	return server
}

func TestClientAuthFlow(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	c := New(server.URL)
	user, err := c.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, c.Token())

	id, ok := c.CurrentUserID()
	assert.True(t, ok)
	assert.Equal(t, user.ID, id)

	_, err = New(server.URL).Register(ctx, "alice", "other@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrUserExists)

	fresh := New(server.URL)
	_, err = fresh.Login(ctx, "alice", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = fresh.Login(ctx, "nobody", "whatever!")
	assert.ErrorIs(t, err, ErrUserNotFound)

	user, err = fresh.Login(ctx, "alice", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	assert.NotEmpty(t, fresh.Token())
}

func TestClientPostLifecycle(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	alice := New(server.URL)
	_, err := alice.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)

	// No token, no mutation.
	anon := New(server.URL)
	_, err = anon.CreatePost(ctx, "Nope", "anonymous")
	assert.ErrorIs(t, err, ErrNoToken)

	post, err := alice.CreatePost(ctx, "Hello", "First post")
	require.NoError(t, err)
	assert.Equal(t, 1, post.ID)

	got, err := anon.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, "Hello", got.Title)

	_, err = anon.GetPost(ctx, 999)
	assert.ErrorIs(t, err, ErrPostNotFound)

	mallory := New(server.URL)
	_, err = mallory.Register(ctx, "mallory", "mallory@example.com", "correct horse")
	require.NoError(t, err)

	title := "Hijacked"
	_, err = mallory.UpdatePost(ctx, post.ID, &title, nil)
	assert.ErrorIs(t, err, ErrForbidden)
	assert.ErrorIs(t, mallory.DeletePost(ctx, post.ID), ErrForbidden)

	title = "Hello again"
	updated, err := alice.UpdatePost(ctx, post.ID, &title, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello again", updated.Title)
	assert.Equal(t, "First post", updated.Content)

	_, err = alice.UpdatePost(ctx, post.ID, nil, nil)
	assert.ErrorIs(t, err, ErrInvalidRequest)

	require.NoError(t, alice.DeletePost(ctx, post.ID))
	err = alice.DeletePost(ctx, post.ID)
	assert.ErrorIs(t, err, ErrPostNotFound)
}

func TestClientStaleToken(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	c := New(server.URL)
	c.SetToken("stale-or-forged")

	_, err := c.CreatePost(ctx, "x", "y")
	assert.ErrorIs(t, err, ErrUnauthorized)

	_, ok := c.CurrentUserID()
	assert.False(t, ok)
}

func TestPagerOverClient(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	alice := New(server.URL)
	_, err := alice.Register(ctx, "alice", "alice@example.com", "correct horse")
	require.NoError(t, err)

	// 7 posts at size 3: pages of 3, 3, 1.
	for i := 1; i <= 7; i++ {
		_, err := alice.CreatePost(ctx, "Post", "body")
		require.NoError(t, err)
	}

	pager := pagination.New(alice, 3)

	page, err := pager.Fetch(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.False(t, page.HasPrev)
	assert.True(t, page.HasNext)
	assert.Equal(t, 1, page.Items[0].ID)

	page, err = pager.Next(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Items, 3)
	assert.True(t, page.HasNext)
	assert.Equal(t, 4, page.Items[0].ID)

	page, err = pager.Next(ctx)
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.False(t, page.HasNext)
	assert.Equal(t, 7, page.Items[0].ID)

	// Delete the last page out from under the pager; the next fetch
	// walks back to the previous page.
	require.NoError(t, alice.DeletePost(ctx, 7))
	page, err = pager.Fetch(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, page.Index)
	assert.Len(t, page.Items, 3)
	assert.False(t, page.HasNext)

	page, err = pager.Prev(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, page.Index)
	assert.False(t, page.HasPrev)
}
