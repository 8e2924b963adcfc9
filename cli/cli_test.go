package cli

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"weblog/app/models"
	"weblog/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "token")
	session := NewSession(path)

	assert.Empty(t, session.Token())

	require.NoError(t, session.Save("abc.def.ghi"))
	assert.Equal(t, "abc.def.ghi", session.Token())

	require.NoError(t, session.Clear())
	assert.Empty(t, session.Token())

	// Clearing twice is fine.
	require.NoError(t, session.Clear())
}

func TestSessionPathFallback(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token")
	t.Setenv("WEBLOG_TOKEN_FILE", path)

	session := NewSession("")
	require.NoError(t, session.Save("tok"))
	assert.Equal(t, "tok", session.Token())
}

func testPost(id, authorID int) *models.Post {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	return &models.Post{
		ID:        id,
		Title:     "Title",
		Content:   "Body",
		AuthorID:  authorID,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func TestRenderPostMarksOwnPosts(t *testing.T) {
	var buf bytes.Buffer
	renderPost(&buf, testPost(1, 7), 7)
	assert.Contains(t, buf.String(), "#1 Title (you)")

	buf.Reset()
	renderPost(&buf, testPost(1, 7), -1)
	assert.NotContains(t, buf.String(), "(you)")
}

func TestRenderPageEmpty(t *testing.T) {
	var buf bytes.Buffer
	renderPage(&buf, &pagination.Page{}, -1)
	assert.Equal(t, "No posts yet.\n", buf.String())
}

func TestRenderPageNavigation(t *testing.T) {
	page := &pagination.Page{
		Index:   1,
		Items:   []*models.Post{testPost(6, 7), testPost(7, 8)},
		HasPrev: true,
		HasNext: true,
	}

	var buf bytes.Buffer
	renderPage(&buf, page, 7)
	out := buf.String()

	// 1-based page numbers for humans.
	assert.Contains(t, out, "Page 2")
	assert.Contains(t, out, "prev: --page 1")
	assert.Contains(t, out, "next: --page 3")
	assert.Contains(t, out, "#6 Title (you)")
	assert.Contains(t, out, "#7 Title\n")
}

func TestRenderPageFirstAndLast(t *testing.T) {
	page := &pagination.Page{
		Index: 0,
		Items: []*models.Post{testPost(1, 7)},
	}

	var buf bytes.Buffer
	renderPage(&buf, page, -1)
	out := buf.String()
	assert.Contains(t, out, "Page 1")
	assert.NotContains(t, out, "prev:")
	assert.NotContains(t, out, "next:")
}
