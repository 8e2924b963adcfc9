// Package client is the HTTP client library for the blog API. The CLI
// and any other front end consume the server exclusively through it.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"weblog/app/auth"
	"weblog/app/models"
)

// Client talks to a blog server over HTTP and holds the bearer token
// between calls.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

// New creates a client for the server at baseURL (e.g.
// "http://127.0.0.1:3000").
func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// SetToken installs a previously saved bearer token.
func (c *Client) SetToken(token string) {
	c.token = token
}

// Token returns the current bearer token, empty if not logged in.
func (c *Client) Token() string {
	return c.token
}

// CurrentUserID decodes the stored token's identity claim. The result
// is for display gating only; the server re-checks authorship itself.
func (c *Client) CurrentUserID() (int, bool) {
	if c.token == "" {
		return 0, false
	}
	claims, err := auth.DecodeClaims(c.token)
	if err != nil {
		return 0, false
	}
	return claims.UserID, true
}

// Register creates a user and stores the returned token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	payload := models.CreateUserRequest{Username: username, Email: email, Password: password}

	var resp models.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", &payload, false, http.StatusCreated, &resp); err != nil {
		return nil, err
	}

	c.token = resp.Token
	return resp.User, nil
}

// Login authenticates and stores the returned token.
func (c *Client) Login(ctx context.Context, username, password string) (*models.User, error) {
	payload := models.LoginRequest{Username: username, Password: password}

	var resp models.AuthResponse
	err := c.do(ctx, http.MethodPost, "/api/auth/login", &payload, false, http.StatusOK, &resp)
	if err != nil {
		return nil, loginError(err)
	}

	c.token = resp.Token
	return resp.User, nil
}

// CreatePost creates a post authored by the logged-in user.
func (c *Client) CreatePost(ctx context.Context, title, content string) (*models.Post, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}
	payload := models.CreatePostRequest{Title: title, Content: content}

	var post models.Post
	if err := c.do(ctx, http.MethodPost, "/api/posts", &payload, true, http.StatusCreated, &post); err != nil {
		return nil, postError(err)
	}
	return &post, nil
}

// GetPost fetches a single post.
func (c *Client) GetPost(ctx context.Context, id int) (*models.Post, error) {
	var post models.Post
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/api/posts/%d", id), nil, false, http.StatusOK, &post); err != nil {
		return nil, postError(err)
	}
	return &post, nil
}

// List fetches an ordered window of posts. It satisfies
// pagination.Source, so a Pager can drive the client directly.
func (c *Client) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	path := fmt.Sprintf("/api/posts?limit=%d&offset=%d", limit, offset)

	var posts []*models.Post
	if err := c.do(ctx, http.MethodGet, path, nil, false, http.StatusOK, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// UpdatePost applies a partial update. Nil fields are left untouched.
func (c *Client) UpdatePost(ctx context.Context, id int, title, content *string) (*models.Post, error) {
	if c.token == "" {
		return nil, ErrNoToken
	}
	payload := models.UpdatePostRequest{Title: title, Content: content}

	var post models.Post
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/api/posts/%d", id), &payload, true, http.StatusOK, &post); err != nil {
		return nil, postError(err)
	}
	return &post, nil
}

// DeletePost deletes a post owned by the logged-in user.
func (c *Client) DeletePost(ctx context.Context, id int) error {
	if c.token == "" {
		return ErrNoToken
	}
	if err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/api/posts/%d", id), nil, true, http.StatusNoContent, nil); err != nil {
		return postError(err)
	}
	return nil
}

// do sends one request and decodes the response into out (unless out is
// nil). Non-expected statuses become client errors.
func (c *Client) do(ctx context.Context, method, path string, payload interface{}, withToken bool, expect int, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if withToken {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != expect {
		return statusError(resp.StatusCode, readErrorMessage(resp.Body))
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

func readErrorMessage(body io.Reader) string {
	var e struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(body).Decode(&e); err != nil {
		return ""
	}
	return e.Error
}

// loginError refines the generic status mapping for the auth endpoints,
// where 404 means the user rather than a post.
func loginError(err error) error {
	if isStatus(err, http.StatusNotFound) {
		return ErrUserNotFound
	}
	if errors.Is(err, ErrUnauthorized) {
		return ErrInvalidCredentials
	}
	return err
}

// postError refines the generic status mapping for post endpoints.
func postError(err error) error {
	if isStatus(err, http.StatusNotFound) {
		return ErrPostNotFound
	}
	return err
}
