package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"weblog/app/middleware"
	"weblog/app/models"
	"weblog/app/repositories"
	"weblog/app/services"

	"github.com/gorilla/mux"
)

// maxListLimit caps a single listing window; front ends page with far
// smaller limits.
const maxListLimit = 100

// PostController handles HTTP requests for blog posts
type PostController struct {
	blogService *services.BlogService
}

// NewPostController creates a new PostController
func NewPostController(blogService *services.BlogService) *PostController {
	return &PostController{blogService: blogService}
}

// Index handles GET /api/posts?limit=&offset=
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if l, err := strconv.Atoi(limitStr); err == nil && l > 0 {
			limit = l
		}
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	offset := 0
	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if o, err := strconv.Atoi(offsetStr); err == nil && o >= 0 {
			offset = o
		}
	}

	posts, err := pc.blogService.ListPosts(limit, offset)
	if err != nil {
		sendError(w, "Failed to fetch posts: "+err.Error(), http.StatusInternalServerError)
		return
	}

	sendJSON(w, http.StatusOK, posts)
}

// Show handles GET /api/posts/{id}
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	post, err := pc.blogService.GetPost(id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			sendError(w, "Post not found", http.StatusNotFound)
		} else {
			sendError(w, "Failed to fetch post: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	sendJSON(w, http.StatusOK, post)
}

// Create handles POST /api/posts
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req models.CreatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.blogService.CreatePost(&req, claims.UserID)
	if err != nil {
		if strings.Contains(err.Error(), "invalid post") {
			sendError(w, err.Error(), http.StatusBadRequest)
		} else {
			sendError(w, "Failed to create post: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	sendJSON(w, http.StatusCreated, post)
}

// Edit handles PUT /api/posts/{id}
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req models.UpdatePostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	post, err := pc.blogService.UpdatePost(id, &req, claims.UserID)
	if err != nil {
		pc.sendMutationError(w, err, "update")
		return
	}

	sendJSON(w, http.StatusOK, post)
}

// Delete handles DELETE /api/posts/{id}
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		sendError(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := pc.blogService.DeletePost(id, claims.UserID); err != nil {
		pc.sendMutationError(w, err, "delete")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (pc *PostController) sendMutationError(w http.ResponseWriter, err error, verb string) {
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		sendError(w, "Post not found", http.StatusNotFound)
	case errors.Is(err, services.ErrForbidden):
		sendError(w, "Forbidden", http.StatusForbidden)
	case strings.Contains(err.Error(), "invalid post") || strings.Contains(err.Error(), "nothing to update"):
		sendError(w, err.Error(), http.StatusBadRequest)
	default:
		sendError(w, "Failed to "+verb+" post: "+err.Error(), http.StatusInternalServerError)
	}
}

func pathID(w http.ResponseWriter, r *http.Request) (int, bool) {
	vars := mux.Vars(r)
	id, err := strconv.Atoi(vars["id"])
	if err != nil {
		sendError(w, "Invalid post ID", http.StatusBadRequest)
		return 0, false
	}
	return id, true
}
