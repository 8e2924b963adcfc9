package controllers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"weblog/app/models"
	"weblog/app/repositories"
	"weblog/app/services"
)

// AuthController handles registration and login requests.
type AuthController struct {
	authService *services.AuthService
}

// NewAuthController creates a new AuthController
func NewAuthController(authService *services.AuthService) *AuthController {
	return &AuthController{authService: authService}
}

// Register handles POST /api/auth/register
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := ac.authService.Register(&req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrUserExists):
			sendError(w, "User already exists", http.StatusConflict)
		case strings.Contains(err.Error(), "invalid registration"):
			sendError(w, err.Error(), http.StatusBadRequest)
		default:
			sendError(w, "Registration failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	sendJSON(w, http.StatusCreated, resp)
}

// Login handles POST /api/auth/login
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	resp, err := ac.authService.Login(&req)
	if err != nil {
		switch {
		case errors.Is(err, repositories.ErrNotFound):
			sendError(w, "User not found", http.StatusNotFound)
		case errors.Is(err, services.ErrInvalidCredentials):
			sendError(w, "Invalid credentials", http.StatusUnauthorized)
		case strings.Contains(err.Error(), "invalid login"):
			sendError(w, err.Error(), http.StatusBadRequest)
		default:
			sendError(w, "Login failed: "+err.Error(), http.StatusInternalServerError)
		}
		return
	}

	sendJSON(w, http.StatusOK, resp)
}

// Helper methods for consistent response handling

func sendJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func sendError(w http.ResponseWriter, message string, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
