package routes

import (
	"net/http"

	"weblog/app/auth"
	"weblog/app/controllers"
	"weblog/app/middleware"
	"weblog/app/repositories"
	"weblog/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// Setup wires repositories, services, and controllers onto a router.
func Setup(db *badger.DB, jwtService *auth.JWTService, logger *zap.Logger) *mux.Router {
	userRepo := repositories.NewBadgerUserRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)

	authService := services.NewAuthService(jwtService, userRepo)
	blogService := services.NewBlogService(postRepo)

	authController := controllers.NewAuthController(authService)
	postController := controllers.NewPostController(blogService)

	router := mux.NewRouter()

	// Apply global middleware
	router.Use(middleware.Logger(logger))
	router.Use(middleware.Recoverer(logger))
	router.Use(middleware.CORS)

	router.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	api := router.PathPrefix("/api").Subrouter()

	// Auth endpoints
	authRoutes := api.PathPrefix("/auth").Subrouter()
	authRoutes.HandleFunc("/register", authController.Register).Methods("POST")
	authRoutes.HandleFunc("/login", authController.Login).Methods("POST")

	// Public post endpoints
	posts := api.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.HandleFunc("/{id:[0-9]+}", postController.Show).Methods("GET")

	// Protected post endpoints
	protected := api.PathPrefix("/posts").Subrouter()
	protected.Use(middleware.Authenticate(jwtService))
	protected.HandleFunc("", postController.Create).Methods("POST")
	protected.HandleFunc("/{id:[0-9]+}", postController.Edit).Methods("PUT")
	protected.HandleFunc("/{id:[0-9]+}", postController.Delete).Methods("DELETE")

	return router
}
