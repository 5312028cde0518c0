package routes

import (
	"net/http"
	"path/filepath"
	"time"

	"blogicum/app/config"
	"blogicum/app/controllers"
	"blogicum/app/middleware"
	"blogicum/app/repositories"
	"blogicum/app/services"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
)

// Setup wires repositories, services and controllers over the given
// Badger DB and returns the application router.
func Setup(db *badger.DB, cfg *config.Config) *mux.Router {
	return SetupWithClock(db, cfg, time.Now)
}

// SetupWithClock is Setup with an injectable clock, so tests can pin
// "now" around scheduled publication dates.
func SetupWithClock(db *badger.DB, cfg *config.Config, now func() time.Time) *mux.Router {
	postRepo := repositories.NewBadgerPostRepository(db)
	commentRepo := repositories.NewBadgerCommentRepository(db)
	userRepo := repositories.NewBadgerUserRepository(db)
	categoryRepo := repositories.NewBadgerCategoryRepository(db)
	locationRepo := repositories.NewBadgerLocationRepository(db)
	sessionRepo := repositories.NewBadgerSessionRepository(db)

	postService := services.NewPostService(postRepo, commentRepo, userRepo, categoryRepo, locationRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	userService := services.NewUserService(userRepo)
	sessionService := services.NewSessionService(sessionRepo, userRepo, cfg.SessionTTL)
	feedService := services.NewFeedService(postRepo, commentRepo, userRepo, categoryRepo, locationRepo, cfg.PageSize)

	postController := controllers.NewPostController(postService, feedService, cfg.BasePath, cfg.MediaDir, now)
	commentController := controllers.NewCommentController(commentService, cfg.BasePath)
	userController := controllers.NewUserController(userService, sessionService, feedService, cfg.BasePath, now)
	pagesController := controllers.NewPagesController(cfg.BasePath)

	router := mux.NewRouter().StrictSlash(true)

	// Apply global middleware
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.Authenticate(sessionService))

	// Serve static assets and uploaded media
	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/",
		http.FileServer(http.Dir(filepath.Join(cfg.BasePath, "static")))))
	router.PathPrefix("/media/").Handler(http.StripPrefix("/media/",
		http.FileServer(http.Dir(cfg.MediaDir))))

	router.HandleFunc("/", postController.Index).Methods("GET")

	// Post endpoints
	posts := router.PathPrefix("/posts").Subrouter()
	posts.Handle("/create/", requireLogin(postController.Create)).Methods("GET", "POST")
	posts.HandleFunc("/{id:[0-9]+}/", postController.Detail).Methods("GET")
	posts.Handle("/{id:[0-9]+}/edit/", requireLogin(postController.Edit)).Methods("GET", "POST")
	posts.Handle("/{id:[0-9]+}/delete/", requireLogin(postController.Delete)).Methods("GET", "POST")

	// Comment endpoints
	posts.Handle("/{id:[0-9]+}/comment/", requireLogin(commentController.Add)).Methods("GET", "POST")
	posts.Handle("/{id:[0-9]+}/edit_comment/{cid:[0-9]+}/", requireLogin(commentController.Edit)).Methods("GET", "POST")
	posts.Handle("/{id:[0-9]+}/delete_comment/{cid:[0-9]+}/", requireLogin(commentController.Delete)).Methods("GET", "POST")

	// Category feed
	router.HandleFunc("/category/{slug}/", postController.Category).Methods("GET")

	// User endpoints. /profile/edit/ must be registered before the
	// username route or it would match as a profile name.
	router.Handle("/profile/edit/", requireLogin(userController.EditProfile)).Methods("GET", "POST")
	router.HandleFunc("/profile/{username}/", userController.Profile).Methods("GET")
	router.HandleFunc("/registration/", userController.Register).Methods("GET", "POST")
	router.HandleFunc("/login/", userController.Login).Methods("GET", "POST")
	router.HandleFunc("/logout/", userController.Logout).Methods("POST")
	router.Handle("/profile_redirect/", requireLogin(userController.ProfileRedirect)).Methods("GET")

	// Static informational pages
	router.HandleFunc("/about/", pagesController.About).Methods("GET")
	router.HandleFunc("/rules/", pagesController.Rules).Methods("GET")

	return router
}

func requireLogin(h http.HandlerFunc) http.Handler {
	return middleware.RequireLogin(h)
}

// StartServer starts the HTTP server on the specified address with the
// given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
