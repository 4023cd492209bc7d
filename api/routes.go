package api

import (
	"github.com/connectpro/connectpro/internal/config"
	"github.com/connectpro/connectpro/internal/db"
	"github.com/connectpro/connectpro/internal/email"
	"github.com/connectpro/connectpro/internal/repository/sqlite"
	"github.com/gorilla/mux"
)

func SetupRoutes(cfg *config.Config, version, buildTime string, db *db.DB, mailer *email.Client) *mux.Router {
	r := mux.NewRouter()

	// Middleware chain
	r.Use(LoggingMiddleware)
	r.Use(CORSMiddleware)
	r.Use(RecoveryMiddleware)

	// Repository
	repo := sqlite.New(db)

	// Create handlers
	systemHandler := &SystemHandler{}
	authHandler := NewAuthHandler(repo, cfg.JWTSecret, cfg.TokenDuration)
	otpHandler := NewOtpHandler(repo, repo, mailer)
	directoryHandler := NewDirectoryHandler(repo)
	postsHandler := NewPostsHandler(repo, repo, repo)
	jobOrdersHandler := NewJobOrdersHandler(repo, repo)
	contactHandler := NewContactHandler(repo)

	// System endpoints
	r.HandleFunc("/version", systemHandler.VersionHandler(version, buildTime)).Methods("GET")
	r.HandleFunc("/health", systemHandler.HealthHandler).Methods("GET")

	// Open endpoints
	open := r.PathPrefix("/api").Subrouter()
	open.HandleFunc("/contact", contactHandler.SubmitContact).Methods("POST")
	open.HandleFunc("/newsletter", contactHandler.SubscribeNewsletter).Methods("POST")
	open.HandleFunc("/signup", authHandler.Signup).Methods("POST")
	open.HandleFunc("/login", authHandler.Login).Methods("POST")
	open.HandleFunc("/logout", authHandler.Logout).Methods("POST")
	open.HandleFunc("/send-otp", otpHandler.SendOtp).Methods("POST")
	open.HandleFunc("/verify-otp", otpHandler.VerifyOtp).Methods("POST")
	open.HandleFunc("/businesses", directoryHandler.GetBusinesses).Methods("GET")
	open.HandleFunc("/contractors", directoryHandler.GetContractors).Methods("GET")
	open.HandleFunc("/profile/{id:[0-9]+}", directoryHandler.GetProfile).Methods("GET")
	open.HandleFunc("/posts", postsHandler.ListPosts).Methods("GET")
	open.HandleFunc("/posts/user/{userId:[0-9]+}", postsHandler.ListPostsByUser).Methods("GET")
	open.HandleFunc("/posts/{id:[0-9]+}", postsHandler.GetPost).Methods("GET")
	open.HandleFunc("/posts/{id:[0-9]+}/comments", postsHandler.ListComments).Methods("GET")

	// Session-protected endpoints
	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(SessionMiddleware(cfg.JWTSecret))
	protected.HandleFunc("/user", authHandler.CurrentUser).Methods("GET")
	protected.HandleFunc("/posts", postsHandler.CreatePost).Methods("POST")
	protected.HandleFunc("/posts/for-you", postsHandler.ForYouFeed).Methods("GET")
	protected.HandleFunc("/posts/{id:[0-9]+}", postsHandler.DeletePost).Methods("DELETE")
	protected.HandleFunc("/posts/{id:[0-9]+}/like", postsHandler.ToggleLike).Methods("POST")
	protected.HandleFunc("/posts/{id:[0-9]+}/liked", postsHandler.GetLiked).Methods("GET")
	protected.HandleFunc("/posts/{id:[0-9]+}/comments", postsHandler.CreateComment).Methods("POST")
	protected.HandleFunc("/posts/{id:[0-9]+}/comments/{commentId:[0-9]+}", postsHandler.DeleteComment).Methods("DELETE")
	protected.HandleFunc("/job-orders", jobOrdersHandler.CreateJobOrder).Methods("POST")
	protected.HandleFunc("/job-orders", jobOrdersHandler.ListJobOrders).Methods("GET")
	protected.HandleFunc("/job-orders/{id:[0-9]+}", jobOrdersHandler.GetJobOrder).Methods("GET")
	protected.HandleFunc("/job-orders/{id:[0-9]+}", jobOrdersHandler.UpdateJobOrder).Methods("PUT")
	protected.HandleFunc("/job-orders/{id:[0-9]+}", jobOrdersHandler.DeleteJobOrder).Methods("DELETE")

	return r
}
