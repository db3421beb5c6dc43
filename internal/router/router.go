package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/campusq/campusq-backend/internal/config"
	"github.com/campusq/campusq-backend/internal/handler"
	"github.com/campusq/campusq-backend/internal/middleware"
	"github.com/campusq/campusq-backend/internal/response"
	"github.com/campusq/campusq-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	User     *handler.UserHandler
	Question *handler.QuestionHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	userService *service.UserService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	// Credentials (the session cookie) require an explicit origin list,
	// so AllowAllOrigins disables them.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	requireAuth := middleware.RequireAuth(authService, userService)

	// Rate limiter for credential endpoints (30 requests per minute per IP).
	authLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. User Group ─────────────────────────────────────────────────
	user := router.Group("/api/v1/user")
	{
		user.POST("/signup", authLimiter.Middleware(), handlers.User.Signup)
		user.POST("/login", authLimiter.Middleware(), handlers.User.Login)
		user.GET("/logout", handlers.User.Logout)

		// Faculty directory (public)
		user.GET("/faculty", handlers.User.FacultyBySubject)
		user.GET("/faculty/all", handlers.User.AllFaculty)
		user.GET("/subjects", middleware.CacheControl(3600), handlers.User.Subjects)

		// Roster management (admin)
		user.POST("/add-faculty", requireAuth, middleware.RequireAdmin(), handlers.User.AddFaculty)
		user.DELETE("/delete-faculty/:id", requireAuth, middleware.RequireAdmin(), handlers.User.DeleteFaculty)

		// Profile
		user.POST("/profile/:id", requireAuth, handlers.User.UpdateProfile)
	}

	// ─── 2. Question Group ─────────────────────────────────────────────
	question := router.Group("/api/v1/question")
	{
		// Public feed
		question.GET("/all", handlers.Question.All)
		question.GET("/:id", handlers.Question.ByID)

		// Lifecycle
		question.POST("/ask", requireAuth, handlers.Question.Ask)
		question.POST("/answer/:questionId", requireAuth, middleware.RequireFaculty(), handlers.Question.Answer)

		// Per-party listings
		question.GET("/student/:userId", requireAuth, handlers.Question.ByStudent)
		question.GET("/faculty/:facultyId", requireAuth, middleware.RequireFaculty(), handlers.Question.ByFaculty)
	}

	return router
}
