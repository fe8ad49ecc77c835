package router

import (
	"net/http"
	"time"

	"github.com/avtomaktab/avtotest-backend/internal/config"
	"github.com/avtomaktab/avtotest-backend/internal/handler"
	"github.com/avtomaktab/avtotest-backend/internal/middleware"
	"github.com/avtomaktab/avtotest-backend/internal/response"
	"github.com/avtomaktab/avtotest-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Test      *handler.TestHandler
	Stats     *handler.StatsHandler
	User      *handler.UserHandler
	Question  *handler.QuestionHandler
	Lesson    *handler.LessonHandler
	Contact   *handler.ContactHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.Brotli())

	// Question images and other uploads, cached for a year.
	uploadsGroup := router.Group("/uploads")
	uploadsGroup.Use(middleware.CacheControl(31536000))
	{
		uploadsGroup.Static("/", cfg.UploadDir)
	}

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Login and the contact form are the only unauthenticated writes;
	// both sit behind the per-IP limiter.
	publicLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── 1. Auth Group (Public, Rate Limited) ──────────────────────────
	auth := router.Group("/api/v1/auth")
	{
		auth.POST("/login", publicLimiter.Middleware(), handlers.Auth.UserLogin)
		auth.POST("/admin/login", publicLimiter.Middleware(), handlers.Auth.AdminLogin)

		// Authenticated profile routes
		auth.GET("/me", middleware.RequireUserJWT(authService), handlers.Auth.GetProfile)
		auth.POST("/logout", middleware.RequireUserJWT(authService), handlers.Auth.Logout)
	}

	// ─── 2. Public Content ─────────────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.GET("/lessons", handlers.Lesson.List)
		public.GET("/lessons/:id", handlers.Lesson.Get)
		public.POST("/contact", publicLimiter.Middleware(), handlers.Contact.Submit)
	}

	// ─── 3. User Group (JWT + Single Device) ───────────────────────────
	userAPI := router.Group("/api/v1")
	userAPI.Use(
		middleware.RequireUserJWT(authService),
		middleware.CheckSingleDeviceSession(authService),
	)
	{
		userAPI.POST("/test/start", handlers.Test.Start)
		userAPI.GET("/test/state", handlers.Test.State)
		userAPI.POST("/test/answer", handlers.Test.Answer)
		userAPI.POST("/test/check", handlers.Test.Check)
		userAPI.POST("/test/navigate", handlers.Test.Navigate)
		userAPI.POST("/test/finish", handlers.Test.Finish)
		userAPI.GET("/stats", handlers.Stats.MyStats)
	}

	// ─── 4. WebSocket Group (User WS Auth) ─────────────────────────────
	ws := router.Group("/ws/v1")
	ws.Use(middleware.RequireUserWSAuth(authService))
	{
		ws.GET("/test/stream", handlers.WS.TestStream)
	}

	// ─── 5. Admin Group (JWT) ──────────────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(middleware.RequireAdminJWT(authService))
	{
		adminAPI.GET("/dashboard", handlers.Dashboard.Summary)

		// User management
		adminAPI.GET("/users", handlers.User.List)
		adminAPI.POST("/users", handlers.User.Create)
		adminAPI.DELETE("/users/:id", handlers.User.Delete)
		adminAPI.POST("/users/:id/reset-session", handlers.User.ResetSession)
		adminAPI.GET("/users/:id/stats", handlers.Stats.UserStats)

		// Question bank management
		adminAPI.GET("/questions", handlers.Question.List)
		adminAPI.GET("/questions/:id", handlers.Question.Get)
		adminAPI.POST("/questions", handlers.Question.Create)
		adminAPI.PUT("/questions/:id", handlers.Question.Update)
		adminAPI.DELETE("/questions/:id", handlers.Question.Delete)

		// Lesson management
		adminAPI.POST("/lessons", handlers.Lesson.Create)
		adminAPI.PUT("/lessons/:id", handlers.Lesson.Update)
		adminAPI.DELETE("/lessons/:id", handlers.Lesson.Delete)

		// Contact messages
		adminAPI.GET("/contacts", handlers.Contact.List)
		adminAPI.PATCH("/contacts/:id/status", handlers.Contact.UpdateStatus)
		adminAPI.DELETE("/contacts/:id", handlers.Contact.Delete)
	}

	return router
}
