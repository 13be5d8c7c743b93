package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stemsi/quizxmentor-backend/internal/config"
	"github.com/stemsi/quizxmentor-backend/internal/handler"
	"github.com/stemsi/quizxmentor-backend/internal/middleware"
	"github.com/stemsi/quizxmentor-backend/internal/response"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth      *handler.AuthHandler
	Question  *handler.QuestionHandler
	Quiz      *handler.QuizHandler
	Dashboard *handler.DashboardHandler
	WS        *handler.WSHandler
	System    *handler.SystemHandler
	Static    *handler.StaticHandler
}

// SetupRouter configures all Gin route groups with appropriate middlewares.
// authLimiter may be nil, which leaves register/login unthrottled.
func SetupRouter(
	auth middleware.Authenticator,
	authLimiter *middleware.RateLimiter,
	handlers *Handlers,
	cfg *config.Config,
	log zerolog.Logger,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.New()
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	// ─── Global middleware ─────────────────────────────────────────────
	router.Use(gin.Recovery())

	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
		corsConfig.AllowCredentials = true
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	router.Use(response.RequestIDMiddleware())
	router.Use(middleware.AccessLog(log))

	// The template is already a zip archive.
	router.Use(middleware.BrotliWithConfig(middleware.BrotliConfig{
		Skipper: middleware.SkipPaths(".xlsx"),
	}))

	requireSession := middleware.RequireSession(auth, cfg.SessionCookieName)

	router.GET("/health", handlers.System.Health)
	router.GET("/questions_template.xlsx", handlers.Question.DownloadTemplate)

	// ─── 1. Public API (Rate Limited) ──────────────────────────────────
	api := router.Group("/api")
	api.Use(middleware.NoStore())

	public := api.Group("")
	if authLimiter != nil {
		public.Use(authLimiter.Middleware())
	}
	{
		public.POST("/register", handlers.Auth.Register)
		public.POST("/login", handlers.Auth.Login)
	}

	// ─── 2. Session API ────────────────────────────────────────────────
	user := api.Group("")
	user.Use(requireSession)
	{
		user.POST("/logout", handlers.Auth.Logout)
		user.GET("/user", handlers.Auth.CurrentUser)
		user.GET("/questions", handlers.Question.ListQuestions)
		user.GET("/questions/count", handlers.Question.CountQuestions)
		user.POST("/quiz/submit", handlers.Quiz.SubmitQuiz)
		user.GET("/dashboard", handlers.Dashboard.GetDashboard)
	}

	// ─── 3. Admin API ──────────────────────────────────────────────────
	admin := api.Group("")
	admin.Use(requireSession, middleware.RequireAdmin())
	{
		admin.POST("/upload", handlers.Question.UploadQuestions)
		admin.GET("/admin/stats", handlers.Dashboard.GetAdminStats)
	}

	// ─── 4. WebSocket (Admin) ──────────────────────────────────────────
	ws := router.Group("/ws")
	ws.Use(requireSession, middleware.RequireAdmin())
	{
		ws.GET("/admin/stats", handlers.WS.AdminStatsStream)
	}

	// ─── 5. Front-end ──────────────────────────────────────────────────
	router.NoRoute(middleware.CacheControl(time.Hour), handlers.Static.Serve)
	router.NoMethod(func(c *gin.Context) {
		response.Fail(c, http.StatusMethodNotAllowed, response.ErrNotFound)
	})

	return router
}
