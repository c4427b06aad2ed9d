package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/learnnest/learnnest-backend/internal/config"
	"github.com/learnnest/learnnest-backend/internal/handler"
	"github.com/learnnest/learnnest-backend/internal/identity"
	"github.com/learnnest/learnnest-backend/internal/middleware"
	"github.com/learnnest/learnnest-backend/internal/model"
	"github.com/learnnest/learnnest-backend/internal/response"
	"github.com/learnnest/learnnest-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	User           *handler.UserHandler
	TeacherRequest *handler.TeacherRequestHandler
	Class          *handler.ClassHandler
	Assignment     *handler.AssignmentHandler
	Enrollment     *handler.EnrollmentHandler
	Payment        *handler.PaymentHandler
	Review         *handler.ReviewHandler
	Stats          *handler.StatsHandler
}

// SetupRouter configures all Gin route groups with their gate chains.
// Gates run in declaration order: authentication first, then the role gate;
// the first failing gate aborts and the handler body never runs.
func SetupRouter(
	verifier identity.Verifier,
	userService *service.UserService,
	signInLimiter *middleware.RateLimiter,
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

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Reusable gates, constructed once and shared across routes.
	requireAuth := middleware.RequireAuth(verifier)
	resolveUser := middleware.ResolveUser(userService)
	requireTeacher := middleware.RequireRole(userService, model.RoleTeacher)
	requireAdmin := middleware.RequireRole(userService, model.RoleAdmin)

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok", "service": "learnnest"})
	})

	// ─── 1. Public Group (No Auth) ─────────────────────────────────────
	public := router.Group("/api/v1")
	{
		public.POST("/users", signInLimiter.Middleware(), handlers.User.SignIn)
		public.GET("/classes", handlers.Class.ListApproved)
		public.GET("/classes/popular", handlers.Class.ListPopular)
		public.GET("/classes/:id", handlers.Class.Get)
		public.GET("/classes/:id/reviews", handlers.Review.ListByClass)
		public.GET("/reviews", handlers.Review.ListLatest)
	}

	// ─── 2. Authenticated Group (Identity Only) ────────────────────────
	authed := router.Group("/api/v1")
	authed.Use(requireAuth)
	{
		authed.GET("/users/me", handlers.User.Me)
		authed.POST("/teacher-requests", handlers.TeacherRequest.Submit)
		authed.POST("/payments/intent", handlers.Payment.CreateIntent)

		// Routes below also need the stored user record, not just the
		// verified email.
		member := authed.Group("")
		member.Use(resolveUser)
		{
			member.POST("/enrollments", handlers.Enrollment.Enroll)
			member.GET("/users/me/enrollments", handlers.Enrollment.ListMine)
			member.POST("/classes/:id/reviews", handlers.Review.Create)
			member.GET("/classes/:id/assignments", handlers.Assignment.ListForClass)
			member.POST("/assignments/:id/submissions", handlers.Assignment.Submit)
		}
	}

	// ─── 3. Teacher Group (Auth + Role) ────────────────────────────────
	teacherAPI := router.Group("/api/v1/teacher")
	teacherAPI.Use(requireAuth, requireTeacher)
	{
		teacherAPI.POST("/classes", handlers.Class.Create)
		teacherAPI.GET("/classes", handlers.Class.ListMine)
		teacherAPI.PUT("/classes/:id", handlers.Class.Update)
		teacherAPI.DELETE("/classes/:id", handlers.Class.Delete)
		teacherAPI.POST("/classes/:id/assignments", handlers.Assignment.Create)
	}

	// ─── 4. Admin Group (Auth + Role) ──────────────────────────────────
	adminAPI := router.Group("/api/v1/admin")
	adminAPI.Use(requireAuth, requireAdmin)
	{
		adminAPI.GET("/users", handlers.User.Search)
		adminAPI.PATCH("/users/:id/role", handlers.User.UpdateRole)

		adminAPI.GET("/teacher-requests", handlers.TeacherRequest.List)
		adminAPI.PATCH("/teacher-requests/:id/approve", handlers.TeacherRequest.Approve)
		adminAPI.PATCH("/teacher-requests/:id/reject", handlers.TeacherRequest.Reject)

		adminAPI.GET("/classes", handlers.Class.AdminList)
		adminAPI.PATCH("/classes/:id/status", handlers.Class.UpdateStatus)

		adminAPI.GET("/stats", handlers.Stats.Get)
	}

	return router
}
