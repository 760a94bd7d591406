package server

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"github.com/yukikurage/workout-api/internal/handlers"
	"github.com/yukikurage/workout-api/internal/logger"
	"github.com/yukikurage/workout-api/internal/metrics"
	"github.com/yukikurage/workout-api/internal/middleware"
	"github.com/yukikurage/workout-api/internal/services"
)

// Services are the domain services exposed over HTTP. Suggestions may be nil.
type Services struct {
	Auth        *services.AuthService
	Goals       *services.GoalService
	Schedules   *services.ScheduleService
	Profiles    *services.ProfileService
	Catalog     *services.CatalogService
	Suggestions *services.SuggestionService
}

// Options carries the ambient dependencies of the router.
type Options struct {
	Log          *logger.Logger
	Metrics      *metrics.Metrics
	SessionStore sessions.Store
	SessionName  string
	Ping         handlers.Pinger
}

// NewRouter wires middleware and routes.
func NewRouter(svc Services, opts Options) *gin.Engine {
	log := opts.Log
	if log == nil {
		log = logger.Nop()
	}

	r := gin.New()
	r.Use(
		gin.Recovery(),
		middleware.RequestID(log),
		middleware.RequestLogger(log),
		middleware.Metrics(opts.Metrics),
	)
	if opts.SessionStore != nil {
		r.Use(sessions.Sessions(opts.SessionName, opts.SessionStore))
	}

	authHandler := handlers.NewAuthHandler(svc.Auth, log)
	catalogHandler := handlers.NewCatalogHandler(svc.Catalog, log)
	goalHandler := handlers.NewGoalHandler(svc.Goals, svc.Suggestions, log)
	scheduleHandler := handlers.NewScheduleHandler(svc.Schedules, log)
	profileHandler := handlers.NewProfileHandler(svc.Profiles, log)

	requireAuth := middleware.RequireAuth(svc.Auth, log)
	requireID := middleware.RequireResourceID()

	r.GET("/health", handlers.Health(opts.Ping))
	r.GET("/metrics", gin.WrapH(opts.Metrics.Handler()))

	// Auth routes (public)
	authRoutes := r.Group("/auth")
	{
		authRoutes.POST("/register", authHandler.Register)
		authRoutes.POST("/token", authHandler.Token)
		authRoutes.POST("/logout", authHandler.Logout)
		authRoutes.GET("/me", requireAuth, authHandler.GetCurrentUser)
	}

	// Catalog routes (public)
	r.GET("/exercises", catalogHandler.ListExercises)
	r.GET("/exercises/:id", requireID, catalogHandler.GetExercise)
	r.GET("/goal_types", catalogHandler.ListGoalTypes)
	r.GET("/exercise_types", catalogHandler.ListExerciseTypes)
	r.GET("/exercise_units", catalogHandler.ListExerciseUnits)

	// User routes (protected)
	user := r.Group("/user")
	user.Use(requireAuth)
	{
		user.GET("/profile", profileHandler.GetProfile)
		user.PUT("/profile", profileHandler.UpdateProfile)
		user.POST("/metric/:value", profileHandler.RecordMetric)
		user.GET("/history", profileHandler.ListHistory)
		user.DELETE("/history/:id", requireID, profileHandler.DeleteHistory)

		user.GET("/goals", goalHandler.ListGoals)
		user.POST("/goals", goalHandler.CreateGoal)
		user.POST("/goals/suggest", goalHandler.SuggestExercises)
		user.GET("/goals/:id", requireID, goalHandler.GetGoal)
		user.PUT("/goals/:id", requireID, goalHandler.UpdateGoal)
		user.DELETE("/goals/:id", requireID, goalHandler.DeleteGoal)

		user.GET("/schedules", scheduleHandler.ListSchedules)
		user.POST("/schedules", scheduleHandler.CreateSchedule)
		user.GET("/schedules/:id", requireID, scheduleHandler.GetSchedule)
		user.PUT("/schedules/:id", requireID, scheduleHandler.UpdateSchedule)
		user.DELETE("/schedules/:id", requireID, scheduleHandler.DeleteSchedule)
	}

	return r
}
