package handlers

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/config"
	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/logger"
	"github.com/yukikurage/workout-api/internal/middleware"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
	"github.com/yukikurage/workout-api/internal/services"
)

type testEnv struct {
	db          *gorm.DB
	store       repository.Store
	tokens      *auth.TokenService
	authService *services.AuthService
	router      *gin.Engine
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, database.Migrate(db))

	tokens, err := auth.NewTokenService(config.JWTConfig{
		Secret:            "handler-test-secret-0123",
		Issuer:            "workout-api-test",
		ExpirationMinutes: 60,
	})
	require.NoError(t, err)

	store := repository.NewStore(db)
	log := logger.Nop()
	authService := services.NewAuthService(store, tokens)

	authHandler := NewAuthHandler(authService, log)
	catalogHandler := NewCatalogHandler(services.NewCatalogService(store), log)
	goalHandler := NewGoalHandler(services.NewGoalService(store), nil, log)
	scheduleHandler := NewScheduleHandler(services.NewScheduleService(store), log)
	profileHandler := NewProfileHandler(services.NewProfileService(store, nil), log)

	r := gin.New()
	r.Use(sessions.Sessions("test_session", cookie.NewStore([]byte("secret"))))
	requireAuth := middleware.RequireAuth(authService, log)
	requireID := middleware.RequireResourceID()

	r.POST("/auth/register", authHandler.Register)
	r.POST("/auth/token", authHandler.Token)
	r.POST("/auth/logout", authHandler.Logout)
	r.GET("/auth/me", requireAuth, authHandler.GetCurrentUser)

	r.GET("/exercises", catalogHandler.ListExercises)
	r.GET("/exercises/:id", requireID, catalogHandler.GetExercise)
	r.GET("/goal_types", catalogHandler.ListGoalTypes)
	r.GET("/exercise_types", catalogHandler.ListExerciseTypes)
	r.GET("/exercise_units", catalogHandler.ListExerciseUnits)

	user := r.Group("/user", requireAuth)
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

	return &testEnv{
		db:          db,
		store:       store,
		tokens:      tokens,
		authService: authService,
		router:      r,
	}
}

// createUser registers a user and returns a bearer token for it.
func (e *testEnv) createUser(t *testing.T, username string) (auth.Principal, string) {
	t.Helper()
	user, err := e.authService.Register(services.RegisterInput{Username: username, Password: "supersecret"})
	require.NoError(t, err)
	p := auth.Principal{ID: user.ID, Username: user.Username}
	token, _, err := e.tokens.Issue(p)
	require.NoError(t, err)
	return p, token
}

func (e *testEnv) seedCatalog(t *testing.T) {
	t.Helper()
	secondary := "kg"
	require.NoError(t, e.db.Create(&[]models.GoalType{
		{ID: 1, TargetLabel: "strength"},
		{ID: 2, TargetLabel: "endurance"},
	}).Error)
	require.NoError(t, e.db.Create(&[]models.ExerciseType{
		{ID: 1, Name: "compound"},
		{ID: 2, Name: "cardio"},
	}).Error)
	require.NoError(t, e.db.Create(&[]models.ExerciseUnit{
		{ID: 1, PrimaryUnit: "reps", SecondaryUnit: &secondary},
		{ID: 2, PrimaryUnit: "minutes"},
	}).Error)
	require.NoError(t, e.db.Create(&[]models.Exercise{
		{ID: 1, Name: "Squat", Description: "Barbell back squat", ExerciseTypeID: 1, UnitID: 1, GoalTypeID: 1},
		{ID: 2, Name: "Deadlift", Description: "Conventional deadlift", ExerciseTypeID: 1, UnitID: 1, GoalTypeID: 1},
		{ID: 3, Name: "Rowing", Description: "Indoor rower", ExerciseTypeID: 2, UnitID: 2, GoalTypeID: 2},
	}).Error)
}

// do sends a JSON request. token may be empty.
func (e *testEnv) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details []struct {
		Field string `json:"field"`
		Rule  string `json:"rule"`
	} `json:"details"`
}

func requireStatus(t *testing.T, w *httptest.ResponseRecorder, status int) {
	t.Helper()
	require.Equal(t, status, w.Code, w.Body.String())
}

