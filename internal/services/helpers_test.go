package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/database"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

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
	return db
}

func setupTestStore(t *testing.T) (repository.Store, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	return repository.NewStore(db), db
}

func createTestUser(t *testing.T, db *gorm.DB, username string) auth.Principal {
	t.Helper()
	user := models.User{Username: username, PasswordHash: "hash"}
	require.NoError(t, db.Create(&user).Error)
	return auth.Principal{ID: user.ID, Username: user.Username}
}

func seedCatalog(t *testing.T, db *gorm.DB) {
	t.Helper()
	secondary := "kg"
	require.NoError(t, db.Create(&[]models.GoalType{
		{ID: 1, TargetLabel: "strength"},
		{ID: 2, TargetLabel: "endurance"},
	}).Error)
	require.NoError(t, db.Create(&[]models.ExerciseType{
		{ID: 1, Name: "compound"},
		{ID: 2, Name: "cardio"},
	}).Error)
	require.NoError(t, db.Create(&[]models.ExerciseUnit{
		{ID: 1, PrimaryUnit: "reps", SecondaryUnit: &secondary},
		{ID: 2, PrimaryUnit: "minutes"},
	}).Error)
	require.NoError(t, db.Create(&[]models.Exercise{
		{ID: 1, Name: "Squat", Description: "Barbell back squat", ExerciseTypeID: 1, UnitID: 1, GoalTypeID: 1},
		{ID: 2, Name: "Deadlift", Description: "Conventional deadlift", ExerciseTypeID: 1, UnitID: 1, GoalTypeID: 1},
		{ID: 3, Name: "Bench Press", Description: "Flat bench press", ExerciseTypeID: 1, UnitID: 1, GoalTypeID: 1},
		{ID: 4, Name: "Rowing", Description: "Indoor rower", ExerciseTypeID: 2, UnitID: 2, GoalTypeID: 2},
	}).Error)
}

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// fixedClock returns a clock that advances one second per call.
func fixedClock(start time.Time) func() time.Time {
	current := start
	return func() time.Time {
		current = current.Add(time.Second)
		return current
	}
}
