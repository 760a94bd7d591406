package main

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/yukikurage/workout-api/internal/models"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "workoutctl.db")
	t.Setenv("WORKOUT_JWT_SECRET", "workoutctl-test-secret")
	t.Setenv("WORKOUT_DB_DRIVER", "sqlite")
	t.Setenv("WORKOUT_DB_DSN", dsn)
	t.Setenv("WORKOUT_SESSION_STORE", "cookie")
	t.Setenv("WORKOUT_LOG_LEVEL", "error")
	return dsn
}

func execute(args ...string) error {
	rootCmd.SetArgs(args)
	return rootCmd.Execute()
}

func TestMigrateSeedAndToken(t *testing.T) {
	dsn := setupEnv(t)

	require.NoError(t, execute("migrate"))
	require.NoError(t, execute("seed", "--file", filepath.Join("..", "..", "configs", "catalog.yaml")))
	require.NoError(t, execute("seed", "--file", filepath.Join("..", "..", "configs", "catalog.yaml")))

	check, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := check.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	var exercises int64
	require.NoError(t, check.Model(&models.Exercise{}).Count(&exercises).Error)
	assert.Equal(t, int64(8), exercises)

	require.NoError(t, check.Create(&models.User{Username: "alice", PasswordHash: "hash"}).Error)
	assert.NoError(t, execute("token", "--user", "alice"))
	assert.Error(t, execute("token", "--user", "nobody"))
}

func TestSeedRejectsMissingFile(t *testing.T) {
	setupEnv(t)

	assert.Error(t, execute("seed", "--file", "does-not-exist.yaml"))
}
