package database

import (
	"fmt"

	"gorm.io/gorm"
)

type index struct {
	table   string
	name    string
	columns string
}

// lookupIndexes back the ownership predicates and list orderings.
var lookupIndexes = []index{
	{"goals", "idx_goals_user_id_start_date", "user_id, start_date"},
	{"goals", "idx_goals_goal_type_id", "goal_type_id"},
	{"schedules", "idx_schedules_user_id", "user_id"},
	{"schedules", "idx_schedules_goal_id", "goal_id"},
	{"user_histories", "idx_user_histories_user_id_created_at", "user_id, created_at"},
	{"exercises", "idx_exercises_goal_type_id", "goal_type_id"},
	{"exercises", "idx_exercises_exercise_type_id", "exercise_type_id"},
}

// AddIndexes creates the lookup indexes that are missing. It returns the
// names of the indexes it created.
func AddIndexes(db *gorm.DB) ([]string, error) {
	var created []string
	migrator := db.Migrator()

	for _, idx := range lookupIndexes {
		if migrator.HasIndex(idx.table, idx.name) {
			continue
		}

		sql := fmt.Sprintf("CREATE INDEX %s ON %s (%s)", idx.name, idx.table, idx.columns)
		if err := db.Exec(sql).Error; err != nil {
			return created, fmt.Errorf("failed to create index %s: %w", idx.name, err)
		}
		created = append(created, idx.name)
	}

	return created, nil
}

// MigrateDatabase runs schema migration followed by index creation.
func MigrateDatabase(db *gorm.DB) ([]string, error) {
	if err := Migrate(db); err != nil {
		return nil, err
	}

	created, err := AddIndexes(db)
	if err != nil {
		return created, fmt.Errorf("failed to add indexes: %w", err)
	}
	return created, nil
}
