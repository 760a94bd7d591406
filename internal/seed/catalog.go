package seed

import (
	"fmt"
	"io"
	"os"

	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"

	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

// Catalog is the reference data file format.
type Catalog struct {
	GoalTypes     []GoalType     `yaml:"goal_types"`
	ExerciseTypes []ExerciseType `yaml:"exercise_types"`
	ExerciseUnits []ExerciseUnit `yaml:"exercise_units"`
	Exercises     []Exercise     `yaml:"exercises"`
}

type GoalType struct {
	ID          uint64 `yaml:"id"`
	TargetLabel string `yaml:"target_label"`
}

type ExerciseType struct {
	ID   uint64 `yaml:"id"`
	Name string `yaml:"name"`
}

type ExerciseUnit struct {
	ID            uint64  `yaml:"id"`
	PrimaryUnit   string  `yaml:"primary_unit"`
	SecondaryUnit *string `yaml:"secondary_unit,omitempty"`
}

type Exercise struct {
	ID             uint64  `yaml:"id"`
	Name           string  `yaml:"name"`
	Description    string  `yaml:"description"`
	Instructions   *string `yaml:"instructions,omitempty"`
	TargetMuscles  *string `yaml:"target_muscles,omitempty"`
	Difficulty     *string `yaml:"difficulty,omitempty"`
	ExerciseTypeID uint64  `yaml:"exercise_type_id"`
	UnitID         uint64  `yaml:"unit_id"`
	GoalTypeID     uint64  `yaml:"goal_type_id"`
}

// Summary counts the rows written by Apply.
type Summary struct {
	GoalTypes     int
	ExerciseTypes int
	ExerciseUnits int
	Exercises     int
}

// LoadFile reads and validates a catalog file.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML catalog and validates it. Unknown keys are rejected.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if err == io.EOF {
			return &c, nil
		}
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate reports every problem in the catalog, not just the first.
func (c *Catalog) Validate() error {
	var errs error

	goalTypes := make(map[uint64]struct{}, len(c.GoalTypes))
	for _, gt := range c.GoalTypes {
		errs = multierr.Append(errs, checkID("goal type", gt.ID, goalTypes))
		if gt.TargetLabel == "" {
			errs = multierr.Append(errs, fmt.Errorf("goal type %d: target_label is required", gt.ID))
		}
	}

	exerciseTypes := make(map[uint64]struct{}, len(c.ExerciseTypes))
	for _, et := range c.ExerciseTypes {
		errs = multierr.Append(errs, checkID("exercise type", et.ID, exerciseTypes))
		if et.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("exercise type %d: name is required", et.ID))
		}
	}

	units := make(map[uint64]struct{}, len(c.ExerciseUnits))
	for _, u := range c.ExerciseUnits {
		errs = multierr.Append(errs, checkID("exercise unit", u.ID, units))
		if u.PrimaryUnit == "" {
			errs = multierr.Append(errs, fmt.Errorf("exercise unit %d: primary_unit is required", u.ID))
		}
	}

	exercises := make(map[uint64]struct{}, len(c.Exercises))
	for _, e := range c.Exercises {
		errs = multierr.Append(errs, checkID("exercise", e.ID, exercises))
		if e.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("exercise %d: name is required", e.ID))
		}
		if _, ok := goalTypes[e.GoalTypeID]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("exercise %d: unknown goal_type_id %d", e.ID, e.GoalTypeID))
		}
		if _, ok := exerciseTypes[e.ExerciseTypeID]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("exercise %d: unknown exercise_type_id %d", e.ID, e.ExerciseTypeID))
		}
		if _, ok := units[e.UnitID]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("exercise %d: unknown unit_id %d", e.ID, e.UnitID))
		}
	}

	return errs
}

func checkID(kind string, id uint64, seen map[uint64]struct{}) error {
	if id == 0 {
		return fmt.Errorf("%s: id is required", kind)
	}
	if _, dup := seen[id]; dup {
		return fmt.Errorf("%s %d: duplicate id", kind, id)
	}
	seen[id] = struct{}{}
	return nil
}

// Apply upserts the catalog in one transaction. Running it twice leaves the
// same rows.
func Apply(store repository.Store, c *Catalog) (Summary, error) {
	err := store.Transaction(func(tx repository.Store) error {
		catalog := tx.Catalog()
		if err := catalog.UpsertGoalTypes(c.goalTypes()); err != nil {
			return fmt.Errorf("upsert goal types: %w", err)
		}
		if err := catalog.UpsertExerciseTypes(c.exerciseTypes()); err != nil {
			return fmt.Errorf("upsert exercise types: %w", err)
		}
		if err := catalog.UpsertExerciseUnits(c.exerciseUnits()); err != nil {
			return fmt.Errorf("upsert exercise units: %w", err)
		}
		if err := catalog.UpsertExercises(c.exercises()); err != nil {
			return fmt.Errorf("upsert exercises: %w", err)
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}
	return Summary{
		GoalTypes:     len(c.GoalTypes),
		ExerciseTypes: len(c.ExerciseTypes),
		ExerciseUnits: len(c.ExerciseUnits),
		Exercises:     len(c.Exercises),
	}, nil
}

func (c *Catalog) goalTypes() []models.GoalType {
	rows := make([]models.GoalType, 0, len(c.GoalTypes))
	for _, gt := range c.GoalTypes {
		rows = append(rows, models.GoalType{ID: gt.ID, TargetLabel: gt.TargetLabel})
	}
	return rows
}

func (c *Catalog) exerciseTypes() []models.ExerciseType {
	rows := make([]models.ExerciseType, 0, len(c.ExerciseTypes))
	for _, et := range c.ExerciseTypes {
		rows = append(rows, models.ExerciseType{ID: et.ID, Name: et.Name})
	}
	return rows
}

func (c *Catalog) exerciseUnits() []models.ExerciseUnit {
	rows := make([]models.ExerciseUnit, 0, len(c.ExerciseUnits))
	for _, u := range c.ExerciseUnits {
		rows = append(rows, models.ExerciseUnit{ID: u.ID, PrimaryUnit: u.PrimaryUnit, SecondaryUnit: u.SecondaryUnit})
	}
	return rows
}

func (c *Catalog) exercises() []models.Exercise {
	rows := make([]models.Exercise, 0, len(c.Exercises))
	for _, e := range c.Exercises {
		rows = append(rows, models.Exercise{
			ID:             e.ID,
			Name:           e.Name,
			Description:    e.Description,
			Instructions:   e.Instructions,
			TargetMuscles:  e.TargetMuscles,
			Difficulty:     e.Difficulty,
			ExerciseTypeID: e.ExerciseTypeID,
			UnitID:         e.UnitID,
			GoalTypeID:     e.GoalTypeID,
		})
	}
	return rows
}
