package services

import (
	"context"
	"fmt"
	"time"

	"github.com/yukikurage/workout-api/internal/cache"
	"github.com/yukikurage/workout-api/internal/logger"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

const cacheTimeout = 200 * time.Millisecond

// CacheRecorder observes catalog cache lookups.
type CacheRecorder interface {
	CacheLookup(hit bool)
}

// CatalogService serves the seeded reference data, optionally through a
// read-through cache. Cache failures fall back to the store.
type CatalogService struct {
	store    repository.Store
	cache    cache.Cache
	ttl      time.Duration
	log      *logger.Logger
	recorder CacheRecorder
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*CatalogService)

// WithCache serves reads from c, storing misses for ttl.
func WithCache(c cache.Cache, ttl time.Duration) CatalogOption {
	return func(s *CatalogService) {
		s.cache = c
		s.ttl = ttl
	}
}

// WithCacheRecorder reports cache hits and misses to r.
func WithCacheRecorder(r CacheRecorder) CatalogOption {
	return func(s *CatalogService) {
		s.recorder = r
	}
}

// WithLogger logs cache failures to log.
func WithLogger(log *logger.Logger) CatalogOption {
	return func(s *CatalogService) {
		s.log = log
	}
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store repository.Store, opts ...CatalogOption) *CatalogService {
	s := &CatalogService{store: store, log: logger.Nop()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *CatalogService) GetGoalType(id uint64) (*models.GoalType, error) {
	return cached(s, fmt.Sprintf("goal_type:%d", id), func() (*models.GoalType, error) {
		goalType, err := s.store.Catalog().FindGoalType(id)
		if err != nil {
			return nil, lookupFailure("find goal type", err, ErrGoalTypeNotFound)
		}
		return goalType, nil
	})
}

func (s *CatalogService) GetExercise(id uint64) (*models.Exercise, error) {
	return cached(s, fmt.Sprintf("exercise:%d", id), func() (*models.Exercise, error) {
		exercise, err := s.store.Catalog().FindExercise(id)
		if err != nil {
			return nil, lookupFailure("find exercise", err, ErrExerciseNotFound)
		}
		return exercise, nil
	})
}

func (s *CatalogService) GetExerciseType(id uint64) (*models.ExerciseType, error) {
	return cached(s, fmt.Sprintf("exercise_type:%d", id), func() (*models.ExerciseType, error) {
		exerciseType, err := s.store.Catalog().FindExerciseType(id)
		if err != nil {
			return nil, lookupFailure("find exercise type", err, ErrExerciseTypeNotFound)
		}
		return exerciseType, nil
	})
}

func (s *CatalogService) GetExerciseUnit(id uint64) (*models.ExerciseUnit, error) {
	return cached(s, fmt.Sprintf("exercise_unit:%d", id), func() (*models.ExerciseUnit, error) {
		unit, err := s.store.Catalog().FindExerciseUnit(id)
		if err != nil {
			return nil, lookupFailure("find exercise unit", err, ErrExerciseUnitNotFound)
		}
		return unit, nil
	})
}

// ListGoalTypes returns every goal type. An empty catalog is ErrNoGoalTypes.
func (s *CatalogService) ListGoalTypes() ([]models.GoalType, error) {
	return cached(s, "goal_types", func() ([]models.GoalType, error) {
		goalTypes, err := s.store.Catalog().ListGoalTypes()
		if err != nil {
			return nil, storeFailure("list goal types", err)
		}
		if len(goalTypes) == 0 {
			return nil, ErrNoGoalTypes
		}
		return goalTypes, nil
	})
}

func (s *CatalogService) ListExerciseTypes() ([]models.ExerciseType, error) {
	return cached(s, "exercise_types", func() ([]models.ExerciseType, error) {
		exerciseTypes, err := s.store.Catalog().ListExerciseTypes()
		if err != nil {
			return nil, storeFailure("list exercise types", err)
		}
		if len(exerciseTypes) == 0 {
			return nil, ErrNoExerciseTypes
		}
		return exerciseTypes, nil
	})
}

func (s *CatalogService) ListExerciseUnits() ([]models.ExerciseUnit, error) {
	return cached(s, "exercise_units", func() ([]models.ExerciseUnit, error) {
		units, err := s.store.Catalog().ListExerciseUnits()
		if err != nil {
			return nil, storeFailure("list exercise units", err)
		}
		if len(units) == 0 {
			return nil, ErrNoExerciseUnits
		}
		return units, nil
	})
}

// ListExercises returns exercises ordered by exercise type, optionally only
// those serving goalTypeID. An empty result is ErrNoExercises.
func (s *CatalogService) ListExercises(goalTypeID *uint64) ([]models.Exercise, error) {
	key := "exercises"
	if goalTypeID != nil {
		key = fmt.Sprintf("exercises:goal_type:%d", *goalTypeID)
	}
	return cached(s, key, func() ([]models.Exercise, error) {
		exercises, err := s.store.Catalog().ListExercises(repository.ExerciseFilter{GoalTypeID: goalTypeID})
		if err != nil {
			return nil, storeFailure("list exercises", err)
		}
		if len(exercises) == 0 {
			return nil, ErrNoExercises
		}
		return exercises, nil
	})
}

// cached serves key from the cache when possible and stores successful loads.
func cached[T any](s *CatalogService, key string, load func() (T, error)) (T, error) {
	if s.cache == nil {
		return load()
	}

	ctx, cancel := context.WithTimeout(context.Background(), cacheTimeout)
	defer cancel()

	var hit T
	found, err := s.cache.Get(ctx, key, &hit)
	if err != nil {
		s.log.Warn(ctx, "catalog cache read failed", err)
	}
	if found {
		s.observe(true)
		return hit, nil
	}
	s.observe(false)

	value, err := load()
	if err != nil {
		return value, err
	}
	if err := s.cache.Set(ctx, key, value, s.ttl); err != nil {
		s.log.Warn(ctx, "catalog cache write failed", err)
	}
	return value, nil
}

func (s *CatalogService) observe(hit bool) {
	if s.recorder != nil {
		s.recorder.CacheLookup(hit)
	}
}
