package services

import (
	"math"
	"strings"
	"time"

	"github.com/yukikurage/workout-api/internal/auth"
	"github.com/yukikurage/workout-api/internal/models"
	"github.com/yukikurage/workout-api/internal/repository"
)

// HistoryRecorder observes appended history records.
type HistoryRecorder interface {
	HistoryRecorded(kind string)
}

// ProfileService applies profile changes and keeps the append-only history
// of what changed.
type ProfileService struct {
	store    repository.Store
	recorder HistoryRecorder
	now      func() time.Time
}

// NewProfileService creates a new ProfileService. recorder may be nil.
func NewProfileService(store repository.Store, recorder HistoryRecorder) *ProfileService {
	return &ProfileService{store: store, recorder: recorder, now: time.Now}
}

// ProfilePatch holds the profile fields to compare and apply. Nil fields are
// not considered.
type ProfilePatch struct {
	FullName *string
	Weight   *int
	Height   *int
}

// GetProfile returns the caller's user record.
func (s *ProfileService) GetProfile(p auth.Principal) (*models.User, error) {
	user, err := s.store.Users().FindByID(p.ID)
	if err != nil {
		return nil, lookupFailure("find user", err, ErrUserNotFound)
	}
	return user, nil
}

// ApplyProfileChange applies the fields of patch that differ from the stored
// profile and appends one history record naming the new values. Unchanged
// fields stay nil in the record; a patch that changes nothing still appends
// an empty record.
func (s *ProfileService) ApplyProfileChange(p auth.Principal, patch ProfilePatch) (*models.History, error) {
	if (patch.Weight != nil && *patch.Weight < 0) || (patch.Height != nil && *patch.Height < 0) {
		return nil, ErrNegativeMeasure
	}

	var record *models.History
	err := inTransaction(s.store, func(tx repository.Store) error {
		user, err := tx.Users().FindByID(p.ID)
		if err != nil {
			return lookupFailure("find user", err, ErrUserNotFound)
		}

		record = &models.History{UserID: user.ID, CreatedAt: s.now()}
		changed := false

		if patch.FullName != nil {
			fullName := strings.TrimSpace(*patch.FullName)
			if fullName != user.FullName {
				user.FullName = fullName
				record.FullNameChange = ptr(fullName)
				changed = true
			}
		}
		if patch.Weight != nil && !intPtrEqual(user.Weight, *patch.Weight) {
			user.Weight = ptr(*patch.Weight)
			record.WeightChange = ptr(*patch.Weight)
			changed = true
		}
		if patch.Height != nil && !intPtrEqual(user.Height, *patch.Height) {
			user.Height = ptr(*patch.Height)
			record.HeightChange = ptr(*patch.Height)
			changed = true
		}

		if changed {
			if err := tx.Users().Update(user); err != nil {
				return storeFailure("update user", err)
			}
		}
		if err := tx.Histories().Create(record); err != nil {
			return storeFailure("append history", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.observe("profile")
	return record, nil
}

// RecordMetric appends a history record carrying only value.
func (s *ProfileService) RecordMetric(p auth.Principal, value float64) (*models.History, error) {
	if math.IsNaN(value) || math.IsInf(value, 0) || value < 0 {
		return nil, ErrInvalidMetricValue
	}

	var record *models.History
	err := inTransaction(s.store, func(tx repository.Store) error {
		if _, err := tx.Users().FindByID(p.ID); err != nil {
			return lookupFailure("find user", err, ErrUserNotFound)
		}

		record = &models.History{UserID: p.ID, CreatedAt: s.now(), MetricValue: ptr(value)}
		if err := tx.Histories().Create(record); err != nil {
			return storeFailure("append history", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.observe("metric")
	return record, nil
}

// ListHistory returns the caller's history oldest first. An empty result is
// ErrNoHistory.
func (s *ProfileService) ListHistory(p auth.Principal) ([]models.History, error) {
	records, err := s.store.Histories().ListByUser(p.ID)
	if err != nil {
		return nil, storeFailure("list history", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHistory
	}
	return records, nil
}

// DeleteHistory removes one of the caller's history records.
func (s *ProfileService) DeleteHistory(p auth.Principal, recordID uint64) error {
	return inTransaction(s.store, func(tx repository.Store) error {
		deleted, err := tx.Histories().DeleteOwned(p.ID, recordID)
		if err != nil {
			return storeFailure("delete history", err)
		}
		if deleted == 0 {
			return ErrHistoryNotFound
		}
		return nil
	})
}

func (s *ProfileService) observe(kind string) {
	if s.recorder != nil {
		s.recorder.HistoryRecorded(kind)
	}
}
