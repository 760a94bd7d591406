package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// ExerciseIDSet is a set of exercise ids kept sorted and free of duplicates.
// It is stored as a JSON array in a text column.
type ExerciseIDSet []uint64

// NewExerciseIDSet normalizes ids into a set. The result is never nil.
func NewExerciseIDSet(ids ...uint64) ExerciseIDSet {
	set := make(ExerciseIDSet, len(ids))
	copy(set, ids)
	slices.Sort(set)
	return slices.Compact(set)
}

// Contains reports whether id is in the set.
func (s ExerciseIDSet) Contains(id uint64) bool {
	_, found := slices.BinarySearch(s, id)
	return found
}

// Slice returns a plain copy of the ids.
func (s ExerciseIDSet) Slice() []uint64 {
	out := make([]uint64, len(s))
	copy(out, s)
	return out
}

func (s ExerciseIDSet) MarshalJSON() ([]byte, error) {
	if s == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]uint64(s))
}

func (s *ExerciseIDSet) UnmarshalJSON(data []byte) error {
	var ids []uint64
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewExerciseIDSet(ids...)
	return nil
}

func (s ExerciseIDSet) Value() (driver.Value, error) {
	b, err := json.Marshal([]uint64(NewExerciseIDSet(s...)))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (s *ExerciseIDSet) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = ExerciseIDSet{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported exercise id set type %T", value)
	}
	if len(raw) == 0 {
		*s = ExerciseIDSet{}
		return nil
	}

	var ids []uint64
	if err := json.Unmarshal(raw, &ids); err != nil {
		return fmt.Errorf("decode exercise id set: %w", err)
	}
	*s = NewExerciseIDSet(ids...)
	return nil
}
