package models

// Catalog entities are seeded reference data and read-only at runtime.

type GoalType struct {
	ID          uint64 `gorm:"primarykey" json:"id"`
	TargetLabel string `gorm:"type:varchar(100);uniqueIndex;not null" json:"target_label"`
}

type ExerciseType struct {
	ID   uint64 `gorm:"primarykey" json:"id"`
	Name string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
}

type ExerciseUnit struct {
	ID            uint64  `gorm:"primarykey" json:"id"`
	PrimaryUnit   string  `gorm:"type:varchar(50);not null" json:"primary_unit"`
	SecondaryUnit *string `gorm:"type:varchar(50)" json:"secondary_unit"`
}

type Exercise struct {
	ID             uint64  `gorm:"primarykey" json:"id"`
	Name           string  `gorm:"type:varchar(255);not null" json:"name"`
	Description    string  `gorm:"type:text;not null" json:"description"`
	Instructions   *string `gorm:"type:text" json:"instructions"`
	TargetMuscles  *string `gorm:"type:varchar(255)" json:"target_muscles"`
	Difficulty     *string `gorm:"type:varchar(50)" json:"difficulty"`
	ExerciseTypeID uint64  `gorm:"not null" json:"exercise_type_id"`
	UnitID         uint64  `gorm:"not null" json:"unit_id"`
	GoalTypeID     uint64  `gorm:"not null" json:"goal_type_id"`

	// Relations
	ExerciseType ExerciseType `gorm:"foreignKey:ExerciseTypeID" json:"exercise_type,omitempty"`
	Unit         ExerciseUnit `gorm:"foreignKey:UnitID" json:"unit,omitempty"`
	GoalType     GoalType     `gorm:"foreignKey:GoalTypeID" json:"goal_type,omitempty"`
}
