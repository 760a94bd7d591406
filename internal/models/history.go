package models

import "time"

// History is one append-only profile change record. A nil field means
// that attribute did not change in this event.
type History struct {
	ID             uint64    `gorm:"primarykey" json:"id"`
	UserID         uint64    `gorm:"not null" json:"user_id"`
	CreatedAt      time.Time `json:"created_at"`
	FullNameChange *string   `gorm:"type:varchar(255)" json:"full_name_change"`
	WeightChange   *int      `json:"weight_change"`
	HeightChange   *int      `json:"height_change"`
	MetricValue    *float64  `json:"metric_value"`
}

func (History) TableName() string {
	return "user_histories"
}
