package models

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID           uint64         `gorm:"primarykey" json:"id"`
	Username     string         `gorm:"type:varchar(100);uniqueIndex;not null" json:"username"`
	FullName     string         `gorm:"type:varchar(255)" json:"full_name"`
	PasswordHash string         `gorm:"type:varchar(255);not null" json:"-"`
	Weight       *int           `json:"weight"`
	Height       *int           `json:"height"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	Goals     []Goal     `gorm:"foreignKey:UserID" json:"-"`
	Schedules []Schedule `gorm:"foreignKey:UserID" json:"-"`
	History   []History  `gorm:"foreignKey:UserID" json:"-"`
}
