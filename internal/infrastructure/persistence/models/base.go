package models

import "time"

// BaseModel provides the timestamp columns shared by all tables
type BaseModel struct {
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
