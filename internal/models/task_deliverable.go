package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskDeliverable struct {
	gorm.Model

	TaskID      uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	IsSubmitted bool `gorm:"default:false;not null"`
	SubmittedAt *time.Time

	// Relationships
	Task Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
