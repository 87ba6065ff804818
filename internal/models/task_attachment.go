package models

import (
	"time"

	"gorm.io/gorm"
)

type TaskAttachment struct {
	gorm.Model

	TaskID     uint      `gorm:"not null;index"`
	FileName   string    `gorm:"not null"`
	FileURL    string    `gorm:"not null"`
	UploadedBy uint      `gorm:"not null;index"`
	UploadedAt time.Time `gorm:"not null"`

	// Relationships
	Task     Task `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Uploader User `gorm:"foreignKey:UploadedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
