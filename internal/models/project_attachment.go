package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectAttachment struct {
	gorm.Model

	ProjectID  uint      `gorm:"not null;index"`
	FileName   string    `gorm:"not null"`
	FileURL    string    `gorm:"not null"` // URL into external storage
	UploadedBy uint      `gorm:"not null;index"`
	UploadedAt time.Time `gorm:"not null"`

	// Relationships
	Project  Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Uploader User    `gorm:"foreignKey:UploadedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
