package models

import (
	"time"

	"gorm.io/gorm"
)

type Task struct {
	gorm.Model

	TaskCode    string `gorm:"uniqueIndex;not null"`
	ProjectID   uint   `gorm:"not null;index"`
	AssignedTo  uint   `gorm:"not null;index"`
	CreatedBy   uint   `gorm:"not null;index"`
	Title       string `gorm:"not null"`
	Description string
	Status      string `gorm:"not null;default:todo"`
	Priority    string `gorm:"not null;default:medium"`
	DueDate     *time.Time

	// Relationships
	Project      Project           `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Assignee     User              `gorm:"foreignKey:AssignedTo;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Attachments  []TaskAttachment  `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Deliverables []TaskDeliverable `gorm:"foreignKey:TaskID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
