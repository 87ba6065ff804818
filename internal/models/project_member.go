package models

import (
	"time"

	"gorm.io/gorm"
)

type ProjectMember struct {
	gorm.Model

	UserID        uint   `gorm:"not null;uniqueIndex:idx_user_project"`
	ProjectID     uint   `gorm:"not null;uniqueIndex:idx_user_project"`
	RoleInProject string // e.g. "frontend dev", "QA"
	JoinedAt      time.Time

	// Relationships
	User    User    `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Project Project `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
