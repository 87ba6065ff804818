package models

import (
	"time"

	"gorm.io/gorm"
)

type WorkspaceMember struct {
	gorm.Model

	UserID      uint      `gorm:"not null;uniqueIndex:idx_user_workspace"`
	WorkspaceID uint      `gorm:"not null;uniqueIndex:idx_user_workspace"`
	JoinedAt    time.Time `gorm:"not null"`

	// Relationships
	User      User      `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Workspace Workspace `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
