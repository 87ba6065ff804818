package models

import "gorm.io/gorm"

type Workspace struct {
	gorm.Model

	Name        string `gorm:"uniqueIndex;not null"`
	Description string
	InviteCode  string `gorm:"uniqueIndex;not null"`

	// Relationships
	Members  []WorkspaceMember `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Projects []Project         `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
