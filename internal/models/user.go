package models

import "gorm.io/gorm"

type User struct {
	gorm.Model

	FirstName       string `gorm:"not null"`
	LastName        string `gorm:"not null"`
	Email           string `gorm:"uniqueIndex;not null"`
	PasswordHash    string `gorm:"not null"`
	Role            string `gorm:"not null;default:employee"`
	Contact         string
	ProfileImageURL string
	IsActive        bool `gorm:"default:true"`

	// Relationships
	WorkspaceMemberships []WorkspaceMember `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	ProjectMemberships   []ProjectMember   `gorm:"foreignKey:UserID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	LedProjects          []Project         `gorm:"foreignKey:TeamLeadID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	CreatedTasks         []Task            `gorm:"foreignKey:CreatedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Proposals            []Proposal        `gorm:"foreignKey:GeneratedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
