package models

import (
	"time"

	"gorm.io/gorm"
)

type Project struct {
	gorm.Model

	Name        string `gorm:"not null"`
	Description string
	WorkspaceID uint   `gorm:"not null;index"`
	JobID       uint   `gorm:"not null;index"`
	TeamLeadID  uint   `gorm:"not null;index"`
	ProposalID  *uint  `gorm:"index"`
	Status      string `gorm:"not null;default:active"`
	StartDate   *time.Time
	EndDate     *time.Time

	// Relationships
	Workspace   Workspace           `gorm:"foreignKey:WorkspaceID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Job         UpworkJob           `gorm:"foreignKey:JobID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	TeamLead    User                `gorm:"foreignKey:TeamLeadID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Proposal    *Proposal           `gorm:"foreignKey:ProposalID;constraint:OnUpdate:Cascade,OnDelete:SET NULL"`
	Members     []ProjectMember     `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Tasks       []Task              `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Attachments []ProjectAttachment `gorm:"foreignKey:ProjectID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
