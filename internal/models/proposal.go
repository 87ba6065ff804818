package models

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Proposal struct {
	gorm.Model

	JobID       uint `gorm:"not null;index"`
	GeneratedBy uint `gorm:"not null;index"`

	CoverLetter       string `gorm:"not null"`
	FeasibilityScore  float64
	FeasibilityReason string
	ConnectsRequired  int
	ExpectedCost      float64
	ExpectedEarnings  float64
	JobDescription    string
	Summary           string
	ProjectDuration   string
	OverallScore      float64
	Tags              datatypes.JSON `gorm:"type:jsonb"`
	Status            string         `gorm:"not null;default:draft"`

	// Relationships
	Job     UpworkJob `gorm:"foreignKey:JobID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Creator User      `gorm:"foreignKey:GeneratedBy;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
