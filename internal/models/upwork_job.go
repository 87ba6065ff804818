package models

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type UpworkJob struct {
	gorm.Model

	JobID       string `gorm:"uniqueIndex;not null"` // external marketplace listing ID
	Title       string `gorm:"not null"`
	Description string `gorm:"not null"`

	Skills   datatypes.JSON `gorm:"type:jsonb"`
	Tags     datatypes.JSON `gorm:"type:jsonb"`
	Category string

	ClientCountry         string
	ClientPaymentVerified bool `gorm:"default:false"`
	ClientTotalSpent      float64
	ClientJobsPosted      int
	ClientHireRate        string
	ClientReviews         string

	Budget     float64
	BudgetType string

	ProjectLength string
	HoursPerWeek  string

	ProposalsSubmitted int
	Interviewing       int
	InvitesSent        int

	ConnectRequired  int
	ExpectedCost     float64
	ExpectedEarnings float64

	PostedAt *time.Time
	JobURL   string `gorm:"not null"`

	FeasibilityStatus string `gorm:"not null;default:pending"`

	// Relationships
	Projects  []Project  `gorm:"foreignKey:JobID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
	Proposals []Proposal `gorm:"foreignKey:JobID;constraint:OnUpdate:Cascade,OnDelete:CASCADE"`
}
