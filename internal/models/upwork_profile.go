package models

import "gorm.io/gorm"

type UpworkProfile struct {
	gorm.Model

	ProfileName       string `gorm:"not null"`
	ProfileURL        string `gorm:"not null"`
	Contact           string
	Email             string `gorm:"uniqueIndex;not null"`
	PasswordHash      string `gorm:"not null"`
	ConnectsAvailable int    `gorm:"default:0;not null"`
	HourlyRate        float64
	Status            string `gorm:"not null;default:active"`
}
