package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/dev-ventures/ventures/db"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateUpworkProfileRequest struct {
	ProfileName       string  `json:"profile_name" binding:"required,min=1,max=100"`
	ProfileURL        string  `json:"profile_url" binding:"required,url"`
	Contact           string  `json:"contact" binding:"max=20"`
	Email             string  `json:"email" binding:"required,email"`
	Password          string  `json:"password" binding:"required,min=8"`
	ConnectsAvailable int     `json:"connects_available"`
	HourlyRate        float64 `json:"hourly_rate"`
}

type UpdateUpworkProfileRequest struct {
	ProfileName       *string  `json:"profile_name" binding:"omitempty,min=1,max=100"`
	ProfileURL        *string  `json:"profile_url" binding:"omitempty,url"`
	Contact           *string  `json:"contact" binding:"omitempty,max=20"`
	ConnectsAvailable *int     `json:"connects_available"`
	HourlyRate        *float64 `json:"hourly_rate"`
	Status            *string  `json:"status"`
}

// UpworkProfileResponse never carries the credential hash.
type UpworkProfileResponse struct {
	ID                uint    `json:"id"`
	ProfileName       string  `json:"profile_name"`
	ProfileURL        string  `json:"profile_url"`
	Contact           string  `json:"contact"`
	Email             string  `json:"email"`
	ConnectsAvailable int     `json:"connects_available"`
	HourlyRate        float64 `json:"hourly_rate"`
	Status            string  `json:"status"`
}

func upworkProfileResponse(profile *models.UpworkProfile) UpworkProfileResponse {
	return UpworkProfileResponse{
		ID:                profile.ID,
		ProfileName:       profile.ProfileName,
		ProfileURL:        profile.ProfileURL,
		Contact:           profile.Contact,
		Email:             profile.Email,
		ConnectsAvailable: profile.ConnectsAvailable,
		HourlyRate:        profile.HourlyRate,
		Status:            profile.Status,
	}
}

func CreateUpworkProfile(ctx *gin.Context) {
	var req CreateUpworkProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existing models.UpworkProfile

	err := db.DB.Where("email = ?", req.Email).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A profile with this email already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking profile email: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash profile password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	profile := models.UpworkProfile{
		ProfileName:       req.ProfileName,
		ProfileURL:        req.ProfileURL,
		Contact:           req.Contact,
		Email:             req.Email,
		PasswordHash:      string(passwordHash),
		ConnectsAvailable: req.ConnectsAvailable,
		HourlyRate:        req.HourlyRate,
		Status:            types.ProfileStatusActive,
	}

	if err := db.DB.Create(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "A profile with this email already exists"})
			return
		}
		log.Printf("Failed to create upwork profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Upwork profile created successfully",
		"profile": upworkProfileResponse(&profile),
	})
}

func ListUpworkProfiles(ctx *gin.Context) {
	var profiles []models.UpworkProfile

	if err := db.DB.Order("created_at desc").Find(&profiles).Error; err != nil {
		log.Printf("Failed to list upwork profiles: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]UpworkProfileResponse, 0, len(profiles))

	for i := range profiles {
		response = append(response, upworkProfileResponse(&profiles[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"profiles": response})
}

func fetchUpworkProfile(ctx *gin.Context) (*models.UpworkProfile, bool) {
	raw := ctx.Param("profile_id")

	profileID, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile_id"})
		return nil, false
	}

	var profile models.UpworkProfile

	if err := db.DB.First(&profile, uint(profileID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Upwork profile not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, false
	}

	return &profile, true
}

func GetUpworkProfile(ctx *gin.Context) {
	profile, ok := fetchUpworkProfile(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"profile": upworkProfileResponse(profile)})
}

func UpdateUpworkProfile(ctx *gin.Context) {
	profile, ok := fetchUpworkProfile(ctx)

	if !ok {
		return
	}

	var req UpdateUpworkProfileRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	updates := map[string]interface{}{}

	if req.ProfileName != nil {
		updates["profile_name"] = *req.ProfileName
	}

	if req.ProfileURL != nil {
		updates["profile_url"] = *req.ProfileURL
	}

	if req.Contact != nil {
		updates["contact"] = *req.Contact
	}

	if req.ConnectsAvailable != nil {
		updates["connects_available"] = *req.ConnectsAvailable
	}

	if req.HourlyRate != nil {
		updates["hourly_rate"] = *req.HourlyRate
	}

	if req.Status != nil {
		if !types.ValidEnum(types.ProfileStatus, *req.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid profile status", "details": gin.H{"allowed": types.ProfileStatus}})
			return
		}
		updates["status"] = *req.Status
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No fields to update"})
		return
	}

	if err := db.DB.Model(profile).Updates(updates).Error; err != nil {
		log.Printf("Failed to update upwork profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Upwork profile updated successfully",
		"profile": upworkProfileResponse(profile),
	})
}

func DeleteUpworkProfile(ctx *gin.Context) {
	profile, ok := fetchUpworkProfile(ctx)

	if !ok {
		return
	}

	// Hard delete so the email can be registered again.
	if err := db.DB.Unscoped().Delete(profile).Error; err != nil {
		log.Printf("Failed to delete upwork profile: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Upwork profile deleted successfully"})
}
