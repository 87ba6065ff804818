package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/dev-ventures/ventures/db"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProjectAttachmentResponse struct {
	ID         uint      `json:"id"`
	ProjectID  uint      `json:"project_id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	UploadedBy uint      `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func fetchProject(ctx *gin.Context) (*models.Project, bool) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, false
	}

	return &project, true
}

func CreateProjectAttachment(ctx *gin.Context) {
	project, ok := fetchProject(ctx)

	if !ok {
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req CreateAttachmentRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	attachment := models.ProjectAttachment{
		ProjectID:  project.ID,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
		UploadedBy: currentUser.ID,
		UploadedAt: time.Now().UTC(),
	}

	if err := db.DB.Create(&attachment).Error; err != nil {
		log.Printf("Failed to create project attachment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Attachment added successfully",
		"attachment": ProjectAttachmentResponse{
			ID:         attachment.ID,
			ProjectID:  attachment.ProjectID,
			FileName:   attachment.FileName,
			FileURL:    attachment.FileURL,
			UploadedBy: attachment.UploadedBy,
			UploadedAt: attachment.UploadedAt,
		},
	})
}

func ListProjectAttachments(ctx *gin.Context) {
	project, ok := fetchProject(ctx)

	if !ok {
		return
	}

	var attachments []models.ProjectAttachment

	if err := db.DB.Where("project_id = ?", project.ID).Find(&attachments).Error; err != nil {
		log.Printf("Failed to list project attachments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]ProjectAttachmentResponse, 0, len(attachments))

	for _, a := range attachments {
		response = append(response, ProjectAttachmentResponse{
			ID:         a.ID,
			ProjectID:  a.ProjectID,
			FileName:   a.FileName,
			FileURL:    a.FileURL,
			UploadedBy: a.UploadedBy,
			UploadedAt: a.UploadedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"project_id":  project.ID,
		"attachments": response,
	})
}
