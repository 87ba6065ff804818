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

type CreateDeliverableRequest struct {
	Title       string `json:"title" binding:"required,min=3,max=255"`
	Description string `json:"description" binding:"max=5000"`
	IsSubmitted bool   `json:"is_submitted"`
}

type CreateAttachmentRequest struct {
	FileName string `json:"file_name" binding:"required,max=255"`
	FileURL  string `json:"file_url" binding:"required,url,max=512"`
}

type DeliverableResponse struct {
	ID          uint       `json:"id"`
	TaskID      uint       `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	IsSubmitted bool       `json:"is_submitted"`
	SubmittedAt *time.Time `json:"submitted_at"`
}

type AttachmentResponse struct {
	ID         uint      `json:"id"`
	TaskID     uint      `json:"task_id"`
	FileName   string    `json:"file_name"`
	FileURL    string    `json:"file_url"`
	UploadedBy uint      `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func fetchTask(ctx *gin.Context) (*models.Task, bool) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return nil, false
	}

	var task models.Task

	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return nil, false
	}

	return &task, true
}

func CreateTaskDeliverable(ctx *gin.Context) {
	task, ok := fetchTask(ctx)

	if !ok {
		return
	}

	var req CreateDeliverableRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	deliverable := models.TaskDeliverable{
		TaskID:      task.ID,
		Title:       req.Title,
		Description: req.Description,
		IsSubmitted: req.IsSubmitted,
	}

	if req.IsSubmitted {
		now := time.Now().UTC()
		deliverable.SubmittedAt = &now
	}

	if err := db.DB.Create(&deliverable).Error; err != nil {
		log.Printf("Failed to create deliverable: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Deliverable created successfully",
		"deliverable": DeliverableResponse{
			ID:          deliverable.ID,
			TaskID:      deliverable.TaskID,
			Title:       deliverable.Title,
			Description: deliverable.Description,
			IsSubmitted: deliverable.IsSubmitted,
			SubmittedAt: deliverable.SubmittedAt,
		},
	})
}

func ListTaskDeliverables(ctx *gin.Context) {
	task, ok := fetchTask(ctx)

	if !ok {
		return
	}

	var deliverables []models.TaskDeliverable

	if err := db.DB.Where("task_id = ?", task.ID).Find(&deliverables).Error; err != nil {
		log.Printf("Failed to list deliverables: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]DeliverableResponse, 0, len(deliverables))

	for _, d := range deliverables {
		response = append(response, DeliverableResponse{
			ID:          d.ID,
			TaskID:      d.TaskID,
			Title:       d.Title,
			Description: d.Description,
			IsSubmitted: d.IsSubmitted,
			SubmittedAt: d.SubmittedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"task_id":      task.ID,
		"deliverables": response,
	})
}

func CreateTaskAttachment(ctx *gin.Context) {
	task, ok := fetchTask(ctx)

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

	attachment := models.TaskAttachment{
		TaskID:     task.ID,
		FileName:   req.FileName,
		FileURL:    req.FileURL,
		UploadedBy: currentUser.ID,
		UploadedAt: time.Now().UTC(),
	}

	if err := db.DB.Create(&attachment).Error; err != nil {
		log.Printf("Failed to create attachment: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Attachment added successfully",
		"attachment": AttachmentResponse{
			ID:         attachment.ID,
			TaskID:     attachment.TaskID,
			FileName:   attachment.FileName,
			FileURL:    attachment.FileURL,
			UploadedBy: attachment.UploadedBy,
			UploadedAt: attachment.UploadedAt,
		},
	})
}

func ListTaskAttachments(ctx *gin.Context) {
	task, ok := fetchTask(ctx)

	if !ok {
		return
	}

	var attachments []models.TaskAttachment

	if err := db.DB.Where("task_id = ?", task.ID).Find(&attachments).Error; err != nil {
		log.Printf("Failed to list attachments: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]AttachmentResponse, 0, len(attachments))

	for _, a := range attachments {
		response = append(response, AttachmentResponse{
			ID:         a.ID,
			TaskID:     a.TaskID,
			FileName:   a.FileName,
			FileURL:    a.FileURL,
			UploadedBy: a.UploadedBy,
			UploadedAt: a.UploadedAt,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"task_id":     task.ID,
		"attachments": response,
	})
}
