package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dev-ventures/ventures/db"
	"github.com/dev-ventures/ventures/internal/invite"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/dev-ventures/ventures/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Task codes share the allocator with workspace invite codes; "TSK" is the
// fixed seed so every code reads TSK-XXXXX.
const taskCodeSeed = "TSK"

type CreateTaskRequest struct {
	Title       string     `json:"title" binding:"required,min=3,max=255"`
	Description string     `json:"description" binding:"max=5000"`
	ProjectID   uint       `json:"project_id" binding:"required"`
	AssignedTo  uint       `json:"assigned_to" binding:"required"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type UpdateTaskRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	ProjectID   *uint      `json:"project_id"`
	AssignedTo  *uint      `json:"assigned_to"`
	Status      *string    `json:"status"`
	Priority    *string    `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

type TaskResponse struct {
	ID          uint       `json:"id"`
	TaskCode    string     `json:"task_code"`
	ProjectID   uint       `json:"project_id"`
	AssignedTo  uint       `json:"assigned_to"`
	CreatedBy   uint       `json:"created_by"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	DueDate     *time.Time `json:"due_date"`
}

func taskResponse(task *models.Task) TaskResponse {
	return TaskResponse{
		ID:          task.ID,
		TaskCode:    task.TaskCode,
		ProjectID:   task.ProjectID,
		AssignedTo:  task.AssignedTo,
		CreatedBy:   task.CreatedBy,
		Title:       task.Title,
		Description: task.Description,
		Status:      task.Status,
		Priority:    task.Priority,
		DueDate:     task.DueDate,
	}
}

func CreateTask(ctx *gin.Context) {
	var req CreateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	currentUser, err := utils.GetCurrentUser(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	if req.Status == "" {
		req.Status = types.TaskStatusTodo
	}

	if req.Priority == "" {
		req.Priority = types.TaskPriorityMedium
	}

	if !types.ValidEnum(types.TaskStatus, req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status", "details": gin.H{"allowed": types.TaskStatus}})
		return
	}

	if !types.ValidEnum(types.TaskPriority, req.Priority) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task priority", "details": gin.H{"allowed": types.TaskPriority}})
		return
	}

	if err := db.DB.First(&models.Project{}, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Project with id %d does not exist", req.ProjectID)})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.First(&models.User{}, req.AssignedTo).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("User with id %d does not exist", req.AssignedTo)})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	code, err := invite.UniqueCode(db.DB, &models.Task{}, "task_code", taskCodeSeed)

	if err != nil {
		log.Printf("Failed to generate task code: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	task := models.Task{
		TaskCode:    code,
		ProjectID:   req.ProjectID,
		AssignedTo:  req.AssignedTo,
		CreatedBy:   currentUser.ID,
		Title:       strings.TrimSpace(req.Title),
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		DueDate:     req.DueDate,
	}

	if err := db.DB.Create(&task).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Task with code '" + code + "' already exists"})
			return
		}
		log.Printf("Failed to create task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastBoardRefresh(fmt.Sprint(task.ProjectID))

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Task created successfully",
		"task":    taskResponse(&task),
	})
}

func ListTasks(ctx *gin.Context) {
	var tasks []models.Task

	if err := db.DB.Order("created_at desc").Find(&tasks).Error; err != nil {
		log.Printf("Failed to list tasks: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]TaskResponse, 0, len(tasks))

	for i := range tasks {
		response = append(response, taskResponse(&tasks[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"tasks": response})
}

func GetTask(ctx *gin.Context) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"task": taskResponse(&task)})
}

func UpdateTask(ctx *gin.Context) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateTaskRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if req.ProjectID != nil {
		if err := db.DB.First(&models.Project{}, *req.ProjectID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Project with id %d does not exist", *req.ProjectID)})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}
		updates["project_id"] = *req.ProjectID
	}

	if req.AssignedTo != nil {
		if err := db.DB.First(&models.User{}, *req.AssignedTo).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Assigned user with id %d does not exist", *req.AssignedTo)})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}
		updates["assigned_to"] = *req.AssignedTo
	}

	if req.Status != nil {
		if !types.ValidEnum(types.TaskStatus, *req.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task status", "details": gin.H{"allowed": types.TaskStatus}})
			return
		}
		updates["status"] = *req.Status
	}

	if req.Priority != nil {
		if !types.ValidEnum(types.TaskPriority, *req.Priority) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task priority", "details": gin.H{"allowed": types.TaskPriority}})
			return
		}
		updates["priority"] = *req.Priority
	}

	if req.Title != nil {
		updates["title"] = strings.TrimSpace(*req.Title)
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if req.DueDate != nil {
		updates["due_date"] = *req.DueDate
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&task).Updates(updates).Error; err != nil {
		log.Printf("Failed to update task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.First(&task, taskID).Error; err != nil {
		log.Printf("Failed to refresh task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastBoardRefresh(fmt.Sprint(task.ProjectID))

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Task updated successfully",
		"task":    taskResponse(&task),
	})
}

func DeleteTask(ctx *gin.Context) {
	taskID, err := utils.GetTaskID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var task models.Task

	if err := db.DB.First(&task, taskID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Hard delete frees the task code and cascades to deliverables and
	// attachments.
	if err := db.DB.Unscoped().Delete(&task).Error; err != nil {
		log.Printf("Failed to delete task: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	BroadcastBoardRefresh(fmt.Sprint(task.ProjectID))

	ctx.JSON(http.StatusOK, gin.H{"message": "Task '" + task.TaskCode + "' deleted successfully"})
}
