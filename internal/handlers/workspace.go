package handlers

import (
	"errors"
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

type CreateWorkspaceRequest struct {
	Name        string `json:"name" binding:"required,min=3,max=100"`
	Description string `json:"description" binding:"max=5000"`
}

type UpdateWorkspaceRequest struct {
	Name string `json:"name" binding:"required,min=3,max=100"`
}

type JoinWorkspaceRequest struct {
	InviteCode string `json:"invite_code" binding:"required"`
}

func workspaceResponse(workspace *models.Workspace) types.WorkspaceResponse {
	return types.WorkspaceResponse{
		ID:          workspace.ID,
		Name:        workspace.Name,
		Description: workspace.Description,
		InviteCode:  workspace.InviteCode,
	}
}

func CreateWorkspace(ctx *gin.Context) {
	var req CreateWorkspaceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	var existing models.Workspace

	err := db.DB.Where("name = ?", req.Name).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A workspace with the name '" + req.Name + "' already exists"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking workspace name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	code, err := invite.UniqueCode(db.DB, &models.Workspace{}, "invite_code", req.Name)

	if err != nil {
		log.Printf("Failed to generate invite code: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	workspace := models.Workspace{
		Name:        req.Name,
		Description: req.Description,
		InviteCode:  code,
	}

	if err := db.DB.Create(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Workspace name or invite code already in use"})
			return
		}
		log.Printf("Failed to create workspace: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message":   "Workspace created successfully",
		"workspace": workspaceResponse(&workspace),
	})
}

func ListWorkspaces(ctx *gin.Context) {
	var workspaces []models.Workspace

	if err := db.DB.Order("created_at desc").Find(&workspaces).Error; err != nil {
		log.Printf("Failed to list workspaces: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]types.WorkspaceResponse, 0, len(workspaces))

	for i := range workspaces {
		response = append(response, workspaceResponse(&workspaces[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"workspaces": response})
}

func GetWorkspace(ctx *gin.Context) {
	workspaceID, err := utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"workspace": workspaceResponse(&workspace)})
}

// UpdateWorkspace renames a workspace and rotates its invite code, so links
// shared under the old name stop working.
func UpdateWorkspace(ctx *gin.Context) {
	workspaceID, err := utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateWorkspaceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Workspace name is required"})
		return
	}

	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	newName := strings.TrimSpace(req.Name)

	var existing models.Workspace

	err = db.DB.Where("name = ? AND id != ?", newName, workspaceID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "Workspace name already in use"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking workspace name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	code, err := invite.UniqueCode(db.DB, &models.Workspace{}, "invite_code", newName)

	if err != nil {
		log.Printf("Failed to generate invite code: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	workspace.Name = newName
	workspace.InviteCode = code

	if err := db.DB.Save(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Workspace name or invite code already in use"})
			return
		}
		log.Printf("Failed to update workspace: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message":   "Workspace updated successfully",
		"workspace": workspaceResponse(&workspace),
	})
}

func DeleteWorkspace(ctx *gin.Context) {
	workspaceID, err := utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Hard delete: the ON DELETE CASCADE constraints only fire when the row
	// actually goes away, taking memberships, projects, tasks and
	// attachments with it.
	if err := db.DB.Unscoped().Delete(&workspace).Error; err != nil {
		log.Printf("Failed to delete workspace: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Workspace deleted successfully"})
}

func JoinWorkspace(ctx *gin.Context) {
	var req JoinWorkspaceRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invite code is required"})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var workspace models.Workspace

	if err := db.DB.Where("invite_code = ?", req.InviteCode).First(&workspace).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Invalid invite code"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var existing models.WorkspaceMember

	err = db.DB.Where("user_id = ? AND workspace_id = ?", userID, workspace.ID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "You are already a member of this workspace"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	member := models.WorkspaceMember{
		UserID:      userID,
		WorkspaceID: workspace.ID,
		JoinedAt:    time.Now().UTC(),
	}

	if err := db.DB.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "You are already a member of this workspace"})
			return
		}
		log.Printf("Failed to join workspace: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Successfully joined the workspace",
		"workspace": gin.H{
			"id":   workspace.ID,
			"name": workspace.Name,
		},
	})
}

func LeaveWorkspace(ctx *gin.Context) {
	workspaceID, err := utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var membership models.WorkspaceMember

	if err := db.DB.Where("user_id = ? AND workspace_id = ?", userID, workspaceID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "You are not a member of this workspace"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Membership rows have no lifecycle of their own; a soft-deleted row
	// would still occupy the composite unique index and block a rejoin.
	if err := db.DB.Unscoped().Delete(&membership).Error; err != nil {
		log.Printf("Failed to leave workspace: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "You have successfully left the workspace '" + workspace.Name + "'"})
}

func ListWorkspaceMembers(ctx *gin.Context) {
	workspaceID, err := utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var memberships []models.WorkspaceMember

	if err := db.DB.Preload("User").Where("workspace_id = ?", workspaceID).Find(&memberships).Error; err != nil {
		log.Printf("Failed to list workspace members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	members := make([]types.UserResponse, 0, len(memberships))

	for i := range memberships {
		members = append(members, userResponse(&memberships[i].User))
	}

	ctx.JSON(http.StatusOK, gin.H{
		"workspace_id":   workspace.ID,
		"workspace_name": workspace.Name,
		"members":        members,
	})
}

func RemoveWorkspaceMember(ctx *gin.Context) {
	workspaceID, err := utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var workspace models.Workspace

	if err := db.DB.First(&workspace, workspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var membership models.WorkspaceMember

	if err := db.DB.Where("user_id = ? AND workspace_id = ?", userID, workspaceID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User is not a member of this workspace"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.Unscoped().Delete(&membership).Error; err != nil {
		log.Printf("Failed to remove workspace member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User " + user.Email + " removed from workspace " + workspace.Name})
}

func ListMyWorkspaces(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var memberships []models.WorkspaceMember

	if err := db.DB.Preload("Workspace").Where("user_id = ?", userID).Find(&memberships).Error; err != nil {
		log.Printf("Failed to list memberships: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	workspaces := make([]types.WorkspaceResponse, 0, len(memberships))

	for i := range memberships {
		workspaces = append(workspaces, workspaceResponse(&memberships[i].Workspace))
	}

	ctx.JSON(http.StatusOK, gin.H{"workspaces": workspaces})
}
