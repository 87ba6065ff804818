package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dev-ventures/ventures/db"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/dev-ventures/ventures/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type CreateProjectRequest struct {
	Name        string     `json:"name" binding:"required,min=3,max=255"`
	Description string     `json:"description" binding:"max=5000"`
	WorkspaceID uint       `json:"workspace_id" binding:"required"`
	JobID       uint       `json:"job_id" binding:"required"`
	TeamLeadID  uint       `json:"team_lead_id" binding:"required"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type UpdateProjectRequest struct {
	Name        *string    `json:"name" binding:"omitempty,min=3,max=255"`
	Description *string    `json:"description" binding:"omitempty,max=5000"`
	TeamLeadID  *uint      `json:"team_lead_id"`
	Status      *string    `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type AddProjectMemberRequest struct {
	UserID        uint   `json:"user_id" binding:"required"`
	ProjectID     uint   `json:"project_id" binding:"required"`
	RoleInProject string `json:"role_in_project" binding:"max=100"`
}

type ProjectResponse struct {
	ID          uint       `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	WorkspaceID uint       `json:"workspace_id"`
	JobID       uint       `json:"job_id"`
	TeamLeadID  uint       `json:"team_lead_id"`
	ProposalID  *uint      `json:"proposal_id"`
	Status      string     `json:"status"`
	StartDate   *time.Time `json:"start_date"`
	EndDate     *time.Time `json:"end_date"`
}

type ProjectMemberResponse struct {
	ID            uint   `json:"id"`
	UserID        uint   `json:"user_id"`
	ProjectID     uint   `json:"project_id"`
	RoleInProject string `json:"role_in_project"`
}

func projectResponse(project *models.Project) ProjectResponse {
	return ProjectResponse{
		ID:          project.ID,
		Name:        project.Name,
		Description: project.Description,
		WorkspaceID: project.WorkspaceID,
		JobID:       project.JobID,
		TeamLeadID:  project.TeamLeadID,
		ProposalID:  project.ProposalID,
		Status:      project.Status,
		StartDate:   project.StartDate,
		EndDate:     project.EndDate,
	}
}

func projectList(projects []models.Project) []ProjectResponse {
	response := make([]ProjectResponse, 0, len(projects))

	for i := range projects {
		response = append(response, projectResponse(&projects[i]))
	}

	return response
}

func CreateProject(ctx *gin.Context) {
	var req CreateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if req.Status == "" {
		req.Status = types.ProjectStatusActive
	}

	if !types.ValidEnum(types.ProjectStatus, req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status", "details": gin.H{"allowed": types.ProjectStatus}})
		return
	}

	req.Name = strings.TrimSpace(req.Name)

	// Referenced rows must exist before anything is written.
	if err := db.DB.First(&models.Workspace{}, req.WorkspaceID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Workspace not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.First(&models.UpworkJob{}, req.JobID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Upwork job not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.First(&models.User{}, req.TeamLeadID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Team lead user not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var existing models.Project

	err := db.DB.Where("name = ? AND workspace_id = ?", req.Name, req.WorkspaceID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "A project named '" + req.Name + "' already exists in this workspace"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking project name: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	project := models.Project{
		Name:        req.Name,
		Description: req.Description,
		WorkspaceID: req.WorkspaceID,
		JobID:       req.JobID,
		TeamLeadID:  req.TeamLeadID,
		Status:      req.Status,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
	}

	if err := db.DB.Create(&project).Error; err != nil {
		log.Printf("Failed to create project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Project created successfully",
		"project": projectResponse(&project),
	})
}

func ListProjects(ctx *gin.Context) {
	var projects []models.Project

	if err := db.DB.Order("created_at desc").Find(&projects).Error; err != nil {
		log.Printf("Failed to list projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": projectList(projects)})
}

func GetProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"project": projectResponse(&project)})
}

func UpdateProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var req UpdateProjectRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	updates := make(map[string]interface{})

	if req.Name != nil {
		updates["name"] = strings.TrimSpace(*req.Name)
	}

	if req.Description != nil {
		updates["description"] = *req.Description
	}

	if req.TeamLeadID != nil {
		if err := db.DB.First(&models.User{}, *req.TeamLeadID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": "Team lead user does not exist"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}
		updates["team_lead_id"] = *req.TeamLeadID
	}

	if req.Status != nil {
		if !types.ValidEnum(types.ProjectStatus, *req.Status) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid project status", "details": gin.H{"allowed": types.ProjectStatus}})
			return
		}
		updates["status"] = *req.Status
	}

	if req.StartDate != nil {
		updates["start_date"] = *req.StartDate
	}

	if req.EndDate != nil {
		updates["end_date"] = *req.EndDate
	}

	if len(updates) == 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "No valid fields to update"})
		return
	}

	if err := db.DB.Model(&project).Updates(updates).Error; err != nil {
		log.Printf("Failed to update project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	if err := db.DB.First(&project, projectID).Error; err != nil {
		log.Printf("Failed to refresh project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"message": "Project updated successfully",
		"project": projectResponse(&project),
	})
}

func DeleteProject(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var project models.Project

	if err := db.DB.First(&project, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Hard delete so the cascade constraints clean up members, tasks and
	// attachments.
	if err := db.DB.Unscoped().Delete(&project).Error; err != nil {
		log.Printf("Failed to delete project: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Project '" + project.Name + "' deleted successfully"})
}

func ListTeamLeadProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("team_lead_id = ?", userID).Find(&projects).Error; err != nil {
		log.Printf("Failed to list team-lead projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": projectList(projects)})
}

func ListMyProjects(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var projects []models.Project

	err = db.DB.
		Joins("JOIN project_members ON project_members.project_id = projects.id").
		Where("project_members.user_id = ?", userID).
		Find(&projects).Error

	if err != nil {
		log.Printf("Failed to list member projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"projects": projectList(projects)})
}

func AddProjectMember(ctx *gin.Context) {
	var req AddProjectMemberRequest

	if err := ctx.BindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request", "details": err.Error()})
		return
	}

	if err := db.DB.First(&models.User{}, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "User does not exist"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	if err := db.DB.First(&models.Project{}, req.ProjectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project does not exist"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var existing models.ProjectMember

	err := db.DB.Where("user_id = ? AND project_id = ?", req.UserID, req.ProjectID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusConflict, gin.H{"error": "User is already a member of this project"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking project membership: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	member := models.ProjectMember{
		UserID:        req.UserID,
		ProjectID:     req.ProjectID,
		RoleInProject: req.RoleInProject,
		JoinedAt:      time.Now().UTC(),
	}

	if err := db.DB.Create(&member).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			ctx.JSON(http.StatusConflict, gin.H{"error": "User is already a member of this project"})
			return
		}
		log.Printf("Failed to add project member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "User added to project successfully",
		"member": ProjectMemberResponse{
			ID:            member.ID,
			UserID:        member.UserID,
			ProjectID:     member.ProjectID,
			RoleInProject: member.RoleInProject,
		},
	})
}

func ListProjectMembers(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := db.DB.First(&models.Project{}, projectID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	var memberships []models.ProjectMember

	if err := db.DB.Where("project_id = ?", projectID).Find(&memberships).Error; err != nil {
		log.Printf("Failed to list project members: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	members := make([]ProjectMemberResponse, 0, len(memberships))

	for _, m := range memberships {
		members = append(members, ProjectMemberResponse{
			ID:            m.ID,
			UserID:        m.UserID,
			ProjectID:     m.ProjectID,
			RoleInProject: m.RoleInProject,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{
		"project_id": projectID,
		"members":    members,
	})
}

func RemoveProjectMember(ctx *gin.Context) {
	projectID, err := utils.GetProjectID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	userID, err := utils.GetUserIDParam(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var membership models.ProjectMember

	if err := db.DB.Where("user_id = ? AND project_id = ?", userID, projectID).First(&membership).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Member not found in this project"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	// Hard delete so the composite unique index does not block re-adding
	// the user later.
	if err := db.DB.Unscoped().Delete(&membership).Error; err != nil {
		log.Printf("Failed to remove project member: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "User removed from project"})
}

func ListWorkspaceProjects(ctx *gin.Context) {
	workspaceID, err := utils.GetWorkspaceID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var projects []models.Project

	if err := db.DB.Where("workspace_id = ?", workspaceID).Find(&projects).Error; err != nil {
		log.Printf("Failed to list workspace projects: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"workspace_id": workspaceID,
		"total":        len(projects),
		"projects":     projectList(projects),
	})
}
