package router

import (
	"time"

	"github.com/dev-ventures/ventures/internal/ai"
	"github.com/dev-ventures/ventures/internal/handlers"
	"github.com/dev-ventures/ventures/internal/middleware"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

func NewRouter(enricher ai.Enricher) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	api := r.Group("/api")
	{
		api.GET("/health", handlers.HealthCheck)
		api.GET("/ws/:project_id", middleware.AuthMiddleware(), handlers.BoardFeed)

		auth := api.Group("/auth")
		{
			auth.POST("/register", middleware.AuthMiddleware(), middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.RegisterUser)
			auth.POST("/login", handlers.LoginUser)
			auth.POST("/logout", middleware.AuthMiddleware(), handlers.LogoutUser)
			auth.GET("/me", middleware.AuthMiddleware(), handlers.Me)
		}

		users := api.Group("/users", middleware.AuthMiddleware())
		{
			users.GET("", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.ListUsers)
		}

		workspaces := api.Group("/workspaces", middleware.AuthMiddleware())
		{
			workspaces.POST("", middleware.RequireRoles(types.RoleAdmin), handlers.CreateWorkspace)
			workspaces.GET("", handlers.ListWorkspaces)
			workspaces.GET("/my-workspaces", handlers.ListMyWorkspaces)
			workspaces.POST("/join", handlers.JoinWorkspace)
			workspaces.GET("/:workspace_id", handlers.GetWorkspace)
			workspaces.PATCH("/:workspace_id", middleware.RequireRoles(types.RoleAdmin), handlers.UpdateWorkspace)
			workspaces.DELETE("/:workspace_id", middleware.RequireRoles(types.RoleAdmin), handlers.DeleteWorkspace)
			workspaces.DELETE("/:workspace_id/leave", handlers.LeaveWorkspace)
			workspaces.GET("/:workspace_id/members", handlers.ListWorkspaceMembers)
			workspaces.DELETE("/:workspace_id/members/:user_id", middleware.RequireRoles(types.RoleAdmin), handlers.RemoveWorkspaceMember)
		}

		projects := api.Group("/projects", middleware.AuthMiddleware())
		{
			projects.POST("", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.CreateProject)
			projects.GET("", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.ListProjects)
			projects.GET("/team-lead", handlers.ListTeamLeadProjects)
			projects.GET("/my-projects", handlers.ListMyProjects)
			projects.POST("/add-member", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.AddProjectMember)
			projects.GET("/workspace/:workspace_id", handlers.ListWorkspaceProjects)
			projects.PUT("/update/:project_id", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.UpdateProject)
			projects.GET("/:project_id", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.GetProject)
			projects.DELETE("/:project_id", middleware.RequireRoles(types.RoleAdmin), handlers.DeleteProject)
			projects.GET("/:project_id/members", handlers.ListProjectMembers)
			projects.DELETE("/:project_id/members/:user_id", handlers.RemoveProjectMember)
			projects.POST("/:project_id/attachments", handlers.CreateProjectAttachment)
			projects.GET("/:project_id/attachments", handlers.ListProjectAttachments)
		}

		tasks := api.Group("/tasks", middleware.AuthMiddleware())
		{
			tasks.POST("", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.CreateTask)
			tasks.GET("", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.ListTasks)
			tasks.GET("/:task_id", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.GetTask)
			tasks.PUT("/:task_id", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.UpdateTask)
			tasks.DELETE("/:task_id", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead), handlers.DeleteTask)
			tasks.POST("/:task_id/deliverables", handlers.CreateTaskDeliverable)
			tasks.GET("/:task_id/deliverables", handlers.ListTaskDeliverables)
			tasks.POST("/:task_id/attachments", handlers.CreateTaskAttachment)
			tasks.GET("/:task_id/attachments", handlers.ListTaskAttachments)
		}

		jobs := api.Group("/upwork-jobs", middleware.AuthMiddleware())
		{
			jobs.POST("", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead, types.RoleSalesman), handlers.CreateUpworkJob(enricher))
			jobs.GET("/all", handlers.ListUpworkJobs)
			jobs.POST("/generate-dummy-jobs", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead, types.RoleSalesman), handlers.GenerateDummyJobs)
			jobs.POST("/bulk-create", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead, types.RoleSalesman), handlers.BulkCreateUpworkJobs(enricher))
			jobs.GET("/:job_id", handlers.GetUpworkJob)
		}

		profiles := api.Group("/upwork-profiles", middleware.AuthMiddleware())
		{
			profiles.POST("", middleware.RequireRoles(types.RoleAdmin), handlers.CreateUpworkProfile)
			profiles.GET("", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead, types.RoleSalesman), handlers.ListUpworkProfiles)
			profiles.GET("/:profile_id", middleware.RequireRoles(types.RoleAdmin, types.RoleTeamLead, types.RoleSalesman), handlers.GetUpworkProfile)
			profiles.PATCH("/:profile_id", middleware.RequireRoles(types.RoleAdmin), handlers.UpdateUpworkProfile)
			profiles.DELETE("/:profile_id", middleware.RequireRoles(types.RoleAdmin), handlers.DeleteUpworkProfile)
		}

		proposals := api.Group("/proposals", middleware.AuthMiddleware())
		{
			proposals.POST("/from-job/:job_id", handlers.GenerateProposalFromJob(enricher))
			proposals.GET("/get-all", handlers.ListProposals)
			proposals.GET("/:proposal_id", handlers.GetProposal)
		}
	}

	return r
}
