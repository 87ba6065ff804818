package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/dev-ventures/ventures/db"
	"github.com/dev-ventures/ventures/internal/ai"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateUpworkJobRequest struct {
	JobID       string   `json:"job_id" binding:"required,max=50"`
	Title       string   `json:"title" binding:"required,min=5,max=255"`
	Description string   `json:"description" binding:"required,max=5000"`
	Skills      []string `json:"skills"`
	Tags        []string `json:"tags"`
	Category    string   `json:"category" binding:"max=100"`

	ClientCountry         string  `json:"client_country" binding:"max=100"`
	ClientPaymentVerified bool    `json:"client_payment_verified"`
	ClientTotalSpent      float64 `json:"client_total_spent"`
	ClientJobsPosted      int     `json:"client_jobs_posted"`
	ClientHireRate        string  `json:"client_hire_rate" binding:"max=10"`
	ClientReviews         string  `json:"client_reviews"`

	Budget     float64 `json:"budget"`
	BudgetType string  `json:"budget_type"`

	ProjectLength string `json:"project_length" binding:"max=100"`
	HoursPerWeek  string `json:"hours_per_week" binding:"max=50"`

	ProposalsSubmitted int `json:"proposals_submitted"`
	Interviewing       int `json:"interviewing"`
	InvitesSent        int `json:"invites_sent"`

	ConnectRequired  int     `json:"connect_required"`
	ExpectedCost     float64 `json:"expected_cost"`
	ExpectedEarnings float64 `json:"expected_earnings"`

	PostedAt *time.Time `json:"posted_at"`
	JobURL   string     `json:"job_url" binding:"required,url"`
}

type UpworkJobResponse struct {
	ID                    uint       `json:"id"`
	JobID                 string     `json:"job_id"`
	Title                 string     `json:"title"`
	Description           string     `json:"description"`
	Skills                []string   `json:"skills"`
	Tags                  []string   `json:"tags"`
	Category              string     `json:"category"`
	ClientCountry         string     `json:"client_country"`
	ClientPaymentVerified bool       `json:"client_payment_verified"`
	ClientTotalSpent      float64    `json:"client_total_spent"`
	ClientJobsPosted      int        `json:"client_jobs_posted"`
	ClientHireRate        string     `json:"client_hire_rate"`
	Budget                float64    `json:"budget"`
	BudgetType            string     `json:"budget_type"`
	ProjectLength         string     `json:"project_length"`
	HoursPerWeek          string     `json:"hours_per_week"`
	ConnectRequired       int        `json:"connect_required"`
	ExpectedCost          float64    `json:"expected_cost"`
	ExpectedEarnings      float64    `json:"expected_earnings"`
	PostedAt              *time.Time `json:"posted_at"`
	JobURL                string     `json:"job_url"`
	FeasibilityStatus     string     `json:"feasibility_status"`
}

func decodeStringList(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}

	var list []string

	if err := json.Unmarshal(raw, &list); err != nil {
		return nil
	}

	return list
}

func encodeStringList(list []string) datatypes.JSON {
	if len(list) == 0 {
		return nil
	}

	raw, err := json.Marshal(list)

	if err != nil {
		return nil
	}

	return datatypes.JSON(raw)
}

func upworkJobResponse(job *models.UpworkJob) UpworkJobResponse {
	return UpworkJobResponse{
		ID:                    job.ID,
		JobID:                 job.JobID,
		Title:                 job.Title,
		Description:           job.Description,
		Skills:                decodeStringList(job.Skills),
		Tags:                  decodeStringList(job.Tags),
		Category:              job.Category,
		ClientCountry:         job.ClientCountry,
		ClientPaymentVerified: job.ClientPaymentVerified,
		ClientTotalSpent:      job.ClientTotalSpent,
		ClientJobsPosted:      job.ClientJobsPosted,
		ClientHireRate:        job.ClientHireRate,
		Budget:                job.Budget,
		BudgetType:            job.BudgetType,
		ProjectLength:         job.ProjectLength,
		HoursPerWeek:          job.HoursPerWeek,
		ConnectRequired:       job.ConnectRequired,
		ExpectedCost:          job.ExpectedCost,
		ExpectedEarnings:      job.ExpectedEarnings,
		PostedAt:              job.PostedAt,
		JobURL:                job.JobURL,
		FeasibilityStatus:     job.FeasibilityStatus,
	}
}

func jobFromRequest(req *CreateUpworkJobRequest) models.UpworkJob {
	return models.UpworkJob{
		JobID:                 strings.TrimSpace(req.JobID),
		Title:                 strings.TrimSpace(req.Title),
		Description:           req.Description,
		Skills:                encodeStringList(req.Skills),
		Tags:                  encodeStringList(req.Tags),
		Category:              req.Category,
		ClientCountry:         req.ClientCountry,
		ClientPaymentVerified: req.ClientPaymentVerified,
		ClientTotalSpent:      req.ClientTotalSpent,
		ClientJobsPosted:      req.ClientJobsPosted,
		ClientHireRate:        req.ClientHireRate,
		ClientReviews:         req.ClientReviews,
		Budget:                req.Budget,
		BudgetType:            req.BudgetType,
		ProjectLength:         req.ProjectLength,
		HoursPerWeek:          req.HoursPerWeek,
		ProposalsSubmitted:    req.ProposalsSubmitted,
		Interviewing:          req.Interviewing,
		InvitesSent:           req.InvitesSent,
		ConnectRequired:       req.ConnectRequired,
		ExpectedCost:          req.ExpectedCost,
		ExpectedEarnings:      req.ExpectedEarnings,
		PostedAt:              req.PostedAt,
		JobURL:                req.JobURL,
		FeasibilityStatus:     types.FeasibilityPending,
	}
}

// CreateUpworkJob stores a marketplace listing snapshot. The feasibility
// label always comes from the enrichment client, never from the request;
// the call is best-effort and falls back to unsure.
func CreateUpworkJob(enricher ai.Enricher) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req CreateUpworkJobRequest

		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
			return
		}

		if req.BudgetType != "" && !types.ValidEnum(types.BudgetType, req.BudgetType) {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid budget type", "details": gin.H{"allowed": types.BudgetType}})
			return
		}

		var existing models.UpworkJob

		err := db.DB.Where("job_id = ?", strings.TrimSpace(req.JobID)).First(&existing).Error

		if err == nil {
			ctx.JSON(http.StatusConflict, gin.H{"error": "Job ID '" + req.JobID + "' already exists"})
			return
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("Database error when checking job ID: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		job := jobFromRequest(&req)
		job.FeasibilityStatus = enricher.AssessJobFeasibility(ctx.Request.Context(), &job)

		if err := db.DB.Create(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				ctx.JSON(http.StatusConflict, gin.H{"error": "Job ID '" + req.JobID + "' already exists"})
				return
			}
			log.Printf("Failed to create upwork job: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.JSON(http.StatusCreated, gin.H{
			"message": "Upwork job created successfully",
			"job":     upworkJobResponse(&job),
		})
	}
}

func ListUpworkJobs(ctx *gin.Context) {
	var jobs []models.UpworkJob

	if err := db.DB.Order("created_at desc").Find(&jobs).Error; err != nil {
		log.Printf("Failed to list upwork jobs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]UpworkJobResponse, 0, len(jobs))

	for i := range jobs {
		response = append(response, upworkJobResponse(&jobs[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"jobs": response})
}

// GetUpworkJob looks the listing up by its external marketplace ID.
func GetUpworkJob(ctx *gin.Context) {
	jobID := ctx.Param("job_id")

	var job models.UpworkJob

	if err := db.DB.Where("job_id = ?", jobID).First(&job).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Upwork job with ID '" + jobID + "' not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"job": upworkJobResponse(&job)})
}

// GenerateDummyJobs seeds a handful of canned listings; it stands in for the
// scraper the production pipeline would feed jobs from.
func GenerateDummyJobs(ctx *gin.Context) {
	seed := time.Now().UnixNano()

	samples := []struct {
		title    string
		category string
		skills   []string
		budget   float64
	}{
		{"Build a REST API for an inventory system", "Web Development", []string{"Go", "PostgreSQL"}, 1500},
		{"React dashboard for analytics platform", "Frontend Development", []string{"React", "TypeScript"}, 2200},
		{"Automated report generation pipeline", "Data Engineering", []string{"Python", "Airflow"}, 900},
		{"Landing page redesign", "Web Design", []string{"Figma", "CSS"}, 400},
		{"Mobile app bug fixes", "Mobile Development", []string{"Flutter"}, 650},
	}

	created := make([]UpworkJobResponse, 0, len(samples))

	for i, sample := range samples {
		job := models.UpworkJob{
			JobID:             fmt.Sprintf("dummy-%d-%d", seed, i),
			Title:             sample.title,
			Description:       "Dummy listing generated for testing: " + sample.title,
			Skills:            encodeStringList(sample.skills),
			Category:          sample.category,
			Budget:            sample.budget,
			BudgetType:        types.BudgetTypeFixed,
			JobURL:            fmt.Sprintf("https://www.upwork.com/jobs/dummy-%d-%d", seed, i),
			FeasibilityStatus: types.FeasibilityPending,
		}

		if err := db.DB.Create(&job).Error; err != nil {
			log.Printf("Failed to create dummy job: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		created = append(created, upworkJobResponse(&job))
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"message": "Dummy jobs generated",
		"jobs":    created,
	})
}

type BulkCreateJobsRequest struct {
	Jobs []CreateUpworkJobRequest `json:"jobs" binding:"required,min=1,dive"`
}

type BulkItemResult struct {
	JobID  string `json:"job_id"`
	Status string `json:"status"` // "created", "skipped" or "error"
	Error  string `json:"error,omitempty"`
}

// BulkCreateUpworkJobs ingests a batch of listings and reports a per-item
// outcome with a 207 response. Duplicates are skipped, not failed, so a
// re-submitted batch is idempotent.
func BulkCreateUpworkJobs(enricher ai.Enricher) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		var req BulkCreateJobsRequest

		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": err.Error()})
			return
		}

		results := make([]BulkItemResult, 0, len(req.Jobs))
		created := 0
		skipped := 0
		failed := 0

		for i := range req.Jobs {
			item := &req.Jobs[i]
			jobID := strings.TrimSpace(item.JobID)

			if item.BudgetType != "" && !types.ValidEnum(types.BudgetType, item.BudgetType) {
				results = append(results, BulkItemResult{JobID: jobID, Status: "error", Error: "invalid budget type"})
				failed++
				continue
			}

			var existing models.UpworkJob

			err := db.DB.Where("job_id = ?", jobID).First(&existing).Error

			if err == nil {
				results = append(results, BulkItemResult{JobID: jobID, Status: "skipped", Error: "job already exists"})
				skipped++
				continue
			}

			if !errors.Is(err, gorm.ErrRecordNotFound) {
				results = append(results, BulkItemResult{JobID: jobID, Status: "error", Error: "internal error"})
				failed++
				continue
			}

			job := jobFromRequest(item)
			job.FeasibilityStatus = enricher.AssessJobFeasibility(ctx.Request.Context(), &job)

			if err := db.DB.Create(&job).Error; err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					results = append(results, BulkItemResult{JobID: jobID, Status: "skipped", Error: "job already exists"})
					skipped++
				} else {
					log.Printf("Failed to create upwork job %s: %v", jobID, err)
					results = append(results, BulkItemResult{JobID: jobID, Status: "error", Error: "internal error"})
					failed++
				}
				continue
			}

			results = append(results, BulkItemResult{JobID: jobID, Status: "created"})
			created++
		}

		ctx.JSON(http.StatusMultiStatus, gin.H{
			"created": created,
			"skipped": skipped,
			"errors":  failed,
			"results": results,
		})
	}
}
