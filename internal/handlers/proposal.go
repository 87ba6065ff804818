package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/dev-ventures/ventures/db"
	"github.com/dev-ventures/ventures/internal/ai"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/dev-ventures/ventures/internal/utils"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type ProposalResponse struct {
	ID                uint     `json:"id"`
	JobID             uint     `json:"job_id"`
	GeneratedBy       uint     `json:"generated_by"`
	CoverLetter       string   `json:"cover_letter"`
	FeasibilityScore  float64  `json:"feasibility_score"`
	FeasibilityReason string   `json:"feasibility_reason"`
	ConnectsRequired  int      `json:"connects_required"`
	ExpectedCost      float64  `json:"expected_cost"`
	ExpectedEarnings  float64  `json:"expected_earnings"`
	Summary           string   `json:"summary"`
	ProjectDuration   string   `json:"project_duration"`
	OverallScore      float64  `json:"overall_score"`
	Tags              []string `json:"tags"`
	Status            string   `json:"status"`
}

func proposalResponse(proposal *models.Proposal) ProposalResponse {
	return ProposalResponse{
		ID:                proposal.ID,
		JobID:             proposal.JobID,
		GeneratedBy:       proposal.GeneratedBy,
		CoverLetter:       proposal.CoverLetter,
		FeasibilityScore:  proposal.FeasibilityScore,
		FeasibilityReason: proposal.FeasibilityReason,
		ConnectsRequired:  proposal.ConnectsRequired,
		ExpectedCost:      proposal.ExpectedCost,
		ExpectedEarnings:  proposal.ExpectedEarnings,
		Summary:           proposal.Summary,
		ProjectDuration:   proposal.ProjectDuration,
		OverallScore:      proposal.OverallScore,
		Tags:              decodeStringList(proposal.Tags),
		Status:            proposal.Status,
	}
}

// GenerateProposalFromJob drafts a proposal for the listing with the given
// external job ID. Unlike feasibility assessment, a failed or unparseable
// model reply aborts the whole operation; nothing is persisted.
func GenerateProposalFromJob(enricher ai.Enricher) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		jobID := ctx.Param("job_id")

		currentUser, err := utils.GetCurrentUser(ctx)

		if err != nil {
			ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
			return
		}

		var job models.UpworkJob

		if err := db.DB.Where("job_id = ?", jobID).First(&job).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				ctx.JSON(http.StatusNotFound, gin.H{"error": "Upwork job with ID '" + jobID + "' not found"})
			} else {
				ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			}
			return
		}

		draft, err := enricher.GenerateProposal(ctx.Request.Context(), &job)

		if err != nil {
			log.Printf("Proposal generation failed for job %s: %v", jobID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Proposal generation failed"})
			return
		}

		proposal := models.Proposal{
			JobID:             job.ID,
			GeneratedBy:       currentUser.ID,
			CoverLetter:       draft.CoverLetter,
			FeasibilityScore:  draft.FeasibilityScore,
			FeasibilityReason: draft.FeasibilityReason,
			ConnectsRequired:  job.ConnectRequired,
			ExpectedCost:      job.ExpectedCost,
			ExpectedEarnings:  job.ExpectedEarnings,
			JobDescription:    job.Description,
			Summary:           draft.Summary,
			ProjectDuration:   draft.ProjectDuration,
			OverallScore:      draft.OverallScore,
			Tags:              job.Skills,
			Status:            types.ProposalStatusDraft,
		}

		err = db.DB.Transaction(func(tx *gorm.DB) error {
			return tx.Create(&proposal).Error
		})

		if err != nil {
			log.Printf("Failed to persist proposal for job %s: %v", jobID, err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		ctx.JSON(http.StatusCreated, gin.H{
			"message":  "Proposal generated successfully",
			"proposal": proposalResponse(&proposal),
		})
	}
}

func ListProposals(ctx *gin.Context) {
	var proposals []models.Proposal

	if err := db.DB.Order("created_at desc").Find(&proposals).Error; err != nil {
		log.Printf("Failed to list proposals: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	response := make([]ProposalResponse, 0, len(proposals))

	for i := range proposals {
		response = append(response, proposalResponse(&proposals[i]))
	}

	ctx.JSON(http.StatusOK, gin.H{"proposals": response})
}

func GetProposal(ctx *gin.Context) {
	raw := ctx.Param("proposal_id")

	proposalID, err := strconv.ParseUint(raw, 10, 32)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid proposal_id"})
		return
	}

	var proposal models.Proposal

	if err := db.DB.First(&proposal, uint(proposalID)).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Proposal not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"proposal": proposalResponse(&proposal)})
}
