package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/types"
	"google.golang.org/genai"
)

// Enricher is the interface handlers depend on. Feasibility assessment is
// best-effort and never returns an error; proposal generation surfaces
// transport and parse failures to the caller.
type Enricher interface {
	AssessJobFeasibility(ctx context.Context, job *models.UpworkJob) string
	GenerateProposal(ctx context.Context, job *models.UpworkJob) (*ProposalDraft, error)
}

type Config struct {
	APIKey  string
	Model   string
	Timeout time.Duration
}

type GeminiClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

func NewGeminiClient(ctx context.Context, cfg Config) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is not set")
	}

	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})

	if err != nil {
		return nil, err
	}

	return &GeminiClient{client: client, model: cfg.Model, timeout: cfg.Timeout}, nil
}

func (c *GeminiClient) generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)

	if err != nil {
		return "", err
	}

	return resp.Text(), nil
}

func (c *GeminiClient) AssessJobFeasibility(ctx context.Context, job *models.UpworkJob) string {
	reply, err := c.generate(ctx, feasibilityPrompt(job))

	if err != nil {
		log.Printf("Feasibility call failed for job %s: %v", job.JobID, err)
		return types.FeasibilityUnsure
	}

	return NormalizeFeasibility(reply)
}

func (c *GeminiClient) GenerateProposal(ctx context.Context, job *models.UpworkJob) (*ProposalDraft, error) {
	reply, err := c.generate(ctx, proposalPrompt(job))

	if err != nil {
		return nil, err
	}

	return ParseProposalDraft(reply)
}

// jobPayload is the job snapshot embedded in prompts. feasibility_status is
// deliberately absent from the feasibility prompt so the model cannot echo
// a previous classification back.
type jobPayload struct {
	JobID                 string   `json:"job_id"`
	Title                 string   `json:"title"`
	Description           string   `json:"description"`
	Skills                any      `json:"skills"`
	Tags                  any      `json:"tags"`
	Category              string   `json:"category"`
	ClientCountry         string   `json:"client_country"`
	ClientPaymentVerified bool     `json:"client_payment_verified"`
	ClientTotalSpent      float64  `json:"client_total_spent"`
	ClientJobsPosted      int      `json:"client_jobs_posted"`
	ClientHireRate        string   `json:"client_hire_rate"`
	ClientReviews         string   `json:"client_reviews"`
	Budget                float64  `json:"budget"`
	BudgetType            string   `json:"budget_type"`
	ProjectLength         string   `json:"project_length"`
	HoursPerWeek          string   `json:"hours_per_week"`
	ProposalsSubmitted    int      `json:"proposals_submitted"`
	Interviewing          int      `json:"interviewing"`
	InvitesSent           int      `json:"invites_sent"`
	ConnectRequired       int      `json:"connect_required"`
	ExpectedCost          float64  `json:"expected_cost"`
	ExpectedEarnings      float64  `json:"expected_earnings"`
	JobURL                string   `json:"job_url"`
	FeasibilityStatus     string   `json:"feasibility_status,omitempty"`
	PostedAt              *string  `json:"posted_at"`
}

func payloadFromJob(job *models.UpworkJob, includeFeasibility bool) jobPayload {
	payload := jobPayload{
		JobID:                 job.JobID,
		Title:                 job.Title,
		Description:           job.Description,
		Category:              job.Category,
		ClientCountry:         job.ClientCountry,
		ClientPaymentVerified: job.ClientPaymentVerified,
		ClientTotalSpent:      job.ClientTotalSpent,
		ClientJobsPosted:      job.ClientJobsPosted,
		ClientHireRate:        job.ClientHireRate,
		ClientReviews:         job.ClientReviews,
		Budget:                job.Budget,
		BudgetType:            job.BudgetType,
		ProjectLength:         job.ProjectLength,
		HoursPerWeek:          job.HoursPerWeek,
		ProposalsSubmitted:    job.ProposalsSubmitted,
		Interviewing:          job.Interviewing,
		InvitesSent:           job.InvitesSent,
		ConnectRequired:       job.ConnectRequired,
		ExpectedCost:          job.ExpectedCost,
		ExpectedEarnings:      job.ExpectedEarnings,
		JobURL:                job.JobURL,
	}

	if len(job.Skills) > 0 {
		payload.Skills = json.RawMessage(job.Skills)
	}

	if len(job.Tags) > 0 {
		payload.Tags = json.RawMessage(job.Tags)
	}

	if includeFeasibility {
		payload.FeasibilityStatus = job.FeasibilityStatus
	}

	if job.PostedAt != nil {
		posted := job.PostedAt.Format(time.RFC3339)
		payload.PostedAt = &posted
	}

	return payload
}

func feasibilityPrompt(job *models.UpworkJob) string {
	data, _ := json.Marshal(payloadFromJob(job, false))

	return fmt.Sprintf(`You are an Upwork job analyzer. Your job is to assess whether a given job post is:
- valid (real and trustworthy),
- scam (fraudulent or suspicious), or
- unsure (not enough information).

Here is the job data in JSON:
%s

Based on the data above, respond only with one of the following:
- valid
- scam
- unsure`, data)
}

func proposalPrompt(job *models.UpworkJob) string {
	data, _ := json.Marshal(payloadFromJob(job, true))

	return fmt.Sprintf(`You are an expert freelance bid writer. Read the Upwork job below and draft a proposal for it.

Here is the job data in JSON:
%s

Respond with a single JSON object containing exactly these fields:
- "cover_letter": a persuasive cover letter for the client
- "proposal": the full proposal text
- "feasibility_score": number between 0 and 100
- "feasibility_reason": short explanation of the score
- "summary": one-paragraph summary of the job
- "project_duration": estimated duration, e.g. "2 weeks"
- "overall_score": number between 0 and 100

Respond with only the JSON object.`, data)
}
