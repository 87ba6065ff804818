package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dev-ventures/ventures/internal/ai"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// stubEnricher replaces the Gemini-backed client in handler tests.
type stubEnricher struct {
	feasibility string
	draft       *ai.ProposalDraft
	err         error
}

func (s *stubEnricher) AssessJobFeasibility(ctx context.Context, job *models.UpworkJob) string {
	if s.feasibility == "" {
		return types.FeasibilityUnsure
	}
	return s.feasibility
}

func (s *stubEnricher) GenerateProposal(ctx context.Context, job *models.UpworkJob) (*ai.ProposalDraft, error) {
	return s.draft, s.err
}

func validJobBody() gin.H {
	return gin.H{
		"job_id":      "~0123456789abcdef",
		"title":       "Build a REST API for an inventory system",
		"description": "We need a backend developer to build a small REST API.",
		"skills":      []string{"Go", "PostgreSQL"},
		"budget":      1500,
		"budget_type": "fixed",
		"job_url":     "https://www.upwork.com/jobs/~0123456789abcdef",
	}
}

func TestCreateUpworkJobStoresEnricherVerdict(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(1))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodPost, validJobBody())
	asUser(ctx, employee(1))

	CreateUpworkJob(&stubEnricher{feasibility: types.FeasibilityScam})(ctx)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"feasibility_status":"scam"`)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUpworkJobDuplicateJobID(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "job_id"}).AddRow(1, "~0123456789abcdef"))

	ctx, w := newTestContext(t, http.MethodPost, validJobBody())
	asUser(ctx, employee(1))

	CreateUpworkJob(&stubEnricher{})(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUpworkJobInvalidBudgetType(t *testing.T) {
	mock := newMockDB(t)

	body := validJobBody()
	body["budget_type"] = "retainer"

	ctx, w := newTestContext(t, http.MethodPost, body)
	asUser(ctx, employee(1))

	CreateUpworkJob(&stubEnricher{})(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid budget type")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateUpworkJobMissingTitle(t *testing.T) {
	mock := newMockDB(t)

	body := validJobBody()
	delete(body, "title")

	ctx, w := newTestContext(t, http.MethodPost, body)
	asUser(ctx, employee(1))

	CreateUpworkJob(&stubEnricher{})(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBulkCreateUpworkJobsSkipsDuplicates(t *testing.T) {
	mock := newMockDB(t)

	// First item already exists, second one is new.
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "job_id"}).AddRow(1, "~0123456789abcdef"))
	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(2))
	mock.ExpectCommit()

	second := validJobBody()
	second["job_id"] = "~fedcba9876543210"
	second["job_url"] = "https://www.upwork.com/jobs/~fedcba9876543210"

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"jobs": []gin.H{validJobBody(), second},
	})
	asUser(ctx, employee(1))

	BulkCreateUpworkJobs(&stubEnricher{feasibility: types.FeasibilityValid})(ctx)

	assert.Equal(t, http.StatusMultiStatus, w.Code)
	assert.Contains(t, w.Body.String(), `"created":1`)
	assert.Contains(t, w.Body.String(), `"skipped":1`)
	assert.NoError(t, mock.ExpectationsWereMet())
}
