package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dev-ventures/ventures/internal/ai"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func jobRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "job_id", "title", "description", "connect_required", "expected_cost", "expected_earnings"}).
		AddRow(5, "~0123456789abcdef", "Build a REST API for an inventory system", "Backend work.", 8, 200.0, 1500.0)
}

func TestGenerateProposalFromJobSuccess(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(jobRow())
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodPost, nil)
	ctx.Params = append(ctx.Params, gin.Param{Key: "job_id", Value: "~0123456789abcdef"})
	asUser(ctx, employee(42))

	draft := &ai.ProposalDraft{
		CoverLetter:       "Dear client, we can deliver this.",
		ProposalText:      "Full proposal text.",
		FeasibilityScore:  80,
		FeasibilityReason: "Verified client with solid history.",
		Summary:           "Inventory REST API build.",
		ProjectDuration:   "2 weeks",
		OverallScore:      70,
	}

	GenerateProposalFromJob(&stubEnricher{draft: draft})(ctx)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"draft"`)
	assert.Contains(t, w.Body.String(), "Dear client, we can deliver this.")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateProposalFromJobEnricherFailure(t *testing.T) {
	mock := newMockDB(t)

	// Only the job lookup is expected; a failed generation must not write.
	mock.ExpectQuery("SELECT").WillReturnRows(jobRow())

	ctx, w := newTestContext(t, http.MethodPost, nil)
	ctx.Params = append(ctx.Params, gin.Param{Key: "job_id", Value: "~0123456789abcdef"})
	asUser(ctx, employee(42))

	GenerateProposalFromJob(&stubEnricher{err: errors.New("model timeout")})(ctx)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Proposal generation failed")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGenerateProposalFromJobUnknownJob(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ctx, w := newTestContext(t, http.MethodPost, nil)
	ctx.Params = append(ctx.Params, gin.Param{Key: "job_id", Value: "~missing"})
	asUser(ctx, employee(42))

	GenerateProposalFromJob(&stubEnricher{})(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
