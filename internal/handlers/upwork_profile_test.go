package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateUpworkProfileDuplicateEmail(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "agency@example.com"))

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"profile_name": "Ventures Agency",
		"profile_url":  "https://www.upwork.com/agencies/ventures",
		"email":        "Agency@Example.com",
		"password":     "correct-horse",
	})
	asUser(ctx, employee(1))

	CreateUpworkProfile(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUpworkProfileRejectsUnknownStatus(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "profile_name", "email", "status"}).
			AddRow(4, "Ventures Agency", "agency@example.com", "active"))

	ctx, w := newTestContext(t, http.MethodPatch, gin.H{"status": "suspended"})
	ctx.Params = append(ctx.Params, gin.Param{Key: "profile_id", Value: "4"})
	asUser(ctx, employee(1))

	UpdateUpworkProfile(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid profile status")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateUpworkProfileNoFields(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "profile_name", "email", "status"}).
			AddRow(4, "Ventures Agency", "agency@example.com", "active"))

	ctx, w := newTestContext(t, http.MethodPatch, gin.H{})
	ctx.Params = append(ctx.Params, gin.Param{Key: "profile_id", Value: "4"})
	asUser(ctx, employee(1))

	UpdateUpworkProfile(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No fields to update")
	assert.NoError(t, mock.ExpectationsWereMet())
}
