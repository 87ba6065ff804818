package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestCreateTaskMissingProjectID(t *testing.T) {
	mock := newMockDB(t)

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"title":       "Wire up the login form",
		"assigned_to": 4,
	})
	asUser(ctx, employee(1))

	CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid request")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTaskRejectsUnknownStatus(t *testing.T) {
	mock := newMockDB(t)

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"title":       "Wire up the login form",
		"project_id":  2,
		"assigned_to": 4,
		"status":      "doing",
	})
	asUser(ctx, employee(1))

	CreateTask(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid task status")
	assert.NoError(t, mock.ExpectationsWereMet())
}

// A real DELETE frees the task code and lets the cascade constraints take
// deliverables and attachments with it.
func TestDeleteTaskRemovesRow(t *testing.T) {
	mock := newStrictMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "tasks"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "task_code", "project_id"}).AddRow(6, "TSK-1A2B3", 2))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "tasks"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodDelete, nil)
	ctx.Params = append(ctx.Params, gin.Param{Key: "task_id", Value: "6"})
	asUser(ctx, employee(1))

	DeleteTask(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "TSK-1A2B3")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTaskUnknownProject(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"id"}))

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"title":       "Wire up the login form",
		"project_id":  999,
		"assigned_to": 4,
	})
	asUser(ctx, employee(1))

	CreateTask(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Project with id 999 does not exist")
	assert.NoError(t, mock.ExpectationsWereMet())
}
