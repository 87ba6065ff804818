package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestJoinWorkspaceDuplicateMembership(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "invite_code"}).AddRow(7, "Frontend Team", "FRONT-A1B2C"))
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "workspace_id"}).AddRow(3, 42, 7))

	ctx, w := newTestContext(t, http.MethodPost, gin.H{"invite_code": "FRONT-A1B2C"})
	asUser(ctx, employee(42))

	JoinWorkspace(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already a member")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinWorkspaceInvalidCode(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "invite_code"}))

	ctx, w := newTestContext(t, http.MethodPost, gin.H{"invite_code": "NOPE-00000"})
	asUser(ctx, employee(42))

	JoinWorkspace(ctx)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid invite code")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinWorkspaceSuccess(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "invite_code"}).AddRow(7, "Frontend Team", "FRONT-A1B2C"))
	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "workspace_id"}))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT").WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(9))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodPost, gin.H{"invite_code": "FRONT-A1B2C"})
	asUser(ctx, employee(42))

	JoinWorkspace(ctx)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), "Successfully joined")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJoinWorkspaceMissingCode(t *testing.T) {
	newMockDB(t)

	ctx, w := newTestContext(t, http.MethodPost, gin.H{})
	asUser(ctx, employee(42))

	JoinWorkspace(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// The cascade constraints only fire on a real DELETE; a soft delete would
// leave the workspace's projects and members as live rows.
func TestDeleteWorkspaceRemovesRow(t *testing.T) {
	mock := newStrictMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "workspaces"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "invite_code"}).AddRow(7, "Frontend Team", "FRONT-A1B2C"))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "workspaces"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodDelete, nil)
	ctx.Params = append(ctx.Params, gin.Param{Key: "workspace_id", Value: "7"})
	asUser(ctx, employee(1))

	DeleteWorkspace(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Leaving must remove the membership row outright; a soft-deleted row would
// still occupy the composite unique index and turn every rejoin into a 409.
func TestLeaveWorkspaceRemovesMembershipRow(t *testing.T) {
	mock := newStrictMockDB(t)

	mock.ExpectQuery(`SELECT (.+) FROM "workspaces"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "invite_code"}).AddRow(7, "Frontend Team", "FRONT-A1B2C"))
	mock.ExpectQuery(`SELECT (.+) FROM "workspace_members"`).WillReturnRows(
		sqlmock.NewRows([]string{"id", "user_id", "workspace_id"}).AddRow(3, 42, 7))
	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "workspace_members"`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	ctx, w := newTestContext(t, http.MethodDelete, nil)
	ctx.Params = append(ctx.Params, gin.Param{Key: "workspace_id", Value: "7"})
	asUser(ctx, employee(42))

	LeaveWorkspace(ctx)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "left the workspace")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateWorkspaceDuplicateName(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "name", "invite_code"}).AddRow(7, "Frontend Team", "FRONT-A1B2C"))

	ctx, w := newTestContext(t, http.MethodPost, gin.H{"name": "Frontend Team"})
	asUser(ctx, employee(1))

	CreateWorkspace(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}
