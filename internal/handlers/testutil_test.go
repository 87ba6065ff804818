package handlers

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dev-ventures/ventures/db"
	"github.com/dev-ventures/ventures/internal/middleware"
	"github.com/dev-ventures/ventures/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// newMockDB swaps the package-level connection for a sqlmock-backed one for
// the duration of the test. The matcher accepts any SQL so expectations only
// pin down the order and shape of results, not gorm's generated statements.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	matchAny := sqlmock.QueryMatcherFunc(func(expectedSQL, actualSQL string) error {
		return nil
	})

	conn, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matchAny))
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	previous := db.DB
	db.DB = gormDB

	t.Cleanup(func() {
		db.DB = previous
		conn.Close()
	})

	return mock
}

// newStrictMockDB keeps sqlmock's default regexp matcher, for tests that
// assert which kind of statement gorm actually issues.
func newStrictMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	conn, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 conn,
		PreferSimpleProtocol: true,
	}), &gorm.Config{TranslateError: true})
	require.NoError(t, err)

	previous := db.DB
	db.DB = gormDB

	t.Cleanup(func() {
		db.DB = previous
		conn.Close()
	})

	return mock
}

func newTestContext(t *testing.T, method string, body interface{}) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()

	w := httptest.NewRecorder()
	ctx, _ := gin.CreateTestContext(w)

	var reader *bytes.Reader

	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	ctx.Request = httptest.NewRequest(method, "/", reader)
	ctx.Request.Header.Set("Content-Type", "application/json")

	return ctx, w
}

func asUser(ctx *gin.Context, user middleware.AuthenticatedUser) {
	ctx.Set(types.ContextUserKey, user)
}

func employee(id uint) middleware.AuthenticatedUser {
	return middleware.AuthenticatedUser{
		ID:        id,
		FirstName: "Test",
		LastName:  "User",
		Email:     "test@example.com",
		Role:      types.RoleEmployee,
	}
}
