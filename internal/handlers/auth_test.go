package handlers

import (
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"golang.org/x/crypto/bcrypt"
)

func TestRegisterUserInvalidRole(t *testing.T) {
	mock := newMockDB(t)

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "ada@example.com",
		"password":   "correct-horse",
		"role":       "superuser",
	})

	RegisterUser(ctx)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid role")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegisterUserDuplicateEmail(t *testing.T) {
	mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "email"}).AddRow(1, "ada@example.com"))

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"first_name": "Ada",
		"last_name":  "Lovelace",
		"email":      "Ada@Example.com",
		"password":   "correct-horse",
	})

	RegisterUser(ctx)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUserWrongPassword(t *testing.T) {
	mock := newMockDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "password_hash", "is_active"}).
			AddRow(1, "ada@example.com", string(hash), true))

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"email":    "ada@example.com",
		"password": "battery-staple",
	})

	LoginUser(ctx)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginUserInactiveAccount(t *testing.T) {
	mock := newMockDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	assert.NoError(t, err)

	mock.ExpectQuery("SELECT").WillReturnRows(
		sqlmock.NewRows([]string{"id", "email", "password_hash", "is_active"}).
			AddRow(1, "ada@example.com", string(hash), false))

	ctx, w := newTestContext(t, http.MethodPost, gin.H{
		"email":    "ada@example.com",
		"password": "correct-horse",
	})

	LoginUser(ctx)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "inactive")
	assert.NoError(t, mock.ExpectationsWereMet())
}
