package invite

import (
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dev-ventures/ventures/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
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

	return gormDB, mock
}

func TestSlugifyName(t *testing.T) {
	assert.Equal(t, "FRONT", SlugifyName("Frontend Team"))
	assert.Equal(t, "AB1", SlugifyName("a-b 1"))
	assert.Equal(t, "DEV", SlugifyName("dev"))
	assert.Equal(t, "WS", SlugifyName("!!! ***"))
	assert.Equal(t, "WS", SlugifyName(""))
}

func TestUniqueCodeFormat(t *testing.T) {
	gormDB, mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	code, err := UniqueCode(gormDB, &models.Workspace{}, "invite_code", "Frontend Team")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^FRONT-[A-Z0-9]{5}$`), code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUniqueCodeEmptySeedUsesFallbackPrefix(t *testing.T) {
	gormDB, mock := newMockDB(t)

	mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	code, err := UniqueCode(gormDB, &models.Workspace{}, "invite_code", "!!!")
	require.NoError(t, err)

	assert.Regexp(t, regexp.MustCompile(`^WS-[A-Z0-9]{5}$`), code)
}

func TestUniqueCodeFallsBackAfterExhaustedAttempts(t *testing.T) {
	gormDB, mock := newMockDB(t)

	// Every random candidate collides.
	for i := 0; i < 10; i++ {
		mock.ExpectQuery("SELECT").WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	}

	code, err := UniqueCode(gormDB, &models.Task{}, "task_code", "TSK")
	require.NoError(t, err)

	// The uuid fallback is not re-checked against the table.
	assert.Regexp(t, regexp.MustCompile(`^TSK-[0-9A-F]{8}$`), code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
