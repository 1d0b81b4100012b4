package seed

import (
	"context"
	"database/sql/driver"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/campusworks/records-api/internal/models"
)

func TestSeedRun(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	// Lookup tables load from a map, so exec order varies between runs.
	mock.MatchExpectationsInOrder(false)

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS colleges")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("TRUNCATE student_courses")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	for table, count := range map[string]int{"colleges": 3, "titles": 3, "course_types": 3} {
		for i := 0; i < count; i++ {
			mock.ExpectExec(regexp.QuoteMeta("INSERT INTO "+table+" (name, code) VALUES ($1, $2)")).
				WillReturnResult(sqlmock.NewResult(int64(i+1), 1))
		}
	}
	mock.ExpectCommit()

	var hashArg string
	mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users (username, password_hash, role, related_id, active)")).
		WithArgs("admin", hashGrabber{&hashArg}, models.RoleAdmin, nil, true).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(1)))

	err = Run(context.Background(), sqlx.NewDb(db, "sqlmock"), nil, "admin123")
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())

	// The stored credential must be a bcrypt hash of the given password,
	// never the plain text.
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hashArg), []byte("admin123")))
}

// hashGrabber matches any string argument and records it for later checks.
type hashGrabber struct {
	dst *string
}

func (h hashGrabber) Match(v driver.Value) bool {
	s, ok := v.(string)
	if ok {
		*h.dst = s
	}
	return ok
}
