package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univ-fsi/surveillance-api/internal/models"
)

func newRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func teacherRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"code", "last_name", "first_name", "department", "grade", "email1", "email2", "created_at", "updated_at"})
}

func TestTeacherRepositoryList(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	rows := teacherRows().
		AddRow("T001", "Benali", "Amel", nil, nil, "a@univ.dz", nil, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT code, last_name, first_name, department, grade, email1, email2, created_at, updated_at FROM teachers WHERE 1=1 ORDER BY last_name ASC LIMIT 50 OFFSET 0")).
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM teachers WHERE 1=1")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	list, total, err := repo.List(context.Background(), models.TeacherFilter{})
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryListWithSearchAndDepartment(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("(LOWER(last_name) LIKE $1 OR LOWER(first_name) LIKE $1 OR LOWER(code) LIKE $1) AND department = $2")).
		WithArgs("%ben%", "Informatique").
		WillReturnRows(teacherRows())
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs("%ben%", "Informatique").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	list, total, err := repo.List(context.Background(), models.TeacherFilter{Search: "Ben", Department: "Informatique"})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Equal(t, 0, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryFindByCode(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT code, last_name, first_name, department, grade, email1, email2, created_at, updated_at FROM teachers WHERE code = $1")).
		WithArgs("T001").
		WillReturnRows(teacherRows().AddRow("T001", "Benali", "Amel", nil, nil, nil, nil, time.Now(), time.Now()))

	teacher, err := repo.FindByCode(context.Background(), "T001")
	require.NoError(t, err)
	assert.Equal(t, "Benali", teacher.LastName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryCreateAndUpdate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec("INSERT INTO teachers").
		WithArgs("T001", "Benali", "Amel", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	teacher := &models.Teacher{Code: "T001", LastName: "Benali", FirstName: "Amel"}
	require.NoError(t, repo.Create(context.Background(), teacher))
	assert.False(t, teacher.UpdatedAt.IsZero())

	mock.ExpectExec("UPDATE teachers SET").
		WithArgs("Benali", "Amel", sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "T001").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Update(context.Background(), teacher))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM teachers WHERE code = $1")).
		WithArgs("T001").
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, repo.Delete(context.Background(), "T001"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
