package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/univ-fsi/surveillance-api/internal/models"
)

func TestPlanningRepositoryListDetails(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanningRepository(db)

	rows := sqlmock.NewRows([]string{
		"id", "section", "session", "required_invigilators",
		"formation_id", "formation_semester", "formation_module", "formation_program", "formation_level",
		"timeslot_id", "exam_date", "start_time", "room",
	}).
		AddRow("p1", "A", "Normale", 2, "f1", "S1", "Analyse 2", "Mathématiques", "L1", "t1", time.Now(), "09:00", "Amphi A").
		AddRow("p2", "B", "Normale", 2, nil, nil, nil, nil, nil, nil, nil, nil, nil)

	mock.ExpectQuery(regexp.QuoteMeta("LEFT JOIN formations f ON f.id = p.formation_id")).
		WillReturnRows(rows)

	details, err := repo.ListDetails(context.Background())
	require.NoError(t, err)
	require.Len(t, details, 2)
	assert.True(t, details[0].FormationID.Valid)
	assert.False(t, details[1].FormationID.Valid)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanningRepositoryCreateWithInvigilators(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanningRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO plannings").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), "A", "Normale", 2, sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO invigilations").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "T001", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO invigilations").
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), "T002", false, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	formationID, timeslotID := "f1", "t1"
	planning := &models.Planning{
		FormationID:          &formationID,
		TimeSlotID:           &timeslotID,
		Section:              "A",
		Session:              "Normale",
		RequiredInvigilators: 2,
	}
	invigilations := []models.Invigilation{
		{TeacherCode: "T001", IsLead: true},
		{TeacherCode: "T002"},
	}

	require.NoError(t, repo.CreateWithInvigilators(context.Background(), planning, invigilations))
	assert.NotEmpty(t, planning.ID)
	assert.Equal(t, planning.ID, invigilations[0].PlanningID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanningRepositoryCreateRollsBackOnFailure(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanningRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO plannings").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO invigilations").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	planning := &models.Planning{Section: "A", Session: "Normale"}
	err := repo.CreateWithInvigilators(context.Background(), planning, []models.Invigilation{{TeacherCode: "T001"}})
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanningRepositoryReplaceWithInvigilators(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanningRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE plannings SET").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM invigilations WHERE planning_id = $1")).
		WithArgs("p1").
		WillReturnResult(sqlmock.NewResult(1, 2))
	mock.ExpectExec("INSERT INTO invigilations").
		WithArgs(sqlmock.AnyArg(), "p1", "T003", true, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	planning := &models.Planning{ID: "p1", Section: "A", Session: "Normale"}
	err := repo.ReplaceWithInvigilators(context.Background(), planning, []models.Invigilation{{TeacherCode: "T003", IsLead: true}})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanningRepositoryDeleteMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanningRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM plannings WHERE id = $1")).
		WithArgs("absent").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "absent")
	assert.ErrorIs(t, err, ErrNoRowsAffected)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPlanningRepositoryInvigilatorsByPlanning(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewPlanningRepository(db)

	rows := sqlmock.NewRows([]string{"id", "planning_id", "teacher_code", "is_lead", "last_name", "first_name", "department", "email1"}).
		AddRow("i1", "p1", "T001", true, "Benali", "Amel", nil, nil)
	mock.ExpectQuery(regexp.QuoteMeta("WHERE i.planning_id = $1")).
		WithArgs("p1").
		WillReturnRows(rows)

	invigilators, err := repo.InvigilatorsByPlanning(context.Background(), "p1")
	require.NoError(t, err)
	require.Len(t, invigilators, 1)
	assert.True(t, invigilators[0].IsLead)
	assert.NoError(t, mock.ExpectationsWereMet())
}
