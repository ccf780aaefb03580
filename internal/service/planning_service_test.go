package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/models"
	"github.com/univ-fsi/surveillance-api/internal/repository"
	appErrors "github.com/univ-fsi/surveillance-api/pkg/errors"
)

type planningStoreStub struct {
	detail       *models.PlanningDetail
	planning     *models.Planning
	deleteErr    error
	created      *models.Planning
	replaced     *models.Planning
	assignments  []models.Invigilation
	invigilators []models.PlanningInvigilator
}

func (s *planningStoreStub) ListDetails(ctx context.Context) ([]models.PlanningDetail, error) {
	if s.detail == nil {
		return nil, nil
	}
	return []models.PlanningDetail{*s.detail}, nil
}

func (s *planningStoreStub) FindDetail(ctx context.Context, id string) (*models.PlanningDetail, error) {
	if s.detail == nil {
		return nil, sql.ErrNoRows
	}
	return s.detail, nil
}

func (s *planningStoreStub) FindByID(ctx context.Context, id string) (*models.Planning, error) {
	if s.planning == nil {
		return nil, sql.ErrNoRows
	}
	return s.planning, nil
}

func (s *planningStoreStub) CreateWithInvigilators(ctx context.Context, planning *models.Planning, invigilations []models.Invigilation) error {
	planning.ID = "p1"
	s.created = planning
	s.assignments = invigilations
	return nil
}

func (s *planningStoreStub) ReplaceWithInvigilators(ctx context.Context, planning *models.Planning, invigilations []models.Invigilation) error {
	s.replaced = planning
	s.assignments = invigilations
	return nil
}

func (s *planningStoreStub) Delete(ctx context.Context, id string) error {
	return s.deleteErr
}

func (s *planningStoreStub) InvigilatorsByPlanning(ctx context.Context, planningID string) ([]models.PlanningInvigilator, error) {
	return s.invigilators, nil
}

type monitoringStub struct {
	rows []models.MonitoringRow
	err  error
}

func (s *monitoringStub) MonitoringRows(ctx context.Context) ([]models.MonitoringRow, error) {
	return s.rows, s.err
}

type teacherFinderStub struct {
	known map[string]bool
}

func (s *teacherFinderStub) FindByCode(ctx context.Context, code string) (*models.Teacher, error) {
	if !s.known[code] {
		return nil, sql.ErrNoRows
	}
	return &models.Teacher{Code: code}, nil
}

func newPlanningService(store *planningStoreStub, monitoring *monitoringStub, teachers *teacherFinderStub) *PlanningService {
	if teachers == nil {
		teachers = &teacherFinderStub{}
	}
	if monitoring == nil {
		monitoring = &monitoringStub{}
	}
	return NewPlanningService(store, monitoring, teachers, disabledCache(), nil, zap.NewNop())
}

func createRequest(invigilators ...dto.InvigilatorInput) dto.CreatePlanningRequest {
	return dto.CreatePlanningRequest{
		FormationID:          "f1",
		TimeSlotID:           "t1",
		Section:              "A",
		Session:              "Normale",
		RequiredInvigilators: 2,
		Invigilators:         invigilators,
	}
}

func TestCreatePromotesFirstInvigilatorToLead(t *testing.T) {
	store := &planningStoreStub{detail: &models.PlanningDetail{ID: "p1", Section: "A"}}
	teachers := &teacherFinderStub{known: map[string]bool{"T001": true, "T002": true}}
	svc := newPlanningService(store, nil, teachers)

	req := createRequest(
		dto.InvigilatorInput{TeacherCode: "T001"},
		dto.InvigilatorInput{TeacherCode: "T002"},
	)
	resp, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, resp)

	require.Len(t, store.assignments, 2)
	assert.True(t, store.assignments[0].IsLead)
	assert.False(t, store.assignments[1].IsLead)
	assert.Equal(t, "T001", store.assignments[0].TeacherCode)
	// The caller's slice stays untouched.
	assert.False(t, req.Invigilators[0].IsLead)
}

func TestCreateKeepsExplicitLead(t *testing.T) {
	store := &planningStoreStub{detail: &models.PlanningDetail{ID: "p1", Section: "A"}}
	teachers := &teacherFinderStub{known: map[string]bool{"T001": true, "T002": true}}
	svc := newPlanningService(store, nil, teachers)

	_, err := svc.Create(context.Background(), createRequest(
		dto.InvigilatorInput{TeacherCode: "T001"},
		dto.InvigilatorInput{TeacherCode: "T002", IsLead: true},
	))
	require.NoError(t, err)

	require.Len(t, store.assignments, 2)
	assert.False(t, store.assignments[0].IsLead)
	assert.True(t, store.assignments[1].IsLead)
}

func TestCreateRejectsMultipleLeads(t *testing.T) {
	teachers := &teacherFinderStub{known: map[string]bool{"T001": true, "T002": true}}
	svc := newPlanningService(&planningStoreStub{}, nil, teachers)

	_, err := svc.Create(context.Background(), createRequest(
		dto.InvigilatorInput{TeacherCode: "T001", IsLead: true},
		dto.InvigilatorInput{TeacherCode: "T002", IsLead: true},
	))
	assert.ErrorIs(t, err, appErrors.ErrMultipleLeads)
}

func TestCreateRejectsDuplicateTeacher(t *testing.T) {
	teachers := &teacherFinderStub{known: map[string]bool{"T001": true}}
	svc := newPlanningService(&planningStoreStub{}, nil, teachers)

	_, err := svc.Create(context.Background(), createRequest(
		dto.InvigilatorInput{TeacherCode: "T001"},
		dto.InvigilatorInput{TeacherCode: "T001"},
	))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCreateRejectsUnknownTeacher(t *testing.T) {
	teachers := &teacherFinderStub{known: map[string]bool{"T001": true}}
	svc := newPlanningService(&planningStoreStub{}, nil, teachers)

	_, err := svc.Create(context.Background(), createRequest(
		dto.InvigilatorInput{TeacherCode: "T001"},
		dto.InvigilatorInput{TeacherCode: "T999"},
	))
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCreateRejectsEmptyInvigilators(t *testing.T) {
	svc := newPlanningService(&planningStoreStub{}, nil, nil)

	_, err := svc.Create(context.Background(), createRequest())
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestUpdateAppliesPartialFields(t *testing.T) {
	section := "B"
	store := &planningStoreStub{
		detail:   &models.PlanningDetail{ID: "p1", Section: "B"},
		planning: &models.Planning{ID: "p1", Section: "A", Session: "Normale", RequiredInvigilators: 2},
	}
	teachers := &teacherFinderStub{known: map[string]bool{"T001": true}}
	svc := newPlanningService(store, nil, teachers)

	_, err := svc.Update(context.Background(), "p1", dto.UpdatePlanningRequest{
		Section:      &section,
		Invigilators: []dto.InvigilatorInput{{TeacherCode: "T001", IsLead: true}},
	})
	require.NoError(t, err)

	require.NotNil(t, store.replaced)
	assert.Equal(t, "B", store.replaced.Section)
	assert.Equal(t, "Normale", store.replaced.Session)
	assert.Equal(t, 2, store.replaced.RequiredInvigilators)
}

func TestUpdateMissingPlanning(t *testing.T) {
	teachers := &teacherFinderStub{known: map[string]bool{"T001": true}}
	svc := newPlanningService(&planningStoreStub{}, nil, teachers)

	_, err := svc.Update(context.Background(), "absent", dto.UpdatePlanningRequest{
		Invigilators: []dto.InvigilatorInput{{TeacherCode: "T001"}},
	})
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestDeleteMissingPlanning(t *testing.T) {
	svc := newPlanningService(&planningStoreStub{deleteErr: repository.ErrNoRowsAffected}, nil, nil)

	err := svc.Delete(context.Background(), "absent")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func TestGetMissingPlanning(t *testing.T) {
	svc := newPlanningService(&planningStoreStub{}, nil, nil)

	_, err := svc.Get(context.Background(), "absent")
	assert.ErrorIs(t, err, appErrors.ErrNotFound)
}

func monitoringRow(code, first, last string, lead bool, day int, start string) models.MonitoringRow {
	return models.MonitoringRow{
		TeacherCode: code,
		FirstName:   sql.NullString{String: first, Valid: first != ""},
		LastName:    sql.NullString{String: last, Valid: last != ""},
		IsLead:      lead,
		ExamDate:    sql.NullTime{Time: examDay(day), Valid: true},
		StartTime:   sql.NullString{String: start, Valid: true},
	}
}

func TestMonitoringSortsByTeacherDateAndTime(t *testing.T) {
	rows := []models.MonitoringRow{
		monitoringRow("T002", "Yacine", "Cherif", false, 2, "09:00"),
		monitoringRow("T001", "Amel", "Benali", true, 1, "11:00"),
		monitoringRow("T001", "Amel", "Benali", false, 1, "09:00"),
	}
	svc := newPlanningService(&planningStoreStub{}, &monitoringStub{rows: rows}, nil)

	entries, err := svc.Monitoring(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 3)

	assert.Equal(t, "Amel Benali", entries[0].TeacherName)
	assert.Equal(t, "09:00", entries[0].Time)
	assert.Equal(t, "Assistant", entries[0].Role)
	assert.Equal(t, "11:00", entries[1].Time)
	assert.Equal(t, "Principal", entries[1].Role)
	assert.Equal(t, "Yacine Cherif", entries[2].TeacherName)
	assert.Equal(t, "2025-06-01", entries[0].Date)
}

func TestMonitoringFallsBackToCodeWhenNameMissing(t *testing.T) {
	rows := []models.MonitoringRow{monitoringRow("T009", "", "", false, 1, "09:00")}
	svc := newPlanningService(&planningStoreStub{}, &monitoringStub{rows: rows}, nil)

	entries, err := svc.Monitoring(context.Background())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "T009", entries[0].TeacherName)
}
