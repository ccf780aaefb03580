package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/models"
	"github.com/univ-fsi/surveillance-api/pkg/config"
)

type planningRepoStub struct {
	details []models.PlanningDetail
	err     error
}

func (s *planningRepoStub) ListDetails(ctx context.Context) ([]models.PlanningDetail, error) {
	return s.details, s.err
}

type invigilationRepoStub struct {
	details []models.InvigilationDetail
	err     error
}

func (s *invigilationRepoStub) ListDetails(ctx context.Context) ([]models.InvigilationDetail, error) {
	return s.details, s.err
}

type roomRepoStub struct {
	slots []models.RoomSlot
	err   error
}

func (s *roomRepoStub) ListRoomSlots(ctx context.Context) ([]models.RoomSlot, error) {
	return s.slots, s.err
}

func disabledCache() *CacheService {
	return NewCacheService(nil, NewMetricsService(), zap.NewNop(), config.AnalyticsConfig{})
}

func examDay(day int) time.Time {
	return time.Date(2025, 6, day, 0, 0, 0, 0, time.UTC)
}

func planningDetail(id, formationID, module, slotID string, day int, start string) models.PlanningDetail {
	return models.PlanningDetail{
		ID:              id,
		FormationID:     sql.NullString{String: formationID, Valid: formationID != ""},
		FormationModule: sql.NullString{String: module, Valid: module != ""},
		TimeSlotID:      sql.NullString{String: slotID, Valid: slotID != ""},
		ExamDate:        sql.NullTime{Time: examDay(day), Valid: slotID != ""},
		StartTime:       sql.NullString{String: start, Valid: slotID != ""},
	}
}

func invigilationDetail(id, planningID, teacher string, day int, start string) models.InvigilationDetail {
	return models.InvigilationDetail{
		ID:          id,
		PlanningID:  planningID,
		TeacherCode: teacher,
		ExamDate:    sql.NullTime{Time: examDay(day), Valid: true},
		StartTime:   sql.NullString{String: start, Valid: true},
	}
}

func TestDetectExamDateSpreadFlagsDifferingPairs(t *testing.T) {
	plannings := &planningRepoStub{details: []models.PlanningDetail{
		planningDetail("p1", "f1", "Analyse 2", "t1", 1, "09:00"),
		planningDetail("p2", "f1", "Analyse 2", "t2", 1, "11:00"),
	}}
	svc := NewConflictService(plannings, &invigilationRepoStub{}, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, cacheHit, err := svc.DetectExamDateSpread(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "Analyse 2", report.Conflicts[0].Module)
	require.Len(t, report.Conflicts[0].Conflicts, 1)

	pair := report.Conflicts[0].Conflicts[0]
	assert.Equal(t, "p1", pair.Planning1ID)
	assert.Equal(t, "p2", pair.Planning2ID)
	assert.Equal(t, pair.Date1, pair.Date2)
	assert.NotEqual(t, pair.Time1, pair.Time2)
	assert.Empty(t, report.Message)
}

func TestDetectExamDateSpreadIdenticalScheduleIsClean(t *testing.T) {
	plannings := &planningRepoStub{details: []models.PlanningDetail{
		planningDetail("p1", "f1", "Algèbre", "t1", 1, "09:00"),
		planningDetail("p2", "f1", "Algèbre", "t1", 1, "09:00"),
	}}
	svc := NewConflictService(plannings, &invigilationRepoStub{}, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectExamDateSpread(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
	assert.NotEmpty(t, report.Message)
}

func TestDetectExamDateSpreadSinglePlanningReportsMessage(t *testing.T) {
	plannings := &planningRepoStub{details: []models.PlanningDetail{
		planningDetail("p1", "f1", "Algèbre", "t1", 1, "09:00"),
	}}
	svc := NewConflictService(plannings, &invigilationRepoStub{}, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectExamDateSpread(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
	assert.NotEmpty(t, report.Message)
}

func TestDetectExamDateSpreadSkipsBrokenLinks(t *testing.T) {
	plannings := &planningRepoStub{details: []models.PlanningDetail{
		planningDetail("p1", "f1", "Algèbre", "t1", 1, "09:00"),
		planningDetail("p2", "", "", "t2", 2, "09:00"),
		planningDetail("p3", "f1", "Algèbre", "", 0, ""),
	}}
	svc := NewConflictService(plannings, &invigilationRepoStub{}, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectExamDateSpread(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
}

func TestDetectExamDateSpreadStoreFailurePropagates(t *testing.T) {
	plannings := &planningRepoStub{err: errors.New("connection refused")}
	svc := NewConflictService(plannings, &invigilationRepoStub{}, &roomRepoStub{}, disabledCache(), zap.NewNop())

	_, _, err := svc.DetectExamDateSpread(context.Background())
	require.Error(t, err)
}

func TestDetectTeacherDoubleBookingsExactClash(t *testing.T) {
	invigilations := &invigilationRepoStub{details: []models.InvigilationDetail{
		invigilationDetail("i1", "p1", "T001", 1, "09:00"),
		invigilationDetail("i2", "p2", "T001", 1, "09:00"),
	}}
	svc := NewConflictService(&planningRepoStub{}, invigilations, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectTeacherDoubleBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "T001", report.Conflicts[0].TeacherCode)
	require.Len(t, report.Conflicts[0].Conflicts, 1)

	conflict := report.Conflicts[0].Conflicts[0]
	assert.Equal(t, "i1", conflict.Invigilation1ID)
	assert.Equal(t, "i2", conflict.Invigilation2ID)
	assert.Equal(t, "2025-06-01", conflict.Date)
	assert.Equal(t, "09:00", conflict.Time)
}

func TestDetectTeacherDoubleBookingsRequiresBothFieldsEqual(t *testing.T) {
	// Same date, different time and same time, different date: neither
	// pair is a double booking.
	invigilations := &invigilationRepoStub{details: []models.InvigilationDetail{
		invigilationDetail("i1", "p1", "T001", 1, "09:00"),
		invigilationDetail("i2", "p2", "T001", 1, "11:00"),
		invigilationDetail("i3", "p3", "T001", 2, "09:00"),
	}}
	svc := NewConflictService(&planningRepoStub{}, invigilations, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectTeacherDoubleBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
	assert.NotEmpty(t, report.Message)
}

func TestDetectTeacherDoubleBookingsNoSelfPairing(t *testing.T) {
	invigilations := &invigilationRepoStub{details: []models.InvigilationDetail{
		invigilationDetail("i1", "p1", "T001", 1, "09:00"),
	}}
	svc := NewConflictService(&planningRepoStub{}, invigilations, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectTeacherDoubleBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
}

func TestDetectTeacherDoubleBookingsSymmetry(t *testing.T) {
	forward := &invigilationRepoStub{details: []models.InvigilationDetail{
		invigilationDetail("i1", "p1", "T001", 1, "09:00"),
		invigilationDetail("i2", "p2", "T001", 1, "09:00"),
	}}
	reversed := &invigilationRepoStub{details: []models.InvigilationDetail{
		invigilationDetail("i2", "p2", "T001", 1, "09:00"),
		invigilationDetail("i1", "p1", "T001", 1, "09:00"),
	}}

	svcForward := NewConflictService(&planningRepoStub{}, forward, &roomRepoStub{}, disabledCache(), zap.NewNop())
	svcReversed := NewConflictService(&planningRepoStub{}, reversed, &roomRepoStub{}, disabledCache(), zap.NewNop())

	a, _, err := svcForward.DetectTeacherDoubleBookings(context.Background())
	require.NoError(t, err)
	b, _, err := svcReversed.DetectTeacherDoubleBookings(context.Background())
	require.NoError(t, err)

	require.Len(t, a.Conflicts, 1)
	require.Len(t, b.Conflicts, 1)
	assert.Len(t, a.Conflicts[0].Conflicts, len(b.Conflicts[0].Conflicts))
}

func TestDetectRoomDoubleBookings(t *testing.T) {
	rooms := &roomRepoStub{slots: []models.RoomSlot{
		{Room: "Amphi A", TimeSlotID: "t1", ExamDate: examDay(1), StartTime: "09:00"},
		{Room: "Amphi A", TimeSlotID: "t2", ExamDate: examDay(1), StartTime: "09:00"},
		{Room: "Amphi B", TimeSlotID: "t3", ExamDate: examDay(1), StartTime: "09:00"},
	}}
	svc := NewConflictService(&planningRepoStub{}, &invigilationRepoStub{}, rooms, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectRoomDoubleBookings(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Conflicts, 1)
	assert.Equal(t, "Amphi A", report.Conflicts[0].Room)
	require.Len(t, report.Conflicts[0].Conflicts, 1)
	assert.Equal(t, "t1", report.Conflicts[0].Conflicts[0].TimeSlot1ID)
	assert.Equal(t, "t2", report.Conflicts[0].Conflicts[0].TimeSlot2ID)
}

func TestDetectRoomDoubleBookingsSameSlotIsNotAClash(t *testing.T) {
	rooms := &roomRepoStub{slots: []models.RoomSlot{
		{Room: "Amphi A", TimeSlotID: "t1", ExamDate: examDay(1), StartTime: "09:00"},
		{Room: "Amphi A", TimeSlotID: "t1", ExamDate: examDay(1), StartTime: "09:00"},
	}}
	svc := NewConflictService(&planningRepoStub{}, &invigilationRepoStub{}, rooms, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectRoomDoubleBookings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Conflicts)
}

func TestDetectDuplicatePlannings(t *testing.T) {
	d1 := planningDetail("p1", "f1", "Algèbre", "t1", 1, "09:00")
	d1.Section = "A"
	d2 := planningDetail("p2", "f1", "Algèbre", "t1", 1, "09:00")
	d2.Section = "A"
	d3 := planningDetail("p3", "f1", "Algèbre", "t1", 1, "09:00")
	d3.Section = "B"

	plannings := &planningRepoStub{details: []models.PlanningDetail{d1, d2, d3}}
	svc := NewConflictService(plannings, &invigilationRepoStub{}, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectDuplicatePlannings(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Duplicates, 1)
	assert.Equal(t, 2, report.Duplicates[0].Count)
	assert.ElementsMatch(t, []string{"p1", "p2"}, report.Duplicates[0].PlanningIDs)
	assert.Equal(t, "A", report.Duplicates[0].Section)
}

func TestDetectDuplicatePlanningsCleanMessage(t *testing.T) {
	plannings := &planningRepoStub{details: []models.PlanningDetail{
		planningDetail("p1", "f1", "Algèbre", "t1", 1, "09:00"),
	}}
	svc := NewConflictService(plannings, &invigilationRepoStub{}, &roomRepoStub{}, disabledCache(), zap.NewNop())

	report, _, err := svc.DetectDuplicatePlannings(context.Background())
	require.NoError(t, err)
	assert.Empty(t, report.Duplicates)
	assert.NotEmpty(t, report.Message)
}
