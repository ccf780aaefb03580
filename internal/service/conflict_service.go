package service

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/models"
)

const (
	cacheKeySpread     = "conflicts:spread"
	cacheKeyTeacher    = "conflicts:teachers"
	cacheKeyRoom       = "conflicts:rooms"
	cacheKeyDuplicates = "conflicts:duplicates"

	msgNoSpreadConflicts    = "Aucun conflit de dates d'examen détecté"
	msgNoTeacherConflicts   = "Aucun enseignant avec des surveillances en conflit"
	msgNoRoomConflicts      = "Aucune salle avec des créneaux en conflit"
	msgNoDuplicatePlannings = "Aucun planning dupliqué détecté"
)

// conflictPlanningRepository lists plannings joined to their formation and
// timeslot links.
type conflictPlanningRepository interface {
	ListDetails(ctx context.Context) ([]models.PlanningDetail, error)
}

// conflictInvigilationRepository lists invigilations joined to their
// planning's timeslot.
type conflictInvigilationRepository interface {
	ListDetails(ctx context.Context) ([]models.InvigilationDetail, error)
}

// conflictRoomRepository lists room/timeslot occurrences.
type conflictRoomRepository interface {
	ListRoomSlots(ctx context.Context) ([]models.RoomSlot, error)
}

// ConflictService runs the four scheduling-conflict checks. Each check is a
// pure read-and-compute over a snapshot: pass one groups rows by the check's
// key, pass two scans each group's unordered pairs.
type ConflictService struct {
	plannings     conflictPlanningRepository
	invigilations conflictInvigilationRepository
	rooms         conflictRoomRepository
	cache         *CacheService
	logger        *zap.Logger
}

// NewConflictService constructs the conflict detector.
func NewConflictService(
	plannings conflictPlanningRepository,
	invigilations conflictInvigilationRepository,
	rooms conflictRoomRepository,
	cache *CacheService,
	logger *zap.Logger,
) *ConflictService {
	return &ConflictService{
		plannings:     plannings,
		invigilations: invigilations,
		rooms:         rooms,
		cache:         cache,
		logger:        logger,
	}
}

// DetectExamDateSpread flags every formation whose exam instances are not
// all on one single date and time. Any pair differing on either field is a
// conflict; rows with a missing formation or timeslot link are skipped.
func (s *ConflictService) DetectExamDateSpread(ctx context.Context) (*dto.SpreadReport, bool, error) {
	var cached dto.SpreadReport
	if s.cache.Get(ctx, cacheKeySpread, &cached) {
		return &cached, true, nil
	}

	rows, err := s.plannings.ListDetails(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list plannings for spread check: %w", err)
	}

	byFormation := make(map[string][]models.PlanningDetail)
	var order []string
	for _, row := range rows {
		if !row.FormationID.Valid || !row.HasSchedule() {
			s.logger.Debug("skipping planning with broken links",
				zap.String("planning_id", row.ID))
			continue
		}
		key := row.FormationID.String
		if _, seen := byFormation[key]; !seen {
			order = append(order, key)
		}
		byFormation[key] = append(byFormation[key], row)
	}

	report := &dto.SpreadReport{}
	for _, formationID := range order {
		group := byFormation[formationID]
		if len(group) < 2 {
			continue
		}

		var pairs []dto.SpreadConflictPair
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.DateString() == b.DateString() && a.StartTime.String == b.StartTime.String {
					continue
				}
				pairs = append(pairs, dto.SpreadConflictPair{
					Planning1ID: a.ID,
					Planning2ID: b.ID,
					Date1:       a.DateString(),
					Time1:       a.StartTime.String,
					Date2:       b.DateString(),
					Time2:       b.StartTime.String,
				})
			}
		}

		if len(pairs) > 0 {
			report.Conflicts = append(report.Conflicts, dto.SpreadConflictGroup{
				Module:    group[0].FormationModule.String,
				Conflicts: pairs,
			})
		}
	}

	if len(report.Conflicts) == 0 {
		report.Message = msgNoSpreadConflicts
	}

	s.cache.Set(ctx, cacheKeySpread, report)
	return report, false, nil
}

// DetectTeacherDoubleBookings flags every teacher holding two invigilations
// at exactly the same date and start time. Equality is required on both
// fields: differing assignments are fine, coinciding ones are the clash.
func (s *ConflictService) DetectTeacherDoubleBookings(ctx context.Context) (*dto.TeacherBookingReport, bool, error) {
	var cached dto.TeacherBookingReport
	if s.cache.Get(ctx, cacheKeyTeacher, &cached) {
		return &cached, true, nil
	}

	rows, err := s.invigilations.ListDetails(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list invigilations for double-booking check: %w", err)
	}

	byTeacher := make(map[string][]models.InvigilationDetail)
	var order []string
	for _, row := range rows {
		if !row.HasSchedule() {
			s.logger.Debug("skipping invigilation with broken timeslot link",
				zap.String("invigilation_id", row.ID))
			continue
		}
		if _, seen := byTeacher[row.TeacherCode]; !seen {
			order = append(order, row.TeacherCode)
		}
		byTeacher[row.TeacherCode] = append(byTeacher[row.TeacherCode], row)
	}

	report := &dto.TeacherBookingReport{Conflicts: []dto.TeacherBookingGroup{}}
	for _, code := range order {
		group := byTeacher[code]
		if len(group) < 2 {
			continue
		}

		var conflicts []dto.BookingConflict
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.DateString() != b.DateString() || a.StartTime.String != b.StartTime.String {
					continue
				}
				conflicts = append(conflicts, dto.BookingConflict{
					Invigilation1ID: a.ID,
					Planning1ID:     a.PlanningID,
					Invigilation2ID: b.ID,
					Planning2ID:     b.PlanningID,
					Date:            a.DateString(),
					Time:            a.StartTime.String,
				})
			}
		}

		if len(conflicts) > 0 {
			report.Conflicts = append(report.Conflicts, dto.TeacherBookingGroup{
				TeacherCode: code,
				Conflicts:   conflicts,
			})
		}
	}

	if len(report.Conflicts) == 0 {
		report.Message = msgNoTeacherConflicts
	}

	s.cache.Set(ctx, cacheKeyTeacher, report)
	return report, false, nil
}

// DetectRoomDoubleBookings flags rooms hosting two distinct timeslots at
// the same date and start time.
func (s *ConflictService) DetectRoomDoubleBookings(ctx context.Context) (*dto.RoomBookingReport, bool, error) {
	var cached dto.RoomBookingReport
	if s.cache.Get(ctx, cacheKeyRoom, &cached) {
		return &cached, true, nil
	}

	rows, err := s.rooms.ListRoomSlots(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list room slots for double-booking check: %w", err)
	}

	byRoom := make(map[string][]models.RoomSlot)
	var order []string
	for _, row := range rows {
		if row.Room == "" {
			continue
		}
		if _, seen := byRoom[row.Room]; !seen {
			order = append(order, row.Room)
		}
		byRoom[row.Room] = append(byRoom[row.Room], row)
	}

	report := &dto.RoomBookingReport{Conflicts: []dto.RoomBookingGroup{}}
	for _, room := range order {
		group := byRoom[room]
		if len(group) < 2 {
			continue
		}

		var conflicts []dto.BookingConflict
		for i := 0; i < len(group); i++ {
			for j := i + 1; j < len(group); j++ {
				a, b := group[i], group[j]
				if a.TimeSlotID == b.TimeSlotID {
					continue
				}
				if a.DateString() != b.DateString() || a.StartTime != b.StartTime {
					continue
				}
				conflicts = append(conflicts, dto.BookingConflict{
					TimeSlot1ID: a.TimeSlotID,
					TimeSlot2ID: b.TimeSlotID,
					Date:        a.DateString(),
					Time:        a.StartTime,
				})
			}
		}

		if len(conflicts) > 0 {
			report.Conflicts = append(report.Conflicts, dto.RoomBookingGroup{
				Room:      room,
				Conflicts: conflicts,
			})
		}
	}

	if len(report.Conflicts) == 0 {
		report.Message = msgNoRoomConflicts
	}

	s.cache.Set(ctx, cacheKeyRoom, report)
	return report, false, nil
}

// DetectDuplicatePlannings reports groups of plannings sharing the same
// (formation, timeslot, section) triple.
func (s *ConflictService) DetectDuplicatePlannings(ctx context.Context) (*dto.DuplicateReport, bool, error) {
	var cached dto.DuplicateReport
	if s.cache.Get(ctx, cacheKeyDuplicates, &cached) {
		return &cached, true, nil
	}

	rows, err := s.plannings.ListDetails(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("list plannings for duplicate check: %w", err)
	}

	type dupKey struct {
		formationID string
		timeslotID  string
		section     string
	}
	byKey := make(map[dupKey][]string)
	var order []dupKey
	for _, row := range rows {
		if !row.FormationID.Valid || !row.TimeSlotID.Valid {
			continue
		}
		key := dupKey{row.FormationID.String, row.TimeSlotID.String, row.Section}
		if _, seen := byKey[key]; !seen {
			order = append(order, key)
		}
		byKey[key] = append(byKey[key], row.ID)
	}

	report := &dto.DuplicateReport{Duplicates: []dto.DuplicateGroup{}}
	for _, key := range order {
		ids := byKey[key]
		if len(ids) < 2 {
			continue
		}
		sort.Strings(ids)
		report.Duplicates = append(report.Duplicates, dto.DuplicateGroup{
			FormationID: key.formationID,
			TimeSlotID:  key.timeslotID,
			Section:     key.section,
			PlanningIDs: ids,
			Count:       len(ids),
		})
	}

	if len(report.Duplicates) == 0 {
		report.Message = msgNoDuplicatePlannings
	}

	s.cache.Set(ctx, cacheKeyDuplicates, report)
	return report, false, nil
}
