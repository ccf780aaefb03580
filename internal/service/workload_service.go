package service

import (
	"context"
	"fmt"
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/univ-fsi/surveillance-api/internal/dto"
	"github.com/univ-fsi/surveillance-api/internal/models"
	"github.com/univ-fsi/surveillance-api/pkg/config"
)

const cacheKeyWorkloadRatio = "workload:balance:ratio"

// workloadTeacherRepository lists the full teacher roster.
type workloadTeacherRepository interface {
	ListAll(ctx context.Context) ([]models.Teacher, error)
}

// workloadCourseLoadRepository lists course loads, optionally restricted to
// a teacher-code set.
type workloadCourseLoadRepository interface {
	List(ctx context.Context, filter models.CourseLoadFilter) ([]models.CourseLoad, error)
}

// workloadFormationRepository lists formations for the semester partition.
type workloadFormationRepository interface {
	ListAll(ctx context.Context) ([]models.Formation, error)
}

// WorkloadService computes the surveillance workload balance report: the
// NbrSS ratio (required invigilation slots over eligible teaching load),
// a per-teacher classification against either a fixed target or the
// load-derived expectation, and a ranked listing by deviation severity.
type WorkloadService struct {
	plannings     conflictPlanningRepository
	invigilations conflictInvigilationRepository
	teachers      workloadTeacherRepository
	courseLoads   workloadCourseLoadRepository
	formations    workloadFormationRepository
	cache         *CacheService
	cfg           config.WorkloadConfig
	logger        *zap.Logger
}

// NewWorkloadService constructs the workload balance analyzer.
func NewWorkloadService(
	plannings conflictPlanningRepository,
	invigilations conflictInvigilationRepository,
	teachers workloadTeacherRepository,
	courseLoads workloadCourseLoadRepository,
	formations workloadFormationRepository,
	cache *CacheService,
	cfg config.WorkloadConfig,
	logger *zap.Logger,
) *WorkloadService {
	return &WorkloadService{
		plannings:     plannings,
		invigilations: invigilations,
		teachers:      teachers,
		courseLoads:   courseLoads,
		formations:    formations,
		cache:         cache,
		cfg:           cfg,
		logger:        logger,
	}
}

// workloadSnapshot bundles the reads behind one balance computation.
type workloadSnapshot struct {
	plannings     []models.PlanningDetail
	invigilations []models.InvigilationDetail
	teachers      []models.Teacher
	courseLoads   []models.CourseLoad
	parity        map[string]models.SemesterParity
	unmatched     int
}

// ComputeBalance runs the full analysis. A nil target selects the
// load-derived (ratio) classification mode; target validation happens at
// the handler boundary, before any fetch. Only the ratio-mode report is
// cached: target-mode results depend on caller input.
func (s *WorkloadService) ComputeBalance(ctx context.Context, target *int) (*dto.WorkloadReport, bool, error) {
	if target == nil {
		var cached dto.WorkloadReport
		if s.cache.Get(ctx, cacheKeyWorkloadRatio, &cached) {
			return &cached, true, nil
		}
	}

	snap, err := s.fetchSnapshot(ctx)
	if err != nil {
		return nil, false, err
	}

	report := s.analyze(snap, target)

	if target == nil {
		s.cache.Set(ctx, cacheKeyWorkloadRatio, report)
	}
	return report, false, nil
}

func (s *WorkloadService) fetchSnapshot(ctx context.Context) (*workloadSnapshot, error) {
	plannings, err := s.plannings.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list plannings for workload balance: %w", err)
	}

	invigilations, err := s.invigilations.ListDetails(ctx)
	if err != nil {
		return nil, fmt.Errorf("list invigilations for workload balance: %w", err)
	}

	teachers, err := s.teachers.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teachers for workload balance: %w", err)
	}

	courseLoads, err := s.courseLoads.List(ctx, models.CourseLoadFilter{})
	if err != nil {
		return nil, fmt.Errorf("list course loads for workload balance: %w", err)
	}

	formations, err := s.formations.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list formations for workload balance: %w", err)
	}

	snap := &workloadSnapshot{
		plannings:     plannings,
		invigilations: invigilations,
		teachers:      teachers,
		courseLoads:   courseLoads,
		parity:        make(map[string]models.SemesterParity, len(formations)),
	}
	for _, f := range formations {
		parity := models.ClassifySemesterParity(f.SemesterLabel())
		snap.parity[f.ID] = parity
		if parity == models.SemesterUnmatched {
			snap.unmatched++
		}
	}
	return snap, nil
}

// loadParity resolves a course load's semester family, preferring the
// formation partition and falling back to the load's own label.
func (snap *workloadSnapshot) loadParity(load models.CourseLoad) models.SemesterParity {
	if load.FormationID != nil {
		if parity, ok := snap.parity[*load.FormationID]; ok {
			return parity
		}
	}
	return models.ClassifySemesterParity(load.SemesterLabel())
}

func (s *WorkloadService) analyze(snap *workloadSnapshot, target *int) *dto.WorkloadReport {
	// Demand: required invigilator slots, split by semester family.
	var totalNeeded, oddNeeded, evenNeeded int
	for _, p := range snap.plannings {
		totalNeeded += p.RequiredInvigilators
		if !p.FormationID.Valid {
			continue
		}
		switch snap.parity[p.FormationID.String] {
		case models.SemesterOdd:
			oddNeeded += p.RequiredInvigilators
		case models.SemesterEven:
			evenNeeded += p.RequiredInvigilators
		}
	}

	// Actual assignments per teacher.
	totalAssigned := len(snap.invigilations)
	countsByTeacher := make(map[string]int)
	for _, inv := range snap.invigilations {
		countsByTeacher[inv.TeacherCode]++
	}

	// Eligible load: course loads of teachers holding at least one
	// invigilation, split by semester family.
	var eligibleLoads, oddLoads, evenLoads int
	loadsByTeacher := make(map[string][]models.CourseLoad)
	for _, load := range snap.courseLoads {
		loadsByTeacher[load.TeacherCode] = append(loadsByTeacher[load.TeacherCode], load)
		if countsByTeacher[load.TeacherCode] == 0 {
			continue
		}
		eligibleLoads++
		switch snap.loadParity(load) {
		case models.SemesterOdd:
			oddLoads++
		case models.SemesterEven:
			evenLoads++
		}
	}

	globalRatio := safeRatio(totalNeeded, eligibleLoads)
	oddRatio := safeRatio(oddNeeded, oddLoads)
	evenRatio := safeRatio(evenNeeded, evenLoads)

	teacherCount := len(snap.teachers)
	var average float64
	if teacherCount > 0 {
		average = float64(totalAssigned) / float64(teacherCount)
	}

	analysis := make([]dto.WorkloadTeacherAnalysis, 0, teacherCount)
	distribution := dto.WorkloadDistribution{
		TotalTeachers:      teacherCount,
		TotalSurveillances: totalAssigned,
		AveragePerTeacher:  round2(average),
	}
	buckets := make(map[string]int)

	for _, teacher := range snap.teachers {
		actual := countsByTeacher[teacher.Code]
		loads := loadsByTeacher[teacher.Code]
		var oddCourses, evenCourses int
		for _, load := range loads {
			switch snap.loadParity(load) {
			case models.SemesterOdd:
				oddCourses++
			case models.SemesterEven:
				evenCourses++
			}
		}

		expected := float64(oddCourses)*oddRatio + float64(evenCourses)*evenRatio

		stats := dto.WorkloadStatistics{
			SurveillanceCount:    actual,
			CoursesCount:         len(loads),
			OddSemesterCourses:   oddCourses,
			EvenSemesterCourses:  evenCourses,
			ExpectedSurveillance: round2(expected),
			AverageSurveillances: round2(average),
		}

		var recommendation string
		if target != nil {
			stats.TargetSurveillances = target
			stats.Deviation = float64(actual - *target)
			if *target > 0 {
				stats.DeviationPercentage = round2(stats.Deviation / float64(*target) * 100)
			}
			stats.Status, stats.Severity = classifyAgainstTarget(actual, *target, s.cfg)
			recommendation = targetRecommendation(actual, *target)
		} else {
			stats.Deviation = round2(float64(actual) - expected)
			if expected > 0 {
				stats.DeviationPercentage = round2(stats.Deviation / expected * 100)
			}
			stats.Status, stats.Severity = classifyAgainstRatio(actual, len(loads), stats.Deviation, s.cfg)
			recommendation = ratioRecommendation(stats.Status, actual, expected)
		}
		buckets[stats.Status]++

		analysis = append(analysis, dto.WorkloadTeacherAnalysis{
			TeacherInfo: dto.WorkloadTeacherInfo{
				Code:       teacher.Code,
				Name:       teacher.FullName(),
				Email:      teacher.PrimaryEmail(),
				Department: derefOrEmpty(teacher.Department),
			},
			Statistics:     stats,
			Recommendation: recommendation,
		})
	}

	// Most urgent imbalances first; ties keep roster order.
	sort.SliceStable(analysis, func(i, j int) bool {
		ri := severityRank(analysis[i].Statistics.Severity)
		rj := severityRank(analysis[j].Statistics.Severity)
		if ri != rj {
			return ri < rj
		}
		return math.Abs(analysis[i].Statistics.Deviation) > math.Abs(analysis[j].Statistics.Deviation)
	})

	if target != nil {
		distribution.BelowTarget = intPtr(buckets[dto.StatusBelowTarget])
		distribution.OnTarget = intPtr(buckets[dto.StatusOnTarget])
		distribution.AboveTarget = intPtr(buckets[dto.StatusAboveTarget])
	} else {
		distribution.NoSurveillance = intPtr(buckets[dto.StatusNoSurveillance])
		distribution.Overloaded = intPtr(buckets[dto.StatusOverloaded])
		distribution.Underutilized = intPtr(buckets[dto.StatusUnderutilized])
		distribution.Normal = intPtr(buckets[dto.StatusNormal])
	}

	global := dto.WorkloadGlobalMetrics{
		TotalCourseLoads:        len(snap.courseLoads),
		TotalPlannings:          len(snap.plannings),
		TotalSurveillancesNeed:  totalNeeded,
		TotalSurveillances:      totalAssigned,
		GlobalRatio:             round2(globalRatio),
		OddSemesterRatio:        round2(oddRatio),
		EvenSemesterRatio:       round2(evenRatio),
		UnmatchedSemesterLabels: snap.unmatched,
	}
	if unfilled := totalNeeded - totalAssigned; unfilled > 0 {
		global.UnfilledSurveillances = unfilled
	}

	if target != nil {
		global.TargetSurveillances = target
		desired := *target * teacherCount
		gap := desired - totalAssigned
		global.SurveillanceGap = intPtr(gap)
		switch {
		case gap > 0:
			global.Status = dto.StatusNeedMore
			global.Recommendation = fmt.Sprintf("Il manque %d surveillances pour atteindre l'objectif de %d par enseignant", gap, *target)
		case gap < 0:
			global.Status = dto.StatusTooMany
			global.Recommendation = fmt.Sprintf("%d surveillances au-delà de l'objectif de %d par enseignant", -gap, *target)
		default:
			global.Status = dto.StatusPerfectlyBalanced
			global.Recommendation = "La charge de surveillance correspond exactement à l'objectif"
		}
	} else {
		switch {
		case (oddLoads > 0 && oddRatio < s.cfg.RatioLowBand) || (evenLoads > 0 && evenRatio < s.cfg.RatioLowBand):
			global.Status = dto.StatusNeedMore
			global.Recommendation = "Le ratio NbrSS est faible: davantage de surveillances sont nécessaires par rapport à la charge d'enseignement"
		case oddRatio > s.cfg.RatioHighBand || evenRatio > s.cfg.RatioHighBand:
			global.Status = dto.StatusTooMany
			global.Recommendation = "Le ratio NbrSS est élevé: la demande de surveillance dépasse la charge d'enseignement éligible"
		default:
			global.Status = dto.StatusBalanced
			global.Recommendation = "La charge de surveillance est équilibrée par rapport à la charge d'enseignement"
		}
	}

	return &dto.WorkloadReport{
		GlobalMetrics:       global,
		TeacherDistribution: distribution,
		TeacherAnalysis:     analysis,
		Message:             fmt.Sprintf("Analyse de %d enseignants, %d surveillances affectées sur %d requises", teacherCount, totalAssigned, totalNeeded),
	}
}

// classifyAgainstTarget buckets a teacher relative to a fixed target.
func classifyAgainstTarget(actual, target int, cfg config.WorkloadConfig) (status, severity string) {
	gap := actual - target
	switch {
	case gap < 0:
		status = dto.StatusBelowTarget
	case gap > 0:
		status = dto.StatusAboveTarget
	default:
		return dto.StatusOnTarget, dto.SeverityNone
	}
	if abs(gap) >= cfg.TargetHighGap {
		return status, dto.SeverityHigh
	}
	return status, dto.SeverityMedium
}

// classifyAgainstRatio buckets a teacher relative to the load-derived
// expectation.
func classifyAgainstRatio(actual, courses int, deviation float64, cfg config.WorkloadConfig) (status, severity string) {
	switch {
	case actual == 0 && courses > 0:
		return dto.StatusNoSurveillance, dto.SeverityHigh
	case deviation > cfg.DeviationTolerance:
		if deviation >= cfg.HighDeviation {
			return dto.StatusOverloaded, dto.SeverityHigh
		}
		return dto.StatusOverloaded, dto.SeverityMedium
	case deviation < -cfg.DeviationTolerance:
		if deviation <= -cfg.HighDeviation {
			return dto.StatusUnderutilized, dto.SeverityHigh
		}
		return dto.StatusUnderutilized, dto.SeverityMedium
	default:
		return dto.StatusNormal, dto.SeverityNone
	}
}

func targetRecommendation(actual, target int) string {
	switch {
	case actual < target:
		return fmt.Sprintf("Doit effectuer %d surveillance(s) supplémentaire(s) pour atteindre l'objectif de %d", target-actual, target)
	case actual > target:
		return fmt.Sprintf("Dépasse l'objectif de %d surveillance(s); envisager une redistribution", actual-target)
	default:
		return "Charge conforme à l'objectif"
	}
}

func ratioRecommendation(status string, actual int, expected float64) string {
	switch status {
	case dto.StatusNoSurveillance:
		return fmt.Sprintf("Aucune surveillance affectée alors que la charge d'enseignement en prévoit environ %.1f", expected)
	case dto.StatusOverloaded:
		return fmt.Sprintf("Surchargé: %d surveillances pour environ %.1f attendues; envisager une redistribution", actual, expected)
	case dto.StatusUnderutilized:
		return fmt.Sprintf("Sous-utilisé: %d surveillances pour environ %.1f attendues", actual, expected)
	default:
		return "Charge de surveillance conforme à la charge d'enseignement"
	}
}

// safeRatio divides needed by loads, defining division by zero as 0.
func safeRatio(needed, loads int) float64 {
	if loads == 0 {
		return 0
	}
	return float64(needed) / float64(loads)
}

func severityRank(severity string) int {
	switch severity {
	case dto.SeverityHigh:
		return 0
	case dto.SeverityMedium:
		return 1
	case dto.SeverityLow:
		return 2
	default:
		return 3
	}
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func intPtr(v int) *int { return &v }

func derefOrEmpty(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
