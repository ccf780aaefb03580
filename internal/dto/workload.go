package dto

// Teacher workload classification statuses.
const (
	StatusNoSurveillance = "NO_SURVEILLANCE"
	StatusOverloaded     = "OVERLOADED"
	StatusUnderutilized  = "UNDERUTILIZED"
	StatusNormal         = "NORMAL"
	StatusBelowTarget    = "BELOW_TARGET"
	StatusAboveTarget    = "ABOVE_TARGET"
	StatusOnTarget       = "ON_TARGET"
)

// Global balance statuses.
const (
	StatusNeedMore          = "NEED_MORE_SURVEILLANCES"
	StatusTooMany           = "TOO_MANY_SURVEILLANCES"
	StatusBalanced          = "BALANCED"
	StatusPerfectlyBalanced = "PERFECTLY_BALANCED"
)

// Severity levels ordering the ranked teacher analysis.
const (
	SeverityHigh   = "high"
	SeverityMedium = "medium"
	SeverityLow    = "low"
	SeverityNone   = "none"
)

// WorkloadRequest is the balance check payload. A nil target selects the
// load-derived (ratio) classification mode.
type WorkloadRequest struct {
	TargetSurveillances *int `json:"target_surveillances,omitempty"`
}

// WorkloadTeacherInfo identifies one analyzed teacher.
type WorkloadTeacherInfo struct {
	Code       string `json:"code"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
}

// WorkloadStatistics carries the per-teacher numbers behind a classification.
type WorkloadStatistics struct {
	SurveillanceCount    int     `json:"surveillance_count"`
	CoursesCount         int     `json:"courses_count"`
	OddSemesterCourses   int     `json:"odd_semester_courses"`
	EvenSemesterCourses  int     `json:"even_semester_courses"`
	ExpectedSurveillance float64 `json:"expected_surveillances"`
	AverageSurveillances float64 `json:"average_surveillances"`
	TargetSurveillances  *int    `json:"target_surveillances,omitempty"`
	Deviation            float64 `json:"deviation"`
	DeviationPercentage  float64 `json:"deviation_percentage"`
	Status               string  `json:"status"`
	Severity             string  `json:"severity"`
}

// WorkloadTeacherAnalysis is one ranked entry of the balance report.
type WorkloadTeacherAnalysis struct {
	TeacherInfo    WorkloadTeacherInfo `json:"teacher_info"`
	Statistics     WorkloadStatistics  `json:"statistics"`
	Recommendation string              `json:"recommendation"`
}

// WorkloadGlobalMetrics aggregates the system-wide balance numbers.
type WorkloadGlobalMetrics struct {
	TotalCourseLoads        int     `json:"total_course_loads"`
	TotalPlannings          int     `json:"total_plannings"`
	TotalSurveillancesNeed  int     `json:"total_surveillances_needed"`
	TotalSurveillances      int     `json:"total_surveillances"`
	GlobalRatio             float64 `json:"global_nbrss"`
	OddSemesterRatio        float64 `json:"odd_semester_nbrss"`
	EvenSemesterRatio       float64 `json:"even_semester_nbrss"`
	Status                  string  `json:"status"`
	Recommendation          string  `json:"recommendation"`
	TargetSurveillances     *int    `json:"target_surveillances,omitempty"`
	SurveillanceGap         *int    `json:"surveillance_gap,omitempty"`
	UnfilledSurveillances   int     `json:"unfilled_surveillances"`
	UnmatchedSemesterLabels int     `json:"unmatched_semester_labels"`
}

// WorkloadDistribution counts teachers per classification bucket. Only the
// buckets of the active mode are populated.
type WorkloadDistribution struct {
	TotalTeachers      int     `json:"total_teachers"`
	TotalSurveillances int     `json:"total_surveillances"`
	AveragePerTeacher  float64 `json:"average_per_teacher"`
	BelowTarget        *int    `json:"below_target,omitempty"`
	OnTarget           *int    `json:"on_target,omitempty"`
	AboveTarget        *int    `json:"above_target,omitempty"`
	NoSurveillance     *int    `json:"no_surveillance,omitempty"`
	Overloaded         *int    `json:"overloaded,omitempty"`
	Underutilized      *int    `json:"underutilized,omitempty"`
	Normal             *int    `json:"normal,omitempty"`
}

// WorkloadReport is the full balance check response.
type WorkloadReport struct {
	GlobalMetrics       WorkloadGlobalMetrics     `json:"global_metrics"`
	TeacherDistribution WorkloadDistribution      `json:"teacher_distribution"`
	TeacherAnalysis     []WorkloadTeacherAnalysis `json:"teacher_analysis"`
	Message             string                    `json:"message"`
}
