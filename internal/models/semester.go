package models

import (
	"regexp"
	"strconv"
)

// SemesterParity buckets a semester label into the odd (S1/S3/S5...) or
// even (S2/S4/S6...) exam-session family.
type SemesterParity int

const (
	SemesterUnmatched SemesterParity = iota
	SemesterOdd
	SemesterEven
)

// String renders the parity bucket name.
func (p SemesterParity) String() string {
	switch p {
	case SemesterOdd:
		return "odd"
	case SemesterEven:
		return "even"
	default:
		return "unmatched"
	}
}

var semesterLabelRe = regexp.MustCompile(`(?i)^\s*S(\d+)`)

// ClassifySemesterParity parses a leading S<number> out of a free-text
// semester label. Labels that do not match fall into SemesterUnmatched and
// are excluded from the per-semester workload ratios; this mirrors how the
// existing spreadsheets encode semesters and is deliberately permissive.
func ClassifySemesterParity(label string) SemesterParity {
	m := semesterLabelRe.FindStringSubmatch(label)
	if m == nil {
		return SemesterUnmatched
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return SemesterUnmatched
	}
	if n%2 == 1 {
		return SemesterOdd
	}
	return SemesterEven
}
