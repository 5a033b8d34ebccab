package models

import "sort"

// Issue categories.
const (
	CategorySecurity    = "security"
	CategoryQuality     = "quality"
	CategoryPerformance = "performance"
)

// Issue severities, totally ordered from most to least urgent.
const (
	SeverityCritical = "critical"
	SeverityHigh     = "high"
	SeverityMedium   = "medium"
	SeverityLow      = "low"
)

// Issue origins, describing which kind of detector reported the finding.
const (
	OriginStatic        = "static"
	OriginAI            = "ai"
	OriginCloudFunction = "cloud_function"
)

// Issue is a single analysis finding.
type Issue struct {
	Category            string  `json:"type"`
	Severity            string  `json:"severity"`
	File                string  `json:"file"`
	Line                int     `json:"line"`
	Message             string  `json:"message"`
	Rule                string  `json:"rule"`
	Suggestion          string  `json:"suggestion"`
	Confidence          float64 `json:"confidence,omitempty"`
	RemediationPriority int     `json:"remediation_priority,omitempty"`
	Origin              string  `json:"origin,omitempty"`
}

var severityRank = map[string]int{
	SeverityCritical: 0,
	SeverityHigh:     1,
	SeverityMedium:   2,
	SeverityLow:      3,
}

// SeverityRank returns the sort rank of a severity (critical first).
// Unknown severities sort last.
func SeverityRank(severity string) int {
	if r, ok := severityRank[severity]; ok {
		return r
	}
	return len(severityRank)
}

// ValidSeverity reports whether s is a recognized severity.
func ValidSeverity(s string) bool {
	_, ok := severityRank[s]
	return ok
}

// ValidCategory reports whether c is a recognized issue category.
func ValidCategory(c string) bool {
	switch c {
	case CategorySecurity, CategoryQuality, CategoryPerformance:
		return true
	}
	return false
}

// SortByPriority orders issues by ascending remediation priority,
// ties broken by descending confidence. Issues without a priority
// (zero value) sort after prioritized ones. Stable.
func SortByPriority(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		pi, pj := issues[i].RemediationPriority, issues[j].RemediationPriority
		if pi == 0 {
			pi = int(^uint(0) >> 1)
		}
		if pj == 0 {
			pj = int(^uint(0) >> 1)
		}
		if pi != pj {
			return pi < pj
		}
		return issues[i].Confidence > issues[j].Confidence
	})
}

// SortBySeverity orders issues by severity (critical first),
// ties broken by descending confidence. Stable.
func SortBySeverity(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		ri, rj := SeverityRank(issues[i].Severity), SeverityRank(issues[j].Severity)
		if ri != rj {
			return ri < rj
		}
		return issues[i].Confidence > issues[j].Confidence
	})
}
