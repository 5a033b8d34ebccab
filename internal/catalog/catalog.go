// Package catalog holds the fixed demo dataset served by the dashboard:
// a canned issue set and a simulated agent roster. The deterministic
// fallback backend draws from the same set so that repeated requests
// return identical issue categories and ordering.
package catalog

import (
	"github.com/frida212/code-analyzer/pkg/models"
)

// fixedIssues is the canned finding set, covering every category and
// severity the dashboard renders. Remediation priorities are unique so the
// /api/issues sort order is total.
var fixedIssues = []models.Issue{
	{
		Category:            models.CategorySecurity,
		Severity:            models.SeverityCritical,
		File:                "auth/login.py",
		Line:                42,
		Message:             "Potential SQL injection vulnerability",
		Rule:                "AI-SEC-001",
		Suggestion:          "Use parameterized queries to prevent SQL injection",
		Confidence:          0.92,
		RemediationPriority: 1,
		Origin:              models.OriginAI,
	},
	{
		Category:            models.CategorySecurity,
		Severity:            models.SeverityHigh,
		File:                "api/server.js",
		Line:                118,
		Message:             "Hardcoded credential detected in source",
		Rule:                "SEC-002",
		Suggestion:          "Move secrets to environment variables or a secret manager",
		Confidence:          0.88,
		RemediationPriority: 2,
		Origin:              models.OriginStatic,
	},
	{
		Category:            models.CategorySecurity,
		Severity:            models.SeverityHigh,
		File:                "web/render.js",
		Line:                77,
		Message:             "Unescaped user input rendered into the DOM (XSS)",
		Rule:                "CF-SEC-003",
		Suggestion:          "Escape or sanitize user-controlled values before rendering",
		Confidence:          0.84,
		RemediationPriority: 3,
		Origin:              models.OriginCloudFunction,
	},
	{
		Category:            models.CategoryQuality,
		Severity:            models.SeverityMedium,
		File:                "core/processor.py",
		Line:                128,
		Message:             "Function complexity is high",
		Rule:                "AI-QUAL-002",
		Suggestion:          "Consider breaking this function into smaller parts",
		Confidence:          0.87,
		RemediationPriority: 4,
		Origin:              models.OriginAI,
	},
	{
		Category:            models.CategoryPerformance,
		Severity:            models.SeverityMedium,
		File:                "core/loader.go",
		Line:                203,
		Message:             "Repository scan re-reads unchanged files on every request",
		Rule:                "PERF-001",
		Suggestion:          "Cache file contents keyed by commit hash",
		Confidence:          0.79,
		RemediationPriority: 5,
		Origin:              models.OriginStatic,
	},
	{
		Category:            models.CategoryQuality,
		Severity:            models.SeverityLow,
		File:                "utils/format.js",
		Line:                12,
		Message:             "Missing documentation for exported helper",
		Rule:                "QUAL-004",
		Suggestion:          "Add a doc comment describing parameters and return value",
		Confidence:          0.65,
		RemediationPriority: 6,
		Origin:              models.OriginStatic,
	},
}

// recommendations accompanies the canned issue set.
var recommendations = []string{
	"Implement comprehensive input validation across all endpoints",
	"Add unit tests for critical business logic functions",
	"Consider implementing caching for frequently accessed data",
	"Update dependencies to latest secure versions",
}

// agents is the simulated multi-agent roster shown on the dashboard.
var agents = []models.AgentStatus{
	{ID: "security-agent", Name: "Security Agent", Role: "Vulnerability scanning", Status: "active", LastMessage: "Completed scan: 3 security findings"},
	{ID: "quality-agent", Name: "Quality Agent", Role: "Code quality review", Status: "active", LastMessage: "Flagged 2 high-complexity functions"},
	{ID: "performance-agent", Name: "Performance Agent", Role: "Bottleneck detection", Status: "idle", LastMessage: "No regressions detected in last run"},
	{ID: "doc-agent", Name: "Doc Agent", Role: "Documentation updates", Status: "active", LastMessage: "Generated documentation for 6 issues"},
}

// Filter narrows the issue query for /api/issues.
type Filter struct {
	Category          string
	Severity          string
	AIOnly            bool
	CloudFunctionOnly bool
}

// Issues returns a copy of the canned issues matching the filter, ordered by
// ascending remediation priority with ties broken by descending confidence.
func Issues(f Filter) []models.Issue {
	out := make([]models.Issue, 0, len(fixedIssues))
	for _, is := range fixedIssues {
		if f.Category != "" && is.Category != f.Category {
			continue
		}
		if f.Severity != "" && is.Severity != f.Severity {
			continue
		}
		if f.AIOnly && is.Origin != models.OriginAI {
			continue
		}
		if f.CloudFunctionOnly && is.Origin != models.OriginCloudFunction {
			continue
		}
		out = append(out, is)
	}
	models.SortByPriority(out)
	return out
}

// AllIssues returns a copy of the full canned issue set in priority order.
func AllIssues() []models.Issue {
	return Issues(Filter{})
}

// Recommendations returns the canned recommendation list.
func Recommendations() []string {
	out := make([]string, len(recommendations))
	copy(out, recommendations)
	return out
}

// Agents returns the simulated agent roster.
func Agents() []models.AgentStatus {
	out := make([]models.AgentStatus, len(agents))
	copy(out, agents)
	return out
}

// CountBySeverity returns how many canned issues carry the given severity.
func CountBySeverity(severity string) int {
	n := 0
	for _, is := range fixedIssues {
		if is.Severity == severity {
			n++
		}
	}
	return n
}

// CountByCategory returns how many canned issues carry the given category.
func CountByCategory(category string) int {
	n := 0
	for _, is := range fixedIssues {
		if is.Category == category {
			n++
		}
	}
	return n
}
