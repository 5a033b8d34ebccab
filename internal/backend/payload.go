package backend

import "github.com/frida212/code-analyzer/pkg/models"

// Payload is the JSON analysis document every real backend is expected to
// produce: the cloud function returns it under "analysis", the Vertex bridge
// prints it to stdout, and the OpenAI-compatible endpoint emits it as the
// completion body.
type Payload struct {
	Repository      models.RepositoryAnalysis `json:"repository_analysis"`
	Issues          []models.Issue            `json:"issues"`
	Recommendations []string                  `json:"recommendations"`
	Summary         string                    `json:"summary"`
	Model           string                    `json:"model"`
	Confidence      float64                   `json:"confidence"`
}

// RawResult converts the wire payload into the orchestrator's raw result,
// stamping the given origin on issues that did not declare one.
func (p Payload) RawResult(origin string) models.RawResult {
	issues := make([]models.Issue, len(p.Issues))
	copy(issues, p.Issues)
	for i := range issues {
		if issues[i].Origin == "" {
			issues[i].Origin = origin
		}
	}
	return models.RawResult{
		Repository:      p.Repository,
		Issues:          issues,
		Recommendations: p.Recommendations,
		Summary:         p.Summary,
		Model:           p.Model,
		Confidence:      p.Confidence,
		AIPowered:       true,
	}
}
