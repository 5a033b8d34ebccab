package models

import "time"

// ProviderStatus reports availability of each analysis backend.
// Recomputed on demand, never cached durably.
type ProviderStatus struct {
	CloudFunctionAvailable bool      `json:"cloud_function_available"`
	VertexAIAvailable      bool      `json:"vertex_ai_available"`
	OpenAICompatAvailable  bool      `json:"openai_compat_available"`
	LastChecked            time.Time `json:"last_checked"`
}

// AgentStatus describes one simulated dashboard agent.
type AgentStatus struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Role        string `json:"role"`
	Status      string `json:"status"`
	LastMessage string `json:"last_message"`
}
