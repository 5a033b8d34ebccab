package handler

import (
	"net/http"

	"github.com/frida212/code-analyzer/internal/api/response"
	"github.com/frida212/code-analyzer/internal/catalog"
)

// Agents handles GET /api/agents with the simulated agent roster.
func Agents() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		response.JSON(w, catalog.Agents())
	}
}
