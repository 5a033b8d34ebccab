package openaicompat

import (
	"fmt"

	"github.com/frida212/code-analyzer/pkg/models"
)

const systemPrompt = `You are a code analysis engine. Respond with a single valid JSON object and nothing else.`

// analysisPrompt asks for the wire payload shape every backend produces.
func analysisPrompt(req models.AnalysisRequest) string {
	return fmt.Sprintf(`Analyze the repository at %q (commit %s) for %s issues.
Return your findings as a valid JSON object with this structure:

{
  "repository_analysis": {
    "overall_score": <number 0-100>,
    "total_files": <number>,
    "risk_level": "<low|medium|high|critical>",
    "deployment_ready": <boolean>
  },
  "issues": [
    {
      "type": "<security|quality|performance>",
      "severity": "<critical|high|medium|low>",
      "file": "<file_path>",
      "line": <line_number>,
      "message": "<description>",
      "rule": "<rule_id>",
      "suggestion": "<fix_suggestion>",
      "confidence": <0.0-1.0>
    }
  ],
  "recommendations": ["<recommendation>"],
  "summary": "<overall_analysis_summary>"
}

Focus on security vulnerabilities, code quality, and performance bottlenecks.`,
		req.RepoPath, req.CommitHash, req.AnalysisType)
}
