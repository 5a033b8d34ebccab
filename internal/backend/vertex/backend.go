// Package vertex implements the local analysis backend: it shells out to the
// Python bridge that owns the Vertex AI SDK calls, and manages the Vertex
// endpoint lifecycle.
package vertex

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync/atomic"

	"github.com/frida212/code-analyzer/internal/backend"
	"github.com/frida212/code-analyzer/internal/config"
	"github.com/frida212/code-analyzer/pkg/models"
)

const defaultModel = "code-bison@001"

// Backend invokes the Vertex bridge as a subprocess. The bridge prints a
// single JSON analysis document to stdout and exits 0 on success; any
// non-zero exit or unparseable stdout is a failure, regardless of partial
// output already collected.
type Backend struct {
	cfg config.VertexConfig

	// endpointID is the most recently created or configured endpoint.
	// Advisory metadata only: readers may observe a stale value, which is
	// acceptable, so it is kept lock-free.
	endpointID atomic.Value // string
}

// New creates a vertex backend from config. A pre-configured endpoint ID
// (VERTEX_ENDPOINT_ID) marks the service initialized at startup.
func New(cfg config.VertexConfig) *Backend {
	b := &Backend{cfg: cfg}
	b.endpointID.Store(cfg.EndpointID)
	return b
}

func (b *Backend) Name() string { return "vertex-ai" }

// EndpointID returns the last known endpoint ID, or "" when none exists.
func (b *Backend) EndpointID() string {
	id, _ := b.endpointID.Load().(string)
	return id
}

// Initialized reports whether the bridge is deployed and an endpoint exists.
func (b *Backend) Initialized() bool {
	return b.cfg.Script != "" && b.EndpointID() != ""
}

// Available is an initialization check; it never spawns a process.
func (b *Backend) Available(_ context.Context) bool { return b.Initialized() }

func (b *Backend) Analyze(ctx context.Context, req models.AnalysisRequest) (models.RawResult, error) {
	if !b.Initialized() {
		return models.RawResult{}, backend.ErrBackendUnavailable
	}

	args := []string{
		b.cfg.Script, "analyze",
		"--repo", req.RepoPath,
		"--commit", req.CommitHash,
		"--mode", req.AnalysisType,
		"--project", b.cfg.ProjectID,
		"--region", b.cfg.Region,
		"--endpoint", b.EndpointID(),
	}

	stdout, err := b.runBridge(ctx, args)
	if err != nil {
		return models.RawResult{}, err
	}

	var p backend.Payload
	if err := json.Unmarshal(stdout, &p); err != nil {
		return models.RawResult{}, fmt.Errorf("%w: %v", backend.ErrMalformedOutput, err)
	}

	raw := p.RawResult(models.OriginAI)
	if raw.Model == "" {
		raw.Model = defaultModel
	}
	return raw, nil
}

// CreateEndpoint asks the bridge to create a new Vertex AI endpoint and
// remembers its ID for status reporting.
func (b *Backend) CreateEndpoint(ctx context.Context) (string, error) {
	if b.cfg.Script == "" {
		return "", backend.ErrBackendUnavailable
	}

	args := []string{
		b.cfg.Script, "create-endpoint",
		"--project", b.cfg.ProjectID,
		"--region", b.cfg.Region,
	}

	stdout, err := b.runBridge(ctx, args)
	if err != nil {
		return "", err
	}

	var resp struct {
		EndpointID string `json:"endpoint_id"`
	}
	if err := json.Unmarshal(stdout, &resp); err != nil {
		return "", fmt.Errorf("%w: %v", backend.ErrMalformedOutput, err)
	}
	if resp.EndpointID == "" {
		return "", fmt.Errorf("%w: bridge returned no endpoint_id", backend.ErrMalformedOutput)
	}

	b.endpointID.Store(resp.EndpointID)
	return resp.EndpointID, nil
}

// runBridge executes the bridge and returns its complete stdout.
func (b *Backend) runBridge(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, b.cfg.Bin, args...)

	cmd.Env = os.Environ()
	if b.cfg.CredentialsPath != "" {
		cmd.Env = append(cmd.Env, "GOOGLE_APPLICATION_CREDENTIALS="+b.cfg.CredentialsPath)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil, fmt.Errorf("%w: bridge exited %d: %s",
				backend.ErrBackendFailed, exitErr.ExitCode(), firstLine(stderr.String()))
		}
		return nil, fmt.Errorf("%w: %v", backend.ErrBackendFailed, err)
	}

	return stdout.Bytes(), nil
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

// Compile-time check that Backend implements models.Backend.
var _ models.Backend = (*Backend)(nil)
