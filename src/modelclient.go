package src

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path"
	"strings"

	agent "github.com/Protocol-Lattice/go-agent"
	"github.com/Protocol-Lattice/go-agent/src/models"
	utcp "github.com/universal-tool-calling-protocol/go-utcp"
)

// FragmentStream delivers model output as ordered fragments. Next returns
// io.EOF when the stream is exhausted. Fragment boundaries are arbitrary:
// a stream that yields everything in one fragment is legal.
type FragmentStream interface {
	Next() (string, error)
}

// ModelClient is the app's only boundary to the generative model. Streamed
// operations (per-file generation, whole-project modification) speak the
// file envelope protocol; structured operations decode strict JSON.
type ModelClient interface {
	Plan(ctx context.Context, prompt string) (AppPlan, error)
	GenerateFile(ctx context.Context, p *Project, fd FileDescriptor) (FragmentStream, error)
	Modify(ctx context.Context, p *Project, request string) (FragmentStream, error)
	Review(ctx context.Context, p *Project, changed []string) (Review, error)
	InferProject(ctx context.Context, files map[string]string) (AppPlan, Review, error)
}

// LatticeClient adapts a go-agent Agent (and an optional UTCP tool client)
// to the ModelClient boundary. Without UTCP the streamed operations return
// the whole response as a single fragment.
type LatticeClient struct {
	agent      *agent.Agent
	utcp       utcp.UtcpClientInterface
	streamTool string
}

func NewLatticeClient(a *agent.Agent, u utcp.UtcpClientInterface, streamTool string) *LatticeClient {
	return &LatticeClient{agent: a, utcp: u, streamTool: streamTool}
}

func (c *LatticeClient) Plan(ctx context.Context, prompt string) (AppPlan, error) {
	raw, err := c.agent.Generate(ctx, "plan", planPrompt(prompt))
	if err != nil {
		return AppPlan{}, fmt.Errorf("plan request: %w", err)
	}
	data, err := extractJSON(raw)
	if err != nil {
		return AppPlan{}, fmt.Errorf("invalid plan JSON: %w", err)
	}
	var plan AppPlan
	if err := json.Unmarshal(data, &plan); err != nil {
		return AppPlan{}, fmt.Errorf("invalid plan JSON: %w", err)
	}
	plan.FileStructure = normalizeDescriptors(plan.FileStructure)
	if len(plan.FileStructure) == 0 {
		return AppPlan{}, fmt.Errorf("plan contains no files")
	}
	return plan, nil
}

func (c *LatticeClient) GenerateFile(ctx context.Context, p *Project, fd FileDescriptor) (FragmentStream, error) {
	return c.stream(ctx, p.ID, filePrompt(p, fd))
}

func (c *LatticeClient) Modify(ctx context.Context, p *Project, request string) (FragmentStream, error) {
	return c.stream(ctx, p.ID, modifyPrompt(p, request))
}

func (c *LatticeClient) Review(ctx context.Context, p *Project, changed []string) (Review, error) {
	raw, err := c.agent.Generate(ctx, p.ID, reviewPrompt(p, changed))
	if err != nil {
		return Review{}, fmt.Errorf("review request: %w", err)
	}
	data, err := extractJSON(raw)
	if err != nil {
		return Review{}, fmt.Errorf("invalid review JSON: %w", err)
	}
	var review Review
	if err := json.Unmarshal(data, &review); err != nil {
		return Review{}, fmt.Errorf("invalid review JSON: %w", err)
	}
	return sanitizeReview(review), nil
}

func (c *LatticeClient) InferProject(ctx context.Context, files map[string]string) (AppPlan, Review, error) {
	prompt := inferPrompt(files)
	raw, err := c.agent.GenerateWithFiles(ctx, "import", prompt, attachmentsFor(files))
	if err != nil {
		raw, err = c.agent.Generate(ctx, "import", prompt)
		if err != nil {
			return AppPlan{}, Review{}, fmt.Errorf("infer request: %w", err)
		}
	}
	data, err := extractJSON(raw)
	if err != nil {
		return AppPlan{}, Review{}, fmt.Errorf("invalid inference JSON: %w", err)
	}
	var out struct {
		Plan   AppPlan `json:"plan"`
		Review Review  `json:"review"`
	}
	if err := json.Unmarshal(data, &out); err != nil {
		return AppPlan{}, Review{}, fmt.Errorf("invalid inference JSON: %w", err)
	}
	out.Plan.FileStructure = normalizeDescriptors(out.Plan.FileStructure)
	return out.Plan, sanitizeReview(out.Review), nil
}

// stream prefers the UTCP streaming tool for true incremental fragments and
// falls back to a one-shot Generate wrapped as a single-fragment stream.
func (c *LatticeClient) stream(ctx context.Context, session, prompt string) (FragmentStream, error) {
	if c.utcp != nil && c.streamTool != "" {
		inner, err := c.utcp.CallToolStream(ctx, c.streamTool, map[string]any{"prompt": prompt})
		if err == nil {
			return &utcpFragmentStream{inner: inner}, nil
		}
	}
	raw, err := c.agent.Generate(ctx, session, prompt)
	if err != nil {
		return nil, err
	}
	return &textFragmentStream{fragments: []string{raw}}, nil
}

const attachmentByteLimit = 20_000

// attachmentsFor packages project files as model attachments. Oversized
// files are truncated rather than dropped so the model still sees them.
func attachmentsFor(files map[string]string) []models.File {
	out := make([]models.File, 0, len(files))
	for _, path := range sortedStrings(fileKeys(files)) {
		data := []byte(files[path])
		if len(data) > attachmentByteLimit {
			data = data[:attachmentByteLimit]
		}
		out = append(out, models.File{
			Name: path,
			MIME: mimeForPath(path),
			Data: data,
		})
	}
	return out
}

func mimeForPath(rel string) string {
	ext := strings.ToLower(path.Ext(rel))
	switch ext {
	case ".md":
		return "text/markdown"
	case ".go", ".py", ".rs", ".rb", ".java", ".c", ".h", ".cpp", ".sh", ".txt", ".ini", ".cfg":
		return "text/plain"
	case ".js":
		return "application/javascript"
	case ".ts", ".tsx":
		return "application/typescript"
	case ".json":
		return "application/json"
	case ".yaml", ".yml":
		return "application/yaml"
	case ".toml":
		return "application/toml"
	default:
		return "application/octet-stream"
	}
}

func normalizeDescriptors(in []FileDescriptor) []FileDescriptor {
	out := make([]FileDescriptor, 0, len(in))
	for _, fd := range in {
		fd.Path = strings.Trim(strings.TrimSpace(fd.Path), "/")
		if fd.Path == "" {
			continue
		}
		out = append(out, fd)
	}
	return out
}

// textFragmentStream replays pre-chunked text, one fragment per Next call.
type textFragmentStream struct {
	fragments []string
	pos       int
}

func (s *textFragmentStream) Next() (string, error) {
	if s.pos >= len(s.fragments) {
		return "", io.EOF
	}
	frag := s.fragments[s.pos]
	s.pos++
	return frag, nil
}

// utcpFragmentStream stringifies the items of a UTCP tool stream.
type utcpFragmentStream struct {
	inner interface{ Next() (any, error) }
}

func (s *utcpFragmentStream) Next() (string, error) {
	item, err := s.inner.Next()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%v", item), nil
}
