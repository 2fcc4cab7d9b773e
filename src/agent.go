package src

import (
	"context"

	agent "github.com/Protocol-Lattice/go-agent"
	adk "github.com/Protocol-Lattice/go-agent/src/adk"
	adkmodules "github.com/Protocol-Lattice/go-agent/src/adk/modules"
	"github.com/Protocol-Lattice/go-agent/src/memory"
	"github.com/Protocol-Lattice/go-agent/src/models"
	"github.com/Protocol-Lattice/go-agent/src/tools"
	utcp "github.com/universal-tool-calling-protocol/go-utcp"
)

// BuildAgent constructs the generative agent the model client wraps. The
// UTCP client is optional; passing nil just disables tool streaming.
func BuildAgent(ctx context.Context, modelName string, utcpClient utcp.UtcpClientInterface) (*agent.Agent, error) {
	if modelName == "" {
		modelName = "gemini-2.5-pro"
	}
	memOpts := memory.DefaultOptions()
	builder, err := adk.New(
		ctx,
		adk.WithDefaultSystemPrompt(WeaveSystemPrompt),
		adk.WithModules(
			adkmodules.InMemoryMemoryModule(10000, memory.AutoEmbedder(), &memOpts),
			adkmodules.NewModelModule("gemini", func(_ context.Context) (models.Agent, error) {
				return models.NewGeminiLLM(ctx, modelName, "Application generator")
			}),
			adkmodules.NewToolModule("essentials",
				adkmodules.StaticToolProvider([]agent.Tool{&tools.EchoTool{}}, nil),
			),
		),
		adk.WithUTCP(utcpClient),
	)
	if err != nil {
		return nil, err
	}
	return builder.BuildAgent(ctx)
}
