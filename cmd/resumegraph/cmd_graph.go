package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"resumegraph/internal/config"
	"resumegraph/internal/llm"
	"resumegraph/internal/logging"
	"resumegraph/internal/pipeline"
	"resumegraph/internal/usage"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	graphProvider string
	graphModel    string
	graphOutput   string
	noAIClassify  bool
	keepDangling  bool
)

// graphCmd extracts a knowledge graph from a resume
var graphCmd = &cobra.Command{
	Use:   "graph [input]",
	Short: "Build an interactive knowledge graph from a resume",
	Long: `Extracts entities and relationships from a resume (PDF, HTML or plain text)
with the configured AI provider and writes an HTML visualization plus a
<name>_data.json file next to it.

Without an input file a built-in sample profile is used. When the AI call
fails or returns unusable output, a generic default graph is written instead.

Example:
  resumegraph graph cv.pdf --provider gemini --output out/cv.html`,
	Args: cobra.MaximumNArgs(1),
	RunE: runGraph,
}

func init() {
	graphCmd.Flags().StringVar(&graphProvider, "provider", "", "AI provider: openai, anthropic, gemini, xai")
	graphCmd.Flags().StringVar(&graphModel, "model", "", "Model override")
	graphCmd.Flags().StringVarP(&graphOutput, "output", "o", "", "HTML output path")
	graphCmd.Flags().BoolVar(&noAIClassify, "no-ai-classify", false, "Do not ask the AI to classify unknown entity types")
	graphCmd.Flags().BoolVar(&keepDangling, "keep-dangling", false, "Keep relationships that reference unknown entities")
}

func runGraph(cmd *cobra.Command, args []string) error {
	c := currentConfig()
	if graphProvider != "" {
		c.SetProvider(graphProvider)
	}
	if graphModel != "" {
		c.LLM.Model = graphModel
	}
	if graphOutput != "" {
		c.Graph.Output = graphOutput
	}
	if noAIClassify {
		c.LLM.ClassifyUnknownTypes = false
	}
	if keepDangling {
		c.Graph.PruneDanglingRelationships = false
	}
	if err := c.Validate(); err != nil {
		return err
	}

	inner, err := newLLMClient(c)
	if err != nil {
		return err
	}
	tracker := usage.NewTracker()
	client := llm.NewTrackingClient(inner, tracker)
	gen, err := pipeline.New(pipeline.Options{
		Client:                     client,
		ClassifyUnknownTypes:       c.LLM.ClassifyUnknownTypes,
		PruneDanglingRelationships: c.Graph.PruneDanglingRelationships,
		Title:                      c.Graph.Title,
		Logger:                     categoryLogger(logging.CategoryPipeline),
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var art pipeline.Artifacts
	if len(args) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No input given, analyzing the built-in sample profile.")
		art, err = gen.ProcessText(ctx, pipeline.SampleProfileText, c.Graph.Output)
	} else {
		art, err = gen.ProcessFile(ctx, args[0], c.Graph.Output)
	}
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), graphReport(art, client.Info(), tracker.Stats()))
	return nil
}

// newLLMClient builds the client for the configured provider. A missing key
// is only logged: the call fails later and the default graph is used.
func newLLMClient(c *config.Config) (llm.Client, error) {
	provider, err := llm.ParseProvider(c.LLM.Provider)
	if err != nil {
		return nil, err
	}
	apiKey := c.ResolveAPIKey()
	if apiKey == "" {
		categoryLogger(logging.CategoryAPI).Warn("no API key configured",
			zap.String("provider", string(provider)),
			zap.String("env", config.APIKeyEnvVar(string(provider))))
	}
	return llm.NewClientFromConfig(llm.ProviderConfig{
		Provider:    provider,
		APIKey:      apiKey,
		Model:       c.LLM.Model,
		SearchModel: c.LLM.SearchModel,
		BaseURL:     c.LLM.BaseURL,
		Timeout:     c.GetLLMTimeout(),
		Logger:      categoryLogger(logging.CategoryAPI),
	})
}
