package main

import (
	"fmt"
	"strings"

	"resumegraph/internal/graph"
	"resumegraph/internal/logging"
	"resumegraph/internal/render"

	"github.com/spf13/cobra"
)

var (
	renderOutput string
	renderTitle  string
)

// renderCmd re-renders a saved graph
var renderCmd = &cobra.Command{
	Use:   "render <data.json>",
	Short: "Render HTML from a saved _data.json file",
	Long: `Re-renders the visualization from a knowledge graph JSON file without
calling the AI. The default output replaces the _data.json suffix with .html.`,
	Args: cobra.ExactArgs(1),
	RunE: runRender,
}

// validateCmd checks a saved graph
var validateCmd = &cobra.Command{
	Use:   "validate <data.json>",
	Short: "Check a saved graph for dangling relationships and bad types",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func init() {
	renderCmd.Flags().StringVarP(&renderOutput, "output", "o", "", "HTML output path")
	renderCmd.Flags().StringVar(&renderTitle, "title", "", "Page title")
}

func runRender(cmd *cobra.Command, args []string) error {
	kg, err := graph.LoadFile(args[0])
	if err != nil {
		return err
	}

	title := renderTitle
	if title == "" {
		title = currentConfig().Graph.Title
	}
	r, err := render.New(render.Options{Title: title, Logger: categoryLogger(logging.CategoryRender)})
	if err != nil {
		return err
	}

	out := renderOutput
	if out == "" {
		out = htmlPathFor(args[0])
	}
	if err := r.WriteFile(out, kg); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Rendered %d entities and %d relationships to %s\n",
		len(kg.Entities), len(kg.Relationships), out)
	return nil
}

func runValidate(cmd *cobra.Command, args []string) error {
	kg, err := graph.LoadFile(args[0])
	if err != nil {
		return err
	}
	report := graph.Validate(kg)
	fmt.Fprintln(cmd.OutOrStdout(), validationReport(args[0], kg, report))
	if !report.OK() {
		return fmt.Errorf("%s: %d problem(s) found", args[0], report.Problems())
	}
	return nil
}

// htmlPathFor is the inverse of graph.DataPath.
func htmlPathFor(dataPath string) string {
	if base, ok := strings.CutSuffix(dataPath, "_data.json"); ok {
		return base + ".html"
	}
	return strings.TrimSuffix(dataPath, ".json") + ".html"
}
