package main

import (
	"fmt"
	"os"
	"runtime"

	"resumegraph/internal/llm"

	"github.com/spf13/cobra"
)

// providersCmd lists AI providers
var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List supported AI providers and their default models",
	RunE: func(cmd *cobra.Command, args []string) error {
		c := currentConfig()
		rows := make([]providerRow, 0, len(llm.SupportedProviders()))
		for _, spec := range llm.SupportedProviders() {
			selected := string(spec.Provider) == c.LLM.Provider
			model := spec.DefaultModel
			if selected && c.LLM.Model != "" {
				model = c.LLM.Model
			}
			rows = append(rows, providerRow{
				Provider: string(spec.Provider),
				Model:    model,
				KeyEnv:   spec.APIKeyEnv,
				HasKey:   os.Getenv(spec.APIKeyEnv) != "" || (selected && c.LLM.APIKey != ""),
				Selected: selected,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), providersTable(rows))
		return nil
	},
}

// versionCmd prints the build version
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "resumegraph %s (%s %s/%s)\n", version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}
