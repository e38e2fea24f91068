package main

import (
	"fmt"
	"strings"

	"resumegraph/internal/graph"
	"resumegraph/internal/llm"
	"resumegraph/internal/pipeline"
	"resumegraph/internal/usage"

	"github.com/charmbracelet/lipgloss"
)

var (
	accent = lipgloss.Color("#0A66C2")
	muted  = lipgloss.Color("#666666")
	warn   = lipgloss.Color("#D9822B")
	good   = lipgloss.Color("#057642")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(muted).Width(16)
	warnStyle  = lipgloss.NewStyle().Foreground(warn)
	okStyle    = lipgloss.NewStyle().Foreground(good)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)
)

func field(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), value)
}

// graphReport summarizes a graph run.
func graphReport(art pipeline.Artifacts, info llm.ProviderInfo, calls usage.Stats) string {
	lines := []string{
		titleStyle.Render("Knowledge graph complete"),
		"",
		field("Provider", fmt.Sprintf("%s (%s)", info.Provider, info.ContentModel)),
		field("Entities", fmt.Sprint(art.Entities)),
		field("Relationships", fmt.Sprint(art.Relationships)),
	}
	if types := typeBreakdown(art.Types); types != "" {
		lines = append(lines, field("By type", types))
	}
	if n := art.Outcome.Normalization; n.Total() > 0 {
		lines = append(lines, field("Type sources", fmt.Sprintf("canonical %d, synonym %d, ai %d, heuristic %d",
			n.Canonical, n.Synonym, n.AI, n.Heuristic)))
	}
	if calls.Total.Calls > 0 {
		lines = append(lines, field("AI calls", aiCallSummary(calls)))
	}
	if len(art.Outcome.Pruned) > 0 {
		lines = append(lines, field("Pruned", warnStyle.Render(fmt.Sprintf("%d dangling relationship(s)", len(art.Outcome.Pruned)))))
	}
	if art.UsedFallback {
		reason := "unknown error"
		if art.Outcome.Err != nil {
			reason = art.Outcome.Err.Error()
		}
		lines = append(lines, field("Fallback", warnStyle.Render("default graph used: "+reason)))
	}
	lines = append(lines,
		"",
		field("HTML", art.HTMLPath),
		field("Data", art.DataPath),
	)
	return boxStyle.Render(strings.Join(lines, "\n"))
}

func aiCallSummary(s usage.Stats) string {
	out := fmt.Sprintf("%d (extract %d, classify %d)", s.Total.Calls,
		s.ByOperation[usage.OperationExtract].Calls, s.ByOperation[usage.OperationClassify].Calls)
	if s.Total.Failures > 0 {
		out += warnStyle.Render(fmt.Sprintf(", %d failed", s.Total.Failures))
	}
	return out
}

func typeBreakdown(counts map[graph.EntityType]int) string {
	var parts []string
	for _, t := range graph.CanonicalTypes() {
		if n := counts[t]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", t, n))
		}
	}
	return strings.Join(parts, ", ")
}

// validationReport renders the result of graph.Validate.
func validationReport(path string, kg *graph.KnowledgeGraph, report graph.ValidationReport) string {
	header := field("File", path) + "\n" +
		field("Entities", fmt.Sprint(len(kg.Entities))) + "\n" +
		field("Relationships", fmt.Sprint(len(kg.Relationships)))
	if report.OK() {
		return header + "\n" + okStyle.Render("✓ no problems found")
	}
	return header + "\n" + warnStyle.Render(fmt.Sprintf("✗ %d problem(s):", report.Problems())) + "\n" + report.String()
}

// sliceReport lists the written portraits.
func sliceReport(paths []string, contactSheet string) string {
	lines := []string{titleStyle.Render(fmt.Sprintf("Wrote %d portraits", len(paths)))}
	for _, p := range paths {
		lines = append(lines, "  "+p)
	}
	if contactSheet != "" {
		lines = append(lines, field("Contact sheet", contactSheet))
	}
	return strings.Join(lines, "\n")
}

type providerRow struct {
	Provider string
	Model    string
	KeyEnv   string
	HasKey   bool
	Selected bool
}

func providersTable(rows []providerRow) string {
	col := func(w int) lipgloss.Style { return lipgloss.NewStyle().Width(w) }
	header := lipgloss.JoinHorizontal(lipgloss.Top,
		col(3).Render(""), col(12).Render("PROVIDER"), col(28).Render("MODEL"), col(20).Render("KEY"))
	lines := []string{titleStyle.Render(header)}
	for _, r := range rows {
		mark := ""
		if r.Selected {
			mark = "*"
		}
		key := warnStyle.Render(r.KeyEnv + " (unset)")
		if r.HasKey {
			key = okStyle.Render(r.KeyEnv)
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top,
			col(3).Render(mark), col(12).Render(r.Provider), col(28).Render(r.Model), key))
	}
	return strings.Join(lines, "\n")
}
