// Package render assembles the self-contained HTML visualization of a
// knowledge graph.
package render

import (
	"bytes"
	_ "embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"strings"

	"resumegraph/internal/graph"
	"resumegraph/internal/logging"

	"go.uber.org/zap"
)

// DefaultTitle is used when no title is configured.
const DefaultTitle = "Professional Knowledge Graph"

//go:embed templates/graph.html.tmpl
var pageTemplate string

// Fallback color keys in the color map.
const (
	ColorOther   = "other"
	ColorDefault = "default"
)

var typeColors = map[string]string{
	string(graph.TypePerson):        "#0A66C2",
	string(graph.TypeSkill):         "#057642",
	string(graph.TypeKnowledge):     "#FF8C00",
	string(graph.TypeTool):          "#6441A4",
	string(graph.TypeQualification): "#1B6EC8",
	string(graph.TypeRole):          "#8B5A3C",
	string(graph.TypeWorkplace):     "#2D3748",
	string(graph.TypeMethodology):   "#9B59B6",
	ColorOther:                      "#5A6C7D",
	ColorDefault:                    "#5A6C7D",
}

// legendOrder is the order types appear in the legend.
var legendOrder = []string{
	string(graph.TypePerson),
	string(graph.TypeSkill),
	string(graph.TypeTool),
	string(graph.TypeKnowledge),
	string(graph.TypeQualification),
	string(graph.TypeRole),
	string(graph.TypeWorkplace),
	string(graph.TypeMethodology),
	ColorOther,
}

// ColorMap returns a copy of the type to color table, including the
// "other" and "default" fallbacks.
func ColorMap() map[string]string {
	out := make(map[string]string, len(typeColors))
	for k, v := range typeColors {
		out[k] = v
	}
	return out
}

// Color returns the color for t, or the default color.
func Color(t graph.EntityType) string {
	if c, ok := typeColors[string(t)]; ok {
		return c
	}
	return typeColors[ColorDefault]
}

// Options configures a Renderer.
type Options struct {
	Title  string
	Logger *zap.Logger
}

// Renderer renders knowledge graphs to HTML.
type Renderer struct {
	tmpl  *template.Template
	title string
	log   *zap.Logger
}

type legendItem struct {
	Type  string
	Label string
	Color string
}

type payload struct {
	Entities      []graph.Entity       `json:"entities"`
	Relationships []graph.Relationship `json:"relationships"`
	Summary       string               `json:"summary"`
	Colors        map[string]string    `json:"colors"`
	Types         []string             `json:"types"`
}

type page struct {
	Title             string
	Summary           string
	EntityCount       int
	RelationshipCount int
	SkillCount        int
	Legend            []legendItem
	Data              payload
}

// New parses the embedded page template.
func New(opts Options) (*Renderer, error) {
	tmpl, err := template.New("graph").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	title := strings.TrimSpace(opts.Title)
	if title == "" {
		title = DefaultTitle
	}
	log := logging.OrNop(opts.Logger)
	return &Renderer{tmpl: tmpl, title: title, log: log}, nil
}

// Render writes the HTML document for kg to w.
func (r *Renderer) Render(w io.Writer, kg *graph.KnowledgeGraph) error {
	if kg == nil {
		return fmt.Errorf("nil knowledge graph")
	}
	if err := r.tmpl.Execute(w, r.page(kg)); err != nil {
		return fmt.Errorf("failed to render knowledge graph: %w", err)
	}
	return nil
}

// WriteFile renders kg and writes it to path in one write, creating the
// parent directory if needed.
func (r *Renderer) WriteFile(path string, kg *graph.KnowledgeGraph) error {
	var buf bytes.Buffer
	if err := r.Render(&buf, kg); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	r.log.Info("visualization written",
		zap.String("path", path),
		zap.Int("bytes", buf.Len()),
		zap.Int("entities", len(kg.Entities)))
	return nil
}

func (r *Renderer) page(kg *graph.KnowledgeGraph) page {
	summary := strings.TrimSpace(kg.Summary)
	if summary == "" {
		summary = r.title
	}

	entities := kg.Entities
	if entities == nil {
		entities = []graph.Entity{}
	}
	relationships := kg.Relationships
	if relationships == nil {
		relationships = []graph.Relationship{}
	}

	legend := make([]legendItem, 0, len(legendOrder))
	for _, t := range legendOrder {
		legend = append(legend, legendItem{Type: t, Label: label(t), Color: typeColors[t]})
	}

	return page{
		Title:             r.title,
		Summary:           summary,
		EntityCount:       len(entities),
		RelationshipCount: len(relationships),
		SkillCount:        kg.CountByType()[graph.TypeSkill],
		Legend:            legend,
		Data: payload{
			Entities:      entities,
			Relationships: relationships,
			Summary:       summary,
			Colors:        ColorMap(),
			Types:         legendOrder,
		},
	}
}

func label(t string) string {
	if t == "" {
		return t
	}
	return strings.ToUpper(t[:1]) + t[1:]
}
