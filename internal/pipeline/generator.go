// Package pipeline runs profile text through extraction and writes the HTML
// visualization and its _data.json sidecar.
package pipeline

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"resumegraph/internal/document"
	"resumegraph/internal/graph"
	"resumegraph/internal/logging"
	"resumegraph/internal/render"

	"go.uber.org/zap"
)

// DefaultOutput is the HTML path used when none is given.
const DefaultOutput = "professional_knowledge_graph.html"

// SampleProfileText is analyzed when no input document is given.
const SampleProfileText = `李明是一位经验丰富的RPA开发工程师，目前在一家信息技术咨询公司工作。
他具有扎实的技术技能，包括C#、ASP.NET Core、Python、JavaScript等编程语言，
以及UiPath、PowerShell、VBScript等RPA开发工具。他在财务管理和项目管理方面也有丰富经验，
通过了CPA考试的全部六个模块。他拥有企业管理硕士学位和工商管理学士学位。
在技术项目方面，他开发了多个RPA流程，参与了自动化仪表板开发和智能客服机器人前端开发。`

// Options configures a Generator.
type Options struct {
	// Client answers extraction and classification prompts. Nil always
	// produces the default graph.
	Client                     graph.Completer
	ClassifyUnknownTypes       bool
	PruneDanglingRelationships bool
	Title                      string
	Logger                     *zap.Logger
}

// Artifacts describes the files one run produced.
type Artifacts struct {
	HTMLPath      string
	DataPath      string
	Entities      int
	Relationships int
	Types         map[graph.EntityType]int
	UsedFallback  bool
	Outcome       graph.Outcome
}

// Generator extracts knowledge graphs and writes their artifacts.
type Generator struct {
	extractor *graph.Extractor
	renderer  *render.Renderer
	log       *zap.Logger
}

// New creates a Generator.
func New(opts Options) (*Generator, error) {
	log := logging.OrNop(opts.Logger)
	renderer, err := render.New(render.Options{Title: opts.Title, Logger: log.Named("render")})
	if err != nil {
		return nil, err
	}
	extractor := graph.NewExtractor(opts.Client, graph.ExtractorOptions{
		ClassifyUnknownTypes:       opts.ClassifyUnknownTypes,
		PruneDanglingRelationships: opts.PruneDanglingRelationships,
		Logger:                     log.Named("graph"),
	})
	return &Generator{extractor: extractor, renderer: renderer, log: log}, nil
}

// Extract returns the knowledge graph for text with the extraction outcome.
func (g *Generator) Extract(ctx context.Context, text string) (*graph.KnowledgeGraph, graph.Outcome) {
	return g.extractor.Extract(ctx, text)
}

// ExtractKnowledgeGraph returns the knowledge graph for text. It never fails;
// on any AI or parse problem the default graph is returned.
func (g *Generator) ExtractKnowledgeGraph(ctx context.Context, text string) *graph.KnowledgeGraph {
	kg, _ := g.extractor.Extract(ctx, text)
	return kg
}

// GenerateVisualization writes the HTML page for kg and returns its path.
func (g *Generator) GenerateVisualization(kg *graph.KnowledgeGraph, htmlPath string) (string, error) {
	if htmlPath == "" {
		htmlPath = DefaultOutput
	}
	if err := g.renderer.WriteFile(htmlPath, kg); err != nil {
		return "", err
	}
	return htmlPath, nil
}

// ProcessText extracts a graph from text and writes the HTML page and the
// _data.json sidecar next to it. Only filesystem errors are returned.
func (g *Generator) ProcessText(ctx context.Context, text, htmlPath string) (Artifacts, error) {
	start := time.Now()
	g.log.Info("extracting knowledge graph", zap.Int("chars", len([]rune(text))))

	kg, outcome := g.extractor.Extract(ctx, text)

	htmlPath, err := g.GenerateVisualization(kg, htmlPath)
	if err != nil {
		return Artifacts{}, err
	}
	dataPath := graph.DataPath(htmlPath)
	if err := graph.SaveFile(dataPath, kg); err != nil {
		return Artifacts{}, err
	}

	g.log.Info("knowledge graph generated",
		zap.String("html", htmlPath),
		zap.String("data", dataPath),
		zap.Bool("fallback", outcome.UsedFallback),
		zap.Duration("elapsed", time.Since(start)))

	return Artifacts{
		HTMLPath:      htmlPath,
		DataPath:      dataPath,
		Entities:      len(kg.Entities),
		Relationships: len(kg.Relationships),
		Types:         kg.CountByType(),
		UsedFallback:  outcome.UsedFallback,
		Outcome:       outcome,
	}, nil
}

// ProcessPDF extracts text from a PDF resume and processes it.
func (g *Generator) ProcessPDF(ctx context.Context, pdfPath, htmlPath string) (Artifacts, error) {
	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to read %s: %w", pdfPath, err)
	}
	text, err := document.ExtractTextFromPDF(data)
	if err != nil {
		return Artifacts{}, fmt.Errorf("failed to extract text from %s: %w", filepath.Base(pdfPath), err)
	}
	g.log.Info("extracted text from PDF", zap.String("path", pdfPath), zap.Int("chars", len([]rune(text))))
	return g.ProcessText(ctx, text, htmlPath)
}

// ProcessFile reads a PDF, HTML or plain text document and processes it.
func (g *Generator) ProcessFile(ctx context.Context, path, htmlPath string) (Artifacts, error) {
	text, err := document.ReadFile(path)
	if err != nil {
		return Artifacts{}, err
	}
	return g.ProcessText(ctx, text, htmlPath)
}
