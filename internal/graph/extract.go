package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"resumegraph/internal/logging"
	"resumegraph/internal/prompt"
	"resumegraph/internal/usage"

	"go.uber.org/zap"
)

var (
	// ErrNoJSONObject is returned when a response holds no {...} span.
	ErrNoJSONObject = errors.New("no JSON object found in response")
	// ErrMissingEntities is returned when the decoded object has no entities.
	ErrMissingEntities = errors.New("knowledge graph has no entities")
	// ErrEmptyText is recorded when there is no profile text to analyze.
	ErrEmptyText = errors.New("profile text is empty")
)

// ExtractJSONObject returns the text from the first '{' to the last '}'.
func ExtractJSONObject(text string) (string, error) {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", ErrNoJSONObject
	}
	return text[start : end+1], nil
}

// ParseKnowledgeGraph decodes a JSON object into a KnowledgeGraph. The
// entities key is required and must be non-empty; relationships may be absent.
func ParseKnowledgeGraph(raw string) (*KnowledgeGraph, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &probe); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge graph JSON: %w", err)
	}
	if ents, ok := probe["entities"]; !ok || bytes.Equal(bytes.TrimSpace(ents), []byte("null")) {
		return nil, ErrMissingEntities
	}

	var kg KnowledgeGraph
	if err := json.Unmarshal([]byte(raw), &kg); err != nil {
		return nil, fmt.Errorf("failed to parse knowledge graph JSON: %w", err)
	}
	if len(kg.Entities) == 0 {
		return nil, ErrMissingEntities
	}
	kg.fillEmpty()
	return &kg, nil
}

// Outcome describes how an extraction went.
type Outcome struct {
	UsedFallback   bool
	Err            error // why the fallback was used
	IDsRepaired    int
	RefsRepaired   int
	Normalization  NormalizationStats
	Pruned         []Relationship
	Validation     ValidationReport
	ResponseLength int
	Elapsed        time.Duration
}

// ExtractorOptions configures an Extractor.
type ExtractorOptions struct {
	// ClassifyUnknownTypes enables the AI tier of type normalization.
	ClassifyUnknownTypes bool
	// PruneDanglingRelationships drops edges whose endpoints are unknown.
	PruneDanglingRelationships bool
	Logger                     *zap.Logger
}

// Extractor turns profile text into a normalized knowledge graph.
type Extractor struct {
	client     Completer
	normalizer *Normalizer
	prune      bool
	log        *zap.Logger
}

// NewExtractor creates an Extractor that calls client once per document.
func NewExtractor(client Completer, opts ExtractorOptions) *Extractor {
	log := logging.OrNop(opts.Logger)
	var classifier Completer
	if opts.ClassifyUnknownTypes {
		classifier = client
	}
	return &Extractor{
		client:     client,
		normalizer: NewNormalizer(classifier, log),
		prune:      opts.PruneDanglingRelationships,
		log:        log,
	}
}

// Extract never fails: any AI or parse error yields DefaultKnowledgeGraph and
// the reason is recorded in the Outcome.
func (x *Extractor) Extract(ctx context.Context, text string) (*KnowledgeGraph, Outcome) {
	start := time.Now()
	var out Outcome

	kg, n, err := x.fetch(ctx, text)
	out.ResponseLength = n
	if err != nil {
		x.log.Warn("knowledge graph extraction failed, using default graph", zap.Error(err))
		out.UsedFallback = true
		out.Err = err
		kg = DefaultKnowledgeGraph()
	}

	out.IDsRepaired = RepairIDs(kg)
	out.RefsRepaired = RepairReferences(kg)
	out.Normalization = x.normalizer.Normalize(ctx, kg)

	if x.prune {
		out.Pruned = PruneDanglingRelationships(kg)
		for _, r := range out.Pruned {
			x.log.Info("dropped dangling relationship",
				zap.String("source", r.Source),
				zap.String("target", r.Target),
				zap.String("type", r.Type))
		}
	}

	out.Validation = Validate(kg)
	for _, d := range out.Validation.Dangling {
		x.log.Warn("relationship references unknown entity",
			zap.Int("index", d.Index),
			zap.String("source", d.Relationship.Source),
			zap.String("target", d.Relationship.Target))
	}

	out.Elapsed = time.Since(start)
	x.log.Info("knowledge graph extracted",
		zap.Int("entities", len(kg.Entities)),
		zap.Int("relationships", len(kg.Relationships)),
		zap.Bool("fallback", out.UsedFallback),
		zap.Duration("elapsed", out.Elapsed))
	return kg, out
}

func (x *Extractor) fetch(ctx context.Context, text string) (*KnowledgeGraph, int, error) {
	if strings.TrimSpace(text) == "" {
		return nil, 0, ErrEmptyText
	}
	if x.client == nil {
		return nil, 0, errors.New("no AI client configured")
	}
	p, err := prompt.ResumeAnalysisPrompt(text, prompt.ContextKnowledgeGraph)
	if err != nil {
		return nil, 0, err
	}

	resp, err := x.client.Complete(usage.WithOperation(ctx, usage.OperationExtract), p)
	if err != nil {
		return nil, 0, fmt.Errorf("AI request failed: %w", err)
	}
	x.log.Debug("received AI response", zap.Int("length", len(resp)))

	raw, err := ExtractJSONObject(resp)
	if err != nil {
		return nil, len(resp), err
	}
	kg, err := ParseKnowledgeGraph(raw)
	if err != nil {
		return nil, len(resp), err
	}
	return kg, len(resp), nil
}
