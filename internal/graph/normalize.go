package graph

import (
	"context"
	"time"

	"resumegraph/internal/logging"
	"resumegraph/internal/prompt"
	"resumegraph/internal/usage"

	"go.uber.org/zap"
)

// Completer is the slice of the AI adapter the graph package needs.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Resolution names the cascade tier that decided an entity's type.
type Resolution string

const (
	ResolvedCanonical Resolution = "canonical"
	ResolvedSynonym   Resolution = "synonym"
	ResolvedAI        Resolution = "ai"
	ResolvedHeuristic Resolution = "heuristic"
)

// NormalizationStats counts how many entities each tier resolved.
type NormalizationStats struct {
	Canonical int
	Synonym   int
	AI        int
	Heuristic int
}

// Total is the number of entities normalized.
func (s NormalizationStats) Total() int {
	return s.Canonical + s.Synonym + s.AI + s.Heuristic
}

func (s *NormalizationStats) add(r Resolution) {
	switch r {
	case ResolvedCanonical:
		s.Canonical++
	case ResolvedSynonym:
		s.Synonym++
	case ResolvedAI:
		s.AI++
	case ResolvedHeuristic:
		s.Heuristic++
	}
}

// Normalizer maps arbitrary type labels onto the canonical set. The cascade is
// canonical label, synonym table, AI classification, keyword heuristic.
type Normalizer struct {
	classifier Completer
	log        *zap.Logger
}

// NewNormalizer returns a Normalizer. A nil classifier skips the AI tier.
func NewNormalizer(classifier Completer, log *zap.Logger) *Normalizer {
	log = logging.OrNop(log)
	return &Normalizer{classifier: classifier, log: log}
}

// NormalizeType resolves the canonical type for e without modifying it.
func (n *Normalizer) NormalizeType(ctx context.Context, e Entity) (EntityType, Resolution) {
	if t, ok := ParseEntityType(string(e.Type)); ok {
		return t, ResolvedCanonical
	}
	if t, ok := MapSynonym(string(e.Type)); ok {
		return t, ResolvedSynonym
	}
	if t, ok := n.classify(ctx, e); ok {
		return t, ResolvedAI
	}
	return GuessEntityType(e), ResolvedHeuristic
}

// Normalize rewrites every entity type in kg to a canonical one.
func (n *Normalizer) Normalize(ctx context.Context, kg *KnowledgeGraph) NormalizationStats {
	var stats NormalizationStats
	for i := range kg.Entities {
		e := &kg.Entities[i]
		t, how := n.NormalizeType(ctx, *e)
		if how != ResolvedCanonical || string(e.Type) != string(t) {
			n.log.Debug("normalized entity type",
				zap.String("entity", e.ID),
				zap.String("from", string(e.Type)),
				zap.String("to", string(t)),
				zap.String("resolution", string(how)))
		}
		e.Type = t
		stats.add(how)
	}
	return stats
}

func (n *Normalizer) classify(ctx context.Context, e Entity) (EntityType, bool) {
	if n.classifier == nil {
		return "", false
	}
	if ctx.Err() != nil {
		return "", false
	}

	start := time.Now()
	cctx := usage.WithOperation(ctx, usage.OperationClassify)
	answer, err := n.classifier.Complete(cctx, prompt.ClassificationPrompt(e.Name, string(e.Type), e.Description))
	if err != nil {
		n.log.Warn("type classification failed",
			zap.String("entity", e.Name),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err))
		return "", false
	}

	t, ok := ParseEntityType(answer)
	if !ok {
		n.log.Warn("classifier returned non-canonical type",
			zap.String("entity", e.Name),
			zap.String("answer", answer))
		return "", false
	}
	return t, true
}
