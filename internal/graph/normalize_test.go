package graph

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"resumegraph/internal/usage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockCompleter answers through fn and counts calls.
type mockCompleter struct {
	mu      sync.Mutex
	fn      func(prompt string) (string, error)
	calls   int
	prompts []string
	ops     []string
}

func (m *mockCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	m.mu.Lock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.ops = append(m.ops, usage.OperationFrom(ctx))
	m.mu.Unlock()
	return m.fn(prompt)
}

func answer(s string) *mockCompleter {
	return &mockCompleter{fn: func(string) (string, error) { return s, nil }}
}

func failing() *mockCompleter {
	return &mockCompleter{fn: func(string) (string, error) { return "", errors.New("boom") }}
}

func TestNormalizeType_Canonical(t *testing.T) {
	ai := answer("tool")
	n := NewNormalizer(ai, nil)

	got, how := n.NormalizeType(context.Background(), Entity{Name: "Go", Type: " Skill "})
	assert.Equal(t, TypeSkill, got)
	assert.Equal(t, ResolvedCanonical, how)
	assert.Zero(t, ai.calls)
}

func TestNormalizeType_SynonymSkipsAI(t *testing.T) {
	ai := answer("skill")
	n := NewNormalizer(ai, nil)

	got, how := n.NormalizeType(context.Background(), Entity{Name: "Kubernetes", Type: "technology"})
	assert.Equal(t, TypeTool, got)
	assert.Equal(t, ResolvedSynonym, how)
	assert.Zero(t, ai.calls, "synonym hits must not call the AI adapter")
}

func TestNormalizeType_AIClassification(t *testing.T) {
	ai := answer("  Methodology\n")
	n := NewNormalizer(ai, nil)

	got, how := n.NormalizeType(context.Background(), Entity{Name: "Scrum", Type: "practice", Description: "Agile delivery"})
	assert.Equal(t, TypeMethodology, got)
	assert.Equal(t, ResolvedAI, how)
	require.Equal(t, 1, ai.calls)
	assert.Contains(t, ai.prompts[0], "Scrum")
	assert.Contains(t, ai.prompts[0], "practice")
}

func TestNormalizeType_AIFailureFallsBackToHeuristic(t *testing.T) {
	n := NewNormalizer(failing(), nil)

	got, how := n.NormalizeType(context.Background(), Entity{Name: "Stanford University", Type: "alma mater"})
	assert.Equal(t, TypeWorkplace, got)
	assert.Equal(t, ResolvedHeuristic, how)
}

func TestNormalizeType_AINonCanonicalAnswer(t *testing.T) {
	n := NewNormalizer(answer("other"), nil)

	got, how := n.NormalizeType(context.Background(), Entity{Name: "Senior Engineer", Type: "rank"})
	assert.Equal(t, TypeRole, got)
	assert.Equal(t, ResolvedHeuristic, how)
}

func TestNormalizeType_NoClassifier(t *testing.T) {
	n := NewNormalizer(nil, nil)

	got, how := n.NormalizeType(context.Background(), Entity{Name: "Negotiation", Type: ""})
	assert.Equal(t, TypeSkill, got)
	assert.Equal(t, ResolvedHeuristic, how)
}

func TestNormalizeType_CanceledContextSkipsAI(t *testing.T) {
	ai := answer("tool")
	n := NewNormalizer(ai, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, how := n.NormalizeType(ctx, Entity{Name: "x", Type: "thing"})
	assert.Equal(t, ResolvedHeuristic, how)
	assert.Zero(t, ai.calls)
}

func TestNormalize_AllTypesCanonical(t *testing.T) {
	kg := &KnowledgeGraph{Entities: []Entity{
		{ID: "a", Name: "Alice", Type: "PERSON"},
		{ID: "b", Name: "PostgreSQL", Type: "software"},
		{ID: "c", Name: "Supply chain", Type: "area", Description: "Deep domain knowledge"},
		{ID: "d", Name: "Mystery", Type: "other"},
		{ID: "e", Name: "Lean", Type: "principle"},
	}}
	ai := &mockCompleter{fn: func(p string) (string, error) {
		if strings.Contains(p, "Lean") {
			return "methodology", nil
		}
		return "unknown", nil
	}}

	stats := NewNormalizer(ai, nil).Normalize(context.Background(), kg)

	for _, e := range kg.Entities {
		assert.True(t, e.Type.IsCanonical(), "entity %s has type %q", e.ID, e.Type)
	}
	assert.Equal(t, TypePerson, kg.Entities[0].Type)
	assert.Equal(t, TypeTool, kg.Entities[1].Type)
	assert.Equal(t, TypeKnowledge, kg.Entities[2].Type)
	assert.Equal(t, TypeSkill, kg.Entities[3].Type)
	assert.Equal(t, TypeMethodology, kg.Entities[4].Type)

	assert.Equal(t, NormalizationStats{Canonical: 1, Synonym: 1, AI: 1, Heuristic: 2}, stats)
	assert.Equal(t, 5, stats.Total())
	assert.Equal(t, 3, ai.calls)
}

func TestNormalize_FailingAdapterStillCanonical(t *testing.T) {
	kg := &KnowledgeGraph{Entities: []Entity{
		{ID: "1", Name: "Acme Corp", Type: "employer"},
		{ID: "2", Name: "PhD in Physics", Type: "achievement"},
		{ID: "3", Name: "Jira", Type: "thing"},
		{ID: "4", Name: "Kanban", Type: "x", Description: "A pull-based process"},
	}}

	NewNormalizer(failing(), nil).Normalize(context.Background(), kg)

	assert.Equal(t, []EntityType{TypeWorkplace, TypeQualification, TypeSkill, TypeMethodology},
		[]EntityType{kg.Entities[0].Type, kg.Entities[1].Type, kg.Entities[2].Type, kg.Entities[3].Type})
}

func TestGuessEntityType(t *testing.T) {
	tests := []struct {
		name   string
		entity Entity
		want   EntityType
	}{
		{"workplace by name", Entity{Name: "Example Inc"}, TypeWorkplace},
		{"qualification by name", Entity{Name: "Bachelor of Arts"}, TypeQualification},
		{"role by name", Entity{Name: "Project Manager"}, TypeRole},
		{"tool by name", Entity{Name: "Database tuning"}, TypeTool},
		{"knowledge by description", Entity{Name: "Finance", Description: "Expertise in markets"}, TypeKnowledge},
		{"methodology by description", Entity{Name: "TDD", Description: "A test-first approach"}, TypeMethodology},
		{"default skill", Entity{Name: "Public speaking"}, TypeSkill},
		{"name rules win over description", Entity{Name: "Data Engineer", Description: "domain knowledge"}, TypeRole},
		{"case insensitive", Entity{Name: "UNIVERSITY OF TORONTO"}, TypeWorkplace},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessEntityType(tt.entity))
		})
	}
}

func TestMapSynonym(t *testing.T) {
	tests := map[string]EntityType{
		"technology":           TypeTool,
		"Framework":            TypeTool,
		"programming_language": TypeSkill,
		"Programming Language": TypeSkill,
		"degree":               TypeQualification,
		"university":           TypeWorkplace,
		"job":                  TypeRole,
		"process":              TypeMethodology,
		"specialty":            TypeKnowledge,
		"competency":           TypeSkill,
	}
	for in, want := range tests {
		got, ok := MapSynonym(in)
		assert.True(t, ok, in)
		assert.Equal(t, want, got, in)
	}

	_, ok := MapSynonym("hobby")
	assert.False(t, ok)
}

func TestParseEntityType(t *testing.T) {
	got, ok := ParseEntityType("  WorkPlace ")
	assert.True(t, ok)
	assert.Equal(t, TypeWorkplace, got)

	_, ok = ParseEntityType("other")
	assert.False(t, ok)

	assert.Len(t, CanonicalTypes(), 8)
}
