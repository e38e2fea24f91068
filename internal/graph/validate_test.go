package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	kg := &KnowledgeGraph{
		Entities: []Entity{
			{ID: "a", Type: TypePerson},
			{ID: "b", Type: "gadget"},
			{ID: "a", Type: TypeSkill},
		},
		Relationships: []Relationship{
			{Source: "a", Target: "b", Type: "uses_tool"},
			{Source: "x", Target: "b", Type: "knows"},
			{Source: "x", Target: "y", Type: "knows"},
		},
	}

	report := Validate(kg)

	assert.False(t, report.OK())
	assert.Equal(t, 4, report.Problems())
	assert.Equal(t, []string{"a"}, report.DuplicateIDs)
	assert.Equal(t, []InvalidType{{EntityID: "b", Type: "gadget"}}, report.InvalidTypes)
	require.Len(t, report.Dangling, 2)
	assert.Equal(t, 1, report.Dangling[0].Index)
	assert.True(t, report.Dangling[0].MissingSource)
	assert.False(t, report.Dangling[0].MissingTarget)
	assert.True(t, report.Dangling[1].MissingSource && report.Dangling[1].MissingTarget)

	text := report.String()
	assert.Contains(t, text, "unknown source x and target y")
	assert.Contains(t, text, `duplicate entity id "a"`)
	assert.Contains(t, text, `non-canonical type "gadget"`)
}

func TestValidate_OK(t *testing.T) {
	report := Validate(DefaultKnowledgeGraph())
	assert.True(t, report.OK())
	assert.Equal(t, "ok", report.String())
}

func TestPruneDanglingRelationships(t *testing.T) {
	kg := &KnowledgeGraph{
		Entities: []Entity{{ID: "a"}, {ID: "b"}},
		Relationships: []Relationship{
			{Source: "a", Target: "b", Type: "1"},
			{Source: "a", Target: "z", Type: "2"},
			{Source: "b", Target: "a", Type: "3"},
			{Source: "z", Target: "a", Type: "4"},
		},
	}

	dropped := PruneDanglingRelationships(kg)

	require.Len(t, dropped, 2)
	assert.Equal(t, "2", dropped[0].Type)
	assert.Equal(t, "4", dropped[1].Type)
	require.Len(t, kg.Relationships, 2)
	assert.Equal(t, "1", kg.Relationships[0].Type)
	assert.Equal(t, "3", kg.Relationships[1].Type)
	assert.Empty(t, Validate(kg).Dangling)
}
