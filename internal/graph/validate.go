package graph

import (
	"fmt"
	"strings"
)

// DanglingRelationship is a relationship whose source or target is not an entity id.
type DanglingRelationship struct {
	Index         int
	Relationship  Relationship
	MissingSource bool
	MissingTarget bool
}

// InvalidType is an entity whose type is outside the canonical set.
type InvalidType struct {
	EntityID string
	Type     EntityType
}

// ValidationReport lists referential and type problems in a graph.
type ValidationReport struct {
	Dangling     []DanglingRelationship
	DuplicateIDs []string
	InvalidTypes []InvalidType
}

// OK reports whether the graph has no problems.
func (r ValidationReport) OK() bool {
	return r.Problems() == 0
}

// Problems is the total number of problems found.
func (r ValidationReport) Problems() int {
	return len(r.Dangling) + len(r.DuplicateIDs) + len(r.InvalidTypes)
}

// String renders the report one problem per line.
func (r ValidationReport) String() string {
	if r.OK() {
		return "ok"
	}
	var lines []string
	for _, d := range r.Dangling {
		var missing []string
		if d.MissingSource {
			missing = append(missing, "source "+d.Relationship.Source)
		}
		if d.MissingTarget {
			missing = append(missing, "target "+d.Relationship.Target)
		}
		lines = append(lines, fmt.Sprintf("relationship %d (%s): unknown %s",
			d.Index, d.Relationship.Type, strings.Join(missing, " and ")))
	}
	for _, id := range r.DuplicateIDs {
		lines = append(lines, fmt.Sprintf("duplicate entity id %q", id))
	}
	for _, it := range r.InvalidTypes {
		lines = append(lines, fmt.Sprintf("entity %q has non-canonical type %q", it.EntityID, it.Type))
	}
	return strings.Join(lines, "\n")
}

// Validate checks referential integrity, id uniqueness and entity types.
func Validate(kg *KnowledgeGraph) ValidationReport {
	var report ValidationReport

	ids := make(map[string]int, len(kg.Entities))
	for _, e := range kg.Entities {
		ids[e.ID]++
		if ids[e.ID] == 2 {
			report.DuplicateIDs = append(report.DuplicateIDs, e.ID)
		}
		if !e.Type.IsCanonical() {
			report.InvalidTypes = append(report.InvalidTypes, InvalidType{EntityID: e.ID, Type: e.Type})
		}
	}

	for i, r := range kg.Relationships {
		_, hasSource := ids[r.Source]
		_, hasTarget := ids[r.Target]
		if hasSource && hasTarget {
			continue
		}
		report.Dangling = append(report.Dangling, DanglingRelationship{
			Index:         i,
			Relationship:  r,
			MissingSource: !hasSource,
			MissingTarget: !hasTarget,
		})
	}
	return report
}

// PruneDanglingRelationships removes relationships with an unknown endpoint
// and returns the removed ones in their original order.
func PruneDanglingRelationships(kg *KnowledgeGraph) []Relationship {
	ids := make(map[string]bool, len(kg.Entities))
	for _, e := range kg.Entities {
		ids[e.ID] = true
	}

	var dropped []Relationship
	kept := kg.Relationships[:0]
	for _, r := range kg.Relationships {
		if ids[r.Source] && ids[r.Target] {
			kept = append(kept, r)
			continue
		}
		dropped = append(dropped, r)
	}
	kg.Relationships = kept
	return dropped
}
