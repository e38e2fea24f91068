// Package graph models the resume knowledge graph and implements extraction,
// entity-type normalization, validation and persistence of it.
package graph

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Entity is a node of the knowledge graph.
type Entity struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        EntityType `json:"type"`
	Importance  Weight     `json:"importance"`
	Description string     `json:"description"`
	Attributes  Attributes `json:"attributes"`
}

// Relationship is a directed edge between two entity ids.
type Relationship struct {
	Source      string `json:"source"`
	Target      string `json:"target"`
	Type        string `json:"type"`
	Strength    Weight `json:"strength"`
	Description string `json:"description"`
}

// KnowledgeGraph is the entities, relationships and summary derived from one document.
type KnowledgeGraph struct {
	Entities      []Entity       `json:"entities"`
	Relationships []Relationship `json:"relationships"`
	Summary       string         `json:"summary"`
}

// fillEmpty replaces nil relationship lists and attribute maps with empty
// ones so saved and loaded graphs compare equal.
func (kg *KnowledgeGraph) fillEmpty() {
	if kg.Entities == nil {
		kg.Entities = []Entity{}
	}
	if kg.Relationships == nil {
		kg.Relationships = []Relationship{}
	}
	for i := range kg.Entities {
		if kg.Entities[i].Attributes == nil {
			kg.Entities[i].Attributes = Attributes{}
		}
	}
}

// CountByType returns the number of entities per type.
func (kg *KnowledgeGraph) CountByType() map[EntityType]int {
	counts := make(map[EntityType]int)
	for _, e := range kg.Entities {
		counts[e.Type]++
	}
	return counts
}

// Weight is a numeric score. Models sometimes emit "8.5" as a string, so
// decoding accepts a JSON number or a numeric string. Any other string
// decodes as zero, as do NaN and infinities, which JSON cannot encode.
type Weight float64

// UnmarshalJSON implements json.Unmarshaler.
func (w *Weight) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		*w = 0
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		s = strings.TrimSpace(str)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		*w = 0
		return nil
	}
	*w = Weight(f)
	return nil
}

// Attributes is an open string map. Non-string values are stringified on decode.
type Attributes map[string]string

// UnmarshalJSON implements json.Unmarshaler.
func (a *Attributes) UnmarshalJSON(data []byte) error {
	if strings.TrimSpace(string(data)) == "null" {
		*a = nil
		return nil
	}
	var raw map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("attributes must be an object: %w", err)
	}
	out := make(Attributes, len(raw))
	for k, v := range raw {
		out[k] = stringify(v)
	}
	*a = out
	return nil
}

func stringify(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	case []any:
		parts := make([]string, 0, len(t))
		for _, item := range t {
			parts = append(parts, stringify(item))
		}
		return strings.Join(parts, ", ")
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return fmt.Sprint(t)
		}
		return string(b)
	}
}
