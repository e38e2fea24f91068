package graph

import (
	"encoding/json"
	"strings"
)

// EntityType is the category of an entity.
type EntityType string

// The canonical entity types. After normalization every entity has one of these.
const (
	TypePerson        EntityType = "person"
	TypeSkill         EntityType = "skill"
	TypeKnowledge     EntityType = "knowledge"
	TypeTool          EntityType = "tool"
	TypeQualification EntityType = "qualification"
	TypeRole          EntityType = "role"
	TypeWorkplace     EntityType = "workplace"
	TypeMethodology   EntityType = "methodology"
)

var canonicalTypes = []EntityType{
	TypePerson, TypeSkill, TypeKnowledge, TypeTool,
	TypeQualification, TypeRole, TypeWorkplace, TypeMethodology,
}

// typeSynonyms maps common model vocabulary onto canonical types.
var typeSynonyms = map[string]EntityType{
	"technology":           TypeTool,
	"software":             TypeTool,
	"platform":             TypeTool,
	"framework":            TypeTool,
	"programming_language": TypeSkill,
	"language":             TypeSkill,
	"certification":        TypeQualification,
	"degree":               TypeQualification,
	"education":            TypeQualification,
	"company":              TypeWorkplace,
	"organization":         TypeWorkplace,
	"institution":          TypeWorkplace,
	"university":           TypeWorkplace,
	"school":               TypeWorkplace,
	"position":             TypeRole,
	"job":                  TypeRole,
	"title":                TypeRole,
	"method":               TypeMethodology,
	"approach":             TypeMethodology,
	"process":              TypeMethodology,
	"expertise":            TypeKnowledge,
	"domain":               TypeKnowledge,
	"field":                TypeKnowledge,
	"specialization":       TypeKnowledge,
	"specialty":            TypeKnowledge,
	"ability":              TypeSkill,
	"competency":           TypeSkill,
	"proficiency":          TypeSkill,
}

// CanonicalTypes returns the canonical types in display order.
func CanonicalTypes() []EntityType {
	out := make([]EntityType, len(canonicalTypes))
	copy(out, canonicalTypes)
	return out
}

// IsCanonical reports whether t is one of the canonical types.
func (t EntityType) IsCanonical() bool {
	for _, c := range canonicalTypes {
		if c == t {
			return true
		}
	}
	return false
}

// ParseEntityType lowercases and trims s and reports whether it is canonical.
func ParseEntityType(s string) (EntityType, bool) {
	label := EntityType(normalizeLabel(s))
	for _, t := range canonicalTypes {
		if t == label {
			return t, true
		}
	}
	return "", false
}

// MapSynonym looks s up in the synonym table. Spaces and hyphens are treated
// as underscores, so "Programming Language" maps like "programming_language".
func MapSynonym(s string) (EntityType, bool) {
	key := strings.NewReplacer(" ", "_", "-", "_").Replace(normalizeLabel(s))
	t, ok := typeSynonyms[key]
	return t, ok
}

func normalizeLabel(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// UnmarshalJSON accepts any string; normalization happens later.
func (t *EntityType) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		// Non-string types ("type": null, numbers) are left for normalization.
		*t = ""
		return nil
	}
	*t = EntityType(s)
	return nil
}
