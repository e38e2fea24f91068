package graph

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

// RepairIDs fills missing entity ids and makes duplicates unique. Missing ids
// come from a slug of the name, or a random UUID when the name has no usable
// characters. It returns the number of ids it changed.
func RepairIDs(kg *KnowledgeGraph) int {
	changed := 0
	seen := make(map[string]bool, len(kg.Entities))
	for i := range kg.Entities {
		e := &kg.Entities[i]
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = Slug(e.Name)
		}
		if id == "" {
			id = uuid.NewString()
		}
		base := id
		for n := 2; seen[id]; n++ {
			id = fmt.Sprintf("%s_%d", base, n)
		}
		seen[id] = true
		if id != e.ID {
			e.ID = id
			changed++
		}
	}
	return changed
}

// RepairReferences rewrites relationship endpoints that name an entity instead
// of its id. Models do this often. Endpoints that already match an id, or that
// match nothing, are left alone. It returns the number of endpoints rewritten.
func RepairReferences(kg *KnowledgeGraph) int {
	ids := make(map[string]bool, len(kg.Entities))
	byName := make(map[string]string, len(kg.Entities))
	for _, e := range kg.Entities {
		ids[e.ID] = true
		for _, key := range []string{strings.ToLower(strings.TrimSpace(e.Name)), Slug(e.Name)} {
			if _, taken := byName[key]; key != "" && !taken {
				byName[key] = e.ID
			}
		}
	}

	resolve := func(ref string) (string, bool) {
		if ids[ref] {
			return ref, false
		}
		for _, key := range []string{strings.ToLower(strings.TrimSpace(ref)), Slug(ref)} {
			if id, ok := byName[key]; ok {
				return id, true
			}
		}
		return ref, false
	}

	fixed := 0
	for i := range kg.Relationships {
		r := &kg.Relationships[i]
		var ok bool
		if r.Source, ok = resolve(r.Source); ok {
			fixed++
		}
		if r.Target, ok = resolve(r.Target); ok {
			fixed++
		}
	}
	return fixed
}

// Slug lowercases s and joins its letter and digit runs with underscores.
// Non-Latin letters are kept.
func Slug(s string) string {
	var b strings.Builder
	pendingSep := false
	for _, r := range strings.ToLower(s) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingSep && b.Len() > 0 {
				b.WriteByte('_')
			}
			pendingSep = false
			b.WriteRune(r)
			continue
		}
		pendingSep = true
	}
	return b.String()
}
