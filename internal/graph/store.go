package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// Save writes kg as indented JSON. HTML characters and non-ASCII text are
// written as-is.
func Save(w io.Writer, kg *KnowledgeGraph) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(normalizedForOutput(kg)); err != nil {
		return fmt.Errorf("failed to encode knowledge graph: %w", err)
	}
	return nil
}

// SaveFile writes kg to path in a single write.
func SaveFile(path string, kg *KnowledgeGraph) error {
	var buf bytes.Buffer
	if err := Save(&buf, kg); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// Load decodes a knowledge graph written by Save.
func Load(r io.Reader) (*KnowledgeGraph, error) {
	var kg KnowledgeGraph
	if err := json.NewDecoder(r).Decode(&kg); err != nil {
		return nil, fmt.Errorf("failed to decode knowledge graph: %w", err)
	}
	kg.fillEmpty()
	return &kg, nil
}

// LoadFile reads a knowledge graph from path.
func LoadFile(path string) (*KnowledgeGraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// DataPath returns the JSON sidecar path for an HTML output path.
func DataPath(htmlPath string) string {
	if base, ok := strings.CutSuffix(htmlPath, ".html"); ok {
		return base + "_data.json"
	}
	return htmlPath + "_data.json"
}

// normalizedForOutput writes empty lists as [] and missing attributes as {}
// without touching kg.
func normalizedForOutput(kg *KnowledgeGraph) *KnowledgeGraph {
	out := *kg
	out.Entities = append([]Entity(nil), kg.Entities...)
	out.fillEmpty()
	return &out
}
