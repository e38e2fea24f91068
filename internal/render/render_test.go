package render

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"resumegraph/internal/graph"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func renderDoc(t *testing.T, r *Renderer, kg *graph.KnowledgeGraph) (*html.Node, string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, kg))
	doc, err := html.Parse(strings.NewReader(buf.String()))
	require.NoError(t, err)
	return doc, buf.String()
}

func findByID(n *html.Node, id string) *html.Node {
	if n.Type == html.ElementNode {
		for _, a := range n.Attr {
			if a.Key == "id" && a.Val == id {
				return n
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findByID(c, id); found != nil {
			return found
		}
	}
	return nil
}

func collect(n *html.Node, match func(*html.Node) bool) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if match(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

func text(n *html.Node) string {
	var b strings.Builder
	for _, c := range collect(n, func(n *html.Node) bool { return n.Type == html.TextNode }) {
		b.WriteString(c.Data)
	}
	return strings.TrimSpace(b.String())
}

func hasClass(n *html.Node, class string) bool {
	for _, a := range n.Attr {
		if a.Key == "class" {
			for _, c := range strings.Fields(a.Val) {
				if c == class {
					return true
				}
			}
		}
	}
	return false
}

// graphPayload pulls the JSON assigned to graphData out of the page script.
func graphPayload(t *testing.T, doc *html.Node) payload {
	t.Helper()
	scripts := collect(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "script" && n.FirstChild != nil
	})
	require.NotEmpty(t, scripts)
	src := scripts[len(scripts)-1].FirstChild.Data

	const prefix = "const graphData = "
	start := strings.Index(src, prefix)
	require.GreaterOrEqual(t, start, 0)
	rest := src[start+len(prefix):]
	end := strings.Index(rest, ";\n")
	require.Greater(t, end, 0)

	var p payload
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(rest[:end])), &p))
	return p
}

func TestRender_DefaultGraph(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	kg := graph.DefaultKnowledgeGraph()

	doc, out := renderDoc(t, r, kg)

	assert.Contains(t, out, "https://d3js.org/d3.v7.min.js")
	assert.Equal(t, DefaultTitle, text(collect(doc, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.Data == "title"
	})[0]))
	assert.Equal(t, "5", text(findByID(doc, "nodeCount")))
	assert.Equal(t, "4", text(findByID(doc, "linkCount")))
	assert.Equal(t, "4", text(findByID(doc, "skillCount")))
	assert.Equal(t, kg.Summary, text(findByID(doc, "summary")))

	legend := collect(doc, func(n *html.Node) bool { return hasClass(n, "legend-item") })
	assert.Len(t, legend, 9)

	p := graphPayload(t, doc)
	assert.Len(t, p.Entities, 5)
	assert.Len(t, p.Relationships, 4)
	assert.Equal(t, "candidate", p.Entities[0].ID)
	assert.Equal(t, ColorMap(), p.Colors)
	assert.Contains(t, p.Types, "other")
}

func TestRender_EscapesUntrustedText(t *testing.T) {
	r, err := New(Options{Title: "Résumé <Graph>"})
	require.NoError(t, err)
	kg := &graph.KnowledgeGraph{
		Entities: []graph.Entity{{
			ID: "x", Name: "</script><script>alert(1)</script>", Type: graph.TypeSkill,
			Description: "O'Reilly & \"friends\"",
		}},
		Summary: "<b>bold</b> 数据",
	}

	doc, out := renderDoc(t, r, kg)

	assert.NotContains(t, out, "<script>alert(1)</script>")
	assert.NotContains(t, out, "<b>bold</b>")
	assert.Equal(t, "<b>bold</b> 数据", text(findByID(doc, "summary")))

	p := graphPayload(t, doc)
	require.Len(t, p.Entities, 1)
	assert.Equal(t, kg.Entities[0].Name, p.Entities[0].Name)
	assert.Equal(t, kg.Entities[0].Description, p.Entities[0].Description)
	assert.Empty(t, p.Relationships)
	assert.NotNil(t, p.Relationships)
}

func TestRender_EmptySummaryFallsBackToTitle(t *testing.T) {
	r, err := New(Options{Title: "Team Map"})
	require.NoError(t, err)

	doc, _ := renderDoc(t, r, &graph.KnowledgeGraph{Entities: []graph.Entity{{ID: "a", Type: graph.TypeTool}}})

	assert.Equal(t, "Team Map", text(findByID(doc, "summary")))
	assert.Equal(t, "0", text(findByID(doc, "skillCount")))
}

func TestRender_Nil(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	assert.Error(t, r.Render(&bytes.Buffer{}, nil))
}

func TestWriteFile_CreatesDirectory(t *testing.T) {
	r, err := New(Options{})
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "nested", "graph.html")

	require.NoError(t, r.WriteFile(path, graph.DefaultKnowledgeGraph()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "<!DOCTYPE html>"))
}

func TestColorMap(t *testing.T) {
	colors := ColorMap()
	assert.Len(t, colors, 10)
	for _, typ := range graph.CanonicalTypes() {
		assert.NotEmpty(t, colors[string(typ)], typ)
	}
	assert.Equal(t, "#0A66C2", Color(graph.TypePerson))
	assert.Equal(t, "#5A6C7D", Color("unknown"))

	colors["person"] = "#000000"
	assert.Equal(t, "#0A66C2", Color(graph.TypePerson), "ColorMap must return a copy")
}
