// Package document turns input files into plain profile text.
package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
	"golang.org/x/net/html"
)

// Kind is the detected format of an input document.
type Kind string

const (
	KindPDF  Kind = "pdf"
	KindHTML Kind = "html"
	KindText Kind = "text"
)

// ErrEmpty is returned for empty input or input with no extractable text.
var ErrEmpty = errors.New("document is empty")

// Detect sniffs the document format from its leading bytes. It reports false
// for binary data it does not understand.
func Detect(data []byte) (Kind, bool) {
	switch {
	case IsPDF(data):
		return KindPDF, true
	case looksLikeHTML(data):
		return KindHTML, true
	case isProbablyText(data):
		return KindText, true
	default:
		return "", false
	}
}

// IsPDF reports whether data starts with the %PDF- magic.
func IsPDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}

// ExtractText returns the text content of data. name is only used in errors.
func ExtractText(name string, data []byte) (string, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return "", fmt.Errorf("%s: %w", name, ErrEmpty)
	}

	kind, ok := Detect(data)
	if !ok {
		return "", fmt.Errorf("%s: unsupported binary file (head=%x)", name, data[:min(len(data), 16)])
	}

	var (
		text string
		err  error
	)
	switch kind {
	case KindPDF:
		text, err = ExtractTextFromPDF(data)
	case KindHTML:
		text, err = extractHTML(data)
	default:
		text = normalizeText(string(data))
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", name, err)
	}
	if text == "" {
		return "", fmt.Errorf("%s: %w", name, ErrEmpty)
	}
	return text, nil
}

// ReadFile reads path and extracts its text.
func ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return ExtractText(path, data)
}

// ExtractTextFromPDF returns the plain text of a PDF with whitespace collapsed.
func ExtractTextFromPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return collapseWhitespace(string(b)), nil
}

// extractHTML collects the visible text of an HTML document, one block per line.
func extractHTML(data []byte) (string, error) {
	doc, err := html.Parse(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("html parse: %w", err)
	}

	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch n.Data {
			case "script", "style", "noscript", "head":
				return
			}
		}
		if n.Type == html.TextNode {
			if s := collapseWhitespace(n.Data); s != "" {
				lines = append(lines, s)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return strings.Join(lines, "\n"), nil
}

func looksLikeHTML(b []byte) bool {
	s := strings.ToLower(strings.TrimSpace(string(b[:min(len(b), 2048)])))
	if strings.HasPrefix(s, "<!doctype html") || strings.HasPrefix(s, "<html") {
		return true
	}
	return strings.Contains(s, "<html") && strings.Contains(s, "</html>")
}

func isProbablyText(b []byte) bool {
	sample := b[:min(len(b), 4096)]
	if bytes.IndexByte(sample, 0) >= 0 {
		return false
	}
	// A multi-byte rune may be cut at the sample boundary.
	for len(sample) > 0 && !utf8.Valid(sample) && len(b) > len(sample) {
		sample = sample[:len(sample)-1]
	}
	good := 0
	for _, c := range sample {
		if c == '\n' || c == '\r' || c == '\t' || (c >= 0x20 && c <= 0x7E) || c >= 0x80 {
			good++
		}
	}
	return len(sample) > 0 && float64(good)/float64(len(sample)) > 0.9
}

// normalizeText keeps line structure but trims each line and drops blank runs.
func normalizeText(s string) string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimPrefix(s, "\ufeff")
	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = collapseWhitespace(line)
		if line == "" {
			blank = true
			continue
		}
		if blank && len(out) > 0 {
			out = append(out, "")
		}
		blank = false
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func collapseWhitespace(s string) string {
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.Join(strings.Fields(s), " ")
}
