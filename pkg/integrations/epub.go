package integrations

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-shiori/go-epub"
	"github.com/kerbaras/starwarspedia/pkg/data"
)

// EPubBuilder streams item details of a category into a single EPUB file.
type EPubBuilder struct {
	outputDir string
	book      *epub.Epub
	items     *data.CategoryItems
	sections  int
}

func NewEPubBuilder(outputDir string) *EPubBuilder {
	if outputDir == "" {
		outputDir, _ = os.MkdirTemp("", "starwarspedia-epub-*")
	}
	return &EPubBuilder{outputDir: outputDir}
}

func (b *EPubBuilder) OutputDir() string {
	return b.outputDir
}

// Init starts a new book titled after the category and writes its index.
func (b *EPubBuilder) Init(items *data.CategoryItems) error {
	if items == nil {
		return fmt.Errorf("items cannot be nil")
	}

	book, err := epub.NewEpub(fmt.Sprintf("Starwarspedia: %s", items.Label))
	if err != nil {
		return fmt.Errorf("failed to create EPub: %w", err)
	}
	book.SetAuthor("SWAPI")
	book.SetDescription(fmt.Sprintf("%d %s from the Star Wars API", items.Len(), strings.ToLower(items.Label)))
	book.SetLang("en")

	var index strings.Builder
	index.WriteString(fmt.Sprintf("<h1>%s</h1>\n<ul>\n", html.EscapeString(items.Label)))
	for _, item := range items.Items {
		line := html.EscapeString(item.Name)
		if item.Subtitle != "" {
			line += " <small>" + html.EscapeString(item.Subtitle) + "</small>"
		}
		index.WriteString("<li>" + line + "</li>\n")
	}
	index.WriteString("</ul>\n")
	if _, err := book.AddSection(index.String(), items.Label, "index.xhtml", ""); err != nil {
		return fmt.Errorf("failed to add index: %w", err)
	}

	b.book = book
	b.items = items
	b.sections = 0
	return nil
}

// Add appends one item as a chapter.
func (b *EPubBuilder) Add(detail *data.ItemDetail) error {
	if b.book == nil {
		return fmt.Errorf("builder not initialized")
	}
	if detail == nil {
		return fmt.Errorf("detail cannot be nil")
	}

	var body strings.Builder
	body.WriteString(fmt.Sprintf("<h1>%s</h1>\n<dl>\n", html.EscapeString(detail.Name)))
	for _, f := range detail.Fields {
		value := html.EscapeString(f.Value)
		value = strings.ReplaceAll(value, "\n", "<br/>")
		body.WriteString(fmt.Sprintf("<dt>%s</dt><dd>%s</dd>\n", html.EscapeString(f.Label), value))
	}
	body.WriteString("</dl>\n")

	filename := fmt.Sprintf("%s-%03d.xhtml", detail.Category, b.sections+1)
	if _, err := b.book.AddSection(body.String(), detail.Name, filename, ""); err != nil {
		return fmt.Errorf("failed to add section %s: %w", detail.Name, err)
	}
	b.sections++
	return nil
}

// Done writes the book and returns its path.
func (b *EPubBuilder) Done() (string, error) {
	if b.book == nil {
		return "", fmt.Errorf("builder not initialized")
	}
	if b.sections == 0 {
		return "", fmt.Errorf("no items to compile")
	}
	if err := os.MkdirAll(b.outputDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	outputPath := filepath.Join(b.outputDir, sanitizeFilename("Starwarspedia "+b.items.Label)+".epub")
	if err := b.book.Write(outputPath); err != nil {
		return "", fmt.Errorf("failed to write EPub: %w", err)
	}
	b.book = nil
	return outputPath, nil
}

// sanitizeFilename removes characters that are invalid in filenames
func sanitizeFilename(name string) string {
	invalid := []string{"/", "\\", ":", "*", "?", "\"", "<", ">", "|"}
	result := name
	for _, char := range invalid {
		result = strings.ReplaceAll(result, char, "_")
	}
	result = strings.TrimSpace(result)
	result = strings.Trim(result, ".")
	return result
}
