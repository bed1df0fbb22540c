package prompt

import (
	"fmt"
	"strings"

	"book-assistant/internal/model"
)

// Builder constructs prompts for the generation service. Construction is
// pure: the same records and question always produce the same prompt string.
type Builder struct{}

// NewBuilder creates a new prompt builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// BuildBooksContext renders each record as a fixed four-line block and joins
// the blocks in input order. Each block carries a trailing newline, so joined
// blocks are separated by a blank line.
func (b *Builder) BuildBooksContext(books []model.BookRecord) string {
	blocks := make([]string, 0, len(books))
	for _, book := range books {
		blocks = append(blocks, fmt.Sprintf("Book: %s\nAuthors: %s\nDescription: %s\nCategories: %s\n",
			book.TitleOrEmpty(),
			strings.Join(book.Authors, ", "),
			book.Description,
			strings.Join(book.Categories, ", ")))
	}
	return strings.Join(blocks, "\n")
}

// BuildAnalysisPrompt embeds the books context and the user question into the
// analysis template. An empty book list yields an empty context block, not a
// short-circuit.
func (b *Builder) BuildAnalysisPrompt(books []model.BookRecord, question string) string {
	return fmt.Sprintf(AnalysisPromptTemplate, b.BuildBooksContext(books), question)
}
