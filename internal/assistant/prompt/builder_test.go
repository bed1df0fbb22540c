package prompt

import (
	"fmt"
	"testing"

	"book-assistant/internal/model"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestBuildBooksContext_FourLineBlocks(t *testing.T) {
	books := []model.BookRecord{
		{
			Title:       strPtr("Dune"),
			Authors:     []string{"Frank Herbert"},
			Description: "A desert planet.",
			Categories:  []string{"Fiction", "Classics"},
		},
		{
			Title:       strPtr("Neuromancer"),
			Authors:     []string{"William Gibson"},
			Description: "Cyberspace.",
			Categories:  []string{"Fiction"},
		},
	}

	want := "Book: Dune\n" +
		"Authors: Frank Herbert\n" +
		"Description: A desert planet.\n" +
		"Categories: Fiction, Classics\n" +
		"\n" +
		"Book: Neuromancer\n" +
		"Authors: William Gibson\n" +
		"Description: Cyberspace.\n" +
		"Categories: Fiction\n"

	assert.Equal(t, want, NewBuilder().BuildBooksContext(books))
}

func TestBuildBooksContext_EmptyFields(t *testing.T) {
	books := []model.BookRecord{{Authors: []string{}, Categories: []string{}}}

	want := "Book: \nAuthors: \nDescription: \nCategories: \n"
	assert.Equal(t, want, NewBuilder().BuildBooksContext(books))
}

func TestBuildAnalysisPrompt_EmbedsContextAndQuestion(t *testing.T) {
	b := NewBuilder()
	books := []model.BookRecord{{
		Title:      strPtr("Dune"),
		Authors:    []string{"Frank Herbert"},
		Categories: []string{"Fiction"},
	}}
	question := "Which book should I read first?"

	got := b.BuildAnalysisPrompt(books, question)
	want := fmt.Sprintf(AnalysisPromptTemplate, b.BuildBooksContext(books), question)
	assert.Equal(t, want, got)
	assert.Contains(t, got, "Question: Which book should I read first?")
	assert.Contains(t, got, "detailed analysis")
}

func TestBuildAnalysisPrompt_EmptyBookList(t *testing.T) {
	got := NewBuilder().BuildAnalysisPrompt(nil, "anything?")
	want := fmt.Sprintf(AnalysisPromptTemplate, "", "anything?")
	assert.Equal(t, want, got)
}

func TestBuildAnalysisPrompt_Deterministic(t *testing.T) {
	b := NewBuilder()
	books := []model.BookRecord{{
		Title:       strPtr("Dune"),
		Authors:     []string{"Frank Herbert"},
		Description: "A desert planet.",
		Categories:  []string{"Fiction"},
	}}

	first := b.BuildAnalysisPrompt(books, "q")
	second := b.BuildAnalysisPrompt(books, "q")
	assert.Equal(t, first, second)
}
