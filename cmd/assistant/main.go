// The assistant command walks the three operations from a terminal: search
// for books, analyze them against a question, or recommend similar titles.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"book-assistant/internal/assistant"
	"book-assistant/internal/cohere"
	"book-assistant/internal/config"
	"book-assistant/internal/googlebooks"
	"book-assistant/internal/logging"
	"book-assistant/internal/model"

	"github.com/joho/godotenv"
)

func main() {
	godotenv.Load(".env.local")

	cfg, err := config.Load("config.yml")
	if err != nil {
		log.Fatalf("[FATAL] Failed to load configuration: %v", err)
	}

	logger, flush := logging.Setup(cfg.LogLevel, cfg.IsProduction())
	defer flush()

	searcher := googlebooks.NewClient(cfg.GoogleBooksAPIKey, cfg.HTTPTimeout, cfg.SearchRPS, logger)
	generator := cohere.NewClient(cfg.CohereAPIKey, cfg.CohereModel, cfg.HTTPTimeout, logger)
	asst := assistant.New(searcher, generator, logger)

	ctx := context.Background()
	args := os.Args[1:]

	switch {
	case len(args) == 0:
		runDemo(ctx, asst)
	case args[0] == "search" && len(args) >= 2:
		books, _ := asst.SearchBooks(ctx, strings.Join(args[1:], " "), 0)
		printBooks(books)
	case args[0] == "analyze" && len(args) >= 3:
		books, _ := asst.SearchBooks(ctx, args[1], 0)
		analysis, _ := asst.AnalyzeBooks(ctx, books, strings.Join(args[2:], " "))
		fmt.Println(analysis)
	case args[0] == "recommend" && len(args) >= 2:
		books, _ := asst.RecommendSimilarBooks(ctx, strings.Join(args[1:], " "), 0)
		printBooks(books)
	default:
		fmt.Fprintln(os.Stderr, "usage: assistant [search <query> | analyze <query> <question> | recommend <title>]")
		os.Exit(2)
	}
}

// runDemo exercises all three operations against a fixed example topic.
func runDemo(ctx context.Context, asst *assistant.Assistant) {
	books, _ := asst.SearchBooks(ctx, "artificial intelligence ethics", 0)

	analysis, _ := asst.AnalyzeBooks(ctx, books,
		"What are the main ethical concerns discussed in these books regarding AI?")

	recommendations, _ := asst.RecommendSimilarBooks(ctx, "Superintelligence by Nick Bostrom", 0)

	fmt.Println("Analysis:", analysis)
	fmt.Println("\nRecommended Books:")
	printBooks(recommendations)
}

func printBooks(books []model.BookRecord) {
	for _, book := range books {
		fmt.Printf("- %s by %s\n", book.TitleOrEmpty(), strings.Join(book.Authors, ", "))
	}
}
