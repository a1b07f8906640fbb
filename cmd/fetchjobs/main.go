package main

import (
	"context"
	"flag"
	"log"
	"strings"

	"github.com/fatih/color"

	"github.com/ma593y/seeklyzer/internal/config"
	"github.com/ma593y/seeklyzer/internal/jobs"
	"github.com/ma593y/seeklyzer/internal/seek"
)

func main() {
	cfg := config.Load()

	var listingsURL, datasetPath, workbookPath string
	flag.StringVar(&listingsURL, "url", "", "Listings API URL (required)")
	flag.StringVar(&datasetPath, "out", cfg.Dataset.Path, "Output dataset path (JSON lines)")
	flag.StringVar(&workbookPath, "xlsx", "", "Workbook mirror path (defaults to the dataset path with .xlsx)")
	flag.Parse()

	if listingsURL == "" {
		log.Fatal("❌ -url is required")
	}
	if workbookPath == "" {
		workbookPath = replaceExt(datasetPath, ".xlsx")
	}

	log.Println("🚀 Starting job listings fetch...")

	ctx := context.Background()
	listings, err := seek.FetchListings(ctx, listingsURL)
	if err != nil {
		log.Fatalf("❌ Failed to fetch listings: %v", err)
	}
	log.Printf("✅ Fetched %d raw listings\n", len(listings))

	records := seek.BuildDataset(listings)
	log.Printf("✅ Preprocessed into %d dataset rows (featured and duplicate listings dropped)\n", len(records))

	if err := jobs.SaveDataset(datasetPath, records); err != nil {
		log.Fatalf("❌ Failed to save dataset: %v", err)
	}
	log.Printf("✅ Dataset saved to %s\n", datasetPath)

	if err := seek.WriteWorkbook(workbookPath, records); err != nil {
		log.Fatalf("❌ Failed to save workbook: %v", err)
	}
	log.Printf("✅ Workbook mirror saved to %s\n", workbookPath)

	color.Green("Done: %d rows written", len(records))
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndexAny(path, `/\`) {
		return path[:i] + ext
	}
	return path + ext
}
