package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/schollz/progressbar/v3"

	"github.com/ma593y/seeklyzer/internal/config"
	"github.com/ma593y/seeklyzer/internal/jobs"
	"github.com/ma593y/seeklyzer/internal/seek"
	"github.com/ma593y/seeklyzer/internal/services"
)

func main() {
	cfg := config.Load()

	var inputPath, outputPath, workbookPath string
	flag.StringVar(&inputPath, "in", cfg.Dataset.Path, "Input dataset path (JSON lines)")
	flag.StringVar(&outputPath, "out", "", "Output dataset path (defaults to <in> with _plus_json suffix)")
	flag.StringVar(&workbookPath, "xlsx", "", "Workbook mirror path (defaults to the output path with .xlsx)")
	flag.Parse()

	if outputPath == "" {
		outputPath = withSuffix(inputPath, "_plus_json")
	}
	if workbookPath == "" {
		workbookPath = replaceExt(outputPath, ".xlsx")
	}

	log.Println("🚀 Starting requirement extraction...")

	records, err := jobs.LoadDataset(inputPath)
	if err != nil {
		log.Fatalf("❌ Failed to load dataset: %v", err)
	}
	log.Printf("✅ Loaded %d job records from %s\n", len(records), inputPath)

	completionService, err := services.NewCompletionService(cfg.LLM, cfg.Worker)
	if err != nil {
		log.Fatalf("❌ Failed to initialize completion client: %v", err)
	}

	extractor := services.NewBatchExtractor(
		completionService,
		cfg.Worker.Concurrency,
		cfg.Worker.RateLimit,
	)

	bar := progressbar.Default(int64(len(records)), "extracting")

	ctx := context.Background()
	succeeded, failed := extractor.ExtractAll(ctx, records, func() {
		bar.Add(1)
	})

	log.Println(strings.Repeat("=", 60))
	log.Printf("📊 Extraction summary: %d succeeded, %d failed, %d total\n", succeeded, failed, len(records))
	log.Println(strings.Repeat("=", 60))

	if err := jobs.SaveDataset(outputPath, records); err != nil {
		log.Fatalf("❌ Failed to save dataset: %v", err)
	}
	log.Printf("✅ Dataset saved to %s\n", outputPath)

	if err := seek.WriteWorkbook(workbookPath, records); err != nil {
		log.Fatalf("❌ Failed to save workbook: %v", err)
	}
	log.Printf("✅ Workbook mirror saved to %s\n", workbookPath)

	if failed > 0 {
		color.Yellow("Completed with %d failed rows; see the logs above", failed)
		os.Exit(1)
	}

	color.Green("Done: %d rows enriched", succeeded)
}

func withSuffix(path, suffix string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndexAny(path, `/\`) {
		return path[:i] + suffix + path[i:]
	}
	return path + suffix
}

func replaceExt(path, ext string) string {
	if i := strings.LastIndex(path, "."); i > strings.LastIndexAny(path, `/\`) {
		return path[:i] + ext
	}
	return path + ext
}
