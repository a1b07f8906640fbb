package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/ma593y/seeklyzer/internal/config"
	"github.com/ma593y/seeklyzer/internal/jobs"
	"github.com/ma593y/seeklyzer/internal/services"
)

func main() {
	log.Println("🚀 Starting job indexing...")

	cfg := config.Load()

	var inputPath string
	flag.StringVar(&inputPath, "in", cfg.Dataset.Path, "Input dataset path (JSON lines)")
	flag.Parse()

	completionService, err := services.NewCompletionService(cfg.LLM, cfg.Worker)
	if err != nil {
		log.Fatalf("❌ Failed to initialize completion client: %v", err)
	}

	indexService, err := services.NewJobIndexService(
		cfg.Qdrant.URL,
		cfg.Qdrant.APIKey,
		cfg.Qdrant.Collection,
	)
	if err != nil {
		log.Fatalf("❌ Failed to initialize Qdrant: %v", err)
	}

	if err := indexService.InitCollection(); err != nil {
		log.Fatalf("❌ Failed to initialize collection: %v", err)
	}

	records, err := jobs.LoadDataset(inputPath)
	if err != nil {
		log.Fatalf("❌ Failed to load dataset: %v", err)
	}
	log.Printf("✅ Loaded %d job records from %s\n", len(records), inputPath)

	ctx := context.Background()

	successCount := 0
	failCount := 0

	for i := range records {
		rec := &records[i]
		jobID := rec.JobID.String()

		if rec.JobDescription == "" {
			log.Printf("   ⚠️  Job %s has no description, skipping...", jobID)
			failCount++
			continue
		}

		embedding, err := completionService.GenerateEmbedding(ctx, rec.JobDescription)
		if err != nil {
			log.Printf("   ❌ Failed to generate embedding for job %s: %v", jobID, err)
			failCount++
			continue
		}

		if err := indexService.UpsertJob(ctx, jobID, rec.JobDescription, embedding); err != nil {
			log.Printf("   ❌ Failed to store job %s: %v", jobID, err)
			failCount++
			continue
		}

		successCount++
		if successCount%25 == 0 || i == len(records)-1 {
			log.Printf("   📊 Progress: %d/%d jobs indexed", i+1, len(records))
		}
	}

	log.Println("\n" + strings.Repeat("=", 60))
	log.Printf("📊 Indexing Summary:")
	log.Printf("   ✅ Successful: %d jobs", successCount)
	log.Printf("   ❌ Failed: %d jobs", failCount)
	log.Println(strings.Repeat("=", 60))

	if failCount > 0 {
		log.Println("⚠️  Some jobs failed to index. Please check the logs above.")
		os.Exit(1)
	}

	log.Println("✅ All jobs indexed successfully!")
}
