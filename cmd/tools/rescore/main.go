package main

import (
	"context"
	"flag"
	"log"
	"os"

	"elitehire/internal/assessment"
	"elitehire/internal/storage"
)

// rescore re-runs the scoring engine over all stored interview results and
// updates rows whose derived fields drifted, e.g. after question bank edits.
func main() {
	var dryRun bool
	var bankFile string
	flag.BoolVar(&dryRun, "dry-run", true, "If true, do not persist updates; just print changes")
	flag.StringVar(&bankFile, "bank-file", "", "Optional question bank override file (YAML)")
	flag.Parse()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is required")
	}

	bank := assessment.NewBank()
	if bankFile != "" {
		if err := bank.LoadFile(bankFile); err != nil {
			log.Fatalf("loading question bank: %v", err)
		}
	}
	engine := assessment.NewEngine(bank)

	log.Printf("Connecting to DB...")
	db, err := storage.NewDB(dbURL)
	if err != nil {
		log.Fatalf("failed to connect to db: %v", err)
	}
	defer db.Close()

	ctx := context.Background()

	rows, err := db.ListAutomatic(ctx)
	if err != nil {
		log.Fatalf("listing results: %v", err)
	}
	log.Printf("Loaded %d interview results", len(rows))

	updated := 0
	for _, row := range rows {
		if len(row.Responses) == 0 {
			continue
		}

		result := engine.Evaluate(row.Domain, row.Responses)
		if result.Score == row.Score &&
			result.Recommendation == row.Recommendation &&
			result.Summary == row.Summary {
			continue
		}

		log.Printf("%s: score %d -> %d, recommendation %q -> %q",
			row.RowKey, row.Score, result.Score, row.Recommendation, result.Recommendation)

		if dryRun {
			updated++
			continue
		}

		if err := db.UpdateAssessment(ctx, row.RowKey, result.Score, result.Recommendation, result.Summary); err != nil {
			log.Printf("update failed for %s: %v", row.RowKey, err)
			continue
		}
		updated++
	}

	if dryRun {
		log.Printf("Dry run: %d rows would change (re-run with -dry-run=false to apply)", updated)
		return
	}
	log.Printf("Done: %d rows updated", updated)
}
