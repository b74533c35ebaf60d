package main

import (
	"log"
	"os"

	"academy/config"
	"academy/database"
)

// Exports every collection as CSV files (users.csv, courses.csv,
// batches.csv, settings.csv) into a target directory, so the data can
// be inspected or carried to another machine.
//
//	go run ./scripts [target-dir]
func main() {
	// Load config and open the configured store
	config.LoadConfig()
	if err := database.Connect(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	targetDir := "export"
	if len(os.Args) > 1 {
		targetDir = os.Args[1]
	}

	log.Printf("Exporting data to %s ...", targetDir)

	backend, err := database.NewCSVBackend(targetDir)
	if err != nil {
		log.Fatalf("Failed to open target directory: %v", err)
	}

	if err := database.Database.SnapshotTo(backend); err != nil {
		log.Fatalf("Export failed: %v", err)
	}

	users, courses, batches := database.Database.Counts()
	log.Printf("Exported %d users, %d courses, %d batches.", users, courses, batches)
	log.Println("Export completed successfully.")
}
