package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/asr-diagnostics/lims-service/internal/billing"
	"github.com/asr-diagnostics/lims-service/internal/db"
	"github.com/asr-diagnostics/lims-service/internal/messaging"
)

func main() {
	log.Println("Bill Maintenance Job - Starting")
	log.Printf("Default review window: %d days", billing.DefaultReviewDays)

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Connect to database
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Connect to RabbitMQ so downstream consumers hear about flipped bills
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	maintenance := billing.NewMaintenanceService(database, publisher)

	// Create context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Check how many bills are past their review window
	count, err := maintenance.GetOverdueCandidatesCount(ctx)
	if err != nil {
		log.Fatalf("Failed to count overdue candidates: %v", err)
	}

	log.Printf("Found %d bills past their review window", count)

	if count == 0 {
		log.Println("No maintenance needed. Exiting.")
		os.Exit(0)
	}

	// Flip them to Due
	marked, err := maintenance.MarkOverdueBills(ctx)
	if err != nil {
		log.Fatalf("Maintenance failed: %v", err)
	}

	log.Printf("✓ Maintenance completed successfully: %d bills marked as Due", marked)
	log.Println("Bill Maintenance Job - Finished")
}
