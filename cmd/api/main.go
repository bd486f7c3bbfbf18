package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/asr-diagnostics/lims-service/internal/auth"
	"github.com/asr-diagnostics/lims-service/internal/db"
	httpserver "github.com/asr-diagnostics/lims-service/internal/http"
	"github.com/asr-diagnostics/lims-service/internal/messaging"
	"github.com/asr-diagnostics/lims-service/internal/telemetry"
)

func main() {
	// Load .env if present; real deployments set variables directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	ctx := context.Background()

	// Initialize OpenTelemetry
	telCfg := telemetry.LoadConfig()
	provider, err := telemetry.InitProvider(ctx, telCfg)
	if err != nil {
		log.Printf("Warning: telemetry initialization failed: %v", err)
	}
	if provider != nil {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			if err := provider.Shutdown(shutdownCtx); err != nil {
				log.Printf("Warning: telemetry shutdown failed: %v", err)
			}
		}()
	}

	if _, err := telemetry.InitMetrics(); err != nil {
		log.Printf("Warning: failed to initialize custom metrics: %v", err)
	}

	// Connect to PostgreSQL
	database, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close()

	// Connect to RabbitMQ
	publisher, err := messaging.NewPublisher()
	if err != nil {
		log.Fatalf("Failed to connect to RabbitMQ: %v", err)
	}
	defer publisher.Close()

	// Set up token verification
	authCfg := auth.LoadConfig()
	jwks, err := auth.NewJWKS(authCfg.JWKSURL, 0)
	if err != nil {
		log.Fatalf("Failed to load JWKS: %v", err)
	}
	defer jwks.Close()
	verifier := auth.NewVerifier(authCfg, jwks)

	// Load role permissions
	perms, err := auth.LoadPermissions("permissions.yml")
	if err != nil {
		log.Fatalf("Failed to load permissions: %v", err)
	}

	router := httpserver.SetupRouter(database, verifier, perms, publisher)
	handler := httpserver.CORSMiddleware(router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("lims-service starting on :%s", port)
	log.Fatal(http.ListenAndServe(":"+port, handler))
}
