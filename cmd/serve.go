package cmd

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"

	"github.com/feedbackloop/interviewd/internal/adapter/llm"
	"github.com/feedbackloop/interviewd/internal/blob"
	"github.com/feedbackloop/interviewd/internal/config"
	"github.com/feedbackloop/interviewd/internal/policy"
	"github.com/feedbackloop/interviewd/internal/repository"
	"github.com/feedbackloop/interviewd/internal/service"
	"github.com/feedbackloop/interviewd/internal/transport/http/adminapi"
	v1 "github.com/feedbackloop/interviewd/internal/transport/http/v1"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the participant and admin HTTP servers",
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// openStore selects the storage backend at process start; callers never
// branch on the mode again.
func openStore(cfg *config.Config) (blob.Store, error) {
	switch cfg.StorageMode {
	case config.StorageGCS:
		return blob.NewGCSStore(cfg.BucketName, cfg.GCSToken, ""), nil
	case config.StorageSQLite:
		return blob.NewSQLiteStore(cfg.SQLiteDSN)
	default:
		return blob.NewLocalStore(cfg.DataDir)
	}
}

func serve() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log.Printf("Starting interviewd...")
	log.Printf("Participant HTTP port: %d", cfg.HTTPPort)
	log.Printf("Admin HTTP port: %d", cfg.AdminPort)
	log.Printf("Storage mode: %s", cfg.StorageMode)
	log.Printf("Base URL: %s", cfg.BaseURL)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	llmClient := llm.FromConfig(cfg.LLMBaseURL, cfg.LLMAPIKey, cfg.LLMModel)
	if cfg.LLMAPIKey == "" {
		log.Printf("LLM_API_KEY not set, using mock agent runtime")
	}

	ctx := context.Background()
	policyEngine, err := policy.NewEngine(ctx, policy.DefaultPolicy)
	if err != nil {
		return fmt.Errorf("failed to initialize policy engine: %w", err)
	}

	svc := service.New(
		repository.NewScenarios(store),
		repository.NewTranscripts(store),
		llmClient,
		cfg,
	)

	participantServer := echo.New()
	participantServer.HideBanner = true
	participantServer.Use(middleware.Logger())
	participantServer.Use(middleware.Recover())
	participantServer.Use(middleware.CORS())
	v1.NewHandler(svc).RegisterRoutes(participantServer)

	adminServer := echo.New()
	adminServer.HideBanner = true
	adminServer.Use(middleware.Logger())
	adminServer.Use(middleware.Recover())
	adminapi.NewHandler(svc, policyEngine, cfg.AdminToken).RegisterRoutes(adminServer)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		if err := participantServer.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start participant server: %v", err)
		}
	}()
	go func() {
		addr := fmt.Sprintf(":%d", cfg.AdminPort)
		if err := adminServer.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start admin server: %v", err)
		}
	}()

	log.Printf("Participant API started on port %d", cfg.HTTPPort)
	log.Printf("Admin API started on port %d", cfg.AdminPort)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down interviewd...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := participantServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown participant server gracefully: %v", err)
	}
	if err := adminServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("Failed to shutdown admin server gracefully: %v", err)
	}

	log.Println("interviewd stopped")
	return nil
}
