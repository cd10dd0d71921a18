package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"bidtab/internal/config"
	"bidtab/internal/handler"
	"bidtab/internal/llm/openai"
	"bidtab/internal/parser"
	"bidtab/internal/router"
	"bidtab/internal/service"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if err := cfg.LLM.Validate(); err != nil {
		return fmt.Errorf("llm configuration: %w", err)
	}
	configureLogging(cfg.Log)

	// Initialize the extraction pipeline
	client := openai.NewClient(&cfg.LLM)
	engine := parser.NewEngine(client)
	orch := parser.NewOrchestrator(engine)
	refiner := parser.NewRefiner(engine)
	extractionSvc := service.NewExtraction(orch, refiner, cfg.Extract)

	// Initialize handlers
	extractionH := handler.NewExtractionHandler(extractionSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(extractionH, healthH, cfg.CORS.AllowedOrigins)

	// Model calls for a full document set can run for minutes, so the write
	// timeout follows the LLM timeout rather than a typical API default.
	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// configureLogging applies the log section of the config. Plain format drops
// stdlib timestamps for PaaS log drains that stamp each line themselves, and
// any level other than debug silences gin's route dump and debug output.
func configureLogging(lc config.LogConfig) {
	if lc.Format == "plain" {
		log.SetFlags(0)
	}
	if lc.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}
}
