package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/brenwarren/trivia-api/internal/category"
	"github.com/brenwarren/trivia-api/internal/config"
	"github.com/brenwarren/trivia-api/internal/db"
	"github.com/brenwarren/trivia-api/internal/db/repository"
	"github.com/brenwarren/trivia-api/internal/importer"
	"github.com/brenwarren/trivia-api/internal/logging"
	"github.com/brenwarren/trivia-api/internal/question"
	"github.com/brenwarren/trivia-api/internal/question/external"
)

func main() {
	source := flag.String("source", "opentdb", "Question provider: opentdb or triviaapi")
	amount := flag.Int("amount", 20, "Number of questions to fetch")
	flag.Parse()

	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load("configs/.env"); err != nil {
			log.Printf("Warning: could not load .env file: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	logger := logging.New(cfg.Name+"-importer", cfg.Env, cfg.LogLevel)

	httpClient := &http.Client{Timeout: cfg.Import.Timeout}
	var src external.Source
	switch *source {
	case "opentdb":
		src = external.NewOpenTDBClient(cfg.Import.OpenTDBURL, httpClient)
	case "triviaapi":
		src = external.NewTriviaAPIClient(cfg.Import.TriviaAPIURL, cfg.Import.TriviaAPIKey, httpClient)
	default:
		logger.Fatal().Str("source", *source).Msg("unknown source. Use: opentdb or triviaapi")
	}

	pg, err := db.Open(ctx, cfg.Postgres.ConnString())
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	defer pg.Close()

	questions := question.NewService(repository.NewQuestionRepository(pg.DB), logger)
	categories := category.NewStore(repository.NewCategoryRepository(pg.DB), nil, logger)

	report, err := importer.New(questions, categories, logger).Run(ctx, src, *amount)
	if err != nil {
		logger.Error().Err(err).Msg("import aborted")
		pg.Close()
		os.Exit(1)
	}
	if report.Imported == 0 {
		logger.Warn().Msg("nothing imported")
	}
}
