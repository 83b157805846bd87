package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	"github.com/influence-hq/influence/internal/auth"
	"github.com/influence-hq/influence/internal/config"
	"github.com/influence-hq/influence/internal/database"
	"github.com/influence-hq/influence/internal/handlers"
	"github.com/influence-hq/influence/internal/imagegen"
	"github.com/influence-hq/influence/internal/linkedin"
	"github.com/influence-hq/influence/internal/llm"
	"github.com/influence-hq/influence/internal/pipeline"
	"github.com/influence-hq/influence/internal/profile"
	"github.com/influence-hq/influence/internal/storage"
	"github.com/influence-hq/influence/migrations"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg := config.Load()

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().Msg("Starting Influence API")

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := migrations.Run(db.DB); err != nil {
		log.Fatal().Err(err).Msg("Failed to run migrations")
	}

	llmClient, err := llm.NewClient(cfg.CohereAPIKey, cfg.CohereModel, cfg.CohereBaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize LLM client")
	}

	imageClient := imagegen.NewClient(cfg.ImageGenEndpoint, cfg.ImageGenModel, cfg.MaxImagePrompts, cfg.ExternalTimeout)

	var archive linkedin.Archive
	if cfg.ArchiveEnabled() {
		s3Client, err := storage.NewClient(cfg.S3Endpoint, cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey, cfg.S3PublicURL)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize archive client")
		}
		archive = s3Client
	}

	publisher := linkedin.NewPublisher(cfg.LinkedInAPIBaseURL, cfg.MaxCarouselImages, cfg.ExternalTimeout, archive)
	linkedinClient := linkedin.NewClient(
		cfg.LinkedInAPIBaseURL, cfg.LinkedInOAuthBaseURL,
		cfg.LinkedInClientID, cfg.LinkedInClientSecret, cfg.LinkedInRedirectURI,
		cfg.ExternalTimeout,
	)

	orchestrator := pipeline.NewOrchestrator(llmClient, imageClient, publisher)

	profileRepo := database.NewProfileRepository(db)
	profileService := profile.NewService(linkedinClient, profileRepo, cfg.ProfileCSVPath, cfg.ProfileCacheTTL, cfg.ScrapeTimeout)

	authService := auth.NewService(db)

	h := handlers.NewHandler(authService, profileService, orchestrator, linkedinClient, db)

	r := mux.NewRouter()
	r.HandleFunc("/healthz", h.Healthz).Methods("GET")
	r.HandleFunc("/oauth/authorize", h.OAuthAuthorize).Methods("GET")
	r.HandleFunc("/oauth/callback", h.OAuthCallback).Methods("GET")

	api := r.PathPrefix("/v1").Subrouter()
	api.HandleFunc("/signup", h.Signup).Methods("POST")
	api.HandleFunc("/login", h.Login).Methods("POST")
	api.HandleFunc("/profile", h.GetProfile).Methods("GET")
	api.HandleFunc("/profile/refresh", h.RefreshProfile).Methods("POST")
	api.HandleFunc("/posts/generate", h.GeneratePost).Methods("POST")
	api.HandleFunc("/posts/publish", h.PublishPost).Methods("POST")

	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
		// No write timeout: generate waits on the LLM call, which carries none
		ReadTimeout: 15 * time.Second,
	}

	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Msg("API listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down API...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server shutdown failed")
	}
	log.Info().Msg("API stopped")
}
