package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"admisiones-bot/internal/config"
	"admisiones-bot/internal/infrastructure"
	webhttp "admisiones-bot/internal/interfaces/http"
	"admisiones-bot/internal/knowledge"
	"admisiones-bot/internal/usecases"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Str("service", "admisiones-bot").Logger()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("no .env file found, using process environment")
	}

	settings := config.Load()
	if settings.VerifyToken == "" {
		logger.Warn().Msg("VERIFY_TOKEN is empty, the webhook handshake will reject every request with a token")
	}

	// Knowledge document and derived strings are computed exactly once;
	// a missing or broken file degrades to the built-in defaults.
	doc, loaded := knowledge.Load(settings.KnowledgeFile)
	systemContext := knowledge.BuildSystemContext(doc)
	fallback := knowledge.FallbackReply(doc)

	aiClient := infrastructure.NewOpenAIClient(settings.OpenAIKey, settings.OpenAIModel, systemContext, logger)
	messenger := infrastructure.NewMessengerClient(settings.PageAccessToken, logger)
	seen := infrastructure.NewSeenMessages(15*time.Minute, 5*time.Minute)
	limiter := infrastructure.NewSenderLimiter(rate.Every(2*time.Second), 3)

	relay := usecases.NewRelayService(aiClient, messenger, seen, limiter, fallback, logger)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	webhttp.SetupRoutes(r, webhttp.NewHandler(relay, settings, loaded, logger))

	srv := &http.Server{
		Addr:    "0.0.0.0:" + settings.Port,
		Handler: r,
	}

	go func() {
		logger.Info().
			Str("port", settings.Port).
			Bool("knowledge_loaded", loaded).
			Str("institution", doc.Institution).
			Msg("bot listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("shutdown error")
	}
}
