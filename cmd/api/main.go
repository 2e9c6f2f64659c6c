package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iamasit07/4-in-a-row/engine/internal/config"
	"github.com/iamasit07/4-in-a-row/engine/internal/events"
	"github.com/iamasit07/4-in-a-row/engine/internal/repository/redis"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/bot"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/cleanup"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/engine"
	"github.com/iamasit07/4-in-a-row/engine/internal/service/match"
	transportHttp "github.com/iamasit07/4-in-a-row/engine/internal/transport/http"
	"github.com/iamasit07/4-in-a-row/engine/internal/transport/websocket"
	"github.com/iamasit07/4-in-a-row/engine/pkg/auth"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

func main() {
	issueToken := flag.String("issue-token", "", "print an API token for the named client and exit")
	tokenTTL := flag.Duration("token-ttl", 30*24*time.Hour, "lifetime of a token printed by -issue-token")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		if err := godotenv.Load("../.env"); err != nil {
			fmt.Fprintln(os.Stderr, "No .env file found")
		}
	}

	cfg := config.LoadConfig()
	config.SetupLogging(cfg.LogLevel, cfg.LogPretty)

	if *issueToken != "" {
		token, err := auth.GenerateAccessToken(cfg.JWTSecret, *issueToken, *tokenTTL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to issue token")
		}
		fmt.Println(token)
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 1. Optional move cache
	var cache engine.CacheRepository
	if cfg.RedisURL != "" {
		client, err := redis.Connect(ctx, cfg.RedisURL, cfg.RedisPassword)
		if err != nil {
			log.Warn().Str("component", "redis").Err(err).Msg("could not connect, running without move cache")
		} else {
			redisCache := redis.NewRedisCache(client)
			defer redisCache.Close()
			cache = redisCache
		}
	}

	// 2. Optional event stream
	var publisher events.Publisher = events.LogPublisher{}
	if len(cfg.KafkaBrokers) > 0 {
		kafka, err := events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			log.Warn().Str("component", "events").Err(err).Msg("kafka unavailable, logging match events instead")
		} else {
			publisher = kafka
		}
	}
	defer publisher.Close()

	// 3. Services
	engineService := engine.NewService(bot.NewPolicy(), cache, cfg.MoveCacheTTL, cfg.MaxSearchDepth)
	registry := match.NewRegistry()
	runner := match.NewRunner(engineService, publisher, cfg.AIMoveDelay)

	// 4. Background workers
	cleanupWorker := cleanup.NewWorker(registry, cfg.MatchRetention)
	cleanupWorker.Start(ctx)

	// 5. Handlers
	connManager := websocket.NewConnectionManager()
	wsHandler := websocket.NewHandler(ctx, connManager, registry, runner, cfg.AllowedOrigins)
	matchHandler := transportHttp.NewMatchHandler(ctx, registry, runner)
	matchHandler.Observe = connManager.Observer

	router := transportHttp.NewRouter(
		transportHttp.RouterConfig{AllowedOrigins: cfg.AllowedOrigins, JWTSecret: cfg.JWTSecret},
		transportHttp.NewEngineHandler(engineService),
		matchHandler,
		wsHandler.HandleWebSocket,
	)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Bool("auth", cfg.JWTSecret != "").Bool("cache", cache != nil).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("server is shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server exited gracefully")
}
