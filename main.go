package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"go.uber.org/zap"

	"github.com/harryz-code/network-school-fitness-sub000/internal/config"
	"github.com/harryz-code/network-school-fitness-sub000/internal/enrich"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger, err := cfg.NewLogger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := newDBPool(ctx, cfg.DBURL)
	if err != nil {
		logger.Fatal("database unavailable", zap.Error(err))
	}
	defer pool.Close()
	logger.Info("DB pool ready")

	enricher, closeEnricher := newEnricher(ctx, cfg, logger)
	defer closeEnricher()

	if cfg.Production() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(requestLogger(logger), gin.Recovery())
	router.SetTrustedProxies(nil)

	h := newHandler(newPGStore(pool, logger), logger, enricher, cfg.WeeklyGoalMinutes)
	h.registerRoutes(router)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type", "X-Request-ID"},
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           c.Handler(router),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.HTTPAddr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("forced shutdown", zap.Error(err))
	}
}

// newEnricher builds the tips enricher selected by ENRICH_PROVIDER, with a
// Redis cache when one is reachable. A nil enricher disables generated tips.
func newEnricher(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*enrich.Enricher, func()) {
	closers := []func(){}
	closeAll := func() {
		for _, f := range closers {
			f()
		}
	}

	var provider enrich.Provider
	switch cfg.EnrichProvider {
	case config.ProviderOpenAI:
		provider = enrich.NewOpenAIProvider(cfg.OpenAIBaseURL, cfg.OpenAIAPIKey, cfg.OpenAIModel)
	case config.ProviderGemini:
		gp, err := enrich.NewGeminiProvider(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini provider init failed, tips enrichment disabled", zap.Error(err))
			return nil, closeAll
		}
		closers = append(closers, func() { gp.Close() })
		provider = gp
	default:
		logger.Info("tips enrichment disabled")
		return nil, closeAll
	}

	var cache *enrich.TipsCache
	if cfg.CacheEnabled() {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			logger.Warn("redis ping failed, tips cache disabled", zap.Error(err))
			rdb.Close()
		} else {
			cache = enrich.NewTipsCache(rdb, cfg.TipsCacheTTL)
			closers = append(closers, func() { rdb.Close() })
		}
		cancel()
	}

	logger.Info("tips enrichment enabled",
		zap.String("provider", cfg.EnrichProvider),
		zap.Bool("cache", cache != nil),
		zap.Duration("timeout", cfg.EnrichTimeout))
	return enrich.New(provider, cache, cfg.EnrichTimeout, logger.Named("enrich")), closeAll
}
