package main

import (
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/primes-services/primes-intent/internal/assembler"
	"github.com/primes-services/primes-intent/internal/config"
	"github.com/primes-services/primes-intent/internal/conversation"
	"github.com/primes-services/primes-intent/internal/enhancer"
	"github.com/primes-services/primes-intent/internal/llm"
	"github.com/primes-services/primes-intent/internal/logger"
	"github.com/primes-services/primes-intent/internal/nlp"
	"github.com/primes-services/primes-intent/internal/orchestrator"
	"github.com/primes-services/primes-intent/internal/regions"
	"github.com/primes-services/primes-intent/internal/transport"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zapLogger := logger.New(cfg.LogLevel, cfg.LogFormat)
	defer func() { _ = zapLogger.Sync() }()
	log := logger.NewZapAdapter(zapLogger)

	log.Info("starting service", map[string]interface{}{
		"service": cfg.ServiceName,
		"natsUrl": cfg.NatsURL,
		"model":   cfg.OpenAIModel,
	})

	if cfg.OpenAIAPIKey == "" {
		zapLogger.Fatal("OPENAI_API_KEY environment variable is required")
	}

	redisStore, err := conversation.NewRedisStore(cfg.RedisURL, cfg.SessionTTL)
	if err != nil {
		zapLogger.Fatal("failed to connect to Redis", zap.Error(err))
	}
	defer redisStore.Close()
	log.Info("redis connected", map[string]interface{}{"url": cfg.RedisURL})

	store := conversation.NewStore(redisStore, log)
	analyzer := nlp.NewAnalyzer(nlp.DefaultTaxonomy(), log)
	factsProvider := regions.NewProvider()
	asm := assembler.New(factsProvider, cfg.AssistantName, cfg.AssistantLang, cfg.DefaultRegion)
	enh := enhancer.New(cfg.RenovateBaseURL, cfg.ContactEmail)

	provider, err := llm.NewOpenAIProvider(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.OpenAITimeout)
	if err != nil {
		zapLogger.Fatal("failed to create completion provider", zap.Error(err))
	}

	orch := orchestrator.New(store, analyzer, asm, enh, provider, llm.Params{
		Model:       cfg.OpenAIModel,
		MaxTokens:   cfg.OpenAIMaxTokens,
		Temperature: cfg.OpenAITemperature,
	}, log)

	natsTransport, err := transport.NewNATSTransport(cfg, orch, log)
	if err != nil {
		zapLogger.Fatal("failed to initialize NATS transport", zap.Error(err))
	}
	defer natsTransport.Close()

	if err := natsTransport.Start(); err != nil {
		zapLogger.Fatal("failed to start NATS transport", zap.Error(err))
	}

	// Prometheus scrape endpoint.
	go func() {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.Handler())
		if err := http.ListenAndServe(cfg.MetricsAddr, mux); err != nil {
			log.Error("metrics server stopped", map[string]interface{}{"error": err.Error()})
		}
	}()

	log.Info("service running", map[string]interface{}{
		"chatSubject":    cfg.NatsChatSubject,
		"resetSubject":   cfg.NatsResetSubject,
		"historySubject": cfg.NatsHistorySubject,
		"metricsAddr":    cfg.MetricsAddr,
	})

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan

	log.Info("shutting down", map[string]interface{}{"signal": sig.String()})
}
