package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"studybot/api"
	"studybot/archive"
	"studybot/auth"
	"studybot/config"
	"studybot/deduplication"
	"studybot/events"
	"studybot/generation"
	"studybot/store"
	"studybot/summary"
	"studybot/transcript"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	worker := flag.Bool("worker", false, "consume link requests from Kafka instead of serving HTTP")
	flag.Parse()

	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	httpClient := &http.Client{Timeout: cfg.HTTPClientTimeout}

	generator, err := generation.New(ctx, generation.Config{
		Provider:     cfg.GenAIProvider,
		GeminiAPIKey: cfg.GenAIAPIKey,
		GeminiModel:  cfg.GenAIModel,
		CohereAPIKey: cfg.CohereAPIKey,
		CohereModel:  cfg.CohereModel,
		HTTPClient:   &http.Client{Timeout: cfg.GenerationTimeout},
	})
	if err != nil {
		log.Fatalf("❌ Failed to initialize generator: %v", err)
	}
	defer generator.Close()
	if cfg.GenAIProvider == config.ProviderGemini && cfg.GenAIAPIKey == "" {
		log.Println("⚠️  GENAI_API_KEY not set, every summary will fail")
	}
	log.Printf("✅ Generator ready (provider: %s, model: %s)", cfg.GenAIProvider, generator.Model())

	resolver := initResolver(ctx, cfg, httpClient)
	log.Printf("📜 Transcript sources: %v (languages %v)", resolver.Sources(), cfg.TranscriptLanguages)

	opts := summary.Options{
		TranscriptTimeout: cfg.TranscriptTimeout,
		GenerationTimeout: cfg.GenerationTimeout,
	}
	if a := initArchive(ctx, cfg); a != nil {
		opts.Archive = a
	}
	if p := initProducer(cfg); p != nil {
		defer p.Close()
		opts.Publisher = p
	}
	svc := summary.NewService(resolver, generator, opts)

	if *worker {
		if !cfg.KafkaEnabled() {
			log.Fatal("❌ -worker requires KAFKA_BOOTSTRAP_SERVERS")
		}
		wcfg := events.WorkerConfig{
			Brokers:      cfg.KafkaBrokers,
			Topic:        cfg.KafkaLinkTopic,
			GroupID:      cfg.KafkaGroupID,
			RetryBackoff: cfg.KafkaRetryBackoff,
		}
		if guard := initGuard(ctx, cfg); guard != nil {
			defer guard.Close()
			wcfg.Guard = guard
		}
		err := events.RunWorker(ctx, wcfg, svc)
		if err != nil {
			log.Fatalf("❌ Worker error: %v", err)
		}
		return
	}

	st, err := store.Open(ctx, store.Config{DatabaseURL: cfg.DatabaseURL, SQLitePath: cfg.SQLitePath})
	if err != nil {
		log.Fatalf("❌ Failed to open store: %v", err)
	}
	defer st.Close()

	deps := api.Deps{
		Summarizer:        svc,
		Store:             st,
		RequestLogging:    cfg.RequestLogging,
		ExposeErrorDetail: cfg.ExposeErrorDetail,
	}
	if sessions := initSessions(ctx, cfg); sessions != nil {
		defer sessions.Close()
		deps.Sessions = sessions
	}

	srv := &http.Server{Addr: cfg.Addr(), Handler: api.NewRouter(deps)}
	go func() {
		log.Printf("Starting API server on %s", srv.Addr)
		log.Println("API endpoints available:")
		log.Println("  POST /link/")
		log.Println("  GET  /user/me/")
		log.Println("  POST /user/users/")
		log.Println("  POST /user/emails/")
		log.Println("  GET  /health")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("🛑 Shutting down API server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("❌ Shutdown error: %v", err)
	}
}

// initResolver builds the watch-page source followed by the captions API fallback.
func initResolver(ctx context.Context, cfg config.Config, httpClient *http.Client) *transcript.Resolver {
	sources := []transcript.Source{
		transcript.NewWatchPageSource(transcript.WatchPageConfig{
			HTTPClient: httpClient,
			Languages:  cfg.TranscriptLanguages,
		}),
	}

	yt, err := transcript.NewYouTubeAPI(ctx, transcript.YouTubeAPIConfig{
		APIKey:          cfg.YouTubeAPIKey,
		CredentialsFile: cfg.YouTubeCredentialsFile,
		HTTPClient:      httpClient,
	})
	if err != nil {
		log.Printf("Warning: YouTube captions API disabled: %v", err)
	} else {
		sources = append(sources, transcript.NewCaptionsSource(yt, cfg.TranscriptLanguages))
	}
	return transcript.NewResolver(sources...)
}

// initArchive returns the S3 summary archive if S3_BUCKET is set.
func initArchive(ctx context.Context, cfg config.Config) *archive.Archive {
	if cfg.S3Bucket == "" {
		log.Printf("S3 not configured; summaries will not be archived")
		return nil
	}
	client, err := archive.NewS3(ctx, archive.S3Config{
		Region:       cfg.S3Region,
		Profile:      cfg.S3Profile,
		UsePathStyle: cfg.S3UsePathStyle,
		Endpoint:     cfg.S3Endpoint,
	})
	if err != nil {
		log.Printf("Warning: failed to init S3 client: %v (archive disabled)", err)
		return nil
	}
	log.Printf("🗄️  Archiving summaries to s3://%s/%s", cfg.S3Bucket, cfg.S3Prefix)
	return archive.New(client, cfg.S3Bucket, cfg.S3Prefix)
}

// initProducer returns the summary event producer if Kafka is configured.
func initProducer(cfg config.Config) *events.Producer {
	if !cfg.KafkaEnabled() {
		return nil
	}
	p, err := events.NewProducer(cfg.KafkaBrokers, cfg.KafkaSummaryTopic)
	if err != nil {
		log.Printf("Warning: %v (summary events disabled)", err)
		return nil
	}
	log.Printf("📣 Publishing summary events to %s", cfg.KafkaSummaryTopic)
	return p
}

// initSessions connects the redis session store used by /user/me/.
func initSessions(ctx context.Context, cfg config.Config) *auth.RedisSessions {
	sessions, err := auth.NewRedisSessions(ctx, auth.SessionConfig{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		KeyPrefix: cfg.SessionKeyPrefix,
	})
	if err != nil {
		log.Printf("Warning: %v (/user/me/ will reject all tokens)", err)
		return nil
	}
	return sessions
}

// initGuard connects the redis claim store that lets the worker skip repeat videos.
func initGuard(ctx context.Context, cfg config.Config) *deduplication.RedisGuard {
	guard, err := deduplication.NewRedisGuard(ctx, deduplication.GuardConfig{
		Addr:      cfg.RedisAddr,
		Password:  cfg.RedisPassword,
		DB:        cfg.RedisDB,
		KeyPrefix: cfg.DedupKeyPrefix,
		TTL:       cfg.DedupTTL,
	})
	if err != nil {
		log.Printf("Warning: %v (duplicate link requests will be summarized again)", err)
		return nil
	}
	log.Printf("🔁 Skipping repeat videos for %s", cfg.DedupTTL)
	return guard
}
