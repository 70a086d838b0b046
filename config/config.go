package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all service configuration, read from the environment once at startup.
type Config struct {
	Port           string
	RequestLogging bool
	// ExposeErrorDetail appends the underlying error text to client error messages.
	ExposeErrorDetail bool

	YouTubeAPIKey          string
	YouTubeCredentialsFile string
	TranscriptLanguages    []string
	TranscriptTimeout      time.Duration
	HTTPClientTimeout      time.Duration

	GenAIProvider     string
	GenAIAPIKey       string
	GenAIModel        string
	CohereAPIKey      string
	CohereModel       string
	GenerationTimeout time.Duration

	DatabaseURL string
	SQLitePath  string

	RedisAddr        string
	RedisPassword    string
	RedisDB          int
	SessionKeyPrefix string
	DedupKeyPrefix   string
	DedupTTL         time.Duration

	S3Bucket       string
	S3Region       string
	S3Profile      string
	S3Prefix       string
	S3UsePathStyle bool
	S3Endpoint     string

	KafkaBrokers      []string
	KafkaLinkTopic    string
	KafkaSummaryTopic string
	KafkaGroupID      string
	KafkaRetryBackoff time.Duration
}

// Load reads the configuration from environment variables.
// Missing API keys are reported but not fatal: they surface on the first external call.
func Load() Config {
	cfg := Config{
		Port:              getEnvOrDefault("PORT", DefaultPort),
		RequestLogging:    getEnvBool("REQUEST_LOGGING", false),
		ExposeErrorDetail: getEnvBool("EXPOSE_ERROR_DETAIL", false),

		YouTubeAPIKey:          os.Getenv("YOUTUBE_API_KEY"),
		YouTubeCredentialsFile: os.Getenv("YOUTUBE_CREDENTIALS_FILE"),
		TranscriptLanguages:    getEnvList("TRANSCRIPT_LANGUAGES", DefaultTranscriptLanguages),
		TranscriptTimeout:      getEnvDuration("TRANSCRIPT_TIMEOUT", DefaultTranscriptTimeout),
		HTTPClientTimeout:      getEnvDuration("HTTP_CLIENT_TIMEOUT", DefaultHTTPClientTimeout),

		GenAIProvider:     strings.ToLower(getEnvOrDefault("GENAI_PROVIDER", ProviderGemini)),
		GenAIAPIKey:       os.Getenv("GENAI_API_KEY"),
		GenAIModel:        getEnvOrDefault("GENAI_MODEL", DefaultGeminiModel),
		CohereAPIKey:      os.Getenv("COHERE_API_KEY"),
		CohereModel:       getEnvOrDefault("COHERE_MODEL", DefaultCohereModel),
		GenerationTimeout: getEnvDuration("GENERATION_TIMEOUT", DefaultGenerationTimeout),

		DatabaseURL: os.Getenv("DATABASE_URL"),
		SQLitePath:  getEnvOrDefault("SQLITE_PATH", DefaultSQLitePath),

		RedisAddr:        getEnvOrDefault("REDIS_ADDR", DefaultRedisAddr),
		RedisPassword:    os.Getenv("REDIS_PASS"),
		RedisDB:          getEnvInt("REDIS_DB", 0),
		SessionKeyPrefix: getEnvOrDefault("SESSION_KEY_PREFIX", DefaultSessionKeyPrefix),
		DedupKeyPrefix:   getEnvOrDefault("DEDUP_KEY_PREFIX", DefaultDedupKeyPrefix),
		DedupTTL:         getEnvDuration("DEDUP_TTL", DefaultDedupTTL),

		S3Bucket:       strings.TrimSpace(os.Getenv("S3_BUCKET")),
		S3Region:       strings.TrimSpace(os.Getenv("S3_REGION")),
		S3Profile:      strings.TrimSpace(os.Getenv("S3_PROFILE")),
		S3Prefix:       strings.TrimSpace(os.Getenv("S3_PREFIX")),
		S3UsePathStyle: getEnvBool("S3_USE_PATH_STYLE", false),
		S3Endpoint:     strings.TrimSpace(os.Getenv("S3_ENDPOINT")),

		KafkaBrokers:      getEnvList("KAFKA_BOOTSTRAP_SERVERS", ""),
		KafkaLinkTopic:    getEnvOrDefault("KAFKA_LINK_TOPIC", DefaultLinkTopic),
		KafkaSummaryTopic: getEnvOrDefault("KAFKA_SUMMARY_TOPIC", DefaultSummaryTopic),
		KafkaGroupID:      getEnvOrDefault("KAFKA_GROUP_ID", DefaultGroupID),
		KafkaRetryBackoff: getEnvDuration("KAFKA_RETRY_BACKOFF", DefaultRetryBackoff),
	}

	if cfg.YouTubeAPIKey == "" {
		log.Println("Warning: YOUTUBE_API_KEY is not set; the captions API fallback will fail")
	}
	switch cfg.GenAIProvider {
	case ProviderCohere:
		if cfg.CohereAPIKey == "" {
			log.Println("Warning: COHERE_API_KEY is not set")
		}
	default:
		if cfg.GenAIAPIKey == "" {
			log.Println("Warning: GENAI_API_KEY is not set")
		}
	}

	return cfg
}

// KafkaEnabled reports whether any Kafka broker is configured.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

// Addr returns the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return defaultVal
}

// getEnvDuration accepts Go duration strings ("30s") or plain seconds ("30").
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	if d, err := time.ParseDuration(val); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(val); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	return defaultVal
}

func getEnvList(key, defaultVal string) []string {
	raw := getEnvOrDefault(key, defaultVal)
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
