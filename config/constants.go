package config

import "time"

// Server Constants
const (
	// DefaultPort is the HTTP listen port when PORT is unset
	DefaultPort = "8080"

	// ShutdownTimeout bounds graceful shutdown of the HTTP server
	ShutdownTimeout = 10 * time.Second
)

// Transcript Constants
const (
	// DefaultTranscriptLanguages is the language priority for transcripts (Spanish, then English)
	DefaultTranscriptLanguages = "es,en"

	// DefaultTranscriptTimeout bounds the whole primary+fallback resolution
	DefaultTranscriptTimeout = 30 * time.Second

	// DefaultHTTPClientTimeout is the per-request timeout of the outbound HTTP client
	DefaultHTTPClientTimeout = 15 * time.Second
)

// Generation Constants
const (
	// ProviderGemini selects the Gemini generator
	ProviderGemini = "gemini"

	// ProviderCohere selects the Cohere generator
	ProviderCohere = "cohere"

	// DefaultGeminiModel is the fixed model identifier used for summaries
	DefaultGeminiModel = "gemini-2.0-flash"

	// DefaultCohereModel is used when GENAI_PROVIDER=cohere
	DefaultCohereModel = "command-r-plus"

	// DefaultGenerationTimeout bounds a single AI call
	DefaultGenerationTimeout = 90 * time.Second
)

// Storage Constants
const (
	// DefaultSQLitePath is the local database used when DATABASE_URL is unset
	DefaultSQLitePath = "studybot.db"

	// DefaultRedisAddr is the session store address
	DefaultRedisAddr = "localhost:6379"

	// DefaultSessionKeyPrefix prefixes bearer tokens in redis
	DefaultSessionKeyPrefix = "session:"

	// DefaultDedupKeyPrefix prefixes worker claims on video ids
	DefaultDedupKeyPrefix = "summarized:"

	// DefaultDedupTTL is how long the worker skips a video it already summarized
	DefaultDedupTTL = 24 * time.Hour
)

// Kafka Constants
const (
	// DefaultLinkTopic carries LinkRequest messages for worker mode
	DefaultLinkTopic = "link-summary-requests"

	// DefaultSummaryTopic receives SummaryEvent messages
	DefaultSummaryTopic = "link-summaries"

	// DefaultGroupID is the worker consumer group
	DefaultGroupID = "studybot-worker"

	// DefaultRetryBackoff is the pause before the worker retries a failed link request
	DefaultRetryBackoff = 5 * time.Second
)
