package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Auth      AuthConfig      `yaml:"auth"`
	Review    ReviewConfig    `yaml:"review"`
	Words     WordsConfig     `yaml:"words"`
	Translate TranslateConfig `yaml:"translate"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Authorization,Content-Type"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"true"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"SERVER_HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"SERVER_PORT"             env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
	// RateLimitPerMinute caps API requests per client IP. 0 disables.
	RateLimitPerMinute int `yaml:"rate_limit_per_minute" env:"SERVER_RATE_LIMIT_PER_MINUTE" env-default:"240"`
}

// DatabaseConfig holds PostgreSQL connection settings.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"25"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"5"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
}

// AuthConfig holds Supabase token verification settings.
// The backend validates tokens issued by Supabase Auth; JWTSecret is the
// project's shared signing secret.
type AuthConfig struct {
	JWTSecret   string `yaml:"jwt_secret"   env:"AUTH_JWT_SECRET"   env-required:"true"`
	JWTIssuer   string `yaml:"jwt_issuer"   env:"AUTH_JWT_ISSUER"`
	JWTAudience string `yaml:"jwt_audience" env:"AUTH_JWT_AUDIENCE" env-default:"authenticated"`
}

// ReviewConfig holds scheduler and queue settings.
type ReviewConfig struct {
	RequestRetention  float64       `yaml:"request_retention"   env:"REVIEW_REQUEST_RETENTION"   env-default:"0.9"`
	MaxIntervalDays   int           `yaml:"max_interval_days"   env:"REVIEW_MAX_INTERVAL_DAYS"   env-default:"365"`
	// DisableFuzz turns off interval fuzzing. Inverted so the zero value
	// keeps fuzz on; cleanenv re-applies env-default over a zero-valued
	// field, which would clobber an explicit false from YAML.
	DisableFuzz       bool          `yaml:"disable_fuzz"        env:"REVIEW_DISABLE_FUZZ"        env-default:"false"`
	NewWordsPerDay    int           `yaml:"new_words_per_day"   env:"REVIEW_NEW_WORDS_PER_DAY"   env-default:"15"`
	DefaultQueueLimit int           `yaml:"default_queue_limit" env:"REVIEW_DEFAULT_QUEUE_LIMIT" env-default:"20"`
	MaxBatchSize      int           `yaml:"max_batch_size"      env:"REVIEW_MAX_BATCH_SIZE"      env-default:"10"`
	StaleSessionAfter time.Duration `yaml:"stale_session_after" env:"REVIEW_STALE_SESSION_AFTER" env-default:"2h"`
}

// WordsConfig holds word collection settings.
type WordsConfig struct {
	MaxWordsPerUser int    `yaml:"max_words_per_user" env:"WORDS_MAX_PER_USER"     env-default:"10000"`
	DefaultCategory string `yaml:"default_category"   env:"WORDS_DEFAULT_CATEGORY" env-default:"general"`
	AudioEnabled    bool   `yaml:"audio_enabled"      env:"WORDS_AUDIO_ENABLED"    env-default:"false"`
	AudioLang       string `yaml:"audio_lang"         env:"WORDS_AUDIO_LANG"       env-default:"en"`
}

// TranslateConfig holds translation provider settings. When Enabled is
// false the capture flow stores words untranslated.
type TranslateConfig struct {
	Enabled    bool   `yaml:"enabled"     env:"TRANSLATE_ENABLED"     env-default:"false"`
	BaseURL    string `yaml:"base_url"    env:"TRANSLATE_BASE_URL"`
	APIKey     string `yaml:"api_key"     env:"TRANSLATE_API_KEY"`
	SourceLang string `yaml:"source_lang" env:"TRANSLATE_SOURCE_LANG" env-default:"pt"`
	TargetLang string `yaml:"target_lang" env:"TRANSLATE_TARGET_LANG" env-default:"en"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}
