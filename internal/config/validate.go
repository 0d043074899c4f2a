package config

import "fmt"

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if c.Server.RateLimitPerMinute < 0 {
		return fmt.Errorf("server.rate_limit_per_minute must be >= 0 (got %d)", c.Server.RateLimitPerMinute)
	}

	if len(c.Auth.JWTSecret) < 32 {
		return fmt.Errorf("auth.jwt_secret must be at least 32 characters (got %d)", len(c.Auth.JWTSecret))
	}

	if err := c.Review.validate(); err != nil {
		return fmt.Errorf("review: %w", err)
	}

	if c.Words.MaxWordsPerUser <= 0 {
		return fmt.Errorf("words.max_words_per_user must be > 0 (got %d)", c.Words.MaxWordsPerUser)
	}

	if c.Translate.Enabled && c.Translate.BaseURL == "" {
		return fmt.Errorf("translate.base_url is required when translation is enabled")
	}

	return nil
}

func (r *ReviewConfig) validate() error {
	if r.RequestRetention <= 0 || r.RequestRetention >= 1 {
		return fmt.Errorf("request_retention must be in (0, 1) (got %v)", r.RequestRetention)
	}
	if r.MaxIntervalDays <= 0 {
		return fmt.Errorf("max_interval_days must be > 0 (got %d)", r.MaxIntervalDays)
	}
	if r.NewWordsPerDay < 0 {
		return fmt.Errorf("new_words_per_day must be >= 0 (got %d)", r.NewWordsPerDay)
	}
	if r.MaxBatchSize <= 0 {
		return fmt.Errorf("max_batch_size must be > 0 (got %d)", r.MaxBatchSize)
	}
	if r.StaleSessionAfter <= 0 {
		return fmt.Errorf("stale_session_after must be > 0 (got %v)", r.StaleSessionAfter)
	}
	return nil
}
