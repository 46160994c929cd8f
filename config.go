package filemagic

import (
	"github.com/gobeaver/beaver-kit/config"
)

type Config struct {
	// Label returned when no signature matches
	FallbackLabel string `env:"FILEMAGIC_FALLBACK_LABEL,default:application/octet-stream"`

	// Custom signatures
	SignaturesFile  string `env:"FILEMAGIC_SIGNATURES_FILE"`                // YAML file, optional
	WatchSignatures bool   `env:"FILEMAGIC_WATCH_SIGNATURES,default:false"` // reload on change

	// Label policy (comma-separated glob patterns, e.g. "image/*,application/pdf")
	AllowedLabels string `env:"FILEMAGIC_ALLOWED_LABELS"`
	BlockedLabels string `env:"FILEMAGIC_BLOCKED_LABELS"`

	// Result cache
	CacheEnabled    bool `env:"FILEMAGIC_CACHE_ENABLED,default:false"`
	CacheTTLSeconds int  `env:"FILEMAGIC_CACHE_TTL_SECONDS,default:300"`

	// Logging
	LogLevel string `env:"FILEMAGIC_LOG_LEVEL,default:info"`
}

// GetConfig returns config loaded from environment
func GetConfig() (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
