package filemagic

import (
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gobeaver/beaver-kit/config"
	"github.com/rs/zerolog"

	"github.com/gobeaver/filemagic/magic"
)

// Global instance
var (
	defaultDetector *Detector
	defaultOnce     sync.Once
	defaultErr      error
)

// defaultCacheEntries bounds the result cache created from Config.
const defaultCacheEntries = 10000

// Builder provides a way to create Detector instances with custom prefixes
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global Detector instance using the builder's prefix
func (b *Builder) Init() error {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return err
	}
	return Init(cfg)
}

// New creates a new Detector instance using the builder's prefix
func (b *Builder) New() (*Detector, error) {
	cfg := &Config{}
	if err := config.Load(cfg, config.LoadOptions{Prefix: b.prefix}); err != nil {
		return nil, err
	}
	return New(cfg)
}

// Init initializes the global detector instance
func Init(configs ...*Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultDetector, defaultErr = New(cfg)
	})

	return defaultErr
}

// New creates a new detector instance with given config.
// The detector has its own custom registry.
func New(cfg *Config) (*Detector, error) {
	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	level, _ := zerolog.ParseLevel(cfg.LogLevel)
	logger := zerolog.New(os.Stderr).Level(level).With().Timestamp().Str("component", "filemagic").Logger()

	filter, err := NewLabelFilter(SplitPatterns(cfg.AllowedLabels), SplitPatterns(cfg.BlockedLabels))
	if err != nil {
		return nil, err
	}

	opts := []DetectorOption{
		WithLogger(logger),
		WithLabelFilter(filter),
		WithClassifier(magic.NewClassifier(
			magic.WithFallback(cfg.FallbackLabel),
			magic.WithLogger(logger),
		)),
	}
	if cfg.CacheEnabled {
		opts = append(opts, WithCache(NewMemoryCache(defaultCacheEntries), time.Duration(cfg.CacheTTLSeconds)*time.Second))
	}

	d := NewDetector(opts...)

	if cfg.SignaturesFile != "" {
		if cfg.WatchSignatures {
			err = d.Watch(cfg.SignaturesFile)
		} else {
			var sigs []magic.Signature
			sigs, err = LoadSignaturesFile(cfg.SignaturesFile)
			d.RegisterMany(sigs...)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to load signatures: %w", err)
		}
	}

	return d, nil
}

// validateConfig checks configuration validity
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("%w: config is nil", ErrInvalidConfig)
	}
	if cfg.FallbackLabel == "" {
		return fmt.Errorf("%w: fallback label is required", ErrInvalidConfig)
	}
	if cfg.CacheTTLSeconds < 0 {
		return fmt.Errorf("%w: cache TTL must not be negative", ErrInvalidConfig)
	}
	if cfg.WatchSignatures && cfg.SignaturesFile == "" {
		return fmt.Errorf("%w: watching signatures requires a signatures file", ErrInvalidConfig)
	}
	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: log level: %v", ErrInvalidConfig, err)
	}
	return nil
}

// D returns the global detector instance
func D() *Detector {
	if defaultDetector == nil {
		_ = Init()
	}
	return defaultDetector
}

// Default returns the global instance, initializing if needed with error handling
func Default() (*Detector, error) {
	if defaultDetector == nil {
		if err := Init(); err != nil {
			return nil, err
		}
	}
	if defaultDetector == nil {
		return nil, errors.New("detector not initialized")
	}
	return defaultDetector, nil
}

// NewFromEnv creates instance from environment variables (convenience constructor)
func NewFromEnv() (*Detector, error) {
	cfg, err := GetConfig()
	if err != nil {
		return nil, err
	}
	return New(cfg)
}

// InitFromEnv initializes the global instance from environment variables (convenience method)
func InitFromEnv() error {
	return Init()
}

// Reset clears the global instance (for testing)
func Reset() {
	if defaultDetector != nil {
		_ = defaultDetector.Close()
	}
	defaultDetector = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}
