package filemagic

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gobeaver/filemagic/magic"
)

// Detector classifies content with a magic.Classifier and adds an optional
// result cache and label policy on top.
type Detector struct {
	classifier *magic.Classifier
	filter     *LabelFilter
	cache      Cache
	cacheTTL   time.Duration
	logger     zerolog.Logger

	watcher   *SignatureWatcher
	stopWatch context.CancelFunc
	watchDone chan struct{}
	closeOnce sync.Once
}

// DetectorOption configures a Detector.
type DetectorOption func(*Detector)

// WithClassifier sets the classifier. By default a Detector gets a fresh
// classifier with an empty custom registry.
func WithClassifier(c *magic.Classifier) DetectorOption {
	return func(d *Detector) {
		if c != nil {
			d.classifier = c
		}
	}
}

// WithLabelFilter sets the policy used by Check and DetectAllowed.
func WithLabelFilter(f *LabelFilter) DetectorOption {
	return func(d *Detector) {
		d.filter = f
	}
}

// WithCache enables result caching.
func WithCache(cache Cache, ttl time.Duration) DetectorOption {
	return func(d *Detector) {
		d.cache = cache
		d.cacheTTL = ttl
	}
}

// WithLogger sets the logger.
func WithLogger(logger zerolog.Logger) DetectorOption {
	return func(d *Detector) {
		d.logger = logger
	}
}

// NewDetector creates a Detector.
func NewDetector(opts ...DetectorOption) *Detector {
	d := &Detector{logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	if d.classifier == nil {
		d.classifier = magic.NewClassifier(magic.WithLogger(d.logger))
	}
	return d
}

// Classifier returns the underlying classifier.
func (d *Detector) Classifier() *magic.Classifier {
	return d.classifier
}

// Registry returns the custom signature registry.
func (d *Detector) Registry() *magic.Registry {
	return d.classifier.Registry()
}

// Register adds a custom signature that takes priority over the built-ins.
func (d *Detector) Register(sig magic.Signature) {
	d.classifier.Register(sig)
}

// RegisterMany adds custom signatures in order.
func (d *Detector) RegisterMany(sigs ...magic.Signature) {
	d.classifier.RegisterMany(sigs...)
}

// maxProbeSize bounds the prefix read for cached detection. When signatures
// reach further than this, inputs are classified without the cache.
const maxProbeSize = 64 << 10

// Detect returns the label for in.
func (d *Detector) Detect(in magic.Input) (string, error) {
	if d.cache == nil {
		return d.classifier.Classify(in)
	}

	custom, gen := d.Registry().View()
	span := d.classifier.SpanWith(custom)
	if span > maxProbeSize {
		res, err := d.classifier.MatchTable(in, custom)
		return res.Label, err
	}

	prefix, err := magic.ReadPrefix(in, span)
	if err != nil {
		return "", err
	}
	return d.detectPrefix(gen, custom, prefix)
}

// DetectBytes returns the label for b. A nil slice is invalid input.
func (d *Detector) DetectBytes(b []byte) (string, error) {
	if b == nil {
		return "", ErrInvalidInput
	}
	return d.Detect(magic.BytesInput(b))
}

// DetectReader returns the label for a seekable stream and leaves its
// position unchanged.
func (d *Detector) DetectReader(rs io.ReadSeeker) (string, error) {
	if d.cache == nil {
		return d.classifier.ClassifyStream(rs)
	}

	custom, gen := d.Registry().View()
	span := d.classifier.SpanWith(custom)
	if span > maxProbeSize {
		return d.classifier.ClassifyStream(rs)
	}

	prefix, err := magic.ReadStreamPrefix(rs, span)
	if err != nil {
		return "", err
	}
	return d.detectPrefix(gen, custom, prefix)
}

// DetectFile opens path and returns its label.
func (d *Detector) DetectFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	label, err := d.DetectReader(f)
	if err != nil {
		return "", fmt.Errorf("detect %s: %w", path, err)
	}
	return label, nil
}

// Check applies the label policy. Without a policy every label passes.
func (d *Detector) Check(label string) error {
	return d.filter.Check(label)
}

// DetectAllowed detects the label of in and applies the label policy.
// A rejected label is returned together with a *PolicyError.
func (d *Detector) DetectAllowed(in magic.Input) (string, error) {
	label, err := d.Detect(in)
	if err != nil {
		return "", err
	}
	if err := d.Check(label); err != nil {
		d.logger.Debug().Str("label", label).Err(err).Msg("label rejected by policy")
		return label, err
	}
	return label, nil
}

// CacheStats returns cache statistics when the cache supports them.
func (d *Detector) CacheStats() (CacheStatistics, bool) {
	if s, ok := d.cache.(CacheStats); ok {
		return s.Stats(), true
	}
	return CacheStatistics{}, false
}

// detectPrefix classifies a probe prefix through the cache. The prefix covers
// every byte any signature in custom or the built-in table can look at, so
// its label equals the label of the whole input. generation must belong to
// the same registry view as custom.
func (d *Detector) detectPrefix(generation uint64, custom *magic.Table, prefix []byte) (string, error) {
	key := probeKey(generation, prefix)
	if label, ok := d.cache.Get(key); ok {
		d.logger.Debug().Str("label", label).Msg("cache hit")
		return label, nil
	}

	res, err := d.classifier.MatchTable(magic.BytesInput(prefix), custom)
	if err != nil {
		return "", err
	}
	label := res.Label
	d.cache.Set(key, label, d.cacheTTL)
	return label, nil
}

// Watch starts a SignatureWatcher for path feeding this detector's registry.
// The file is watched and loaded once before Watch returns; reloading
// continues in the background until Close. Only one watcher per detector is supported.
func (d *Detector) Watch(path string) error {
	if d.watcher != nil {
		return fmt.Errorf("%w: already watching %s", ErrInvalidConfig, d.watcher.Path())
	}

	w := NewSignatureWatcher(path, d.Registry(), WithWatcherLogger(d.logger))
	fw, err := w.start()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	d.watcher = w
	d.stopWatch = cancel
	d.watchDone = make(chan struct{})

	go func() {
		defer close(d.watchDone)
		defer fw.Close()
		if err := w.loop(ctx, fw); err != nil {
			d.logger.Warn().Err(err).Str("path", path).Msg("signature watcher stopped")
		}
	}()
	return nil
}

// Watcher returns the active signature watcher, if any.
func (d *Detector) Watcher() *SignatureWatcher {
	return d.watcher
}

// Close stops the signature watcher, if one is running.
func (d *Detector) Close() error {
	d.closeOnce.Do(func() {
		if d.stopWatch != nil {
			d.stopWatch()
			<-d.watchDone
		}
	})
	return nil
}
