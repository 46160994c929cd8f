package filemagic

import (
	"context"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/gobeaver/filemagic/magic"
)

// SignatureWatcher keeps a registry in sync with a YAML signature file.
//
// Registries only grow, so reloading never removes anything: signatures
// already loaded from the file (same label, offsets and patterns) are skipped
// and only new entries are appended, in file order.
type SignatureWatcher struct {
	path     string
	registry *magic.Registry
	logger   zerolog.Logger
	onLoad   func(added int, err error)

	mu   sync.Mutex
	seen map[uint64]struct{}

	ready     chan struct{}
	readyOnce sync.Once
}

// WatcherOption configures a SignatureWatcher.
type WatcherOption func(*SignatureWatcher)

// WithWatcherLogger sets the logger.
func WithWatcherLogger(logger zerolog.Logger) WatcherOption {
	return func(w *SignatureWatcher) {
		w.logger = logger
	}
}

// WithOnLoad registers a function called after every load attempt.
func WithOnLoad(fn func(added int, err error)) WatcherOption {
	return func(w *SignatureWatcher) {
		w.onLoad = fn
	}
}

// NewSignatureWatcher creates a watcher for the file at path feeding registry.
func NewSignatureWatcher(path string, registry *magic.Registry, opts ...WatcherOption) *SignatureWatcher {
	w := &SignatureWatcher{
		path:     filepath.Clean(path),
		registry: registry,
		logger:   zerolog.Nop(),
		seen:     make(map[uint64]struct{}),
		ready:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Path returns the watched file.
func (w *SignatureWatcher) Path() string {
	return w.path
}

// Ready is closed once the initial load has succeeded and changes are being
// watched.
func (w *SignatureWatcher) Ready() <-chan struct{} {
	return w.ready
}

// Load reads the file and registers signatures not loaded before.
// It returns how many were added.
func (w *SignatureWatcher) Load() (int, error) {
	sigs, err := LoadSignaturesFile(w.path)
	if err != nil {
		w.notify(0, err)
		return 0, err
	}

	w.mu.Lock()
	fresh := make([]magic.Signature, 0, len(sigs))
	for _, sig := range sigs {
		fp := Fingerprint(sig)
		if _, ok := w.seen[fp]; ok {
			continue
		}
		w.seen[fp] = struct{}{}
		fresh = append(fresh, sig)
	}
	w.registry.RegisterMany(fresh...)
	w.mu.Unlock()

	w.logger.Info().Str("path", w.path).Int("added", len(fresh)).Int("total", w.registry.Len()).Msg("loaded signatures")
	w.notify(len(fresh), nil)
	return len(fresh), nil
}

// Run loads the file, then reloads it whenever it is written, created or
// renamed into place, until ctx is cancelled. The initial load must succeed;
// later failures are logged and the previous signatures stay in effect.
func (w *SignatureWatcher) Run(ctx context.Context) error {
	fw, err := w.start()
	if err != nil {
		return err
	}
	defer fw.Close()

	return w.loop(ctx, fw)
}

// start watches the file's directory and then performs the initial load, so
// no change made after the load can go unnoticed. Ready is closed on success.
func (w *SignatureWatcher) start() (*fsnotify.Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create watcher: %w", err)
	}

	// Watch the directory: editors often replace the file instead of writing it.
	if err := fw.Add(filepath.Dir(w.path)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch %s: %w", w.path, err)
	}

	if _, err := w.Load(); err != nil {
		fw.Close()
		return nil, err
	}

	w.readyOnce.Do(func() { close(w.ready) })
	return fw, nil
}

func (w *SignatureWatcher) loop(ctx context.Context, fw *fsnotify.Watcher) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug().Str("path", w.path).Str("op", event.Op.String()).Msg("signature file changed")
			if _, err := w.Load(); err != nil {
				w.logger.Warn().Err(err).Str("path", w.path).Msg("failed to reload signatures")
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn().Err(err).Str("path", w.path).Msg("watcher error")
		}
	}
}

func (w *SignatureWatcher) notify(added int, err error) {
	if w.onLoad != nil {
		w.onLoad(added, err)
	}
}
