package magic

import (
	"bytes"
	"io"
	"reflect"

	"github.com/rs/zerolog"
)

// Source identifies which table produced a classification.
type Source int

const (
	SourceFallback Source = iota
	SourceCustom
	SourceBuiltin
)

func (s Source) String() string {
	switch s {
	case SourceCustom:
		return "custom"
	case SourceBuiltin:
		return "builtin"
	default:
		return "fallback"
	}
}

// Result describes the outcome of a classification.
type Result struct {
	// Label of the first matching signature, or the fallback label.
	Label string

	// Source is the table the matching signature came from.
	Source Source

	// Index is the position of the matching signature in its table, -1 for fallback.
	Index int
}

// Classifier matches inputs against a custom registry and then the built-in table.
type Classifier struct {
	registry *Registry
	builtin  *Table
	fallback string
	logger   zerolog.Logger
}

// Option configures a Classifier.
type Option func(*Classifier)

// WithRegistry sets the custom registry consulted before the built-in table.
func WithRegistry(r *Registry) Option {
	return func(c *Classifier) {
		if r != nil {
			c.registry = r
		}
	}
}

// WithBuiltin replaces the built-in table.
func WithBuiltin(t *Table) Option {
	return func(c *Classifier) {
		if t != nil {
			c.builtin = t
		}
	}
}

// WithFallback sets the label returned when nothing matches.
func WithFallback(label string) Option {
	return func(c *Classifier) {
		if label != "" {
			c.fallback = label
		}
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger zerolog.Logger) Option {
	return func(c *Classifier) {
		c.logger = logger
	}
}

// NewClassifier creates a Classifier. Without WithRegistry it gets its own
// empty registry.
func NewClassifier(opts ...Option) *Classifier {
	c := &Classifier{
		registry: NewRegistry(),
		builtin:  Builtin(),
		fallback: Fallback,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Registry returns the custom registry.
func (c *Classifier) Registry() *Registry {
	return c.registry
}

// Builtin returns the built-in table in use.
func (c *Classifier) Builtin() *Table {
	return c.builtin
}

// Fallback returns the label used when no signature matches.
func (c *Classifier) Fallback() string {
	return c.fallback
}

// Register appends a custom signature. See Registry.Register.
func (c *Classifier) Register(sig Signature) {
	c.RegisterMany(sig)
}

// RegisterMany appends custom signatures in order. See Registry.RegisterMany.
func (c *Classifier) RegisterMany(sigs ...Signature) {
	if len(sigs) == 0 {
		return
	}
	c.registry.RegisterMany(sigs...)
	c.logger.Debug().Int("count", len(sigs)).Int("total", c.registry.Len()).Msg("registered custom signatures")
}

// MaxSpan returns how many leading bytes of an input can influence the result
// given the current tables.
func (c *Classifier) MaxSpan() int {
	return c.SpanWith(c.registry.Snapshot())
}

// SpanWith is like MaxSpan for the given custom table.
func (c *Classifier) SpanWith(custom *Table) int {
	return max(c.builtin.MaxSpan(), custom.MaxSpan())
}

// Classify returns the label of the first signature matching in.
func (c *Classifier) Classify(in Input) (string, error) {
	res, err := c.Match(in)
	if err != nil {
		return "", err
	}
	return res.Label, nil
}

// ClassifyBytes classifies an in-memory buffer. A nil slice is invalid input;
// an empty one yields the fallback label.
func (c *Classifier) ClassifyBytes(b []byte) (string, error) {
	if b == nil {
		return "", ErrInvalidInput
	}
	return c.Classify(bytes.NewReader(b))
}

// ClassifyStream classifies a seekable stream. Offsets are measured from the
// start of the stream. The stream position is restored before returning.
func (c *Classifier) ClassifyStream(rs io.ReadSeeker) (string, error) {
	res, err := c.MatchStream(rs)
	if err != nil {
		return "", err
	}
	return res.Label, nil
}

// MatchStream is like Match for a seekable stream.
func (c *Classifier) MatchStream(rs io.ReadSeeker) (res Result, err error) {
	if isNil(rs) {
		return Result{}, ErrInvalidInput
	}

	in, restore, err := streamInput(rs)
	if err != nil {
		return Result{}, err
	}
	defer func() {
		if rerr := restore(); rerr != nil && err == nil {
			res, err = Result{}, rerr
		}
	}()

	return c.Match(in)
}

// Match checks the custom registry, then the built-in table, and reports the
// first signature whose segments all match.
func (c *Classifier) Match(in Input) (Result, error) {
	return c.MatchTable(in, c.registry.Snapshot())
}

// MatchTable is like Match but consults custom instead of the registry.
// Callers pass a table obtained from Registry.Snapshot or Registry.View to
// pin a classification to one registry state.
func (c *Classifier) MatchTable(in Input, custom *Table) (Result, error) {
	if isNil(in) {
		return Result{}, ErrInvalidInput
	}

	s := &scanner{in: in, size: in.Size()}

	idx, err := s.table(custom)
	if err != nil {
		return Result{}, err
	}
	if idx >= 0 {
		return c.result(custom.At(idx).Label, SourceCustom, idx), nil
	}

	idx, err = s.table(c.builtin)
	if err != nil {
		return Result{}, err
	}
	if idx >= 0 {
		return c.result(c.builtin.At(idx).Label, SourceBuiltin, idx), nil
	}

	return c.result(c.fallback, SourceFallback, -1), nil
}

func (c *Classifier) result(label string, source Source, index int) Result {
	c.logger.Debug().Str("label", label).Str("source", source.String()).Int("index", index).Msg("classified input")
	return Result{Label: label, Source: source, Index: index}
}

// scanner evaluates signatures against one input, reusing a read buffer.
type scanner struct {
	in   Input
	size int64
	buf  []byte
}

// table returns the index of the first matching signature in t, or -1.
func (s *scanner) table(t *Table) (int, error) {
	for i := 0; i < t.Len(); i++ {
		ok, err := s.signature(t.At(i))
		if err != nil {
			return -1, err
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}

// signature stops at the first segment that does not match.
func (s *scanner) signature(sig Signature) (bool, error) {
	if len(sig.Segments) == 0 {
		return false, nil
	}
	for _, seg := range sig.Segments {
		ok, err := s.segment(seg)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}

func (s *scanner) segment(seg Segment) (bool, error) {
	if !seg.eligible(s.size) {
		return false, nil
	}

	n := len(seg.Pattern)
	if cap(s.buf) < n {
		s.buf = make([]byte, n)
	}
	buf := s.buf[:n]

	read, err := s.in.ReadAt(buf, int64(seg.Offset))
	if read < n {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return false, &ReadError{Op: "read", Offset: int64(seg.Offset), Err: err}
	}

	return bytes.Equal(buf, seg.Pattern), nil
}

// isNil reports whether v is nil or a nil pointer held in an interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	return rv.Kind() == reflect.Pointer && rv.IsNil()
}
