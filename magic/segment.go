package magic

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"math"
	"strings"
)

// Segment is a byte pattern that must appear at a fixed offset in the input.
type Segment struct {
	Offset  int    // Offset from start of input
	Pattern []byte // Bytes expected at Offset
}

// NewSegment creates a Segment with its own copy of pattern.
func NewSegment(offset int, pattern []byte) Segment {
	p := make([]byte, len(pattern))
	copy(p, pattern)
	return Segment{Offset: offset, Pattern: p}
}

// HexSegment creates a Segment from a hex literal such as "FF D8 FF E0".
// Whitespace between bytes is ignored. It panics on a malformed literal and
// is meant for tables declared at package level.
func HexSegment(offset int, literal string) Segment {
	p, err := ParseHex(literal)
	if err != nil {
		panic(fmt.Sprintf("magic: HexSegment(%d, %q): %v", offset, literal, err))
	}
	return Segment{Offset: offset, Pattern: p}
}

// ParseHex decodes a hex string, ignoring any whitespace.
func ParseHex(literal string) ([]byte, error) {
	compact := strings.Join(strings.Fields(literal), "")
	return hex.DecodeString(compact)
}

// End returns the offset one past the last byte of the segment, saturating
// at math.MaxInt.
func (s Segment) End() int {
	if s.Offset > math.MaxInt-len(s.Pattern) {
		return math.MaxInt
	}
	return s.Offset + len(s.Pattern)
}

// valid reports whether the segment can ever match.
func (s Segment) valid() bool {
	return s.Offset >= 0 && len(s.Pattern) > 0
}

// eligible reports whether the segment lies fully within an input of the given size.
func (s Segment) eligible(size int64) bool {
	if !s.valid() {
		return false
	}
	n := int64(len(s.Pattern))
	return n <= size && int64(s.Offset) <= size-n
}

// String renders the segment as "offset:HEX".
func (s Segment) String() string {
	return fmt.Sprintf("%d:%X", s.Offset, s.Pattern)
}

// Signature is a labelled set of segments. It matches an input only when
// every one of its segments matches.
type Signature struct {
	Label    string
	Segments []Segment
}

// NewSignature creates a Signature from a label and its segments.
func NewSignature(label string, segments ...Segment) Signature {
	segs := make([]Segment, len(segments))
	for i, s := range segments {
		segs[i] = NewSegment(s.Offset, s.Pattern)
	}
	return Signature{Label: label, Segments: segs}
}

// Span returns the number of input bytes the signature needs to be evaluated.
func (sig Signature) Span() int {
	span := 0
	for _, s := range sig.Segments {
		if end := s.End(); end > span {
			span = end
		}
	}
	return span
}

// Equal reports whether two signatures have the same label and segments.
func (sig Signature) Equal(other Signature) bool {
	if sig.Label != other.Label || len(sig.Segments) != len(other.Segments) {
		return false
	}
	for i, s := range sig.Segments {
		o := other.Segments[i]
		if s.Offset != o.Offset || !bytes.Equal(s.Pattern, o.Pattern) {
			return false
		}
	}
	return true
}

// String renders the signature as "label [offset:HEX ...]".
func (sig Signature) String() string {
	parts := make([]string, len(sig.Segments))
	for i, s := range sig.Segments {
		parts[i] = s.String()
	}
	return fmt.Sprintf("%s [%s]", sig.Label, strings.Join(parts, " "))
}
