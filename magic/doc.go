// Package magic identifies content types by matching fixed-offset byte
// signatures ("magic numbers") against the start of an input.
//
// A [Signature] is a label plus one or more [Segment]s. It matches when every
// segment's pattern appears at its offset. Segments that would extend past
// the end of the input never match; short inputs are not an error.
//
// Classification checks a [Registry] of custom signatures first, in the order
// they were registered, then the built-in [Table]. The first full match wins.
// When nothing matches the result is [Fallback] ("application/octet-stream").
//
//	c := magic.NewClassifier()
//	c.Register(magic.NewSignature("application/x-custom", magic.HexSegment(0, "CA FE BA BE")))
//
//	label, err := c.ClassifyBytes(data)
//
// Streams are classified through [Classifier.ClassifyStream], which leaves
// the stream position where it found it.
package magic
