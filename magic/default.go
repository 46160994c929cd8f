package magic

import (
	"io"
	"sync"
)

var (
	defaultClassifier     *Classifier
	defaultClassifierOnce sync.Once
)

// Default returns a classifier bound to DefaultRegistry and the built-in table.
func Default() *Classifier {
	defaultClassifierOnce.Do(func() {
		defaultClassifier = NewClassifier(WithRegistry(DefaultRegistry()))
	})
	return defaultClassifier
}

// ClassifyBytes classifies b with the default classifier.
func ClassifyBytes(b []byte) (string, error) {
	return Default().ClassifyBytes(b)
}

// ClassifyStream classifies rs with the default classifier.
func ClassifyStream(rs io.ReadSeeker) (string, error) {
	return Default().ClassifyStream(rs)
}

// RegisterSignature adds sig to the default registry.
func RegisterSignature(sig Signature) {
	Default().Register(sig)
}

// RegisterSignatures adds sigs to the default registry in order.
func RegisterSignatures(sigs ...Signature) {
	Default().RegisterMany(sigs...)
}
