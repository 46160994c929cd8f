package magic

import (
	"bytes"
	"testing"
)

func BenchmarkClassifyBytes_Builtin(b *testing.B) {
	c := NewClassifier()
	data := []byte("\x00\x00\x00\x18ftypmp42\x00\x00\x00\x00")

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.ClassifyBytes(data)
	}
}

func BenchmarkClassifyBytes_Fallback(b *testing.B) {
	c := NewClassifier()
	data := make([]byte, 512)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.ClassifyBytes(data)
	}
}

func BenchmarkClassifyStream(b *testing.B) {
	c := NewClassifier()
	r := bytes.NewReader([]byte{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A})

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = c.ClassifyStream(r)
	}
}
