package filemagic

import (
	"encoding/binary"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/gobeaver/filemagic/magic"
)

// Fingerprint returns a 64-bit xxHash identifying a signature by its label,
// offsets and patterns. Equal signatures have equal fingerprints.
func Fingerprint(sig magic.Signature) uint64 {
	d := xxhash.New()
	writeLen(d, len(sig.Label))
	_, _ = d.WriteString(sig.Label)
	for _, s := range sig.Segments {
		writeLen(d, s.Offset)
		writeLen(d, len(s.Pattern))
		_, _ = d.Write(s.Pattern)
	}
	return d.Sum64()
}

// probeKey builds a cache key for a probe prefix classified against a given
// registry generation.
func probeKey(generation uint64, prefix []byte) string {
	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], generation)
	_, _ = d.Write(buf[:])
	writeLen(d, len(prefix))
	_, _ = d.Write(prefix)
	return "filemagic:" + strconv.FormatUint(d.Sum64(), 16)
}

func writeLen(d *xxhash.Digest, n int) {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(int64(n)))
	_, _ = d.Write(buf[:])
}
