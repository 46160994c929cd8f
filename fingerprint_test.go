package filemagic

import (
	"strings"
	"testing"

	"github.com/gobeaver/filemagic/magic"
)

func TestFingerprint(t *testing.T) {
	a := magic.NewSignature("a/b", magic.HexSegment(0, "0102"), magic.HexSegment(4, "03"))
	same := magic.NewSignature("a/b", magic.HexSegment(0, "0102"), magic.HexSegment(4, "03"))

	if Fingerprint(a) != Fingerprint(same) {
		t.Error("equal signatures should have equal fingerprints")
	}

	different := []magic.Signature{
		magic.NewSignature("a/c", magic.HexSegment(0, "0102"), magic.HexSegment(4, "03")),
		magic.NewSignature("a/b", magic.HexSegment(1, "0102"), magic.HexSegment(4, "03")),
		magic.NewSignature("a/b", magic.HexSegment(0, "0102")),
		// Same bytes, split differently.
		magic.NewSignature("a/b", magic.HexSegment(0, "01"), magic.HexSegment(4, "0203")),
	}
	for _, sig := range different {
		if Fingerprint(sig) == Fingerprint(a) {
			t.Errorf("Fingerprint(%v) collides with %v", sig, a)
		}
	}
}

func TestProbeKey(t *testing.T) {
	prefix := []byte{0x89, 'P', 'N', 'G'}

	k := probeKey(1, prefix)
	if !strings.HasPrefix(k, "filemagic:") {
		t.Errorf("probeKey() = %q, want filemagic: prefix", k)
	}
	if k != probeKey(1, prefix) {
		t.Error("probeKey() should be deterministic")
	}
	if k == probeKey(2, prefix) {
		t.Error("probeKey() should depend on the generation")
	}
	if k == probeKey(1, prefix[:3]) {
		t.Error("probeKey() should depend on the prefix")
	}
}
