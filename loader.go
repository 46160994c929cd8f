package filemagic

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/gobeaver/filemagic/magic"
)

// signatureFile is the YAML layout of a custom signature file:
//
//	signatures:
//	  - label: application/x-custom
//	    segments:
//	      - offset: 0
//	        hex: "CA FE BA BE"
//	      - offset: 8
//	        text: "DATA"
type signatureFile struct {
	Signatures []signatureEntry `yaml:"signatures"`
}

type signatureEntry struct {
	Label    string         `yaml:"label"`
	Segments []segmentEntry `yaml:"segments"`
}

type segmentEntry struct {
	Offset int    `yaml:"offset"`
	Hex    string `yaml:"hex,omitempty"`
	Text   string `yaml:"text,omitempty"`
}

// ParseSignatures decodes signatures from YAML. Entries keep file order.
func ParseSignatures(data []byte) ([]magic.Signature, error) {
	var file signatureFile
	if err := yaml.UnmarshalStrict(data, &file); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	}

	sigs := make([]magic.Signature, 0, len(file.Signatures))
	for i, entry := range file.Signatures {
		sig, err := entry.signature()
		if err != nil {
			return nil, &SignatureError{Index: i, Label: entry.Label, Err: err}
		}
		sigs = append(sigs, sig)
	}
	return sigs, nil
}

// LoadSignatures reads and decodes a YAML signature document.
func LoadSignatures(r io.Reader) ([]magic.Signature, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read signatures: %w", err)
	}
	return ParseSignatures(data)
}

// LoadSignaturesFile reads signatures from a YAML file.
func LoadSignaturesFile(path string) ([]magic.Signature, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open signatures file: %w", err)
	}
	defer f.Close()

	sigs, err := LoadSignatures(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sigs, nil
}

// MarshalSignatures encodes signatures in the format ParseSignatures reads.
func MarshalSignatures(sigs []magic.Signature) ([]byte, error) {
	file := signatureFile{Signatures: make([]signatureEntry, len(sigs))}
	for i, sig := range sigs {
		entry := signatureEntry{Label: sig.Label, Segments: make([]segmentEntry, len(sig.Segments))}
		for j, s := range sig.Segments {
			entry.Segments[j] = segmentEntry{Offset: s.Offset, Hex: fmt.Sprintf("% X", s.Pattern)}
		}
		file.Signatures[i] = entry
	}
	return yaml.Marshal(&file)
}

func (e signatureEntry) signature() (magic.Signature, error) {
	if e.Label == "" {
		return magic.Signature{}, fmt.Errorf("%w: label is required", ErrInvalidSignature)
	}
	if len(e.Segments) == 0 {
		return magic.Signature{}, fmt.Errorf("%w: at least one segment is required", ErrInvalidSignature)
	}

	segs := make([]magic.Segment, 0, len(e.Segments))
	for j, s := range e.Segments {
		pattern, err := s.pattern()
		if err != nil {
			return magic.Signature{}, fmt.Errorf("%w: segment %d: %v", ErrInvalidSignature, j, err)
		}
		if s.Offset < 0 {
			return magic.Signature{}, fmt.Errorf("%w: segment %d: negative offset %d", ErrInvalidSignature, j, s.Offset)
		}
		segs = append(segs, magic.NewSegment(s.Offset, pattern))
	}
	return magic.NewSignature(e.Label, segs...), nil
}

func (s segmentEntry) pattern() ([]byte, error) {
	switch {
	case s.Hex != "" && s.Text != "":
		return nil, errors.New("hex and text are mutually exclusive")
	case s.Text != "":
		return []byte(s.Text), nil
	case s.Hex != "":
		return magic.ParseHex(s.Hex)
	default:
		return nil, errors.New("empty pattern")
	}
}
