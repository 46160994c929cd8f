package magic

import "sync"

// Labels produced by the built-in table.
const (
	Fallback = "application/octet-stream"

	LabelJPEG     = "image/jpeg"
	LabelPNG      = "image/png"
	LabelBMP      = "image/bmp"
	LabelGIF      = "image/gif"
	LabelIcon     = "image/x-icon"
	LabelSVG      = "image/svg+xml"
	LabelTIFF     = "image/tiff"
	LabelWebP     = "image/webp"
	LabelPDF      = "application/pdf"
	LabelZip      = "application/zip"
	LabelRar      = "application/vnd.rar"
	LabelSevenZip = "application/x-7z-compressed"
	LabelGzip     = "application/gzip"
	LabelExe      = "application/x-msdownload"
	LabelMP3      = "audio/mpeg"
	LabelWAV      = "audio/wav"
	LabelMP4      = "video/mp4"
	LabelMOV      = "video/quicktime"
	LabelAVI      = "video/x-msvideo"
	LabelWebM     = "video/webm"
	LabelFLV      = "video/x-flv"
	LabelM4V      = "video/x-m4v"
)

// Table is an immutable, ordered list of signatures. Earlier entries win.
type Table struct {
	sigs    []Signature
	maxSpan int
}

// NewTable creates a table holding copies of sigs in the given order.
func NewTable(sigs ...Signature) *Table {
	t := &Table{sigs: make([]Signature, len(sigs))}
	for i, sig := range sigs {
		t.sigs[i] = NewSignature(sig.Label, sig.Segments...)
		if span := sig.Span(); span > t.maxSpan {
			t.maxSpan = span
		}
	}
	return t
}

// Len returns the number of signatures in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.sigs)
}

// At returns the signature at position i.
func (t *Table) At(i int) Signature {
	return t.sigs[i]
}

// Signatures returns a copy of the table contents.
func (t *Table) Signatures() []Signature {
	if t == nil {
		return nil
	}
	out := make([]Signature, len(t.sigs))
	copy(out, t.sigs)
	return out
}

// MaxSpan returns the largest Span of any signature in the table.
func (t *Table) MaxSpan() int {
	if t == nil {
		return 0
	}
	return t.maxSpan
}

// builtinSignatures is ordered most specific first where formats share a prefix.
var builtinSignatures = []Signature{
	// Images
	{Label: LabelJPEG, Segments: []Segment{HexSegment(0, "FF D8 FF E0")}},
	{Label: LabelJPEG, Segments: []Segment{HexSegment(0, "FF D8 FF E1")}},
	{Label: LabelJPEG, Segments: []Segment{HexSegment(0, "FF D8 FF E8")}},
	{Label: LabelPNG, Segments: []Segment{HexSegment(0, "89 50 4E 47 0D 0A 1A 0A")}},
	{Label: LabelBMP, Segments: []Segment{HexSegment(0, "42 4D")}},
	{Label: LabelGIF, Segments: []Segment{HexSegment(0, "47 49 46 38 37 61")}}, // GIF87a
	{Label: LabelGIF, Segments: []Segment{HexSegment(0, "47 49 46 38 39 61")}}, // GIF89a
	{Label: LabelIcon, Segments: []Segment{HexSegment(0, "00 00 01 00")}},
	{Label: LabelSVG, Segments: []Segment{HexSegment(0, "3C 3F 78 6D 6C 20")}},  // "<?xml "
	{Label: LabelTIFF, Segments: []Segment{HexSegment(0, "49 49 2A 00")}},       // Little endian
	{Label: LabelTIFF, Segments: []Segment{HexSegment(0, "4D 4D 00 2A")}},       // Big endian
	{Label: LabelTIFF, Segments: []Segment{HexSegment(0, "4D 4D 00 2B")}},       // BigTIFF

	// Documents
	{Label: LabelPDF, Segments: []Segment{HexSegment(0, "25 50 44 46")}},

	// Archives
	{Label: LabelZip, Segments: []Segment{HexSegment(0, "50 4B 03 04")}},
	{Label: LabelRar, Segments: []Segment{HexSegment(0, "52 61 72 21 1A 07 00")}},    // RAR4
	{Label: LabelRar, Segments: []Segment{HexSegment(0, "52 61 72 21 1A 07 01 00")}}, // RAR5
	{Label: LabelSevenZip, Segments: []Segment{HexSegment(0, "37 7A BC AF 27 1C")}},
	{Label: LabelGzip, Segments: []Segment{HexSegment(0, "1F 8B 08")}},

	// Audio and video
	{Label: LabelMP3, Segments: []Segment{HexSegment(0, "49 44 33")}}, // ID3
	{Label: LabelMP4, Segments: []Segment{HexSegment(4, "66 74 79 70 4D 53 4E 56")}},
	{Label: LabelMP4, Segments: []Segment{HexSegment(4, "66 74 79 70 69 73 6F 6D")}},
	{Label: LabelMOV, Segments: []Segment{HexSegment(4, "66 74 79 70 71 74 20 20")}},
	{Label: LabelMOV, Segments: []Segment{HexSegment(0, "6D 6F 6F 76")}},
	// RIFF containers are told apart by the form type at offset 8
	{Label: LabelAVI, Segments: []Segment{HexSegment(0, "52 49 46 46"), HexSegment(8, "41 56 49 20 4C 49 53 54")}},
	{Label: LabelWAV, Segments: []Segment{HexSegment(0, "52 49 46 46"), HexSegment(8, "57 41 56 45 66 6D 74 20")}},
	{Label: LabelWebP, Segments: []Segment{HexSegment(0, "52 49 46 46"), HexSegment(8, "57 45 42 50")}},
	{Label: LabelWebM, Segments: []Segment{HexSegment(0, "1A 45 DF A3")}},
	{Label: LabelFLV, Segments: []Segment{HexSegment(0, "46 4C 56 01")}},
	{Label: LabelM4V, Segments: []Segment{HexSegment(4, "66 74 79 70 4D 34 56 20")}},
	{Label: LabelM4V, Segments: []Segment{HexSegment(4, "66 74 79 70 6D 70 34 32")}},

	// Executables
	{Label: LabelExe, Segments: []Segment{HexSegment(0, "4D 5A")}},
}

var (
	builtinTable     *Table
	builtinTableOnce sync.Once
)

// Builtin returns the built-in signature table.
// It is built once and never modified afterwards.
func Builtin() *Table {
	builtinTableOnce.Do(func() {
		builtinTable = NewTable(builtinSignatures...)
	})
	return builtinTable
}
