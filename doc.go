// Package filemagic identifies file content types from their leading bytes.
//
// The matching engine lives in the [github.com/gobeaver/filemagic/magic]
// package: ordered tables of fixed-offset byte signatures, with custom
// signatures consulted before the built-in ones. This package wraps it in a
// [Detector] that adds configuration, a result cache, a label policy, and
// custom signatures loaded from a YAML file.
//
// # Basic Usage
//
//	d := filemagic.NewDetector()
//
//	label, err := d.DetectBytes(data)      // "image/png"
//	label, err = d.DetectFile("upload.bin") // reads only what signatures need
//
// Unknown content yields "application/octet-stream". The only error from
// classifying an in-memory buffer is [ErrInvalidInput] for a nil buffer.
//
// # Custom Signatures
//
// Custom signatures are checked before the built-ins, so they can override a
// built-in classification:
//
//	d.Register(magic.NewSignature("application/x-acme",
//	    magic.HexSegment(0, "41 43 4D 45"),
//	    magic.HexSegment(8, "00 01"),
//	))
//
// Or loaded from a file:
//
//	signatures:
//	  - label: application/x-acme
//	    segments:
//	      - offset: 0
//	        text: "ACME"
//	      - offset: 8
//	        hex: "00 01"
//
//	sigs, err := filemagic.LoadSignaturesFile("signatures.yaml")
//	d.RegisterMany(sigs...)
//
// [Detector.Watch] keeps loading new entries as the file changes.
//
// # Configuration
//
// A Detector can be built from environment variables:
//
//	BEAVER_FILEMAGIC_FALLBACK_LABEL=application/octet-stream
//	BEAVER_FILEMAGIC_SIGNATURES_FILE=/etc/filemagic/signatures.yaml
//	BEAVER_FILEMAGIC_WATCH_SIGNATURES=true
//	BEAVER_FILEMAGIC_ALLOWED_LABELS=image/*,application/pdf
//	BEAVER_FILEMAGIC_BLOCKED_LABELS=application/x-msdownload
//	BEAVER_FILEMAGIC_CACHE_ENABLED=true
//	BEAVER_FILEMAGIC_CACHE_TTL_SECONDS=300
//	BEAVER_FILEMAGIC_LOG_LEVEL=info
//
//	if err := filemagic.InitFromEnv(); err != nil {
//	    log.Fatal(err)
//	}
//	label, err := filemagic.D().DetectFile(path)
//
// # Label Policy
//
// [Detector.DetectAllowed] rejects labels blocked by the configured globs
// with a [*PolicyError] that matches [ErrNotAllowed]:
//
//	label, err := d.DetectAllowed(magic.BytesInput(data))
//	if filemagic.IsNotAllowed(err) {
//	    // refuse upload
//	}
package filemagic
