package globals

import (
	"fmt"

	"github.com/gobeaver/filemagic"
	"github.com/gobeaver/filemagic/magic"
)

var (
	// SignaturesFile is the optional YAML file of custom signatures.
	SignaturesFile string
)

// NewDetector builds a detector with the custom signatures from
// SignaturesFile registered, if one was given.
func NewDetector(opts ...filemagic.DetectorOption) (*filemagic.Detector, error) {
	classifier := magic.NewClassifier(magic.WithLogger(Logger))
	d := filemagic.NewDetector(append([]filemagic.DetectorOption{
		filemagic.WithClassifier(classifier),
		filemagic.WithLogger(Logger),
	}, opts...)...)

	if SignaturesFile == "" {
		return d, nil
	}

	sigs, err := filemagic.LoadSignaturesFile(SignaturesFile)
	if err != nil {
		return nil, fmt.Errorf("load signatures: %w", err)
	}
	d.RegisterMany(sigs...)
	Logger.Debug().Str("file", SignaturesFile).Int("count", len(sigs)).Msg("Registered custom signatures")

	return d, nil
}
