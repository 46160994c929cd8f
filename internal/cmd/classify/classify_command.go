package classify

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/gobeaver/filemagic"
	. "github.com/gobeaver/filemagic/internal/cmd/globals"
)

var (
	ClassifyCmd = &cobra.Command{
		Use:   "classify FILE...",
		Short: "Print the content type of each file",
		Args:  cobra.MinimumNArgs(1),
		RunE:  run,
	}

	allowed    *[]string
	blocked    *[]string
	jsonOutput *bool
)

func init() {
	allowed = ClassifyCmd.Flags().StringSlice("allow", nil, "Only accept labels matching these glob patterns (e.g. image/*)")
	blocked = ClassifyCmd.Flags().StringSlice("block", nil, "Reject labels matching these glob patterns")
	jsonOutput = ClassifyCmd.Flags().Bool("json", false, "Print one JSON object per file instead of tab separated text")
}

// Result is the outcome for a single file.
type Result struct {
	Path     string `json:"path"`
	Label    string `json:"label,omitempty"`
	Category string `json:"category,omitempty"`
	Error    string `json:"error,omitempty"`
}

func run(cmd *cobra.Command, args []string) error {
	filter, err := filemagic.NewLabelFilter(*allowed, *blocked)
	if err != nil {
		return err
	}

	detector, err := NewDetector(filemagic.WithLabelFilter(filter))
	if err != nil {
		return err
	}

	results := make([]Result, len(args))
	group, gCtx := errgroup.WithContext(cmd.Context())
	group.SetLimit(runtime.GOMAXPROCS(0))

	for i, path := range args {
		group.Go(func() error {
			if err := gCtx.Err(); err != nil {
				return err
			}
			results[i] = classifyFile(detector, path)
			return nil
		})
	}

	if err := group.Wait(); err != nil {
		return err
	}

	failed := 0
	out := cmd.OutOrStdout()
	enc := json.NewEncoder(out)
	for _, res := range results {
		if res.Error != "" {
			failed++
		}

		if *jsonOutput {
			if err := enc.Encode(res); err != nil {
				return err
			}
			continue
		}

		if res.Error != "" {
			fmt.Fprintf(out, "%s\terror: %s\n", res.Path, res.Error)
		} else {
			fmt.Fprintf(out, "%s\t%s\n", res.Path, res.Label)
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files could not be classified or were rejected", failed, len(results))
	}
	return nil
}

func classifyFile(d *filemagic.Detector, path string) Result {
	fLogger := Logger.With().Str("file", path).Logger()
	res := Result{Path: path}

	label, err := d.DetectFile(path)
	if err != nil {
		fLogger.Error().Err(err).Msg("Failed to classify file")
		res.Error = err.Error()
		return res
	}

	res.Label = label
	res.Category = filemagic.Category(label)
	fLogger.Debug().Str("label", label).Msg("Classified file")

	if err := d.Check(label); err != nil {
		fLogger.Warn().Str("label", label).Msg("File rejected by label policy")
		res.Error = err.Error()
	}
	return res
}
