package signatures

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/gobeaver/filemagic"
	. "github.com/gobeaver/filemagic/internal/cmd/globals"
	"github.com/gobeaver/filemagic/magic"
)

var (
	SignaturesCmd = &cobra.Command{
		Use:   "signatures",
		Short: "List the signatures in match order, custom ones first",
		Args:  cobra.NoArgs,
		RunE:  run,
	}

	yamlOutput *bool
)

func init() {
	yamlOutput = SignaturesCmd.Flags().Bool("yaml", false, "Print the signatures as a YAML signature file")
}

func run(cmd *cobra.Command, _ []string) error {
	detector, err := NewDetector()
	if err != nil {
		return err
	}

	classifier := detector.Classifier()
	custom := classifier.Registry().Snapshot().Signatures()
	builtin := classifier.Builtin().Signatures()

	out := cmd.OutOrStdout()
	if *yamlOutput {
		data, err := filemagic.MarshalSignatures(append(custom, builtin...))
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SOURCE\tLABEL\tSEGMENTS")
	for _, group := range []struct {
		source magic.Source
		sigs   []magic.Signature
	}{
		{magic.SourceCustom, custom},
		{magic.SourceBuiltin, builtin},
	} {
		for _, sig := range group.sigs {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", group.source, sig.Label, segmentList(sig))
		}
	}
	return tw.Flush()
}

func segmentList(sig magic.Signature) string {
	parts := make([]string, len(sig.Segments))
	for i, seg := range sig.Segments {
		parts[i] = seg.String()
	}
	return strings.Join(parts, " ")
}
