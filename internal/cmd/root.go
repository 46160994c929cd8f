package cmd

import (
	"context"
	"os"
	"os/signal"
	"runtime/debug"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/gobeaver/filemagic/internal/cmd/classify"
	. "github.com/gobeaver/filemagic/internal/cmd/globals"
	"github.com/gobeaver/filemagic/internal/cmd/signatures"
)

var (
	rootCmd = cobra.Command{
		Use:               "filemagic",
		Version:           "devel",
		Short:             "Identify file types from their magic numbers",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: preRun,
	}

	verbose *bool
)

func init() {
	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		rootCmd.Version = buildInfo.Main.Version
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	verbose = rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enables logging of debug level logs by the utility")
	rootCmd.PersistentFlags().StringVarP(&SignaturesFile, "signatures", "s", "", "Specifies a YAML file of custom signatures, checked before the built-in ones")

	rootCmd.AddCommand(classify.ClassifyCmd)
	rootCmd.AddCommand(signatures.SignaturesCmd)
}

func preRun(_ *cobra.Command, _ []string) error {
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		Logger.Fatal().Err(err).Msg("Utility encountered a fatal error")
	}
}
