package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"call-radar-go/internal/config"
	"call-radar-go/internal/logger"
	"call-radar-go/internal/pipeline"
)

func main() {
	_ = godotenv.Load() // loads .env

	log := logger.New()

	root := &cobra.Command{
		Use:           "pipeline",
		Short:         "Batch call transcription, sentiment and radar pipeline",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	var typeLabel string
	runCmd := &cobra.Command{
		Use:   "run [audio-file]",
		Short: "Transcribe an audio file and produce sentiment radar data",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			audio := cfg.Paths.SampleAudio
			if len(args) > 0 {
				audio = args[0]
			}
			return pipeline.New(cfg).Run(context.Background(), typeLabel, audio)
		},
	}
	runCmd.Flags().StringVar(&typeLabel, "type", "combined", "label prefixing the raw STT artifact")

	updateCmd := &cobra.Command{
		Use:   "update <transcript-file>",
		Short: "Reprocess a hand-corrected transcript without re-running STT",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return pipeline.New(cfg).Update(context.Background(), args[0])
		},
	}

	root.AddCommand(runCmd, updateCmd)

	if err := root.Execute(); err != nil {
		log.WithError(err).Error("pipeline failed")
		os.Exit(1)
	}
}
