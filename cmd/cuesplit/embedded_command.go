package main

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"cuesplit/internal/scanner"
	"cuesplit/internal/splitplan"
	"cuesplit/internal/textenc"
)

func newEmbeddedCommand(ctx *commandContext) *cobra.Command {
	var cueFile string

	cmd := &cobra.Command{
		Use:   "embedded <audio-file>",
		Short: "Print the split plan for an audio file carrying its own CUE sheet",
		Long: "Reads the CUESHEET tag of the audio file (ffprobe, or ID3 TXXX frames for MP3)\n" +
			"and plans the split against that file. Use --cue-file to supply the sheet text\n" +
			"from a separate file instead.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := ctx.configValue()
			logger := ctx.loggerValue()

			audioPath, err := filepath.Abs(args[0])
			if err != nil {
				return fmt.Errorf("resolve audio path: %w", err)
			}

			var sheet string
			if path := strings.TrimSpace(cueFile); path != "" {
				decoded, err := textenc.New(cfg.Encoding.MinConfidence, logger).ReadFile(path)
				if err != nil {
					return err
				}
				sheet = decoded.Text
			} else {
				prober := scanner.NewEmbeddedProber(cfg.FFprobeBinary(), logger)
				text, found, err := prober.CueSheet(cmd.Context(), audioPath)
				if err != nil {
					return fmt.Errorf("read embedded cue sheet: %w", err)
				}
				if !found {
					return errors.New("no embedded cue sheet found; pass --cue-file to supply one")
				}
				sheet = text
			}

			plan, err := splitplan.NewPlanner(cfg, logger).FromEmbeddedCue(audioPath, sheet)
			if err != nil {
				return fmt.Errorf("plan %s: %w", audioPath, err)
			}
			return writePlan(cmd, ctx.outputFormat(cmd), plan)
		},
	}

	cmd.Flags().StringVar(&cueFile, "cue-file", "", "Read the sheet text from this file instead of the audio tags")
	return cmd
}
