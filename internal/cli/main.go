package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func Main() {
	_ = godotenv.Load() // best-effort: load .env if present

	root := &cobra.Command{
		Use:          "lazyclip",
		Short:        "Lazily cut, retime and rewrite audio clips",
		SilenceUsage: true,
	}
	root.SetOut(os.Stdout)
	root.SetErr(os.Stderr)
	root.SilenceErrors = true

	cut := &cobra.Command{
		Use:   "cut <input>",
		Short: "Cut a time range out of a media file and write it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCut(cmd, args[0])
		},
	}
	cut.Flags().StringP("out", "o", "", "Output file (required)")
	cut.Flags().String("start", "", "Range start (seconds or HH:MM:SS)")
	cut.Flags().String("end", "", "Range end (seconds or HH:MM:SS)")
	cut.Flags().Float64("speed", 0, "Playback speed factor")
	cut.Flags().Bool("reverse", false, "Play the range backwards")
	cut.Flags().Int("loop", 0, "Play the range this many times")
	cut.Flags().Float64("fade-in", 0, "Fade-in length in seconds")
	cut.Flags().Float64("fade-out", 0, "Fade-out length in seconds")
	cut.Flags().Float64("volume", 0, "Volume factor")
	cut.Flags().Float64("rate", 0, "Output sample rate")
	cut.Flags().String("codec", "", "Output audio codec")
	cut.Flags().String("bitrate", "", "Output audio bitrate, e.g. 192k")
	_ = cut.MarkFlagRequired("out")

	probe := &cobra.Command{
		Use:   "probe <input>",
		Short: "Print duration, channel count and sample rate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, args[0])
		},
	}

	tone := &cobra.Command{
		Use:   "tone",
		Short: "Generate a sine tone and write it",
		RunE:  runTone,
	}
	tone.Flags().StringP("out", "o", "", "Output file (required)")
	tone.Flags().Float64("freq", 440, "Frequency in Hz")
	tone.Flags().Float64("duration", 1, "Length in seconds")
	tone.Flags().Float64("rate", 44100, "Sample rate")
	_ = tone.MarkFlagRequired("out")

	doctor := &cobra.Command{
		Use:   "doctor",
		Short: "Check that the ffmpeg binaries are usable",
		RunE:  runDoctor,
	}

	root.AddCommand(cut, probe, tone, doctor)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
