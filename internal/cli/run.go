package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/forPelevin/lazyclip/internal/config"
	"github.com/forPelevin/lazyclip/internal/domain/audio"
	"github.com/forPelevin/lazyclip/internal/pipeline"
	"github.com/forPelevin/lazyclip/internal/ports"
	"github.com/forPelevin/lazyclip/internal/ports/adapters/ffmpeg"
)

func runCut(cmd *cobra.Command, input string) error {
	out, _ := cmd.Flags().GetString("out")
	start, _ := cmd.Flags().GetString("start")
	end, _ := cmd.Flags().GetString("end")
	speed, _ := cmd.Flags().GetFloat64("speed")
	reverse, _ := cmd.Flags().GetBool("reverse")
	loop, _ := cmd.Flags().GetInt("loop")
	fadeIn, _ := cmd.Flags().GetFloat64("fade-in")
	fadeOut, _ := cmd.Flags().GetFloat64("fade-out")
	volume, _ := cmd.Flags().GetFloat64("volume")
	rate, _ := cmd.Flags().GetFloat64("rate")
	codec, _ := cmd.Flags().GetString("codec")
	bitrate, _ := cmd.Flags().GetString("bitrate")

	absIn, err := filepath.Abs(input)
	if err != nil {
		return err
	}
	bins := config.FromEnv()

	cfg := pipeline.Config{
		Input:       absIn,
		Output:      out,
		Start:       start,
		End:         end,
		Speed:       speed,
		Reverse:     reverse,
		Loop:        loop,
		FadeIn:      fadeIn,
		FadeOut:     fadeOut,
		Volume:      volume,
		SampleRate:  rate,
		Codec:       codec,
		Bitrate:     bitrate,
		FFmpegPath:  bins.FFmpegBin,
		FFprobePath: bins.FFprobeBin,
		Logf: func(format string, args ...any) {
			cmd.Printf(format+"\n", args...)
		},
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return pipeline.Run(cmd.Context(), cfg)
}

func runProbe(cmd *cobra.Command, input string) error {
	bins := config.FromEnv()
	adapter := ffmpeg.New(bins.FFmpegBin, bins.FFprobeBin)
	info, err := adapter.Probe(cmd.Context(), input)
	if err != nil {
		return err
	}
	cmd.Printf("duration: %.3fs\nchannels: %d\nsample rate: %.0f Hz\n",
		info.Duration, info.Channels, info.SampleRate)
	return nil
}

func runTone(cmd *cobra.Command, _ []string) error {
	out, _ := cmd.Flags().GetString("out")
	freq, _ := cmd.Flags().GetFloat64("freq")
	duration, _ := cmd.Flags().GetFloat64("duration")
	rate, _ := cmd.Flags().GetFloat64("rate")

	c, err := audio.Tone(freq, duration, rate)
	if err != nil {
		return err
	}
	defer c.Close()

	bins := config.FromEnv()
	adapter := ffmpeg.New(bins.FFmpegBin, bins.FFprobeBin)
	if err := adapter.WriteAudio(cmd.Context(), c, out, ports.WriteOptions{}); err != nil {
		return err
	}
	cmd.Printf("wrote %s (%.2fs sine at %.0f Hz)\n", out, duration, freq)
	return nil
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	bins, err := config.FromEnv().Resolve()
	if err != nil {
		return err
	}
	if err := config.Doctor(cmd.Context(), bins); err != nil {
		return err
	}
	cmd.Printf("ffmpeg: %s\nffprobe: %s\n", bins.FFmpegBin, bins.FFprobeBin)
	return nil
}
