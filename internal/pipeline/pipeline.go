package pipeline

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/forPelevin/lazyclip/internal/domain/timeutil"
	"github.com/forPelevin/lazyclip/internal/ports"
	"github.com/forPelevin/lazyclip/internal/ports/adapters/ffmpeg"
	"github.com/forPelevin/lazyclip/internal/usecase"
)

type Config struct {
	Input  string
	Output string

	Start string
	End   string

	Speed   float64
	Reverse bool
	Loop    int
	FadeIn  float64
	FadeOut float64
	Volume  float64

	SampleRate float64
	Codec      string
	Bitrate    string

	FFmpegPath  string
	FFprobePath string

	Logf func(format string, args ...any)
}

func (c Config) Validate() error {
	if c.Input == "" {
		return errors.New("input is empty")
	}
	if _, err := os.Stat(c.Input); err != nil {
		return fmt.Errorf("stat input: %w", err)
	}
	if c.Output == "" {
		return errors.New("output is empty")
	}
	if c.Start != "" {
		if _, err := timeutil.Seconds(c.Start); err != nil {
			return fmt.Errorf("start: %w", err)
		}
	}
	if c.End != "" {
		if _, err := timeutil.Seconds(c.End); err != nil {
			return fmt.Errorf("end: %w", err)
		}
	}
	if c.Speed < 0 {
		return fmt.Errorf("speed must be positive")
	}
	if c.Loop < 0 {
		return fmt.Errorf("loop count must be >= 0")
	}
	if c.FadeIn < 0 || c.FadeOut < 0 {
		return fmt.Errorf("fade lengths must be >= 0")
	}
	if c.Volume < 0 {
		return fmt.Errorf("volume must be >= 0")
	}
	if c.SampleRate < 0 {
		return fmt.Errorf("sample rate must be >= 0")
	}
	return nil
}

func Run(ctx context.Context, cfg Config) error {
	logf := cfg.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	adapter := ffmpeg.New(cfg.FFmpegPath, cfg.FFprobePath)
	uc := usecase.New(usecase.Deps{
		Decoder: adapter,
		Encoder: adapter,
	})

	res, err := uc.Run(ctx, usecase.Input{
		Input:      cfg.Input,
		Output:     cfg.Output,
		Start:      cfg.Start,
		End:        cfg.End,
		Speed:      cfg.Speed,
		Reverse:    cfg.Reverse,
		Loop:       cfg.Loop,
		FadeIn:     cfg.FadeIn,
		FadeOut:    cfg.FadeOut,
		Volume:     cfg.Volume,
		SampleRate: cfg.SampleRate,
		Codec:      cfg.Codec,
		Bitrate:    cfg.Bitrate,
		Logf:       logf,
	})
	if err != nil {
		return err
	}
	logf("done: %s (%.2fs, %d ch, %.0f Hz)", cfg.Output, res.Duration, res.Channels, res.SampleRate)
	return nil
}

// ensure the adapter implements the ports
var _ ports.MediaDecoder = (*ffmpeg.Adapter)(nil)
var _ ports.MediaEncoder = (*ffmpeg.Adapter)(nil)
