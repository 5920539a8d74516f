package usecase

import (
	"context"
	"fmt"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
	"github.com/forPelevin/lazyclip/internal/domain/fx"
	"github.com/forPelevin/lazyclip/internal/ports"
)

type Deps struct {
	Decoder ports.MediaDecoder
	Encoder ports.MediaEncoder
}

type Usecase struct{ d Deps }

func New(d Deps) Usecase { return Usecase{d: d} }

type Input struct {
	Input  string
	Output string

	// Start and End are time expressions ("12", "1:30", "00:01:30,5");
	// empty means the corresponding edge of the source.
	Start string
	End   string

	Speed   float64 // 0 or 1 = unchanged
	Reverse bool
	Loop    int     // 0 or 1 = no looping
	FadeIn  float64 // seconds, 0 = none
	FadeOut float64
	Volume  float64 // 0 = unchanged

	SampleRate float64 // 0 = source rate
	Codec      string
	Bitrate    string

	Logf func(format string, args ...any)
}

type Result struct {
	Duration   float64
	Channels   int
	SampleRate float64
}

// Run opens the input, cuts and transforms it lazily, and writes the result.
// No frame is decoded until the encoder starts pulling.
func (u Usecase) Run(ctx context.Context, in Input) (Result, error) {
	logf := in.Logf
	if logf == nil {
		logf = func(string, ...any) {}
	}

	c, err := u.d.Decoder.OpenAudio(ctx, in.Input)
	if err != nil {
		return Result{}, err
	}
	defer c.Close()
	logf("opened %s (%.2fs, %d ch, %.0f Hz)", in.Input, deref(c.Duration), c.Channels, c.FPS)

	c, err = cutRange(c, in.Start, in.End)
	if err != nil {
		return Result{}, err
	}

	var effects []clip.Effect
	if in.Speed > 0 && in.Speed != 1 {
		effects = append(effects, fx.Speed(in.Speed))
	}
	if in.Reverse {
		effects = append(effects, fx.TimeMirror())
	}
	if in.Loop > 1 {
		effects = append(effects, fx.AudioLoop(in.Loop))
	}
	if in.Volume > 0 && in.Volume != 1 {
		effects = append(effects, fx.Volume(in.Volume))
	}
	if in.FadeIn > 0 {
		effects = append(effects, fx.AudioFadeIn(in.FadeIn))
	}
	if in.FadeOut > 0 {
		effects = append(effects, fx.AudioFadeOut(in.FadeOut))
	}
	c, err = c.FX(effects...)
	if err != nil {
		return Result{}, fmt.Errorf("apply effects: %w", err)
	}
	logf("timeline ready: %.2fs, %d effect(s)", deref(c.Duration), len(effects))

	opts := ports.WriteOptions{FPS: in.SampleRate, Codec: in.Codec, Bitrate: in.Bitrate}
	if err := u.d.Encoder.WriteAudio(ctx, c, in.Output, opts); err != nil {
		return Result{}, err
	}
	logf("wrote %s", in.Output)

	rate := in.SampleRate
	if rate == 0 {
		rate = c.FPS
	}
	return Result{Duration: deref(c.Duration), Channels: c.Channels, SampleRate: rate}, nil
}

// cutRange bounds the clip to [start, end] and rebases its frame function so
// the cut plays from local time zero. Subclip alone keeps the source time
// origin; embedding or exporting needs the shift as well.
func cutRange(c *clip.Clip, start, end string) (*clip.Clip, error) {
	if start == "" && end == "" {
		return c, nil
	}
	var startArg, endArg any
	if start != "" {
		startArg = start
	}
	if end != "" {
		endArg = end
	}
	sub, err := c.Subclip(startArg, endArg)
	if err != nil {
		return nil, fmt.Errorf("cut range: %w", err)
	}
	offset := sub.Start
	shifted := sub.TransformTime(func(t float64) float64 {
		return t + offset
	}, clip.MaskAndAudio, true)
	return shifted.WithStart(0, true)
}

func deref(p *float64) float64 {
	if p == nil {
		return 0
	}
	return *p
}
