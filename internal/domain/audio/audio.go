// Package audio builds sound clips on top of the clip core. An audio frame
// is one float64 sample per channel, nominally in [-1, 1]; values outside
// that range are tolerated and only clipped at the export boundary.
package audio

import (
	"fmt"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
)

// DefaultSampleRate is the fallback rate for generated sounds.
const DefaultSampleRate = 44100.0

// SampleFunc produces the sample vector at time t.
type SampleFunc func(t float64) ([]float64, error)

// New wraps fn into an audio clip of the given duration and sample rate. The
// channel count is probed from the frame at t=0.
func New(fn SampleFunc, duration, fps float64) (*clip.Clip, error) {
	probe, err := fn(0)
	if err != nil {
		return nil, fmt.Errorf("probe audio frame at t=0: %w", err)
	}
	if len(probe) == 0 {
		return nil, fmt.Errorf("%w: audio frame function produced an empty sample", clip.ErrConfiguration)
	}
	c := clip.New(func(t float64) (clip.Frame, error) {
		return fn(t)
	})
	c.Channels = len(probe)
	c.FPS = fps
	d := duration
	c.Duration = &d
	end := duration
	c.End = &end
	return c, nil
}

// FromArray returns a clip backed by a fixed sample table: sample i plays at
// time i/fps, duration is len(table)/fps, and lookups outside the table
// yield silence of the right channel shape. Both scalar and batch accessors
// are installed.
func FromArray(table [][]float64, fps float64) (*clip.Clip, error) {
	if fps <= 0 {
		return nil, fmt.Errorf("%w: array clip needs a positive sample rate", clip.ErrConfiguration)
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: array clip needs at least one sample", clip.ErrConfiguration)
	}
	channels := len(table[0])
	rowAt := func(t float64) []float64 {
		i := int(fps * t)
		if i < 0 || i >= len(table) {
			return make([]float64, channels)
		}
		return table[i]
	}
	c := clip.New(func(t float64) (clip.Frame, error) {
		return rowAt(t), nil
	})
	c = c.WithBatchFrameFunc(func(ts []float64) (clip.Frame, error) {
		rows := make([][]float64, len(ts))
		for i, t := range ts {
			rows[i] = rowAt(t)
		}
		return rows, nil
	})
	c.Channels = channels
	c.FPS = fps
	d := float64(len(table)) / fps
	c.Duration = &d
	end := d
	c.End = &end
	return c, nil
}

// FrameAt evaluates c at a single instant and coerces the frame to a sample
// vector. A bare float64 frame collapses to a mono vector.
func FrameAt(c *clip.Clip, t float64) ([]float64, error) {
	frame, err := c.GetFrame(t)
	if err != nil {
		return nil, err
	}
	return coerce(frame)
}

// FramesAt evaluates c for a batch of instants, through the clip's batch
// accessor when it has one and per instant otherwise.
func FramesAt(c *clip.Clip, ts []float64) ([][]float64, error) {
	frame, ok, err := c.GetFrameBatch(ts)
	if err != nil {
		return nil, err
	}
	if ok {
		rows, isRows := frame.([][]float64)
		if !isRows {
			return nil, fmt.Errorf("unexpected batch audio frame type %T", frame)
		}
		return rows, nil
	}
	rows := make([][]float64, len(ts))
	for i, t := range ts {
		row, err := FrameAt(c, t)
		if err != nil {
			return nil, err
		}
		rows[i] = row
	}
	return rows, nil
}

func coerce(frame clip.Frame) ([]float64, error) {
	switch f := frame.(type) {
	case []float64:
		return f, nil
	case float64:
		return []float64{f}, nil
	}
	return nil, fmt.Errorf("unexpected audio frame type %T", frame)
}
