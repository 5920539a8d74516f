package audio

import (
	"fmt"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
)

// Composite merges several audio clips into one. At any instant every child
// whose [start, end] window covers it is sampled at its local time and summed
// into a zero accumulator; the result's channel count is the maximum over
// children, and its extent is the latest child end when every child has one.
func Composite(children []*clip.Clip) (*clip.Clip, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("%w: composite needs at least one child", clip.ErrConfiguration)
	}
	channels := 0
	for _, child := range children {
		if child.Channels > channels {
			channels = child.Channels
		}
	}
	if channels == 0 {
		return nil, fmt.Errorf("%w: composite children have no channel count", clip.ErrConfiguration)
	}

	c := clip.New(func(t float64) (clip.Frame, error) {
		acc := make([]float64, channels)
		for _, child := range children {
			if !child.IsPlayingAt(t) {
				continue
			}
			row, err := FrameAt(child, t-child.Start)
			if err != nil {
				return nil, err
			}
			addInto(acc, row)
		}
		return acc, nil
	})
	c = c.WithBatchFrameFunc(func(ts []float64) (clip.Frame, error) {
		out := make([][]float64, len(ts))
		for i := range out {
			out[i] = make([]float64, channels)
		}
		for _, child := range children {
			playing := child.PlayingIn(ts)
			if playing == nil {
				continue
			}
			local := make([]float64, len(ts))
			for i, t := range ts {
				local[i] = t - child.Start
			}
			rows, err := FramesAt(child, local)
			if err != nil {
				return nil, err
			}
			for i := range ts {
				if playing[i] {
					addInto(out[i], rows[i])
				}
			}
		}
		return out, nil
	})
	c.Channels = channels

	if end, ok := latestEnd(children); ok {
		c.End = &end
		d := end
		c.Duration = &d
	}
	return c, nil
}

// Concatenate chains clips back to back: each one starts exactly when the
// previous one ends, so the result's duration is the sum of durations. The
// result's sample rate is the highest among the inputs.
func Concatenate(clips []*clip.Clip) (*clip.Clip, error) {
	if len(clips) == 0 {
		return nil, fmt.Errorf("%w: concatenate needs at least one clip", clip.ErrConfiguration)
	}
	offset := 0.0
	fps := 0.0
	shifted := make([]*clip.Clip, 0, len(clips))
	for _, c := range clips {
		if c.Duration == nil {
			return nil, fmt.Errorf("%w: concatenate needs defined durations", clip.ErrPrecondition)
		}
		sc, err := c.WithStart(offset, true)
		if err != nil {
			return nil, err
		}
		shifted = append(shifted, sc)
		offset += *c.Duration
		if c.FPS > fps {
			fps = c.FPS
		}
	}
	out, err := Composite(shifted)
	if err != nil {
		return nil, err
	}
	out.FPS = fps
	return out, nil
}

// addInto accumulates a sample row. A mono row broadcasts across every
// accumulator channel; otherwise channels add pairwise up to the shorter row.
func addInto(acc, row []float64) {
	if len(row) == 1 && len(acc) > 1 {
		for i := range acc {
			acc[i] += row[0]
		}
		return
	}
	n := len(row)
	if len(acc) < n {
		n = len(acc)
	}
	for i := 0; i < n; i++ {
		acc[i] += row[i]
	}
}

func latestEnd(children []*clip.Clip) (float64, bool) {
	end := 0.0
	for _, child := range children {
		if child.End == nil {
			return 0, false
		}
		if *child.End > end {
			end = *child.End
		}
	}
	return end, true
}
