package fx

import (
	"fmt"
	"math"

	"github.com/forPelevin/lazyclip/internal/domain/audio"
	"github.com/forPelevin/lazyclip/internal/domain/clip"
)

// Volume scales every sample by factor. Applied to a video clip it cascades
// to the audio child; the video frames pass through only if they are sample
// vectors, so use it on audio clips or through the audio cascade.
func Volume(factor float64) clip.Effect {
	return envelope(func(float64) float64 { return factor })
}

// AudioFadeIn ramps the volume linearly from silence over the first d
// seconds.
func AudioFadeIn(d float64) clip.Effect {
	return func(c *clip.Clip) (*clip.Clip, error) {
		if d <= 0 {
			return nil, fmt.Errorf("%w: fade-in needs a positive length, got %v", clip.ErrConfiguration, d)
		}
		return envelope(func(t float64) float64 {
			return math.Min(1, t/d)
		})(c)
	}
}

// AudioFadeOut ramps the volume linearly to silence over the last d seconds.
// The clip duration must be defined.
func AudioFadeOut(d float64) clip.Effect {
	return func(c *clip.Clip) (*clip.Clip, error) {
		if d <= 0 {
			return nil, fmt.Errorf("%w: fade-out needs a positive length, got %v", clip.ErrConfiguration, d)
		}
		if c.Duration == nil {
			return nil, fmt.Errorf("%w: fade-out needs a defined duration", clip.ErrPrecondition)
		}
		total := *c.Duration
		return envelope(func(t float64) float64 {
			return math.Min(1, math.Max(0, (total-t)/d))
		})(c)
	}
}

// AudioLoop plays the clip back to back n times. The duration must be
// defined.
func AudioLoop(n int) clip.Effect {
	return func(c *clip.Clip) (*clip.Clip, error) {
		if n < 1 {
			return nil, fmt.Errorf("%w: loop count must be at least 1, got %d", clip.ErrConfiguration, n)
		}
		if c.Duration == nil {
			return nil, fmt.Errorf("%w: looping needs a defined duration", clip.ErrPrecondition)
		}
		copies := make([]*clip.Clip, n)
		for i := range copies {
			copies[i] = c
		}
		return audio.Concatenate(copies)
	}
}

// AudioLoopFor loops the clip until it lasts exactly d seconds.
func AudioLoopFor(d float64) clip.Effect {
	return func(c *clip.Clip) (*clip.Clip, error) {
		if d <= 0 {
			return nil, fmt.Errorf("%w: loop target must be positive, got %v", clip.ErrConfiguration, d)
		}
		if c.Duration == nil || *c.Duration <= 0 {
			return nil, fmt.Errorf("%w: looping needs a positive defined duration", clip.ErrPrecondition)
		}
		n := int(math.Ceil(d / *c.Duration))
		looped, err := AudioLoop(n)(c)
		if err != nil {
			return nil, err
		}
		out, err := looped.Subclip(0, d)
		if err != nil {
			return nil, err
		}
		return out.WithStart(0, true)
	}
}

// envelope multiplies every sample by a time-dependent gain.
func envelope(gain func(t float64) float64) clip.Effect {
	return func(c *clip.Clip) (*clip.Clip, error) {
		return c.TransformFrames(func(src clip.FrameFunc, t float64) (clip.Frame, error) {
			frame, err := src(t)
			if err != nil {
				return nil, err
			}
			return scaleFrame(frame, gain(t))
		}, clip.ApplyTo{Audio: true}, true), nil
	}
}

func scaleFrame(frame clip.Frame, k float64) (clip.Frame, error) {
	switch f := frame.(type) {
	case []float64:
		out := make([]float64, len(f))
		for i, v := range f {
			out[i] = k * v
		}
		return out, nil
	case float64:
		return k * f, nil
	}
	return nil, fmt.Errorf("cannot scale frame of type %T", frame)
}
