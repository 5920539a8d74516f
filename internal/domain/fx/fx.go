// Package fx provides effect functions built exclusively from the public
// clip operations, so any of them can slot into a clip.FX chain.
package fx

import (
	"fmt"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
	"github.com/forPelevin/lazyclip/internal/ports"
)

// Speed plays the clip factor times faster. A known duration shrinks by the
// same factor; an unknown one stays unknown.
func Speed(factor float64) clip.Effect {
	return func(c *clip.Clip) (*clip.Clip, error) {
		if factor <= 0 {
			return nil, fmt.Errorf("%w: speed factor must be positive, got %v", clip.ErrConfiguration, factor)
		}
		nc := c.TransformTime(func(t float64) float64 {
			return factor * t
		}, clip.MaskAndAudio, false)
		if c.Duration == nil {
			return nc, nil
		}
		return nc.WithDuration(*c.Duration/factor, true)
	}
}

// TimeMirror plays the clip backwards. The duration must be defined.
func TimeMirror() clip.Effect {
	return func(c *clip.Clip) (*clip.Clip, error) {
		if c.Duration == nil {
			return nil, fmt.Errorf("%w: time mirror needs a defined duration", clip.ErrPrecondition)
		}
		d := *c.Duration
		return c.TransformTime(func(t float64) float64 {
			return d - t
		}, clip.MaskAndAudio, true), nil
	}
}

// Resize delegates every frame to an external resizer, cascading to the mask
// so the opacity channel stays aligned with the pixels.
func Resize(r ports.Resizer, width, height int) clip.Effect {
	return func(c *clip.Clip) (*clip.Clip, error) {
		if width <= 0 || height <= 0 {
			return nil, fmt.Errorf("%w: resize needs positive dimensions, got %dx%d", clip.ErrConfiguration, width, height)
		}
		return c.TransformFrames(func(src clip.FrameFunc, t float64) (clip.Frame, error) {
			frame, err := src(t)
			if err != nil {
				return nil, err
			}
			return r.Resize(frame, width, height)
		}, clip.ApplyTo{Mask: true}, true), nil
	}
}
