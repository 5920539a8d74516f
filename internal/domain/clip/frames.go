package clip

import "fmt"

// FrameTimes returns the exact sampling grid for iterating the clip at fps:
// n = floor(duration * fps) instants t_i = duration * i / n, all strictly
// less than the duration. The duration must be defined; fps falls back to
// the clip's own when 0.
func (c *Clip) FrameTimes(fps float64) ([]float64, error) {
	if c.Duration == nil {
		return nil, fmt.Errorf("%w: frame iteration needs a defined duration", ErrPrecondition)
	}
	if fps == 0 {
		fps = c.FPS
	}
	if fps == 0 {
		return nil, fmt.Errorf("%w: no fps given and none set on the clip", ErrConfiguration)
	}
	n := int(*c.Duration * fps)
	times := make([]float64, n)
	for i := range times {
		times[i] = *c.Duration * float64(i) / float64(n)
	}
	return times, nil
}

// EachFrame evaluates the clip at every FrameTimes instant in order and hands
// each (time, frame) pair to fn. Frames are computed one at a time; returning
// an error from fn stops the iteration and surfaces that error.
func (c *Clip) EachFrame(fps float64, fn func(t float64, frame Frame) error) error {
	times, err := c.FrameTimes(fps)
	if err != nil {
		return err
	}
	for _, t := range times {
		frame, err := c.frameAt(t)
		if err != nil {
			return fmt.Errorf("frame at %.6fs: %w", t, err)
		}
		if err := fn(t, frame); err != nil {
			return err
		}
	}
	return nil
}
