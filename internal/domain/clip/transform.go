package clip

// Transform rewrites frames: it receives the source clip's frame accessor and
// a time, and returns the transformed frame for that time.
type Transform func(src FrameFunc, t float64) (Frame, error)

// Effect is any clip-to-clip function built from the public clip operations.
// Effects compose left-to-right through FX.
type Effect func(*Clip) (*Clip, error)

// ApplyTo selects which children a transformation cascades to.
type ApplyTo struct {
	Mask  bool
	Audio bool
}

// MaskAndAudio cascades a transformation to both children.
var MaskAndAudio = ApplyTo{Mask: true, Audio: true}

// TransformFrames is the universal transformation primitive. The returned
// clip's frame function calls fn with the original clip's frame accessor, so
// chains compose by closure nesting and the receiver is never touched. With
// keepDuration false the result's duration becomes undefined and the caller
// must set it again. Children selected by applyTo get the same transformation
// independently.
func (c *Clip) TransformFrames(fn Transform, applyTo ApplyTo, keepDuration bool) *Clip {
	src := c
	nc := c.Copy()
	nc.frameFn = func(t float64) (Frame, error) {
		return fn(src.frameAt, t)
	}
	nc.batchFn = nil
	nc.clearMemo()
	if !keepDuration {
		nc.Duration = nil
	}
	if applyTo.Mask && c.Mask != nil {
		nc.Mask = c.Mask.TransformFrames(fn, ApplyTo{}, keepDuration)
	}
	if applyTo.Audio && c.Audio != nil {
		nc.Audio = c.Audio.TransformFrames(fn, ApplyTo{}, keepDuration)
	}
	return nc
}

// TransformTime remaps the clip's timeline: the new frame at t is the old
// frame at timeFn(t). Remapping generally invalidates the duration, hence no
// keep-duration default; callers pass true when the map preserves extent.
func (c *Clip) TransformTime(timeFn func(t float64) float64, applyTo ApplyTo, keepDuration bool) *Clip {
	return c.TransformFrames(func(src FrameFunc, t float64) (Frame, error) {
		return src(timeFn(t))
	}, applyTo, keepDuration)
}

// FX applies effects in order, so chains read left-to-right:
//
//	out, err := in.FX(fx.Speed(2), fx.AudioFadeOut(1))
func (c *Clip) FX(effects ...Effect) (*Clip, error) {
	cur := c
	for _, effect := range effects {
		next, err := effect(cur)
		if err != nil {
			return nil, err
		}
		cur = next
	}
	return cur, nil
}
