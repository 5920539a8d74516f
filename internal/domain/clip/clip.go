// Package clip implements the central timeline entity: a clip is a function
// from a time in seconds to a frame, plus a temporal extent and optional
// mask/audio children. Transformations never evaluate frames and never mutate
// the receiver; each one returns a copy whose frame function closes over the
// original.
package clip

import (
	"errors"
	"fmt"

	"github.com/forPelevin/lazyclip/internal/domain/timeutil"
)

var (
	// ErrConfiguration marks a required attribute that was never set, like a
	// missing frame function or a missing fps.
	ErrConfiguration = errors.New("clip configuration")
	// ErrPrecondition marks an operation whose temporal precondition is unmet,
	// like iterating a clip with no duration.
	ErrPrecondition = errors.New("clip precondition")
)

// Frame is a single sample of a clip's content at one instant: a pixel array
// for video, a per-channel sample vector for audio. The core treats it as
// opaque.
type Frame = any

// FrameFunc computes the frame at a single instant.
type FrameFunc func(t float64) (Frame, error)

// BatchFrameFunc computes frames for a batch of instants at once. Only
// leaf clips that can gather efficiently (array-backed audio, composites)
// install one; everything else falls back to per-instant evaluation.
type BatchFrameFunc func(ts []float64) (Frame, error)

// Clip is the base timeline entity. Start is always defined (0 by default);
// End and Duration are nil for clips of unknown or infinite extent. Whenever
// both are set, Duration == End - Start.
type Clip struct {
	Start    float64
	End      *float64
	Duration *float64

	// FPS is a default sampling rate for frame iteration and writers.
	// 0 means unset.
	FPS float64
	// Channels is the audio sample arity. 0 means unset or not audio.
	Channels int

	// Mask is a single-channel clip temporally aligned with this one.
	// Audio is the linked sound child. Structural operations cascade to both.
	Mask  *Clip
	Audio *Clip

	frameFn FrameFunc
	batchFn BatchFrameFunc

	memoize   bool
	memoT     *float64
	memoFrame Frame
}

// New returns a clip with the given frame function and an unbounded extent.
func New(fn FrameFunc) *Clip {
	return &Clip{frameFn: fn}
}

// Copy returns a shallow copy of the clip. Mask and audio children are
// themselves shallow-copied so that retiming the copy cannot perturb the
// original's children.
func (c *Clip) Copy() *Clip {
	nc := c.shallow()
	if c.Mask != nil {
		nc.Mask = c.Mask.shallow()
	}
	if c.Audio != nil {
		nc.Audio = c.Audio.shallow()
	}
	return nc
}

func (c *Clip) shallow() *Clip {
	nc := *c
	nc.End = copyTime(c.End)
	nc.Duration = copyTime(c.Duration)
	nc.memoT = copyTime(c.memoT)
	return &nc
}

// GetFrame evaluates the clip at time t, which may be seconds, a component
// slice, or a clock string. With memoization on, asking for the same instant
// twice returns the identical cached frame.
func (c *Clip) GetFrame(t any) (Frame, error) {
	sec, err := timeutil.Seconds(t)
	if err != nil {
		return nil, fmt.Errorf("get frame: %w", err)
	}
	return c.frameAt(sec)
}

func (c *Clip) frameAt(t float64) (Frame, error) {
	if c.frameFn == nil {
		return nil, fmt.Errorf("%w: no frame function set", ErrConfiguration)
	}
	if !c.memoize {
		return c.frameFn(t)
	}
	if c.memoT != nil && *c.memoT == t {
		return c.memoFrame, nil
	}
	frame, err := c.frameFn(t)
	if err != nil {
		return nil, err
	}
	tt := t
	c.memoT = &tt
	c.memoFrame = frame
	return frame, nil
}

// GetFrameBatch evaluates the clip's batch accessor for a vector of times.
// The second return reports whether the clip has one; callers fall back to
// GetFrame per instant when it does not.
func (c *Clip) GetFrameBatch(ts []float64) (Frame, bool, error) {
	if c.batchFn == nil {
		return nil, false, nil
	}
	frame, err := c.batchFn(ts)
	return frame, true, err
}

// WithFrameFunc returns a copy with a new frame function. Any batch accessor
// and memoized frame belong to the old function and are dropped.
func (c *Clip) WithFrameFunc(fn FrameFunc) *Clip {
	nc := c.Copy()
	nc.frameFn = fn
	nc.batchFn = nil
	nc.clearMemo()
	return nc
}

// WithBatchFrameFunc returns a copy with a batch accessor installed alongside
// the scalar frame function.
func (c *Clip) WithBatchFrameFunc(fn BatchFrameFunc) *Clip {
	nc := c.Copy()
	nc.batchFn = fn
	return nc
}

// WithFPS returns a copy with a new default fps for frame iteration and
// writers.
func (c *Clip) WithFPS(fps float64) *Clip {
	nc := c.Copy()
	nc.FPS = fps
	return nc
}

// WithMemoize returns a copy with single-slot frame memoization switched on
// or off. Switching it off clears the slot.
func (c *Clip) WithMemoize(on bool) *Clip {
	nc := c.Copy()
	nc.memoize = on
	if !on {
		nc.clearMemo()
	}
	return nc
}

// Close releases the frame function and the memoized frame, and recursively
// closes the audio and mask children. Closing twice is a no-op.
func (c *Clip) Close() error {
	if c == nil {
		return nil
	}
	var errs []error
	if c.Audio != nil {
		errs = append(errs, c.Audio.Close())
	}
	if c.Mask != nil {
		errs = append(errs, c.Mask.Close())
	}
	c.frameFn = nil
	c.batchFn = nil
	c.clearMemo()
	return errors.Join(errs...)
}

func (c *Clip) clearMemo() {
	c.memoT = nil
	c.memoFrame = nil
}

func copyTime(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// optAny converts an optional seconds value back to the any-typed form the
// public operations accept, for cascading the same arguments to children.
func optAny(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
