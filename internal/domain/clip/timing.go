package clip

import (
	"fmt"

	"github.com/forPelevin/lazyclip/internal/domain/timeutil"
)

// Every operation here follows the same order: normalize time arguments,
// check preconditions, copy, mutate the copy, then cascade the operation with
// the same arguments to the mask and audio children.

// WithStart returns a copy starting at t. With changeEnd, a known duration
// moves the end to t + duration; otherwise a known end recomputes the
// duration as end - t.
func (c *Clip) WithStart(t any, changeEnd bool) (*Clip, error) {
	sec, err := timeutil.Seconds(t)
	if err != nil {
		return nil, fmt.Errorf("set start: %w", err)
	}
	nc := c.Copy()
	nc.Start = sec
	if changeEnd && nc.Duration != nil {
		end := sec + *nc.Duration
		nc.End = &end
	} else if !changeEnd && nc.End != nil {
		d := *nc.End - sec
		nc.Duration = &d
	}
	if err := c.cascade(nc, func(child *Clip) (*Clip, error) {
		return child.WithStart(sec, changeEnd)
	}); err != nil {
		return nil, err
	}
	return nc, nil
}

// WithEnd returns a copy ending at t, recomputing the duration from the
// start. A nil t clears both end and duration.
func (c *Clip) WithEnd(t any) (*Clip, error) {
	sec, err := timeutil.OptSeconds(t)
	if err != nil {
		return nil, fmt.Errorf("set end: %w", err)
	}
	nc := c.Copy()
	if sec == nil {
		nc.End = nil
		nc.Duration = nil
	} else {
		end := *sec
		d := end - nc.Start
		nc.End = &end
		nc.Duration = &d
	}
	if err := c.cascade(nc, func(child *Clip) (*Clip, error) {
		return child.WithEnd(optAny(sec))
	}); err != nil {
		return nil, err
	}
	return nc, nil
}

// WithDuration returns a copy lasting t seconds. With changeEnd the end moves
// to start + t (a nil t clears both); otherwise the start is anchored against
// the existing end, which must be defined.
func (c *Clip) WithDuration(t any, changeEnd bool) (*Clip, error) {
	sec, err := timeutil.OptSeconds(t)
	if err != nil {
		return nil, fmt.Errorf("set duration: %w", err)
	}
	if !changeEnd {
		if c.End == nil {
			return nil, fmt.Errorf("%w: cannot move start of a clip with undefined end", ErrPrecondition)
		}
		if sec == nil {
			return nil, fmt.Errorf("%w: cannot move start for an undefined duration", ErrPrecondition)
		}
	}
	nc := c.Copy()
	if sec == nil {
		nc.Duration = nil
		nc.End = nil
	} else {
		d := *sec
		nc.Duration = &d
		if changeEnd {
			end := nc.Start + d
			nc.End = &end
		} else {
			nc.Start = *nc.End - d
		}
	}
	if err := c.cascade(nc, func(child *Clip) (*Clip, error) {
		return child.WithDuration(optAny(sec), changeEnd)
	}); err != nil {
		return nil, err
	}
	return nc, nil
}

// IsPlaying reports whether time t falls inside [start, end]. An undefined
// end is treated as infinite.
func (c *Clip) IsPlaying(t any) (bool, error) {
	sec, err := timeutil.Seconds(t)
	if err != nil {
		return false, fmt.Errorf("is playing: %w", err)
	}
	return c.IsPlayingAt(sec), nil
}

// IsPlayingAt is the scalar entry point for already-normalized times.
func (c *Clip) IsPlayingAt(t float64) bool {
	return t >= c.Start && (c.End == nil || t <= *c.End)
}

// PlayingIn is the batch entry point: it returns an elementwise playing mask
// for ts, or nil when the whole batch lies strictly outside [start, end] so
// composites can skip the child without per-element work.
func (c *Clip) PlayingIn(ts []float64) []bool {
	if len(ts) == 0 {
		return nil
	}
	tmin, tmax := ts[0], ts[0]
	for _, t := range ts[1:] {
		if t < tmin {
			tmin = t
		}
		if t > tmax {
			tmax = t
		}
	}
	if tmax < c.Start {
		return nil
	}
	if c.End != nil && tmin > *c.End {
		return nil
	}
	mask := make([]bool, len(ts))
	for i, t := range ts {
		mask[i] = c.IsPlayingAt(t)
	}
	return mask
}

// Subclip returns a copy bounded to [tStart, tEnd]. Negative bounds count
// back from the duration, which must then be defined. tEnd defaults to the
// duration. The frame function keeps its original time origin; callers
// combine Subclip with WithStart when embedding into a composition.
func (c *Clip) Subclip(tStart, tEnd any) (*Clip, error) {
	ss, err := timeutil.OptSeconds(tStart)
	if err != nil {
		return nil, fmt.Errorf("subclip: %w", err)
	}
	se, err := timeutil.OptSeconds(tEnd)
	if err != nil {
		return nil, fmt.Errorf("subclip: %w", err)
	}
	start := 0.0
	if ss != nil {
		start = *ss
	}
	if start < 0 {
		if c.Duration == nil {
			return nil, fmt.Errorf("%w: negative subclip bounds need a defined duration", ErrPrecondition)
		}
		start = *c.Duration + start
	}
	end := copyTime(se)
	if end == nil {
		end = copyTime(c.Duration)
	} else if *end < 0 {
		if c.Duration == nil {
			return nil, fmt.Errorf("%w: negative subclip bounds need a defined duration", ErrPrecondition)
		}
		*end = *c.Duration + *end
	}
	nc := c.Copy()
	nc.Start = start
	nc.End = end
	if end != nil {
		d := *end - start
		nc.Duration = &d
	} else {
		nc.Duration = nil
	}
	if err := c.cascade(nc, func(child *Clip) (*Clip, error) {
		return child.Subclip(optAny(ss), optAny(se))
	}); err != nil {
		return nil, err
	}
	return nc, nil
}

// Cutout removes [ta, tb) from the middle of the timeline: frames before ta
// are unchanged and frames from ta on are read tb-ta later in the source. tb
// defaults to the duration. A known duration shrinks by tb - ta; an unknown
// one stays unknown.
func (c *Clip) Cutout(ta, tb any) (*Clip, error) {
	a, err := timeutil.Seconds(ta)
	if err != nil {
		return nil, fmt.Errorf("cutout: %w", err)
	}
	bp, err := timeutil.OptSeconds(tb)
	if err != nil {
		return nil, fmt.Errorf("cutout: %w", err)
	}
	if bp == nil {
		if c.Duration == nil {
			return nil, fmt.Errorf("%w: cutout without an upper bound needs a defined duration", ErrPrecondition)
		}
		bp = copyTime(c.Duration)
	}
	shift := *bp - a
	src := c
	nc := c.Copy()
	nc.frameFn = func(t float64) (Frame, error) {
		if t < a {
			return src.frameAt(t)
		}
		return src.frameAt(t + shift)
	}
	nc.batchFn = nil
	nc.clearMemo()
	if c.Duration != nil {
		d := *c.Duration - shift
		nc.Duration = &d
		end := nc.Start + d
		nc.End = &end
	}
	if err := c.cascade(nc, func(child *Clip) (*Clip, error) {
		return child.Cutout(a, optAny(bp))
	}); err != nil {
		return nil, err
	}
	return nc, nil
}

// cascade re-applies an operation to the receiver's children and attaches the
// results to nc, mask first, audio second.
func (c *Clip) cascade(nc *Clip, op func(child *Clip) (*Clip, error)) error {
	if c.Mask != nil {
		m, err := op(c.Mask)
		if err != nil {
			return fmt.Errorf("mask: %w", err)
		}
		nc.Mask = m
	}
	if c.Audio != nil {
		a, err := op(c.Audio)
		if err != nil {
			return fmt.Errorf("audio: %w", err)
		}
		nc.Audio = a
	}
	return nil
}
