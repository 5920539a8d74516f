package clip

import (
	"errors"
	"fmt"
	"testing"
)

func TestTransformFrames_Lazy(t *testing.T) {
	calls := 0
	c := bounded(10).WithFrameFunc(func(at float64) (Frame, error) {
		calls++
		return at, nil
	})

	doubled := c.TransformFrames(func(src FrameFunc, at float64) (Frame, error) {
		f, err := src(at)
		if err != nil {
			return nil, err
		}
		return 2 * f.(float64), nil
	}, ApplyTo{}, true)

	if calls != 0 {
		t.Fatalf("transformation evaluated %d frames eagerly", calls)
	}
	if got := frameAtOrFatal(t, doubled, 3.0); got != 6.0 {
		t.Fatalf("transformed frame = %v, want 6", got)
	}
	if *doubled.Duration != 10 {
		t.Fatalf("keepDuration=true lost the duration")
	}
}

func TestTransformFrames_DropDuration(t *testing.T) {
	c := bounded(10)
	nc := c.TransformFrames(func(src FrameFunc, at float64) (Frame, error) {
		return src(at)
	}, ApplyTo{}, false)
	if nc.Duration != nil {
		t.Fatalf("keepDuration=false should undefine the duration, got %v", *nc.Duration)
	}
	if c.Duration == nil {
		t.Fatalf("receiver duration was dropped")
	}
}

func TestTransformFrames_CascadeToMask(t *testing.T) {
	c := bounded(10)
	c.Mask = bounded(10)
	c.Audio = bounded(10)

	negate := func(src FrameFunc, at float64) (Frame, error) {
		f, err := src(at)
		if err != nil {
			return nil, err
		}
		return -f.(float64), nil
	}

	nc := c.TransformFrames(negate, ApplyTo{Mask: true}, true)
	if got := frameAtOrFatal(t, nc.Mask, 4.0); got != -4.0 {
		t.Fatalf("mask frame not transformed: %v", got)
	}
	// Audio was not selected: untouched.
	if got := frameAtOrFatal(t, nc.Audio, 4.0); got != 4.0 {
		t.Fatalf("audio frame transformed without being selected: %v", got)
	}
	// Original mask unchanged.
	if got := frameAtOrFatal(t, c.Mask, 4.0); got != 4.0 {
		t.Fatalf("original mask was mutated: %v", got)
	}
}

func TestTransformTime(t *testing.T) {
	c := bounded(10)
	fast := c.TransformTime(func(at float64) float64 { return 2 * at }, MaskAndAudio, false)
	if got := frameAtOrFatal(t, fast, 3.0); got != 6.0 {
		t.Fatalf("time-remapped frame = %v, want the source at 6", got)
	}
	if fast.Duration != nil {
		t.Fatalf("time remap should drop the duration by default")
	}
}

func TestTransform_ChainsCompose(t *testing.T) {
	c := bounded(10)
	// Shift by +1, then mirror: frame(t) = source((10 - t) + 1).
	chained := c.
		TransformTime(func(at float64) float64 { return at + 1 }, ApplyTo{}, true).
		TransformTime(func(at float64) float64 { return 10 - at }, ApplyTo{}, true)
	if got := frameAtOrFatal(t, chained, 2.0); got != 9.0 {
		t.Fatalf("composed transforms sampled %v, want 9", got)
	}
}

func TestTransformFrames_ErrorPropagates(t *testing.T) {
	boom := errors.New("decode failed")
	c := New(func(float64) (Frame, error) { return nil, boom })
	nc := c.TransformFrames(func(src FrameFunc, at float64) (Frame, error) {
		return src(at)
	}, ApplyTo{}, true)
	if _, err := nc.GetFrame(0.0); !errors.Is(err, boom) {
		t.Fatalf("expected the source error, got %v", err)
	}
}

func TestFX(t *testing.T) {
	c := bounded(10)
	halve := func(in *Clip) (*Clip, error) {
		if in.Duration == nil {
			return nil, fmt.Errorf("%w: no duration", ErrPrecondition)
		}
		return in.WithDuration(*in.Duration/2, true)
	}
	nc, err := c.FX(halve, halve)
	if err != nil {
		t.Fatalf("FX: %v", err)
	}
	if *nc.Duration != 2.5 {
		t.Fatalf("FX chain duration = %v, want 2.5", *nc.Duration)
	}

	fail := func(*Clip) (*Clip, error) { return nil, errors.New("nope") }
	if _, err := c.FX(halve, fail); err == nil {
		t.Fatalf("expected error from failing effect")
	}
}
