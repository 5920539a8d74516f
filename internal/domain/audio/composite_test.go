package audio

import (
	"math"
	"testing"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
)

func constClip(t *testing.T, value float64, channels int, duration float64) *clip.Clip {
	t.Helper()
	row := make([]float64, channels)
	for i := range row {
		row[i] = value
	}
	c, err := New(func(float64) ([]float64, error) {
		return row, nil
	}, duration, 100)
	if err != nil {
		t.Fatalf("constClip: %v", err)
	}
	return c
}

func TestComposite_ChannelsAndExtent(t *testing.T) {
	mono := constClip(t, 0.25, 1, 5)
	stereo := constClip(t, 0.5, 2, 3)
	shifted, err := stereo.WithStart(1, true) // plays over [1, 4]
	if err != nil {
		t.Fatalf("WithStart: %v", err)
	}

	comp, err := Composite([]*clip.Clip{mono, shifted})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if comp.Channels != 2 {
		t.Fatalf("channels = %d, want max over children = 2", comp.Channels)
	}
	if comp.Duration == nil || *comp.Duration != 5 {
		t.Fatalf("duration = %v, want latest end = 5", comp.Duration)
	}
}

func TestComposite_UndefinedEndChild(t *testing.T) {
	mono := constClip(t, 0.25, 1, 5)
	endless := clip.New(func(float64) (clip.Frame, error) {
		return []float64{0.1}, nil
	})
	endless.Channels = 1

	comp, err := Composite([]*clip.Clip{mono, endless})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}
	if comp.Duration != nil || comp.End != nil {
		t.Fatalf("composite with an endless child must stay unbounded")
	}
}

func TestComposite_GatingAndSum(t *testing.T) {
	mono := constClip(t, 0.25, 1, 5)
	stereo := constClip(t, 0.5, 2, 3)
	shifted, err := stereo.WithStart(1, true)
	if err != nil {
		t.Fatalf("WithStart: %v", err)
	}
	comp, err := Composite([]*clip.Clip{mono, shifted})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	tests := []struct {
		at   float64
		want []float64
	}{
		{0.5, []float64{0.25, 0.25}}, // mono broadcasts, stereo not started
		{2, []float64{0.75, 0.75}},   // both playing
		{4.5, []float64{0.25, 0.25}}, // stereo finished
		{6, []float64{0, 0}},         // nothing playing
	}
	for _, tt := range tests {
		row, err := FrameAt(comp, tt.at)
		if err != nil {
			t.Fatalf("FrameAt(%v): %v", tt.at, err)
		}
		for ch := range tt.want {
			if math.Abs(row[ch]-tt.want[ch]) > 1e-12 {
				t.Fatalf("FrameAt(%v) = %v, want %v", tt.at, row, tt.want)
			}
		}
	}
}

func TestComposite_BatchMatchesScalar(t *testing.T) {
	mono := constClip(t, 0.25, 1, 5)
	stereo := constClip(t, 0.5, 2, 3)
	shifted, err := stereo.WithStart(1, true)
	if err != nil {
		t.Fatalf("WithStart: %v", err)
	}
	comp, err := Composite([]*clip.Clip{mono, shifted})
	if err != nil {
		t.Fatalf("Composite: %v", err)
	}

	ts := []float64{0.5, 2, 4.5, 6}
	rows, err := FramesAt(comp, ts)
	if err != nil {
		t.Fatalf("FramesAt: %v", err)
	}
	for i, at := range ts {
		want, err := FrameAt(comp, at)
		if err != nil {
			t.Fatalf("FrameAt(%v): %v", at, err)
		}
		for ch := range want {
			if math.Abs(rows[i][ch]-want[ch]) > 1e-12 {
				t.Fatalf("batch row at t=%v is %v, scalar says %v", at, rows[i], want)
			}
		}
	}
}

func TestConcatenate(t *testing.T) {
	first, err := FromArray(ramp(10, 1), 10) // 1s, values 0..9
	if err != nil {
		t.Fatalf("FromArray: %v", err)
	}
	second := constClip(t, 0.5, 2, 2) // 2s stereo at fps 100

	out, err := Concatenate([]*clip.Clip{first, second})
	if err != nil {
		t.Fatalf("Concatenate: %v", err)
	}
	if out.Duration == nil || *out.Duration != 3 {
		t.Fatalf("duration = %v, want sum of durations = 3", out.Duration)
	}
	if out.FPS != 100 {
		t.Fatalf("fps = %v, want the highest child fps", out.FPS)
	}
	if out.Channels != 2 {
		t.Fatalf("channels = %d, want 2", out.Channels)
	}

	// Inside the first clip's window: its own samples, broadcast to stereo.
	row, err := FrameAt(out, 0.35)
	if err != nil {
		t.Fatalf("FrameAt: %v", err)
	}
	if row[0] != 3 || row[1] != 3 {
		t.Fatalf("FrameAt(0.35) = %v, want row 3 broadcast", row)
	}

	// Inside the second clip's window: sampled at its local time.
	row, err = FrameAt(out, 1.5)
	if err != nil {
		t.Fatalf("FrameAt: %v", err)
	}
	if row[0] != 0.5 || row[1] != 0.5 {
		t.Fatalf("FrameAt(1.5) = %v, want the second clip's value", row)
	}
}

func TestConcatenate_NeedsDurations(t *testing.T) {
	endless := clip.New(func(float64) (clip.Frame, error) {
		return []float64{0}, nil
	})
	endless.Channels = 1
	if _, err := Concatenate([]*clip.Clip{endless}); err == nil {
		t.Fatalf("expected error for a child without duration")
	}
}
