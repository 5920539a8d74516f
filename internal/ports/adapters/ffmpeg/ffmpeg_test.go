package ffmpeg

import (
	"context"
	"reflect"
	"testing"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
	"github.com/forPelevin/lazyclip/internal/ports"
)

func TestSampleRow(t *testing.T) {
	tests := []struct {
		name     string
		frame    clip.Frame
		channels int
		want     []float64
	}{
		{
			name:     "stereo passthrough",
			frame:    []float64{0.1, -0.2},
			channels: 2,
			want:     []float64{0.1, -0.2},
		},
		{
			name:     "mono vector broadcasts",
			frame:    []float64{0.3},
			channels: 2,
			want:     []float64{0.3, 0.3},
		},
		{
			name:     "scalar broadcasts",
			frame:    0.4,
			channels: 3,
			want:     []float64{0.4, 0.4, 0.4},
		},
		{
			name:     "extra channels truncated",
			frame:    []float64{0.1, 0.2, 0.3},
			channels: 2,
			want:     []float64{0.1, 0.2},
		},
		{
			name:     "missing channels padded with silence",
			frame:    []float64{0.1, 0.2},
			channels: 4,
			want:     []float64{0.1, 0.2, 0, 0},
		},
		{
			name:     "zero channels keeps arity",
			frame:    []float64{0.5, 0.6},
			channels: 0,
			want:     []float64{0.5, 0.6},
		},
		{
			name:     "clamped to unit range",
			frame:    []float64{2.5, -3},
			channels: 2,
			want:     []float64{1, -1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sampleRow(tt.frame, tt.channels)
			if err != nil {
				t.Fatalf("sampleRow: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("sampleRow = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSampleRow_RejectsNonAudioFrames(t *testing.T) {
	if _, err := sampleRow("pixels", 2); err == nil {
		t.Fatalf("expected error for a non-audio frame")
	}
}

func TestWriteAudio_Preconditions(t *testing.T) {
	a := New("", "")
	unbounded := clip.New(func(float64) (clip.Frame, error) {
		return []float64{0}, nil
	})
	if err := a.WriteAudio(context.Background(), unbounded, "out.wav", ports.WriteOptions{}); err == nil {
		t.Fatalf("expected error without a defined duration")
	}

	bounded, err := unbounded.WithDuration(1, true)
	if err != nil {
		t.Fatalf("WithDuration: %v", err)
	}
	// No rate anywhere: neither in options nor on the clip.
	if err := a.WriteAudio(context.Background(), bounded, "out.wav", ports.WriteOptions{}); err == nil {
		t.Fatalf("expected error without a sample rate")
	}
}
