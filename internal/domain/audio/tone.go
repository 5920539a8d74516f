package audio

import (
	"math"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
)

// Tone returns a mono sine wave of the given frequency in Hz. A zero fps
// falls back to DefaultSampleRate.
func Tone(freq, duration, fps float64) (*clip.Clip, error) {
	if fps == 0 {
		fps = DefaultSampleRate
	}
	return New(func(t float64) ([]float64, error) {
		return []float64{math.Sin(2 * math.Pi * freq * t)}, nil
	}, duration, fps)
}
