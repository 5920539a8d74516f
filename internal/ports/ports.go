package ports

import (
	"context"
	"errors"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
)

// ErrExternalTool marks a failure in a decoder/encoder/resizer collaborator.
// The underlying tool output is carried verbatim in the wrapping error; the
// core never retries.
var ErrExternalTool = errors.New("external tool")

// MediaInfo is what a decoder learns about a file without decoding it.
type MediaInfo struct {
	Duration   float64
	SampleRate float64
	Channels   int
}

// MediaDecoder turns a file into a frame-producing clip.
type MediaDecoder interface {
	// OpenAudio returns an audio clip backed by the file at path, with
	// duration, sample rate and channel count set from the container.
	OpenAudio(ctx context.Context, path string) (*clip.Clip, error)
	Probe(ctx context.Context, path string) (MediaInfo, error)
}

// WriteOptions tune an encoder invocation. A zero FPS falls back to the
// clip's own sample rate.
type WriteOptions struct {
	FPS     float64
	Codec   string
	Bitrate string
}

// MediaEncoder writes a clip's frames out to a file.
type MediaEncoder interface {
	WriteAudio(ctx context.Context, c *clip.Clip, dest string, opts WriteOptions) error
}

// Resizer rescales a single pixel frame. The kernel is external; the core
// only threads frames through it.
type Resizer interface {
	Resize(frame clip.Frame, width, height int) (clip.Frame, error)
}
