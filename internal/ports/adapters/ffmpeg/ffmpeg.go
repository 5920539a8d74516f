// Package ffmpeg adapts the ffmpeg/ffprobe binaries to the decoder and
// encoder ports. Decoding materializes the sample table lazily, on the first
// frame request; encoding streams raw f64le samples into an ffmpeg graph.
package ffmpeg

import (
	"bytes"
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os/exec"
	"strconv"

	ffmpeggo "github.com/u2takey/ffmpeg-go"

	"github.com/forPelevin/lazyclip/internal/domain/clip"
	"github.com/forPelevin/lazyclip/internal/ports"
)

type Adapter struct {
	ffmpeg  string
	ffprobe string
}

func New(ffmpegPath, ffprobePath string) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &Adapter{ffmpeg: ffmpegPath, ffprobe: ffprobePath}
}

func (a *Adapter) Probe(ctx context.Context, path string) (ports.MediaInfo, error) {
	cmd := exec.CommandContext(ctx, a.ffprobe,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return ports.MediaInfo{}, fmt.Errorf("%w: ffprobe %s: %v\n%s", ports.ErrExternalTool, path, err, string(b))
	}

	var out struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
		Streams []struct {
			CodecType  string `json:"codec_type"`
			SampleRate string `json:"sample_rate"`
			Channels   int    `json:"channels"`
		} `json:"streams"`
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return ports.MediaInfo{}, fmt.Errorf("parse ffprobe output for %s: %w", path, err)
	}

	info := ports.MediaInfo{}
	if out.Format.Duration != "" {
		info.Duration, err = strconv.ParseFloat(out.Format.Duration, 64)
		if err != nil {
			return ports.MediaInfo{}, fmt.Errorf("parse duration %q: %w", out.Format.Duration, err)
		}
	}
	for _, s := range out.Streams {
		if s.CodecType != "audio" {
			continue
		}
		info.Channels = s.Channels
		if s.SampleRate != "" {
			info.SampleRate, err = strconv.ParseFloat(s.SampleRate, 64)
			if err != nil {
				return ports.MediaInfo{}, fmt.Errorf("parse sample rate %q: %w", s.SampleRate, err)
			}
		}
		break
	}
	return info, nil
}

// OpenAudio probes path and returns an audio clip over it. The samples are
// decoded once, on the first frame request, and cached for the life of the
// clip; out-of-range lookups yield silence like any array-backed clip.
func (a *Adapter) OpenAudio(ctx context.Context, path string) (*clip.Clip, error) {
	info, err := a.Probe(ctx, path)
	if err != nil {
		return nil, err
	}
	if info.Channels == 0 {
		return nil, fmt.Errorf("no audio stream in %s", path)
	}

	var (
		table   [][]float64
		loadErr error
		loaded  bool
	)
	load := func() ([][]float64, error) {
		if !loaded {
			loaded = true
			table, loadErr = a.decodeSamples(path, info)
		}
		return table, loadErr
	}
	rowAt := func(tbl [][]float64, t float64) []float64 {
		i := int(info.SampleRate * t)
		if i < 0 || i >= len(tbl) {
			return make([]float64, info.Channels)
		}
		return tbl[i]
	}

	c := clip.New(func(t float64) (clip.Frame, error) {
		tbl, err := load()
		if err != nil {
			return nil, err
		}
		return rowAt(tbl, t), nil
	})
	c = c.WithBatchFrameFunc(func(ts []float64) (clip.Frame, error) {
		tbl, err := load()
		if err != nil {
			return nil, err
		}
		rows := make([][]float64, len(ts))
		for i, t := range ts {
			rows[i] = rowAt(tbl, t)
		}
		return rows, nil
	})
	c.FPS = info.SampleRate
	c.Channels = info.Channels
	d := info.Duration
	c.Duration = &d
	end := info.Duration
	c.End = &end
	return c, nil
}

func (a *Adapter) decodeSamples(path string, info ports.MediaInfo) ([][]float64, error) {
	buf := &bytes.Buffer{}
	err := ffmpeggo.Input(path).
		Output("pipe:", ffmpeggo.KwArgs{
			"f":      "f64le",
			"acodec": "pcm_f64le",
			"ac":     info.Channels,
			"ar":     int(info.SampleRate),
			"vn":     "",
		}).
		WithOutput(buf).
		Silent(true).
		SetFfmpegPath(a.ffmpeg).
		Run()
	if err != nil {
		return nil, fmt.Errorf("%w: ffmpeg decode %s: %v", ports.ErrExternalTool, path, err)
	}

	raw := buf.Bytes()
	stride := 8 * info.Channels
	n := len(raw) / stride
	table := make([][]float64, n)
	for i := 0; i < n; i++ {
		row := make([]float64, info.Channels)
		for ch := 0; ch < info.Channels; ch++ {
			off := i*stride + ch*8
			row[ch] = math.Float64frombits(binary.LittleEndian.Uint64(raw[off : off+8]))
		}
		table[i] = row
	}
	return table, nil
}

var errEncoderDone = errors.New("encoder closed its input")

// WriteAudio samples c at the effective rate and pipes raw f64le frames into
// an ffmpeg mux graph. Samples are clamped to [-1, 1] here, at the export
// boundary, never earlier.
func (a *Adapter) WriteAudio(ctx context.Context, c *clip.Clip, dest string, opts ports.WriteOptions) error {
	if c.Duration == nil {
		return fmt.Errorf("%w: writing audio needs a defined duration", clip.ErrPrecondition)
	}
	fps := opts.FPS
	if fps == 0 {
		fps = c.FPS
	}
	if fps == 0 {
		return fmt.Errorf("%w: no sample rate given and none set on the clip", clip.ErrConfiguration)
	}
	channels := c.Channels
	if channels == 0 {
		frame, err := c.GetFrame(0.0)
		if err != nil {
			return fmt.Errorf("probe channel count: %w", err)
		}
		row, err := sampleRow(frame, 0)
		if err != nil {
			return fmt.Errorf("probe channel count: %w", err)
		}
		channels = len(row)
	}

	pr, pw := io.Pipe()
	feedErr := make(chan error, 1)
	go func() {
		buf := make([]byte, 8*channels)
		err := c.EachFrame(fps, func(t float64, frame clip.Frame) error {
			row, err := sampleRow(frame, channels)
			if err != nil {
				return err
			}
			for ch, v := range row {
				binary.LittleEndian.PutUint64(buf[ch*8:], math.Float64bits(v))
			}
			_, werr := pw.Write(buf)
			return werr
		})
		feedErr <- err
		pw.CloseWithError(err)
	}()

	outArgs := ffmpeggo.KwArgs{}
	if opts.Codec != "" {
		outArgs["acodec"] = opts.Codec
	}
	if opts.Bitrate != "" {
		outArgs["b:a"] = opts.Bitrate
	}
	runErr := ffmpeggo.Input("pipe:", ffmpeggo.KwArgs{
		"f":  "f64le",
		"ar": int(fps),
		"ac": channels,
	}).
		Output(dest, outArgs).
		OverWriteOutput().
		WithInput(pr).
		Silent(true).
		SetFfmpegPath(a.ffmpeg).
		Run()

	// Unblock the producer if ffmpeg stopped reading before the last frame.
	pr.CloseWithError(errEncoderDone)
	ferr := <-feedErr
	if ferr != nil && !errors.Is(ferr, errEncoderDone) {
		return fmt.Errorf("produce samples: %w", ferr)
	}
	if runErr != nil {
		return fmt.Errorf("%w: ffmpeg write %s: %v", ports.ErrExternalTool, dest, runErr)
	}
	return nil
}

// sampleRow shapes an audio frame into exactly channels values in [-1, 1].
// A mono frame broadcasts across all channels; missing channels are silent.
// With channels == 0 the frame's own arity is kept.
func sampleRow(frame clip.Frame, channels int) ([]float64, error) {
	var row []float64
	switch f := frame.(type) {
	case []float64:
		row = f
	case float64:
		row = []float64{f}
	default:
		return nil, fmt.Errorf("unexpected audio frame type %T", frame)
	}
	if channels == 0 {
		channels = len(row)
	}
	out := make([]float64, channels)
	if len(row) == 1 && channels > 1 {
		for i := range out {
			out[i] = clamp(row[0])
		}
		return out, nil
	}
	n := len(row)
	if channels < n {
		n = channels
	}
	for i := 0; i < n; i++ {
		out[i] = clamp(row[i])
	}
	return out, nil
}

func clamp(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < -1 {
		return -1
	}
	return v
}
