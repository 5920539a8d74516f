// Package config resolves the external tool binaries the adapters shell out
// to. Paths come from FFMPEG_BINARY / FFPROBE_BINARY (typically via .env),
// falling back to a PATH lookup of the plain names.
package config

import (
	"context"
	"fmt"
	"os"
	"os/exec"

	"github.com/forPelevin/lazyclip/internal/ports"
)

type Config struct {
	FFmpegBin  string
	FFprobeBin string
}

// FromEnv reads the binary overrides from the environment.
func FromEnv() Config {
	return Config{
		FFmpegBin:  getenvDefault("FFMPEG_BINARY", "ffmpeg"),
		FFprobeBin: getenvDefault("FFPROBE_BINARY", "ffprobe"),
	}
}

// Resolve locates both binaries, turning bare names into absolute paths.
func (c Config) Resolve() (Config, error) {
	ffmpeg, err := exec.LookPath(c.FFmpegBin)
	if err != nil {
		return Config{}, fmt.Errorf("locate ffmpeg %q: %w", c.FFmpegBin, err)
	}
	ffprobe, err := exec.LookPath(c.FFprobeBin)
	if err != nil {
		return Config{}, fmt.Errorf("locate ffprobe %q: %w", c.FFprobeBin, err)
	}
	return Config{FFmpegBin: ffmpeg, FFprobeBin: ffprobe}, nil
}

// Doctor runs a health check against both configured binaries.
func Doctor(ctx context.Context, c Config) error {
	for _, bin := range []string{c.FFmpegBin, c.FFprobeBin} {
		cmd := exec.CommandContext(ctx, bin, "-version")
		if b, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("%w: %s health check: %v\n%s", ports.ErrExternalTool, bin, err, string(b))
		}
	}
	return nil
}

func getenvDefault(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}
