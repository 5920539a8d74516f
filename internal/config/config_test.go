package config

import "testing"

func TestFromEnv_Defaults(t *testing.T) {
	t.Setenv("FFMPEG_BINARY", "")
	t.Setenv("FFPROBE_BINARY", "")
	cfg := FromEnv()
	if cfg.FFmpegBin != "ffmpeg" || cfg.FFprobeBin != "ffprobe" {
		t.Fatalf("defaults = %+v, want plain binary names", cfg)
	}
}

func TestFromEnv_Overrides(t *testing.T) {
	t.Setenv("FFMPEG_BINARY", "/opt/ffmpeg/bin/ffmpeg")
	t.Setenv("FFPROBE_BINARY", "/opt/ffmpeg/bin/ffprobe")
	cfg := FromEnv()
	if cfg.FFmpegBin != "/opt/ffmpeg/bin/ffmpeg" {
		t.Fatalf("ffmpeg override not applied: %q", cfg.FFmpegBin)
	}
	if cfg.FFprobeBin != "/opt/ffmpeg/bin/ffprobe" {
		t.Fatalf("ffprobe override not applied: %q", cfg.FFprobeBin)
	}
}

func TestResolve_MissingBinary(t *testing.T) {
	cfg := Config{FFmpegBin: "definitely-not-a-binary-9f2c", FFprobeBin: "ffprobe"}
	if _, err := cfg.Resolve(); err == nil {
		t.Fatalf("expected lookup failure for a nonexistent binary")
	}
}
