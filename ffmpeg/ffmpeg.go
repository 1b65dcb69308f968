// Package ffmpeg trims media files by stream copy.
package ffmpeg

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/user/ytcut/cutter"
	"github.com/user/ytcut/deps"
)

// DefaultBinary is looked up in PATH when Trimmer.Binary is empty.
const DefaultBinary = "ffmpeg"

// maxOutputLines bounds how much ffmpeg output is kept in an ExitError.
const maxOutputLines = 12

// ExitError is returned when ffmpeg exits with a non-zero status.
type ExitError struct {
	Args   []string
	Output string
	Err    error
}

func (e *ExitError) Error() string {
	if e.Output == "" {
		return fmt.Sprintf("ffmpeg: %v", e.Err)
	}
	return fmt.Sprintf("ffmpeg: %v\n%s", e.Err, e.Output)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// Trimmer runs ffmpeg to cut a time window out of a file.
type Trimmer struct {
	Binary string
	Logger *slog.Logger
}

// Args builds the ffmpeg arguments for a stream copy of [r.Start, r.End] seconds.
func Args(src, dst string, r cutter.Range) []string {
	return []string{
		"-i", src,
		"-ss", strconv.Itoa(r.Start),
		"-to", strconv.Itoa(r.End),
		"-c", "copy",
		"-y",
		dst,
	}
}

// Trim writes the [r.Start, r.End] window of src to dst without re-encoding.
func (t *Trimmer) Trim(ctx context.Context, src, dst string, r cutter.Range) error {
	bin := t.Binary
	if bin == "" {
		bin = DefaultBinary
	}
	if _, err := exec.LookPath(bin); err != nil {
		return &deps.DependencyError{Name: bin, InstallURL: deps.FfmpegInstallURL}
	}

	args := Args(src, dst, r)
	if t.Logger != nil {
		t.Logger.Debug("running ffmpeg", "binary", bin, "args", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, bin, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			// ffmpeg was killed mid-write; the output is unusable.
			if rmErr := os.Remove(dst); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
				return fmt.Errorf("cancelled, partial %s left on disk: %w", dst, errors.Join(ctx.Err(), rmErr))
			}
			return fmt.Errorf("cancelled: %w", ctx.Err())
		}
		return &ExitError{Args: args, Output: tail(out.String(), maxOutputLines), Err: err}
	}
	return nil
}

// tail returns the last n non-empty lines of s.
func tail(s string, n int) string {
	var lines []string
	for _, l := range strings.Split(s, "\n") {
		if strings.TrimSpace(l) != "" {
			lines = append(lines, l)
		}
	}
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
