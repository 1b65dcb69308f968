package ffmpeg

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ytcut/cutter"
	"github.com/user/ytcut/deps"
)

func TestArgs(t *testing.T) {
	got := Args("temp.mp4", "video_recortado.mp4", cutter.Range{Start: 10, End: 20})
	want := []string{"-i", "temp.mp4", "-ss", "10", "-to", "20", "-c", "copy", "-y", "video_recortado.mp4"}
	assert.Equal(t, want, got)
}

func TestTrimMissingBinary(t *testing.T) {
	tr := &Trimmer{Binary: "ytcut-no-such-ffmpeg"}
	err := tr.Trim(context.Background(), "in.mp4", "out.mp4", cutter.Range{Start: 0, End: 1})

	var depErr *deps.DependencyError
	require.ErrorAs(t, err, &depErr)
	assert.Equal(t, "ytcut-no-such-ffmpeg", depErr.Name)
}

// writeScript creates an executable shell script standing in for ffmpeg.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "fake-ffmpeg")
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"+body), 0755))
	return path
}

func TestTrimPassesArgs(t *testing.T) {
	dir := t.TempDir()
	argsFile := filepath.Join(dir, "args")
	bin := writeScript(t, `echo "$@" > "`+argsFile+`"`+"\n")

	tr := &Trimmer{Binary: bin}
	require.NoError(t, tr.Trim(context.Background(), "temp.mp4", "out.mp4", cutter.Range{Start: 10, End: 20}))

	data, err := os.ReadFile(argsFile)
	require.NoError(t, err)
	assert.Equal(t, "-i temp.mp4 -ss 10 -to 20 -c copy -y out.mp4", strings.TrimSpace(string(data)))
}

func TestTrimExitError(t *testing.T) {
	bin := writeScript(t, "echo 'temp.mp4: No such file or directory' >&2\nexit 1\n")

	tr := &Trimmer{Binary: bin}
	err := tr.Trim(context.Background(), "temp.mp4", "out.mp4", cutter.Range{Start: 0, End: 5})

	var exitErr *ExitError
	require.ErrorAs(t, err, &exitErr)
	assert.Contains(t, exitErr.Output, "No such file or directory")
	assert.Contains(t, err.Error(), "exit status 1")
}

func TestTrimCancelledRemovesPartialOutput(t *testing.T) {
	bin := writeScript(t, "for a; do last=$a; done\necho partial > \"$last\"\nexec sleep 10\n")
	dst := filepath.Join(t.TempDir(), "out.mp4")

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		// wait for the script to create the output before cancelling
		deadline := time.Now().Add(5 * time.Second)
		for time.Now().Before(deadline) {
			if _, err := os.Stat(dst); err == nil {
				break
			}
			time.Sleep(10 * time.Millisecond)
		}
		cancel()
	}()

	err := (&Trimmer{Binary: bin}).Trim(ctx, "temp.mp4", dst, cutter.Range{Start: 0, End: 5})
	assert.ErrorIs(t, err, context.Canceled)
	assert.NoFileExists(t, dst)
}

func TestTail(t *testing.T) {
	assert.Equal(t, "c\nd", tail("a\nb\nc\nd\n", 2))
	assert.Equal(t, "b\nc", tail("a\nb\n\n\nc\n\n", 2))
	assert.Equal(t, "a", tail("a\n", 5))
	assert.Equal(t, "", tail("", 3))
	assert.True(t, errors.Is(&ExitError{Err: os.ErrNotExist}, os.ErrNotExist))
}
