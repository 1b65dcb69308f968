// Package mpv previews a finished cut in the mpv player.
package mpv

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"time"

	"github.com/user/ytcut/deps"
)

// SocketPath returns the IPC socket used for preview sessions.
func SocketPath() string {
	return filepath.Join(os.TempDir(), fmt.Sprintf("ytcut-mpv-%d.sock", os.Getpid()))
}

// Launch starts mpv on videoPath with the IPC socket enabled. The process is
// not waited on.
func Launch(videoPath, socketPath string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}

	cmd := exec.Command("mpv",
		"--input-ipc-server="+socketPath,
		videoPath,
	)
	if err := cmd.Start(); err != nil {
		return nil, err
	}
	return cmd, nil
}

// Preview launches mpv on videoPath and returns the duration mpv reports for
// it. The player keeps running after Preview returns.
func Preview(ctx context.Context, videoPath string) (float64, error) {
	socket := SocketPath()
	process, err := Launch(videoPath, socket)
	if err != nil {
		return 0, err
	}

	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	client := NewClient(socket)
	if err := client.WaitConnect(connectCtx, 100*time.Millisecond); err != nil {
		if process.Process != nil {
			process.Process.Kill()
		}
		return 0, fmt.Errorf("failed to connect to mpv: %w", err)
	}
	defer client.Close()

	// duration is unavailable until the file is loaded
	var duration float64
	for {
		duration, err = client.GetDuration()
		if err == nil {
			return duration, nil
		}
		select {
		case <-connectCtx.Done():
			return 0, err
		case <-time.After(100 * time.Millisecond):
		}
	}
}
