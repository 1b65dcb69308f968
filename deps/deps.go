package deps

import (
	"fmt"
	"os/exec"
)

const (
	MpvInstallURL    = "https://mpv.io/installation/"
	FfmpegInstallURL = "https://ffmpeg.org/download.html"
)

// DependencyError contains information about a missing dependency
type DependencyError struct {
	Name       string
	InstallURL string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("%s not found. Install from: %s", e.Name, e.InstallURL)
}

// Check reports whether binary is available in PATH (or is an executable path)
func Check(binary, installURL string) error {
	if _, err := exec.LookPath(binary); err != nil {
		return &DependencyError{
			Name:       binary,
			InstallURL: installURL,
		}
	}
	return nil
}

// CheckFfmpeg checks if the ffmpeg binary is available. An empty name means "ffmpeg".
func CheckFfmpeg(binary string) error {
	if binary == "" {
		binary = "ffmpeg"
	}
	return Check(binary, FfmpegInstallURL)
}

// CheckMpv checks if mpv is installed and available in PATH
func CheckMpv() error {
	return Check("mpv", MpvInstallURL)
}

// Status is the outcome of checking one dependency
type Status struct {
	Name     string
	Required bool
	Err      error
}

// CheckAll checks ffmpeg (required for cutting) and mpv (only needed for --play)
func CheckAll(ffmpegBinary string) []Status {
	return []Status{
		{Name: "ffmpeg", Required: true, Err: CheckFfmpeg(ffmpegBinary)},
		{Name: "mpv", Required: false, Err: CheckMpv()},
	}
}
