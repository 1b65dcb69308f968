// Package youtube fetches the highest resolution progressive stream of a video.
package youtube

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	yt "github.com/kkdai/youtube/v2"

	"github.com/user/ytcut/cutter"
)

// ErrNoStream is returned when a video exposes no format carrying both audio and video.
var ErrNoStream = errors.New("no downloadable stream with audio")

// videoClient is the subset of *yt.Client used by Fetcher.
type videoClient interface {
	GetVideoContext(ctx context.Context, url string) (*yt.Video, error)
	GetStreamContext(ctx context.Context, video *yt.Video, format *yt.Format) (io.ReadCloser, int64, error)
}

// Fetcher downloads videos with github.com/kkdai/youtube.
type Fetcher struct {
	client videoClient
	// Progress is called after every write with bytes written so far and the
	// expected total (0 when unknown).
	Progress func(written, total int64)
	Logger   *slog.Logger
}

// NewFetcher returns a Fetcher backed by a default youtube client.
func NewFetcher(logger *slog.Logger) *Fetcher {
	return &Fetcher{client: &yt.Client{}, Logger: logger}
}

// Fetch resolves url (a watch/share URL or a bare video id) and stores the
// highest resolution progressive stream at dst.
func (f *Fetcher) Fetch(ctx context.Context, url, dst string) (*cutter.Video, error) {
	log := f.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}

	video, err := f.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", url, err)
	}

	format, err := HighestResolution(video.Formats)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", video.ID, err)
	}
	log.Debug("selected format",
		"id", video.ID,
		"itag", format.ItagNo,
		"quality", format.QualityLabel,
		"mime", format.MimeType,
	)

	stream, size, err := f.client.GetStreamContext(ctx, video, format)
	if err != nil {
		return nil, fmt.Errorf("open stream: %w", err)
	}
	defer stream.Close()

	file, err := os.Create(dst)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", dst, err)
	}

	w := &progressWriter{w: file, total: size, report: f.Progress}
	written, copyErr := io.Copy(w, stream)
	closeErr := file.Close()
	if copyErr != nil {
		return nil, fmt.Errorf("download: %w", copyErr)
	}
	if closeErr != nil {
		return nil, fmt.Errorf("close %s: %w", dst, closeErr)
	}
	log.Info("downloaded", "id", video.ID, "bytes", humanize.Bytes(uint64(written)), "dst", dst)

	return &cutter.Video{
		ID:       video.ID,
		Title:    video.Title,
		Author:   video.Author,
		Duration: video.Duration,
		Quality:  format.QualityLabel,
		Size:     written,
	}, nil
}

// HighestResolution picks the tallest progressive mp4 format with audio,
// falling back to any format with audio. Ties break on bitrate.
func HighestResolution(formats yt.FormatList) (*yt.Format, error) {
	candidates := formats.Type("video/mp4").WithAudioChannels()
	if len(candidates) == 0 {
		candidates = formats.WithAudioChannels()
	}
	// Audio-only formats have no height and cannot be trimmed into a video.
	var withVideo yt.FormatList
	for _, f := range candidates {
		if f.Height > 0 || strings.HasPrefix(f.MimeType, "video/") {
			withVideo = append(withVideo, f)
		}
	}
	if len(withVideo) == 0 {
		return nil, ErrNoStream
	}

	sort.SliceStable(withVideo, func(i, j int) bool {
		if withVideo[i].Height != withVideo[j].Height {
			return withVideo[i].Height > withVideo[j].Height
		}
		return withVideo[i].Bitrate > withVideo[j].Bitrate
	})
	best := withVideo[0]
	return &best, nil
}

type progressWriter struct {
	w       io.Writer
	written int64
	total   int64
	report  func(written, total int64)
}

func (p *progressWriter) Write(b []byte) (int, error) {
	n, err := p.w.Write(b)
	p.written += int64(n)
	if p.report != nil {
		p.report(p.written, p.total)
	}
	return n, err
}
