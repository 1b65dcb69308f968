// Package cutter downloads a video, trims it to a time range and removes the
// intermediate download.
package cutter

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/user/ytcut/pkg/timeutil"
)

const (
	// DefaultOutput is the trimmed file written to the working directory.
	DefaultOutput = "video_recortado.mp4"
	// DefaultTemp is the intermediate download removed after trimming.
	DefaultTemp = "temp.mp4"
)

// ErrEmptyRange is returned when the end timestamp is not after the start.
var ErrEmptyRange = errors.New("end must be after start")

// Video describes the downloaded source.
type Video struct {
	ID       string
	Title    string
	Author   string
	Duration time.Duration
	Quality  string
	Size     int64
}

// Range is a trim window in whole seconds.
type Range struct {
	Start int
	End   int
}

// Fetcher stores the highest resolution stream of url at dst.
type Fetcher interface {
	Fetch(ctx context.Context, url, dst string) (*Video, error)
}

// Trimmer writes the [r.Start, r.End] window of src to dst without re-encoding.
type Trimmer interface {
	Trim(ctx context.Context, src, dst string, r Range) error
}

// Request is the raw user input for a single cut.
type Request struct {
	URL   string
	Start string
	End   string
}

// Parse converts the request timestamps into a Range.
func (r Request) Parse() (Range, error) {
	start, err := timeutil.ParseSeconds(r.Start)
	if err != nil {
		return Range{}, fmt.Errorf("invalid start time: %w", err)
	}
	end, err := timeutil.ParseSeconds(r.End)
	if err != nil {
		return Range{}, fmt.Errorf("invalid end time: %w", err)
	}
	if end <= start {
		return Range{}, fmt.Errorf("%s to %s: %w", timeutil.FormatTime(start), timeutil.FormatTime(end), ErrEmptyRange)
	}
	return Range{Start: start, End: end}, nil
}

// Options wires the collaborators for Run.
type Options struct {
	Fetcher Fetcher
	Trimmer Trimmer
	// Observer receives progress events; may be nil.
	Observer Observer
	// Output and Temp default to DefaultOutput and DefaultTemp.
	Output string
	Temp   string
	// Remove deletes the temp file; defaults to os.Remove.
	Remove func(name string) error
	Logger *slog.Logger
}

// Result describes a finished cut.
type Result struct {
	Video  *Video
	Range  Range
	Output string
}

// Run parses the request, fetches the video to the temp file, trims it into the
// output file and removes the temp file. Removal is attempted even when the trim
// fails. Failures are returned as *StageError.
func Run(ctx context.Context, req Request, opts Options) (*Result, error) {
	opts = opts.withDefaults()
	log := opts.Logger
	obs := opts.Observer

	r, err := req.Parse()
	if err != nil {
		return nil, &StageError{Stage: StageParse, Err: err}
	}
	log.Debug("parsed range", "start", r.Start, "end", r.End)

	obs.Event(Event{Kind: EventFetchStarted, URL: req.URL})
	log.Info("fetching video", "url", req.URL, "temp", opts.Temp)
	video, err := opts.Fetcher.Fetch(ctx, req.URL, opts.Temp)
	if err != nil {
		// Drop any partial download; nothing else will read it.
		if rmErr := opts.Remove(opts.Temp); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) {
			log.Warn("failed to remove partial download", "temp", opts.Temp, "error", rmErr)
		}
		return nil, &StageError{Stage: StageFetch, Err: err}
	}
	obs.Event(Event{Kind: EventFetchDone, Video: video})

	obs.Event(Event{Kind: EventTrimStarted, Video: video, Range: r})
	log.Info("trimming", "src", opts.Temp, "dst", opts.Output, "start", r.Start, "end", r.End)
	trimErr := opts.Trimmer.Trim(ctx, opts.Temp, opts.Output, r)

	var cleanupErr error
	if err := opts.Remove(opts.Temp); err != nil {
		cleanupErr = &StageError{Stage: StageCleanup, Err: err, Path: opts.Temp}
		log.Warn("temp file left on disk", "temp", opts.Temp, "error", err)
	}

	if trimErr != nil {
		se := &StageError{Stage: StageTrim, Err: trimErr}
		if cleanupErr != nil {
			se.Err = errors.Join(trimErr, cleanupErr)
		}
		return nil, se
	}
	// The output exists even when cleanup failed; the caller still gets the error.
	res := &Result{Video: video, Range: r, Output: opts.Output}
	obs.Event(Event{Kind: EventDone, Video: video, Range: r})
	return res, cleanupErr
}

func (o Options) withDefaults() Options {
	if o.Output == "" {
		o.Output = DefaultOutput
	}
	if o.Temp == "" {
		o.Temp = DefaultTemp
	}
	if o.Remove == nil {
		o.Remove = os.Remove
	}
	if o.Logger == nil {
		o.Logger = slog.New(slog.DiscardHandler)
	}
	if o.Observer == nil {
		o.Observer = ObserverFunc(func(Event) {})
	}
	return o
}
