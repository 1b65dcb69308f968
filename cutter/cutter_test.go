package cutter

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/user/ytcut/pkg/timeutil"
)

// mockFetcher records the call and writes a placeholder file at dst.
type mockFetcher struct {
	calls   int
	url     string
	dst     string
	err     error
	partial bool
	video   *Video
}

func (m *mockFetcher) Fetch(ctx context.Context, url, dst string) (*Video, error) {
	m.calls++
	m.url = url
	m.dst = dst
	if m.err != nil {
		if m.partial {
			_ = os.WriteFile(dst, []byte("partial"), 0644)
		}
		return nil, m.err
	}
	if err := os.WriteFile(dst, []byte("video"), 0644); err != nil {
		return nil, err
	}
	if m.video != nil {
		return m.video, nil
	}
	return &Video{ID: "abc123def45", Title: "Test"}, nil
}

type mockTrimmer struct {
	calls int
	src   string
	dst   string
	r     Range
	err   error
	// sawTemp records whether the source existed when Trim was called.
	sawTemp bool
}

func (m *mockTrimmer) Trim(ctx context.Context, src, dst string, r Range) error {
	m.calls++
	m.src, m.dst, m.r = src, dst, r
	_, statErr := os.Stat(src)
	m.sawTemp = statErr == nil
	if m.err != nil {
		return m.err
	}
	return os.WriteFile(dst, []byte("cut"), 0644)
}

func testOptions(t *testing.T, f Fetcher, tr Trimmer) Options {
	dir := t.TempDir()
	return Options{
		Fetcher: f,
		Trimmer: tr,
		Output:  filepath.Join(dir, DefaultOutput),
		Temp:    filepath.Join(dir, DefaultTemp),
	}
}

func TestRunPassesParsedSecondsToTrimmer(t *testing.T) {
	f := &mockFetcher{}
	tr := &mockTrimmer{}
	opts := testOptions(t, f, tr)

	res, err := Run(context.Background(), Request{URL: "U", Start: "0:10", End: "0:20"}, opts)
	require.NoError(t, err)

	assert.Equal(t, "U", f.url)
	assert.Equal(t, opts.Temp, f.dst)
	assert.Equal(t, Range{Start: 10, End: 20}, tr.r)
	assert.Equal(t, opts.Temp, tr.src)
	assert.Equal(t, opts.Output, tr.dst)
	assert.True(t, tr.sawTemp)

	assert.Equal(t, opts.Output, res.Output)
	assert.Equal(t, Range{Start: 10, End: 20}, res.Range)
	assert.FileExists(t, opts.Output)
	assert.NoFileExists(t, opts.Temp)
}

func TestRunHoursFormat(t *testing.T) {
	tr := &mockTrimmer{}
	_, err := Run(context.Background(), Request{URL: "U", Start: "1:02:03", End: "1:10:00"}, testOptions(t, &mockFetcher{}, tr))
	require.NoError(t, err)
	assert.Equal(t, Range{Start: 3723, End: 4200}, tr.r)
}

func TestRunParseErrorSkipsCollaborators(t *testing.T) {
	f := &mockFetcher{}
	tr := &mockTrimmer{}

	_, err := Run(context.Background(), Request{URL: "U", Start: "abc", End: "0:20"}, testOptions(t, f, tr))
	require.Error(t, err)
	assert.Equal(t, StageParse, StageOf(err))
	assert.ErrorIs(t, err, timeutil.ErrInvalidPart)
	assert.Zero(t, f.calls)
	assert.Zero(t, tr.calls)
}

func TestRunRejectsEmptyRange(t *testing.T) {
	f := &mockFetcher{}
	_, err := Run(context.Background(), Request{URL: "U", Start: "0:20", End: "0:20"}, testOptions(t, f, &mockTrimmer{}))
	assert.ErrorIs(t, err, ErrEmptyRange)
	assert.Equal(t, StageParse, StageOf(err))
	assert.Zero(t, f.calls)
}

func TestRunFetchError(t *testing.T) {
	boom := errors.New("video unavailable")
	f := &mockFetcher{err: boom, partial: true}
	tr := &mockTrimmer{}
	opts := testOptions(t, f, tr)

	_, err := Run(context.Background(), Request{URL: "U", Start: "1", End: "2"}, opts)
	require.Error(t, err)
	assert.Equal(t, StageFetch, StageOf(err))
	assert.ErrorIs(t, err, boom)
	assert.Zero(t, tr.calls)
	assert.NoFileExists(t, opts.Temp)
}

func TestRunTrimErrorStillRemovesTemp(t *testing.T) {
	boom := errors.New("exit status 1")
	tr := &mockTrimmer{err: boom}
	opts := testOptions(t, &mockFetcher{}, tr)

	_, err := Run(context.Background(), Request{URL: "U", Start: "1", End: "2"}, opts)
	require.Error(t, err)
	assert.Equal(t, StageTrim, StageOf(err))
	assert.ErrorIs(t, err, boom)
	assert.NoFileExists(t, opts.Temp)
}

func TestRunCleanupError(t *testing.T) {
	rmErr := errors.New("permission denied")
	opts := testOptions(t, &mockFetcher{}, &mockTrimmer{})
	opts.Remove = func(string) error { return rmErr }

	res, err := Run(context.Background(), Request{URL: "U", Start: "1", End: "2"}, opts)
	require.Error(t, err)
	require.NotNil(t, res)
	assert.Equal(t, opts.Output, res.Output)

	var se *StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, StageCleanup, se.Stage)
	assert.Equal(t, opts.Temp, se.Path)
	assert.Contains(t, err.Error(), opts.Temp)
}

func TestRunCleanupErrorStillReportsDone(t *testing.T) {
	var kinds []EventKind
	opts := testOptions(t, &mockFetcher{}, &mockTrimmer{})
	opts.Remove = func(string) error { return errors.New("busy") }
	opts.Observer = ObserverFunc(func(e Event) { kinds = append(kinds, e.Kind) })

	_, err := Run(context.Background(), Request{URL: "U", Start: "1", End: "2"}, opts)
	require.Error(t, err)
	require.NotEmpty(t, kinds)
	assert.Equal(t, EventDone, kinds[len(kinds)-1])
}

func TestRunTrimAndCleanupErrors(t *testing.T) {
	trimErr := errors.New("exit status 1")
	rmErr := errors.New("busy")
	opts := testOptions(t, &mockFetcher{}, &mockTrimmer{err: trimErr})
	opts.Remove = func(string) error { return rmErr }

	res, err := Run(context.Background(), Request{URL: "U", Start: "1", End: "2"}, opts)
	assert.Nil(t, res)
	assert.Equal(t, StageTrim, StageOf(err))
	assert.ErrorIs(t, err, trimErr)
	assert.ErrorIs(t, err, rmErr)
}

func TestRunEmitsEvents(t *testing.T) {
	var kinds []EventKind
	opts := testOptions(t, &mockFetcher{}, &mockTrimmer{})
	opts.Observer = ObserverFunc(func(e Event) { kinds = append(kinds, e.Kind) })

	_, err := Run(context.Background(), Request{URL: "U", Start: "1", End: "2"}, opts)
	require.NoError(t, err)
	assert.Equal(t, []EventKind{EventFetchStarted, EventFetchDone, EventTrimStarted, EventDone}, kinds)
}

func TestStageErrorMessages(t *testing.T) {
	inner := errors.New("x")
	assert.Equal(t, "fetch failed: x", (&StageError{Stage: StageFetch, Err: inner}).Error())
	assert.Equal(t, "trim failed: x", (&StageError{Stage: StageTrim, Err: inner}).Error())
	assert.Equal(t, "cleanup failed, temp.mp4 left on disk: x", (&StageError{Stage: StageCleanup, Err: inner, Path: "temp.mp4"}).Error())
	assert.Equal(t, Stage(""), StageOf(inner))
}
