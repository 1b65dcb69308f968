package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/user/ytcut/config"
	"github.com/user/ytcut/cutter"
	"github.com/user/ytcut/db"
	"github.com/user/ytcut/deps"
	"github.com/user/ytcut/ffmpeg"
	"github.com/user/ytcut/mpv"
	"github.com/user/ytcut/pkg/timeutil"
	"github.com/user/ytcut/tui"
	"github.com/user/ytcut/tui/forms"
	"github.com/user/ytcut/tui/styles"
	"github.com/user/ytcut/youtube"
)

// Collaborators, replaced in tests.
var (
	newFetcher = func(log *slog.Logger, progress func(written, total int64)) cutter.Fetcher {
		f := youtube.NewFetcher(log)
		f.Progress = progress
		return f
	}
	newTrimmer = func(binary string, log *slog.Logger) cutter.Trimmer {
		return &ffmpeg.Trimmer{Binary: binary, Logger: log}
	}
	checkFfmpeg = deps.CheckFfmpeg
	preview     = mpv.Preview
)

func runCut(cmd *cobra.Command, v *viper.Viper) error {
	cfg := config.Load(v)
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()
	errOut := cmd.ErrOrStderr()

	runID := uuid.NewString()
	log := newLogger(errOut, cfg.Verbose, cfg.Quiet).With("run_id", runID)

	input := forms.CutFormResult{
		URL:   v.GetString("url"),
		Start: v.GetString("start"),
		End:   v.GetString("end"),
	}
	if err := prompt(ctx, &input, cfg.Accessible); err != nil {
		return err
	}
	input.Normalize()

	// Fail before downloading anything if ffmpeg cannot run.
	if err := checkFfmpeg(cfg.Ffmpeg); err != nil {
		return err
	}

	req := cutter.Request{URL: input.URL, Start: input.Start, End: input.End}
	run := func(ctx context.Context, obs cutter.Observer) (*cutter.Result, error) {
		progress := func(written, total int64) {
			obs.Event(cutter.Event{Kind: cutter.EventFetchProgress, Written: written, Total: total})
		}
		return cutter.Run(ctx, req, cutter.Options{
			Fetcher:  newFetcher(log, progress),
			Trimmer:  newTrimmer(cfg.Ffmpeg, log),
			Observer: obs,
			Output:   cfg.Output,
			Temp:     cfg.Temp,
			Logger:   log,
		})
	}

	var res *cutter.Result
	var err error
	if showProgress(cfg, errOut) {
		res, err = tui.RunWithProgress(ctx, errOut, run)
	} else {
		res, err = run(ctx, cutter.ObserverFunc(func(cutter.Event) {}))
	}

	if !cfg.NoHistory {
		recordHistory(log, cfg.HistoryDB, runID, req, res, err)
	}

	if res != nil && !cfg.Quiet {
		fmt.Fprintln(out, styles.Success.Render("✅ Vídeo recortado pronto!"))
		fmt.Fprintln(out, styles.SecondaryText.Render(describe(res)))
	}
	if err != nil {
		return err
	}

	if cfg.Play {
		duration, err := preview(ctx, res.Output)
		if err != nil {
			log.Warn("preview failed", "error", err)
			fmt.Fprintln(errOut, styles.Warning.Render("Preview failed:"), err)
		} else if !cfg.Quiet {
			fmt.Fprintf(out, "Playing %s (duration: %s)\n", res.Output, timeutil.FormatTime(int(duration)))
		}
	}
	return nil
}

// prompt asks for whatever input is still missing. Plain line prompts are
// used when requested or when stdin is not a terminal.
func prompt(ctx context.Context, input *forms.CutFormResult, accessible bool) error {
	form := forms.NewCutForm(input)
	if form == nil {
		return nil
	}
	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		accessible = true
	}
	if err := form.WithAccessible(accessible).RunWithContext(ctx); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return fmt.Errorf("aborted")
		}
		return fmt.Errorf("prompt: %w", err)
	}
	return nil
}

func showProgress(cfg config.Config, w io.Writer) bool {
	if cfg.Quiet || cfg.Verbose {
		return false
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func describe(res *cutter.Result) string {
	span := fmt.Sprintf("%s - %s", timeutil.FormatTime(res.Range.Start), timeutil.FormatTime(res.Range.End))
	if res.Video == nil || res.Video.Title == "" {
		return fmt.Sprintf("%s → %s", span, res.Output)
	}
	return fmt.Sprintf("%s [%s] %s → %s", res.Video.Title, res.Video.Quality, span, res.Output)
}

// recordHistory stores the outcome of a run. Failures are logged, never returned.
func recordHistory(log *slog.Logger, dbPath, runID string, req cutter.Request, res *cutter.Result, runErr error) {
	database, err := db.Open(dbPath)
	if err != nil {
		log.Warn("history unavailable", "error", err)
		return
	}
	defer database.Close()

	c := db.Cut{ID: runID, URL: req.URL, Status: statusFor(runErr)}
	if runErr != nil {
		c.Error = runErr.Error()
	}
	if r, err := req.Parse(); err == nil {
		c.StartSeconds, c.EndSeconds = r.Start, r.End
	}
	if res != nil {
		c.Output = res.Output
		if res.Video != nil {
			c.VideoID = res.Video.ID
			c.Title = res.Video.Title
			c.Quality = res.Video.Quality
			c.SizeBytes = res.Video.Size
		}
	}
	if _, err := db.InsertCut(database, c); err != nil {
		log.Warn("failed to record history", "error", err)
	}
}

func statusFor(err error) string {
	if err == nil {
		return db.StatusOK
	}
	switch cutter.StageOf(err) {
	case cutter.StageParse:
		return db.StatusParseFailed
	case cutter.StageTrim:
		return db.StatusTrimFailed
	case cutter.StageCleanup:
		return db.StatusCleanupFailed
	}
	return db.StatusFetchFailed
}
