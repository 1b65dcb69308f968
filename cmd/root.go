package cmd

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/user/ytcut/config"
	"github.com/user/ytcut/deps"
	"github.com/user/ytcut/tui/styles"
)

var Version = "0.1.0"

// newRootCmd builds the command tree. Running the root command with no
// subcommand performs a cut.
func newRootCmd() *cobra.Command {
	v := config.New()
	var configFile string

	rootCmd := &cobra.Command{
		Use:   "ytcut",
		Short: "Download a YouTube video and cut a segment out of it",
		Long: `ytcut downloads a YouTube video at the highest available resolution,
trims it to the requested time range with ffmpeg (stream copy, no re-encoding)
and removes the intermediate download.

Missing values are prompted for:
  URL:
  Início (HH:MM:SS):
  Fim (HH:MM:SS):

Times are accepted as SS, MM:SS or HH:MM:SS. The end time must be after
the start time; an empty or reversed range is rejected before anything is
downloaded.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.BindFlags(v, cmd.Flags()); err != nil {
				return err
			}
			return config.ReadFile(v, configFile)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCut(cmd, v)
		},
	}

	flags := rootCmd.Flags()
	flags.String("url", "", "Video URL or id (prompted when empty)")
	flags.String("start", "", "Start time, SS, MM:SS or HH:MM:SS (prompted when empty)")
	flags.String("end", "", "End time, SS, MM:SS or HH:MM:SS (prompted when empty)")
	flags.StringP(config.KeyOutput, "o", "", "Output file (default \"video_recortado.mp4\")")
	flags.String(config.KeyTemp, "", "Temporary download file (default \"temp.mp4\")")
	flags.Bool(config.KeyPlay, false, "Open the cut in mpv when done")
	flags.Bool("no-history", false, "Do not record this cut in the history database")
	flags.Bool(config.KeyAccessible, false, "Use plain line-based prompts")

	persistent := rootCmd.PersistentFlags()
	persistent.StringVar(&configFile, "config", "", "Config file (default ~/.config/ytcut/config.yaml)")
	persistent.String(config.KeyFfmpeg, "", "ffmpeg binary (default \"ffmpeg\")")
	persistent.String("history-db", "", "History database path (default ~/.local/share/ytcut/history.db)")
	persistent.BoolP(config.KeyQuiet, "q", false, "Only print errors")
	persistent.BoolP(config.KeyVerbose, "v", false, "Debug logging to stderr")

	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newDoctorCmd(v))
	rootCmd.AddCommand(newHistoryCmd(v))
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version number",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ytcut version %s\n", Version)
		},
	}
}

func newDoctorCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Check system dependencies",
		Long:  `Check that ffmpeg (required) and mpv (optional, for --play) are installed and available.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(v)
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, "Checking dependencies...")
			fmt.Fprintln(out)

			missingRequired := false
			for _, s := range deps.CheckAll(cfg.Ffmpeg) {
				if s.Err == nil {
					fmt.Fprintf(out, "✓ %s: OK\n", s.Name)
					continue
				}
				label := "NOT FOUND"
				if !s.Required {
					label = "NOT FOUND (optional)"
				} else {
					missingRequired = true
				}
				fmt.Fprintf(out, "✗ %s: %s\n", s.Name, label)
				var depErr *deps.DependencyError
				if errors.As(s.Err, &depErr) {
					fmt.Fprintf(out, "  Install from: %s\n", depErr.InstallURL)
				}
			}

			fmt.Fprintln(out)
			if missingRequired {
				return fmt.Errorf("required dependencies are missing")
			}
			fmt.Fprintln(out, "All required dependencies are installed!")
			return nil
		},
	}
}

// newLogger writes text logs to w: warnings by default, debug with verbose,
// errors only with quiet.
func newLogger(w io.Writer, verbose, quiet bool) *slog.Logger {
	level := slog.LevelWarn
	switch {
	case verbose:
		level = slog.LevelDebug
	case quiet:
		level = slog.LevelError
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, styles.Warning.Render("Error:"), err)
		os.Exit(1)
	}
}
