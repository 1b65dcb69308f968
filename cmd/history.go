package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/user/ytcut/config"
	"github.com/user/ytcut/db"
	"github.com/user/ytcut/pkg/timeutil"
	"github.com/user/ytcut/tui/components"
	"github.com/user/ytcut/tui/styles"
)

func newHistoryCmd(v *viper.Viper) *cobra.Command {
	historyCmd := &cobra.Command{
		Use:   "history",
		Short: "List previous cuts",
		Long:  `Display previous cuts, newest first, with their outcome. Use --clear to delete the history.`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load(v)
			limit, _ := cmd.Flags().GetInt("limit")
			clearAll, _ := cmd.Flags().GetBool("clear")
			out := cmd.OutOrStdout()

			database, err := db.Open(cfg.HistoryDB)
			if err != nil {
				return fmt.Errorf("failed to open database: %w", err)
			}
			defer database.Close()

			if clearAll {
				n, err := db.ClearCuts(database)
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "Deleted %d cut(s).\n", n)
				return nil
			}

			cuts, err := db.ListCuts(database, limit)
			if err != nil {
				return err
			}
			if len(cuts) == 0 {
				fmt.Fprintln(out, "No cuts recorded yet.")
				return nil
			}

			w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "When\tStatus\tRange\tQuality\tSize\tTitle\tOutput")
			fmt.Fprintln(w, "----\t------\t-----\t-------\t----\t-----\t------")
			for _, c := range cuts {
				span := "-"
				if c.EndSeconds > 0 {
					span = fmt.Sprintf("%s-%s", timeutil.FormatTime(c.StartSeconds), timeutil.FormatTime(c.EndSeconds))
				}
				title := c.Title
				if title == "" {
					title = c.URL
				}
				size := "-"
				if c.SizeBytes > 0 {
					size = humanize.Bytes(uint64(c.SizeBytes))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
					humanize.Time(c.CreatedAt),
					c.Status,
					span,
					orDash(c.Quality),
					size,
					components.Truncate(title, 40),
					orDash(c.Output),
				)
			}
			w.Flush()

			fmt.Fprintln(out, styles.SecondaryText.Render(fmt.Sprintf("\n%d cut(s) shown.", len(cuts))))
			return nil
		},
	}

	historyCmd.Flags().IntP("limit", "n", 20, "Maximum number of cuts to show (0 for all)")
	historyCmd.Flags().Bool("clear", false, "Delete all recorded cuts")
	return historyCmd
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
