package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxpl/internal/cli/config"
	"github.com/rustyeddy/fxpl/journal"
)

func New(rc *config.RootConfig) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "journal",
		Short: "Query saved calculations",
		Long: `Query and export calculations recorded with "fxpl calc --save".

Examples:
  fxpl journal list --limit 5
  fxpl journal show <calc-id>
  fxpl journal today
  fxpl journal day 2024-01-15
  fxpl journal export --out calcs.csv`,
	}

	cmd.AddCommand(
		newShowCmd(rc),
		newListCmd(rc),
		newTodayCmd(rc),
		newDayCmd(rc),
		newExportCmd(rc),
	)
	return cmd
}

func newShowCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "show <calc-id>",
		Short: "Show a single calculation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.OpenSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			rec, err := j.GetCalc(args[0])
			if err != nil {
				return fmt.Errorf("get calc: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatCalcOrg(rec))
			return nil
		},
	}
}

func newListCmd(rc *config.RootConfig) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent calculations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := rc.OpenSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			recs, err := j.ListRecent(limit)
			if err != nil {
				return fmt.Errorf("query calcs: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatCalcsOrg(recs))
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "number of calculations to show")
	return cmd
}

func newTodayCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "List calculations made today",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := time.Local
			return listDay(cmd, rc, loc, time.Now().In(loc).Format("2006-01-02"))
		},
	}
}

func newDayCmd(rc *config.RootConfig) *cobra.Command {
	return &cobra.Command{
		Use:   "day <YYYY-MM-DD>",
		Short: "List calculations made on a specific day",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return listDay(cmd, rc, time.Local, args[0])
		},
	}
}

func listDay(cmd *cobra.Command, rc *config.RootConfig, loc *time.Location, day string) error {
	start, end, err := dayBounds(loc, day)
	if err != nil {
		return fmt.Errorf("date: %w", err)
	}

	j, err := rc.OpenSQLite()
	if err != nil {
		return err
	}
	defer j.Close()

	recs, err := j.ListCalcsBetween(start, end)
	if err != nil {
		return fmt.Errorf("query calcs: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), journal.FormatCalcsOrg(recs))
	return nil
}

func newExportCmd(rc *config.RootConfig) *cobra.Command {
	var (
		out   string
		since string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export calculations to CSV",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Unix(0, 0)
			if since != "" {
				var err error
				if start, _, err = dayBounds(time.Local, since); err != nil {
					return fmt.Errorf("since: %w", err)
				}
			}

			j, err := rc.OpenSQLite()
			if err != nil {
				return err
			}
			defer j.Close()

			recs, err := j.ListCalcsBetween(start, time.Now().Add(time.Minute))
			if err != nil {
				return fmt.Errorf("query calcs: %w", err)
			}

			if err := writeExport(out, rc.Cfg.Journal.CSVPath, recs); err != nil {
				return err
			}

			rc.Log.Info("journal exported", zap.String("path", out), zap.Int("calcs", len(recs)))
			fmt.Fprintf(cmd.OutOrStdout(), "✓ Exported %d calculations to %s\n", len(recs), out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&out, "out", "o", "calcs.csv", "output CSV path")
	cmd.Flags().StringVar(&since, "since", "", "only export calculations on or after YYYY-MM-DD")
	return cmd
}

// writeExport replaces out atomically. It refuses to touch the append-only
// CSV journal.
func writeExport(out, csvJournal string, recs []journal.Record) error {
	if csvJournal != "" && samePath(out, csvJournal) {
		return fmt.Errorf("refusing to overwrite the CSV journal %s", csvJournal)
	}

	tmp, err := os.CreateTemp(filepath.Dir(out), ".fxpl-export-*.csv")
	if err != nil {
		return fmt.Errorf("create %s: %w", out, err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}

	w, err := journal.NewCSV(tmpPath)
	if err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("create %s: %w", out, err)
	}
	for _, r := range recs {
		if err := w.RecordCalc(r); err != nil {
			_ = w.Close()
			_ = os.Remove(tmpPath)
			return fmt.Errorf("write %s: %w", r.ID, err)
		}
	}
	if err := w.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return err
	}
	if err := os.Rename(tmpPath, out); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", out, err)
	}
	return nil
}

func samePath(a, b string) bool {
	pa, errA := filepath.Abs(a)
	pb, errB := filepath.Abs(b)
	if errA != nil || errB != nil {
		return filepath.Clean(a) == filepath.Clean(b)
	}
	if pa == pb {
		return true
	}
	ia, errA := os.Stat(pa)
	ib, errB := os.Stat(pb)
	return errA == nil && errB == nil && os.SameFile(ia, ib)
}

func dayBounds(loc *time.Location, day string) (time.Time, time.Time, error) {
	t, err := time.ParseInLocation("2006-01-02", day, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
	end := start.AddDate(0, 0, 1)
	return start, end, nil
}
