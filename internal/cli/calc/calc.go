package calc

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxpl/internal/cli/config"
	"github.com/rustyeddy/fxpl/journal"
	"github.com/rustyeddy/fxpl/market"
	"github.com/rustyeddy/fxpl/position"
	"github.com/rustyeddy/fxpl/risk"
)

type options struct {
	Entries    []string
	Exit       float64
	Instrument string
	Leverage   float64
	Rate       float64
	Precision  int
	Exact      bool
	Stop       float64
	Target     float64
	Equity     float64
	Save       bool
	Note       string
}

func New(rc *config.RootConfig) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "calc",
		Short: "Average entry price and profit/loss of a multi-lot position",
		Long: `Compute the volume-weighted average entry price of one or more entry
lots and the profit/loss of closing them all at the exit price.

Each lot is given as PRICE@UNITS.

Examples:
  fxpl calc -e 1.1000@1000 -e 1.2000@1000 -x 1.3000
  fxpl calc -i USD_JPY -e 150.00@1000 -x 150.50 --leverage 30 --save`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, rc, opts)
		},
	}

	cmd.Flags().StringArrayVarP(&opts.Entries, "entry", "e", nil, "entry lot as PRICE@UNITS (repeatable)")
	cmd.Flags().Float64VarP(&opts.Exit, "exit", "x", 0, "exit price (required)")
	cmd.Flags().StringVarP(&opts.Instrument, "instrument", "i", "", "instrument, e.g. EUR_USD (default from config)")
	cmd.Flags().Float64VarP(&opts.Leverage, "leverage", "l", 0, "leverage, e.g. 50 for 50:1 (default from config)")
	cmd.Flags().Float64Var(&opts.Rate, "rate", 0, "quote→account conversion rate for cross pairs")
	cmd.Flags().IntVarP(&opts.Precision, "precision", "p", -1, "decimals for prices (default from config, then instrument)")
	cmd.Flags().BoolVar(&opts.Exact, "exact", false, "use decimal arithmetic for average and P/L")
	cmd.Flags().Float64Var(&opts.Stop, "stop", 0, "stop-loss price; reports risk from the average entry")
	cmd.Flags().Float64Var(&opts.Target, "target", 0, "take-profit price; reports reward:risk with --stop")
	cmd.Flags().Float64Var(&opts.Equity, "equity", 0, "account equity; reports risk at --stop as a share of it")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "record the calculation in the journal")
	cmd.Flags().StringVar(&opts.Note, "note", "", "note stored with a saved calculation")
	_ = cmd.MarkFlagRequired("entry")
	_ = cmd.MarkFlagRequired("exit")

	return cmd
}

func run(cmd *cobra.Command, rc *config.RootConfig, opts *options) error {
	cfg := rc.Cfg

	inst := opts.Instrument
	if inst == "" {
		inst = cfg.Calc.Instrument
	}
	meta, err := market.Lookup(inst)
	if err != nil {
		return err
	}

	if err := checkRiskFlags(opts); err != nil {
		return err
	}

	lots, err := position.ParseLots(opts.Entries)
	if err != nil {
		return err
	}

	rate := opts.Rate
	if rate == 0 {
		rate, err = market.QuoteToAccountRate(meta.Name, cfg.Account.Currency, opts.Exit)
		if err != nil {
			return fmt.Errorf("%w (pass --rate)", err)
		}
	}

	leverage := opts.Leverage
	if leverage == 0 {
		leverage = cfg.Calc.Leverage
	}

	s, err := position.Summarize(position.Request{
		Instrument:     meta.Name,
		PipLocation:    meta.PipLocation,
		Entries:        lots,
		ExitPrice:      opts.Exit,
		Leverage:       leverage,
		QuoteToAccount: rate,
		Exact:          opts.Exact,
	})
	if err != nil {
		return fmt.Errorf("calculate: %w", err)
	}

	rc.Log.Debug("calc",
		zap.String("instrument", s.Instrument),
		zap.Int("lots", len(lots)),
		zap.Float64("average_price", s.AveragePrice),
		zap.Float64("profit_loss", s.ProfitLoss),
	)

	prec := opts.Precision
	if prec < 0 {
		prec = cfg.Calc.PricePrecision
		if prec == 0 {
			prec = meta.DisplayPrecision
		}
	}
	printSummary(cmd.OutOrStdout(), s, meta, cfg.Account.Currency, prec, cfg.Calc.MoneyPrecision)
	if opts.Stop > 0 {
		printRisk(cmd.OutOrStdout(), s, opts, rate, cfg.Account.Currency, cfg.Calc.MoneyPrecision)
	}

	if !opts.Save {
		return nil
	}

	j, err := rc.OpenJournal()
	if err != nil {
		return fmt.Errorf("open journal: %w", err)
	}
	defer j.Close()

	rec := journal.NewRecord(lots, s, opts.Note, time.Now())
	if err := j.RecordCalc(rec); err != nil {
		return fmt.Errorf("record calc: %w", err)
	}
	rc.Log.Info("calculation saved",
		zap.String("calc_id", rec.ID),
		zap.String("journal", cfg.Journal.Type),
	)

	fmt.Fprintf(cmd.OutOrStdout(), "✓ Saved calculation %s\n", rec.ID)
	return nil
}

func printSummary(w io.Writer, s position.Summary, meta market.InstrumentMeta, account string, prec, money int) {
	line := func(label, format string, args ...any) {
		fmt.Fprintf(w, "%-20s"+format+"\n", append([]any{label + ":"}, args...)...)
	}

	line("Instrument", "%s", s.Instrument)
	line("Units", "%s", trim(s.Units))
	line("Average entry", "%.*f", prec, s.AveragePrice)
	line("Exit price", "%.*f", prec, s.ExitPrice)
	line("Pips", "%.1f", s.Pips)
	line("Profit/Loss", "%.*f %s", money, s.ProfitLoss, meta.QuoteCurrency)
	if meta.QuoteCurrency != account {
		line("Profit/Loss (acct)", "%.*f %s", money, s.AccountPL, account)
	}
	line("Leverage", "%s:1", trim(s.Leverage))
	line("Margin", "%.*f %s", money, s.Margin, account)
	line("Return on margin", "%.2f%%", 100*s.ReturnOnMargin)
}

// checkRiskFlags rejects stop/target/equity combinations that would
// otherwise be ignored.
func checkRiskFlags(opts *options) error {
	switch {
	case opts.Stop < 0:
		return fmt.Errorf("%w: --stop must be positive", risk.ErrInvalidInputs)
	case opts.Target < 0:
		return fmt.Errorf("%w: --target must be positive", risk.ErrInvalidInputs)
	case opts.Equity < 0:
		return fmt.Errorf("%w: --equity must be positive", risk.ErrInvalidInputs)
	case opts.Target > 0 && opts.Stop == 0:
		return fmt.Errorf("%w: --target requires --stop", risk.ErrInvalidInputs)
	case opts.Equity > 0 && opts.Stop == 0:
		return fmt.Errorf("%w: --equity requires --stop", risk.ErrInvalidInputs)
	}
	return nil
}

func printRisk(w io.Writer, s position.Summary, opts *options, rate float64, account string, money int) {
	planned := risk.PlannedRisk(s.Units, s.AveragePrice, opts.Stop, rate)
	fmt.Fprintf(w, "%-20s%.*f %s\n", "Risk at stop:", money, planned, account)
	if opts.Equity > 0 {
		fmt.Fprintf(w, "%-20s%.2f%%\n", "Risk of equity:", 100*risk.RiskPct(planned, opts.Equity))
	}
	if opts.Target > 0 {
		fmt.Fprintf(w, "%-20s%.2f\n", "Reward:risk:", risk.RR(s.AveragePrice, opts.Stop, opts.Target))
	}
}

func trim(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
