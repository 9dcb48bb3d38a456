package size

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rustyeddy/fxpl/internal/cli/config"
	"github.com/rustyeddy/fxpl/market"
	"github.com/rustyeddy/fxpl/risk"
)

func New(rc *config.RootConfig) *cobra.Command {
	var (
		instrument string
		in         risk.Inputs
	)

	cmd := &cobra.Command{
		Use:   "size",
		Short: "Units to trade so a stop-out loses a fixed share of equity",
		Long: `Risk-based position sizing.

Example:
  fxpl size --equity 10000 --risk 0.01 --entry 1.2000 --stop 1.1900`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if instrument == "" {
				instrument = rc.Cfg.Calc.Instrument
			}
			meta, err := market.Lookup(instrument)
			if err != nil {
				return err
			}
			in.PipLocation = meta.PipLocation

			if in.QuoteToAccount == 0 {
				in.QuoteToAccount, err = market.QuoteToAccountRate(meta.Name, rc.Cfg.Account.Currency, in.EntryPrice)
				if err != nil {
					return fmt.Errorf("%w (pass --rate)", err)
				}
			}

			res, err := risk.Size(in)
			if err != nil {
				return err
			}
			rc.Log.Debug("size",
				zap.String("instrument", meta.Name),
				zap.Float64("units", res.Units),
				zap.Float64("stop_pips", res.StopPips),
			)

			money := rc.Cfg.Calc.MoneyPrecision
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%-20s%s\n", "Instrument:", meta.Name)
			fmt.Fprintf(w, "%-20s%.0f\n", "Units:", res.Units)
			fmt.Fprintf(w, "%-20s%.1f\n", "Stop distance:", res.StopPips)
			fmt.Fprintf(w, "%-20s%.*f %s\n", "Risk amount:", money, res.RiskAmount, rc.Cfg.Account.Currency)

			// Units are floored, so the risk actually taken is at most the target.
			actual := risk.PlannedRisk(res.Units, in.EntryPrice, in.StopPrice, in.QuoteToAccount)
			fmt.Fprintf(w, "%-20s%.*f %s\n", "Actual risk:", money, actual, rc.Cfg.Account.Currency)
			fmt.Fprintf(w, "%-20s%.2f%%\n", "Risk of equity:", 100*risk.RiskPct(actual, in.Equity))
			return nil
		},
	}

	cmd.Flags().StringVarP(&instrument, "instrument", "i", "", "instrument, e.g. EUR_USD (default from config)")
	cmd.Flags().Float64Var(&in.Equity, "equity", 0, "account equity (required)")
	cmd.Flags().Float64Var(&in.RiskPct, "risk", 0.01, "fraction of equity to risk, e.g. 0.01")
	cmd.Flags().Float64Var(&in.EntryPrice, "entry", 0, "planned entry price (required)")
	cmd.Flags().Float64Var(&in.StopPrice, "stop", 0, "stop-loss price (required)")
	cmd.Flags().Float64Var(&in.QuoteToAccount, "rate", 0, "quote→account conversion rate for cross pairs")
	_ = cmd.MarkFlagRequired("equity")
	_ = cmd.MarkFlagRequired("entry")
	_ = cmd.MarkFlagRequired("stop")

	return cmd
}
