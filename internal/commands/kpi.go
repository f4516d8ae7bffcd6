package commands

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/greenacre-dev/farmdesk/internal/kpi"
)

func newKPICommand() *cobra.Command {
	kpiCmd := &cobra.Command{
		Use:   "kpi",
		Short: "Farm performance ratios",
	}
	kpiCmd.AddCommand(
		newRatioCommand("fcr <feed-kg> <weight-gain-kg>", "Feed conversion ratio", kpi.FeedConversionRatio, ""),
		newRatioCommand("eggs <eggs> <hen-days>", "Egg production percentage", kpi.EggProductionPercent, "%"),
		newMilkYieldCommand(),
		newNBVCommand(),
	)
	return kpiCmd
}

func parseDecimals(args []string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(args))
	for i, a := range args {
		d, err := decimal.NewFromString(a)
		if err != nil {
			return nil, fmt.Errorf("parsing %q: %w", a, err)
		}
		out[i] = d
	}
	return out, nil
}

func newRatioCommand(use, short string, ratio func(a, b decimal.Decimal) (decimal.Decimal, bool), unit string) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseDecimals(args)
			if err != nil {
				return err
			}
			r, ok := ratio(v[0], v[1])
			if !ok {
				return fmt.Errorf("%s: denominator must be positive", short)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s%s\n", short, r.StringFixed(2), unit)
			return nil
		},
	}
}

func newMilkYieldCommand() *cobra.Command {
	var cows int

	cmd := &cobra.Command{
		Use:   "milk <litres>",
		Short: "Milk yield per cow",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseDecimals(args)
			if err != nil {
				return err
			}
			r, ok := kpi.MilkYieldPerCow(v[0], cows)
			if !ok {
				return fmt.Errorf("--cows must be positive")
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Milk yield per cow: %s L\n", r.StringFixed(2))
			return nil
		},
	}
	cmd.Flags().IntVar(&cows, "cows", 0, "cows in milk")
	return cmd
}

func newNBVCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "nbv <cost> <accumulated-depreciation>",
		Short: "Net book value of a fixed asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			v, err := parseDecimals(args)
			if err != nil {
				return err
			}
			a := kpi.FixedAsset{PurchaseCost: v[0], AccumulatedDepreciation: v[1]}
			fmt.Fprintf(cmd.OutOrStdout(), "Net book value: %s\n", money(a.NetBookValue()))
			return nil
		},
	}
}
