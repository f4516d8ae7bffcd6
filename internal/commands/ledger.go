package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/greenacre-dev/farmdesk/internal/journal"
	"github.com/greenacre-dev/farmdesk/internal/ledger"
)

// addPeriodFlags registers --from and --to and returns a parser for them.
func addPeriodFlags(cmd *cobra.Command) func() (ledger.Period, error) {
	var from, to string
	cmd.Flags().StringVar(&from, "from", "", "first day YYYY-MM-DD (default: beginning)")
	cmd.Flags().StringVar(&to, "to", "", "last day YYYY-MM-DD (default: no limit)")
	return func() (ledger.Period, error) {
		return ledger.ParsePeriod(from, to)
	}
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func newLedgerCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ledger <account-code>",
		Short: "Show an account's running-balance ledger",
		Args:  cobra.ExactArgs(1),
	}
	period := addPeriodFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		p, err := period()
		if err != nil {
			return err
		}
		root, err := rootDir(cmd)
		if err != nil {
			return err
		}
		books, err := ledger.OpenBooks(root)
		if err != nil {
			return err
		}
		acct, l, err := books.Ledger(args[0], p)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s %s (%s), %s\n\n", acct.Code, acct.Name, acct.Type, p)
		printLedger(out, l)
		return nil
	}
	return cmd
}

func printLedger(out io.Writer, l ledger.Ledger) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Date\tEntry\tDescription\tDebit\tCredit\tBalance\t")
	fmt.Fprintf(w, "\t\tOpening balance\t\t\t%s\t\n", money(l.Opening))
	for _, r := range l.Rows {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t\n",
			r.Date.Format(journal.DateFormat), r.EntryID, r.Description,
			money(r.Debit), money(r.Credit), money(r.Balance))
	}
	fmt.Fprintf(w, "\t\tClosing balance\t\t\t%s\t\n", money(l.Closing))
	w.Flush()
}
