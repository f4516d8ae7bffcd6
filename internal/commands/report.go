package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/greenacre-dev/farmdesk/internal/ledger"
	"github.com/greenacre-dev/farmdesk/internal/model"
)

func newReportCommand() *cobra.Command {
	reportCmd := &cobra.Command{
		Use:   "report",
		Short: "Financial statements",
	}
	reportCmd.AddCommand(
		newReportSubcommand("income", "Income statement", printIncomeStatement),
		newReportSubcommand("balance", "Balance sheet", printBalanceSheet),
		newReportSubcommand("trial", "Trial balance", printTrialBalance),
		newReportSubcommand("tree", "Account balances rolled up the chart", printAccountTree),
	)
	return reportCmd
}

type reportFunc func(out io.Writer, books *ledger.Books, p ledger.Period) error

func newReportSubcommand(use, short string, run reportFunc) *cobra.Command {
	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
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
		return run(cmd.OutOrStdout(), books, p)
	}
	return cmd
}

func printSection(w io.Writer, title string, lines []ledger.StatementLine) {
	fmt.Fprintf(w, "%s\t\t\n", title)
	for _, l := range lines {
		fmt.Fprintf(w, "  %s %s\t%s\t\n", l.Account.Code, l.Account.Name, money(l.Amount))
	}
}

func printIncomeStatement(out io.Writer, books *ledger.Books, p ledger.Period) error {
	is, err := books.IncomeStatement(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Income statement, %s\n\n", p)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	printSection(w, "Revenue", is.Revenues)
	fmt.Fprintf(w, "Total revenue\t%s\t\n", money(is.TotalRevenue))
	printSection(w, "Expenses", is.Expenses)
	fmt.Fprintf(w, "Total expenses\t%s\t\n", money(is.TotalExpenses))
	fmt.Fprintf(w, "Net income\t%s\t\n", money(is.NetIncome))
	return w.Flush()
}

func printBalanceSheet(out io.Writer, books *ledger.Books, p ledger.Period) error {
	bs, err := books.BalanceSheet(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Balance sheet, %s\n\n", p)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	printSection(w, "Assets", bs.Assets)
	fmt.Fprintf(w, "Total assets\t%s\t\n", money(bs.TotalAssets))
	printSection(w, "Liabilities", bs.Liabilities)
	fmt.Fprintf(w, "Total liabilities\t%s\t\n", money(bs.TotalLiabilities))
	printSection(w, "Equity", bs.Equity)
	fmt.Fprintf(w, "  Net income\t%s\t\n", money(bs.NetIncome))
	fmt.Fprintf(w, "Total equity\t%s\t\n", money(bs.TotalEquity))
	if err := w.Flush(); err != nil {
		return err
	}
	if !bs.Balanced() {
		fmt.Fprintf(out, "\nWARNING: assets differ from liabilities plus equity by %s\n", money(bs.Balance))
	}
	return nil
}

func printTrialBalance(out io.Writer, books *ledger.Books, p ledger.Period) error {
	tb, err := books.TrialBalance(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Trial balance, %s\n\n", p)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, "Account\tDebit\tCredit\t")
	for _, l := range tb.Lines {
		fmt.Fprintf(w, "%s %s\t%s\t%s\t\n", l.Account.Code, l.Account.Name, money(l.Debit), money(l.Credit))
	}
	fmt.Fprintf(w, "Total\t%s\t%s\t\n", money(tb.TotalDebit), money(tb.TotalCredit))
	if err := w.Flush(); err != nil {
		return err
	}
	if !tb.Balanced() {
		fmt.Fprintf(out, "\nWARNING: debits %s do not equal credits %s\n", money(tb.TotalDebit), money(tb.TotalCredit))
	}
	return nil
}

func printAccountTree(out io.Writer, books *ledger.Books, p ledger.Period) error {
	rolled, err := books.Rollups(p)
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "Account tree, %s\n\n", p)
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', tabwriter.AlignRight)
	var walk func(a model.Account, depth int)
	walk = func(a model.Account, depth int) {
		fmt.Fprintf(w, "%*s%s %s\t%s\t\n", depth*2, "", a.Code, a.Name, money(rolled[a.ID]))
		for _, c := range books.Accounts.Children(a.ID) {
			walk(c, depth+1)
		}
	}
	for _, a := range books.Accounts.All() {
		if a.ParentID == 0 {
			walk(a, 0)
		}
	}
	return w.Flush()
}
