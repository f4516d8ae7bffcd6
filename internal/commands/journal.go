package commands

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/greenacre-dev/farmdesk/internal/auditlog"
	"github.com/greenacre-dev/farmdesk/internal/importer"
	"github.com/greenacre-dev/farmdesk/internal/journal"
	"github.com/greenacre-dev/farmdesk/internal/ledger"
)

func newJournalCommand() *cobra.Command {
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Post and check journal entries",
	}
	journalCmd.AddCommand(newJournalAddCommand(), newJournalCheckCommand(), newJournalImportCommand())
	return journalCmd
}

func newJournalAddCommand() *cobra.Command {
	var date, debit, credit, amount, description, reference string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Post a two-line entry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			books, err := ledger.OpenBooks(e.root)
			if err != nil {
				return err
			}

			day := time.Now().UTC().Truncate(24 * time.Hour)
			if date != "" {
				if day, err = time.Parse(journal.DateFormat, date); err != nil {
					return fmt.Errorf("parsing --date: %w", err)
				}
			}
			amt, err := decimal.NewFromString(amount)
			if err != nil {
				return fmt.Errorf("parsing --amount: %w", err)
			}
			dr, ok := books.Accounts.ByCode(debit)
			if !ok {
				return fmt.Errorf("%w: %s", ledger.ErrUnknownAccount, debit)
			}
			cr, ok := books.Accounts.ByCode(credit)
			if !ok {
				return fmt.Errorf("%w: %s", ledger.ErrUnknownAccount, credit)
			}

			entryID, err := books.Journal.AddDouble(journal.AddDoubleParams{
				Date:          day,
				Description:   description,
				DebitAccount:  dr.ID,
				CreditAccount: cr.ID,
				Amount:        amt,
				Reference:     reference,
			})
			if err != nil {
				return err
			}

			e.audit(auditlog.ActionPostEntry, entryID,
				fmt.Sprintf("Dr %s Cr %s %s", dr.Code, cr.Code, amt.StringFixed(2)))
			fmt.Fprintf(cmd.OutOrStdout(), "Posted %s\n", entryID)
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "entry date YYYY-MM-DD (default today)")
	cmd.Flags().StringVar(&debit, "debit", "", "account code to debit (required)")
	cmd.Flags().StringVar(&credit, "credit", "", "account code to credit (required)")
	cmd.Flags().StringVar(&amount, "amount", "", "amount (required)")
	cmd.Flags().StringVar(&description, "description", "", "description (required)")
	cmd.Flags().StringVar(&reference, "reference", "", "external reference")
	for _, f := range []string{"debit", "credit", "amount", "description"} {
		_ = cmd.MarkFlagRequired(f)
	}

	return cmd
}

func newJournalCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Validate every stored journal month",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := rootDir(cmd)
			if err != nil {
				return err
			}
			books, err := ledger.OpenBooks(root)
			if err != nil {
				return err
			}
			problems, err := books.Journal.Validate()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, p := range problems {
				fmt.Fprintln(out, p.Error())
			}
			if len(problems) > 0 {
				return fmt.Errorf("%d journal problem(s)", len(problems))
			}
			fmt.Fprintln(out, "Journal OK")
			return nil
		},
	}
}

func newJournalImportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Post every CSV waiting in import/",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := importer.DefaultRegistry().Get(format)
			if parser == nil {
				return fmt.Errorf("unknown import format %q", format)
			}

			e, err := loadEnv(cmd)
			if err != nil {
				return err
			}
			defer e.logger.Sync()

			books, err := ledger.OpenBooks(e.root)
			if err != nil {
				return err
			}
			files, err := importer.Scan(e.root)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, file := range files {
				n, skipped, err := importFile(e, books, parser, file)
				if err != nil {
					return fmt.Errorf("importing %s: %w", file.Name, err)
				}
				if err := importer.MarkProcessed(e.root, file.Name); err != nil {
					return err
				}
				fmt.Fprintf(out, "Imported %d entries from %s (%d duplicates skipped)\n", n, file.Name, skipped)
			}
			if len(files) == 0 {
				fmt.Fprintln(out, "Nothing to import")
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "entries", "file format: entries or milk")
	return cmd
}

// importFile posts a file's rows in order. Rows posted before a failure
// stay posted; re-running skips them by reference.
func importFile(e *env, books *ledger.Books, parser importer.Parser, file importer.FileInfo) (posted, skipped int, err error) {
	f, err := os.Open(file.Path)
	if err != nil {
		return 0, 0, err
	}
	defer f.Close()

	rows, err := parser.Parse(f)
	if err != nil {
		return 0, 0, err
	}
	existing, err := books.Journal.ReadAll()
	if err != nil {
		return 0, 0, err
	}
	rows, skipped = importer.Deduplicate(rows, existing)

	for _, row := range rows {
		dr, ok := books.Accounts.ByCode(row.DebitCode)
		if !ok {
			return posted, skipped, fmt.Errorf("%w: %s", ledger.ErrUnknownAccount, row.DebitCode)
		}
		cr, ok := books.Accounts.ByCode(row.CreditCode)
		if !ok {
			return posted, skipped, fmt.Errorf("%w: %s", ledger.ErrUnknownAccount, row.CreditCode)
		}
		entryID, err := books.Journal.AddDouble(journal.AddDoubleParams{
			Date:          row.Date,
			Description:   row.Description,
			DebitAccount:  dr.ID,
			CreditAccount: cr.ID,
			Amount:        row.Amount,
			Reference:     row.Reference,
		})
		if err != nil {
			return posted, skipped, err
		}
		e.audit(auditlog.ActionPostEntry, entryID,
			fmt.Sprintf("Dr %s Cr %s %s from %s", dr.Code, cr.Code, row.Amount.StringFixed(2), file.Name))
		posted++
	}
	return posted, skipped, nil
}
