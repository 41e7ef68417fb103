package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/NautilusOSS/envoi-contracts/pkg/batch"
)

func newReserveBatchCmd(flags *rootFlags) *cobra.Command {
	var options batch.Options
	var journalPath string
	cmd := &cobra.Command{
		Use:   "reserve-batch <file>",
		Short: "Reserve every name listed in a name,owner CSV file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			items, err := batch.ReadFile(args[0])
			if err != nil {
				return err
			}
			a, err := connect(flags, true)
			if err != nil {
				return err
			}
			if journalPath != "" {
				journal, err := batch.OpenJournal(journalPath)
				if err != nil {
					return err
				}
				defer journal.Close()
				options.Journal = journal
			}
			options.Logger = &a.logger

			report, err := batch.ReserveAll(cmd.Context(), a.client, items, options)
			out := cmd.OutOrStdout()
			for _, result := range report.Results {
				line := fmt.Sprintf("%d\t%s\t%s", result.Item.Line, result.Item.Name, result.Status)
				switch {
				case result.Err != nil:
					line += "\t" + result.Err.Error()
				case result.Reason != "":
					line += "\t" + result.Reason
				case result.TxID != "":
					line += "\t" + result.TxID
				}
				fmt.Fprintln(out, line)
			}
			fmt.Fprintf(out, "confirmed %d, simulated %d, skipped %d, failed %d, unrecorded %d\n",
				report.Count(batch.StatusConfirmed),
				report.Count(batch.StatusSimulated),
				report.Count(batch.StatusSkipped),
				report.Count(batch.StatusFailed),
				report.Count(batch.StatusUnrecorded),
			)
			if err != nil {
				return err
			}
			if failed := len(report.Failures()); failed > 0 {
				return fmt.Errorf("%d of %d reservations need attention", failed, len(report.Results))
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&options.Concurrency, "concurrency", batch.DefaultConcurrency, "groups in flight")
	cmd.Flags().Uint64Var(&options.Price, "price", 0, "price recorded with every reservation")
	cmd.Flags().StringVar(&journalPath, "journal", "", "journal file of confirmed reservations")
	return cmd
}
