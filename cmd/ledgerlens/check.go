package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/ingest"
)

func checkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check <file.csv>",
		Short: "Validate a transaction export without producing a report",
		Long: `Run the full ingestion pipeline over a CSV export and report every
error and warning it produces, without computing any aggregates.

With --strict, any warning fails validation outright.`,
		Args: cobra.ExactArgs(1),
		RunE: runCheck,
	}

	cmd.Flags().Bool("strict", false, "treat warnings as errors")
	cmd.Flags().Bool("duplicates", false, "warn on likely duplicate transactions")
	_ = viper.BindPFlag("ingest.strict", cmd.Flags().Lookup("strict"))
	_ = viper.BindPFlag("ingest.detect_duplicates", cmd.Flags().Lookup("duplicates"))

	return cmd
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	data, err := readInput(path)
	if err != nil {
		return err
	}

	result := ingest.Ingest(data, path, ingestConfig())
	printDiagnostics(result)

	content := fmt.Sprintf("Transactions: %d\nErrors: %d\nWarnings: %d",
		len(result.Transactions), len(result.Errors), len(result.Warnings))
	fmt.Println(cli.RenderBox("Validation Summary", content))

	if len(result.Errors) > 0 {
		return fmt.Errorf("%s failed validation with %d error(s)", path, len(result.Errors))
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("%s is valid", path)))
	return nil
}
