package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/export"
)

func exportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export <file.csv>",
		Short: "Filter a transaction export and write it back out",
		Long: `Ingest a CSV export, apply the filter flags, and serialize the matching
transactions to a new CSV file. The default column set and date format
round-trip cleanly through ingestion.`,
		Args: cobra.ExactArgs(1),
		RunE: runExport,
	}

	cmd.Flags().StringP("output", "o", "", "output path (default: transactions-<today>.csv)")
	cmd.Flags().StringSlice("columns", nil, "columns to export, in order (default: all)")
	cmd.Flags().String("date-format", string(export.DateFormatTimestamp), "date style: timestamp, short, or long")
	cmd.Flags().Bool("no-header", false, "omit the header row")
	addFilterFlags(cmd)
	return cmd
}

func runExport(cmd *cobra.Command, args []string) error {
	transactions, err := loadFiltered(cmd, args[0])
	if err != nil {
		return err
	}

	cfg := export.DefaultConfig()
	if names, _ := cmd.Flags().GetStringSlice("columns"); len(names) > 0 {
		cfg.Columns = make([]export.Column, len(names))
		for i, name := range names {
			cfg.Columns[i] = export.Column(name)
		}
	}
	if style, _ := cmd.Flags().GetString("date-format"); style != "" {
		switch export.DateFormat(style) {
		case export.DateFormatTimestamp, export.DateFormatShort, export.DateFormatLong:
			cfg.DateFormat = export.DateFormat(style)
		default:
			return fmt.Errorf("invalid date format %q", style)
		}
	}
	if noHeader, _ := cmd.Flags().GetBool("no-header"); noHeader {
		cfg.Header = false
	}
	if out, _ := cmd.Flags().GetString("output"); out != "" {
		cfg.Filename = out
	}

	data := export.Serialize(transactions, cfg)
	if err := os.WriteFile(cfg.Filename, data, 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", cfg.Filename, err)
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Wrote %d transactions to %s", len(transactions), cfg.Filename)))
	return nil
}
