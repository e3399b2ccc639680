package main

import (
	"fmt"
	"os"
	"time"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/filter"
	"github.com/Veraticus/ledgerlens/internal/ingest"
	"github.com/Veraticus/ledgerlens/internal/model"
)

// progressThreshold is the row count above which ingest shows a progress bar.
const progressThreshold = 1000

func ingestConfig() ingest.Config {
	cfg := ingest.DefaultConfig()
	if v := viper.GetInt64("ingest.max_file_size"); v > 0 {
		cfg.MaxFileSize = v
	}
	if v := viper.GetInt("ingest.max_rows"); v > 0 {
		cfg.MaxRows = v
	}
	cfg.Strict = viper.GetBool("ingest.strict")
	cfg.DetectDuplicates = viper.GetBool("ingest.detect_duplicates")

	var bar *progressbar.ProgressBar
	cfg.Progress = func(done, total int) {
		if total < progressThreshold {
			return
		}
		if bar == nil {
			bar = progressbar.NewOptions(total,
				progressbar.OptionSetWriter(os.Stderr),
				progressbar.OptionShowCount(),
				progressbar.OptionSetWidth(40),
				progressbar.OptionSetDescription("Parsing transactions..."),
			)
		}
		_ = bar.Set(done)
		if done == total {
			_ = bar.Finish()
			fmt.Fprintln(os.Stderr)
		}
	}
	return cfg
}

func readInput(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return data, nil
}

// loadTransactions ingests the file and prints any diagnostics. It returns an
// error only when the file produced no usable transactions.
func loadTransactions(path string) ([]model.Transaction, error) {
	data, err := readInput(path)
	if err != nil {
		return nil, err
	}

	result := ingest.Ingest(data, path, ingestConfig())
	printDiagnostics(result)

	if len(result.Transactions) == 0 && len(result.Errors) > 0 {
		return nil, fmt.Errorf("no transactions could be read from %s", path)
	}
	return result.Transactions, nil
}

func printDiagnostics(result ingest.Result) {
	for _, e := range result.Errors {
		fmt.Println(cli.FormatError(e.String()))
	}
	for _, w := range result.Warnings {
		fmt.Println(cli.FormatWarning(w.String()))
	}
}

func addFilterFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "only include transactions whose description contains this text")
	cmd.Flags().StringSlice("categories", nil, "only include these categories (comma-separated)")
	cmd.Flags().String("from", "", "only include transactions on or after this date (2006-01-02)")
	cmd.Flags().String("to", "", "only include transactions through the end of this date (2006-01-02)")
}

func filterSpecFromFlags(cmd *cobra.Command) (filter.Spec, error) {
	spec := filter.New()
	spec.Search, _ = cmd.Flags().GetString("search")
	spec.Categories, _ = cmd.Flags().GetStringSlice("categories")

	if raw, _ := cmd.Flags().GetString("from"); raw != "" {
		from, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return spec, fmt.Errorf("invalid --from date: %w", err)
		}
		spec.From = &from
	}
	if raw, _ := cmd.Flags().GetString("to"); raw != "" {
		to, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return spec, fmt.Errorf("invalid --to date: %w", err)
		}
		spec.To = &to
	}
	return spec, nil
}

// loadFiltered ingests the file and applies the command's filter flags,
// echoing the active filters when any are set.
func loadFiltered(cmd *cobra.Command, path string) ([]model.Transaction, error) {
	spec, err := filterSpecFromFlags(cmd)
	if err != nil {
		return nil, err
	}

	transactions, err := loadTransactions(path)
	if err != nil {
		return nil, err
	}

	if filter.ActiveCount(spec) > 0 {
		fmt.Println(cli.SubtleStyle.Render("Filters: " + filter.Describe(spec)))
	}
	return filter.Apply(transactions, spec), nil
}
