package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgerlens/internal/analytics"
	"github.com/Veraticus/ledgerlens/internal/cli"
)

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report <file.csv>",
		Short: "Summary statistics and category breakdown",
		Args:  cobra.ExactArgs(1),
		RunE:  runReport,
	}
	addFilterFlags(cmd)
	return cmd
}

func runReport(cmd *cobra.Command, args []string) error {
	transactions, err := loadFiltered(cmd, args[0])
	if err != nil {
		return err
	}

	stats := analytics.Summary(transactions)

	dateRange := "—"
	if stats.DateRangeStart != nil {
		dateRange = fmt.Sprintf("%s to %s",
			stats.DateRangeStart.Format("2006-01-02"),
			stats.DateRangeEnd.Format("2006-01-02"))
	}
	content := fmt.Sprintf(`Transactions: %d
Date range: %s
Total spending: %s
Total cashback: %s
Net spending: %s
Categories: %d`,
		stats.TotalTransactions,
		dateRange,
		stats.TotalSpending.StringFixed(2),
		stats.TotalCashback.StringFixed(2),
		stats.NetSpending.StringFixed(2),
		stats.UniqueCategories)
	fmt.Println(cli.RenderBox("Summary", content))

	categories := analytics.Categories(transactions)
	if len(categories) == 0 {
		return nil
	}

	fmt.Println(cli.FormatTitle("Spending by category"))
	rows := make([][]string, 0, len(categories))
	for _, c := range categories {
		rows = append(rows, []string{
			c.Name,
			c.Total.StringFixed(2),
			fmt.Sprintf("%d", c.Count),
			fmt.Sprintf("%.1f%%", c.Percent),
		})
	}
	fmt.Println(cli.RenderTable([]string{"Category", "Total", "Count", "Share"}, rows))
	return nil
}
