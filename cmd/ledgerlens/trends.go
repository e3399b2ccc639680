package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgerlens/internal/analytics"
	"github.com/Veraticus/ledgerlens/internal/cli"
)

func trendsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trends <file.csv>",
		Short: "Monthly spending with month-over-month change",
		Args:  cobra.ExactArgs(1),
		RunE:  runTrends,
	}
	addFilterFlags(cmd)
	return cmd
}

func runTrends(cmd *cobra.Command, args []string) error {
	transactions, err := loadFiltered(cmd, args[0])
	if err != nil {
		return err
	}

	points := analytics.Trends(transactions)
	if len(points) == 0 {
		fmt.Println(cli.FormatWarning("No months to report"))
		return nil
	}

	fmt.Println(cli.FormatTitle("Monthly spending"))
	rows := make([][]string, 0, len(points))
	for _, p := range points {
		rows = append(rows, []string{
			p.Label,
			p.Total.StringFixed(2),
			fmt.Sprintf("%d", p.Count),
			p.Average.StringFixed(2),
			fmt.Sprintf("%+.1f%%", p.ChangePercent),
		})
	}
	fmt.Println(cli.RenderTable([]string{"Month", "Total", "Count", "Average", "Change"}, rows))
	return nil
}
