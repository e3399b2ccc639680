package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/ledgerlens/internal/analytics"
	"github.com/Veraticus/ledgerlens/internal/cli"
	"github.com/Veraticus/ledgerlens/internal/model"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories <file.csv>",
		Short: "Category aggregation",
		Long: `Group transactions by category and show each category's total,
transaction count, and share of overall spending.

With --net, each category is valued at its spending net of cashback.`,
		Args: cobra.ExactArgs(1),
		RunE: runCategories,
	}
	cmd.Flags().Bool("net", false, "value each category net of cashback")
	addFilterFlags(cmd)
	return cmd
}

func runCategories(cmd *cobra.Command, args []string) error {
	transactions, err := loadFiltered(cmd, args[0])
	if err != nil {
		return err
	}

	var summaries []model.CategorySummary
	title := "Spending by category"
	if net, _ := cmd.Flags().GetBool("net"); net {
		summaries = analytics.NetByCategory(transactions)
		title = "Net spending by category"
	} else {
		summaries = analytics.Categories(transactions)
	}

	if len(summaries) == 0 {
		fmt.Println(cli.FormatWarning("No categories to report"))
		return nil
	}

	fmt.Println(cli.FormatTitle(title))
	rows := make([][]string, 0, len(summaries))
	for _, c := range summaries {
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
