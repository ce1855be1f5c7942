package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/kartika/bujet/internal/budget"
	"github.com/kartika/bujet/internal/cli"
	"github.com/kartika/bujet/internal/currency"
	"github.com/kartika/bujet/internal/model"
	"github.com/kartika/bujet/internal/report"
	"github.com/kartika/bujet/internal/template"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func createCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Compose a new budget",
		Long: `Compose a budget interactively: pick a currency, optionally start from a
template, fill in amounts, and save the result as a budget CSV ready for
'bujet approve'.

Examples:
  bujet create                      # custom budget from scratch
  bujet create --template personal  # start from the personal template
  bujet create --export-excel       # also export an .xlsx workbook`,
		RunE: runCreate,
	}

	cmd.Flags().StringP("template", "t", "", "Template to start from (personal, business, project, event)")
	cmd.Flags().Bool("export-excel", false, "Also export the budget as an Excel workbook")
	cmd.Flags().Bool("quarterly", false, "Include a quarterly breakdown sheet in the workbook")
	_ = viper.BindPFlag("create.template", cmd.Flags().Lookup("template"))
	_ = viper.BindPFlag("create.export_excel", cmd.Flags().Lookup("export-excel"))
	_ = viper.BindPFlag("create.quarterly", cmd.Flags().Lookup("quarterly"))

	return cmd
}

func runCreate(cmd *cobra.Command, _ []string) error {
	ctx := cli.NewInterruptHandler(os.Stdout).HandleInterrupts(cmd.Context())
	reader := cli.NewLineReader(os.Stdin)

	dir, err := outputDir()
	if err != nil {
		return err
	}

	fmt.Printf("%s\n\n", cli.FormatTitle("Budget Creation"))

	code, err := promptCurrency(ctx, reader)
	if err != nil {
		return err
	}
	format := currency.NewFormatter(code)

	var items []model.LineItem
	templateName := viper.GetString("create.template")
	if templateName != "" {
		items, err = fillTemplate(ctx, reader, templateName)
		if err != nil {
			return err
		}
	}

	items, err = addCustomItems(ctx, reader, items, format)
	if err != nil {
		return err
	}
	if len(items) == 0 {
		return fmt.Errorf("no budget entries were provided")
	}

	b := model.NewBudget(items)
	printBreakdown(b, format)

	path, err := promptFilename(ctx, reader, dir, code)
	if err != nil {
		return err
	}
	if err := budget.Write(path, b, format.Symbol()); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Budget saved to %q", path)))
	slog.Info("Budget created", "file", path, "items", len(b.Items), "total", b.Total())

	if viper.GetBool("create.export_excel") {
		excelPath := strings.TrimSuffix(path, ".csv") + ".xlsx"
		opts := report.ExcelOptions{
			BudgetType:   templateName,
			CurrencyCode: code,
			Quarterly:    viper.GetBool("create.quarterly"),
		}
		if err := report.WriteExcel(excelPath, b, format, opts); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Workbook saved to %q", excelPath)))
	}

	// Complete workflow: offer to run the approval right away.
	fmt.Printf("%s: ", cli.FormatPrompt("Proceed to budget approval? (y/n)"))
	answer, err := reader.ReadLine(ctx)
	if err != nil {
		return err
	}
	if answer == "y" || answer == "yes" {
		return runApprove(cmd, []string{path})
	}
	fmt.Println(cli.FormatInfo("You can approve it later with: bujet approve " + path))
	return nil
}

func promptCurrency(ctx context.Context, reader *cli.LineReader) (string, error) {
	fallback := viper.GetString("currency.default")
	fmt.Printf("%s: ", cli.FormatPrompt(fmt.Sprintf("Enter currency (e.g. IDR, USD) [%s]", fallback)))
	input, err := reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if input == "" {
		return fallback, nil
	}
	return strings.ToUpper(input), nil
}

// fillTemplate walks the template entries, asking for an amount for each.
// Blank or zero skips the entry.
func fillTemplate(ctx context.Context, reader *cli.LineReader, name string) ([]model.LineItem, error) {
	tmpl, err := template.Get(name)
	if err != nil {
		return nil, err
	}

	fmt.Println(cli.FormatInfo(fmt.Sprintf("Filling in the %s template (%d suggested items). Blank or 0 skips an item.",
		tmpl.Name, len(tmpl.Entries))))

	var items []model.LineItem
	for _, entry := range tmpl.Entries {
		amount, err := promptOptionalAmount(ctx, reader,
			fmt.Sprintf("%s / %s [%s]", entry.Category, entry.Name, entry.Priority))
		if err != nil {
			return nil, err
		}
		if amount > 0 {
			items = append(items, model.LineItem{
				Category: entry.Category,
				Name:     entry.Name,
				Amount:   amount,
			})
		}
	}

	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Template filled: %d items with amounts", len(items))))
	return items, nil
}

// addCustomItems collects free-form entries until the operator types 'done'.
func addCustomItems(ctx context.Context, reader *cli.LineReader, items []model.LineItem, format currency.Formatter) ([]model.LineItem, error) {
	fmt.Println(cli.FormatInfo("Add budget items (type 'done' as the category to finish)."))

	for {
		fmt.Printf("%s: ", cli.FormatPrompt("Enter budget category (or 'done' to finish)"))
		category, err := reader.ReadLine(ctx)
		if err != nil {
			return nil, err
		}
		if strings.EqualFold(category, "done") {
			return items, nil
		}
		if category == "" {
			fmt.Println(cli.FormatError("Category cannot be empty. Please try again."))
			continue
		}

		name, err := promptNonEmpty(ctx, reader, "Enter budget name")
		if err != nil {
			return nil, err
		}

		amount, err := promptRequiredAmount(ctx, reader, fmt.Sprintf("Enter amount for '%s'", name))
		if err != nil {
			return nil, err
		}

		items = append(items, model.LineItem{Category: category, Name: name, Amount: amount})
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Added: %s = %s", name, format.Format(amount))))
	}
}

func promptNonEmpty(ctx context.Context, reader *cli.LineReader, prompt string) (string, error) {
	for {
		fmt.Printf("%s: ", cli.FormatPrompt(prompt))
		input, err := reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if input != "" {
			return input, nil
		}
		fmt.Println(cli.FormatError("A value is required. Please try again."))
	}
}

func promptRequiredAmount(ctx context.Context, reader *cli.LineReader, prompt string) (float64, error) {
	for {
		fmt.Printf("%s: ", cli.FormatPrompt(prompt))
		input, err := reader.ReadLine(ctx)
		if err != nil {
			return 0, err
		}

		amount, err := strconv.ParseFloat(input, 64)
		if err != nil || amount < 0 {
			fmt.Println(cli.FormatError("Please enter a valid non-negative number."))
			continue
		}
		return amount, nil
	}
}

func promptOptionalAmount(ctx context.Context, reader *cli.LineReader, prompt string) (float64, error) {
	for {
		fmt.Printf("%s: ", cli.FormatPrompt(prompt))
		input, err := reader.ReadLine(ctx)
		if err != nil {
			return 0, err
		}
		if input == "" {
			return 0, nil
		}

		amount, err := strconv.ParseFloat(input, 64)
		if err != nil || amount < 0 {
			fmt.Println(cli.FormatError("Please enter a valid non-negative number or leave blank to skip."))
			continue
		}
		return amount, nil
	}
}

func printBreakdown(b *model.Budget, format currency.Formatter) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Total budget: %s\n\n", cli.BoldStyle.Render(format.Format(b.Total())))
	fmt.Fprintf(&sb, "%-20s %-25s %15s %10s\n", "Category", "Name", "Amount", "Percent")
	for _, item := range b.Items {
		fmt.Fprintf(&sb, "%-20s %-25s %15s %9.2f%%\n",
			item.Category, item.Name, format.Format(item.Amount), item.Percentage)
	}
	fmt.Println(cli.RenderBox("Budget Breakdown", sb.String()))
}

func promptFilename(ctx context.Context, reader *cli.LineReader, dir, code string) (string, error) {
	fallback := fmt.Sprintf("budget_%s_%s.csv", strings.ToLower(code), time.Now().Format("20060102_150405"))
	fmt.Printf("%s: ", cli.FormatPrompt(fmt.Sprintf("Enter filename [%s]", fallback)))

	input, err := reader.ReadLine(ctx)
	if err != nil {
		return "", err
	}
	if input == "" {
		input = fallback
	}
	if !strings.HasSuffix(input, ".csv") {
		input += ".csv"
	}
	return filepath.Join(dir, input), nil
}
