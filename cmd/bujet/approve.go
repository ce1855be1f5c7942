package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kartika/bujet/internal/budget"
	"github.com/kartika/bujet/internal/cli"
	"github.com/kartika/bujet/internal/currency"
	"github.com/kartika/bujet/internal/model"
	"github.com/kartika/bujet/internal/reconcile"
	"github.com/kartika/bujet/internal/report"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func approveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approve [file]",
		Short: "Evaluate and approve a budget",
		Long: `Evaluate a budget file against the approval policy and reconcile any
violations interactively.

A budget that satisfies every rule is approved automatically. Otherwise you
can override all rules, adjust individual items (keep, change, or remove
each one), or reject the budget. Every decision is appended to the audit
log and written to a text report.

Examples:
  bujet approve                       # pick a budget from the output dir
  bujet approve output/budget.csv     # approve a specific file
  bujet approve --export-excel        # also export the final set as .xlsx`,
		Args: cobra.MaximumNArgs(1),
		RunE: runApprove,
	}

	cmd.Flags().Bool("export-excel", false, "Export the final budget as an Excel workbook")
	_ = viper.BindPFlag("approve.export_excel", cmd.Flags().Lookup("export-excel"))

	return cmd
}

func runApprove(cmd *cobra.Command, args []string) error {
	ctx := cli.NewInterruptHandler(os.Stdout).HandleInterrupts(cmd.Context())

	dir, err := outputDir()
	if err != nil {
		return err
	}

	path, err := resolveBudgetPath(ctx, dir, args)
	if err != nil {
		return err
	}
	if path == "" {
		return nil // operator quit the selection
	}

	file, err := budget.Load(path)
	if err != nil {
		return err
	}

	format := file.Formatter()
	if file.Symbol == "" {
		format = currency.NewFormatter(viper.GetString("currency.default"))
	}

	slog.Info("Loaded budget",
		"file", path,
		"items", len(file.Budget.Items),
		"total", file.Budget.Total())

	fmt.Printf("%s\n\n", cli.FormatTitle("Budget Approval"))
	fmt.Printf("File: %s\nTotal items: %d\nTotal amount: %s\n\n",
		path, len(file.Budget.Items), format.Format(file.Budget.Total()))

	prompter := cli.NewPrompter(os.Stdin, os.Stdout, format)
	reconciler := reconcile.New(prompter, loadThresholds(), format.Format)

	record, err := reconciler.Run(ctx, file.Budget)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, cli.ErrInputCancelled) {
			slog.Warn("Approval run interrupted, no decision recorded")
			return nil
		}
		return fmt.Errorf("reconciliation failed: %w", err)
	}
	record.SourceFile = path

	if err := writeOutputs(ctx, dir, file, record, format); err != nil {
		return err
	}

	printFinalStatus(file.Budget, record, format)
	return nil
}

// resolveBudgetPath returns the explicit argument or prompts the operator
// to pick one of the budget CSVs in the output directory.
func resolveBudgetPath(ctx context.Context, dir string, args []string) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}

	names, err := budget.ListFiles(dir)
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "", fmt.Errorf("no budget files found in %q - run 'bujet create' first", dir)
	}

	fmt.Println(cli.FormatInfo("Available budget files:"))
	for i, name := range names {
		fmt.Printf("  %d. %s\n", i+1, name)
	}

	reader := cli.NewLineReader(os.Stdin)
	for {
		fmt.Printf("%s: ", cli.FormatPrompt(fmt.Sprintf("Select a file to process (1-%d) or 'q' to quit", len(names))))
		input, err := reader.ReadLine(ctx)
		if err != nil {
			return "", err
		}
		if input == "q" || input == "quit" {
			return "", nil
		}

		n, err := strconv.Atoi(input)
		if err != nil || n < 1 || n > len(names) {
			fmt.Println(cli.FormatError("Invalid choice. Please try again."))
			continue
		}
		return filepath.Join(dir, names[n-1]), nil
	}
}

// writeOutputs persists everything a terminal state produces: the approved
// budget copy (when adjustments were approved), the text report, the
// optional workbook, and the audit log append.
func writeOutputs(ctx context.Context, dir string, file *budget.File, record *model.DecisionRecord, format currency.Formatter) error {
	final := &model.Budget{Items: record.Items}
	stamp := time.Now().Format("20060102_150405")

	if record.Outcome == string(reconcile.StateAdjustedApproved) {
		approvedPath := budget.ApprovedPath(dir, file.Path, stamp)
		if err := budget.Write(approvedPath, final, file.Symbol); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Approved budget saved to %q", approvedPath)))

		summaryPath := filepath.Join(dir, fmt.Sprintf("approval_summary_%s.txt", stamp))
		if err := report.WriteApprovalSummary(summaryPath, file.Path, approvedPath, final, record.Notes, format); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Approval summary saved to %q", summaryPath)))
	}

	reportPath := filepath.Join(dir, fmt.Sprintf("approval_report_%s.txt", stamp))
	if err := report.WriteApprovalReport(reportPath, file.Path, final, record.Approved, record.Violations, format); err != nil {
		return err
	}
	fmt.Println(cli.FormatSuccess(fmt.Sprintf("Detailed report saved to %q", reportPath)))

	if viper.GetBool("approve.export_excel") {
		excelPath := filepath.Join(dir, fmt.Sprintf("approved_budget_%s.xlsx", stamp))
		opts := report.ExcelOptions{CurrencyCode: format.Symbol()}
		if err := report.WriteExcel(excelPath, final, format, opts); err != nil {
			return err
		}
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("Workbook saved to %q", excelPath)))
	}

	db, err := openStorage()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(); closeErr != nil {
			slog.Error("Failed to close audit database", "error", closeErr)
		}
	}()

	if err := db.Migrate(ctx); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	if err := db.AppendDecision(ctx, record); err != nil {
		return fmt.Errorf("failed to log decision: %w", err)
	}
	slog.Info("Decision appended to audit log", "outcome", record.Outcome, "approved", record.Approved)
	return nil
}

func printFinalStatus(original *model.Budget, record *model.DecisionRecord, format currency.Formatter) {
	fmt.Println()
	if record.Approved {
		fmt.Println(cli.FormatSuccess(fmt.Sprintf("FINAL STATUS: APPROVED (%s)", record.Outcome)))
		if record.TotalAmount != original.Total() {
			fmt.Printf("Original amount: %s\n", format.Format(original.Total()))
			fmt.Printf("Approved amount: %s\n", format.Format(record.TotalAmount))
		} else {
			fmt.Printf("Approved amount: %s\n", format.Format(record.TotalAmount))
		}
	} else {
		fmt.Println(cli.FormatError(fmt.Sprintf("FINAL STATUS: REJECTED (%s)", record.Outcome)))
	}
	fmt.Printf("Notes: %s\n", record.Notes)
}
