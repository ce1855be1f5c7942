package main

import (
	"fmt"
	"log/slog"

	"github.com/kartika/bujet/internal/cli"
	"github.com/spf13/cobra"
)

func logCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the decision audit log",
		Long: `Print every recorded approval decision, oldest first. Each entry shows
the outcome, the budget totals, and any rule violations or item
modifications attached to the decision.`,
		RunE: runLog,
	}
	return cmd
}

func runLog(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

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

	decisions, err := db.ListDecisions(ctx)
	if err != nil {
		return err
	}
	if len(decisions) == 0 {
		fmt.Println(cli.FormatInfo("No decisions recorded yet."))
		return nil
	}

	fmt.Printf("%s\n\n", cli.FormatTitle("Decision Audit Log"))
	for _, d := range decisions {
		status := cli.FormatError("REJECTED")
		if d.Approved {
			status = cli.FormatSuccess("APPROVED")
		}
		fmt.Printf("#%d  %s  %s (%s)\n", d.ID, d.CreatedAt.Local().Format("2006-01-02 15:04:05"), status, d.Outcome)
		fmt.Printf("    File: %s\n", d.SourceFile)
		fmt.Printf("    Total: %.2f across %d items (%s)\n", d.TotalAmount, d.TotalItems, d.Categories)
		fmt.Printf("    Notes: %s\n", d.Notes)
		for _, v := range d.Violations {
			fmt.Printf("    %s %s\n", cli.WarningIcon, v)
		}
		for _, m := range d.Modifications {
			fmt.Printf("    %s %s: %.2f -> %.2f\n", cli.InfoIcon, m.Item, m.OriginalAmount, m.ApprovedAmount)
		}
		fmt.Println()
	}
	return nil
}
