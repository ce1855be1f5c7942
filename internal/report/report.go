// Package report renders the approval outputs: the text approval report,
// the approval summary, and the Excel workbook export. Totals are always
// recomputed from the item set it is handed, so the outputs and the final
// items stay consistent.
package report

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kartika/bujet/internal/currency"
	"github.com/kartika/bujet/internal/model"
)

// WriteApprovalReport writes the detailed approval report as text.
func WriteApprovalReport(path, sourceFile string, b *model.Budget, approved bool, violations []model.Violation, format currency.Formatter) error {
	status := "REJECTED"
	if approved {
		status = "APPROVED"
	}

	var sb strings.Builder
	sb.WriteString("BUDGET APPROVAL REPORT\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&sb, "Source File: %s\n", sourceFile)
	fmt.Fprintf(&sb, "Analysis Date: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Status: %s\n\n", status)

	sb.WriteString("BUDGET SUMMARY:\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	fmt.Fprintf(&sb, "Total Amount: %s\n", format.Format(b.Total()))
	fmt.Fprintf(&sb, "Total Items: %d\n", len(b.Items))
	fmt.Fprintf(&sb, "Categories: %s\n\n", strings.Join(b.Categories(), ", "))

	if len(violations) > 0 {
		sb.WriteString("ISSUES IDENTIFIED:\n")
		sb.WriteString(strings.Repeat("-", 20) + "\n")
		for i, v := range violations {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, v.Message())
		}
		sb.WriteString("\n")
	}

	sb.WriteString("CATEGORY BREAKDOWN:\n")
	sb.WriteString(strings.Repeat("-", 20) + "\n")
	for _, summary := range b.CategorySummaries() {
		fmt.Fprintf(&sb, "%s: %s (%.1f%%) - %d items\n",
			summary.Category, format.Format(summary.Amount), summary.Percentage, summary.ItemCount)
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write approval report: %w", err)
	}
	return nil
}

// WriteApprovalSummary writes the short summary that accompanies a saved
// approved budget, including the per-item amount modifications.
func WriteApprovalSummary(path, sourceFile, approvedFile string, b *model.Budget, notes string, format currency.Formatter) error {
	var sb strings.Builder
	sb.WriteString("BUDGET APPROVAL SUMMARY\n")
	sb.WriteString(strings.Repeat("=", 50) + "\n\n")
	fmt.Fprintf(&sb, "Original File: %s\n", sourceFile)
	fmt.Fprintf(&sb, "Approved File: %s\n", approvedFile)
	fmt.Fprintf(&sb, "Approval Date: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&sb, "Total Approved Amount: %s\n\n", format.Format(b.Total()))
	fmt.Fprintf(&sb, "Approval Notes: %s\n\n", notes)

	if mods := b.Modifications(); len(mods) > 0 {
		sb.WriteString("AMOUNT MODIFICATIONS:\n")
		sb.WriteString(strings.Repeat("-", 30) + "\n")
		for _, mod := range mods {
			fmt.Fprintf(&sb, "%s: %s → %s\n",
				mod.Item, format.Format(mod.OriginalAmount), format.Format(mod.ApprovedAmount))
		}
	}

	if err := os.WriteFile(path, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write approval summary: %w", err)
	}
	return nil
}
