package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/kartika/bujet/internal/adjust"
	"github.com/kartika/bujet/internal/currency"
	"github.com/kartika/bujet/internal/model"
	"github.com/kartika/bujet/internal/reconcile"
	"github.com/schollz/progressbar/v3"
)

// Prompter implements the interactive console decision provider for budget
// reconciliation. All invalid operator input is re-prompted here; the state
// machine only ever sees well-formed decisions.
type Prompter struct {
	reader      *LineReader
	writer      io.Writer
	format      currency.Formatter
	progressBar *progressbar.ProgressBar
}

// NewPrompter creates a prompter over the given reader and writer. Nil
// values fall back to stdin/stdout.
func NewPrompter(reader io.Reader, writer io.Writer, format currency.Formatter) *Prompter {
	if reader == nil {
		reader = os.Stdin
	}
	if writer == nil {
		writer = os.Stdout
	}
	return &Prompter{
		reader: NewLineReader(reader),
		writer: writer,
		format: format,
	}
}

// ReviewBudget presents the violations and approval options and returns
// the chosen branch.
func (p *Prompter) ReviewBudget(ctx context.Context, b *model.Budget, violations []model.Violation) (reconcile.ReviewChoice, error) {
	var content strings.Builder
	content.WriteString("Issues identified:\n")
	for i, v := range violations {
		fmt.Fprintf(&content, "  %d. %s\n", i+1, WarningStyle.Render(v.Message()))
	}
	fmt.Fprintf(&content, "\nCurrent total budget: %s\n", BoldStyle.Render(p.format.Format(b.Total())))
	fmt.Fprintf(&content, "Number of items: %d", len(b.Items))

	if _, err := fmt.Fprintln(p.writer, RenderBox("Budget Approval Review", content.String())); err != nil {
		return 0, fmt.Errorf("failed to write review box: %w", err)
	}

	options := []string{
		fmt.Sprintf("  [1] %s Approve full budget as-is (override all rules)", CheckIcon),
		"  [2] 📝 Adjust individual item amounts and approve",
		fmt.Sprintf("  [3] %s Reject entire budget", RejectIcon),
		fmt.Sprintf("  [4] %s View detailed budget analysis first", ChartIcon),
	}
	if _, err := fmt.Fprintln(p.writer, strings.Join(options, "\n")); err != nil {
		return 0, fmt.Errorf("failed to write approval options: %w", err)
	}

	choice, err := p.promptChoice(ctx, "Select option (1-4)", []string{"1", "2", "3", "4"})
	if err != nil {
		return 0, err
	}

	switch choice {
	case "1":
		return reconcile.ReviewOverride, nil
	case "2":
		return reconcile.ReviewAdjust, nil
	case "3":
		return reconcile.ReviewReject, nil
	default:
		return reconcile.ReviewAnalyze, nil
	}
}

// SelectItems shows the current items and asks which to review. Malformed
// selections (non-numeric, out of range) are reported and re-prompted.
func (p *Prompter) SelectItems(ctx context.Context, b *model.Budget) (reconcile.ItemSelection, error) {
	if _, err := fmt.Fprintln(p.writer, RenderBox("Individual Item Adjustment", p.formatItemTable(b))); err != nil {
		return reconcile.ItemSelection{}, fmt.Errorf("failed to write item table: %w", err)
	}

	instructions := []string{
		"  • Select specific items by number (e.g. 1,3,5)",
		"  • Type 'all' to review all items one by one",
		"  • Type 'done' to finish without changes",
	}
	if _, err := fmt.Fprintln(p.writer, strings.Join(instructions, "\n")); err != nil {
		return reconcile.ItemSelection{}, fmt.Errorf("failed to write instructions: %w", err)
	}

	for {
		input, err := p.prompt(ctx, "Enter your choice")
		if err != nil {
			return reconcile.ItemSelection{}, err
		}

		selection, err := parseSelection(input, len(b.Items))
		if err != nil {
			if _, writeErr := fmt.Fprintln(p.writer, FormatError(err.Error())); writeErr != nil {
				slog.Warn("Failed to write selection error", "error", writeErr)
			}
			continue
		}

		if selection.All {
			p.initProgressBar(len(b.Items))
		}
		return selection, nil
	}
}

// DecideItem asks for keep/change/remove on one item, re-prompting on
// invalid actions or negative amounts.
func (p *Prompter) DecideItem(ctx context.Context, index int, item model.LineItem) (adjust.Decision, error) {
	detail := fmt.Sprintf("Category: %s\nCurrent amount: %s\nCurrent percentage: %.1f%%",
		item.Category, p.format.Format(item.Amount), item.Percentage)
	header := fmt.Sprintf("Item %d: %s", index+1, item.Name)
	if _, err := fmt.Fprintln(p.writer, RenderBox(header, detail)); err != nil {
		return adjust.Decision{}, fmt.Errorf("failed to write item box: %w", err)
	}

	choice, err := p.promptChoice(ctx, "Action - [k]eep current, [c]hange amount, or [r]emove item",
		[]string{"k", "keep", "c", "change", "r", "remove"})
	if err != nil {
		return adjust.Decision{}, err
	}

	defer p.updateProgress()

	switch choice[0] {
	case 'k':
		if _, err := fmt.Fprintln(p.writer, FormatSuccess(fmt.Sprintf("Kept: %s = %s", item.Name, p.format.Format(item.Amount)))); err != nil {
			slog.Warn("Failed to write keep confirmation", "error", err)
		}
		return adjust.Decision{Action: adjust.ActionKeep}, nil

	case 'r':
		if _, err := fmt.Fprintln(p.writer, WarningStyle.Render(fmt.Sprintf("%s Removed: %s", RejectIcon, item.Name))); err != nil {
			slog.Warn("Failed to write remove confirmation", "error", err)
		}
		return adjust.Decision{Action: adjust.ActionRemove}, nil

	default:
		amount, err := p.promptAmount(ctx, "Enter new approved amount")
		if err != nil {
			return adjust.Decision{}, err
		}
		if _, err := fmt.Fprintln(p.writer, FormatSuccess(fmt.Sprintf("Updated: %s = %s", item.Name, p.format.Format(amount)))); err != nil {
			slog.Warn("Failed to write change confirmation", "error", err)
		}
		return adjust.Decision{Action: adjust.ActionChange, NewAmount: amount}, nil
	}
}

// Confirm asks a yes/no question and loops until it gets one.
func (p *Prompter) Confirm(ctx context.Context, prompt string) (bool, error) {
	choice, err := p.promptChoice(ctx, prompt+" (y/n)", []string{"y", "yes", "n", "no"})
	if err != nil {
		return false, err
	}
	return choice[0] == 'y', nil
}

// Justification collects a non-empty free-text rationale.
func (p *Prompter) Justification(ctx context.Context, prompt string) (string, error) {
	for {
		input, err := p.prompt(ctx, prompt)
		if err != nil {
			return "", err
		}
		if input != "" {
			return input, nil
		}
		if _, err := fmt.Fprintln(p.writer, FormatError("A reason is required. Please try again.")); err != nil {
			slog.Warn("Failed to write justification error", "error", err)
		}
	}
}

// ShowAnalysis renders the detailed budget analysis: totals, category
// breakdown, and the largest expenses.
func (p *Prompter) ShowAnalysis(b *model.Budget) {
	var content strings.Builder

	fmt.Fprintf(&content, "Total budget amount: %s\n", BoldStyle.Render(p.format.Format(b.Total())))
	fmt.Fprintf(&content, "Total items: %d\n\n", len(b.Items))

	content.WriteString("Category breakdown:\n")
	for _, summary := range b.CategorySummaries() {
		fmt.Fprintf(&content, "  %-20s | %12s | %6.1f%% | %3d items\n",
			summary.Category, p.format.Format(summary.Amount), summary.Percentage, summary.ItemCount)
	}

	top := topExpenses(b, 5)
	if len(top) > 0 {
		content.WriteString("\nTop largest expenses:\n")
		for _, item := range top {
			fmt.Fprintf(&content, "  %-25s | %-15s | %10s | %5.1f%%\n",
				item.Name, item.Category, p.format.Format(item.Amount), item.Percentage)
		}
	}

	if _, err := fmt.Fprintln(p.writer, RenderBox(fmt.Sprintf("%s Budget Analysis Report", ChartIcon), content.String())); err != nil {
		slog.Warn("Failed to write analysis box", "error", err)
	}
}

// ShowAdjustmentSummary renders the original/adjusted comparison before the
// final confirmation.
func (p *Prompter) ShowAdjustmentSummary(original, adjusted *model.Budget, notes []string) {
	p.finishProgress()

	originalTotal := original.Total()
	adjustedTotal := adjusted.Total()

	var content strings.Builder
	fmt.Fprintf(&content, "Original total: %15s\n", p.format.Format(originalTotal))
	fmt.Fprintf(&content, "Adjusted total: %15s\n", p.format.Format(adjustedTotal))
	change := currency.FormatNumber(adjustedTotal - originalTotal)
	if adjustedTotal >= originalTotal {
		change = "+" + change
	}
	fmt.Fprintf(&content, "Net change:     %15s\n\n", change)

	fmt.Fprintf(&content, "%-25s %12s %12s\n", "Item", "Original", "Approved")
	for i, item := range adjusted.Items {
		before := original.Items[i].Amount
		marker := SuccessIcon
		switch {
		case item.Amount == 0 && before != 0:
			marker = RejectIcon
		case item.Amount != before:
			marker = "✎"
		}
		fmt.Fprintf(&content, "%-25s %12s %12s %s\n",
			item.Name, p.format.Format(before), p.format.Format(item.Amount), marker)
	}

	if len(notes) > 0 {
		content.WriteString("\nAdjustments:\n")
		for _, note := range notes {
			fmt.Fprintf(&content, "  • %s\n", note)
		}
	}

	if _, err := fmt.Fprintln(p.writer, RenderBox("Adjustment Summary", content.String())); err != nil {
		slog.Warn("Failed to write adjustment summary", "error", err)
	}
}

func (p *Prompter) formatItemTable(b *model.Budget) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Current budget items (total: %s):\n\n", p.format.Format(b.Total()))
	fmt.Fprintf(&sb, "%-3s %-30s %-15s %15s\n", "#", "Item Name", "Category", "Current Amount")
	for i, item := range b.Items {
		fmt.Fprintf(&sb, "%2d. %-30s %-15s %15s\n",
			i+1, item.Name, item.Category, p.format.Format(item.Amount))
	}
	return sb.String()
}

func (p *Prompter) prompt(ctx context.Context, prompt string) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
	}

	if _, err := fmt.Fprintf(p.writer, "%s: ", FormatPrompt(prompt)); err != nil {
		return "", fmt.Errorf("failed to write prompt: %w", err)
	}

	input, err := p.reader.ReadLine(ctx)
	if err != nil {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("input terminated")
		}
		return "", err
	}
	return input, nil
}

func (p *Prompter) promptChoice(ctx context.Context, prompt string, validChoices []string) (string, error) {
	for {
		input, err := p.prompt(ctx, prompt)
		if err != nil {
			return "", err
		}

		choice := strings.ToLower(input)
		for _, valid := range validChoices {
			if choice == valid {
				return choice, nil
			}
		}

		if _, err := fmt.Fprintln(p.writer, FormatError("Invalid choice. Please try again.")); err != nil {
			slog.Warn("Failed to write error message", "error", err)
		}
	}
}

// promptAmount reads a non-negative number, re-prompting on anything else.
func (p *Prompter) promptAmount(ctx context.Context, prompt string) (float64, error) {
	for {
		input, err := p.prompt(ctx, prompt)
		if err != nil {
			return 0, err
		}

		amount, err := strconv.ParseFloat(input, 64)
		if err != nil {
			if _, writeErr := fmt.Fprintln(p.writer, FormatError("Please enter a valid number.")); writeErr != nil {
				slog.Warn("Failed to write amount error", "error", writeErr)
			}
			continue
		}
		if amount < 0 {
			if _, writeErr := fmt.Fprintln(p.writer, FormatError("Amount cannot be negative. Please try again.")); writeErr != nil {
				slog.Warn("Failed to write amount error", "error", writeErr)
			}
			continue
		}
		return amount, nil
	}
}

// parseSelection interprets the adjustment selection input: "done", "all",
// or a comma-separated list of one-based item numbers.
func parseSelection(input string, itemCount int) (reconcile.ItemSelection, error) {
	switch strings.ToLower(input) {
	case "done":
		return reconcile.ItemSelection{Done: true}, nil
	case "all":
		return reconcile.ItemSelection{All: true}, nil
	}

	parts := strings.Split(input, ",")
	indices := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil {
			return reconcile.ItemSelection{}, fmt.Errorf("invalid input %q - enter item numbers (e.g. 1,3,5), 'all', or 'done'", input)
		}
		if n < 1 || n > itemCount {
			return reconcile.ItemSelection{}, fmt.Errorf("invalid item number: %d", n)
		}
		indices = append(indices, n-1)
	}
	if len(indices) == 0 {
		return reconcile.ItemSelection{}, fmt.Errorf("invalid input %q - enter item numbers (e.g. 1,3,5), 'all', or 'done'", input)
	}
	return reconcile.ItemSelection{Indices: indices}, nil
}

func topExpenses(b *model.Budget, n int) []model.LineItem {
	items := make([]model.LineItem, len(b.Items))
	copy(items, b.Items)
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Amount > items[j].Amount
	})
	if len(items) > n {
		items = items[:n]
	}
	return items
}

func (p *Prompter) initProgressBar(total int) {
	p.progressBar = progressbar.NewOptions(total,
		progressbar.OptionSetWriter(p.writer),
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("[cyan][bold]Reviewing budget items...[reset]"),
		progressbar.OptionOnCompletion(func() {
			if _, err := fmt.Fprintln(p.writer); err != nil {
				slog.Warn("Failed to write newline after progress bar", "error", err)
			}
		}),
	)
}

func (p *Prompter) updateProgress() {
	if p.progressBar != nil {
		if err := p.progressBar.Add(1); err != nil {
			slog.Warn("Failed to update progress bar", "error", err)
		}
	}
}

func (p *Prompter) finishProgress() {
	if p.progressBar != nil {
		if err := p.progressBar.Finish(); err != nil {
			slog.Warn("Failed to finish progress bar", "error", err)
		}
		p.progressBar = nil
	}
}

// Ensure Prompter implements the reconcile.DecisionProvider interface.
var _ reconcile.DecisionProvider = (*Prompter)(nil)
