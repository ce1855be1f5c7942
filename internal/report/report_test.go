package report

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/kartika/bujet/internal/currency"
	"github.com/kartika/bujet/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func reportBudget() *model.Budget {
	was := 600_000.0
	return model.NewBudget([]model.LineItem{
		{Category: "Housing", Name: "Rent", Amount: 450_000, OriginalAmount: &was},
		{Category: "Savings", Name: "Deposit", Amount: 300_000},
		{Category: "Emergency Fund", Name: "Buffer", Amount: 250_000},
	})
}

func TestWriteApprovalReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")
	violations := []model.Violation{
		{Rule: model.RuleCategoryShare, Subject: "Housing", Observed: 62.5, Limit: 50},
	}

	err := WriteApprovalReport(path, "budget.csv", reportBudget(), false, violations, currency.NewFormatter("IDR"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	report := string(content)

	assert.Contains(t, report, "BUDGET APPROVAL REPORT")
	assert.Contains(t, report, "Source File: budget.csv")
	assert.Contains(t, report, "Status: REJECTED")
	assert.Contains(t, report, "Total Amount: Rp1,000,000")
	assert.Contains(t, report, "Total Items: 3")
	assert.Contains(t, report, "Categories: Housing, Savings, Emergency Fund")
	assert.Contains(t, report, "ISSUES IDENTIFIED:")
	assert.Contains(t, report, "1. Category 'Housing' (62.5%) exceeds maximum allowed (50%)")
	assert.Contains(t, report, "CATEGORY BREAKDOWN:")
	assert.Contains(t, report, "Housing: Rp450,000 (45.0%) - 1 items")
}

func TestWriteApprovalReportApprovedWithoutIssues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "report.txt")

	err := WriteApprovalReport(path, "budget.csv", reportBudget(), true, nil, currency.NewFormatter("IDR"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Contains(t, string(content), "Status: APPROVED")
	assert.NotContains(t, string(content), "ISSUES IDENTIFIED:")
}

func TestWriteApprovalSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")

	err := WriteApprovalSummary(path, "budget.csv", "budget_APPROVED.csv", reportBudget(),
		"Approved with individual item adjustments: trimmed rent", currency.NewFormatter("IDR"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	summary := string(content)

	assert.Contains(t, summary, "BUDGET APPROVAL SUMMARY")
	assert.Contains(t, summary, "Original File: budget.csv")
	assert.Contains(t, summary, "Approved File: budget_APPROVED.csv")
	assert.Contains(t, summary, "Total Approved Amount: Rp1,000,000")
	assert.Contains(t, summary, "Approval Notes: Approved with individual item adjustments: trimmed rent")
	assert.Contains(t, summary, "AMOUNT MODIFICATIONS:")
	assert.Contains(t, summary, "Rent: Rp600,000 → Rp450,000")
}

func TestWriteApprovalSummaryNoModifications(t *testing.T) {
	path := filepath.Join(t.TempDir(), "summary.txt")
	b := model.NewBudget([]model.LineItem{
		{Category: "Savings", Name: "Deposit", Amount: 100},
	})

	err := WriteApprovalSummary(path, "a.csv", "b.csv", b, "note", currency.NewFormatter("USD"))
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "AMOUNT MODIFICATIONS:")
}

func TestWriteExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")
	opts := ExcelOptions{BudgetType: "personal", CurrencyCode: "IDR", Quarterly: true}

	err := WriteExcel(path, reportBudget(), currency.NewFormatter("IDR"), opts)
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	assert.ElementsMatch(t, []string{"Budget", "Quarterly"}, f.GetSheetList())

	rows, err := f.GetRows("Budget")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 4)
	assert.Equal(t, []string{"Category", "Name", "Amount", "Percentage"}, rows[0])
	assert.Equal(t, []string{"Housing", "Rent", "Rp450,000", "45.00%"}, rows[1])

	total, err := f.GetCellValue("Budget", "B8")
	require.NoError(t, err)
	assert.Equal(t, "Rp1,000,000", total)

	quarterly, err := f.GetRows("Quarterly")
	require.NoError(t, err)
	assert.Equal(t, []string{"Category", "Name", "Q1", "Q2", "Q3", "Q4", "Annual"}, quarterly[0])
	assert.Equal(t, []string{"Housing", "Rent", "Rp112,500", "Rp112,500", "Rp112,500", "Rp112,500", "Rp450,000"}, quarterly[1])
}

func TestWriteExcelDefaultsBudgetType(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget.xlsx")

	err := WriteExcel(path, reportBudget(), currency.NewFormatter("IDR"), ExcelOptions{CurrencyCode: "IDR"})
	require.NoError(t, err)

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer func() {
		_ = f.Close()
	}()

	budgetType, err := f.GetCellValue("Budget", "B9")
	require.NoError(t, err)
	assert.Equal(t, "custom", budgetType)
}
