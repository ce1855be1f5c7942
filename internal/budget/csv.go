// Package budget loads and saves budget files. A budget file is a CSV with
// the columns Category, Name, Formatted Amount, and Percentage; amounts are
// stored as display strings and parsed back through the currency package.
package budget

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/kartika/bujet/internal/common"
	"github.com/kartika/bujet/internal/currency"
	"github.com/kartika/bujet/internal/model"
)

// Required budget file columns, in write order.
var columns = []string{"Category", "Name", "Formatted Amount", "Percentage"}

// File is a budget together with the presentation details recovered from
// or destined for disk.
type File struct {
	Budget *model.Budget
	// Symbol is the currency symbol extracted from the formatted amounts.
	Symbol string
	// Path is where the budget was loaded from.
	Path string
}

// Formatter returns a currency formatter matching the file's symbol.
func (f *File) Formatter() currency.Formatter {
	return currency.NewFormatter(f.Symbol)
}

// Load reads a budget CSV. Missing columns, empty categories or names, and
// unparseable amounts are load-time errors; percentages are rederived from
// the parsed amounts rather than trusted.
func Load(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open budget file %q", path), err)
	}
	defer func() {
		_ = f.Close()
	}()

	reader := csv.NewReader(f)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to parse budget file %q", path), err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q is empty", common.ErrEmptyBudget, path)
	}

	index, err := columnIndex(records[0])
	if err != nil {
		return nil, err
	}

	var items []model.LineItem
	var symbol string
	for row, record := range records[1:] {
		category := strings.TrimSpace(record[index["Category"]])
		name := strings.TrimSpace(record[index["Name"]])
		formatted := strings.TrimSpace(record[index["Formatted Amount"]])

		if category == "" || name == "" {
			return nil, common.NewUserError(
				fmt.Sprintf("row %d has an empty category or name", row+2), nil)
		}

		amount, err := currency.Parse(formatted)
		if err != nil {
			return nil, common.NewUserError(
				fmt.Sprintf("row %d (%s) has an invalid amount", row+2, name), err)
		}

		if symbol == "" {
			symbol = currency.ExtractSymbol(formatted)
		}

		items = append(items, model.LineItem{
			Category: category,
			Name:     name,
			Amount:   amount,
		})
	}

	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %q has a header but no rows", common.ErrEmptyBudget, path)
	}

	return &File{
		Budget: model.NewBudget(items),
		Symbol: symbol,
		Path:   path,
	}, nil
}

// Write saves the budget as a CSV, regenerating every formatted amount from
// the current amounts so the display always matches the approved values.
func Write(path string, b *model.Budget, symbol string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create budget file %q: %w", path, err)
	}

	format := currency.NewFormatter(symbol)
	writer := csv.NewWriter(f)

	if err := writer.Write(columns); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, item := range b.Items {
		record := []string{
			item.Category,
			item.Name,
			format.Format(item.Amount),
			fmt.Sprintf("%.2f", item.Percentage),
		}
		if err := writer.Write(record); err != nil {
			_ = f.Close()
			return fmt.Errorf("failed to write row for %q: %w", item.Name, err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		_ = f.Close()
		return fmt.Errorf("failed to flush budget file: %w", err)
	}
	return f.Close()
}

// ListFiles returns the budget CSV filenames in dir, sorted by name.
func ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read budget directory %q: %w", dir, err)
	}

	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".csv") {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

// columnIndex validates the header and maps column names to positions.
func columnIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}

	var missing []string
	for _, name := range columns {
		if _, ok := index[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", common.ErrMissingColumns, strings.Join(missing, ", "))
	}
	return index, nil
}

// ApprovedPath derives the output path for an approved copy of a budget
// file: "<base>_APPROVED_<stamp>.csv" in dir.
func ApprovedPath(dir, sourcePath, stamp string) string {
	base := strings.TrimSuffix(filepath.Base(sourcePath), filepath.Ext(sourcePath))
	return filepath.Join(dir, fmt.Sprintf("%s_APPROVED_%s.csv", base, stamp))
}
