package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/kartika/bujet/internal/model"
	"github.com/kartika/bujet/internal/reconcile"
)

// AppendDecision writes one decision record to the audit log. There is no
// corresponding update or delete.
func (s *SQLiteStorage) AppendDecision(ctx context.Context, record *model.DecisionRecord) error {
	if record == nil {
		return fmt.Errorf("decision record cannot be nil")
	}

	violations, err := json.Marshal(model.ViolationMessages(record.Violations))
	if err != nil {
		return fmt.Errorf("failed to encode violations: %w", err)
	}

	mods := record.Modifications
	if mods == nil {
		mods = []model.Modification{}
	}
	modifications, err := json.Marshal(mods)
	if err != nil {
		return fmt.Errorf("failed to encode modifications: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `INSERT INTO decisions
		(created_at, source_file, outcome, approved, total_amount, total_items, categories, notes, violations, modifications)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.Timestamp.UTC().Format(time.RFC3339),
		record.SourceFile,
		record.Outcome,
		record.Approved,
		record.TotalAmount,
		len(record.Items),
		strings.Join(record.Categories, ", "),
		record.Notes,
		string(violations),
		string(modifications),
	)
	if err != nil {
		return fmt.Errorf("failed to append decision: %w", err)
	}
	return nil
}

// LoggedDecision is a decision record as read back from the audit log.
type LoggedDecision struct {
	ID            int64
	CreatedAt     time.Time
	SourceFile    string
	Outcome       string
	Approved      bool
	TotalAmount   float64
	TotalItems    int
	Categories    string
	Notes         string
	Violations    []string
	Modifications []model.Modification
}

// ListDecisions returns all logged decisions, oldest first.
func (s *SQLiteStorage) ListDecisions(ctx context.Context) ([]LoggedDecision, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT
		id, created_at, source_file, outcome, approved, total_amount, total_items, categories, notes, violations, modifications
		FROM decisions ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query decisions: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var decisions []LoggedDecision
	for rows.Next() {
		var d LoggedDecision
		var createdAt, violations, modifications string
		if err := rows.Scan(&d.ID, &createdAt, &d.SourceFile, &d.Outcome, &d.Approved,
			&d.TotalAmount, &d.TotalItems, &d.Categories, &d.Notes, &violations, &modifications); err != nil {
			return nil, fmt.Errorf("failed to scan decision: %w", err)
		}

		if d.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse decision timestamp: %w", err)
		}
		if err := json.Unmarshal([]byte(violations), &d.Violations); err != nil {
			return nil, fmt.Errorf("failed to decode violations: %w", err)
		}
		if err := json.Unmarshal([]byte(modifications), &d.Modifications); err != nil {
			return nil, fmt.Errorf("failed to decode modifications: %w", err)
		}

		decisions = append(decisions, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate decisions: %w", err)
	}
	return decisions, nil
}

// Ensure SQLiteStorage satisfies the reconciliation audit-log contract.
var _ reconcile.AuditLog = (*SQLiteStorage)(nil)
