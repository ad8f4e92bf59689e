// Package store provides a SQLite-backed cache of fetched budget snapshots,
// so forecasts can run offline and repeat runs skip the network.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/mwolters/budgetcast/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

const dayFormat = "2006-01-02"

// Store holds the snapshot database handle.
type Store struct {
	db *sql.DB
}

// Open opens or creates the snapshot database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating data dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening snapshot db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the snapshot database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveSnapshot replaces the stored snapshot for the snapshot's budget.
func (s *Store) SaveSnapshot(snap *model.Snapshot) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT OR REPLACE INTO budgets (budget_id, fetched_at) VALUES (?, ?)`,
		snap.BudgetID, snap.FetchedAt.UTC().Format(time.RFC3339))
	if err != nil {
		return err
	}

	for _, table := range []string{"accounts", "categories", "scheduled_transactions"} {
		if _, err := tx.Exec("DELETE FROM "+table+" WHERE budget_id = ?", snap.BudgetID); err != nil {
			return err
		}
	}

	for _, a := range snap.Accounts {
		_, err = tx.Exec(`INSERT INTO accounts (budget_id, name, balance) VALUES (?, ?, ?)`,
			snap.BudgetID, a.Name, int64(a.Balance))
		if err != nil {
			return err
		}
	}

	for _, c := range snap.Categories {
		var (
			goalType      sql.NullString
			goalDay       sql.NullInt64
			goalCadence   sql.NullInt64
			goalFrequency sql.NullInt64
			goalTarget    sql.NullInt64
			goalMonth     sql.NullString
			goalLeft      sql.NullInt64
		)
		if t := c.Target; t != nil {
			goalType = sql.NullString{String: string(t.GoalType), Valid: true}
			goalCadence = sql.NullInt64{Int64: int64(t.GoalCadence), Valid: true}
			goalTarget = sql.NullInt64{Int64: int64(t.GoalTarget), Valid: true}
			if t.GoalDay != nil {
				goalDay = sql.NullInt64{Int64: int64(*t.GoalDay), Valid: true}
			}
			if t.GoalCadenceFrequency != nil {
				goalFrequency = sql.NullInt64{Int64: int64(*t.GoalCadenceFrequency), Valid: true}
			}
			if t.GoalTargetMonth != nil {
				goalMonth = sql.NullString{String: t.GoalTargetMonth.Format(dayFormat), Valid: true}
			}
			if t.GoalOverallLeft != nil {
				goalLeft = sql.NullInt64{Int64: int64(*t.GoalOverallLeft), Valid: true}
			}
		}

		_, err = tx.Exec(`INSERT INTO categories
			(budget_id, name, balance, goal_type, goal_day, goal_cadence,
			 goal_cadence_frequency, goal_target, goal_target_month, goal_overall_left)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			snap.BudgetID, c.Name, int64(c.Balance), goalType, goalDay, goalCadence,
			goalFrequency, goalTarget, goalMonth, goalLeft,
		)
		if err != nil {
			return err
		}
	}

	for _, txn := range snap.Scheduled {
		_, err = tx.Exec(`INSERT INTO scheduled_transactions
			(budget_id, date_next, amount, category_name, account_name, payee_name, memo)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			snap.BudgetID, txn.DateNext.Format(dayFormat), int64(txn.Amount),
			txn.CategoryName, txn.AccountName, txn.PayeeName, txn.Memo,
		)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the stored snapshot for a budget. It returns nil (and
// no error) when the budget has never been synced.
func (s *Store) LoadSnapshot(budgetID string) (*model.Snapshot, error) {
	var fetchedAt string
	err := s.db.QueryRow("SELECT fetched_at FROM budgets WHERE budget_id = ?", budgetID).Scan(&fetchedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	snap := &model.Snapshot{BudgetID: budgetID}
	if at, err := time.Parse(time.RFC3339, fetchedAt); err == nil {
		snap.FetchedAt = at
	}

	if snap.Accounts, err = s.loadAccounts(budgetID); err != nil {
		return nil, err
	}
	if snap.Categories, err = s.loadCategories(budgetID); err != nil {
		return nil, err
	}
	if snap.Scheduled, err = s.loadScheduled(budgetID); err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *Store) loadAccounts(budgetID string) ([]model.Account, error) {
	rows, err := s.db.Query("SELECT name, balance FROM accounts WHERE budget_id = ?", budgetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var accounts []model.Account
	for rows.Next() {
		var a model.Account
		var balance int64
		if err := rows.Scan(&a.Name, &balance); err != nil {
			return nil, err
		}
		a.Balance = model.Milliunits(balance)
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

func (s *Store) loadCategories(budgetID string) ([]model.Category, error) {
	rows, err := s.db.Query(`SELECT name, balance, goal_type, goal_day, goal_cadence,
		goal_cadence_frequency, goal_target, goal_target_month, goal_overall_left
		FROM categories WHERE budget_id = ?`, budgetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var categories []model.Category
	for rows.Next() {
		var (
			c             model.Category
			balance       int64
			goalType      sql.NullString
			goalDay       sql.NullInt64
			goalCadence   sql.NullInt64
			goalFrequency sql.NullInt64
			goalTarget    sql.NullInt64
			goalMonth     sql.NullString
			goalLeft      sql.NullInt64
		)
		err := rows.Scan(&c.Name, &balance, &goalType, &goalDay, &goalCadence,
			&goalFrequency, &goalTarget, &goalMonth, &goalLeft)
		if err != nil {
			return nil, err
		}
		c.Balance = model.Milliunits(balance)

		if goalType.Valid {
			target := &model.Target{
				GoalType:    model.GoalType(goalType.String),
				GoalCadence: model.Cadence(goalCadence.Int64),
				GoalTarget:  model.Milliunits(goalTarget.Int64),
			}
			if goalDay.Valid {
				day := int(goalDay.Int64)
				target.GoalDay = &day
			}
			if goalFrequency.Valid {
				freq := int(goalFrequency.Int64)
				target.GoalCadenceFrequency = &freq
			}
			if goalMonth.Valid {
				month, err := time.Parse(dayFormat, goalMonth.String)
				if err != nil {
					return nil, fmt.Errorf("stored goal_target_month %q: %w", goalMonth.String, err)
				}
				target.GoalTargetMonth = &month
			}
			if goalLeft.Valid {
				left := model.Milliunits(goalLeft.Int64)
				target.GoalOverallLeft = &left
			}
			c.Target = target
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (s *Store) loadScheduled(budgetID string) ([]model.ScheduledTransaction, error) {
	rows, err := s.db.Query(`SELECT date_next, amount, category_name, account_name, payee_name, memo
		FROM scheduled_transactions WHERE budget_id = ? ORDER BY date_next`, budgetID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var scheduled []model.ScheduledTransaction
	for rows.Next() {
		var (
			txn      model.ScheduledTransaction
			dateNext string
			amount   int64
		)
		if err := rows.Scan(&dateNext, &amount, &txn.CategoryName, &txn.AccountName, &txn.PayeeName, &txn.Memo); err != nil {
			return nil, err
		}
		next, err := time.Parse(dayFormat, dateNext)
		if err != nil {
			return nil, fmt.Errorf("stored date_next %q: %w", dateNext, err)
		}
		txn.DateNext = next
		txn.Amount = model.Milliunits(amount)
		scheduled = append(scheduled, txn)
	}
	return scheduled, rows.Err()
}
