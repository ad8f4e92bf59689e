// Package model defines domain types for budgets, categories, and the forecast ledger.
package model

import "time"

// Milliunits is the YNAB subunit integer: one thousandth of a currency unit.
// All amounts coming off the wire are milliunits; the forecast engine works
// in currency units, converted exactly once at ingestion.
type Milliunits int64

// Units converts milliunits to currency units.
func (m Milliunits) Units() float64 {
	return float64(m) / 1000
}

// Account is an on-budget account with its current cleared balance.
type Account struct {
	Name    string
	Balance Milliunits
}

// GoalType identifies the kind of savings/spending goal on a category.
type GoalType string

// Goal types as reported by the budget API. Only GoalNeed participates in
// the forecast; the others are carried for display and filtering.
const (
	GoalTargetBalance       GoalType = "TB"
	GoalTargetBalanceByDate GoalType = "TBD"
	GoalMonthlyFunding      GoalType = "MF"
	GoalNeed                GoalType = "NEED"
	GoalDebt                GoalType = "DEBT"
)

// Cadence is how often a goal's target amount recurs.
type Cadence int

// Cadence identifiers as reported by the budget API. Yearly goals use the
// irregular identifier 13 rather than 12.
const (
	CadenceMonthly   Cadence = 1
	CadenceQuarterly Cadence = 3
	CadenceYearly    Cadence = 13
)

// Interval returns the cadence length in months.
func (c Cadence) Interval() int {
	switch c {
	case CadenceQuarterly:
		return 3
	case CadenceYearly:
		return 12
	default:
		return 1
	}
}

// Label returns the human-readable cadence name used in change reasons.
func (c Cadence) Label() string {
	switch c {
	case CadenceQuarterly:
		return "Quarterly"
	case CadenceYearly:
		return "Yearly"
	default:
		return "Monthly"
	}
}

// Target is a category's savings/spending goal. Optional fields are
// pointers; the accessor methods apply the documented fallbacks so callers
// never branch on nil themselves.
type Target struct {
	GoalType             GoalType
	GoalTarget           Milliunits
	GoalCadence          Cadence
	GoalCadenceFrequency *int
	GoalDay              *int
	GoalTargetMonth      *time.Time
	GoalOverallLeft      *Milliunits
}

// CadenceFrequency returns the cadence multiplier, defaulting to 1.
func (t *Target) CadenceFrequency() int {
	if t.GoalCadenceFrequency == nil || *t.GoalCadenceFrequency < 1 {
		return 1
	}
	return *t.GoalCadenceFrequency
}

// OverallLeft returns the remaining goal amount, treating missing as zero.
func (t *Target) OverallLeft() Milliunits {
	if t.GoalOverallLeft == nil {
		return 0
	}
	return *t.GoalOverallLeft
}

// Category is a budget envelope: its current leftover balance and, when a
// goal is configured, the target driving future synthetic spending.
type Category struct {
	Name    string
	Balance Milliunits
	Target  *Target
}

// ScheduledTransaction is a known future transaction from the budget API.
type ScheduledTransaction struct {
	DateNext     time.Time
	Amount       Milliunits
	CategoryName string
	AccountName  string
	PayeeName    string
	Memo         string
}

// Snapshot is one budget's fully materialized data set, fetched from the
// budget API and cached locally. The engine never fetches anything itself;
// it consumes a snapshot.
type Snapshot struct {
	BudgetID  string
	FetchedAt time.Time

	Accounts   []Account
	Categories []Category
	Scheduled  []ScheduledTransaction
}
