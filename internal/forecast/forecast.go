// Package forecast implements the daily balance projection engine: it builds
// a date-indexed ledger over the requested horizon, places scheduled
// transactions and synthetic recurring-goal spending onto it, layers on
// what-if simulations, and integrates the running balance.
//
// The engine is pure computation. It performs no I/O, keeps no state between
// calls, and is safe to run concurrently for different inputs.
package forecast

import (
	"fmt"
	"time"

	"github.com/mwolters/budgetcast/internal/model"
)

// Change reasons emitted by the engine.
const (
	ReasonInitialBalance      = "Initial Balance"
	ReasonScheduled           = "Scheduled Transaction"
	ReasonCurrentMonthBalance = "Current Month Balance"
	ReasonFutureMonthTarget   = "Future Month Target"
	ReasonRemainingSpending   = "Remaining Spending (Goal Target)"
	ReasonYearlyPayment       = "Yearly Payment"
	ReasonSimulation          = "Simulation"
)

// startingBalanceCategory labels the synthetic day-0 change.
const startingBalanceCategory = "Starting Balance"

// recurringReason builds the reason string for cadence-driven spending,
// e.g. "Recurring Spending (Quarterly every 1)".
func recurringReason(cadence model.Cadence, frequency int) string {
	return fmt.Sprintf("Recurring Spending (%s every %d)", cadence.Label(), frequency)
}

// Input carries everything one projection run needs. The collections must be
// fully materialized before calling Project; collaborator failures are the
// caller's problem, not the engine's.
type Input struct {
	Accounts    []model.Account
	Categories  []model.Category
	Scheduled   []model.ScheduledTransaction
	Simulations []model.Simulation

	// DaysAhead is the forecast horizon: [today, today+DaysAhead] inclusive.
	DaysAhead int

	// Today anchors the horizon. The zero value means time.Now; tests and
	// the API pass a fixed date for determinism.
	Today time.Time
}

// Project builds the forecast ledger and returns the days that carry at
// least one change, in chronological order.
func Project(in Input) []model.LedgerDay {
	today := in.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = time.Date(today.Year(), today.Month(), today.Day(), 0, 0, 0, 0, time.UTC)

	daysAhead := in.DaysAhead
	if daysAhead < 0 {
		daysAhead = 0
	}

	led := newLedger(today, daysAhead, initialBalance(in.Accounts))
	scheduled := led.addScheduled(in.Scheduled)
	led.applyNeedGoals(in.Categories, scheduled)
	led.addSimulations(in.Simulations)
	led.integrate()
	return led.result()
}

// initialBalance sums the account balances and converts to currency units.
func initialBalance(accounts []model.Account) float64 {
	var total model.Milliunits
	for _, a := range accounts {
		total += a.Balance
	}
	return total.Units()
}
