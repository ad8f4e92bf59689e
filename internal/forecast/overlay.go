package forecast

import (
	"math"
	"time"

	"github.com/mwolters/budgetcast/internal/model"
)

// monthKey identifies one calendar month.
type monthKey struct {
	year  int
	month time.Month
}

// after reports whether k is a strictly later month than other.
func (k monthKey) after(other monthKey) bool {
	if k.year != other.year {
		return k.year > other.year
	}
	return k.month > other.month
}

// scheduledAmounts tracks, per category, the absolute scheduled spend
// already placed in each calendar month. The goal projector subtracts these
// so synthetic spending never double-counts a real scheduled transaction.
type scheduledAmounts map[string]map[monthKey]float64

func (s scheduledAmounts) record(category string, key monthKey, amount float64) {
	months, ok := s[category]
	if !ok {
		months = make(map[monthKey]float64)
		s[category] = months
	}
	months[key] += amount
}

// in returns the scheduled spend for a category in a month, zero if none.
func (s scheduledAmounts) in(category string, key monthKey) float64 {
	return s[category][key]
}

// addScheduled places known future transactions onto their exact dates and
// returns the per-category monthly totals. Transactions outside the horizon
// are dropped.
func (l *ledger) addScheduled(txns []model.ScheduledTransaction) scheduledAmounts {
	scheduled := make(scheduledAmounts)
	for _, txn := range txns {
		date := txn.DateNext.Format(dayFormat)
		if _, ok := l.days[date]; !ok {
			continue
		}

		amount := txn.Amount.Units()
		l.add(date, model.Change{
			Reason:   ReasonScheduled,
			Amount:   amount,
			Category: txn.CategoryName,
			Account:  txn.AccountName,
			Payee:    txn.PayeeName,
			Memo:     txn.Memo,
		})
		key := monthKey{txn.DateNext.Year(), txn.DateNext.Month()}
		scheduled.record(txn.CategoryName, key, math.Abs(amount))
	}
	return scheduled
}

// addSimulations layers hypothetical events onto the ledger, tagged so
// callers can tell them apart from the real projection. Simulations never
// interact with the goal projector's per-month guard.
func (l *ledger) addSimulations(sims []model.Simulation) {
	for _, sim := range sims {
		category := sim.Category
		if category == "" {
			category = "Miscellaneous"
		}
		reason := sim.Reason
		if reason == "" {
			reason = ReasonSimulation
		}
		l.add(sim.Date, model.Change{
			Reason:       reason,
			Amount:       sim.Amount,
			Category:     category,
			IsSimulation: true,
		})
	}
}
