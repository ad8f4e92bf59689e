package forecast

import (
	"time"

	"github.com/mwolters/budgetcast/internal/model"
)

const dayFormat = "2006-01-02"

// ledger is the date-indexed working state for one projection run. Every
// date in [today, today+daysAhead] has an entry; lookups by ISO date string
// silently drop anything outside the horizon.
type ledger struct {
	today     time.Time
	daysAhead int
	days      map[string]*model.LedgerDay
}

// newLedger allocates the horizon and seeds day 0 with the initial balance
// as a regular change. Balances stay at zero until integrate runs.
func newLedger(today time.Time, daysAhead int, initial float64) *ledger {
	l := &ledger{
		today:     today,
		daysAhead: daysAhead,
		days:      make(map[string]*model.LedgerDay, daysAhead+1),
	}
	for day := 0; day <= daysAhead; day++ {
		date := today.AddDate(0, 0, day).Format(dayFormat)
		l.days[date] = &model.LedgerDay{Date: date}
	}
	l.add(today.Format(dayFormat), model.Change{
		Reason:   ReasonInitialBalance,
		Amount:   initial,
		Category: startingBalanceCategory,
	})
	return l
}

// add appends a change to the given date. Dates outside the horizon are
// dropped without error: they are not yet relevant to this forecast.
func (l *ledger) add(date string, c model.Change) {
	day, ok := l.days[date]
	if !ok {
		return
	}
	day.Changes = append(day.Changes, c)
}

// integrate computes each day's net change and the cumulative balance in a
// single forward sweep. The running balance starts at zero; the initial
// balance is already present as the day-0 change.
func (l *ledger) integrate() {
	var running float64
	for day := 0; day <= l.daysAhead; day++ {
		entry := l.days[l.today.AddDate(0, 0, day).Format(dayFormat)]

		var diff float64
		for _, c := range entry.Changes {
			diff += c.Amount
		}
		entry.BalanceDiff = diff
		running += diff
		entry.Balance = running
	}
}

// result returns the days carrying at least one change, chronologically.
func (l *ledger) result() []model.LedgerDay {
	out := make([]model.LedgerDay, 0, len(l.days))
	for day := 0; day <= l.daysAhead; day++ {
		entry := l.days[l.today.AddDate(0, 0, day).Format(dayFormat)]
		if len(entry.Changes) > 0 {
			out = append(out, *entry)
		}
	}
	return out
}
