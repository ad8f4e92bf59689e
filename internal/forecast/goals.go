package forecast

import (
	"time"

	"github.com/mwolters/budgetcast/internal/model"
)

// applyNeedGoals synthesizes future spending for every category carrying a
// NEED goal. Categories without a target, or with another goal type, are
// ignored.
func (l *ledger) applyNeedGoals(categories []model.Category, scheduled scheduledAmounts) {
	for i := range categories {
		cat := &categories[i]
		if cat.Target == nil || cat.Target.GoalType != model.GoalNeed {
			continue
		}
		l.applyNeedGoal(cat, scheduled)
	}
}

// applyNeedGoal walks the horizon month by month and emits at most one
// synthetic spending change per calendar month, according to the goal's
// cadence, anchor month, and funding left.
func (l *ledger) applyNeedGoal(cat *model.Category, scheduled scheduledAmounts) {
	target := cat.Target
	targetAmount := target.GoalTarget.Units()
	currentBalance := cat.Balance.Units()
	overallLeft := target.OverallLeft().Units()
	interval := target.GoalCadence.Interval() * target.CadenceFrequency()

	applied := make(map[monthKey]struct{})

	// Round the month count up so a trailing partial month is still walked;
	// dates past the horizon are dropped by add anyway.
	for offset := 0; offset <= (l.daysAhead+29)/30; offset++ {
		year, month := monthAt(l.today, offset)
		key := monthKey{year, month}
		if _, done := applied[key]; done {
			continue
		}

		date := spendingDate(year, month, target.GoalDay)
		schedAmount := scheduled.in(cat.Name, key)

		// Yearly-anchored goals bypass every other rule.
		if target.GoalCadence == model.CadenceYearly {
			anchor := target.GoalTargetMonth
			if anchor != nil && !date.Before(*anchor) && date.Month() == anchor.Month() {
				remaining := overallLeft
				if remaining <= 0 {
					remaining = targetAmount
				}
				if remaining = max0(remaining - schedAmount); remaining > 0 {
					l.spend(date, remaining, cat.Name, ReasonYearlyPayment)
				}
				applied[key] = struct{}{}
			}
			continue
		}

		if offset == 0 {
			// The envelope balance already reflects this month's real
			// funding and spending, so the current month consumes what is
			// left of it rather than the nominal target.
			if effective := max0(currentBalance - schedAmount); effective > 0 {
				l.spend(date, effective, cat.Name, ReasonCurrentMonthBalance)
			}
			applied[key] = struct{}{}
			continue
		}

		if anchor := target.GoalTargetMonth; anchor != nil {
			anchorKey := monthKey{anchor.Year(), anchor.Month()}
			switch {
			case key == anchorKey:
				if overallLeft > 0 {
					if remaining := max0(overallLeft - schedAmount); remaining > 0 {
						l.spend(date, remaining, cat.Name, ReasonRemainingSpending)
					}
				}
				applied[key] = struct{}{}
			case key.after(anchorKey):
				monthsSince := (year-anchor.Year())*12 + int(month) - int(anchor.Month())
				if monthsSince%interval == 0 {
					if remaining := max0(targetAmount - schedAmount); remaining > 0 {
						reason := recurringReason(target.GoalCadence, target.CadenceFrequency())
						l.spend(date, remaining, cat.Name, reason)
					}
					applied[key] = struct{}{}
				}
			}
			// Months before the anchor emit nothing.
			continue
		}

		// No anchor month: future months get the full per-period target,
		// less whatever is already scheduled.
		if remaining := max0(targetAmount - schedAmount); remaining > 0 {
			l.spend(date, remaining, cat.Name, ReasonFutureMonthTarget)
		}
		applied[key] = struct{}{}
	}
}

// spend records a synthetic spending change. Spending reduces the balance,
// so the stored amount is always negative.
func (l *ledger) spend(date time.Time, amount float64, category, reason string) {
	l.add(date.Format(dayFormat), model.Change{
		Reason:   reason,
		Amount:   -amount,
		Category: category,
	})
}

// monthAt maps a month offset from today onto a calendar (year, month),
// carrying across year boundaries.
func monthAt(today time.Time, offset int) (int, time.Month) {
	months := int(today.Month()) - 1 + offset
	return today.Year() + months/12, time.Month(months%12 + 1)
}

// spendingDate picks the goal day inside the month, falling back to the
// month's last day when the goal day is missing or invalid for that month.
func spendingDate(year int, month time.Month, goalDay *int) time.Time {
	last := daysIn(year, month)
	day := last
	if goalDay != nil && *goalDay >= 1 && *goalDay <= last {
		day = *goalDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in a month.
func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func max0(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
