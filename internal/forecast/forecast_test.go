package forecast

import (
	"math"
	"testing"
	"time"

	"github.com/mwolters/budgetcast/internal/model"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func intPtr(v int) *int { return &v }

func muPtr(v model.Milliunits) *model.Milliunits { return &v }

func timePtr(t time.Time) *time.Time { return &t }

// entryFor returns the ledger day with the given date, failing if absent.
func entryFor(t *testing.T, days []model.LedgerDay, date string) model.LedgerDay {
	t.Helper()
	for _, d := range days {
		if d.Date == date {
			return d
		}
	}
	t.Fatalf("no ledger day for %s", date)
	return model.LedgerDay{}
}

// changesWithReason collects all changes across the result with the reason.
func changesWithReason(days []model.LedgerDay, reason string) []model.Change {
	var out []model.Change
	for _, d := range days {
		for _, c := range d.Changes {
			if c.Reason == reason {
				out = append(out, c)
			}
		}
	}
	return out
}

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestProject_InitialBalanceOnly(t *testing.T) {
	today := day(2025, time.June, 15)
	result := Project(Input{
		Accounts:  []model.Account{{Name: "Checking", Balance: 1000}},
		DaysAhead: 0,
		Today:     today,
	})

	if len(result) != 1 {
		t.Fatalf("result has %d days, want 1", len(result))
	}
	entry := result[0]
	if entry.Date != "2025-06-15" {
		t.Errorf("date = %s, want 2025-06-15", entry.Date)
	}
	if len(entry.Changes) != 1 {
		t.Fatalf("day has %d changes, want 1", len(entry.Changes))
	}
	c := entry.Changes[0]
	if c.Reason != ReasonInitialBalance || !almostEqual(c.Amount, 1.0) {
		t.Errorf("change = %+v, want Initial Balance of 1.0", c)
	}
	if !almostEqual(entry.Balance, 1.0) || !almostEqual(entry.BalanceDiff, 1.0) {
		t.Errorf("balance = %.3f diff = %.3f, want 1.0/1.0", entry.Balance, entry.BalanceDiff)
	}
}

func TestProject_ScheduledTransactionPlacement(t *testing.T) {
	today := day(2025, time.June, 1)
	result := Project(Input{
		Accounts: []model.Account{{Name: "Checking", Balance: 500000}},
		Scheduled: []model.ScheduledTransaction{
			{
				DateNext:     day(2025, time.June, 10),
				Amount:       -50000,
				CategoryName: "Groceries",
				AccountName:  "Checking",
				PayeeName:    "Supermarket",
				Memo:         "weekly run",
			},
			// Outside the horizon: silently dropped.
			{DateNext: day(2026, time.January, 1), Amount: -1000, CategoryName: "Groceries"},
		},
		DaysAhead: 30,
		Today:     today,
	})

	entry := entryFor(t, result, "2025-06-10")
	if len(entry.Changes) != 1 {
		t.Fatalf("2025-06-10 has %d changes, want 1", len(entry.Changes))
	}
	c := entry.Changes[0]
	if c.Reason != ReasonScheduled || !almostEqual(c.Amount, -50.0) {
		t.Errorf("change = %+v, want Scheduled Transaction of -50.0", c)
	}
	if c.Account != "Checking" || c.Payee != "Supermarket" || c.Memo != "weekly run" {
		t.Errorf("change metadata = %+v", c)
	}

	for _, d := range result {
		if d.Date > "2025-07-01" {
			t.Errorf("ledger day %s falls outside the horizon", d.Date)
		}
	}
}

func TestProject_SimulationOverlay(t *testing.T) {
	today := day(2025, time.June, 1)
	result := Project(Input{
		Accounts: []model.Account{{Name: "Checking", Balance: 200000}},
		Simulations: []model.Simulation{
			{Date: "2025-06-11", Amount: -50.0, Category: "Misc", Reason: "new bike"},
		},
		DaysAhead: 30,
		Today:     today,
	})

	entry := entryFor(t, result, "2025-06-11")
	if len(entry.Changes) != 1 {
		t.Fatalf("2025-06-11 has %d changes, want 1", len(entry.Changes))
	}
	c := entry.Changes[0]
	if !c.IsSimulation {
		t.Error("simulation change not tagged is_simulation")
	}
	if c.Category != "Misc" || c.Reason != "new bike" || !almostEqual(c.Amount, -50.0) {
		t.Errorf("change = %+v", c)
	}
	// 200.0 starting balance less the simulated 50.
	if !almostEqual(entry.Balance, 150.0) {
		t.Errorf("running balance after simulation = %.2f, want 150.0", entry.Balance)
	}
}

func TestProject_SimulationDefaults(t *testing.T) {
	today := day(2025, time.June, 1)
	result := Project(Input{
		Simulations: []model.Simulation{{Date: "2025-06-05", Amount: -10.0}},
		DaysAhead:   10,
		Today:       today,
	})

	entry := entryFor(t, result, "2025-06-05")
	c := entry.Changes[0]
	if c.Category != "Miscellaneous" {
		t.Errorf("category = %q, want Miscellaneous", c.Category)
	}
	if c.Reason != ReasonSimulation {
		t.Errorf("reason = %q, want %q", c.Reason, ReasonSimulation)
	}
}

func TestProject_NegativeDaysAheadClamped(t *testing.T) {
	result := Project(Input{
		Accounts:  []model.Account{{Balance: 1000}},
		DaysAhead: -5,
		Today:     day(2025, time.June, 1),
	})
	if len(result) != 1 {
		t.Fatalf("result has %d days, want 1", len(result))
	}
}

// TestProject_Invariants runs a composite projection and checks the sum,
// chain, horizon, and at-most-one-recurring-change-per-month properties.
func TestProject_Invariants(t *testing.T) {
	today := day(2025, time.June, 1)
	horizon := 120

	result := Project(Input{
		Accounts: []model.Account{
			{Name: "Checking", Balance: 1500000},
			{Name: "Savings", Balance: 2500000},
		},
		Categories: []model.Category{
			{
				Name:    "Rent",
				Balance: 950000,
				Target: &model.Target{
					GoalType:    model.GoalNeed,
					GoalTarget:  950000,
					GoalCadence: model.CadenceMonthly,
					GoalDay:     intPtr(1),
				},
			},
			{
				Name:    "Insurance",
				Balance: 120000,
				Target: &model.Target{
					GoalType:        model.GoalNeed,
					GoalTarget:      360000,
					GoalCadence:     model.CadenceQuarterly,
					GoalDay:         intPtr(15),
					GoalTargetMonth: timePtr(day(2025, time.August, 1)),
					GoalOverallLeft: muPtr(240000),
				},
			},
		},
		Scheduled: []model.ScheduledTransaction{
			{DateNext: day(2025, time.June, 25), Amount: -80000, CategoryName: "Utilities", AccountName: "Checking", PayeeName: "Grid Co"},
			{DateNext: day(2025, time.July, 25), Amount: -80000, CategoryName: "Utilities", AccountName: "Checking", PayeeName: "Grid Co"},
		},
		Simulations: []model.Simulation{
			{Date: "2025-07-04", Amount: -250.0, Category: "Travel", Reason: "city trip"},
		},
		DaysAhead: horizon,
		Today:     today,
	})

	if len(result) == 0 {
		t.Fatal("empty result")
	}

	last := today.AddDate(0, 0, horizon).Format(dayFormat)
	first := today.Format(dayFormat)

	recurringReasons := map[string]bool{
		ReasonCurrentMonthBalance: true,
		ReasonFutureMonthTarget:   true,
		ReasonRemainingSpending:   true,
		ReasonYearlyPayment:       true,
	}
	perCategoryMonth := make(map[string]int)

	var prevBalance float64
	for i, entry := range result {
		if entry.Date < first || entry.Date > last {
			t.Errorf("day %s outside horizon [%s, %s]", entry.Date, first, last)
		}
		if len(entry.Changes) == 0 {
			t.Errorf("day %s has no changes but survived filtering", entry.Date)
		}

		var sum float64
		for _, c := range entry.Changes {
			sum += c.Amount

			recurring := recurringReasons[c.Reason] ||
				c.Reason == recurringReason(model.CadenceQuarterly, 1)
			if recurring && !c.IsSimulation {
				key := c.Category + "/" + entry.Date[:7]
				perCategoryMonth[key]++
				if perCategoryMonth[key] > 1 {
					t.Errorf("more than one synthetic goal change for %s", key)
				}
			}
		}
		if !almostEqual(sum, entry.BalanceDiff) {
			t.Errorf("day %s: balance_diff %.4f != change sum %.4f", entry.Date, entry.BalanceDiff, sum)
		}

		want := prevBalance + entry.BalanceDiff
		if i == 0 {
			want = entry.BalanceDiff
		}
		if !almostEqual(entry.Balance, want) {
			t.Errorf("day %s: balance %.4f, want %.4f", entry.Date, entry.Balance, want)
		}
		prevBalance = entry.Balance
	}

	// Chronological order.
	for i := 1; i < len(result); i++ {
		if result[i-1].Date >= result[i].Date {
			t.Errorf("result not chronological: %s before %s", result[i-1].Date, result[i].Date)
		}
	}
}
