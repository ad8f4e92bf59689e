package ynab

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwolters/budgetcast/internal/model"
)

// newTestClient spins up a stub API returning fixed bodies per path.
func newTestClient(t *testing.T, routes map[string]string) *Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-token" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		body, ok := routes[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient("test-token", srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestAccounts_FiltersClosedAndOffBudget(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/budgets/b1/accounts": `{"data":{"accounts":[
			{"name":"Checking","balance":150000,"on_budget":true,"closed":false,"deleted":false},
			{"name":"Old","balance":0,"on_budget":true,"closed":true,"deleted":false},
			{"name":"Mortgage","balance":-2000000,"on_budget":false,"closed":false,"deleted":false}
		]}}`,
	})

	accounts, err := client.Accounts(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Accounts: %v", err)
	}
	if len(accounts) != 1 {
		t.Fatalf("got %d accounts, want 1", len(accounts))
	}
	if accounts[0].Name != "Checking" || accounts[0].Balance != 150000 {
		t.Errorf("account = %+v", accounts[0])
	}
}

func TestCategories_FlattensGroupsAndParsesTarget(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/budgets/b1/categories": `{"data":{"category_groups":[
			{"name":"Bills","hidden":false,"deleted":false,"categories":[
				{"name":"Rent","balance":950000,"hidden":false,"deleted":false,
				 "goal_type":"NEED","goal_day":1,"goal_cadence":1,"goal_cadence_frequency":1,
				 "goal_target":950000,"goal_target_month":null,"goal_overall_left":null},
				{"name":"Insurance","balance":120000,"hidden":false,"deleted":false,
				 "goal_type":"NEED","goal_day":15,"goal_cadence":3,"goal_cadence_frequency":null,
				 "goal_target":360000,"goal_target_month":"2025-08-01","goal_overall_left":240000}
			]},
			{"name":"Hidden Group","hidden":true,"deleted":false,"categories":[
				{"name":"Ghost","balance":0,"hidden":false,"deleted":false,"goal_type":null}
			]},
			{"name":"Fun","hidden":false,"deleted":false,"categories":[
				{"name":"Games","balance":25000,"hidden":false,"deleted":false,"goal_type":null}
			]}
		]}}`,
	})

	categories, err := client.Categories(context.Background(), "b1")
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(categories) != 3 {
		t.Fatalf("got %d categories, want 3", len(categories))
	}

	rent := categories[0]
	if rent.Target == nil || rent.Target.GoalType != model.GoalNeed {
		t.Fatalf("rent target = %+v", rent.Target)
	}
	if rent.Target.GoalCadence != model.CadenceMonthly {
		t.Errorf("rent cadence = %v", rent.Target.GoalCadence)
	}

	insurance := categories[1]
	if insurance.Target.GoalTargetMonth == nil {
		t.Fatal("insurance goal_target_month not parsed")
	}
	want := time.Date(2025, time.August, 1, 0, 0, 0, 0, time.UTC)
	if !insurance.Target.GoalTargetMonth.Equal(want) {
		t.Errorf("goal_target_month = %v, want %v", insurance.Target.GoalTargetMonth, want)
	}
	if insurance.Target.CadenceFrequency() != 1 {
		t.Errorf("missing cadence frequency should default to 1, got %d", insurance.Target.CadenceFrequency())
	}
	if insurance.Target.OverallLeft() != 240000 {
		t.Errorf("overall left = %d, want 240000", insurance.Target.OverallLeft())
	}

	if categories[2].Target != nil {
		t.Errorf("category without goal_type should have nil target: %+v", categories[2].Target)
	}
}

func TestCategories_MalformedTargetMonthFails(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/budgets/b1/categories": `{"data":{"category_groups":[
			{"name":"Bills","categories":[
				{"name":"Rent","goal_type":"NEED","goal_target_month":"not-a-date"}
			]}
		]}}`,
	})

	if _, err := client.Categories(context.Background(), "b1"); err == nil {
		t.Fatal("expected error for malformed goal_target_month")
	}
}

func TestScheduledTransactions_ParsesAndSkipsDeleted(t *testing.T) {
	client := newTestClient(t, map[string]string{
		"/budgets/b1/scheduled_transactions": `{"data":{"scheduled_transactions":[
			{"date_next":"2025-07-25","amount":-80000,"category_name":"Utilities",
			 "account_name":"Checking","payee_name":"Grid Co","memo":"power","deleted":false},
			{"date_next":"2025-07-26","amount":-10000,"category_name":"Gone","deleted":true}
		]}}`,
	})

	scheduled, err := client.ScheduledTransactions(context.Background(), "b1")
	if err != nil {
		t.Fatalf("ScheduledTransactions: %v", err)
	}
	if len(scheduled) != 1 {
		t.Fatalf("got %d scheduled transactions, want 1", len(scheduled))
	}
	txn := scheduled[0]
	if txn.CategoryName != "Utilities" || txn.Amount != -80000 {
		t.Errorf("transaction = %+v", txn)
	}
	if txn.DateNext.Format("2006-01-02") != "2025-07-25" {
		t.Errorf("date_next = %v", txn.DateNext)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient("bad-token", srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.Accounts(context.Background(), "b1")
	if !errors.Is(err, ErrUnauthorized) {
		t.Errorf("err = %v, want ErrUnauthorized", err)
	}
}

func TestClient_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	t.Cleanup(srv.Close)

	client, err := NewClient("test-token", srv.URL)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = client.ScheduledTransactions(context.Background(), "b1")
	if !errors.Is(err, ErrRateLimited) {
		t.Errorf("err = %v, want ErrRateLimited", err)
	}
}

func TestNewClient_RequiresToken(t *testing.T) {
	if _, err := NewClient("", ""); err == nil {
		t.Fatal("expected error for empty token")
	}
}
