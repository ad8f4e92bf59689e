package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/mwolters/budgetcast/internal/model"
)

const testBudgetID = "9a5b79f9-3f46-4a94-9b8c-b24f4ad26aa5"

type stubSource struct {
	snap *model.Snapshot
	err  error
}

func (s *stubSource) Snapshot(_ context.Context, _ string, _ bool) (*model.Snapshot, error) {
	return s.snap, s.err
}

func testSnapshot() *model.Snapshot {
	return &model.Snapshot{
		BudgetID:  testBudgetID,
		FetchedAt: time.Date(2025, time.June, 15, 12, 0, 0, 0, time.UTC),
		Accounts: []model.Account{
			{Name: "Checking", Balance: 1000000},
		},
		Scheduled: []model.ScheduledTransaction{
			{
				DateNext:     time.Now().UTC().AddDate(0, 0, 10),
				Amount:       -50000,
				CategoryName: "Utilities",
			},
		},
	}
}

func newTestServer(t *testing.T, source SnapshotSource, simsDir string) *httptest.Server {
	t.Helper()
	svc := New(Config{DefaultDays: 90, SimsDir: simsDir}, source, zerolog.Nop())
	ts := httptest.NewServer(svc.Router())
	t.Cleanup(ts.Close)
	return ts
}

func getJSON(t *testing.T, url string, wantStatus int, out any) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s: %v", url, err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s: status %d, want %d", url, resp.StatusCode, wantStatus)
	}
	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
	}
}

func TestHealth(t *testing.T) {
	ts := newTestServer(t, &stubSource{snap: testSnapshot()}, t.TempDir())

	var body map[string]string
	getJSON(t, ts.URL+"/healthz", http.StatusOK, &body)
	if body["status"] != "ok" {
		t.Errorf("status = %q", body["status"])
	}
}

func TestForecast_ReturnsProjectedDays(t *testing.T) {
	ts := newTestServer(t, &stubSource{snap: testSnapshot()}, t.TempDir())

	var body forecastResponse
	getJSON(t, ts.URL+"/v1/budgets/"+testBudgetID+"/forecast?days=30", http.StatusOK, &body)

	if body.BudgetID != testBudgetID {
		t.Errorf("budget_id = %q", body.BudgetID)
	}
	if body.DaysAhead != 30 {
		t.Errorf("days_ahead = %d, want 30", body.DaysAhead)
	}
	if len(body.Days) < 2 {
		t.Fatalf("got %d days, want at least the initial balance and one transaction", len(body.Days))
	}
	first := body.Days[0]
	if first.Balance != 1000.0 {
		t.Errorf("day 0 balance = %.2f, want 1000.00", first.Balance)
	}
	if len(first.Changes) != 1 || first.Changes[0].Reason != "Initial Balance" {
		t.Errorf("day 0 changes = %+v", first.Changes)
	}
}

func TestForecast_DefaultDaysFromConfig(t *testing.T) {
	ts := newTestServer(t, &stubSource{snap: testSnapshot()}, t.TempDir())

	var body forecastResponse
	getJSON(t, ts.URL+"/v1/budgets/"+testBudgetID+"/forecast", http.StatusOK, &body)
	if body.DaysAhead != 90 {
		t.Errorf("days_ahead = %d, want configured default 90", body.DaysAhead)
	}
}

func TestForecast_RejectsBadBudgetID(t *testing.T) {
	ts := newTestServer(t, &stubSource{snap: testSnapshot()}, t.TempDir())
	getJSON(t, ts.URL+"/v1/budgets/not-a-uuid/forecast", http.StatusBadRequest, nil)
}

func TestForecast_RejectsBadDays(t *testing.T) {
	ts := newTestServer(t, &stubSource{snap: testSnapshot()}, t.TempDir())
	getJSON(t, ts.URL+"/v1/budgets/"+testBudgetID+"/forecast?days=soon", http.StatusBadRequest, nil)
	getJSON(t, ts.URL+"/v1/budgets/"+testBudgetID+"/forecast?days=-5", http.StatusBadRequest, nil)
}

func TestForecast_UpstreamFailureIsBadGateway(t *testing.T) {
	ts := newTestServer(t, &stubSource{err: errors.New("api down")}, t.TempDir())
	getJSON(t, ts.URL+"/v1/budgets/"+testBudgetID+"/forecast", http.StatusBadGateway, nil)
}

func TestForecast_UnknownSimulationIsNotFound(t *testing.T) {
	ts := newTestServer(t, &stubSource{snap: testSnapshot()}, t.TempDir())
	getJSON(t, ts.URL+"/v1/budgets/"+testBudgetID+"/forecast?sim=nope", http.StatusNotFound, nil)
}

func TestForecast_AppliesSimulation(t *testing.T) {
	simsDir := t.TempDir()
	date := time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02")
	event := `[{"date":"` + date + `","amount":-200.0,"category":"Car","reason":"repair"}]`
	if err := os.WriteFile(filepath.Join(simsDir, "car-repair.json"), []byte(event), 0o600); err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, &stubSource{snap: testSnapshot()}, simsDir)

	var body forecastResponse
	getJSON(t, ts.URL+"/v1/budgets/"+testBudgetID+"/forecast?days=30&sim=car-repair", http.StatusOK, &body)

	if body.Simulation != "car-repair" {
		t.Errorf("simulation = %q", body.Simulation)
	}
	found := false
	for _, day := range body.Days {
		for _, c := range day.Changes {
			if c.IsSimulation && c.Reason == "repair" {
				found = true
			}
		}
	}
	if !found {
		t.Error("simulation event missing from forecast")
	}
}

func TestCompare_ReturnsBaselinePlusSets(t *testing.T) {
	simsDir := t.TempDir()
	date := time.Now().UTC().AddDate(0, 0, 5).Format("2006-01-02")
	event := `[{"date":"` + date + `","amount":-100.0,"category":"Misc","reason":"test"}]`
	if err := os.WriteFile(filepath.Join(simsDir, "scenario.json"), []byte(event), 0o600); err != nil {
		t.Fatal(err)
	}
	ts := newTestServer(t, &stubSource{snap: testSnapshot()}, simsDir)

	var body compareResponse
	getJSON(t, ts.URL+"/v1/budgets/"+testBudgetID+"/forecast/compare?days=30", http.StatusOK, &body)

	if len(body.Series) != 2 {
		t.Fatalf("got %d series, want baseline plus one set", len(body.Series))
	}
	if body.Series[0].Name != "Actual Balance" {
		t.Errorf("first series = %q, want Actual Balance", body.Series[0].Name)
	}
	if body.Series[1].Name != "scenario" {
		t.Errorf("second series = %q", body.Series[1].Name)
	}
}
