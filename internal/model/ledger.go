package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Change is one balance movement on a ledger day. Changes are append-only:
// once placed on a day they are only ever summed, never edited.
type Change struct {
	Reason       string  `json:"reason"`
	Amount       float64 `json:"amount"`
	Category     string  `json:"category"`
	Account      string  `json:"account,omitempty"`
	Payee        string  `json:"payee,omitempty"`
	Memo         string  `json:"memo,omitempty"`
	IsSimulation bool    `json:"is_simulation,omitempty"`
}

// LedgerDay is one calendar day of the forecast: the changes landing on it,
// their net effect, and the running balance after applying them.
type LedgerDay struct {
	Date        string   `json:"date"`
	Balance     float64  `json:"balance"`
	BalanceDiff float64  `json:"balance_diff"`
	Changes     []Change `json:"changes"`
}

// Simulation is a user-authored hypothetical event layered onto the real
// forecast. Amount is already in currency units, not milliunits. Date is an
// ISO day (2006-01-02) so simulation files stay human-editable.
type Simulation struct {
	Date     string  `json:"date"`
	Amount   float64 `json:"amount"`
	Category string  `json:"category"`
	Reason   string  `json:"reason"`
}

// UnmarshalJSON accepts the amount as either a JSON number or a numeric
// string, since hand-written simulation files use both.
func (s *Simulation) UnmarshalJSON(data []byte) error {
	type alias struct {
		Date     string          `json:"date"`
		Amount   json.RawMessage `json:"amount"`
		Category string          `json:"category"`
		Reason   string          `json:"reason"`
	}
	var a alias
	if err := json.Unmarshal(data, &a); err != nil {
		return err
	}

	s.Date = a.Date
	s.Category = a.Category
	s.Reason = a.Reason

	if len(a.Amount) == 0 {
		return nil
	}
	raw := strings.Trim(string(a.Amount), `"`)
	amount, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fmt.Errorf("simulation amount %q: %w", raw, err)
	}
	s.Amount = amount
	return nil
}
