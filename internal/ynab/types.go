package ynab

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/mwolters/budgetcast/internal/model"
)

// Wire shapes for the YNAB v1 API. Amounts are milliunits throughout;
// conversion to domain types happens here so nothing downstream sees wire
// records.

type wireAccount struct {
	Name     string `json:"name"`
	Balance  int64  `json:"balance"`
	OnBudget bool   `json:"on_budget"`
	Closed   bool   `json:"closed"`
	Deleted  bool   `json:"deleted"`
}

type accountsResponse struct {
	Data struct {
		Accounts []wireAccount `json:"accounts"`
	} `json:"data"`
}

type wireCategory struct {
	Name    string `json:"name"`
	Balance int64  `json:"balance"`
	Hidden  bool   `json:"hidden"`
	Deleted bool   `json:"deleted"`

	GoalType             *string `json:"goal_type"`
	GoalDay              *int    `json:"goal_day"`
	GoalCadence          *int    `json:"goal_cadence"`
	GoalCadenceFrequency *int    `json:"goal_cadence_frequency"`
	GoalTarget           *int64  `json:"goal_target"`
	GoalTargetMonth      *string `json:"goal_target_month"`
	GoalOverallLeft      *int64  `json:"goal_overall_left"`
}

type wireCategoryGroup struct {
	Name       string         `json:"name"`
	Hidden     bool           `json:"hidden"`
	Deleted    bool           `json:"deleted"`
	Categories []wireCategory `json:"categories"`
}

type categoriesResponse struct {
	Data struct {
		CategoryGroups []wireCategoryGroup `json:"category_groups"`
	} `json:"data"`
}

type wireScheduled struct {
	DateNext     string `json:"date_next"`
	Amount       int64  `json:"amount"`
	CategoryName string `json:"category_name"`
	AccountName  string `json:"account_name"`
	PayeeName    string `json:"payee_name"`
	Memo         string `json:"memo"`
	Deleted      bool   `json:"deleted"`
}

type scheduledResponse struct {
	Data struct {
		ScheduledTransactions []wireScheduled `json:"scheduled_transactions"`
	} `json:"data"`
}

func parseAccounts(body []byte) ([]model.Account, error) {
	var resp accountsResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ynab: parsing accounts: %w", err)
	}

	accounts := make([]model.Account, 0, len(resp.Data.Accounts))
	for _, a := range resp.Data.Accounts {
		if a.Deleted || a.Closed || !a.OnBudget {
			continue
		}
		accounts = append(accounts, model.Account{
			Name:    a.Name,
			Balance: model.Milliunits(a.Balance),
		})
	}
	return accounts, nil
}

func parseCategories(body []byte) ([]model.Category, error) {
	var resp categoriesResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ynab: parsing categories: %w", err)
	}

	var categories []model.Category
	for _, group := range resp.Data.CategoryGroups {
		if group.Hidden || group.Deleted {
			continue
		}
		for _, c := range group.Categories {
			if c.Hidden || c.Deleted {
				continue
			}
			target, err := toTarget(c)
			if err != nil {
				return nil, fmt.Errorf("ynab: category %q: %w", c.Name, err)
			}
			categories = append(categories, model.Category{
				Name:    c.Name,
				Balance: model.Milliunits(c.Balance),
				Target:  target,
			})
		}
	}
	return categories, nil
}

// toTarget converts the flat wire goal fields into a Target, or nil when the
// category carries no goal. A malformed goal_target_month is an input error
// and surfaces here, before the engine ever runs.
func toTarget(c wireCategory) (*model.Target, error) {
	if c.GoalType == nil || *c.GoalType == "" {
		return nil, nil
	}

	target := &model.Target{
		GoalType:             model.GoalType(*c.GoalType),
		GoalCadenceFrequency: c.GoalCadenceFrequency,
		GoalDay:              c.GoalDay,
	}
	if c.GoalCadence != nil {
		target.GoalCadence = model.Cadence(*c.GoalCadence)
	}
	if c.GoalTarget != nil {
		target.GoalTarget = model.Milliunits(*c.GoalTarget)
	}
	if c.GoalOverallLeft != nil {
		left := model.Milliunits(*c.GoalOverallLeft)
		target.GoalOverallLeft = &left
	}
	if c.GoalTargetMonth != nil && *c.GoalTargetMonth != "" {
		month, err := time.Parse("2006-01-02", *c.GoalTargetMonth)
		if err != nil {
			return nil, fmt.Errorf("goal_target_month %q: %w", *c.GoalTargetMonth, err)
		}
		target.GoalTargetMonth = &month
	}
	return target, nil
}

func parseScheduled(body []byte) ([]model.ScheduledTransaction, error) {
	var resp scheduledResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("ynab: parsing scheduled transactions: %w", err)
	}

	scheduled := make([]model.ScheduledTransaction, 0, len(resp.Data.ScheduledTransactions))
	for _, txn := range resp.Data.ScheduledTransactions {
		if txn.Deleted {
			continue
		}
		next, err := time.Parse("2006-01-02", txn.DateNext)
		if err != nil {
			return nil, fmt.Errorf("ynab: scheduled transaction date %q: %w", txn.DateNext, err)
		}
		scheduled = append(scheduled, model.ScheduledTransaction{
			DateNext:     next,
			Amount:       model.Milliunits(txn.Amount),
			CategoryName: txn.CategoryName,
			AccountName:  txn.AccountName,
			PayeeName:    txn.PayeeName,
			Memo:         txn.Memo,
		})
	}
	return scheduled, nil
}
