// Package ynab provides a read-only client for the YNAB v1 API. It is the
// repository layer for accounts, categories, and scheduled transactions:
// every call returns a fully materialized slice, ready for the forecast
// engine.
package ynab

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/mwolters/budgetcast/internal/model"
)

const (
	defaultBaseURL = "https://api.ynab.com/v1"
	requestTimeout = 15 * time.Second
	maxBodySize    = 1 << 20 // 1 MB
)

var (
	// ErrUnauthorized indicates the access token is missing or invalid.
	ErrUnauthorized = errors.New("ynab: unauthorized (check the access token)")
	// ErrRateLimited indicates the API rate limit was hit.
	ErrRateLimited = errors.New("ynab: rate limited")
)

// Client fetches budget data from the YNAB API.
type Client struct {
	token   string
	baseURL string
	http    *http.Client
}

// NewClient creates a client for the given access token. An empty baseURL
// selects the public API endpoint.
func NewClient(token, baseURL string) (*Client, error) {
	if token == "" {
		return nil, errors.New("ynab: access token is required")
	}
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &Client{
		token:   token,
		baseURL: baseURL,
		http:    &http.Client{Timeout: requestTimeout},
	}, nil
}

// Snapshot fetches accounts, categories, and scheduled transactions for one
// budget. Any failure aborts the whole snapshot: the forecast engine must
// never run on partial data.
func (c *Client) Snapshot(ctx context.Context, budgetID string) (*model.Snapshot, error) {
	accounts, err := c.Accounts(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	categories, err := c.Categories(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	scheduled, err := c.ScheduledTransactions(ctx, budgetID)
	if err != nil {
		return nil, err
	}
	return &model.Snapshot{
		BudgetID:   budgetID,
		FetchedAt:  time.Now().UTC(),
		Accounts:   accounts,
		Categories: categories,
		Scheduled:  scheduled,
	}, nil
}

// Accounts returns the open, on-budget accounts for a budget.
func (c *Client) Accounts(ctx context.Context, budgetID string) ([]model.Account, error) {
	body, err := c.get(ctx, fmt.Sprintf("/budgets/%s/accounts", budgetID))
	if err != nil {
		return nil, err
	}
	return parseAccounts(body)
}

// Categories returns the visible categories for a budget, flattened across
// category groups, with their goal targets.
func (c *Client) Categories(ctx context.Context, budgetID string) ([]model.Category, error) {
	body, err := c.get(ctx, fmt.Sprintf("/budgets/%s/categories", budgetID))
	if err != nil {
		return nil, err
	}
	return parseCategories(body)
}

// ScheduledTransactions returns the upcoming scheduled transactions for a
// budget.
func (c *Client) ScheduledTransactions(ctx context.Context, budgetID string) ([]model.ScheduledTransaction, error) {
	body, err := c.get(ctx, fmt.Sprintf("/budgets/%s/scheduled_transactions", budgetID))
	if err != nil {
		return nil, err
	}
	return parseScheduled(body)
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("ynab: building request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ynab: %s: %w", path, err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusUnauthorized, http.StatusForbidden:
		return nil, ErrUnauthorized
	case http.StatusTooManyRequests:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("ynab: %s: unexpected status %d", path, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, fmt.Errorf("ynab: reading response: %w", err)
	}
	return body, nil
}
