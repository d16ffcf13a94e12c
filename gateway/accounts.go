package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"onboarding-console/models"
)

// Accounts issues account calls against the backend.
type Accounts struct {
	client *Client
}

// ListAll fetches every account.
func (g *Accounts) ListAll(ctx context.Context) ([]models.Account, error) {
	var accounts []models.Account
	if err := g.client.do(ctx, http.MethodGet, "/accounts", nil, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// ListByCustomer fetches the accounts of one customer, filtered server side.
func (g *Accounts) ListByCustomer(ctx context.Context, customerID int64) ([]models.Account, error) {
	query := url.Values{"customerId": {strconv.FormatInt(customerID, 10)}}
	var accounts []models.Account
	if err := g.client.do(ctx, http.MethodGet, "/accounts", query, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

// Create opens an account. The backend rejects a second account per customer.
func (g *Accounts) Create(ctx context.Context, data models.AccountCreate) (models.Account, error) {
	var account models.Account
	if err := g.client.do(ctx, http.MethodPost, "/accounts", nil, data, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// UpdateStatus sets the account status.
func (g *Accounts) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) (models.Account, error) {
	var account models.Account
	path := fmt.Sprintf("/accounts/%d/status", id)
	if err := g.client.do(ctx, http.MethodPatch, path, nil, models.StatusUpdate{Status: status}, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}

// Transaction posts a deposit or withdrawal and returns the updated account.
func (g *Accounts) Transaction(ctx context.Context, id int64, req models.TransactionRequest) (models.Account, error) {
	var account models.Account
	path := fmt.Sprintf("/accounts/%d/transaction", id)
	if err := g.client.do(ctx, http.MethodPost, path, nil, req, &account); err != nil {
		return models.Account{}, err
	}
	return account, nil
}
