package gateway

import (
	"context"
	"fmt"
	"net/http"

	"onboarding-console/models"
)

// Customers issues customer calls against the backend.
type Customers struct {
	client *Client
}

// ListAll fetches every customer.
func (g *Customers) ListAll(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	if err := g.client.do(ctx, http.MethodGet, "/customers", nil, nil, &customers); err != nil {
		return nil, err
	}
	return customers, nil
}

// GetByID fetches a single customer.
func (g *Customers) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	var customer models.Customer
	path := fmt.Sprintf("/customers/%d", id)
	if err := g.client.do(ctx, http.MethodGet, path, nil, nil, &customer); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}

// Create registers a customer; the backend assigns id and timestamps.
func (g *Customers) Create(ctx context.Context, data models.CustomerCreate) (models.Customer, error) {
	var customer models.Customer
	if err := g.client.do(ctx, http.MethodPost, "/customers", nil, data, &customer); err != nil {
		return models.Customer{}, err
	}
	return customer, nil
}
