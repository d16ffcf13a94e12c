package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

func init() {
	// The backend exchanges balances and amounts as JSON numbers.
	decimal.MarshalJSONWithoutQuotes = true
}

// AccountStatus is the lifecycle state of an account.
type AccountStatus string

const (
	StatusActive   AccountStatus = "ACTIVE"
	StatusInactive AccountStatus = "INACTIVE"
)

// Valid reports whether s is a status the backend accepts.
func (s AccountStatus) Valid() bool {
	return s == StatusActive || s == StatusInactive
}

// Toggle returns the opposite status. Anything that is not ACTIVE toggles to ACTIVE.
func (s AccountStatus) Toggle() AccountStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// Label is the operator-facing name of the status.
func (s AccountStatus) Label() string {
	if s == StatusActive {
		return "Activa"
	}
	return "Bloqueada"
}

// TransactionType is the kind of balance movement posted against an account.
type TransactionType string

const (
	TransactionDeposit    TransactionType = "DEPOSIT"
	TransactionWithdrawal TransactionType = "WITHDRAWAL"
)

// Valid reports whether t is a known transaction type.
func (t TransactionType) Valid() bool {
	return t == TransactionDeposit || t == TransactionWithdrawal
}

// Label is the operator-facing name of the transaction type.
func (t TransactionType) Label() string {
	switch t {
	case TransactionDeposit:
		return "Depósito"
	case TransactionWithdrawal:
		return "Retiro"
	default:
		return string(t)
	}
}

// ParseTransactionType accepts the wire names case-insensitively.
func ParseTransactionType(s string) (TransactionType, error) {
	t := TransactionType(strings.ToUpper(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", fmt.Errorf("unknown transaction type %q", s)
	}
	return t, nil
}

// DocumentTypes lists the identity document kinds the backend accepts.
var DocumentTypes = []string{"CC", "CE", "PAS"}

// DefaultDocumentType preselects the registration form.
const DefaultDocumentType = "CC"

// Customer represents a bank customer
type Customer struct {
	ID             int64     `json:"id"`
	DocumentType   string    `json:"documentType"`
	DocumentNumber string    `json:"documentNumber"`
	FullName       string    `json:"fullName"`
	Email          string    `json:"email"`
	CreatedAt      Timestamp `json:"createdAt"`
	UpdatedAt      Timestamp `json:"updatedAt"`
}

// Account represents a bank account. The backend allows one per customer.
type Account struct {
	ID            int64           `json:"id"`
	CustomerID    int64           `json:"customerId"`
	AccountNumber string          `json:"accountNumber"`
	Status        AccountStatus   `json:"status"`
	Balance       decimal.Decimal `json:"balance"`
	CreatedAt     Timestamp       `json:"createdAt"`
	UpdatedAt     Timestamp       `json:"updatedAt"`
}

// CustomerCreate is the payload for registering a customer.
type CustomerCreate struct {
	DocumentType   string `json:"documentType"`
	DocumentNumber string `json:"documentNumber"`
	FullName       string `json:"fullName"`
	Email          string `json:"email"`
}

// AccountCreate is the payload for opening an account.
type AccountCreate struct {
	CustomerID int64 `json:"customerId"`
}

// StatusUpdate is the payload for PATCH /accounts/{id}/status.
type StatusUpdate struct {
	Status AccountStatus `json:"status"`
}

// TransactionRequest is the payload for POST /accounts/{id}/transaction.
type TransactionRequest struct {
	Type   TransactionType `json:"type"`
	Amount decimal.Decimal `json:"amount"`
}

// CustomerWithAccount is a display row: a customer and its account, if any.
type CustomerWithAccount struct {
	Customer Customer `json:"customer"`
	Account  *Account `json:"account"`
}

// JoinAccounts left-joins customers over accounts by customer id. When several
// accounts share a customer id the last one wins.
func JoinAccounts(customers []Customer, accounts []Account) []CustomerWithAccount {
	byCustomer := make(map[int64]Account, len(accounts))
	for _, a := range accounts {
		byCustomer[a.CustomerID] = a
	}

	rows := make([]CustomerWithAccount, 0, len(customers))
	for _, c := range customers {
		row := CustomerWithAccount{Customer: c}
		if a, ok := byCustomer[c.ID]; ok {
			row.Account = &a
		}
		rows = append(rows, row)
	}
	return rows
}
