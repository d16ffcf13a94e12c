// Package fakebank is an in-process stand-in for the bank backend. It serves
// the same REST contract the gateways consume and applies the backend's
// observable rules, so the console can run and be tested without the real service.
package fakebank

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"net/mail"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"onboarding-console/models"
	"onboarding-console/store"
)

// NotFoundError reports a missing resource.
type NotFoundError struct {
	Resource string
	ID       int64
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found with id : '%d'", e.Resource, e.ID)
}

// BusinessError reports a rule violation.
type BusinessError struct {
	Message string
}

func (e *BusinessError) Error() string { return e.Message }

// ValidationError lists every invalid field of a request.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string { return strings.Join(e.Errors, "; ") }

// Bank holds the fake backend state.
type Bank struct {
	store  *store.Store
	logger *slog.Logger
	now    func() time.Time

	// mu serializes check-then-insert sequences (uniqueness, one account per customer).
	mu sync.Mutex
}

// New creates an empty bank.
func New(logger *slog.Logger) *Bank {
	if logger == nil {
		logger = slog.Default()
	}
	return &Bank{store: store.New(), logger: logger, now: time.Now}
}

// CreateCustomer registers a customer after validating the payload and
// checking that document number and email are unused.
func (b *Bank) CreateCustomer(req models.CustomerCreate) (models.Customer, error) {
	var errs []string
	if strings.TrimSpace(req.DocumentType) == "" {
		errs = append(errs, "Document type is required")
	} else if !slices.Contains(models.DocumentTypes, req.DocumentType) {
		errs = append(errs, "Document type must be CC, CE or PAS")
	}
	if strings.TrimSpace(req.DocumentNumber) == "" {
		errs = append(errs, "Document number is required")
	}
	if strings.TrimSpace(req.FullName) == "" {
		errs = append(errs, "Full name is required")
	}
	if strings.TrimSpace(req.Email) == "" {
		errs = append(errs, "Email is required")
	} else if _, err := mail.ParseAddress(req.Email); err != nil {
		errs = append(errs, "Email must be valid")
	}
	if len(errs) > 0 {
		return models.Customer{}, &ValidationError{Errors: errs}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, found := b.store.CustomerByDocument(req.DocumentNumber); found {
		b.logger.Warn("duplicate document number detected")
		return models.Customer{}, &BusinessError{Message: fmt.Sprintf("A customer with document number '%s' already exists", req.DocumentNumber)}
	}
	if _, found := b.store.CustomerByEmail(req.Email); found {
		b.logger.Warn("duplicate email detected")
		return models.Customer{}, &BusinessError{Message: fmt.Sprintf("A customer with email '%s' already exists", req.Email)}
	}

	now := models.NewTimestamp(b.now())
	customer := b.store.AddCustomer(models.Customer{
		DocumentType:   req.DocumentType,
		DocumentNumber: req.DocumentNumber,
		FullName:       req.FullName,
		Email:          req.Email,
		CreatedAt:      now,
		UpdatedAt:      now,
	})
	b.logger.Info("customer created", "customer_id", customer.ID)
	return customer, nil
}

// Customers returns every customer.
func (b *Bank) Customers() []models.Customer {
	return b.store.Customers()
}

// Customer returns one customer.
func (b *Bank) Customer(id int64) (models.Customer, error) {
	customer, found := b.store.GetCustomerByID(id)
	if !found {
		return models.Customer{}, &NotFoundError{Resource: "Customer", ID: id}
	}
	return customer, nil
}

// CreateAccount opens the single account a customer may hold.
func (b *Bank) CreateAccount(req models.AccountCreate) (models.Account, error) {
	if req.CustomerID <= 0 {
		return models.Account{}, &ValidationError{Errors: []string{"Customer id is required"}}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, found := b.store.GetCustomerByID(req.CustomerID); !found {
		b.logger.Warn("customer not found", "customer_id", req.CustomerID)
		return models.Account{}, &NotFoundError{Resource: "Customer", ID: req.CustomerID}
	}
	if len(b.store.GetAccountsByCustomerID(req.CustomerID)) > 0 {
		b.logger.Warn("customer already has an account", "customer_id", req.CustomerID)
		return models.Account{}, &BusinessError{Message: fmt.Sprintf("Customer with id %d already has an account", req.CustomerID)}
	}

	now := b.now()
	account := b.store.AddAccount(models.Account{
		CustomerID:    req.CustomerID,
		AccountNumber: fmt.Sprintf("ACC-%d-%d", now.UnixMilli(), rand.Intn(9000)+1000),
		Status:        models.StatusActive,
		Balance:       decimal.Zero,
		CreatedAt:     models.NewTimestamp(now),
		UpdatedAt:     models.NewTimestamp(now),
	})
	b.logger.Info("account created", "account_id", account.ID, "account_number", account.AccountNumber)
	return account, nil
}

// Accounts returns every account.
func (b *Bank) Accounts() []models.Account {
	return b.store.Accounts()
}

// AccountsByCustomer returns the accounts of one customer.
func (b *Bank) AccountsByCustomer(customerID int64) []models.Account {
	accounts := b.store.GetAccountsByCustomerID(customerID)
	if accounts == nil {
		return []models.Account{}
	}
	return accounts
}

// UpdateStatus sets the status of an account.
func (b *Bank) UpdateStatus(id int64, status models.AccountStatus) (models.Account, error) {
	if !status.Valid() {
		return models.Account{}, &ValidationError{Errors: []string{"El estado debe ser ACTIVE o INACTIVE"}}
	}
	account, err := b.store.ModifyAccount(id, func(a *models.Account) error {
		a.Status = status
		a.UpdatedAt = models.NewTimestamp(b.now())
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Account{}, &NotFoundError{Resource: "Account", ID: id}
	}
	if err != nil {
		return models.Account{}, err
	}
	b.logger.Info("account status updated", "account_id", id, "status", status)
	return account, nil
}

// Transaction applies a deposit or withdrawal to an active account.
func (b *Bank) Transaction(id int64, req models.TransactionRequest) (models.Account, error) {
	var errs []string
	if !req.Type.Valid() {
		errs = append(errs, "Transaction type must be DEPOSIT or WITHDRAWAL")
	}
	if !req.Amount.IsPositive() {
		errs = append(errs, "Amount must be positive")
	}
	if len(errs) > 0 {
		return models.Account{}, &ValidationError{Errors: errs}
	}

	account, err := b.store.ModifyAccount(id, func(a *models.Account) error {
		if a.Status != models.StatusActive {
			return &BusinessError{Message: "Account is not active"}
		}
		switch req.Type {
		case models.TransactionDeposit:
			a.Balance = a.Balance.Add(req.Amount)
		case models.TransactionWithdrawal:
			if a.Balance.LessThan(req.Amount) {
				return &BusinessError{Message: "Insufficient funds"}
			}
			a.Balance = a.Balance.Sub(req.Amount)
		}
		a.UpdatedAt = models.NewTimestamp(b.now())
		return nil
	})
	if errors.Is(err, store.ErrNotFound) {
		return models.Account{}, &NotFoundError{Resource: "Account", ID: id}
	}
	if err != nil {
		return models.Account{}, err
	}
	b.logger.Info("transaction applied", "account_id", id, "type", req.Type, "amount", req.Amount.String())
	return account, nil
}
