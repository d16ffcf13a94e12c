package store

import (
	"errors"
	"sort"
	"strings"
	"sync"

	"onboarding-console/models"
)

// ErrNotFound is returned when a record does not exist.
var ErrNotFound = errors.New("not found")

// Store holds in-memory data for customers and accounts
type Store struct {
	customers      map[int64]models.Customer
	accounts       map[int64]models.Account
	nextCustomerID int64
	nextAccountID  int64
	mutex          sync.RWMutex
}

// New returns an empty store. Ids start at 1.
func New() *Store {
	return &Store{
		customers: make(map[int64]models.Customer),
		accounts:  make(map[int64]models.Account),
	}
}

// AddCustomer assigns the next id to customer and stores it
func (s *Store) AddCustomer(customer models.Customer) models.Customer {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.nextCustomerID++
	customer.ID = s.nextCustomerID
	s.customers[customer.ID] = customer
	return customer
}

// GetCustomerByID retrieves a customer by ID
func (s *Store) GetCustomerByID(id int64) (models.Customer, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	customer, exists := s.customers[id]
	return customer, exists
}

// FindCustomer returns the first customer matching fn.
func (s *Store) FindCustomer(fn func(models.Customer) bool) (models.Customer, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	for _, c := range s.customers {
		if fn(c) {
			return c, true
		}
	}
	return models.Customer{}, false
}

// CustomerByEmail looks a customer up by email, ignoring case.
func (s *Store) CustomerByEmail(email string) (models.Customer, bool) {
	return s.FindCustomer(func(c models.Customer) bool {
		return strings.EqualFold(c.Email, email)
	})
}

// CustomerByDocument looks a customer up by document number.
func (s *Store) CustomerByDocument(number string) (models.Customer, bool) {
	return s.FindCustomer(func(c models.Customer) bool {
		return c.DocumentNumber == number
	})
}

// Customers returns all customers ordered by id.
func (s *Store) Customers() []models.Customer {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	customers := make([]models.Customer, 0, len(s.customers))
	for _, c := range s.customers {
		customers = append(customers, c)
	}
	sort.Slice(customers, func(i, j int) bool { return customers[i].ID < customers[j].ID })
	return customers
}

// AddAccount assigns the next id to account and stores it
func (s *Store) AddAccount(account models.Account) models.Account {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.nextAccountID++
	account.ID = s.nextAccountID
	s.accounts[account.ID] = account
	return account
}

// GetAccountByID retrieves an account by ID
func (s *Store) GetAccountByID(id int64) (models.Account, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	account, exists := s.accounts[id]
	return account, exists
}

// ModifyAccount applies fn to the stored account under the write lock, so
// read-check-write sequences such as withdrawals cannot interleave.
func (s *Store) ModifyAccount(id int64, fn func(*models.Account) error) (models.Account, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, ErrNotFound
	}
	if err := fn(&account); err != nil {
		return models.Account{}, err
	}
	s.accounts[id] = account
	return account, nil
}

// Accounts returns all accounts ordered by id.
func (s *Store) Accounts() []models.Account {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	accounts := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		accounts = append(accounts, a)
	}
	sort.Slice(accounts, func(i, j int) bool { return accounts[i].ID < accounts[j].ID })
	return accounts
}

// GetAccountsByCustomerID retrieves all accounts for a customer
func (s *Store) GetAccountsByCustomerID(customerID int64) []models.Account {
	var accounts []models.Account
	for _, account := range s.Accounts() {
		if account.CustomerID == customerID {
			accounts = append(accounts, account)
		}
	}
	return accounts
}
