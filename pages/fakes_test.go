package pages

import (
	"context"
	"errors"
	"sync"
	"time"

	"onboarding-console/models"
	"onboarding-console/notice"
)

type fakeCustomers struct {
	mu       sync.Mutex
	list     []models.Customer
	listErr  error
	created  []models.CustomerCreate
	createFn func(models.CustomerCreate) (models.Customer, error)
	lists    int
	// block, when set, is received from before ListAll returns.
	block chan struct{}
}

func (f *fakeCustomers) ListAll(ctx context.Context) ([]models.Customer, error) {
	f.mu.Lock()
	f.lists++
	list, err, block := append([]models.Customer(nil), f.list...), f.listErr, f.block
	f.mu.Unlock()
	if block != nil {
		<-block
	}
	return list, err
}

func (f *fakeCustomers) GetByID(ctx context.Context, id int64) (models.Customer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.list {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, errors.New("customer not found")
}

func (f *fakeCustomers) Create(ctx context.Context, data models.CustomerCreate) (models.Customer, error) {
	f.mu.Lock()
	f.created = append(f.created, data)
	fn := f.createFn
	f.mu.Unlock()
	if fn != nil {
		return fn(data)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	c := models.Customer{
		ID:             int64(len(f.list) + 1),
		DocumentType:   data.DocumentType,
		DocumentNumber: data.DocumentNumber,
		FullName:       data.FullName,
		Email:          data.Email,
	}
	f.list = append(f.list, c)
	return c, nil
}

func (f *fakeCustomers) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

func (f *fakeCustomers) listCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lists
}

type statusCall struct {
	id     int64
	status models.AccountStatus
}

type txCall struct {
	id  int64
	req models.TransactionRequest
}

type fakeAccounts struct {
	mu        sync.Mutex
	list      []models.Account
	listErr   error
	createErr error
	statusErr error
	txErr     error

	created  []models.AccountCreate
	statuses []statusCall
	txs      []txCall
}

func (f *fakeAccounts) ListAll(ctx context.Context) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]models.Account(nil), f.list...), f.listErr
}

func (f *fakeAccounts) ListByCustomer(ctx context.Context, customerID int64) ([]models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Account
	for _, a := range f.list {
		if a.CustomerID == customerID {
			out = append(out, a)
		}
	}
	return out, f.listErr
}

func (f *fakeAccounts) Create(ctx context.Context, data models.AccountCreate) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, data)
	if f.createErr != nil {
		return models.Account{}, f.createErr
	}
	a := models.Account{ID: int64(len(f.list) + 1), CustomerID: data.CustomerID, Status: models.StatusActive}
	f.list = append(f.list, a)
	return a, nil
}

func (f *fakeAccounts) UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statuses = append(f.statuses, statusCall{id: id, status: status})
	if f.statusErr != nil {
		return models.Account{}, f.statusErr
	}
	for i := range f.list {
		if f.list[i].ID == id {
			f.list[i].Status = status
			return f.list[i], nil
		}
	}
	return models.Account{ID: id, Status: status}, nil
}

func (f *fakeAccounts) Transaction(ctx context.Context, id int64, req models.TransactionRequest) (models.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.txs = append(f.txs, txCall{id: id, req: req})
	if f.txErr != nil {
		return models.Account{}, f.txErr
	}
	return models.Account{ID: id}, nil
}

func (f *fakeAccounts) createCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.created)
}

// manualClock hands out timers that only fire when the test says so.
type manualClock struct {
	mu     sync.Mutex
	timers []*manualTimer
}

type manualTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (c *manualClock) AfterFunc(d time.Duration, f func()) notice.Timer {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &manualTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return t
}

// fireLast runs the most recently scheduled expiry.
func (c *manualClock) fireLast() {
	c.mu.Lock()
	t := c.timers[len(c.timers)-1]
	c.mu.Unlock()
	t.f()
}

func newBanner() (*notice.Banner, *manualClock) {
	clock := &manualClock{}
	return notice.NewWithTimer(notice.DefaultTTL, clock.AfterFunc), clock
}
