package pages

import (
	"context"
	"log/slog"
	"sync"

	"onboarding-console/gateway"
	"onboarding-console/models"
	"onboarding-console/notice"
)

// CustomersPage lists customers and runs the registration workflow.
type CustomersPage struct {
	customers CustomerGateway
	accounts  AccountGateway
	banner    *notice.Banner
	logger    *slog.Logger

	mu         sync.Mutex
	list       []models.Customer
	form       RegistrationForm
	hints      ValidationErrors
	loading    bool
	submitting bool
	loadGen    uint64
}

// CustomersView is a snapshot of the page for rendering.
type CustomersView struct {
	Customers  []models.Customer `json:"customers"`
	Form       RegistrationForm  `json:"form"`
	Hints      ValidationErrors  `json:"hints,omitempty"`
	Loading    bool              `json:"loading"`
	Submitting bool              `json:"submitting"`
	Message    notice.Message    `json:"message"`
}

// NewCustomersPage wires the page to its gateways and banner.
func NewCustomersPage(customers CustomerGateway, accounts AccountGateway, banner *notice.Banner, logger *slog.Logger) *CustomersPage {
	return &CustomersPage{
		customers: customers,
		accounts:  accounts,
		banner:    banner,
		logger:    discardLogger(logger).With("page", "customers"),
		form:      DefaultForm(),
	}
}

// Snapshot returns the current view state.
func (p *CustomersPage) Snapshot() CustomersView {
	p.mu.Lock()
	defer p.mu.Unlock()
	hints := make(ValidationErrors, len(p.hints))
	for k, v := range p.hints {
		hints[k] = v
	}
	return CustomersView{
		Customers:  append([]models.Customer(nil), p.list...),
		Form:       p.form,
		Hints:      hints,
		Loading:    p.loading,
		Submitting: p.submitting,
		Message:    p.banner.Current(),
	}
}

// Load fetches the customer list. A response that arrives after a newer
// Load started is dropped.
func (p *CustomersPage) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loadGen++
	gen := p.loadGen
	p.loading = true
	p.mu.Unlock()

	customers, err := p.customers.ListAll(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.loadGen {
		p.logger.Debug("dropping stale customer list", "generation", gen)
		return nil
	}
	p.loading = false
	if err != nil {
		p.logger.Warn("loading customers failed", "error", err)
		p.banner.Error(MsgLoadCustomersFailed)
		return err
	}
	p.list = customers
	return nil
}

// Submit validates the form and registers the customer, opening an account
// for it when the form asks to. Invalid forms never reach the backend and are
// returned as ValidationErrors. While a submission is in flight any other
// Submit returns ErrBusy without touching the form. When the customer cannot
// be created the gateway error is returned and the form is kept for
// correction. Once the customer exists Submit returns nil, resets the form and
// reloads the list, even if the account could not be opened.
func (p *CustomersPage) Submit(ctx context.Context, form RegistrationForm) error {
	form = form.Normalize()

	p.mu.Lock()
	if p.submitting {
		p.mu.Unlock()
		return ErrBusy
	}
	if hints := form.Validate(); hints != nil {
		p.form = form
		p.hints = hints
		p.mu.Unlock()
		return hints
	}
	p.submitting = true
	p.form = form
	p.hints = nil
	p.mu.Unlock()

	customer, err := p.customers.Create(ctx, form.CustomerCreate())
	if err != nil {
		p.logger.Warn("creating customer failed", "error", err)
		p.banner.Error(gateway.MessageOr(err, MsgCustomerCreateFailed))
		p.mu.Lock()
		p.submitting = false
		p.mu.Unlock()
		return err
	}
	p.logger.Info("customer created", "customer_id", customer.ID)

	if form.CreateAccount {
		if _, err := p.accounts.Create(ctx, models.AccountCreate{CustomerID: customer.ID}); err != nil {
			p.logger.Warn("creating account for new customer failed", "customer_id", customer.ID, "error", err)
			p.banner.Error(MsgAccountAfterCustomerFail + gateway.MessageOr(err, MsgUnknownError))
		} else {
			p.banner.Success(MsgCustomerAndAccountCreated)
		}
	} else {
		p.banner.Success(MsgCustomerCreated)
	}

	p.mu.Lock()
	p.form = DefaultForm()
	p.hints = nil
	p.submitting = false
	p.mu.Unlock()

	_ = p.Load(ctx)
	return nil
}
