package pages

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"onboarding-console/gateway"
	"onboarding-console/models"
	"onboarding-console/notice"
)

// ErrInvalidTransaction is returned, without calling the backend, when a
// transaction lacks an account, a known type or a positive amount.
var ErrInvalidTransaction = errors.New("transaction needs an account, a type and a positive amount")

// TransactionDraft is the transaction form currently open. Only one exists at a time.
type TransactionDraft struct {
	AccountID int64                  `json:"accountId"`
	Type      models.TransactionType `json:"type"`
	Amount    *decimal.Decimal       `json:"amount"`
}

// AccountsPage joins customers with their accounts and drives account actions.
type AccountsPage struct {
	customers CustomerGateway
	accounts  AccountGateway
	banner    *notice.Banner
	logger    *slog.Logger

	mu      sync.Mutex
	rows    []models.CustomerWithAccount
	draft   *TransactionDraft
	loading bool
	pending int
	loadGen uint64
}

// AccountsView is a snapshot of the page for rendering.
type AccountsView struct {
	Rows    []models.CustomerWithAccount `json:"rows"`
	Draft   *TransactionDraft            `json:"draft"`
	Loading bool                         `json:"loading"`
	Message notice.Message               `json:"message"`
}

// NewAccountsPage wires the page to its gateways and banner.
func NewAccountsPage(customers CustomerGateway, accounts AccountGateway, banner *notice.Banner, logger *slog.Logger) *AccountsPage {
	return &AccountsPage{
		customers: customers,
		accounts:  accounts,
		banner:    banner,
		logger:    discardLogger(logger).With("page", "accounts"),
	}
}

// Snapshot returns the current view state.
func (p *AccountsPage) Snapshot() AccountsView {
	p.mu.Lock()
	defer p.mu.Unlock()
	view := AccountsView{
		Rows:    append([]models.CustomerWithAccount(nil), p.rows...),
		Loading: p.loading || p.pending > 0,
		Message: p.banner.Current(),
	}
	if p.draft != nil {
		d := *p.draft
		view.Draft = &d
	}
	return view
}

// Account returns the account with id from the last successful load.
func (p *AccountsPage) Account(id int64) (models.Account, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, row := range p.rows {
		if row.Account != nil && row.Account.ID == id {
			return *row.Account, true
		}
	}
	return models.Account{}, false
}

type loadError struct {
	message string
	err     error
}

func (e *loadError) Error() string { return e.message + ": " + e.err.Error() }
func (e *loadError) Unwrap() error { return e.err }

// Load fetches customers and accounts concurrently and rebuilds the rows once
// both arrive. If either fetch fails the rows are left as they were. A result
// that arrives after a newer Load started is dropped.
func (p *AccountsPage) Load(ctx context.Context) error {
	p.mu.Lock()
	p.loadGen++
	gen := p.loadGen
	p.loading = true
	p.mu.Unlock()

	var (
		customers []models.Customer
		accounts  []models.Account
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		list, err := p.customers.ListAll(gctx)
		if err != nil {
			return &loadError{message: MsgLoadCustomersFailed, err: err}
		}
		customers = list
		return nil
	})
	g.Go(func() error {
		list, err := p.accounts.ListAll(gctx)
		if err != nil {
			return &loadError{message: MsgLoadAccountsFailed, err: err}
		}
		accounts = list
		return nil
	})
	err := g.Wait()

	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.loadGen {
		p.logger.Debug("dropping stale account rows", "generation", gen)
		return nil
	}
	p.loading = false
	if err != nil {
		p.logger.Warn("loading accounts page failed", "error", err)
		var le *loadError
		if errors.As(err, &le) {
			p.banner.Error(le.message)
		} else {
			p.banner.Error(MsgLoadCustomersFailed)
		}
		return err
	}
	p.rows = models.JoinAccounts(customers, accounts)
	return nil
}

// CreateAccount opens an account for the customer and reloads on success.
func (p *AccountsPage) CreateAccount(ctx context.Context, customerID int64) error {
	p.begin()
	_, err := p.accounts.Create(ctx, models.AccountCreate{CustomerID: customerID})
	p.end()
	if err != nil {
		p.logger.Warn("creating account failed", "customer_id", customerID, "error", err)
		p.banner.Error(gateway.MessageOr(err, MsgAccountCreateFailed))
		return err
	}
	p.banner.Success(MsgAccountCreated)
	_ = p.Load(ctx)
	return nil
}

// ToggleStatus blocks an active account or activates a blocked one.
func (p *AccountsPage) ToggleStatus(ctx context.Context, account models.Account) error {
	status := account.Status.Toggle()

	p.begin()
	_, err := p.accounts.UpdateStatus(ctx, account.ID, status)
	p.end()
	if err != nil {
		p.logger.Warn("updating account status failed", "account_id", account.ID, "status", status, "error", err)
		p.banner.Error(gateway.MessageOr(err, MsgStatusUpdateFailed))
		return err
	}
	if status == models.StatusActive {
		p.banner.Success(MsgAccountActivated)
	} else {
		p.banner.Success(MsgAccountBlocked)
	}
	_ = p.Load(ctx)
	return nil
}

// OpenTransaction opens the transaction form for an account. A draft for a
// different account is discarded; reopening the same account keeps the amount.
func (p *AccountsPage) OpenTransaction(accountID int64, txType models.TransactionType) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.draft != nil && p.draft.AccountID == accountID {
		p.draft.Type = txType
		return
	}
	p.draft = &TransactionDraft{AccountID: accountID, Type: txType}
}

// SetDraftAmount records the amount typed into the open form. It is a no-op
// when no form is open.
func (p *AccountsPage) SetDraftAmount(amount *decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.draft == nil {
		return
	}
	if amount == nil {
		p.draft.Amount = nil
		return
	}
	a := *amount
	p.draft.Amount = &a
}

// CloseTransaction discards the open form.
func (p *AccountsPage) CloseTransaction() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.draft = nil
}

// SubmitDraft submits the open transaction form.
func (p *AccountsPage) SubmitDraft(ctx context.Context) error {
	p.mu.Lock()
	if p.draft == nil {
		p.mu.Unlock()
		return ErrInvalidTransaction
	}
	d := *p.draft
	p.mu.Unlock()
	return p.SubmitTransaction(ctx, d.AccountID, d.Type, d.Amount)
}

// SubmitTransaction posts a deposit or withdrawal. Nothing is sent when the
// account id is zero, the type is unknown, or amount is nil or not positive.
// On success the rows are reloaded and the transaction form is closed if it
// belongs to the same account.
func (p *AccountsPage) SubmitTransaction(ctx context.Context, accountID int64, txType models.TransactionType, amount *decimal.Decimal) error {
	if accountID == 0 || amount == nil || !amount.IsPositive() || !txType.Valid() {
		return ErrInvalidTransaction
	}

	p.begin()
	_, err := p.accounts.Transaction(ctx, accountID, models.TransactionRequest{Type: txType, Amount: *amount})
	p.end()
	if err != nil {
		p.logger.Warn("transaction failed", "account_id", accountID, "type", txType, "error", err)
		p.banner.Error(gateway.MessageOr(err, MsgTransactionFailed))
		return err
	}
	if txType == models.TransactionDeposit {
		p.banner.Success(MsgDepositDone)
	} else {
		p.banner.Success(MsgWithdrawalDone)
	}
	p.mu.Lock()
	if p.draft != nil && p.draft.AccountID == accountID {
		p.draft = nil
	}
	p.mu.Unlock()
	_ = p.Load(ctx)
	return nil
}

func (p *AccountsPage) begin() {
	p.mu.Lock()
	p.pending++
	p.mu.Unlock()
}

func (p *AccountsPage) end() {
	p.mu.Lock()
	p.pending--
	p.mu.Unlock()
}
