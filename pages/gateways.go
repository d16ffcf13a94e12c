// Package pages holds the view state and actions behind the customers and
// accounts pages of the console.
package pages

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"onboarding-console/models"
)

// CustomerGateway is the customer side of the backend.
type CustomerGateway interface {
	ListAll(ctx context.Context) ([]models.Customer, error)
	GetByID(ctx context.Context, id int64) (models.Customer, error)
	Create(ctx context.Context, data models.CustomerCreate) (models.Customer, error)
}

// AccountGateway is the account side of the backend.
type AccountGateway interface {
	ListAll(ctx context.Context) ([]models.Account, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]models.Account, error)
	Create(ctx context.Context, data models.AccountCreate) (models.Account, error)
	UpdateStatus(ctx context.Context, id int64, status models.AccountStatus) (models.Account, error)
	Transaction(ctx context.Context, id int64, req models.TransactionRequest) (models.Account, error)
}

// Operator-facing messages.
const (
	MsgLoadCustomersFailed = "Error al cargar clientes"
	MsgLoadAccountsFailed  = "Error al cargar cuentas"

	MsgCustomerCreated           = "Cliente creado exitosamente"
	MsgCustomerAndAccountCreated = "Cliente y cuenta creados exitosamente"
	MsgCustomerCreateFailed      = "Error al crear cliente"
	MsgAccountAfterCustomerFail  = "Cliente creado, pero error al crear cuenta: "
	MsgUnknownError              = "Error desconocido"

	MsgAccountCreated      = "Cuenta creada exitosamente"
	MsgAccountCreateFailed = "Error al crear cuenta"
	MsgAccountActivated    = "Cuenta activada exitosamente"
	MsgAccountBlocked      = "Cuenta bloqueada exitosamente"
	MsgStatusUpdateFailed  = "Error al actualizar estado"
	MsgDepositDone         = "Depósito realizado exitosamente"
	MsgWithdrawalDone      = "Retiro realizado exitosamente"
	MsgTransactionFailed   = "Error al realizar la transacción"
)

// ErrBusy is returned when a registration is submitted while another is in flight.
var ErrBusy = errors.New("a submission is already in progress")

func discardLogger(logger *slog.Logger) *slog.Logger {
	if logger != nil {
		return logger
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
