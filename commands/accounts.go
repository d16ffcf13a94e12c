package commands

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"onboarding-console/gateway"
	"onboarding-console/models"
	"onboarding-console/notice"
	"onboarding-console/pages"
)

func newAccountsCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "List accounts and run account operations",
	}
	cmd.AddCommand(
		newAccountsListCommand(a),
		newAccountsCreateCommand(a),
		newAccountsStatusCommand(a, "block", "Block an account", models.StatusInactive),
		newAccountsStatusCommand(a, "activate", "Activate a blocked account", models.StatusActive),
		newAccountsTransactionCommand(a, "deposit", "Deposit into an account", models.TransactionDeposit),
		newAccountsTransactionCommand(a, "withdraw", "Withdraw from an account", models.TransactionWithdrawal),
	)
	return cmd
}

func (a *app) accountsPage() *pages.AccountsPage {
	client := a.client()
	return pages.NewAccountsPage(client.Customers(), client.Accounts(), notice.New(a.cfg.MessageTTL), a.logger)
}

var accountHeaders = []string{"ID", "Cliente", "Número", "Estado", "Saldo"}

func accountRow(acc models.Account) []string {
	return []string{
		strconv.FormatInt(acc.ID, 10),
		strconv.FormatInt(acc.CustomerID, 10),
		acc.AccountNumber,
		acc.Status.Label(),
		acc.Balance.StringFixed(2),
	}
}

func newAccountsListCommand(a *app) *cobra.Command {
	var customerID int64

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List customers with their accounts, or one customer's accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.printer(cmd)

			if customerID > 0 {
				accounts, err := a.client().Accounts().ListByCustomer(cmd.Context(), customerID)
				if err != nil {
					return fmt.Errorf("listing accounts of customer %d: %w", customerID, err)
				}
				rows := make([][]string, 0, len(accounts))
				for _, acc := range accounts {
					rows = append(rows, accountRow(acc))
				}
				return p.Table(accounts, accountHeaders, rows)
			}

			page := a.accountsPage()
			if err := page.Load(cmd.Context()); err != nil {
				_ = p.Notice(page.Snapshot().Message)
				return err
			}
			view := page.Snapshot()
			rows := make([][]string, 0, len(view.Rows))
			for _, r := range view.Rows {
				row := []string{r.Customer.FullName, r.Customer.DocumentType + " " + r.Customer.DocumentNumber, "-", "-", "-"}
				if r.Account != nil {
					row[2] = r.Account.AccountNumber
					row[3] = r.Account.Status.Label()
					row[4] = r.Account.Balance.StringFixed(2)
				}
				rows = append(rows, row)
			}
			return p.Table(view.Rows, []string{"Cliente", "Documento", "Cuenta", "Estado", "Saldo"}, rows)
		},
	}

	cmd.Flags().Int64Var(&customerID, "customer", 0, "only list the accounts of this customer id")

	return cmd
}

func newAccountsCreateCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "create <customer-id>",
		Short: "Open an account for a customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			customerID, err := parseID(args[0])
			if err != nil {
				return err
			}
			page := a.accountsPage()
			err = page.CreateAccount(cmd.Context(), customerID)
			if perr := a.printer(cmd).Notice(page.Snapshot().Message); perr != nil {
				return perr
			}
			return err
		},
	}
}

func newAccountsStatusCommand(a *app, use, short string, status models.AccountStatus) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			p := a.printer(cmd)

			acc, err := a.client().Accounts().UpdateStatus(cmd.Context(), id, status)
			if err != nil {
				_ = p.Notice(notice.Message{Text: gateway.MessageOr(err, pages.MsgStatusUpdateFailed), Kind: notice.Error})
				return err
			}
			if p.json {
				return p.JSON(acc)
			}
			if status == models.StatusActive {
				p.Success(pages.MsgAccountActivated)
			} else {
				p.Success(pages.MsgAccountBlocked)
			}
			return p.Table(acc, accountHeaders, [][]string{accountRow(acc)})
		},
	}
}

func newAccountsTransactionCommand(a *app, use, short string, txType models.TransactionType) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account-id> <amount>",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			amount, err := decimal.NewFromString(args[1])
			if err != nil {
				return fmt.Errorf("invalid amount %q: %w", args[1], err)
			}

			page := a.accountsPage()
			err = page.SubmitTransaction(cmd.Context(), id, txType, &amount)
			if perr := a.printer(cmd).Notice(page.Snapshot().Message); perr != nil {
				return perr
			}
			return err
		},
	}
}
