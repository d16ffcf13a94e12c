package commands

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/spf13/cobra"

	"onboarding-console/models"
	"onboarding-console/notice"
	"onboarding-console/pages"
)

func newCustomersCommand(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "customers",
		Short: "List, inspect and register customers",
	}
	cmd.AddCommand(
		newCustomersListCommand(a),
		newCustomersGetCommand(a),
		newCustomersCreateCommand(a),
	)
	return cmd
}

func customerRows(customers []models.Customer) [][]string {
	rows := make([][]string, 0, len(customers))
	for _, c := range customers {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.DocumentType + " " + c.DocumentNumber,
			c.FullName,
			c.Email,
			c.CreatedAt.Display(),
		})
	}
	return rows
}

var customerHeaders = []string{"ID", "Documento", "Nombre", "Correo", "Creado"}

func newCustomersListCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all customers",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			customers, err := a.client().Customers().ListAll(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing customers: %w", err)
			}
			return a.printer(cmd).Table(customers, customerHeaders, customerRows(customers))
		},
	}
}

func newCustomersGetCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one customer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			customer, err := a.client().Customers().GetByID(cmd.Context(), id)
			if err != nil {
				return fmt.Errorf("getting customer %d: %w", id, err)
			}
			return a.printer(cmd).Table(customer, customerHeaders, customerRows([]models.Customer{customer}))
		},
	}
}

func newCustomersCreateCommand(a *app) *cobra.Command {
	form := pages.DefaultForm()

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a customer, optionally opening an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client := a.client()
			page := pages.NewCustomersPage(client.Customers(), client.Accounts(), notice.New(a.cfg.MessageTTL), a.logger)
			p := a.printer(cmd)

			err := page.Submit(cmd.Context(), form)
			var hints pages.ValidationErrors
			if errors.As(err, &hints) {
				if p.json {
					_ = p.JSON(hints)
				} else {
					for _, field := range slices.Sorted(maps.Keys(hints)) {
						p.Error("%s: %s", field, hints[field])
					}
				}
				return err
			}
			if perr := p.Notice(page.Snapshot().Message); perr != nil {
				return perr
			}
			return err
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&form.DocumentType, "document-type", form.DocumentType, "document type (CC, CE or PAS)")
	flags.StringVar(&form.DocumentNumber, "document-number", "", "document number")
	flags.StringVar(&form.FullName, "name", "", "full name")
	flags.StringVar(&form.Email, "email", "", "email address")
	flags.BoolVar(&form.CreateAccount, "with-account", false, "open an account for the new customer")

	return cmd
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive number", raw)
	}
	return id, nil
}
