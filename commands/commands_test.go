package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"onboarding-console/buildinfo"
	"onboarding-console/fakebank"
	"onboarding-console/models"
	"onboarding-console/pages"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type cli struct {
	backendURL string
	bank       *fakebank.Bank
}

func newCLI(t *testing.T) *cli {
	t.Helper()
	t.Setenv("LOG_LEVEL", "error")
	bank := fakebank.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv := httptest.NewServer(fakebank.NewRouter(bank))
	t.Cleanup(srv.Close)
	return &cli{backendURL: srv.URL + "/api", bank: bank}
}

func (c *cli) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(append([]string{"--config-dir", t.TempDir(), "--backend-url", c.backendURL}, args...))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func (c *cli) mustRun(t *testing.T, args ...string) string {
	t.Helper()
	out, err := c.run(t, args...)
	require.NoError(t, err, out)
	return out
}

func createArgs(extra ...string) []string {
	return append([]string{
		"customers", "create",
		"--document-number", "999",
		"--name", "Test",
		"--email", "test@test.com",
	}, extra...)
}

func TestVersion(t *testing.T) {
	c := newCLI(t)
	out := c.mustRun(t, "version")
	assert.Contains(t, out, buildinfo.String())
}

func TestCustomersCreate(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(t, createArgs()...)

	assert.Contains(t, out, "Cliente creado exitosamente")
	customers := c.bank.Customers()
	require.Len(t, customers, 1)
	assert.Equal(t, "CC", customers[0].DocumentType)
	assert.Empty(t, c.bank.Accounts())
}

func TestCustomersCreateWithAccount(t *testing.T) {
	c := newCLI(t)

	out := c.mustRun(t, createArgs("--with-account")...)

	assert.Contains(t, out, pages.MsgCustomerAndAccountCreated)
	assert.Len(t, c.bank.Accounts(), 1)
}

func TestCustomersCreateInvalid(t *testing.T) {
	c := newCLI(t)

	out, err := c.run(t, "customers", "create", "--document-number", "1", "--name", "A", "--email", "bad")

	require.Error(t, err)
	assert.Contains(t, out, "email")
	assert.Empty(t, c.bank.Customers())
}

func TestCustomersCreateDuplicate(t *testing.T) {
	c := newCLI(t)
	c.mustRun(t, createArgs()...)

	out, err := c.run(t, createArgs()...)

	require.Error(t, err)
	assert.Contains(t, out, "A customer with document number '999' already exists")
}

func TestCustomersListAndGet(t *testing.T) {
	c := newCLI(t)
	c.mustRun(t, createArgs()...)

	out := c.mustRun(t, "--json", "customers", "list")
	var customers []models.Customer
	require.NoError(t, json.Unmarshal([]byte(out), &customers))
	require.Len(t, customers, 1)
	assert.Equal(t, "test@test.com", customers[0].Email)

	out = c.mustRun(t, "customers", "get", "1")
	assert.Contains(t, out, "Test")

	_, err := c.run(t, "customers", "get", "42")
	assert.Error(t, err)

	_, err = c.run(t, "customers", "get", "abc")
	assert.ErrorContains(t, err, "invalid id")
}

func TestAccountsLifecycle(t *testing.T) {
	c := newCLI(t)
	c.mustRun(t, createArgs()...)

	out := c.mustRun(t, "accounts", "create", "1")
	assert.Contains(t, out, pages.MsgAccountCreated)

	out = c.mustRun(t, "accounts", "deposit", "1", "50")
	assert.Contains(t, out, pages.MsgDepositDone)
	assert.Equal(t, "50", c.bank.Accounts()[0].Balance.String())

	out, err := c.run(t, "accounts", "withdraw", "1", "100")
	require.Error(t, err)
	assert.Contains(t, out, "Insufficient funds")

	out = c.mustRun(t, "accounts", "withdraw", "1", "20.5")
	assert.Contains(t, out, pages.MsgWithdrawalDone)

	out = c.mustRun(t, "accounts", "block", "1")
	assert.Contains(t, out, pages.MsgAccountBlocked)

	out, err = c.run(t, "accounts", "deposit", "1", "10")
	require.Error(t, err)
	assert.Contains(t, out, "Account is not active")

	out = c.mustRun(t, "accounts", "list")
	assert.Contains(t, out, "Bloqueada")
	assert.Contains(t, out, "29.50")

	out = c.mustRun(t, "accounts", "activate", "1")
	assert.Contains(t, out, pages.MsgAccountActivated)

	out = c.mustRun(t, "--json", "accounts", "list", "--customer", "1")
	var accounts []models.Account
	require.NoError(t, json.Unmarshal([]byte(out), &accounts))
	require.Len(t, accounts, 1)
	assert.Equal(t, models.StatusActive, accounts[0].Status)
}

func TestAccountsDepositZeroIsRejectedLocally(t *testing.T) {
	c := newCLI(t)
	c.mustRun(t, createArgs("--with-account")...)

	_, err := c.run(t, "accounts", "deposit", "1", "0")

	assert.ErrorIs(t, err, pages.ErrInvalidTransaction)
	assert.True(t, c.bank.Accounts()[0].Balance.IsZero())
}

func TestServeUntilDoneStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	srv := &http.Server{Addr: "127.0.0.1:0", Handler: http.NotFoundHandler()}

	done := make(chan error, 1)
	go func() { done <- serveUntilDone(ctx, srv, slog.New(slog.NewTextHandler(io.Discard, nil))) }()
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
