// Package web serves the console's pages, JSON view endpoints and health
// check over gin.
package web

import (
	"context"
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"onboarding-console/buildinfo"
	"onboarding-console/gateway"
	"onboarding-console/models"
	"onboarding-console/pages"
)

//go:embed templates/*.html
var templateFS embed.FS

const serviceName = "onboarding-console"

// BackendProber reports on the bank backend's health.
type BackendProber interface {
	Health(ctx context.Context) (gateway.Health, error)
}

// Deps is everything the router needs.
type Deps struct {
	Customers   *pages.CustomersPage
	Accounts    *pages.AccountsPage
	Backend     BackendProber
	Logger      *slog.Logger
	CORSOrigins []string
}

type server struct {
	customers *pages.CustomersPage
	accounts  *pages.AccountsPage
	backend   BackendProber
	logger    *slog.Logger
}

func parseTemplates() *template.Template {
	return template.Must(template.New("").Funcs(template.FuncMap{
		"money": func(d decimal.Decimal) string { return d.StringFixed(2) },
	}).ParseFS(templateFS, "templates/*.html"))
}

// NewRouter builds the console's HTTP handler.
func NewRouter(d Deps) *gin.Engine {
	logger := d.Logger
	if logger == nil {
		logger = slog.Default()
	}
	s := &server{
		customers: d.Customers,
		accounts:  d.Accounts,
		backend:   d.Backend,
		logger:    logger,
	}

	r := gin.New()
	r.Use(RequestID(), RequestLogger(logger), gin.Recovery())
	r.SetHTMLTemplate(parseTemplates())

	r.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusFound, "/customers")
	})
	r.GET("/health", s.health)

	r.GET("/customers", s.showCustomers)
	r.POST("/customers", s.submitCustomer)

	r.GET("/accounts", s.showAccounts)
	r.POST("/accounts", s.createAccount)
	r.POST("/accounts/:id/status", s.toggleStatus)
	r.GET("/accounts/:id/transaction", s.openTransaction)
	r.POST("/accounts/:id/transaction", s.submitTransaction)
	r.POST("/accounts/transaction/cancel", s.cancelTransaction)

	// Preflights only reach the CORS middleware through a matching route.
	view := r.Group("/api/view", CORS(d.CORSOrigins))
	view.GET("/customers", s.customersView)
	view.GET("/accounts", s.accountsView)
	view.OPTIONS("/customers", func(*gin.Context) {})
	view.OPTIONS("/accounts", func(*gin.Context) {})

	return r
}

func (s *server) health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	backend := gin.H{}
	status := "ok"
	if s.backend == nil {
		status = "degraded"
		backend["status"] = "unconfigured"
	} else if h, err := s.backend.Health(ctx); err != nil {
		s.logger.Warn("backend health probe failed", "error", err)
		status = "degraded"
		backend["status"] = "down"
		backend["error"] = err.Error()
	} else {
		backend["status"] = h.Status
		backend["service"] = h.Service
		backend["version"] = h.Version
	}

	c.JSON(http.StatusOK, gin.H{
		"status":    status,
		"service":   serviceName,
		"version":   buildinfo.Version,
		"timestamp": models.NewTimestamp(time.Now()),
		"backend":   backend,
	})
}

func (s *server) showCustomers(c *gin.Context) {
	_ = s.customers.Load(c.Request.Context())
	c.HTML(http.StatusOK, "customers.html", gin.H{
		"Nav":           "customers",
		"View":          s.customers.Snapshot(),
		"DocumentTypes": models.DocumentTypes,
	})
}

func (s *server) submitCustomer(c *gin.Context) {
	var form pages.RegistrationForm
	if err := c.ShouldBind(&form); err != nil {
		c.String(http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := s.customers.Submit(c.Request.Context(), form); err != nil {
		_ = c.Error(err)
		if errors.Is(err, pages.ErrBusy) {
			c.String(http.StatusConflict, err.Error())
			return
		}
	}
	c.Redirect(http.StatusSeeOther, "/customers")
}

func (s *server) showAccounts(c *gin.Context) {
	_ = s.accounts.Load(c.Request.Context())
	c.HTML(http.StatusOK, "accounts.html", gin.H{
		"Nav":  "accounts",
		"View": s.accounts.Snapshot(),
	})
}

func (s *server) createAccount(c *gin.Context) {
	customerID, err := strconv.ParseInt(c.PostForm("customerId"), 10, 64)
	if err != nil || customerID <= 0 {
		c.String(http.StatusBadRequest, "customerId must be a number")
		return
	}
	if err := s.accounts.CreateAccount(c.Request.Context(), customerID); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, "/accounts")
}

func (s *server) toggleStatus(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	account, found := s.accounts.Account(id)
	if !found {
		// The page may not have been loaded yet; trust the posted status.
		status := models.AccountStatus(c.PostForm("status"))
		if !status.Valid() {
			c.String(http.StatusNotFound, "account %d not found", id)
			return
		}
		account = models.Account{ID: id, Status: status}
	}
	if err := s.accounts.ToggleStatus(c.Request.Context(), account); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, "/accounts")
}

func (s *server) openTransaction(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	txType, err := models.ParseTransactionType(c.Query("type"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	s.accounts.OpenTransaction(id, txType)
	c.Redirect(http.StatusSeeOther, "/accounts")
}

func (s *server) submitTransaction(c *gin.Context) {
	id, ok := accountID(c)
	if !ok {
		return
	}
	txType, err := models.ParseTransactionType(c.PostForm("type"))
	if err != nil {
		c.String(http.StatusBadRequest, err.Error())
		return
	}
	s.accounts.OpenTransaction(id, txType)
	s.accounts.SetDraftAmount(parseAmount(c.PostForm("amount")))
	if err := s.accounts.SubmitDraft(c.Request.Context()); err != nil {
		_ = c.Error(err)
	}
	c.Redirect(http.StatusSeeOther, "/accounts")
}

func (s *server) cancelTransaction(c *gin.Context) {
	s.accounts.CloseTransaction()
	c.Redirect(http.StatusSeeOther, "/accounts")
}

func (s *server) customersView(c *gin.Context) {
	if c.Query("refresh") != "" {
		_ = s.customers.Load(c.Request.Context())
	}
	c.JSON(http.StatusOK, s.customers.Snapshot())
}

func (s *server) accountsView(c *gin.Context) {
	if c.Query("refresh") != "" {
		_ = s.accounts.Load(c.Request.Context())
	}
	c.JSON(http.StatusOK, s.accounts.Snapshot())
}

func accountID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.String(http.StatusBadRequest, "id must be a number")
		return 0, false
	}
	return id, true
}

// parseAmount reads a form amount; blank or malformed input yields nil.
func parseAmount(raw string) *decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return nil
	}
	return &d
}
