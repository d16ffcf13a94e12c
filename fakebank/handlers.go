package fakebank

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"onboarding-console/models"
)

const (
	serviceName    = "Bank Onboarding API"
	serviceVersion = "1.1.0"
)

// NewRouter exposes b under /api with the backend's REST contract.
func NewRouter(b *Bank, middleware ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	r.Use(middleware...)
	r.Use(gin.Recovery())

	h := &handler{bank: b}
	api := r.Group("/api")
	api.GET("/health", h.health)
	api.GET("/customers", h.listCustomers)
	api.GET("/customers/:id", h.getCustomer)
	api.POST("/customers", h.createCustomer)
	api.GET("/accounts", h.listAccounts)
	api.POST("/accounts", h.createAccount)
	api.PATCH("/accounts/:id/status", h.updateStatus)
	api.POST("/accounts/:id/transaction", h.transaction)
	return r
}

type handler struct {
	bank *Bank
}

func (h *handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"message":   "Server is running",
		"timestamp": models.NewTimestamp(time.Now()),
		"service":   serviceName,
		"version":   serviceVersion,
	})
}

func (h *handler) listCustomers(c *gin.Context) {
	c.JSON(http.StatusOK, h.bank.Customers())
}

func (h *handler) getCustomer(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	customer, err := h.bank.Customer(id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, customer)
}

func (h *handler) createCustomer(c *gin.Context) {
	var req models.CustomerCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	customer, err := h.bank.CreateCustomer(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, customer)
}

func (h *handler) listAccounts(c *gin.Context) {
	raw := c.Query("customerId")
	if raw == "" {
		c.JSON(http.StatusOK, h.bank.Accounts())
		return
	}
	customerID, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "customerId must be a number"})
		return
	}
	c.JSON(http.StatusOK, h.bank.AccountsByCustomer(customerID))
}

func (h *handler) createAccount(c *gin.Context) {
	var req models.AccountCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	account, err := h.bank.CreateAccount(req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, account)
}

func (h *handler) updateStatus(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.StatusUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	account, err := h.bank.UpdateStatus(id, req.Status)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func (h *handler) transaction(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req models.TransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid request body"})
		return
	}
	account, err := h.bank.Transaction(id, req)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, account)
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "id must be a number"})
		return 0, false
	}
	return id, true
}

func writeError(c *gin.Context, err error) {
	var (
		notFound   *NotFoundError
		business   *BusinessError
		validation *ValidationError
	)
	switch {
	case errors.As(err, &notFound):
		c.JSON(http.StatusNotFound, gin.H{"message": notFound.Error()})
	case errors.As(err, &business):
		c.JSON(http.StatusConflict, gin.H{"message": business.Message})
	case errors.As(err, &validation):
		c.JSON(http.StatusBadRequest, gin.H{"message": validation.Errors[0], "errors": validation.Errors})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"message": "An unexpected error occurred"})
	}
}
