package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finwallet/internal/balance"
	"finwallet/internal/pagination"
	"finwallet/internal/services"
)

// TransactionHandler handles transaction-related requests
type TransactionHandler struct {
	transactionService services.TransactionServicer
	auditService       services.AuditServicer
}

// NewTransactionHandler creates a new TransactionHandler
func NewTransactionHandler(transactionService services.TransactionServicer, auditService services.AuditServicer) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService, auditService: auditService}
}

// CreateTransactionRequest represents the request payload for recording a transaction.
// The currency is always taken from the wallet.
type CreateTransactionRequest struct {
	WalletID    string           `json:"wallet_id" binding:"required,uuid"`
	CategoryID  *string          `json:"category_id" binding:"omitempty,uuid"`
	Amount      *decimal.Decimal `json:"amount" binding:"required" swaggertype:"string" example:"-12.50"`
	Description string           `json:"description" binding:"max=255" example:"Lunch"`
	Date        *time.Time       `json:"date" example:"2024-03-01T12:00:00Z"`
}

// TransactionResponse wraps a single transaction view.
type TransactionResponse struct {
	Transaction balance.TransactionView `json:"transaction"`
}

// CreateTransaction records a transaction against one of the user's wallets
// @Summary     Create a transaction
// @Tags        transactions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateTransactionRequest true "Transaction details"
// @Success     201 {object} TransactionResponse "Transaction created"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Failure     403 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet or category not found"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /transactions [post]
func (h *TransactionHandler) CreateTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, validationError(err))
		return
	}

	var date time.Time
	if req.Date != nil {
		date = *req.Date
	}

	ctx := c.Request.Context()
	tx, err := h.transactionService.CreateTransaction(ctx, userID, req.WalletID, req.CategoryID, *req.Amount, req.Description, date)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, services.AuditActionCreate, services.ResourceTransaction, tx.ID, c.ClientIP(),
		map[string]interface{}{"wallet_id": tx.WalletID, "amount": tx.Amount.String(), "currency": tx.Currency})

	c.JSON(http.StatusCreated, TransactionResponse{Transaction: balance.NewTransactionView(tx)})
}

// GetWalletTransactions lists a wallet's transactions, newest first
// @Summary     List wallet transactions
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id        path  string true  "Wallet ID"
// @Param       page      query int    false "Page number"
// @Param       page_size query int    false "Page size (max 100)"
// @Success     200 {object} pagination.PageResponse[balance.TransactionView] "Transactions"
// @Failure     400 {object} ErrorResponse "Invalid wallet ID"
// @Failure     403 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id}/transactions [get]
func (h *TransactionHandler) GetWalletTransactions(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	walletID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	var page pagination.PageRequest
	if err := c.ShouldBindQuery(&page); err != nil {
		respondWithError(c, validationError(err))
		return
	}

	result, err := h.transactionService.GetWalletTransactions(c.Request.Context(), userID, walletID, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// DeleteTransaction deletes a transaction
// @Summary     Delete a transaction
// @Tags        transactions
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Transaction ID"
// @Success     200 {object} map[string]string "Transaction deleted"
// @Failure     400 {object} ErrorResponse "Invalid transaction ID"
// @Failure     403 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Transaction not found"
// @Router      /transactions/{id} [delete]
func (h *TransactionHandler) DeleteTransaction(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	transactionID, err := parsePathID(c, "id")
	if err != nil {
		respondWithError(c, err)
		return
	}

	ctx := c.Request.Context()
	if err := h.transactionService.DeleteTransaction(ctx, userID, transactionID); err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, services.AuditActionDelete, services.ResourceTransaction, transactionID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, gin.H{"message": "Transaction deleted successfully"})
}
