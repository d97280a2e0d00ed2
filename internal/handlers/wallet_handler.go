package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finwallet/internal/balance"
	"finwallet/internal/services"
)

// WalletHandler handles wallet-related requests
type WalletHandler struct {
	walletService services.WalletServicer
	auditService  services.AuditServicer
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(walletService services.WalletServicer, auditService services.AuditServicer) *WalletHandler {
	return &WalletHandler{walletService: walletService, auditService: auditService}
}

// CreateWalletRequest represents the request payload for creating a wallet
type CreateWalletRequest struct {
	Name     string           `json:"name" binding:"required,not_blank,max=255" example:"Savings"`
	Balance  *decimal.Decimal `json:"balance" binding:"required" swaggertype:"string" example:"100.00"`
	Currency string           `json:"currency" binding:"required,currency_code" example:"EUR"`
}

// UpdateWalletRequest represents the request payload for updating a wallet
type UpdateWalletRequest struct {
	Name     string `json:"name" binding:"required,not_blank,max=255" example:"Travel"`
	Currency string `json:"currency" binding:"required,currency_code" example:"USD"`
}

// SummaryResponse documents the aggregated wallet list.
type SummaryResponse struct {
	Wallets        []balance.WalletView `json:"wallets"`
	TotalBalance   string               `json:"total_balance" example:"199.00"`
	Currency       string               `json:"currency" example:"EUR"`
	SkippedWallets []string             `json:"skipped_wallets,omitempty"`

	// Set after a create or delete whose total could not be converted; total_balance is then null.
	TotalUnavailable bool `json:"total_unavailable,omitempty"`
}

// WalletResponse wraps a single wallet view.
type WalletResponse struct {
	Wallet balance.WalletView `json:"wallet"`
}

// ListWallets returns every wallet of the user with the converted total
// @Summary     List wallets
// @Description List the user's wallets with original balances and the total converted to the reporting currency
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Success     200 {object} SummaryResponse "Wallets and total balance"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Failure     422 {object} ErrorResponse "Unknown currency"
// @Failure     502 {object} ErrorResponse "Exchange rates unavailable"
// @Router      /wallets [get]
func (h *WalletHandler) ListWallets(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	summary, err := h.walletService.ListWallets(c.Request.Context(), userID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// CreateWallet creates a wallet and returns the refreshed wallet list
// @Summary     Create a wallet
// @Description Create a wallet; the response has the same shape as the wallet list
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       request body CreateWalletRequest true "Wallet details"
// @Success     201 {object} SummaryResponse "Wallet created"
// @Failure     401 {object} ErrorResponse "Unauthenticated"
// @Failure     409 {object} ErrorResponse "A wallet with this name already exists"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /wallets [post]
func (h *WalletHandler) CreateWallet(c *gin.Context) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	var req CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondWithError(c, validationError(err))
		return
	}

	ctx := c.Request.Context()
	wallet, summary, err := h.walletService.CreateWallet(ctx, userID, req.Name, *req.Balance, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, services.AuditActionCreate, services.ResourceWallet, wallet.ID, c.ClientIP(),
		map[string]interface{}{"name": wallet.Name, "balance": wallet.Balance.String(), "currency": wallet.Currency})

	c.JSON(http.StatusCreated, summary)
}

// GetWallet returns a single wallet with its transactions
// @Summary     Get wallet by ID
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     200 {object} balance.WalletView "Wallet details"
// @Failure     400 {object} ErrorResponse "Invalid wallet ID"
// @Failure     403 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [get]
func (h *WalletHandler) GetWallet(c *gin.Context) {
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

	wallet, err := h.walletService.GetWallet(c.Request.Context(), userID, walletID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, balance.NewWalletView(wallet))
}

// UpdateWallet renames a wallet and changes its currency
// @Summary     Update wallet
// @Description Update name and currency; on a currency change every transaction of the wallet is relabeled (amounts are not converted)
// @Tags        wallets
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Param       request body UpdateWalletRequest true "Wallet fields"
// @Success     200 {object} WalletResponse "Updated wallet with transactions"
// @Failure     400 {object} ErrorResponse "Invalid wallet ID"
// @Failure     403 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Failure     409 {object} ErrorResponse "A wallet with this name already exists"
// @Failure     422 {object} ErrorResponse "Validation failed"
// @Router      /wallets/{id} [put]
func (h *WalletHandler) UpdateWallet(c *gin.Context) {
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

	ctx := c.Request.Context()
	var req UpdateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		// A foreign or missing wallet is reported before a bad body.
		if _, ownErr := h.walletService.GetWallet(ctx, userID, walletID); ownErr != nil {
			respondWithError(c, ownErr)
			return
		}
		respondWithError(c, validationError(err))
		return
	}

	wallet, err := h.walletService.UpdateWallet(ctx, userID, walletID, req.Name, req.Currency)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, services.AuditActionUpdate, services.ResourceWallet, wallet.ID, c.ClientIP(),
		map[string]interface{}{"name": wallet.Name, "currency": wallet.Currency})

	c.JSON(http.StatusOK, WalletResponse{Wallet: balance.NewWalletView(wallet)})
}

// DeleteWallet deletes a wallet and its transactions
// @Summary     Delete wallet
// @Description Delete a wallet; the response is the wallet list recomputed over the remaining wallets
// @Tags        wallets
// @Produce     json
// @Security    BearerAuth
// @Param       id path string true "Wallet ID"
// @Success     200 {object} SummaryResponse "Remaining wallets"
// @Failure     400 {object} ErrorResponse "Invalid wallet ID"
// @Failure     403 {object} ErrorResponse "Unauthorized"
// @Failure     404 {object} ErrorResponse "Wallet not found"
// @Router      /wallets/{id} [delete]
func (h *WalletHandler) DeleteWallet(c *gin.Context) {
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

	ctx := c.Request.Context()
	summary, err := h.walletService.DeleteWallet(ctx, userID, walletID)
	if err != nil {
		respondWithError(c, err)
		return
	}

	h.auditService.Log(ctx, userID, services.AuditActionDelete, services.ResourceWallet, walletID, c.ClientIP(), nil)

	c.JSON(http.StatusOK, summary)
}
