package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"finwallet/internal/balance"
	apperrors "finwallet/internal/errors"
	"finwallet/internal/models"
	"finwallet/internal/services"
)

const testWalletID = "0190d6f1-2222-7000-8000-000000000001"

type mockWalletService struct {
	listWalletsFn  func(userID string) (*balance.Summary, error)
	createWalletFn func(userID, name string, initial decimal.Decimal, currency string) (*models.Wallet, *balance.Summary, error)
	getWalletFn    func(userID, walletID string) (*models.Wallet, error)
	updateWalletFn func(userID, walletID, name, currency string) (*models.Wallet, error)
	deleteWalletFn func(userID, walletID string) (*balance.Summary, error)
}

func (m *mockWalletService) ListWallets(_ context.Context, userID string) (*balance.Summary, error) {
	if m.listWalletsFn != nil {
		return m.listWalletsFn(userID)
	}
	return &balance.Summary{Currency: "EUR"}, nil
}

func (m *mockWalletService) CreateWallet(_ context.Context, userID, name string, initial decimal.Decimal, currency string) (*models.Wallet, *balance.Summary, error) {
	if m.createWalletFn != nil {
		return m.createWalletFn(userID, name, initial, currency)
	}
	w := &models.Wallet{Base: models.Base{ID: testWalletID}, UserID: userID, Name: name, Balance: initial, Currency: currency}
	return w, &balance.Summary{Wallets: []balance.WalletView{balance.NewWalletView(w)}, Total: initial, Currency: "EUR"}, nil
}

func (m *mockWalletService) GetWallet(_ context.Context, userID, walletID string) (*models.Wallet, error) {
	if m.getWalletFn != nil {
		return m.getWalletFn(userID, walletID)
	}
	return &models.Wallet{Base: models.Base{ID: walletID}, UserID: userID}, nil
}

func (m *mockWalletService) UpdateWallet(_ context.Context, userID, walletID, name, currency string) (*models.Wallet, error) {
	if m.updateWalletFn != nil {
		return m.updateWalletFn(userID, walletID, name, currency)
	}
	return &models.Wallet{Base: models.Base{ID: walletID}, UserID: userID, Name: name, Currency: currency}, nil
}

func (m *mockWalletService) DeleteWallet(_ context.Context, userID, walletID string) (*balance.Summary, error) {
	if m.deleteWalletFn != nil {
		return m.deleteWalletFn(userID, walletID)
	}
	return &balance.Summary{Currency: "EUR"}, nil
}

func setupWalletRouter(handler *WalletHandler) *gin.Engine {
	r := gin.New()
	r.Use(injectUserID(testUserID))
	r.GET("/wallets", handler.ListWallets)
	r.POST("/wallets", handler.CreateWallet)
	r.GET("/wallets/:id", handler.GetWallet)
	r.PUT("/wallets/:id", handler.UpdateWallet)
	r.DELETE("/wallets/:id", handler.DeleteWallet)
	return r
}

func TestWalletHandler_ListWallets(t *testing.T) {
	t.Run("returns total with two decimals", func(t *testing.T) {
		svc := &mockWalletService{
			listWalletsFn: func(_ string) (*balance.Summary, error) {
				return &balance.Summary{
					Wallets: []balance.WalletView{
						{ID: "a", Name: "Cash", Balance: decimal.RequireFromString("100"), Currency: "EUR"},
						{ID: "b", Name: "Travel", Balance: decimal.RequireFromString("110"), Currency: "USD"},
					},
					Total:    decimal.RequireFromString("199"),
					Currency: "EUR",
				}, nil
			},
		}
		r := setupWalletRouter(NewWalletHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/wallets", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["total_balance"] != "199.00" {
			t.Errorf("expected total_balance 199.00, got %v", result["total_balance"])
		}
		if result["currency"] != "EUR" {
			t.Errorf("expected currency EUR, got %v", result["currency"])
		}
		wallets := result["wallets"].([]interface{})
		if len(wallets) != 2 {
			t.Fatalf("expected 2 wallets, got %d", len(wallets))
		}
		second := wallets[1].(map[string]interface{})
		if second["balance"] != "110" || second["currency"] != "USD" {
			t.Errorf("expected original balance 110 USD, got %v %v", second["balance"], second["currency"])
		}
	})

	t.Run("surfaces unknown currency as 422", func(t *testing.T) {
		svc := &mockWalletService{
			listWalletsFn: func(_ string) (*balance.Summary, error) { return nil, apperrors.ErrUnknownCurrency },
		}
		r := setupWalletRouter(NewWalletHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/wallets", "")

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNKNOWN_CURRENCY")
	})
}

func TestWalletHandler_CreateWallet(t *testing.T) {
	t.Run("returns 201 with the summary and audits", func(t *testing.T) {
		var gotBalance decimal.Decimal
		var gotCurrency string
		svc := &mockWalletService{
			createWalletFn: func(userID, name string, initial decimal.Decimal, currency string) (*models.Wallet, *balance.Summary, error) {
				gotBalance, gotCurrency = initial, currency
				w := &models.Wallet{Base: models.Base{ID: testWalletID}, UserID: userID, Name: name, Balance: initial, Currency: "USD"}
				return w, &balance.Summary{Wallets: []balance.WalletView{balance.NewWalletView(w)}, Currency: "EUR"}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupWalletRouter(NewWalletHandler(svc, audit))

		rec := doRequest(r, "POST", "/wallets", `{"name":"Savings","balance":"100.50","currency":"usd"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if !gotBalance.Equal(decimal.RequireFromString("100.50")) {
			t.Errorf("expected balance 100.50, got %s", gotBalance)
		}
		if gotCurrency != "usd" {
			t.Errorf("expected currency passed through as usd, got %s", gotCurrency)
		}
		result := parseJSON(t, rec)
		if _, ok := result["total_balance"]; !ok {
			t.Error("expected total_balance in create response")
		}
		if len(audit.entries) != 1 || audit.entries[0].action != services.AuditActionCreate {
			t.Errorf("expected one create audit entry, got %+v", audit.entries)
		}
	})

	t.Run("accepts numeric balance", func(t *testing.T) {
		r := setupWalletRouter(NewWalletHandler(&mockWalletService{}, &mockAuditService{}))

		rec := doRequest(r, "POST", "/wallets", `{"name":"Cash","balance":0,"currency":"EUR"}`)

		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	tests := []struct {
		name string
		body string
	}{
		{"missing balance", `{"name":"Cash","currency":"EUR"}`},
		{"blank name", `{"name":"   ","balance":"1","currency":"EUR"}`},
		{"bad currency", `{"name":"Cash","balance":"1","currency":"EURO"}`},
		{"non-numeric balance", `{"name":"Cash","balance":"abc","currency":"EUR"}`},
	}
	for _, tt := range tests {
		t.Run("returns 422 on "+tt.name, func(t *testing.T) {
			called := false
			svc := &mockWalletService{
				createWalletFn: func(_, _ string, _ decimal.Decimal, _ string) (*models.Wallet, *balance.Summary, error) {
					called = true
					return nil, nil, nil
				},
			}
			r := setupWalletRouter(NewWalletHandler(svc, &mockAuditService{}))

			rec := doRequest(r, "POST", "/wallets", tt.body)

			if rec.Code != http.StatusUnprocessableEntity {
				t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
			}
			assertErrorCode(t, parseJSON(t, rec), "VALIDATION_FAILED")
			if called {
				t.Error("service must not be called on invalid input")
			}
		})
	}

	t.Run("returns 409 on duplicate name", func(t *testing.T) {
		svc := &mockWalletService{
			createWalletFn: func(_, _ string, _ decimal.Decimal, _ string) (*models.Wallet, *balance.Summary, error) {
				return nil, nil, apperrors.ErrDuplicateWalletName
			},
		}
		r := setupWalletRouter(NewWalletHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "POST", "/wallets", `{"name":"Cash","balance":"1","currency":"EUR"}`)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "DUPLICATE_WALLET_NAME")
	})
}

func TestWalletHandler_GetWallet(t *testing.T) {
	t.Run("returns 400 on malformed id", func(t *testing.T) {
		r := setupWalletRouter(NewWalletHandler(&mockWalletService{}, &mockAuditService{}))

		rec := doRequest(r, "GET", "/wallets/not-a-uuid", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns 403 for another user's wallet", func(t *testing.T) {
		svc := &mockWalletService{
			getWalletFn: func(_, _ string) (*models.Wallet, error) { return nil, apperrors.ErrUnauthorized },
		}
		r := setupWalletRouter(NewWalletHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/wallets/"+testWalletID, "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
	})

	t.Run("renders transactions with category names", func(t *testing.T) {
		svc := &mockWalletService{
			getWalletFn: func(userID, walletID string) (*models.Wallet, error) {
				return &models.Wallet{
					Base:     models.Base{ID: walletID},
					UserID:   userID,
					Name:     "Cash",
					Balance:  decimal.RequireFromString("10"),
					Currency: "EUR",
					Transactions: []models.Transaction{
						{Base: models.Base{ID: "t1"}, Amount: decimal.RequireFromString("-2"), Currency: "EUR", Category: &models.Category{Name: "Food"}},
						{Base: models.Base{ID: "t2"}, Amount: decimal.RequireFromString("5"), Currency: "EUR"},
					},
				}, nil
			},
		}
		r := setupWalletRouter(NewWalletHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "GET", "/wallets/"+testWalletID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		txs := parseJSON(t, rec)["transactions"].([]interface{})
		if len(txs) != 2 {
			t.Fatalf("expected 2 transactions, got %d", len(txs))
		}
		if name := txs[0].(map[string]interface{})["category_name"]; name != "Food" {
			t.Errorf("expected Food, got %v", name)
		}
		if name := txs[1].(map[string]interface{})["category_name"]; name != balance.NoCategory {
			t.Errorf("expected %q, got %v", balance.NoCategory, name)
		}
	})
}

func TestWalletHandler_UpdateWallet(t *testing.T) {
	t.Run("returns wallet with transactions", func(t *testing.T) {
		audit := &mockAuditService{}
		r := setupWalletRouter(NewWalletHandler(&mockWalletService{}, audit))

		rec := doRequest(r, "PUT", "/wallets/"+testWalletID, `{"name":"Travel","currency":"USD"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		wallet := parseJSON(t, rec)["wallet"].(map[string]interface{})
		if wallet["currency"] != "USD" {
			t.Errorf("expected USD, got %v", wallet["currency"])
		}
		if _, ok := wallet["transactions"].([]interface{}); !ok {
			t.Errorf("expected transactions array, got %v", wallet["transactions"])
		}
		if len(audit.entries) != 1 || audit.entries[0].resourceID != testWalletID {
			t.Errorf("expected one audit entry for the wallet, got %+v", audit.entries)
		}
	})

	t.Run("returns 404 when wallet is missing", func(t *testing.T) {
		svc := &mockWalletService{
			updateWalletFn: func(_, _, _, _ string) (*models.Wallet, error) { return nil, apperrors.ErrWalletNotFound },
		}
		r := setupWalletRouter(NewWalletHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/wallets/"+testWalletID, `{"name":"Travel","currency":"USD"}`)

		if rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", rec.Code)
		}
		assertErrorCode(t, parseJSON(t, rec), "WALLET_NOT_FOUND")
	})

	t.Run("returns 403 for a foreign wallet even with a bad body", func(t *testing.T) {
		updated := false
		svc := &mockWalletService{
			getWalletFn: func(_, _ string) (*models.Wallet, error) { return nil, apperrors.ErrUnauthorized },
			updateWalletFn: func(_, _, _, _ string) (*models.Wallet, error) {
				updated = true
				return nil, nil
			},
		}
		r := setupWalletRouter(NewWalletHandler(svc, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/wallets/"+testWalletID, `{"name":"","currency":"EURO"}`)

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "UNAUTHORIZED")
		if updated {
			t.Error("update must not be attempted")
		}
	})

	t.Run("returns 422 when currency is missing", func(t *testing.T) {
		r := setupWalletRouter(NewWalletHandler(&mockWalletService{}, &mockAuditService{}))

		rec := doRequest(r, "PUT", "/wallets/"+testWalletID, `{"name":"Travel"}`)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
	})
}

func TestWalletHandler_DeleteWallet(t *testing.T) {
	t.Run("returns the remaining summary", func(t *testing.T) {
		var deleted string
		svc := &mockWalletService{
			deleteWalletFn: func(_, walletID string) (*balance.Summary, error) {
				deleted = walletID
				return &balance.Summary{Wallets: []balance.WalletView{}, Total: decimal.Zero, Currency: "EUR"}, nil
			},
		}
		audit := &mockAuditService{}
		r := setupWalletRouter(NewWalletHandler(svc, audit))

		rec := doRequest(r, "DELETE", "/wallets/"+testWalletID, "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if deleted != testWalletID {
			t.Errorf("expected %s deleted, got %q", testWalletID, deleted)
		}
		if total := parseJSON(t, rec)["total_balance"]; total != "0.00" {
			t.Errorf("expected 0.00, got %v", total)
		}
		if len(audit.entries) != 1 || audit.entries[0].action != services.AuditActionDelete {
			t.Errorf("expected one delete audit entry, got %+v", audit.entries)
		}
	})

	t.Run("does not audit a failed delete", func(t *testing.T) {
		svc := &mockWalletService{
			deleteWalletFn: func(_, _ string) (*balance.Summary, error) { return nil, apperrors.ErrUnauthorized },
		}
		audit := &mockAuditService{}
		r := setupWalletRouter(NewWalletHandler(svc, audit))

		rec := doRequest(r, "DELETE", "/wallets/"+testWalletID, "")

		if rec.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", rec.Code)
		}
		if len(audit.entries) != 0 {
			t.Errorf("expected no audit entries, got %+v", audit.entries)
		}
	})
}
