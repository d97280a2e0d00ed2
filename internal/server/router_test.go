package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"finwallet/internal/balance"
	"finwallet/internal/currency"
	"finwallet/internal/handlers"
	"finwallet/internal/logger"
	"finwallet/internal/middleware"
	"finwallet/internal/models"
	"finwallet/internal/services"
	"finwallet/internal/testutil"
	"finwallet/internal/validator"
)

const testPipelineKey = "pipeline-test-key"

// testApp holds the full application stack over an isolated SQLite database.
type testApp struct {
	DB     *gorm.DB
	Router *gin.Engine
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp wires the real services and handlers. Rates come from the
// exchange_rates table, so tests feed them through the pipeline endpoint.
func setupApp(t *testing.T, policy balance.Policy) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	converter := currency.NewConverter(currency.NewDBRates(db, "EUR"))
	tokens := middleware.NewTokenManager("router-test-secret", time.Hour)

	userService := services.NewUserService(db)
	walletService := services.NewWalletService(db, converter, services.WalletConfig{ReportingCurrency: "EUR", Policy: policy})
	categoryService := services.NewCategoryService(db)
	transactionService := services.NewTransactionService(db, categoryService)
	rateService := services.NewRateService(db)
	auditService := services.NewAuditService(db)

	router := NewRouter(Dependencies{
		Auth:            handlers.NewAuthHandler(userService, tokens),
		Wallet:          handlers.NewWalletHandler(walletService, auditService),
		Category:        handlers.NewCategoryHandler(categoryService, auditService),
		Transaction:     handlers.NewTransactionHandler(transactionService, auditService),
		Rate:            handlers.NewRateHandler(rateService),
		Audit:           handlers.NewAuditHandler(auditService),
		Tokens:          tokens,
		PipelineAPIKeys: []string{testPipelineKey},
	})

	return &testApp{DB: db, Router: router}
}

func (app *testApp) request(method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	return rec
}

func (app *testApp) pushRates(t *testing.T, body string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/v1/pipeline/rates", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", testPipelineKey)
	rec := httptest.NewRecorder()
	app.Router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("push rates failed: %d %s", rec.Code, rec.Body.String())
	}
}

// login creates a fixture user and returns a bearer token for it.
func (app *testApp) login(t *testing.T) (string, *models.User) {
	t.Helper()
	user := testutil.CreateTestUser(t, app.DB)
	body := fmt.Sprintf(`{"email":%q,"password":%q}`, user.Email, testutil.TestPassword)
	rec := app.request("POST", "/api/v1/auth/login", body, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d %s", rec.Code, rec.Body.String())
	}
	return parseJSON(t, rec)["token"].(string), user
}

func parseJSON(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("failed to parse JSON: %v\nbody: %s", err, rec.Body.String())
	}
	return result
}

func walletIDByName(t *testing.T, result map[string]interface{}, name string) string {
	t.Helper()
	for _, w := range result["wallets"].([]interface{}) {
		wallet := w.(map[string]interface{})
		if wallet["name"] == name {
			return wallet["id"].(string)
		}
	}
	t.Fatalf("wallet %q not in response: %v", name, result)
	return ""
}

func TestWalletFlow(t *testing.T) {
	app := setupApp(t, balance.FailOnUnknown)
	token, _ := app.login(t)
	app.pushRates(t, `{"rates":[{"currency":"USD","rate":"0.9"}]}`)

	// Step 1: two wallets in different currencies
	rec := app.request("POST", "/api/v1/wallets", `{"name":"Cash","balance":"100","currency":"EUR"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("POST", "/api/v1/wallets", `{"name":"Travel","balance":"110","currency":"usd"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	created := parseJSON(t, rec)
	travelID := walletIDByName(t, created, "Travel")

	// Step 2: the total is converted, the wallets are not
	rec = app.request("GET", "/api/v1/wallets", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	list := parseJSON(t, rec)
	if list["total_balance"] != "199.00" {
		t.Errorf("expected total 199.00, got %v", list["total_balance"])
	}
	if list["currency"] != "EUR" {
		t.Errorf("expected EUR, got %v", list["currency"])
	}
	for _, w := range list["wallets"].([]interface{}) {
		wallet := w.(map[string]interface{})
		if wallet["name"] == "Travel" && (wallet["balance"] != "110" || wallet["currency"] != "USD") {
			t.Errorf("expected Travel to keep 110 USD, got %v %v", wallet["balance"], wallet["currency"])
		}
	}

	// Step 3: transactions copy the wallet currency
	rec = app.request("POST", "/api/v1/categories", `{"name":"Food"}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	categoryID := parseJSON(t, rec)["category"].(map[string]interface{})["id"].(string)

	rec = app.request("POST", "/api/v1/transactions",
		fmt.Sprintf(`{"wallet_id":%q,"category_id":%q,"amount":"-20","description":"Dinner"}`, travelID, categoryID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	tx := parseJSON(t, rec)["transaction"].(map[string]interface{})
	if tx["currency"] != "USD" || tx["category_name"] != "Food" {
		t.Errorf("expected USD/Food, got %v/%v", tx["currency"], tx["category_name"])
	}

	// Step 4: a currency change relabels transactions without converting amounts
	rec = app.request("PUT", "/api/v1/wallets/"+travelID, `{"name":"Travel","currency":"EUR"}`, token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	wallet := parseJSON(t, rec)["wallet"].(map[string]interface{})
	if wallet["currency"] != "EUR" || wallet["balance"] != "110" {
		t.Errorf("expected 110 EUR, got %v %v", wallet["balance"], wallet["currency"])
	}
	txs := wallet["transactions"].([]interface{})
	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	relabeled := txs[0].(map[string]interface{})
	if relabeled["currency"] != "EUR" || relabeled["amount"] != "-20" {
		t.Errorf("expected -20 EUR, got %v %v", relabeled["amount"], relabeled["currency"])
	}

	// Step 5: deleting the category leaves the transaction uncategorized
	rec = app.request("DELETE", "/api/v1/categories/"+categoryID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	rec = app.request("GET", "/api/v1/wallets/"+travelID+"/transactions", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	page := parseJSON(t, rec)
	item := page["data"].([]interface{})[0].(map[string]interface{})
	if item["category_name"] != balance.NoCategory {
		t.Errorf("expected %q, got %v", balance.NoCategory, item["category_name"])
	}

	// Step 6: delete returns the remaining wallets
	rec = app.request("DELETE", "/api/v1/wallets/"+travelID, "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	remaining := parseJSON(t, rec)
	if remaining["total_balance"] != "100.00" {
		t.Errorf("expected 100.00 after delete, got %v", remaining["total_balance"])
	}
	if n := len(remaining["wallets"].([]interface{})); n != 1 {
		t.Errorf("expected 1 remaining wallet, got %d", n)
	}

	var txCount int64
	app.DB.Model(&models.Transaction{}).Unscoped().Where("wallet_id = ?", travelID).Count(&txCount)
	if txCount != 0 {
		t.Errorf("expected wallet transactions removed, found %d", txCount)
	}

	// Every mutation left an audit entry; the travel wallet's trail ends with its deletion
	rec = app.request("GET", "/api/v1/audit-logs?page_size=100", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("audit list failed: %d %s", rec.Code, rec.Body.String())
	}
	if total := parseJSON(t, rec)["total_items"].(float64); total < 6 {
		t.Errorf("expected at least 6 audit entries, got %v", total)
	}

	rec = app.request("GET", "/api/v1/audit-logs?resource_type=wallet&resource_id="+travelID, "", token)
	trail := parseJSON(t, rec)["data"].([]interface{})
	if len(trail) == 0 || trail[0].(map[string]interface{})["action"] != "DELETE" {
		t.Errorf("expected travel wallet trail to start with DELETE, got %v", trail)
	}
}

func TestWalletOwnership(t *testing.T) {
	app := setupApp(t, balance.FailOnUnknown)
	ownerToken, _ := app.login(t)
	otherToken, _ := app.login(t)

	rec := app.request("POST", "/api/v1/wallets", `{"name":"Private","balance":"5","currency":"EUR"}`, ownerToken)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	walletID := walletIDByName(t, parseJSON(t, rec), "Private")

	for _, tc := range []struct {
		method, path, body string
	}{
		{"GET", "/api/v1/wallets/" + walletID, ""},
		{"PUT", "/api/v1/wallets/" + walletID, `{"name":"Mine","currency":"EUR"}`},
		{"PUT", "/api/v1/wallets/" + walletID, `{"name":"","currency":"EURO"}`},
		{"DELETE", "/api/v1/wallets/" + walletID, ""},
		{"GET", "/api/v1/wallets/" + walletID + "/transactions", ""},
		{"POST", "/api/v1/transactions", fmt.Sprintf(`{"wallet_id":%q,"amount":"1"}`, walletID)},
	} {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			rec := app.request(tc.method, tc.path, tc.body, otherToken)
			if rec.Code != http.StatusForbidden {
				t.Fatalf("expected 403, got %d: %s", rec.Code, rec.Body.String())
			}
			if code := parseJSON(t, rec)["code"]; code != "UNAUTHORIZED" {
				t.Errorf("expected UNAUTHORIZED, got %v", code)
			}
		})
	}

	// The other user's list does not see it
	rec = app.request("GET", "/api/v1/wallets", "", otherToken)
	if n := len(parseJSON(t, rec)["wallets"].([]interface{})); n != 0 {
		t.Errorf("expected no wallets for other user, got %d", n)
	}
}

func TestWalletErrors(t *testing.T) {
	t.Run("duplicate name is 409", func(t *testing.T) {
		app := setupApp(t, balance.FailOnUnknown)
		token, _ := app.login(t)

		app.request("POST", "/api/v1/wallets", `{"name":"Cash","balance":"1","currency":"EUR"}`, token)
		rec := app.request("POST", "/api/v1/wallets", `{"name":"Cash","balance":"2","currency":"EUR"}`, token)

		if rec.Code != http.StatusConflict {
			t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("unknown currency is 422 under fail policy", func(t *testing.T) {
		app := setupApp(t, balance.FailOnUnknown)
		token, _ := app.login(t)

		rec := app.request("POST", "/api/v1/wallets", `{"name":"Yen","balance":"1","currency":"JPY"}`, token)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d: %s", rec.Code, rec.Body.String())
		}
		if code := parseJSON(t, rec)["code"]; code != "UNKNOWN_CURRENCY" {
			t.Errorf("expected UNKNOWN_CURRENCY, got %v", code)
		}
	})

	t.Run("unknown currency is skipped under skip policy", func(t *testing.T) {
		app := setupApp(t, balance.SkipUnknown)
		token, _ := app.login(t)

		app.request("POST", "/api/v1/wallets", `{"name":"Cash","balance":"10","currency":"EUR"}`, token)
		rec := app.request("POST", "/api/v1/wallets", `{"name":"Yen","balance":"1000","currency":"JPY"}`, token)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}

		result := parseJSON(t, rec)
		if result["total_balance"] != "10.00" {
			t.Errorf("expected 10.00, got %v", result["total_balance"])
		}
		if skipped, _ := result["skipped_wallets"].([]interface{}); len(skipped) != 1 {
			t.Errorf("expected one skipped wallet, got %v", result["skipped_wallets"])
		}
	})

	t.Run("missing token is 401", func(t *testing.T) {
		app := setupApp(t, balance.FailOnUnknown)

		rec := app.request("GET", "/api/v1/wallets", "", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

func TestInfrastructureRoutes(t *testing.T) {
	app := setupApp(t, balance.FailOnUnknown)

	rec := app.request("GET", "/api/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from health, got %d", rec.Code)
	}
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected a request id header")
	}

	rec = app.request("GET", "/metrics", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 from metrics, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "finwallet_http_request_duration_seconds") {
		t.Error("expected request duration histogram in metrics output")
	}
}
