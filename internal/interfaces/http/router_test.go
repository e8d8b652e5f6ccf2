package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appanalytics "github.com/jhoicas/Inventario-pos/internal/application/analytics"
	"github.com/jhoicas/Inventario-pos/internal/application/auth"
	"github.com/jhoicas/Inventario-pos/internal/application/billing"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/ledger"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	infrapdf "github.com/jhoicas/Inventario-pos/internal/infrastructure/pdf"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/storage"
	apphttp "github.com/jhoicas/Inventario-pos/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testJWTSecret = "test-secret-key-for-unit-tests"

type testServer struct {
	app   *fiber.App
	token string
}

// newTestServer arma la API completa sobre el backend en memoria e inicia sesión como admin.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := storage.NewStore(storage.NewMemoryBackend(), "", nil)

	authUC := auth.NewAuthUseCase(store, auth.JWTConfig{Secret: testJWTSecret, ExpMinutes: 60, Issuer: "test"}, nil)
	_, err := authUC.EnsureDefaultUser(context.Background(), "admin", "admin123")
	require.NoError(t, err)

	productUC := inventory.NewProductUseCase(store, inventory.StockPolicy{}, nil)
	customerUC := ledger.NewPartyUseCase(entity.PartyCustomer, store, nil)
	supplierUC := ledger.NewPartyUseCase(entity.PartySupplier, store, nil)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AppName:     "test",
		AuthUC:      authUC,
		ProductUC:   productUC,
		StockInUC:   inventory.NewStockInUseCase(store, productUC, supplierUC, nil),
		AuditUC:     inventory.NewAuditUseCase(store, nil),
		CustomerUC:  customerUC,
		SupplierUC:  supplierUC,
		CheckoutUC:  billing.NewCheckoutUseCase(store, productUC, customerUC, nil),
		ReceiptUC:   billing.NewReceiptUseCase(store, infrapdf.NewMarotoReceiptGenerator("es-CO"), "Tienda"),
		DashboardUC: appanalytics.NewDashboardUseCase(store),
		ReportUC:    appanalytics.NewReportUseCase(store),
	})

	s := &testServer{app: app}
	var login dto.LoginResponse
	resp := s.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "admin", Password: "admin123"}, &login)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	s.token = login.Token
	return s
}

// do lanza la petición con el token de sesión y decodifica la respuesta en out (si no es nil).
func (s *testServer) do(t *testing.T, method, path string, body, out any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if s.token != "" {
		req.Header.Set("Authorization", "Bearer "+s.token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	if out != nil {
		defer resp.Body.Close()
		require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
	}
	return resp
}

func errorCode(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	var e dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&e))
	return e.Code
}

func (s *testServer) createProduct(t *testing.T, name string, qty int, purchase, sale int64) dto.ProductResponse {
	t.Helper()
	var p dto.ProductResponse
	resp := s.do(t, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Name:            name,
		PurchasePrice:   decimal.NewFromInt(purchase),
		SalePrice:       decimal.NewFromInt(sale),
		Quantity:        qty,
		MinimumQuantity: 2,
	}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return p
}

func (s *testServer) createParty(t *testing.T, kind, name string) dto.PartyResponse {
	t.Helper()
	var p dto.PartyResponse
	resp := s.do(t, http.MethodPost, "/api/"+kind, dto.CreatePartyRequest{Name: name}, &p)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return p
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestHealth_Public(t *testing.T) {
	s := newTestServer(t)
	s.token = ""
	resp := s.do(t, http.MethodGet, "/health", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAuth_ProtectedRoutes(t *testing.T) {
	s := newTestServer(t)

	resp := s.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	token := s.token
	s.token = ""
	resp = s.do(t, http.MethodGet, "/api/products", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, resp))

	s.token = "token.invalido.aqui"
	resp = s.do(t, http.MethodGet, "/api/products", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// tras el logout el mismo token deja de servir
	s.token = token
	resp = s.do(t, http.MethodPost, "/api/auth/logout", nil, nil)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	resp = s.do(t, http.MethodGet, "/api/products", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestAuth_BadCredentials(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/auth/login", dto.LoginRequest{Username: "admin", Password: "x"}, nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", errorCode(t, resp))
}

func TestProducts_CRUD(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Arroz", 10, 2000, 3000)

	var got dto.ProductResponse
	resp := s.do(t, http.MethodGet, "/api/products/"+p.ID, nil, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Arroz", got.Name)

	resp = s.do(t, http.MethodPost, "/api/products/"+p.ID+"/adjust", dto.AdjustQuantityRequest{Delta: -9}, &got)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, got.Quantity)

	var low dto.ProductListResponse
	resp = s.do(t, http.MethodGet, "/api/products/low-stock", nil, &low)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, low.Total)

	var del dto.DeletedResponse
	s.do(t, http.MethodDelete, "/api/products/"+p.ID, nil, &del)
	assert.True(t, del.Deleted)
	s.do(t, http.MethodDelete, "/api/products/"+p.ID, nil, &del)
	assert.False(t, del.Deleted)

	resp = s.do(t, http.MethodGet, "/api/products/"+p.ID, nil, nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", errorCode(t, resp))
}

func TestProducts_Validation(t *testing.T) {
	s := newTestServer(t)
	resp := s.do(t, http.MethodPost, "/api/products", dto.CreateProductRequest{Name: ""}, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", errorCode(t, resp))
}

func TestCheckout_CreditFlow(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Arroz", 10, 2000, 3000)
	c := s.createParty(t, "customers", "Ana")

	var inv dto.InvoiceResponse
	resp := s.do(t, http.MethodPost, "/api/sales/checkout", dto.CheckoutRequest{
		PaymentType: "credit",
		CustomerID:  &c.ID,
		Items:       []dto.CartLineRequest{{ProductID: p.ID, Quantity: 4}},
	}, &inv)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, int64(1), inv.InvoiceNumber)

	var party dto.PartyResponse
	s.do(t, http.MethodGet, "/api/customers/"+c.ID, nil, &party)
	assert.True(t, decimal.NewFromInt(12000).Equal(party.Balance), party.Balance.String())

	// con saldo no se puede borrar
	resp = s.do(t, http.MethodDelete, "/api/customers/"+c.ID, nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "HAS_BALANCE", errorCode(t, resp))

	var posting dto.PostingResponse
	resp = s.do(t, http.MethodPost, "/api/customers/"+c.ID+"/payments", dto.LedgerEntryRequest{Amount: decimal.NewFromInt(12000)}, &posting)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, posting.Party.Balance.IsZero())

	var txs []dto.TransactionResponse
	s.do(t, http.MethodGet, "/api/customers/"+c.ID+"/transactions", nil, &txs)
	require.Len(t, txs, 2)
	assert.Equal(t, "sale", txs[0].Type)
	assert.Equal(t, "payment", txs[1].Type)

	var list dto.InvoiceListResponse
	s.do(t, http.MethodGet, "/api/invoices", nil, &list)
	assert.Equal(t, 1, list.Total)

	resp = s.do(t, http.MethodGet, "/api/invoices/"+inv.ID+"/pdf", nil, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
}

func TestCheckout_InsufficientStock(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Arroz", 1, 2000, 3000)
	resp := s.do(t, http.MethodPost, "/api/sales/checkout", dto.CheckoutRequest{
		PaymentType: "cash",
		Items:       []dto.CartLineRequest{{ProductID: p.ID, Quantity: 2}},
	}, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INSUFFICIENT_STOCK", errorCode(t, resp))
}

func TestStockIn_WithPurchase(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Arroz", 0, 2000, 3000)
	sup := s.createParty(t, "suppliers", "Mayorista")

	var out dto.StockInResponse
	resp := s.do(t, http.MethodPost, "/api/stock/in", dto.StockInRequest{
		ProductID:  p.ID,
		Quantity:   5,
		SupplierID: &sup.ID,
	}, &out)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, 5, out.Product.Quantity)
	require.NotNil(t, out.Transaction)
	assert.Equal(t, "purchase", out.Transaction.Type)

	var movements []dto.MovementResponse
	s.do(t, http.MethodGet, "/api/stock/movements?product_id="+p.ID, nil, &movements)
	require.Len(t, movements, 1)
	assert.Equal(t, "in", movements[0].Type)

	var all []dto.TransactionResponse
	s.do(t, http.MethodGet, "/api/suppliers/transactions", nil, &all)
	assert.Len(t, all, 1)
}

func TestAudit_Flow(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Arroz", 10, 2000, 3000)

	var audit dto.AuditResponse
	resp := s.do(t, http.MethodPost, "/api/audits", dto.CreateAuditRequest{Notes: "cierre"}, &audit)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	require.Len(t, audit.Items, 1)

	var item dto.AuditItemResponse
	resp = s.do(t, http.MethodPut, "/api/audits/items/"+audit.Items[0].ID, dto.UpdateAuditItemRequest{ActualQuantity: 7}, &item)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, -3, item.Difference)

	resp = s.do(t, http.MethodPost, "/api/audits/"+audit.ID+"/approve", nil, &audit)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "approved", audit.Status)

	var prod dto.ProductResponse
	s.do(t, http.MethodGet, "/api/products/"+p.ID, nil, &prod)
	assert.Equal(t, 7, prod.Quantity)

	resp = s.do(t, http.MethodPost, "/api/audits/"+audit.ID+"/approve", nil, nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "AUDIT_APPROVED", errorCode(t, resp))

	var rep dto.AuditDifferencesDTO
	s.do(t, http.MethodGet, "/api/reports/audits", nil, &rep)
	require.Len(t, rep.Audits, 1)
	assert.Equal(t, -3, rep.Audits[0].TotalDifference)
}

func TestReports(t *testing.T) {
	s := newTestServer(t)
	p := s.createProduct(t, "Arroz", 10, 2000, 3000)
	resp := s.do(t, http.MethodPost, "/api/sales/checkout", dto.CheckoutRequest{
		PaymentType: "cash",
		Items:       []dto.CartLineRequest{{ProductID: p.ID, Quantity: 1}},
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var stats dto.DashboardStatsDTO
	resp = s.do(t, http.MethodGet, "/api/dashboard/stats", nil, &stats)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, stats.TotalProducts)
	assert.True(t, decimal.NewFromInt(3000).Equal(stats.TodaySales))

	var daily dto.SalesReportDTO
	resp = s.do(t, http.MethodGet, "/api/reports/sales/daily", nil, &daily)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, daily.InvoiceCount)

	resp = s.do(t, http.MethodGet, "/api/reports/sales/daily?date=15-03-2024", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = s.do(t, http.MethodGet, "/api/reports/sales/monthly?year=2024&month=13", nil, nil)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var low dto.LowStockReportDTO
	resp = s.do(t, http.MethodGet, "/api/reports/low-stock", nil, &low)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, low.Total)
}
