package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"regexp"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/IlyasAtabaev731/wealth-tracker/internal/analytics"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/budgets"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/config"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/domain/models"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/export"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/identity"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/ledger"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage"
	"github.com/IlyasAtabaev731/wealth-tracker/internal/storage/memory"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type capturingMailer struct {
	mu     sync.Mutex
	bodies map[string]string
}

func (m *capturingMailer) Send(_ context.Context, to, _, html string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bodies[to] = html
	return nil
}

var tokenRe = regexp.MustCompile(`token=([A-Za-z0-9_\-.]+)`)

func (m *capturingMailer) token(t *testing.T, to string) string {
	t.Helper()
	m.mu.Lock()
	defer m.mu.Unlock()
	match := tokenRe.FindStringSubmatch(m.bodies[to])
	require.Len(t, match, 2, "no token mailed to %s", to)
	return match[1]
}

type testServer struct {
	handler  http.Handler
	store    *memory.Storage
	mailer   *capturingMailer
	identity *identity.Service
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	mailer := &capturingMailer{bodies: make(map[string]string)}

	ident := identity.New(store, mailer, identity.Config{
		Secret:      "secret",
		SessionTTL:  time.Hour,
		VerifyTTL:   15 * time.Minute,
		ResetTTL:    15 * time.Minute,
		FrontendURL: "http://localhost:5173",
		BcryptCost:  bcrypt.MinCost,
	}, logger)

	cfg := &config.Config{ApiHost: "localhost", ApiPort: 8080, CORSOrigin: "*"}
	apiServer := New(cfg, logger, Services{
		Identity:  ident,
		Ledger:    ledger.New(store, logger),
		Analytics: analytics.New(store),
		Budgets:   budgets.New(store, logger),
		Export:    export.New(store, nil, logger),
	})

	return &testServer{handler: apiServer.Handler(), store: store, mailer: mailer, identity: ident}
}

func (ts *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	switch b := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(b)
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func (ts *testServer) signup(t *testing.T, email string) string {
	t.Helper()

	rr := ts.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"firstName": "Test", "lastName": "User", "email": email, "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodGet, "/api/verify?token="+ts.mailer.token(t, email), "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": email, "password": "password123"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decodeBody[AuthResponse](t, rr).Token
}

func (ts *testServer) createAccount(t *testing.T, token, number, balance string) string {
	t.Helper()

	rr := ts.do(t, http.MethodPost, "/api/account", token, fmt.Sprintf(
		`{"name":"Checking","type":"Checking","number":%q,"institution":"Bank","balance":%s}`, number, balance))
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	env := decodeBody[envelope](t, rr)
	assert.Equal(t, "account created successfully", env.Success)
	return env.ID
}

func (ts *testServer) balance(t *testing.T, token, accountID string) decimal.Decimal {
	t.Helper()

	rr := ts.do(t, http.MethodGet, "/api/account/"+accountID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	return decodeBody[models.Account](t, rr).Balance
}

func TestTransactionRoundTripRestoresBalance(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")
	accountID := ts.createAccount(t, token, "111", "1000.00")

	rr := ts.do(t, http.MethodPost, "/api/transactions/"+accountID, token,
		`{"amount":-50.25,"category":"Living","type":"card","date":"2024-03-01","name":"Groceries"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"balance":949.75`)
	created := decodeBody[envelope](t, rr)
	require.NotNil(t, created.Balance)
	assert.True(t, created.Balance.Equal(decimal.RequireFromString("949.75")))

	assert.True(t, ts.balance(t, token, accountID).Equal(decimal.RequireFromString("949.75")))

	rr = ts.do(t, http.MethodGet, "/api/account/"+accountID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"balance":949.75`)
	assert.NotContains(t, rr.Body.String(), `"balance":"`)

	rr = ts.do(t, http.MethodGet, "/api/transactions/"+accountID+"/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	tx := decodeBody[models.Transaction](t, rr)
	assert.Equal(t, "Groceries", tx.Name)
	assert.NotContains(t, rr.Body.String(), "ownerId")

	rr = ts.do(t, http.MethodDelete, "/api/transactions/"+accountID+"/"+created.ID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "transaction deleted successfully", decodeBody[envelope](t, rr).Success)

	assert.True(t, ts.balance(t, token, accountID).Equal(decimal.RequireFromString("1000")))

	rr = ts.do(t, http.MethodDelete, "/api/transactions/"+accountID+"/"+created.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCategoryAnalyticsIgnoresUnknownCategories(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")
	accountID := ts.createAccount(t, token, "111", "0")

	rr := ts.do(t, http.MethodPost, "/api/transactions/"+accountID, token,
		`{"amount":-100,"category":"Hobbies","type":"card","date":"2024-03-01"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodPost, "/api/transactions/"+accountID, token,
		`{"amount":-50,"category":"UNKNOWN_TYPO","type":"card","date":"2024-03-01"}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	// Rows written before categories were enforced still reach analytics.
	owner, err := ts.identity.Authenticate(context.Background(), token)
	require.NoError(t, err)
	require.NoError(t, ts.store.SaveTransaction(context.Background(), &models.Transaction{
		ID: uuid.New(), OwnerID: owner, AccountID: uuid.MustParse(accountID),
		Amount: decimal.NewFromInt(-50), Category: "UNKNOWN_TYPO", Type: "card",
	}))

	rr = ts.do(t, http.MethodPost, "/api/analytics/categories", token, map[string]string{"accountId": "all"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	report := decodeBody[models.CategoryReport](t, rr)

	assert.True(t, report.TotalSpending.Equal(decimal.NewFromInt(100)), report.TotalSpending.String())
	require.Len(t, report.Categories, 4)
	for _, c := range report.Categories {
		if c.Name == models.CategoryHobbies {
			assert.True(t, c.Value.Equal(decimal.NewFromInt(100)))
			assert.True(t, c.Percentage.Equal(decimal.NewFromInt(100)))
			continue
		}
		assert.True(t, c.Value.IsZero(), c.Name)
	}

	rr = ts.do(t, http.MethodPost, "/api/analytics/categories", token, map[string]string{"accountId": accountID})
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/analytics/categories", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/analytics/categories", token, map[string]string{"accountId": "nope"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestLoginRequiresVerifiedEmail(t *testing.T) {
	ts := newTestServer(t)
	creds := map[string]string{"email": "new@example.com", "password": "password123"}

	rr := ts.do(t, http.MethodPost, "/api/register", "", map[string]string{
		"firstName": "New", "lastName": "User", "email": "new@example.com", "password": "password123",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	assert.Equal(t, "user created successfully", decodeBody[envelope](t, rr).Success)

	rr = ts.do(t, http.MethodPost, "/api/login", "", creds)
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, identity.ErrNotVerified.Error(), decodeBody[envelope](t, rr).Error)

	rr = ts.do(t, http.MethodGet, "/api/verify?token="+ts.mailer.token(t, "new@example.com"), "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodPost, "/api/login", "", map[string]string{"login": "new@example.com", "password": "password123"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.NotEmpty(t, decodeBody[AuthResponse](t, rr).Token)

	rr = ts.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": "new@example.com", "password": "wrong-password"})
	require.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "invalid credentials", decodeBody[envelope](t, rr).Error)
}

func TestAccountNumberUniquePerOwner(t *testing.T) {
	ts := newTestServer(t)
	tokenA := ts.signup(t, "a@example.com")
	tokenB := ts.signup(t, "b@example.com")

	ts.createAccount(t, tokenA, "555", "10")

	rr := ts.do(t, http.MethodPost, "/api/account", tokenA,
		`{"name":"Other","type":"Savings","number":"555","institution":"Bank","balance":1}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, storage.ErrAccountNumberTaken.Error(), decodeBody[envelope](t, rr).Error)

	ts.createAccount(t, tokenB, "555", "10")
}

func TestAuthBoundary(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")
	accountID := ts.createAccount(t, token, "111", "100")

	requests := []struct {
		method, path, body string
	}{
		{http.MethodGet, "/api/accounts", ""},
		{http.MethodGet, "/api/account/" + accountID, ""},
		{http.MethodPost, "/api/account", `{"name":"n","type":"t","number":"2","institution":"i","balance":1}`},
		{http.MethodPut, "/api/account/" + accountID, `{"balance":0}`},
		{http.MethodDelete, "/api/account/" + accountID, ""},
		{http.MethodGet, "/api/transactions", ""},
		{http.MethodPost, "/api/transactions/" + accountID, `{"amount":-1,"category":"Living","type":"t","date":"2024-01-01"}`},
		{http.MethodPost, "/api/analytics/categories", `{"accountId":"all"}`},
		{http.MethodGet, "/api/me", ""},
		{http.MethodPut, "/api/me", `{"firstName":"X"}`},
		{http.MethodDelete, "/api/me", `{"password":"password123"}`},
		{http.MethodGet, "/api/budgets", ""},
		{http.MethodGet, "/api/export/transactions", ""},
	}

	for _, header := range []string{"", "garbage", "Bearer not-a-jwt", "Token " + token} {
		for _, req := range requests {
			r := httptest.NewRequest(req.method, req.path, strings.NewReader(req.body))
			if header != "" {
				r.Header.Set("Authorization", header)
			}
			rr := httptest.NewRecorder()
			ts.handler.ServeHTTP(rr, r)

			assert.Equal(t, http.StatusUnauthorized, rr.Code, "%s %s with %q", req.method, req.path, header)
		}
	}

	rr := ts.do(t, http.MethodGet, "/api/accounts", token, nil)
	accounts := decodeBody[[]models.Account](t, rr)
	require.Len(t, accounts, 1)
	assert.True(t, accounts[0].Balance.Equal(decimal.NewFromInt(100)))

	rr = ts.do(t, http.MethodGet, "/api/me", token, nil)
	assert.Equal(t, "Test", decodeBody[models.User](t, rr).FirstName)
}

func TestPendingEmailSuspendsSession(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")

	rr := ts.do(t, http.MethodPut, "/api/me", token, `{"email":"c@example.com"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodGet, "/api/accounts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Equal(t, "email is not verified", decodeBody[envelope](t, rr).Error)

	rr = ts.do(t, http.MethodPost, "/api/account", token,
		`{"name":"Checking","type":"Checking","number":"1","institution":"Bank","balance":1}`)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/verify?token="+ts.mailer.token(t, "c@example.com"), "", nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodGet, "/api/accounts", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Empty(t, decodeBody[[]models.Account](t, rr))
}

func TestResetLinkWorksOnce(t *testing.T) {
	ts := newTestServer(t)
	ts.signup(t, "a@example.com")

	rr := ts.do(t, http.MethodPost, "/api/forgot-password", "", map[string]string{"email": "a@example.com"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resetToken := ts.mailer.token(t, "a@example.com")

	rr = ts.do(t, http.MethodPost, "/api/change-password", "", map[string]string{"token": resetToken, "password": "newpassword1"})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodPost, "/api/change-password", "", map[string]string{"token": resetToken, "password": "attacker123"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": "a@example.com", "password": "attacker123"})
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = ts.do(t, http.MethodPost, "/api/login", "", map[string]string{"email": "a@example.com", "password": "newpassword1"})
	assert.Equal(t, http.StatusOK, rr.Code)
}

func TestCrossOwnerIsolation(t *testing.T) {
	ts := newTestServer(t)
	tokenA := ts.signup(t, "a@example.com")
	tokenB := ts.signup(t, "b@example.com")
	accountID := ts.createAccount(t, tokenA, "111", "100")

	rr := ts.do(t, http.MethodPost, "/api/transactions/"+accountID, tokenA,
		`{"amount":-10,"category":"Living","type":"card","date":"2024-03-01"}`)
	require.Equal(t, http.StatusCreated, rr.Code)
	txID := decodeBody[envelope](t, rr).ID

	for _, req := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/account/" + accountID, ""},
		{http.MethodPut, "/api/account/" + accountID, `{"name":"mine"}`},
		{http.MethodDelete, "/api/account/" + accountID, ""},
		{http.MethodGet, "/api/transactions/" + accountID, ""},
		{http.MethodGet, "/api/transactions/" + accountID + "/" + txID, ""},
		{http.MethodPost, "/api/transactions/" + accountID, `{"amount":5,"category":"Living","type":"card","date":"2024-03-01"}`},
		{http.MethodDelete, "/api/transactions/" + accountID + "/" + txID, ""},
	} {
		var body any
		if req.body != "" {
			body = req.body
		}
		rr := ts.do(t, req.method, req.path, tokenB, body)
		assert.Equal(t, http.StatusNotFound, rr.Code, "%s %s", req.method, req.path)
	}

	rr = ts.do(t, http.MethodGet, "/api/transactions", tokenB, nil)
	assert.JSONEq(t, "[]", rr.Body.String())

	assert.True(t, ts.balance(t, tokenA, accountID).Equal(decimal.NewFromInt(90)))
}

func TestRequestValidation(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")
	accountID := ts.createAccount(t, token, "111", "100")

	tests := []struct {
		name, method, path, body string
		status                   int
		message                  string
	}{
		{"unknown field", http.MethodPost, "/api/account",
			`{"name":"n","type":"t","number":"2","institution":"i","balance":1,"owner":"x"}`, http.StatusBadRequest, "incorrect numbers of fields"},
		{"empty body", http.MethodPost, "/api/account", "", http.StatusBadRequest, "missing required fields"},
		{"missing balance", http.MethodPost, "/api/account",
			`{"name":"n","type":"t","number":"2","institution":"i"}`, http.StatusBadRequest, "invalid input: balance is required"},
		{"malformed json", http.MethodPost, "/api/account", `{"name":`, http.StatusBadRequest, "invalid request body"},
		{"empty patch", http.MethodPut, "/api/account/" + accountID, `{}`, http.StatusBadRequest, "no fields to update"},
		{"patch outside allow-list", http.MethodPut, "/api/account/" + accountID, `{"institution":"x"}`, http.StatusBadRequest, "incorrect numbers of fields"},
		{"invalid id", http.MethodGet, "/api/account/123", "", http.StatusBadRequest, "invalid id"},
		{"unknown account", http.MethodGet, "/api/account/" + uuid.NewString(), "", http.StatusNotFound, "record not found"},
		{"bad date", http.MethodPost, "/api/transactions/" + accountID,
			`{"amount":-1,"category":"Living","type":"t","date":"yesterday"}`, http.StatusBadRequest, `invalid input: date "yesterday" is not a valid date`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body any
			if tt.body != "" {
				body = tt.body
			}
			rr := ts.do(t, tt.method, tt.path, token, body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())

			env := decodeBody[envelope](t, rr)
			assert.Equal(t, tt.status, env.Status)
			assert.Equal(t, tt.message, env.Error)
		})
	}

	assert.True(t, ts.balance(t, token, accountID).Equal(decimal.NewFromInt(100)))
}

func TestAccountUpdateAndReconcile(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")
	accountID := ts.createAccount(t, token, "111", "100")

	rr := ts.do(t, http.MethodPut, "/api/account/"+accountID, token, `{"name":"Main","active":false}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "account updated successfully", decodeBody[envelope](t, rr).Success)

	rr = ts.do(t, http.MethodGet, "/api/account/"+accountID, token, nil)
	account := decodeBody[models.Account](t, rr)
	assert.Equal(t, "Main", account.Name)
	assert.False(t, account.Active)

	rr = ts.do(t, http.MethodGet, "/api/account/"+accountID+"/reconcile", token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rec := decodeBody[models.Reconciliation](t, rr)
	assert.True(t, rec.Drift.IsZero())
	assert.False(t, rec.Applied)

	rr = ts.do(t, http.MethodDelete, "/api/account/"+accountID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	rr = ts.do(t, http.MethodDelete, "/api/account/"+accountID, token, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListsAreNeverNull(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")

	for _, path := range []string{"/api/accounts", "/api/transactions", "/api/budgets"} {
		rr := ts.do(t, http.MethodGet, path, token, nil)
		require.Equal(t, http.StatusOK, rr.Code, path)
		assert.JSONEq(t, "[]", rr.Body.String(), path)
	}
}

func TestBudgets(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")
	accountID := ts.createAccount(t, token, "111", "100")

	rr := ts.do(t, http.MethodPost, "/api/transactions/"+accountID, token,
		`{"amount":-30,"category":"Living","type":"card","date":"2024-03-10"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/budgets", token, `{"category":"Living","month":"2024-03","limit":100}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	budgetID := decodeBody[envelope](t, rr).ID

	rr = ts.do(t, http.MethodPost, "/api/budgets", token, `{"category":"Living","month":"2024-03","limit":50}`)
	require.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPut, "/api/budget/"+budgetID, token, `{"limit":80}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodGet, "/api/budget/"+budgetID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	budget := decodeBody[models.Budget](t, rr)
	assert.True(t, budget.Spent.Equal(decimal.NewFromInt(30)))
	assert.True(t, budget.Remaining.Equal(decimal.NewFromInt(50)))

	rr = ts.do(t, http.MethodDelete, "/api/budget/"+budgetID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code)
}

func TestExport(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")
	accountID := ts.createAccount(t, token, "111", "100")

	rr := ts.do(t, http.MethodPost, "/api/transactions/"+accountID, token,
		`{"amount":-30,"category":"Living","type":"card","date":"2024-03-10","name":"Rent"}`)
	require.Equal(t, http.StatusCreated, rr.Code)

	rr = ts.do(t, http.MethodGet, "/api/export/transactions?format=csv&accountId="+accountID, token, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "attachment")
	assert.Contains(t, rr.Body.String(), "2024-03-10,Checking (111),Rent,Living,card,-30.00")

	rr = ts.do(t, http.MethodGet, "/api/export/transactions?format=pdf", token, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = ts.do(t, http.MethodPost, "/api/export/archive", token, `{"format":"csv"}`)
	require.Equal(t, http.StatusServiceUnavailable, rr.Code)
	assert.Equal(t, "export archive is not configured", decodeBody[envelope](t, rr).Error)
}

func TestDeleteProfile(t *testing.T) {
	ts := newTestServer(t)
	token := ts.signup(t, "a@example.com")
	ts.createAccount(t, token, "111", "100")

	rr := ts.do(t, http.MethodDelete, "/api/me", token, `{"password":"wrong-password"}`)
	require.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.do(t, http.MethodDelete, "/api/me", token, `{"password":"password123"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = ts.do(t, http.MethodGet, "/api/accounts", token, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestHealthAndCORS(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.do(t, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())

	rr = ts.do(t, http.MethodOptions, "/api/accounts", "", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err     error
		status  int
		message string
	}{
		{fmt.Errorf("storage.postgres.Account: %w", storage.ErrNotFound), http.StatusNotFound, "record not found"},
		{fmt.Errorf("storage.postgres.SaveUser: %w", storage.ErrEmailTaken), http.StatusBadRequest, "email already exists"},
		{fmt.Errorf("%w: name is required", ledger.ErrInvalidInput), http.StatusBadRequest, "invalid input: name is required"},
		{identity.ErrInvalidCredentials, http.StatusUnauthorized, "invalid credentials"},
		{export.ErrArchiveDisabled, http.StatusServiceUnavailable, "export archive is not configured"},
		{errors.New("pq: connection refused"), http.StatusInternalServerError, "server error. please try again"},
	}

	for _, tt := range tests {
		status, message := statusFor(tt.err)
		assert.Equal(t, tt.status, status, tt.err.Error())
		assert.Equal(t, tt.message, message)
	}
}
