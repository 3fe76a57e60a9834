package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	httpHandler "billing-core/internal/adapter/http/handler"
	fileStorage "billing-core/internal/adapter/storage/file"
	redisStorage "billing-core/internal/adapter/storage/redis"
	"billing-core/internal/core/ports"
	"billing-core/internal/service"
	"billing-core/pkg/logger"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp builds a full application stack on the in-memory file store
// with miniredis behind the idempotency cache and rate limiter. This
// exercises the real HTTP layer, middleware, handlers, services, and
// Redis stores end-to-end.

type testApp struct {
	server *httptest.Server
	redis  *miniredis.Miniredis
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()

	mr, err := miniredis.Run()
	require.NoError(t, err)
	rdb := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	store, err := fileStorage.New("")
	require.NoError(t, err)

	signer, err := service.NewHMACSigner("integration-test-secret")
	require.NoError(t, err)

	log := logger.New("debug", false)
	ledgerSvc := service.NewLedgerService(store.Ledger())
	policies := service.NewPolicyRegistry(store.Policies(), signer, log)
	engines := service.NewEngineRegistry()
	auditSvc := service.NewAuditService(store.Ledger(), store.MerkleRoots(), log)
	orchestrator := service.NewOrchestrator(
		ledgerSvc,
		store.Wallets(),
		store.Subscriptions(),
		policies,
		engines,
		store.Idempotency(),
		redisStorage.NewIdempotencyCache(rdb),
		store.Transactor(),
		log,
	)

	router := httpHandler.SetupRouter(httpHandler.RouterDeps{
		Orchestrator:   orchestrator,
		PolicyRegistry: policies,
		AuditSvc:       auditSvc,
		RateLimitStore: redisStorage.NewRateLimitStore(rdb),
		HealthCheckers: []ports.HealthChecker{store},
		Logger:         log,
	})

	return &testApp{
		server: httptest.NewServer(router),
		redis:  mr,
	}
}

func (a *testApp) close() {
	a.server.Close()
	a.redis.Close()
}

func (a *testApp) post(t *testing.T, path string, body string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Post(a.server.URL+path, "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (a *testApp) get(t *testing.T, path string) (int, map[string]interface{}) {
	t.Helper()
	resp, err := http.Get(a.server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	var decoded map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp.StatusCode, decoded
}

func (a *testApp) seedWallet(t *testing.T, walletID, accountID, balance string) {
	t.Helper()
	code, _ := a.post(t, "/wallet", fmt.Sprintf(
		`{"wallet_id":%q,"account_id":%q,"currency":"USD","initial_balance":%q}`,
		walletID, accountID, balance))
	require.Equal(t, http.StatusCreated, code)
}

// --- Integration Tests ---

func TestIntegration_HealthCheck(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, body := app.get(t, "/health")
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "healthy", body["status"])
}

func TestIntegration_SubscriptionEndToEnd(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedWallet(t, "w-1", "acct-1", "200")

	// A 20% subscription offer active before signup
	code, _ := app.post(t, "/policy/offer", `{
		"offer_id": "promo-20",
		"policy_id": "pol-promo",
		"policy_version": 1,
		"scope": "subscription",
		"discount_percent": "20",
		"effective_from": "2026-07-01T00:00:00Z"
	}`)
	require.Equal(t, http.StatusCreated, code)

	// Signup: 9.99 * 1.0 (Europe West 1) * 0.8 * 1.20 (VAT) = 9.59
	code, body := app.post(t, "/subscription/create", `{
		"account_id": "acct-1",
		"wallet_id": "w-1",
		"plan_id": "pro",
		"price": "9.99",
		"region": "Europe West 1",
		"at": "2026-08-01T00:00:00Z"
	}`)
	require.Equal(t, http.StatusCreated, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "subscription_signup", data["type"])
	assert.Equal(t, "9.59", data["amount"])
	assert.Equal(t, "190.41", data["balance_after"])
	assert.Nil(t, data["prev_hash"])
	assert.NotEmpty(t, data["entry_hash"])

	// The subscription is active with a 30-day period
	code, body = app.get(t, "/subscription/acct-1")
	require.Equal(t, http.StatusOK, code)
	sub := body["data"].(map[string]interface{})
	assert.Equal(t, "active", sub["status"])
	assert.Equal(t, "2026-08-31T00:00:00Z", sub["period_end"])

	// Exactly one ledger entry, and the chain verifies
	code, body = app.get(t, "/ledger/acct-1")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)

	code, body = app.get(t, "/audit/verify/w-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["data"].(map[string]interface{})["valid"])
}

func TestIntegration_IdempotentRetry(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedWallet(t, "w-1", "acct-1", "100")

	reqBody := `{
		"account_id": "acct-1",
		"wallet_id": "w-1",
		"plan_id": "basic",
		"price": "10",
		"region": "US East 1",
		"at": "2026-08-01T00:00:00Z",
		"idempotency_key": "signup-001"
	}`

	code, first := app.post(t, "/subscription/create", reqBody)
	require.Equal(t, http.StatusCreated, code)
	code, second := app.post(t, "/subscription/create", reqBody)
	require.Equal(t, http.StatusCreated, code)

	firstEntry := first["data"].(map[string]interface{})
	secondEntry := second["data"].(map[string]interface{})
	assert.Equal(t, firstEntry["entry_id"], secondEntry["entry_id"])
	assert.Equal(t, firstEntry["entry_hash"], secondEntry["entry_hash"])

	// Still only one ledger entry and one debit
	code, body := app.get(t, "/ledger/acct-1")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 1)

	code, body = app.get(t, "/wallet/w-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "90.00", body["data"].(map[string]interface{})["balance"])
}

func TestIntegration_InsufficientFunds(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedWallet(t, "w-1", "acct-1", "5")

	code, body := app.post(t, "/subscription/create", `{
		"account_id": "acct-1",
		"wallet_id": "w-1",
		"plan_id": "pro",
		"price": "9.99",
		"region": "US East 1",
		"at": "2026-08-01T00:00:00Z"
	}`)
	assert.Equal(t, http.StatusPaymentRequired, code)
	assert.Equal(t, "insufficient_funds", body["error"])

	// No partial write: balance unchanged, ledger empty
	code, body = app.get(t, "/wallet/w-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "5.00", body["data"].(map[string]interface{})["balance"])

	code, body = app.get(t, "/ledger/acct-1")
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, body["data"])
}

func TestIntegration_ActivityCharge(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedWallet(t, "w-1", "acct-1", "50")

	// Ecommerce reference pricing: 100 * 0.02 + 0.30 = 2.30 (US East 1: no tax)
	code, body := app.post(t, "/activity/charge", `{
		"account_id": "acct-1",
		"wallet_id": "w-1",
		"event": {"engine": "ecommerce", "event_id": "order-77", "amount": "100"},
		"region": "US East 1",
		"at": "2026-08-01T00:00:00Z"
	}`)
	require.Equal(t, http.StatusCreated, code)
	data := body["data"].(map[string]interface{})
	assert.Equal(t, "activity_ecommerce", data["type"])
	assert.Equal(t, "2.30", data["amount"])
	assert.Equal(t, "47.70", data["balance_after"])
	assert.Equal(t, "ecommerce", data["source_engine"])
	assert.Equal(t, "order-77", data["source_event_id"])
}

func TestIntegration_ActivityCharge_UnknownEngine(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedWallet(t, "w-1", "acct-1", "50")

	code, body := app.post(t, "/activity/charge", `{
		"account_id": "acct-1",
		"wallet_id": "w-1",
		"event": {"engine": "gaming", "units": "5"},
		"region": "US East 1"
	}`)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "engine_not_found", body["error"])
}

func TestIntegration_PolicyRetroactiveRejected(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	code, _ := app.post(t, "/policy", `{
		"policy_id": "sub-pricing",
		"version": 1,
		"signed_by": "billing-ops",
		"effective_from": "2026-09-01T00:00:00Z",
		"scope": "subscription",
		"payload": {"kind": "subscription", "pricing": {}}
	}`)
	require.Equal(t, http.StatusCreated, code)

	// An earlier effective_from for the same scope must be rejected
	code, body := app.post(t, "/policy", `{
		"policy_id": "sub-pricing",
		"version": 2,
		"signed_by": "billing-ops",
		"effective_from": "2026-08-01T00:00:00Z",
		"scope": "subscription",
		"payload": {"kind": "subscription", "pricing": {}}
	}`)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "policy_retroactive_effective_from", body["error"])
}

func TestIntegration_CancelThenBoundary(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedWallet(t, "w-1", "acct-1", "100")

	code, _ := app.post(t, "/subscription/create", `{
		"account_id": "acct-1",
		"wallet_id": "w-1",
		"plan_id": "basic",
		"price": "10",
		"region": "US East 1",
		"at": "2026-08-01T00:00:00Z"
	}`)
	require.Equal(t, http.StatusCreated, code)

	code, body := app.post(t, "/subscription/cancel", `{"account_id": "acct-1"}`)
	require.Equal(t, http.StatusOK, code)
	sub := body["data"].(map[string]interface{})
	assert.Equal(t, "canceled", sub["status"])
	assert.Equal(t, "2026-08-31T00:00:00Z", sub["canceled_effective"])

	// Boundary before period end is rejected
	code, body = app.post(t, "/subscription/boundary", `{
		"account_id": "acct-1",
		"at": "2026-08-15T00:00:00Z"
	}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "validation_error", body["error"])

	// At the period end the subscription closes; nothing was refunded
	code, body = app.post(t, "/subscription/boundary", `{
		"account_id": "acct-1",
		"at": "2026-08-31T00:00:00Z"
	}`)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "closed", body["data"].(map[string]interface{})["status"])

	code, body = app.get(t, "/wallet/w-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "90.00", body["data"].(map[string]interface{})["balance"])
}

func TestIntegration_AuditSnapshot(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	app.seedWallet(t, "w-1", "acct-1", "100")

	code, _ := app.post(t, "/subscription/create", `{
		"account_id": "acct-1",
		"wallet_id": "w-1",
		"plan_id": "basic",
		"price": "10",
		"region": "US East 1"
	}`)
	require.Equal(t, http.StatusCreated, code)

	code, body := app.post(t, "/audit/snapshot", `{}`)
	require.Equal(t, http.StatusCreated, code)
	data := body["data"].(map[string]interface{})
	assert.NotEmpty(t, data["root"])
	assert.Equal(t, float64(1), data["entry_count"])
}

func TestIntegration_RateLimitEnforced(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// The audit group allows 10 requests per minute
	var lastCode int
	for i := 0; i < 11; i++ {
		lastCode, _ = app.post(t, "/audit/snapshot", `{}`)
	}
	assert.Equal(t, http.StatusTooManyRequests, lastCode)
}
