package integration

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestIntegration_ConcurrentChargesDrainExactly fires concurrent
// activity charges whose total equals the wallet balance. The store
// serializes settlements, so every charge lands and the balance ends
// at exactly zero.
func TestIntegration_ConcurrentChargesDrainExactly(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// 10 ecommerce charges of 2.30 each (amount 100, US East 1: no tax)
	// against a balance of exactly 23.00.
	app.seedWallet(t, "w-1", "acct-1", "23")

	concurrency := 10
	var wg sync.WaitGroup
	var succeeded atomic.Int64
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			code, _ := app.post(t, "/activity/charge", fmt.Sprintf(`{
				"account_id": "acct-1",
				"wallet_id": "w-1",
				"event": {"engine": "ecommerce", "event_id": "drain-%d", "amount": "100"},
				"region": "US East 1"
			}`, idx))
			if code == http.StatusCreated {
				succeeded.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(concurrency), succeeded.Load())

	code, body := app.get(t, "/wallet/w-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "0.00", body["data"].(map[string]interface{})["balance"])

	code, body = app.get(t, "/ledger/acct-1")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), concurrency)

	code, body = app.get(t, "/audit/verify/w-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["data"].(map[string]interface{})["valid"])
}

// TestIntegration_ConcurrentOverspendRejected fires more concurrent
// debits than the wallet can fund. Exactly the affordable number
// succeed; the rest are rejected, the balance never goes negative,
// and the hash chain stays intact.
func TestIntegration_ConcurrentOverspendRejected(t *testing.T) {
	app := newTestApp(t)
	defer app.close()

	// 8 charges of 2.30 each against 10.00: only 4 fit (9.20), the
	// remaining 0.80 cannot fund a fifth.
	app.seedWallet(t, "w-1", "acct-1", "10")

	concurrency := 8
	var wg sync.WaitGroup
	var succeeded, rejected atomic.Int64
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			code, body := app.post(t, "/activity/charge", fmt.Sprintf(`{
				"account_id": "acct-1",
				"wallet_id": "w-1",
				"event": {"engine": "ecommerce", "event_id": "overspend-%d", "amount": "100"},
				"region": "US East 1"
			}`, idx))
			switch code {
			case http.StatusCreated:
				succeeded.Add(1)
			case http.StatusPaymentRequired:
				assert.Equal(t, "insufficient_funds", body["error"])
				rejected.Add(1)
			}
		}(i)
	}
	wg.Wait()

	assert.Equal(t, int64(4), succeeded.Load())
	assert.Equal(t, int64(4), rejected.Load())

	code, body := app.get(t, "/wallet/w-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "0.80", body["data"].(map[string]interface{})["balance"])

	code, body = app.get(t, "/ledger/acct-1")
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, body["data"].([]interface{}), 4)

	code, body = app.get(t, "/audit/verify/w-1")
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, true, body["data"].(map[string]interface{})["valid"])
}
