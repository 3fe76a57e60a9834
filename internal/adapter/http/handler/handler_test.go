package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/domain"
	"billing-core/internal/core/ports"
	"billing-core/internal/core/ports/mocks"
	"billing-core/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func postJSON(t *testing.T, body any) (*httptest.ResponseRecorder, *gin.Context) {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return w, c
}

func sampleEntry() *domain.LedgerEntry {
	region := "US East 1"
	return &domain.LedgerEntry{
		ID:           uuid.New(),
		Timestamp:    time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		AccountID:    "acct-1",
		WalletID:     "w-1",
		Type:         domain.EntryTypeSubscriptionSignup,
		Amount:       decimal.RequireFromString("10.00"),
		Currency:     "USD",
		BalanceAfter: decimal.RequireFromString("190.00"),
		EntryHash:    "deadbeef",
		Region:       &region,
	}
}

// --- Billing Handler ---

func TestCalculate_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewBillingHandler(mockOrc)

	base := decimal.RequireFromString("9.99")
	mockOrc.EXPECT().CalculateCharge(gomock.Any(), base, "Europe West 1", gomock.Any()).Return(domain.ChargeBreakdown{
		Base:           base,
		DiscountAmount: decimal.RequireFromString("2.00"),
		Subtotal:       decimal.RequireFromString("7.99"),
		Tax: domain.TaxBreakdown{
			Region: "Europe West 1",
			Rate:   decimal.RequireFromString("0.20"),
			Amount: decimal.RequireFromString("1.60"),
		},
		Total: decimal.RequireFromString("9.59"),
	}, nil)

	w, c := postJSON(t, dto.CalculateChargeRequest{Base: base, Region: "Europe West 1"})
	h.Calculate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "9.59", data["total"])
	assert.Equal(t, "7.99", data["subtotal"])
}

func TestCalculate_ValidationError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	h := NewBillingHandler(mocks.NewMockOrchestrator(ctrl))

	w, c := postJSON(t, map[string]any{"region": "US East 1"})
	h.Calculate(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Subscription Handler ---

func TestCreateSubscription_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewSubscriptionHandler(mockOrc)

	entry := sampleEntry()
	mockOrc.EXPECT().CreateSubscription(gomock.Any(), gomock.Any()).Return(entry, nil)

	w, c := postJSON(t, dto.CreateSubscriptionRequest{
		AccountID: "acct-1",
		WalletID:  "w-1",
		PlanID:    "pro",
		Price:     decimal.RequireFromString("9.99"),
		Region:    "US East 1",
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, entry.ID.String(), data["entry_id"])
	assert.Equal(t, "subscription_signup", data["type"])
	assert.Equal(t, "190.00", data["balance_after"])
}

func TestCreateSubscription_InsufficientFunds(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewSubscriptionHandler(mockOrc)

	mockOrc.EXPECT().CreateSubscription(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrInsufficientFunds())

	w, c := postJSON(t, dto.CreateSubscriptionRequest{
		AccountID: "acct-1",
		WalletID:  "w-1",
		PlanID:    "pro",
		Price:     decimal.RequireFromString("9.99"),
		Region:    "US East 1",
	})
	h.Create(c)

	assert.Equal(t, http.StatusPaymentRequired, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "insufficient_funds", resp["error"])
}

func TestUpgradeSubscription_Scheduled(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewSubscriptionHandler(mockOrc)

	sub := &domain.Subscription{
		AccountID:   "acct-1",
		WalletID:    "w-1",
		PlanID:      "pro",
		Price:       decimal.RequireFromString("20.00"),
		Region:      "US East 1",
		PeriodStart: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		PeriodEnd:   time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		Status:      domain.SubscriptionStatusPendingChange,
	}
	mockOrc.EXPECT().UpgradeSubscription(gomock.Any(), gomock.Any()).Return(&ports.UpgradeResult{
		Subscription: sub,
		Scheduled:    true,
	}, nil)

	w, c := postJSON(t, dto.UpgradeSubscriptionRequest{
		AccountID: "acct-1",
		WalletID:  "w-1",
		NewPlanID: "basic",
		NewPrice:  decimal.RequireFromString("5.00"),
	})
	h.Upgrade(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["scheduled"])
	assert.Nil(t, data["entry"])
}

func TestGetSubscription_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewSubscriptionHandler(mockOrc)

	mockOrc.EXPECT().GetSubscription(gomock.Any(), "ghost").Return(nil, apperror.ErrSubscriptionNotFound())

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "accountId", Value: "ghost"}}

	h.Get(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "subscription_not_found", resp["error"])
}

func TestBoundary_TooEarly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewSubscriptionHandler(mockOrc)

	mockOrc.EXPECT().ApplyPeriodBoundary(gomock.Any(), "acct-1", gomock.Any()).
		Return(nil, apperror.Validation("billing period has not ended yet"))

	w, c := postJSON(t, dto.PeriodBoundaryRequest{AccountID: "acct-1"})
	h.Boundary(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Activity Handler ---

func TestActivityCharge_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewActivityHandler(mockOrc)

	entry := sampleEntry()
	entry.Type = domain.ActivityEntryType("ecommerce")

	mockOrc.EXPECT().RecordUsage(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, req ports.RecordUsageRequest) (*domain.LedgerEntry, error) {
			assert.Equal(t, "ecommerce", req.Event.Engine)
			require.NotNil(t, req.Event.Amount)
			assert.Equal(t, "100", req.Event.Amount.String())
			return entry, nil
		})

	amount := decimal.RequireFromString("100")
	w, c := postJSON(t, dto.ActivityChargeRequest{
		AccountID: "acct-1",
		WalletID:  "w-1",
		Event:     dto.UsageEventRequest{Engine: "ecommerce", Amount: &amount},
		Region:    "US East 1",
	})
	h.Charge(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "activity_ecommerce", data["type"])
}

func TestActivityCharge_UnknownEngine(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewActivityHandler(mockOrc)

	mockOrc.EXPECT().RecordUsage(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrEngineNotFound("gaming"))

	units := decimal.RequireFromString("5")
	w, c := postJSON(t, dto.ActivityChargeRequest{
		AccountID: "acct-1",
		WalletID:  "w-1",
		Event:     dto.UsageEventRequest{Engine: "gaming", Units: &units},
		Region:    "US East 1",
	})
	h.Charge(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "engine_not_found", resp["error"])
}

// --- Ledger Handler ---

func TestLedgerList_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewLedgerHandler(mockOrc)

	mockOrc.EXPECT().LedgerForAccount(gomock.Any(), "acct-1").Return([]domain.LedgerEntry{*sampleEntry()}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "accountId", Value: "acct-1"}}

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	items := resp["data"].([]interface{})
	assert.Len(t, items, 1)
}

// --- Policy Handler ---

func TestCreatePolicy_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReg := mocks.NewMockPolicyRegistry(ctrl)
	h := NewPolicyHandler(mockReg)

	mockReg.EXPECT().SignAndAdd(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ any, p *domain.Policy) (*domain.Policy, error) {
			assert.Equal(t, "pol-1", p.ID)
			assert.Equal(t, domain.PayloadSubscription, p.Payload.Kind)
			signed := *p
			signed.Signature = "sig"
			return &signed, nil
		})

	w, c := postJSON(t, dto.CreatePolicyRequest{
		PolicyID:      "pol-1",
		Version:       1,
		SignedBy:      "ops",
		EffectiveFrom: time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC),
		Scope:         "subscription",
		Payload:       dto.PolicyPayloadRequest{Kind: "subscription"},
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "sig", data["signature"])
}

func TestCreatePolicy_Retroactive(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockReg := mocks.NewMockPolicyRegistry(ctrl)
	h := NewPolicyHandler(mockReg)

	mockReg.EXPECT().SignAndAdd(gomock.Any(), gomock.Any()).Return(nil, apperror.ErrPolicyRetroactive())

	w, c := postJSON(t, dto.CreatePolicyRequest{
		PolicyID:      "pol-1",
		Version:       2,
		SignedBy:      "ops",
		EffectiveFrom: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		Scope:         "subscription",
		Payload:       dto.PolicyPayloadRequest{Kind: "subscription"},
	})
	h.Create(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "policy_retroactive_effective_from", resp["error"])
}

// --- Wallet Handler ---

func TestCreateWallet_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewWalletHandler(mockOrc)

	now := time.Now()
	mockOrc.EXPECT().CreateWallet(gomock.Any(), "w-1", "acct-1", "USD", decimal.RequireFromString("200")).
		Return(&domain.Wallet{
			ID:        "w-1",
			AccountID: "acct-1",
			Currency:  "USD",
			Balance:   decimal.RequireFromString("200"),
			Status:    domain.WalletStatusActive,
			CreatedAt: now,
			UpdatedAt: now,
		}, nil)

	w, c := postJSON(t, dto.CreateWalletRequest{
		WalletID:       "w-1",
		AccountID:      "acct-1",
		Currency:       "USD",
		InitialBalance: decimal.RequireFromString("200"),
	})
	h.Create(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "200.00", data["balance"])
	assert.Equal(t, "active", data["status"])
}

func TestCreditWallet_NegativeAmount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockOrc := mocks.NewMockOrchestrator(ctrl)
	h := NewWalletHandler(mockOrc)

	mockOrc.EXPECT().CreditWallet(gomock.Any(), gomock.Any()).Return(nil, apperror.Validation("credit amount must be positive"))

	w, c := postJSON(t, dto.CreditWalletRequest{
		AccountID: "acct-1",
		WalletID:  "w-1",
		Amount:    decimal.RequireFromString("-5"),
	})
	h.Credit(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// --- Audit Handler ---

func TestAuditVerify_Valid(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAudit := mocks.NewMockAuditService(ctrl)
	h := NewAuditHandler(mockAudit)

	mockAudit.EXPECT().VerifyWalletChain(gomock.Any(), "w-1").Return(nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "walletId", Value: "w-1"}}

	h.Verify(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, true, data["valid"])
}

func TestAuditVerify_Broken(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAudit := mocks.NewMockAuditService(ctrl)
	h := NewAuditHandler(mockAudit)

	mockAudit.EXPECT().VerifyWalletChain(gomock.Any(), "w-1").Return(apperror.ErrChainBroken("w-1"))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Params = gin.Params{{Key: "walletId", Value: "w-1"}}

	h.Verify(c)

	assert.Equal(t, http.StatusConflict, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "chain_broken", resp["error"])
}

func TestAuditSnapshot_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockAudit := mocks.NewMockAuditService(ctrl)
	h := NewAuditHandler(mockAudit)

	mockAudit.EXPECT().Snapshot(gomock.Any(), gomock.Any()).Return(&domain.MerkleRoot{
		ID:         uuid.New(),
		Root:       "abc123",
		EntryCount: 7,
		TakenAt:    time.Now().UTC(),
	}, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", nil)

	h.Snapshot(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	data := resp["data"].(map[string]interface{})
	assert.Equal(t, "abc123", data["root"])
	assert.Equal(t, float64(7), data["entry_count"])
}

// --- Health Check ---

func TestHealthCheck_NoCheckers(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/health", nil)

	HealthCheck()(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp["status"])
}
