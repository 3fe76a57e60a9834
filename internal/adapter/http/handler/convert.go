package handler

import (
	"time"

	"billing-core/internal/adapter/http/dto"
	"billing-core/internal/core/domain"
)

// toLedgerEntryResponse converts domain.LedgerEntry to its DTO.
// Decimals are rendered with 2 fraction digits for display; the hash
// contract keeps its own 4-digit rendering internally.
func toLedgerEntryResponse(e *domain.LedgerEntry) dto.LedgerEntryResponse {
	return dto.LedgerEntryResponse{
		EntryID:         e.ID.String(),
		Timestamp:       e.Timestamp.UTC().Format(time.RFC3339),
		AccountID:       e.AccountID,
		WalletID:        e.WalletID,
		Type:            e.Type,
		Amount:          e.Amount.StringFixed(2),
		Currency:        e.Currency,
		BalanceAfter:    e.BalanceAfter.StringFixed(2),
		PrevHash:        e.PrevHash,
		EntryHash:       e.EntryHash,
		IdempotencyKey:  e.IdempotencyKey,
		SourceEngine:    e.SourceEngine,
		SourceEventID:   e.SourceEventID,
		PolicyID:        e.PolicyID,
		PolicyVersion:   e.PolicyVersion,
		Region:          e.Region,
		Tax:             toTaxResponse(e.Tax),
		UserExplanation: e.UserExplanation,
	}
}

func toTaxResponse(t *domain.TaxBreakdown) *dto.TaxBreakdownResponse {
	if t == nil {
		return nil
	}
	return &dto.TaxBreakdownResponse{
		Region: t.Region,
		Rate:   t.Rate.StringFixed(4),
		Amount: t.Amount.StringFixed(2),
	}
}

// toChargeBreakdownResponse converts domain.ChargeBreakdown to its DTO.
func toChargeBreakdownResponse(b domain.ChargeBreakdown) dto.ChargeBreakdownResponse {
	return dto.ChargeBreakdownResponse{
		Base:            b.Base.StringFixed(2),
		Fees:            b.Fees.StringFixed(2),
		Commission:      b.Commission.StringFixed(2),
		DiscountPercent: b.DiscountPercent.StringFixed(2),
		DiscountAmount:  b.DiscountAmount.StringFixed(2),
		Subtotal:        b.Subtotal.StringFixed(2),
		Tax: dto.TaxBreakdownResponse{
			Region: b.Tax.Region,
			Rate:   b.Tax.Rate.StringFixed(4),
			Amount: b.Tax.Amount.StringFixed(2),
		},
		Total:       b.Total.StringFixed(2),
		Description: b.Description,
	}
}

// toSubscriptionResponse converts domain.Subscription to its DTO.
func toSubscriptionResponse(s *domain.Subscription) dto.SubscriptionResponse {
	resp := dto.SubscriptionResponse{
		AccountID:   s.AccountID,
		WalletID:    s.WalletID,
		PlanID:      s.PlanID,
		Price:       s.Price.StringFixed(2),
		Region:      s.Region,
		PeriodStart: s.PeriodStart.UTC().Format(time.RFC3339),
		PeriodEnd:   s.PeriodEnd.UTC().Format(time.RFC3339),
		Status:      string(s.Status),
		AutoRenew:   s.AutoRenew,
		PendingPlan: s.PendingPlan,
	}
	if s.PendingPrice != nil {
		p := s.PendingPrice.StringFixed(2)
		resp.PendingPrice = &p
	}
	if s.PendingEffective != nil {
		t := s.PendingEffective.UTC().Format(time.RFC3339)
		resp.PendingEffective = &t
	}
	if s.CanceledEffective != nil {
		t := s.CanceledEffective.UTC().Format(time.RFC3339)
		resp.CanceledEffective = &t
	}
	return resp
}

// toWalletResponse converts domain.Wallet to its DTO.
func toWalletResponse(w *domain.Wallet) dto.WalletResponse {
	return dto.WalletResponse{
		WalletID:  w.ID,
		AccountID: w.AccountID,
		Currency:  w.Currency,
		Balance:   w.Balance.StringFixed(2),
		Status:    string(w.Status),
		CreatedAt: w.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: w.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// toPolicyResponse converts domain.Policy to its DTO.
func toPolicyResponse(p *domain.Policy) dto.PolicyResponse {
	resp := dto.PolicyResponse{
		PolicyID:      p.ID,
		Version:       p.Version,
		SignedBy:      p.SignedBy,
		EffectiveFrom: p.EffectiveFrom.UTC().Format(time.RFC3339),
		Scope:         p.Scope,
		Payload: dto.PolicyPayloadRequest{
			Kind: string(p.Payload.Kind),
			Pricing: dto.PricingParamsRequest{
				PercentFee:     p.Payload.Pricing.PercentFee,
				FixedFee:       p.Payload.Pricing.FixedFee,
				PerUnit:        p.Payload.Pricing.PerUnit,
				PerChar:        p.Payload.Pricing.PerChar,
				PerToken:       p.Payload.Pricing.PerToken,
				CommissionRate: p.Payload.Pricing.CommissionRate,
				BasePrice:      p.Payload.Pricing.BasePrice,
			},
		},
		Signature: p.Signature,
	}
	if p.EffectiveUntil != nil {
		t := p.EffectiveUntil.UTC().Format(time.RFC3339)
		resp.EffectiveUntil = &t
	}
	return resp
}

// timeOrZero dereferences an optional request timestamp; the service
// layer treats the zero value as "now".
func timeOrZero(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
