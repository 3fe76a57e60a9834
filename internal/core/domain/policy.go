package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Scope constants. Activity pricing policies live under
// "activity:<engine>"; offers may additionally target the wildcard
// scope "all".
const (
	ScopeSubscription = "subscription"
	ScopeAll          = "all"
)

// ActivityScope returns the policy scope for an activity engine.
func ActivityScope(engine string) string {
	return "activity:" + engine
}

// PayloadKind tags the variant of a policy payload. Each business
// vertical interprets only its own variant; the kind is validated
// against the policy scope at registration time.
type PayloadKind string

const (
	PayloadSubscription  PayloadKind = "subscription"
	PayloadEcommerce     PayloadKind = "ecommerce"
	PayloadMatchmaking   PayloadKind = "matchmaking"
	PayloadPlaces        PayloadKind = "places"
	PayloadCommunication PayloadKind = "communication"
	PayloadLocalization  PayloadKind = "localization"
	PayloadAIPrograms    PayloadKind = "ai_programs"
	PayloadMarketing     PayloadKind = "marketing"
)

// KindForScope maps a policy scope to the payload kind it must carry.
func KindForScope(scope string) (PayloadKind, bool) {
	if scope == ScopeSubscription {
		return PayloadSubscription, true
	}
	if engine, ok := strings.CutPrefix(scope, "activity:"); ok {
		switch engine {
		case "ecommerce":
			return PayloadEcommerce, true
		case "matchmaking":
			return PayloadMatchmaking, true
		case "places":
			return PayloadPlaces, true
		case "communication":
			return PayloadCommunication, true
		case "localization":
			return PayloadLocalization, true
		case "ai_programs":
			return PayloadAIPrograms, true
		case "marketing":
			return PayloadMarketing, true
		}
	}
	return "", false
}

// PricingParams holds the pricing knobs a policy payload may override.
// Which knobs are required depends on the payload kind.
type PricingParams struct {
	PercentFee     *decimal.Decimal `json:"percent_fee,omitempty"`
	FixedFee       *decimal.Decimal `json:"fixed_fee,omitempty"`
	PerUnit        *decimal.Decimal `json:"per_unit,omitempty"`
	PerChar        *decimal.Decimal `json:"per_char,omitempty"`
	PerToken       *decimal.Decimal `json:"per_token,omitempty"`
	CommissionRate *decimal.Decimal `json:"commission_rate,omitempty"`
	BasePrice      *decimal.Decimal `json:"base_price,omitempty"`
}

// PolicyPayload is the typed policy body: a kind tag plus the pricing
// parameters valid for that kind.
type PolicyPayload struct {
	Kind    PayloadKind   `json:"kind"`
	Pricing PricingParams `json:"pricing"`
}

// Validate checks the payload's shape for the given scope: the kind
// must match the scope and every present knob must be non-negative.
func (p PolicyPayload) Validate(scope string) error {
	want, ok := KindForScope(scope)
	if !ok {
		return fmt.Errorf("unknown policy scope %q", scope)
	}
	if p.Kind != want {
		return fmt.Errorf("payload kind %q does not match scope %q", p.Kind, scope)
	}
	for name, v := range map[string]*decimal.Decimal{
		"percent_fee":     p.Pricing.PercentFee,
		"fixed_fee":       p.Pricing.FixedFee,
		"per_unit":        p.Pricing.PerUnit,
		"per_char":        p.Pricing.PerChar,
		"per_token":       p.Pricing.PerToken,
		"commission_rate": p.Pricing.CommissionRate,
		"base_price":      p.Pricing.BasePrice,
	} {
		if v != nil && v.Sign() < 0 {
			return fmt.Errorf("pricing knob %s must not be negative", name)
		}
	}
	return nil
}

// Policy is a versioned, signed pricing/discount policy. Immutable once
// signed, except EffectiveUntil which deprecation sets. Policies are
// never physically deleted.
type Policy struct {
	ID             string        `json:"policy_id"`
	Version        int           `json:"version"`
	SignedBy       string        `json:"signed_by"`
	EffectiveFrom  time.Time     `json:"effective_from"`
	EffectiveUntil *time.Time    `json:"effective_until,omitempty"`
	Scope          string        `json:"scope"`
	Payload        PolicyPayload `json:"payload"`
	Signature      string        `json:"signature"`
}

// SigningPayload returns the deterministic byte sequence the KMS signs.
// EffectiveUntil is excluded so deprecation does not invalidate the
// original signature.
func (p *Policy) SigningPayload() []byte {
	parts := []string{
		p.ID,
		strconv.Itoa(p.Version),
		p.SignedBy,
		p.EffectiveFrom.UTC().Format(time.RFC3339),
		p.Scope,
		string(p.Payload.Kind),
		decOrEmpty(p.Payload.Pricing.PercentFee),
		decOrEmpty(p.Payload.Pricing.FixedFee),
		decOrEmpty(p.Payload.Pricing.PerUnit),
		decOrEmpty(p.Payload.Pricing.PerChar),
		decOrEmpty(p.Payload.Pricing.PerToken),
		decOrEmpty(p.Payload.Pricing.CommissionRate),
		decOrEmpty(p.Payload.Pricing.BasePrice),
	}
	return []byte(strings.Join(parts, "|"))
}

// ActiveAt reports whether t falls in [EffectiveFrom, EffectiveUntil).
func (p *Policy) ActiveAt(t time.Time) bool {
	if t.Before(p.EffectiveFrom) {
		return false
	}
	if p.EffectiveUntil != nil && !t.Before(*p.EffectiveUntil) {
		return false
	}
	return true
}

// Offer grants a discount against a scope's base charge. Multiple
// eligible offers stack: their percentages sum and are capped before
// application.
type Offer struct {
	ID              string           `json:"offer_id"`
	PolicyID        string           `json:"policy_id"`
	PolicyVersion   int              `json:"policy_version"`
	Scope           string           `json:"scope"`
	DiscountPercent *decimal.Decimal `json:"discount_percent,omitempty"`
	DiscountFixed   *decimal.Decimal `json:"discount_fixed,omitempty"`
	EffectiveFrom   time.Time        `json:"effective_from"`
	EffectiveUntil  *time.Time       `json:"effective_until,omitempty"`
	MaxRedemptions  *int             `json:"max_redemptions,omitempty"`
	Redemptions     int              `json:"redemptions"`
}

// ActiveAt reports whether the offer is redeemable at t.
func (o *Offer) ActiveAt(t time.Time) bool {
	if t.Before(o.EffectiveFrom) {
		return false
	}
	if o.EffectiveUntil != nil && !t.Before(*o.EffectiveUntil) {
		return false
	}
	if o.MaxRedemptions != nil && o.Redemptions >= *o.MaxRedemptions {
		return false
	}
	return true
}

func decOrEmpty(d *decimal.Decimal) string {
	if d == nil {
		return ""
	}
	return d.StringFixed(6)
}
