package service

import (
	"fmt"
	"sort"
	"time"

	"billing-core/internal/core/domain"
	"billing-core/internal/core/ports"
	"billing-core/pkg/apperror"

	"github.com/shopspring/decimal"
)

// Reference rates per vertical, applied when no policy overrides them.
var (
	defaultEcommercePercentFee    = decimal.RequireFromString("0.02")
	defaultEcommerceFixedFee      = decimal.RequireFromString("0.30")
	defaultMatchmakingPerUnit     = decimal.RequireFromString("0.05")
	defaultPlacesPerCheckin       = decimal.RequireFromString("0.10")
	defaultCommunicationPerUnit   = decimal.RequireFromString("0.01")
	defaultLocalizationPerChar    = decimal.RequireFromString("0.0001")
	defaultAIProgramsPerToken     = decimal.RequireFromString("0.00002")
	defaultMarketingCommissionPct = decimal.RequireFromString("0.15")
)

// EngineRegistryImpl implements ports.EngineRegistry with the built-in
// verticals registered.
type EngineRegistryImpl struct {
	engines map[string]ports.ActivityEngine
}

// NewEngineRegistry creates a registry with every built-in engine.
func NewEngineRegistry() *EngineRegistryImpl {
	return &EngineRegistryImpl{
		engines: map[string]ports.ActivityEngine{
			"ecommerce":     ecommerceEngine,
			"matchmaking":   matchmakingEngine,
			"places":        placesEngine,
			"communication": communicationEngine,
			"localization":  localizationEngine,
			"ai_programs":   aiProgramsEngine,
			"marketing":     marketingEngine,
		},
	}
}

// Get implements ports.EngineRegistry.
func (r *EngineRegistryImpl) Get(engine string) (ports.ActivityEngine, error) {
	fn, ok := r.engines[engine]
	if !ok {
		return nil, apperror.ErrEngineNotFound(engine)
	}
	return fn, nil
}

// Names implements ports.EngineRegistry.
func (r *EngineRegistryImpl) Names() []string {
	names := make([]string, 0, len(r.engines))
	for name := range r.engines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// knob returns the policy override for a pricing parameter, or the
// reference default when the policy does not set it.
func knob(policy *domain.Policy, pick func(domain.PricingParams) *decimal.Decimal, fallback decimal.Decimal) decimal.Decimal {
	if policy != nil {
		if v := pick(policy.Payload.Pricing); v != nil {
			return *v
		}
	}
	return fallback
}

func requireAmount(event domain.UsageEvent) (decimal.Decimal, error) {
	if event.Amount == nil {
		return decimal.Zero, apperror.Validation(fmt.Sprintf("%s event requires amount", event.Engine))
	}
	if event.Amount.Sign() < 0 {
		return decimal.Zero, apperror.Validation("amount must not be negative")
	}
	return *event.Amount, nil
}

func requireUnits(event domain.UsageEvent) (decimal.Decimal, error) {
	if event.Units == nil {
		return decimal.Zero, apperror.Validation(fmt.Sprintf("%s event requires units", event.Engine))
	}
	if event.Units.Sign() < 0 {
		return decimal.Zero, apperror.Validation("units must not be negative")
	}
	return *event.Units, nil
}

// regionalize applies the regional price multiplier and tax to a
// vertical's raw subtotal, completing the breakdown.
func regionalize(b domain.ChargeBreakdown, region string) domain.ChargeBreakdown {
	b.Subtotal = b.Subtotal.Mul(domain.RegionMultiplier(region))
	rate := domain.RegionTaxRate(region)
	b.Tax = domain.TaxBreakdown{
		Region: region,
		Rate:   rate,
		Amount: b.Subtotal.Mul(rate),
	}
	b.Total = b.Subtotal.Add(b.Tax.Amount)
	return b
}

func ecommerceEngine(event domain.UsageEvent, region string, at time.Time, policy *domain.Policy) (domain.ChargeBreakdown, error) {
	amount, err := requireAmount(event)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	pct := knob(policy, func(p domain.PricingParams) *decimal.Decimal { return p.PercentFee }, defaultEcommercePercentFee)
	fixed := knob(policy, func(p domain.PricingParams) *decimal.Decimal { return p.FixedFee }, defaultEcommerceFixedFee)
	fees := amount.Mul(pct).Add(fixed)
	return regionalize(domain.ChargeBreakdown{
		Base:        amount,
		Fees:        fees,
		Subtotal:    fees,
		Description: fmt.Sprintf("ecommerce processing fee on order of %s", amount.StringFixed(2)),
	}, region), nil
}

func matchmakingEngine(event domain.UsageEvent, region string, at time.Time, policy *domain.Policy) (domain.ChargeBreakdown, error) {
	units, err := requireUnits(event)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	perUnit := knob(policy, func(p domain.PricingParams) *decimal.Decimal { return p.PerUnit }, defaultMatchmakingPerUnit)
	commission := units.Mul(perUnit)
	return regionalize(domain.ChargeBreakdown{
		Base:        commission,
		Commission:  commission,
		Subtotal:    commission,
		Description: fmt.Sprintf("matchmaking commission for %s matches", units.StringFixed(0)),
	}, region), nil
}

func placesEngine(event domain.UsageEvent, region string, at time.Time, policy *domain.Policy) (domain.ChargeBreakdown, error) {
	units, err := requireUnits(event)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	perCheckin := knob(policy, func(p domain.PricingParams) *decimal.Decimal { return p.PerUnit }, defaultPlacesPerCheckin)
	fees := units.Mul(perCheckin)
	return regionalize(domain.ChargeBreakdown{
		Base:        fees,
		Fees:        fees,
		Subtotal:    fees,
		Description: fmt.Sprintf("places fee for %s check-ins", units.StringFixed(0)),
	}, region), nil
}

func communicationEngine(event domain.UsageEvent, region string, at time.Time, policy *domain.Policy) (domain.ChargeBreakdown, error) {
	units, err := requireUnits(event)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	perUnit := knob(policy, func(p domain.PricingParams) *decimal.Decimal { return p.PerUnit }, defaultCommunicationPerUnit)
	fees := units.Mul(perUnit)
	return regionalize(domain.ChargeBreakdown{
		Base:        fees,
		Fees:        fees,
		Subtotal:    fees,
		Description: fmt.Sprintf("communication usage for %s units", units.StringFixed(0)),
	}, region), nil
}

func localizationEngine(event domain.UsageEvent, region string, at time.Time, policy *domain.Policy) (domain.ChargeBreakdown, error) {
	chars, err := requireUnits(event)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	perChar := knob(policy, func(p domain.PricingParams) *decimal.Decimal { return p.PerChar }, defaultLocalizationPerChar)
	fees := chars.Mul(perChar)
	return regionalize(domain.ChargeBreakdown{
		Base:        fees,
		Fees:        fees,
		Subtotal:    fees,
		Description: fmt.Sprintf("localization of %s characters", chars.StringFixed(0)),
	}, region), nil
}

func aiProgramsEngine(event domain.UsageEvent, region string, at time.Time, policy *domain.Policy) (domain.ChargeBreakdown, error) {
	tokens, err := requireUnits(event)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	perToken := knob(policy, func(p domain.PricingParams) *decimal.Decimal { return p.PerToken }, defaultAIProgramsPerToken)
	fees := tokens.Mul(perToken)
	return regionalize(domain.ChargeBreakdown{
		Base:        fees,
		Fees:        fees,
		Subtotal:    fees,
		Description: fmt.Sprintf("ai usage for %s tokens", tokens.StringFixed(0)),
	}, region), nil
}

func marketingEngine(event domain.UsageEvent, region string, at time.Time, policy *domain.Policy) (domain.ChargeBreakdown, error) {
	amount, err := requireAmount(event)
	if err != nil {
		return domain.ChargeBreakdown{}, err
	}
	rate := knob(policy, func(p domain.PricingParams) *decimal.Decimal { return p.CommissionRate }, defaultMarketingCommissionPct)
	commission := amount.Mul(rate)
	// Marketing bills the spend net of the platform's commission.
	return regionalize(domain.ChargeBreakdown{
		Base:        amount,
		Commission:  commission,
		Subtotal:    amount.Sub(commission),
		Description: fmt.Sprintf("marketing spend of %s net of commission", amount.StringFixed(2)),
	}, region), nil
}
