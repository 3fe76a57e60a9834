package domain

import (
	"github.com/shopspring/decimal"
)

// UsageEvent is one billable usage report from a business vertical.
// Units carries the vertical's natural quantity (minutes, check-ins,
// characters, tokens); Amount carries a monetary base where the
// vertical prices a transaction value (e-commerce order, marketing
// spend).
type UsageEvent struct {
	Engine  string            `json:"engine"`
	EventID *string           `json:"event_id,omitempty"`
	Units   *decimal.Decimal  `json:"units,omitempty"`
	Amount  *decimal.Decimal  `json:"amount,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// ChargeBreakdown is the result of pricing a usage event or a
// subscription charge. Total = Subtotal + Tax.Amount; the orchestrator
// debits Total.
type ChargeBreakdown struct {
	Base            decimal.Decimal `json:"base"`
	Fees            decimal.Decimal `json:"fees"`
	Commission      decimal.Decimal `json:"commission"`
	DiscountPercent decimal.Decimal `json:"discount_percent"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	Tax             TaxBreakdown    `json:"tax"`
	Total           decimal.Decimal `json:"total"`
	Description     string          `json:"description"`
}
