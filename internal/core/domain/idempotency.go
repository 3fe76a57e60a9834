package domain

import (
	"time"

	"github.com/google/uuid"
)

// IdempotencyRecord caches the ledger entry produced by a charging
// operation so a retried request returns the original result without
// re-charging.
type IdempotencyRecord struct {
	Key          string    `json:"key"` // Format: "wallet_id:client_key"
	EntryID      uuid.UUID `json:"entry_id"`
	ResponseJSON []byte    `json:"response_json"`
	CreatedAt    time.Time `json:"created_at"`
}

// BuildIdempotencyKey scopes a client-supplied key to a wallet, so the
// same client key against different wallets is two distinct requests.
func BuildIdempotencyKey(walletID, clientKey string) string {
	return walletID + ":" + clientKey
}
