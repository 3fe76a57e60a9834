package service

import (
	"context"
	"testing"
	"time"

	"billing-core/internal/adapter/storage/file"
	"billing-core/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func draftEntry(walletID string, amount string) *domain.LedgerEntry {
	return &domain.LedgerEntry{
		ID:           uuid.New(),
		Timestamp:    time.Now().UTC(),
		AccountID:    "acct-1",
		WalletID:     walletID,
		Type:         domain.EntryTypeWalletCredit,
		Amount:       dec(amount),
		Currency:     "USD",
		BalanceAfter: dec(amount),
	}
}

func TestLedgerService_AppendChainsEntries(t *testing.T) {
	ctx := context.Background()
	st, err := file.New("")
	require.NoError(t, err)
	svc := NewLedgerService(st.Ledger())

	first := draftEntry("w-1", "10")
	require.NoError(t, svc.Append(ctx, nil, first))
	assert.Nil(t, first.PrevHash)
	assert.True(t, first.VerifyHash())

	second := draftEntry("w-1", "20")
	require.NoError(t, svc.Append(ctx, nil, second))
	require.NotNil(t, second.PrevHash)
	assert.Equal(t, first.EntryHash, *second.PrevHash)
	assert.True(t, second.VerifyHash())

	// A different wallet starts its own chain.
	other := draftEntry("w-2", "5")
	require.NoError(t, svc.Append(ctx, nil, other))
	assert.Nil(t, other.PrevHash)
}

func TestLedgerService_DuplicateAppendRejected(t *testing.T) {
	ctx := context.Background()
	st, err := file.New("")
	require.NoError(t, err)
	svc := NewLedgerService(st.Ledger())

	entry := draftEntry("w-1", "10")
	require.NoError(t, svc.Append(ctx, nil, entry))
	err = svc.Append(ctx, nil, entry)
	assert.Equal(t, "duplicate_entry", appCode(t, err))
}

func TestLedgerService_EntriesForAccount(t *testing.T) {
	ctx := context.Background()
	st, err := file.New("")
	require.NoError(t, err)
	svc := NewLedgerService(st.Ledger())

	mine := draftEntry("w-1", "10")
	require.NoError(t, svc.Append(ctx, nil, mine))
	other := draftEntry("w-2", "10")
	other.AccountID = "acct-2"
	require.NoError(t, svc.Append(ctx, nil, other))

	entries, err := svc.EntriesForAccount(ctx, "acct-1")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, mine.ID, entries[0].ID)

	all, err := svc.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}
