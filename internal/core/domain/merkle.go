package domain

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/google/uuid"
)

// MerkleRoot is a periodic audit snapshot: the merkle root over every
// ledger entry hash at TakenAt. Comparing roots across systems detects
// divergence without shipping the full ledger.
type MerkleRoot struct {
	ID         uuid.UUID `json:"id"`
	Root       string    `json:"root"`
	EntryCount int       `json:"entry_count"`
	TakenAt    time.Time `json:"taken_at"`
}

// ComputeMerkleRoot folds a list of hex-encoded leaf hashes into a
// single root. Odd leaves are paired with themselves. An empty list
// yields the hash of the empty string.
func ComputeMerkleRoot(leaves []string) string {
	if len(leaves) == 0 {
		sum := sha256.Sum256(nil)
		return hex.EncodeToString(sum[:])
	}
	level := make([]string, len(leaves))
	copy(level, leaves)
	for len(level) > 1 {
		var next []string
		for i := 0; i < len(level); i += 2 {
			left := level[i]
			right := left
			if i+1 < len(level) {
				right = level[i+1]
			}
			sum := sha256.Sum256([]byte(left + right))
			next = append(next, hex.EncodeToString(sum[:]))
		}
		level = next
	}
	return level[0]
}
