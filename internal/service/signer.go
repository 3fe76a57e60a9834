package service

import (
	"crypto/ed25519"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HMACSigner signs policy payloads with HMAC-SHA256 over a shared
// secret. Suitable for single-operator deployments where the billing
// service both signs and verifies.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates an HMACSigner from the configured secret.
func NewHMACSigner(secret string) (*HMACSigner, error) {
	if secret == "" {
		return nil, fmt.Errorf("hmac signer: secret must not be empty")
	}
	return &HMACSigner{secret: []byte(secret)}, nil
}

func (s *HMACSigner) Sign(payload []byte) (string, error) {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil)), nil
}

func (s *HMACSigner) Verify(payload []byte, signature string) bool {
	expected, err := s.Sign(payload)
	if err != nil {
		return false
	}
	return hmac.Equal([]byte(expected), []byte(signature))
}

// Ed25519Signer signs policy payloads with an Ed25519 key derived from
// a configured seed. Verification needs only the public half, so
// external systems can check policy signatures without the seed.
type Ed25519Signer struct {
	priv ed25519.PrivateKey
	pub  ed25519.PublicKey
}

// NewEd25519Signer creates a signer from a hex-encoded 32-byte seed.
func NewEd25519Signer(seedHex string) (*Ed25519Signer, error) {
	seed, err := hex.DecodeString(seedHex)
	if err != nil {
		return nil, fmt.Errorf("ed25519 signer: decode seed: %w", err)
	}
	if len(seed) != ed25519.SeedSize {
		return nil, fmt.Errorf("ed25519 signer: seed must be %d bytes, got %d", ed25519.SeedSize, len(seed))
	}
	priv := ed25519.NewKeyFromSeed(seed)
	return &Ed25519Signer{priv: priv, pub: priv.Public().(ed25519.PublicKey)}, nil
}

func (s *Ed25519Signer) Sign(payload []byte) (string, error) {
	return hex.EncodeToString(ed25519.Sign(s.priv, payload)), nil
}

func (s *Ed25519Signer) Verify(payload []byte, signature string) bool {
	sig, err := hex.DecodeString(signature)
	if err != nil {
		return false
	}
	return ed25519.Verify(s.pub, payload, sig)
}
