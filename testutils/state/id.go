// Package state provides generators for seals and commitments used by the
// contract and asset-class tests.
package state

import (
	"crypto/rand"
	"testing"

	"github.com/tokenschema/tokenschema-go-base/contract"
)

// NewSeal returns a random single-use seal.
func NewSeal(t *testing.T) contract.Outpoint {
	var txid [32]byte
	if _, err := rand.Read(txid[:]); err != nil {
		t.Fatal("failed to generate seal:", err)
	}
	return contract.Outpoint{Txid: txid}
}

// SealWithSuffix returns a seal whose txid ends with the given byte, for
// tests that need recognizable, reproducible seals.
func SealWithSuffix(suffix byte) contract.Outpoint {
	var txid [32]byte
	txid[31] = suffix
	return contract.Outpoint{Txid: txid}
}

// Blinding returns a blinding factor derived from the seed, for tests that
// need reproducible commitments.
func Blinding(seed byte) [32]byte {
	var b [32]byte
	for i := range b {
		b[i] = seed
	}
	return b
}
