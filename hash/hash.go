package hash

import (
	"crypto"
	"crypto/sha256"
	"fmt"
)

var Zero256 = make([]byte, 32)

// Sum256 returns the SHA256 checksum of the data; empty or missing data
// yields the zero hash.
func Sum256(data []byte) []byte {
	if len(data) == 0 {
		return Zero256
	}
	hsh := sha256.Sum256(data)
	return hsh[:]
}

// Sum CBOR-encodes each value into the hash and returns the digest.
// Content-derived identifiers are computed this way; values that cannot
// be CBOR encoded are a programming error, hence the panic.
func Sum(hashAlgorithm crypto.Hash, values ...any) []byte {
	hasher := New(hashAlgorithm.New())
	for _, value := range values {
		hasher.Write(value)
	}
	res, err := hasher.Sum()
	if err != nil {
		panic(fmt.Errorf("failed to calculate hash: %w", err))
	}
	return res
}
