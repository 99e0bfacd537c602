package contract

import (
	"crypto"
	"encoding/binary"
	"fmt"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/tokenschema/tokenschema-go-base/cbor"
	"github.com/tokenschema/tokenschema-go-base/hash"
	"github.com/tokenschema/tokenschema-go-base/schemes"
)

/*
Committed state is carried as opaque blobs; validation programs only ever
extract fixed-width little-endian fields from them at the byte offsets the
schemes package publishes. The constructors here are the single place the
layouts are written, so builders and programs cannot drift apart.
*/
const (
	// CommittedAmountSize is an 8-byte amount field followed by a 32-byte
	// blinding factor standing in for a homomorphic commitment.
	CommittedAmountSize = 40
	// AllocationSize is a 4-byte token index, an 8-byte owned fraction and
	// 8 reserved zero bytes.
	AllocationSize = 20

	blindingSize        = 32
	tokenDataHeaderSize = 16
)

// DeriveBlinding derives the blinding factor of a committed amount from the
// seal the assignment is bound to and the assignment's position in the
// operation. Composing the same operation from the same parameters then
// commits byte-identical blobs, which keeps derived identifiers reproducible.
func DeriveBlinding(seal Outpoint, index int) [blindingSize]byte {
	var b [blindingSize]byte
	copy(b[:], hash.Sum(crypto.SHA256, seal, index))
	return b
}

// CommitAmount builds the blob committed in a fungible assignment.
func CommitAmount(amount uint64, blinding [blindingSize]byte) []byte {
	blob := make([]byte, CommittedAmountSize)
	binary.LittleEndian.PutUint64(blob[schemes.AmountFieldOffset:], amount)
	copy(blob[8:], blinding[:])
	return blob
}

// AmountOf reads the amount field back out of a committed amount or a
// declared amount blob.
func AmountOf(blob []byte) (uint64, error) {
	if len(blob) < schemes.AmountFieldOffset+8 {
		return 0, fmt.Errorf("blob of %d bytes carries no amount field", len(blob))
	}
	return binary.LittleEndian.Uint64(blob[schemes.AmountFieldOffset:]), nil
}

// DeclaredAmount builds the blob of an amount declared in global state or
// operation metadata, carried in the clear.
func DeclaredAmount(v uint64) []byte {
	blob := make([]byte, 8)
	binary.LittleEndian.PutUint64(blob, v)
	return blob
}

// AllocationBlob builds the blob committed in a unique-token assignment.
func AllocationBlob(index uint32, fraction uint64) []byte {
	blob := make([]byte, AllocationSize)
	binary.LittleEndian.PutUint32(blob[schemes.TokenIndexOffset:], index)
	binary.LittleEndian.PutUint64(blob[schemes.FractionOffset:], fraction)
	return blob
}

// AllocationOf reads an allocation blob back.
func AllocationOf(blob []byte) (index uint32, fraction uint64, err error) {
	if len(blob) < AllocationSize {
		return 0, 0, fmt.Errorf("blob of %d bytes is not an allocation", len(blob))
	}
	index = binary.LittleEndian.Uint32(blob[schemes.TokenIndexOffset:])
	fraction = binary.LittleEndian.Uint64(blob[schemes.FractionOffset:])
	return index, fraction, nil
}

// TokenDataBlob builds the global token-metadata blob of a unique token: a
// fixed header carrying the token index followed by the CBOR-encoded
// payload (name, media hashes and the like).
func TokenDataBlob(index uint32, payload any) ([]byte, error) {
	data, err := cbor.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding token payload: %w", err)
	}
	blob := make([]byte, tokenDataHeaderSize, tokenDataHeaderSize+len(data))
	binary.LittleEndian.PutUint32(blob[schemes.TokenIndexOffset:], index)
	return append(blob, data...), nil
}

// TokenIndexOf reads the token index out of a token-metadata blob.
func TokenIndexOf(blob []byte) (uint32, error) {
	if len(blob) < tokenDataHeaderSize {
		return 0, fmt.Errorf("blob of %d bytes is not token metadata", len(blob))
	}
	return binary.LittleEndian.Uint32(blob[schemes.TokenIndexOffset:]), nil
}

// Outpoint is the single-use seal an assignment is bound to: ownership of
// the assigned state is whoever can spend the referenced transaction output.
type Outpoint struct {
	_    struct{} `cbor:",toarray"`
	Txid [32]byte
	Vout uint32
}

func (o Outpoint) String() string {
	return fmt.Sprintf("%s:%d", hexutil.Encode(o.Txid[:]), o.Vout)
}
