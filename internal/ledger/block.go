// Package ledger implements the hash-chained loan ledger: blocks bound to
// their predecessor by SHA-256, the in-memory chain built from them, the
// loader that rebuilds a chain from stored loan records, and the fraud
// auditor that re-derives each record's hash from its current fields.
package ledger

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// GenesisPreviousHash is the previous hash carried by the first block.
const GenesisPreviousHash = "0"

// HashLength is the length of a hex-encoded SHA-256 digest.
const HashLength = sha256.Size * 2

// Origin records where a block's hash came from.
type Origin string

const (
	// OriginComputed blocks had their hash computed from their own fields.
	OriginComputed Origin = "COMPUTED"
	// OriginStored blocks carry a hash copied verbatim from storage. Nothing
	// checked it against the fields; see Chain.Verify and Audit.
	OriginStored Origin = "STORED"
)

// Block is one link of the chain. Its fields are exported for storage and
// JSON, so Origin is only as trustworthy as the code that built the value:
// NewBlock and Chain appends set OriginComputed and RestoreBlock sets
// OriginStored, but a literal Block can claim either.
type Block struct {
	Index        int64  `json:"index"`
	Timestamp    string `json:"timestamp"`
	Data         string `json:"data"`
	PreviousHash string `json:"previous_hash"`
	Hash         string `json:"hash"`
	Origin       Origin `json:"origin"`
}

// NewBlock builds a block and computes its hash.
func NewBlock(index int64, timestamp, data, previousHash string) (Block, error) {
	if index < 0 {
		return Block{}, ErrNegativeIndex
	}
	if !isPreviousHash(previousHash) {
		return Block{}, fmt.Errorf("%w: %q", ErrMalformedPreviousHash, previousHash)
	}
	return newBlock(index, timestamp, data, previousHash), nil
}

// RestoreBlock rebuilds a block from stored fields and keeps storedHash as its
// hash without recomputing or checking it.
func RestoreBlock(index int64, timestamp, data, previousHash, storedHash string) Block {
	return Block{
		Index:        index,
		Timestamp:    timestamp,
		Data:         data,
		PreviousHash: previousHash,
		Hash:         storedHash,
		Origin:       OriginStored,
	}
}

func newBlock(index int64, timestamp, data, previousHash string) Block {
	return Block{
		Index:        index,
		Timestamp:    timestamp,
		Data:         data,
		PreviousHash: previousHash,
		Hash:         ComputeHash(index, timestamp, data, previousHash),
		Origin:       OriginComputed,
	}
}

// ComputeHash returns the lower-case hex SHA-256 of the concatenated fields.
func ComputeHash(index int64, timestamp, data, previousHash string) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%d%s%s%s", index, timestamp, data, previousHash)))
	return hex.EncodeToString(sum[:])
}

// RecomputeHash derives the hash from the block's current fields.
func (b Block) RecomputeHash() string {
	return ComputeHash(b.Index, b.Timestamp, b.Data, b.PreviousHash)
}

func isPreviousHash(h string) bool {
	if h == GenesisPreviousHash {
		return true
	}
	return IsDigest(h)
}

// IsDigest reports whether s is a 64-character lower-case hex string.
func IsDigest(s string) bool {
	if len(s) != HashLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c < '0' || c > '9') && (c < 'a' || c > 'f') {
			return false
		}
	}
	return true
}
