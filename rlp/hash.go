package rlp

import (
	"github.com/ethereum/go-ethereum/common"
	"golang.org/x/crypto/sha3"
)

// Hash returns the Keccak-256 digest of the canonical encoding of v, the
// identifier Ethereum protocols derive from RLP data.
func Hash(v Value) common.Hash {
	return HashBytes(EncodeValue(v))
}

// HashBytes returns the Keccak-256 digest of already-encoded data.
func HashBytes(enc []byte) (h common.Hash) {
	d := sha3.NewLegacyKeccak256()
	d.Write(enc)
	d.Sum(h[:0])
	return h
}
