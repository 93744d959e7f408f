// Package block defines the multichain block, its canonical binary encoding and digest.
package block

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/mr-tron/base58"
)

const (
	// PublicKeySize is the width of a serialized identity.
	PublicKeySize = 74
	// HashSize is the width of a block digest.
	HashSize = 32
	// SignatureSize is the width of a block signature.
	SignatureSize = 64

	// GenesisSeq is the sequence number of the first block of every chain.
	GenesisSeq uint32 = 1
	// UnknownSeq marks an unset link sequence number.
	UnknownSeq uint32 = 0
)

type (
	// PublicKey is the fixed-width identity of a chain owner.
	PublicKey [PublicKeySize]byte
	// Hash is a block digest.
	Hash [HashSize]byte
	// Signature is a fixed-width signature over the unsigned encoding.
	Signature [SignatureSize]byte
)

var (
	// GenesisID is the previous hash of every genesis block.
	GenesisID = Hash(bytes.Repeat([]byte{'0'}, HashSize))
	// EmptySignature is the signature of a block that has not been signed yet.
	EmptySignature = Signature(bytes.Repeat([]byte{'0'}, SignatureSize))
	// EmptyPublicKey is the link public key of an unlinked block.
	EmptyPublicKey = PublicKey(bytes.Repeat([]byte{'0'}, PublicKeySize))
)

// ParsePublicKey copies b into a PublicKey.
func ParsePublicKey(b []byte) (PublicKey, error) {
	var pk PublicKey
	if len(b) != PublicKeySize {
		return pk, fmt.Errorf("%w: public key length %d, want %d", ErrConstruction, len(b), PublicKeySize)
	}
	copy(pk[:], b)
	return pk, nil
}

// ParsePublicKeyString decodes the base58 form produced by PublicKey.String.
func ParsePublicKeyString(s string) (PublicKey, error) {
	raw, err := base58.Decode(s)
	if err != nil {
		return PublicKey{}, fmt.Errorf("%w: decode public key: %v", ErrConstruction, err)
	}
	return ParsePublicKey(raw)
}

// String returns the base58 encoding of the key.
func (pk PublicKey) String() string {
	return base58.Encode(pk[:])
}

// Hex returns the lower-case hex encoding of the key.
func (pk PublicKey) Hex() string {
	return hex.EncodeToString(pk[:])
}

// ParseHash copies b into a Hash.
func ParseHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, fmt.Errorf("%w: hash length %d, want %d", ErrConstruction, len(b), HashSize)
	}
	copy(h[:], b)
	return h, nil
}

func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// ParseSignature copies b into a Signature.
func ParseSignature(b []byte) (Signature, error) {
	var s Signature
	if len(b) != SignatureSize {
		return s, fmt.Errorf("%w: signature length %d, want %d", ErrConstruction, len(b), SignatureSize)
	}
	copy(s[:], b)
	return s, nil
}

func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}
