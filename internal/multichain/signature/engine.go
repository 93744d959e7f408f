package signature

import (
	"crypto/ed25519"
	"fmt"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

// Sign signs the draft with key and checks the result before handing out the frozen block.
func Sign(d block.Draft, key *PrivateKey) (*block.Block, error) {
	b, err := d.Sign(key)
	if err != nil {
		return nil, err
	}
	if err := VerifyBlock(b); err != nil {
		return nil, fmt.Errorf("self-check block %s: %w", b, err)
	}
	return b, nil
}

// Verify reports whether sig is a valid signature of message by pk.
func Verify(pk block.PublicKey, message []byte, sig block.Signature) bool {
	vk, ok := verificationKey(pk)
	if !ok {
		return false
	}
	return ed25519.Verify(vk, message, sig[:])
}

// VerifyBlock checks the block signature against its owner key.
func VerifyBlock(b *block.Block) error {
	if !Verify(b.PublicKey(), b.PackUnsigned(), b.Signature()) {
		return fmt.Errorf("block %s: %w", b, ErrInvalidSignature)
	}
	return nil
}
