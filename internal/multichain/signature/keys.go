// Package signature signs and verifies multichain blocks with LibNaCL-compatible keys.
//
// A serialized public key is "LibNaCLPK:" followed by a 32-byte X25519 key and a 32-byte
// Ed25519 verification key. The private key uses the "LibNaCLSK:" prefix followed by the
// X25519 scalar and the Ed25519 seed. Only the Ed25519 half takes part in block signatures.
package signature

import (
	"bytes"
	"crypto/ed25519"
	"crypto/rand"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/curve25519"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

const (
	publicPrefix  = "LibNaCLPK:"
	privatePrefix = "LibNaCLSK:"

	// PrivateKeySize is the length of a serialized private key.
	PrivateKeySize = len(privatePrefix) + curve25519.ScalarSize + ed25519.SeedSize
)

var (
	// ErrInvalidSignature reports a block whose signature does not verify.
	ErrInvalidSignature = errors.New("invalid block signature")
	// ErrMalformedKey reports serialized key material that cannot be parsed.
	ErrMalformedKey = errors.New("malformed key")
)

// PrivateKey owns one multichain identity.
type PrivateKey struct {
	exchange []byte
	signing  ed25519.PrivateKey
	public   block.PublicKey
}

// GenerateKey creates a key pair from crypto/rand.
func GenerateKey() (*PrivateKey, error) {
	return generateKey(rand.Reader)
}

func generateKey(random io.Reader) (*PrivateKey, error) {
	material := make([]byte, curve25519.ScalarSize+ed25519.SeedSize)
	if _, err := io.ReadFull(random, material); err != nil {
		return nil, fmt.Errorf("read key material: %w", err)
	}
	return newPrivateKey(material[:curve25519.ScalarSize], material[curve25519.ScalarSize:])
}

// ParsePrivateKey decodes the output of PrivateKey.Bytes.
func ParsePrivateKey(b []byte) (*PrivateKey, error) {
	if len(b) != PrivateKeySize || !bytes.HasPrefix(b, []byte(privatePrefix)) {
		return nil, fmt.Errorf("%w: private key of %d bytes", ErrMalformedKey, len(b))
	}
	body := b[len(privatePrefix):]
	return newPrivateKey(body[:curve25519.ScalarSize], body[curve25519.ScalarSize:])
}

func newPrivateKey(exchange, seed []byte) (*PrivateKey, error) {
	exchangePublic, err := curve25519.X25519(exchange, curve25519.Basepoint)
	if err != nil {
		return nil, fmt.Errorf("derive exchange key: %w", err)
	}
	signing := ed25519.NewKeyFromSeed(seed)

	raw := make([]byte, 0, block.PublicKeySize)
	raw = append(raw, publicPrefix...)
	raw = append(raw, exchangePublic...)
	raw = append(raw, signing.Public().(ed25519.PublicKey)...)
	public, err := block.ParsePublicKey(raw)
	if err != nil {
		return nil, err
	}

	return &PrivateKey{
		exchange: append([]byte(nil), exchange...),
		signing:  signing,
		public:   public,
	}, nil
}

// Bytes serializes the private key.
func (k *PrivateKey) Bytes() []byte {
	out := make([]byte, 0, PrivateKeySize)
	out = append(out, privatePrefix...)
	out = append(out, k.exchange...)
	out = append(out, k.signing.Seed()...)
	return out
}

// PublicKey returns the serialized public identity.
func (k *PrivateKey) PublicKey() block.PublicKey {
	return k.public
}

// Sign signs message with the Ed25519 half of the key.
func (k *PrivateKey) Sign(message []byte) (block.Signature, error) {
	return block.ParseSignature(ed25519.Sign(k.signing, message))
}

func verificationKey(pk block.PublicKey) (ed25519.PublicKey, bool) {
	if !bytes.HasPrefix(pk[:], []byte(publicPrefix)) {
		return nil, false
	}
	return ed25519.PublicKey(pk[block.PublicKeySize-ed25519.PublicKeySize:]), true
}
