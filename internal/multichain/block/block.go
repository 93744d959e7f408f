package block

import "fmt"

// Signer produces signatures for blocks owned by its public key.
type Signer interface {
	PublicKey() PublicKey
	Sign(message []byte) (Signature, error)
}

// Draft is a block under construction. It carries no cached digest and may be changed freely
// until it is signed.
type Draft struct {
	Up                 uint32
	Down               uint32
	TotalUp            uint64
	TotalDown          uint64
	PublicKey          PublicKey
	SequenceNumber     uint32
	LinkPublicKey      PublicKey
	LinkSequenceNumber uint32
	PreviousHash       Hash
	Signature          Signature
}

// NewDraft returns an unlinked genesis draft with every identity field set to its sentinel.
func NewDraft() Draft {
	return Draft{
		PublicKey:          EmptyPublicKey,
		SequenceNumber:     GenesisSeq,
		LinkPublicKey:      EmptyPublicKey,
		LinkSequenceNumber: UnknownSeq,
		PreviousHash:       GenesisID,
		Signature:          EmptySignature,
	}
}

// Pack returns the wire encoding including the signature.
func (d Draft) Pack() []byte {
	return encode(&d, true)
}

// PackUnsigned returns the encoding that is signed and hashed.
func (d Draft) PackUnsigned() []byte {
	return encode(&d, false)
}

// Hash computes the digest of the draft in its current state.
func (d Draft) Hash() Hash {
	return digest(encode(&d, false))
}

// Sign signs the draft with s and freezes it into a Block.
func (d Draft) Sign(s Signer) (*Block, error) {
	if s.PublicKey() != d.PublicKey {
		return nil, fmt.Errorf("sign block %s/%d: %w", d.PublicKey, d.SequenceNumber, ErrSignerMismatch)
	}
	unsigned := encode(&d, false)
	sig, err := s.Sign(unsigned)
	if err != nil {
		return nil, fmt.Errorf("sign block %s/%d: %w", d.PublicKey, d.SequenceNumber, err)
	}
	d.Signature = sig
	return &Block{fields: d, hash: digest(unsigned)}, nil
}

// Block is a signed or decoded block. It has no setters; use Draft to derive a modified copy.
type Block struct {
	fields Draft
	hash   Hash
}

func (b *Block) Up() uint32                 { return b.fields.Up }
func (b *Block) Down() uint32               { return b.fields.Down }
func (b *Block) TotalUp() uint64            { return b.fields.TotalUp }
func (b *Block) TotalDown() uint64          { return b.fields.TotalDown }
func (b *Block) PublicKey() PublicKey       { return b.fields.PublicKey }
func (b *Block) SequenceNumber() uint32     { return b.fields.SequenceNumber }
func (b *Block) LinkPublicKey() PublicKey   { return b.fields.LinkPublicKey }
func (b *Block) LinkSequenceNumber() uint32 { return b.fields.LinkSequenceNumber }
func (b *Block) PreviousHash() Hash         { return b.fields.PreviousHash }
func (b *Block) Signature() Signature       { return b.fields.Signature }

// Hash returns the cached digest of the unsigned encoding.
func (b *Block) Hash() Hash { return b.hash }

// IsGenesis reports whether the block claims the first position of its chain.
func (b *Block) IsGenesis() bool { return b.fields.SequenceNumber == GenesisSeq }

// IsLinked reports whether the block references a counterpart block.
func (b *Block) IsLinked() bool {
	return b.fields.LinkPublicKey != EmptyPublicKey || b.fields.LinkSequenceNumber != UnknownSeq
}

// Pack returns the wire encoding including the signature.
func (b *Block) Pack() []byte {
	return encode(&b.fields, true)
}

// PackUnsigned returns the encoding covered by the signature.
func (b *Block) PackUnsigned() []byte {
	return encode(&b.fields, false)
}

// Draft returns a mutable copy of the block fields.
func (b *Block) Draft() Draft {
	return b.fields
}

func (b *Block) String() string {
	return fmt.Sprintf("%s/%d", b.fields.PublicKey, b.fields.SequenceNumber)
}
