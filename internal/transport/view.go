package transport

import (
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
	"github.com/goodnatureofminers/multichain-backend/internal/multichain/model"
)

// BlockView is the JSON form of a block. Keys are base58, hashes and signatures hex.
type BlockView struct {
	PublicKey          string `json:"public_key"`
	SequenceNumber     uint32 `json:"sequence_number"`
	LinkPublicKey      string `json:"link_public_key,omitempty"`
	LinkSequenceNumber uint32 `json:"link_sequence_number,omitempty"`
	PreviousHash       string `json:"previous_hash"`
	Hash               string `json:"hash"`
	Signature          string `json:"signature"`
	Up                 uint32 `json:"up"`
	Down               uint32 `json:"down"`
	TotalUp            uint64 `json:"total_up"`
	TotalDown          uint64 `json:"total_down"`
}

type BlocksView struct {
	Blocks []BlockView `json:"blocks"`
}

type ValidationView struct {
	SignatureValid bool          `json:"signature_valid"`
	Verdict        model.Verdict `json:"verdict,omitempty"`
	Violations     []string      `json:"violations,omitempty"`
	Block          BlockView     `json:"block"`
	Linked         *BlockView    `json:"linked,omitempty"`
}

type errorView struct {
	Error string `json:"error"`
}

func newBlockView(b *block.Block) BlockView {
	v := BlockView{
		PublicKey:      b.PublicKey().String(),
		SequenceNumber: b.SequenceNumber(),
		PreviousHash:   b.PreviousHash().String(),
		Hash:           b.Hash().String(),
		Signature:      b.Signature().String(),
		Up:             b.Up(),
		Down:           b.Down(),
		TotalUp:        b.TotalUp(),
		TotalDown:      b.TotalDown(),
	}
	if b.IsLinked() {
		v.LinkPublicKey = b.LinkPublicKey().String()
		v.LinkSequenceNumber = b.LinkSequenceNumber()
	}
	return v
}

func newBlocksView(blocks []*block.Block) BlocksView {
	v := BlocksView{Blocks: make([]BlockView, 0, len(blocks))}
	for _, b := range blocks {
		v.Blocks = append(v.Blocks, newBlockView(b))
	}
	return v
}
