package leveldb

import (
	"encoding/binary"
	"fmt"

	"github.com/goodnatureofminers/multichain-backend/internal/multichain/block"
)

const (
	blockPrefix byte = 'B'
	linkPrefix  byte = 'L'
)

const (
	blockKeySize  = 1 + block.PublicKeySize + 4
	linkKeySize   = 1 + block.PublicKeySize + 4
	linkValueSize = block.PublicKeySize + 4
)

// blockKey is 'B' || pk || seq.
func blockKey(pk block.PublicKey, seq uint32) []byte {
	key := make([]byte, 0, blockKeySize)
	key = append(key, blockPrefix)
	key = append(key, pk[:]...)
	return binary.BigEndian.AppendUint32(key, seq)
}

func chainPrefix(pk block.PublicKey) []byte {
	key := make([]byte, 0, 1+block.PublicKeySize)
	key = append(key, blockPrefix)
	return append(key, pk[:]...)
}

// linkKey is 'L' || target pk || target seq. The value is the position of the first stored block
// linking to the target, see linkValue.
func linkKey(target block.PublicKey, targetSeq uint32) []byte {
	key := make([]byte, 0, linkKeySize)
	key = append(key, linkPrefix)
	key = append(key, target[:]...)
	return binary.BigEndian.AppendUint32(key, targetSeq)
}

// linkValue is linker pk || linker seq.
func linkValue(linker block.PublicKey, linkerSeq uint32) []byte {
	value := make([]byte, 0, linkValueSize)
	value = append(value, linker[:]...)
	return binary.BigEndian.AppendUint32(value, linkerSeq)
}

// linkerOf extracts the linking block position from a link index value.
func linkerOf(value []byte) (block.PublicKey, uint32, error) {
	if len(value) != linkValueSize {
		return block.PublicKey{}, 0, fmt.Errorf("malformed link value of %d bytes", len(value))
	}
	pk, err := block.ParsePublicKey(value[:block.PublicKeySize])
	if err != nil {
		return block.PublicKey{}, 0, err
	}
	return pk, binary.BigEndian.Uint32(value[block.PublicKeySize:]), nil
}
