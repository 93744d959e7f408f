package block

import (
	"encoding/binary"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

const (
	// UnsignedSize is the length of the encoding covered by the signature.
	UnsignedSize = 4 + 4 + 8 + 8 + PublicKeySize + 4 + PublicKeySize + 4 + HashSize
	// Size is the length of the full wire encoding.
	Size = UnsignedSize + SignatureSize
)

func encode(d *Draft, withSignature bool) []byte {
	size := UnsignedSize
	if withSignature {
		size = Size
	}
	buf := make([]byte, 0, size)
	buf = binary.BigEndian.AppendUint32(buf, d.Up)
	buf = binary.BigEndian.AppendUint32(buf, d.Down)
	buf = binary.BigEndian.AppendUint64(buf, d.TotalUp)
	buf = binary.BigEndian.AppendUint64(buf, d.TotalDown)
	buf = append(buf, d.PublicKey[:]...)
	buf = binary.BigEndian.AppendUint32(buf, d.SequenceNumber)
	buf = append(buf, d.LinkPublicKey[:]...)
	buf = binary.BigEndian.AppendUint32(buf, d.LinkSequenceNumber)
	buf = append(buf, d.PreviousHash[:]...)
	if withSignature {
		buf = append(buf, d.Signature[:]...)
	}
	return buf
}

// Unpack decodes a full wire encoding. It performs no semantic validation.
func Unpack(data []byte) (*Block, error) {
	if len(data) != Size {
		return nil, fmt.Errorf("%w: length %d, want %d", ErrStructuralParse, len(data), Size)
	}

	var d Draft
	r := reader{buf: data}
	d.Up = r.uint32()
	d.Down = r.uint32()
	d.TotalUp = r.uint64()
	d.TotalDown = r.uint64()
	r.copy(d.PublicKey[:])
	d.SequenceNumber = r.uint32()
	r.copy(d.LinkPublicKey[:])
	d.LinkSequenceNumber = r.uint32()
	r.copy(d.PreviousHash[:])
	r.copy(d.Signature[:])

	return &Block{fields: d, hash: digest(data[:UnsignedSize])}, nil
}

// UnpackAll splits a concatenation of wire encodings into blocks.
func UnpackAll(data []byte) ([]*Block, error) {
	if len(data)%Size != 0 {
		return nil, fmt.Errorf("%w: length %d is not a multiple of %d", ErrStructuralParse, len(data), Size)
	}
	blocks := make([]*Block, 0, len(data)/Size)
	for off := 0; off < len(data); off += Size {
		b, err := Unpack(data[off : off+Size])
		if err != nil {
			return nil, err
		}
		blocks = append(blocks, b)
	}
	return blocks, nil
}

func digest(unsigned []byte) Hash {
	return Hash(chainhash.HashH(unsigned))
}

// reader walks a buffer whose length was checked up front.
type reader struct {
	buf []byte
	off int
}

func (r *reader) uint32() uint32 {
	v := binary.BigEndian.Uint32(r.buf[r.off:])
	r.off += 4
	return v
}

func (r *reader) uint64() uint64 {
	v := binary.BigEndian.Uint64(r.buf[r.off:])
	r.off += 8
	return v
}

func (r *reader) copy(dst []byte) {
	r.off += copy(dst, r.buf[r.off:r.off+len(dst)])
}
