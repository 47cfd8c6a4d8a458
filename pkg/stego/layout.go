package stego

import (
	"encoding/binary"
	"fmt"
)

// Bitmap file header positions.
const (
	fileHeaderSize   = 14
	dibSizeOffset    = 14
	signatureOffset  = 6
	minDIBHeaderSize = 12 // BITMAPCOREHEADER
)

// Sizes of the metadata sub-fields in carrier bytes.
const (
	lengthFieldSize = intSize * carrierBytesPerByte
	offsetFieldSize = intSize * carrierBytesPerByte
	hashFieldSize   = DigestSize * carrierBytesPerByte

	metadataSize = lengthFieldSize + offsetFieldSize + hashFieldSize
)

// signature marks an image produced by this codec. It lives in the two
// reserved words of the bitmap file header.
var signature = [4]byte{0xF0, 0x12, 0xFD, 0x0F}

// Layout locates the metadata region of a carrier. The region starts right
// after the bitmap's own DIB header and holds, in order, the packed length,
// offset and hash.
type Layout struct {
	DIBHeaderSize int
	Base          int
}

func (l Layout) LengthAt() int { return l.Base }
func (l Layout) OffsetAt() int { return l.Base + lengthFieldSize }
func (l Layout) HashAt() int   { return l.Base + lengthFieldSize + offsetFieldSize }

// HeaderSize is the first carrier index past the metadata region.
func (l Layout) HeaderSize() int { return l.Base + metadataSize }

// ResolveLayout reads the DIB header size of carrier and derives the layout.
// It only looks at the carrier bytes, so encode and decode always agree.
func ResolveLayout(carrier []byte) (Layout, error) {
	if len(carrier) < dibSizeOffset+4 {
		return Layout{}, fmt.Errorf("%w: truncated bitmap header (%d bytes)", ErrInvalidContainer, len(carrier))
	}

	dibSize := binary.LittleEndian.Uint32(carrier[dibSizeOffset : dibSizeOffset+4])
	if dibSize < minDIBHeaderSize {
		return Layout{}, fmt.Errorf("%w: DIB header size %d", ErrInvalidContainer, dibSize)
	}
	if uint64(dibSize)+fileHeaderSize+metadataSize > uint64(len(carrier)) {
		return Layout{}, fmt.Errorf("%w: DIB header size %d leaves no room for metadata in %d bytes", ErrInvalidContainer, dibSize, len(carrier))
	}

	return Layout{
		DIBHeaderSize: int(dibSize),
		Base:          fileHeaderSize + int(dibSize),
	}, nil
}

func isBitmap(carrier []byte) bool {
	return len(carrier) >= 2 && carrier[0] == 'B' && carrier[1] == 'M'
}

func hasSignature(carrier []byte) bool {
	if len(carrier) < signatureOffset+len(signature) {
		return false
	}
	return [4]byte(carrier[signatureOffset:signatureOffset+len(signature)]) == signature
}

func writeSignature(carrier []byte) {
	copy(carrier[signatureOffset:], signature[:])
}
